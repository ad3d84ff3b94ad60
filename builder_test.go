package framegraph

import (
	"slices"
	"testing"
)

func TestBuildPassGraph_Edges(t *testing.T) {
	tests := []struct {
		name  string
		decls []PassDeclaration
		want  [][2]PassID
	}{
		{
			name: "image read after write",
			decls: []PassDeclaration{
				{ID: "Culling", Info: PassGraphInfo{ImageWrites: []ImageUsage{colorWrite(ImageGeometryColor)}}},
				{ID: "Forward", Info: PassGraphInfo{ImageReads: []ImageUsage{sampledRead(ImageGeometryColor)}}},
			},
			want: [][2]PassID{{"Culling", "Forward"}},
		},
		{
			name: "buffer read after write",
			decls: []PassDeclaration{
				{ID: "Culling", Info: PassGraphInfo{BufferWrites: []BufferUsage{storageWrite(BufferIndirectCommand)}}},
				{ID: "PostProcessing", Info: PassGraphInfo{BufferReads: []BufferUsage{indirectRead(BufferIndirectCommand)}}},
			},
			want: [][2]PassID{{"Culling", "PostProcessing"}},
		},
		{
			name: "write after earlier read",
			decls: []PassDeclaration{
				{ID: "Reader", Info: PassGraphInfo{ImageReads: []ImageUsage{sampledRead(ImageShadowMap)}}},
				{ID: "Writer", Info: PassGraphInfo{ImageWrites: []ImageUsage{colorWrite(ImageShadowMap)}}},
			},
			want: [][2]PassID{{"Reader", "Writer"}},
		},
		{
			name: "write after write",
			decls: []PassDeclaration{
				{ID: "A", Info: PassGraphInfo{ImageWrites: []ImageUsage{colorWrite(ImageSceneColor)}}},
				{ID: "B", Info: PassGraphInfo{ImageWrites: []ImageUsage{colorWrite(ImageSceneColor)}}},
			},
			want: [][2]PassID{{"A", "B"}},
		},
		{
			name: "reads stay unordered",
			decls: []PassDeclaration{
				{ID: "W", Info: PassGraphInfo{ImageWrites: []ImageUsage{colorWrite(ImageSceneColor)}}},
				{ID: "R1", Info: PassGraphInfo{ImageReads: []ImageUsage{sampledRead(ImageSceneColor)}}},
				{ID: "R2", Info: PassGraphInfo{ImageReads: []ImageUsage{sampledRead(ImageSceneColor)}}},
			},
			want: [][2]PassID{{"W", "R1"}, {"W", "R2"}},
		},
		{
			name: "readers before next writer",
			decls: []PassDeclaration{
				{ID: "W1", Info: PassGraphInfo{BufferWrites: []BufferUsage{storageWrite(BufferVisibility)}}},
				{ID: "R", Info: PassGraphInfo{BufferReads: []BufferUsage{indirectRead(BufferVisibility)}}},
				{ID: "W2", Info: PassGraphInfo{BufferWrites: []BufferUsage{storageWrite(BufferVisibility)}}},
			},
			want: [][2]PassID{{"W1", "R"}, {"R", "W2"}, {"W1", "W2"}},
		},
		{
			name: "read only alias",
			decls: []PassDeclaration{
				{ID: "A", Info: PassGraphInfo{ImageReads: []ImageUsage{sampledRead(ImageShadowMap)}}},
				{ID: "B", Info: PassGraphInfo{ImageReads: []ImageUsage{sampledRead(ImageShadowMap)}}},
			},
			want: nil,
		},
		{
			name: "disjoint aliases",
			decls: []PassDeclaration{
				{ID: "A", Info: PassGraphInfo{ImageWrites: []ImageUsage{colorWrite(ImageSceneColor)}}},
				{ID: "B", Info: PassGraphInfo{ImageWrites: []ImageUsage{colorWrite(ImageDepth)}}},
				{ID: "C", Info: PassGraphInfo{BufferWrites: []BufferUsage{storageWrite(BufferLight)}}},
			},
			want: nil,
		},
		{
			name: "read modify write has no self edge",
			decls: []PassDeclaration{
				{ID: "Blur", Info: PassGraphInfo{
					ImageReads:  []ImageUsage{sampledRead(ImageSceneColor)},
					ImageWrites: []ImageUsage{colorWrite(ImageSceneColor)},
				}},
			},
			want: nil,
		},
		{
			name:  "end to end scenario",
			decls: scenarioDecls(),
			want:  [][2]PassID{{"Forward", "Composition"}, {"Culling", "PostProcessing"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := BuildPassGraph(tt.decls)

			if got := g.Len(); got != len(tt.decls) {
				t.Errorf("Len() = %d, want %d", got, len(tt.decls))
			}
			for _, e := range tt.want {
				if !g.HasEdge(e[0], e[1]) {
					t.Errorf("missing edge %s->%s", e[0], e[1])
				}
				if g.HasEdge(e[1], e[0]) {
					t.Errorf("unexpected reverse edge %s->%s", e[1], e[0])
				}
			}
			if got := g.EdgeCount(); got != len(tt.want) {
				t.Errorf("EdgeCount() = %d, want %d (edges %v)", got, len(tt.want), g.Edges())
			}
		})
	}
}

func TestBuildPassGraph_ScenarioOrders(t *testing.T) {
	g := BuildPassGraph(scenarioDecls())

	order, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("TopologicalSort() error = %v", err)
	}
	pos := make(map[PassID]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	if pos["Forward"] >= pos["Composition"] {
		t.Errorf("Forward must precede Composition in %v", order)
	}
	if pos["Culling"] >= pos["PostProcessing"] {
		t.Errorf("Culling must precede PostProcessing in %v", order)
	}
	if g.HasEdge("Composition", "Forward") || g.HasEdge("PostProcessing", "Culling") {
		t.Error("graph contains a reversed scenario edge")
	}
}

func TestBuildPassGraph_ReaderOfWrittenAliasStaysPending(t *testing.T) {
	// W1 -> R -> W2 on one image: R reads W1's result, so it also has to
	// finish before W2 overwrites it.
	g := BuildPassGraph([]PassDeclaration{
		{ID: "W1", Info: PassGraphInfo{ImageWrites: []ImageUsage{colorWrite(ImageGeometryColor)}}},
		{ID: "R", Info: PassGraphInfo{ImageReads: []ImageUsage{sampledRead(ImageGeometryColor)}}},
		{ID: "W2", Info: PassGraphInfo{ImageWrites: []ImageUsage{colorWrite(ImageGeometryColor)}}},
	})

	for _, e := range [][2]PassID{{"W1", "R"}, {"R", "W2"}, {"W1", "W2"}} {
		if !g.HasEdge(e[0], e[1]) {
			t.Errorf("missing edge %s->%s", e[0], e[1])
		}
	}
	order, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("TopologicalSort() error = %v", err)
	}
	if want := []PassID{"W1", "R", "W2"}; !slices.Equal(order, want) {
		t.Errorf("TopologicalSort() = %v, want %v", order, want)
	}
}

func TestBuildPassGraph_PassWithoutUsageIsNode(t *testing.T) {
	g := BuildPassGraph([]PassDeclaration{{ID: "Idle"}, {ID: "Other"}})

	if got := g.Nodes(); !slices.Equal(got, []PassID{"Idle", "Other"}) {
		t.Errorf("Nodes() = %v, want [Idle Other]", got)
	}
}

func TestBuildPassGraph_ImagesAndBuffersIndependent(t *testing.T) {
	// Same numeric alias value in different categories must not interact.
	g := BuildPassGraph([]PassDeclaration{
		{ID: "A", Info: PassGraphInfo{ImageWrites: []ImageUsage{colorWrite(ImageSceneColor)}}},
		{ID: "B", Info: PassGraphInfo{BufferReads: []BufferUsage{indirectRead(BufferIndirectCommand)}}},
	})
	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount() = %d, want 0 (edges %v)", g.EdgeCount(), g.Edges())
	}
}
