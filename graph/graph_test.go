package graph

import (
	"errors"
	"slices"
	"testing"
)

func positions[T comparable](order []T) map[T]int {
	pos := make(map[T]int, len(order))
	for i, n := range order {
		pos[n] = i
	}
	return pos
}

func TestAddNodeIdempotent(t *testing.T) {
	g := New[string]()
	g.AddNode("a")
	g.AddNode("a")
	g.AddNode("b")

	if got := g.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
	if got := g.Nodes(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Nodes() = %v, want [a b]", got)
	}
}

func TestAddEdge(t *testing.T) {
	g := New[string]()
	g.AddEdge("a", "b")
	g.AddEdge("a", "b")

	if !g.HasNode("a") || !g.HasNode("b") {
		t.Fatal("AddEdge did not add both nodes")
	}
	if !g.HasEdge("a", "b") {
		t.Error("HasEdge(a, b) = false, want true")
	}
	if g.HasEdge("b", "a") {
		t.Error("HasEdge(b, a) = true, want false")
	}
	if g.HasEdge("a", "missing") {
		t.Error("HasEdge(a, missing) = true, want false")
	}
	if got := g.EdgeCount(); got != 1 {
		t.Errorf("EdgeCount() = %d, want 1", got)
	}
	if got := g.InDegree("b"); got != 1 {
		t.Errorf("InDegree(b) = %d, want 1", got)
	}
}

func TestSuccessorsAndPredecessors(t *testing.T) {
	g := New[int]()
	g.AddEdge(1, 3)
	g.AddEdge(1, 2)
	g.AddEdge(0, 2)

	if got := g.Successors(1); !slices.Equal(got, []int{3, 2}) {
		t.Errorf("Successors(1) = %v, want [3 2]", got)
	}
	if got := g.Predecessors(2); !slices.Equal(got, []int{1, 0}) {
		t.Errorf("Predecessors(2) = %v, want [1 0]", got)
	}
	if got := g.Successors(42); got != nil {
		t.Errorf("Successors(42) = %v, want nil", got)
	}
}

func TestTopologicalSortValidity(t *testing.T) {
	tests := []struct {
		name  string
		nodes []string
		edges [][2]string
	}{
		{"empty", nil, nil},
		{"isolated", []string{"a", "b", "c"}, nil},
		{"chain", nil, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}}},
		{"diamond", nil, [][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}}},
		{"reverse insertion", []string{"d", "c", "b", "a"}, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}}},
		{"forest", []string{"x"}, [][2]string{{"a", "b"}, {"c", "d"}, {"b", "d"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New[string]()
			for _, n := range tt.nodes {
				g.AddNode(n)
			}
			for _, e := range tt.edges {
				g.AddEdge(e[0], e[1])
			}

			order, err := g.TopologicalSort()
			if err != nil {
				t.Fatalf("TopologicalSort() error = %v", err)
			}
			if len(order) != g.Len() {
				t.Fatalf("len(order) = %d, want %d", len(order), g.Len())
			}
			pos := positions(order)
			if len(pos) != len(order) {
				t.Fatalf("order %v contains duplicates", order)
			}
			for _, e := range g.Edges() {
				if pos[e.From] >= pos[e.To] {
					t.Errorf("edge %s->%s violated by order %v", e.From, e.To, order)
				}
			}
		})
	}
}

func TestTopologicalSortInsertionTieBreak(t *testing.T) {
	g := New[string]()
	g.AddNode("c")
	g.AddNode("a")
	g.AddNode("b")

	order, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("TopologicalSort() error = %v", err)
	}
	if !slices.Equal(order, []string{"c", "a", "b"}) {
		t.Errorf("order = %v, want [c a b]", order)
	}
}

func TestTopologicalSortCycle(t *testing.T) {
	g := New[string]()
	g.AddNode("root")
	g.AddEdge("A", "B")
	g.AddEdge("B", "A")
	g.AddEdge("B", "C")

	order, err := g.TopologicalSort()
	if err == nil {
		t.Fatalf("TopologicalSort() = %v, want cycle error", order)
	}
	if order != nil {
		t.Errorf("order = %v, want nil on cycle", order)
	}
	if !errors.Is(err, ErrCycle) {
		t.Errorf("errors.Is(err, ErrCycle) = false for %v", err)
	}

	var cycle *CycleError[string]
	if !errors.As(err, &cycle) {
		t.Fatalf("error %T is not *CycleError[string]", err)
	}
	if !slices.Equal(cycle.Remaining, []string{"A", "B", "C"}) {
		t.Errorf("Remaining = %v, want [A B C]", cycle.Remaining)
	}
}

func TestTopologicalSortDoesNotMutate(t *testing.T) {
	g := New[int]()
	g.AddEdge(1, 2)
	g.AddEdge(2, 3)

	first, err := g.TopologicalSort()
	if err != nil {
		t.Fatal(err)
	}
	second, err := g.TopologicalSort()
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(first, second) {
		t.Errorf("repeated sort differs: %v vs %v", first, second)
	}
	if g.InDegree(3) != 1 {
		t.Errorf("InDegree(3) = %d after sort, want 1", g.InDegree(3))
	}
}

func TestSelfLoopIsCycle(t *testing.T) {
	g := New[string]()
	g.AddEdge("a", "a")

	if _, err := g.TopologicalSort(); !errors.Is(err, ErrCycle) {
		t.Errorf("TopologicalSort() error = %v, want ErrCycle", err)
	}
}
