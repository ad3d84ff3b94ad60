package framegraph

import (
	"github.com/gogpu/framegraph/graph"
)

// PassDeclaration pairs a pass id with the usage it declared for one bake.
type PassDeclaration struct {
	ID   PassID
	Info PassGraphInfo
}

// hazard names the dependency class an edge protects against.
type hazard string

const (
	hazardReadAfterWrite  hazard = "read-after-write"
	hazardWriteAfterRead  hazard = "write-after-read"
	hazardWriteAfterWrite hazard = "write-after-write"
)

// hazardTracker follows one resource category (images or buffers) through
// the declarations of a single build.
type hazardTracker[A comparable] struct {
	g              *graph.Directed[PassID]
	lastWriter     map[A]PassID
	pendingReaders map[A][]PassID
}

func newHazardTracker[A comparable](g *graph.Directed[PassID]) *hazardTracker[A] {
	return &hazardTracker[A]{
		g:              g,
		lastWriter:     make(map[A]PassID),
		pendingReaders: make(map[A][]PassID),
	}
}

func (t *hazardTracker[A]) connect(from, to PassID, alias A, h hazard) {
	// A pass that both reads and writes an alias does not depend on itself.
	if from == to {
		return
	}
	if !t.g.HasEdge(from, to) {
		slogger().Debug("framegraph: edge",
			"from", string(from), "to", string(to), "alias", alias, "hazard", string(h))
	}
	t.g.AddEdge(from, to)
}

func (t *hazardTracker[A]) read(alias A, p PassID) {
	if w, ok := t.lastWriter[alias]; ok {
		t.connect(w, p, alias, hazardReadAfterWrite)
	}
	// Readers stay pending until the next writer, which must wait for them.
	t.pendingReaders[alias] = append(t.pendingReaders[alias], p)
}

func (t *hazardTracker[A]) write(alias A, p PassID) {
	for _, r := range t.pendingReaders[alias] {
		t.connect(r, p, alias, hazardWriteAfterRead)
	}
	delete(t.pendingReaders, alias)
	if w, ok := t.lastWriter[alias]; ok {
		t.connect(w, p, alias, hazardWriteAfterWrite)
	}
	t.lastWriter[alias] = p
}

// BuildPassGraph derives the inter-pass dependency graph from the passes'
// declarations, processed in slice order.
//
// Every pass becomes a node. Edges cover read-after-write, write-after-read
// and write-after-write hazards on each alias; two reads of the same alias
// are left unordered. An alias that is only ever read produces no edges and
// is treated as initialized outside the frame.
func BuildPassGraph(decls []PassDeclaration) *graph.Directed[PassID] {
	g := graph.New[PassID]()
	images := newHazardTracker[ImageAlias](g)
	buffers := newHazardTracker[BufferAlias](g)

	for _, d := range decls {
		g.AddNode(d.ID)
		for _, u := range d.Info.ImageReads {
			images.read(u.Alias, d.ID)
		}
		for _, u := range d.Info.BufferReads {
			buffers.read(u.Alias, d.ID)
		}
		for _, u := range d.Info.ImageWrites {
			images.write(u.Alias, d.ID)
		}
		for _, u := range d.Info.BufferWrites {
			buffers.write(u.Alias, d.ID)
		}
	}
	return g
}
