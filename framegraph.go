package framegraph

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/gogpu/framegraph/graph"
)

// FrameGraph owns a frame's passes and the plan derived from them.
//
// It has two phases. While unbaked, passes are added with AddPass. Bake
// derives the pass order and barrier precursors once; Execute then replays
// that plan every frame without modifying it. Adding a pass to a baked graph
// leaves the previous plan in use until the caller bakes again.
//
// FrameGraph is not safe for concurrent use. Bake and Execute run to
// completion on the calling goroutine.
type FrameGraph struct {
	opts   options
	passes []Pass
	index  map[PassID]int
	deps   []graph.Edge[PassID]
	plan   *Plan
	stale  bool
}

// Plan is the result of a bake. It is read-only once built.
type Plan struct {
	// ID distinguishes bakes in logs and frame results.
	ID uuid.UUID

	// Strategy is the strategy the plan was built with.
	Strategy Strategy

	// Order is the pass execution order.
	Order []PassID

	// Graph holds the dependency edges between passes.
	Graph *graph.Directed[PassID]

	// Precursors is set under StrategyTopological.
	Precursors PrecursorPlan

	// Barriers is set under StrategyDeclarationOrder.
	Barriers BarrierPlan

	passes  []Pass
	present *ImageBarrier
}

// New creates an empty, unbaked frame graph.
func New(opts ...Option) *FrameGraph {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.aliases == nil {
		o.aliases = DefaultAliasRegistry()
	}
	return &FrameGraph{
		opts:  o,
		index: make(map[PassID]int),
	}
}

// Strategy returns the configured strategy.
func (fg *FrameGraph) Strategy() Strategy { return fg.opts.strategy }

// PresentImage returns the alias transitioned for presentation at the end
// of each frame, if one was configured.
func (fg *FrameGraph) PresentImage() (ImageAlias, bool) {
	return fg.opts.present, fg.opts.hasPresent
}

// Aliases returns the alias registry passes are validated against.
func (fg *FrameGraph) Aliases() *AliasRegistry { return fg.opts.aliases }

// AddPass appends a pass. Pass ids must be unique.
func (fg *FrameGraph) AddPass(p Pass) error {
	if p == nil {
		return ErrNilPass
	}
	id := p.ID()
	if _, dup := fg.index[id]; dup {
		return fmt.Errorf("add pass %q: %w", id, ErrDuplicatePass)
	}
	fg.index[id] = len(fg.passes)
	fg.passes = append(fg.passes, p)
	fg.invalidate("pass added after bake, re-bake required", "pass", string(id))
	return nil
}

// AddDependency orders pass after behind pass before even when they share
// no resource. Both ids are resolved at bake time; an unknown id fails the
// bake with ErrUnknownPass and a dependency that closes a loop with the
// resource edges fails it with ErrCycle.
func (fg *FrameGraph) AddDependency(before, after PassID) {
	fg.deps = append(fg.deps, graph.Edge[PassID]{From: before, To: after})
	fg.invalidate("dependency added after bake, re-bake required",
		"before", string(before), "after", string(after))
}

// Dependencies returns the explicit dependencies in the order they were added.
func (fg *FrameGraph) Dependencies() []graph.Edge[PassID] {
	out := make([]graph.Edge[PassID], len(fg.deps))
	copy(out, fg.deps)
	return out
}

func (fg *FrameGraph) invalidate(msg string, args ...any) {
	if fg.plan == nil || fg.stale {
		return
	}
	fg.stale = true
	slogger().Warn("framegraph: "+msg, append(args, "plan", fg.plan.ID.String())...)
}

// Pass returns the pass with the given id.
func (fg *FrameGraph) Pass(id PassID) (Pass, error) {
	i, ok := fg.index[id]
	if !ok {
		return nil, fmt.Errorf("pass %q: %w", id, ErrUnknownPass)
	}
	return fg.passes[i], nil
}

// Passes returns the passes in the order they were added.
func (fg *FrameGraph) Passes() []Pass {
	out := make([]Pass, len(fg.passes))
	copy(out, fg.passes)
	return out
}

// Len returns the number of passes.
func (fg *FrameGraph) Len() int { return len(fg.passes) }

// Baked reports whether a plan exists and no pass was added since.
func (fg *FrameGraph) Baked() bool { return fg.plan != nil && !fg.stale }

// Plan returns the current plan, or nil before the first successful bake.
func (fg *FrameGraph) Plan() *Plan { return fg.plan }

// declarations snapshots every pass's GraphInfo in declaration order.
func (fg *FrameGraph) declarations() ([]PassDeclaration, error) {
	decls := make([]PassDeclaration, len(fg.passes))
	for i, p := range fg.passes {
		info := p.GraphInfo()
		if err := fg.opts.aliases.Check(info); err != nil {
			return nil, fmt.Errorf("pass %q: %w", p.ID(), err)
		}
		decls[i] = PassDeclaration{ID: p.ID(), Info: info}
	}
	return decls, nil
}

// Bake derives the execution order and barrier plan from the current
// passes. On failure the frame graph is left without a plan; a cycle is
// reported as an error wrapping ErrCycle.
func (fg *FrameGraph) Bake() error {
	fg.plan = nil
	fg.stale = false

	if !fg.opts.strategy.Valid() {
		return fmt.Errorf("bake: %v: %w", fg.opts.strategy, ErrInvalidStrategy)
	}

	decls, err := fg.declarations()
	if err != nil {
		return fmt.Errorf("bake: %w", err)
	}

	plan := &Plan{
		ID:       uuid.New(),
		Strategy: fg.opts.strategy,
		Graph:    BuildPassGraph(decls),
	}
	for _, e := range fg.deps {
		for _, id := range [2]PassID{e.From, e.To} {
			if _, ok := fg.index[id]; !ok {
				return fmt.Errorf("bake: dependency %s->%s: pass %q: %w", e.From, e.To, id, ErrUnknownPass)
			}
		}
		plan.Graph.AddEdge(e.From, e.To)
	}

	switch fg.opts.strategy {
	case StrategyDeclarationOrder:
		if _, err := plan.Graph.TopologicalSort(); err != nil {
			return fmt.Errorf("bake: %w", err)
		}
		for _, e := range fg.deps {
			if fg.index[e.From] > fg.index[e.To] {
				return fmt.Errorf("bake: dependency %s->%s: %w", e.From, e.To, ErrDependencyOrder)
			}
		}
		plan.Order = make([]PassID, len(decls))
		for i, d := range decls {
			plan.Order[i] = d.ID
		}
		barriers, w := generateFused(decls)
		plan.Barriers = barriers
		if fg.opts.hasPresent {
			if b, ok := w.present(fg.opts.present); ok {
				plan.present = &b
			}
		}
	case StrategyTopological:
		order, err := plan.Graph.TopologicalSort()
		if err != nil {
			return fmt.Errorf("bake: %w", err)
		}
		infos := make(map[PassID]PassGraphInfo, len(decls))
		for _, d := range decls {
			infos[d.ID] = d.Info
		}
		precursors, err := GeneratePrecursors(order, infos)
		if err != nil {
			return fmt.Errorf("bake: %w", err)
		}
		plan.Order = order
		plan.Precursors = precursors
	}

	plan.passes = make([]Pass, len(plan.Order))
	for i, id := range plan.Order {
		plan.passes[i] = fg.passes[fg.index[id]]
	}

	fg.plan = plan
	slogger().Info("framegraph: baked",
		"plan", plan.ID.String(),
		"strategy", plan.Strategy.String(),
		"passes", len(plan.Order),
		"edges", plan.Graph.EdgeCount())
	return nil
}

// PassRecord is what Execute recorded for one pass.
type PassRecord struct {
	ID       PassID
	Barriers PassBarriers
}

// FrameResult describes one executed frame. The commands themselves live
// in the CommandRecorder passed to Execute.
type FrameResult struct {
	PlanID uuid.UUID
	Frame  uint64
	Passes []PassRecord

	// Present is the terminal transition of the present image, or nil when
	// none was configured or needed.
	Present *ImageBarrier
}

// Order returns the executed pass ids.
func (r *FrameResult) Order() []PassID {
	out := make([]PassID, len(r.Passes))
	for i, p := range r.Passes {
		out[i] = p.ID
	}
	return out
}

// BarrierCount returns the number of barriers recorded in the frame,
// including the present transition.
func (r *FrameResult) BarrierCount() int {
	n := 0
	for _, p := range r.Passes {
		n += p.Barriers.Len()
	}
	if r.Present != nil {
		n++
	}
	return n
}

// Execute records one frame into cmd: for every pass in plan order it
// records the pass's barriers, then lets the pass record its own work.
// If a present image is configured, its transition to LayoutPresentSrc is
// recorded last. Execute does not modify the plan.
func (fg *FrameGraph) Execute(frame FrameContext, cmd CommandRecorder) (*FrameResult, error) {
	plan := fg.plan
	if plan == nil {
		return nil, ErrNotBaked
	}

	res := &FrameResult{
		PlanID: plan.ID,
		Frame:  frame.Frame,
		Passes: make([]PassRecord, 0, len(plan.Order)),
	}
	marker, _ := cmd.(PassMarker)

	var walker *barrierWalker
	if plan.Precursors != nil {
		walker = newBarrierWalker()
	}

	for i, id := range plan.Order {
		var barriers PassBarriers
		if walker != nil {
			barriers = walker.resolve(id, plan.Precursors[id])
		} else {
			barriers = plan.Barriers[id]
		}
		if barriers.Len() > 0 {
			cmd.PipelineBarrier(barriers.Images, barriers.Buffers)
		}
		slogger().Debug("framegraph: pass barriers",
			"frame", frame.Frame, "pass", string(id),
			"images", len(barriers.Images), "buffers", len(barriers.Buffers))

		if marker != nil {
			marker.BeginPass(id)
		}
		plan.passes[i].Execute(&frame, cmd)
		if marker != nil {
			marker.EndPass(id)
		}
		res.Passes = append(res.Passes, PassRecord{ID: id, Barriers: barriers})
	}

	if fg.opts.hasPresent {
		var b ImageBarrier
		ok := true
		if walker != nil {
			b, ok = walker.present(fg.opts.present)
		} else if plan.present != nil {
			b = *plan.present
		} else {
			ok = false
		}
		if ok {
			cmd.PipelineBarrier([]ImageBarrier{b}, nil)
			res.Present = &b
		}
	}
	return res, nil
}
