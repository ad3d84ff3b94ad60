package framegraph

// fusedWalker implements the declaration-order barrier rules: any prior use
// of an alias, read or write, produces a barrier, and the last use is
// overwritten unconditionally. Reads of the same alias are therefore
// serialized. Its rules are never mixed with barrierWalker's.
type fusedWalker struct {
	images  map[ImageAlias]ImageLastUse
	buffers map[BufferAlias]BufferLastUse
}

func newFusedWalker() *fusedWalker {
	return &fusedWalker{
		images:  make(map[ImageAlias]ImageLastUse),
		buffers: make(map[BufferAlias]BufferLastUse),
	}
}

func (w *fusedWalker) visit(d PassDeclaration) PassBarriers {
	var out PassBarriers
	visitImage := func(u ImageUsage) {
		if last, ok := w.images[u.Alias]; ok {
			out.Images = append(out.Images, ImageBarrier{
				Alias:     u.Alias,
				SrcStage:  last.Stage,
				DstStage:  u.Stage,
				SrcAccess: last.Access,
				DstAccess: u.Access,
				OldLayout: last.Layout,
				NewLayout: u.Layout,
				Range:     WholeImage(u.aspect()),
			})
		}
		w.images[u.Alias] = ImageLastUse{Pass: d.ID, Access: u.Access, Stage: u.Stage, Layout: u.Layout}
	}
	visitBuffer := func(u BufferUsage) {
		if last, ok := w.buffers[u.Alias]; ok {
			out.Buffers = append(out.Buffers, BufferBarrier{
				Alias:     u.Alias,
				SrcStage:  last.Stage,
				DstStage:  u.Stage,
				SrcAccess: last.Access,
				DstAccess: u.Access,
				Offset:    u.Offset,
				Size:      u.size(),
			})
		}
		w.buffers[u.Alias] = BufferLastUse{Pass: d.ID, Access: u.Access, Stage: u.Stage}
	}

	for _, u := range d.Info.ImageReads {
		visitImage(u)
	}
	for _, u := range d.Info.ImageWrites {
		visitImage(u)
	}
	for _, u := range d.Info.BufferReads {
		visitBuffer(u)
	}
	for _, u := range d.Info.BufferWrites {
		visitBuffer(u)
	}
	return out
}

// present transitions alias into the presentable layout after the last
// pass. An image never used this frame is transitioned from the default
// state. Like the topological walk, it returns false when the image was
// left in the present state already.
func (w *fusedWalker) present(alias ImageAlias) (ImageBarrier, bool) {
	var last *ImageLastUse
	if lu, ok := w.images[alias]; ok {
		last = &lu
	}
	return BuildImageBarrier(presentPrecursor(alias), last)
}

// GenerateFusedBarriers walks passes in declaration order and attaches to
// each pass a barrier for every alias that an earlier pass already used.
// The first use of an alias in a frame gets no barrier.
//
// This variant does not reorder passes and serializes readers of the same
// alias; FrameGraph uses it under StrategyDeclarationOrder.
func GenerateFusedBarriers(decls []PassDeclaration) BarrierPlan {
	plan, _ := generateFused(decls)
	return plan
}

func generateFused(decls []PassDeclaration) (BarrierPlan, *fusedWalker) {
	w := newFusedWalker()
	plan := make(BarrierPlan, len(decls))
	for _, d := range decls {
		plan[d.ID] = w.visit(d)
	}
	return plan, w
}
