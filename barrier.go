package framegraph

// RemainingMipLevels and RemainingArrayLayers select everything from the
// base level or layer to the end of the image.
const (
	RemainingMipLevels   = ^uint32(0)
	RemainingArrayLayers = ^uint32(0)
)

// Default prior state of a resource on its first use in a frame.
const (
	DefaultAccess = AccessNone
	DefaultStage  = StageTopOfPipe
	DefaultLayout = LayoutUndefined
)

// SubresourceRange selects the part of an image a barrier applies to.
// The frame graph always emits whole-image ranges.
type SubresourceRange struct {
	Aspect         ImageAspect
	BaseMipLevel   uint32
	LevelCount     uint32
	BaseArrayLayer uint32
	LayerCount     uint32
}

// WholeImage returns the range covering every level and layer of aspect.
func WholeImage(aspect ImageAspect) SubresourceRange {
	return SubresourceRange{
		Aspect:     aspect,
		LevelCount: RemainingMipLevels,
		LayerCount: RemainingArrayLayers,
	}
}

// ImageBarrier orders an image's prior use before its next use and
// transitions its layout.
type ImageBarrier struct {
	Alias     ImageAlias
	SrcStage  StageFlags
	DstStage  StageFlags
	SrcAccess AccessFlags
	DstAccess AccessFlags
	OldLayout ImageLayout
	NewLayout ImageLayout
	Range     SubresourceRange
}

// BufferBarrier orders a buffer's prior use before its next use.
type BufferBarrier struct {
	Alias     BufferAlias
	SrcStage  StageFlags
	DstStage  StageFlags
	SrcAccess AccessFlags
	DstAccess AccessFlags
	Offset    uint64
	Size      uint64
}

// ImageLastUse is the most recent state an image was left in during a walk.
type ImageLastUse struct {
	Pass   PassID
	Access AccessFlags
	Stage  StageFlags
	Layout ImageLayout
}

// BufferLastUse is the most recent state a buffer was left in during a walk.
type BufferLastUse struct {
	Pass   PassID
	Access AccessFlags
	Stage  StageFlags
}

// BuildImageBarrier returns the barrier needed to move an image from its
// last use to the state p requires. A nil last means the image has not been
// used yet this frame and starts from DefaultAccess, DefaultStage and
// DefaultLayout.
//
// It returns false when no barrier is needed: the prior and requested
// (stage, access, layout) are identical. Calling it again with the same
// inputs gives the same answer.
func BuildImageBarrier(p ImagePrecursor, last *ImageLastUse) (ImageBarrier, bool) {
	src := ImageLastUse{Access: DefaultAccess, Stage: DefaultStage, Layout: DefaultLayout}
	if last != nil {
		src = *last
	}
	same := src.Stage == p.Stage && src.Access == p.Access && src.Layout == p.Layout
	if same {
		return ImageBarrier{}, false
	}
	aspect := p.Aspect
	if aspect == 0 {
		aspect = AspectColor
	}
	return ImageBarrier{
		Alias:     p.Alias,
		SrcStage:  src.Stage,
		DstStage:  p.Stage,
		SrcAccess: src.Access,
		DstAccess: p.Access,
		OldLayout: src.Layout,
		NewLayout: p.Layout,
		Range:     WholeImage(aspect),
	}, true
}

// BuildBufferBarrier is the buffer counterpart of BuildImageBarrier.
// Buffers have no layout, so only stage and access are compared.
func BuildBufferBarrier(p BufferPrecursor, last *BufferLastUse) (BufferBarrier, bool) {
	src := BufferLastUse{Access: DefaultAccess, Stage: DefaultStage}
	if last != nil {
		src = *last
	}
	same := src.Stage == p.Stage && src.Access == p.Access
	if same {
		return BufferBarrier{}, false
	}
	size := p.Size
	if size == 0 {
		size = WholeSize
	}
	return BufferBarrier{
		Alias:     p.Alias,
		SrcStage:  src.Stage,
		DstStage:  p.Stage,
		SrcAccess: src.Access,
		DstAccess: p.Access,
		Offset:    p.Offset,
		Size:      size,
	}, true
}

// PassBarriers holds the barriers recorded before one pass.
type PassBarriers struct {
	Images  []ImageBarrier
	Buffers []BufferBarrier
}

// Len returns the total number of barriers.
func (b PassBarriers) Len() int { return len(b.Images) + len(b.Buffers) }

// BarrierPlan maps each pass to the barriers recorded before it.
type BarrierPlan map[PassID]PassBarriers

// barrierWalker resolves precursors into barriers along one pass order.
// It owns the last-use tables for a single walk and is discarded after it.
type barrierWalker struct {
	images  map[ImageAlias]ImageLastUse
	buffers map[BufferAlias]BufferLastUse
}

func newBarrierWalker() *barrierWalker {
	return &barrierWalker{
		images:  make(map[ImageAlias]ImageLastUse),
		buffers: make(map[BufferAlias]BufferLastUse),
	}
}

// resolve builds the barriers for one pass and records the pass as the
// last user of every alias it touches.
func (w *barrierWalker) resolve(id PassID, pre PassPrecursors) PassBarriers {
	var out PassBarriers
	for _, p := range pre.Images {
		var last *ImageLastUse
		if lu, ok := w.images[p.Alias]; ok {
			last = &lu
		}
		if b, ok := BuildImageBarrier(p, last); ok {
			out.Images = append(out.Images, b)
		} else {
			slogger().Debug("framegraph: barrier elided", "pass", string(id), "image", p.Alias, "layout", p.Layout)
		}
		w.images[p.Alias] = ImageLastUse{Pass: id, Access: p.Access, Stage: p.Stage, Layout: p.Layout}
	}
	for _, p := range pre.Buffers {
		var last *BufferLastUse
		if lu, ok := w.buffers[p.Alias]; ok {
			last = &lu
		}
		if b, ok := BuildBufferBarrier(p, last); ok {
			out.Buffers = append(out.Buffers, b)
		} else {
			slogger().Debug("framegraph: barrier elided", "pass", string(id), "buffer", p.Alias)
		}
		w.buffers[p.Alias] = BufferLastUse{Pass: id, Access: p.Access, Stage: p.Stage}
	}
	return out
}

// present builds the terminal transition of alias into the presentable
// layout. It returns false if the image is already presentable.
func (w *barrierWalker) present(alias ImageAlias) (ImageBarrier, bool) {
	var last *ImageLastUse
	if lu, ok := w.images[alias]; ok {
		last = &lu
	}
	return BuildImageBarrier(presentPrecursor(alias), last)
}

func presentPrecursor(alias ImageAlias) ImagePrecursor {
	return ImagePrecursor{
		Alias:  alias,
		Mode:   AccessRead,
		Access: AccessNone,
		Stage:  StageBottomOfPipe,
		Layout: LayoutPresentSrc,
		Aspect: AspectColor,
	}
}
