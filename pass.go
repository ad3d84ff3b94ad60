package framegraph

// PassID identifies a pass within a frame graph.
type PassID string

// FrameContext is handed to every pass while a frame is executed.
type FrameContext struct {
	// Frame is the caller's frame counter.
	Frame uint64

	// Data carries renderer-specific per-frame state (camera, draw lists).
	// The frame graph never inspects it.
	Data any
}

// CommandRecorder receives the barriers the frame graph inserts before each
// pass. Passes record their own work into the same recorder; concrete
// recorders expose whatever draw/dispatch API their backend supports.
type CommandRecorder interface {
	PipelineBarrier(images []ImageBarrier, buffers []BufferBarrier)
}

// PassMarker is optionally implemented by a CommandRecorder that wants to
// delimit each pass in the command stream (debug labels, timestamps).
type PassMarker interface {
	BeginPass(id PassID)
	EndPass(id PassID)
}

// Pass is one unit of GPU work executed once per frame.
//
// GraphInfo must be pure: it is called during Bake and must return the
// same declarations for as long as the bake is in use. Execute is called
// once per frame after the pass's barriers have been recorded.
type Pass interface {
	ID() PassID
	GraphInfo() PassGraphInfo
	Execute(frame *FrameContext, cmd CommandRecorder)
}

// RecordFunc records a pass's work for one frame.
type RecordFunc func(frame *FrameContext, cmd CommandRecorder)

// funcPass adapts an id, a fixed PassGraphInfo and a RecordFunc to Pass.
type funcPass struct {
	id     PassID
	info   PassGraphInfo
	record RecordFunc
}

// NewPass returns a Pass with a fixed resource declaration. A nil record
// function records nothing.
func NewPass(id PassID, info PassGraphInfo, record RecordFunc) Pass {
	return &funcPass{id: id, info: info, record: record}
}

func (p *funcPass) ID() PassID { return p.id }

func (p *funcPass) GraphInfo() PassGraphInfo { return p.info }

func (p *funcPass) Execute(frame *FrameContext, cmd CommandRecorder) {
	if p.record != nil {
		p.record(frame, cmd)
	}
}
