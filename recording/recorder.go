package recording

import (
	"errors"
	"fmt"

	"github.com/gogpu/framegraph"
)

// ErrUnbalancedPass is returned when pass scopes in a recording do not nest:
// an EndPass without a matching BeginPass, a BeginPass inside another pass,
// or a pass left open at the end of the frame.
var ErrUnbalancedPass = errors.New("recording: unbalanced pass scope")

// Recorder captures one frame's commands. It implements
// framegraph.CommandRecorder and framegraph.PassMarker, so it can be handed
// straight to FrameGraph.Execute; passes type-assert it to record their own
// work. Use FinishRecording to obtain an immutable Recording that can be
// replayed to different backends.
//
// Example:
//
//	rec := recording.NewRecorder(frame)
//	if _, err := fg.Execute(framegraph.FrameContext{Frame: frame}, rec); err != nil {
//	    return err
//	}
//	r := rec.FinishRecording()
//	err := r.Playback(backend)
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	frame     uint64
	commands  []Command
	resources *ResourcePool
	current   framegraph.PassID
	open      bool
}

// Compile-time interface checks.
var (
	_ framegraph.CommandRecorder = (*Recorder)(nil)
	_ framegraph.PassMarker      = (*Recorder)(nil)
)

// NewRecorder creates a new Recorder for the given frame.
func NewRecorder(frame uint64) *Recorder {
	return &Recorder{
		frame:     frame,
		commands:  make([]Command, 0, 64),
		resources: NewResourcePool(),
	}
}

// Frame returns the frame being recorded.
func (r *Recorder) Frame() uint64 {
	return r.frame
}

// CurrentPass returns the pass whose scope is open, if any.
func (r *Recorder) CurrentPass() (framegraph.PassID, bool) {
	return r.current, r.open
}

// Len returns the number of commands recorded so far.
func (r *Recorder) Len() int {
	return len(r.commands)
}

// FinishRecording returns an immutable Recording containing all recorded commands.
// After calling FinishRecording, the Recorder should not be used again.
func (r *Recorder) FinishRecording() *Recording {
	return &Recording{
		frame:     r.frame,
		commands:  r.commands,
		resources: r.resources,
	}
}

// Reset clears the recorder for reuse with another frame.
func (r *Recorder) Reset(frame uint64) {
	r.frame = frame
	r.commands = make([]Command, 0, cap(r.commands))
	r.resources = NewResourcePool()
	r.current = ""
	r.open = false
}

// PipelineBarrier records a barrier batch. Empty batches are dropped.
func (r *Recorder) PipelineBarrier(images []framegraph.ImageBarrier, buffers []framegraph.BufferBarrier) {
	if len(images) == 0 && len(buffers) == 0 {
		return
	}
	ref := r.resources.AddBarriers(images, buffers)
	r.commands = append(r.commands, PipelineBarrierCommand{Barriers: ref})
}

// BeginPass opens the scope of a pass.
func (r *Recorder) BeginPass(id framegraph.PassID) {
	r.current = id
	r.open = true
	r.commands = append(r.commands, BeginPassCommand{Pass: id})
}

// EndPass closes the scope of a pass.
func (r *Recorder) EndPass(id framegraph.PassID) {
	r.current = ""
	r.open = false
	r.commands = append(r.commands, EndPassCommand{Pass: id})
}

// Marker inserts a debug label.
func (r *Recorder) Marker(label string) {
	r.commands = append(r.commands, MarkerCommand{Label: label})
}

// Dispatch records a compute dispatch.
func (r *Recorder) Dispatch(x, y, z uint32) {
	r.commands = append(r.commands, DispatchCommand{X: x, Y: y, Z: z})
}

// DispatchIndirect records a compute dispatch reading its counts from buffer.
func (r *Recorder) DispatchIndirect(buffer framegraph.BufferAlias, offset uint64) {
	r.commands = append(r.commands, DispatchIndirectCommand{Buffer: buffer, Offset: offset})
}

// Draw records a non-indexed draw.
func (r *Recorder) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	r.commands = append(r.commands, DrawCommand{
		VertexCount:   vertexCount,
		InstanceCount: instanceCount,
		FirstVertex:   firstVertex,
		FirstInstance: firstInstance,
	})
}

// DrawIndirect records a draw reading its arguments from buffer.
func (r *Recorder) DrawIndirect(buffer framegraph.BufferAlias, offset uint64, drawCount uint32) {
	r.commands = append(r.commands, DrawIndirectCommand{Buffer: buffer, Offset: offset, DrawCount: drawCount})
}

// CopyBuffer records a buffer copy.
func (r *Recorder) CopyBuffer(src, dst framegraph.BufferAlias, size uint64) {
	r.commands = append(r.commands, CopyBufferCommand{Src: src, Dst: dst, Size: size})
}

// CopyImage records an image copy.
func (r *Recorder) CopyImage(src, dst framegraph.ImageAlias) {
	r.commands = append(r.commands, CopyImageCommand{Src: src, Dst: dst})
}

// Recording is an immutable container for one frame's commands.
// It can be replayed to any Backend implementation.
type Recording struct {
	frame     uint64
	commands  []Command
	resources *ResourcePool
}

// Frame returns the recorded frame number.
func (r *Recording) Frame() uint64 {
	return r.frame
}

// Commands returns the recorded commands.
func (r *Recording) Commands() []Command {
	return r.commands
}

// Resources returns the resource pool.
func (r *Recording) Resources() *ResourcePool {
	return r.resources
}

// Len returns the number of commands.
func (r *Recording) Len() int {
	return len(r.commands)
}

// Passes returns the ids of the recorded passes in order.
func (r *Recording) Passes() []framegraph.PassID {
	var out []framegraph.PassID
	for _, cmd := range r.commands {
		if c, ok := cmd.(BeginPassCommand); ok {
			out = append(out, c.Pass)
		}
	}
	return out
}

// Stats summarizes a recording.
type Stats struct {
	Passes   int
	Batches  int
	Barriers int
	Work     int
}

// Stats counts the recording's passes, barrier batches, barriers and work
// commands.
func (r *Recording) Stats() Stats {
	s := Stats{
		Batches:  r.resources.BatchCount(),
		Barriers: r.resources.BarrierCount(),
	}
	for _, cmd := range r.commands {
		switch {
		case cmd.Type() == CmdBeginPass:
			s.Passes++
		case cmd.Type().IsWork():
			s.Work++
		}
	}
	return s
}

// Validate checks that pass scopes are properly nested and closed.
func (r *Recording) Validate() error {
	var open framegraph.PassID
	inPass := false
	for i, cmd := range r.commands {
		switch c := cmd.(type) {
		case BeginPassCommand:
			if inPass {
				return fmt.Errorf("command %d: begin %q inside %q: %w", i, c.Pass, open, ErrUnbalancedPass)
			}
			open, inPass = c.Pass, true
		case EndPassCommand:
			if !inPass || c.Pass != open {
				return fmt.Errorf("command %d: end %q: %w", i, c.Pass, ErrUnbalancedPass)
			}
			inPass = false
		}
	}
	if inPass {
		return fmt.Errorf("pass %q never ended: %w", open, ErrUnbalancedPass)
	}
	return nil
}

// Playback validates the recording and replays it to the given backend.
func (r *Recording) Playback(backend Backend) error {
	if err := r.Validate(); err != nil {
		return err
	}

	// Initialize backend
	if err := backend.Begin(r.frame); err != nil {
		return err
	}

	// Replay each command
	for _, cmd := range r.commands {
		switch c := cmd.(type) {
		case BeginPassCommand:
			backend.BeginPass(c.Pass)
		case EndPassCommand:
			backend.EndPass(c.Pass)
		case PipelineBarrierCommand:
			if b := r.resources.GetBarriers(c.Barriers); b != nil {
				backend.PipelineBarrier(b.Images, b.Buffers)
			}
		case MarkerCommand:
			backend.Marker(c.Label)
		case DispatchCommand:
			backend.Dispatch(c.X, c.Y, c.Z)
		case DispatchIndirectCommand:
			backend.DispatchIndirect(c.Buffer, c.Offset)
		case DrawCommand:
			backend.Draw(c.VertexCount, c.InstanceCount, c.FirstVertex, c.FirstInstance)
		case DrawIndirectCommand:
			backend.DrawIndirect(c.Buffer, c.Offset, c.DrawCount)
		case CopyBufferCommand:
			backend.CopyBuffer(c.Src, c.Dst, c.Size)
		case CopyImageCommand:
			backend.CopyImage(c.Src, c.Dst)
		}
	}

	return backend.End()
}
