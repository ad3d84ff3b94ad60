// Package trace provides a text backend for the recording system.
// It writes one line per command, indented by pass scope, which makes
// frame recordings easy to diff in tests and to read in logs.
//
// # Example
//
//	// Import to register the backend
//	import _ "github.com/gogpu/framegraph/recording/backends/trace"
//
//	backend, _ := recording.NewBackend("trace")
//	r.Playback(backend)
//	backend.(recording.WriterBackend).WriteTo(os.Stdout)
//
// Output looks like:
//
//	frame 7
//	  barrier buffer IndirectCommand top_of_pipe/none -> compute_shader/shader_write [0, whole)
//	  pass Culling
//	    dispatch 64 1 1
//	  end Culling
//	end frame 7
package trace

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gogpu/framegraph"
	"github.com/gogpu/framegraph/recording"
)

func init() {
	recording.Register(recording.BackendInfo{
		Name:    "trace",
		Output:  recording.OutputText,
		Summary: "indented text trace of passes, barriers and work",
	}, func(*recording.BackendConfig) (recording.Backend, error) {
		return NewBackend(), nil
	})
}

// Backend renders recordings as indented text.
// It implements recording.Backend, recording.WriterBackend and
// recording.FileBackend.
type Backend struct {
	buf   bytes.Buffer
	frame uint64
	depth int
	lines int
}

// Ensure Backend implements all required interfaces.
var (
	_ recording.Backend       = (*Backend)(nil)
	_ recording.WriterBackend = (*Backend)(nil)
	_ recording.FileBackend   = (*Backend)(nil)
)

// NewBackend creates a new trace backend.
func NewBackend() *Backend {
	return &Backend{}
}

// Begin starts a new trace, discarding any previous output.
func (b *Backend) Begin(frame uint64) error {
	b.buf.Reset()
	b.frame = frame
	b.depth = 0
	b.lines = 0
	b.line("frame %d", frame)
	b.depth = 1
	return nil
}

// End closes the trace.
func (b *Backend) End() error {
	b.depth = 0
	b.line("end frame %d", b.frame)
	return nil
}

// BeginPass writes the pass header and indents what follows.
func (b *Backend) BeginPass(id framegraph.PassID) {
	b.line("pass %s", id)
	b.depth++
}

// EndPass dedents and writes the pass footer.
func (b *Backend) EndPass(id framegraph.PassID) {
	if b.depth > 1 {
		b.depth--
	}
	b.line("end %s", id)
}

// PipelineBarrier writes one line per barrier.
func (b *Backend) PipelineBarrier(images []framegraph.ImageBarrier, buffers []framegraph.BufferBarrier) {
	for _, ib := range images {
		b.line("barrier image %s %s/%s -> %s/%s %s -> %s",
			ib.Alias, ib.SrcStage, ib.SrcAccess, ib.DstStage, ib.DstAccess, ib.OldLayout, ib.NewLayout)
	}
	for _, bb := range buffers {
		b.line("barrier buffer %s %s/%s -> %s/%s %s",
			bb.Alias, bb.SrcStage, bb.SrcAccess, bb.DstStage, bb.DstAccess, formatRange(bb.Offset, bb.Size))
	}
}

// Marker writes a quoted label.
func (b *Backend) Marker(label string) {
	b.line("marker %q", label)
}

// Dispatch writes the workgroup counts.
func (b *Backend) Dispatch(x, y, z uint32) {
	b.line("dispatch %d %d %d", x, y, z)
}

// DispatchIndirect writes the argument buffer and offset.
func (b *Backend) DispatchIndirect(buffer framegraph.BufferAlias, offset uint64) {
	b.line("dispatch_indirect %s+%d", buffer, offset)
}

// Draw writes the vertex and instance ranges.
func (b *Backend) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	b.line("draw vertices %d+%d instances %d+%d", firstVertex, vertexCount, firstInstance, instanceCount)
}

// DrawIndirect writes the argument buffer, offset and draw count.
func (b *Backend) DrawIndirect(buffer framegraph.BufferAlias, offset uint64, drawCount uint32) {
	b.line("draw_indirect %s+%d x%d", buffer, offset, drawCount)
}

// CopyBuffer writes the copy source, destination and size.
func (b *Backend) CopyBuffer(src, dst framegraph.BufferAlias, size uint64) {
	b.line("copy_buffer %s -> %s %d bytes", src, dst, size)
}

// CopyImage writes the copy source and destination.
func (b *Backend) CopyImage(src, dst framegraph.ImageAlias) {
	b.line("copy_image %s -> %s", src, dst)
}

// String returns the trace written so far.
func (b *Backend) String() string {
	return b.buf.String()
}

// Lines returns the number of lines written.
func (b *Backend) Lines() int {
	return b.lines
}

// WriteTo writes the trace to w.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.buf.Bytes())
	return int64(n), err
}

// SaveToFile writes the trace to a file.
func (b *Backend) SaveToFile(path string) error {
	return os.WriteFile(path, b.buf.Bytes(), 0o644)
}

func (b *Backend) line(format string, args ...any) {
	b.buf.WriteString(strings.Repeat("  ", b.depth))
	fmt.Fprintf(&b.buf, format, args...)
	b.buf.WriteByte('\n')
	b.lines++
}

func formatRange(offset, size uint64) string {
	if size == framegraph.WholeSize {
		return fmt.Sprintf("[%d, whole)", offset)
	}
	return fmt.Sprintf("[%d, %d)", offset, offset+size)
}
