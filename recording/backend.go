package recording

import (
	"image"
	"io"

	"github.com/gogpu/framegraph"
)

// Backend is the interface that all playback backends must implement.
// Backends receive a frame's commands in recording order and translate them
// to their target: a GPU command encoder, a text trace, a timeline image.
//
// Backends are created via the registry using NewBackend(name, opts...)
// and registered via Register() in their init() functions.
//
// # Implementation Contract
//
// Each backend must:
//  1. Register in init() using recording.Register()
//  2. Handle all Backend methods (even if no-op for some)
//  3. Report translation failures from End, not by panicking
//
// # Example Backend Registration
//
//	func init() {
//	    recording.Register(recording.BackendInfo{Name: "trace", Output: recording.OutputText},
//	        func(*recording.BackendConfig) (recording.Backend, error) {
//	            return NewBackend(), nil
//	        })
//	}
type Backend interface {
	// Lifecycle methods

	// Begin prepares the backend for the given frame.
	// This must be called before any other method.
	Begin(frame uint64) error

	// End finalizes the frame. It returns the first error any earlier
	// method ran into. After End, output methods (WriteTo, SaveToFile)
	// can be used.
	End() error

	// Structure methods

	// BeginPass opens the scope of a pass.
	BeginPass(id framegraph.PassID)

	// EndPass closes the scope of a pass.
	EndPass(id framegraph.PassID)

	// PipelineBarrier records one batch of barriers.
	PipelineBarrier(images []framegraph.ImageBarrier, buffers []framegraph.BufferBarrier)

	// Marker inserts a debug label.
	Marker(label string)

	// Work methods

	// Dispatch dispatches compute workgroups.
	Dispatch(x, y, z uint32)

	// DispatchIndirect dispatches with counts read from buffer at offset.
	DispatchIndirect(buffer framegraph.BufferAlias, offset uint64)

	// Draw draws non-indexed primitives.
	Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32)

	// DrawIndirect draws with arguments read from buffer at offset.
	DrawIndirect(buffer framegraph.BufferAlias, offset uint64, drawCount uint32)

	// CopyBuffer copies size bytes from src to dst.
	CopyBuffer(src, dst framegraph.BufferAlias, size uint64)

	// CopyImage copies src into dst.
	CopyImage(src, dst framegraph.ImageAlias)
}

// WriterBackend extends Backend with the ability to write output to an io.Writer.
type WriterBackend interface {
	Backend

	// WriteTo writes the rendered content to the given writer.
	// This should only be called after End().
	WriteTo(w io.Writer) (int64, error)
}

// FileBackend extends Backend with the ability to save output directly to a file.
type FileBackend interface {
	Backend

	// SaveToFile saves the rendered content to a file at the given path.
	// This should only be called after End().
	SaveToFile(path string) error
}

// ImageBackend extends Backend with access to a rendered image.
// This is implemented by the timeline backend.
type ImageBackend interface {
	Backend

	// Image returns the rendered image, or nil before End.
	Image() image.Image
}
