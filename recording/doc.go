// Package recording captures the commands of one frame so they can be
// inspected, validated and replayed to different backends.
//
// # Architecture
//
// The system follows a Command Pattern with three main components:
//
//   - Recorder: captures a frame's commands; it is the
//     framegraph.CommandRecorder handed to FrameGraph.Execute
//   - Recording: stores commands and barrier batches for playback
//   - Backend: translates commands to a specific target
//
// # Basic Usage
//
//	rec := recording.NewRecorder(frame)
//	if _, err := fg.Execute(framegraph.FrameContext{Frame: frame}, rec); err != nil {
//	    return err
//	}
//	r := rec.FinishRecording()
//
// Passes record their work by asserting the recorder they are given:
//
//	func(frame *framegraph.FrameContext, cmd framegraph.CommandRecorder) {
//	    rec := cmd.(*recording.Recorder)
//	    rec.Dispatch(groups, 1, 1)
//	}
//
// # Playback to Backends
//
//	// Human-readable command trace
//	import _ "github.com/gogpu/framegraph/recording/backends/trace"
//
//	tb, _ := recording.NewBackend("trace")
//	r.Playback(tb)
//	tb.(recording.WriterBackend).WriteTo(os.Stdout)
//
//	// Timeline image of passes and barriers
//	import _ "github.com/gogpu/framegraph/recording/backends/timeline"
//
//	ib, _ := recording.NewBackend("timeline")
//	r.Playback(ib)
//	ib.(recording.FileBackend).SaveToFile("frame.png")
//
// The hal backend translates barriers into wgpu HAL texture and buffer
// transitions. It needs an encoder and a resolver for the physical
// resources, passed as backend options:
//
//	import "github.com/gogpu/framegraph/recording/backends/hal"
//
//	hb, err := recording.NewBackend("hal", hal.WithEncoder(enc), hal.WithResolver(table))
//
// # Backend Registration
//
// Backends are registered using the database/sql driver pattern. Import a
// backend package with a blank identifier to automatically register it.
// Backends lists what is registered, with each backend's Output kind.
//
// # Resource Management
//
// Barrier batches are copied into a ResourcePool and referenced from
// PipelineBarrierCommand by BarrierRef, so a Recording never aliases the
// slices the frame graph passed in.
//
// # Thread Safety
//
// Recorder and Recording are not safe for concurrent use. The backend
// registry is safe for concurrent use.
package recording
