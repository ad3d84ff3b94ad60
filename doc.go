// Package framegraph schedules a frame's GPU passes and synthesizes the
// synchronization barriers between them.
//
// # Overview
//
// Each pass declares which logical images and buffers (aliases) it reads
// and writes, and in what state (access, pipeline stage, image layout).
// From these purely local declarations the frame graph derives:
//
//   - a pass execution order consistent with every data dependency,
//   - an error when no such order exists (a dependency cycle),
//   - the barriers to record before each pass so that a resource is never
//     consumed before its last producer finished, and is not synchronized
//     again when it is already in the requested state.
//
// # Quick Start
//
//	fg := framegraph.New(framegraph.WithPresentImage(framegraph.ImageSwapchain))
//
//	fg.AddPass(framegraph.NewPass("Forward",
//	    framegraph.PassGraphInfo{}.WriteImage(framegraph.ImageGeometryColor,
//	        framegraph.AccessColorAttachmentWrite,
//	        framegraph.StageColorAttachmentOutput,
//	        framegraph.LayoutColorAttachment),
//	    recordForward))
//
//	if err := fg.Bake(); err != nil {
//	    // framegraph.KindOf(err) == framegraph.KindCycle for cycles
//	}
//
//	rec := recording.NewRecorder(frame)
//	result, err := fg.Execute(framegraph.FrameContext{Frame: frame}, rec)
//
// # Phases
//
// Bake runs once per structural change: it builds the dependency graph
// (BuildPassGraph), sorts it topologically and expands every pass's
// declarations into barrier precursors (GeneratePrecursors). Execute runs
// every frame: it walks the cached order, turns precursors into concrete
// barriers with BuildImageBarrier and BuildBufferBarrier, records them,
// and hands the recorder to the pass.
//
// StrategyDeclarationOrder selects the simpler single-pass variant
// (GenerateFusedBarriers), which keeps declaration order and serializes
// every reuse of an alias.
//
// # Explicit Dependencies
//
// Resource hazards only ever order a pass after an earlier declaration.
// AddDependency adds an ordering constraint between passes that share no
// resource; it is the only way a frame graph can contain a cycle.
//
// Package config builds frame graphs from HCL or YAML descriptions.
//
// # Default State
//
// A resource's first use in a frame is synchronized against DefaultAccess,
// DefaultStage and DefaultLayout (no access, top of pipe, undefined
// layout). Cross-frame synchronization is the caller's responsibility.
//
// # Concurrency
//
// Nothing in this package spawns goroutines. A FrameGraph must not be used
// from multiple goroutines at once; independent frame graphs share no
// state besides the package logger.
package framegraph
