package recording

import "github.com/gogpu/framegraph"

// CommandType identifies the type of a command.
type CommandType uint8

const (
	// Structure commands
	CmdBeginPass       CommandType = iota // Open a pass scope
	CmdEndPass                            // Close a pass scope
	CmdPipelineBarrier                    // Synchronize images and buffers
	CmdMarker                             // Debug label

	// Work commands
	CmdDispatch         // Compute dispatch
	CmdDispatchIndirect // Compute dispatch with arguments from a buffer
	CmdDraw             // Non-indexed draw
	CmdDrawIndirect     // Draw with arguments from a buffer
	CmdCopyBuffer       // Buffer to buffer copy
	CmdCopyImage        // Image to image copy
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdBeginPass:        "BeginPass",
	CmdEndPass:          "EndPass",
	CmdPipelineBarrier:  "PipelineBarrier",
	CmdMarker:           "Marker",
	CmdDispatch:         "Dispatch",
	CmdDispatchIndirect: "DispatchIndirect",
	CmdDraw:             "Draw",
	CmdDrawIndirect:     "DrawIndirect",
	CmdCopyBuffer:       "CopyBuffer",
	CmdCopyImage:        "CopyImage",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// IsWork reports whether the command does GPU work rather than structure or
// synchronization.
func (c CommandType) IsWork() bool {
	return c >= CmdDispatch && int(c) < len(commandTypeNames)
}

// Command is the interface implemented by all command types.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// BarrierRef is a reference to a barrier batch in the resource pool.
// The zero value is a valid reference to the first batch (if any).
type BarrierRef uint32

// InvalidRef is the sentinel value for an invalid reference.
const InvalidRef = ^uint32(0)

// IsValid returns true if the reference is not InvalidRef.
func (r BarrierRef) IsValid() bool {
	return uint32(r) != InvalidRef
}

// --------------------------------------------------------------------------
// Structure Commands
// --------------------------------------------------------------------------

// BeginPassCommand opens the scope of a frame graph pass.
type BeginPassCommand struct {
	Pass framegraph.PassID
}

// Type implements Command.
func (BeginPassCommand) Type() CommandType { return CmdBeginPass }

// EndPassCommand closes the scope opened by the matching BeginPassCommand.
type EndPassCommand struct {
	Pass framegraph.PassID
}

// Type implements Command.
func (EndPassCommand) Type() CommandType { return CmdEndPass }

// PipelineBarrierCommand records one batch of image and buffer barriers.
type PipelineBarrierCommand struct {
	// Barriers references the batch in the resource pool.
	Barriers BarrierRef
}

// Type implements Command.
func (PipelineBarrierCommand) Type() CommandType { return CmdPipelineBarrier }

// MarkerCommand inserts a debug label into the command stream.
type MarkerCommand struct {
	Label string
}

// Type implements Command.
func (MarkerCommand) Type() CommandType { return CmdMarker }

// --------------------------------------------------------------------------
// Work Commands
// --------------------------------------------------------------------------

// DispatchCommand dispatches compute workgroups.
type DispatchCommand struct {
	X, Y, Z uint32
}

// Type implements Command.
func (DispatchCommand) Type() CommandType { return CmdDispatch }

// DispatchIndirectCommand dispatches compute workgroups whose counts are
// read from a buffer.
type DispatchIndirectCommand struct {
	Buffer framegraph.BufferAlias
	Offset uint64
}

// Type implements Command.
func (DispatchIndirectCommand) Type() CommandType { return CmdDispatchIndirect }

// DrawCommand draws non-indexed primitives.
type DrawCommand struct {
	VertexCount   uint32
	InstanceCount uint32
	FirstVertex   uint32
	FirstInstance uint32
}

// Type implements Command.
func (DrawCommand) Type() CommandType { return CmdDraw }

// DrawIndirectCommand draws with arguments read from a buffer.
type DrawIndirectCommand struct {
	Buffer    framegraph.BufferAlias
	Offset    uint64
	DrawCount uint32
}

// Type implements Command.
func (DrawIndirectCommand) Type() CommandType { return CmdDrawIndirect }

// CopyBufferCommand copies Size bytes between two buffers.
type CopyBufferCommand struct {
	Src, Dst framegraph.BufferAlias
	Size     uint64
}

// Type implements Command.
func (CopyBufferCommand) Type() CommandType { return CmdCopyBuffer }

// CopyImageCommand copies one image into another of the same extent.
type CopyImageCommand struct {
	Src, Dst framegraph.ImageAlias
}

// Type implements Command.
func (CopyImageCommand) Type() CommandType { return CmdCopyImage }
