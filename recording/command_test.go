package recording

import (
	"testing"
)

func TestCommandType_String(t *testing.T) {
	tests := []struct {
		ct   CommandType
		want string
	}{
		{CmdBeginPass, "BeginPass"},
		{CmdEndPass, "EndPass"},
		{CmdPipelineBarrier, "PipelineBarrier"},
		{CmdMarker, "Marker"},
		{CmdDispatch, "Dispatch"},
		{CmdDispatchIndirect, "DispatchIndirect"},
		{CmdDraw, "Draw"},
		{CmdDrawIndirect, "DrawIndirect"},
		{CmdCopyBuffer, "CopyBuffer"},
		{CmdCopyImage, "CopyImage"},
		{CommandType(254), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.ct.String(); got != tt.want {
				t.Errorf("CommandType.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCommandType_IsWork(t *testing.T) {
	tests := []struct {
		ct   CommandType
		want bool
	}{
		{CmdBeginPass, false},
		{CmdEndPass, false},
		{CmdPipelineBarrier, false},
		{CmdMarker, false},
		{CmdDispatch, true},
		{CmdDispatchIndirect, true},
		{CmdDraw, true},
		{CmdDrawIndirect, true},
		{CmdCopyBuffer, true},
		{CmdCopyImage, true},
		{CommandType(254), false},
	}
	for _, tt := range tests {
		if got := tt.ct.IsWork(); got != tt.want {
			t.Errorf("%v.IsWork() = %v, want %v", tt.ct, got, tt.want)
		}
	}
}

func TestCommandInterface(t *testing.T) {
	// Every command reports the type it was declared with.
	tests := []struct {
		cmd  Command
		want CommandType
	}{
		{BeginPassCommand{Pass: "Forward"}, CmdBeginPass},
		{EndPassCommand{Pass: "Forward"}, CmdEndPass},
		{PipelineBarrierCommand{Barriers: BarrierRef(0)}, CmdPipelineBarrier},
		{MarkerCommand{Label: "shadows"}, CmdMarker},
		{DispatchCommand{X: 8, Y: 8, Z: 1}, CmdDispatch},
		{DispatchIndirectCommand{}, CmdDispatchIndirect},
		{DrawCommand{VertexCount: 3, InstanceCount: 1}, CmdDraw},
		{DrawIndirectCommand{DrawCount: 1}, CmdDrawIndirect},
		{CopyBufferCommand{Size: 64}, CmdCopyBuffer},
		{CopyImageCommand{}, CmdCopyImage},
	}
	for _, tt := range tests {
		if got := tt.cmd.Type(); got != tt.want {
			t.Errorf("%T.Type() = %v, want %v", tt.cmd, got, tt.want)
		}
	}
}

func TestBarrierRef_IsValid(t *testing.T) {
	if !BarrierRef(0).IsValid() {
		t.Error("BarrierRef(0) should be valid")
	}
	if BarrierRef(InvalidRef).IsValid() {
		t.Error("BarrierRef(InvalidRef) should be invalid")
	}
}
