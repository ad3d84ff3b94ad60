package report

import (
	"strings"
	"testing"

	"github.com/gogpu/framegraph"
)

func scenario(t *testing.T) (*framegraph.FrameGraph, *framegraph.FrameResult) {
	t.Helper()
	fg := framegraph.New(framegraph.WithPresentImage(framegraph.ImageGeometryColor))
	passes := []framegraph.Pass{
		framegraph.NewPass("Forward", framegraph.PassGraphInfo{}.WriteImage(framegraph.ImageGeometryColor,
			framegraph.AccessColorAttachmentWrite, framegraph.StageColorAttachmentOutput, framegraph.LayoutColorAttachment), nil),
		framegraph.NewPass("Composition", framegraph.PassGraphInfo{}.ReadImage(framegraph.ImageGeometryColor,
			framegraph.AccessShaderRead, framegraph.StageFragmentShader, framegraph.LayoutShaderReadOnly), nil),
		framegraph.NewPass("Culling", framegraph.PassGraphInfo{}.WriteBuffer(framegraph.BufferIndirectCommand,
			framegraph.AccessShaderWrite, framegraph.StageComputeShader), nil),
		framegraph.NewPass("PostProcessing", framegraph.PassGraphInfo{}.ReadBuffer(framegraph.BufferIndirectCommand,
			framegraph.AccessIndirectCommandRead, framegraph.StageDrawIndirect), nil),
	}
	for _, p := range passes {
		if err := fg.AddPass(p); err != nil {
			t.Fatal(err)
		}
	}
	if err := fg.Bake(); err != nil {
		t.Fatal(err)
	}
	res, err := fg.Execute(framegraph.FrameContext{Frame: 9}, nopRecorder{})
	if err != nil {
		t.Fatal(err)
	}
	return fg, res
}

type nopRecorder struct{}

func (nopRecorder) PipelineBarrier([]framegraph.ImageBarrier, []framegraph.BufferBarrier) {}

func TestPlan(t *testing.T) {
	fg, _ := scenario(t)
	out := Plan(fg.Plan())

	for _, want := range []string{
		"plan " + fg.Plan().ID.String()[:8],
		"topological, 4 passes, 2 edges",
		"Composition",
		"after Forward",
		"after Culling",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Plan() missing %q:\n%s", want, out)
		}
	}
	// Order is Forward, Culling, Composition, PostProcessing.
	if strings.Index(out, "Culling") > strings.Index(out, "Composition") {
		t.Errorf("Plan() lists Composition before Culling:\n%s", out)
	}
}

func TestFrame(t *testing.T) {
	_, res := scenario(t)
	out := Frame(res)

	for _, want := range []string{
		"frame 9",
		"4 passes, 5 barriers",
		"1 barrier",
		"image GeometryColor color_attachment_write -> shader_read [color_attachment -> shader_read_only]",
		"buffer IndirectCommand shader_write -> indirect_command_read",
		"present",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Frame() missing %q:\n%s", want, out)
		}
	}
}

func TestNil(t *testing.T) {
	if got := Plan(nil); !strings.Contains(got, "no plan") {
		t.Errorf("Plan(nil) = %q", got)
	}
	if got := Frame(nil); !strings.Contains(got, "no frame") {
		t.Errorf("Frame(nil) = %q", got)
	}
}

func TestBufferBarrierRange(t *testing.T) {
	tests := []struct {
		b    framegraph.BufferBarrier
		want string
	}{
		{
			framegraph.BufferBarrier{Alias: framegraph.BufferLight, SrcAccess: framegraph.AccessTransferWrite,
				DstAccess: framegraph.AccessUniformRead, Size: framegraph.WholeSize},
			"buffer Light transfer_write -> uniform_read",
		},
		{
			framegraph.BufferBarrier{Alias: framegraph.BufferLight, Offset: 64, Size: 32},
			"buffer Light none -> none @64+32",
		},
	}
	for _, tt := range tests {
		if got := BufferBarrier(tt.b); got != tt.want {
			t.Errorf("BufferBarrier() = %q, want %q", got, tt.want)
		}
	}
}

func TestImageBarrierSameLayout(t *testing.T) {
	b := framegraph.ImageBarrier{
		Alias:     framegraph.ImageDepth,
		SrcAccess: framegraph.AccessDepthStencilAttachmentWrite,
		DstAccess: framegraph.AccessDepthStencilAttachmentWrite,
		OldLayout: framegraph.LayoutDepthStencilAttachment,
		NewLayout: framegraph.LayoutDepthStencilAttachment,
	}
	want := "image Depth depth_stencil_attachment_write -> depth_stencil_attachment_write"
	if got := ImageBarrier(b); got != want {
		t.Errorf("ImageBarrier() = %q, want %q", got, want)
	}
}
