package framegraph

import (
	"fmt"
	"slices"
	"strings"
)

// AccessFlags is a bitmask of memory access types. Bit values match
// VkAccessFlagBits so backends can pass them through unchanged.
type AccessFlags uint32

// Access flags.
const (
	AccessNone                        AccessFlags = 0
	AccessIndirectCommandRead         AccessFlags = 1 << 0
	AccessIndexRead                   AccessFlags = 1 << 1
	AccessVertexAttributeRead         AccessFlags = 1 << 2
	AccessUniformRead                 AccessFlags = 1 << 3
	AccessInputAttachmentRead         AccessFlags = 1 << 4
	AccessShaderRead                  AccessFlags = 1 << 5
	AccessShaderWrite                 AccessFlags = 1 << 6
	AccessColorAttachmentRead         AccessFlags = 1 << 7
	AccessColorAttachmentWrite        AccessFlags = 1 << 8
	AccessDepthStencilAttachmentRead  AccessFlags = 1 << 9
	AccessDepthStencilAttachmentWrite AccessFlags = 1 << 10
	AccessTransferRead                AccessFlags = 1 << 11
	AccessTransferWrite               AccessFlags = 1 << 12
	AccessHostRead                    AccessFlags = 1 << 13
	AccessHostWrite                   AccessFlags = 1 << 14
	AccessMemoryRead                  AccessFlags = 1 << 15
	AccessMemoryWrite                 AccessFlags = 1 << 16
)

// accessWriteMask covers every access bit that modifies memory.
const accessWriteMask = AccessShaderWrite | AccessColorAttachmentWrite |
	AccessDepthStencilAttachmentWrite | AccessTransferWrite | AccessHostWrite | AccessMemoryWrite

var accessNames = []flagName[AccessFlags]{
	{AccessIndirectCommandRead, "indirect_command_read"},
	{AccessIndexRead, "index_read"},
	{AccessVertexAttributeRead, "vertex_attribute_read"},
	{AccessUniformRead, "uniform_read"},
	{AccessInputAttachmentRead, "input_attachment_read"},
	{AccessShaderRead, "shader_read"},
	{AccessShaderWrite, "shader_write"},
	{AccessColorAttachmentRead, "color_attachment_read"},
	{AccessColorAttachmentWrite, "color_attachment_write"},
	{AccessDepthStencilAttachmentRead, "depth_stencil_attachment_read"},
	{AccessDepthStencilAttachmentWrite, "depth_stencil_attachment_write"},
	{AccessTransferRead, "transfer_read"},
	{AccessTransferWrite, "transfer_write"},
	{AccessHostRead, "host_read"},
	{AccessHostWrite, "host_write"},
	{AccessMemoryRead, "memory_read"},
	{AccessMemoryWrite, "memory_write"},
}

// HasWrite reports whether any bit in a writes memory.
func (a AccessFlags) HasWrite() bool { return a&accessWriteMask != 0 }

// String returns the flag names joined by "|", or "none".
func (a AccessFlags) String() string { return formatFlags(a, accessNames) }

// ParseAccessFlags parses names joined by "|" (for example
// "shader_read|shader_write"). The empty string and "none" yield AccessNone.
func ParseAccessFlags(s string) (AccessFlags, error) {
	return parseFlags(s, "access", accessNames)
}

// StageFlags is a bitmask of pipeline stages. Bit values match
// VkPipelineStageFlagBits.
type StageFlags uint32

// Pipeline stages.
const (
	StageNone                  StageFlags = 0
	StageTopOfPipe             StageFlags = 1 << 0
	StageDrawIndirect          StageFlags = 1 << 1
	StageVertexInput           StageFlags = 1 << 2
	StageVertexShader          StageFlags = 1 << 3
	StageFragmentShader        StageFlags = 1 << 7
	StageEarlyFragmentTests    StageFlags = 1 << 8
	StageLateFragmentTests     StageFlags = 1 << 9
	StageColorAttachmentOutput StageFlags = 1 << 10
	StageComputeShader         StageFlags = 1 << 11
	StageTransfer              StageFlags = 1 << 12
	StageBottomOfPipe          StageFlags = 1 << 13
	StageHost                  StageFlags = 1 << 14
	StageAllGraphics           StageFlags = 1 << 15
	StageAllCommands           StageFlags = 1 << 16
)

var stageNames = []flagName[StageFlags]{
	{StageTopOfPipe, "top_of_pipe"},
	{StageDrawIndirect, "draw_indirect"},
	{StageVertexInput, "vertex_input"},
	{StageVertexShader, "vertex_shader"},
	{StageFragmentShader, "fragment_shader"},
	{StageEarlyFragmentTests, "early_fragment_tests"},
	{StageLateFragmentTests, "late_fragment_tests"},
	{StageColorAttachmentOutput, "color_attachment_output"},
	{StageComputeShader, "compute_shader"},
	{StageTransfer, "transfer"},
	{StageBottomOfPipe, "bottom_of_pipe"},
	{StageHost, "host"},
	{StageAllGraphics, "all_graphics"},
	{StageAllCommands, "all_commands"},
}

// String returns the stage names joined by "|", or "none".
func (s StageFlags) String() string { return formatFlags(s, stageNames) }

// ParseStageFlags parses stage names joined by "|".
func ParseStageFlags(s string) (StageFlags, error) {
	return parseFlags(s, "stage", stageNames)
}

// ImageLayout is the GPU-internal representation mode of an image.
// Values match VkImageLayout.
type ImageLayout int32

// Image layouts.
const (
	LayoutUndefined              ImageLayout = 0
	LayoutGeneral                ImageLayout = 1
	LayoutColorAttachment        ImageLayout = 2
	LayoutDepthStencilAttachment ImageLayout = 3
	LayoutDepthStencilReadOnly   ImageLayout = 4
	LayoutShaderReadOnly         ImageLayout = 5
	LayoutTransferSrc            ImageLayout = 6
	LayoutTransferDst            ImageLayout = 7
	LayoutPresentSrc             ImageLayout = 1000001002
)

var layoutNames = map[ImageLayout]string{
	LayoutUndefined:              "undefined",
	LayoutGeneral:                "general",
	LayoutColorAttachment:        "color_attachment",
	LayoutDepthStencilAttachment: "depth_stencil_attachment",
	LayoutDepthStencilReadOnly:   "depth_stencil_read_only",
	LayoutShaderReadOnly:         "shader_read_only",
	LayoutTransferSrc:            "transfer_src",
	LayoutTransferDst:            "transfer_dst",
	LayoutPresentSrc:             "present_src",
}

// String returns the layout name.
func (l ImageLayout) String() string {
	if name, ok := layoutNames[l]; ok {
		return name
	}
	return fmt.Sprintf("ImageLayout(%d)", int32(l))
}

// ParseImageLayout returns the layout with the given name.
func ParseImageLayout(s string) (ImageLayout, error) {
	s = strings.TrimSpace(s)
	for l, name := range layoutNames {
		if name == s {
			return l, nil
		}
	}
	return LayoutUndefined, fmt.Errorf("framegraph: unknown image layout %q", s)
}

// ImageLayoutNames returns every layout name, sorted.
func ImageLayoutNames() []string {
	out := make([]string, 0, len(layoutNames))
	for _, name := range layoutNames {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// ImageAspect selects the aspects of an image affected by a barrier.
// Values match VkImageAspectFlagBits.
type ImageAspect uint32

// Image aspects.
const (
	AspectColor   ImageAspect = 1 << 0
	AspectDepth   ImageAspect = 1 << 1
	AspectStencil ImageAspect = 1 << 2
)

var aspectNames = []flagName[ImageAspect]{
	{AspectColor, "color"},
	{AspectDepth, "depth"},
	{AspectStencil, "stencil"},
}

// String returns the aspect names joined by "|".
func (a ImageAspect) String() string { return formatFlags(a, aspectNames) }

// ParseImageAspect parses aspect names joined by "|".
func ParseImageAspect(s string) (ImageAspect, error) {
	return parseFlags(s, "aspect", aspectNames)
}

// AccessFlagNames returns the name of every single access bit.
func AccessFlagNames() []string { return flagNameList(accessNames) }

// StageFlagNames returns the name of every single stage bit.
func StageFlagNames() []string { return flagNameList(stageNames) }

// ImageAspectNames returns the name of every aspect bit.
func ImageAspectNames() []string { return flagNameList(aspectNames) }

type flagName[F ~uint32] struct {
	bit  F
	name string
}

func formatFlags[F ~uint32](f F, names []flagName[F]) string {
	if f == 0 {
		return "none"
	}
	var parts []string
	rest := f
	for _, n := range names {
		if f&n.bit == n.bit {
			parts = append(parts, n.name)
			rest &^= n.bit
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint32(rest)))
	}
	return strings.Join(parts, "|")
}

func parseFlags[F ~uint32](s, kind string, names []flagName[F]) (F, error) {
	var out F
	for _, part := range strings.Split(s, "|") {
		part = strings.TrimSpace(part)
		if part == "" || part == "none" {
			continue
		}
		found := false
		for _, n := range names {
			if n.name == part {
				out |= n.bit
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("framegraph: unknown %s flag %q", kind, part)
		}
	}
	return out, nil
}

func flagNameList[F ~uint32](names []flagName[F]) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = n.name
	}
	return out
}
