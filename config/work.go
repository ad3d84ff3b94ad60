package config

import (
	"fmt"

	"github.com/gogpu/framegraph"
)

// Recorders that accept work commands. recording.Recorder implements all
// of them; passes skip commands the recorder does not support.
type (
	drawer interface {
		Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32)
	}
	indirectDrawer interface {
		DrawIndirect(buffer framegraph.BufferAlias, offset uint64, drawCount uint32)
	}
	dispatcher interface {
		Dispatch(x, y, z uint32)
	}
	indirectDispatcher interface {
		DispatchIndirect(buffer framegraph.BufferAlias, offset uint64)
	}
	bufferCopier interface {
		CopyBuffer(src, dst framegraph.BufferAlias, size uint64)
	}
	imageCopier interface {
		CopyImage(src, dst framegraph.ImageAlias)
	}
)

// recordFunc picks the command for ps.Work. Indirect work reads its
// arguments from the first buffer the pass reads with indirect access;
// copies go from the first read to the first write, buffers first.
func (ps PassSpec) recordFunc(info framegraph.PassGraphInfo) (framegraph.RecordFunc, error) {
	switch ps.Work {
	case "":
		return nil, nil

	case "draw":
		return func(_ *framegraph.FrameContext, cmd framegraph.CommandRecorder) {
			if d, ok := cmd.(drawer); ok {
				d.Draw(3, 1, 0, 0)
			}
		}, nil

	case "dispatch":
		x, y, z := uint32(1), uint32(1), uint32(1)
		if len(ps.Groups) == 3 {
			x, y, z = ps.Groups[0], ps.Groups[1], ps.Groups[2]
		}
		return func(_ *framegraph.FrameContext, cmd framegraph.CommandRecorder) {
			if d, ok := cmd.(dispatcher); ok {
				d.Dispatch(x, y, z)
			}
		}, nil

	case "draw_indirect", "dispatch_indirect":
		buf, ok := indirectSource(info)
		if !ok {
			return nil, fmt.Errorf("%w: pass %q: %s needs a buffer read with indirect_command_read access",
				ErrInvalid, ps.Name, ps.Work)
		}
		if ps.Work == "draw_indirect" {
			return func(_ *framegraph.FrameContext, cmd framegraph.CommandRecorder) {
				if d, ok := cmd.(indirectDrawer); ok {
					d.DrawIndirect(buf.Alias, buf.Offset, 1)
				}
			}, nil
		}
		return func(_ *framegraph.FrameContext, cmd framegraph.CommandRecorder) {
			if d, ok := cmd.(indirectDispatcher); ok {
				d.DispatchIndirect(buf.Alias, buf.Offset)
			}
		}, nil

	case "copy":
		if len(info.BufferReads) > 0 && len(info.BufferWrites) > 0 {
			src, dst := info.BufferReads[0], info.BufferWrites[0]
			size := src.Size
			if size == 0 {
				size = framegraph.WholeSize
			}
			return func(_ *framegraph.FrameContext, cmd framegraph.CommandRecorder) {
				if c, ok := cmd.(bufferCopier); ok {
					c.CopyBuffer(src.Alias, dst.Alias, size)
				}
			}, nil
		}
		if len(info.ImageReads) > 0 && len(info.ImageWrites) > 0 {
			src, dst := info.ImageReads[0].Alias, info.ImageWrites[0].Alias
			return func(_ *framegraph.FrameContext, cmd framegraph.CommandRecorder) {
				if c, ok := cmd.(imageCopier); ok {
					c.CopyImage(src, dst)
				}
			}, nil
		}
		return nil, fmt.Errorf("%w: pass %q: copy needs a read and a write of the same kind", ErrInvalid, ps.Name)

	default:
		return nil, fmt.Errorf("%w: pass %q: unknown work %q", ErrInvalid, ps.Name, ps.Work)
	}
}

func indirectSource(info framegraph.PassGraphInfo) (framegraph.BufferUsage, bool) {
	for _, u := range info.BufferReads {
		if u.Access&framegraph.AccessIndirectCommandRead != 0 {
			return u, true
		}
	}
	return framegraph.BufferUsage{}, false
}
