// Package hal provides a backend that replays frame graph barriers onto a
// wgpu HAL command encoder.
//
// WebGPU-class APIs track resource state as a usage rather than the
// (stage, access, layout) triple the frame graph computes. The backend maps
// each barrier's old and new state to texture and buffer usages and issues
// TransitionTextures and TransitionBuffers. A transition whose usages
// coincide and that involves no write is dropped; Metal, GLES and the
// software backends treat every transition as a no-op anyway.
//
// Work commands (draws, dispatches, copies) are not encoded here: passes
// record those with their own pipelines. They are counted in Stats.
//
// The backend needs an encoder and a resolver for the physical resources.
// Construct it with NewBackend, or through the registry with options:
//
//	backend, err := recording.NewBackend("hal",
//	    hal.WithEncoder(encoder), hal.WithResolver(table))
package hal

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/framegraph"
	"github.com/gogpu/framegraph/recording"
)

func init() {
	recording.Register(recording.BackendInfo{
		Name:    "hal",
		Output:  recording.OutputDevice,
		Summary: "wgpu HAL texture and buffer transitions",
	}, newFromConfig)
}

// ErrNotConfigured is returned by the registry factory when the encoder or
// resolver option is missing.
var ErrNotConfigured = errors.New("hal: encoder and resolver options required")

type (
	encoderKey  struct{}
	resolverKey struct{}
)

// WithEncoder passes the encoder to recording.NewBackend("hal", ...).
func WithEncoder(enc Encoder) recording.BackendOption {
	return recording.WithValue(encoderKey{}, enc)
}

// WithResolver passes the resolver to recording.NewBackend("hal", ...).
func WithResolver(res Resolver) recording.BackendOption {
	return recording.WithValue(resolverKey{}, res)
}

func newFromConfig(cfg *recording.BackendConfig) (recording.Backend, error) {
	enc, _ := cfg.Value(encoderKey{}).(Encoder)
	res, _ := cfg.Value(resolverKey{}).(Resolver)
	if enc == nil || res == nil {
		return nil, ErrNotConfigured
	}
	return NewBackend(enc, res), nil
}

// ErrUnresolved is returned by End when a barrier named an alias the
// resolver has no resource for.
var ErrUnresolved = errors.New("hal: alias not bound to a resource")

// Encoder is the part of hal.CommandEncoder the backend drives.
type Encoder interface {
	TransitionTextures(barriers []hal.TextureBarrier)
	TransitionBuffers(barriers []hal.BufferBarrier)
}

// Resolver maps aliases to the physical resources of the current frame.
type Resolver interface {
	Texture(alias framegraph.ImageAlias) (hal.Texture, bool)
	Buffer(alias framegraph.BufferAlias) (hal.Buffer, bool)
}

// Stats counts what one frame's playback issued.
type Stats struct {
	Textures int // texture transitions issued
	Buffers  int // buffer transitions issued
	Skipped  int // barriers with no usage change
	Work     int // work commands seen
}

// Backend issues HAL transitions for recorded barriers.
type Backend struct {
	enc   Encoder
	res   Resolver
	frame uint64
	err   error
	stats Stats
}

var _ recording.Backend = (*Backend)(nil)

// NewBackend creates a backend that encodes into enc and resolves aliases
// through res.
func NewBackend(enc Encoder, res Resolver) *Backend {
	return &Backend{enc: enc, res: res}
}

// SetEncoder replaces the encoder, typically once per frame.
func (b *Backend) SetEncoder(enc Encoder) {
	b.enc = enc
}

// Begin resets the per-frame state.
func (b *Backend) Begin(frame uint64) error {
	if b.enc == nil {
		return fmt.Errorf("hal: frame %d: no encoder", frame)
	}
	if b.res == nil {
		return fmt.Errorf("hal: frame %d: no resolver", frame)
	}
	b.frame = frame
	b.err = nil
	b.stats = Stats{}
	return nil
}

// End returns the first resolution error of the frame.
func (b *Backend) End() error {
	return b.err
}

// Stats returns the counters of the last frame.
func (b *Backend) Stats() Stats {
	return b.stats
}

// BeginPass is a no-op.
func (b *Backend) BeginPass(framegraph.PassID) {}

// EndPass is a no-op.
func (b *Backend) EndPass(framegraph.PassID) {}

// Marker is a no-op.
func (b *Backend) Marker(string) {}

// PipelineBarrier translates one batch into at most one TransitionTextures
// and one TransitionBuffers call.
func (b *Backend) PipelineBarrier(images []framegraph.ImageBarrier, buffers []framegraph.BufferBarrier) {
	var textures []hal.TextureBarrier
	for _, ib := range images {
		oldUsage, newUsage := TextureUsage(ib.OldLayout), TextureUsage(ib.NewLayout)
		if oldUsage == newUsage && !ib.SrcAccess.HasWrite() && !ib.DstAccess.HasWrite() {
			b.stats.Skipped++
			continue
		}
		tex, ok := b.res.Texture(ib.Alias)
		if !ok {
			b.fail(fmt.Errorf("frame %d: image %v: %w", b.frame, ib.Alias, ErrUnresolved))
			continue
		}
		textures = append(textures, hal.TextureBarrier{
			Texture: tex,
			Usage: hal.TextureUsageTransition{
				OldUsage: oldUsage,
				NewUsage: newUsage,
			},
		})
	}

	var bufs []hal.BufferBarrier
	for _, bb := range buffers {
		oldUsage, newUsage := BufferUsage(bb.SrcAccess), BufferUsage(bb.DstAccess)
		if oldUsage == newUsage && !bb.SrcAccess.HasWrite() && !bb.DstAccess.HasWrite() {
			b.stats.Skipped++
			continue
		}
		buf, ok := b.res.Buffer(bb.Alias)
		if !ok {
			b.fail(fmt.Errorf("frame %d: buffer %v: %w", b.frame, bb.Alias, ErrUnresolved))
			continue
		}
		bufs = append(bufs, hal.BufferBarrier{
			Buffer: buf,
			Usage: hal.BufferUsageTransition{
				OldUsage: oldUsage,
				NewUsage: newUsage,
			},
		})
	}

	if len(textures) > 0 {
		b.enc.TransitionTextures(textures)
		b.stats.Textures += len(textures)
	}
	if len(bufs) > 0 {
		b.enc.TransitionBuffers(bufs)
		b.stats.Buffers += len(bufs)
	}
}

func (b *Backend) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Dispatch is counted only.
func (b *Backend) Dispatch(_, _, _ uint32) { b.stats.Work++ }

// DispatchIndirect is counted only.
func (b *Backend) DispatchIndirect(framegraph.BufferAlias, uint64) { b.stats.Work++ }

// Draw is counted only.
func (b *Backend) Draw(_, _, _, _ uint32) { b.stats.Work++ }

// DrawIndirect is counted only.
func (b *Backend) DrawIndirect(framegraph.BufferAlias, uint64, uint32) { b.stats.Work++ }

// CopyBuffer is counted only.
func (b *Backend) CopyBuffer(_, _ framegraph.BufferAlias, _ uint64) { b.stats.Work++ }

// CopyImage is counted only.
func (b *Backend) CopyImage(_, _ framegraph.ImageAlias) { b.stats.Work++ }

// TextureUsage maps an image layout to the WebGPU texture usage that holds
// the image in that layout. LayoutPresentSrc maps to RenderAttachment, the
// state surface textures are presented from.
func TextureUsage(l framegraph.ImageLayout) gputypes.TextureUsage {
	switch l {
	case framegraph.LayoutGeneral:
		return gputypes.TextureUsageStorageBinding
	case framegraph.LayoutColorAttachment,
		framegraph.LayoutDepthStencilAttachment,
		framegraph.LayoutDepthStencilReadOnly,
		framegraph.LayoutPresentSrc:
		return gputypes.TextureUsageRenderAttachment
	case framegraph.LayoutShaderReadOnly:
		return gputypes.TextureUsageTextureBinding
	case framegraph.LayoutTransferSrc:
		return gputypes.TextureUsageCopySrc
	case framegraph.LayoutTransferDst:
		return gputypes.TextureUsageCopyDst
	default:
		return 0
	}
}

// bufferUsages maps access bits to buffer usages.
var bufferUsages = []struct {
	access framegraph.AccessFlags
	usage  gputypes.BufferUsage
}{
	{framegraph.AccessIndirectCommandRead, gputypes.BufferUsageIndirect},
	{framegraph.AccessIndexRead, gputypes.BufferUsageIndex},
	{framegraph.AccessVertexAttributeRead, gputypes.BufferUsageVertex},
	{framegraph.AccessUniformRead, gputypes.BufferUsageUniform},
	{framegraph.AccessShaderRead | framegraph.AccessShaderWrite, gputypes.BufferUsageStorage},
	{framegraph.AccessTransferRead, gputypes.BufferUsageCopySrc},
	{framegraph.AccessTransferWrite, gputypes.BufferUsageCopyDst},
	{framegraph.AccessHostRead, gputypes.BufferUsageMapRead},
	{framegraph.AccessHostWrite, gputypes.BufferUsageMapWrite},
}

// BufferUsage maps access flags to the union of WebGPU buffer usages they
// imply. AccessNone maps to zero.
func BufferUsage(a framegraph.AccessFlags) gputypes.BufferUsage {
	var u gputypes.BufferUsage
	for _, m := range bufferUsages {
		if a&m.access != 0 {
			u |= m.usage
		}
	}
	return u
}

// ResourceTable is a map-backed Resolver.
type ResourceTable struct {
	textures map[framegraph.ImageAlias]hal.Texture
	buffers  map[framegraph.BufferAlias]hal.Buffer
}

var _ Resolver = (*ResourceTable)(nil)

// NewResourceTable creates an empty table.
func NewResourceTable() *ResourceTable {
	return &ResourceTable{
		textures: make(map[framegraph.ImageAlias]hal.Texture),
		buffers:  make(map[framegraph.BufferAlias]hal.Buffer),
	}
}

// SetTexture binds alias to tex. A nil tex unbinds it.
func (t *ResourceTable) SetTexture(alias framegraph.ImageAlias, tex hal.Texture) {
	if tex == nil {
		delete(t.textures, alias)
		return
	}
	t.textures[alias] = tex
}

// SetBuffer binds alias to buf. A nil buf unbinds it.
func (t *ResourceTable) SetBuffer(alias framegraph.BufferAlias, buf hal.Buffer) {
	if buf == nil {
		delete(t.buffers, alias)
		return
	}
	t.buffers[alias] = buf
}

// Texture implements Resolver.
func (t *ResourceTable) Texture(alias framegraph.ImageAlias) (hal.Texture, bool) {
	tex, ok := t.textures[alias]
	return tex, ok
}

// Buffer implements Resolver.
func (t *ResourceTable) Buffer(alias framegraph.BufferAlias) (hal.Buffer, bool) {
	buf, ok := t.buffers[alias]
	return buf, ok
}
