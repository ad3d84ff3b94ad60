// Package timeline provides an image backend for the recording system.
// It draws a frame as a left-to-right strip of pass boxes, colored by the
// kind of work each pass recorded, with a stack of ticks in front of every
// pass for the barriers recorded before it.
//
// Rendering uses gg.Context; pass names are drawn with the Go Regular font.
//
// # Example
//
//	// Import to register the backend
//	import _ "github.com/gogpu/framegraph/recording/backends/timeline"
//
//	backend, _ := recording.NewBackend("timeline")
//	r.Playback(backend)
//	backend.(recording.FileBackend).SaveToFile("frame.png")
package timeline

import (
	"fmt"
	"image"
	"io"
	"strconv"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/framegraph"
	"github.com/gogpu/framegraph/recording"
)

func init() {
	recording.Register(recording.BackendInfo{
		Name:    "timeline",
		Output:  recording.OutputImage,
		Summary: "PNG strip of passes colored by work kind, with barrier ticks",
	}, func(*recording.BackendConfig) (recording.Backend, error) {
		return NewBackend(), nil
	})
}

// Layout in pixels.
const (
	margin     = 16
	gapWidth   = 28
	boxTop     = 36
	boxHeight  = 64
	canvasH    = 140
	tickWidth  = 6
	tickHeight = 6
	tickStep   = 9
	maxTicks   = 6
)

// Kind is the dominant kind of work a pass recorded.
type Kind uint8

// Pass kinds, in increasing precedence.
const (
	KindIdle Kind = iota
	KindTransfer
	KindCompute
	KindGraphics
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindIdle:
		return "idle"
	case KindTransfer:
		return "transfer"
	case KindCompute:
		return "compute"
	case KindGraphics:
		return "graphics"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Color returns the fill color used for passes of kind k.
func (k Kind) Color() string {
	switch k {
	case KindTransfer:
		return "#b07aa1"
	case KindCompute:
		return "#59a14f"
	case KindGraphics:
		return "#4c78a8"
	default:
		return "#bab0ac"
	}
}

const (
	backgroundColor = "#ffffff"
	axisColor       = "#d0d0d0"
	barrierColor    = "#f28e2b"
	labelColor      = "#ffffff"
	captionColor    = "#333333"
)

// Segment is one pass on the timeline.
type Segment struct {
	Pass     framegraph.PassID
	Kind     Kind
	Work     int
	Barriers int // recorded before the pass
}

// Backend renders recordings to a timeline image using gg.Context.
// It implements recording.Backend, recording.WriterBackend,
// recording.FileBackend and recording.ImageBackend.
type Backend struct {
	passWidth int
	labels    bool

	ctx      *gg.Context
	frame    uint64
	segments []Segment
	pending  int
	open     bool
}

// Ensure Backend implements all required interfaces.
var (
	_ recording.Backend       = (*Backend)(nil)
	_ recording.WriterBackend = (*Backend)(nil)
	_ recording.FileBackend   = (*Backend)(nil)
	_ recording.ImageBackend  = (*Backend)(nil)
)

// Option configures a Backend.
type Option func(*Backend)

// WithPassWidth sets the width of a pass box in pixels. The default is 120.
func WithPassWidth(w int) Option {
	return func(b *Backend) {
		if w > 0 {
			b.passWidth = w
		}
	}
}

// WithoutLabels disables pass name and caption text.
func WithoutLabels() Option {
	return func(b *Backend) {
		b.labels = false
	}
}

// NewBackend creates a new timeline backend.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{passWidth: 120, labels: true}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Begin starts a new frame, discarding any previous image.
func (b *Backend) Begin(frame uint64) error {
	b.frame = frame
	b.segments = b.segments[:0]
	b.pending = 0
	b.open = false
	return nil
}

// BeginPass starts a new segment that owns the barriers recorded so far.
func (b *Backend) BeginPass(id framegraph.PassID) {
	b.segments = append(b.segments, Segment{Pass: id, Barriers: b.pending})
	b.pending = 0
	b.open = true
}

// EndPass closes the current segment.
func (b *Backend) EndPass(framegraph.PassID) {
	b.open = false
}

// PipelineBarrier counts barriers toward the next pass. Barriers recorded
// inside a pass count toward that pass.
func (b *Backend) PipelineBarrier(images []framegraph.ImageBarrier, buffers []framegraph.BufferBarrier) {
	n := len(images) + len(buffers)
	if b.open {
		b.segments[len(b.segments)-1].Barriers += n
		return
	}
	b.pending += n
}

// Marker is ignored.
func (b *Backend) Marker(string) {}

// Dispatch marks the current pass as compute work.
func (b *Backend) Dispatch(_, _, _ uint32) { b.work(KindCompute) }

// DispatchIndirect marks the current pass as compute work.
func (b *Backend) DispatchIndirect(framegraph.BufferAlias, uint64) { b.work(KindCompute) }

// Draw marks the current pass as graphics work.
func (b *Backend) Draw(_, _, _, _ uint32) { b.work(KindGraphics) }

// DrawIndirect marks the current pass as graphics work.
func (b *Backend) DrawIndirect(framegraph.BufferAlias, uint64, uint32) { b.work(KindGraphics) }

// CopyBuffer marks the current pass as transfer work.
func (b *Backend) CopyBuffer(_, _ framegraph.BufferAlias, _ uint64) { b.work(KindTransfer) }

// CopyImage marks the current pass as transfer work.
func (b *Backend) CopyImage(_, _ framegraph.ImageAlias) { b.work(KindTransfer) }

func (b *Backend) work(k Kind) {
	if !b.open {
		return
	}
	s := &b.segments[len(b.segments)-1]
	s.Work++
	if k > s.Kind {
		s.Kind = k
	}
}

// Segments returns the passes collected during playback.
func (b *Backend) Segments() []Segment {
	out := make([]Segment, len(b.segments))
	copy(out, b.segments)
	return out
}

// TrailingBarriers returns the barriers recorded after the last pass, such
// as the present transition.
func (b *Backend) TrailingBarriers() int {
	return b.pending
}

// Width returns the width the frame renders at.
func (b *Backend) Width() int {
	return 2*margin + len(b.segments)*(b.passWidth+gapWidth) + gapWidth
}

// Height returns the height the frame renders at.
func (b *Backend) Height() int {
	return canvasH
}

// End renders the collected timeline.
func (b *Backend) End() error {
	if b.ctx != nil {
		_ = b.ctx.Close()
	}
	w, h := b.Width(), b.Height()
	dc := gg.NewContext(w, h)
	b.ctx = dc

	dc.SetHexColor(backgroundColor)
	dc.DrawRectangle(0, 0, float64(w), float64(h))
	if err := dc.Fill(); err != nil {
		return fmt.Errorf("timeline: background: %w", err)
	}

	axisY := float64(boxTop + boxHeight/2)
	dc.SetHexColor(axisColor)
	dc.SetLineWidth(2)
	dc.DrawLine(margin, axisY, float64(w-margin), axisY)
	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("timeline: axis: %w", err)
	}

	face := b.face()
	if face != nil {
		dc.SetFont(face)
	}

	x := float64(margin)
	for _, s := range b.segments {
		if err := drawTicks(dc, x, s.Barriers); err != nil {
			return err
		}
		x += gapWidth

		dc.SetHexColor(s.Kind.Color())
		dc.DrawRoundedRectangle(x, boxTop, float64(b.passWidth), boxHeight, 6)
		if err := dc.Fill(); err != nil {
			return fmt.Errorf("timeline: pass %s: %w", s.Pass, err)
		}
		if face != nil {
			dc.SetHexColor(labelColor)
			dc.DrawStringAnchored(string(s.Pass), x+float64(b.passWidth)/2, boxTop+boxHeight/2, 0.5, 0.35)
		}
		x += float64(b.passWidth)
	}
	if err := drawTicks(dc, x, b.pending); err != nil {
		return err
	}

	if face != nil {
		barriers := b.pending
		for _, s := range b.segments {
			barriers += s.Barriers
		}
		dc.SetHexColor(captionColor)
		dc.DrawString(fmt.Sprintf("frame %d: %d passes, %d barriers", b.frame, len(b.segments), barriers),
			margin, canvasH-14)
	}
	return nil
}

// drawTicks draws one tick per barrier in the gap starting at x, centered
// on the axis. Counts above maxTicks are capped.
func drawTicks(dc *gg.Context, x float64, n int) error {
	if n == 0 {
		return nil
	}
	shown := min(n, maxTicks)
	cx := x + gapWidth/2 - tickWidth/2
	top := float64(boxTop+boxHeight/2) - float64(shown*tickStep)/2
	dc.SetHexColor(barrierColor)
	for i := 0; i < shown; i++ {
		dc.DrawRectangle(cx, top+float64(i*tickStep), tickWidth, tickHeight)
	}
	if err := dc.Fill(); err != nil {
		return fmt.Errorf("timeline: barriers: %w", err)
	}
	return nil
}

var (
	fontOnce   sync.Once
	fontSource *text.FontSource
)

func (b *Backend) face() text.Face {
	if !b.labels {
		return nil
	}
	fontOnce.Do(func() {
		src, err := text.NewFontSource(goregular.TTF)
		if err == nil {
			fontSource = src
		}
	})
	if fontSource == nil {
		return nil
	}
	return fontSource.Face(13)
}

// Image returns the rendered image, or nil before End.
func (b *Backend) Image() image.Image {
	if b.ctx == nil {
		return nil
	}
	return b.ctx.Image()
}

// WriteTo writes the rendered timeline as PNG.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	if b.ctx == nil {
		return 0, fmt.Errorf("timeline: WriteTo before End")
	}
	cw := &countingWriter{w: w}
	err := b.ctx.EncodePNG(cw)
	return cw.n, err
}

// SaveToFile saves the rendered timeline as PNG.
func (b *Backend) SaveToFile(path string) error {
	if b.ctx == nil {
		return fmt.Errorf("timeline: SaveToFile before End")
	}
	return b.ctx.SavePNG(path)
}

// countingWriter wraps an io.Writer and counts bytes written.
type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
