// Package report renders terminal summaries of baked plans and executed
// frames.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gogpu/framegraph"
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true)
	passStyle    = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#999999"))
	imageStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	bufferStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801"))
	presentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// Plan renders the pass order of p with each pass's direct predecessors.
func Plan(p *framegraph.Plan) string {
	if p == nil {
		return dimStyle.Render("no plan")
	}
	title := titleStyle.Render(fmt.Sprintf("plan %s", shortID(p)))
	meta := dimStyle.Render(fmt.Sprintf("%s, %d passes, %d edges",
		p.Strategy, len(p.Order), p.Graph.EdgeCount()))

	width := nameWidth(p.Order)
	lines := []string{title + "  " + meta}
	for i, id := range p.Order {
		line := fmt.Sprintf("%2d  %s", i+1, passStyle.Width(width).Render(string(id)))
		if preds := p.Graph.Predecessors(id); len(preds) > 0 {
			names := make([]string, len(preds))
			for j, pred := range preds {
				names[j] = string(pred)
			}
			line += dimStyle.Render("  after " + strings.Join(names, ", "))
		}
		lines = append(lines, line)
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// Frame renders the barriers recorded for every pass of res.
func Frame(res *framegraph.FrameResult) string {
	if res == nil {
		return dimStyle.Render("no frame")
	}
	title := titleStyle.Render(fmt.Sprintf("frame %d", res.Frame))
	meta := dimStyle.Render(fmt.Sprintf("%d passes, %d barriers", len(res.Passes), res.BarrierCount()))

	width := nameWidth(res.Order())
	lines := []string{title + "  " + meta}
	for _, p := range res.Passes {
		count := dimStyle.Render(plural(p.Barriers.Len(), "barrier"))
		lines = append(lines, passStyle.Width(width).Render(string(p.ID))+"  "+count)
		for _, b := range p.Barriers.Images {
			lines = append(lines, "  "+imageStyle.Render(ImageBarrier(b)))
		}
		for _, b := range p.Barriers.Buffers {
			lines = append(lines, "  "+bufferStyle.Render(BufferBarrier(b)))
		}
	}
	if res.Present != nil {
		lines = append(lines, presentStyle.Render("present")+"  "+imageStyle.Render(ImageBarrier(*res.Present)))
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// ImageBarrier formats one image barrier on a single line.
func ImageBarrier(b framegraph.ImageBarrier) string {
	s := fmt.Sprintf("image %s %s -> %s", b.Alias, b.SrcAccess, b.DstAccess)
	if b.OldLayout != b.NewLayout {
		s += fmt.Sprintf(" [%s -> %s]", b.OldLayout, b.NewLayout)
	}
	return s
}

// BufferBarrier formats one buffer barrier on a single line.
func BufferBarrier(b framegraph.BufferBarrier) string {
	s := fmt.Sprintf("buffer %s %s -> %s", b.Alias, b.SrcAccess, b.DstAccess)
	if b.Offset != 0 || b.Size != framegraph.WholeSize {
		s += fmt.Sprintf(" @%d+%d", b.Offset, b.Size)
	}
	return s
}

func shortID(p *framegraph.Plan) string {
	return p.ID.String()[:8]
}

func nameWidth(ids []framegraph.PassID) int {
	w := 0
	for _, id := range ids {
		w = max(w, len(id))
	}
	return w
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
