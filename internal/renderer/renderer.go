package renderer

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/dshills/tierline/internal/engine/annotation"
	"github.com/dshills/tierline/internal/renderer/backend"
	"github.com/dshills/tierline/internal/renderer/core"
	"github.com/dshills/tierline/internal/renderer/viewport"
)

// Fixed rows of the layout. Tier rows fill the space between the ruler
// and the status line.
const (
	headerRow    = 0
	rulerRow     = 1
	firstTierRow = 2
	chromeRows   = 3
)

// Options configures the renderer.
type Options struct {
	// GutterWidth is the width of the tier name column.
	GutterWidth int
	// MinTickSpacing is the minimum number of columns between ruler ticks.
	MinTickSpacing int
	// PointLabelWidth caps the label drawn beside a point marker.
	PointLabelWidth int

	Theme Theme
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		GutterWidth:     14,
		MinTickSpacing:  10,
		PointLabelWidth: 12,
		Theme:           DefaultTheme(),
	}
}

// Renderer paints the annotation timeline onto a backend. One terminal
// column is one timeline pixel.
type Renderer struct {
	mu sync.Mutex

	opts    Options
	backend backend.Backend
	width   int
	height  int

	// Tier rows as last painted, for HitTest.
	tierOffset int
	tierNames  []string

	frames uint64
}

// New creates a renderer drawing to b.
func New(b backend.Backend, opts Options) *Renderer {
	if opts.GutterWidth < 4 {
		opts.GutterWidth = 4
	}
	if opts.MinTickSpacing <= 0 {
		opts.MinTickSpacing = DefaultOptions().MinTickSpacing
	}
	w, h := b.Size()
	return &Renderer{opts: opts, backend: b, width: w, height: h}
}

// Resize records new screen dimensions.
func (r *Renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.width, r.height = width, height
}

// TimelineWidth returns the number of columns available to the timeline.
func (r *Renderer) TimelineWidth() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return max(0, r.width-r.opts.GutterWidth)
}

// TimelineX converts a screen column to a timeline pixel. Gutter columns
// map to negative pixels.
func (r *Renderer) TimelineX(x int) float64 {
	return float64(x - r.opts.GutterWidth)
}

// FrameCount returns the number of frames rendered.
func (r *Renderer) FrameCount() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

// HitTest maps a screen cell to the region and timeline position under it,
// using the layout of the last frame.
func (r *Renderer) HitTest(x, y int) Hit {
	r.mu.Lock()
	defer r.mu.Unlock()

	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return Hit{}
	}
	switch {
	case y == headerRow:
		return Hit{Region: RegionHeader}
	case y == r.height-1:
		return Hit{Region: RegionStatus}
	}

	hit := Hit{Region: RegionRuler, X: float64(x - r.opts.GutterWidth)}
	if y >= firstTierRow {
		idx := r.tierOffset + y - firstTierRow
		if idx >= len(r.tierNames) {
			return Hit{}
		}
		hit.Region = RegionTier
		hit.Tier = r.tierNames[idx]
	}
	if x < r.opts.GutterWidth {
		hit.Region = RegionGutter
		hit.X = 0
	}
	return hit
}

// Render paints one complete frame.
func (r *Renderer) Render(src Source, st Status) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.backend.Clear()
	r.backend.HideCursor()
	if r.width <= 0 || r.height <= 0 {
		return
	}

	m := src.Mapper()
	tiers := src.Tiers()
	r.layoutTiers(tiers, src.ActiveTier())

	r.drawHeader(src, m, st)
	if r.height > rulerRow+1 {
		r.drawRuler(m)
	}
	r.drawTiers(src, m, tiers)
	if start, end, ok := src.Selection(); ok {
		r.drawSelection(m, start, end)
	}
	r.drawCursor(m, src.CursorTime())
	if r.height > 1 {
		r.drawStatus(src, st)
	}

	r.backend.Show()
	r.frames++
}

// layoutTiers picks the first visible tier so the active tier stays on
// screen.
func (r *Renderer) layoutTiers(tiers []annotation.Tier, active string) {
	r.tierNames = r.tierNames[:0]
	activeIdx := 0
	for i, t := range tiers {
		r.tierNames = append(r.tierNames, t.Name)
		if t.Name == active {
			activeIdx = i
		}
	}

	rows := max(0, r.height-chromeRows)
	switch {
	case rows == 0:
		r.tierOffset = 0
	case activeIdx < r.tierOffset:
		r.tierOffset = activeIdx
	case activeIdx >= r.tierOffset+rows:
		r.tierOffset = activeIdx - rows + 1
	}
	r.tierOffset = max(0, min(r.tierOffset, len(tiers)-rows))
}

// column converts a time to a screen column, reporting whether it falls
// inside the timeline area.
func (r *Renderer) column(m viewport.Mapper, t float64) (int, bool) {
	px := math.Floor(m.TimeToPixel(t))
	tw := r.width - r.opts.GutterWidth
	if px < 0 || px >= float64(tw) {
		return int(math.Max(-1, math.Min(px, float64(tw)))) + r.opts.GutterWidth, false
	}
	return int(px) + r.opts.GutterWidth, true
}

func (r *Renderer) drawText(x, y, maxWidth int, s string, style core.Style) int {
	used := 0
	for _, c := range core.CellsFromString(s, style) {
		if c.IsContinuation() {
			r.backend.SetCell(x+used, y, c)
			used++
			continue
		}
		if used+c.Width > maxWidth {
			break
		}
		r.backend.SetCell(x+used, y, c)
		used++
	}
	return used
}

func (r *Renderer) fillRow(y, from, to int, style core.Style) {
	if to <= from {
		return
	}
	r.backend.Fill(core.NewScreenRect(y, from, y+1, to), core.NewStyledCell(' ', style))
}

func (r *Renderer) drawHeader(src Source, m viewport.Mapper, st Status) {
	th := r.opts.Theme
	r.fillRow(headerRow, 0, r.width, th.Header)

	x := r.drawText(0, headerRow, r.width, " "+Truncate(st.Title, r.width/2), th.Header)
	if src.Modified() {
		x += r.drawText(x, headerRow, r.width-x, " [+]", th.Modified)
	}

	info := fmt.Sprintf("  %s  zoom %.2fx  view %s-%s",
		FormatTime(src.Duration()), m.Zoom, FormatTime(m.StartTime()), FormatTime(m.EndTime()))
	r.drawText(x, headerRow, r.width-x, Truncate(info, r.width-x), th.Header)
}

func (r *Renderer) drawRuler(m viewport.Mapper) {
	th := r.opts.Theme
	gw := r.opts.GutterWidth
	r.drawText(0, rulerRow, gw, Truncate("time", gw-1), th.Gutter.Dim())
	r.fillRow(rulerRow, gw, r.width, th.Ruler)
	for x := gw; x < r.width; x++ {
		r.backend.SetCell(x, rulerRow, core.NewStyledCell('─', th.Ruler))
	}

	step := TickStep(m.PixelsPerSecond(), r.opts.MinTickSpacing)
	first := math.Ceil(m.StartTime()/step) * step
	for i := 0; i <= r.width; i++ {
		t := first + float64(i)*step
		col, ok := r.column(m, t)
		if !ok {
			if col >= r.width {
				break
			}
			continue
		}
		if m.Duration > 0 && t > m.Duration+step/2 {
			break
		}
		r.backend.SetCell(col, rulerRow, core.NewStyledCell('┬', th.RulerTick))
		label := formatTick(t, step)
		r.drawText(col+1, rulerRow, min(r.opts.MinTickSpacing-1, r.width-col-1), label, th.RulerTick)
	}
}

func (r *Renderer) drawTiers(src Source, m viewport.Mapper, tiers []annotation.Tier) {
	th := r.opts.Theme
	gw := r.opts.GutterWidth
	active := src.ActiveTier()
	selected, hasSelected := src.SelectedAnnotation()

	rows := max(0, r.height-chromeRows)
	for row := 0; row < rows; row++ {
		idx := r.tierOffset + row
		if idx >= len(tiers) {
			break
		}
		tier := tiers[idx]
		y := firstTierRow + row

		gutterStyle := th.Gutter
		marker := "  "
		if tier.Name == active {
			gutterStyle = th.GutterActive
			marker = "▶ "
		}
		r.fillRow(y, 0, gw-1, gutterStyle)
		r.drawText(0, y, gw-1, marker+Truncate(tier.Name, gw-3), gutterStyle)
		r.backend.SetCell(gw-1, y, core.NewStyledCell('│', th.Ruler))

		for _, a := range src.InTier(tier.Name) {
			isSel := hasSelected && a.ID == selected.ID
			if a.Type == annotation.Point {
				r.drawPoint(m, y, idx, a, isSel)
			} else {
				r.drawInterval(m, y, idx, a, isSel)
			}
		}
	}
}

func (r *Renderer) drawInterval(m viewport.Mapper, y, tierIdx int, a annotation.Annotation, selected bool) {
	gw := r.opts.GutterWidth
	startCol, _ := r.column(m, a.Start)
	endPx := math.Ceil(m.TimeToPixel(a.End))
	endCol := int(math.Min(endPx, float64(r.width-gw))) + gw // exclusive

	if endCol <= gw || startCol >= r.width {
		return
	}
	from := max(startCol, gw)
	to := max(endCol, from+1)
	style := r.opts.Theme.TierStyle(tierIdx, selected)
	r.fillRow(y, from, min(to, r.width), style)

	textFrom := from
	if startCol >= gw {
		r.backend.SetCell(startCol, y, core.NewStyledCell('▏', style))
		textFrom = startCol + 1
	}
	if w := min(to, r.width) - textFrom; w > 0 {
		r.drawText(textFrom, y, w, Truncate(a.Text, w), style)
	}
}

func (r *Renderer) drawPoint(m viewport.Mapper, y, tierIdx int, a annotation.Annotation, selected bool) {
	col, ok := r.column(m, a.Start)
	if !ok {
		return
	}
	style := r.opts.Theme.PointStyle(tierIdx, selected)
	r.backend.SetCell(col, y, core.NewStyledCell('◆', style))
	if w := min(r.opts.PointLabelWidth, r.width-col-1); w > 0 && a.Text != "" {
		r.drawText(col+1, y, w, Truncate(a.Text, w), style)
	}
}

// drawSelection shades the selected time range on the ruler and tier rows.
func (r *Renderer) drawSelection(m viewport.Mapper, start, end float64) {
	gw := r.opts.GutterWidth
	from := int(math.Floor(m.TimeToPixel(start))) + gw
	to := int(math.Ceil(m.TimeToPixel(end))) + gw
	if to == from {
		to++
	}
	from = max(from, gw)
	to = min(to, r.width)

	bottom := r.height - 1
	for y := rulerRow; y < bottom; y++ {
		for x := from; x < to; x++ {
			c := r.backend.GetCell(x, y)
			if c.IsContinuation() {
				continue
			}
			if c.Style.Background.IsDefault() {
				c.Style.Background = r.opts.Theme.SelectionBackground
			} else {
				c.Style.Background = c.Style.Background.Blend(r.opts.Theme.SelectionBackground, 0.5)
			}
			r.backend.SetCell(x, y, c)
		}
	}
}

func (r *Renderer) drawCursor(m viewport.Mapper, t float64) {
	col, ok := r.column(m, t)
	if !ok {
		return
	}
	th := r.opts.Theme
	if rulerRow < r.height-1 {
		r.backend.SetCell(col, rulerRow, core.NewStyledCell('▼', th.Cursor))
	}
	rows := min(len(r.tierNames)-r.tierOffset, r.height-chromeRows)
	for y := firstTierRow; y < firstTierRow+rows; y++ {
		c := r.backend.GetCell(col, y)
		if c.Rune == ' ' && c.Style.Background.IsDefault() {
			r.backend.SetCell(col, y, core.NewStyledCell('│', th.Cursor))
			continue
		}
		if c.IsContinuation() {
			continue
		}
		c.Style = c.Style.Reverse()
		r.backend.SetCell(col, y, c)
	}
}

func (r *Renderer) drawStatus(src Source, st Status) {
	th := r.opts.Theme
	y := r.height - 1
	r.fillRow(y, 0, r.width, th.Status)

	modeStyle := th.StatusMode
	if st.Editing {
		modeStyle = th.StatusLabel
	}
	x := r.drawText(0, y, r.width, " "+strings.ToUpper(st.Mode)+" ", modeStyle)
	x++

	if st.Editing {
		prompt := "label: "
		x += r.drawText(x, y, r.width-x, prompt, th.Status.Bold())
		x += r.drawText(x, y, r.width-x, Truncate(st.Label, r.width-x-1), th.Status)
		if x < r.width {
			r.backend.ShowCursor(x, y)
		}
		return
	}

	var parts []string
	parts = append(parts, "t="+FormatTime(src.CursorTime()))
	if start, end, ok := src.Selection(); ok {
		parts = append(parts, fmt.Sprintf("sel %s-%s (%s)", FormatTime(start), FormatTime(end), FormatTime(end-start)))
	}
	if tier := src.ActiveTier(); tier != "" {
		parts = append(parts, "tier "+tier)
	}
	if a, ok := src.SelectedAnnotation(); ok {
		parts = append(parts, fmt.Sprintf("%q", a.Text))
	}
	info := strings.Join(parts, "  ")

	msg := st.Message
	msgStyle := th.Status
	switch st.Kind {
	case MessageWarning:
		msgStyle = th.StatusWarning
	case MessageError:
		msgStyle = th.StatusError
	}
	msgWidth := 0
	if msg != "" {
		msgWidth = min(TextWidth(msg)+1, (r.width-x)/2)
		msg = Truncate(msg, msgWidth-1)
	}

	r.drawText(x, y, r.width-x-msgWidth, Truncate(info, r.width-x-msgWidth), th.Status)
	if msg != "" {
		r.drawText(r.width-msgWidth, y, msgWidth, msg, msgStyle)
	}
}
