// Package render рисует вид календаря в PNG по готовой раскладке.
package render

import (
	"bytes"
	"errors"
	"image/color"
	"sort"
	"strings"
	"time"

	"github.com/Freeeeeet/tutor_calendar/internal/calendar"
	"github.com/Freeeeeet/tutor_calendar/internal/calendar/layout"
	"github.com/Freeeeeet/tutor_calendar/internal/calendar/status"
	"github.com/fogleman/gg"
)

// Константы размеров и отступов
const (
	DefaultHeight = 900

	headerHeight         = 90
	footerHeight         = 12
	leftLabelsWidth      = 70
	legendWidth          = 170
	columnWidth          = 180
	collapsedColumnWidth = 44
	columnPaddingX       = 6
	minCardHeight        = 6.0
	cardBorderRadius     = 5.0
	shadowOffset         = 2.0
	cardTextMinHeight    = 14.0
)

// Константы шрифтов
const (
	titleFontSize      = 24.0
	columnFontSize     = 16.0
	hourLabelFontSize  = 15.0
	cardFontSize       = 12.0
	badgeFontSize      = 13.0
	legendItemFontSize = 12.0
)

// Цветовая схема
var (
	bgColor          = color.RGBA{245, 246, 248, 255}
	textColor        = color.RGBA{80, 85, 90, 220}
	hourLabelColor   = color.RGBA{110, 115, 120, 200}
	hourLineColor    = color.NRGBA{150, 150, 150, 255}
	todayBgColor     = color.NRGBA{255, 99, 71, 60}
	evenColumnColor  = color.NRGBA{240, 240, 240, 255}
	oddColumnColor   = color.NRGBA{228, 228, 228, 255}
	collapsedColor   = color.NRGBA{205, 208, 212, 255}
	badgeColor       = color.RGBA{90, 110, 140, 230}
	badgeTextColor   = color.RGBA{255, 255, 255, 255}
	currentTimeColor = color.NRGBA{255, 80, 80, 200}
	cardTextColor    = color.RGBA{20, 24, 28, 230}
	cardShadowColor  = color.RGBA{0, 0, 0, 20}
	legendTextColor  = color.RGBA{90, 95, 100, 220}
	legendItemColor  = color.RGBA{70, 74, 78, 220}
	emptyTextColor   = color.RGBA{130, 135, 140, 220}
)

// ghostAlpha прозрачность карточки предложенного занятия
const ghostAlpha = 90

// ErrNilView вид не передан
var ErrNilView = errors.New("nil calendar view")

// Options параметры отрисовки
type Options struct {
	// Height высота изображения; 0 - DefaultHeight
	Height int
	// Now текущее время для линии "сейчас"; нулевое значение - линия не рисуется
	Now time.Time
}

// grid вычисленная геометрия холста
type grid struct {
	view    *calendar.View
	xs      []float64
	widths  []float64
	width   int
	height  int
	factor  float64
	gridTop float64
}

// y переводит минуты от полуночи в координату на холсте
func (g *grid) y(minutes int) float64 {
	return g.gridTop + g.view.Layout.Scale.Offset(minutes)*g.factor
}

func (g *grid) gridBottom() float64 {
	return g.gridTop + g.view.Layout.Height()*g.factor
}

func (g *grid) gridRight() float64 {
	if len(g.xs) == 0 {
		return leftLabelsWidth
	}
	last := len(g.xs) - 1
	return g.xs[last] + g.widths[last]
}

// Render рисует вид календаря в PNG
func Render(view *calendar.View, statuses *status.Registry, opts Options) ([]byte, error) {
	if view == nil {
		return nil, ErrNilView
	}
	if statuses == nil {
		statuses = status.Default()
	}

	g := newGrid(view, opts)

	dc := createCanvas(g.width, g.height)
	drawHeader(dc, view)
	if len(view.Columns) == 0 {
		drawEmpty(dc, g)
		return encodeImage(dc)
	}

	drawHourLabels(dc, g)
	drawColumns(dc, g)
	drawCards(dc, g, statuses)
	drawCurrentTimeLine(dc, g, opts.Now)
	drawLegend(dc, g, statuses)

	return encodeImage(dc)
}

func newGrid(view *calendar.View, opts Options) *grid {
	height := opts.Height
	if height <= 0 {
		height = DefaultHeight
	}

	g := &grid{
		view:    view,
		height:  height,
		gridTop: headerHeight,
		factor:  1,
	}

	x := float64(leftLabelsWidth)
	for _, col := range view.Columns {
		w := float64(columnWidth)
		if col.Collapsed {
			w = collapsedColumnWidth
		}
		g.xs = append(g.xs, x)
		g.widths = append(g.widths, w)
		x += w
	}
	g.width = int(x) + legendWidth

	available := float64(height - headerHeight - footerHeight)
	if full := view.Layout.Height(); full > 0 && available > 0 {
		g.factor = available / full
	}
	return g
}

// createCanvas создает новый контекст рисования с фоном
func createCanvas(width, height int) *gg.Context {
	dc := gg.NewContext(width, height)
	dc.SetColor(bgColor)
	dc.Clear()
	return dc
}

// Title заголовок изображения
func Title(view *calendar.View) string {
	var title string
	if view.Mode == calendar.ModeWeekly {
		title = view.From.Format("02 Jan") + " - " + view.To.Format("02 Jan 2006")
	} else {
		title = view.From.Format("Monday, 02 Jan 2006")
	}
	if view.Location != "" {
		title += " · " + view.Location
	}
	return title
}

// drawHeader рисует заголовок с датой и филиалом
func drawHeader(dc *gg.Context, view *calendar.View) {
	loadFont(dc, titleFontSize, FontStyleBold)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(Title(view), float64(leftLabelsWidth), float64(headerHeight)/4, 0, 0.5)
}

func drawEmpty(dc *gg.Context, g *grid) {
	loadFont(dc, columnFontSize, FontStyleMedium)
	dc.SetColor(emptyTextColor)
	dc.DrawStringAnchored("No sessions", float64(g.width)/2, float64(g.height)/2, 0.5, 0.5)
}

// drawHourLabels рисует колонку с часами слева
func drawHourLabels(dc *gg.Context, g *grid) {
	loadFont(dc, hourLabelFontSize, FontStyleMedium)
	dc.SetColor(hourLabelColor)

	hours := g.view.Layout.Hours
	for h := hours.Start; h <= hours.End; h++ {
		dc.DrawStringAnchored(formatHourLabel(h), float64(leftLabelsWidth)-8, g.y(h*60), 1, 0.5)
	}
}

// drawColumns рисует фон, заголовки и линии часов для каждой колонки
func drawColumns(dc *gg.Context, g *grid) {
	top := g.gridTop
	bottom := g.gridBottom()

	for i, col := range g.view.Columns {
		x, w := g.xs[i], g.widths[i]

		switch {
		case col.Collapsed:
			dc.SetColor(collapsedColor)
		case g.view.Mode == calendar.ModeWeekly && calendar.IsSameDay(col.Date, g.view.Today):
			dc.SetColor(todayBgColor)
		case i%2 == 0:
			dc.SetColor(evenColumnColor)
		default:
			dc.SetColor(oddColumnColor)
		}
		dc.DrawRectangle(x, top, w, bottom-top)
		dc.Fill()

		drawColumnHeader(dc, col, x, w)
		drawHourLines(dc, g, x, w)

		if col.Collapsed {
			drawCollapsedBadge(dc, g.view.Layout.CollapsedCounts[col.Key], x, w, top)
		}
	}
}

func drawColumnHeader(dc *gg.Context, col calendar.Column, x, w float64) {
	loadFont(dc, columnFontSize, FontStyleBold)
	dc.SetColor(textColor)

	title := col.Title
	if col.Collapsed {
		title = initials(layout.TutorSortName(title))
	}
	title = fitText(dc, title, w-4)
	dc.DrawStringAnchored(title, x+w/2, float64(headerHeight)-10, 0.5, 0)
}

// drawHourLines рисует горизонтальные линии часов
func drawHourLines(dc *gg.Context, g *grid, x, w float64) {
	dc.SetLineWidth(0.3)
	dc.SetColor(hourLineColor)

	hours := g.view.Layout.Hours
	for h := hours.Start; h <= hours.End; h++ {
		hy := g.y(h * 60)
		dc.DrawLine(x, hy, x+w, hy)
		dc.Stroke()
	}
}

// drawCollapsedBadge рисует число скрытых занятий свёрнутой колонки
func drawCollapsedBadge(dc *gg.Context, count int, x, w, top float64) {
	const r = 14.0
	cx, cy := x+w/2, top+r+8

	dc.SetColor(badgeColor)
	dc.DrawCircle(cx, cy, r)
	dc.Fill()

	loadFont(dc, badgeFontSize, FontStyleBold)
	dc.SetColor(badgeTextColor)
	dc.DrawStringAnchored(formatCount(count), cx, cy, 0.5, 0.35)
}

// drawCards рисует карточки занятий. Карточки одной группы делят её высоту.
// Всё, что выходит за сетку часов, обрезается.
func drawCards(dc *gg.Context, g *grid, statuses *status.Registry) {
	dc.DrawRectangle(leftLabelsWidth, g.gridTop, g.gridRight()-leftLabelsWidth, g.gridBottom()-g.gridTop)
	dc.Clip()
	defer dc.ResetClip()

	groupSizes := make(map[string]int)
	for _, p := range g.view.Layout.Placements {
		groupSizes[p.GroupKey]++
	}

	for i, col := range g.view.Columns {
		if col.Collapsed {
			continue
		}
		inner := g.widths[i] - columnPaddingX*2
		colX := g.xs[i] + columnPaddingX

		for _, p := range g.view.Layout.ByScope(col.Key) {
			rowHeight := p.Height * g.factor / float64(groupSizes[p.GroupKey])
			if rowHeight < minCardHeight {
				rowHeight = minCardHeight
			}

			card := cardRect{
				x: colX + inner*p.LeftPercent/100,
				y: g.gridTop + p.Top*g.factor + float64(p.Order)*rowHeight,
				w: inner * p.WidthPercent / 100,
				h: rowHeight,
			}
			drawCard(dc, card, p, statuses.Lookup(p.Entry.Status), g.view.Mode)
		}
	}
}

type cardRect struct {
	x, y, w, h float64
}

// drawCard рисует одну карточку
func drawCard(dc *gg.Context, r cardRect, p layout.Placement, cfg status.Config, mode calendar.Mode) {
	x, y, w, h := r.x+1, r.y+1, r.w-2, r.h-2
	if w <= 0 || h <= 0 {
		return
	}

	fill := cfg.Color
	ghost := cfg.Ghost || p.Entry.Proposed
	if ghost {
		fill.A = ghostAlpha
	} else {
		dc.SetColor(cardShadowColor)
		dc.DrawRoundedRectangle(x+shadowOffset, y+shadowOffset, w, h, cardBorderRadius)
		dc.Fill()
	}

	dc.SetColor(fill)
	dc.DrawRoundedRectangle(x, y, w, h, cardBorderRadius)
	dc.Fill()

	dc.SetColor(darkenColor(cfg.Color, 0.8))
	dc.SetLineWidth(1)
	if ghost {
		dc.SetDash(4, 3)
	}
	dc.DrawRoundedRectangle(x, y, w, h, cardBorderRadius)
	dc.Stroke()
	dc.SetDash()

	if h < cardTextMinHeight {
		return
	}

	loadFont(dc, cardFontSize, FontStyleMedium)
	dc.SetColor(cardTextColor)
	dc.DrawStringAnchored(fitText(dc, cardLabel(p.Entry, mode), w-8), x+4, y+h/2, 0, 0.35)
}

// cardLabel текст карточки: ученик, класс, тьютор в недельном виде
func cardLabel(e layout.Entry, mode calendar.Mode) string {
	parts := []string{e.StudentName}
	if grade := e.GradeKey(); grade != "" {
		parts = append(parts, grade)
	}
	if mode == calendar.ModeWeekly && e.TutorName != "" {
		parts = append(parts, layout.TutorSortName(e.TutorName))
	}
	return strings.Join(parts, " · ")
}

// drawCurrentTimeLine рисует красную линию текущего времени
func drawCurrentTimeLine(dc *gg.Context, g *grid, now time.Time) {
	if now.IsZero() {
		return
	}

	minutes := now.Hour()*60 + now.Minute()
	hours := g.view.Layout.Hours
	if minutes < hours.Start*60 || minutes > hours.End*60 {
		return
	}
	y := g.y(minutes)

	dc.SetColor(currentTimeColor)
	dc.SetLineWidth(2.0)

	switch g.view.Mode {
	case calendar.ModeWeekly:
		for i, col := range g.view.Columns {
			if calendar.IsSameDay(col.Date, now) {
				dc.DrawLine(g.xs[i], y, g.xs[i]+g.widths[i], y)
				dc.Stroke()
			}
		}
	default:
		if calendar.IsSameDay(g.view.From, now) {
			dc.DrawLine(float64(leftLabelsWidth), y, g.gridRight(), y)
			dc.Stroke()
		}
	}
}

// legendStatuses статусы, встречающиеся в виде, в порядке сортировки
func legendStatuses(view *calendar.View, statuses *status.Registry) []status.Config {
	seen := make(map[string]bool)
	var items []status.Config
	for _, p := range view.Layout.Placements {
		if seen[p.Entry.Status] {
			continue
		}
		seen[p.Entry.Status] = true
		items = append(items, statuses.Lookup(p.Entry.Status))
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].SortOrder != items[j].SortOrder {
			return items[i].SortOrder < items[j].SortOrder
		}
		return items[i].Name < items[j].Name
	})
	return items
}

// drawLegend рисует легенду справа
func drawLegend(dc *gg.Context, g *grid, statuses *status.Registry) {
	items := legendStatuses(g.view, statuses)
	if len(items) == 0 {
		return
	}

	const boxW, boxH = 20.0, 14.0
	liX := g.gridRight() + 12
	liY := g.gridTop

	for _, item := range items {
		fill := item.Color
		if item.Ghost {
			fill.A = ghostAlpha
		}
		dc.SetColor(fill)
		dc.DrawRoundedRectangle(liX, liY, boxW, boxH, 3)
		dc.Fill()

		loadFont(dc, legendItemFontSize)
		dc.SetColor(legendItemColor)
		label := fitText(dc, item.Label, legendWidth-boxW-20)
		dc.DrawStringAnchored(label, liX+boxW+8, liY+boxH/2, 0, 0.35)
		liY += boxH + 10
	}

	if skipped := len(g.view.Layout.Skipped); skipped > 0 {
		loadFont(dc, legendItemFontSize)
		dc.SetColor(legendTextColor)
		dc.DrawStringAnchored("Unscheduled: "+formatCount(skipped), liX, liY+boxH/2, 0, 0.35)
	}
}

// darkenColor затемняет цвет на указанный множитель
func darkenColor(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: 255,
	}
}

// encodeImage кодирует изображение в PNG
func encodeImage(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
