package charts

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"
)

var ErrIndex = errors.New("row index out of range")

type Padding struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

func (p Padding) Horizontal() float64 {
	return p.Left + p.Right
}

func (p Padding) Vertical() float64 {
	return p.Top + p.Bottom
}

// Markup holds the layers of a rendered chart. Highlight, Grid, Labels
// and Legend stay empty for kinds or configs that do not use them.
type Markup struct {
	ViewBox   ViewBox
	Highlight string
	Grid      string
	Labels    string
	Legend    string
	Data      string
	CSS       string
}

const (
	labelMargin  = 12
	legendMargin = 32
)

func (m Markup) padding() Padding {
	var pad Padding
	if m.Labels != "" {
		pad.Left = labelMargin
		pad.Bottom = labelMargin / 2
		pad.Top = labelMargin / 2
		pad.Right = labelMargin / 2
	}
	if m.Legend != "" {
		pad.Right += legendMargin
	}
	return pad
}

// WriteDocument writes m as a standalone SVG document of the given size.
// The view box grows to make room for labels and legend.
func (m Markup) WriteDocument(w io.Writer, width, height int) error {
	var (
		bw     = bufio.NewWriter(w)
		canvas = svg.New(bw)
		pad    = m.padding()
		vb     = m.ViewBox
	)
	if vb.MaxX == 0 || vb.MaxY == 0 {
		vb = DefaultViewBox()
	}
	canvas.Startview(width, height,
		int(-pad.Left), int(-pad.Top),
		int(math.Ceil(vb.MaxX+pad.Horizontal())), int(math.Ceil(vb.MaxY+pad.Vertical())),
	)
	if m.CSS != "" {
		canvas.Style("text/css", m.CSS)
	}
	layers := []struct {
		id   string
		body string
	}{
		{id: "highlight", body: m.Highlight},
		{id: "grid", body: m.Grid},
		{id: "labels", body: m.Labels},
		{id: "legend", body: m.Legend},
		{id: "data", body: m.Data},
	}
	for _, layer := range layers {
		if layer.body == "" && layer.id != "data" {
			continue
		}
		canvas.Gid(layer.id)
		io.WriteString(canvas.Writer, layer.body)
		canvas.Gend()
	}
	canvas.End()
	return bw.Flush()
}

func (m Markup) String() string {
	var str strings.Builder
	m.WriteDocument(&str, int(m.ViewBox.MaxX), int(m.ViewBox.MaxY))
	return str.String()
}

// Render runs one full render cycle of r for cfg.
func Render(r Renderer, cfg Config, axis Axis, vb ViewBox) Markup {
	cfg, extra := prepare(r, cfg, axis, vb)
	return compose(r, cfg, extra, axis, vb)
}

func prepare(r Renderer, cfg Config, axis Axis, vb ViewBox) (Config, Extra) {
	if f, ok := r.(DataFormatter); ok {
		cfg = cfg.withData(f.FormatData(cfg.Data))
	}
	return cfg, r.Extra(cfg, axis, vb)
}

func compose(r Renderer, cfg Config, extra Extra, axis Axis, vb ViewBox) Markup {
	var (
		m   = Markup{ViewBox: vb}
		css []string
	)
	m.Data = r.Render(cfg, extra, axis, vb)
	if ex, ok := cartesianExtra(extra); ok {
		css = append(css, cartesianCSS)
		if cfg.Grid.Enabled(true) {
			m.Grid = GridSVG(cfg.Grid.Value, ex, axis, vb)
		}
		if cfg.Highlight.Enabled(true) {
			m.Highlight = HighlightSVG(ex, axis, vb)
			css = append(css, highlightCSS(cfg.Highlight.Value))
		}
		if cfg.Labels.Enabled(false) {
			m.Labels = LabelSVG(cfg.Grid.Value, ex, axis, vb)
			if str := cfg.Labels.Value.CSS; str != "" {
				css = append(css, str)
			}
		}
	} else if _, ok := polarExtra(extra); ok {
		css = append(css, polarCSS)
	}
	if s, ok := r.(Styler); ok {
		css = append(css, s.CSS())
	}
	if str := cfg.Tooltip.Value.CSS; str != "" && cfg.Tooltip.Enabled(true) {
		css = append(css, str)
	}
	if lg := legendItems(cfg, extra); len(lg) > 0 && cfg.Legend.Enabled(false) {
		m.Legend = LegendSVG(cfg.Legend.Value, lg, vb)
	}
	m.CSS = strings.Join(css, "\n")
	return m
}

const cartesianCSS = `[data-series] { transition: all 200ms ease-in; }
svg:has([data-series]:hover) [data-series]:not(:hover) { opacity: 0.5; }`

const polarCSS = `[data-series] [data-index] { transition: all 200ms ease-in; }
svg:has([data-series] [data-index]:hover) [data-series] > [data-index]:not(:hover) { filter: grayscale(90%); opacity: 0.2; }`

// markActive flags every element of layer carrying the given index.
func markActive(layer string, index int) string {
	if index < 0 || layer == "" {
		return layer
	}
	needle := `data-index="` + strconv.Itoa(index) + `"`
	return strings.ReplaceAll(layer, needle, needle+` data-active=""`)
}

// Bounds is the on-screen rectangle a chart is drawn into.
type Bounds struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Frame keeps the state of one chart between renders: the layout, the
// last config with its extra config and the active row and series.
type Frame struct {
	Kind     string
	Renderer Renderer

	axis    Axis
	viewBox ViewBox

	config Config
	extra  Extra
	markup Markup
	ready  bool

	active int
	series string
}

func NewFrame(kind string, r Renderer) *Frame {
	return &Frame{
		Kind:     kind,
		Renderer: r,
		axis:     AxisX,
		viewBox:  DefaultViewBox(),
		active:   -1,
	}
}

func (f *Frame) Axis() Axis {
	return f.axis
}

func (f *Frame) ViewBox() ViewBox {
	return f.viewBox
}

func (f *Frame) Config() Config {
	return f.config
}

func (f *Frame) Extra() Extra {
	return f.extra
}

// SetLayout changes the axis and the aspect ratio. The next Update
// recomputes everything.
func (f *Frame) SetLayout(axis Axis, ratio string) {
	vb := ViewBoxFromRatio(ratio)
	if axis == f.axis && vb == f.viewBox {
		return
	}
	f.axis = axis
	f.viewBox = vb
	f.ready = false
}

// Update renders cfg and reports whether anything changed since the
// previous call. An unchanged config keeps the previous extra config.
func (f *Frame) Update(cfg Config) (Markup, bool) {
	if f.ready && reflect.DeepEqual(cfg, f.config) {
		return f.current(), false
	}
	var formatted Config
	formatted, f.extra = prepare(f.Renderer, cfg, f.axis, f.viewBox)
	f.markup = compose(f.Renderer, formatted, f.extra, f.axis, f.viewBox)
	f.config = cfg
	f.ready = true
	return f.current(), true
}

func (f *Frame) Render(cfg Config) Markup {
	m, _ := f.Update(cfg)
	return m
}

// SetActive marks the row at index as active. A negative index clears
// the selection.
func (f *Frame) SetActive(index int, series string) Markup {
	if index < 0 {
		index = -1
	}
	f.active = index
	f.series = series
	return f.current()
}

func (f *Frame) Active() (int, string) {
	return f.active, f.series
}

func (f *Frame) current() Markup {
	m := f.markup
	m.Highlight = markActive(m.Highlight, f.active)
	m.Data = markActive(m.Data, f.active)
	return m
}

func (f *Frame) rows() []Row {
	if d, ok := f.Renderer.(DataFormatter); ok {
		return d.FormatData(f.config.Data)
	}
	return f.config.Data
}

// ActiveIndex maps a position on screen to the index of the nearest row.
// It returns -1 when nothing is under the position.
func (f *Frame) ActiveIndex(x, y float64, bounds Bounds) int {
	if !f.ready || bounds.Width <= 0 || bounds.Height <= 0 {
		return -1
	}
	if ex, ok := polarExtra(f.extra); ok {
		var (
			px  = (x - bounds.Left) * f.viewBox.MaxX / bounds.Width
			py  = (y - bounds.Top) * f.viewBox.MaxY / bounds.Height
			key = f.series
		)
		if key == "" {
			keys := f.config.Series.Keys()
			if len(keys) == 0 {
				return -1
			}
			key = keys[0]
		}
		return WedgeAt(f.config, ex, key, px, py)
	}
	count := len(f.rows()) - 1
	switch {
	case count < 0:
		return -1
	case count == 0:
		return 0
	}
	var index int
	if f.axis.Vertical() {
		step := bounds.Height / float64(count)
		ind := (y - bounds.Top + 0.5*step) / step
		index = count - int(math.Floor(ind))
	} else {
		step := bounds.Width / float64(count)
		ind := (x - bounds.Left + 0.5*step) / step
		index = int(math.Floor(ind))
	}
	if index < 0 || index > count {
		return -1
	}
	return index
}

// Tooltip renders the tooltip of the row at index using the active
// series. It returns an empty string when tooltips are off.
func (f *Frame) Tooltip(index int) (string, error) {
	if !f.ready || !f.config.Tooltip.Enabled(true) {
		return "", nil
	}
	rows := f.rows()
	if index < 0 || index >= len(rows) {
		return "", fmt.Errorf("%w: %d", ErrIndex, index)
	}
	_, polar := polarExtra(f.extra)
	return DefaultTooltip(f.config, rows[index], f.series, polar)
}
