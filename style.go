package charts

const (
	DefaultColor     = "grey"
	DefaultLineColor = "black"
	DefaultMarker    = "light-dark(black, white)"
)

// LineStyle describes a stroke: gridlines, axis lines, series lines.
type LineStyle struct {
	Color     string  `json:"color,omitempty"`
	Width     float64 `json:"width,omitempty"`
	Dasharray string  `json:"dasharray,omitempty"`
}

func (s LineStyle) color(def string) string {
	return orString(s.Color, def)
}

func (s LineStyle) width(def float64) float64 {
	return orFloat(s.Width, def)
}

func (s LineStyle) dasharray(def string) string {
	return orString(s.Dasharray, def)
}

type AxisLine struct {
	LineStyle
	Side string `json:"side,omitempty"`
}

const (
	SideTop    = "top"
	SideBottom = "bottom"
	SideLeft   = "left"
	SideRight  = "right"
)

type Tick struct {
	Size  float64 `json:"size,omitempty"`
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
}

type Marker struct {
	Shape       string   `json:"shape,omitempty"`
	Color       string   `json:"color,omitempty"`
	Opacity     *float64 `json:"opacity,omitempty"`
	Radius      float64  `json:"radius,omitempty"`
	Stroke      string   `json:"stroke,omitempty"`
	StrokeWidth float64  `json:"strokeWidth,omitempty"`
}

const (
	ShapeCircle  = "circle"
	ShapeSquare  = "square"
	ShapeDiamond = "diamond"
)

const (
	TowardsZero = "zero"
	TowardsMin  = "min"
	TowardsMax  = "max"
)

type Area struct {
	Towards string   `json:"towards,omitempty"`
	Color   string   `json:"color,omitempty"`
	Opacity *float64 `json:"opacity,omitempty"`
}

type Grid struct {
	XLine Toggle[LineStyle] `json:"xLine,omitzero"`
	YLine Toggle[LineStyle] `json:"yLine,omitzero"`
	XAxis Toggle[AxisLine]  `json:"xAxis,omitzero"`
	YAxis Toggle[AxisLine]  `json:"yAxis,omitzero"`
	XTick Toggle[Tick]      `json:"xTick,omitzero"`
	YTick Toggle[Tick]      `json:"yTick,omitzero"`
	Zero  Toggle[LineStyle] `json:"zero,omitzero"`
}

type Highlight struct {
	Opacity float64 `json:"opacity,omitempty"`
	Color   string  `json:"color,omitempty"`
}

type Tooltip struct {
	ByEvent bool   `json:"byEvent,omitempty"`
	CSS     string `json:"css,omitempty"`
	Offset  string `json:"offset,omitempty"`
	Delay   int    `json:"delay,omitempty"`
}

type Labels struct {
	Field string `json:"field,omitempty"`
	CSS   string `json:"css,omitempty"`
}

type Legend struct {
	Title string `json:"title,omitempty"`
}

type MinSize struct {
	L string `json:"l,omitempty"`
	R string `json:"r,omitempty"`
	T string `json:"t,omitempty"`
	B string `json:"b,omitempty"`
}

func orString(str, def string) string {
	if str == "" {
		return def
	}
	return str
}

func orFloat(val, def float64) float64 {
	if val == 0 {
		return def
	}
	return val
}

func orPtr[T any](val *T, def T) T {
	if val == nil {
		return def
	}
	return *val
}
