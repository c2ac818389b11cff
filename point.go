package charts

import (
	"math"
	"strconv"
	"strings"
)

type Point struct {
	X float64
	Y float64
}

func NewPoint(x, y float64) Point {
	return Point{
		X: x,
		Y: y,
	}
}

func (p Point) Reverse() Point {
	return Point{
		X: p.Y,
		Y: p.X,
	}
}

func (p Point) String() string {
	return formatNumber(p.X) + "," + formatNumber(p.Y)
}

// Axis is the geometric axis carrying the row ordinal (the key axis).
type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
)

func ParseAxis(str string) Axis {
	if str == string(AxisY) {
		return AxisY
	}
	return AxisX
}

func (a Axis) Vertical() bool {
	return a == AxisY
}

const DefaultExtent = 100.0

type ViewBox struct {
	MaxX float64
	MaxY float64
}

func DefaultViewBox() ViewBox {
	return ViewBox{
		MaxX: DefaultExtent,
		MaxY: DefaultExtent,
	}
}

// ViewBoxFromRatio accepts "w/h" or a single number. The shorter side
// keeps the default extent and the longer one is scaled and rounded.
func ViewBoxFromRatio(ratio string) ViewBox {
	vb := DefaultViewBox()
	ratio = strings.TrimSpace(ratio)
	if ratio == "" {
		return vb
	}
	var (
		w, h   = ratio, "1"
		parts  = strings.SplitN(ratio, "/", 2)
		width  float64
		height float64
		err    error
	)
	if len(parts) == 2 {
		w, h = parts[0], parts[1]
	}
	if width, err = strconv.ParseFloat(strings.TrimSpace(w), 64); err != nil {
		return vb
	}
	if height, err = strconv.ParseFloat(strings.TrimSpace(h), 64); err != nil || height == 0 {
		return vb
	}
	switch r := width / height; {
	case r > 1:
		vb.MaxX = math.Round(DefaultExtent * r)
	case r > 0 && r < 1:
		vb.MaxY = math.Round(DefaultExtent / r)
	}
	return vb
}

func (v ViewBox) extent(a Axis) float64 {
	if a.Vertical() {
		return v.MaxY
	}
	return v.MaxX
}
