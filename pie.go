package charts

import (
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"
)

const (
	fullcircle = 2 * math.Pi
	halfturn   = 0.5
)

type PieChart struct{}

func (PieChart) Extra(cfg Config, _ Axis, vb ViewBox) Extra {
	return BuildPolar(cfg, vb)
}

func (PieChart) Render(cfg Config, extra Extra, _ Axis, _ ViewBox) string {
	ex, ok := polarExtra(extra)
	if !ok {
		return ""
	}
	return makePiePath(cfg, ex)
}

// Ring is the shape of one pie series relative to the view box radii.
type Ring struct {
	CenterX float64
	CenterY float64
	InnerX  float64
	InnerY  float64
	OuterX  float64
	OuterY  float64
	Start   float64
}

func makeRing(ser Series, extra PolarExtra) Ring {
	var (
		inner = ser.Inner
		outer = orPtr(ser.Outer, 1)
	)
	return Ring{
		CenterX: extra.RadX,
		CenterY: extra.RadY,
		InnerX:  inner * extra.RadX,
		InnerY:  inner * extra.RadY,
		OuterX:  outer * extra.RadX,
		OuterY:  outer * extra.RadY,
		Start:   orPtr(ser.Angle, 90) / 360,
	}
}

func getPosFromTurn(turn, cx, cy, rx, ry float64) Point {
	rad := fullcircle * turn
	return NewPoint(cx+rx*math.Cos(rad), cy+ry*math.Sin(rad))
}

func (r Ring) outer(sum float64) Point {
	return getPosFromTurn(sum-r.Start, r.CenterX, r.CenterY, r.OuterX, r.OuterY)
}

func (r Ring) inner(sum float64) Point {
	return getPosFromTurn(sum-r.Start, r.CenterX, r.CenterY, r.InnerX, r.InnerY)
}

// pieSums returns the cumulative share reached at the end of every
// wedge. A zero share marks a filler wedge that closes the circle.
func pieSums(norm []float64) []float64 {
	var (
		sums = make([]float64, len(norm))
		sum  float64
	)
	for i, v := range norm {
		if v != 0 {
			sum += v
		} else {
			sum = 1
		}
		sums[i] = sum
	}
	return sums
}

func makePiePath(cfg Config, extra PolarExtra) string {
	precision := cfg.precision()
	fixed := func(p Point) (string, string) {
		return formatFixed(p.X, precision), formatFixed(p.Y, precision)
	}
	return render(func(canvas *svg.SVG) {
		for _, key := range cfg.Series.Keys() {
			var (
				ser, _ = cfg.Series.Get(key)
				ring   = makeRing(ser, extra)
				field  = orString(ser.Color, DefaultPieColorField)
				norm   = extra.Norm[key]
				prevIn = ring.inner(0)
				prevOu = ring.outer(0)
			)
			canvas.Group(attr("data-series", key))
			for i, sum := range pieSums(norm) {
				var (
					inner = ring.inner(sum)
					outer = ring.outer(sum)
					large = "0"
					fill  string
				)
				if i < len(cfg.Data) {
					fill = cfg.Data[i].Text(field)
				}
				if norm[i] > halfturn {
					large = "1"
				}
				var (
					pix, piy = fixed(prevIn)
					pox, poy = fixed(prevOu)
					ix, iy   = fixed(inner)
					ox, oy   = fixed(outer)
					d        strings.Builder
				)
				d.WriteString("M " + pix + " " + piy)
				d.WriteString(" A " + formatNumber(ring.InnerX) + " " + formatNumber(ring.InnerY) + ", 0, " + large + ", 1, " + ix + " " + iy)
				d.WriteString(" L " + ox + "," + oy)
				d.WriteString(" A " + formatNumber(ring.OuterX) + " " + formatNumber(ring.OuterY) + ", 0, " + large + ", 0, " + pox + " " + poy)
				d.WriteString(" Z")
				canvas.Path(d.String(), attr("data-index", i), attr("fill", orString(fill, DefaultColor)), attr("stroke-width", 0))

				prevIn, prevOu = inner, outer
			}
			canvas.Gend()
		}
	})
}

// WedgeAt returns the index of the wedge of series key covering the
// view box coordinates x, y or -1 when none does.
func WedgeAt(cfg Config, extra PolarExtra, key string, x, y float64) int {
	ser, ok := cfg.Series.Get(key)
	if !ok || extra.RadX == 0 || extra.RadY == 0 {
		return -1
	}
	var (
		ring = makeRing(ser, extra)
		dx   = x - ring.CenterX
		dy   = y - ring.CenterY
	)
	if ring.OuterX == 0 || ring.OuterY == 0 {
		return -1
	}
	var (
		outer = math.Hypot(dx/ring.OuterX, dy/ring.OuterY)
		inner = 0.0
	)
	if ring.InnerX > 0 && ring.InnerY > 0 {
		inner = math.Hypot(dx/ring.InnerX, dy/ring.InnerY)
	}
	if outer > 1 || (ring.InnerX > 0 && inner < 1) {
		return -1
	}
	turn := math.Atan2(dy/ring.OuterY, dx/ring.OuterX)/fullcircle + ring.Start
	turn -= math.Floor(turn)
	for i, sum := range pieSums(extra.Norm[key]) {
		if turn <= sum {
			return i
		}
	}
	return -1
}
