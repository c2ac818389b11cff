package charts

import (
	"strings"
)

type ShapeFunc func(Point, float64) string

func getShape(name string) ShapeFunc {
	switch name {
	case ShapeSquare:
		return getSquare
	case ShapeDiamond:
		return getDiamond
	default:
		return getCircle
	}
}

func getCircle(pos Point, radius float64) string {
	var (
		r = formatNumber(radius)
		d = formatNumber(2 * radius)
	)
	return "M" + formatNumber(pos.X-radius) + " " + formatNumber(pos.Y) +
		" a" + r + " " + r + " 0 1 0 " + d + " 0" +
		" a" + r + " " + r + " 0 1 0 -" + d + " 0 Z"
}

func getSquare(pos Point, radius float64) string {
	rec := Rect{
		X: pos.X - radius,
		Y: pos.Y - radius,
		W: 2 * radius,
		H: 2 * radius,
	}
	return rec.path()
}

func getDiamond(pos Point, radius float64) string {
	return polylinePath([]Point{
		NewPoint(pos.X, pos.Y-radius),
		NewPoint(pos.X+radius, pos.Y),
		NewPoint(pos.X, pos.Y+radius),
		NewPoint(pos.X-radius, pos.Y),
	}) + " Z"
}

func linePath(x1, y1, x2, y2 float64) string {
	return "M" + formatNumber(x1) + " " + formatNumber(y1) +
		" L" + formatNumber(x2) + " " + formatNumber(y2)
}

func polylinePath(points []Point) string {
	var str strings.Builder
	for i, p := range points {
		if i == 0 {
			str.WriteString("M")
		} else {
			str.WriteString(" L")
		}
		str.WriteString(p.String())
	}
	return str.String()
}

// catmullRom converts a polyline into cubic bezier segments. Each returned
// triple holds both control points and the end point of one segment,
// starting from the first point of the input.
func catmullRom(points []Point) [][3]Point {
	var (
		last = len(points) - 1
		list [][3]Point
	)
	at := func(i int) Point {
		return points[max(0, min(i, last))]
	}
	for i := 0; i < last; i++ {
		var (
			p0 = at(i - 1)
			p1 = at(i)
			p2 = at(i + 1)
			p3 = at(i + 2)
			c1 = NewPoint((-p0.X+6*p1.X+p2.X)/6, (-p0.Y+6*p1.Y+p2.Y)/6)
			c2 = NewPoint((p1.X+6*p2.X-p3.X)/6, (p1.Y+6*p2.Y-p3.Y)/6)
		)
		list = append(list, [3]Point{c1, c2, p2})
	}
	return list
}

func splineSegments(points []Point) string {
	var str strings.Builder
	for i, seg := range catmullRom(points) {
		if i > 0 {
			str.WriteString(" ")
		}
		str.WriteString("C")
		str.WriteString(seg[0].String())
		str.WriteString(" ")
		str.WriteString(seg[1].String())
		str.WriteString(" ")
		str.WriteString(seg[2].String())
	}
	return str.String()
}

func splinePath(points []Point) string {
	if len(points) == 0 {
		return ""
	}
	return "M" + points[0].String() + " " + splineSegments(points)
}
