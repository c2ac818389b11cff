package charts

import (
	svg "github.com/ajstarks/svgo"
)

const (
	defaultLineWidth   = 0.5
	defaultAreaOpacity = 0.2
	defaultMarkerSize  = 1
	defaultMarkerWidth = 0.4
)

type LineChart struct{}

func (LineChart) Extra(cfg Config, axis Axis, vb ViewBox) Extra {
	return BuildCartesian(cfg, axis, vb)
}

func (LineChart) Render(cfg Config, extra Extra, axis Axis, vb ViewBox) string {
	ex, ok := cartesianExtra(extra)
	if !ok {
		return ""
	}
	return makeLinePath(cfg, ex, axis, vb)
}

func (LineChart) CSS() string {
	return lineCSS
}

const lineCSS = `[data-markers] path { transition: fill-opacity .2s; }
[data-active] [data-markers] path, [data-markers] path[data-active] { fill-opacity: 1; }`

// SeriesLine is the geometry of one line series once stacking has been
// applied. Limit is empty when nothing bounds the area of the series.
type SeriesLine struct {
	Key    string
	Points []Point
	Limit  []Point
}

// stackLines computes the drawn points of every series in stack. Series
// of a named stack are offset by the running total of the previous ones
// and their limit is that running total. Other series get a limit from
// their area direction when they declare an area.
func stackLines(cfg Config, stack Stack, extra CartesianExtra, axis Axis, vb ViewBox) []SeriesLine {
	var (
		count = len(cfg.Data)
		prev  = make([]float64, count)
		list  = make([]SeriesLine, 0, len(stack.Series))
	)
	for i := range prev {
		prev[i] = extra.Zero
	}
	valueOf := func(p Point) float64 {
		if axis.Vertical() {
			return p.X
		}
		return p.Y
	}
	withValue := func(p Point, v float64) Point {
		if axis.Vertical() {
			p.X = v
		} else {
			p.Y = v
		}
		return p
	}
	for _, key := range stack.Series {
		var (
			ser, _ = cfg.Series.Get(key)
			raw    = extra.Norm[key]
			line   = SeriesLine{Key: key, Points: raw}
		)
		switch {
		case stack.Name != "":
			line.Points = make([]Point, len(raw))
			line.Limit = make([]Point, len(raw))
			for i, p := range raw {
				next := prev[i] + (valueOf(p) - extra.Zero)
				line.Limit[i] = withValue(p, prev[i])
				line.Points[i] = withValue(p, next)
				prev[i] = next
			}
		case ser.Area.Enabled(false):
			edge := areaEdge(ser.Area.Value.Towards, extra.Zero, axis, vb)
			line.Limit = make([]Point, len(raw))
			for i, p := range raw {
				line.Limit[i] = withValue(p, edge)
			}
		}
		list = append(list, line)
	}
	return list
}

func areaEdge(towards string, zero float64, axis Axis, vb ViewBox) float64 {
	switch towards {
	case TowardsMax:
		if axis.Vertical() {
			return vb.MaxX
		}
		return 0
	case TowardsZero:
		return zero
	default:
		if axis.Vertical() {
			return 0
		}
		return vb.MaxY
	}
}

func makeLinePath(cfg Config, extra CartesianExtra, axis Axis, vb ViewBox) string {
	return render(func(canvas *svg.SVG) {
		for ix, stack := range extra.Stacks {
			openStack(canvas, ix, stack.Name)
			for j, line := range stackLines(cfg, stack, extra, axis, vb) {
				ser, _ := cfg.Series.Get(line.Key)
				openSeries(canvas, j, line.Key)
				writeSeriesLine(canvas, ser, line)
				canvas.Gend()
			}
			canvas.Gend()
		}
	})
}

func writeSeriesLine(canvas *svg.SVG, ser Series, line SeriesLine) {
	if len(line.Points) == 0 {
		return
	}
	var (
		smooth = ser.smooth()
		stroke = []string{
			attr("fill", "none"),
			attr("stroke", orString(ser.Color, DefaultLineColor)),
			attr("stroke-width", orFloat(ser.Width, defaultLineWidth)),
			attr("stroke-dasharray", orString(ser.Dasharray, "none")),
		}
	)
	if smooth {
		canvas.Path(splinePath(line.Points), append([]string{attr("class", "line")}, stroke...)...)
	} else {
		canvas.Path(polylinePath(line.Points), append([]string{attr("class", "line")}, stroke...)...)
	}
	if ser.Area.Enabled(false) && len(line.Limit) > 0 {
		var (
			area = ser.Area.Value
			fill = []string{
				attr("class", "line-area"),
				attr("opacity", orPtr(area.Opacity, defaultAreaOpacity)),
				attr("fill", orString(area.Color, orString(ser.Color, DefaultLineColor))),
				attr("stroke", "none"),
				attr("stroke-width", 0),
			}
		)
		if smooth {
			canvas.Path(splineAreaPath(line.Points, line.Limit), fill...)
		} else {
			canvas.Path(polylineAreaPath(line.Points, line.Limit), fill...)
		}
	}
	if ser.Marker.Enabled(true) {
		canvas.Group(flag("data-markers"))
		writeMarkers(canvas, ser, line.Points)
		canvas.Gend()
	}
}

func writeMarkers(canvas *svg.SVG, ser Series, points []Point) {
	var (
		mark   = ser.Marker.Value
		shape  = getShape(mark.Shape)
		radius = orFloat(mark.Radius, defaultMarkerSize)
		attrs  = []string{
			attr("fill", orString(mark.Color, orString(ser.Color, DefaultMarker))),
			attr("fill-opacity", orPtr(mark.Opacity, 0)),
			attr("stroke-opacity", 1),
			attr("stroke-width", orFloat(mark.StrokeWidth, defaultMarkerWidth)),
			attr("stroke", orString(mark.Stroke, DefaultMarker)),
		}
	)
	for i, p := range points {
		canvas.Path(shape(p, radius), append([]string{attr("data-index", i)}, attrs...)...)
	}
}

func reversed(points []Point) []Point {
	rev := make([]Point, len(points))
	for i, p := range points {
		rev[len(points)-1-i] = p
	}
	return rev
}

// splineAreaPath closes the region between the spline through points and
// the spline through limit walked backwards.
func splineAreaPath(points, limit []Point) string {
	var (
		rev   = reversed(limit)
		first = points[0]
	)
	return "M " + first.String() + " " + splineSegments(points) +
		" L " + formatNumber(rev[0].X) + " " + formatNumber(rev[0].Y) + " " +
		splineSegments(rev) +
		" L " + formatNumber(first.X) + " " + formatNumber(first.Y) + " Z"
}

func polylineAreaPath(points, limit []Point) string {
	all := make([]Point, 0, len(points)+len(limit))
	all = append(all, points...)
	all = append(all, reversed(limit)...)
	return polylinePath(all) + " Z"
}
