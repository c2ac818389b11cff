package charts

import (
	"fmt"
	"html"

	svg "github.com/ajstarks/svgo"
)

const (
	defaultGridWidth = 0.1
	defaultGridDash  = "3 2"
	defaultAxisWidth = 0.4
	defaultTickSize  = 2
	defaultTickWidth = 0.4
	defaultFontSize  = 3
	labelGap         = 2.0
)

// GridSVG draws the grid of a cartesian chart: horizontal then vertical
// lines with their ticks and axis, then the zero level. Every part is on
// unless explicitly turned off.
func GridSVG(grid Grid, extra CartesianExtra, axis Axis, vb ViewBox) string {
	var (
		keyCount = len(extra.Keys) - 1
		valCount = len(extra.Vals) - 1
		yCount   = valCount
		xCount   = keyCount
	)
	if axis.Vertical() {
		yCount, xCount = keyCount, valCount
	}
	return render(func(canvas *svg.SVG) {
		canvas.Group(flag("data-y"))
		makeYPath(canvas, vb, yCount, grid)
		canvas.Gend()

		canvas.Group(flag("data-x"))
		makeXPath(canvas, vb, xCount, grid)
		canvas.Gend()

		canvas.Group(flag("data-zero"))
		if grid.Zero.Enabled(true) {
			makeZeroPath(canvas, grid.Zero.Value, extra.Zero, axis, vb)
		}
		canvas.Gend()
	})
}

func makeYPath(canvas *svg.SVG, vb ViewBox, count int, grid Grid) {
	var (
		line  = grid.YLine.Value
		tick  = grid.YTick.Value
		side  = grid.YAxis.Value.Side
		right = grid.YAxis.Enabled(true) && side == SideRight
		size  = orFloat(tick.Size, defaultTickSize)
		style = tickStyle(tick)
	)
	canvas.Group(flag("data-lines"))
	if grid.YLine.Enabled(true) {
		for _, y := range gridSteps(vb.MaxY, count) {
			writeLine(canvas, gridStyle(line), 0, y, vb.MaxX, y)
		}
	}
	canvas.Gend()

	canvas.Group(flag("data-ticks"))
	if grid.YTick.Enabled(true) {
		for _, y := range gridSteps(vb.MaxY, count) {
			if right {
				writeLine(canvas, style, vb.MaxX, y, vb.MaxX-size, y)
			} else {
				writeLine(canvas, style, size, y, 0, y)
			}
		}
	}
	canvas.Gend()

	canvas.Group(flag("data-axis"))
	if grid.YAxis.Enabled(true) {
		x := 0.0
		if right {
			x = vb.MaxX
		}
		writeLine(canvas, axisStyle(grid.YAxis.Value), x, 0, x, vb.MaxY)
	}
	canvas.Gend()
}

func makeXPath(canvas *svg.SVG, vb ViewBox, count int, grid Grid) {
	var (
		line  = grid.XLine.Value
		tick  = grid.XTick.Value
		side  = grid.XAxis.Value.Side
		top   = grid.XAxis.Enabled(true) && side == SideTop
		size  = orFloat(tick.Size, defaultTickSize)
		style = tickStyle(tick)
	)
	canvas.Group(flag("data-lines"))
	if grid.XLine.Enabled(true) {
		for _, x := range gridSteps(vb.MaxX, count) {
			writeLine(canvas, gridStyle(line), x, 0, x, vb.MaxY)
		}
	}
	canvas.Gend()

	canvas.Group(flag("data-ticks"))
	if grid.XTick.Enabled(true) {
		for _, x := range gridSteps(vb.MaxX, count) {
			if top {
				writeLine(canvas, style, x, size, x, 0)
			} else {
				writeLine(canvas, style, x, vb.MaxY, x, vb.MaxY-size)
			}
		}
	}
	canvas.Gend()

	canvas.Group(flag("data-axis"))
	if grid.XAxis.Enabled(true) {
		y := vb.MaxY
		if top {
			y = 0
		}
		writeLine(canvas, axisStyle(grid.XAxis.Value), 0, y, vb.MaxX, y)
	}
	canvas.Gend()
}

func makeZeroPath(canvas *svg.SVG, style LineStyle, level float64, axis Axis, vb ViewBox) {
	style = LineStyle{
		Color:     style.color(DefaultColor),
		Width:     style.width(defaultAxisWidth),
		Dasharray: style.dasharray("none"),
	}
	if axis.Vertical() {
		writeLine(canvas, style, level, 0, level, vb.MaxY)
	} else {
		writeLine(canvas, style, 0, level, vb.MaxX, level)
	}
}

// gridSteps splits extent into count equal intervals and returns the
// count+1 boundaries.
func gridSteps(extent float64, count int) []float64 {
	if count <= 0 {
		return nil
	}
	list := make([]float64, 0, count+1)
	for i := 0; i <= count; i++ {
		list = append(list, extent/float64(count)*float64(i))
	}
	return list
}

func gridStyle(s LineStyle) LineStyle {
	return LineStyle{
		Color:     s.color(DefaultColor),
		Width:     s.width(defaultGridWidth),
		Dasharray: s.dasharray(defaultGridDash),
	}
}

func axisStyle(s AxisLine) LineStyle {
	return LineStyle{
		Color: s.color(DefaultColor),
		Width: s.width(defaultAxisWidth),
	}
}

func tickStyle(t Tick) LineStyle {
	return LineStyle{
		Color: orString(t.Color, DefaultColor),
		Width: orFloat(t.Width, defaultTickWidth),
	}
}

func writeLine(canvas *svg.SVG, style LineStyle, x1, y1, x2, y2 float64) {
	canvas.Path(linePath(x1, y1, x2, y2),
		attr("stroke-width", style.Width),
		attr("stroke-dasharray", style.dasharray("none")),
		attr("stroke", style.Color),
		attr("fill", "none"),
	)
}

// HighlightSVG draws one invisible band per row centered on the row key.
// The first and last bands are half as wide as the others.
func HighlightSVG(extra CartesianExtra, axis Axis, vb ViewBox) string {
	var (
		count = len(extra.Keys)
		step  = extra.Step
	)
	return render(func(canvas *svg.SVG) {
		for ind := 0; ind < count; ind++ {
			var (
				start = float64(ind)*step - 0.5*step
				size  = step
				rec   Rect
				index = ind
			)
			if ind == 0 {
				start = 0
			}
			if ind == 0 || ind == count-1 {
				size = step / 2
			}
			if axis.Vertical() {
				index = count - ind - 1
				rec = Rect{X: 0, Y: start, W: vb.MaxX, H: size}
			} else {
				rec = Rect{X: start, Y: 0, W: size, H: vb.MaxY}
			}
			canvas.Path(rec.path(), attr("data-index", index))
		}
	})
}

func highlightCSS(hl Highlight) string {
	return fmt.Sprintf("#highlight [data-index] { fill: transparent; stroke: none; }\n"+
		"#highlight:has([data-active]) [data-index]:not([data-active]) { fill: oklch(from %s l c h / %s); }",
		orString(hl.Color, "currentColor"),
		formatNumber(orFloat(hl.Opacity, 0.1)),
	)
}

// LabelSVG writes the row keys along the key axis and the level values
// along the value axis, just outside the view box.
func LabelSVG(grid Grid, extra CartesianExtra, axis Axis, vb ViewBox) string {
	var (
		_, coords = keyCoords(len(extra.Keys), axis, vb)
		scale     = valueScaler(extra.Max, extra.Min, axis, vb)
		top       = grid.XAxis.Enabled(true) && grid.XAxis.Value.Side == SideTop
		right     = grid.YAxis.Enabled(true) && grid.YAxis.Value.Side == SideRight
	)
	xLabel := func(canvas *svg.SVG, x float64, str string) {
		y, base := vb.MaxY+labelGap, "hanging"
		if top {
			y, base = -labelGap, "auto"
		}
		writeText(canvas, NewPoint(x, y), "middle", base, str)
	}
	yLabel := func(canvas *svg.SVG, y float64, str string) {
		x, anchor := -labelGap, "end"
		if right {
			x, anchor = vb.MaxX+labelGap, "start"
		}
		writeText(canvas, NewPoint(x, y), anchor, "middle", str)
	}
	return render(func(canvas *svg.SVG) {
		canvas.Group(flag("data-keys"))
		for i, key := range extra.Keys {
			if key == "" {
				continue
			}
			if axis.Vertical() {
				yLabel(canvas, coords[i], key)
			} else {
				xLabel(canvas, coords[i], key)
			}
		}
		canvas.Gend()

		canvas.Group(flag("data-vals"))
		for _, v := range extra.Vals {
			pos := scale.Scale(v)
			if axis.Vertical() {
				xLabel(canvas, pos, formatNumber(v))
			} else {
				yLabel(canvas, pos, formatNumber(v))
			}
		}
		canvas.Gend()
	})
}

func writeText(canvas *svg.SVG, pos Point, anchor, baseline, str string) {
	fmt.Fprintf(canvas.Writer, "<text %s %s %s %s %s>%s</text>\n",
		attr("x", pos.X),
		attr("y", pos.Y),
		attr("font-size", defaultFontSize),
		attr("text-anchor", anchor),
		attr("dominant-baseline", baseline),
		html.EscapeString(str),
	)
}
