package charts

import (
	svg "github.com/ajstarks/svgo"
)

type BarChart struct{}

func (BarChart) Extra(cfg Config, axis Axis, vb ViewBox) Extra {
	return BuildCartesian(cfg, axis, vb)
}

// FormatData surrounds rows with an empty record on each side so that
// the first and last bars are not cut by the view box.
func (BarChart) FormatData(rows []Row) []Row {
	all := make([]Row, 0, len(rows)+2)
	all = append(all, Row{})
	all = append(all, rows...)
	return append(all, Row{})
}

func (BarChart) Render(cfg Config, extra Extra, axis Axis, _ ViewBox) string {
	ex, ok := cartesianExtra(extra)
	if !ok {
		return ""
	}
	return makeBarPath(cfg, ex, axis)
}

type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

func (r Rect) path() string {
	return "M" + formatNumber(r.X) + " " + formatNumber(r.Y) +
		" h" + formatNumber(r.W) +
		" v" + formatNumber(r.H) +
		" h" + formatNumber(-r.W) + " Z"
}

// stackBars lays out the bars of every series in stack. Values above the
// baseline pile up from the zero level in one direction and values below
// it in the other, each with its own running offset per row.
func stackBars(stack Stack, index int, extra CartesianExtra, axis Axis) [][]Rect {
	var (
		count  = len(extra.Keys)
		up     = make([]float64, count)
		down   = make([]float64, count)
		size   = 0.5 * extra.Step / (3 * float64(len(extra.Stacks)))
		offset = -0.25*extra.Step + float64(index)*3*size
		zero   = extra.Zero
		list   = make([][]Rect, 0, len(stack.Series))
	)
	for i := range up {
		up[i], down[i] = zero, zero
	}
	for _, key := range stack.Series {
		var (
			points = extra.Norm[key]
			rects  = make([]Rect, len(points))
		)
		for i, pt := range points {
			var (
				pos = pt.Y
				at  = pt.X
				ext float64
				rec Rect
			)
			if axis.Vertical() {
				pos, at = pt.X, pt.Y
			}
			if pos <= zero {
				ext = zero - pos
				rec = Rect{X: at + offset, Y: up[i] - ext, W: 2 * size, H: ext}
				up[i] -= ext
			} else {
				ext = pos - zero
				rec = Rect{X: at + offset, Y: down[i], W: 2 * size, H: ext}
				down[i] += ext
			}
			if axis.Vertical() {
				rec = Rect{X: rec.Y, Y: rec.X, W: rec.H, H: rec.W}
			}
			rects[i] = rec
		}
		list = append(list, rects)
	}
	return list
}

func makeBarPath(cfg Config, extra CartesianExtra, axis Axis) string {
	return render(func(canvas *svg.SVG) {
		for ix, stack := range extra.Stacks {
			openStack(canvas, ix, stack.Name)
			for j, rects := range stackBars(stack, ix, extra, axis) {
				var (
					key    = stack.Series[j]
					ser, _ = cfg.Series.Get(key)
					attrs  = []string{attr("fill", orString(ser.Color, DefaultColor))}
				)
				if ser.Opacity != nil {
					attrs = append(attrs, attr("fill-opacity", *ser.Opacity))
				}
				openSeries(canvas, j, key)
				for i, rec := range rects {
					canvas.Path(rec.path(), append([]string{attr("data-index", i)}, attrs...)...)
				}
				canvas.Gend()
			}
			canvas.Gend()
		}
	})
}
