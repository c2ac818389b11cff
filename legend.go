package charts

import (
	svg "github.com/ajstarks/svgo"
)

const legendOffset = defaultFontSize * 1.6

type LegendItem struct {
	Title string
	Color string
}

// legendItems lists one entry per series for cartesian charts and one
// per row of the first series for polar charts.
func legendItems(cfg Config, extra Extra) []LegendItem {
	var list []LegendItem
	if _, ok := polarExtra(extra); ok {
		keys := cfg.Series.Keys()
		if len(keys) == 0 {
			return nil
		}
		ser, _ := cfg.Series.Get(keys[0])
		for _, row := range cfg.Data {
			list = append(list, LegendItem{
				Title: row.Text(cfg.labelField()),
				Color: orString(row.Text(orString(ser.Color, DefaultPieColorField)), DefaultColor),
			})
		}
		return list
	}
	for _, key := range cfg.Series.Keys() {
		ser, _ := cfg.Series.Get(key)
		list = append(list, LegendItem{
			Title: orString(ser.Title, key),
			Color: orString(ser.Color, DefaultColor),
		})
	}
	return list
}

// LegendSVG stacks the items vertically on the right of the view box.
func LegendSVG(lg Legend, items []LegendItem, vb ViewBox) string {
	var (
		rows   = len(items)
		height float64
		left   = vb.MaxX + labelGap*2
		top    float64
	)
	if lg.Title != "" {
		rows++
	}
	height = float64(rows) * legendOffset
	top = (vb.MaxY - height) / 2
	return render(func(canvas *svg.SVG) {
		if lg.Title != "" {
			writeText(canvas, NewPoint(left, top+legendOffset/2), "start", "middle", lg.Title)
			top += legendOffset
		}
		for i, it := range items {
			y := top + float64(i)*legendOffset + legendOffset/2
			canvas.Group(attr("data-legend-index", i))
			canvas.Path(getSquare(NewPoint(left+defaultFontSize/2, y), defaultFontSize/2), attr("fill", it.Color))
			writeText(canvas, NewPoint(left+defaultFontSize*1.5, y), "start", "middle", it.Title)
			canvas.Gend()
		}
	})
}
