package charts

import (
	"fmt"
	"html/template"
	"strings"
)

const tooltipTemplate = `<div style="padding: 0.5rem;display:flex;flex-direction:column;gap: 0.5rem;">
{{- range . -}}
<div style="display:flex;gap:0.25rem;align-items:center;justify-content:space-between;">
<div style="display:flex;gap:0.25rem;align-items:center;"><div style="background:{{ .Color }};width:0.75rem;height:0.75rem;border-radius:0.15rem;"></div><span>{{ .Title }}</span></div>
<span>{{ .Value }}</span>
</div>
{{- end -}}
</div>`

var tooltipHTML = template.Must(template.New("tooltip").Parse(tooltipTemplate))

type TooltipItem struct {
	Color string
	Title string
	Value string
}

// tooltipItems lists the series shown for row. When series is empty
// every series is listed. polar selects where the swatch color is read
// from: the row for pies, the series otherwise.
func tooltipItems(cfg Config, row Row, series string, polar bool) []TooltipItem {
	keys := cfg.Series.Keys()
	if series != "" {
		keys = []string{series}
	}
	var list []TooltipItem
	for _, key := range keys {
		ser, ok := cfg.Series.Get(key)
		if !ok {
			continue
		}
		item := TooltipItem{
			Title: orString(ser.Title, key),
			Color: ser.Color,
		}
		if polar {
			item.Color = row.Text(orString(ser.Color, DefaultPieColorField))
			item.Value = row.Text(ser.field(DefaultPolarField))
		} else {
			item.Value = row.Text(ser.field(DefaultCartesianField))
		}
		list = append(list, item)
	}
	return list
}

// DefaultTooltip renders the tooltip of row. Empty rows, such as the
// padding records added around bars, produce no tooltip.
func DefaultTooltip(cfg Config, row Row, series string, polar bool) (string, error) {
	if len(row) == 0 {
		return "", nil
	}
	var str strings.Builder
	if err := tooltipHTML.Execute(&str, tooltipItems(cfg, row, series, polar)); err != nil {
		return "", fmt.Errorf("tooltip: %w", err)
	}
	return str.String(), nil
}
