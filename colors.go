package charts

import (
	"strings"
)

type Palette []string

var (
	Category10 Palette
	Tableau10  Palette
)

func init() {
	Category10 = splitColorString("1f77b4ff7f0e2ca02cd627289467bd8c564be377c27f7f7fbcbd2217becf")
	Tableau10 = splitColorString("4e79a7f28e2ce1575976b7b259a14fedc949af7aa1ff9da79c755fbab0ab")
}

func splitColorString(str string) []string {
	var arr []string
	for i := 0; i+6 <= len(str); i += 6 {
		arr = append(arr, "#"+str[i:i+6])
	}
	return arr
}

// PaletteByName resolves a named palette. A comma separated list of
// colors is accepted as an ad hoc palette.
func PaletteByName(name string) (Palette, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "category10":
		return Category10, true
	case "tableau10":
		return Tableau10, true
	}
	if !strings.Contains(name, ",") {
		return nil, false
	}
	var p Palette
	for _, c := range strings.Split(name, ",") {
		if c = strings.TrimSpace(c); c != "" {
			p = append(p, c)
		}
	}
	return p, len(p) > 0
}

func (p Palette) Color(i int) string {
	if len(p) == 0 {
		return DefaultColor
	}
	return p[i%len(p)]
}

// Apply sets a color on every series that lacks one, cycling through p.
// For polar charts the color of a series names a row field, so the rows
// get the colors instead.
func (p Palette) Apply(cfg Config, polar bool) Config {
	if polar {
		for _, key := range cfg.Series.Keys() {
			ser, _ := cfg.Series.Get(key)
			cfg.Data = p.ColorRows(cfg.Data, orString(ser.Color, DefaultPieColorField))
		}
		return cfg
	}
	set := NewSeriesSet()
	for i, key := range cfg.Series.Keys() {
		ser, _ := cfg.Series.Get(key)
		if ser.Color == "" {
			ser.Color = p.Color(i)
		}
		set.Add(key, ser)
	}
	cfg.Series = set
	return cfg
}

// ColorRows fills field on every row that lacks it, cycling through p.
func (p Palette) ColorRows(rows []Row, field string) []Row {
	list := make([]Row, len(rows))
	for i, r := range rows {
		x := make(Row, len(r)+1)
		for k, v := range r {
			x[k] = v
		}
		if x.Text(field) == "" {
			x[field] = p.Color(i)
		}
		list[i] = x
	}
	return list
}
