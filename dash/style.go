package dash

import (
	"fmt"

	"github.com/midbel/effcharts"
)

// Style holds the defaults a dashboard applies to its charts. Only the
// options left unset by a chart config are filled.
type Style struct {
	Palette   string  `yaml:"palette"`
	Width     float64 `yaml:"width"`
	Marker    string  `yaml:"marker"`
	Smooth    *bool   `yaml:"smooth"`
	Area      *bool   `yaml:"area"`
	Stacked   *bool   `yaml:"stacked"`
	Legend    *bool   `yaml:"legend"`
	Precision *int    `yaml:"precision"`
}

// merge returns s with the options it leaves unset taken from g.
func (s Style) merge(g Style) Style {
	if s.Palette == "" {
		s.Palette = g.Palette
	}
	if s.Width == 0 {
		s.Width = g.Width
	}
	if s.Marker == "" {
		s.Marker = g.Marker
	}
	if s.Smooth == nil {
		s.Smooth = g.Smooth
	}
	if s.Area == nil {
		s.Area = g.Area
	}
	if s.Stacked == nil {
		s.Stacked = g.Stacked
	}
	if s.Legend == nil {
		s.Legend = g.Legend
	}
	if s.Precision == nil {
		s.Precision = g.Precision
	}
	return s
}

func (s Style) apply(cfg charts.Config, polar bool) (charts.Config, error) {
	palette, ok := charts.PaletteByName(s.Palette)
	if !ok {
		return cfg, fmt.Errorf("%s: unknown palette", s.Palette)
	}
	if cfg.Precision == nil && s.Precision != nil {
		p := *s.Precision
		cfg.Precision = &p
	}
	if !cfg.Legend.Set && !cfg.Legend.Off && s.Legend != nil {
		if *s.Legend {
			cfg.Legend = charts.On(charts.Legend{})
		} else {
			cfg.Legend = charts.Off[charts.Legend]()
		}
	}
	if polar {
		return palette.Apply(cfg, true), nil
	}
	if !cfg.Stacked && s.Stacked != nil {
		cfg.Stacked = *s.Stacked
	}

	set := charts.NewSeriesSet()
	for _, key := range cfg.Series.Keys() {
		ser, _ := cfg.Series.Get(key)
		if ser.Width == 0 {
			ser.Width = s.Width
		}
		if ser.Smooth == nil && s.Smooth != nil {
			smooth := *s.Smooth
			ser.Smooth = &smooth
		}
		if s.Marker != "" && !ser.Marker.Set && !ser.Marker.Off {
			ser.Marker = charts.On(charts.Marker{Shape: s.Marker})
		}
		if s.Area != nil && *s.Area && !ser.Area.Set && !ser.Area.Off {
			ser.Area = charts.On(charts.Area{})
		}
		set.Add(key, ser)
	}
	cfg.Series = set
	return palette.Apply(cfg, false), nil
}
