package charts

type PolarExtra struct {
	RadX float64
	RadY float64
	Norm map[string][]float64
}

func (PolarExtra) extra() {}

// BuildPolar normalizes each series into the share of its total carried
// by every row. A series summing to zero keeps its raw values.
func BuildPolar(cfg Config, vb ViewBox) PolarExtra {
	extra := PolarExtra{
		RadX: vb.MaxX / 2,
		RadY: vb.MaxY / 2,
		Norm: make(map[string][]float64),
	}
	for _, key := range cfg.Series.Keys() {
		var (
			ser, _ = cfg.Series.Get(key)
			field  = ser.field(DefaultPolarField)
			vals   = make([]float64, len(cfg.Data))
			sum    float64
		)
		for i, row := range cfg.Data {
			vals[i] = row.Number(field)
			sum += vals[i]
		}
		if sum != 0 {
			for i := range vals {
				vals[i] /= sum
			}
		}
		extra.Norm[key] = vals
	}
	return extra
}
