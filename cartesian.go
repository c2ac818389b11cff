package charts

import (
	"math"
)

// Extra is the geometry derived from a config and a view box for one
// render. It is rebuilt wholesale whenever either changes.
type Extra interface {
	extra()
}

// Stack groups series rendered cumulatively. An empty name marks a
// single unstacked series.
type Stack struct {
	Name   string
	Series []string
}

type CartesianExtra struct {
	Max    float64
	Min    float64
	Zero   float64
	Step   float64
	Stacks []Stack
	Keys   []string
	Vals   []float64
	Norm   map[string][]Point
}

func (CartesianExtra) extra() {}

type limit struct {
	max []float64
	min []float64
}

func makeLimit(count int) *limit {
	return &limit{
		max: make([]float64, count),
		min: make([]float64, count),
	}
}

// BuildCartesian maps the rows of cfg into view box coordinates. axis
// selects the geometric axis used for the row ordinal. cfg is left
// untouched.
func BuildCartesian(cfg Config, axis Axis, vb ViewBox) CartesianExtra {
	var (
		count     = len(cfg.Data)
		precision = cfg.precision()
		field     = cfg.labelField()
		extra     = CartesianExtra{
			Norm: make(map[string][]Point),
			Keys: make([]string, 0, count),
		}
	)
	for _, row := range cfg.Data {
		extra.Keys = append(extra.Keys, row.Text(field))
	}
	step, coords := keyCoords(count, axis, vb)
	extra.Step = step

	var (
		limits = map[string]*limit{"": makeLimit(count)}
		index  = make(map[string]int)
		values = make(map[string][]float64)
	)
	for _, key := range cfg.Series.Keys() {
		var (
			ser, _ = cfg.Series.Get(key)
			field  = ser.field(DefaultCartesianField)
			stack  = ser.stack(cfg.Stacked)
			vals   = make([]float64, count)
		)
		if stack == "" {
			extra.Stacks = append(extra.Stacks, Stack{Series: []string{key}})
		} else {
			if _, ok := limits[stack]; !ok {
				limits[stack] = makeLimit(count)
			}
			ix, ok := index[stack]
			if !ok {
				ix = len(extra.Stacks)
				index[stack] = ix
				extra.Stacks = append(extra.Stacks, Stack{Name: stack})
			}
			extra.Stacks[ix].Series = append(extra.Stacks[ix].Series, key)
		}
		lim := limits[stack]
		for i, row := range cfg.Data {
			v := row.Number(field)
			vals[i] = v
			switch {
			case stack != "" && v >= 0:
				lim.max[i] += v
			case stack != "":
				lim.min[i] += v
			case v > lim.max[i]:
				lim.max[i] = v
			case v < lim.min[i]:
				lim.min[i] = v
			}
		}
		values[key] = vals
	}

	var top, bottom float64
	for _, lim := range limits {
		for i := range lim.max {
			top = math.Max(top, lim.max[i])
			bottom = math.Min(bottom, lim.min[i])
		}
	}
	extra.Max, extra.Min, extra.Vals = levelBounds(cfg, top, bottom)

	scale := valueScaler(extra.Max, extra.Min, axis, vb)
	for key, vals := range values {
		points := make([]Point, len(vals))
		for i, v := range vals {
			pos := round(scale.Scale(v), precision)
			if axis.Vertical() {
				points[i] = NewPoint(pos, coords[i])
			} else {
				points[i] = NewPoint(coords[i], pos)
			}
		}
		extra.Norm[key] = points
	}
	extra.Zero = ZeroLevel(extra.Max, extra.Min, axis, vb, precision)
	return extra
}

// keyCoords spreads count rows evenly over the key axis. On the y
// key-axis the first row sits at MaxY. A single row gets the whole
// extent as step.
func keyCoords(count int, axis Axis, vb ViewBox) (float64, []float64) {
	var (
		ext    = vb.extent(axis)
		step   = ext
		coords = make([]float64, count)
	)
	if count > 1 {
		step = ext / float64(count-1)
	}
	for i := range coords {
		if axis.Vertical() {
			coords[i] = round(ext-step*float64(i), DefaultPrecision)
		} else {
			coords[i] = round(step*float64(i), DefaultPrecision)
		}
	}
	return step, coords
}

func levelBounds(cfg Config, top, bottom float64) (float64, float64, []float64) {
	grid := cfg.Grid.Enabled(true)
	if cfg.Levels.explicit() {
		var (
			vals = cfg.Levels.Values
			max  = vals[len(vals)-1]
			min  = vals[0]
		)
		if !grid {
			return max, min, nil
		}
		return max, min, append([]float64(nil), vals...)
	}
	var (
		max = CalcLimit(top)
		min = CalcLimit(bottom)
	)
	if !grid {
		return max, min, nil
	}
	return max, min, NumberDomain(min, max).Values(cfg.Levels.count())
}
