package charts

type Range struct {
	F float64
	T float64
}

func NewRange(f, t float64) Range {
	return Range{
		F: f,
		T: t,
	}
}

func (r Range) Len() float64 {
	return r.T - r.F
}

func (r Range) Max() float64 {
	return r.T
}

func (r Range) Min() float64 {
	return r.F
}

type Domain struct {
	Fst float64
	Lst float64
}

func NumberDomain(f, t float64) Domain {
	return Domain{
		Fst: f,
		Lst: t,
	}
}

func (d Domain) Diff(v float64) float64 {
	return v - d.Fst
}

func (d Domain) Extend() float64 {
	return d.Lst - d.Fst
}

// Values returns c evenly spaced values from the first to the last
// bound inclusive. Less than two values yields nothing.
func (d Domain) Values(c int) []float64 {
	if c < 2 {
		return nil
	}
	var (
		all  = make([]float64, c)
		step = d.Extend() / float64(c-1)
	)
	for i := 0; i < c; i++ {
		all[i] = d.Fst + float64(i)*step
	}
	return all
}

// Scaler maps a value from its domain into a view box range. Flipped
// scalers grow from the end of the range, as a vertical value axis does.
type Scaler struct {
	Range
	Domain
	Flip bool
}

func NumberScaler(dom Domain, rg Range, flip bool) Scaler {
	return Scaler{
		Range:  rg,
		Domain: dom,
		Flip:   flip,
	}
}

func (s Scaler) Scale(v float64) float64 {
	pos := s.Diff(v) * s.Space()
	if s.Flip {
		return s.Max() - pos
	}
	return s.Min() + pos
}

func (s Scaler) Space() float64 {
	ext := s.Extend()
	if ext == 0 {
		ext = 1
	}
	return s.Len() / ext
}
