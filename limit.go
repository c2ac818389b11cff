package charts

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

const DefaultPrecision = 4

// ZeroLevel returns the view box coordinate of the value 0 on the value
// axis. On the x key-axis the value axis is vertical and flipped.
func ZeroLevel(max, min float64, axis Axis, vb ViewBox, precision int) float64 {
	scale := valueScaler(max, min, axis, vb)
	return round(scale.Scale(0), precision)
}

func valueScaler(max, min float64, axis Axis, vb ViewBox) Scaler {
	dom := NumberDomain(min, max)
	if axis.Vertical() {
		return NumberScaler(dom, NewRange(0, vb.MaxX), false)
	}
	return NumberScaler(dom, NewRange(0, vb.MaxY), true)
}

// CalcLimit rounds the magnitude of val up to the next half or whole
// leading digit at its order of magnitude: 437 gives 450, 460 gives 500,
// -12.3 gives -15. The fractional precision of val is kept.
func CalcLimit(val float64) float64 {
	if val == 0 || math.IsNaN(val) || math.IsInf(val, 0) {
		return val
	}
	var (
		sign = 1.0
		abs  = math.Abs(val)
	)
	if val < 0 {
		sign = -1
	}
	str := strconv.FormatFloat(abs, 'e', -1, 64)
	mant, exp, _ := strings.Cut(str, "e")
	deg, _ := strconv.Atoi(exp)

	lead, frac, _ := strings.Cut(mant, ".")
	base, _ := strconv.ParseFloat(lead, 64)
	rest, _ := strconv.ParseFloat("0"+frac, 64)

	var bound float64
	if frac != "" && rest >= 5*math.Pow10(len(frac)-1) {
		bound = base + 1
	} else {
		bound = base + 0.5
	}
	return sign * round(bound*math.Pow10(deg), fractionDigits(val))
}

func fractionDigits(val float64) int {
	str := strconv.FormatFloat(val, 'f', -1, 64)
	_, frac, ok := strings.Cut(str, ".")
	if !ok {
		return 0
	}
	return len(frac)
}

func round(val float64, precision int) float64 {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return val
	}
	if precision < 0 {
		precision = 0
	}
	if halfway(val, precision) {
		pow := math.Pow10(precision)
		return math.Round(val*pow) / pow
	}
	res, _ := strconv.ParseFloat(strconv.FormatFloat(val, 'f', precision, 64), 64)
	return res
}

// halfway reports whether val lies exactly between two numbers having
// precision fractional digits. Such ties are rounded away from zero.
func halfway(val float64, precision int) bool {
	str := strconv.FormatFloat(math.Abs(val), 'f', -1, 64)
	_, frac, _ := strings.Cut(str, ".")
	if len(frac) != precision+1 || frac[precision] != '5' {
		return false
	}
	dec, ok := new(big.Rat).SetString(str)
	if !ok {
		return false
	}
	return dec.Cmp(new(big.Rat).SetFloat64(math.Abs(val))) == 0
}

func formatNumber(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}

func formatFixed(val float64, precision int) string {
	if precision < 0 {
		precision = 0
	}
	return strconv.FormatFloat(val, 'f', precision, 64)
}
