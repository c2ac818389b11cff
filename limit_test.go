package charts

import (
	"math"
	"testing"
)

func TestCalcLimit(t *testing.T) {
	tests := []struct {
		Value float64
		Want  float64
	}{
		{Value: 437, Want: 450},
		{Value: 460, Want: 500},
		{Value: 95, Want: 100},
		{Value: 1, Want: 2},
		{Value: 6400, Want: 6500},
		{Value: -3000, Want: -3500},
		{Value: -12.3, Want: -15},
		{Value: 0.037, Want: 0.04},
		{Value: 0, Want: 0},
	}
	for _, tt := range tests {
		got := CalcLimit(tt.Value)
		if !almostEqual(got, tt.Want) {
			t.Errorf("CalcLimit(%v): want %v, got %v", tt.Value, tt.Want, got)
		}
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		Value     float64
		Precision int
		Want      float64
	}{
		{Value: 4.35, Precision: 1, Want: 4.3},
		{Value: 1.005, Precision: 2, Want: 1},
		{Value: 2.5, Precision: 0, Want: 3},
		{Value: -2.5, Precision: 0, Want: -3},
		{Value: 0.125, Precision: 2, Want: 0.13},
		{Value: 1.5, Precision: 0, Want: 2},
		{Value: 33.33333, Precision: 2, Want: 33.33},
		{Value: 12.7, Precision: -1, Want: 13},
	}
	for _, tt := range tests {
		got := round(tt.Value, tt.Precision)
		if got != tt.Want {
			t.Errorf("round(%v, %d): want %v, got %v", tt.Value, tt.Precision, tt.Want, got)
		}
	}
}

func TestCalcLimitNotFinite(t *testing.T) {
	if got := CalcLimit(math.NaN()); !math.IsNaN(got) {
		t.Errorf("NaN: got %v", got)
	}
	if got := CalcLimit(math.Inf(1)); !math.IsInf(got, 1) {
		t.Errorf("Inf: got %v", got)
	}
}

func TestZeroLevel(t *testing.T) {
	vb := DefaultViewBox()
	tests := []struct {
		Max  float64
		Min  float64
		Axis Axis
		Want float64
	}{
		{Max: 100, Min: -100, Axis: AxisX, Want: 50},
		{Max: 100, Min: -100, Axis: AxisY, Want: 50},
		{Max: 10, Min: 0, Axis: AxisX, Want: 100},
		{Max: 10, Min: 0, Axis: AxisY, Want: 0},
		{Max: 0, Min: -25, Axis: AxisX, Want: 0},
		{Max: 0, Min: 0, Axis: AxisX, Want: 100},
	}
	for _, tt := range tests {
		got := ZeroLevel(tt.Max, tt.Min, tt.Axis, vb, DefaultPrecision)
		if !almostEqual(got, tt.Want) {
			t.Errorf("ZeroLevel(%v, %v, %s): want %v, got %v", tt.Max, tt.Min, tt.Axis, tt.Want, got)
		}
	}
}

func TestViewBoxFromRatio(t *testing.T) {
	tests := []struct {
		Ratio string
		Want  ViewBox
	}{
		{Ratio: "", Want: ViewBox{MaxX: 100, MaxY: 100}},
		{Ratio: "1", Want: ViewBox{MaxX: 100, MaxY: 100}},
		{Ratio: "2/1", Want: ViewBox{MaxX: 200, MaxY: 100}},
		{Ratio: "1/2", Want: ViewBox{MaxX: 100, MaxY: 200}},
		{Ratio: "16/9", Want: ViewBox{MaxX: 178, MaxY: 100}},
		{Ratio: "1.5", Want: ViewBox{MaxX: 150, MaxY: 100}},
		{Ratio: "abc", Want: ViewBox{MaxX: 100, MaxY: 100}},
		{Ratio: "1/0", Want: ViewBox{MaxX: 100, MaxY: 100}},
	}
	for _, tt := range tests {
		got := ViewBoxFromRatio(tt.Ratio)
		if got != tt.Want {
			t.Errorf("ratio %q: want %+v, got %+v", tt.Ratio, tt.Want, got)
		}
	}
}

func TestDomainValues(t *testing.T) {
	got := NumberDomain(-3500, 6500).Values(5)
	want := []float64{-3500, -1000, 1500, 4000, 6500}
	if len(got) != len(want) {
		t.Fatalf("values: want %d, got %d", len(want), len(got))
	}
	for i := range want {
		if !almostEqual(got[i], want[i]) {
			t.Errorf("value %d: want %v, got %v", i, want[i], got[i])
		}
	}
	if vs := NumberDomain(0, 10).Values(1); vs != nil {
		t.Errorf("single level should yield nothing, got %v", vs)
	}
}
