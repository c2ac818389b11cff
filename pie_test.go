package charts

import (
	"strings"
	"testing"
)

func TestPieSums(t *testing.T) {
	sums := pieSums([]float64{0.5, 0.25, 0.12, 0})
	want := []float64{0.5, 0.75, 0.87, 1}
	for i := range want {
		if !almostEqual(sums[i], want[i]) {
			t.Errorf("sum %d: want %v, got %v", i, want[i], sums[i])
		}
	}
	if sums[len(sums)-1] != 1 {
		t.Errorf("filler wedge should close the circle, got %v", sums[len(sums)-1])
	}
}

func TestPieRender(t *testing.T) {
	cfg := mustConfig(t, `{
		"data": [
			{"name": "a", "value": 1, "color": "red"},
			{"name": "b", "value": 1, "color": "blue"}
		],
		"series": {"s": {}}
	}`)
	out := Render(PieChart{}, cfg, AxisX, DefaultViewBox())
	if out.Grid != "" || out.Highlight != "" {
		t.Errorf("pie should not have grid nor highlight")
	}
	for _, str := range []string{
		`data-series="s"`,
		`d="M 50.0000 50.0000 A 0 0, 0, 0, 1, 50.0000 50.0000 L 50.0000,100.0000 A 50 50, 0, 0, 0, 50.0000 0.0000 Z"`,
		`data-index="0"`,
		`data-index="1"`,
		`fill="red"`,
		`fill="blue"`,
	} {
		if !strings.Contains(out.Data, str) {
			t.Errorf("missing %s in %s", str, out.Data)
		}
	}
}

func TestPieDonutColorField(t *testing.T) {
	cfg := mustConfig(t, `{
		"data": [{"amount": 3, "shade": "green"}, {"amount": 1, "shade": "pink"}],
		"series": {"s": {"field": "amount", "color": "shade", "inner": 0.5, "angle": 0}},
		"precision": 2
	}`)
	out := Render(PieChart{}, cfg, AxisX, DefaultViewBox())
	for _, str := range []string{
		`fill="green"`,
		`fill="pink"`,
		`M 75.00 50.00 A 25 25, 0, 1, 1,`,
	} {
		if !strings.Contains(out.Data, str) {
			t.Errorf("missing %s in %s", str, out.Data)
		}
	}
}

func TestWedgeAt(t *testing.T) {
	var (
		cfg   = mustConfig(t, `{"data": [{"value": 1}, {"value": 1}], "series": {"s": {}}}`)
		extra = BuildPolar(cfg, DefaultViewBox())
	)
	tests := []struct {
		X    float64
		Y    float64
		Want int
	}{
		{X: 90, Y: 50, Want: 0},
		{X: 10, Y: 50, Want: 1},
		{X: 0, Y: 0, Want: -1},
	}
	for _, tt := range tests {
		if got := WedgeAt(cfg, extra, "s", tt.X, tt.Y); got != tt.Want {
			t.Errorf("(%v, %v): want %d, got %d", tt.X, tt.Y, tt.Want, got)
		}
	}
	if got := WedgeAt(cfg, extra, "missing", 90, 50); got != -1 {
		t.Errorf("unknown series: want -1, got %d", got)
	}
}
