package charts

import (
	"math"
	"strings"
	"testing"
)

func TestBarFormatData(t *testing.T) {
	rows := BarChart{}.FormatData([]Row{{"name": "A"}, {"name": "B"}})
	if len(rows) != 4 {
		t.Fatalf("rows: want 4, got %d", len(rows))
	}
	if len(rows[0]) != 0 || len(rows[3]) != 0 {
		t.Fatalf("padding rows should be empty: %v", rows)
	}
	if rows[1].Text("name") != "A" || rows[2].Text("name") != "B" {
		t.Fatalf("rows out of order: %v", rows)
	}
}

func TestBarStackedScenario(t *testing.T) {
	var (
		cfg   = mustConfig(t, twoSeriesStacked)
		bar   = BarChart{}
		vb    = DefaultViewBox()
		data  = cfg.withData(bar.FormatData(cfg.Data))
		extra = bar.Extra(data, AxisX, vb).(CartesianExtra)
	)
	if len(extra.Stacks) != 1 {
		t.Fatalf("stacks: want 1, got %d", len(extra.Stacks))
	}
	var (
		bars = stackBars(extra.Stacks[0], 0, extra, AxisX)
		def  = bars[0]
		sec  = bars[1]
		zero = extra.Zero
	)
	// row A
	a1, a2 := def[1], sec[1]
	if !almostEqual(a1.Y+a1.H, zero) {
		t.Errorf("A/def should rest on the baseline: %+v (zero %v)", a1, zero)
	}
	if !almostEqual(a2.Y+a2.H, a1.Y) {
		t.Errorf("A/sec should sit on top of A/def: %+v, %+v", a1, a2)
	}
	if a2.H <= 0 || a1.H <= 0 {
		t.Errorf("A bars should have a positive height: %+v, %+v", a1, a2)
	}
	// row B
	b1, b2 := def[2], sec[2]
	if !almostEqual(b1.Y, zero) || b1.H <= 0 {
		t.Errorf("B/def should hang below the baseline: %+v (zero %v)", b1, zero)
	}
	if !almostEqual(b2.Y+b2.H, zero) || b2.H <= 0 {
		t.Errorf("B/sec should rise from the baseline: %+v (zero %v)", b2, zero)
	}
	// geometry
	size := 0.5 * extra.Step / 3
	for i, r := range def {
		if !almostEqual(r.W, 2*size) {
			t.Errorf("bar %d: width: want %v, got %v", i, 2*size, r.W)
		}
		if want := extra.Norm["def"][i].X - 0.25*extra.Step; math.Abs(r.X-want) > 1e-3 {
			t.Errorf("bar %d: x: want %v, got %v", i, want, r.X)
		}
	}
}

func TestBarVertical(t *testing.T) {
	var (
		cfg   = mustConfig(t, `{"data": [{"key": 10}, {"key": -10}], "series": {"s": {"color": "red"}}}`)
		extra = BuildCartesian(cfg, AxisY, DefaultViewBox())
		bars  = stackBars(extra.Stacks[0], 0, extra, AxisY)[0]
	)
	if !almostEqual(extra.Zero, 50) {
		t.Fatalf("zero: want 50, got %v", extra.Zero)
	}
	if pos := bars[0]; !almostEqual(pos.X, 50) || pos.W <= 0 {
		t.Errorf("positive bar should grow right from zero: %+v", pos)
	}
	if neg := bars[1]; !almostEqual(neg.X+neg.W, 50) || neg.W <= 0 {
		t.Errorf("negative bar should grow left from zero: %+v", neg)
	}
}

func TestBarRender(t *testing.T) {
	var (
		cfg = mustConfig(t, twoSeriesStacked)
		out = Render(BarChart{}, cfg, AxisX, DefaultViewBox())
	)
	if n := strings.Count(out.Data, "<path"); n != 8 {
		t.Errorf("bars: want 8, got %d", n)
	}
	for _, str := range []string{
		`data-stack-index="0"`,
		`data-stack="base"`,
		`data-series="def"`,
		`data-series="sec"`,
		`fill="grey"`,
	} {
		if !strings.Contains(out.Data, str) {
			t.Errorf("missing %s in markup", str)
		}
	}
	if out.Grid == "" || out.Highlight == "" {
		t.Errorf("grid and highlight should be rendered by default")
	}
}
