package charts

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestEscapeComponent(t *testing.T) {
	tests := []struct {
		Input string
		Want  string
	}{
		{Input: "a b", Want: "a%20b"},
		{Input: "!'()*", Want: "!'()*"},
		{Input: `{"a":1}`, Want: "%7B%22a%22%3A1%7D"},
		{Input: "é", Want: "%C3%A9"},
		{Input: "a+b", Want: "a%2Bb"},
	}
	for _, tt := range tests {
		if got := EscapeComponent(tt.Input); got != tt.Want {
			t.Errorf("%q: want %q, got %q", tt.Input, tt.Want, got)
		}
	}
}

func TestEncodeDecode(t *testing.T) {
	cfg := mustConfig(t, `{
		"data": [{"name": "a b", "key": 1.5}],
		"series": {"zeta": {"title": "Z (1)"}, "alpha": {"color": "red", "marker": false}},
		"grid": false,
		"levels": 3
	}`)
	str, err := Encode(cfg)
	if err != nil {
		t.Fatalf("encode: %s", err)
	}
	if strings.ContainsAny(str, ` "{}`) {
		t.Fatalf("encoded config is not attribute safe: %s", str)
	}
	got, err := Decode(str)
	if err != nil {
		t.Fatalf("decode: %s", err)
	}
	if !reflect.DeepEqual(got.Series.Keys(), []string{"zeta", "alpha"}) {
		t.Fatalf("series order lost: %v", got.Series.Keys())
	}
	if got.Grid.Enabled(true) {
		t.Fatalf("grid should stay disabled")
	}
	if got.Levels.count() != 3 {
		t.Fatalf("levels: want 3, got %d", got.Levels.count())
	}
	if alpha, _ := got.Series.Get("alpha"); alpha.Marker.Enabled(true) || alpha.Color != "red" {
		t.Fatalf("alpha series not restored: %+v", alpha)
	}
	if got.Data[0].Text("name") != "a b" || got.Data[0].Number("key") != 1.5 {
		t.Fatalf("data not restored: %v", got.Data)
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, err := Decode("   "); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("empty: want ErrEmptyInput, got %v", err)
	}
	if _, err := Decode("%zz"); err == nil {
		t.Errorf("bad escape should fail")
	}
	if _, err := Decode(`{"data": 1}`); err == nil {
		t.Errorf("bad data should fail")
	}
	if _, err := Decode(`{"levels": "many"}`); err == nil {
		t.Errorf("bad levels should fail")
	}
}

func TestConfigToggles(t *testing.T) {
	cfg := mustConfig(t, `{
		"series": {"s": {"area": true, "marker": {"radius": 2}}},
		"grid": {"zero": false, "xAxis": {"side": "top"}},
		"tooltip": null
	}`)
	ser, _ := cfg.Series.Get("s")
	if !ser.Area.Enabled(false) {
		t.Errorf("area: true should enable the area")
	}
	if !ser.Marker.Enabled(false) || ser.Marker.Value.Radius != 2 {
		t.Errorf("marker: unexpected %+v", ser.Marker)
	}
	if !cfg.Grid.Enabled(false) || cfg.Grid.Value.Zero.Enabled(true) {
		t.Errorf("grid: unexpected %+v", cfg.Grid)
	}
	if cfg.Grid.Value.XAxis.Value.Side != SideTop {
		t.Errorf("grid: x axis side lost")
	}
	if !cfg.Tooltip.Enabled(true) || cfg.Tooltip.Enabled(false) {
		t.Errorf("tooltip: null should keep the default")
	}
}

func TestRowCoercion(t *testing.T) {
	row := Row{"f": 1.5, "i": 3, "s": " 2.5 ", "b": true, "x": "abc", "n": nil}
	tests := map[string]float64{"f": 1.5, "i": 3, "s": 2.5, "b": 1, "x": 0, "n": 0, "missing": 0}
	for field, want := range tests {
		if got := row.Number(field); got != want {
			t.Errorf("%s: want %v, got %v", field, want, got)
		}
	}
	if got := row.Text("f"); got != "1.5" {
		t.Errorf("text: want 1.5, got %s", got)
	}
}
