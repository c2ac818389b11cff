package charts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const (
	DefaultLevels     = 5
	DefaultLabelField = "name"
)

type Config struct {
	Data      []Row             `json:"data"`
	Series    SeriesSet         `json:"series"`
	Precision *int              `json:"precision,omitempty"`
	Stacked   bool              `json:"stacked,omitempty"`
	Levels    Levels            `json:"levels,omitzero"`
	Grid      Toggle[Grid]      `json:"grid,omitzero"`
	Highlight Toggle[Highlight] `json:"highlight,omitzero"`
	Tooltip   Toggle[Tooltip]   `json:"tooltip,omitzero"`
	Labels    Toggle[Labels]    `json:"labels,omitzero"`
	Legend    Toggle[Legend]    `json:"legend,omitzero"`
	MinSize   MinSize           `json:"minSize,omitzero"`
}

func (c Config) precision() int {
	if c.Precision == nil || *c.Precision < 0 {
		return DefaultPrecision
	}
	return *c.Precision
}

func (c Config) labelField() string {
	return orString(c.Labels.Value.Field, DefaultLabelField)
}

// withData returns a shallow copy of c using rows as data.
func (c Config) withData(rows []Row) Config {
	x := c
	x.Data = rows
	return x
}

// Row is one data record. Missing or non numeric fields read as 0.
type Row map[string]any

func (r Row) Number(field string) float64 {
	return toFloat(r[field])
}

func (r Row) Text(field string) string {
	v, ok := r[field]
	if !ok || v == nil {
		return ""
	}
	switch v := v.(type) {
	case string:
		return v
	case float64:
		return formatNumber(v)
	default:
		return fmt.Sprint(v)
	}
}

func toFloat(v any) float64 {
	switch v := v.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		f, _ := v.Float64()
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return f
	case bool:
		if v {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// Toggle holds an optional block that can be switched off with a JSON
// false. An absent block keeps the default of the option it describes.
type Toggle[T any] struct {
	Set   bool
	Off   bool
	Value T
}

func On[T any](v T) Toggle[T] {
	return Toggle[T]{
		Set:   true,
		Value: v,
	}
}

func Off[T any]() Toggle[T] {
	return Toggle[T]{
		Off: true,
	}
}

func (t Toggle[T]) Enabled(def bool) bool {
	if t.Off {
		return false
	}
	return t.Set || def
}

func (t *Toggle[T]) UnmarshalJSON(b []byte) error {
	var zero T
	t.Value = zero
	switch str := string(bytes.TrimSpace(b)); str {
	case "null":
		t.Set, t.Off = false, false
		return nil
	case "false":
		t.Set, t.Off = false, true
		return nil
	case "true":
		t.Set, t.Off = true, false
		return nil
	}
	if err := json.Unmarshal(b, &t.Value); err != nil {
		return err
	}
	t.Set, t.Off = true, false
	return nil
}

func (t Toggle[T]) MarshalJSON() ([]byte, error) {
	switch {
	case t.Off:
		return []byte("false"), nil
	case !t.Set:
		return []byte("null"), nil
	default:
		return json.Marshal(t.Value)
	}
}

// Levels is either a desired tick count or an explicit list of ticks.
type Levels struct {
	Count  int
	Values []float64
}

func LevelCount(n int) Levels {
	return Levels{Count: n}
}

func LevelValues(values ...float64) Levels {
	return Levels{Values: values}
}

func (l Levels) explicit() bool {
	return len(l.Values) > 0
}

func (l Levels) count() int {
	if l.Count == 0 {
		return DefaultLevels
	}
	return l.Count
}

func (l *Levels) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		l.Count = 0
		return json.Unmarshal(b, &l.Values)
	}
	if string(b) == "null" {
		*l = Levels{}
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("levels: expected number or list: %w", err)
	}
	l.Count, l.Values = int(n), nil
	return nil
}

func (l Levels) MarshalJSON() ([]byte, error) {
	if l.explicit() {
		return json.Marshal(l.Values)
	}
	return json.Marshal(l.Count)
}
