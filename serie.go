package charts

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const (
	DefaultCartesianField = "key"
	DefaultPolarField     = "value"
	DefaultPieColorField  = "color"
	DefaultStack          = "default"
)

// Series describes one trace. Fields only meaningful for one chart kind
// are ignored by the others.
type Series struct {
	Field   string   `json:"field,omitempty"`
	Title   string   `json:"title,omitempty"`
	Color   string   `json:"color,omitempty"`
	Stack   string   `json:"stack,omitempty"`
	Opacity *float64 `json:"opacity,omitempty"`

	Width     float64        `json:"width,omitempty"`
	Dasharray string         `json:"dasharray,omitempty"`
	Smooth    *bool          `json:"smooth,omitempty"`
	Marker    Toggle[Marker] `json:"marker,omitzero"`
	Area      Toggle[Area]   `json:"area,omitzero"`

	Inner float64  `json:"inner,omitempty"`
	Outer *float64 `json:"outer,omitempty"`
	Angle *float64 `json:"angle,omitempty"`
}

func (s Series) field(def string) string {
	return orString(s.Field, def)
}

func (s Series) stack(stacked bool) string {
	if s.Stack == "" && stacked {
		return DefaultStack
	}
	return s.Stack
}

func (s Series) smooth() bool {
	return orPtr(s.Smooth, true)
}

// SeriesSet keeps series in their declaration order.
type SeriesSet struct {
	keys  []string
	items map[string]Series
}

func NewSeriesSet() SeriesSet {
	return SeriesSet{
		items: make(map[string]Series),
	}
}

func (s *SeriesSet) Add(key string, ser Series) {
	if s.items == nil {
		s.items = make(map[string]Series)
	}
	if _, ok := s.items[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.items[key] = ser
}

func (s SeriesSet) Get(key string) (Series, bool) {
	ser, ok := s.items[key]
	return ser, ok
}

func (s SeriesSet) Keys() []string {
	keys := make([]string, len(s.keys))
	copy(keys, s.keys)
	return keys
}

func (s SeriesSet) Len() int {
	return len(s.keys)
}

func (s SeriesSet) IsZero() bool {
	return len(s.keys) == 0
}

func (s *SeriesSet) UnmarshalJSON(b []byte) error {
	*s = NewSeriesSet()
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("series: expected object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("series: unexpected key %v", tok)
		}
		var ser Series
		if err := dec.Decode(&ser); err != nil {
			return fmt.Errorf("series %s: %w", key, err)
		}
		s.Add(key, ser)
	}
	_, err = dec.Token()
	return err
}

func (s SeriesSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range s.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(s.items[key])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
