package charts

import (
	"math"
	"testing"
)

func mustConfig(t *testing.T, str string) Config {
	t.Helper()
	cfg, err := DecodeJSON([]byte(str))
	if err != nil {
		t.Fatalf("invalid config: %s", err)
	}
	return cfg
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}
