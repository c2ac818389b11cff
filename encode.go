package charts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var ErrEmptyInput = errors.New("empty configuration")

var componentEscaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// Encode serializes cfg into a string safe to embed as an attribute
// value. The escaping matches encodeURIComponent.
func Encode(cfg Config) (string, error) {
	buf, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return EscapeComponent(string(buf)), nil
}

func EscapeComponent(str string) string {
	return componentEscaper.Replace(url.QueryEscape(str))
}

// Decode is the inverse of Encode. Plain JSON is accepted as well.
func Decode(str string) (Config, error) {
	var cfg Config
	str = strings.TrimSpace(str)
	if str == "" {
		return cfg, ErrEmptyInput
	}
	if !strings.HasPrefix(str, "{") {
		raw, err := url.PathUnescape(str)
		if err != nil {
			return cfg, fmt.Errorf("decode config: %w", err)
		}
		str = raw
	}
	return DecodeJSON([]byte(str))
}

func DecodeJSON(b []byte) (Config, error) {
	var cfg Config
	if len(bytes.TrimSpace(b)) == 0 {
		return cfg, ErrEmptyInput
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}
