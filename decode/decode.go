package decode

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/midbel/effcharts"
	"gopkg.in/yaml.v3"
)

type Format int

const (
	FormatAuto Format = iota
	FormatJSON
	FormatURL
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatURL:
		return "url"
	case FormatYAML:
		return "yaml"
	default:
		return "auto"
	}
}

func ParseFormat(str string) (Format, error) {
	switch strings.ToLower(str) {
	case "", "auto":
		return FormatAuto, nil
	case "json":
		return FormatJSON, nil
	case "url", "uri":
		return FormatURL, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return FormatAuto, fmt.Errorf("%s: unknown config format", str)
	}
}

// FormatFromPath guesses the format of a config file from its extension.
func FormatFromPath(file string) Format {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".json":
		return FormatJSON
	case ".yml", ".yaml":
		return FormatYAML
	case ".txt", ".url":
		return FormatURL
	default:
		return FormatAuto
	}
}

// Decoder reads a chart config written as JSON, as an encoded attribute
// value or as YAML.
type Decoder struct {
	r      io.Reader
	file   string
	format Format
	strict bool
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		r: r,
	}
}

// SetFile names the source in error messages.
func (d *Decoder) SetFile(file string) {
	d.file = file
}

func (d *Decoder) SetFormat(format Format) {
	d.format = format
}

// SetStrict makes unknown options an error instead of being ignored.
func (d *Decoder) SetStrict(strict bool) {
	d.strict = strict
}

func (d *Decoder) Decode() (charts.Config, error) {
	var cfg charts.Config
	buf, err := io.ReadAll(d.r)
	if err != nil {
		return cfg, d.decodeError("read config", err)
	}
	buf = bytes.TrimSpace(buf)
	if len(buf) == 0 {
		return cfg, d.decodeError("empty config", charts.ErrEmptyInput)
	}
	format := d.format
	if format == FormatAuto {
		format = sniff(buf)
	}
	switch format {
	case FormatURL:
		str, err := url.PathUnescape(string(buf))
		if err != nil {
			return cfg, d.decodeError("unescape config", err)
		}
		return d.decodeJSON([]byte(str))
	case FormatJSON:
		return d.decodeJSON(buf)
	default:
		return d.decodeYAML(buf)
	}
}

func sniff(buf []byte) Format {
	switch {
	case buf[0] == '{':
		return FormatJSON
	case len(buf) >= 3 && strings.EqualFold(string(buf[:3]), "%7B"):
		return FormatURL
	default:
		return FormatYAML
	}
}

func (d *Decoder) decodeJSON(buf []byte) (charts.Config, error) {
	if d.strict {
		var root yaml.Node
		if err := yaml.Unmarshal(buf, &root); err == nil {
			if err := d.checkOptions(&root); err != nil {
				return charts.Config{}, err
			}
		}
	}
	cfg, err := charts.DecodeJSON(buf)
	if err != nil {
		return cfg, d.jsonError(buf, err)
	}
	return cfg, nil
}

func (d *Decoder) decodeYAML(buf []byte) (charts.Config, error) {
	var (
		cfg  charts.Config
		root yaml.Node
		out  bytes.Buffer
	)
	if err := yaml.Unmarshal(buf, &root); err != nil {
		return cfg, d.yamlError(err)
	}
	if d.strict {
		if err := d.checkOptions(&root); err != nil {
			return cfg, err
		}
	}
	if err := writeJSON(&out, &root); err != nil {
		var derr DecodeError
		if errors.As(err, &derr) {
			derr.File = d.file
			return cfg, derr
		}
		return cfg, d.decodeError("convert yaml", err)
	}
	cfg, err := charts.DecodeJSON(out.Bytes())
	if err != nil {
		return cfg, d.decodeError("invalid config", err)
	}
	return cfg, nil
}

func (d *Decoder) decodeError(msg string, err error) error {
	return DecodeError{
		Message: fmt.Sprintf("%s: %s", msg, err),
		File:    d.file,
		Err:     err,
	}
}

func (d *Decoder) jsonError(buf []byte, err error) error {
	var (
		syntax *json.SyntaxError
		typ    *json.UnmarshalTypeError
		derr   = DecodeError{
			Message: err.Error(),
			File:    d.file,
			Err:     err,
		}
	)
	switch {
	case errors.As(err, &syntax):
		derr.Position = positionAt(buf, syntax.Offset)
	case errors.As(err, &typ):
		derr.Position = positionAt(buf, typ.Offset)
	}
	return derr
}

var yamlLine = regexp.MustCompile(`line (\d+)`)

func (d *Decoder) yamlError(err error) error {
	derr := DecodeError{
		Message: err.Error(),
		File:    d.file,
		Err:     err,
	}
	if m := yamlLine.FindStringSubmatch(err.Error()); len(m) == 2 {
		derr.Line, _ = strconv.Atoi(m[1])
	}
	return derr
}

func positionAt(buf []byte, offset int64) Position {
	if offset < 0 {
		return Position{}
	}
	if offset > int64(len(buf)) {
		offset = int64(len(buf))
	}
	prefix := buf[:offset]
	return Position{
		Line:   bytes.Count(prefix, []byte("\n")) + 1,
		Column: int(offset) - bytes.LastIndexByte(prefix, '\n'),
	}
}

var (
	configOptions = jsonOptions(reflect.TypeOf(charts.Config{}))
	seriesOptions = jsonOptions(reflect.TypeOf(charts.Series{}))
)

func jsonOptions(t reflect.Type) map[string]struct{} {
	set := make(map[string]struct{})
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		set[name] = struct{}{}
	}
	return set
}

func (d *Decoder) checkOptions(root *yaml.Node) error {
	n := root
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	if n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		if _, ok := configOptions[key.Value]; !ok {
			return d.optionError(key, "config")
		}
		if key.Value != "series" || val.Kind != yaml.MappingNode {
			continue
		}
		for j := 0; j+1 < len(val.Content); j += 2 {
			name, ser := val.Content[j], val.Content[j+1]
			if ser.Kind != yaml.MappingNode {
				continue
			}
			for k := 0; k+1 < len(ser.Content); k += 2 {
				if _, ok := seriesOptions[ser.Content[k].Value]; !ok {
					return d.optionError(ser.Content[k], "series."+name.Value)
				}
			}
		}
	}
	return nil
}

func (d *Decoder) optionError(node *yaml.Node, section string) error {
	return OptionError{
		Option:  node.Value,
		Section: section,
		File:    d.file,
		Position: Position{
			Line:   node.Line,
			Column: node.Column,
		},
	}
}
