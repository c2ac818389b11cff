package decode

import (
	"bytes"
	"encoding/json"
	"time"

	"gopkg.in/yaml.v3"
)

// writeJSON re-encodes a YAML tree as JSON. Mapping keys keep their
// order so that series are rendered in the order they were written.
func writeJSON(w *bytes.Buffer, n *yaml.Node) error {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			w.WriteString("null")
			return nil
		}
		return writeJSON(w, n.Content[0])
	case yaml.AliasNode:
		return writeJSON(w, n.Alias)
	case yaml.MappingNode:
		w.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, val := n.Content[i], n.Content[i+1]
			if key.Kind != yaml.ScalarNode {
				return nodeError(key, "mapping keys must be scalars")
			}
			if i > 0 {
				w.WriteByte(',')
			}
			b, _ := json.Marshal(key.Value)
			w.Write(b)
			w.WriteByte(':')
			if err := writeJSON(w, val); err != nil {
				return err
			}
		}
		w.WriteByte('}')
	case yaml.SequenceNode:
		w.WriteByte('[')
		for i, c := range n.Content {
			if i > 0 {
				w.WriteByte(',')
			}
			if err := writeJSON(w, c); err != nil {
				return err
			}
		}
		w.WriteByte(']')
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nodeError(n, err.Error())
		}
		if t, ok := v.(time.Time); ok {
			v = t.Format(time.RFC3339)
		}
		b, err := json.Marshal(v)
		if err != nil {
			return nodeError(n, err.Error())
		}
		w.Write(b)
	default:
		return nodeError(n, "unsupported yaml node")
	}
	return nil
}

func nodeError(n *yaml.Node, msg string) error {
	return DecodeError{
		Message: msg,
		Position: Position{
			Line:   n.Line,
			Column: n.Column,
		},
	}
}
