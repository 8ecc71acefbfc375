package pkgjson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/matzehuels/tame/pkg/errors"
)

// Edit replaces one dependency version.
type Edit struct {
	Field string `json:"field"`          // dependency field, e.g. "dependencies"
	Name  string `json:"name"`           // dependency name
	From  string `json:"from,omitempty"` // expected current version; empty matches any string value
	To    string `json:"to"`             // replacement version
}

type span struct {
	start, end int
	value      []byte
}

// Rewrite applies edits to package.json content and returns the new content
// together with the number of values changed. Edits whose dependency is
// missing, is not a string, or no longer holds From are skipped. Bytes outside
// the replaced string literals are preserved exactly.
func Rewrite(data []byte, edits []Edit) ([]byte, int, error) {
	byField := make(map[string]map[string]Edit)
	for _, e := range edits {
		if byField[e.Field] == nil {
			byField[e.Field] = make(map[string]Edit)
		}
		byField[e.Field][e.Name] = e
	}

	var spans []span
	err := eachMember(data, func(key string, raw json.RawMessage, start int) error {
		fieldEdits, ok := byField[key]
		if !ok || len(raw) == 0 || raw[0] != '{' {
			return nil
		}
		return eachMember(raw, func(name string, value json.RawMessage, vstart int) error {
			e, ok := fieldEdits[name]
			if !ok || len(value) == 0 || value[0] != '"' {
				return nil
			}
			var current string
			if err := json.Unmarshal(value, &current); err != nil {
				return err
			}
			if e.From != "" && current != e.From {
				return nil
			}
			if current == e.To {
				return nil
			}
			encoded, err := encodeString(e.To)
			if err != nil {
				return err
			}
			abs := start + vstart
			spans = append(spans, span{start: abs, end: abs + len(value), value: encoded})
			return nil
		})
	})
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrCodeParse, err, "failed to parse package.json")
	}
	if len(spans) == 0 {
		return data, 0, nil
	}

	slices.SortFunc(spans, func(a, b span) int { return b.start - a.start })
	out := slices.Clone(data)
	for _, s := range spans {
		out = slices.Concat(out[:s.start], s.value, out[s.end:])
	}
	return out, len(spans), nil
}

// eachMember walks the members of the JSON object in data, calling fn with
// each key, its raw value and the byte offset of the value within data.
func eachMember(data []byte, fn func(key string, value json.RawMessage, start int) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected a JSON object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected an object key, got %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return err
		}
		end := int(dec.InputOffset())
		if err := fn(key, value, end-len(value)); err != nil {
			return err
		}
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

func encodeString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
