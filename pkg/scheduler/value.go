package scheduler

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ValueKind discriminates the closed set of shapes a stored constraint
// value document can take.
type ValueKind int

const (
	ValueNone ValueKind = iota
	ValueScalar
	ValueList
	ValueMap
)

// Value is a decoded constraint value document. Exactly one of the three
// payloads is populated, according to Kind.
type Value struct {
	kind ValueKind
	text string
	list []string
	doc  map[string]any
}

// ScalarValue wraps a bare string value.
func ScalarValue(text string) Value {
	return Value{kind: ValueScalar, text: text}
}

// ListValue wraps an ordered list value.
func ListValue(items ...string) Value {
	return Value{kind: ValueList, list: items}
}

// MapValue wraps a structured map value.
func MapValue(doc map[string]any) Value {
	return Value{kind: ValueMap, doc: doc}
}

// Kind reports the shape of the value.
func (v Value) Kind() ValueKind { return v.kind }

// DecodeValue parses a raw stored value. Valid JSON objects, arrays and
// strings map onto the three shapes; malformed JSON reads as a literal
// scalar. Numbers, booleans and null carry no usable signal and decode to
// an empty value the classifier ignores.
func DecodeValue(raw string) Value {
	if strings.TrimSpace(raw) == "" {
		return Value{}
	}
	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return ScalarValue(raw)
	}
	switch doc := parsed.(type) {
	case map[string]any:
		return MapValue(doc)
	case []any:
		return ListValue(stringItems(doc)...)
	case string:
		return ScalarValue(doc)
	}
	return Value{}
}

// stringItems renders list elements as strings, dropping empties.
func stringItems(items []any) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		s, ok := item.(string)
		if !ok {
			s = fmt.Sprint(item)
		}
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
