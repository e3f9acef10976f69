package resume

import (
	"bytes"
	"encoding/json"
	"strings"
)

// FieldKind tags how a list-valued field arrived on the wire.
type FieldKind int

const (
	FieldAbsent FieldKind = iota
	FieldSequence
	FieldJSONText
	FieldCSVText
)

func (k FieldKind) String() string {
	switch k {
	case FieldSequence:
		return "sequence"
	case FieldJSONText:
		return "json"
	case FieldCSVText:
		return "csv"
	default:
		return "absent"
	}
}

// FieldValue is a raw skills/languages input before reconciliation.
type FieldValue struct {
	Kind  FieldKind
	Items []string
	Text  string
}

// Absent is a field that was not sent, or was sent empty.
func Absent() FieldValue { return FieldValue{Kind: FieldAbsent} }

// Sequence is a field that arrived as a native list.
func Sequence(items []string) FieldValue {
	return FieldValue{Kind: FieldSequence, Items: items}
}

// Text classifies a single string value. Blank strings are absent, strings
// that parse as JSON are JSON text, anything else is comma-separated text.
func Text(s string) FieldValue {
	if strings.TrimSpace(s) == "" {
		return Absent()
	}
	if json.Valid([]byte(s)) {
		return FieldValue{Kind: FieldJSONText, Text: s}
	}
	return FieldValue{Kind: FieldCSVText, Text: s}
}

// FromForm classifies the values submitted for one form key. Repeated keys
// form a sequence.
func FromForm(values []string) FieldValue {
	switch len(values) {
	case 0:
		return Absent()
	case 1:
		return Text(values[0])
	default:
		return Sequence(values)
	}
}

// FromJSON classifies one member of a JSON request body. Native arrays are
// sequences and strings are classified like form text; other types are absent.
func FromJSON(raw json.RawMessage) FieldValue {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return Absent()
	}
	switch raw[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return Absent()
		}
		return Sequence(stringifyAll(items))
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return Absent()
		}
		return Text(s)
	default:
		return Absent()
	}
}

// ReconcileSequence resolves v into a list of strings. Sequences pass through
// untouched, JSON text that holds an array yields its elements, CSV text is
// split on commas and trimmed, and everything else falls back to previous.
// The result is never nil.
func ReconcileSequence(v FieldValue, previous []string) []string {
	switch v.Kind {
	case FieldSequence:
		return append([]string{}, v.Items...)
	case FieldJSONText:
		var items []json.RawMessage
		if err := json.Unmarshal([]byte(v.Text), &items); err == nil && items != nil {
			return stringifyAll(items)
		}
	case FieldCSVText:
		parts := strings.Split(v.Text, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return append([]string{}, previous...)
}

func stringifyAll(items []json.RawMessage) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, stringify(item))
	}
	return out
}

// stringify renders a JSON scalar as text. Strings are unquoted and null is
// empty; other values keep their JSON spelling.
func stringify(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
