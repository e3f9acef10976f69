package resume

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextClassification(t *testing.T) {
	tests := []struct {
		in   string
		want FieldKind
	}{
		{in: "", want: FieldAbsent},
		{in: "   ", want: FieldAbsent},
		{in: `["go","rust"]`, want: FieldJSONText},
		{in: `{"a":1}`, want: FieldJSONText},
		{in: `42`, want: FieldJSONText},
		{in: "go, rust", want: FieldCSVText},
		{in: "go", want: FieldCSVText},
		{in: `["unterminated"`, want: FieldCSVText},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.in).Kind)
		})
	}
}

func TestReconcileSequencePrecedence(t *testing.T) {
	previous := []string{"old"}
	tests := []struct {
		name     string
		in       FieldValue
		previous []string
		want     []string
	}{
		{name: "sequence passes through", in: Sequence([]string{"a", " b "}), previous: previous, want: []string{"a", " b "}},
		{name: "empty sequence passes through", in: Sequence([]string{}), previous: previous, want: []string{}},
		{name: "json array", in: Text(`["go","rust","c++"]`), previous: previous, want: []string{"go", "rust", "c++"}},
		{name: "json array with scalars", in: Text(`["go", 3, true, null]`), previous: previous, want: []string{"go", "3", "true", ""}},
		{name: "json non-array keeps previous", in: Text(`{"skill":"go"}`), previous: previous, want: previous},
		{name: "json number keeps previous", in: Text(`7`), previous: previous, want: previous},
		{name: "json null keeps previous", in: Text(`null`), previous: previous, want: previous},
		{name: "csv trims elements", in: Text("go, rust ,  c++"), previous: previous, want: []string{"go", "rust", "c++"}},
		{name: "csv keeps empty elements", in: Text("a,,b"), previous: previous, want: []string{"a", "", "b"}},
		{name: "single word", in: Text("go"), previous: previous, want: []string{"go"}},
		{name: "absent keeps previous", in: Absent(), previous: previous, want: previous},
		{name: "blank keeps previous", in: Text("  "), previous: previous, want: previous},
		{name: "absent without previous", in: Absent(), previous: nil, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReconcileSequence(tt.in, tt.previous)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReconcileSequenceDoesNotAliasInputs(t *testing.T) {
	previous := []string{"old"}
	got := ReconcileSequence(Absent(), previous)
	got[0] = "changed"
	assert.Equal(t, "old", previous[0])

	items := []string{"a"}
	got = ReconcileSequence(Sequence(items), nil)
	got[0] = "changed"
	assert.Equal(t, "a", items[0])
}

func TestFromFormRepeatedKeysAreSequence(t *testing.T) {
	assert.Equal(t, FieldAbsent, FromForm(nil).Kind)
	assert.Equal(t, FieldCSVText, FromForm([]string{"go, rust"}).Kind)

	v := FromForm([]string{"go", "rust"})
	require.Equal(t, FieldSequence, v.Kind)
	assert.Equal(t, []string{"go", "rust"}, ReconcileSequence(v, nil))
}

func TestFromJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		kind FieldKind
		want []string
	}{
		{name: "missing", raw: "", kind: FieldAbsent, want: []string{"prev"}},
		{name: "null", raw: "null", kind: FieldAbsent, want: []string{"prev"}},
		{name: "native array", raw: `["go", 1]`, kind: FieldSequence, want: []string{"go", "1"}},
		{name: "json string", raw: `"[\"go\"]"`, kind: FieldJSONText, want: []string{"go"}},
		{name: "csv string", raw: `"go, sql"`, kind: FieldCSVText, want: []string{"go", "sql"}},
		{name: "number", raw: `12`, kind: FieldAbsent, want: []string{"prev"}},
		{name: "object", raw: `{"a":"b"}`, kind: FieldAbsent, want: []string{"prev"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := FromJSON(json.RawMessage(tt.raw))
			assert.Equal(t, tt.kind, v.Kind)
			assert.Equal(t, tt.want, ReconcileSequence(v, []string{"prev"}))
		})
	}
}
