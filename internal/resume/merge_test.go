package resume

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedRecord() Record {
	return Record{
		Identity: Identity{ID: "u-1", FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
		Content: Content{
			ProfessionalExperience: []Experience{{JobTitle: "Analyst", Company: "Engine Co"}},
			Education:              []Education{{Degree: "BSc", Institution: "London", Year: "1835"}},
			Skills:                 []string{"math"},
			Languages:              []string{"English"},
			LinkedIn:               "https://linkedin.com/in/ada",
			GitHub:                 "https://github.com/ada",
			Image:                  "uploads/old.png",
		},
	}
}

func TestMergeReplacesStructuredListsWholesale(t *testing.T) {
	current := storedRecord()
	next, stale, err := Merge(current, Submission{
		ProfessionalExperience: `[{"jobTitle":"Engineer","company":"Acme","duration":"2y","description":"built things"},{"jobTitle":"Lead"}]`,
	}, "")
	require.NoError(t, err)
	assert.Empty(t, stale)
	assert.Equal(t, []Experience{
		{JobTitle: "Engineer", Company: "Acme", Duration: "2y", Description: "built things"},
		{JobTitle: "Lead"},
	}, next.ProfessionalExperience)
	assert.Equal(t, current.Education, next.Education)
	assert.Equal(t, current.Identity, next.Identity)
}

func TestMergeCoercesNumericFields(t *testing.T) {
	next, _, err := Merge(Record{}, Submission{Education: `[{"degree":"MSc","institution":"MIT","year":2020}]`}, "")
	require.NoError(t, err)
	assert.Equal(t, []Education{{Degree: "MSc", Institution: "MIT", Year: "2020"}}, next.Education)
}

func TestMergeMalformedStructuredListLeavesRecordUntouched(t *testing.T) {
	current := storedRecord()
	before, err := json.Marshal(current)
	require.NoError(t, err)

	for name, in := range map[string]Submission{
		"invalid json":     {ProfessionalExperience: `[{"jobTitle":`, Skills: Text("a,b")},
		"not an array":     {Education: `{"degree":"BSc"}`, LinkedIn: "x"},
		"array of strings": {ProfessionalExperience: `["Engineer"]`},
		"nested object":    {Education: `[{"degree":{"name":"BSc"}}]`},
	} {
		t.Run(name, func(t *testing.T) {
			next, stale, err := Merge(current, in, "uploads/new.png")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedPayload), "got %v", err)
			assert.Equal(t, Record{}, next)
			assert.Empty(t, stale)

			after, err := json.Marshal(current)
			require.NoError(t, err)
			assert.JSONEq(t, string(before), string(after))
		})
	}
}

func TestMergeSequenceFieldsKeepOldOnEmpty(t *testing.T) {
	current := storedRecord()
	tests := []struct {
		name string
		in   FieldValue
		want []string
	}{
		{name: "absent", in: Absent(), want: []string{"math"}},
		{name: "empty json array", in: Text("[]"), want: []string{"math"}},
		{name: "empty sequence", in: Sequence(nil), want: []string{"math"}},
		{name: "csv", in: Text("go, rust ,  c++"), want: []string{"go", "rust", "c++"}},
		{name: "json", in: Text(`["go"]`), want: []string{"go"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, _, err := Merge(current, Submission{Skills: tt.in}, "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, next.Skills)
			assert.Equal(t, []string{"English"}, next.Languages)
		})
	}
}

func TestMergeLanguagesUseReconciler(t *testing.T) {
	next, _, err := Merge(storedRecord(), Submission{Languages: FromForm([]string{"French", "German"})}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"French", "German"}, next.Languages)
	assert.Equal(t, []string{"math"}, next.Skills)
}

func TestMergeLinksAreTrimmedAndBlankKeepsOld(t *testing.T) {
	current := storedRecord()
	next, _, err := Merge(current, Submission{LinkedIn: "  https://linkedin.com/in/new  ", GitHub: "   "}, "")
	require.NoError(t, err)
	assert.Equal(t, "https://linkedin.com/in/new", next.LinkedIn)
	assert.Equal(t, current.GitHub, next.GitHub)
}

func TestMergeImageReplacementReportsPrevious(t *testing.T) {
	current := storedRecord()
	next, stale, err := Merge(current, Submission{}, "uploads/new.png")
	require.NoError(t, err)
	assert.Equal(t, "uploads/new.png", next.Image)
	assert.Equal(t, "uploads/old.png", stale)

	current.Image = ""
	next, stale, err = Merge(current, Submission{}, "uploads/first.png")
	require.NoError(t, err)
	assert.Equal(t, "uploads/first.png", next.Image)
	assert.Empty(t, stale)

	next, stale, err = Merge(storedRecord(), Submission{}, "")
	require.NoError(t, err)
	assert.Equal(t, "uploads/old.png", next.Image)
	assert.Empty(t, stale)
}

func TestMergeDoesNotTouchSubmitted(t *testing.T) {
	current := storedRecord()
	current.Submitted = true
	next, _, err := Merge(current, Submission{Skills: Text("go")}, "")
	require.NoError(t, err)
	assert.True(t, next.Submitted)

	next, _, err = Merge(Record{}, Submission{}, "")
	require.NoError(t, err)
	assert.False(t, next.Submitted)
}

func TestSubmitAppliesMergeAndMarksSubmitted(t *testing.T) {
	in := Submission{
		ProfessionalExperience: `[{"jobTitle":"Engineer"}]`,
		Skills:                 Text("go, sql"),
		GitHub:                 " https://github.com/x ",
	}
	merged, _, err := Merge(Record{}, in, "uploads/a.png")
	require.NoError(t, err)
	submitted, stale, err := Submit(Record{}, in, "uploads/a.png")
	require.NoError(t, err)

	assert.Empty(t, stale)
	assert.True(t, submitted.Submitted)
	submitted.Submitted = false
	assert.Equal(t, merged, submitted)
}

func TestSubmitMalformedFails(t *testing.T) {
	_, _, err := Submit(storedRecord(), Submission{Education: "nope"}, "")
	assert.ErrorIs(t, err, ErrMalformedPayload)
}
