package resume

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

var loadSchemas = sync.OnceValues(func() (map[string]*gojsonschema.Schema, error) {
	out := make(map[string]*gojsonschema.Schema, 2)
	for _, name := range []string{"experience", "education"} {
		raw, err := schemaFS.ReadFile("schemas/" + name + ".json")
		if err != nil {
			return nil, err
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
		if err != nil {
			return nil, fmt.Errorf("compile %s schema: %w", name, err)
		}
		out[name] = schema
	}
	return out, nil
})

// decodeList validates text against the named list schema and decodes it as
// a list of flat objects with textual values.
func decodeList(name, text string) ([]map[string]string, error) {
	schemas, err := loadSchemas()
	if err != nil {
		return nil, err
	}
	result, err := schemas[name].Validate(gojsonschema.NewStringLoader(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedPayload, name, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("%w: %s: %s", ErrMalformedPayload, name, strings.Join(msgs, "; "))
	}

	var items []map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedPayload, name, err)
	}
	out := make([]map[string]string, 0, len(items))
	for _, item := range items {
		fields := make(map[string]string, len(item))
		for k, v := range item {
			fields[k] = stringify(v)
		}
		out = append(out, fields)
	}
	return out, nil
}

func decodeExperience(text string) ([]Experience, error) {
	items, err := decodeList("experience", text)
	if err != nil {
		return nil, err
	}
	out := make([]Experience, 0, len(items))
	for _, f := range items {
		out = append(out, Experience{
			JobTitle:    f["jobTitle"],
			Company:     f["company"],
			Duration:    f["duration"],
			Description: f["description"],
		})
	}
	return out, nil
}

func decodeEducation(text string) ([]Education, error) {
	items, err := decodeList("education", text)
	if err != nil {
		return nil, err
	}
	out := make([]Education, 0, len(items))
	for _, f := range items {
		out = append(out, Education{
			Degree:      f["degree"],
			Institution: f["institution"],
			Year:        f["year"],
		})
	}
	return out, nil
}
