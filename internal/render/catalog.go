// Package render turns a resume record into one of the fixed HTML templates.
package render

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"resume-builder/internal/resume"
)

//go:embed catalog.yaml templates/*.html.tmpl
var assets embed.FS

var (
	ErrUnknownTemplate = errors.New("unknown template")

	hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{3,8}$`)
)

// MissingFieldsError lists the required fields a record has not filled in.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "Please fill in the following fields: " + strings.Join(e.Fields, ", ")
}

// Template is one catalog entry.
type Template struct {
	Key            string   `yaml:"key" json:"key"`
	Title          string   `yaml:"title" json:"title"`
	File           string   `yaml:"file" json:"-"`
	Background     string   `yaml:"background" json:"background"`
	RequiredFields []string `yaml:"requiredFields" json:"requiredFields"`

	tmpl *template.Template
}

// FileName is the download name of a rendered template.
func (t Template) FileName() string {
	return t.Title + ".html"
}

// Catalog holds the parsed templates in display order.
type Catalog struct {
	templates []Template
}

type catalogFile struct {
	Templates []Template `yaml:"templates"`
}

// filled reports whether a record field holds a non-empty value.
var filled = map[string]func(resume.Record) bool{
	"firstName":              func(r resume.Record) bool { return r.FirstName != "" },
	"lastName":               func(r resume.Record) bool { return r.LastName != "" },
	"email":                  func(r resume.Record) bool { return r.Email != "" },
	"professionalExperience": func(r resume.Record) bool { return len(r.ProfessionalExperience) > 0 },
	"education":              func(r resume.Record) bool { return len(r.Education) > 0 },
	"skills":                 func(r resume.Record) bool { return len(r.Skills) > 0 },
	"languages":              func(r resume.Record) bool { return len(r.Languages) > 0 },
	"linkedin":               func(r resume.Record) bool { return r.LinkedIn != "" },
	"github":                 func(r resume.Record) bool { return r.GitHub != "" },
	"image":                  func(r resume.Record) bool { return r.Image != "" },
}

// Load parses the embedded catalog and its templates.
func Load() (*Catalog, error) {
	raw, err := assets.ReadFile("catalog.yaml")
	if err != nil {
		return nil, err
	}
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(file.Templates) == 0 {
		return nil, errors.New("catalog has no templates")
	}

	funcs := template.FuncMap{"join": strings.Join}
	seen := make(map[string]struct{}, len(file.Templates))
	for i := range file.Templates {
		t := &file.Templates[i]
		if t.Key == "" || t.File == "" {
			return nil, fmt.Errorf("catalog entry %d: key and file are required", i)
		}
		if _, dup := seen[t.Key]; dup {
			return nil, fmt.Errorf("catalog entry %q: duplicate key", t.Key)
		}
		seen[t.Key] = struct{}{}
		if !hexColor.MatchString(t.Background) {
			return nil, fmt.Errorf("catalog entry %q: background must be a hex color", t.Key)
		}
		for _, f := range t.RequiredFields {
			if _, ok := filled[f]; !ok {
				return nil, fmt.Errorf("catalog entry %q: unknown required field %q", t.Key, f)
			}
		}
		tmpl, err := template.New(t.File).Funcs(funcs).ParseFS(assets, "templates/"+t.File)
		if err != nil {
			return nil, fmt.Errorf("parse template %q: %w", t.Key, err)
		}
		t.tmpl = tmpl
	}
	return &Catalog{templates: file.Templates}, nil
}

// List returns the catalog entries in display order.
func (c *Catalog) List() []Template {
	return append([]Template(nil), c.templates...)
}

// Get returns the entry for key.
func (c *Catalog) Get(key string) (Template, error) {
	for _, t := range c.templates {
		if t.Key == key {
			return t, nil
		}
	}
	return Template{}, ErrUnknownTemplate
}

// MissingFields lists the required fields of t that rec leaves empty.
func (t Template) MissingFields(rec resume.Record) []string {
	missing := make([]string, 0)
	for _, f := range t.RequiredFields {
		if !filled[f](rec) {
			missing = append(missing, f)
		}
	}
	return missing
}

type view struct {
	Title      string
	Background template.CSS
	ImageURL   string
	Record     resume.Record
}

// Render writes the HTML for rec. User-supplied values are escaped by
// html/template; imageBaseURL prefixes the record's image path.
func (t Template) Render(w io.Writer, rec resume.Record, imageBaseURL string) error {
	if missing := t.MissingFields(rec); len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	v := view{
		Title:      t.Title,
		Background: template.CSS(t.Background),
		Record:     rec,
	}
	if rec.Image != "" {
		v.ImageURL = strings.TrimRight(imageBaseURL, "/") + "/" + strings.TrimLeft(rec.Image, "/")
	}
	return t.tmpl.ExecuteTemplate(w, t.File, v)
}
