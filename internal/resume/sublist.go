package resume

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Collection names an index-addressable list of a record.
type Collection string

const (
	CollectionExperience Collection = "experience"
	CollectionEducation  Collection = "education"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// DeleteEntry removes the element at index from the named collection. Out of
// range indexes return ErrIndexOutOfRange and the record unchanged.
func DeleteEntry(r Record, c Collection, index int) (Record, error) {
	next := r
	next.Content = r.Content.clone()
	switch c {
	case CollectionExperience:
		if index < 0 || index >= len(next.ProfessionalExperience) {
			return r, ErrIndexOutOfRange
		}
		next.ProfessionalExperience = append(next.ProfessionalExperience[:index], next.ProfessionalExperience[index+1:]...)
	case CollectionEducation:
		if index < 0 || index >= len(next.Education) {
			return r, ErrIndexOutOfRange
		}
		next.Education = append(next.Education[:index], next.Education[index+1:]...)
	default:
		return r, &ValidationError{Message: "Unknown collection"}
	}
	return next, nil
}

// AddEducation appends e to the record's education list. All fields are
// required.
func AddEducation(r Record, e Education) (Record, error) {
	e.Degree = strings.TrimSpace(e.Degree)
	e.Institution = strings.TrimSpace(e.Institution)
	e.Year = strings.TrimSpace(e.Year)
	if err := validate.Struct(e); err != nil {
		return r, &ValidationError{Message: "All fields are required"}
	}
	next := r
	next.Content = r.Content.clone()
	next.Education = append(next.Education, e)
	return next, nil
}
