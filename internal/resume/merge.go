package resume

import "strings"

// Submission is a partial resume update as received from a client.
// Structured lists hold raw JSON text; an empty string means the field was
// not sent.
type Submission struct {
	ProfessionalExperience string
	Education              string
	Skills                 FieldValue
	Languages              FieldValue
	LinkedIn               string
	GitHub                 string
}

// Merge computes the next record from current and in. newImage, when set, is
// the path of a freshly stored asset; the returned path is the asset the new
// record no longer references and should be deleted, if any. On error the
// returned record is the zero value and current is left untouched.
func Merge(current Record, in Submission, newImage string) (Record, string, error) {
	next := current
	next.Content = current.Content.clone()

	if in.ProfessionalExperience != "" {
		items, err := decodeExperience(in.ProfessionalExperience)
		if err != nil {
			return Record{}, "", err
		}
		next.ProfessionalExperience = items
	}
	if in.Education != "" {
		items, err := decodeEducation(in.Education)
		if err != nil {
			return Record{}, "", err
		}
		next.Education = items
	}

	// An empty result never clears a stored list.
	if skills := ReconcileSequence(in.Skills, current.Skills); len(skills) > 0 {
		next.Skills = skills
	}
	if languages := ReconcileSequence(in.Languages, current.Languages); len(languages) > 0 {
		next.Languages = languages
	}

	if v := strings.TrimSpace(in.LinkedIn); v != "" {
		next.LinkedIn = v
	}
	if v := strings.TrimSpace(in.GitHub); v != "" {
		next.GitHub = v
	}

	var stale string
	if newImage != "" {
		stale = current.Image
		next.Image = newImage
	}
	return next, stale, nil
}

// Submit applies Merge and marks the record as submitted.
func Submit(current Record, in Submission, newImage string) (Record, string, error) {
	next, stale, err := Merge(current, in, newImage)
	if err != nil {
		return Record{}, "", err
	}
	next.Submitted = true
	return next, stale, nil
}
