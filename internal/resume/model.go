package resume

// Identity is the account half of a resume record. It is owned by the users
// package and never modified here.
type Identity struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type Experience struct {
	JobTitle    string `json:"jobTitle"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

type Education struct {
	Degree      string `json:"degree" form:"degree" validate:"required"`
	Institution string `json:"institution" form:"institution" validate:"required"`
	Year        string `json:"year" form:"year" validate:"required"`
}

// Content is the persisted, user-editable part of a resume.
type Content struct {
	ProfessionalExperience []Experience `json:"professionalExperience"`
	Education              []Education  `json:"education"`
	Skills                 []string     `json:"skills"`
	Languages              []string     `json:"languages"`
	LinkedIn               string       `json:"linkedin"`
	GitHub                 string       `json:"github"`
	Image                  string       `json:"image"`
	Submitted              bool         `json:"submitted"`
}

// Record is one user's resume: identity plus content, serialized flat.
type Record struct {
	Identity
	Content
}

// clone returns a deep copy so callers can mutate without aliasing the input.
func (c Content) clone() Content {
	out := c
	out.ProfessionalExperience = append(make([]Experience, 0, len(c.ProfessionalExperience)), c.ProfessionalExperience...)
	out.Education = append(make([]Education, 0, len(c.Education)), c.Education...)
	out.Skills = append(make([]string, 0, len(c.Skills)), c.Skills...)
	out.Languages = append(make([]string, 0, len(c.Languages)), c.Languages...)
	return out
}

// Empty reports whether no content has been entered yet.
func (c Content) Empty() bool {
	return len(c.ProfessionalExperience) == 0 && len(c.Education) == 0 &&
		len(c.Skills) == 0 && len(c.Languages) == 0 &&
		c.LinkedIn == "" && c.GitHub == "" && c.Image == "" && !c.Submitted
}
