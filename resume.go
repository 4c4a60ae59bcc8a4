package resumepdf

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// ID is a stable numeric identity. Zero means "not persisted yet".
type ID int64

// validate is shared by Resume.Validate and registry construction.
// validator.Validate caches struct metadata and is safe for concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Resume is the aggregate root handed to the rendering pipeline.
//
// It owns its child records by value: every slice element belongs to this
// Resume only, and child back-references (ResumeID, ExperienceID) are plain
// identifiers used for traversal. Slice order is display order.
type Resume struct {
	ID        ID        `yaml:"id,omitempty" json:"id,omitempty"`
	OwnerID   ID        `yaml:"ownerId,omitempty" json:"ownerId,omitempty"`
	Title     string    `yaml:"title" json:"title" validate:"required,max=200"`
	Summary   string    `yaml:"summary,omitempty" json:"summary,omitempty"`
	CreatedAt time.Time `yaml:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt time.Time `yaml:"updatedAt,omitempty" json:"updatedAt,omitempty"`

	Experiences    []Experience    `yaml:"experiences,omitempty" json:"experiences,omitempty" validate:"dive"`
	Educations     []Education     `yaml:"educations,omitempty" json:"educations,omitempty" validate:"dive"`
	Skills         []Skill         `yaml:"skills,omitempty" json:"skills,omitempty" validate:"dive"`
	Certifications []Certification `yaml:"certifications,omitempty" json:"certifications,omitempty" validate:"dive"`
	Languages      []Language      `yaml:"languages,omitempty" json:"languages,omitempty" validate:"dive"`
	Hobbies        []Hobby         `yaml:"hobbies,omitempty" json:"hobbies,omitempty" validate:"dive"`
}

// Experience is a position held, with the projects delivered there.
type Experience struct {
	ID               ID        `yaml:"id,omitempty" json:"id,omitempty"`
	ResumeID         ID        `yaml:"resumeId,omitempty" json:"resumeId,omitempty"`
	CompanyName      string    `yaml:"companyName" json:"companyName" validate:"required"`
	JobTitle         string    `yaml:"jobTitle" json:"jobTitle" validate:"required"`
	StartDate        Date      `yaml:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate          Date      `yaml:"endDate,omitempty" json:"endDate,omitempty"`
	CurrentlyWorking bool      `yaml:"currentlyWorking,omitempty" json:"currentlyWorking,omitempty"`
	Description      string    `yaml:"description,omitempty" json:"description,omitempty"`
	Projects         []Project `yaml:"projects,omitempty" json:"projects,omitempty" validate:"dive"`
}

// Project belongs to exactly one Experience.
type Project struct {
	ID           ID     `yaml:"id,omitempty" json:"id,omitempty"`
	ExperienceID ID     `yaml:"experienceId,omitempty" json:"experienceId,omitempty"`
	Name         string `yaml:"name" json:"name" validate:"required"`
	Description  string `yaml:"description,omitempty" json:"description,omitempty"`
	Technologies string `yaml:"technologies,omitempty" json:"technologies,omitempty"`
	URL          string `yaml:"url,omitempty" json:"url,omitempty" validate:"omitempty,url"`
}

// Education is a degree or course of study.
type Education struct {
	ID                ID     `yaml:"id,omitempty" json:"id,omitempty"`
	ResumeID          ID     `yaml:"resumeId,omitempty" json:"resumeId,omitempty"`
	Institution       string `yaml:"institution" json:"institution" validate:"required"`
	Degree            string `yaml:"degree" json:"degree" validate:"required"`
	FieldOfStudy      string `yaml:"fieldOfStudy,omitempty" json:"fieldOfStudy,omitempty"`
	StartDate         Date   `yaml:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate           Date   `yaml:"endDate,omitempty" json:"endDate,omitempty"`
	CurrentlyStudying bool   `yaml:"currentlyStudying,omitempty" json:"currentlyStudying,omitempty"`
	Description       string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Skill has an optional proficiency on a 1-5 scale (0 = unrated).
type Skill struct {
	ID               ID     `yaml:"id,omitempty" json:"id,omitempty"`
	ResumeID         ID     `yaml:"resumeId,omitempty" json:"resumeId,omitempty"`
	Name             string `yaml:"name" json:"name" validate:"required"`
	ProficiencyLevel int    `yaml:"proficiencyLevel,omitempty" json:"proficiencyLevel,omitempty" validate:"gte=0,lte=5"`
}

// Certification is a credential issued by an organization.
type Certification struct {
	ID                  ID     `yaml:"id,omitempty" json:"id,omitempty"`
	ResumeID            ID     `yaml:"resumeId,omitempty" json:"resumeId,omitempty"`
	Name                string `yaml:"name" json:"name" validate:"required"`
	IssuingOrganization string `yaml:"issuingOrganization,omitempty" json:"issuingOrganization,omitempty"`
	IssueDate           Date   `yaml:"issueDate,omitempty" json:"issueDate,omitempty"`
	ExpirationDate      Date   `yaml:"expirationDate,omitempty" json:"expirationDate,omitempty"`
	CredentialID        string `yaml:"credentialId,omitempty" json:"credentialId,omitempty"`
	CredentialURL       string `yaml:"credentialUrl,omitempty" json:"credentialUrl,omitempty" validate:"omitempty,url"`
}

// Language is a spoken language, e.g. {"French", "Native"}.
type Language struct {
	ID               ID     `yaml:"id,omitempty" json:"id,omitempty"`
	ResumeID         ID     `yaml:"resumeId,omitempty" json:"resumeId,omitempty"`
	Name             string `yaml:"name" json:"name" validate:"required"`
	ProficiencyLevel string `yaml:"proficiencyLevel,omitempty" json:"proficiencyLevel,omitempty"`
}

// Hobby is a personal interest.
type Hobby struct {
	ID          ID     `yaml:"id,omitempty" json:"id,omitempty"`
	ResumeID    ID     `yaml:"resumeId,omitempty" json:"resumeId,omitempty"`
	Name        string `yaml:"name" json:"name" validate:"required"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// NewResume returns an empty, not yet persisted aggregate.
func NewResume(title string) *Resume {
	return &Resume{Title: title}
}

// Equal reports identity equality: the same instance, or two persisted
// instances with the same ID. Unpersisted instances never equal another one.
func (r *Resume) Equal(other *Resume) bool {
	if r == nil || other == nil {
		return false
	}
	return r == other || sameID(r.ID, other.ID)
}

// Equal reports whether both experiences are persisted with the same ID.
func (e Experience) Equal(other Experience) bool { return sameID(e.ID, other.ID) }

// Equal reports whether both projects are persisted with the same ID.
func (p Project) Equal(other Project) bool { return sameID(p.ID, other.ID) }

// Equal reports whether both educations are persisted with the same ID.
func (e Education) Equal(other Education) bool { return sameID(e.ID, other.ID) }

// Equal reports whether both skills are persisted with the same ID.
func (s Skill) Equal(other Skill) bool { return sameID(s.ID, other.ID) }

// Equal reports whether both certifications are persisted with the same ID.
func (c Certification) Equal(other Certification) bool { return sameID(c.ID, other.ID) }

// Equal reports whether both languages are persisted with the same ID.
func (l Language) Equal(other Language) bool { return sameID(l.ID, other.ID) }

// Equal reports whether both hobbies are persisted with the same ID.
func (h Hobby) Equal(other Hobby) bool { return sameID(h.ID, other.ID) }

func sameID(a, b ID) bool {
	return a != 0 && a == b
}

// AddExperience appends e (and its projects) to the aggregate.
func (r *Resume) AddExperience(e Experience) {
	e.ResumeID = r.ID
	e.Projects = stampProjects(cloneSlice(e.Projects), e.ID)
	r.Experiences = append(r.Experiences, e)
}

// AddEducation appends an education record.
func (r *Resume) AddEducation(e Education) {
	e.ResumeID = r.ID
	r.Educations = append(r.Educations, e)
}

// AddSkill appends a skill.
func (r *Resume) AddSkill(s Skill) {
	s.ResumeID = r.ID
	r.Skills = append(r.Skills, s)
}

// AddCertification appends a certification.
func (r *Resume) AddCertification(c Certification) {
	c.ResumeID = r.ID
	r.Certifications = append(r.Certifications, c)
}

// AddLanguage appends a language.
func (r *Resume) AddLanguage(l Language) {
	l.ResumeID = r.ID
	r.Languages = append(r.Languages, l)
}

// AddHobby appends a hobby.
func (r *Resume) AddHobby(h Hobby) {
	h.ResumeID = r.ID
	r.Hobbies = append(r.Hobbies, h)
}

// RemoveExperience detaches the experience at index i together with its
// projects. It reports false when i is out of range.
func (r *Resume) RemoveExperience(i int) bool {
	if i < 0 || i >= len(r.Experiences) {
		return false
	}
	r.Experiences = append(r.Experiences[:i:i], r.Experiences[i+1:]...)
	return true
}

// AddProject appends a project to the experience.
func (e *Experience) AddProject(p Project) {
	p.ExperienceID = e.ID
	e.Projects = append(e.Projects, p)
}

// AssignID sets the experience identity and re-stamps its projects.
func (e *Experience) AssignID(id ID) {
	e.ID = id
	stampProjects(e.Projects, id)
}

// AssignID sets the aggregate identity and re-stamps every child
// back-reference so they keep pointing at their owner.
func (r *Resume) AssignID(id ID) {
	r.ID = id
	for i := range r.Experiences {
		r.Experiences[i].ResumeID = id
	}
	for i := range r.Educations {
		r.Educations[i].ResumeID = id
	}
	for i := range r.Skills {
		r.Skills[i].ResumeID = id
	}
	for i := range r.Certifications {
		r.Certifications[i].ResumeID = id
	}
	for i := range r.Languages {
		r.Languages[i].ResumeID = id
	}
	for i := range r.Hobbies {
		r.Hobbies[i].ResumeID = id
	}
}

// Clone returns a deep copy sharing no child storage with r.
func (r *Resume) Clone() *Resume {
	if r == nil {
		return nil
	}
	c := *r
	c.Experiences = cloneSlice(r.Experiences)
	for i := range c.Experiences {
		c.Experiences[i].Projects = cloneSlice(c.Experiences[i].Projects)
	}
	c.Educations = cloneSlice(r.Educations)
	c.Skills = cloneSlice(r.Skills)
	c.Certifications = cloneSlice(r.Certifications)
	c.Languages = cloneSlice(r.Languages)
	c.Hobbies = cloneSlice(r.Hobbies)
	return &c
}

// IsEmpty reports whether the aggregate has no child records.
func (r *Resume) IsEmpty() bool {
	return len(r.Experiences) == 0 && len(r.Educations) == 0 && len(r.Skills) == 0 &&
		len(r.Certifications) == 0 && len(r.Languages) == 0 && len(r.Hobbies) == 0
}

// CheckOwnership verifies that every set back-reference points at its owner.
func (r *Resume) CheckOwnership() error {
	if r == nil {
		return ErrNilResume
	}
	var errs []error
	owned := func(section string, i int, ref ID) {
		if ref != 0 && ref != r.ID {
			errs = append(errs, fmt.Errorf("%w: %s[%d] references resume %d, owner is %d", ErrOwnership, section, i, ref, r.ID))
		}
	}
	for i, e := range r.Experiences {
		owned("experiences", i, e.ResumeID)
		for j, p := range e.Projects {
			if p.ExperienceID != 0 && p.ExperienceID != e.ID {
				errs = append(errs, fmt.Errorf("%w: experiences[%d].projects[%d] references experience %d, owner is %d",
					ErrOwnership, i, j, p.ExperienceID, e.ID))
			}
		}
	}
	for i, e := range r.Educations {
		owned("educations", i, e.ResumeID)
	}
	for i, s := range r.Skills {
		owned("skills", i, s.ResumeID)
	}
	for i, c := range r.Certifications {
		owned("certifications", i, c.ResumeID)
	}
	for i, l := range r.Languages {
		owned("languages", i, l.ResumeID)
	}
	for i, h := range r.Hobbies {
		owned("hobbies", i, h.ResumeID)
	}
	return errors.Join(errs...)
}

// Validate checks required fields and ownership. The rendering pipeline
// only enforces ownership; Validate is for callers accepting external input.
func (r *Resume) Validate() error {
	if r == nil {
		return ErrNilResume
	}
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid resume: %w", err)
	}
	return r.CheckOwnership()
}

func stampProjects(projects []Project, experienceID ID) []Project {
	for i := range projects {
		projects[i].ExperienceID = experienceID
	}
	return projects
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
