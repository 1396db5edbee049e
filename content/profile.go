package content

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// MaxSkillLevel is the top of the proficiency scale.
const MaxSkillLevel = 10

// Profile is the CV shown on the home page.
type Profile struct {
	Name           string          `json:"name" yaml:"name" validate:"required"`
	Headline       string          `json:"headline" yaml:"headline"`
	Email          string          `json:"email,omitempty" yaml:"email,omitempty" validate:"omitempty,email"`
	LinkedIn       string          `json:"linkedin,omitempty" yaml:"linkedin,omitempty" validate:"omitempty,url"`
	Photo          string          `json:"photo,omitempty" yaml:"photo,omitempty" validate:"omitempty,url|startswith=/"`
	About          []string        `json:"about" yaml:"about"`
	Featured       *Featured       `json:"featured,omitempty" yaml:"featured,omitempty"`
	Skills         []SkillGroup    `json:"skills" yaml:"skills" validate:"dive"`
	Projects       []Project       `json:"projects" yaml:"projects" validate:"dive"`
	Experience     []Experience    `json:"experience" yaml:"experience" validate:"dive"`
	Education      []Education     `json:"education" yaml:"education" validate:"dive"`
	Certifications []Certification `json:"certifications" yaml:"certifications" validate:"dive"`
	Interests      []string        `json:"interests" yaml:"interests"`
}

// Featured points at one external post worth highlighting.
type Featured struct {
	Text  string `json:"text" yaml:"text"`
	URL   string `json:"url" yaml:"url" validate:"required,url"`
	Image string `json:"image,omitempty" yaml:"image,omitempty"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// SkillGroup is a titled set of skills, e.g. "Testing Tools/Libraries".
type SkillGroup struct {
	Title  string  `json:"title" yaml:"title" validate:"required"`
	Skills []Skill `json:"skills" yaml:"skills" validate:"dive"`
}

// Skill is one named skill. Level is a 1-10 rating; zero means unrated.
type Skill struct {
	Name  string `json:"name" yaml:"name" validate:"required"`
	Level int    `json:"level,omitempty" yaml:"level,omitempty" validate:"min=0,max=10"`
}

// Rated reports whether the skill carries a proficiency rating.
func (s Skill) Rated() bool { return s.Level > 0 }

// Project is a notable piece of work with the author's part in it.
type Project struct {
	Name        string `json:"name" yaml:"name" validate:"required"`
	Period      string `json:"period" yaml:"period"`
	Description string `json:"description" yaml:"description"`
	Role        string `json:"role" yaml:"role"`
}

// Experience is one position in the work history.
type Experience struct {
	Title            string   `json:"title" yaml:"title" validate:"required"`
	Company          string   `json:"company" yaml:"company" validate:"required"`
	Period           string   `json:"period" yaml:"period"`
	Location         string   `json:"location" yaml:"location"`
	Skills           []string `json:"skills" yaml:"skills"`
	Responsibilities []string `json:"responsibilities" yaml:"responsibilities"`
}

// Education is a degree or course of study.
type Education struct {
	Title       string `json:"title" yaml:"title" validate:"required"`
	Institution string `json:"institution" yaml:"institution"`
	Period      string `json:"period" yaml:"period"`
}

// Certification is a professional qualification.
type Certification struct {
	Title  string `json:"title" yaml:"title" validate:"required"`
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
	Issued string `json:"issued,omitempty" yaml:"issued,omitempty"`
}

// ParseProfile decodes a profile document. YAML and JSON are both accepted.
func ParseProfile(data []byte) (Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("content: parse profile: %w", err)
	}
	return p, nil
}
