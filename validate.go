package worksite

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Phonesis/personal-work-site/content"
)

// postRules carries the fields of a post that authoring input must satisfy.
type postRules struct {
	Slug       string   `validate:"required,slug"`
	Title      string   `validate:"required"`
	Date       string   `validate:"required,datetime=2006-01-02"`
	CoverImage string   `validate:"omitempty,url|startswith=/"`
	Tags       []string `validate:"dive,required,excludesall=0x2C"`
}

// NewValidator returns a validator with the "slug" rule registered.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s != "" && Slugify(s) == s
	})
	return v
}

// ValidatePost checks an authored post. The returned error lists every
// failing field.
func ValidatePost(v *validator.Validate, p content.Post) error {
	err := v.Struct(postRules{
		Slug:       p.Slug,
		Title:      p.Title,
		Date:       p.Date,
		CoverImage: p.CoverImage,
		Tags:       p.Tags,
	})
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	return &PostError{Slug: p.Slug, Fields: fieldErrors(verrs)}
}

// PostError reports invalid post fields, keyed by field name.
type PostError struct {
	Slug   string
	Fields map[string]string
}

func (e *PostError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for f, rule := range e.Fields {
		parts = append(parts, f+" ("+rule+")")
	}
	sort.Strings(parts)
	return fmt.Sprintf("worksite: post %q: invalid %s", e.Slug, strings.Join(parts, ", "))
}

func fieldErrors(verrs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		out[strings.ToLower(fe.Field())] = rule
	}
	return out
}

// ValidateProfile checks a CV profile. Fields are keyed by their path, e.g.
// "skills[0].skills[1].level".
func ValidateProfile(v *validator.Validate, p content.Profile) error {
	err := v.Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		name := strings.TrimPrefix(fe.Namespace(), "Profile.")
		fields[strings.ToLower(name)] = rule
	}
	return &ProfileError{Fields: fields}
}

// ProfileError reports invalid profile fields, keyed by field path.
type ProfileError struct {
	Fields map[string]string
}

func (e *ProfileError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for f, rule := range e.Fields {
		parts = append(parts, f+" ("+rule+")")
	}
	sort.Strings(parts)
	return "worksite: invalid profile " + strings.Join(parts, ", ")
}
