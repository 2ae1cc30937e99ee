package profile

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError carries a message per offending field, keyed by the JSON
// field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid profile: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

type profileForm struct {
	Name          string   `json:"name" validate:"min=2,max=80"`
	Location      string   `json:"location" validate:"max=120"`
	Availability  string   `json:"availability" validate:"max=120"`
	SkillsOffered []string `json:"skills_offered" validate:"min=1,dive,max=60"`
	SkillsWanted  []string `json:"skills_wanted" validate:"min=1,dive,max=60"`
	Visibility    string   `json:"visibility" validate:"oneof=Public Private"`
	PhotoURL      string   `json:"photo_url" validate:"omitempty,url"`
}

var fieldMessages = map[string]string{
	"name":           "Name must be at least 2 characters.",
	"skills_offered": "Please offer at least one skill.",
	"skills_wanted":  "Please list at least one skill you want to learn.",
	"visibility":     "Visibility must be Public or Private.",
	"photo_url":      "Photo URL must be a valid URL.",
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validateForm(v *validator.Validate, f profileForm) error {
	err := v.Struct(f)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &ValidationError{Fields: map[string]string{}}
	for _, fe := range verrs {
		field := fe.Field()
		// dive errors report the element as field[i]
		if i := strings.IndexByte(field, '['); i >= 0 {
			field = field[:i]
		}
		if _, ok := out.Fields[field]; ok {
			continue
		}
		out.Fields[field] = messageFor(field, fe)
	}
	return out
}

func messageFor(field string, fe validator.FieldError) string {
	switch {
	case fe.Tag() == "max" && (field == "skills_offered" || field == "skills_wanted"):
		return "Skill names must be at most " + fe.Param() + " characters."
	case fe.Tag() == "max":
		return "Must be at most " + fe.Param() + " characters."
	}
	if msg, ok := fieldMessages[field]; ok {
		return msg
	}
	return "Invalid value."
}
