package controllers

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_.-]*$`)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	return v
}

// fieldErrors unwraps validator failures; ok is false for any other error.
func fieldErrors(err error) (validator.ValidationErrors, bool) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return ve, true
	}
	return nil, false
}

// hasTag reports whether any failure came from the given validation tag.
func hasTag(errs validator.ValidationErrors, tag string) bool {
	for _, fe := range errs {
		if fe.Tag() == tag {
			return true
		}
	}
	return false
}

// normalizeID lowercases and trims an id; registration-style ids also turn spaces into dashes.
func normalizeID(id string, dashSpaces bool) string {
	id = strings.ToLower(strings.TrimSpace(id))
	if dashSpaces {
		id = strings.ReplaceAll(id, " ", "-")
	}
	return id
}
