// Package validation holds the form rules shared by gin binding and the
// admin CLI.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// NonFieldKey collects errors that do not belong to a single input.
const NonFieldKey = "__all__"

var (
	std      *validator.Validate
	stdOnce  sync.Once
	ginOnce  sync.Once
	errNoGin = errors.New("gin binding engine is not go-playground/validator")
)

// Register installs the custom rules and makes error field names follow the
// form (or yaml) tag of the struct field.
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"form", "yaml"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
	return v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
}

// RegisterGin installs the rules on gin's binding validator. Safe to call more
// than once.
func RegisterGin() error {
	var err error
	ginOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errNoGin
			return
		}
		err = Register(v)
	})
	return err
}

// Struct validates s with the shared rules outside of a request.
func Struct(s any) error {
	stdOnce.Do(func() {
		std = validator.New(validator.WithRequiredStructEnabled())
		if err := Register(std); err != nil {
			panic(err)
		}
	})
	return std.Struct(s)
}

// IsSlug reports whether s is made only of letters, digits, hyphens and
// underscores.
func IsSlug(s string) bool { return slugPattern.MatchString(s) }

// FieldErrors converts a binding or validation error into messages keyed by
// form field name.
func FieldErrors(err error) map[string]string {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{NonFieldKey: err.Error()}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("Ensure this value has at least %s characters.", fe.Param())
	case "email":
		return "Enter a valid email address."
	case "slug":
		return "Enter a valid slug consisting of letters, numbers, underscores or hyphens."
	case "eqfield":
		return "The two password fields didn't match."
	case "alphanumunicode":
		return "Enter a valid username."
	default:
		return "Enter a valid value."
	}
}
