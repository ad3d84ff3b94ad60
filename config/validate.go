package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/gogpu/framegraph"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// parsers backs the custom validation tags. Each accepts the string form
// the matching framegraph parser accepts.
var parsers = map[string]func(string) error{
	"image_alias": func(s string) error {
		_, err := framegraph.ParseImageAlias(s)
		return err
	},
	"buffer_alias": func(s string) error {
		_, err := framegraph.ParseBufferAlias(s)
		return err
	},
	"access_flags": func(s string) error {
		_, err := framegraph.ParseAccessFlags(s)
		return err
	},
	"stage_flags": func(s string) error {
		_, err := framegraph.ParseStageFlags(s)
		return err
	},
	"image_layout": func(s string) error {
		_, err := framegraph.ParseImageLayout(s)
		return err
	},
	"image_aspect": func(s string) error {
		_, err := framegraph.ParseImageAspect(s)
		return err
	},
	"strategy": func(s string) error {
		_, err := framegraph.ParseStrategy(s)
		return err
	},
}

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report fields by their yaml names.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		for tag, parse := range parsers {
			// Registration only fails for empty tags or nil funcs.
			_ = validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
				return parse(fl.Field().String()) == nil
			})
		}
	})
	return validate
}

// Validate checks f for structural errors and unknown names. The error
// wraps ErrInvalid and lists every failing field.
func Validate(f *File) error {
	if f == nil {
		return fmt.Errorf("%w: nil file", ErrInvalid)
	}
	err := getValidator().Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	messages := make([]string, 0, len(verrs))
	for _, e := range verrs {
		messages = append(messages, fieldPath(e)+": "+formatValidationError(e))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(messages, "; "))
}

// fieldPath drops the root struct name from the namespace.
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + e.Param()
	case "unique":
		return "must be unique by " + strings.ToLower(e.Param())
	case "len":
		return "must have " + e.Param() + " elements"
	case "min":
		return "must be at least " + e.Param()
	case "image_alias", "buffer_alias":
		return fmt.Sprintf("unknown alias %q", e.Value())
	case "access_flags", "stage_flags", "image_aspect":
		return fmt.Sprintf("unknown flag in %q", e.Value())
	case "image_layout":
		return fmt.Sprintf("unknown layout %q", e.Value())
	case "strategy":
		return fmt.Sprintf("unknown strategy %q", e.Value())
	default:
		return "is invalid"
	}
}
