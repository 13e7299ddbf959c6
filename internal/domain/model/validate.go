package model

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

var (
	validateOnce sync.Once
	validate     *validator.Validate
	hhmmPattern  = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("datestr", func(fl validator.FieldLevel) bool {
			_, err := time.Parse(dateLayout, fl.Field().String())
			return err == nil
		})
		_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
			return hhmmPattern.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("weblink", func(fl validator.FieldLevel) bool {
			return IsWebLink(fl.Field().String())
		})
		validate = v
	})
	return validate
}

// IsWebLink reports whether s is an absolute http or https URL.
func IsWebLink(s string) bool {
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// check runs struct validation and folds failures into an ErrInvalid error
// naming the JSON field paths that failed.
func check(v any) error {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "datestr":
		return field + " must be a YYYY-MM-DD date"
	case "hhmm":
		return field + " must be a HH:MM time"
	case "url", "weblink":
		return field + " must be an http(s) URL"
	case "email":
		return field + " must be an email address"
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}
