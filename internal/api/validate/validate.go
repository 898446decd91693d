package validate

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

type Errs []ErrField

func (e Errs) Error() string { // error interface
	var b strings.Builder
	for i, ef := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ef.Field + ": " + ef.Msg)
	}
	return b.String()
}

// Add appends a field error, ignoring nil.
func (e Errs) Add(ef *ErrField) Errs {
	if ef == nil {
		return e
	}
	return append(e, *ef)
}

// OrNil returns nil for an empty list so callers can `return errs.OrNil()`.
func (e Errs) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Has reports whether field has at least one error.
func (e Errs) Has(field string) bool {
	for _, ef := range e {
		if ef.Field == field {
			return true
		}
	}
	return false
}

// Helpers
func Required(field, value string) *ErrField {
	if strings.TrimSpace(value) == "" {
		return &ErrField{Field: field, Msg: "required"}
	}
	return nil
}

func PositiveID(field string, v int64) *ErrField {
	if v <= 0 {
		return &ErrField{Field: field, Msg: "required"}
	}
	return nil
}

var emailRe = regexp.MustCompile(`(?i)^[\w+\-.]+@[a-z\d\-.]+\.[a-z]+$`)

// Email reports whether s looks like local@domain.tld.
func Email(s string) bool { return emailRe.MatchString(s) }

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = val.RegisterValidation("present", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = val.RegisterValidation("email_simple", func(fl validator.FieldLevel) bool {
		return Email(fl.Field().String())
	})
	return val
}

// Struct validates s by its `validate` tags and returns Errs (or nil).
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}
	out := make(Errs, 0, len(ves))
	for _, fe := range ves {
		out = append(out, ErrField{Field: fe.Field(), Msg: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "present":
		return "required"
	case "max":
		return "is too long (maximum is " + fe.Param() + " characters)"
	case "min":
		return "is too short (minimum is " + fe.Param() + " characters)"
	case "email_simple":
		return "is invalid"
	case "eqfield":
		return "doesn't match confirmation"
	}
	return "is invalid (" + fe.Tag() + ")"
}
