package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/gaaferHajji2/go-blog-api/internal/apperr"
)

// Validator re-checks field constraints at write time, behind whatever
// binding the boundary already did. Field names in messages follow the
// json tags so the caller sees wire names, not Go names.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" || name == "-" {
			return fld.Name
		}
		if idx := strings.Index(name, ","); idx >= 0 {
			return name[:idx]
		}
		return name
	})
	return &Validator{v: v}
}

// Struct validates every tagged field, for creates.
func (v *Validator) Struct(entity string, s any) error {
	return v.toAppErr(entity, v.v.Struct(s))
}

// StructPartial validates only the named struct fields, for updates that
// touch a subset of columns.
func (v *Validator) StructPartial(entity string, s any, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	return v.toAppErr(entity, v.v.StructPartial(s, fields...))
}

func (v *Validator) toAppErr(entity string, err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Storage(entity, err)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = message(fe)
	}
	return apperr.Validation(entity, fields)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must not exceed %s characters", fe.Param())
	case "uuid":
		return "must be a valid UUID"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
