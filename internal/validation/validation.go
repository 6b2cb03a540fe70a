// Package validation checks request payloads before they reach the services.
// Constraints are declared as `validate` struct tags on the model types; every
// failing constraint is reported, not only the first one.
package validation

import (
	"errors"
	"fmt"
	"mime"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"fitmap/internal/apperr"
	"fitmap/internal/docstore"
)

const (
	tagNotBlank      = "notblank"
	tagPastOrPresent = "pastorpresent"
	tagDocID         = "docid"
)

// Validator wraps a configured go-playground validator. It is safe for
// concurrent use.
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

// New builds a Validator that reports fields by their JSON names.
func New() *Validator {
	v := &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
	}
	v.validate.RegisterTagNameFunc(jsonName)
	// registration only fails on an empty tag or nil func
	_ = v.validate.RegisterValidation(tagNotBlank, validators.NotBlank)
	_ = v.validate.RegisterValidation(tagPastOrPresent, v.pastOrPresent)
	_ = v.validate.RegisterValidation(tagDocID, func(fl validator.FieldLevel) bool {
		return docstore.ValidID(fl.Field().String())
	})
	return v
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

// pastOrPresent accepts the zero time, which means "not set yet".
func (v *Validator) pastOrPresent(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return t.IsZero() || !t.After(v.now())
}

// CheckContentType accepts application/json and any +json media type.
func CheckContentType(header string) error {
	if header == "" {
		return apperr.UnsupportedMediaType("")
	}
	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil {
		return apperr.UnsupportedMediaType(header)
	}
	if mediaType == "application/json" || strings.HasSuffix(mediaType, "+json") {
		return nil
	}
	return apperr.UnsupportedMediaType(header)
}

// Struct validates a single payload.
func (v *Validator) Struct(s any) error {
	violations, err := v.violations(s, "")
	if err != nil {
		return err
	}
	if len(violations) > 0 {
		return apperr.Validation("payload is invalid", violations...)
	}
	return nil
}

// Slice validates every element of a list payload, prefixing fields with the
// element index, e.g. "[1].name".
func Slice[T any](v *Validator, items []T) error {
	var all []apperr.Violation
	for i, item := range items {
		violations, err := v.violations(item, fmt.Sprintf("[%d].", i))
		if err != nil {
			return err
		}
		all = append(all, violations...)
	}
	if len(all) > 0 {
		return apperr.Validation("payload is invalid", all...)
	}
	return nil
}

// Strings validates a list of plain strings: every element must be non-blank
// and at most maxLen characters long.
func (v *Validator) Strings(list []string, maxLen int) error {
	return v.each(list, tagNotBlank+",max="+strconv.Itoa(maxLen))
}

// IDs validates a list of document ids.
func (v *Validator) IDs(list []string) error {
	return v.each(list, tagNotBlank+","+tagDocID)
}

func (v *Validator) each(list []string, tag string) error {
	var violations []apperr.Violation
	for i, s := range list {
		err := v.validate.Var(s, tag)
		if err == nil {
			continue
		}
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return apperr.Internal(err, "failed to validate payload")
		}
		for _, fe := range fieldErrs {
			violations = append(violations, apperr.Violation{Field: fmt.Sprintf("[%d]", i), Message: message(fe)})
		}
	}
	if len(violations) > 0 {
		return apperr.Validation("payload is invalid", violations...)
	}
	return nil
}

// CheckNotEmpty rejects a nil or empty list payload.
func CheckNotEmpty[T any](list []T) error {
	if len(list) == 0 {
		return apperr.Validation("payload must contain at least one item",
			apperr.Violation{Field: "", Message: "must not be empty"})
	}
	return nil
}

func (v *Validator) violations(s any, prefix string) ([]apperr.Violation, error) {
	err := v.validate.Struct(s)
	if err == nil {
		return nil, nil
	}
	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return []apperr.Violation{{Field: strings.TrimSuffix(prefix, "."), Message: "must be an object"}}, nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil, apperr.Internal(err, "failed to validate payload")
	}
	out := make([]apperr.Violation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, apperr.Violation{
			Field:   prefix + fieldPath(fe.Namespace()),
			Message: message(fe),
		})
	}
	return out, nil
}

// fieldPath drops the root type name and the Go names of untagged embedded
// structs from a validator namespace: "Gym.Metadata.created_at" -> "created_at".
func fieldPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	kept := parts[:0]
	for _, p := range parts[1:] {
		if p != "" && unicode.IsUpper(rune(p[0])) {
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, ".")
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case tagNotBlank:
		return "must not be blank"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters long", fe.Param())
		}
		return fmt.Sprintf("must contain at most %s items", fe.Param())
	case "email":
		return "must be a valid email address"
	case tagPastOrPresent:
		return "must not be in the future"
	case tagDocID:
		return fmt.Sprintf("must be at most %d bytes, without '/', and not of the form __name__", docstore.MaxIDLength)
	default:
		return fmt.Sprintf("failed the %q constraint", fe.Tag())
	}
}
