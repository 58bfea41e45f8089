// Package validation checks incoming request payloads for the categories
// admin API and the workout-plan API before any storage is touched.
//
// Per-field rules are expressed as `validate` struct tags and enforced by
// the validator library; cross-field rules (at least one field present,
// start date not in the past) are explicit checks layered on top. Every
// Validate function aggregates all violations in one pass and returns them
// as field-level (field, message) pairs rather than stopping at the first.
package validation

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Defaults and bounds for list queries.
const (
	DefaultListLimit = 50
	MaxListLimit     = 1000
)

// FieldError is a single validation issue on a named field. The pseudo-field
// "request" carries request-level (cross-field) violations.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the structured failure result of a validator. A nil Errors value
// means the request passed.
type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return strings.Join(parts, "; ")
}

func (e Errors) add(field, message string) Errors {
	return append(e, FieldError{Field: field, Message: message})
}

// validate is the shared validator instance. Validators are stateless and
// safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report errors under the json field name, not the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// checkStruct runs tag validation on req and translates the outcome into
// field errors appended to errs.
func checkStruct(req interface{}, errs Errors) Errors {
	err := validate.Struct(req)
	if err == nil {
		return errs
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// InvalidValidationError only happens for non-struct input, which
		// would be a programming error on our side. Keep the surface total.
		return errs.add("request", "invalid request payload")
	}
	for _, fe := range verrs {
		errs = errs.add(fieldPath(fe), messageForTag(fe))
	}
	return errs
}

// fieldPath strips the struct name prefix so nested slice elements come out
// as e.g. "selectedDays[1]".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

// messageForTag converts a validator tag failure into a client-facing message.
func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Type().Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		if fe.Type().Kind() == reflect.Slice {
			return "must not be empty"
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Type().Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must not exceed %s", fe.Param())
	case "oneof":
		return "must be one of: " + strings.Join(strings.Split(fe.Param(), " "), ", ")
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("failed %s=%s constraint", fe.Tag(), fe.Param())
		}
		return "failed " + fe.Tag() + " constraint"
	}
}

// trimmedStringField validates an optional (pointer) string field of a
// partial update: if present it is trimmed in place and must be non-empty
// and within maxLen.
func trimmedStringField(field string, value *string, maxLen int, errs Errors) Errors {
	if value == nil {
		return errs
	}
	*value = strings.TrimSpace(*value)
	if *value == "" {
		return errs.add(field, "must not be empty")
	}
	if len(*value) > maxLen {
		return errs.add(field, fmt.Sprintf("must not exceed %d characters", maxLen))
	}
	return errs
}

// coerceInt parses a query-string parameter into an int, using def when the
// parameter is absent. A parse failure is a schema violation on that field.
func coerceInt(field, raw string, def int, errs Errors) (int, Errors) {
	if raw == "" {
		return def, errs
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def, errs.add(field, "must be an integer")
	}
	return n, errs
}

// coerceLimitOffset handles the shared limit/offset query parameters:
// numeric coercion, defaults, and range checks.
func coerceLimitOffset(limitRaw, offsetRaw string, errs Errors) (limit, offset int, out Errors) {
	limit, errs = coerceInt("limit", limitRaw, DefaultListLimit, errs)
	offset, errs = coerceInt("offset", offsetRaw, 0, errs)
	if limit < 1 || limit > MaxListLimit {
		errs = errs.add("limit", fmt.Sprintf("must be between 1 and %d", MaxListLimit))
	}
	if offset < 0 {
		errs = errs.add("offset", "must not be negative")
	}
	return limit, offset, errs
}
