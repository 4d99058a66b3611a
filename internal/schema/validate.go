package schema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ValidationErrors is a flattened field-path -> message report. It is the
// whole report: every invalid field is present at once, not just the first.
type ValidationErrors map[string]string

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	paths := make([]string, 0, len(e))
	for p := range e {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	parts := make([]string, 0, len(paths))
	for _, p := range paths {
		parts = append(parts, fmt.Sprintf("%s: %s", p, e[p]))
	}
	return strings.Join(parts, "; ")
}

// Has reports whether any recorded error path contains the given fragment.
func (e ValidationErrors) Has(fragment string) bool {
	for p := range e {
		if strings.Contains(p, fragment) {
			return true
		}
	}
	return false
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func actValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		// Report paths by json tag so errors line up with the wire shape.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Validate enforces every structural invariant on an Act: required identity
// fields, the non-empty version history, enum membership, 1-5 metric ranges
// and suggestion range ordering. It is pure and total: malformed input comes
// back as a field-keyed report, never a panic.
func Validate(act *Act) ValidationErrors {
	errs := ValidationErrors{}
	if act == nil {
		errs["act"] = "act is nil"
		return errs
	}

	if err := actValidator().Struct(act); err != nil {
		var fieldErrs validator.ValidationErrors
		if ok := asValidationErrors(err, &fieldErrs); ok {
			for _, fe := range fieldErrs {
				errs[flattenNamespace(fe.Namespace())] = messageFor(fe)
			}
		} else {
			// InvalidValidationError and friends are programmer errors.
			errs["act"] = err.Error()
		}
	}

	// Cross-field checks validator tags cannot express.
	for ri, review := range act.Reviews {
		for si, sug := range review.Suggestions {
			if sug.Range != nil && sug.Range.End < sug.Range.Start {
				path := fmt.Sprintf("reviews[%d].suggestions[%d].range", ri, si)
				errs[path] = "range.end must be >= range.start"
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateJSON decodes raw act JSON and validates it in one step.
func ValidateJSON(data []byte) (*Act, ValidationErrors) {
	var act Act
	if err := json.Unmarshal(data, &act); err != nil {
		return nil, ValidationErrors{"act": fmt.Sprintf("invalid JSON: %v", err)}
	}
	if errs := Validate(&act); errs != nil {
		return nil, errs
	}
	return &act, nil
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	ve, ok := err.(validator.ValidationErrors)
	if ok {
		*target = ve
	}
	return ok
}

// flattenNamespace turns "Act.versions[0].versionId" into
// "versions[0].versionId".
func flattenNamespace(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s element(s)", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
