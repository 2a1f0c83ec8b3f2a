package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
)

var (
	hhmmPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d(:[0-5]\d)?$`)

	weekdays = map[string]struct{}{
		"Monday": {}, "Tuesday": {}, "Wednesday": {}, "Thursday": {},
		"Friday": {}, "Saturday": {}, "Sunday": {},
	}

	bloodGroups = map[string]struct{}{
		"A+": {}, "A-": {}, "B+": {}, "B-": {}, "AB+": {}, "AB-": {}, "O+": {}, "O-": {},
	}

	setupOnce sync.Once
	setupErr  error
)

// Setup registers the custom rules on gin's binding validator.
func Setup() error {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			setupErr = errors.New("unexpected binding validator engine")
			return
		}
		setupErr = Register(v)
	})
	return setupErr
}

// Register adds json field naming and the hhmm, weekday, weekdays and
// blood_group rules to v.
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	rules := map[string]validator.Func{
		"hhmm": func(fl validator.FieldLevel) bool {
			return hhmmPattern.MatchString(fl.Field().String())
		},
		"weekday": func(fl validator.FieldLevel) bool {
			_, ok := weekdays[fl.Field().String()]
			return ok
		},
		"weekdays": func(fl validator.FieldLevel) bool {
			for _, d := range strings.Split(fl.Field().String(), ",") {
				if _, ok := weekdays[strings.TrimSpace(d)]; !ok {
					return false
				}
			}
			return true
		},
		"blood_group": func(fl validator.FieldLevel) bool {
			_, ok := bloodGroups[fl.Field().String()]
			return ok
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register %s validator: %w", tag, err)
		}
	}
	return nil
}

// Translate turns a binding error into a field-level validation error.
func Translate(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string][]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = append(fields[fe.Field()], message(fe))
		}
		return apperrors.Validation(fields)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		return apperrors.FieldError(typeErr.Field, fmt.Sprintf("Expected a %s.", typeErr.Type.Kind()))
	case errors.As(err, &syntaxErr):
		return apperrors.BadRequest("malformed JSON body", err)
	}
	return apperrors.BadRequest("invalid request body", err)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "lte":
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "oneof", "weekday", "blood_group":
		return fmt.Sprintf("\"%v\" is not a valid choice.", fe.Value())
	case "weekdays":
		return "Use comma separated weekday names, e.g. Monday,Wednesday."
	case "datetime":
		return "Date has wrong format. Use YYYY-MM-DD."
	case "hhmm":
		return "Time has wrong format. Use HH:MM."
	case "uuid", "uuid4":
		return "Must be a valid UUID."
	}
	return fmt.Sprintf("Failed on the '%s' rule.", fe.Tag())
}
