package validator

import (
	"errors"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

var (
	enumMu       sync.RWMutex
	enumMessages = map[string]string{}
)

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Free-text fields must contain something other than whitespace
	validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// RegisterEnum registers a tag that accepts only the given string values.
// Domain packages call it from init for their closed enumerations.
func RegisterEnum(tag string, values []string) {
	allowed := make(map[string]struct{}, len(values))
	for _, v := range values {
		allowed[v] = struct{}{}
	}

	validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		_, ok := allowed[fl.Field().String()]
		return ok
	})

	enumMu.Lock()
	enumMessages[tag] = "Must be one of: " + strings.Join(values, ", ")
	enumMu.Unlock()
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return map[string]string{"_": "Invalid request"}
	}

	errs := make(map[string]string)
	for _, fe := range validationErrors {
		field := fe.Field()
		switch fe.Tag() {
		case "required", "notblank":
			errs[field] = "This field is required"
		case "min":
			errs[field] = "Value is too short (min: " + fe.Param() + ")"
		case "max":
			errs[field] = "Value is too long (max: " + fe.Param() + ")"
		case "url":
			errs[field] = "Invalid URL format"
		case "uuid":
			errs[field] = "Invalid identifier"
		case "datetime":
			errs[field] = "Invalid date, expected format YYYY-MM-DD"
		default:
			enumMu.RLock()
			msg, ok := enumMessages[fe.Tag()]
			enumMu.RUnlock()
			if ok {
				errs[field] = msg
			} else {
				errs[field] = "Invalid value"
			}
		}
	}

	return errs
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}

// Errors is a field→message map usable as an error, so services can return
// validation failures that handlers render with response.ValidationError.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

// Check validates a struct and returns Errors, or nil when it is valid
func Check(s interface{}) error {
	if errs := Validate(s); errs != nil {
		return Errors(errs)
	}
	return nil
}
