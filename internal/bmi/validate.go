package bmi

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON name so messages match the API payload.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldRanges holds the accepted range and unit for each checked field, in
// the order messages are reported.
var fieldRanges = []struct {
	Field    string
	Min, Max int
	Unit     string
}{
	{"height_cm", 100, 250, "cm"},
	{"weight_kg", 20, 300, "kg"},
	{"age", 10, 120, "years"},
}

// ValidationResult is the advisory outcome of Validate.
type ValidationResult struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

// Validate checks height, weight and age against their accepted ranges. Each
// field is checked independently and absent fields are not errors. The
// profile is not modified.
func Validate(p Profile) ValidationResult {
	res := ValidationResult{IsValid: true, Errors: []string{}}

	err := validate.Struct(p)
	if err == nil {
		return res
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		res.IsValid = false
		res.Errors = append(res.Errors, err.Error())
		return res
	}

	failed := make(map[string]bool, len(fieldErrs))
	for _, fe := range fieldErrs {
		failed[fe.Field()] = true
	}
	for _, r := range fieldRanges {
		if failed[r.Field] {
			res.Errors = append(res.Errors,
				fmt.Sprintf("%s must be between %d and %d %s", r.Field, r.Min, r.Max, r.Unit))
		}
	}
	res.IsValid = len(res.Errors) == 0
	return res
}
