// Package validation checks ledger records and user-facing options.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"fjacquet/pfma/internal/parsererror"
)

var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator returns the shared validator with the ledger's custom tags
// registered.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		_ = v.RegisterValidation("hex_color", validateHexColor)
		_ = v.RegisterValidation("category_type", validateCategoryType)
		validate = v
	})
	return validate
}

// Struct validates s and reports the first failing field as a
// *parsererror.ValidationError.
func Struct(s interface{}) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &parsererror.ValidationError{Field: fe.Field(), Reason: reasonFor(fe)}
	}
	return err
}

// IsHexColor reports whether s is a #rgb or #rrggbb colour.
func IsHexColor(s string) bool {
	return hexColorRegex.MatchString(s)
}

func validateHexColor(fl validator.FieldLevel) bool {
	return IsHexColor(fl.Field().String())
}

func validateCategoryType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expense":
		return true
	}
	return false
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "hex_color":
		return fmt.Sprintf("%q is not a hex colour", fe.Value())
	case "category_type":
		return fmt.Sprintf("%q is not income or expense", fe.Value())
	default:
		return fmt.Sprintf("failed %s check", fe.Tag())
	}
}

// Output formats understood by the report generator.
var OutputFormats = []string{"text", "json", "yaml", "csv"}

// ExportFormats are the formats the export command writes.
var ExportFormats = []string{"csv", "json"}

// IsValidOutputFormat checks if the given format is supported.
func IsValidOutputFormat(format string) error {
	return oneOf("output format", format, OutputFormats)
}

// IsValidExportFormat checks if the given format can be exported.
func IsValidExportFormat(format string) error {
	return oneOf("export format", format, ExportFormats)
}

func oneOf(what, value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("unsupported %s: %s. Supported formats are '%s'",
		what, value, strings.Join(allowed, "', '"))
}
