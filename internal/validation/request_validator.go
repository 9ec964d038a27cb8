package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"adrecon/internal/dataprocessing"
	apierrors "adrecon/internal/errors"
)

// RequestValidator validates request structs using struct tags
type RequestValidator struct {
	validator *validator.Validate
}

// NewRequestValidator creates a validator with the reconciliation rules
// registered. Field names in messages come from the form tag, then json.
func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	_ = v.RegisterValidation("positive_decimal", isPositiveDecimal)
	_ = v.RegisterValidation("export_filename", isExportFilename)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
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

	return &RequestValidator{validator: v}
}

// ValidateStruct validates s and returns an *errors.APIError listing every
// failed field, or nil.
func (rv *RequestValidator) ValidateStruct(s interface{}) error {
	if err := rv.validator.Struct(s); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return apierrors.InvalidRequestWithError(err)
		}

		out := make([]apierrors.ValidationError, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			out = append(out, apierrors.ValidationError{
				Field:   fe.Field(),
				Message: formatValidationError(fe),
			})
		}
		return apierrors.NewValidationErrors(out)
	}
	return nil
}

// FailedFields returns the names of the fields that failed validation in err.
func FailedFields(err error) []string {
	var apiErr *apierrors.APIError
	if !errors.As(err, &apiErr) {
		return nil
	}
	details, ok := apiErr.Details.(apierrors.ValidationErrors)
	if !ok {
		return nil
	}
	fields := make([]string, 0, len(details.Errors))
	for _, d := range details.Errors {
		fields = append(fields, d.Field)
	}
	return fields
}

func formatValidationError(err validator.FieldError) string {
	field := err.Field()
	param := err.Param()

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	case "positive_decimal":
		return fmt.Sprintf("%s must be a number greater than zero", field)
	case "export_filename":
		return fmt.Sprintf("%s must be a %s export", field, dataprocessing.SupportedExtension)
	default:
		return fmt.Sprintf("%s failed %s validation", field, err.Tag())
	}
}

// isPositiveDecimal accepts strings that parse as a decimal greater than zero
// with an exponent the pipeline can round
func isPositiveDecimal(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
	return err == nil && d.IsPositive() && dataprocessing.InExponentRange(d)
}

// isExportFilename accepts file names the pipeline can ingest
func isExportFilename(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if name == "" || strings.Contains(name, "..") {
		return false
	}
	return dataprocessing.IsSupportedFile(name)
}
