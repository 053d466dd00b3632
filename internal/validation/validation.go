package validation

import (
	"fmt"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// FieldError describes a single violated rule on a request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Let numeric comparison tags (gt, gte) work on decimal amounts.
	v.RegisterCustomTypeFunc(decimalAsFloat, decimal.Decimal{})

	// Expense date rules: not in the future, within the last 5 years.
	_ = v.RegisterValidation("notfuture", notFuture)
	_ = v.RegisterValidation("within5y", withinFiveYears)

	return v
}

func decimalAsFloat(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

func notFuture(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return !date.After(time.Now().UTC())
}

func withinFiveYears(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return date.After(time.Now().UTC().AddDate(-5, 0, 0))
}

// Validate runs every rule declared on obj and returns all violations at once.
// A nil result means the request passed validation.
func Validate(obj any) []FieldError {
	err := validate.Struct(obj)
	if err == nil {
		return nil
	}

	var fieldErrors []FieldError
	for _, fe := range err.(validator.ValidationErrors) {
		fieldErrors = append(fieldErrors, FieldError{
			Field:   fe.Field(),
			Message: messageFor(fe),
			Type:    fe.Tag(),
		})
	}

	return fieldErrors
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", fe.Field())
	case "gt":
		if fe.Param() == "0" {
			return fmt.Sprintf("%s must be greater than zero.", fe.Field())
		}
		return fmt.Sprintf("%s must be greater than %s.", fe.Field(), fe.Param())
	case "len":
		return fmt.Sprintf("%s must be a %s-letter code.", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must not exceed %s characters.", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters.", fe.Field(), fe.Param())
	case "notfuture":
		return fmt.Sprintf("%s cannot be in the future.", fe.Field())
	case "within5y":
		return fmt.Sprintf("%s must be within the last 5 years.", fe.Field())
	default:
		return "Invalid value."
	}
}
