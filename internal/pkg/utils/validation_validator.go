package utils

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// decimalValue lets numeric tags such as gt=0 apply to decimal.Decimal fields.
func decimalValue(field reflect.Value) interface{} {
	if amount, ok := field.Interface().(decimal.Decimal); ok {
		value, _ := amount.Float64()
		return value
	}
	return nil
}
