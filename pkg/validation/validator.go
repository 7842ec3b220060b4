package validation

import (
	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps validator.Validate for use as echo.Validator.
type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func New() *CustomValidator {
	v := validator.New()

	if err := registerRules(v); err != nil {
		panic("failed to register custom validators: " + err.Error())
	}

	return &CustomValidator{validator: v}
}
