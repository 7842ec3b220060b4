package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

func registerRules(v *validator.Validate) error {
	if err := v.RegisterValidation("ubigeo_code", isUbigeoCode); err != nil {
		return err
	}
	if err := v.RegisterValidation("dna_code", isDnaCodeFragment); err != nil {
		return err
	}
	return nil
}

var ubigeoRe = regexp.MustCompile(`^\d{6}$`)

// isUbigeoCode accepts the fixed-width 6-digit location codes.
func isUbigeoCode(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	return ubigeoRe.MatchString(s)
}

var dnaCodeRe = regexp.MustCompile(`^[0-9A-Za-z-]*$`)

// isDnaCodeFragment accepts partial office codes used for contains-search.
func isDnaCodeFragment(fl validator.FieldLevel) bool {
	return dnaCodeRe.MatchString(fl.Field().String())
}
