package dto

import (
	"html"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	acctNumberRe   = regexp.MustCompile(`^[0-9]{10}$`)
	referralCodeRe = regexp.MustCompile(`^[A-F0-9]{8}$`)
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("acct_number", validateAccountNumber)
		_ = v.RegisterValidation("referral_code", validateReferralCode)
	}
}

// validateAccountNumber requires exactly 10 ASCII digits (NUBAN format).
func validateAccountNumber(fl validator.FieldLevel) bool {
	return acctNumberRe.MatchString(fl.Field().String())
}

// validateReferralCode requires 8 uppercase hex characters.
func validateReferralCode(fl validator.FieldLevel) bool {
	return referralCodeRe.MatchString(fl.Field().String())
}

// SanitizeStruct trims whitespace and HTML-escapes every exported string
// field (including *string) of a struct pointer.
func SanitizeStruct(v interface{}) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return
	}
	sanitizeFields(rv.Elem())
}

func sanitizeFields(rv reflect.Value) {
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanSet() {
			continue
		}
		switch f.Kind() {
		case reflect.String:
			f.SetString(sanitize(f.String()))
		case reflect.Ptr:
			if f.IsNil() {
				continue
			}
			elem := f.Elem()
			if elem.Kind() == reflect.String {
				elem.SetString(sanitize(elem.String()))
			}
		}
	}
}

func sanitize(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}
