package validation

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Turkish mobile numbers: optional +90 or 0 prefix, then 5 and nine digits.
var turkishMobilePattern = regexp.MustCompile(`^(\+90|0)?5\d{9}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Registration can't fail: the pattern is a compile-time constant.
	_ = v.RegisterValidation("trphone", func(fl validator.FieldLevel) bool {
		return turkishMobilePattern.MatchString(fl.Field().String())
	})
	return v
}

// Struct validates a struct using its validate tags. On failure it returns
// a *FieldError describing the first failing field.
func Struct(s any) error {
	if err := validate.Struct(s); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			fe := errs[0]
			return &FieldError{
				Field:   fe.Field(),
				Message: msgForTag(fe),
			}
		}
		return err
	}
	return nil
}

// FieldError reports the first field that failed validation.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func msgForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "gerekli"
	case "email":
		return "geçerli bir e-posta adresi girin"
	case "min":
		return fmt.Sprintf("en az %s karakter olmalı", fe.Param())
	case "max":
		return fmt.Sprintf("en fazla %s karakter olmalı", fe.Param())
	case "len":
		return fmt.Sprintf("%s haneli olmalı", fe.Param())
	case "numeric":
		return "sadece rakam içermeli"
	case "trphone":
		return "geçerli bir telefon numarası girin"
	case "gt":
		return fmt.Sprintf("%s değerinden büyük olmalı", fe.Param())
	case "gte":
		return fmt.Sprintf("%s veya daha büyük olmalı", fe.Param())
	default:
		return "geçersiz değer"
	}
}
