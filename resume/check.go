package resume

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Warning 是一条不影响渲染的输入提示，例如邮箱格式可疑或日期无法解析。
type Warning struct {
	Field   string
	Message string
}

func (w Warning) String() string { return w.Field + ": " + w.Message }

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func recordValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("monthdate", func(fl validator.FieldLevel) bool {
			_, ok := ParseMonth(fl.Field().String())
			return ok
		})
	})
	return validate
}

// Check runs advisory field checks. Rendering never depends on the result: a
// malformed date still renders verbatim and an odd email is printed as typed.
func Check(r Record) []Warning {
	var warnings []Warning
	err := recordValidator().Struct(r)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			warnings = append(warnings, Warning{
				Field:   strings.TrimPrefix(fe.Namespace(), "Record."),
				Message: describe(fe),
			})
		}
	}
	for i, e := range r.Experience {
		if e.StartDate == "" && e.EndDate != "" {
			warnings = append(warnings, Warning{
				Field:   fmt.Sprintf("Experience[%d].StartDate", i),
				Message: "end date set without a start date",
			})
		}
	}
	return warnings
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "email":
		return fmt.Sprintf("%q is not a valid email address", fe.Value())
	case "monthdate":
		return fmt.Sprintf("%q is not a recognised month date; it will be printed as written", fe.Value())
	case "max":
		return fmt.Sprintf("longer than %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}
