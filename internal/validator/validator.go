package validator

import (
	"regexp"

	apperrors "github.com/campusops/registry-service/internal/errors"
	"github.com/go-playground/validator/v10"
)

var (
	studentNoPattern = regexp.MustCompile(`^\d{6,12}$`)
	termCodePattern  = regexp.MustCompile(`^\d{4}-\d$`)
)

// Validator enforces the scraped-record contract at the data-store
// boundary. Anything that fails here never reaches the calculation engine.
type Validator struct {
	structValidator *validator.Validate
}

// New creates a validator with the registry's custom rules registered.
func New() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("student_no", func(fl validator.FieldLevel) bool {
		return studentNoPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("term_code", func(fl validator.FieldLevel) bool {
		return termCodePattern.MatchString(fl.Field().String())
	})

	return &Validator{structValidator: v}
}

// ValidateStruct validates struct tags and converts failures to the shared
// ValidationErrors type. Returns nil when the value is valid.
func (v *Validator) ValidateStruct(s interface{}) error {
	if err := v.structValidator.Struct(s); err != nil {
		if converted := apperrors.ToValidationErrors(err); len(converted) > 0 {
			return converted
		}
		return err
	}
	return nil
}
