package validator

import (
	"errors"
	"reflect"
	"strings"

	apperrors "github.com/SAP-F-2025/exam-engine/internal/errors"
	"github.com/SAP-F-2025/exam-engine/internal/models"
	"github.com/go-playground/validator/v10"
)

// Validator is the central struct-tag validator shared by handlers and
// services.
type Validator struct {
	structValidator *validator.Validate
}

// New creates a new centralized validator instance.
func New() *Validator {
	structValidator := validator.New()
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator: structValidator,
	}
}

// Validate validates struct tags. Field errors come back as
// apperrors.ValidationErrors so every layer classifies them the same way.
func (v *Validator) Validate(s interface{}) error {
	err := v.structValidator.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		return apperrors.ToValidationErrors(err)
	}
	return err
}

// registerCustomValidators registers all custom validation functions.
func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("exam_kind", validateExamKind)
	validate.RegisterValidation("question_type", validateQuestionType)
	validate.RegisterValidation("nav_direction", validateNavDirection)

	// Custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateExamKind(fl validator.FieldLevel) bool {
	return models.ExamKind(fl.Field().String()).Valid()
}

func validateQuestionType(fl validator.FieldLevel) bool {
	validTypes := []models.QuestionType{
		models.MultipleChoice,
		models.FillBlank,
		models.TrueFalseNotGiven,
		models.Matching,
		models.MapLabeling,
	}

	value := fl.Field().String()
	for _, validType := range validTypes {
		if string(validType) == value {
			return true
		}
	}
	return false
}

func validateNavDirection(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "next" || value == "prev"
}
