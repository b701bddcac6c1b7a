package errors

import (
	"testing"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("exam_id", "is required", "")

	if err.Field != "exam_id" {
		t.Errorf("Expected field to be 'exam_id', got '%s'", err.Field)
	}

	if err.Message != "is required" {
		t.Errorf("Expected message to be 'is required', got '%s'", err.Message)
	}

	expected := "validation error on field 'exam_id': is required"
	if err.Error() != expected {
		t.Errorf("Expected error message to be '%s', got '%s'", expected, err.Error())
	}
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	if errs.Error() != "validation failed" {
		t.Errorf("Expected 'validation failed' for empty errors, got '%s'", errs.Error())
	}

	errs = append(errs, *NewValidationError("direction", "must be next or prev", "sideways"))
	expected := "validation failed: direction must be next or prev"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for single error, got '%s'", expected, errs.Error())
	}

	errs = append(errs, *NewValidationError("question_id", "is required", nil))
	expected = "validation failed: 2 field errors"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for multiple errors, got '%s'", expected, errs.Error())
	}
}

func TestNewValidationErrorWithRule(t *testing.T) {
	err := NewValidationErrorWithRule("kind", "must be a valid exam kind (reading, listening)", "exam_kind", "speaking")

	if err.Rule != "exam_kind" {
		t.Errorf("Expected rule to be 'exam_kind', got '%s'", err.Rule)
	}

	if err.Field != "kind" {
		t.Errorf("Expected field to be 'kind', got '%s'", err.Field)
	}
}
