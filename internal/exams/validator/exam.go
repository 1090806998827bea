package validator

import (
	"errors"
	"fmt"
	"strings"

	"examdesk/internal/exams/schedule"
	"examdesk/pkg/logger"
	"examdesk/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type ExamValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewExamValidator(log *logger.Logger) *ExamValidator {
	v := validator.New()

	log.Info("Exam validator initialized successfully")

	return &ExamValidator{
		validate: v,
		logger:   log,
	}
}

func (v *ExamValidator) Validate(exam *model.Exam) error {
	if err := v.validate.Struct(exam); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	// The span constructor rejects non-positive durations and exams
	// running past midnight. End exactly at 24:00 is allowed.
	if _, err := schedule.NewTimeSpan(exam.StartTime, exam.DurationMinutes); err != nil {
		return ValidationErrors{
			ValidationError{
				Field:   "StartTime",
				Message: err.Error(),
			},
		}
	}

	return nil
}

func (v *ExamValidator) ValidateUpdate(update *model.ExamUpdate) error {
	if err := v.validate.Struct(update); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	return nil
}

func (v *ExamValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "datetime":
			message = fmt.Sprintf("%s must match the format %s", err.Field(), err.Param())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
