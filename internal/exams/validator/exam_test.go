package validator

import (
	"strings"
	"testing"

	"examdesk/pkg/logger"
	"examdesk/pkg/model"
)

func newTestValidator(t *testing.T) *ExamValidator {
	t.Helper()
	log := logger.New(logger.Config{Level: logger.ERROR, Format: logger.JSON, Service: "test"})
	return NewExamValidator(log)
}

func validExam() *model.Exam {
	return &model.Exam{
		Name:            "Linear Algebra Final",
		CourseCode:      "MATH202",
		ExamDate:        "2026-06-01",
		StartTime:       "09:00",
		DurationMinutes: 120,
		StudentCount:    40,
		ClassroomID:     "665f1e8a2c4b9a0012345678",
		ExaminerID:      "665f1e8a2c4b9a0012345679",
		InvigilatorID:   "665f1e8a2c4b9a001234567a",
		Status:          model.ExamScheduled,
	}
}

func TestValidate(t *testing.T) {
	v := newTestValidator(t)

	tests := []struct {
		name    string
		mutate  func(e *model.Exam)
		wantErr string
	}{
		{
			name:   "valid exam",
			mutate: func(e *model.Exam) {},
		},
		{
			name:   "ends exactly at midnight",
			mutate: func(e *model.Exam) { e.StartTime = "22:00"; e.DurationMinutes = 120 },
		},
		{
			name:    "missing name",
			mutate:  func(e *model.Exam) { e.Name = "" },
			wantErr: "Name",
		},
		{
			name:    "name too short",
			mutate:  func(e *model.Exam) { e.Name = "A" },
			wantErr: "Name",
		},
		{
			name:    "bad date format",
			mutate:  func(e *model.Exam) { e.ExamDate = "01/06/2026" },
			wantErr: "ExamDate",
		},
		{
			name:    "bad start time format",
			mutate:  func(e *model.Exam) { e.StartTime = "9am" },
			wantErr: "StartTime",
		},
		{
			name:    "zero duration",
			mutate:  func(e *model.Exam) { e.DurationMinutes = 0 },
			wantErr: "DurationMinutes",
		},
		{
			name:    "crosses midnight",
			mutate:  func(e *model.Exam) { e.StartTime = "23:00"; e.DurationMinutes = 120 },
			wantErr: "StartTime",
		},
		{
			name:    "student count too large",
			mutate:  func(e *model.Exam) { e.StudentCount = 1001 },
			wantErr: "StudentCount",
		},
		{
			name:    "malformed classroom id",
			mutate:  func(e *model.Exam) { e.ClassroomID = "not-an-oid" },
			wantErr: "ClassroomID",
		},
		{
			name:    "unknown status",
			mutate:  func(e *model.Exam) { e.Status = "archived" },
			wantErr: "Status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exam := validExam()
			tt.mutate(exam)

			err := v.Validate(exam)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error mentioning %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want mention of %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateUpdate(t *testing.T) {
	v := newTestValidator(t)

	badDuration := -10
	tests := []struct {
		name    string
		update  *model.ExamUpdate
		wantErr bool
	}{
		{
			name:   "empty update is valid",
			update: &model.ExamUpdate{},
		},
		{
			name:   "partial update",
			update: &model.ExamUpdate{StartTime: "10:30"},
		},
		{
			name:    "bad time format",
			update:  &model.ExamUpdate{StartTime: "25:00"},
			wantErr: true,
		},
		{
			name:    "negative duration",
			update:  &model.ExamUpdate{DurationMinutes: &badDuration},
			wantErr: true,
		},
		{
			name:    "unknown status",
			update:  &model.ExamUpdate{Status: "paused"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateUpdate(tt.update)
			if tt.wantErr && err == nil {
				t.Fatal("ValidateUpdate() expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("ValidateUpdate() unexpected error: %v", err)
			}
		})
	}
}
