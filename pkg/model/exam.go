package model

import "time"

const (
	ExamScheduled = "scheduled"
	ExamPending   = "pending"
	ExamCompleted = "completed"
	ExamCancelled = "cancelled"
)

// Exam is a single booking of a classroom, an examiner and an invigilator
// for a time window on one calendar day. ExamDate is "2006-01-02" with no
// time-zone component, StartTime is "15:04"; the end time is always derived
// from StartTime plus DurationMinutes and never stored.
type Exam struct {
	ID              string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name            string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	CourseCode      string    `json:"course_code" bson:"course_code" validate:"required,min=2,max=20"`
	ExamDate        string    `json:"exam_date" bson:"exam_date" validate:"required,datetime=2006-01-02"`
	StartTime       string    `json:"start_time" bson:"start_time" validate:"required,datetime=15:04"`
	DurationMinutes int       `json:"duration_minutes" bson:"duration_minutes" validate:"required,min=1"`
	StudentCount    int       `json:"student_count" bson:"student_count" validate:"required,min=1,max=1000"`
	NeedComputer    bool      `json:"need_computer" bson:"need_computer"`
	ClassroomID     string    `json:"classroom_id" bson:"classroom_id" validate:"required,mongodb"`
	ExaminerID      string    `json:"examiner_id" bson:"examiner_id" validate:"required,mongodb"`
	InvigilatorID   string    `json:"invigilator_id" bson:"invigilator_id" validate:"required,mongodb"`
	Status          string    `json:"status" bson:"status" validate:"required,oneof=scheduled pending completed cancelled"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type ExamUpdate struct {
	Name            string  `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	CourseCode      string  `json:"course_code,omitempty" validate:"omitempty,min=2,max=20"`
	ExamDate        string  `json:"exam_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StartTime       string  `json:"start_time,omitempty" validate:"omitempty,datetime=15:04"`
	DurationMinutes *int    `json:"duration_minutes,omitempty" validate:"omitempty,min=1"`
	StudentCount    *int    `json:"student_count,omitempty" validate:"omitempty,min=1,max=1000"`
	NeedComputer    *bool   `json:"need_computer,omitempty"`
	ClassroomID     string  `json:"classroom_id,omitempty" validate:"omitempty,mongodb"`
	ExaminerID      string  `json:"examiner_id,omitempty" validate:"omitempty,mongodb"`
	InvigilatorID   string  `json:"invigilator_id,omitempty" validate:"omitempty,mongodb"`
	Status          string  `json:"status,omitempty" validate:"omitempty,oneof=scheduled pending completed cancelled"`
}

// Editable reports whether the exam may still be modified or deleted.
// Completed and cancelled exams are terminal.
func (e *Exam) Editable() bool {
	return e.Status == ExamPending || e.Status == ExamScheduled
}
