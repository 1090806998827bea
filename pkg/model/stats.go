package model

// ExamStats is the exams service's contribution to the dashboard.
type ExamStats struct {
	ExamCount     int64 `json:"exam_count"`
	UpcomingExams int64 `json:"upcoming_exams"`
}

// DashboardStats aggregates counts across the registry and exams services.
type DashboardStats struct {
	TeacherCount   int64 `json:"teacher_count"`
	ClassroomCount int64 `json:"classroom_count"`
	ExamCount      int64 `json:"exam_count"`
	UpcomingExams  int64 `json:"upcoming_exams"`
}
