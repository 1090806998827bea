package schedule

import (
	"fmt"

	"examdesk/pkg/model"
)

// ResourceKind identifies the kind of resource two exams can contend for.
type ResourceKind string

const (
	ResourceClassroom ResourceKind = "classroom"
	ResourceTeacher   ResourceKind = "teacher"
)

// SharedResource names a concrete resource two exams both claim.
type SharedResource struct {
	Kind ResourceKind `json:"kind"`
	ID   string       `json:"id"`
}

func (r SharedResource) String() string {
	return fmt.Sprintf("%s %s", r.Kind, r.ID)
}

// SharedResourceBetween returns the first resource both exams claim, or
// nil when they share none. Classrooms match classrooms. Teachers match
// regardless of role, so an examiner on one exam conflicts with the same
// person invigilating another. Empty IDs never match.
func SharedResourceBetween(a, b *model.Exam) *SharedResource {
	if a.ClassroomID != "" && a.ClassroomID == b.ClassroomID {
		return &SharedResource{Kind: ResourceClassroom, ID: a.ClassroomID}
	}

	for _, teacherID := range []string{a.ExaminerID, a.InvigilatorID} {
		if teacherID == "" {
			continue
		}
		if teacherID == b.ExaminerID || teacherID == b.InvigilatorID {
			return &SharedResource{Kind: ResourceTeacher, ID: teacherID}
		}
	}

	return nil
}
