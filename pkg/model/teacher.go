package model

import "time"

// Teacher is a bookable person. An exam references a teacher twice, as
// examiner and as invigilator; for conflict purposes both references claim
// the same person.
type Teacher struct {
	ID         string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name       string    `json:"name" bson:"name" validate:"required,min=2,max=50"`
	EmployeeID string    `json:"employee_id" bson:"employee_id" validate:"required,min=2,max=20"`
	Department string    `json:"department" bson:"department" validate:"required,min=2,max=100"`
	Email      string    `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	Phone      string    `json:"phone,omitempty" bson:"phone,omitempty" validate:"omitempty,e164"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type TeacherUpdate struct {
	Name       string `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	Department string `json:"department,omitempty" validate:"omitempty,min=2,max=100"`
	Email      string `json:"email,omitempty" validate:"omitempty,email"`
	Phone      string `json:"phone,omitempty" validate:"omitempty,e164"`
}
