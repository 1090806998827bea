package model

import "time"

const (
	ClassroomAvailable   = "available"
	ClassroomMaintenance = "maintenance"
	ClassroomReserved    = "reserved"
)

type Classroom struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name         string    `json:"name" bson:"name" validate:"required,min=1,max=50"`
	Building     string    `json:"building" bson:"building" validate:"required,min=1,max=50"`
	Floor        int       `json:"floor" bson:"floor" validate:"min=-5,max=200"`
	Capacity     int       `json:"capacity" bson:"capacity" validate:"required,min=1,max=2000"`
	HasComputers bool      `json:"has_computers" bson:"has_computers"`
	Status       string    `json:"status" bson:"status" validate:"required,oneof=available maintenance reserved"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type ClassroomUpdate struct {
	Name         string `json:"name,omitempty" validate:"omitempty,min=1,max=50"`
	Building     string `json:"building,omitempty" validate:"omitempty,min=1,max=50"`
	Floor        *int   `json:"floor,omitempty" validate:"omitempty,min=-5,max=200"`
	Capacity     *int   `json:"capacity,omitempty" validate:"omitempty,min=1,max=2000"`
	HasComputers *bool  `json:"has_computers,omitempty"`
	Status       string `json:"status,omitempty" validate:"omitempty,oneof=available maintenance reserved"`
}
