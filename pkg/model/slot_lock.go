package model

import "time"

// SlotLock is an advisory lock serializing check-then-commit per exam date.
// The lock _id is derived from the date, so a second concurrent booking
// attempt for the same date fails the insert with a duplicate key error.
// ExpiresAt backs a TTL index that clears locks left behind by a crash.
type SlotLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
