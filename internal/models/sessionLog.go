package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SessionStatus string

const (
	SessionScheduled SessionStatus = "scheduled"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
)

type SessionLog struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	EnrollmentID primitive.ObjectID `json:"enrollmentId" bson:"enrollment_id"`
	SessionDate  time.Time          `json:"sessionDate" bson:"session_date"`
	Notes        string             `json:"notes,omitempty" bson:"notes,omitempty"`
	Status       SessionStatus      `json:"status" bson:"status"`
	Progress     *int               `json:"progress,omitempty" bson:"progress,omitempty"`
	CreatedAt    time.Time          `json:"createdAt" bson:"created_at"`
}

type SessionLogInput struct {
	EnrollmentID string        `json:"enrollmentId" validate:"required,mongodb"`
	SessionDate  time.Time     `json:"sessionDate" validate:"required"`
	Notes        string        `json:"notes"`
	Status       SessionStatus `json:"status" validate:"omitempty,oneof=scheduled completed cancelled"`
	Progress     *int          `json:"progress" validate:"omitempty,min=0,max=100"`
}

type SessionLogUpdate struct {
	SessionDate *time.Time     `json:"sessionDate,omitempty" bson:"session_date,omitempty"`
	Notes       *string        `json:"notes,omitempty" bson:"notes,omitempty"`
	Status      *SessionStatus `json:"status,omitempty" bson:"status,omitempty" validate:"omitempty,oneof=scheduled completed cancelled"`
	Progress    *int           `json:"progress,omitempty" bson:"progress,omitempty" validate:"omitempty,min=0,max=100"`
}
