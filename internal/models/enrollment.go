package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Enrollment struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Email        string             `json:"email" bson:"email"`
	Phone        string             `json:"phone" bson:"phone"`
	Experience   string             `json:"experience" bson:"experience"`
	Schedule     string             `json:"schedule,omitempty" bson:"schedule,omitempty"`
	Message      string             `json:"message,omitempty" bson:"message,omitempty"`
	ProgramID    string             `json:"programId,omitempty" bson:"program_id,omitempty"`
	ProgramTitle string             `json:"programTitle,omitempty" bson:"program_title,omitempty"`
	ProgramPrice string             `json:"programPrice,omitempty" bson:"program_price,omitempty"`
	CreatedAt    time.Time          `json:"createdAt" bson:"created_at"`
}

type EnrollmentRequest struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required"`
	Experience   string `json:"experience" validate:"required"`
	Schedule     string `json:"schedule"`
	Message      string `json:"message"`
	ProgramID    string `json:"programId"`
	ProgramTitle string `json:"programTitle"`
	ProgramPrice string `json:"programPrice"`
}

func (r *EnrollmentRequest) Enrollment() *Enrollment {
	return &Enrollment{
		Name:         r.Name,
		Email:        r.Email,
		Phone:        r.Phone,
		Experience:   r.Experience,
		Schedule:     r.Schedule,
		Message:      r.Message,
		ProgramID:    r.ProgramID,
		ProgramTitle: r.ProgramTitle,
		ProgramPrice: r.ProgramPrice,
	}
}
