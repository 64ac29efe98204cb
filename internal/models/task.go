package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task assigns a lead to an expert.
type Task struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	InquiryID primitive.ObjectID `json:"inquiryId" bson:"inquiry_id"`
	ExpertID  primitive.ObjectID `json:"expertId" bson:"expert_id"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
}

type AssignTaskRequest struct {
	InquiryID string `json:"inquiryId" validate:"required,mongodb"`
	ExpertID  string `json:"expertId" validate:"required,mongodb"`
}

// TaskDetail is a task with its lead and expert joined in.
type TaskDetail struct {
	Task   `bson:",inline"`
	Lead   *Lead   `json:"inquiry,omitempty" bson:"inquiry,omitempty"`
	Expert *Expert `json:"expert,omitempty" bson:"expert,omitempty"`
}
