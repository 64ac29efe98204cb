package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Expert struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Skills       []string           `json:"skills" bson:"skills"`
	Availability string             `json:"availability,omitempty" bson:"availability,omitempty"`
	CreatedAt    time.Time          `json:"createdAt" bson:"created_at"`
}

type ExpertInput struct {
	Name         string   `json:"name" validate:"required"`
	Skills       []string `json:"skills" validate:"required,min=1,dive,required"`
	Availability string   `json:"availability"`
}

type ExpertUpdate struct {
	Name         *string   `json:"name,omitempty" bson:"name,omitempty" validate:"omitempty,min=1"`
	Skills       *[]string `json:"skills,omitempty" bson:"skills,omitempty" validate:"omitempty,min=1,dive,required"`
	Availability *string   `json:"availability,omitempty" bson:"availability,omitempty"`
}
