package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CatalogKind string

const (
	CatalogService  CatalogKind = "service"
	CatalogTraining CatalogKind = "training"
)

// CatalogItem is a service offering or a training program.
type CatalogItem struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Kind        CatalogKind        `json:"kind" bson:"kind"`
	Title       string             `json:"title" bson:"title"`
	Slug        string             `json:"slug" bson:"slug"`
	Description string             `json:"description" bson:"description"`
	Pricing     string             `json:"pricing,omitempty" bson:"pricing,omitempty"`
	Duration    string             `json:"duration,omitempty" bson:"duration,omitempty"`
	Features    []string           `json:"features" bson:"features"`
	Active      bool               `json:"active" bson:"active"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updated_at"`
}

type CatalogInput struct {
	Title       string   `json:"title" validate:"required,min=3"`
	Slug        string   `json:"slug" validate:"required,min=3"`
	Description string   `json:"description" validate:"required,min=10"`
	Pricing     string   `json:"pricing"`
	Duration    string   `json:"duration"`
	Features    []string `json:"features"`
	Active      *bool    `json:"active"`
}

type CatalogUpdate struct {
	Title       *string   `json:"title,omitempty" bson:"title,omitempty" validate:"omitempty,min=3"`
	Slug        *string   `json:"slug,omitempty" bson:"slug,omitempty" validate:"omitempty,min=3"`
	Description *string   `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,min=10"`
	Pricing     *string   `json:"pricing,omitempty" bson:"pricing,omitempty"`
	Duration    *string   `json:"duration,omitempty" bson:"duration,omitempty"`
	Features    *[]string `json:"features,omitempty" bson:"features,omitempty"`
	Active      *bool     `json:"active,omitempty" bson:"active,omitempty"`
}
