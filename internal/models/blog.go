package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DefaultBlogAuthor = "SkillTwin"

type Blog struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Slug        string             `json:"slug" bson:"slug"`
	Excerpt     string             `json:"excerpt" bson:"excerpt"`
	Content     string             `json:"content" bson:"content"`
	Tags        []string           `json:"tags" bson:"tags"`
	Images      []string           `json:"images" bson:"images"`
	Author      string             `json:"author" bson:"author"`
	PublishedAt time.Time          `json:"publishedAt" bson:"published_at"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updated_at"`
}

type BlogInput struct {
	Title       string     `json:"title" validate:"required,min=3"`
	Slug        string     `json:"slug" validate:"required,min=3"`
	Excerpt     string     `json:"excerpt" validate:"required,min=10"`
	Content     string     `json:"content" validate:"required,min=20"`
	Tags        []string   `json:"tags"`
	Images      []string   `json:"images" validate:"omitempty,dive,url"`
	Author      string     `json:"author"`
	PublishedAt *time.Time `json:"publishedAt"`
}

type BlogUpdate struct {
	Title       *string    `json:"title,omitempty" bson:"title,omitempty" validate:"omitempty,min=3"`
	Slug        *string    `json:"slug,omitempty" bson:"slug,omitempty" validate:"omitempty,min=3"`
	Excerpt     *string    `json:"excerpt,omitempty" bson:"excerpt,omitempty" validate:"omitempty,min=10"`
	Content     *string    `json:"content,omitempty" bson:"content,omitempty" validate:"omitempty,min=20"`
	Tags        *[]string  `json:"tags,omitempty" bson:"tags,omitempty"`
	Images      *[]string  `json:"images,omitempty" bson:"images,omitempty" validate:"omitempty,dive,url"`
	Author      *string    `json:"author,omitempty" bson:"author,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty" bson:"published_at,omitempty"`
}

// BlogAssist is an LLM drafted excerpt and tag list for a post.
type BlogAssist struct {
	Excerpt string   `json:"excerpt"`
	Tags    []string `json:"tags"`
}
