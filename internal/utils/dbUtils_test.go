package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestIDOrSlugFilter(t *testing.T) {
	id := primitive.NewObjectID()

	assert.Equal(t, bson.M{"_id": id}, IDOrSlugFilter(id.Hex()))
	assert.Equal(t, bson.M{"slug": "learn-go-fast"}, IDOrSlugFilter(" Learn-Go-Fast "))
	// 24 characters but not hex.
	assert.Equal(t, bson.M{"slug": "zzzzzzzzzzzzzzzzzzzzzzzz"}, IDOrSlugFilter("zzzzzzzzzzzzzzzzzzzzzzzz"))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jane@example.com", NormalizeEmail("  Jane@Example.COM "))
}
