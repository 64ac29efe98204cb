package services

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"skilltwin/internal/apperrors"
)

// updateFields turns a patch struct of pointer fields into a $set document.
// Nil fields are left out through their omitempty bson tags.
func updateFields(patch interface{}) (bson.M, error) {
	raw, err := bson.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("failed to encode update: %w", err)
	}
	fields := bson.M{}
	if err := bson.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("failed to decode update: %w", err)
	}
	if len(fields) == 0 {
		return nil, apperrors.Validation("No valid fields provided for update")
	}
	return fields, nil
}
