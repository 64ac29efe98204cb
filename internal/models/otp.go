package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OTP is the single password reset code held for an (email, owner kind) pair.
// Only the SHA-256 of the code is stored. Claimed is set while a reset ticket
// is being redeemed.
type OTP struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email     string             `bson:"email" json:"email"`
	OwnerKind AccountKind        `bson:"owner_kind" json:"ownerKind"`
	CodeHash  string             `bson:"code_hash" json:"-"`
	ExpiresAt time.Time          `bson:"expires_at" json:"expiresAt"`
	IsUsed    bool               `bson:"is_used" json:"isUsed"`
	Attempts  int                `bson:"attempts" json:"attempts"`
	TicketID  string             `bson:"ticket_id,omitempty" json:"-"`
	Claimed   bool               `bson:"claimed" json:"-"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}
