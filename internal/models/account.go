package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AccountKind selects which account population a request acts on.
type AccountKind string

const (
	KindUser  AccountKind = "user"
	KindAdmin AccountKind = "admin"
)

func (k AccountKind) Valid() bool {
	return k == KindUser || k == KindAdmin
}

func (k AccountKind) Collection() string {
	if k == KindAdmin {
		return "admins"
	}
	return "users"
}

const ProviderLocal = "local"

type Account struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"-" bson:"password,omitempty"`
	Role      AccountKind        `json:"role" bson:"role"`
	Provider  string             `json:"provider,omitempty" bson:"provider,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updated_at"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,number,min=4,max=10"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	NewPassword string `json:"newPassword" validate:"required,min=6,max=72"`
	ResetToken  string `json:"resetToken" validate:"required"`
}

type CheckEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// AuthResult is returned by register and login.
type AuthResult struct {
	Token   string
	Account *Account
}

type RecoveryAck struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

type VerifyResult struct {
	Message    string `json:"message"`
	Email      string `json:"email"`
	ResetToken string `json:"resetToken"`
}
