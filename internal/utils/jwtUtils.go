package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	TokenIssuer = "skilltwin"

	// Access tokens and reset tickets carry different audiences so neither
	// can stand in for the other.
	AccessTokenAudience = "skilltwin-api"
	ResetTicketAudience = "skilltwin-password-reset"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	ID   string `json:"id"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// ResetClaims is carried by a reset ticket. Subject is the account email and
// ID is the ticket id stamped on the consumed OTP record.
type ResetClaims struct {
	Kind string `json:"kind"`
	jwt.RegisteredClaims
}

func GenerateJWT(secret string, id primitive.ObjectID, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		ID:   id.Hex(),
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Subject:   id.Hex(),
			Audience:  jwt.ClaimStrings{AccessTokenAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return sign(secret, claims)
}

func ParseJWT(secret, tokenString string) (*Claims, error) {
	claims := &Claims{}
	if err := parse(secret, tokenString, claims, AccessTokenAudience); err != nil {
		return nil, err
	}
	if claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func GenerateResetTicket(secret, email, kind, ticketID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &ResetClaims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        ticketID,
			Issuer:    TokenIssuer,
			Subject:   email,
			Audience:  jwt.ClaimStrings{ResetTicketAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return sign(secret, claims)
}

func ParseResetTicket(secret, ticket string) (*ResetClaims, error) {
	claims := &ResetClaims{}
	if err := parse(secret, ticket, claims, ResetTicketAudience); err != nil {
		return nil, err
	}
	if claims.ID == "" || claims.Subject == "" || claims.Kind == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func sign(secret string, claims jwt.Claims) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret is not configured")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func parse(secret, tokenString string, claims jwt.Claims, audience string) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(audience),
		jwt.WithIssuer(TokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return ErrInvalidToken
	}
	return nil
}
