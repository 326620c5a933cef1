package security

import (
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// VeritimeIdentity is the subject of a device or user token.
type VeritimeIdentity struct {
	Id       int
	UserName string
	Tenant   string
	Email    string
}

type Identity struct {
	ID         int    `json:"nameid"`
	UniqueName string `json:"unique_name"`
	Email      string `json:"email"`
	SID        string `json:"sid"`
	Tenant     string `json:"tenant"`
}

type IdentityClaims struct {
	Identity
	jwt.RegisteredClaims
}

// CreateIdentityToken mints an HS256 bearer token for the attendance API.
// The secret is base64-encoded, matching the server's VERITIME_SIGNING_SECRET.
func CreateIdentityToken(identity *VeritimeIdentity, base64Secret string, expiresInSeconds int64) (string, error) {
	secretBytes, err := base64.StdEncoding.DecodeString(base64Secret)
	if err != nil {
		return "", err
	}
	claims := IdentityClaims{
		Identity: Identity{
			ID:         identity.Id,
			UniqueName: identity.UserName,
			Email:      identity.Email,
			SID:        "veritime-device",
			Tenant:     identity.Tenant,
		},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "veritime",
			Audience:  []string{"*.veritime.com"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expiresInSeconds) * time.Second)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(secretBytes))
}
