package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// JWTConfig holds the validator configuration
type JWTConfig struct {
	SecretKey string
	Issuer    string
	Audience  string
}

// Claims are the token claims the graph service cares about. The org_id
// claim is mandatory: it is the tenant scope of every query the bearer
// is allowed to run.
type Claims struct {
	OrganizationID string `json:"org_id"`
	AgentID        string `json:"agent_id,omitempty"`
	jwt.RegisteredClaims
}

// JWTValidator validates bearer tokens issued by the platform's auth service
type JWTValidator struct {
	config JWTConfig
}

// NewJWTValidator creates a new JWT validator
func NewJWTValidator(config JWTConfig) (*JWTValidator, error) {
	if config.SecretKey == "" {
		return nil, fmt.Errorf("JWT secret key is required")
	}
	return &JWTValidator{config: config}, nil
}

// Validate parses and verifies a token string, returning the organization
// context it carries
func (v *JWTValidator) Validate(tokenString string) (OrganizationContext, error) {
	claims := &Claims{}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if v.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.config.Issuer))
	}
	if v.config.Audience != "" {
		opts = append(opts, jwt.WithAudience(v.config.Audience))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(v.config.SecretKey), nil
	}, opts...)
	if err != nil {
		return OrganizationContext{}, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return OrganizationContext{}, fmt.Errorf("token is not valid")
	}
	if claims.OrganizationID == "" {
		return OrganizationContext{}, fmt.Errorf("token carries no organization claim")
	}

	return OrganizationContext{
		OrganizationID: claims.OrganizationID,
		AgentID:        claims.AgentID,
	}, nil
}
