package jwtmw

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"budget_backend/internal/feature/account/domain/entity"
)

// EnvKeyJWTSecret は署名鍵を保持する環境変数名です。
const EnvKeyJWTSecret = "JWT_SECRET"

// Generator defines the interface for JWT token generation.
type Generator interface {
	// GenerateToken creates a signed JWT token for the given principal.
	GenerateToken(p *entity.Principal) (string, error)
}

// generator implements the Generator interface.
type generator struct {
	secret     []byte
	expiration time.Duration
}

// NewGenerator creates a new JWT generator with the provided secret and expiration duration.
func NewGenerator(secret string, expiration time.Duration) Generator {
	return &generator{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

// GenerateToken creates a signed JWT token carrying the principal snapshot.
// The claims include the identity kind and the creation timestamp so that
// sentinel principals can be reconstructed without a storage lookup.
func (g *generator) GenerateToken(p *entity.Principal) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":     p.User.ID,
		"kind":    string(p.Kind),
		"email":   p.User.Email,
		"name":    p.User.Name,
		"created": p.User.CreatedAt.Unix(),
		"exp":     now.Add(g.expiration).Unix(),
		"iat":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
