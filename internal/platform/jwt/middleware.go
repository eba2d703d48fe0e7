package jwtmw

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"budget_backend/internal/feature/account/domain/entity"
)

// ContextPrincipal はginコンテキストに格納されるPrincipalのキーです。
const ContextPrincipal = "principal"

// AuthRequired returns a Gin middleware function that validates JWT tokens
// and restricts access to authenticated users only.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get Authorization header
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		// 2. Load secret key from environment variable
		secret := os.Getenv(EnvKeyJWTSecret)
		if secret == "" {
			// Server misconfiguration (JWT_SECRET not set)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured"})
			return
		}

		// 3. Parse and verify JWT signature
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			// Check signing algorithm (only HMAC allowed)
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			// Validation error or invalid token
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		// 4. Rebuild the principal from the claims
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(ContextPrincipal, principalFromClaims(claims))

		// 5. Pass control to the next handler
		c.Next()
	}
}

// RequireAdmin は管理者センチネル以外のアクセスを403で拒否するミドルウェアです。
// AuthRequiredの後に適用してください。
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		p := PrincipalFromContext(c)
		if !p.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

// PrincipalFromContext はミドルウェアが格納したPrincipalを取り出します。
// 未認証のルートではnilを返します。
func PrincipalFromContext(c *gin.Context) *entity.Principal {
	v, ok := c.Get(ContextPrincipal)
	if !ok {
		return nil
	}
	p, ok := v.(*entity.Principal)
	if !ok {
		return nil
	}
	return p
}

// principalFromClaims はJWTクレームからPrincipalスナップショットを復元します。
func principalFromClaims(claims jwt.MapClaims) *entity.Principal {
	p := &entity.Principal{Kind: entity.IdentityOrdinary}
	if kind, ok := claims["kind"].(string); ok {
		switch entity.IdentityKind(kind) {
		case entity.IdentityAdmin, entity.IdentityDemo, entity.IdentityOrdinary:
			p.Kind = entity.IdentityKind(kind)
		}
	}
	if sub, ok := claims["sub"].(string); ok {
		p.User.ID = sub
	}
	if email, ok := claims["email"].(string); ok {
		p.User.Email = email
	}
	if name, ok := claims["name"].(string); ok {
		p.User.Name = name
	}
	if created, ok := claims["created"].(float64); ok { // JWT numbers are decoded as float64
		p.User.CreatedAt = time.Unix(int64(created), 0).UTC()
	}
	return p
}
