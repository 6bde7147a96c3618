package auth

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"placebook/internal/apperr"
)

// callerKey is the gin context key carrying the verified caller id.
const callerKey = "auth.callerID"

// Tokens issues and verifies the bearer tokens used by mutating routes.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token whose subject is the user's public id.
func (t *Tokens) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded user id.
func (t *Tokens) Verify(tokenString string) (string, error) {
	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return "", apperr.Wrap(apperr.Forbidden, "authentication failed", err)
	}
	if claims.Subject == "" {
		return "", apperr.New(apperr.Forbidden, "authentication failed")
	}
	return claims.Subject, nil
}

// Middleware guards a route group with bearer-token verification. CORS
// pre-flight requests pass through without a token and without a caller id.
func (t *Tokens) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "authentication failed",
				"code":    http.StatusUnauthorized,
			})
			return
		}

		userID, err := t.Verify(strings.TrimSpace(parts[1]))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "authentication failed",
				"code":    http.StatusUnauthorized,
			})
			return
		}

		c.Set(callerKey, userID)
		c.Next()
	}
}

// CallerID returns the verified caller id set by Middleware.
func CallerID(c *gin.Context) (string, bool) {
	id, ok := c.Get(callerKey)
	if !ok {
		return "", false
	}
	s, ok := id.(string)
	return s, ok && s != ""
}
