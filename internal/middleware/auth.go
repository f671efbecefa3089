package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	appConfig "github.com/mentorhub/teamformation/internal/config"
)

const (
	// StudentIDKey is the gin context key holding the authenticated student ID.
	StudentIDKey = "student_id"
	// RoleKey is the gin context key holding the authenticated role.
	RoleKey = "role"
)

// Claims are the token claims issued by the platform's auth service.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Auth returns a middleware that validates the bearer token and stores the
// student identity in the request context. Token issuance is external to
// this service.
func Auth(cfg appConfig.AuthConfig, logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "authorization header is required")
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			unauthorized(c, "invalid authorization header format")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			unauthorized(c, "token is required")
			return
		}

		claims, err := parseToken(tokenString, cfg)
		if err != nil {
			logger.Warnw("token validation failed", "error", err, "client_ip", c.ClientIP())
			unauthorized(c, "invalid or expired token")
			return
		}

		c.Set(StudentIDKey, claims.Subject)
		c.Set(RoleKey, claims.Role)
		c.Next()
	}
}

// parseToken verifies signature, expiry and optional issuer.
func parseToken(tokenString string, cfg appConfig.AuthConfig) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256"})}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is not valid")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}

	return claims, nil
}

// StudentID returns the authenticated student ID from the gin context.
func StudentID(c *gin.Context) string {
	return c.GetString(StudentIDKey)
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
	})
}
