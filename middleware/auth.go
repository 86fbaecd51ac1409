package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/shopsquad/shopsquad-backend/errors"
	"github.com/shopsquad/shopsquad-backend/logger"
)

// AuthMiddleware validates the Bearer token and stores the user ID in the
// context. Streaming endpoints may carry the token as a query parameter
// because EventSource and browser WebSocket clients cannot set headers.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	secret := []byte(jwtSecret)

	return func(c *gin.Context) {
		log := logger.GetLogger()

		token := extractToken(c)
		if token == "" {
			log.Debugw("No token provided", "path", c.Request.URL.Path)
			_ = c.Error(apperrors.Unauthorized("missing_auth", "Authorization required"))
			c.Abort()
			return
		}

		userID, err := validateToken(token, secret)
		if err != nil {
			log.Warnw("Invalid token",
				"error", err,
				"path", c.Request.URL.Path,
			)
			_ = c.Error(apperrors.Unauthorized("invalid_token", "Invalid or expired token"))
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return c.Query("token")
}

func validateToken(tokenString string, secret []byte) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", jwt.ErrTokenInvalidSubject
	}
	return claims.Subject, nil
}
