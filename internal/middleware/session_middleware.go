package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/railyatra/booking-backend/pkg/jwt"
	"github.com/sirupsen/logrus"
)

// SessionContextKey is the key used to store the session id in Gin context
const SessionContextKey = "session_id"

// SessionMiddleware validates the session token and puts the session id in the context
func SessionMiddleware(jwtService *jwt.Service, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		fields := logrus.Fields{
			"path": c.Request.URL.Path,
			"ip":   c.ClientIP(),
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.WithFields(fields).Warn("Session rejected: missing authorization header")
			abortUnauthorized(c, "unauthorized", "Authorization header is required", "MISSING_AUTH_HEADER")
			return
		}

		// Check Bearer token format
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			logger.WithFields(fields).Warn("Session rejected: invalid authorization format")
			abortUnauthorized(c, "unauthorized", "Invalid authorization header format. Expected: Bearer <token>", "INVALID_AUTH_FORMAT")
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			logger.WithFields(fields).Warn("Session rejected: empty token")
			abortUnauthorized(c, "unauthorized", "Token cannot be empty", "INVALID_AUTH_FORMAT")
			return
		}

		claims, err := jwtService.ValidateSessionToken(tokenString)
		if err != nil {
			if jwtService.IsTokenExpired(tokenString) {
				logger.WithFields(fields).WithError(err).Info("Session rejected: token expired")
				abortUnauthorized(c, "session_expired", "Your session has expired. Please start a new booking.", "SESSION_EXPIRED")
			} else {
				logger.WithFields(fields).WithError(err).Warn("Session rejected: invalid token")
				abortUnauthorized(c, "invalid_token", "Invalid session token", "INVALID_TOKEN")
			}
			return
		}

		c.Set(SessionContextKey, claims.SessionID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, errCode, message, code string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"status":  "error",
		"error":   errCode,
		"message": message,
		"code":    code,
	})
}

// GetSessionID retrieves the session id set by SessionMiddleware
func GetSessionID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(SessionContextKey)
	if !exists {
		return uuid.Nil, false
	}

	sessionID, ok := value.(uuid.UUID)
	if !ok {
		return uuid.Nil, false
	}

	return sessionID, true
}

// MustGetSessionID retrieves the session id or panics. Only use behind SessionMiddleware.
func MustGetSessionID(c *gin.Context) uuid.UUID {
	sessionID, exists := GetSessionID(c)
	if !exists {
		panic("session id not found in context - SessionMiddleware not applied?")
	}
	return sessionID
}
