package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/MartinBock1/Coderr/internal/auth"
	"github.com/MartinBock1/Coderr/internal/logger"
	"github.com/MartinBock1/Coderr/pkg/apperrors"
)

// Context keys set by AuthMiddleware.
const (
	ContextUserIDKey  = "userID"
	ContextRoleKey    = "userRole"
	ContextIsStaffKey = "isStaff"
)

// AuthMiddleware validates the bearer token and stores the principal on the
// gin context. Missing or bad credentials end the request with 401.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "Authentication credentials were not provided")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		claims, err := auth.ParseToken(parts[1])
		if err != nil {
			if err == auth.ErrTokenExpired {
				abortUnauthorized(c, "Token has expired")
				return
			}
			abortUnauthorized(c, "Invalid token")
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextRoleKey, claims.Role)
		c.Set(ContextIsStaffKey, claims.IsStaff)

		ctx := logger.WithUserID(c.Request.Context(), strconv.FormatUint(uint64(claims.UserID), 10))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, apperrors.ErrorResponse{
		Error: apperrors.NewUnauthorizedError(message),
	})
}

// GetUserID reads the authenticated user id set by AuthMiddleware.
func GetUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(ContextUserIDKey)
	if !exists {
		return 0, false
	}
	userID, ok := value.(uint)
	return userID, ok
}

// GetIsStaff reports whether the authenticated user is a staff account.
func GetIsStaff(c *gin.Context) bool {
	value, exists := c.Get(ContextIsStaffKey)
	if !exists {
		return false
	}
	isStaff, _ := value.(bool)
	return isStaff
}
