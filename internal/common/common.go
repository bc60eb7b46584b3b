package common

import (
	"errors"

	"github.com/gin-gonic/gin"
)

const (
	// Context keys set by the auth middleware.
	ContextUserIDKey = "auth_user_id"
	ContextRoleKey   = "auth_user_role"
)

// GetUserIDFromContext retrieves the authenticated user's ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (uint, error) {
	userIDInterface, exists := c.Get(ContextUserIDKey)
	if !exists {
		return 0, errors.New("user ID not found in context")
	}
	userID, ok := userIDInterface.(uint)
	if !ok {
		return 0, errors.New("user ID in context is not of type uint")
	}
	return userID, nil
}

// GetRoleFromContext retrieves the authenticated user's role from the Gin context.
func GetRoleFromContext(c *gin.Context) (string, error) {
	roleInterface, exists := c.Get(ContextRoleKey)
	if !exists {
		return "", errors.New("user role not found in context")
	}
	role, ok := roleInterface.(string)
	if !ok {
		return "", errors.New("user role in context is not of type string")
	}
	return role, nil
}
