package middleware

import "github.com/gin-gonic/gin"

// userIDKey is the key used to store the authenticated user's ID.
const userIDKey = contextKey("userID")

// tenantIDKey is the key used to store the session-derived tenant ID.
const tenantIDKey = contextKey("tenantID")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin
// context, falling back to the request context.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		reqVal := c.Request.Context().Value(userIDKey)
		if reqVal != nil {
			return reqVal.(string), true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}
	return userID, true
}

// GetSessionTenantIDFromContext retrieves the tenant ID carried by the
// caller's session token, if any. An explicit tenant override supplied on
// the request wins over this value; resolution happens in the handlers.
func GetSessionTenantIDFromContext(c *gin.Context) (string, bool) {
	tenantVal, exists := c.Get(string(tenantIDKey))
	if !exists {
		reqVal := c.Request.Context().Value(tenantIDKey)
		if reqVal != nil {
			return reqVal.(string), true
		}
		return "", false
	}

	tenantID, ok := tenantVal.(string)
	if !ok || tenantID == "" {
		return "", false
	}
	return tenantID, true
}
