package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const CtxUserUID = "user_uid"

// UserUID extracts the authenticated user's UID from the Gin context.
// Set by FirebaseAuthMiddleware or OptionalUser.
func UserUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUserUID))
}
