package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// OwnerHeader carries the opaque owner identity resolved by the auth
// collaborator in front of this service.
const OwnerHeader = "X-Owner-ID"

const ownerKey = "owner_id"

// OwnerIdentity extracts the owner identity from the request. An absent
// header means anonymous local-only mode; the service never manages
// login itself.
func OwnerIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ownerKey, strings.TrimSpace(c.GetHeader(OwnerHeader)))
		c.Next()
	}
}

// OwnerID reads the identity stored by OwnerIdentity, empty for
// anonymous requests.
func OwnerID(c *gin.Context) string {
	return c.GetString(ownerKey)
}
