package middleware

import (
	"net/http"

	"parcel_tracking/internal/domain/order/policy"
	"parcel_tracking/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireCapability 能力闸门：按当前角色的权限记录判定是否放行
// 必须挂在 AuthMiddleware 之后
func RequireCapability(check func(policy.PermissionRecord) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := policy.NormalizeRole(c.GetString("role"))
		if !check(policy.GetPermissions(role)) {
			response.Error(c, http.StatusForbidden, response.MsgForbidden, "role is not allowed to perform this action")
			c.Abort()
			return
		}
		c.Next()
	}
}
