package middleware

import (
	"errors"
	"go-task-board/internal/apperr"
	"go-task-board/internal/service"
	"go-task-board/pkg/logger"
	"go-task-board/pkg/utils"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ContextUserID = "userID"
	ContextUser   = "user"
)

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":   string(apperr.KindUnauthorized),
		"message": msg,
	})
}

// 验证JWT中间件, 只接受未注销的用户
func AuthMiddleware(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "authorization header is required")
			return
		}

		// 通常Authorization格式为: "Bearer token"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			abortUnauthorized(c, "invalid authorization format")
			return
		}

		// 解析token
		claims, err := utils.ParseToken(parts[1])
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		// 获取用户信息, 只有用户不存在才视为认证失败
		user, err := users.FindByID(c.Request.Context(), claims.UserID)
		if errors.Is(err, apperr.ErrNotFound) {
			abortUnauthorized(c, "user not found")
			return
		}
		if err != nil {
			kind := apperr.KindOf(err)
			logger.L.Error("AuthMiddleware: failed to load user", zap.Uint("userID", claims.UserID), zap.Error(err))
			c.AbortWithStatusJSON(apperr.HTTPStatus(kind), gin.H{
				"error":   string(kind),
				"message": "internal server error",
			})
			return
		}

		// 将用户ID存储在上下文中
		c.Set(ContextUserID, user.ID)
		c.Set(ContextUser, user)

		c.Next()
	}
}
