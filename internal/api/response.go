package api

import (
	"errors"
	"go-task-board/internal/apperr"
	"go-task-board/internal/middleware"
	"go-task-board/pkg/logger"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 将服务层错误转换为HTTP响应
func respondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	status := apperr.HTTPStatus(kind)

	body := gin.H{"error": string(kind)}
	var appErr *apperr.Error
	if status < http.StatusInternalServerError && errors.As(err, &appErr) {
		body["message"] = appErr.Message
		if len(appErr.Details) > 0 {
			body["details"] = appErr.Details
		}
	} else {
		// 内部错误不向客户端暴露细节
		body["message"] = "internal server error"
		_ = c.Error(err)
		logger.L.Error("Request failed", zap.Error(err), zap.String("path", c.FullPath()))
	}
	c.JSON(status, body)
}

func respondBadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   string(apperr.KindInvalidInput),
		"message": msg,
	})
}

// 绑定JSON请求体, 失败时直接写400
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		logger.L.Warn("Failed to bind request body", zap.Error(err), zap.String("path", c.FullPath()))
		respondBadRequest(c, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func getUserIDFromContext(c *gin.Context) (uint, bool) {
	userIDValue, exists := c.Get(middleware.ContextUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   string(apperr.KindUnauthorized),
			"message": "user not authenticated",
		})
		return 0, false
	}
	userID, ok := userIDValue.(uint)
	if !ok {
		logger.L.Error("Invalid userID type in context", zap.Any("userIDValue", userIDValue))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   string(apperr.KindTransactionFailed),
			"message": "invalid user id in context",
		})
		return 0, false
	}
	return userID, true
}

// 解析路径中的ID参数
func getIDParam(c *gin.Context, name string) (uint, bool) {
	id64, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id64 == 0 {
		respondBadRequest(c, "invalid "+name+" parameter")
		return 0, false
	}
	return uint(id64), true
}

func getPaginationParams(c *gin.Context) (limit, offset int) {
	var err error
	limit, err = strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 || limit > 200 {
		limit = 50
	}
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
