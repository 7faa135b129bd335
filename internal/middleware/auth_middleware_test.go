package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"go-task-board/internal/model"
	"go-task-board/internal/repository"
	"go-task-board/internal/service"
	"go-task-board/pkg/config"
	"go-task-board/pkg/db"
	"go-task-board/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *repository.Store {
	t.Helper()
	config.GlobalConfig.JWT.Secret = "middleware-test-secret"
	config.GlobalConfig.JWT.Expiration = time.Hour

	dsn := fmt.Sprintf("file:%s?_foreign_keys=1&_busy_timeout=5000",
		filepath.Join(t.TempDir(), "middleware.db"))
	conn, err := db.Open(config.DatabaseConfig{Driver: "sqlite", DSN: dsn})
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, db.Migrate(conn))
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return repository.NewStore(conn)
}

func setupTestUser(t *testing.T, store *repository.Store, name string) (*model.User, string) {
	t.Helper()
	user := &model.User{
		Email:       name + "@example.com",
		Password:    "hashed",
		Name:        name,
		Nickname:    name,
		PhoneNumber: "010-1234-5678",
	}
	require.NoError(t, store.Users.Create(context.Background(), user), "Failed to create test user")

	// 生成token
	token, err := utils.GenerateToken(user.ID)
	require.NoError(t, err, "Failed to generate token")
	return user, token
}

func TestAuthMiddleware(t *testing.T) {
	store := setupTestStore(t)
	users := service.NewUserService(store)
	gin.SetMode(gin.TestMode)

	_, validToken := setupTestUser(t, store, "active")
	deleted, deletedToken := setupTestUser(t, store, "gone")
	require.NoError(t, users.SoftDelete(context.Background(), deleted.ID))
	ghostToken, err := utils.GenerateToken(9999)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"Valid token", "Bearer " + validToken, http.StatusOK},
		{"Missing auth header", "", http.StatusUnauthorized},
		{"Invalid auth format", "InvalidFormat token", http.StatusUnauthorized},
		{"Invalid token", "Bearer invalid.token.here", http.StatusUnauthorized},
		{"Soft-deleted user", "Bearer " + deletedToken, http.StatusUnauthorized},
		{"Unknown user", "Bearer " + ghostToken, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(AuthMiddleware(users))
			r.GET("/test", func(c *gin.Context) {
				userID, exists := c.Get(ContextUserID)
				if !exists {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "userID not set"})
					return
				}
				c.JSON(http.StatusOK, gin.H{"user_id": userID})
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, w.Body.String(), "user_id")
			} else {
				assert.Contains(t, w.Body.String(), `"error":"unauthorized"`)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), GinZapLogger())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextRequestID))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	generated := w.Header().Get(HeaderRequestID)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))
}

func TestAuthMiddleware_StoreFailure(t *testing.T) {
	store := setupTestStore(t)
	users := service.NewUserService(store)
	gin.SetMode(gin.TestMode)
	_, token := setupTestUser(t, store, "active")

	sqlDB, err := store.DB().DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	r := gin.New()
	r.Use(AuthMiddleware(users))
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code, "store errors are not auth failures")
	assert.Contains(t, w.Body.String(), `"error":"transaction_failed"`)
}
