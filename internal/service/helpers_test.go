package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go-task-board/internal/model"
	"go-task-board/internal/repository"
	"go-task-board/pkg/config"
	"go-task-board/pkg/db"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testPassword = "Passw0rd!"

func TestMain(m *testing.M) {
	config.GlobalConfig.JWT.Secret = "service-test-secret"
	config.GlobalConfig.JWT.Expiration = time.Hour
	os.Exit(m.Run())
}

type services struct {
	conn     *gorm.DB
	store    *repository.Store
	users    *UserService
	boards   *BoardService
	lists    *ListService
	cards    *CardService
	comments *CommentService
}

func setupServices(t *testing.T) *services {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?_foreign_keys=1&_busy_timeout=5000&_txlock=immediate",
		filepath.Join(t.TempDir(), "service.db"))
	conn, err := db.Open(config.DatabaseConfig{Driver: "sqlite", DSN: dsn})
	require.NoError(t, err, "Failed to open test database")
	require.NoError(t, db.Migrate(conn), "Failed to migrate test database")
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	store := repository.NewStore(conn)
	return &services{
		conn:     conn,
		store:    store,
		users:    NewUserService(store),
		boards:   NewBoardService(store),
		lists:    NewListService(store),
		cards:    NewCardService(store),
		comments: NewCommentService(store),
	}
}

func registerReq(name string) RegisterRequest {
	return RegisterRequest{
		Email:       name + "@example.com",
		Password:    testPassword,
		Name:        name,
		Nickname:    name,
		PhoneNumber: "010-1234-5678",
	}
}

func (s *services) register(t *testing.T, name string) *model.User {
	t.Helper()
	user, err := s.users.Register(context.Background(), registerReq(name))
	require.NoError(t, err, "Failed to register %s", name)
	return user
}

func (s *services) board(t *testing.T, owner *model.User, title string) *model.Board {
	t.Helper()
	board, err := s.boards.Create(context.Background(), owner.ID, CreateBoardRequest{Title: title})
	require.NoError(t, err)
	return board
}

func (s *services) count(t *testing.T, value interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, s.conn.Model(value).Where(query, args...).Count(&n).Error)
	return n
}
