package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"go-task-board/internal/model"
	"go-task-board/pkg/config"
	"go-task-board/pkg/db"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// --- Test Setup ---

// setupTestDB opens a fresh SQLite file per test with foreign keys enforced
// and writer transactions taking the lock up front.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?_foreign_keys=1&_busy_timeout=5000&_txlock=immediate",
		filepath.Join(t.TempDir(), "repo.db"))
	conn, err := db.Open(config.DatabaseConfig{Driver: "sqlite", DSN: dsn})
	require.NoError(t, err, "Failed to open test database")
	require.NoError(t, db.Migrate(conn), "Failed to migrate test database")

	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return conn
}

func createTestUser(t *testing.T, store *Store, name string) *model.User {
	t.Helper()
	user := &model.User{
		Email:       fmt.Sprintf("%s@example.com", name),
		Password:    "hashed",
		Name:        name,
		Nickname:    name,
		PhoneNumber: "010-0000-0000",
	}
	require.NoError(t, store.Users.Create(context.Background(), user), "Failed to create test user %s", name)
	require.True(t, user.ID > 0)
	return user
}

func createTestBoard(t *testing.T, store *Store, owner *model.User, title string) *model.Board {
	t.Helper()
	board := &model.Board{Title: title}
	require.NoError(t, store.Boards.Create(context.Background(), board, owner.ID))
	return board
}

// createTree builds nLists lists, each with nCards cards, each with nComments comments.
func createTree(t *testing.T, store *Store, boardID uint, nLists, nCards, nComments int) (lists []model.List, cards []model.Card) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < nLists; i++ {
		list := model.List{BoardID: boardID, Title: fmt.Sprintf("list-%d", i)}
		require.NoError(t, store.Lists.Create(ctx, &list))
		lists = append(lists, list)
		for j := 0; j < nCards; j++ {
			card := model.Card{ListID: list.ID, Title: fmt.Sprintf("card-%d-%d", i, j), Color: model.DefaultCardColor}
			require.NoError(t, store.Cards.Create(ctx, &card))
			cards = append(cards, card)
			for k := 0; k < nComments; k++ {
				comment := model.Comment{CardID: card.ID, Content: fmt.Sprintf("comment-%d", k)}
				require.NoError(t, store.Comments.Create(ctx, &comment))
			}
		}
	}
	return lists, cards
}

func countRows(t *testing.T, conn *gorm.DB, value interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, conn.Model(value).Where(query, args...).Count(&n).Error)
	return n
}
