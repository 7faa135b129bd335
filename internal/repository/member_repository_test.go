package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-task-board/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMemberRepository_AddMember_Unique(t *testing.T) {
	store := NewStore(setupTestDB(t))
	ctx := context.Background()
	owner := createTestUser(t, store, "owner")
	guest := createTestUser(t, store, "guest")
	board := createTestBoard(t, store, owner, "shared")

	require.NoError(t, store.Members.AddMember(ctx, board.ID, guest.ID, ""))

	member, err := store.Members.FindMember(ctx, board.ID, guest.ID)
	require.NoError(t, err)
	require.NotNil(t, member)
	assert.Equal(t, model.RoleMember, member.Role)

	err = store.Members.AddMember(ctx, board.ID, guest.ID, model.RoleMember)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
}

func TestMemberRepository_SoftDeletedUserExcluded(t *testing.T) {
	store := NewStore(setupTestDB(t))
	ctx := context.Background()
	owner := createTestUser(t, store, "owner")
	guest := createTestUser(t, store, "guest")
	board := createTestBoard(t, store, owner, "shared")
	require.NoError(t, store.Members.AddMember(ctx, board.ID, guest.ID, ""))

	_, err := store.Users.SoftDelete(ctx, guest.ID, time.Now())
	require.NoError(t, err)

	ok, err := store.Members.IsMember(ctx, board.ID, guest.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	members, err := store.Members.FindBoardMembers(ctx, board.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, owner.ID, members[0].UserID)
	assert.Equal(t, owner.Email, members[0].User.Email)

	// the link itself is not removed eagerly
	n, err := store.Members.CountByBoard(ctx, board.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestMemberRepository_RemoveMember(t *testing.T) {
	store := NewStore(setupTestDB(t))
	ctx := context.Background()
	owner := createTestUser(t, store, "owner")
	guest := createTestUser(t, store, "guest")
	board := createTestBoard(t, store, owner, "shared")
	require.NoError(t, store.Members.AddMember(ctx, board.ID, guest.ID, ""))

	require.NoError(t, store.Members.RemoveMember(ctx, board.ID, guest.ID))
	ok, err := store.Members.IsMember(ctx, board.ID, guest.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	err = store.Members.RemoveMember(ctx, board.ID, guest.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
