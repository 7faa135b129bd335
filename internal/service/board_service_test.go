package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"go-task-board/internal/apperr"
	"go-task-board/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardService_Create(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	owner := s.register(t, "owner")

	board, err := s.boards.Create(ctx, owner.ID, CreateBoardRequest{Title: "  Sprint 1  "})
	require.NoError(t, err)
	assert.Equal(t, "Sprint 1", board.Title)

	members, err := s.boards.Members(ctx, board.ID, owner.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, model.RoleOwner, members[0].Role)
	assert.Equal(t, owner.Email, members[0].User.Email)
}

func TestBoardService_Create_InvalidTitle(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	owner := s.register(t, "owner")

	for _, title := range []string{"", "   "} {
		_, err := s.boards.Create(ctx, owner.ID, CreateBoardRequest{Title: title})
		assert.ErrorIs(t, err, apperr.ErrInvalidTitle)
	}
	assert.Zero(t, s.count(t, &model.Board{}, "1 = 1"))
}

func TestBoardService_Create_UnknownOwner(t *testing.T) {
	s := setupServices(t)

	_, err := s.boards.Create(context.Background(), 9999, CreateBoardRequest{Title: "Orphan"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Zero(t, s.count(t, &model.Board{}, "1 = 1"))
}

func TestBoardService_Get_Authorization(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	owner := s.register(t, "owner")
	stranger := s.register(t, "stranger")
	board := s.board(t, owner, "Private")

	got, err := s.boards.Get(ctx, board.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, board.ID, got.ID)

	_, err = s.boards.Get(ctx, board.ID, stranger.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = s.boards.Get(ctx, 9999, owner.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestBoardService_Get_ListsOrderedByPosition(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	owner := s.register(t, "owner")
	board := s.board(t, owner, "Ordered")

	for _, title := range []string{"Todo", "Doing", "Done"} {
		_, err := s.lists.Create(ctx, board.ID, owner.ID, CreateListRequest{Title: title})
		require.NoError(t, err)
	}

	got, err := s.boards.Get(ctx, board.ID, owner.ID)
	require.NoError(t, err)
	require.Len(t, got.Lists, 3)
	assert.Equal(t, "Todo", got.Lists[0].Title)
	assert.Equal(t, "Done", got.Lists[2].Title)
}

func TestBoardService_Delete_Cascade(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	owner := s.register(t, "owner")
	target := s.board(t, owner, "Target")
	sibling := s.board(t, owner, "Sibling")

	const nLists, nCards, nComments = 3, 4, 2
	var cardIDs []uint
	for _, b := range []*model.Board{target, sibling} {
		for i := 0; i < nLists; i++ {
			list, err := s.lists.Create(ctx, b.ID, owner.ID, CreateListRequest{Title: fmt.Sprintf("L%d", i)})
			require.NoError(t, err)
			for j := 0; j < nCards; j++ {
				card, err := s.cards.Create(ctx, list.ID, owner.ID, CreateCardRequest{Title: fmt.Sprintf("C%d", j)})
				require.NoError(t, err)
				if b == target {
					cardIDs = append(cardIDs, card.ID)
				}
				for k := 0; k < nComments; k++ {
					_, err := s.comments.Create(ctx, card.ID, owner.ID, CreateCommentRequest{Content: "note"})
					require.NoError(t, err)
				}
			}
		}
	}

	require.NoError(t, s.boards.Delete(ctx, target.ID, owner.ID))

	assert.Zero(t, s.count(t, &model.Board{}, "id = ?", target.ID))
	assert.Zero(t, s.count(t, &model.List{}, "board_id = ?", target.ID))
	assert.Zero(t, s.count(t, &model.Card{}, "id IN ?", cardIDs))
	assert.Zero(t, s.count(t, &model.Comment{}, "card_id IN ?", cardIDs))
	assert.Zero(t, s.count(t, &model.Member{}, "board_id = ?", target.ID))

	assert.Equal(t, int64(nLists), s.count(t, &model.List{}, "board_id = ?", sibling.ID))
	assert.Equal(t, int64(nLists*nCards), s.count(t, &model.Card{}, "1 = 1"))
	assert.Equal(t, int64(nLists*nCards*nComments), s.count(t, &model.Comment{}, "1 = 1"))

	_, err := s.boards.Get(ctx, target.ID, owner.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestBoardService_Delete_Forbidden(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	owner := s.register(t, "owner")
	stranger := s.register(t, "stranger")
	board := s.board(t, owner, "Mine")

	err := s.boards.Delete(ctx, board.ID, stranger.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
	assert.Equal(t, int64(1), s.count(t, &model.Board{}, "id = ?", board.ID))

	err = s.boards.Delete(ctx, 9999, owner.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestBoardService_Delete_Concurrent(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	owner := s.register(t, "owner")
	board := s.board(t, owner, "Contended")
	list, err := s.lists.Create(ctx, board.ID, owner.ID, CreateListRequest{Title: "Todo"})
	require.NoError(t, err)
	_, err = s.cards.Create(ctx, list.ID, owner.ID, CreateCardRequest{Title: "Fix bug"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.boards.Delete(ctx, board.ID, owner.ID)
		}(i)
	}
	wg.Wait()

	var ok, notFound int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case apperr.KindOf(err) == apperr.KindNotFound:
			notFound++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, notFound)
	assert.Zero(t, s.count(t, &model.Card{}, "1 = 1"))
}

func TestBoardService_Update(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	owner := s.register(t, "owner")
	board := s.board(t, owner, "Old")

	title := "New"
	updated, err := s.boards.Update(ctx, board.ID, owner.ID, UpdateBoardRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)

	unchanged, err := s.boards.Update(ctx, board.ID, owner.ID, UpdateBoardRequest{})
	require.NoError(t, err)
	assert.Equal(t, "New", unchanged.Title)

	blank := " "
	_, err = s.boards.Update(ctx, board.ID, owner.ID, UpdateBoardRequest{Title: &blank})
	assert.ErrorIs(t, err, apperr.ErrInvalidTitle)
}

func TestBoardService_ListForUser(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	alice := s.register(t, "alice")
	bob := s.register(t, "bob")
	s.board(t, alice, "A1")
	s.board(t, alice, "A2")
	s.board(t, bob, "B1")

	boards, err := s.boards.ListForUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, boards, 2)
}

func TestBoardService_Membership(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	owner := s.register(t, "owner")
	alice := s.register(t, "alice")
	bob := s.register(t, "bob")
	board := s.board(t, owner, "Team")

	member, err := s.boards.AddMember(ctx, board.ID, owner.ID, AddMemberRequest{Email: alice.Email})
	require.NoError(t, err)
	assert.Equal(t, model.RoleMember, member.Role)

	_, err = s.boards.AddMember(ctx, board.ID, owner.ID, AddMemberRequest{Email: alice.Email})
	assert.ErrorIs(t, err, apperr.ErrAlreadyMember)

	_, err = s.boards.AddMember(ctx, board.ID, owner.ID, AddMemberRequest{Email: "ghost@example.com"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = s.boards.AddMember(ctx, board.ID, bob.ID, AddMemberRequest{Email: bob.Email})
	assert.ErrorIs(t, err, apperr.ErrForbidden, "non-members cannot invite")

	_, err = s.boards.AddMember(ctx, board.ID, alice.ID, AddMemberRequest{Email: bob.Email})
	require.NoError(t, err, "members can invite")

	err = s.boards.RemoveMember(ctx, board.ID, alice.ID, bob.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden, "only the owner removes others")

	err = s.boards.RemoveMember(ctx, board.ID, owner.ID, owner.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden, "owner cannot leave")

	require.NoError(t, s.boards.RemoveMember(ctx, board.ID, owner.ID, bob.ID))
	require.NoError(t, s.boards.RemoveMember(ctx, board.ID, alice.ID, alice.ID))

	members, err := s.boards.Members(ctx, board.ID, owner.ID)
	require.NoError(t, err)
	assert.Len(t, members, 1)

	err = s.boards.RemoveMember(ctx, board.ID, owner.ID, alice.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
