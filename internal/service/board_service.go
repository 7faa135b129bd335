package service

import (
	"context"
	"errors"
	"go-task-board/internal/apperr"
	"go-task-board/internal/metrics"
	"go-task-board/internal/model"
	"go-task-board/internal/repository"
	"go-task-board/internal/validation"
	"go-task-board/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type BoardService struct {
	store *repository.Store
}

func NewBoardService(store *repository.Store) *BoardService {
	return &BoardService{store: store}
}

// 创建看板请求
type CreateBoardRequest struct {
	Title string `json:"title"`
}

type UpdateBoardRequest struct {
	Title *string `json:"title"`
}

// 通过邮箱邀请成员
type AddMemberRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// 创建看板, 创建者自动成为 owner
func (s *BoardService) Create(ctx context.Context, ownerID uint, req CreateBoardRequest) (*model.Board, error) {
	title, err := validTitle(req.Title)
	if err != nil {
		return nil, err
	}

	board := &model.Board{Title: title}
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		owner, err := tx.Users.FindByID(ctx, ownerID)
		if err != nil {
			return err
		}
		if owner == nil {
			return apperr.NotFound("user")
		}
		return tx.Boards.Create(ctx, board, ownerID)
	})
	if err != nil {
		return nil, storeError("failed to create board", err)
	}

	logger.Named("board").Info("Board created", zap.Uint("boardID", board.ID), zap.Uint("ownerID", ownerID))
	return board, nil
}

// 获取看板及其列表. 先判断存在再判断权限
func (s *BoardService) Get(ctx context.Context, boardID, requesterID uint) (*model.Board, error) {
	board, err := s.store.Boards.FindWithLists(ctx, boardID)
	if err != nil {
		return nil, storeError("failed to load board", err)
	}
	if board == nil {
		return nil, apperr.NotFound("board")
	}
	if err := requireMember(ctx, s.store, boardID, requesterID); err != nil {
		return nil, storeError("failed to check membership", err)
	}
	return board, nil
}

// 用户所属的全部看板
func (s *BoardService) ListForUser(ctx context.Context, userID uint) ([]model.Board, error) {
	boards, err := s.store.Boards.FindUserBoards(ctx, userID)
	if err != nil {
		return nil, storeError("failed to list boards", err)
	}
	return boards, nil
}

func (s *BoardService) Update(ctx context.Context, boardID, requesterID uint, req UpdateBoardRequest) (*model.Board, error) {
	var title string
	if req.Title != nil {
		t, err := validTitle(*req.Title)
		if err != nil {
			return nil, err
		}
		title = t
	}

	var board *model.Board
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := s.authorize(ctx, tx, boardID, requesterID); err != nil {
			return err
		}
		if req.Title != nil {
			if err := tx.Boards.UpdateTitle(ctx, boardID, title); err != nil {
				return err
			}
		}
		var err error
		board, err = tx.Boards.FindByID(ctx, boardID)
		return err
	})
	if err != nil {
		return nil, storeError("failed to update board", err)
	}
	return board, nil
}

// 删除看板及其全部列表、卡片、评论和成员关系
func (s *BoardService) Delete(ctx context.Context, boardID, requesterID uint) error {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := s.authorize(ctx, tx, boardID, requesterID); err != nil {
			return err
		}
		return notFoundOr("board", tx.Cascade.DeleteBoard(ctx, boardID))
	})
	if err != nil {
		return storeError("failed to delete board", err)
	}

	metrics.CascadeDeleted("board")
	logger.Named("board").Info("Board deleted", zap.Uint("boardID", boardID), zap.Uint("requesterID", requesterID))
	return nil
}

// 邀请成员. 只有看板成员可以邀请
func (s *BoardService) AddMember(ctx context.Context, boardID, requesterID uint, req AddMemberRequest) (*model.Member, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	var member *model.Member
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := s.authorize(ctx, tx, boardID, requesterID); err != nil {
			return err
		}
		user, err := tx.Users.FindByEmail(ctx, req.Email)
		if err != nil {
			return err
		}
		if user == nil {
			return apperr.NotFound("user")
		}
		existing, err := tx.Members.FindMember(ctx, boardID, user.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperr.ErrAlreadyMember
		}
		if err := tx.Members.AddMember(ctx, boardID, user.ID, model.RoleMember); err != nil {
			return err
		}
		member, err = tx.Members.FindMember(ctx, boardID, user.ID)
		if err == nil && member != nil {
			member.User = *user
		}
		return err
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, apperr.ErrAlreadyMember
	}
	if err != nil {
		return nil, storeError("failed to add member", err)
	}
	return member, nil
}

// 移除成员: owner 可以移除其他人, 成员可以自己退出, owner 不能退出
func (s *BoardService) RemoveMember(ctx context.Context, boardID, requesterID, userID uint) error {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := s.authorize(ctx, tx, boardID, requesterID); err != nil {
			return err
		}
		requester, err := tx.Members.FindMember(ctx, boardID, requesterID)
		if err != nil {
			return err
		}
		if requesterID == userID {
			if requester.Role == model.RoleOwner {
				return apperr.New(apperr.KindForbidden, "the owner cannot leave the board")
			}
		} else if requester.Role != model.RoleOwner {
			return apperr.New(apperr.KindForbidden, "only the owner can remove members")
		}
		return notFoundOr("member", tx.Members.RemoveMember(ctx, boardID, userID))
	})
	if err != nil {
		return storeError("failed to remove member", err)
	}
	logger.Named("board").Info("Member removed", zap.Uint("boardID", boardID), zap.Uint("userID", userID))
	return nil
}

// 看板成员列表
func (s *BoardService) Members(ctx context.Context, boardID, requesterID uint) ([]model.Member, error) {
	if err := s.authorize(ctx, s.store, boardID, requesterID); err != nil {
		return nil, storeError("failed to check membership", err)
	}
	members, err := s.store.Members.FindBoardMembers(ctx, boardID)
	if err != nil {
		return nil, storeError("failed to list members", err)
	}
	return members, nil
}

func (s *BoardService) authorize(ctx context.Context, store *repository.Store, boardID, requesterID uint) error {
	board, err := store.Boards.FindByID(ctx, boardID)
	if err != nil {
		return err
	}
	if board == nil {
		return apperr.NotFound("board")
	}
	return requireMember(ctx, store, boardID, requesterID)
}
