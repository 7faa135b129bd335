package service

import (
	"context"
	"go-task-board/internal/apperr"
	"go-task-board/internal/metrics"
	"go-task-board/internal/model"
	"go-task-board/internal/repository"
	"go-task-board/pkg/logger"

	"go.uber.org/zap"
)

type ListService struct {
	store *repository.Store
}

func NewListService(store *repository.Store) *ListService {
	return &ListService{store: store}
}

type CreateListRequest struct {
	Title string `json:"title"`
}

type UpdateListRequest struct {
	Title    *string `json:"title"`
	Position *int    `json:"position"`
}

// 在看板末尾创建列表
func (s *ListService) Create(ctx context.Context, boardID, requesterID uint, req CreateListRequest) (*model.List, error) {
	title, err := validTitle(req.Title)
	if err != nil {
		return nil, err
	}

	list := &model.List{BoardID: boardID, Title: title}
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		board, err := tx.Boards.FindByID(ctx, boardID)
		if err != nil {
			return err
		}
		if board == nil {
			return apperr.NotFound("board")
		}
		if err := requireMember(ctx, tx, boardID, requesterID); err != nil {
			return err
		}
		return tx.Lists.Create(ctx, list)
	})
	if err != nil {
		return nil, storeError("failed to create list", err)
	}
	return list, nil
}

func (s *ListService) Get(ctx context.Context, listID, requesterID uint) (*model.List, error) {
	list, err := s.load(ctx, s.store, listID, requesterID)
	if err != nil {
		return nil, storeError("failed to load list", err)
	}
	return list, nil
}

// 看板下的列表, 按位置排序
func (s *ListService) ListByBoard(ctx context.Context, boardID, requesterID uint) ([]model.List, error) {
	board, err := s.store.Boards.FindByID(ctx, boardID)
	if err != nil {
		return nil, storeError("failed to load board", err)
	}
	if board == nil {
		return nil, apperr.NotFound("board")
	}
	if err := requireMember(ctx, s.store, boardID, requesterID); err != nil {
		return nil, storeError("failed to check membership", err)
	}
	lists, err := s.store.Lists.FindByBoard(ctx, boardID)
	if err != nil {
		return nil, storeError("failed to list lists", err)
	}
	return lists, nil
}

func (s *ListService) Update(ctx context.Context, listID, requesterID uint, req UpdateListRequest) (*model.List, error) {
	fields := map[string]interface{}{}
	if req.Title != nil {
		title, err := validTitle(*req.Title)
		if err != nil {
			return nil, err
		}
		fields["title"] = title
	}
	if req.Position != nil {
		if *req.Position < 1 {
			return nil, apperr.New(apperr.KindInvalidInput, "position must be positive")
		}
		fields["position"] = *req.Position
	}

	var list *model.List
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := s.load(ctx, tx, listID, requesterID); err != nil {
			return err
		}
		if len(fields) > 0 {
			if err := tx.Lists.Update(ctx, listID, fields); err != nil {
				return err
			}
		}
		var err error
		list, err = tx.Lists.FindByID(ctx, listID)
		return err
	})
	if err != nil {
		return nil, storeError("failed to update list", err)
	}
	return list, nil
}

// 删除列表及其卡片和评论
func (s *ListService) Delete(ctx context.Context, listID, requesterID uint) error {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := s.load(ctx, tx, listID, requesterID); err != nil {
			return err
		}
		return notFoundOr("list", tx.Cascade.DeleteList(ctx, listID))
	})
	if err != nil {
		return storeError("failed to delete list", err)
	}
	metrics.CascadeDeleted("list")
	logger.Named("list").Info("List deleted", zap.Uint("listID", listID))
	return nil
}

// 加载列表并校验请求者的成员身份
func (s *ListService) load(ctx context.Context, store *repository.Store, listID, requesterID uint) (*model.List, error) {
	list, err := store.Lists.FindByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, apperr.NotFound("list")
	}
	if err := requireMember(ctx, store, list.BoardID, requesterID); err != nil {
		return nil, err
	}
	return list, nil
}
