package service

import (
	"context"
	"errors"
	"go-task-board/internal/apperr"
	"go-task-board/internal/metrics"
	"go-task-board/internal/model"
	"go-task-board/internal/repository"
	"strings"

	"gorm.io/gorm"
)

type CommentService struct {
	store *repository.Store
}

func NewCommentService(store *repository.Store) *CommentService {
	return &CommentService{store: store}
}

type CreateCommentRequest struct {
	Content string `json:"content"`
}

type UpdateCommentRequest struct {
	Content *string `json:"content"`
}

func validContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", apperr.New(apperr.KindInvalidInput, "comment content must not be empty")
	}
	return content, nil
}

func (s *CommentService) Create(ctx context.Context, cardID, requesterID uint, req CreateCommentRequest) (*model.Comment, error) {
	content, err := validContent(req.Content)
	if err != nil {
		return nil, err
	}

	comment := &model.Comment{CardID: cardID, Content: content}
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := s.authorizeCard(ctx, tx, cardID, requesterID); err != nil {
			return err
		}
		return tx.Comments.Create(ctx, comment)
	})
	if err != nil {
		return nil, storeError("failed to create comment", err)
	}
	return comment, nil
}

func (s *CommentService) Get(ctx context.Context, commentID, requesterID uint) (*model.Comment, error) {
	comment, err := s.load(ctx, s.store, commentID, requesterID)
	if err != nil {
		return nil, storeError("failed to load comment", err)
	}
	return comment, nil
}

// 卡片下的评论, 按创建顺序分页
func (s *CommentService) ListByCard(ctx context.Context, cardID, requesterID uint, limit, offset int) ([]model.Comment, error) {
	if err := s.authorizeCard(ctx, s.store, cardID, requesterID); err != nil {
		return nil, storeError("failed to load card", err)
	}
	limit, offset = pageParams(limit, offset)
	comments, err := s.store.Comments.FindByCard(ctx, cardID, limit, offset)
	if err != nil {
		return nil, storeError("failed to list comments", err)
	}
	return comments, nil
}

func (s *CommentService) Update(ctx context.Context, commentID, requesterID uint, req UpdateCommentRequest) (*model.Comment, error) {
	var content string
	if req.Content != nil {
		c, err := validContent(*req.Content)
		if err != nil {
			return nil, err
		}
		content = c
	}

	var comment *model.Comment
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := s.load(ctx, tx, commentID, requesterID); err != nil {
			return err
		}
		if req.Content != nil {
			if err := tx.Comments.UpdateContent(ctx, commentID, content); err != nil {
				return err
			}
		}
		var err error
		comment, err = tx.Comments.FindByID(ctx, commentID)
		return err
	})
	if err != nil {
		return nil, storeError("failed to update comment", err)
	}
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, commentID, requesterID uint) error {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := s.load(ctx, tx, commentID, requesterID); err != nil {
			return err
		}
		return notFoundOr("comment", tx.Cascade.DeleteComment(ctx, commentID))
	})
	if err != nil {
		return storeError("failed to delete comment", err)
	}
	metrics.CascadeDeleted("comment")
	return nil
}

func (s *CommentService) authorizeCard(ctx context.Context, store *repository.Store, cardID, requesterID uint) error {
	boardID, err := store.Cards.BoardIDOf(ctx, cardID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("card")
	}
	if err != nil {
		return err
	}
	return requireMember(ctx, store, boardID, requesterID)
}

func (s *CommentService) load(ctx context.Context, store *repository.Store, commentID, requesterID uint) (*model.Comment, error) {
	comment, err := store.Comments.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, apperr.NotFound("comment")
	}
	boardID, err := store.Comments.BoardIDOf(ctx, commentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("comment")
	}
	if err != nil {
		return nil, err
	}
	if err := requireMember(ctx, store, boardID, requesterID); err != nil {
		return nil, err
	}
	return comment, nil
}
