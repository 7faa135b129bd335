package service

import (
	"context"
	"errors"
	"fmt"
	"go-task-board/internal/apperr"
	"go-task-board/internal/metrics"
	"go-task-board/internal/model"
	"go-task-board/internal/repository"
	"go-task-board/pkg/logger"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CardService struct {
	store *repository.Store
}

func NewCardService(store *repository.Store) *CardService {
	return &CardService{store: store}
}

// 创建卡片请求, 未提供 Color 时使用默认颜色
type CreateCardRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Color       *string    `json:"color"`
}

// 卡片部分更新, nil字段保持不变. Clear* 将可空字段置为 NULL
type UpdateCardRequest struct {
	Title            *string    `json:"title"`
	Description      *string    `json:"description"`
	DueDate          *time.Time `json:"due_date"`
	Color            *string    `json:"color"`
	ClearDescription bool       `json:"clear_description"`
	ClearDueDate     bool       `json:"clear_due_date"`
}

// 颜色必须与枚举值完全一致, nil 表示未提供
func parseColor(raw *string) (model.CardColor, error) {
	if raw == nil {
		return model.DefaultCardColor, nil
	}
	color := model.CardColor(*raw)
	if !color.Valid() {
		return "", apperr.New(apperr.KindInvalidColor, fmt.Sprintf("invalid card color: %q", *raw))
	}
	return color, nil
}

// 在列表中创建卡片. 颜色和标题在写入前校验
func (s *CardService) Create(ctx context.Context, listID, requesterID uint, req CreateCardRequest) (*model.Card, error) {
	title, err := validTitle(req.Title)
	if err != nil {
		return nil, err
	}
	color, err := parseColor(req.Color)
	if err != nil {
		return nil, err
	}

	card := &model.Card{
		ListID:      listID,
		Title:       title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Color:       color,
	}
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		list, err := tx.Lists.FindByID(ctx, listID)
		if err != nil {
			return err
		}
		if list == nil {
			return apperr.NotFound("list")
		}
		if err := requireMember(ctx, tx, list.BoardID, requesterID); err != nil {
			return err
		}
		return tx.Cards.Create(ctx, card)
	})
	if err != nil {
		return nil, storeError("failed to create card", err)
	}
	return card, nil
}

func (s *CardService) Get(ctx context.Context, cardID, requesterID uint) (*model.Card, error) {
	card, err := s.load(ctx, s.store, cardID, requesterID)
	if err != nil {
		return nil, storeError("failed to load card", err)
	}
	return card, nil
}

// 列表下的全部卡片
func (s *CardService) ListByList(ctx context.Context, listID, requesterID uint) ([]model.Card, error) {
	list, err := s.store.Lists.FindByID(ctx, listID)
	if err != nil {
		return nil, storeError("failed to load list", err)
	}
	if list == nil {
		return nil, apperr.NotFound("list")
	}
	if err := requireMember(ctx, s.store, list.BoardID, requesterID); err != nil {
		return nil, storeError("failed to check membership", err)
	}
	cards, err := s.store.Cards.FindByList(ctx, listID)
	if err != nil {
		return nil, storeError("failed to list cards", err)
	}
	return cards, nil
}

func (s *CardService) Update(ctx context.Context, cardID, requesterID uint, req UpdateCardRequest) (*model.Card, error) {
	fields := map[string]interface{}{}
	if req.Title != nil {
		title, err := validTitle(*req.Title)
		if err != nil {
			return nil, err
		}
		fields["title"] = title
	}
	if req.Color != nil {
		color, err := parseColor(req.Color)
		if err != nil {
			return nil, err
		}
		fields["color"] = string(color)
	}
	if req.ClearDescription && req.Description != nil {
		return nil, apperr.New(apperr.KindInvalidInput, "description and clear_description are mutually exclusive")
	}
	if req.ClearDueDate && req.DueDate != nil {
		return nil, apperr.New(apperr.KindInvalidInput, "due_date and clear_due_date are mutually exclusive")
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	} else if req.ClearDescription {
		fields["description"] = nil
	}
	if req.DueDate != nil {
		fields["due_date"] = *req.DueDate
	} else if req.ClearDueDate {
		fields["due_date"] = nil
	}

	var card *model.Card
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := s.load(ctx, tx, cardID, requesterID); err != nil {
			return err
		}
		if len(fields) > 0 {
			if err := tx.Cards.Update(ctx, cardID, fields); err != nil {
				return err
			}
		}
		var err error
		card, err = tx.Cards.FindByID(ctx, cardID)
		return err
	})
	if err != nil {
		return nil, storeError("failed to update card", err)
	}
	return card, nil
}

// 删除卡片及其评论
func (s *CardService) Delete(ctx context.Context, cardID, requesterID uint) error {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := s.load(ctx, tx, cardID, requesterID); err != nil {
			return err
		}
		return notFoundOr("card", tx.Cascade.DeleteCard(ctx, cardID))
	})
	if err != nil {
		return storeError("failed to delete card", err)
	}
	metrics.CascadeDeleted("card")
	logger.Named("card").Info("Card deleted", zap.Uint("cardID", cardID))
	return nil
}

func (s *CardService) load(ctx context.Context, store *repository.Store, cardID, requesterID uint) (*model.Card, error) {
	card, err := store.Cards.FindByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, apperr.NotFound("card")
	}
	boardID, err := store.Cards.BoardIDOf(ctx, cardID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("card")
	}
	if err != nil {
		return nil, err
	}
	if err := requireMember(ctx, store, boardID, requesterID); err != nil {
		return nil, err
	}
	return card, nil
}
