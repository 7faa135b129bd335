package repository

import (
	"context"
	"errors"
	"go-task-board/internal/model"

	"gorm.io/gorm"
)

type CardRepository struct {
	db *gorm.DB
}

func NewCardRepository(db *gorm.DB) *CardRepository {
	return &CardRepository{db: db}
}

func (r *CardRepository) Create(ctx context.Context, card *model.Card) error {
	return r.db.WithContext(ctx).Create(card).Error
}

func (r *CardRepository) FindByID(ctx context.Context, id uint) (*model.Card, error) {
	var card model.Card
	if err := r.db.WithContext(ctx).First(&card, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &card, nil
}

func (r *CardRepository) FindByList(ctx context.Context, listID uint) ([]model.Card, error) {
	var cards []model.Card
	err := r.db.WithContext(ctx).Where("list_id = ?", listID).Order("id ASC").Find(&cards).Error
	return cards, err
}

func (r *CardRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Card{}).Where("id = ?", id).Updates(fields).Error
}

// 卡片所属的看板ID
func (r *CardRepository) BoardIDOf(ctx context.Context, cardID uint) (uint, error) {
	var boardID uint
	res := r.db.WithContext(ctx).Model(&model.Card{}).
		Select("lists.board_id").
		Joins("JOIN lists ON lists.id = cards.list_id").
		Where("cards.id = ?", cardID).
		Scan(&boardID)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return boardID, nil
}

func (r *CardRepository) CountByList(ctx context.Context, listID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Card{}).Where("list_id = ?", listID).Count(&count).Error
	return count, err
}
