package repository

import (
	"context"
	"errors"
	"go-task-board/internal/model"

	"gorm.io/gorm"
)

type ListRepository struct {
	db *gorm.DB
}

func NewListRepository(db *gorm.DB) *ListRepository {
	return &ListRepository{db: db}
}

// 保存新列表, 位置排在看板最后
func (r *ListRepository) Create(ctx context.Context, list *model.List) error {
	db := r.db.WithContext(ctx)
	var maxPos int
	if err := db.Model(&model.List{}).
		Where("board_id = ?", list.BoardID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&maxPos).Error; err != nil {
		return err
	}
	list.Position = maxPos + 1
	return db.Create(list).Error
}

func (r *ListRepository) FindByID(ctx context.Context, id uint) (*model.List, error) {
	var list model.List
	if err := r.db.WithContext(ctx).First(&list, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &list, nil
}

// 获取看板下的全部列表, 按位置排序
func (r *ListRepository) FindByBoard(ctx context.Context, boardID uint) ([]model.List, error) {
	var lists []model.List
	err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("position ASC, id ASC").
		Find(&lists).Error
	return lists, err
}

func (r *ListRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.List{}).Where("id = ?", id).Updates(fields).Error
}

func (r *ListRepository) CountByBoard(ctx context.Context, boardID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.List{}).Where("board_id = ?", boardID).Count(&count).Error
	return count, err
}
