package repository

import (
	"context"
	"errors"
	"go-task-board/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// 保存新评论
func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *CommentRepository) FindByID(ctx context.Context, id uint) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

// 获取卡片下的评论, 按创建时间排序
func (r *CommentRepository) FindByCard(ctx context.Context, cardID uint, limit, offset int) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.WithContext(ctx).
		Where("card_id = ?", cardID).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	return comments, err
}

func (r *CommentRepository) UpdateContent(ctx context.Context, id uint, content string) error {
	return r.db.WithContext(ctx).Model(&model.Comment{}).Where("id = ?", id).Update("content", content).Error
}

// 评论所属的看板ID
func (r *CommentRepository) BoardIDOf(ctx context.Context, commentID uint) (uint, error) {
	var boardID uint
	res := r.db.WithContext(ctx).Model(&model.Comment{}).
		Select("lists.board_id").
		Joins("JOIN cards ON cards.id = comments.card_id").
		Joins("JOIN lists ON lists.id = cards.list_id").
		Where("comments.id = ?", commentID).
		Scan(&boardID)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return boardID, nil
}

func (r *CommentRepository) CountByCard(ctx context.Context, cardID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Comment{}).Where("card_id = ?", cardID).Count(&count).Error
	return count, err
}
