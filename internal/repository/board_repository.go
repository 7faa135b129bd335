package repository

import (
	"context"
	"errors"
	"go-task-board/internal/model"

	"gorm.io/gorm"
)

type BoardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

// 创建新看板，并自动将创建者添加为成员
func (r *BoardRepository) Create(ctx context.Context, board *model.Board, ownerID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 创建看板
		if err := tx.Create(board).Error; err != nil {
			return err
		}
		// 将创建者添加为成员
		owner := &model.Member{
			BoardID: board.ID,
			UserID:  ownerID,
			Role:    model.RoleOwner,
		}
		if err := tx.Create(owner).Error; err != nil {
			return err
		}
		return nil
	})
}

// 根据ID查找看板
func (r *BoardRepository) FindByID(ctx context.Context, boardID uint) (*model.Board, error) {
	var board model.Board
	err := r.db.WithContext(ctx).First(&board, boardID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // board not found
		}
		return nil, err
	}
	return &board, nil
}

// 根据ID查找看板，并按位置预加载列表
func (r *BoardRepository) FindWithLists(ctx context.Context, boardID uint) (*model.Board, error) {
	var board model.Board
	err := r.db.WithContext(ctx).
		Preload("Lists", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, id ASC")
		}).
		First(&board, boardID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &board, nil
}

// 查找用户所属的所有看板
func (r *BoardRepository) FindUserBoards(ctx context.Context, userID uint) ([]model.Board, error) {
	var boards []model.Board
	// 通过 members 连接查询
	err := r.db.WithContext(ctx).
		Joins("JOIN members ON boards.id = members.board_id").
		Joins("JOIN users ON users.id = members.user_id AND users.deleted_at IS NULL").
		Where("members.user_id = ?", userID).
		Order("boards.created_at DESC, boards.id DESC").
		Find(&boards).Error
	return boards, err
}

// 更新看板标题
func (r *BoardRepository) UpdateTitle(ctx context.Context, boardID uint, title string) error {
	return r.db.WithContext(ctx).Model(&model.Board{}).Where("id = ?", boardID).Update("title", title).Error
}
