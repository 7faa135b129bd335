package repository

import (
	"context"
	"go-task-board/internal/model"

	"gorm.io/gorm"
)

// Cascade 删除一个实体及其全部子孙: Board > List > Card > Comment.
// 方法必须在 Store.Transaction 内调用, 目标不存在时返回 gorm.ErrRecordNotFound
// 使整个事务回滚. 兄弟子树不受影响.
type Cascade struct {
	db *gorm.DB
}

func NewCascade(db *gorm.DB) *Cascade {
	return &Cascade{db: db}
}

func (c *Cascade) DeleteBoard(ctx context.Context, boardID uint) error {
	db := c.db.WithContext(ctx)
	lists := func() *gorm.DB {
		return db.Model(&model.List{}).Select("id").Where("board_id = ?", boardID)
	}
	cards := db.Model(&model.Card{}).Select("id").Where("list_id IN (?)", lists())

	if err := db.Where("card_id IN (?)", cards).Delete(&model.Comment{}).Error; err != nil {
		return err
	}
	if err := db.Where("list_id IN (?)", lists()).Delete(&model.Card{}).Error; err != nil {
		return err
	}
	if err := db.Where("board_id = ?", boardID).Delete(&model.List{}).Error; err != nil {
		return err
	}
	if err := db.Where("board_id = ?", boardID).Delete(&model.Member{}).Error; err != nil {
		return err
	}
	return deleteTarget(db, &model.Board{}, boardID)
}

func (c *Cascade) DeleteList(ctx context.Context, listID uint) error {
	db := c.db.WithContext(ctx)
	cards := db.Model(&model.Card{}).Select("id").Where("list_id = ?", listID)

	if err := db.Where("card_id IN (?)", cards).Delete(&model.Comment{}).Error; err != nil {
		return err
	}
	if err := db.Where("list_id = ?", listID).Delete(&model.Card{}).Error; err != nil {
		return err
	}
	return deleteTarget(db, &model.List{}, listID)
}

func (c *Cascade) DeleteCard(ctx context.Context, cardID uint) error {
	db := c.db.WithContext(ctx)
	if err := db.Where("card_id = ?", cardID).Delete(&model.Comment{}).Error; err != nil {
		return err
	}
	return deleteTarget(db, &model.Card{}, cardID)
}

// 评论没有子实体
func (c *Cascade) DeleteComment(ctx context.Context, commentID uint) error {
	return deleteTarget(c.db.WithContext(ctx), &model.Comment{}, commentID)
}

func deleteTarget(db *gorm.DB, value interface{}, id uint) error {
	res := db.Delete(value, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
