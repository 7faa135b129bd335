package repository

import (
	"context"
	"errors"
	"go-task-board/internal/model"
	"go-task-board/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MemberRepository 成员关系. 所有查询只认未软删除的用户
type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) withActiveUser(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.Member{}).
		Joins("JOIN users ON users.id = members.user_id AND users.deleted_at IS NULL")
}

// 将用户添加到看板
func (r *MemberRepository) AddMember(ctx context.Context, boardID, userID uint, role string) error {
	if role == "" {
		role = model.RoleMember
	}
	member := &model.Member{
		BoardID: boardID,
		UserID:  userID,
		Role:    role,
	}
	return r.db.WithContext(ctx).Create(member).Error
}

// 将用户从看板中移除
func (r *MemberRepository) RemoveMember(ctx context.Context, boardID, userID uint) error {
	res := r.db.WithContext(ctx).Where("board_id = ? AND user_id = ?", boardID, userID).Delete(&model.Member{})
	if res.Error != nil {
		logger.L.Error("RemoveMember: failed to delete member",
			zap.Uint("boardID", boardID),
			zap.Uint("userID", userID),
			zap.Error(res.Error))
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// 查找特定看板的特定成员
func (r *MemberRepository) FindMember(ctx context.Context, boardID, userID uint) (*model.Member, error) {
	var member model.Member
	err := r.withActiveUser(ctx).
		Where("members.board_id = ? AND members.user_id = ?", boardID, userID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

// 用户是否为看板的有效成员
func (r *MemberRepository) IsMember(ctx context.Context, boardID, userID uint) (bool, error) {
	var count int64
	err := r.withActiveUser(ctx).
		Where("members.board_id = ? AND members.user_id = ?", boardID, userID).
		Count(&count).Error
	return count > 0, err
}

// 获取看板所有有效成员, 预加载用户信息
func (r *MemberRepository) FindBoardMembers(ctx context.Context, boardID uint) ([]model.Member, error) {
	var members []model.Member
	err := r.withActiveUser(ctx).
		Where("members.board_id = ?", boardID).
		Preload("User").
		Order("members.id ASC").
		Find(&members).Error
	return members, err
}

// 看板成员行数, 包括软删除用户的成员关系
func (r *MemberRepository) CountByBoard(ctx context.Context, boardID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Member{}).Where("board_id = ?", boardID).Count(&count).Error
	return count, err
}
