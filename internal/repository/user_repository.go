package repository

import (
	"context"
	"errors"
	"go-task-board/internal/model"
	"time"

	"gorm.io/gorm"
)

// UserRepository 处理用户数据持久化.
// 软删除的用户只能通过 ExistsByEmail 和 CountAll 看到
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) active(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Where("deleted_at IS NULL")
}

// 新建用户
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// 通过ID查找未删除的用户
func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.active(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // 用户不存在
		}
		return nil, err
	}
	return &user, nil
}

// 通过邮箱查找未删除的用户
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.active(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // 用户不存在
		}
		return nil, err
	}
	return &user, nil
}

// 邮箱是否已被占用, 包括已软删除的用户
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// 更新未删除用户的指定字段
func (r *UserRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.active(ctx).Model(&model.User{}).Where("id = ?", id).Updates(fields).Error
}

// 软删除: 只设置 deleted_at, 记录保留
func (r *UserRepository) SoftDelete(ctx context.Context, id uint, at time.Time) (bool, error) {
	res := r.active(ctx).Model(&model.User{}).Where("id = ?", id).Update("deleted_at", at)
	return res.RowsAffected > 0, res.Error
}

// 用户表总行数, 包括已软删除的记录
func (r *UserRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Count(&count).Error
	return count, err
}
