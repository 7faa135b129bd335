package service

import (
	"context"
	"errors"
	"go-task-board/internal/apperr"
	"go-task-board/internal/metrics"
	"go-task-board/internal/model"
	"go-task-board/internal/repository"
	"go-task-board/internal/validation"
	"go-task-board/pkg/logger"
	"go-task-board/pkg/utils"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// 处理用户注册、登录和账户生命周期
type UserService struct {
	store *repository.Store
	now   func() time.Time
}

func NewUserService(store *repository.Store) *UserService {
	return &UserService{
		store: store,
		now:   time.Now,
	}
}

// 用户注册请求
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email,max=255"`
	Password    string `json:"password" validate:"required,strongpassword"`
	Name        string `json:"name" validate:"notblank,max=50"`
	Nickname    string `json:"nickname" validate:"notblank,max=50"`
	PhoneNumber string `json:"phone_number" validate:"required,phone"`
}

// 用户登陆请求
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// 资料更新, nil字段保持不变
type UpdateProfileRequest struct {
	Name        *string `json:"name" validate:"omitempty,notblank,max=50"`
	Nickname    *string `json:"nickname" validate:"omitempty,notblank,max=50"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,phone"`
}

// 注册新用户. 邮箱检查与插入在同一事务内, 并由唯一索引兜底
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	if err := validation.Struct(req); err != nil {
		metrics.Registration("invalid")
		return nil, err
	}

	// 加密密码
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		metrics.Registration("invalid")
		return nil, &apperr.Error{
			Kind:    apperr.KindInvalidInput,
			Message: "request validation failed",
			Details: map[string]string{"password": "password is too long"},
			Err:     err,
		}
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindTransactionFailed, "failed to hash password", err)
	}

	user := &model.User{
		Email:       req.Email,
		Password:    string(hashedPassword),
		Name:        strings.TrimSpace(req.Name),
		Nickname:    strings.TrimSpace(req.Nickname),
		PhoneNumber: req.PhoneNumber,
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		// 检查邮箱是否已存在 (包括已注销的账户)
		exists, err := tx.Users.ExistsByEmail(ctx, req.Email)
		if err != nil {
			return err
		}
		if exists {
			return apperr.ErrDuplicateEmail
		}
		return tx.Users.Create(ctx, user)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, apperr.ErrDuplicateEmail) {
		metrics.Registration("duplicate")
		logger.Named("user").Info("Registration rejected: duplicate email", zap.String("email", req.Email))
		return nil, apperr.New(apperr.KindDuplicateEmail, "email already exists")
	}
	if err != nil {
		return nil, storeError("failed to register user", err)
	}

	metrics.Registration("created")
	logger.Named("user").Info("User registered", zap.Uint("userID", user.ID))
	return user, nil
}

// 用户登陆, 返回JWT令牌
func (s *UserService) Login(ctx context.Context, req LoginRequest) (string, *model.User, error) {
	if err := validation.Struct(req); err != nil {
		return "", nil, err
	}

	user, err := s.store.Users.FindByEmail(ctx, req.Email)
	if err != nil {
		return "", nil, storeError("failed to look up user", err)
	}
	invalid := apperr.New(apperr.KindUnauthorized, "invalid email or password")
	if user == nil {
		return "", nil, invalid
	}

	// 验证密码
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", nil, invalid
	}

	// 生成JWT令牌
	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// 查找未注销的用户
func (s *UserService) FindByID(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.store.Users.FindByID(ctx, id)
	if err != nil {
		return nil, storeError("failed to look up user", err)
	}
	if user == nil {
		return nil, apperr.NotFound("user")
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id uint, req UpdateProfileRequest) (*model.User, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Nickname != nil {
		fields["nickname"] = strings.TrimSpace(*req.Nickname)
	}
	if req.PhoneNumber != nil {
		fields["phone_number"] = *req.PhoneNumber
	}

	var updated *model.User
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		user, err := tx.Users.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return apperr.NotFound("user")
		}
		if len(fields) > 0 {
			if err := tx.Users.Update(ctx, id, fields); err != nil {
				return err
			}
		}
		updated, err = tx.Users.FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, storeError("failed to update user", err)
	}
	return updated, nil
}

// 注销账户: 只设置 deleted_at, 成员关系保留但不再生效
func (s *UserService) SoftDelete(ctx context.Context, id uint) error {
	ok, err := s.store.Users.SoftDelete(ctx, id, s.now())
	if err != nil {
		return storeError("failed to delete user", err)
	}
	if !ok {
		return apperr.NotFound("user")
	}
	logger.Named("user").Info("User soft-deleted", zap.Uint("userID", id))
	return nil
}
