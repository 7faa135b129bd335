package service

import (
	"context"
	"errors"
	"go-task-board/internal/apperr"
	"go-task-board/internal/repository"
	"go-task-board/pkg/logger"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// 存储层错误统一转换为 transaction_failed, 已是 apperr 的错误原样返回
func storeError(msg string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}
	logger.Named("store").Error(msg, zap.Error(err))
	return apperr.Wrap(apperr.KindTransactionFailed, msg, err)
}

// cascade 返回的 ErrRecordNotFound 转换为指定实体的 not_found
func notFoundOr(what string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(what)
	}
	return err
}

// 校验请求者是否为看板的有效成员
func requireMember(ctx context.Context, store *repository.Store, boardID, userID uint) error {
	ok, err := store.Members.IsMember(ctx, boardID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.New(apperr.KindForbidden, "you are not a member of this board")
	}
	return nil
}

func validTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", apperr.ErrInvalidTitle
	}
	if len([]rune(title)) > 100 {
		return "", apperr.New(apperr.KindInvalidTitle, "title must be at most 100 characters")
	}
	return title, nil
}

func pageParams(limit, offset int) (int, int) {
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
