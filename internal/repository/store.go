package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store 聚合所有存储库, 共享同一个连接或事务
type Store struct {
	db *gorm.DB

	Users    *UserRepository
	Boards   *BoardRepository
	Members  *MemberRepository
	Lists    *ListRepository
	Cards    *CardRepository
	Comments *CommentRepository
	Cascade  *Cascade
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:       db,
		Users:    NewUserRepository(db),
		Boards:   NewBoardRepository(db),
		Members:  NewMemberRepository(db),
		Lists:    NewListRepository(db),
		Cards:    NewCardRepository(db),
		Comments: NewCommentRepository(db),
		Cascade:  NewCascade(db),
	}
}

// 在单个数据库事务中执行fn, fn返回错误时整体回滚
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

func (s *Store) DB() *gorm.DB {
	return s.db
}
