package repository

import (
	"context"

	"github.com/alexanderramin/studyslots/internal/db"
)

// SQLiteStoreTx opens one database transaction per WithinStore call and hands
// the callback a repo bound to it.
type SQLiteStoreTx struct {
	uow db.UnitOfWork
}

// NewSQLiteStoreTx creates a StoreTx on top of a UnitOfWork.
func NewSQLiteStoreTx(uow db.UnitOfWork) *SQLiteStoreTx {
	return &SQLiteStoreTx{uow: uow}
}

func (s *SQLiteStoreTx) WithinStore(ctx context.Context, fn func(ctx context.Context, store TaskStore) error) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, NewSQLiteTaskRepo(tx))
	})
}
