package testutil

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/alexanderramin/studyslots/internal/db"
)

// FailingUoW is a unit of work whose transactions fail the FailOn-th write
// with Err. Writes are numbered from 1 within each transaction; reads pass
// through. Commit and rollback behave exactly as in db.SQLiteUnitOfWork.
type FailingUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error

	writes atomic.Int32
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn db.TxFunc) error {
	wrap := func(tx *sql.Tx) db.DBTX {
		return &failingWriter{DBTX: tx, uow: u}
	}
	return db.RunTx(ctx, u.DB, wrap, fn)
}

// Writes returns the total number of writes attempted across all transactions.
func (u *FailingUoW) Writes() int {
	return int(u.writes.Load())
}

type failingWriter struct {
	db.DBTX
	uow *FailingUoW
	n   int32
}

func (f *failingWriter) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.uow.writes.Add(1)
	f.n++
	if f.n == f.uow.FailOn {
		return nil, f.uow.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
