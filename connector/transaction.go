package connector

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Hebilicious/prisma/internal/errs"
	"github.com/Hebilicious/prisma/models"
)

// Tx 绑定在一个连接上, 只能在 WithTransaction 的回调里使用
type Tx struct {
	core
	tx   *sql.Tx
	name string
}

func (t *Tx) Write(ctx context.Context, q WriteQuery) (models.RecordID, error) {
	return t.write(ctx, t.tx, t.name, q)
}

func (t *Tx) Filter(ctx context.Context, q QueryBuilder, idents []models.TypeIdentifier) ([]models.Node, error) {
	return t.filter(ctx, t.tx, t.name, q, idents)
}

func (t *Tx) Truncate(ctx context.Context, s *models.Schema) error {
	return t.truncate(ctx, t.tx, t.name, s)
}

func (t *Tx) commit() error {
	if err := t.tx.Commit(); err != nil {
		return errs.NewErrBackendIO(err, "提交事务")
	}
	return nil
}

// RollbackIfNotCommit 尝试回滚, 如果此时事务已经提交了, 或者被回滚掉了, 那么
// 就会得到 sql.ErrTxDone 错误, 这时候忽略这个错误就好
func (t *Tx) RollbackIfNotCommit() error {
	err := t.tx.Rollback()
	if !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}
