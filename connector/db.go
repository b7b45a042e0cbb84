package connector

import (
	"context"
	"database/sql"
	"database/sql/driver"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/Hebilicious/prisma/internal/errs"
	"github.com/Hebilicious/prisma/models"
)

type DBOption func(db *DB)

// DB 持有连接池, 每个操作都会单独获取一个连接
type DB struct {
	core
	db     *sql.DB
	logger *zap.Logger
}

// OpenDB 包装一个已经打开的 *sql.DB
func OpenDB(db *sql.DB, dialect Dialect, opts ...DBOption) (*DB, error) {
	newDB := &DB{
		core: core{
			dialect: dialect,
		},
		db:     db,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(newDB)
	}
	return newDB, nil
}

func MustOpenDB(db *sql.DB, dialect Dialect, opts ...DBOption) *DB {
	newDB, err := OpenDB(db, dialect, opts...)
	if err != nil {
		panic(err)
	}
	return newDB
}

func DBWithMiddlewares(mdls ...Middleware) DBOption {
	return func(db *DB) {
		db.mdls = mdls
	}
}

// DBWithConnectionLimit 限制连接池的最大连接数
func DBWithConnectionLimit(limit int) DBOption {
	return func(db *DB) {
		db.db.SetMaxOpenConns(limit)
		db.db.SetMaxIdleConns(limit)
	}
}

func DBWithLogger(logger *zap.Logger) DBOption {
	return func(db *DB) {
		db.logger = logger
	}
}

func (db *DB) acquire(ctx context.Context) (*sql.Conn, error) {
	conn, err := db.db.Conn(ctx)
	if err != nil {
		return nil, errs.NewErrConnectorCreation(err)
	}
	return conn, nil
}

// discard 让连接池关闭这个连接, 而不是复用它
func (db *DB) discard(conn *sql.Conn) {
	err := conn.Raw(func(any) error {
		return driver.ErrBadConn
	})
	if err != nil && !errors.Is(err, driver.ErrBadConn) {
		db.logger.Warn("丢弃连接失败", zap.Error(err))
	}
}

func (db *DB) release(conn *sql.Conn) {
	if err := conn.Close(); err != nil {
		db.logger.Warn("归还连接失败", zap.Error(err))
	}
}

func (db *DB) Write(ctx context.Context, q WriteQuery) (models.RecordID, error) {
	conn, err := db.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer db.release(conn)
	return db.write(ctx, conn, DefaultSessionName, q)
}

func (db *DB) Filter(ctx context.Context, q QueryBuilder, idents []models.TypeIdentifier) ([]models.Node, error) {
	conn, err := db.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer db.release(conn)
	return db.filter(ctx, conn, DefaultSessionName, q, idents)
}

// Truncate 在一个事务里清空所有表
func (db *DB) Truncate(ctx context.Context, s *models.Schema) error {
	return db.WithTransaction(ctx, "truncate", func(ctx context.Context, tx Session) error {
		return tx.Truncate(ctx, s)
	})
}

func (db *DB) WithTransaction(ctx context.Context, name string,
	fn func(ctx context.Context, tx Session) error) (err error) {
	conn, err := db.acquire(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if errors.Is(err, errConstraintsNotRestored) {
			db.discard(conn)
			return
		}
		db.release(conn)
	}()

	sqlTx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return errs.NewErrBackendIO(err, "开启事务")
	}
	tx := &Tx{core: db.core, tx: sqlTx, name: name}

	panicked := true
	defer func() {
		if panicked || err != nil {
			rollbackErr := tx.RollbackIfNotCommit()
			if rollbackErr != nil {
				db.logger.Warn("回滚事务失败", zap.String("name", name), zap.Error(rollbackErr))
			}
			err = errs.NewErrFailedToRollbackTx(err, rollbackErr, panicked)
		} else {
			err = tx.commit()
		}
	}()
	err = fn(ctx, tx)
	// 执行过程中没有发生 panic, 则标志位置为 false
	panicked = false
	return err
}

func (db *DB) Close() error {
	return db.db.Close()
}
