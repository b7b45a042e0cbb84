package connector

import (
	"context"

	"github.com/Hebilicious/prisma/models"
)

var (
	_ Connector = &DB{}
	_ Session   = &Tx{}
)

//go:generate mockgen -source=connector.go -destination=mocks/connector.mock.go -package=mocks

// Session 是每个存储后端都要实现的执行契约
type Session interface {
	// Write 执行 INSERT, UPDATE 或 DELETE
	// 只有 INSERT 会返回最后插入的记录的 id, 后端没有报告时返回 nil
	Write(ctx context.Context, q WriteQuery) (models.RecordID, error)
	// Filter 执行查询, idents 和查询的列一一对应
	Filter(ctx context.Context, q QueryBuilder, idents []models.TypeIdentifier) ([]models.Node, error)
	// Truncate 在约束延迟的前提下清空 schema 的所有表
	Truncate(ctx context.Context, s *models.Schema) error
}

// Connector 调用方只持有这个接口, 不持有具体的后端
type Connector interface {
	Session
	// WithTransaction fn 返回 nil 时提交, 返回错误或者 panic 时回滚
	// 不支持嵌套事务
	WithTransaction(ctx context.Context, name string, fn func(ctx context.Context, tx Session) error) error
	Dialect() Dialect
	Close() error
}
