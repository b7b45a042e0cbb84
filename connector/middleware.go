package connector

import (
	"context"
)

type QueryContext struct {
	// Type 声明语句类型 即 SELECT, INSERT, UPDATE, DELETE 和 TRUNCATE
	Type string

	// Name 是事务名, 不在事务里的时候是 DefaultSessionName
	Name string

	// Query 中间件只能读, 不能篡改
	Query *Query
}

type Middleware func(next Handler) Handler

type Handler func(ctx context.Context, qc *QueryContext) *QueryResult

type QueryResult struct {
	// Result 在不同的语句里面, 类型是不同的
	// SELECT 是 []models.Node
	// INSERT 是 models.RecordID, 可能为 nil
	// 其他情况下为 nil
	Result any
	Err    error
}
