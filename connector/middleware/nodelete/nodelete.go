package nodelete

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/Hebilicious/prisma/connector"
)

var ErrMissingWhere = errors.New("nodelete: 禁止执行没有 WHERE 的语句")

// MiddlewareBuilder UPDATE 和 DELETE 必须带 WHERE
// TRUNCATE 是显式的清空操作, 不受限制
type MiddlewareBuilder struct {
}

func NewMiddlewareBuilder() *MiddlewareBuilder {
	return &MiddlewareBuilder{}
}

func (m MiddlewareBuilder) Build() connector.Middleware {
	return func(next connector.Handler) connector.Handler {
		return func(ctx context.Context, qc *connector.QueryContext) *connector.QueryResult {
			if qc.Type != "UPDATE" && qc.Type != "DELETE" {
				return next(ctx, qc)
			}
			if !hasWhere(qc.Query.SQL) {
				return &connector.QueryResult{
					Err: errors.Wrapf(ErrMissingWhere, "%s", qc.Type),
				}
			}
			return next(ctx, qc)
		}
	}
}

// hasWhere 按空白切词, 换行和制表符之后的 WHERE 也算
func hasWhere(sql string) bool {
	for _, w := range strings.Fields(sql) {
		if strings.EqualFold(w, "WHERE") {
			return true
		}
	}
	return false
}
