package slowquery

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Hebilicious/prisma/connector"
)

type MiddlewareBuilder struct {
	logger *zap.Logger

	// 超过 threshold 的语句记录为慢查询
	threshold time.Duration
}

func NewMiddlewareBuilder(threshold time.Duration, logger *zap.Logger) *MiddlewareBuilder {
	return &MiddlewareBuilder{
		logger:    logger,
		threshold: threshold,
	}
}

func (m MiddlewareBuilder) Build() connector.Middleware {
	return func(next connector.Handler) connector.Handler {
		return func(ctx context.Context, qc *connector.QueryContext) *connector.QueryResult {
			startTime := time.Now()
			defer func() {
				duration := time.Since(startTime)
				// 不是慢查询
				if duration <= m.threshold {
					return
				}
				m.logger.Warn("慢查询",
					zap.String("type", qc.Type),
					zap.String("name", qc.Name),
					zap.String("sql", qc.Query.SQL),
					zap.Duration("duration", duration))
			}()
			return next(ctx, qc)
		}
	}
}
