package querylog

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Hebilicious/prisma/connector"
)

type MiddlewareBuilder struct {
	logger *zap.Logger
	// SQL参数存在敏感数据不应该被打印出来, 默认不打印
	logArgs bool
}

func NewMiddlewareBuilder(logger *zap.Logger) *MiddlewareBuilder {
	return &MiddlewareBuilder{
		logger: logger,
	}
}

// LogArgs 打印参数, 只建议在调试的时候打开
func (m *MiddlewareBuilder) LogArgs() *MiddlewareBuilder {
	m.logArgs = true
	return m
}

func (m *MiddlewareBuilder) Build() connector.Middleware {
	return func(next connector.Handler) connector.Handler {
		return func(ctx context.Context, qc *connector.QueryContext) *connector.QueryResult {
			fields := []zap.Field{
				zap.String("type", qc.Type),
				zap.String("name", qc.Name),
				zap.String("sql", qc.Query.SQL),
			}
			if m.logArgs {
				args := make([]string, 0, len(qc.Query.Args))
				for _, arg := range qc.Query.Args {
					args = append(args, arg.String())
				}
				fields = append(fields, zap.Strings("args", args))
			}
			m.logger.Debug("执行语句", fields...)

			startTime := time.Now()
			res := next(ctx, qc)
			done := []zap.Field{
				zap.String("type", qc.Type),
				zap.String("name", qc.Name),
				zap.Duration("duration", time.Since(startTime)),
			}
			if res.Err != nil {
				m.logger.Debug("语句执行失败", append(done, zap.Error(res.Err))...)
				return res
			}
			m.logger.Debug("语句执行完成", done...)
			return res
		}
	}
}
