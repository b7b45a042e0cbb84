package prometheus

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Hebilicious/prisma/connector"
)

type MiddlewareBuilder struct {
	Namespace string
	Subsystem string
	Name      string
	Help      string
	// Registerer 为空时注册到默认的 Registerer
	Registerer prometheus.Registerer
}

func (m MiddlewareBuilder) Build() connector.Middleware {
	vector := prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Name:      m.Name,
		Subsystem: m.Subsystem,
		Namespace: m.Namespace,
		Help:      m.Help,

		// 分位数: 允许的误差
		Objectives: map[float64]float64{
			0.5:   0.01,
			0.75:  0.01,
			0.90:  0.01,
			0.99:  0.001,
			0.999: 0.0001,
		},
	}, []string{
		"type", // 语句类型
		"name", // 事务名
	})

	reg := m.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(vector)

	return func(next connector.Handler) connector.Handler {
		return func(ctx context.Context, qc *connector.QueryContext) *connector.QueryResult {
			startTime := time.Now()
			defer func() {
				duration := time.Since(startTime).Microseconds()
				// 记录执行时间
				vector.WithLabelValues(qc.Type, qc.Name).Observe(float64(duration))
			}()
			return next(ctx, qc)
		}
	}
}
