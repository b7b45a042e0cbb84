package opentelemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Hebilicious/prisma/connector"
)

const instrumentationName = "github.com/Hebilicious/prisma/connector/middleware/opentelemetry"

type MiddlewareBuilder struct {
	Tracer trace.Tracer
}

func (m MiddlewareBuilder) Build() connector.Middleware {
	if m.Tracer == nil {
		m.Tracer = otel.GetTracerProvider().Tracer(instrumentationName)
	}
	return func(next connector.Handler) connector.Handler {
		return func(ctx context.Context, qc *connector.QueryContext) *connector.QueryResult {
			// span name: SELECT-pool
			spanCtx, span := m.Tracer.Start(ctx, fmt.Sprintf("%s-%s", qc.Type, qc.Name))
			defer span.End()

			// 不记录参数
			span.SetAttributes(
				attribute.String("sql", qc.Query.SQL),
				attribute.String("session", qc.Name),
				attribute.String("component", "connector"),
			)

			res := next(spanCtx, qc)
			if res.Err != nil {
				span.RecordError(res.Err)
				span.SetStatus(codes.Error, res.Err.Error())
			}
			return res
		}
	}
}
