package middleware

import (
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shorturl/internal/metrics"
	"go.uber.org/zap"
)

// RequestLogger logs every request once it completes and records its duration.
// It reads the request id set by RequestMeta, so it must run after it.
func RequestLogger(logger *zap.Logger, m *metrics.Metrics) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		start := time.Now()

		next(ctx)

		elapsed := time.Since(start)
		status := ctx.Status()
		route := ctx.Operation().Path
		meta := RequestMetaFromContext(ctx.Context())

		m.ObserveRequest(ctx.Method(), route, strconv.Itoa(status), elapsed.Seconds())

		fields := []zap.Field{
			zap.String("method", ctx.Method()),
			zap.String("path", ctx.URL().Path),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Duration("duration", elapsed),
			zap.String("client_ip", meta.ClientIP),
			zap.String("request_id", meta.RequestID),
		}

		if status >= 500 {
			logger.Error("request", fields...)

			return
		}

		logger.Info("request", fields...)
	}
}
