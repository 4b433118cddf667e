package middleware

import (
	"strconv"
	"time"

	"english-placement/internal/logger"
	"english-placement/internal/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"
)

// RequestLogger logs every HTTP request once its final status is known
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		handleChainError(c, c.Next())

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get(fiber.HeaderUserAgent)),
		)
		return nil
	}
}

// Metrics records request count and latency per route
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		handleChainError(c, c.Next())

		// Route path keeps label cardinality bounded
		endpoint := c.Route().Path
		metrics.RequestCounter.WithLabelValues(
			c.Method(),
			endpoint,
			strconv.Itoa(c.Response().StatusCode()),
		).Inc()
		metrics.RequestDuration.WithLabelValues(
			c.Method(),
			endpoint,
		).Observe(time.Since(start).Seconds())
		return nil
	}
}

// PrometheusHandler serves the default registry in the exposition format
func PrometheusHandler() fiber.Handler {
	h := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c *fiber.Ctx) error {
		h(c.Context())
		return nil
	}
}
