package http

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dukapos/pos-api/internal/domain"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pos_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	saleOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_sale_operations_total",
		Help: "Sale write operations by type and outcome.",
	}, []string{"operation", "outcome"})
)

// MetricsMiddleware records request counts and latency per route.
func MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		route := c.Route().Path
		method := c.Method()
		status := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		return err
	}
}

// observeSaleOutcome classifies a sale write result for the operations
// counter. Stock and serialization conflicts are tracked separately because
// they are the retryable class.
func observeSaleOutcome(operation string, err error) {
	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrInsufficientStock):
		outcome = "insufficient_stock"
	case errors.Is(err, domain.ErrConflict):
		outcome = "conflict"
	case errors.Is(err, domain.ErrPriceBelowFloor):
		outcome = "price_below_floor"
	default:
		outcome = "error"
	}
	saleOutcomes.WithLabelValues(operation, outcome).Inc()
}
