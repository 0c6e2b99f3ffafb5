package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis command failures by command name.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "karmafeed_redis_errors_total",
	Help: "Total number of Redis command errors",
}, []string{"command"})

// LikeToggles counts like toggle operations by target type and result state.
var LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "karmafeed_like_toggles_total",
	Help: "Total number of like toggle operations",
}, []string{"target", "result"})

// LeaderboardQueries counts leaderboard reads by cache outcome.
var LeaderboardQueries = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "karmafeed_leaderboard_queries_total",
	Help: "Total number of leaderboard queries",
}, []string{"source"})

// TreeIntegrityWarnings counts comment rows that had to be degraded to roots
// because their parent reference was inconsistent.
var TreeIntegrityWarnings = promauto.NewCounter(prometheus.CounterOpts{
	Name: "karmafeed_comment_tree_integrity_warnings_total",
	Help: "Total number of comments attached as roots due to unresolvable parents",
})

// InitMetrics creates the Prometheus middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the HTTP metrics collection handler.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	return p.Middleware
}
