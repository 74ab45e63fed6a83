package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dingdong-api/core/logger"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dingdong_http_requests_total",
		Help: "Total HTTP requests by method, path and status.",
	}, []string{"method", "path", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dingdong_http_request_duration_seconds",
		Help:    "HTTP request latency by method and path.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
)

// StatsSource reports row counts for the domain gauges.
type StatsSource interface {
	Stats(ctx context.Context) (users int64, workspaces int64, projects int64, reservations int64, err error)
}

// StatsCollector exposes live table counts as gauges on each scrape.
type StatsCollector struct {
	source StatsSource

	usersDesc        *prometheus.Desc
	workspacesDesc   *prometheus.Desc
	projectsDesc     *prometheus.Desc
	reservationsDesc *prometheus.Desc
}

func NewStatsCollector(source StatsSource) *StatsCollector {
	return &StatsCollector{
		source: source,
		usersDesc: prometheus.NewDesc("dingdong_users_total",
			"Number of registered users.", nil, nil),
		workspacesDesc: prometheus.NewDesc("dingdong_workspaces_total",
			"Number of active workspaces.", nil, nil),
		projectsDesc: prometheus.NewDesc("dingdong_projects_total",
			"Number of active experiment projects.", nil, nil),
		reservationsDesc: prometheus.NewDesc("dingdong_reservations_total",
			"Number of active participant reservations.", nil, nil),
	}
}

func (c *StatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.usersDesc
	ch <- c.workspacesDesc
	ch <- c.projectsDesc
	ch <- c.reservationsDesc
}

func (c *StatsCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	users, workspaces, projects, reservations, err := c.source.Stats(ctx)
	if err != nil {
		logger.Error("StatsCollector:Collect", err)
		return
	}

	ch <- prometheus.MustNewConstMetric(c.usersDesc, prometheus.GaugeValue, float64(users))
	ch <- prometheus.MustNewConstMetric(c.workspacesDesc, prometheus.GaugeValue, float64(workspaces))
	ch <- prometheus.MustNewConstMetric(c.projectsDesc, prometheus.GaugeValue, float64(projects))
	ch <- prometheus.MustNewConstMetric(c.reservationsDesc, prometheus.GaugeValue, float64(reservations))
}

// Middleware records request counts and latency per route.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}
			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			requestsTotal.WithLabelValues(c.Request().Method, path, strconv.Itoa(status)).Inc()
			requestDuration.WithLabelValues(c.Request().Method, path).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Handler serves the /metrics endpoint.
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}
