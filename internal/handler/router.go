package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Stefodan21/Order-fullfillment-Project/pkg/metrics"
)

// NewRouter builds the gin engine with logging, recovery, and metrics
// middleware, the fulfillment routes, and the Prometheus scrape endpoint.
func NewRouter(h *Handler, log *zap.Logger, m *metrics.Collector) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(Instrument(m))

	h.Register(r)
	r.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	return r
}
