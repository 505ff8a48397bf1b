package monitoring

import (
	"github.com/commitment-parties/agent/src/utils/monitoring/report"
	"github.com/commitment-parties/agent/src/utils/task"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

type Monitor interface {
	GetReport() *report.Report
	GetPrometheusCollector() prometheus.Collector
	IsOK() bool
	OnGetState(c *gin.Context)
	OnGetHealth(c *gin.Context)

	GetTask() *task.Task
}
