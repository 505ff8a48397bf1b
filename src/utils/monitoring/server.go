package monitoring

import (
	"context"
	"errors"
	"net/http"
	"runtime"

	"github.com/commitment-parties/agent/src/utils/config"
	"github.com/commitment-parties/agent/src/utils/task"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// REST server exposing the state of the agent
type Server struct {
	*task.Task

	httpServer *http.Server
	Router     *gin.Engine

	monitor Monitor
}

func NewServer(config *config.Config) (self *Server) {
	self = new(Server)

	self.Task = task.NewTask(config, "rest-server").
		WithSubtaskFunc(self.run).
		WithOnStop(self.stop)

	if !config.IsDevelopment {
		gin.SetMode(gin.ReleaseMode)
	}

	self.Router = gin.New()
	self.httpServer = &http.Server{
		Addr:    config.RESTListenAddress,
		Handler: self.Router,
	}

	if config.Profiler.Enabled {
		pprof.Register(self.Router, "debug/pprof")
		runtime.SetBlockProfileRate(config.Profiler.BlockProfileRate)
	}

	return
}

func (self *Server) WithMonitor(monitor Monitor) *Server {
	self.monitor = monitor

	registry := prometheus.NewRegistry()
	registry.MustRegister(monitor.GetPrometheusCollector())

	v1 := self.Router.Group("v1")
	{
		v1.GET("state", monitor.OnGetState)
		v1.GET("health", monitor.OnGetHealth)
		v1.GET("metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	}
	return self
}

func (self *Server) run() (err error) {
	self.Log.WithField("addr", self.httpServer.Addr).Info("Started REST server")
	err = self.httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		self.Log.WithError(err).Error("Failed to start REST server")
		return
	}
	return nil
}

func (self *Server) stop() {
	ctx, cancel := context.WithTimeout(context.Background(), self.Config.StopTimeout)
	defer cancel()

	err := self.httpServer.Shutdown(ctx)
	if err != nil {
		self.Log.WithError(err).Error("Failed to gracefully shutdown REST server")
		return
	}
}
