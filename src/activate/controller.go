package activate

import (
	"github.com/commitment-parties/agent/src/utils/config"
	"github.com/commitment-parties/agent/src/utils/monitoring"
	"github.com/commitment-parties/agent/src/utils/publisher"
	"github.com/commitment-parties/agent/src/utils/task"

	"gorm.io/gorm"
)

type Controller struct {
	*task.Task

	Activator *Activator
}

func NewController(config *config.Config, db *gorm.DB, monitor monitoring.Monitor) (self *Controller, err error) {
	self = new(Controller)
	self.Task = task.NewTask(config, "activator-controller")

	self.Activator = NewActivator(config).
		WithDB(db).
		WithMonitor(monitor)

	self.Task.WithSubtask(self.Activator.Task)

	// Lifecycle events for the REST layer
	if config.Redis.Enabled {
		events := publisher.NewRedisPublisher[*publisher.PoolEvent](config, "activator-publisher").
			WithInputChannel(self.Activator.Output).
			WithMonitor(monitor)
		self.Task.WithSubtask(events.Task)
	}

	return
}
