package distribute

import (
	"github.com/commitment-parties/agent/src/utils/config"
	"github.com/commitment-parties/agent/src/utils/monitoring"
	"github.com/commitment-parties/agent/src/utils/publisher"
	"github.com/commitment-parties/agent/src/utils/solana"
	"github.com/commitment-parties/agent/src/utils/task"

	"gorm.io/gorm"
)

// Settlement pipeline: poller -> settler
type Controller struct {
	*task.Task
}

func NewController(config *config.Config, db *gorm.DB, gateway *solana.Gateway, monitor monitoring.Monitor) (self *Controller, err error) {
	self = new(Controller)
	self.Task = task.NewTask(config, "distributor-controller")

	// Claims pools due for settlement
	poller := NewPoller(config).
		WithDB(db).
		WithMonitor(monitor)

	// Computes and executes payouts
	settler := NewSettler(config).
		WithDB(db).
		WithGateway(gateway).
		WithInputChannel(poller.Output).
		WithMonitor(monitor)

	self.Task.
		WithSubtask(settler.Task).
		WithSubtask(poller.Task)

	// Lifecycle events for the REST layer
	if config.Redis.Enabled {
		events := publisher.NewRedisPublisher[*publisher.PoolEvent](config, "distributor-publisher").
			WithInputChannel(settler.Output).
			WithMonitor(monitor)
		self.Task.WithSubtask(events.Task)
	}

	return
}
