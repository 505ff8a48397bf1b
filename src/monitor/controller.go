package monitor

import (
	"fmt"
	"time"

	"github.com/commitment-parties/agent/src/utils/config"
	"github.com/commitment-parties/agent/src/utils/model"
	"github.com/commitment-parties/agent/src/utils/monitoring"
	"github.com/commitment-parties/agent/src/utils/solana"
	"github.com/commitment-parties/agent/src/utils/task"
	"github.com/commitment-parties/agent/src/verifier"

	"gorm.io/gorm"
)

// Verification pipeline for one goal family:
// poller -> checker -> store
type Controller struct {
	*task.Task
}

func familyInterval(config *config.Config, family model.GoalFamily) (interval time.Duration, err error) {
	switch family {
	case model.GoalFamilyTrading:
		interval = config.Monitor.TradingInterval
	case model.GoalFamilyBalance:
		interval = config.Monitor.BalanceInterval
	case model.GoalFamilyCheckin:
		interval = config.Monitor.CheckinInterval
	default:
		err = fmt.Errorf("unknown goal family %s", family)
	}
	return
}

func NewController(config *config.Config, family model.GoalFamily, db *gorm.DB, gateway *solana.Gateway, verifiers *verifier.Registry, monitor monitoring.Monitor) (self *Controller, err error) {
	self = new(Controller)
	self.Task = task.NewTask(config, "monitor-"+string(family))

	interval, err := familyInterval(config, family)
	if err != nil {
		return
	}

	// Emits the next unrecorded day per participant
	poller := NewPoller(config, family, interval).
		WithDB(db).
		WithMonitor(monitor)

	// Verifies and records on-chain
	checker := NewChecker(config).
		WithGateway(gateway).
		WithVerifiers(verifiers).
		WithInputChannel(poller.Output).
		WithMonitor(monitor)

	// Persists verdicts
	store := NewStore(config).
		WithDB(db).
		WithInputChannel(checker.Output).
		WithMonitor(monitor)

	// Setup everything, will start upon calling Controller.Start()
	self.Task.
		WithSubtask(store.Task).
		WithSubtask(checker.Task).
		WithSubtask(poller.Task)
	return
}
