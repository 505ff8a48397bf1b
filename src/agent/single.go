package agent

import (
	"github.com/commitment-parties/agent/src/activate"
	"github.com/commitment-parties/agent/src/distribute"
	"github.com/commitment-parties/agent/src/monitor"
	"github.com/commitment-parties/agent/src/utils/config"
	"github.com/commitment-parties/agent/src/utils/model"
	"github.com/commitment-parties/agent/src/utils/monitoring"
	monitor_agent "github.com/commitment-parties/agent/src/utils/monitoring/agent"
	"github.com/commitment-parties/agent/src/utils/solana"
	"github.com/commitment-parties/agent/src/utils/task"
	"github.com/commitment-parties/agent/src/verifier"
)

// Single-loop controllers for targeted ops runs. Same wiring as the full
// agent, minus the loops that aren't asked for.

func NewMonitorController(config *config.Config) (self *Controller, err error) {
	self = new(Controller)
	self.Task = task.NewTask(config, "monitor-only")

	db, err := model.NewConnection(self.Ctx, config, "monitor")
	if err != nil {
		return
	}

	monitorCounters := monitor_agent.NewMonitor()
	server := monitoring.NewServer(config).
		WithMonitor(monitorCounters)

	gateway, err := solana.NewGateway(config)
	if err != nil {
		return
	}
	gateway.WithMonitor(monitorCounters)

	verifiers := verifier.NewRegistry().
		Register(verifier.NewTradingVerifier(config, gateway)).
		Register(verifier.NewBalanceVerifier(config, gateway)).
		Register(verifier.NewCheckinVerifier(config, db))

	families := []model.GoalFamily{
		model.GoalFamilyTrading,
		model.GoalFamilyBalance,
		model.GoalFamilyCheckin,
	}
	for _, family := range families {
		var monitorController *monitor.Controller
		monitorController, err = monitor.NewController(config, family, db, gateway, verifiers, monitorCounters)
		if err != nil {
			return
		}
		self.Task.WithSubtask(monitorController.Task)
	}

	self.Task.
		WithSubtask(monitorCounters.Task).
		WithSubtask(server.Task)
	return
}

func NewActivatorController(config *config.Config) (self *Controller, err error) {
	self = new(Controller)
	self.Task = task.NewTask(config, "activator-only")

	db, err := model.NewConnection(self.Ctx, config, "activator")
	if err != nil {
		return
	}

	monitorCounters := monitor_agent.NewMonitor()
	server := monitoring.NewServer(config).
		WithMonitor(monitorCounters)

	activatorController, err := activate.NewController(config, db, monitorCounters)
	if err != nil {
		return
	}

	self.Task.
		WithSubtask(activatorController.Task).
		WithSubtask(monitorCounters.Task).
		WithSubtask(server.Task)
	return
}

func NewDistributorController(config *config.Config) (self *Controller, err error) {
	self = new(Controller)
	self.Task = task.NewTask(config, "distributor-only")

	db, err := model.NewConnection(self.Ctx, config, "distributor")
	if err != nil {
		return
	}

	monitorCounters := monitor_agent.NewMonitor()
	server := monitoring.NewServer(config).
		WithMonitor(monitorCounters)

	gateway, err := solana.NewGateway(config)
	if err != nil {
		return
	}
	gateway.WithMonitor(monitorCounters)

	distributorController, err := distribute.NewController(config, db, gateway, monitorCounters)
	if err != nil {
		return
	}

	self.Task.
		WithSubtask(distributorController.Task).
		WithSubtask(monitorCounters.Task).
		WithSubtask(server.Task)
	return
}
