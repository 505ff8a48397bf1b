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

// Runs every loop of the agent in one process. Each loop is an independent
// subtask, one loop going down doesn't take the others with it.
type Controller struct {
	*task.Task
}

func NewController(config *config.Config) (self *Controller, err error) {
	self = new(Controller)
	self.Task = task.NewTask(config, "agent")

	// SQL database
	db, err := model.NewConnection(self.Ctx, config, "agent")
	if err != nil {
		return
	}

	// Monitoring
	monitorCounters := monitor_agent.NewMonitor()
	server := monitoring.NewServer(config).
		WithMonitor(monitorCounters)

	// Chain access
	gateway, err := solana.NewGateway(config)
	if err != nil {
		return
	}
	gateway.WithMonitor(monitorCounters)

	// Goal verifiers
	verifiers := verifier.NewRegistry().
		Register(verifier.NewTradingVerifier(config, gateway)).
		Register(verifier.NewBalanceVerifier(config, gateway)).
		Register(verifier.NewCheckinVerifier(config, db))

	// One verification pipeline per goal family
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

	// Starts pending pools
	activatorController, err := activate.NewController(config, db, monitorCounters)
	if err != nil {
		return
	}

	// Settles ended pools
	distributorController, err := distribute.NewController(config, db, gateway, monitorCounters)
	if err != nil {
		return
	}

	self.Task.
		WithSubtask(activatorController.Task).
		WithSubtask(distributorController.Task).
		WithSubtask(monitorCounters.Task).
		WithSubtask(server.Task)
	return
}
