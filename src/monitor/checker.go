package monitor

import (
	"github.com/commitment-parties/agent/src/utils/config"
	"github.com/commitment-parties/agent/src/utils/monitoring"
	"github.com/commitment-parties/agent/src/utils/solana"
	"github.com/commitment-parties/agent/src/utils/task"
	"github.com/commitment-parties/agent/src/verifier"
)

// Runs the goal family's verifier for every incoming item and records the
// verdict on-chain. Verified items are forwarded to the store.
type Checker struct {
	*task.Task
	monitor monitoring.Monitor

	gateway   *solana.Gateway
	verifiers *verifier.Registry

	input chan *Payload

	Output chan *Payload
}

func NewChecker(config *config.Config) (self *Checker) {
	self = new(Checker)

	self.Output = make(chan *Payload)

	self.Task = task.NewTask(config, "checker").
		WithSubtaskFunc(self.run).
		WithWorkerPool(config.Monitor.NumWorkers, config.Monitor.WorkerQueueSize).
		WithOnAfterStop(func() {
			close(self.Output)
		})

	return
}

func (self *Checker) WithGateway(gateway *solana.Gateway) *Checker {
	self.gateway = gateway
	return self
}

func (self *Checker) WithVerifiers(verifiers *verifier.Registry) *Checker {
	self.verifiers = verifiers
	return self
}

func (self *Checker) WithInputChannel(input chan *Payload) *Checker {
	self.input = input
	return self
}

func (self *Checker) WithMonitor(monitor monitoring.Monitor) *Checker {
	self.monitor = monitor
	return self
}

func (self *Checker) check(payload *Payload) {
	self.monitor.GetReport().Monitor.State.ParticipantsChecked.Inc()

	v, err := self.verifiers.Get(payload.Pool.GoalFamily)
	if err != nil {
		self.Log.WithError(err).WithField("pool_id", payload.Pool.PoolId).Error("No verifier for pool")
		self.monitor.GetReport().Monitor.Errors.CheckerVerificationErrors.Inc()
		return
	}

	// Evidence source unavailable leaves the day unrecorded, the next
	// cycle retries it
	verdict, err := v.Verify(self.Ctx, payload.Pool, payload.Participant, payload.Day)
	if err != nil {
		self.Log.WithError(err).
			WithField("pool_id", payload.Pool.PoolId).
			WithField("wallet", payload.Participant.Wallet).
			WithField("day", payload.Day).
			Error("Verification failed")
		self.monitor.GetReport().Monitor.Errors.CheckerVerificationErrors.Inc()
		return
	}

	payload.Passed = verdict.Passed
	payload.Evidence = verdict.Evidence

	if verdict.Passed {
		self.monitor.GetReport().Monitor.State.VerificationsPassed.Inc()
	} else {
		self.monitor.GetReport().Monitor.State.VerificationsFailed.Inc()
	}

	// The chain is authoritative for verification progress. When a crash
	// lost the local record but the day already made it on-chain, only the
	// database copy is backfilled.
	chainParticipant, err := self.gateway.GetParticipant(self.Ctx, payload.Pool.PoolId, payload.Participant.Wallet)
	if err != nil {
		self.Log.WithError(err).
			WithField("pool_id", payload.Pool.PoolId).
			WithField("wallet", payload.Participant.Wallet).
			Error("Failed to read on-chain participant")
		self.monitor.GetReport().Monitor.Errors.CheckerVerificationErrors.Inc()
		return
	}

	if int(chainParticipant.DaysVerified) >= payload.Day {
		self.Log.WithField("pool_id", payload.Pool.PoolId).
			WithField("wallet", payload.Participant.Wallet).
			WithField("day", payload.Day).
			Debug("Day already recorded on-chain, backfilling the database")
	} else {
		signature, err := self.gateway.VerifyParticipant(self.Ctx, payload.Pool.PoolId, payload.Participant.Wallet, uint8(payload.Day), payload.Passed)
		if err != nil {
			if solana.IsTerminal(err) {
				self.Log.WithError(err).
					WithField("pool_id", payload.Pool.PoolId).
					WithField("wallet", payload.Participant.Wallet).
					WithField("day", payload.Day).
					Error("Chain rejected verification, skipping")
				self.monitor.GetReport().Monitor.Errors.CheckerSubmitPermanentErrors.Inc()
			} else {
				self.Log.WithError(err).
					WithField("pool_id", payload.Pool.PoolId).
					WithField("wallet", payload.Participant.Wallet).
					WithField("day", payload.Day).
					Error("Failed to submit verification, will retry next cycle")
				self.monitor.GetReport().Monitor.Errors.CheckerVerificationErrors.Inc()
			}
			return
		}
		payload.TxSignature = signature
		self.monitor.GetReport().Monitor.State.ChainSubmissions.Inc()
	}

	select {
	case <-self.Ctx.Done():
	case self.Output <- payload:
	}
}

func (self *Checker) run() error {
	// Quits when the input channel is closed
	for payload := range self.input {
		payload := payload
		self.SubmitToWorker(func() {
			self.check(payload)
		})
	}
	return nil
}
