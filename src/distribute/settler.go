package distribute

import (
	"context"
	"fmt"
	"time"

	"github.com/commitment-parties/agent/src/utils/config"
	"github.com/commitment-parties/agent/src/utils/model"
	"github.com/commitment-parties/agent/src/utils/monitoring"
	"github.com/commitment-parties/agent/src/utils/publisher"
	"github.com/commitment-parties/agent/src/utils/solana"
	"github.com/commitment-parties/agent/src/utils/task"

	"gorm.io/gorm"
)

// Settles claimed pools: finalizes participant statuses, computes payouts,
// marks the pool settled on-chain and executes the transfers. Every step is
// safe to rerun, existing payout records short-circuit their transfers.
// A failure leaves the pool in ended, the poller re-claims it later.
type Settler struct {
	*task.Task
	db      *gorm.DB
	monitor monitoring.Monitor
	gateway *solana.Gateway

	input chan *model.Pool

	Output chan *publisher.PoolEvent
}

func NewSettler(config *config.Config) (self *Settler) {
	self = new(Settler)

	self.Output = make(chan *publisher.PoolEvent)

	self.Task = task.NewTask(config, "settler").
		WithSubtaskFunc(self.run).
		WithWorkerPool(config.Distributor.NumWorkers, config.Distributor.WorkerQueueSize).
		WithOnAfterStop(func() {
			close(self.Output)
		})

	return
}

func (self *Settler) WithDB(db *gorm.DB) *Settler {
	self.db = db
	return self
}

func (self *Settler) WithGateway(gateway *solana.Gateway) *Settler {
	self.gateway = gateway
	return self
}

func (self *Settler) WithMonitor(monitor monitoring.Monitor) *Settler {
	self.monitor = monitor
	return self
}

func (self *Settler) WithInputChannel(input chan *model.Pool) *Settler {
	self.input = input
	return self
}

func (self *Settler) run() error {
	// Quits when the input channel is closed
	for pool := range self.input {
		pool := pool
		self.SubmitToWorker(func() {
			self.settle(pool)
		})
	}
	return nil
}

// Participants that are still active when the pool ends get their terminal
// status from the verified day count
func (self *Settler) finalizeStatuses(ctx context.Context, pool *model.Pool, now int64) (err error) {
	err = self.db.WithContext(ctx).
		Exec(`UPDATE participants
			SET status = ?, updated_at = ?
			WHERE pool_id = ? AND status = ? AND days_verified >= ?`,
			model.ParticipantStatusCompleted, now, pool.PoolId, model.ParticipantStatusActive, pool.DurationDays).
		Error
	if err != nil {
		return
	}

	return self.db.WithContext(ctx).
		Exec(`UPDATE participants
			SET status = ?, updated_at = ?
			WHERE pool_id = ? AND status = ? AND days_verified < ?`,
			model.ParticipantStatusEliminated, now, pool.PoolId, model.ParticipantStatusActive, pool.DurationDays).
		Error
}

// Compares the total stake recorded on-chain with the database copy before
// any money moves. A pool whose views diverged is never settled blindly.
func (self *Settler) reconcileStakes(ctx context.Context, pool *model.Pool, participants []model.Participant) (err error) {
	chainPool, err := self.gateway.GetPool(ctx, pool.PoolId)
	if err != nil {
		// Chain unavailable, the submit below fails the same way.
		// The check runs again when the pool is re-claimed.
		self.Log.WithError(err).WithField("pool_id", pool.PoolId).Warn("Failed to read on-chain pool, skipping stake reconciliation")
		return nil
	}

	var staked int64
	for _, participant := range participants {
		staked += participant.StakeAmount
	}

	if chainPool.TotalStaked != uint64(staked) {
		vault, vaultErr := self.gateway.GetVaultBalance(ctx, pool.PoolId)
		if vaultErr != nil {
			self.Log.WithError(vaultErr).WithField("pool_id", pool.PoolId).Warn("Failed to read vault balance")
		}
		return fmt.Errorf("on-chain total staked %d, database total %d, vault balance %d",
			chainPool.TotalStaked, staked, vault)
	}

	return nil
}

func (self *Settler) settle(pool *model.Pool) {
	ctx, cancel := context.WithTimeout(self.Ctx, self.Config.Distributor.CycleTimeout)
	defer cancel()

	now := time.Now().Unix()
	log := self.Log.WithField("pool_id", pool.PoolId)

	err := self.finalizeStatuses(ctx, pool, now)
	if err != nil {
		log.WithError(err).Error("Failed to finalize participant statuses")
		self.monitor.GetReport().Distributor.Errors.StoreSaveFailures.Inc()
		return
	}

	var participants []model.Participant
	err = self.db.WithContext(ctx).
		Table(model.TableParticipant).
		Where("pool_id = ?", pool.PoolId).
		Order("wallet ASC").
		Find(&participants).
		Error
	if err != nil {
		log.WithError(err).Error("Failed to load participants")
		self.monitor.GetReport().Distributor.Errors.StoreSaveFailures.Inc()
		return
	}

	payouts, err := ComputePayouts(pool, participants)
	if err != nil {
		log.WithError(err).Error("Cannot compute payouts, leaving pool for manual inspection")
		self.monitor.GetReport().Distributor.Errors.SettlePermanentErrors.Inc()
		return
	}

	err = self.reconcileStakes(ctx, pool, participants)
	if err != nil {
		log.WithError(err).Error("On-chain stakes diverge from the database, leaving pool for manual inspection")
		self.monitor.GetReport().Distributor.Errors.SettlePermanentErrors.Inc()
		return
	}

	// Mark the pool settled on-chain. On resume the program rejects the
	// replay, that just confirms the first submission landed.
	_, err = self.gateway.DistributeRewards(ctx, pool.PoolId)
	if err != nil {
		if solana.IsTerminal(err) {
			log.WithError(err).Debug("Pool already settled on-chain")
		} else {
			log.WithError(err).Error("Failed to mark pool settled on-chain, will retry")
			self.monitor.GetReport().Distributor.Errors.SettlePermanentErrors.Inc()
			return
		}
	}

	for _, payout := range payouts {
		err = self.executePayout(ctx, pool, &payout, now)
		if err != nil {
			log.WithError(err).WithField("destination", payout.Destination).Error("Payout failed, pool stays ended")
			self.monitor.GetReport().Distributor.Errors.PayoutFailures.Inc()
			return
		}
	}

	// The pool is settled only when every payout is recorded
	var recorded int64
	err = self.db.WithContext(ctx).
		Table(model.TablePayoutRecord).
		Where("pool_id = ?", pool.PoolId).
		Count(&recorded).
		Error
	if err != nil {
		log.WithError(err).Error("Failed to count payout records")
		self.monitor.GetReport().Distributor.Errors.StoreSaveFailures.Inc()
		return
	}
	if recorded < int64(len(payouts)) {
		log.WithField("recorded", recorded).WithField("expected", len(payouts)).Error("Missing payout records, pool stays ended")
		self.monitor.GetReport().Distributor.Errors.PayoutFailures.Inc()
		return
	}

	result := self.db.WithContext(ctx).
		Exec(`UPDATE pools
			SET status = ?, updated_at = ?
			WHERE pool_id = ? AND status = ?`,
			model.PoolStatusSettled, now, pool.PoolId, model.PoolStatusEnded)
	if result.Error != nil {
		log.WithError(result.Error).Error("Failed to mark pool settled")
		self.monitor.GetReport().Distributor.Errors.StoreSaveFailures.Inc()
		return
	}

	log.WithField("payouts", len(payouts)).Info("Pool settled")
	self.monitor.GetReport().Distributor.State.PoolsSettled.Inc()

	if self.Config.Redis.Enabled {
		select {
		case <-self.StopChannel:
		case self.Output <- &publisher.PoolEvent{PoolId: pool.PoolId, Status: model.PoolStatusSettled, Timestamp: now}:
		}
	}
}

// Transfers the payout unless a record for the destination already exists.
// The transfer comes first, the record confirms it happened - a crash in
// between means one extra transfer on resume, which the record's unique
// index then surfaces in the logs.
func (self *Settler) executePayout(ctx context.Context, pool *model.Pool, payout *Payout, now int64) (err error) {
	var existing int64
	err = self.db.WithContext(ctx).
		Table(model.TablePayoutRecord).
		Where("pool_id = ? AND destination = ?", pool.PoolId, payout.Destination).
		Count(&existing).
		Error
	if err != nil {
		return
	}
	if existing > 0 {
		self.Log.WithField("pool_id", pool.PoolId).
			WithField("destination", payout.Destination).
			Debug("Payout already recorded, skipping")
		return nil
	}

	signature, err := self.gateway.TransferLamports(ctx, payout.Destination, uint64(payout.Amount))
	if err != nil {
		return
	}

	err = self.db.WithContext(ctx).
		Exec(`INSERT INTO payout_records (pool_id, destination, amount, kind, tx_signature, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT (pool_id, destination) DO NOTHING`,
			pool.PoolId, payout.Destination, payout.Amount, payout.Kind, signature, now).
		Error
	if err != nil {
		return
	}

	self.monitor.GetReport().Distributor.State.PayoutsIssued.Inc()
	self.monitor.GetReport().Distributor.State.LamportsDistributed.Add(uint64(payout.Amount))
	return
}
