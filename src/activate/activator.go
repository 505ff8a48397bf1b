package activate

import (
	"context"
	"time"

	"github.com/commitment-parties/agent/src/utils/config"
	"github.com/commitment-parties/agent/src/utils/model"
	"github.com/commitment-parties/agent/src/utils/monitoring"
	"github.com/commitment-parties/agent/src/utils/publisher"
	"github.com/commitment-parties/agent/src/utils/task"

	"gorm.io/gorm"
)

// Starts pending pools whose recruitment window is over. Pools that require
// a minimum number of participants and didn't reach it get their start pushed
// forward instead. Never touches the chain, the store is authoritative for
// schedules.
type Activator struct {
	*task.Task
	db      *gorm.DB
	monitor monitoring.Monitor

	Output chan *publisher.PoolEvent
}

func NewActivator(config *config.Config) (self *Activator) {
	self = new(Activator)

	self.Output = make(chan *publisher.PoolEvent)

	self.Task = task.NewTask(config, "activator").
		WithPeriodicSubtaskFunc(config.Activator.Interval, self.handle).
		WithOnAfterStop(func() {
			close(self.Output)
		})

	return
}

func (self *Activator) WithDB(db *gorm.DB) *Activator {
	self.db = db
	return self
}

func (self *Activator) WithMonitor(monitor monitoring.Monitor) *Activator {
	self.monitor = monitor
	return self
}

func (self *Activator) emit(poolId uint64, status model.PoolStatus, now int64) {
	if !self.Config.Redis.Enabled {
		return
	}

	select {
	case <-self.StopChannel:
	case self.Output <- &publisher.PoolEvent{PoolId: poolId, Status: status, Timestamp: now}:
	}
}

func (self *Activator) handle() (err error) {
	ctx, cancel := context.WithTimeout(self.Ctx, self.Config.Activator.CycleTimeout)
	defer cancel()

	now := time.Now().Unix()

	var pools []model.Pool
	err = self.db.WithContext(ctx).
		Table(model.TablePool).
		Where("status = ?", model.PoolStatusPending).
		Where("scheduled_start_time <= ?", now).
		Order("scheduled_start_time ASC").
		Limit(self.Config.Activator.MaxPoolsPerCycle).
		Find(&pools).
		Error
	if err != nil {
		self.Log.WithError(err).Error("Failed to fetch pending pools")
		self.monitor.GetReport().Activator.Errors.FetchError.Inc()
		return nil
	}

	for i := range pools {
		pool := &pools[i]

		if pool.RequireMinParticipants && pool.ParticipantCount < pool.MinParticipants {
			self.extend(ctx, pool, now)
			continue
		}

		self.activate(ctx, pool, now)
	}

	return nil
}

// Pushes the start forward so recruitment stays open, the new deadline is
// visible to the REST layer immediately
func (self *Activator) extend(ctx context.Context, pool *model.Pool, now int64) {
	newStart := now + int64(self.Config.Activator.RecruitmentExtension.Seconds())

	err := self.db.WithContext(ctx).
		Exec(`UPDATE pools
			SET scheduled_start_time = ?, updated_at = ?
			WHERE pool_id = ? AND status = ?`,
			newStart, now, pool.PoolId, model.PoolStatusPending).
		Error
	if err != nil {
		self.Log.WithError(err).WithField("pool_id", pool.PoolId).Error("Failed to extend recruitment")
		self.monitor.GetReport().Activator.Errors.ActivationFailures.Inc()
		return
	}

	self.Log.WithField("pool_id", pool.PoolId).
		WithField("participants", pool.ParticipantCount).
		WithField("required", pool.MinParticipants).
		WithField("new_start", newStart).
		Info("Too few participants, extended recruitment")
	self.monitor.GetReport().Activator.State.RecruitmentsExtended.Inc()
}

func (self *Activator) activate(ctx context.Context, pool *model.Pool, now int64) {
	endTimestamp := now + int64(pool.DurationDays)*86400

	// Conditional update, a competing instance may have won the claim
	result := self.db.WithContext(ctx).
		Exec(`UPDATE pools
			SET status = ?, actual_start_time = ?, end_timestamp = ?, updated_at = ?
			WHERE pool_id = ? AND status = ?`,
			model.PoolStatusActive, now, endTimestamp, now, pool.PoolId, model.PoolStatusPending)
	if result.Error != nil {
		self.Log.WithError(result.Error).WithField("pool_id", pool.PoolId).Error("Failed to activate pool")
		self.monitor.GetReport().Activator.Errors.ActivationFailures.Inc()
		return
	}
	if result.RowsAffected == 0 {
		return
	}

	self.Log.WithField("pool_id", pool.PoolId).
		WithField("participants", pool.ParticipantCount).
		WithField("end_timestamp", endTimestamp).
		Info("Activated pool")
	self.monitor.GetReport().Activator.State.PoolsActivated.Inc()

	self.emit(pool.PoolId, model.PoolStatusActive, now)
}
