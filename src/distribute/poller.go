package distribute

import (
	"context"
	"time"

	"github.com/commitment-parties/agent/src/utils/config"
	"github.com/commitment-parties/agent/src/utils/model"
	"github.com/commitment-parties/agent/src/utils/monitoring"
	"github.com/commitment-parties/agent/src/utils/task"

	"gorm.io/gorm"
)

// Periodically claims pools that are due for settlement. Active pools past
// their end timestamp are flipped to ended, pools stuck in ended (a crash
// mid-settlement) are picked up again after a cooldown.
type Poller struct {
	*task.Task
	db      *gorm.DB
	monitor monitoring.Monitor

	Output chan *model.Pool
}

func NewPoller(config *config.Config) (self *Poller) {
	self = new(Poller)

	self.Output = make(chan *model.Pool)

	self.Task = task.NewTask(config, "poller").
		WithPeriodicSubtaskFunc(config.Distributor.Interval, self.handle).
		WithOnAfterStop(func() {
			close(self.Output)
		})

	return
}

func (self *Poller) WithDB(db *gorm.DB) *Poller {
	self.db = db
	return self
}

func (self *Poller) WithMonitor(monitor monitoring.Monitor) *Poller {
	self.monitor = monitor
	return self
}

func (self *Poller) handle() (err error) {
	ctx, cancel := context.WithTimeout(self.Ctx, self.Config.Distributor.CycleTimeout)
	defer cancel()

	now := time.Now().Unix()
	staleBefore := now - int64(self.Config.Distributor.RetryStaleAfter.Seconds())

	ids := make([]uint64, 0, self.Config.Distributor.MaxPoolsPerCycle)

	// Claim expired active pools and re-claim stale ended ones in one
	// statement, bumping updated_at keeps other instances off them
	err = self.db.WithContext(ctx).
		Raw(`UPDATE pools
			SET status = ?, updated_at = ?
			WHERE pool_id IN (
				SELECT pool_id
				FROM pools
				WHERE (status = ? AND end_timestamp <= ?)
					OR (status = ? AND updated_at <= ?)
				ORDER BY end_timestamp ASC
				LIMIT ?
				FOR UPDATE SKIP LOCKED)
			RETURNING pool_id`,
			model.PoolStatusEnded, now,
			model.PoolStatusActive, now,
			model.PoolStatusEnded, staleBefore,
			self.Config.Distributor.MaxPoolsPerCycle).
		Scan(&ids).
		Error
	if err != nil {
		self.Log.WithError(err).Error("Failed to claim pools for settlement")
		self.monitor.GetReport().Distributor.Errors.PollerFetchError.Inc()
		return nil
	}

	if len(ids) == 0 {
		return nil
	}

	self.monitor.GetReport().Distributor.State.PoolsEnded.Add(uint64(len(ids)))

	var pools []model.Pool
	err = self.db.WithContext(ctx).
		Table(model.TablePool).
		Where("pool_id IN ?", ids).
		Order("pool_id ASC").
		Find(&pools).
		Error
	if err != nil {
		self.Log.WithError(err).Error("Failed to load claimed pools")
		self.monitor.GetReport().Distributor.Errors.PollerFetchError.Inc()
		return nil
	}

	for i := range pools {
		select {
		case <-self.StopChannel:
			return nil
		case self.Output <- &pools[i]:
		}
	}

	return nil
}
