package monitor

import (
	"context"
	"time"

	"github.com/commitment-parties/agent/src/utils/config"
	"github.com/commitment-parties/agent/src/utils/model"
	"github.com/commitment-parties/agent/src/utils/monitoring"
	"github.com/commitment-parties/agent/src/utils/task"

	"gorm.io/gorm"
)

// Periodically selects active pools of one goal family and emits the next
// unrecorded day for every active participant
type Poller struct {
	*task.Task
	db      *gorm.DB
	monitor monitoring.Monitor

	family model.GoalFamily

	Output chan *Payload
}

func NewPoller(config *config.Config, family model.GoalFamily, interval time.Duration) (self *Poller) {
	self = new(Poller)

	self.family = family
	self.Output = make(chan *Payload)

	self.Task = task.NewTask(config, "poller").
		WithPeriodicSubtaskFunc(interval, self.handle).
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

// Latest day whose window plus the grace period has fully elapsed.
// Only closed days get verified, a participant has the entire window to
// produce evidence.
func (self *Poller) latestClosedDay(pool *model.Pool, now int64) int {
	if pool.ActualStartTime <= 0 {
		return 0
	}
	elapsed := now - int64(self.Config.Monitor.GracePeriod.Seconds()) - pool.ActualStartTime
	if elapsed < 0 {
		return 0
	}
	day := int(elapsed / 86400)
	if day > pool.DurationDays {
		day = pool.DurationDays
	}
	return day
}

type nextDayRow struct {
	Wallet        string
	StakeAmount   int64
	DaysVerified  int
	JoinTimestamp int64
	NextDay       int
}

func (self *Poller) handle() (err error) {
	// Interrupts longer queries
	ctx, cancel := context.WithTimeout(self.Ctx, self.Config.Monitor.PollTimeout)
	defer cancel()

	var pools []model.Pool
	err = self.db.WithContext(ctx).
		Table(model.TablePool).
		Where("status = ?", model.PoolStatusActive).
		Where("goal_family = ?", self.family).
		Order("pool_id ASC").
		Limit(self.Config.Monitor.MaxPoolsPerCycle).
		Find(&pools).
		Error
	if err != nil {
		self.Log.WithError(err).Error("Failed to fetch active pools")
		self.monitor.GetReport().Monitor.Errors.PollerFetchError.Inc()
		return nil
	}

	now := time.Now().Unix()

	for i := range pools {
		pool := &pools[i]

		self.monitor.GetReport().Monitor.State.PoolsPolled.Inc()

		latestDay := self.latestClosedDay(pool, now)
		if latestDay == 0 {
			continue
		}

		// Lowest day in 1..latestDay with no verification record,
		// recomputed from the database every cycle
		var rows []nextDayRow
		err = self.db.WithContext(ctx).
			Raw(`SELECT p.wallet, p.stake_amount, p.days_verified, p.join_timestamp, MIN(missing.day) AS next_day
				FROM participants p
				CROSS JOIN generate_series(1, ?) AS missing(day)
				LEFT JOIN verification_records v
					ON v.pool_id = p.pool_id AND v.wallet = p.wallet AND v.day = missing.day
				WHERE p.pool_id = ? AND p.status = ? AND v.id IS NULL
				GROUP BY p.wallet, p.stake_amount, p.days_verified, p.join_timestamp
				ORDER BY p.wallet ASC`, latestDay, pool.PoolId, model.ParticipantStatusActive).
			Scan(&rows).
			Error
		if err != nil {
			self.Log.WithError(err).WithField("pool_id", pool.PoolId).Error("Failed to fetch participants to verify")
			self.monitor.GetReport().Monitor.Errors.PollerFetchError.Inc()
			continue
		}

		for _, row := range rows {
			payload := &Payload{
				Pool: pool,
				Participant: &model.Participant{
					PoolId:        pool.PoolId,
					Wallet:        row.Wallet,
					StakeAmount:   row.StakeAmount,
					DaysVerified:  row.DaysVerified,
					JoinTimestamp: row.JoinTimestamp,
					Status:        model.ParticipantStatusActive,
				},
				Day: row.NextDay,
			}

			select {
			case <-self.StopChannel:
				return nil
			case self.Output <- payload:
			}
		}
	}

	return nil
}
