package monitor

import (
	"time"

	"github.com/commitment-parties/agent/src/utils/config"
	"github.com/commitment-parties/agent/src/utils/model"
	"github.com/commitment-parties/agent/src/utils/monitoring"
	"github.com/commitment-parties/agent/src/utils/task"

	"gorm.io/gorm"
)

// Batches verdicts and persists them. The unique index on
// (pool_id, wallet, day) makes replays after a crash harmless.
type Store struct {
	*task.Hole[*Payload]
	db      *gorm.DB
	monitor monitoring.Monitor
}

func NewStore(config *config.Config) (self *Store) {
	self = new(Store)

	self.Hole = task.NewHole[*Payload](config, "store").
		WithOnFlush(config.Monitor.StoreInterval, self.flush).
		WithBatchSize(config.Monitor.StoreBatchSize).
		WithBackoff(config.Monitor.StoreMaxElapsedTime, config.Monitor.StoreMaxInterval)

	return
}

func (self *Store) WithDB(db *gorm.DB) *Store {
	self.db = db
	return self
}

func (self *Store) WithInputChannel(input chan *Payload) *Store {
	self.Hole = self.Hole.WithInputChannel(input)
	return self
}

func (self *Store) WithMonitor(monitor monitoring.Monitor) *Store {
	self.monitor = monitor
	return self
}

func (self *Store) flush(payloads []*Payload) error {
	if len(payloads) == 0 {
		return nil
	}

	self.Log.WithField("len", len(payloads)).Debug("Saving verification records")

	now := time.Now().Unix()

	err := self.db.Transaction(func(tx *gorm.DB) (err error) {
		for _, payload := range payloads {
			// Losing the race against an earlier flush is fine, the day
			// is recorded either way
			var inserted []int64
			err = tx.Raw(`INSERT INTO verification_records (pool_id, wallet, day, goal_family, passed, evidence, tx_signature, created_at)
					VALUES (?, ?, ?, ?, ?, ?, ?, ?)
					ON CONFLICT (pool_id, wallet, day) DO NOTHING
					RETURNING id`,
				payload.Pool.PoolId,
				payload.Participant.Wallet,
				payload.Day,
				payload.Pool.GoalFamily,
				payload.Passed,
				payload.Evidence,
				payload.TxSignature,
				now).
				Scan(&inserted).
				Error
			if err != nil {
				return
			}
			if len(inserted) == 0 {
				continue
			}

			if payload.Passed {
				err = tx.Exec(`UPDATE participants
						SET days_verified = days_verified + 1, updated_at = ?
						WHERE pool_id = ? AND wallet = ? AND status = ?`,
					now, payload.Pool.PoolId, payload.Participant.Wallet, model.ParticipantStatusActive).
					Error
			} else {
				err = tx.Exec(`UPDATE participants
						SET status = ?, updated_at = ?
						WHERE pool_id = ? AND wallet = ? AND status = ?`,
					model.ParticipantStatusEliminated, now, payload.Pool.PoolId, payload.Participant.Wallet, model.ParticipantStatusActive).
					Error
			}
			if err != nil {
				return
			}
		}
		return
	})
	if err != nil {
		self.Log.WithError(err).Error("Failed to save verification records")
		self.monitor.GetReport().Monitor.Errors.StoreSaveFailures.Inc()
		return err
	}

	for _, payload := range payloads {
		self.monitor.GetReport().Monitor.State.VerificationsSaved.Inc()
		if !payload.Passed {
			self.monitor.GetReport().Monitor.State.ParticipantsEliminated.Inc()
		}
	}

	return nil
}
