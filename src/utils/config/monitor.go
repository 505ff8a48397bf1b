package config

import (
	"time"

	"github.com/spf13/viper"
)

type Monitor struct {
	// How often trading activity pools are checked
	TradingInterval time.Duration

	// How often balance threshold pools are checked
	BalanceInterval time.Duration

	// How often habit check-in pools are checked
	CheckinInterval time.Duration

	// Max number of pools loaded in one cycle
	MaxPoolsPerCycle int

	// Delay after a pool's start before verification of day 1 begins
	GracePeriod time.Duration

	// Number of workers that verify participants
	NumWorkers int

	// Max number of verification items waiting in the worker queue
	WorkerQueueSize int

	// Max duration of a single polling query
	PollTimeout time.Duration

	// Max batch size before verification records are flushed to the database
	StoreBatchSize int

	// After this time buffered verification records are flushed to the database
	StoreInterval time.Duration

	// Store flush backoff, 0 is no limit
	StoreMaxElapsedTime time.Duration
	StoreMaxInterval    time.Duration
}

func setMonitorDefaults() {
	viper.SetDefault("Monitor.TradingInterval", "24h")
	viper.SetDefault("Monitor.BalanceInterval", "1h")
	viper.SetDefault("Monitor.CheckinInterval", "5m")
	viper.SetDefault("Monitor.MaxPoolsPerCycle", "100")
	viper.SetDefault("Monitor.GracePeriod", "1h")
	viper.SetDefault("Monitor.NumWorkers", "10")
	viper.SetDefault("Monitor.WorkerQueueSize", "100")
	viper.SetDefault("Monitor.PollTimeout", "5m")
	viper.SetDefault("Monitor.StoreBatchSize", "50")
	viper.SetDefault("Monitor.StoreInterval", "5s")
	viper.SetDefault("Monitor.StoreMaxElapsedTime", "10m")
	viper.SetDefault("Monitor.StoreMaxInterval", "30s")
}
