package config

import (
	"time"

	"github.com/spf13/viper"
)

type Distributor struct {
	// How often ended pools are checked for settlement
	Interval time.Duration

	// Max number of pools settled in one cycle
	MaxPoolsPerCycle int

	// Max duration of a single settlement cycle
	CycleTimeout time.Duration

	// Pools stuck in the ended state longer than this are picked up again
	RetryStaleAfter time.Duration

	// Number of workers that execute payout transfers
	NumWorkers int

	// Max number of transfers waiting in the worker queue
	WorkerQueueSize int
}

func setDistributorDefaults() {
	viper.SetDefault("Distributor.Interval", "10m")
	viper.SetDefault("Distributor.MaxPoolsPerCycle", "20")
	viper.SetDefault("Distributor.CycleTimeout", "10m")
	viper.SetDefault("Distributor.RetryStaleAfter", "30m")
	viper.SetDefault("Distributor.NumWorkers", "5")
	viper.SetDefault("Distributor.WorkerQueueSize", "50")
}
