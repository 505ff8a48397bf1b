package config

import (
	"time"

	"github.com/spf13/viper"
)

type Activator struct {
	// How often pending pools are checked for activation
	Interval time.Duration

	// Max number of pools loaded in one cycle
	MaxPoolsPerCycle int

	// Max duration of a single activation cycle
	CycleTimeout time.Duration

	// By how much the recruitment window is extended when
	// the minimum number of participants has not been reached
	RecruitmentExtension time.Duration
}

func setActivatorDefaults() {
	viper.SetDefault("Activator.Interval", "1m")
	viper.SetDefault("Activator.MaxPoolsPerCycle", "100")
	viper.SetDefault("Activator.CycleTimeout", "5m")
	viper.SetDefault("Activator.RecruitmentExtension", "24h")
}
