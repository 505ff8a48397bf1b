package config

import (
	"time"

	"github.com/spf13/viper"
)

type Verifier struct {
	// GitHub API url used by the commit habit verifier
	GithubApiUrl string

	// Optional GitHub token raising the API rate limit
	GithubToken string

	// Timeout of a single evidence request
	RequestTimeout time.Duration

	// How long balance snapshots are cached
	BalanceCacheTTL time.Duration

	// Max number of signatures fetched per wallet when counting trades
	MaxSignaturesPerDay int
}

func setVerifierDefaults() {
	viper.SetDefault("Verifier.GithubApiUrl", "https://api.github.com")
	viper.SetDefault("Verifier.GithubToken", "")
	viper.SetDefault("Verifier.RequestTimeout", "30s")
	viper.SetDefault("Verifier.BalanceCacheTTL", "5m")
	viper.SetDefault("Verifier.MaxSignaturesPerDay", "1000")
}
