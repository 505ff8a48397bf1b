package config

import (
	"time"

	"github.com/spf13/viper"
)

type Solana struct {
	// JSON-RPC node url
	NodeUrl string

	// Commitment pool program id
	ProgramId string

	// Path to the agent's keypair file. Takes precedence over PrivateKey.
	KeypairPath string

	// Base58 encoded agent private key
	PrivateKey string

	// Commitment level used for reads and confirmations
	Commitment string

	// Timeout of a single RPC request
	RequestTimeout time.Duration

	// Max number of RPC requests per second
	RateLimit float64

	// Burst size of the rate limiter
	RateLimitBurst int

	// How long fetched account data is cached
	AccountCacheTTL time.Duration

	// Max time between failed transaction submission retries
	SubmitBackoffMaxInterval time.Duration

	// Total time transaction submission is retried before giving up for this cycle
	SubmitBackoffMaxElapsedTime time.Duration
}

func setSolanaDefaults() {
	viper.SetDefault("Solana.NodeUrl", "https://api.devnet.solana.com")
	viper.SetDefault("Solana.ProgramId", "GSvoKxVHbtAY2mAAU4RM3PVQC3buLSjRm24N7QhAoieH")
	viper.SetDefault("Solana.KeypairPath", "")
	viper.SetDefault("Solana.PrivateKey", "")
	viper.SetDefault("Solana.Commitment", "confirmed")
	viper.SetDefault("Solana.RequestTimeout", "30s")
	viper.SetDefault("Solana.RateLimit", "10")
	viper.SetDefault("Solana.RateLimitBurst", "1")
	viper.SetDefault("Solana.AccountCacheTTL", "30s")
	viper.SetDefault("Solana.SubmitBackoffMaxInterval", "8s")
	viper.SetDefault("Solana.SubmitBackoffMaxElapsedTime", "1m")
}
