package verifier

import (
	"context"
	"fmt"

	"github.com/commitment-parties/agent/src/utils/config"
	"github.com/commitment-parties/agent/src/utils/model"
	"github.com/commitment-parties/agent/src/utils/solana"

	cache "github.com/patrickmn/go-cache"
)

// Checks that the wallet keeps its balance above the configured threshold.
// Reads the token balance when a mint is configured, the native balance
// otherwise.
type BalanceVerifier struct {
	config  *config.Verifier
	gateway *solana.Gateway

	// Short lived balance snapshots, one wallet may sit in several pools
	balances *cache.Cache
}

func NewBalanceVerifier(config *config.Config, gateway *solana.Gateway) (self *BalanceVerifier) {
	self = new(BalanceVerifier)
	self.config = &config.Verifier
	self.gateway = gateway
	self.balances = cache.New(config.Verifier.BalanceCacheTTL, 2*config.Verifier.BalanceCacheTTL)
	return
}

func (self *BalanceVerifier) Family() model.GoalFamily {
	return model.GoalFamilyBalance
}

func (self *BalanceVerifier) balance(ctx context.Context, wallet, mint string) (balance uint64, err error) {
	key := wallet + "/" + mint
	if cached, ok := self.balances.Get(key); ok {
		return cached.(uint64), nil
	}

	if mint != "" {
		balance, err = self.gateway.GetTokenBalance(ctx, wallet, mint)
	} else {
		balance, err = self.gateway.GetSolBalance(ctx, wallet)
	}
	if err != nil {
		return
	}

	self.balances.Set(key, balance, cache.DefaultExpiration)
	return
}

func (self *BalanceVerifier) Verify(ctx context.Context, pool *model.Pool, participant *model.Participant, day int) (out Verdict, err error) {
	params, err := ParseGoalParams(pool)
	if err != nil {
		return
	}

	balance, err := self.balance(ctx, participant.Wallet, params.TokenMint)
	if err != nil {
		return
	}

	out.Passed = balance >= params.MinBalance
	out.Evidence = fmt.Sprintf("balance %d, required %d", balance, params.MinBalance)
	return
}
