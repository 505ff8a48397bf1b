package verifier

import (
	"context"
	"fmt"

	"github.com/commitment-parties/agent/src/utils/config"
	"github.com/commitment-parties/agent/src/utils/model"
	"github.com/commitment-parties/agent/src/utils/solana"
)

// Counts the wallet's confirmed transactions inside the day window
type TradingVerifier struct {
	config  *config.Verifier
	gateway *solana.Gateway
}

func NewTradingVerifier(config *config.Config, gateway *solana.Gateway) (self *TradingVerifier) {
	self = new(TradingVerifier)
	self.config = &config.Verifier
	self.gateway = gateway
	return
}

func (self *TradingVerifier) Family() model.GoalFamily {
	return model.GoalFamilyTrading
}

func (self *TradingVerifier) Verify(ctx context.Context, pool *model.Pool, participant *model.Participant, day int) (out Verdict, err error) {
	params, err := ParseGoalParams(pool)
	if err != nil {
		return
	}

	minTrades := params.MinTradesPerDay
	if minTrades <= 0 {
		minTrades = 1
	}

	signatures, err := self.gateway.GetSignaturesForAddress(ctx, participant.Wallet, self.config.MaxSignaturesPerDay)
	if err != nil {
		return
	}

	from, to := pool.DayWindow(day)

	count := 0
	for _, info := range signatures {
		if info.Err != nil || info.BlockTime == nil {
			continue
		}
		if *info.BlockTime >= from && *info.BlockTime < to {
			count++
		}
	}

	out.Passed = count >= minTrades
	out.Evidence = fmt.Sprintf("%d of %d required transactions in day %d window", count, minTrades, day)
	return
}
