package verifier

import (
	"encoding/json"
	"fmt"

	"github.com/commitment-parties/agent/src/utils/model"
)

// Goal parameters stored in the pool's JSONB column.
// Each family reads the fields it cares about.
type GoalParams struct {
	// trading_activity
	MinTradesPerDay int `json:"min_trades_per_day"`

	// balance_threshold
	TokenMint  string `json:"token_mint"`
	MinBalance uint64 `json:"min_balance"`

	// habit_checkin
	HabitName        string `json:"habit_name"`
	HabitType        string `json:"habit_type"`
	Repo             string `json:"repo"`
	MinCommitsPerDay int    `json:"min_commits_per_day"`
}

func ParseGoalParams(pool *model.Pool) (out GoalParams, err error) {
	if pool.GoalParams.Bytes == nil {
		return
	}
	err = json.Unmarshal(pool.GoalParams.Bytes, &out)
	if err != nil {
		err = fmt.Errorf("invalid goal params for pool %d: %w", pool.PoolId, err)
	}
	return
}
