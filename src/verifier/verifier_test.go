package verifier

import (
	"testing"
	"time"

	"github.com/commitment-parties/agent/src/utils/model"

	"github.com/jackc/pgtype"
	"github.com/stretchr/testify/require"
)

func poolWithParams(t *testing.T, params string) *model.Pool {
	pool := &model.Pool{PoolId: 1}
	err := pool.GoalParams.Set(params)
	require.NoError(t, err)
	return pool
}

func TestParseGoalParams(t *testing.T) {
	pool := poolWithParams(t, `{
		"min_trades_per_day": 3,
		"token_mint": "So11111111111111111111111111111111111111112",
		"min_balance": 5000000,
		"habit_name": "gym",
		"habit_type": "github_commits",
		"repo": "alice/dotfiles",
		"min_commits_per_day": 2
	}`)

	params, err := ParseGoalParams(pool)
	require.NoError(t, err)
	require.Equal(t, 3, params.MinTradesPerDay)
	require.Equal(t, "So11111111111111111111111111111111111111112", params.TokenMint)
	require.Equal(t, uint64(5000000), params.MinBalance)
	require.Equal(t, "gym", params.HabitName)
	require.Equal(t, HabitTypeGithubCommits, params.HabitType)
	require.Equal(t, "alice/dotfiles", params.Repo)
	require.Equal(t, 2, params.MinCommitsPerDay)
}

func TestParseGoalParamsEmptyColumn(t *testing.T) {
	pool := &model.Pool{PoolId: 1, GoalParams: pgtype.JSONB{Status: pgtype.Null}}

	params, err := ParseGoalParams(pool)
	require.NoError(t, err)
	require.Zero(t, params.MinTradesPerDay)
}

func TestParseGoalParamsInvalidJson(t *testing.T) {
	pool := &model.Pool{PoolId: 1, GoalParams: pgtype.JSONB{Bytes: []byte("{"), Status: pgtype.Present}}

	_, err := ParseGoalParams(pool)
	require.Error(t, err)
}

func pushEvent(createdAt time.Time, repo string, messages ...string) githubEvent {
	event := githubEvent{Type: "PushEvent", CreatedAt: createdAt.UTC().Format(time.RFC3339)}
	event.Repo.Name = repo
	for _, message := range messages {
		event.Payload.Commits = append(event.Payload.Commits, struct {
			Sha     string `json:"sha"`
			Message string `json:"message"`
		}{Sha: "abc123", Message: message})
	}
	return event
}

func TestCountQualifyingCommits(t *testing.T) {
	from := int64(1700000000)
	to := from + 86400
	inWindow := time.Unix(from+3600, 0)
	outsideWindow := time.Unix(to+3600, 0)

	events := []githubEvent{
		pushEvent(inWindow, "alice/dotfiles", "add zsh aliases", "wip"),
		pushEvent(outsideWindow, "alice/dotfiles", "fix vim config"),
		{Type: "WatchEvent", CreatedAt: inWindow.UTC().Format(time.RFC3339)},
	}

	// "wip" is below the minimum message length, the second event is
	// outside the window
	count := countQualifyingCommits(events, from, to, &GoalParams{})
	require.Equal(t, 1, count)
}

func TestCountQualifyingCommitsRepoFilter(t *testing.T) {
	from := int64(1700000000)
	to := from + 86400
	inWindow := time.Unix(from+3600, 0)

	events := []githubEvent{
		pushEvent(inWindow, "alice/dotfiles", "add zsh aliases"),
		pushEvent(inWindow, "alice/other", "unrelated change"),
	}

	count := countQualifyingCommits(events, from, to, &GoalParams{Repo: "Alice/Dotfiles"})
	require.Equal(t, 1, count)
}

func TestRegistryLookup(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Get(model.GoalFamilyTrading)
	require.Error(t, err)
}
