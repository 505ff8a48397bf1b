package verifier

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/commitment-parties/agent/src/utils/build_info"
	"github.com/commitment-parties/agent/src/utils/config"
	"github.com/commitment-parties/agent/src/utils/model"

	"github.com/go-resty/resty/v2"
	"gorm.io/gorm"
)

const HabitTypeGithubCommits = "github_commits"

// Verifies habit goals. Generic habits pass on a successful check-in row
// for the day, the github_commits habit counts the user's push events
// through the GitHub API.
type CheckinVerifier struct {
	config *config.Verifier
	db     *gorm.DB
	client *resty.Client
}

func NewCheckinVerifier(config *config.Config, db *gorm.DB) (self *CheckinVerifier) {
	self = new(CheckinVerifier)
	self.config = &config.Verifier
	self.db = db

	self.client = resty.New().
		SetBaseURL(config.Verifier.GithubApiUrl).
		SetTimeout(config.Verifier.RequestTimeout).
		SetHeader("Accept", "application/vnd.github+json").
		SetHeader("User-Agent", "commitment-parties/agent/"+build_info.Version)

	if config.Verifier.GithubToken != "" {
		self.client.SetAuthToken(config.Verifier.GithubToken)
	}

	return
}

func (self *CheckinVerifier) Family() model.GoalFamily {
	return model.GoalFamilyCheckin
}

func (self *CheckinVerifier) Verify(ctx context.Context, pool *model.Pool, participant *model.Participant, day int) (out Verdict, err error) {
	params, err := ParseGoalParams(pool)
	if err != nil {
		return
	}

	if params.HabitType == HabitTypeGithubCommits {
		return self.verifyCommits(ctx, pool, participant, day, &params)
	}
	return self.verifyCheckIn(ctx, pool, participant, day)
}

// A day with no check-in row counts as failed, the window is already
// closed when the monitor asks about it
func (self *CheckinVerifier) verifyCheckIn(ctx context.Context, pool *model.Pool, participant *model.Participant, day int) (out Verdict, err error) {
	var checkIn model.CheckIn
	err = self.db.WithContext(ctx).
		Table(model.TableCheckIn).
		Where("pool_id = ? AND wallet = ? AND day = ?", pool.PoolId, participant.Wallet, day).
		First(&checkIn).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		out.Evidence = fmt.Sprintf("no check-in for day %d", day)
		return out, nil
	}
	if err != nil {
		return
	}

	out.Passed = checkIn.Success
	out.Evidence = fmt.Sprintf("check-in %d reported success=%t", checkIn.Id, checkIn.Success)
	return
}

type githubEvent struct {
	Type      string `json:"type"`
	CreatedAt string `json:"created_at"`
	Repo      struct {
		Name string `json:"name"`
	} `json:"repo"`
	Payload struct {
		Commits []struct {
			Sha     string `json:"sha"`
			Message string `json:"message"`
		} `json:"commits"`
	} `json:"payload"`
}

// Push event commits inside the day window, optionally restricted to one
// repository. Trivial commit messages don't count.
func countQualifyingCommits(events []githubEvent, from, to int64, params *GoalParams) (count int) {
	for _, event := range events {
		if event.Type != "PushEvent" {
			continue
		}

		createdAt, parseErr := time.Parse(time.RFC3339, event.CreatedAt)
		if parseErr != nil {
			continue
		}
		ts := createdAt.Unix()
		if ts < from || ts >= to {
			continue
		}

		if params.Repo != "" && !strings.EqualFold(event.Repo.Name, params.Repo) {
			continue
		}

		for _, commit := range event.Payload.Commits {
			if commit.Sha != "" && len(strings.TrimSpace(commit.Message)) >= 5 {
				count++
			}
		}
	}
	return
}

func (self *CheckinVerifier) verifyCommits(ctx context.Context, pool *model.Pool, participant *model.Participant, day int, params *GoalParams) (out Verdict, err error) {
	var user model.User
	err = self.db.WithContext(ctx).
		Table(model.TableUser).
		Where("wallet = ?", participant.Wallet).
		First(&user).
		Error
	if err != nil {
		err = fmt.Errorf("could not load github username for wallet %s: %w", participant.Wallet, err)
		return
	}
	if user.GithubUsername == "" {
		err = fmt.Errorf("wallet %s has no verified github username", participant.Wallet)
		return
	}

	var events []githubEvent
	resp, err := self.client.R().
		SetContext(ctx).
		SetResult(&events).
		Get("/users/" + user.GithubUsername + "/events")
	if err != nil {
		return
	}
	if resp.IsError() {
		err = fmt.Errorf("github events request failed: %s", resp.Status())
		return
	}

	minCommits := params.MinCommitsPerDay
	if minCommits <= 0 {
		minCommits = 1
	}

	from, to := pool.DayWindow(day)
	count := countQualifyingCommits(events, from, to, params)

	out.Passed = count >= minCommits
	out.Evidence = fmt.Sprintf("%d of %d required commits by %s in day %d window", count, minCommits, user.GithubUsername, day)
	return
}
