package distribute

import (
	"errors"
	"fmt"
	"sort"

	"github.com/commitment-parties/agent/src/utils/model"
)

// One transfer owed by the settlement. At most one payout per destination,
// a winner's stake return and winnings share are combined.
type Payout struct {
	Destination string
	Amount      int64
	Kind        model.PayoutKind
}

var ErrNoCharityAddress = errors.New("no charity address configured for forfeited stakes")

// Splits the pool's stakes between winners and the charity according to the
// distribution mode. Pure integer arithmetic, the sum of the returned
// amounts always equals the sum of the participants' stakes. The division
// remainder goes to the last winner in wallet order so reruns produce
// identical payouts.
//
// Winners are participants that verified every day. Everyone else,
// including early leavers, forfeits their stake. With no winners the whole
// pot goes to the charity.
func ComputePayouts(pool *model.Pool, participants []model.Participant) (payouts []Payout, err error) {
	var winners []model.Participant
	var losersPot int64
	var totalPot int64

	for _, participant := range participants {
		totalPot += participant.StakeAmount
		if participant.DaysVerified >= pool.DurationDays && participant.Status != model.ParticipantStatusForfeited {
			winners = append(winners, participant)
		} else {
			losersPot += participant.StakeAmount
		}
	}

	if totalPot == 0 {
		return
	}

	sort.Slice(winners, func(i, j int) bool {
		return winners[i].Wallet < winners[j].Wallet
	})

	if len(winners) == 0 {
		if pool.CharityAddress == "" {
			err = ErrNoCharityAddress
			return
		}
		payouts = append(payouts, Payout{
			Destination: pool.CharityAddress,
			Amount:      totalPot,
			Kind:        model.PayoutKindCharity,
		})
		return
	}

	// Winners' share of the forfeited stakes
	var winnings int64
	var charity int64
	switch pool.DistributionMode {
	case model.DistributionModeCompetitive:
		winnings = losersPot
	case model.DistributionModeCharity:
		charity = losersPot
	case model.DistributionModeSplit:
		if pool.WinnerPercent < 0 || pool.WinnerPercent > 100 {
			err = fmt.Errorf("invalid winner percent %d", pool.WinnerPercent)
			return
		}
		winnings = losersPot * int64(pool.WinnerPercent) / 100
		charity = losersPot - winnings
	default:
		err = fmt.Errorf("unknown distribution mode %s", pool.DistributionMode)
		return
	}

	perWinner := winnings / int64(len(winners))
	remainder := winnings - perWinner*int64(len(winners))

	for i, winner := range winners {
		amount := winner.StakeAmount + perWinner
		if i == len(winners)-1 {
			amount += remainder
		}

		kind := model.PayoutKindStakeReturn
		if amount > winner.StakeAmount {
			kind = model.PayoutKindWinnings
		}

		if amount > 0 {
			payouts = append(payouts, Payout{
				Destination: winner.Wallet,
				Amount:      amount,
				Kind:        kind,
			})
		}
	}

	if charity > 0 {
		if pool.CharityAddress == "" {
			err = ErrNoCharityAddress
			payouts = nil
			return
		}
		payouts = append(payouts, Payout{
			Destination: pool.CharityAddress,
			Amount:      charity,
			Kind:        model.PayoutKindCharity,
		})
	}

	return
}
