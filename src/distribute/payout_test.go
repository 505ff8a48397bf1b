package distribute

import (
	"testing"

	"github.com/commitment-parties/agent/src/utils/model"

	"github.com/stretchr/testify/require"
)

func pool(mode model.DistributionMode) *model.Pool {
	return &model.Pool{
		PoolId:           1,
		DurationDays:     7,
		DistributionMode: mode,
		WinnerPercent:    50,
		CharityAddress:   "Char1tyAddr",
	}
}

func participant(wallet string, stake int64, daysVerified int, status model.ParticipantStatus) model.Participant {
	return model.Participant{
		PoolId:       1,
		Wallet:       wallet,
		StakeAmount:  stake,
		DaysVerified: daysVerified,
		Status:       status,
	}
}

func sum(payouts []Payout) (total int64) {
	for _, p := range payouts {
		total += p.Amount
	}
	return
}

func TestCompetitiveSplitsLosersPotBetweenWinners(t *testing.T) {
	participants := []model.Participant{
		participant("alice", 1000, 7, model.ParticipantStatusCompleted),
		participant("bob", 1000, 7, model.ParticipantStatusCompleted),
		participant("carol", 1000, 3, model.ParticipantStatusEliminated),
	}

	payouts, err := ComputePayouts(pool(model.DistributionModeCompetitive), participants)
	require.NoError(t, err)
	require.Len(t, payouts, 2)

	require.Equal(t, "alice", payouts[0].Destination)
	require.Equal(t, int64(1500), payouts[0].Amount)
	require.Equal(t, model.PayoutKindWinnings, payouts[0].Kind)

	require.Equal(t, "bob", payouts[1].Destination)
	require.Equal(t, int64(1500), payouts[1].Amount)

	require.Equal(t, int64(3000), sum(payouts))
}

func TestCharityModeRoutesForfeitedStakesToCharity(t *testing.T) {
	participants := []model.Participant{
		participant("alice", 1000, 7, model.ParticipantStatusCompleted),
		participant("bob", 1000, 2, model.ParticipantStatusEliminated),
	}

	payouts, err := ComputePayouts(pool(model.DistributionModeCharity), participants)
	require.NoError(t, err)
	require.Len(t, payouts, 2)

	require.Equal(t, "alice", payouts[0].Destination)
	require.Equal(t, int64(1000), payouts[0].Amount)
	require.Equal(t, model.PayoutKindStakeReturn, payouts[0].Kind)

	require.Equal(t, "Char1tyAddr", payouts[1].Destination)
	require.Equal(t, int64(1000), payouts[1].Amount)
	require.Equal(t, model.PayoutKindCharity, payouts[1].Kind)
}

func TestSplitModeDividesByWinnerPercent(t *testing.T) {
	participants := []model.Participant{
		participant("alice", 1000, 7, model.ParticipantStatusCompleted),
		participant("bob", 1000, 0, model.ParticipantStatusEliminated),
	}

	payouts, err := ComputePayouts(pool(model.DistributionModeSplit), participants)
	require.NoError(t, err)
	require.Len(t, payouts, 2)

	// 50% of bob's 1000 goes to alice, the rest to charity
	require.Equal(t, int64(1500), payouts[0].Amount)
	require.Equal(t, int64(500), payouts[1].Amount)
	require.Equal(t, model.PayoutKindCharity, payouts[1].Kind)
	require.Equal(t, int64(2000), sum(payouts))
}

func TestNoWinnersSendsWholePotToCharity(t *testing.T) {
	participants := []model.Participant{
		participant("alice", 1000, 3, model.ParticipantStatusEliminated),
		participant("bob", 1000, 0, model.ParticipantStatusEliminated),
	}

	payouts, err := ComputePayouts(pool(model.DistributionModeCompetitive), participants)
	require.NoError(t, err)
	require.Len(t, payouts, 1)
	require.Equal(t, "Char1tyAddr", payouts[0].Destination)
	require.Equal(t, int64(2000), payouts[0].Amount)
	require.Equal(t, model.PayoutKindCharity, payouts[0].Kind)
}

func TestNoWinnersWithoutCharityAddressFails(t *testing.T) {
	p := pool(model.DistributionModeCompetitive)
	p.CharityAddress = ""

	participants := []model.Participant{
		participant("alice", 1000, 0, model.ParticipantStatusEliminated),
	}

	_, err := ComputePayouts(p, participants)
	require.ErrorIs(t, err, ErrNoCharityAddress)
}

func TestForfeitedParticipantIsNeverAWinner(t *testing.T) {
	participants := []model.Participant{
		participant("alice", 1000, 7, model.ParticipantStatusForfeited),
		participant("bob", 1000, 7, model.ParticipantStatusCompleted),
	}

	payouts, err := ComputePayouts(pool(model.DistributionModeCompetitive), participants)
	require.NoError(t, err)
	require.Len(t, payouts, 1)
	require.Equal(t, "bob", payouts[0].Destination)
	require.Equal(t, int64(2000), payouts[0].Amount)
}

func TestRemainderGoesToLastWinnerInWalletOrder(t *testing.T) {
	participants := []model.Participant{
		participant("carol", 1000, 7, model.ParticipantStatusCompleted),
		participant("alice", 1000, 7, model.ParticipantStatusCompleted),
		participant("bob", 1000, 7, model.ParticipantStatusCompleted),
		participant("dave", 1000, 0, model.ParticipantStatusEliminated),
	}

	payouts, err := ComputePayouts(pool(model.DistributionModeCompetitive), participants)
	require.NoError(t, err)
	require.Len(t, payouts, 3)

	// 1000 / 3 = 333 each, remainder 1 lands on carol
	require.Equal(t, "alice", payouts[0].Destination)
	require.Equal(t, int64(1333), payouts[0].Amount)
	require.Equal(t, "bob", payouts[1].Destination)
	require.Equal(t, int64(1333), payouts[1].Amount)
	require.Equal(t, "carol", payouts[2].Destination)
	require.Equal(t, int64(1334), payouts[2].Amount)

	require.Equal(t, int64(4000), sum(payouts))
}

func TestRerunsProduceIdenticalPayouts(t *testing.T) {
	participants := []model.Participant{
		participant("bob", 700, 7, model.ParticipantStatusCompleted),
		participant("alice", 1300, 7, model.ParticipantStatusCompleted),
		participant("carol", 1000, 1, model.ParticipantStatusEliminated),
	}

	first, err := ComputePayouts(pool(model.DistributionModeSplit), participants)
	require.NoError(t, err)

	second, err := ComputePayouts(pool(model.DistributionModeSplit), participants)
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestEmptyPoolProducesNoPayouts(t *testing.T) {
	payouts, err := ComputePayouts(pool(model.DistributionModeCompetitive), nil)
	require.NoError(t, err)
	require.Empty(t, payouts)
}

func TestInvalidWinnerPercentFails(t *testing.T) {
	p := pool(model.DistributionModeSplit)
	p.WinnerPercent = 120

	participants := []model.Participant{
		participant("alice", 1000, 7, model.ParticipantStatusCompleted),
		participant("bob", 1000, 0, model.ParticipantStatusEliminated),
	}

	_, err := ComputePayouts(p, participants)
	require.Error(t, err)
}
