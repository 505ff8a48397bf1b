package report

import "go.uber.org/atomic"

type DistributorErrors struct {
	PollerFetchError      atomic.Uint64 `json:"poller_fetch_error"`
	SettlePermanentErrors atomic.Uint64 `json:"settle_permanent_errors"`
	PayoutFailures        atomic.Uint64 `json:"payout_failures"`
	StoreSaveFailures     atomic.Uint64 `json:"store_save_failures"`
}

type DistributorState struct {
	PoolsEnded          atomic.Uint64 `json:"pools_ended"`
	PoolsSettled        atomic.Uint64 `json:"pools_settled"`
	PayoutsIssued       atomic.Uint64 `json:"payouts_issued"`
	LamportsDistributed atomic.Uint64 `json:"lamports_distributed"`
}

type DistributorReport struct {
	State  DistributorState  `json:"state"`
	Errors DistributorErrors `json:"errors"`
}
