package report

import "go.uber.org/atomic"

type MonitorErrors struct {
	PollerFetchError             atomic.Uint64 `json:"poller_fetch_error"`
	CheckerVerificationErrors    atomic.Uint64 `json:"checker_verification_errors"`
	CheckerSubmitPermanentErrors atomic.Uint64 `json:"checker_submit_permanent_errors"`
	StoreSaveFailures            atomic.Uint64 `json:"store_save_failures"`
}

type MonitorState struct {
	PoolsPolled            atomic.Uint64 `json:"pools_polled"`
	ParticipantsChecked    atomic.Uint64 `json:"participants_checked"`
	VerificationsPassed    atomic.Uint64 `json:"verifications_passed"`
	VerificationsFailed    atomic.Uint64 `json:"verifications_failed"`
	VerificationsSaved     atomic.Uint64 `json:"verifications_saved"`
	ChainSubmissions       atomic.Uint64 `json:"chain_submissions"`
	ParticipantsEliminated atomic.Uint64 `json:"participants_eliminated"`
}

type MonitorReport struct {
	State  MonitorState  `json:"state"`
	Errors MonitorErrors `json:"errors"`
}
