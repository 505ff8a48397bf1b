package report

import "go.uber.org/atomic"

type ActivatorErrors struct {
	FetchError         atomic.Uint64 `json:"fetch_error"`
	ActivationFailures atomic.Uint64 `json:"activation_failures"`
}

type ActivatorState struct {
	PoolsActivated       atomic.Uint64 `json:"pools_activated"`
	RecruitmentsExtended atomic.Uint64 `json:"recruitments_extended"`
}

type ActivatorReport struct {
	State  ActivatorState  `json:"state"`
	Errors ActivatorErrors `json:"errors"`
}
