package report

import "go.uber.org/atomic"

type ChainErrors struct {
	RpcRequestErrors atomic.Uint64 `json:"rpc_request_errors"`
	TxSubmitErrors   atomic.Uint64 `json:"tx_submit_errors"`
}

type ChainState struct {
	RpcRequests      atomic.Uint64 `json:"rpc_requests"`
	TxsSubmitted     atomic.Uint64 `json:"txs_submitted"`
	AccountCacheHits atomic.Uint64 `json:"account_cache_hits"`
}

type ChainReport struct {
	State  ChainState  `json:"state"`
	Errors ChainErrors `json:"errors"`
}
