package solana

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/commitment-parties/agent/src/utils/build_info"
	"github.com/commitment-parties/agent/src/utils/config"
	"github.com/commitment-parties/agent/src/utils/logger"
	"github.com/commitment-parties/agent/src/utils/monitoring"

	"github.com/go-resty/resty/v2"
	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// JSON-RPC client for the Solana node
type Client struct {
	client  *resty.Client
	config  *config.Solana
	log     *logrus.Entry
	limiter *rate.Limiter

	monitor monitoring.Monitor

	// Account data cache, avoids refetching within one cycle
	accounts *cache.Cache

	requestId uint64
}

type rpcRequest struct {
	JsonRpc string `json:"jsonrpc"`
	Id      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`
}

type SignatureInfo struct {
	Signature string  `json:"signature"`
	Slot      uint64  `json:"slot"`
	BlockTime *int64  `json:"blockTime"`
	Err       any     `json:"err"`
	Memo      *string `json:"memo"`
}

type AccountInfo struct {
	Lamports uint64
	Owner    string
	Data     []byte
}

func NewClient(config *config.Solana) (self *Client) {
	self = new(Client)
	self.config = config
	self.log = logger.NewSublogger("solana-client")
	self.limiter = rate.NewLimiter(rate.Limit(config.RateLimit), config.RateLimitBurst)
	self.accounts = cache.New(config.AccountCacheTTL, 2*config.AccountCacheTTL)

	self.client = resty.New().
		SetBaseURL(config.NodeUrl).
		SetTimeout(config.RequestTimeout).
		SetHeader("User-Agent", "commitment-parties/agent/"+build_info.Version).
		SetHeader("Content-Type", "application/json")

	return
}

func (self *Client) WithMonitor(monitor monitoring.Monitor) *Client {
	self.monitor = monitor
	return self
}

func (self *Client) call(ctx context.Context, method string, params []any, out any) (err error) {
	err = self.limiter.Wait(ctx)
	if err != nil {
		return
	}

	if self.monitor != nil {
		self.monitor.GetReport().Chain.State.RpcRequests.Inc()
	}

	var response rpcResponse
	resp, err := self.client.R().
		SetContext(ctx).
		SetBody(&rpcRequest{
			JsonRpc: "2.0",
			Id:      atomic.AddUint64(&self.requestId, 1),
			Method:  method,
			Params:  params,
		}).
		SetResult(&response).
		Post("")
	if err != nil {
		if self.monitor != nil {
			self.monitor.GetReport().Chain.Errors.RpcRequestErrors.Inc()
		}
		return
	}
	if resp.IsError() {
		if self.monitor != nil {
			self.monitor.GetReport().Chain.Errors.RpcRequestErrors.Inc()
		}
		err = fmt.Errorf("unexpected status: %s", resp.Status())
		return
	}
	if response.Error != nil {
		if self.monitor != nil {
			self.monitor.GetReport().Chain.Errors.RpcRequestErrors.Inc()
		}
		err = response.Error
		return
	}

	if out != nil {
		err = json.Unmarshal(response.Result, out)
	}
	return
}

// Fetches account data, served from cache within the configured TTL
func (self *Client) GetAccountInfo(ctx context.Context, pubkey string) (out *AccountInfo, err error) {
	if cached, ok := self.accounts.Get(pubkey); ok {
		if self.monitor != nil {
			self.monitor.GetReport().Chain.State.AccountCacheHits.Inc()
		}
		return cached.(*AccountInfo), nil
	}

	var result struct {
		Value *struct {
			Lamports uint64   `json:"lamports"`
			Owner    string   `json:"owner"`
			Data     []string `json:"data"`
		} `json:"value"`
	}

	err = self.call(ctx, "getAccountInfo", []any{
		pubkey,
		map[string]any{"encoding": "base64", "commitment": self.config.Commitment},
	}, &result)
	if err != nil {
		return
	}
	if result.Value == nil {
		err = ErrAccountNotFound
		return
	}

	var data []byte
	if len(result.Value.Data) > 0 {
		data, err = base64.StdEncoding.DecodeString(result.Value.Data[0])
		if err != nil {
			return
		}
	}

	out = &AccountInfo{
		Lamports: result.Value.Lamports,
		Owner:    result.Value.Owner,
		Data:     data,
	}

	self.accounts.Set(pubkey, out, cache.DefaultExpiration)
	return
}

// Drops the cached copy of the account, used after submitting a transaction
// that modifies it
func (self *Client) InvalidateAccount(pubkey string) {
	self.accounts.Delete(pubkey)
}

func (self *Client) GetBalance(ctx context.Context, pubkey string) (balance uint64, err error) {
	var result struct {
		Value uint64 `json:"value"`
	}
	err = self.call(ctx, "getBalance", []any{
		pubkey,
		map[string]any{"commitment": self.config.Commitment},
	}, &result)
	if err != nil {
		return
	}
	balance = result.Value
	return
}

// Sums token balances over all of the owner's accounts holding the mint
func (self *Client) GetTokenBalance(ctx context.Context, owner, mint string) (balance uint64, err error) {
	var result struct {
		Value []struct {
			Account struct {
				Data struct {
					Parsed struct {
						Info struct {
							TokenAmount struct {
								Amount string `json:"amount"`
							} `json:"tokenAmount"`
						} `json:"info"`
					} `json:"parsed"`
				} `json:"data"`
			} `json:"account"`
		} `json:"value"`
	}

	err = self.call(ctx, "getTokenAccountsByOwner", []any{
		owner,
		map[string]any{"mint": mint},
		map[string]any{"encoding": "jsonParsed", "commitment": self.config.Commitment},
	}, &result)
	if err != nil {
		return
	}

	for _, entry := range result.Value {
		var amount uint64
		amount, err = strconv.ParseUint(entry.Account.Data.Parsed.Info.TokenAmount.Amount, 10, 64)
		if err != nil {
			return
		}
		balance += amount
	}
	return
}

func (self *Client) GetSignaturesForAddress(ctx context.Context, address string, limit int) (out []SignatureInfo, err error) {
	err = self.call(ctx, "getSignaturesForAddress", []any{
		address,
		map[string]any{"limit": limit, "commitment": self.config.Commitment},
	}, &out)
	return
}

func (self *Client) GetLatestBlockhash(ctx context.Context) (blockhash string, err error) {
	var result struct {
		Value struct {
			Blockhash string `json:"blockhash"`
		} `json:"value"`
	}
	err = self.call(ctx, "getLatestBlockhash", []any{
		map[string]any{"commitment": self.config.Commitment},
	}, &result)
	if err != nil {
		return
	}
	blockhash = result.Value.Blockhash
	return
}

func (self *Client) SendTransaction(ctx context.Context, txBase64 string) (signature string, err error) {
	err = self.call(ctx, "sendTransaction", []any{
		txBase64,
		map[string]any{"encoding": "base64", "preflightCommitment": self.config.Commitment},
	}, &signature)
	if err != nil {
		if self.monitor != nil {
			self.monitor.GetReport().Chain.Errors.TxSubmitErrors.Inc()
		}
		return
	}
	if self.monitor != nil {
		self.monitor.GetReport().Chain.State.TxsSubmitted.Inc()
	}
	return
}
