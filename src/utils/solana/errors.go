package solana

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrBlockhashNotFound = errors.New("blockhash not found")
)

// Error returned by the JSON-RPC node
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (self *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", self.Code, self.Message)
}

// Returns true when retrying the same transaction cannot succeed.
// Program errors and instruction errors are deterministic, the program will
// reject the transaction every time. Network and node errors are not.
func IsTerminal(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrAccountNotFound) {
		return true
	}

	var rpcErr *RPCError
	if !errors.As(err, &rpcErr) {
		return false
	}

	if strings.Contains(rpcErr.Message, "custom program error") ||
		strings.Contains(rpcErr.Message, "InstructionError") {
		return true
	}

	// Preflight failure carries the simulated program error
	if rpcErr.Code == -32002 && !strings.Contains(rpcErr.Message, "Blockhash not found") {
		return true
	}

	return false
}
