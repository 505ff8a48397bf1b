package monitor

import (
	"github.com/commitment-parties/agent/src/utils/model"
)

// One (pool, participant, day) item flowing through the pipeline.
// The poller fills the identity, the checker fills the verdict.
type Payload struct {
	Pool        *model.Pool
	Participant *model.Participant

	// 1-based day index being verified
	Day int

	// Verdict, filled by the checker
	Passed   bool
	Evidence string

	// Signature of the on-chain submission, empty when the day was
	// already recorded on-chain
	TxSignature string
}
