package publisher

import (
	"encoding/json"

	"github.com/commitment-parties/agent/src/utils/model"
)

// Lifecycle event published when a pool changes status
type PoolEvent struct {
	PoolId    uint64           `json:"pool_id"`
	Status    model.PoolStatus `json:"status"`
	Timestamp int64            `json:"timestamp"`
}

func (self *PoolEvent) MarshalBinary() ([]byte, error) {
	return json.Marshal(self)
}
