package report

type Report struct {
	Run         *RunReport         `json:"run,omitempty"`
	Monitor     *MonitorReport     `json:"monitor,omitempty"`
	Activator   *ActivatorReport   `json:"activator,omitempty"`
	Distributor *DistributorReport `json:"distributor,omitempty"`
	Chain       *ChainReport       `json:"chain,omitempty"`

	RedisPublisher *RedisPublisherReport `json:"redis_publisher,omitempty"`
}
