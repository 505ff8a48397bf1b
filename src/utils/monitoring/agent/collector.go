package monitor_agent

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Collector struct {
	monitor *Monitor

	// Run
	UpForSeconds *prometheus.Desc

	// Errors
	MonitorPollerFetchError             *prometheus.Desc
	MonitorCheckerVerificationErrors    *prometheus.Desc
	MonitorCheckerSubmitPermanentErrors *prometheus.Desc
	MonitorStoreSaveFailures            *prometheus.Desc
	ActivatorFetchError                 *prometheus.Desc
	ActivatorActivationFailures         *prometheus.Desc
	DistributorPollerFetchError         *prometheus.Desc
	DistributorSettlePermanentErrors    *prometheus.Desc
	DistributorPayoutFailures           *prometheus.Desc
	DistributorStoreSaveFailures        *prometheus.Desc
	ChainRpcRequestErrors               *prometheus.Desc
	ChainTxSubmitErrors                 *prometheus.Desc
	RedisPublishErrors                  *prometheus.Desc
	RedisPersistentFailures             *prometheus.Desc

	// State
	MonitorPoolsPolled             *prometheus.Desc
	MonitorParticipantsChecked     *prometheus.Desc
	MonitorVerificationsPassed     *prometheus.Desc
	MonitorVerificationsFailed     *prometheus.Desc
	MonitorVerificationsSaved      *prometheus.Desc
	MonitorChainSubmissions        *prometheus.Desc
	MonitorParticipantsEliminated  *prometheus.Desc
	ActivatorPoolsActivated        *prometheus.Desc
	ActivatorRecruitmentsExtended  *prometheus.Desc
	DistributorPoolsEnded          *prometheus.Desc
	DistributorPoolsSettled        *prometheus.Desc
	DistributorPayoutsIssued       *prometheus.Desc
	DistributorLamportsDistributed *prometheus.Desc
	ChainRpcRequests               *prometheus.Desc
	ChainTxsSubmitted              *prometheus.Desc
	ChainAccountCacheHits          *prometheus.Desc
	RedisMessagesPublished         *prometheus.Desc
}

func NewCollector() *Collector {
	return &Collector{
		UpForSeconds: prometheus.NewDesc("up_for_seconds", "", nil, nil),

		// Errors
		MonitorPollerFetchError:             prometheus.NewDesc("monitor_poller_fetch_error", "", nil, nil),
		MonitorCheckerVerificationErrors:    prometheus.NewDesc("monitor_checker_verification_errors", "", nil, nil),
		MonitorCheckerSubmitPermanentErrors: prometheus.NewDesc("monitor_checker_submit_permanent_errors", "", nil, nil),
		MonitorStoreSaveFailures:            prometheus.NewDesc("monitor_store_save_failures", "", nil, nil),
		ActivatorFetchError:                 prometheus.NewDesc("activator_fetch_error", "", nil, nil),
		ActivatorActivationFailures:         prometheus.NewDesc("activator_activation_failures", "", nil, nil),
		DistributorPollerFetchError:         prometheus.NewDesc("distributor_poller_fetch_error", "", nil, nil),
		DistributorSettlePermanentErrors:    prometheus.NewDesc("distributor_settle_permanent_errors", "", nil, nil),
		DistributorPayoutFailures:           prometheus.NewDesc("distributor_payout_failures", "", nil, nil),
		DistributorStoreSaveFailures:        prometheus.NewDesc("distributor_store_save_failures", "", nil, nil),
		ChainRpcRequestErrors:               prometheus.NewDesc("chain_rpc_request_errors", "", nil, nil),
		ChainTxSubmitErrors:                 prometheus.NewDesc("chain_tx_submit_errors", "", nil, nil),
		RedisPublishErrors:                  prometheus.NewDesc("redis_publish_errors", "", nil, nil),
		RedisPersistentFailures:             prometheus.NewDesc("redis_persistent_failures", "", nil, nil),

		// State
		MonitorPoolsPolled:             prometheus.NewDesc("monitor_pools_polled", "", nil, nil),
		MonitorParticipantsChecked:     prometheus.NewDesc("monitor_participants_checked", "", nil, nil),
		MonitorVerificationsPassed:     prometheus.NewDesc("monitor_verifications_passed", "", nil, nil),
		MonitorVerificationsFailed:     prometheus.NewDesc("monitor_verifications_failed", "", nil, nil),
		MonitorVerificationsSaved:      prometheus.NewDesc("monitor_verifications_saved", "", nil, nil),
		MonitorChainSubmissions:        prometheus.NewDesc("monitor_chain_submissions", "", nil, nil),
		MonitorParticipantsEliminated:  prometheus.NewDesc("monitor_participants_eliminated", "", nil, nil),
		ActivatorPoolsActivated:        prometheus.NewDesc("activator_pools_activated", "", nil, nil),
		ActivatorRecruitmentsExtended:  prometheus.NewDesc("activator_recruitments_extended", "", nil, nil),
		DistributorPoolsEnded:          prometheus.NewDesc("distributor_pools_ended", "", nil, nil),
		DistributorPoolsSettled:        prometheus.NewDesc("distributor_pools_settled", "", nil, nil),
		DistributorPayoutsIssued:       prometheus.NewDesc("distributor_payouts_issued", "", nil, nil),
		DistributorLamportsDistributed: prometheus.NewDesc("distributor_lamports_distributed", "", nil, nil),
		ChainRpcRequests:               prometheus.NewDesc("chain_rpc_requests", "", nil, nil),
		ChainTxsSubmitted:              prometheus.NewDesc("chain_txs_submitted", "", nil, nil),
		ChainAccountCacheHits:          prometheus.NewDesc("chain_account_cache_hits", "", nil, nil),
		RedisMessagesPublished:         prometheus.NewDesc("redis_messages_published", "", nil, nil),
	}
}

func (self *Collector) WithMonitor(m *Monitor) *Collector {
	self.monitor = m
	return self
}

func (self *Collector) Describe(ch chan<- *prometheus.Desc) {
	// Run
	ch <- self.UpForSeconds

	// Errors
	ch <- self.MonitorPollerFetchError
	ch <- self.MonitorCheckerVerificationErrors
	ch <- self.MonitorCheckerSubmitPermanentErrors
	ch <- self.MonitorStoreSaveFailures
	ch <- self.ActivatorFetchError
	ch <- self.ActivatorActivationFailures
	ch <- self.DistributorPollerFetchError
	ch <- self.DistributorSettlePermanentErrors
	ch <- self.DistributorPayoutFailures
	ch <- self.DistributorStoreSaveFailures
	ch <- self.ChainRpcRequestErrors
	ch <- self.ChainTxSubmitErrors
	ch <- self.RedisPublishErrors
	ch <- self.RedisPersistentFailures

	// State
	ch <- self.MonitorPoolsPolled
	ch <- self.MonitorParticipantsChecked
	ch <- self.MonitorVerificationsPassed
	ch <- self.MonitorVerificationsFailed
	ch <- self.MonitorVerificationsSaved
	ch <- self.MonitorChainSubmissions
	ch <- self.MonitorParticipantsEliminated
	ch <- self.ActivatorPoolsActivated
	ch <- self.ActivatorRecruitmentsExtended
	ch <- self.DistributorPoolsEnded
	ch <- self.DistributorPoolsSettled
	ch <- self.DistributorPayoutsIssued
	ch <- self.DistributorLamportsDistributed
	ch <- self.ChainRpcRequests
	ch <- self.ChainTxsSubmitted
	ch <- self.ChainAccountCacheHits
	ch <- self.RedisMessagesPublished
}

// Collect implements required collect function for all promehteus collectors
func (self *Collector) Collect(ch chan<- prometheus.Metric) {
	// Run
	ch <- prometheus.MustNewConstMetric(self.UpForSeconds, prometheus.GaugeValue, float64(self.monitor.Report.Run.State.UpForSeconds.Load()))

	// Errors
	ch <- prometheus.MustNewConstMetric(self.MonitorPollerFetchError, prometheus.CounterValue, float64(self.monitor.Report.Monitor.Errors.PollerFetchError.Load()))
	ch <- prometheus.MustNewConstMetric(self.MonitorCheckerVerificationErrors, prometheus.CounterValue, float64(self.monitor.Report.Monitor.Errors.CheckerVerificationErrors.Load()))
	ch <- prometheus.MustNewConstMetric(self.MonitorCheckerSubmitPermanentErrors, prometheus.CounterValue, float64(self.monitor.Report.Monitor.Errors.CheckerSubmitPermanentErrors.Load()))
	ch <- prometheus.MustNewConstMetric(self.MonitorStoreSaveFailures, prometheus.CounterValue, float64(self.monitor.Report.Monitor.Errors.StoreSaveFailures.Load()))
	ch <- prometheus.MustNewConstMetric(self.ActivatorFetchError, prometheus.CounterValue, float64(self.monitor.Report.Activator.Errors.FetchError.Load()))
	ch <- prometheus.MustNewConstMetric(self.ActivatorActivationFailures, prometheus.CounterValue, float64(self.monitor.Report.Activator.Errors.ActivationFailures.Load()))
	ch <- prometheus.MustNewConstMetric(self.DistributorPollerFetchError, prometheus.CounterValue, float64(self.monitor.Report.Distributor.Errors.PollerFetchError.Load()))
	ch <- prometheus.MustNewConstMetric(self.DistributorSettlePermanentErrors, prometheus.CounterValue, float64(self.monitor.Report.Distributor.Errors.SettlePermanentErrors.Load()))
	ch <- prometheus.MustNewConstMetric(self.DistributorPayoutFailures, prometheus.CounterValue, float64(self.monitor.Report.Distributor.Errors.PayoutFailures.Load()))
	ch <- prometheus.MustNewConstMetric(self.DistributorStoreSaveFailures, prometheus.CounterValue, float64(self.monitor.Report.Distributor.Errors.StoreSaveFailures.Load()))
	ch <- prometheus.MustNewConstMetric(self.ChainRpcRequestErrors, prometheus.CounterValue, float64(self.monitor.Report.Chain.Errors.RpcRequestErrors.Load()))
	ch <- prometheus.MustNewConstMetric(self.ChainTxSubmitErrors, prometheus.CounterValue, float64(self.monitor.Report.Chain.Errors.TxSubmitErrors.Load()))
	ch <- prometheus.MustNewConstMetric(self.RedisPublishErrors, prometheus.CounterValue, float64(self.monitor.Report.RedisPublisher.Errors.Publish.Load()))
	ch <- prometheus.MustNewConstMetric(self.RedisPersistentFailures, prometheus.CounterValue, float64(self.monitor.Report.RedisPublisher.Errors.PersistentFailure.Load()))

	// State
	ch <- prometheus.MustNewConstMetric(self.MonitorPoolsPolled, prometheus.CounterValue, float64(self.monitor.Report.Monitor.State.PoolsPolled.Load()))
	ch <- prometheus.MustNewConstMetric(self.MonitorParticipantsChecked, prometheus.CounterValue, float64(self.monitor.Report.Monitor.State.ParticipantsChecked.Load()))
	ch <- prometheus.MustNewConstMetric(self.MonitorVerificationsPassed, prometheus.CounterValue, float64(self.monitor.Report.Monitor.State.VerificationsPassed.Load()))
	ch <- prometheus.MustNewConstMetric(self.MonitorVerificationsFailed, prometheus.CounterValue, float64(self.monitor.Report.Monitor.State.VerificationsFailed.Load()))
	ch <- prometheus.MustNewConstMetric(self.MonitorVerificationsSaved, prometheus.CounterValue, float64(self.monitor.Report.Monitor.State.VerificationsSaved.Load()))
	ch <- prometheus.MustNewConstMetric(self.MonitorChainSubmissions, prometheus.CounterValue, float64(self.monitor.Report.Monitor.State.ChainSubmissions.Load()))
	ch <- prometheus.MustNewConstMetric(self.MonitorParticipantsEliminated, prometheus.CounterValue, float64(self.monitor.Report.Monitor.State.ParticipantsEliminated.Load()))
	ch <- prometheus.MustNewConstMetric(self.ActivatorPoolsActivated, prometheus.CounterValue, float64(self.monitor.Report.Activator.State.PoolsActivated.Load()))
	ch <- prometheus.MustNewConstMetric(self.ActivatorRecruitmentsExtended, prometheus.CounterValue, float64(self.monitor.Report.Activator.State.RecruitmentsExtended.Load()))
	ch <- prometheus.MustNewConstMetric(self.DistributorPoolsEnded, prometheus.CounterValue, float64(self.monitor.Report.Distributor.State.PoolsEnded.Load()))
	ch <- prometheus.MustNewConstMetric(self.DistributorPoolsSettled, prometheus.CounterValue, float64(self.monitor.Report.Distributor.State.PoolsSettled.Load()))
	ch <- prometheus.MustNewConstMetric(self.DistributorPayoutsIssued, prometheus.CounterValue, float64(self.monitor.Report.Distributor.State.PayoutsIssued.Load()))
	ch <- prometheus.MustNewConstMetric(self.DistributorLamportsDistributed, prometheus.CounterValue, float64(self.monitor.Report.Distributor.State.LamportsDistributed.Load()))
	ch <- prometheus.MustNewConstMetric(self.ChainRpcRequests, prometheus.CounterValue, float64(self.monitor.Report.Chain.State.RpcRequests.Load()))
	ch <- prometheus.MustNewConstMetric(self.ChainTxsSubmitted, prometheus.CounterValue, float64(self.monitor.Report.Chain.State.TxsSubmitted.Load()))
	ch <- prometheus.MustNewConstMetric(self.ChainAccountCacheHits, prometheus.CounterValue, float64(self.monitor.Report.Chain.State.AccountCacheHits.Load()))
	ch <- prometheus.MustNewConstMetric(self.RedisMessagesPublished, prometheus.CounterValue, float64(self.monitor.Report.RedisPublisher.State.MessagesPublished.Load()))
}
