package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ActionsTotal tracks game actions by outcome
	ActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guiverse_actions_total",
			Help: "The total number of game actions",
		},
		[]string{"action", "status"}, // success, rejected, failed
	)

	// ActionSeconds tracks time taken by game actions, chain latency included
	ActionSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "guiverse_action_seconds",
			Help:    "Time taken to complete a game action in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"action"},
	)

	// ActionsPending tracks actions submitted but not yet settled
	ActionsPending = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "guiverse_actions_pending",
			Help: "The number of game actions waiting on the chain",
		},
		[]string{"action"},
	)

	// WalletBalance tracks the ledger balance after each settled command
	WalletBalance = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "guiverse_wallet_balance",
		Help: "The current $GUI balance held by the ledger",
	})

	// LedgerCommands tracks ledger commands by operation and status
	LedgerCommands = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guiverse_ledger_commands_total",
			Help: "The total number of ledger commands processed",
		},
		[]string{"operation", "status"},
	)

	// ChainRequestsTotal tracks chain collaborator requests by status
	ChainRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guiverse_chain_requests_total",
			Help: "The total number of chain collaborator requests",
		},
		[]string{"method", "status"},
	)

	// ChainBalance tracks the on-chain balance of the connected wallet
	ChainBalance = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "guiverse_chain_balance",
		Help: "The last balance reported by the chain collaborator",
	})

	// TasksRunning tracks the long-lived process tasks
	TasksRunning = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "guiverse_tasks_running",
		Help: "The number of long-lived tasks currently running",
	})

	// StorageOperations tracks wallet storage operations
	StorageOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guiverse_storage_operations_total",
			Help: "The total number of wallet storage operations",
		},
		[]string{"operation", "status"},
	)
)

// RecordAction records a finished game action
func RecordAction(action, status string, duration float64) {
	ActionsTotal.WithLabelValues(action, status).Inc()
	ActionSeconds.WithLabelValues(action).Observe(duration)
}

// SetPending sets the pending count for an action
func SetPending(action string, count int) {
	ActionsPending.WithLabelValues(action).Set(float64(count))
}

// SetBalance sets the wallet balance gauge
func SetBalance(balance int64) {
	WalletBalance.Set(float64(balance))
}

// RecordLedgerCommand records a processed ledger command
func RecordLedgerCommand(operation, status string) {
	LedgerCommands.WithLabelValues(operation, status).Inc()
}

// RecordChainRequest records a chain collaborator request
func RecordChainRequest(method, status string) {
	ChainRequestsTotal.WithLabelValues(method, status).Inc()
}

// SetChainBalance sets the chain balance gauge
func SetChainBalance(balance int64) {
	ChainBalance.Set(float64(balance))
}

// RecordStorageOperation records a wallet storage operation
func RecordStorageOperation(operation, status string) {
	StorageOperations.WithLabelValues(operation, status).Inc()
}

// Status converts an error into a metric status label
func Status(err error) string {
	if err != nil {
		return "failed"
	}
	return "success"
}
