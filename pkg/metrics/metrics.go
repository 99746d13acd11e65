// Package metrics exposes the prometheus collectors of the ledger core.
package metrics

import (
	"errors"
	"time"

	"github.com/amirasaad/bankcore/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "bankcore"

// Outcome labels.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Metrics groups the collectors. A nil *Metrics is a no-op.
type Metrics struct {
	ledgerPostings     *prometheus.CounterVec
	ledgerVolume       *prometheus.CounterVec
	workflowOperations *prometheus.CounterVec
	workflowDuration   *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ledgerPostings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ledger_postings_total",
				Help:      "Total number of ledger postings",
			},
			[]string{"type", "direction"},
		),
		ledgerVolume: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ledger_volume_total",
				Help:      "Sum of posted amounts",
			},
			[]string{"field", "direction"},
		),
		workflowOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "workflow_operations_total",
				Help:      "Total number of workflow operations by outcome",
			},
			[]string{"workflow", "operation", "outcome"},
		),
		workflowDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "workflow_operation_duration_seconds",
				Help:      "Workflow operation latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"workflow", "operation"},
		),
	}
	if reg != nil {
		m.ledgerPostings = register(reg, m.ledgerPostings)
		m.ledgerVolume = register(reg, m.ledgerVolume)
		m.workflowOperations = register(reg, m.workflowOperations)
		m.workflowDuration = register(reg, m.workflowDuration)
	}
	return m
}

// register adds c to reg, reusing the collector already registered under
// the same descriptor.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	err := reg.Register(c)
	if err == nil {
		return c
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(T); ok {
			return existing
		}
	}
	panic(err)
}

// ObservePosting records one ledger posting.
func (m *Metrics) ObservePosting(txType, field, direction string, amount float64) {
	if m == nil {
		return
	}
	m.ledgerPostings.WithLabelValues(txType, direction).Inc()
	m.ledgerVolume.WithLabelValues(field, direction).Add(amount)
}

// ObserveOperation records the outcome and latency of a workflow operation.
func (m *Metrics) ObserveOperation(workflow, operation string, started time.Time, err error) {
	if m == nil {
		return
	}
	m.workflowOperations.WithLabelValues(workflow, operation, Outcome(err)).Inc()
	m.workflowDuration.WithLabelValues(workflow, operation).Observe(time.Since(started).Seconds())
}

// Outcome classifies err: business rule failures are "rejected", anything
// else non-nil is "error".
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, domain.ErrInsufficientBalance),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidCode),
		errors.Is(err, domain.ErrKycNotApproved),
		errors.Is(err, domain.ErrAlreadyProcessed),
		errors.Is(err, domain.ErrAlreadyTerminal),
		errors.Is(err, domain.ErrSelfTransfer),
		errors.Is(err, domain.ErrRecipientNotFound),
		errors.Is(err, domain.ErrPaymentMethodNotFound),
		errors.Is(err, domain.ErrAccountRestricted),
		errors.Is(err, domain.ErrCodesNotVerified),
		errors.Is(err, domain.ErrValidation):
		return OutcomeRejected
	}
	return OutcomeError
}
