package usecase

import (
	"context"
	"errors"
	"io"

	"github.com/rs/zerolog"

	"github.com/iho/payflow/internal/domain"
	"github.com/iho/payflow/internal/infrastructure/metrics"
	"github.com/iho/payflow/internal/normalizer"
)

// RecordSource yields raw rows in stream order. io.EOF ends the stream;
// any other error aborts the fold.
type RecordSource interface {
	Next() (normalizer.Record, error)
}

// Applier applies one validated operation against the ledger.
type Applier interface {
	Apply(ctx context.Context, op domain.Operation) error
}

// Summary counts the outcomes of one fold.
type Summary struct {
	Applied   int
	Rejected  int
	Malformed int
}

// ProcessUseCase folds a record stream into the ledger: normalize each
// row, apply the resulting operation, in the exact order received.
// Rejections at either stage are logged and counted, never fatal. The
// final balances depend on the ordering being preserved, so rows are
// processed strictly one at a time.
type ProcessUseCase struct {
	engine  Applier
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// NewProcessUseCase creates a new ProcessUseCase.
func NewProcessUseCase(engine Applier, logger zerolog.Logger, m *metrics.Metrics) *ProcessUseCase {
	return &ProcessUseCase{
		engine:  engine,
		logger:  logger,
		metrics: m,
	}
}

// Run consumes src until exhaustion. It returns an error only when the
// source itself fails.
func (uc *ProcessUseCase) Run(ctx context.Context, src RecordSource) (Summary, error) {
	var s Summary
	for {
		rec, err := src.Next()
		if errors.Is(err, io.EOF) {
			return s, nil
		}
		if err != nil {
			return s, err
		}

		op, err := normalizer.Normalize(rec)
		if err != nil {
			s.Malformed++
			uc.metrics.RecordsRejected.Inc()
			uc.logger.Debug().
				Str("type", rec.Type).
				Str("client", rec.Client).
				Str("tx", rec.Tx).
				Err(err).
				Msg("record rejected")
			continue
		}

		if err := uc.engine.Apply(ctx, op); err != nil {
			s.Rejected++
			uc.metrics.OperationsRejected.WithLabelValues(reasonLabel(err)).Inc()
			uc.logger.Debug().
				Str("operation", operationLabel(op)).
				Err(err).
				Msg("operation rejected")
			continue
		}

		s.Applied++
		uc.metrics.OperationsApplied.WithLabelValues(operationLabel(op)).Inc()
	}
}

func operationLabel(op domain.Operation) string {
	switch op := op.(type) {
	case domain.Creation:
		if op.Amount.IsNegative() {
			return "withdrawal"
		}
		return "deposit"
	case domain.Modifier:
		switch op.Target {
		case domain.StateDisputed:
			return "dispute"
		case domain.StateResolved:
			return "resolve"
		case domain.StateChargeback:
			return "chargeback"
		}
	}
	return "unknown"
}

// reasonLabel keeps rejection metric labels to a small fixed set.
func reasonLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrDuplicateTransaction):
		return "duplicate_tx"
	case errors.Is(err, domain.ErrTransactionNotFound):
		return "unknown_tx"
	case errors.Is(err, domain.ErrClientNotFound):
		return "unknown_client"
	case errors.Is(err, domain.ErrClientMismatch):
		return "client_mismatch"
	case errors.Is(err, domain.ErrAccountLocked):
		return "account_locked"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrBalanceOverflow):
		return "balance_overflow"
	case errors.Is(err, domain.ErrInvalidTransition):
		return "invalid_transition"
	default:
		return "other"
	}
}
