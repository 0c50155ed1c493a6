package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/venlock/payments-engine/internal/domain"
	"github.com/venlock/payments-engine/pkg/audit"
)

type RecordReader interface {
	Next() (domain.Record, error)
}

type Stats struct {
	Processed int
	Applied   int
	Rejected  int
	ByReason  map[string]int
}

// Runner drives the processor over a record stream. Rejections are
// logged and journaled and the stream keeps going; reader and store
// failures stop the run.
type Runner struct {
	processor *Processor
	journal   *audit.Journal
	logger    *slog.Logger
}

func NewRunner(processor *Processor, journal *audit.Journal, logger *slog.Logger) *Runner {
	return &Runner{processor: processor, journal: journal, logger: logger}
}

func (r *Runner) Run(ctx context.Context, stream RecordReader) (Stats, error) {
	stats := Stats{ByReason: make(map[string]int)}

	for seq := 1; ; seq++ {
		rec, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("Run: record %d: %w", seq, err)
		}

		stats.Processed++

		err = r.processor.Apply(ctx, rec)
		if err == nil {
			stats.Applied++
			r.logger.Debug("record applied", "seq", seq, "kind", rec.Kind, "client", rec.Client, "tx", rec.Tx)
			if err := r.journalOutcome(seq, rec, ""); err != nil {
				return stats, fmt.Errorf("Run: %w", err)
			}
			continue
		}

		if !domain.IsRejection(err) {
			return stats, fmt.Errorf("Run: record %d: %w", seq, err)
		}

		reason := rejectionReason(err)
		stats.Rejected++
		stats.ByReason[reason]++

		r.logger.Warn("record rejected",
			"seq", seq,
			"kind", rec.Kind,
			"client", rec.Client,
			"tx", rec.Tx,
			"reason", reason,
			"error", err,
		)
		if err := r.journalOutcome(seq, rec, reason); err != nil {
			return stats, fmt.Errorf("Run: %w", err)
		}
	}

	r.logger.Info("stream complete",
		"processed", stats.Processed,
		"applied", stats.Applied,
		"rejected", stats.Rejected,
	)
	return stats, nil
}

func (r *Runner) journalOutcome(seq int, rec domain.Record, reason string) error {
	if r.journal == nil {
		return nil
	}

	payload := fmt.Sprintf("seq=%d kind=%s client=%d tx=%d outcome=applied", seq, rec.Kind, rec.Client, rec.Tx)
	if reason != "" {
		payload = fmt.Sprintf("seq=%d kind=%s client=%d tx=%d outcome=rejected reason=%s", seq, rec.Kind, rec.Client, rec.Tx, reason)
	}

	if _, err := r.journal.Append(payload); err != nil {
		return fmt.Errorf("journalOutcome: %w", err)
	}
	return nil
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return "INVALID_AMOUNT"
	case errors.Is(err, domain.ErrAccountLocked):
		return "ACCOUNT_LOCKED"
	case errors.Is(err, domain.ErrDuplicateTransaction):
		return "DUPLICATE_TX_ID"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "INSUFFICIENT_FUNDS"
	case errors.Is(err, domain.ErrUnknownTransaction):
		return "UNKNOWN_TRANSACTION"
	case errors.Is(err, domain.ErrClientMismatch):
		return "CLIENT_MISMATCH"
	case errors.Is(err, domain.ErrInvalidDisputeState):
		return "INVALID_STATE"
	default:
		return "UNKNOWN"
	}
}
