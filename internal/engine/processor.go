package engine

import (
	"context"
	"fmt"

	"github.com/venlock/payments-engine/internal/domain"
	"github.com/venlock/payments-engine/internal/ledger"
)

type TransactionLog interface {
	RecordDeposit(ctx context.Context, tx domain.LoggedTransaction) error
	Lookup(ctx context.Context, txID uint32) (domain.LoggedTransaction, error)
	SetState(ctx context.Context, txID uint32, state domain.DisputeState) error
}

// Processor applies one record at a time. Every check runs before any
// state is touched, so a rejected record leaves no trace.
type Processor struct {
	ledger *ledger.Ledger
	txlog  TransactionLog
}

func NewProcessor(led *ledger.Ledger, txlog TransactionLog) *Processor {
	return &Processor{ledger: led, txlog: txlog}
}

func (p *Processor) Apply(ctx context.Context, rec domain.Record) error {
	switch rec.Kind {
	case domain.KindDeposit:
		return p.applyDeposit(ctx, rec)
	case domain.KindWithdrawal:
		return p.applyWithdrawal(rec)
	case domain.KindDispute:
		return p.applyDispute(ctx, rec)
	case domain.KindResolve:
		return p.applyResolve(ctx, rec)
	case domain.KindChargeback:
		return p.applyChargeback(ctx, rec)
	default:
		return fmt.Errorf("Apply: unknown record kind %q", rec.Kind)
	}
}

func (p *Processor) applyDeposit(ctx context.Context, rec domain.Record) error {
	if rec.Amount <= 0 {
		return fmt.Errorf("applyDeposit: %w", domain.ErrInvalidAmount)
	}

	acct := p.ledger.GetOrCreate(rec.Client)
	if acct.Locked {
		return fmt.Errorf("applyDeposit: client %d: %w", rec.Client, domain.ErrAccountLocked)
	}

	if err := p.txlog.RecordDeposit(ctx, domain.LoggedTransaction{
		ID:     rec.Tx,
		Client: rec.Client,
		Amount: rec.Amount,
		State:  domain.DisputeStateNormal,
	}); err != nil {
		return fmt.Errorf("applyDeposit: %w", err)
	}

	acct.Available += rec.Amount
	return nil
}

func (p *Processor) applyWithdrawal(rec domain.Record) error {
	if rec.Amount <= 0 {
		return fmt.Errorf("applyWithdrawal: %w", domain.ErrInvalidAmount)
	}

	acct := p.ledger.GetOrCreate(rec.Client)
	if acct.Locked {
		return fmt.Errorf("applyWithdrawal: client %d: %w", rec.Client, domain.ErrAccountLocked)
	}
	if acct.Available < rec.Amount {
		return fmt.Errorf("applyWithdrawal: client %d: %w", rec.Client, domain.ErrInsufficientFunds)
	}

	acct.Available -= rec.Amount
	return nil
}

func (p *Processor) applyDispute(ctx context.Context, rec domain.Record) error {
	tx, err := p.lookupOwned(ctx, "applyDispute", rec)
	if err != nil {
		return err
	}
	if tx.State != domain.DisputeStateNormal {
		return fmt.Errorf("applyDispute: tx %d is %s: %w", rec.Tx, tx.State, domain.ErrInvalidDisputeState)
	}

	// The disputed funds may already have been withdrawn; holding them
	// would drive available negative.
	acct := p.ledger.GetOrCreate(rec.Client)
	if acct.Available < tx.Amount {
		return fmt.Errorf("applyDispute: client %d: %w", rec.Client, domain.ErrInsufficientFunds)
	}

	if err := p.txlog.SetState(ctx, rec.Tx, domain.DisputeStateDisputed); err != nil {
		return fmt.Errorf("applyDispute: %w", err)
	}
	acct.Available -= tx.Amount
	acct.Held += tx.Amount
	return nil
}

func (p *Processor) applyResolve(ctx context.Context, rec domain.Record) error {
	tx, err := p.lookupOwned(ctx, "applyResolve", rec)
	if err != nil {
		return err
	}
	if tx.State != domain.DisputeStateDisputed {
		return fmt.Errorf("applyResolve: tx %d is %s: %w", rec.Tx, tx.State, domain.ErrInvalidDisputeState)
	}

	if err := p.txlog.SetState(ctx, rec.Tx, domain.DisputeStateNormal); err != nil {
		return fmt.Errorf("applyResolve: %w", err)
	}

	acct := p.ledger.GetOrCreate(rec.Client)
	acct.Held -= tx.Amount
	acct.Available += tx.Amount
	return nil
}

func (p *Processor) applyChargeback(ctx context.Context, rec domain.Record) error {
	tx, err := p.lookupOwned(ctx, "applyChargeback", rec)
	if err != nil {
		return err
	}
	if tx.State != domain.DisputeStateDisputed {
		return fmt.Errorf("applyChargeback: tx %d is %s: %w", rec.Tx, tx.State, domain.ErrInvalidDisputeState)
	}

	if err := p.txlog.SetState(ctx, rec.Tx, domain.DisputeStateChargedBack); err != nil {
		return fmt.Errorf("applyChargeback: %w", err)
	}

	acct := p.ledger.GetOrCreate(rec.Client)
	acct.Held -= tx.Amount
	acct.Locked = true
	return nil
}

func (p *Processor) lookupOwned(ctx context.Context, op string, rec domain.Record) (domain.LoggedTransaction, error) {
	tx, err := p.txlog.Lookup(ctx, rec.Tx)
	if err != nil {
		return domain.LoggedTransaction{}, fmt.Errorf("%s: %w", op, err)
	}
	if tx.Client != rec.Client {
		return domain.LoggedTransaction{}, fmt.Errorf("%s: tx %d belongs to client %d: %w", op, rec.Tx, tx.Client, domain.ErrClientMismatch)
	}
	return tx, nil
}
