package txlog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/venlock/payments-engine/internal/domain"
)

// SQLiteStore spills the transaction log to an embedded database so
// streams whose log outgrows memory stay processable. The database is
// per-run scratch space: journaling and sync are off, and the file is
// disposable after the run.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_journal_mode=OFF&_synchronous=OFF", path))
	if err != nil {
		return nil, fmt.Errorf("NewSQLiteStore: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS logged_transactions (
			tx_id     INTEGER PRIMARY KEY,
			client_id INTEGER NOT NULL,
			amount    INTEGER NOT NULL,
			state     TEXT    NOT NULL
		)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("NewSQLiteStore: create table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) RecordDeposit(ctx context.Context, tx domain.LoggedTransaction) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO logged_transactions (tx_id, client_id, amount, state) VALUES (?, ?, ?, ?)`,
		tx.ID, tx.Client, int64(tx.Amount), string(tx.State),
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return fmt.Errorf("RecordDeposit: tx %d: %w", tx.ID, domain.ErrDuplicateTransaction)
		}
		return fmt.Errorf("RecordDeposit: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Lookup(ctx context.Context, txID uint32) (domain.LoggedTransaction, error) {
	var (
		tx     domain.LoggedTransaction
		amount int64
		state  string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT tx_id, client_id, amount, state FROM logged_transactions WHERE tx_id = ?`, txID,
	).Scan(&tx.ID, &tx.Client, &amount, &state)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.LoggedTransaction{}, fmt.Errorf("Lookup: tx %d: %w", txID, domain.ErrUnknownTransaction)
		}
		return domain.LoggedTransaction{}, fmt.Errorf("Lookup: %w", err)
	}

	tx.Amount = domain.Amount(amount)
	tx.State = domain.DisputeState(state)
	return tx, nil
}

func (s *SQLiteStore) SetState(ctx context.Context, txID uint32, state domain.DisputeState) error {
	current, err := s.Lookup(ctx, txID)
	if err != nil {
		return fmt.Errorf("SetState: %w", err)
	}
	if err := domain.ValidateTransition(current.State, state); err != nil {
		return fmt.Errorf("SetState: tx %d: %w", txID, err)
	}

	if _, err := s.db.ExecContext(ctx,
		`UPDATE logged_transactions SET state = ? WHERE tx_id = ?`, string(state), txID,
	); err != nil {
		return fmt.Errorf("SetState: %w", err)
	}
	return nil
}
