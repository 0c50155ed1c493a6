package ledger

import "github.com/venlock/payments-engine/internal/domain"

// Ledger owns every account touched during a run. Records are applied
// by a single goroutine, so access is not synchronized.
type Ledger struct {
	accounts map[uint16]*domain.Account
}

func New() *Ledger {
	return &Ledger{accounts: make(map[uint16]*domain.Account)}
}

func (l *Ledger) GetOrCreate(client uint16) *domain.Account {
	acct, ok := l.accounts[client]
	if !ok {
		acct = &domain.Account{Client: client}
		l.accounts[client] = acct
	}
	return acct
}

func (l *Ledger) Len() int {
	return len(l.accounts)
}

func (l *Ledger) Snapshot() []domain.AccountSnapshot {
	out := make([]domain.AccountSnapshot, 0, len(l.accounts))
	for _, acct := range l.accounts {
		out = append(out, domain.AccountSnapshot{
			Client:    acct.Client,
			Available: acct.Available,
			Held:      acct.Held,
			Total:     acct.Total(),
			Locked:    acct.Locked,
		})
	}
	return out
}
