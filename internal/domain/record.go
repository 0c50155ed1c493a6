package domain

import "fmt"

type Kind string

const (
	KindDeposit    Kind = "deposit"
	KindWithdrawal Kind = "withdrawal"
	KindDispute    Kind = "dispute"
	KindResolve    Kind = "resolve"
	KindChargeback Kind = "chargeback"
)

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindDeposit, KindWithdrawal, KindDispute, KindResolve, KindChargeback:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("ParseKind: unknown record type %q", s)
	}
}

func (k Kind) HasAmount() bool {
	return k == KindDeposit || k == KindWithdrawal
}

type Record struct {
	Kind   Kind
	Client uint16
	Tx     uint32
	Amount Amount
}
