package testutil

import "github.com/venlock/payments-engine/internal/domain"

func MustAmount(s string) domain.Amount {
	a, err := domain.ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

func Deposit(client uint16, tx uint32, amount string) domain.Record {
	return domain.Record{Kind: domain.KindDeposit, Client: client, Tx: tx, Amount: MustAmount(amount)}
}

func Withdrawal(client uint16, tx uint32, amount string) domain.Record {
	return domain.Record{Kind: domain.KindWithdrawal, Client: client, Tx: tx, Amount: MustAmount(amount)}
}

func Dispute(client uint16, tx uint32) domain.Record {
	return domain.Record{Kind: domain.KindDispute, Client: client, Tx: tx}
}

func Resolve(client uint16, tx uint32) domain.Record {
	return domain.Record{Kind: domain.KindResolve, Client: client, Tx: tx}
}

func Chargeback(client uint16, tx uint32) domain.Record {
	return domain.Record{Kind: domain.KindChargeback, Client: client, Tx: tx}
}
