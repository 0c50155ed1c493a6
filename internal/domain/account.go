package domain

type Account struct {
	Client    uint16
	Available Amount
	Held      Amount
	Locked    bool
}

func (a *Account) Total() Amount {
	return a.Available + a.Held
}

type AccountSnapshot struct {
	Client    uint16
	Available Amount
	Held      Amount
	Total     Amount
	Locked    bool
}
