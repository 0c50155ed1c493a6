package domain

import "errors"

var (
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrAccountLocked        = errors.New("account locked")
	ErrDuplicateTransaction = errors.New("duplicate transaction id")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrUnknownTransaction   = errors.New("unknown transaction")
	ErrClientMismatch       = errors.New("client does not own transaction")
	ErrInvalidDisputeState  = errors.New("invalid dispute state transition")
)

var rejections = []error{
	ErrInvalidAmount,
	ErrAccountLocked,
	ErrDuplicateTransaction,
	ErrInsufficientFunds,
	ErrUnknownTransaction,
	ErrClientMismatch,
	ErrInvalidDisputeState,
}

// IsRejection separates per-record rejections, which the engine skips
// past, from infrastructure failures, which stop the run.
func IsRejection(err error) bool {
	for _, sentinel := range rejections {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
