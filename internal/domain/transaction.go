package domain

import "fmt"

type DisputeState string

const (
	DisputeStateNormal      DisputeState = "normal"
	DisputeStateDisputed    DisputeState = "disputed"
	DisputeStateChargedBack DisputeState = "charged_back"
)

// A resolve returns a disputed transaction to normal, so it can be
// disputed again; charged_back is terminal.
var allowedTransitions = map[DisputeState][]DisputeState{
	DisputeStateNormal:   {DisputeStateDisputed},
	DisputeStateDisputed: {DisputeStateNormal, DisputeStateChargedBack},
}

func ValidateTransition(from, to DisputeState) error {
	for _, allowed := range allowedTransitions[from] {
		if to == allowed {
			return nil
		}
	}
	return fmt.Errorf("ValidateTransition: %s to %s: %w", from, to, ErrInvalidDisputeState)
}

type LoggedTransaction struct {
	ID     uint32
	Client uint16
	Amount Amount
	State  DisputeState
}
