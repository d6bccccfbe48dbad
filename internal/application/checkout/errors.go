package checkout

import "errors"

var (
	ErrSubmitInFlight   = errors.New("an order submission is already in progress")
	ErrSessionCompleted = errors.New("checkout session is already completed")
)
