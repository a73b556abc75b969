package ledger

import "errors"

// Domain errors. The command layer maps these to user-facing replies with
// errors.Is; none of them are fatal to the process.
var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrUnknownCard       = errors.New("target card does not exist")
	ErrSelfTransfer      = errors.New("cannot transfer to own card")
	ErrInsufficientFunds = errors.New("insufficient balance")
	ErrAlreadyCheckedIn  = errors.New("already checked in today")
	ErrExternalTransfer  = errors.New("external transfer failed")

	// ErrCardNumbers means card generation could not find a free number
	// within the attempt budget. At that point the card namespace is too
	// small for the account count and the deployment needs a new prefix.
	ErrCardNumbers = errors.New("card number space exhausted")
)
