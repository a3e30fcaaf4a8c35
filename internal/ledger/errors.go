package ledger

import "errors"

var (
	ErrInvalidPeriod         = errors.New("invalid period")
	ErrInvalidYear           = errors.New("invalid fiscal year")
	ErrInvalidAccountNumber  = errors.New("invalid account number")
	ErrInvalidDate           = errors.New("invalid transaction date")
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrUnbalancedTransaction = errors.New("transaction postings do not balance")
	ErrTooFewPostings        = errors.New("transaction must have at least 2 postings")
	ErrEmptyDescription      = errors.New("transaction description is required")
	ErrTransactionNotFound   = errors.New("transaction not found")
	ErrUnknownTemplate       = errors.New("unknown posting template")
)
