package wrapped

import "errors"

var (
	// ErrEmptyLedger is returned when a ledger has no record at all.
	ErrEmptyLedger = errors.New("ledger is empty")
	// ErrUserNotFound is returned when the requested user has no record in a ledger.
	ErrUserNotFound = errors.New("user not found in ledger")
	// ErrMalformedRecord is returned when a record field cannot be decoded.
	ErrMalformedRecord = errors.New("malformed record")
)
