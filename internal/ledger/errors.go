package ledger

import "errors"

// Sentinel errors for the settlement operations.
var (
	// ErrAlreadyRegistered is returned when registering an identity twice.
	ErrAlreadyRegistered = errors.New("ledger: farmer already registered")

	// ErrEmptyIdentity is returned when registering an empty identity token.
	ErrEmptyIdentity = errors.New("ledger: empty identity token")

	// ErrNotRegistered is returned when a purchase references an unknown
	// or unregistered identity.
	ErrNotRegistered = errors.New("ledger: farmer not registered")

	// ErrUnauthorized is returned when a caller other than the seller
	// attempts a seller-only action.
	ErrUnauthorized = errors.New("ledger: caller is not the seller")

	// ErrPriceNotSet is returned when purchasing a seed whose price is
	// still zero.
	ErrPriceNotSet = errors.New("ledger: seed price not set")

	// ErrInsufficientPayment is returned when the tendered amount does not
	// cover the total price.
	ErrInsufficientPayment = errors.New("ledger: tendered amount below total price")

	// ErrTransferFailed is returned when the payment to the seller fails;
	// the whole settlement is rolled back.
	ErrTransferFailed = errors.New("ledger: payment transfer failed")

	// ErrOverflow is returned when farm size times unit price does not fit
	// in a uint64. Checked explicitly, never left to wraparound.
	ErrOverflow = errors.New("ledger: total price overflows")

	// ErrUnknownSeed is returned for a seed type outside the catalogue.
	ErrUnknownSeed = errors.New("ledger: unknown seed type")

	// ErrNotFound is returned by lookups for missing records.
	ErrNotFound = errors.New("ledger: not found")
)
