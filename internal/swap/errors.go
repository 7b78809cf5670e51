package swap

import "errors"

// Validation failures abort a swap before any instruction is broadcast.
// Upstream RPC and relay errors are wrapped and propagated as-is.
var (
	// ErrUnauthorized means no signing owner was available for the call.
	ErrUnauthorized = errors.New("no signing owner available")

	// ErrInvalidPool means the resolved pool cannot serve the swap:
	// missing authority or an unquotable amount.
	ErrInvalidPool = errors.New("pool is not valid for swapping")

	// ErrInvalidAccount means a leg account failed validation: the source
	// is not a usable token account, or the associated destination
	// belongs to a different owner.
	ErrInvalidAccount = errors.New("account is not valid for swapping")

	// ErrFeePayerUnavailable means the relay path could not produce a
	// usable temporary fee-payer account.
	ErrFeePayerUnavailable = errors.New("relay fee payer unavailable")
)
