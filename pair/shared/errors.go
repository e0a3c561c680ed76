package shared

import "errors"

var (
	ErrDeadlineExceeded    = errors.New("deadline exceeded")
	ErrPoolMatured         = errors.New("pool matured")
	ErrPoolNotMatured      = errors.New("pool not matured")
	ErrZeroAmount          = errors.New("amount is zero")
	ErrReserveOverflow     = errors.New("reserve overflows uint112")
	ErrInvarianceViolation = errors.New("constant product invariance violated")
	ErrMinimumNotMet       = errors.New("minimum not met")
	ErrInvalidSeed         = errors.New("invalid seed")

	ErrInvalidPercent      = errors.New("percent exceeds 2^32")
	ErrInsufficientReserve = errors.New("insufficient reserve")
	ErrNoLiquidity         = errors.New("pool has no liquidity")
	ErrPoolInitialized     = errors.New("pool already initialized")
	ErrInvalidFee          = errors.New("invalid fee")
	ErrDueNotFound         = errors.New("due not found")
)
