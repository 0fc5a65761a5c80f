package contracts

import "errors"

// Error taxonomy shared across the engine
// ⭐ SSOT: 에러 분류는 여기서만 정의
var (
	// ErrInvalidInput marks malformed or out-of-range caller input,
	// rejected before any scoring happens.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidData marks an upstream payload that failed validation.
	// Never cached, never retried.
	ErrInvalidData = errors.New("invalid data")

	// ErrInsufficientData marks a price history too short for
	// forecasting or correlation. Hard failure, no silent default.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrFetchFailed marks a transient upstream failure that survived
	// the bounded retry budget.
	ErrFetchFailed = errors.New("fetch failed after retries")

	// ErrTimeout marks a call or batch deadline that elapsed.
	ErrTimeout = errors.New("deadline exceeded")
)
