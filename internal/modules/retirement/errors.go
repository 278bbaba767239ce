package retirement

import "errors"

var (
	// ErrInvalidWithdrawalRate is returned when the withdrawal rate is zero, negative or NaN.
	ErrInvalidWithdrawalRate = errors.New("withdrawal rate must be positive")

	// ErrInvalidHorizon is returned when the retirement age is not after the current age.
	ErrInvalidHorizon = errors.New("retirement age must be greater than current age")

	// ErrNonFiniteResult is returned when the assumptions produce NaN or infinite output.
	ErrNonFiniteResult = errors.New("analysis produced a non-finite result")
)
