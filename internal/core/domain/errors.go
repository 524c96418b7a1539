package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrComputation       = errors.New("streak computation failed")
	ErrStoreUnavailable  = errors.New("storage unavailable")
	ErrAggregateNotFound = errors.New("daily aggregate not found")
)

var (
	ErrInvalidUserID      = fmt.Errorf("%w: user_id is required", ErrValidation)
	ErrInvalidCalories    = fmt.Errorf("%w: calories cannot be negative", ErrValidation)
	ErrInvalidWaterAmount = fmt.Errorf("%w: water amount must be positive", ErrValidation)
	ErrCaloriesTooLarge   = fmt.Errorf("%w: calories cannot exceed %d per entry", ErrValidation, MaxCalories)
	ErrWaterTooLarge      = fmt.Errorf("%w: water amount cannot exceed %d per entry", ErrValidation, MaxWaterAmount)
	ErrDailyTotalExceeded = fmt.Errorf("%w: daily total must stay between 0 and %d", ErrValidation, MaxDailyTotal)
	ErrMealNameTooLong    = fmt.Errorf("%w: meal name is too long (max %d chars)", ErrValidation, MaxMealNameLen)
	ErrInvalidTimestamp   = fmt.Errorf("%w: timestamp is required", ErrValidation)
	ErrInvalidDateRange   = fmt.Errorf("%w: invalid date range", ErrValidation)

	ErrMalformedDate = fmt.Errorf("%w: malformed stored date", ErrComputation)
)
