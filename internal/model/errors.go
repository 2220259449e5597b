package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Record validation errors. Construction fails on the first violated
// invariant; callers match these with errors.Is.
var (
	// ErrMissingField indicates a required reference or name was absent.
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidAmount indicates an amount that is not strictly positive.
	ErrInvalidAmount = errors.New("amount must be greater than 0")
	// ErrInvalidDayOfMonth indicates a day-of-month outside [1,31].
	ErrInvalidDayOfMonth = errors.New("day of month must be between 1 and 31")
	// ErrMissingRecurrenceDay indicates a recurring record without a day of month.
	ErrMissingRecurrenceDay = errors.New("day of month is required for recurring records")
	// ErrDateOrdering indicates an expense dated after its due date.
	ErrDateOrdering = errors.New("expense date cannot be after due date")
	// ErrSameAccount indicates a transfer between identical accounts.
	ErrSameAccount = errors.New("cannot transfer to the same account")
	// ErrInvalidExchangeRate indicates an exchange rate that is not strictly positive.
	ErrInvalidExchangeRate = errors.New("exchange rate must be greater than 0")
)

func missingField(name string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, name)
}

// unquote decodes a JSON string token.
func unquote(data []byte) (string, error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", fmt.Errorf("expected string: %w", err)
	}
	return s, nil
}
