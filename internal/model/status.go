package model

import "fmt"

// TransactionStatus tracks where a transfer sits in its lifecycle.
type TransactionStatus string

// Transaction status constants.
const (
	StatusPending    TransactionStatus = "pending"
	StatusCompleted  TransactionStatus = "completed"
	StatusCancelled  TransactionStatus = "cancelled"
	StatusFailed     TransactionStatus = "failed"
	StatusRefunded   TransactionStatus = "refunded"
	StatusProcessing TransactionStatus = "processing"
)

// TransactionStatusValues returns all supported statuses.
func TransactionStatusValues() []TransactionStatus {
	return []TransactionStatus{
		StatusPending, StatusCompleted, StatusCancelled,
		StatusFailed, StatusRefunded, StatusProcessing,
	}
}

// Valid reports whether s is one of the supported statuses.
func (s TransactionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled,
		StatusFailed, StatusRefunded, StatusProcessing:
		return true
	}
	return false
}

// ParseTransactionStatus converts untrusted input into a TransactionStatus.
func ParseTransactionStatus(str string) (TransactionStatus, error) {
	s := TransactionStatus(str)
	if !s.Valid() {
		return "", fmt.Errorf("unsupported transaction status %q", str)
	}
	return s, nil
}

// UnmarshalJSON rejects statuses outside the supported set.
func (s *TransactionStatus) UnmarshalJSON(data []byte) error {
	str, err := unquote(data)
	if err != nil {
		return fmt.Errorf("transaction status: %w", err)
	}
	parsed, err := ParseTransactionStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
