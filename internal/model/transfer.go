package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Transfer represents a movement of funds between two accounts owned by
// the same user.
type Transfer struct {
	ID              int64             `json:"id"`
	UserID          int64             `json:"user_id"`
	FromAccountID   int64             `json:"from_account_id"`
	ToAccountID     int64             `json:"to_account_id"`
	Amount          float64           `json:"amount"`
	FromCurrency    Currency          `json:"from_currency"`
	ToCurrency      Currency          `json:"to_currency"`
	Date            Timestamp         `json:"date"`
	ExchangeRate    float64           `json:"exchange_rate"`
	ConvertedAmount float64           `json:"converted_amount"`
	Fee             float64           `json:"fee"`
	Description     string            `json:"description"`
	ReferenceNumber *string           `json:"reference_number"`
	Status          TransactionStatus `json:"status"`
	Notes           string            `json:"notes"`
	CreatedAt       Timestamp         `json:"created_at"`
	UpdatedAt       Timestamp         `json:"updated_at"`
	IsActive        bool              `json:"is_active"`
}

// TransferDraft is the loosely structured input a Transfer is built from.
type TransferDraft struct {
	ID              int64              `json:"id"`
	UserID          int64              `json:"user_id"`
	FromAccountID   int64              `json:"from_account_id"`
	ToAccountID     int64              `json:"to_account_id"`
	Amount          float64            `json:"amount"`
	FromCurrency    *Currency          `json:"from_currency"`
	ToCurrency      *Currency          `json:"to_currency"`
	Date            *Timestamp         `json:"date"`
	ExchangeRate    *float64           `json:"exchange_rate"`
	ConvertedAmount *float64           `json:"converted_amount"`
	Fee             *float64           `json:"fee"`
	Description     *string            `json:"description"`
	ReferenceNumber *string            `json:"reference_number"`
	Status          *TransactionStatus `json:"status"`
	Notes           *string            `json:"notes"`
	CreatedAt       *Timestamp         `json:"created_at"`
	UpdatedAt       *Timestamp         `json:"updated_at"`
	IsActive        *bool              `json:"is_active"`
}

// NewTransfer builds a validated Transfer from a draft. The exchange
// rate defaults to 1.0 and, when the draft carries no converted amount,
// it is derived once as amount x rate and stored, never recomputed.
func NewTransfer(d TransferDraft, now time.Time) (*Transfer, error) {
	transfer := &Transfer{
		ID:              d.ID,
		UserID:          d.UserID,
		FromAccountID:   d.FromAccountID,
		ToAccountID:     d.ToAccountID,
		Amount:          d.Amount,
		FromCurrency:    DefaultCurrency,
		ToCurrency:      DefaultCurrency,
		Date:            timestampOr(d.Date, now),
		ExchangeRate:    floatOr(d.ExchangeRate, 1.0),
		Fee:             floatOr(d.Fee, 0.0),
		Description:     stringOr(d.Description, ""),
		ReferenceNumber: clonePtr(d.ReferenceNumber),
		Status:          StatusPending,
		Notes:           stringOr(d.Notes, ""),
		CreatedAt:       timestampOr(d.CreatedAt, now),
		UpdatedAt:       timestampOr(d.UpdatedAt, now),
		IsActive:        boolOr(d.IsActive, true),
	}
	if d.FromCurrency != nil {
		transfer.FromCurrency = *d.FromCurrency
	}
	if d.ToCurrency != nil {
		transfer.ToCurrency = *d.ToCurrency
	}
	if d.Status != nil {
		transfer.Status = *d.Status
	}
	if err := transfer.Validate(); err != nil {
		return nil, fmt.Errorf("transfer: %w", err)
	}
	if d.ConvertedAmount != nil {
		transfer.ConvertedAmount = *d.ConvertedAmount
	} else {
		transfer.ConvertedAmount = transfer.Amount * transfer.ExchangeRate
	}
	return transfer, nil
}

// Validate checks the transfer invariants, reporting the first violation.
func (t *Transfer) Validate() error {
	if t.ID == 0 {
		return missingField("id")
	}
	if t.UserID == 0 {
		return missingField("user_id")
	}
	if t.FromAccountID == 0 {
		return missingField("from_account_id")
	}
	if t.ToAccountID == 0 {
		return missingField("to_account_id")
	}
	if t.Amount <= 0 {
		return ErrInvalidAmount
	}
	if t.FromAccountID == t.ToAccountID {
		return ErrSameAccount
	}
	if t.ExchangeRate <= 0 {
		return ErrInvalidExchangeRate
	}
	return nil
}

// Complete marks the transfer completed. No precondition is enforced;
// completing a cancelled transfer overwrites its status.
func (t *Transfer) Complete(now time.Time) {
	t.Status = StatusCompleted
	t.UpdatedAt = NewTimestamp(now)
}

// Cancel marks the transfer cancelled.
func (t *Transfer) Cancel(now time.Time) {
	t.Status = StatusCancelled
	t.UpdatedAt = NewTimestamp(now)
}

// Deactivate soft-deletes the record, preserving it for audit history.
func (t *Transfer) Deactivate(now time.Time) {
	t.IsActive = false
	t.UpdatedAt = NewTimestamp(now)
}

// NetAmount returns the amount after fees. It may go negative when the
// fee exceeds the amount; callers decide whether that is acceptable.
func (t *Transfer) NetAmount() float64 {
	return t.Amount - t.Fee
}

// IsPending reports whether the transfer has not yet settled.
func (t *Transfer) IsPending() bool {
	return t.Status == StatusPending
}

// UnmarshalJSON reconstructs a Transfer through the construction
// contract, so a document that violates an invariant never becomes a
// record. Wire-supplied timestamps are preserved exactly.
func (t *Transfer) UnmarshalJSON(data []byte) error {
	var d TransferDraft
	if err := json.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("decode transfer: %w", err)
	}
	transfer, err := NewTransfer(d, time.Now())
	if err != nil {
		return err
	}
	*t = *transfer
	return nil
}
