package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Income represents one inbound amount attributable to a user, category
// and account. All reference fields are opaque identifiers; the record
// performs no referential-integrity checks against them.
type Income struct {
	ID                  int64         `json:"id"`
	UserID              int64         `json:"user_id"`
	Date                Timestamp     `json:"date"`
	Amount              float64       `json:"amount"`
	Name                string        `json:"name"`
	CategoryID          int64         `json:"category_id"`
	AccountID           int64         `json:"account_id"`
	Description         string        `json:"description"`
	Recurring           bool          `json:"recurring"`
	DayIncome           *int          `json:"day_income"`
	PaymentMethod       PaymentMethod `json:"payment_method"`
	Currency            Currency      `json:"currency"`
	Received            bool          `json:"received"`
	ExchangeRate        *float64      `json:"exchange_rate"`
	ConvertedAmount     *float64      `json:"converted_amount"`
	AttachmentURL       *string       `json:"attachment_url"`
	Tags                []string      `json:"tags"`
	Notes               string        `json:"notes"`
	RecurringTemplateID *int64        `json:"recurring_template_id"`
	CreatedAt           Timestamp     `json:"created_at"`
	UpdatedAt           Timestamp     `json:"updated_at"`
	IsActive            bool          `json:"is_active"`
}

// IncomeDraft is the loosely structured input an Income is built from.
// Nil optional fields take their documented defaults.
type IncomeDraft struct {
	ID                  int64          `json:"id"`
	UserID              int64          `json:"user_id"`
	Date                Timestamp      `json:"date"`
	Amount              float64        `json:"amount"`
	Name                string         `json:"name"`
	CategoryID          int64          `json:"category_id"`
	AccountID           int64          `json:"account_id"`
	Description         *string        `json:"description"`
	Recurring           *bool          `json:"recurring"`
	DayIncome           *int           `json:"day_income"`
	PaymentMethod       *PaymentMethod `json:"payment_method"`
	Currency            *Currency      `json:"currency"`
	Received            *bool          `json:"received"`
	ExchangeRate        *float64       `json:"exchange_rate"`
	ConvertedAmount     *float64       `json:"converted_amount"`
	AttachmentURL       *string        `json:"attachment_url"`
	Tags                []string       `json:"tags"`
	Notes               *string        `json:"notes"`
	RecurringTemplateID *int64         `json:"recurring_template_id"`
	CreatedAt           *Timestamp     `json:"created_at"`
	UpdatedAt           *Timestamp     `json:"updated_at"`
	IsActive            *bool          `json:"is_active"`
}

// NewIncome builds a validated Income from a draft. Absent optional
// fields default per the schema; now supplies the date and audit
// timestamps when the draft omits them. Construction is all-or-nothing:
// the first violated invariant aborts it.
func NewIncome(d IncomeDraft, now time.Time) (*Income, error) {
	income := &Income{
		ID:                  d.ID,
		UserID:              d.UserID,
		Date:                d.Date,
		Amount:              d.Amount,
		Name:                d.Name,
		CategoryID:          d.CategoryID,
		AccountID:           d.AccountID,
		Description:         stringOr(d.Description, ""),
		Recurring:           boolOr(d.Recurring, false),
		DayIncome:           clonePtr(d.DayIncome),
		PaymentMethod:       PaymentTransfer,
		Currency:            DefaultCurrency,
		Received:            boolOr(d.Received, false),
		ExchangeRate:        clonePtr(d.ExchangeRate),
		ConvertedAmount:     clonePtr(d.ConvertedAmount),
		AttachmentURL:       clonePtr(d.AttachmentURL),
		Tags:                cloneTags(d.Tags),
		Notes:               stringOr(d.Notes, ""),
		RecurringTemplateID: clonePtr(d.RecurringTemplateID),
		CreatedAt:           timestampOr(d.CreatedAt, now),
		UpdatedAt:           timestampOr(d.UpdatedAt, now),
		IsActive:            boolOr(d.IsActive, true),
	}
	if d.PaymentMethod != nil {
		income.PaymentMethod = *d.PaymentMethod
	}
	if d.Currency != nil {
		income.Currency = *d.Currency
	}
	if income.Date.IsZero() {
		income.Date = NewTimestamp(now)
	}
	if err := income.Validate(); err != nil {
		return nil, fmt.Errorf("income: %w", err)
	}
	return income, nil
}

// Validate checks the income invariants, reporting the first violation.
func (i *Income) Validate() error {
	if i.ID == 0 {
		return missingField("id")
	}
	if i.UserID == 0 {
		return missingField("user_id")
	}
	if i.Name == "" {
		return missingField("name")
	}
	if i.CategoryID == 0 {
		return missingField("category_id")
	}
	if i.AccountID == 0 {
		return missingField("account_id")
	}
	if i.Amount <= 0 {
		return ErrInvalidAmount
	}
	if i.DayIncome != nil && (*i.DayIncome < 1 || *i.DayIncome > 31) {
		return fmt.Errorf("day_income: %w", ErrInvalidDayOfMonth)
	}
	if i.Recurring && i.DayIncome == nil {
		return fmt.Errorf("day_income: %w", ErrMissingRecurrenceDay)
	}
	return nil
}

// CalculateConvertedAmount stores rate and the amount converted by it,
// returning the converted amount and refreshing the update timestamp.
// Repeated calls overwrite prior conversion state. Rate positivity is
// the caller's responsibility.
func (i *Income) CalculateConvertedAmount(rate float64, now time.Time) float64 {
	converted := i.Amount * rate
	i.ExchangeRate = &rate
	i.ConvertedAmount = &converted
	i.UpdatedAt = NewTimestamp(now)
	return converted
}

// MarkReceived confirms the income arrived.
func (i *Income) MarkReceived(now time.Time) {
	i.Received = true
	i.UpdatedAt = NewTimestamp(now)
}

// Deactivate soft-deletes the record, preserving it for audit history.
func (i *Income) Deactivate(now time.Time) {
	i.IsActive = false
	i.UpdatedAt = NewTimestamp(now)
}

// UnmarshalJSON reconstructs an Income through the construction
// contract, so a document that violates an invariant never becomes a
// record. Wire-supplied timestamps are preserved exactly.
func (i *Income) UnmarshalJSON(data []byte) error {
	var d IncomeDraft
	if err := json.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("decode income: %w", err)
	}
	income, err := NewIncome(d, time.Now())
	if err != nil {
		return err
	}
	*i = *income
	return nil
}
