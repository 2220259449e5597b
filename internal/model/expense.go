package model

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Expense represents one outbound amount. It mirrors Income except for
// the expense-timing day, an optional due date bounding payment, a paid
// flag and an optional budget reference.
type Expense struct {
	ID                  int64         `json:"id"`
	UserID              int64         `json:"user_id"`
	Date                Timestamp     `json:"date"`
	Amount              float64       `json:"amount"`
	Name                string        `json:"name"`
	CategoryID          int64         `json:"category_id"`
	AccountID           int64         `json:"account_id"`
	Description         string        `json:"description"`
	Recurring           bool          `json:"recurring"`
	DayExpense          *int          `json:"day_expense"`
	PaymentMethod       PaymentMethod `json:"payment_method"`
	Currency            Currency      `json:"currency"`
	DueDate             *Timestamp    `json:"due_date"`
	Paid                bool          `json:"paid"`
	ExchangeRate        *float64      `json:"exchange_rate"`
	ConvertedAmount     *float64      `json:"converted_amount"`
	AttachmentURL       *string       `json:"attachment_url"`
	Tags                []string      `json:"tags"`
	Notes               string        `json:"notes"`
	RecurringTemplateID *int64        `json:"recurring_template_id"`
	BudgetID            *int64        `json:"budget_id"`
	CreatedAt           Timestamp     `json:"created_at"`
	UpdatedAt           Timestamp     `json:"updated_at"`
	IsActive            bool          `json:"is_active"`
}

// ExpenseDraft is the loosely structured input an Expense is built from.
type ExpenseDraft struct {
	ID                  int64          `json:"id"`
	UserID              int64          `json:"user_id"`
	Date                Timestamp      `json:"date"`
	Amount              float64        `json:"amount"`
	Name                string         `json:"name"`
	CategoryID          int64          `json:"category_id"`
	AccountID           int64          `json:"account_id"`
	Description         *string        `json:"description"`
	Recurring           *bool          `json:"recurring"`
	DayExpense          *int           `json:"day_expense"`
	PaymentMethod       *PaymentMethod `json:"payment_method"`
	Currency            *Currency      `json:"currency"`
	DueDate             *Timestamp     `json:"due_date"`
	Paid                *bool          `json:"paid"`
	ExchangeRate        *float64       `json:"exchange_rate"`
	ConvertedAmount     *float64       `json:"converted_amount"`
	AttachmentURL       *string        `json:"attachment_url"`
	Tags                []string       `json:"tags"`
	Notes               *string        `json:"notes"`
	RecurringTemplateID *int64         `json:"recurring_template_id"`
	BudgetID            *int64         `json:"budget_id"`
	CreatedAt           *Timestamp     `json:"created_at"`
	UpdatedAt           *Timestamp     `json:"updated_at"`
	IsActive            *bool          `json:"is_active"`
}

// NewExpense builds a validated Expense from a draft. Defaulting and
// failure semantics match NewIncome; the payment method defaults to
// credit_card.
func NewExpense(d ExpenseDraft, now time.Time) (*Expense, error) {
	expense := &Expense{
		ID:                  d.ID,
		UserID:              d.UserID,
		Date:                d.Date,
		Amount:              d.Amount,
		Name:                d.Name,
		CategoryID:          d.CategoryID,
		AccountID:           d.AccountID,
		Description:         stringOr(d.Description, ""),
		Recurring:           boolOr(d.Recurring, false),
		DayExpense:          clonePtr(d.DayExpense),
		PaymentMethod:       PaymentCreditCard,
		Currency:            DefaultCurrency,
		DueDate:             clonePtr(d.DueDate),
		Paid:                boolOr(d.Paid, false),
		ExchangeRate:        clonePtr(d.ExchangeRate),
		ConvertedAmount:     clonePtr(d.ConvertedAmount),
		AttachmentURL:       clonePtr(d.AttachmentURL),
		Tags:                cloneTags(d.Tags),
		Notes:               stringOr(d.Notes, ""),
		RecurringTemplateID: clonePtr(d.RecurringTemplateID),
		BudgetID:            clonePtr(d.BudgetID),
		CreatedAt:           timestampOr(d.CreatedAt, now),
		UpdatedAt:           timestampOr(d.UpdatedAt, now),
		IsActive:            boolOr(d.IsActive, true),
	}
	if d.PaymentMethod != nil {
		expense.PaymentMethod = *d.PaymentMethod
	}
	if d.Currency != nil {
		expense.Currency = *d.Currency
	}
	if expense.Date.IsZero() {
		expense.Date = NewTimestamp(now)
	}
	if err := expense.Validate(); err != nil {
		return nil, fmt.Errorf("expense: %w", err)
	}
	return expense, nil
}

// Validate checks the expense invariants, reporting the first violation.
func (e *Expense) Validate() error {
	if e.ID == 0 {
		return missingField("id")
	}
	if e.UserID == 0 {
		return missingField("user_id")
	}
	if e.Name == "" {
		return missingField("name")
	}
	if e.CategoryID == 0 {
		return missingField("category_id")
	}
	if e.AccountID == 0 {
		return missingField("account_id")
	}
	if e.Amount <= 0 {
		return ErrInvalidAmount
	}
	if e.DayExpense != nil && (*e.DayExpense < 1 || *e.DayExpense > 31) {
		return fmt.Errorf("day_expense: %w", ErrInvalidDayOfMonth)
	}
	if e.Recurring && e.DayExpense == nil {
		return fmt.Errorf("day_expense: %w", ErrMissingRecurrenceDay)
	}
	if e.DueDate != nil && e.Date.After(e.DueDate.Time) {
		return ErrDateOrdering
	}
	return nil
}

// CalculateConvertedAmount stores rate and the amount converted by it,
// returning the converted amount and refreshing the update timestamp.
// Repeated calls overwrite prior conversion state. Rate positivity is
// the caller's responsibility.
func (e *Expense) CalculateConvertedAmount(rate float64, now time.Time) float64 {
	converted := e.Amount * rate
	e.ExchangeRate = &rate
	e.ConvertedAmount = &converted
	e.UpdatedAt = NewTimestamp(now)
	return converted
}

// MarkPaid confirms the payment went out.
func (e *Expense) MarkPaid(now time.Time) {
	e.Paid = true
	e.UpdatedAt = NewTimestamp(now)
}

// Deactivate soft-deletes the record, preserving it for audit history.
func (e *Expense) Deactivate(now time.Time) {
	e.IsActive = false
	e.UpdatedAt = NewTimestamp(now)
}

// IsOverdue reports whether the expense has a due date, is unpaid, and
// now is strictly past the due date.
func (e *Expense) IsOverdue(now time.Time) bool {
	if e.DueDate == nil || e.Paid {
		return false
	}
	return now.After(e.DueDate.Time)
}

// DaysUntilDue returns the whole-day ceiling of the time remaining
// before the due date, negative once past due. ok is false when the
// expense has no due date.
func (e *Expense) DaysUntilDue(now time.Time) (days int, ok bool) {
	if e.DueDate == nil {
		return 0, false
	}
	remaining := e.DueDate.Sub(now)
	return int(math.Ceil(remaining.Hours() / 24)), true
}

// UnmarshalJSON reconstructs an Expense through the construction
// contract, so a document that violates an invariant never becomes a
// record. Wire-supplied timestamps are preserved exactly.
func (e *Expense) UnmarshalJSON(data []byte) error {
	var d ExpenseDraft
	if err := json.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("decode expense: %w", err)
	}
	expense, err := NewExpense(d, time.Now())
	if err != nil {
		return err
	}
	*e = *expense
	return nil
}
