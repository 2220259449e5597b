package model

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func intPtr(v int) *int           { return &v }
func int64Ptr(v int64) *int64     { return &v }
func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }
func boolPtr(v bool) *bool        { return &v }

func methodPtr(m PaymentMethod) *PaymentMethod { return &m }
func currencyPtr(c Currency) *Currency         { return &c }

func tsPtr(t time.Time) *Timestamp {
	ts := NewTimestamp(t)
	return &ts
}

var testNow = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

func validIncomeDraft() IncomeDraft {
	return IncomeDraft{
		ID:         1,
		UserID:     1,
		Date:       NewTimestamp(testNow),
		Amount:     5000,
		Name:       "Monthly Salary",
		CategoryID: 1,
		AccountID:  1,
	}
}

func TestNewIncome_Defaults(t *testing.T) {
	income, err := NewIncome(validIncomeDraft(), testNow)
	if err != nil {
		t.Fatalf("NewIncome() error = %v", err)
	}

	if income.Description != "" {
		t.Errorf("Description = %q, want empty", income.Description)
	}
	if income.Recurring {
		t.Error("Recurring = true, want false")
	}
	if income.DayIncome != nil {
		t.Errorf("DayIncome = %v, want nil", *income.DayIncome)
	}
	if income.PaymentMethod != PaymentTransfer {
		t.Errorf("PaymentMethod = %q, want %q", income.PaymentMethod, PaymentTransfer)
	}
	if income.Currency != CurrencyUSD {
		t.Errorf("Currency = %q, want %q", income.Currency, CurrencyUSD)
	}
	if income.Received {
		t.Error("Received = true, want false")
	}
	if income.Tags == nil || len(income.Tags) != 0 {
		t.Errorf("Tags = %v, want empty non-nil slice", income.Tags)
	}
	if !income.IsActive {
		t.Error("IsActive = false, want true")
	}
	if !income.CreatedAt.Equal(NewTimestamp(testNow)) {
		t.Errorf("CreatedAt = %v, want %v", income.CreatedAt, testNow)
	}
	if !income.UpdatedAt.Equal(NewTimestamp(testNow)) {
		t.Errorf("UpdatedAt = %v, want %v", income.UpdatedAt, testNow)
	}
}

func TestNewIncome_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*IncomeDraft)
		wantErr error
	}{
		{
			name:    "valid recurring income with day",
			mutate:  func(d *IncomeDraft) { d.Recurring = boolPtr(true); d.DayIncome = intPtr(15) },
			wantErr: nil,
		},
		{
			name:    "zero amount",
			mutate:  func(d *IncomeDraft) { d.Amount = 0 },
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			mutate:  func(d *IncomeDraft) { d.Amount = -100 },
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "day of month too low",
			mutate:  func(d *IncomeDraft) { d.DayIncome = intPtr(0) },
			wantErr: ErrInvalidDayOfMonth,
		},
		{
			name:    "day of month too high",
			mutate:  func(d *IncomeDraft) { d.DayIncome = intPtr(32) },
			wantErr: ErrInvalidDayOfMonth,
		},
		{
			name:    "recurring without day",
			mutate:  func(d *IncomeDraft) { d.Recurring = boolPtr(true) },
			wantErr: ErrMissingRecurrenceDay,
		},
		{
			name:    "missing user reference",
			mutate:  func(d *IncomeDraft) { d.UserID = 0 },
			wantErr: ErrMissingField,
		},
		{
			name:    "missing name",
			mutate:  func(d *IncomeDraft) { d.Name = "" },
			wantErr: ErrMissingField,
		},
		{
			name:    "missing category reference",
			mutate:  func(d *IncomeDraft) { d.CategoryID = 0 },
			wantErr: ErrMissingField,
		},
		{
			name:    "missing account reference",
			mutate:  func(d *IncomeDraft) { d.AccountID = 0 },
			wantErr: ErrMissingField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validIncomeDraft()
			tt.mutate(&draft)

			income, err := NewIncome(draft, testNow)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("NewIncome() error = %v, want nil", err)
				}
				return
			}
			if income != nil {
				t.Error("NewIncome() returned a record alongside an error")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewIncome() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestIncome_CalculateConvertedAmount(t *testing.T) {
	income, err := NewIncome(validIncomeDraft(), testNow)
	if err != nil {
		t.Fatalf("NewIncome() error = %v", err)
	}

	later := testNow.Add(time.Hour)
	got := income.CalculateConvertedAmount(4000.5, later)
	if got != 5000*4000.5 {
		t.Errorf("CalculateConvertedAmount(4000.5) = %v, want %v", got, 5000*4000.5)
	}
	if income.ExchangeRate == nil || *income.ExchangeRate != 4000.5 {
		t.Errorf("ExchangeRate = %v, want 4000.5", income.ExchangeRate)
	}
	if income.ConvertedAmount == nil || *income.ConvertedAmount != got {
		t.Errorf("ConvertedAmount = %v, want %v", income.ConvertedAmount, got)
	}
	if !income.UpdatedAt.Equal(NewTimestamp(later)) {
		t.Errorf("UpdatedAt = %v, want refreshed to %v", income.UpdatedAt, later)
	}

	// Repeated calls overwrite prior conversion state.
	got = income.CalculateConvertedAmount(0.5, later)
	if got != 2500 {
		t.Errorf("CalculateConvertedAmount(0.5) = %v, want 2500", got)
	}
	if *income.ConvertedAmount != 2500 {
		t.Errorf("ConvertedAmount = %v, want 2500", *income.ConvertedAmount)
	}
}

func TestIncome_MarkReceived(t *testing.T) {
	income, err := NewIncome(validIncomeDraft(), testNow)
	if err != nil {
		t.Fatalf("NewIncome() error = %v", err)
	}

	later := testNow.Add(48 * time.Hour)
	income.MarkReceived(later)

	if !income.Received {
		t.Error("Received = false after MarkReceived")
	}
	if !income.UpdatedAt.Equal(NewTimestamp(later)) {
		t.Errorf("UpdatedAt = %v, want %v", income.UpdatedAt, later)
	}
	if !income.CreatedAt.Equal(NewTimestamp(testNow)) {
		t.Errorf("CreatedAt changed to %v", income.CreatedAt)
	}
}

func TestIncome_Deactivate(t *testing.T) {
	income, err := NewIncome(validIncomeDraft(), testNow)
	if err != nil {
		t.Fatalf("NewIncome() error = %v", err)
	}

	income.Deactivate(testNow.Add(time.Hour))
	if income.IsActive {
		t.Error("IsActive = true after Deactivate")
	}
}

func TestIncome_JSONRoundTrip(t *testing.T) {
	draft := validIncomeDraft()
	draft.Recurring = boolPtr(true)
	draft.DayIncome = intPtr(15)
	draft.PaymentMethod = methodPtr(PaymentCash)
	draft.Currency = currencyPtr(CurrencyEUR)
	draft.Received = boolPtr(true)
	draft.Tags = []string{"salary", "main-job"}
	draft.AttachmentURL = strPtr("https://example.com/receipt.pdf")
	draft.RecurringTemplateID = int64Ptr(7)
	draft.Notes = strPtr("paid early")

	income, err := NewIncome(draft, testNow)
	if err != nil {
		t.Fatalf("NewIncome() error = %v", err)
	}
	income.CalculateConvertedAmount(0.92, testNow)

	data, err := json.Marshal(income)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded Income
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	// The wire form is the canonical representation; a lossless round
	// trip re-marshals to identical bytes.
	again, err := json.Marshal(&decoded)
	if err != nil {
		t.Fatalf("re-Marshal() error = %v", err)
	}
	if string(data) != string(again) {
		t.Errorf("round trip changed the record:\n before = %s\n after  = %s", data, again)
	}

	if decoded.ID != income.ID {
		t.Errorf("ID = %d, want %d", decoded.ID, income.ID)
	}
	if !decoded.Date.Equal(income.Date) {
		t.Errorf("Date = %v, want %v", decoded.Date, income.Date)
	}
	if len(decoded.Tags) != 2 || decoded.Tags[0] != "salary" || decoded.Tags[1] != "main-job" {
		t.Errorf("Tags = %v, want order preserved", decoded.Tags)
	}
	if decoded.ConvertedAmount == nil || *decoded.ConvertedAmount != *income.ConvertedAmount {
		t.Errorf("ConvertedAmount = %v, want %v", decoded.ConvertedAmount, income.ConvertedAmount)
	}
}

func TestIncome_UnmarshalRevalidates(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{
			name:    "negative amount",
			doc:     `{"id":1,"user_id":1,"date":"2025-01-15","amount":-5,"name":"x","category_id":1,"account_id":1}`,
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "recurring without day",
			doc:     `{"id":1,"user_id":1,"date":"2025-01-15","amount":5,"name":"x","category_id":1,"account_id":1,"recurring":true,"day_income":null}`,
			wantErr: ErrMissingRecurrenceDay,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var income Income
			err := json.Unmarshal([]byte(tt.doc), &income)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Unmarshal() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestIncome_UnmarshalRejectsUnknownEnum(t *testing.T) {
	doc := `{"id":1,"user_id":1,"date":"2025-01-15","amount":5,"name":"x","category_id":1,"account_id":1,"payment_method":"barter"}`
	var income Income
	if err := json.Unmarshal([]byte(doc), &income); err == nil {
		t.Error("Unmarshal() accepted an unsupported payment method")
	}
}
