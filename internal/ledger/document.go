// Package ledger reads and writes the flat JSON document that carries
// income, expense and transfer records. Loading delegates every record
// to the model construction contract, so a document holding an invalid
// record surfaces the violated invariant instead of a half-built record.
package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/JEVG9/financetrack/internal/common"
	"github.com/JEVG9/financetrack/internal/model"
)

// Record kinds as they appear in the document.
const (
	KindIncome   = "income"
	KindExpense  = "expense"
	KindTransfer = "transfer"
)

// Document is the exchange format: three record sections, every field
// explicit on the wire.
type Document struct {
	Incomes   []*model.Income   `json:"incomes"`
	Expenses  []*model.Expense  `json:"expenses"`
	Transfers []*model.Transfer `json:"transfers"`
}

// rawDocument defers record decoding so failures can be reported per
// record rather than aborting the whole document.
type rawDocument struct {
	Incomes   []json.RawMessage `json:"incomes"`
	Expenses  []json.RawMessage `json:"expenses"`
	Transfers []json.RawMessage `json:"transfers"`
}

// RecordError ties a construction failure to its position in the
// document.
type RecordError struct {
	Err   error
	Kind  string
	Index int
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s[%d]: %v", e.Kind, e.Index, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// Report collects every record that failed construction while loading.
type Report struct {
	Errors []*RecordError
}

// OK reports whether every record in the document constructed cleanly.
func (r *Report) OK() bool {
	return len(r.Errors) == 0
}

// Parse decodes a ledger document from raw JSON. Records that fail an
// invariant are reported and skipped; the returned document holds only
// records that constructed cleanly.
func Parse(data []byte) (*Document, *Report, error) {
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("decode ledger document: %w", err)
	}

	doc := &Document{
		Incomes:   make([]*model.Income, 0, len(raw.Incomes)),
		Expenses:  make([]*model.Expense, 0, len(raw.Expenses)),
		Transfers: make([]*model.Transfer, 0, len(raw.Transfers)),
	}
	report := &Report{}

	for i, msg := range raw.Incomes {
		var income model.Income
		if err := json.Unmarshal(msg, &income); err != nil {
			report.Errors = append(report.Errors, &RecordError{Kind: KindIncome, Index: i, Err: err})
			continue
		}
		doc.Incomes = append(doc.Incomes, &income)
	}
	for i, msg := range raw.Expenses {
		var expense model.Expense
		if err := json.Unmarshal(msg, &expense); err != nil {
			report.Errors = append(report.Errors, &RecordError{Kind: KindExpense, Index: i, Err: err})
			continue
		}
		doc.Expenses = append(doc.Expenses, &expense)
	}
	for i, msg := range raw.Transfers {
		var transfer model.Transfer
		if err := json.Unmarshal(msg, &transfer); err != nil {
			report.Errors = append(report.Errors, &RecordError{Kind: KindTransfer, Index: i, Err: err})
			continue
		}
		doc.Transfers = append(doc.Transfers, &transfer)
	}

	return doc, report, nil
}

// Load reads and parses a ledger document from disk.
func Load(path string) (*Document, *Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: %s", common.ErrDocumentNotFound, path)
		}
		return nil, nil, fmt.Errorf("read ledger document: %w", err)
	}

	doc, report, err := Parse(data)
	if err != nil {
		return nil, nil, err
	}

	slog.Debug("loaded ledger document",
		"path", path,
		"incomes", len(doc.Incomes),
		"expenses", len(doc.Expenses),
		"transfers", len(doc.Transfers),
		"invalid", len(report.Errors))

	return doc, report, nil
}

// Save writes the document to disk in its canonical indented form.
func Save(doc *Document, path string) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode ledger document: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("write ledger document: %w", err)
	}
	return nil
}

// Totals summarizes a document per record kind.
type Totals struct {
	IncomeTotal   float64
	ExpenseTotal  float64
	TransferNet   float64
	IncomeCount   int
	ExpenseCount  int
	TransferCount int
}

// Totals sums amounts across the document. Transfers contribute their
// net amount (after fees). Inactive records are skipped.
func (d *Document) Totals() Totals {
	var t Totals
	for _, income := range d.Incomes {
		if !income.IsActive {
			continue
		}
		t.IncomeTotal += income.Amount
		t.IncomeCount++
	}
	for _, expense := range d.Expenses {
		if !expense.IsActive {
			continue
		}
		t.ExpenseTotal += expense.Amount
		t.ExpenseCount++
	}
	for _, transfer := range d.Transfers {
		if !transfer.IsActive {
			continue
		}
		t.TransferNet += transfer.NetAmount()
		t.TransferCount++
	}
	return t
}
