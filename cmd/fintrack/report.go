package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/JEVG9/financetrack/internal/cli"
	"github.com/JEVG9/financetrack/internal/common"
	"github.com/JEVG9/financetrack/internal/config"
	"github.com/JEVG9/financetrack/internal/ledger"
)

func reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report <ledger-file>",
		Short: "Summarize a ledger document",
		Long: `Show per-kind totals, overdue expenses with days past due, and
pending transfers with their net amounts.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ExpandPath(args[0])
			return runReport(path, time.Now(), cmd.OutOrStdout())
		},
	}
}

func runReport(path string, now time.Time, out io.Writer) error {
	doc, report, err := ledger.Load(path)
	if err != nil {
		return err
	}
	if !report.OK() {
		return common.NewUserError(
			fmt.Sprintf("%d invalid records (run 'fintrack validate %s')", len(report.Errors), path), nil)
	}

	totals := doc.Totals()
	if totals.IncomeCount+totals.ExpenseCount+totals.TransferCount == 0 {
		return common.ErrEmptyDocument
	}

	fmt.Fprintln(out, cli.FormatTitle("Ledger summary"))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\n",
		cli.HeaderStyle.Render("Kind"),
		cli.HeaderStyle.Render("Count"),
		cli.HeaderStyle.Render("Total"))
	fmt.Fprintf(w, "incomes\t%d\t%.2f\n", totals.IncomeCount, totals.IncomeTotal)
	fmt.Fprintf(w, "expenses\t%d\t%.2f\n", totals.ExpenseCount, totals.ExpenseTotal)
	fmt.Fprintf(w, "transfers (net)\t%d\t%.2f\n", totals.TransferCount, totals.TransferNet)
	if err := w.Flush(); err != nil {
		return err
	}

	var overdue []string
	for _, expense := range doc.Expenses {
		if !expense.IsOverdue(now) {
			continue
		}
		days, _ := expense.DaysUntilDue(now)
		overdue = append(overdue, fmt.Sprintf("%s (%.2f %s, %d days past due)",
			expense.Name, expense.Amount, expense.Currency, -days))
	}
	if len(overdue) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("%d overdue expenses", len(overdue))))
		for _, line := range overdue {
			fmt.Fprintln(out, "  "+line)
		}
	}

	var pending []string
	for _, transfer := range doc.Transfers {
		if !transfer.IsPending() {
			continue
		}
		pending = append(pending, fmt.Sprintf("%d -> %d: %.2f %s net",
			transfer.FromAccountID, transfer.ToAccountID, transfer.NetAmount(), transfer.FromCurrency))
	}
	if len(pending) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, cli.SubtleStyle.Render(fmt.Sprintf("%d pending transfers", len(pending))))
		for _, line := range pending {
			fmt.Fprintln(out, "  "+line)
		}
	}

	return nil
}
