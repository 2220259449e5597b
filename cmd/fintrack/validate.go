package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/JEVG9/financetrack/internal/cli"
	"github.com/JEVG9/financetrack/internal/common"
	"github.com/JEVG9/financetrack/internal/config"
	"github.com/JEVG9/financetrack/internal/ledger"
)

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <ledger-file>",
		Short: "Validate every record in a ledger document",
		Long: `Read a ledger document and run each income, expense, and transfer
through the construction contract, reporting every violated invariant.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ExpandPath(args[0])
			return runValidate(path, cmd.OutOrStdout())
		},
	}
}

func runValidate(path string, out io.Writer) error {
	doc, report, err := ledger.Load(path)
	if err != nil {
		return err
	}

	total := len(doc.Incomes) + len(doc.Expenses) + len(doc.Transfers)
	if report.OK() {
		fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("%d records valid", total)))
		return nil
	}

	fmt.Fprintln(out, cli.FormatError(fmt.Sprintf("%d of %d records invalid", len(report.Errors), total+len(report.Errors))))
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\n",
		cli.HeaderStyle.Render("Kind"),
		cli.HeaderStyle.Render("Index"),
		cli.HeaderStyle.Render("Violation"))
	fmt.Fprintf(w, "%s\t%s\t%s\n",
		strings.Repeat("-", 8),
		strings.Repeat("-", 5),
		strings.Repeat("-", 40))
	for _, recErr := range report.Errors {
		fmt.Fprintf(w, "%s\t%d\t%s\n", recErr.Kind, recErr.Index, recErr.Err)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	err = fmt.Errorf("ledger document %s failed validation", path)
	common.LogError(err, "validation failed", common.Fields{
		"path":    path,
		"invalid": len(report.Errors),
	})
	return err
}
