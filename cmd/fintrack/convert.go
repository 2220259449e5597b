package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/JEVG9/financetrack/internal/cli"
	"github.com/JEVG9/financetrack/internal/common"
	"github.com/JEVG9/financetrack/internal/config"
	"github.com/JEVG9/financetrack/internal/ledger"
)

func convertCmd() *cobra.Command {
	var (
		rate   float64
		kind   string
		output string
	)

	cmd := &cobra.Command{
		Use:   "convert <ledger-file>",
		Short: "Apply an exchange rate to income and expense records",
		Long: `Store the given exchange rate on each record and cache the converted
amount (amount x rate). The updated document is written back out.
Soft-deactivated records are left untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if rate <= 0 {
				return common.NewUserError(
					fmt.Sprintf("exchange rate must be greater than 0, got %v", rate), nil)
			}
			path := config.ExpandPath(args[0])
			dest := path
			if output != "" {
				dest = config.ExpandPath(output)
			}
			return runConvert(path, dest, rate, kind, cmd.OutOrStdout())
		},
	}

	cmd.Flags().Float64Var(&rate, "rate", 0, "exchange rate to apply (required)")
	cmd.Flags().StringVar(&kind, "kind", "", "limit conversion to one record kind (income or expense)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the converted document here instead of in place")
	_ = cmd.MarkFlagRequired("rate")

	return cmd
}

func runConvert(path, dest string, rate float64, kind string, out io.Writer) error {
	if kind != "" && kind != ledger.KindIncome && kind != ledger.KindExpense {
		return common.NewUserError(fmt.Sprintf("unknown record kind %q (want income or expense)", kind), nil)
	}

	doc, report, err := ledger.Load(path)
	if err != nil {
		return err
	}
	if !report.OK() {
		return common.NewUserError(
			fmt.Sprintf("refusing to convert: %d invalid records (run 'fintrack validate %s')", len(report.Errors), path), nil)
	}

	// Soft-deactivated records are audit history; leave them untouched,
	// matching how Totals skips them.
	now := time.Now()
	converted := 0
	if kind == "" || kind == ledger.KindIncome {
		for _, income := range doc.Incomes {
			if !income.IsActive {
				continue
			}
			income.CalculateConvertedAmount(rate, now)
			converted++
		}
	}
	if kind == "" || kind == ledger.KindExpense {
		for _, expense := range doc.Expenses {
			if !expense.IsActive {
				continue
			}
			expense.CalculateConvertedAmount(rate, now)
			converted++
		}
	}

	if err := ledger.Save(doc, dest); err != nil {
		return err
	}

	common.LogInfo("conversion applied", common.Fields{
		"rate":    rate,
		"records": converted,
		"dest":    dest,
	})
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("converted %d records at rate %v", converted, rate)))
	return nil
}
