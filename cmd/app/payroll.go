package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"workorders/cmd"
	"workorders/internal/adapters/out/postgres"
	"workorders/internal/core/application/usecases/queries"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const payrollTimeout = 30 * time.Second

func payrollCmd(envFile *string, logger *slog.Logger) *cobra.Command {
	var fromFlag, toFlag string

	c := &cobra.Command{
		Use:     "payroll",
		Short:   "Print the payroll summary of a period",
		Example: "  workorders payroll --from 2024-01-01 --to 2024-02-01",
		RunE: func(command *cobra.Command, _ []string) error {
			from, err := queries.ParsePeriodBound("from", fromFlag)
			if err != nil {
				return err
			}
			to, err := queries.ParsePeriodBound("to", toFlag)
			if err != nil {
				return err
			}
			query, err := queries.NewPayrollSummaryQuery(from, to)
			if err != nil {
				return err
			}

			config, err := cmd.LoadConfig(*envFile)
			if err != nil {
				return err
			}
			db, err := postgres.Open(config.ConnectionSettings())
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}

			ctx, cancel := context.WithTimeout(command.Context(), payrollTimeout)
			defer cancel()

			root := cmd.NewCompositionRoot(config, db, nil, nil, logger)
			summary, err := root.CreatePayrollSummaryQueryHandler().Handle(ctx, query)
			if err != nil {
				return err
			}
			printPayroll(command.OutOrStdout(), summary)
			return nil
		},
	}
	c.Flags().StringVar(&fromFlag, "from", "", "period start, inclusive (YYYY-MM-DD or RFC 3339)")
	c.Flags().StringVar(&toFlag, "to", "", "period end, exclusive (YYYY-MM-DD or RFC 3339)")
	_ = c.MarkFlagRequired("from")
	_ = c.MarkFlagRequired("to")
	return c
}

func printPayroll(w io.Writer, summary queries.PayrollSummary) {
	header := color.New(color.Bold)
	late := color.New(color.FgYellow)
	outstanding := color.New(color.FgRed)

	header.Fprintf(w, "Payroll %s to %s\n\n",
		summary.From.Format(time.DateOnly), summary.To.Format(time.DateOnly))

	if len(summary.Lines) == 0 {
		fmt.Fprintln(w, "No completed work orders in this period")
		return
	}

	header.Fprintf(w, "%-24s %6s %6s %6s %14s %14s %14s %14s\n",
		"WORKER", "ORDERS", "ONTIME", "LATE", "ORIGINAL", "PENALTY", "FINAL", "OUTSTANDING")
	for _, l := range summary.Lines {
		printPayrollLine(w, l.WorkerName, l, late, outstanding)
	}
	fmt.Fprintln(w)
	printPayrollLine(w, "TOTAL", summary.Totals, late, outstanding)
}

func printPayrollLine(w io.Writer, name string, l queries.PayrollLine, late, outstanding *color.Color) {
	lateCount := fmt.Sprintf("%6d", l.Late)
	if l.Late > 0 {
		lateCount = late.Sprint(lateCount)
	}
	owed := fmt.Sprintf("%14s", l.TotalOutstanding.Amount().StringFixed(2))
	if !l.TotalOutstanding.IsZero() {
		owed = outstanding.Sprint(owed)
	}

	fmt.Fprintf(w, "%-24s %6d %6d %s %14s %14s %14s %s\n",
		name, l.Orders, l.OnTime, lateCount,
		l.TotalOriginal.Amount().StringFixed(2),
		l.TotalPenalty.Amount().StringFixed(2),
		l.TotalFinal.Amount().StringFixed(2),
		owed,
	)
}
