package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/finance-tracker/ledger/internal/application/usecase/analytics"
	"github.com/finance-tracker/ledger/internal/domain/analytics/insight"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	"github.com/finance-tracker/ledger/internal/integration/persistence"
)

var (
	flagMonth string
	flagAsOf  string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the month summary, budget status, forecast and insights",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&flagMonth, "month", "", "Month to report (YYYY-MM, default: month of --as-of)")
	reportCmd.Flags().StringVar(&flagAsOf, "as-of", "", "Reference day (YYYY-MM-DD, default: today)")
}

func runReport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	asOf := systemClock.Now()
	if flagAsOf != "" {
		d, err := entity.ParseDate(flagAsOf)
		if err != nil {
			return fmt.Errorf("invalid --as-of: %w", err)
		}
		asOf = d
	}
	month := flagMonth
	if month == "" {
		month = entity.PeriodOf(asOf).String()
	}

	database, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer closeLedger(database)

	reader := persistence.NewLedgerReader(database.DB())

	summary, err := analytics.NewGetMonthSummaryUseCase(reader, nil).
		Execute(ctx, analytics.GetMonthSummaryInput{Month: month})
	if err != nil {
		return err
	}
	status, err := analytics.NewGetBudgetStatusUseCase(reader, systemClock, nil).
		Execute(ctx, analytics.GetBudgetStatusInput{Month: month, AsOf: &asOf})
	if err != nil {
		return err
	}
	forecast, err := analytics.NewGetForecastUseCase(reader, systemClock, nil).
		Execute(ctx, analytics.GetForecastInput{AsOf: &asOf})
	if err != nil {
		return err
	}
	insights, err := analytics.NewGetInsightsUseCase(reader, systemClock, insight.DefaultRegistry(), nil).
		Execute(ctx, analytics.GetInsightsInput{AsOf: &asOf})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	st := newReportStyles(out)
	printSummary(out, st, summary)
	printBudgets(out, st, status)
	printForecast(out, st, forecast)
	printInsights(out, st, insights.Insights)
	return nil
}

// reportStyles colours headings and flags. The renderer is bound to the
// output so pipes and files get plain text.
type reportStyles struct {
	heading lipgloss.Style
	muted   lipgloss.Style
	warn    lipgloss.Style
	bad     lipgloss.Style
	good    lipgloss.Style
}

func newReportStyles(w io.Writer) reportStyles {
	r := lipgloss.NewRenderer(w)
	return reportStyles{
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#3AA99F")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("#6F6E69")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("#DA702C")),
		bad:     r.NewStyle().Foreground(lipgloss.Color("#D14D41")),
		good:    r.NewStyle().Foreground(lipgloss.Color("#879A39")),
	}
}

func (st reportStyles) insightType(t insight.Type) lipgloss.Style {
	switch t {
	case insight.TypeRisk:
		return st.bad
	case insight.TypeWarning, insight.TypeTrend:
		return st.warn
	case insight.TypeSuccess, insight.TypeOpportunity:
		return st.good
	default:
		return st.muted
	}
}

func printSummary(w io.Writer, st reportStyles, out *analytics.GetMonthSummaryOutput) {
	s := out.Summary
	fmt.Fprintln(w, st.heading.Render("Summary "+s.Period.String()))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "  Salary\t%s\t\n", s.Salary.StringFixed(2))
	fmt.Fprintf(tw, "  Extra income\t%s\t\n", s.ExtraIncome.StringFixed(2))
	fmt.Fprintf(tw, "  Expenses\t%s\t\n", s.TotalExpense.StringFixed(2))
	fmt.Fprintf(tw, "  Balance\t%s\t\n", s.Balance.StringFixed(2))
	tw.Flush()
	fmt.Fprintln(w)
}

func printBudgets(w io.Writer, st reportStyles, out *analytics.GetBudgetStatusOutput) {
	fmt.Fprintln(w, st.heading.Render(fmt.Sprintf("Budgets (day %d of %d)", out.Progress.Day, out.Progress.DaysInMonth)))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  CATEGORY\tLIMIT\tSPENT\tREMAINING\tFLAGS")
	for _, r := range out.Rows {
		if !r.HasBudget && r.Spent.IsZero() {
			continue
		}
		flags := ""
		if r.Pacing != nil {
			switch {
			case r.Pacing.Over:
				flags = st.bad.Render("over")
			case r.Pacing.Warning:
				flags = st.warn.Render("warning")
			case r.Pacing.PacingBad:
				flags = st.warn.Render("fast")
			}
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n",
			r.Category.Name, r.BudgetLimit.StringFixed(2), r.Spent.StringFixed(2), r.Remaining.StringFixed(2), flags)
	}
	tw.Flush()
	fmt.Fprintln(w)
}

func printForecast(w io.Writer, st reportStyles, out *analytics.GetForecastOutput) {
	f := out.Forecast
	m := f.MonthEnd
	fmt.Fprintln(w, st.heading.Render(fmt.Sprintf("Forecast as of %s", f.AsOf.Format(entity.DateLayout)))+
		st.muted.Render(fmt.Sprintf(" (%s confidence)", m.Confidence)))
	fmt.Fprintf(w, "  Projected spend %s, balance %s, %d days left\n",
		m.ProjectedSpend.StringFixed(2), m.ProjectedBalance.StringFixed(2), m.DaysRemaining)
	for _, r := range f.BudgetRisks {
		fmt.Fprintf(w, "  %s risk on %s: projected %s over by %s\n",
			r.Risk, r.Category.Name, r.ProjectedTotal.StringFixed(2), r.Overage.StringFixed(2))
	}
	for _, g := range f.GoalETAs {
		eta := "never"
		if g.ETA != nil {
			eta = g.ETA.Format(time.DateOnly)
		}
		fmt.Fprintf(w, "  Goal %s: %s remaining, ETA %s (%s)\n", g.Goal.Name, g.Remaining.StringFixed(2), eta, g.Feasibility)
	}
	fmt.Fprintf(w, "  Outlook: %s, %s over three months\n\n", f.Outlook.Direction, f.Outlook.Drift.StringFixed(2))
}

func printInsights(w io.Writer, st reportStyles, insights []insight.Insight) {
	fmt.Fprintln(w, st.heading.Render("Insights"))
	if len(insights) == 0 {
		fmt.Fprintln(w, st.muted.Render("  none"))
		return
	}
	for _, in := range insights {
		tag := st.insightType(in.Type).Render(fmt.Sprintf("[%d %s]", in.Priority, in.Type))
		fmt.Fprintf(w, "  %s %s: %s\n", tag, in.Title, in.Message)
	}
}
