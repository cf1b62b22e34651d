package analytics

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// Forecast policy constants.
const (
	// TrailingMonths is the number of full months behind the reference month
	// used for velocity and surplus.
	TrailingMonths = 3

	highRiskMargin   = 0.20
	mediumRiskMargin = 0.05
	outlookMonths    = 3
)

// velocityDivisor is a fixed 30-day month used to turn a monthly average into
// a daily rate, regardless of the real month length.
var velocityDivisor = decimal.NewFromInt(30)

// Confidence grades a month-end projection by how much of the month is known.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// ConfidenceFor maps the day of month to a confidence grade.
func ConfidenceFor(day int) Confidence {
	switch {
	case day > 20:
		return ConfidenceHigh
	case day > 10:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// MonthEnd projects spend and balance to the end of the reference month.
// ProjectedBalance uses ledger income only; the salary setting is not added.
type MonthEnd struct {
	Period           entity.Period
	CurrentSpend     decimal.Decimal
	CurrentIncome    decimal.Decimal
	DailyVelocity    decimal.Decimal
	DaysRemaining    int
	ProjectedSpend   decimal.Decimal
	ProjectedBalance decimal.Decimal
	Confidence       Confidence
}

// DailyVelocity averages the monthly expense sums of the full months before
// period that had any expense, divided by 30. No history yields zero.
func DailyVelocity(period entity.Period, txs []*entity.Transaction) decimal.Decimal {
	months := bucketByMonth(txs)

	sum := decimal.Zero
	qualifying := 0
	for i := 1; i <= TrailingMonths; i++ {
		p := period.AddMonths(-i)
		if months.expenses[p] == 0 {
			continue
		}
		sum = sum.Add(months.totals[p].Expense)
		qualifying++
	}
	if qualifying == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(qualifying))).Div(velocityDivisor)
}

// ProjectEndOfMonth extrapolates the month containing ref linearly.
func ProjectEndOfMonth(ref time.Time, txs []*entity.Transaction) MonthEnd {
	progress := ProgressOf(ref)
	current := MonthTotals(progress.Period, txs)
	velocity := DailyVelocity(progress.Period, txs)
	remaining := progress.DaysRemaining()

	projectedSpend := current.Expense.Add(velocity.Mul(decimal.NewFromInt(int64(remaining))))

	return MonthEnd{
		Period:           progress.Period,
		CurrentSpend:     current.Expense,
		CurrentIncome:    current.Income,
		DailyVelocity:    velocity,
		DaysRemaining:    remaining,
		ProjectedSpend:   projectedSpend,
		ProjectedBalance: current.Income.Sub(projectedSpend),
		Confidence:       ConfidenceFor(progress.Day),
	}
}

// MonthlySurplus averages income minus expense over the full months before
// period that had any income or expense.
func MonthlySurplus(period entity.Period, txs []*entity.Transaction) decimal.Decimal {
	months := bucketByMonth(txs)

	sum := decimal.Zero
	active := 0
	for i := 1; i <= TrailingMonths; i++ {
		p := period.AddMonths(-i)
		if months.flows[p] == 0 {
			continue
		}
		sum = sum.Add(months.totals[p].Net())
		active++
	}
	if active == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(active)))
}

// RiskLevel grades how likely a budget is to be overrun.
type RiskLevel string

const (
	RiskHigh   RiskLevel = "high"
	RiskMedium RiskLevel = "medium"
)

// BudgetRisk is a budget expected to finish over its limit.
type BudgetRisk struct {
	Category       *entity.Category
	Risk           RiskLevel
	BurnRate       float64
	Spent          decimal.Decimal
	Budget         decimal.Decimal
	ProjectedTotal decimal.Decimal
	Overage        decimal.Decimal
}

// BudgetRisks compares burn rate with month progress for every budgeted
// category and keeps the medium and high risks.
func BudgetRisks(statuses []BudgetStatus, progress MonthProgress) []BudgetRisk {
	var risks []BudgetRisk
	for _, s := range statuses {
		burn, ok := ratio(s.Spent, s.BudgetLimit)
		if !ok {
			continue
		}

		var level RiskLevel
		switch {
		case burn > progress.Fraction+highRiskMargin:
			level = RiskHigh
		case burn > progress.Fraction+mediumRiskMargin:
			level = RiskMedium
		default:
			continue
		}

		projected := s.Spent
		if progress.Fraction > 0 {
			projected = s.Spent.Div(decimal.NewFromFloat(progress.Fraction))
		}
		risks = append(risks, BudgetRisk{
			Category:       s.Category,
			Risk:           level,
			BurnRate:       burn,
			Spent:          s.Spent,
			Budget:         s.BudgetLimit,
			ProjectedTotal: projected,
			Overage:        projected.Sub(s.BudgetLimit),
		})
	}
	return risks
}

// Feasibility labels how reachable a goal is at the current surplus.
type Feasibility string

const (
	FeasibilityExcellent   Feasibility = "excellent"
	FeasibilityGood        Feasibility = "good"
	FeasibilityModerate    Feasibility = "moderate"
	FeasibilityChallenging Feasibility = "challenging"
	FeasibilityImpossible  Feasibility = "impossible"
)

var (
	oneMonth     = decimal.NewFromInt(1)
	sixMonths    = decimal.NewFromInt(6)
	twelveMonths = decimal.NewFromInt(12)
)

func feasibilityFor(months decimal.Decimal) Feasibility {
	switch {
	case months.LessThan(oneMonth):
		return FeasibilityExcellent
	case months.LessThan(sixMonths):
		return FeasibilityGood
	case months.LessThan(twelveMonths):
		return FeasibilityModerate
	default:
		return FeasibilityChallenging
	}
}

// GoalETA estimates when an active goal will be reached.
type GoalETA struct {
	Goal      *entity.Goal
	Balance   decimal.Decimal
	Remaining decimal.Decimal
	// MonthsNeeded and ETA are nil when the goal cannot be reached.
	MonthsNeeded *int
	ETA          *time.Time
	Feasibility  Feasibility
}

// GoalETAs projects the active goals assuming the whole surplus goes to each
// one. A goal that is already funded is due today.
func GoalETAs(goals []*entity.Goal, balances map[uuid.UUID]decimal.Decimal, surplus decimal.Decimal, ref time.Time) []GoalETA {
	today := entity.Day(ref)
	etas := make([]GoalETA, 0, len(goals))
	for _, g := range goals {
		if g.IsCompleted {
			continue
		}
		balance := balances[g.ID]
		remaining := g.TargetAmount.Sub(balance)

		eta := GoalETA{
			Goal:        g,
			Balance:     balance,
			Remaining:   decimal.Max(remaining, decimal.Zero),
			Feasibility: FeasibilityImpossible,
		}

		switch {
		case !remaining.IsPositive():
			zero := 0
			eta.MonthsNeeded = &zero
			eta.ETA = &today
			eta.Feasibility = FeasibilityExcellent
		case surplus.IsPositive():
			months := remaining.Div(surplus)
			needed := int(months.Ceil().IntPart())
			due := today.AddDate(0, needed, 0)
			eta.MonthsNeeded = &needed
			eta.ETA = &due
			eta.Feasibility = feasibilityFor(months)
		}
		etas = append(etas, eta)
	}
	return etas
}

// Direction is the sign of the three-month outlook.
type Direction string

const (
	DirectionPositive Direction = "positive"
	DirectionNegative Direction = "negative"
	DirectionFlat     Direction = "flat"
)

// Outlook extends the monthly surplus over the next three months.
type Outlook struct {
	MonthlySurplus decimal.Decimal
	Drift          decimal.Decimal
	Direction      Direction
}

// OutlookFrom computes drift = surplus * 3.
func OutlookFrom(surplus decimal.Decimal) Outlook {
	drift := surplus.Mul(decimal.NewFromInt(outlookMonths))
	direction := DirectionFlat
	switch drift.Sign() {
	case 1:
		direction = DirectionPositive
	case -1:
		direction = DirectionNegative
	}
	return Outlook{MonthlySurplus: surplus, Drift: drift, Direction: direction}
}

// Forecast bundles the projections for the month containing ref.
type Forecast struct {
	AsOf        time.Time
	MonthEnd    MonthEnd
	BudgetRisks []BudgetRisk
	GoalETAs    []GoalETA
	Outlook     Outlook
}

// BuildForecast runs every projection over snap as of ref.
func BuildForecast(snap *Snapshot, ref time.Time) (*Forecast, error) {
	progress := ProgressOf(ref)
	statuses, err := BudgetStatuses(progress.Period, snap.Categories, snap.Budgets, snap.Transactions)
	if err != nil {
		return nil, err
	}
	surplus := MonthlySurplus(progress.Period, snap.Transactions)

	return &Forecast{
		AsOf:        entity.Day(ref),
		MonthEnd:    ProjectEndOfMonth(ref, snap.Transactions),
		BudgetRisks: BudgetRisks(statuses, progress),
		GoalETAs:    GoalETAs(snap.ActiveGoals(), GoalBalances(snap.Transactions), surplus, ref),
		Outlook:     OutlookFrom(surplus),
	}, nil
}
