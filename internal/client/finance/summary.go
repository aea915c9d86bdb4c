// Package finance computes the dashboard figures shown by the CLI: totals,
// savings progress, spending breakdowns and investment projections.
package finance

import (
	"sort"
	"time"

	"github.com/dmitrijs2005/fintrack/internal/client/models"
)

type CategoryTotal struct {
	Category string
	Amount   float64
}

type MonthTotal struct {
	// Month is formatted "2006-01".
	Month  string
	Amount float64
}

type Summary struct {
	Income        float64
	SavingsGoal   float64
	TotalExpenses float64
	// Balance is income minus all recorded expenses.
	Balance float64
	// SavingsProgress is Balance as a percentage of SavingsGoal, capped at
	// 100. It is 0 when no goal is set.
	SavingsProgress float64
	GoalReached     bool
	ByCategory      []CategoryTotal
	ByMonth         []MonthTotal
}

// Summarize aggregates expenses against the profile's income and goal.
// Categories are ordered by amount (largest first), months chronologically.
// Expenses with an unparseable date are counted in the totals but not in
// the monthly breakdown.
func Summarize(p models.Profile, expenses []models.Expense) Summary {
	s := Summary{Income: p.Income, SavingsGoal: p.SavingsGoal}

	byCat := map[string]float64{}
	byMonth := map[string]float64{}
	for _, e := range expenses {
		s.TotalExpenses += e.Amount
		byCat[e.Category] += e.Amount
		if d, err := time.Parse(time.DateOnly, e.Date); err == nil {
			byMonth[d.Format("2006-01")] += e.Amount
		}
	}

	s.Balance = s.Income - s.TotalExpenses
	if s.SavingsGoal > 0 {
		s.SavingsProgress = min(max(s.Balance/s.SavingsGoal*100, 0), 100)
		s.GoalReached = s.Balance >= s.SavingsGoal
	}

	for c, v := range byCat {
		if v > 0 {
			s.ByCategory = append(s.ByCategory, CategoryTotal{Category: c, Amount: v})
		}
	}
	sort.Slice(s.ByCategory, func(i, j int) bool {
		if s.ByCategory[i].Amount != s.ByCategory[j].Amount {
			return s.ByCategory[i].Amount > s.ByCategory[j].Amount
		}
		return s.ByCategory[i].Category < s.ByCategory[j].Category
	})

	for m, v := range byMonth {
		s.ByMonth = append(s.ByMonth, MonthTotal{Month: m, Amount: v})
	}
	sort.Slice(s.ByMonth, func(i, j int) bool { return s.ByMonth[i].Month < s.ByMonth[j].Month })

	return s
}
