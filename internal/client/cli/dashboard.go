package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/fintrack/internal/client/finance"
)

// Summary prints the dashboard figures computed from the profile and all
// expenses.
func (a *App) Summary(ctx context.Context) error {
	p, err := a.api.Profile(ctx)
	if err != nil {
		return a.handleAuthError(err)
	}
	list, err := a.api.ListExpenses(ctx)
	if err != nil {
		return a.handleAuthError(err)
	}

	s := finance.Summarize(*p, list)

	fmt.Fprintf(a.out, "Income:         %.2f\n", s.Income)
	fmt.Fprintf(a.out, "Total expenses: %.2f\n", s.TotalExpenses)
	fmt.Fprintf(a.out, "Balance:        %.2f\n", s.Balance)
	if s.SavingsGoal > 0 {
		fmt.Fprintf(a.out, "Savings goal:   %.2f (%.0f%%)\n", s.SavingsGoal, s.SavingsProgress)
		if s.GoalReached {
			fmt.Fprintln(a.out, "Goal achieved!")
		} else {
			fmt.Fprintf(a.out, "%.2f to go\n", s.SavingsGoal-s.Balance)
		}
	}

	if len(s.ByCategory) > 0 {
		fmt.Fprintln(a.out, "By category:")
		for _, c := range s.ByCategory {
			fmt.Fprintf(a.out, "  %-14s %10.2f\n", c.Category, c.Amount)
		}
	}
	if len(s.ByMonth) > 0 {
		fmt.Fprintln(a.out, "By month:")
		for _, m := range s.ByMonth {
			fmt.Fprintf(a.out, "  %-14s %10.2f\n", m.Month, m.Amount)
		}
	}
	return nil
}

// Project runs an investment projection. It needs no session.
func (a *App) Project(ctx context.Context) error {
	plan, err := getSimpleText(a.reader, "Plan: sip or lumpsum (empty for sip)", a.out)
	if err != nil {
		return err
	}
	in := finance.ProjectionInput{
		Plan:       finance.Plan(strings.ToLower(plan)),
		ReturnRate: finance.DefaultReturnRate,
		Inflation:  finance.DefaultInflation,
	}
	if in.Plan == "" {
		in.Plan = finance.PlanSIP
	}

	amountPrompt := "Monthly investment"
	if in.Plan == finance.PlanLumpsum {
		amountPrompt = "Investment amount"
	}
	if in.Amount, _, err = GetAmount(a.reader, amountPrompt, a.out); err != nil {
		return err
	}
	if in.Years, _, err = GetAmount(a.reader, "Years", a.out); err != nil {
		return err
	}

	rate := strconv.FormatFloat(finance.DefaultReturnRate, 'f', -1, 64)
	if v, ok, err := GetAmount(a.reader, "Expected annual return % (empty for "+rate+")", a.out); err != nil {
		return err
	} else if ok {
		in.ReturnRate = v
	}

	inflation := strconv.FormatFloat(finance.DefaultInflation, 'f', -1, 64)
	if v, ok, err := GetAmount(a.reader, "Inflation % (empty for "+inflation+")", a.out); err != nil {
		return err
	} else if ok {
		in.Inflation = v
	}

	p, err := finance.Project(in)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Invested:     %.2f\n", p.Invested)
	fmt.Fprintf(a.out, "Future value: %.2f\n", p.FutureValue)
	fmt.Fprintf(a.out, "Returns:      %.2f (%.2f%%)\n", p.Returns, p.ReturnsPercent)
	fmt.Fprintf(a.out, "Real value:   %.2f\n", p.RealValue)
	return nil
}
