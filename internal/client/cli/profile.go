package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/fintrack/internal/client/models"
)

func (a *App) Profile(ctx context.Context) error {
	p, err := a.api.Profile(ctx)
	if err != nil {
		return a.handleAuthError(err)
	}

	fmt.Fprintf(a.out, "Name:         %s\n", p.Name)
	fmt.Fprintf(a.out, "Email:        %s\n", p.Email)
	fmt.Fprintf(a.out, "Income:       %.2f\n", p.Income)
	fmt.Fprintf(a.out, "Savings goal: %.2f\n", p.SavingsGoal)
	return nil
}

// SetProfile asks for each field; an empty answer keeps the current value.
func (a *App) SetProfile(ctx context.Context) error {
	var upd models.ProfileUpdate

	name, err := getSimpleText(a.reader, "Name (empty to keep)", a.out)
	if err != nil {
		return err
	}
	if name != "" {
		upd.Name = &name
	}

	income, ok, err := GetAmount(a.reader, "Monthly income (empty to keep)", a.out)
	if err != nil {
		return err
	}
	if ok {
		upd.Income = &income
	}

	goal, ok, err := GetAmount(a.reader, "Savings goal (empty to keep)", a.out)
	if err != nil {
		return err
	}
	if ok {
		upd.SavingsGoal = &goal
	}

	if upd.Name == nil && upd.Income == nil && upd.SavingsGoal == nil {
		fmt.Fprintln(a.out, "Nothing to update")
		return nil
	}

	p, err := a.api.UpdateProfile(ctx, upd)
	if err != nil {
		return a.handleAuthError(err)
	}

	a.session.User = *p
	_ = a.sessions.Save(a.session)

	fmt.Fprintln(a.out, "Profile updated")
	return nil
}
