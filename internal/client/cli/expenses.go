package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/fintrack/internal/client/models"
)

// readExpense prompts for all expense fields. Date defaults to today and
// category to "Other".
func (a *App) readExpense() (models.ExpenseInput, error) {
	var in models.ExpenseInput

	desc, err := getSimpleText(a.reader, "Description", a.out)
	if err != nil {
		return in, err
	}
	in.Description = desc

	amount, ok, err := GetAmount(a.reader, "Amount", a.out)
	if err != nil {
		return in, err
	}
	if !ok {
		return in, errors.New("amount is required")
	}
	in.Amount = amount

	cat, err := getSimpleText(a.reader, "Category ("+strings.Join(models.Categories, ", ")+")", a.out)
	if err != nil {
		return in, err
	}
	if cat == "" {
		cat = "Other"
	}
	in.Category = cat

	today := time.Now().Format(time.DateOnly)
	date, err := getSimpleText(a.reader, "Date YYYY-MM-DD (empty for "+today+")", a.out)
	if err != nil {
		return in, err
	}
	if date == "" {
		date = today
	}
	in.Date = date

	return in, nil
}

func (a *App) Add(ctx context.Context) error {
	in, err := a.readExpense()
	if err != nil {
		return err
	}

	e, err := a.api.CreateExpense(ctx, in)
	if err != nil {
		return a.handleAuthError(err)
	}

	fmt.Fprintf(a.out, "Added %s\n", e.ID)
	return nil
}

func (a *App) List(ctx context.Context) error {
	list, err := a.api.ListExpenses(ctx)
	if err != nil {
		return a.handleAuthError(err)
	}

	if len(list) == 0 {
		fmt.Fprintln(a.out, "No expenses yet")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tCATEGORY\tAMOUNT\tDESCRIPTION")
	for _, e := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%s\n", e.ID, e.Date, e.Category, e.Amount, e.Description)
	}
	return tw.Flush()
}

func (a *App) Update(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter expense id to update", a.out)
	if err != nil {
		return err
	}

	in, err := a.readExpense()
	if err != nil {
		return err
	}

	if _, err := a.api.UpdateExpense(ctx, id, in); err != nil {
		return a.handleAuthError(err)
	}

	fmt.Fprintln(a.out, "Expense updated")
	return nil
}

func (a *App) Delete(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter expense id to delete", a.out)
	if err != nil {
		return err
	}

	if err := a.api.DeleteExpense(ctx, id); err != nil {
		return a.handleAuthError(err)
	}

	fmt.Fprintln(a.out, "Expense deleted")
	return nil
}
