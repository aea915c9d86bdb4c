package models

import (
	"sort"
	"time"
)

// DateLayout is the calendar date format used for Expense.Date.
const DateLayout = "2006-01-02"

// Expense is a single spending record owned by a user.
type Expense struct {
	ID          string    `json:"expenseId"`
	UserID      string    `json:"userId"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt,omitzero"`
}

// SortExpenses orders expenses newest first: by Date descending, then by
// CreatedAt descending.
func SortExpenses(items []*Expense) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Date != items[j].Date {
			return items[i].Date > items[j].Date
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
