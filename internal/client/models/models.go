// Package models holds the client-side view of FinTrack API resources.
package models

import "time"

// Categories offered by the client when adding an expense. The server
// accepts any non-empty category.
var Categories = []string{"Food", "Transport", "Entertainment", "Shopping", "Bills", "Healthcare", "Education", "Other"}

type Profile struct {
	UserID      string    `json:"userId"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Income      float64   `json:"income"`
	SavingsGoal float64   `json:"savingsGoal"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt,omitzero"`
}

// ProfileUpdate is a partial update; nil fields are not sent.
type ProfileUpdate struct {
	Name        *string  `json:"name,omitempty"`
	Income      *float64 `json:"income,omitempty"`
	SavingsGoal *float64 `json:"savingsGoal,omitempty"`
}

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

type ExpenseInput struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
}

// Session is what the server returns on register and login, and what the
// client keeps on disk between runs.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      Profile   `json:"user"`
}

// Expired reports whether the session token is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
