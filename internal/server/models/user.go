package models

import "time"

// User is the stored identity record. Email is the identity key and is kept
// lower-cased; PasswordHash never leaves the server.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Income       float64
	SavingsGoal  float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicProfile is the part of a User that may be returned to its owner.
type PublicProfile struct {
	UserID      string    `json:"userId"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Income      float64   `json:"income"`
	SavingsGoal float64   `json:"savingsGoal"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt,omitzero"`
}

// Public returns the profile view of u.
func (u *User) Public() PublicProfile {
	return PublicProfile{
		UserID:      u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Income:      u.Income,
		SavingsGoal: u.SavingsGoal,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// ProfileUpdate is a merge-update of the mutable profile fields. Nil fields
// are left untouched.
type ProfileUpdate struct {
	Name        *string  `json:"name,omitempty"`
	Income      *float64 `json:"income,omitempty"`
	SavingsGoal *float64 `json:"savingsGoal,omitempty"`
}

// Apply merges p into u and stamps UpdatedAt.
func (p ProfileUpdate) Apply(u *User, now time.Time) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Income != nil {
		u.Income = *p.Income
	}
	if p.SavingsGoal != nil {
		u.SavingsGoal = *p.SavingsGoal
	}
	u.UpdatedAt = now
}
