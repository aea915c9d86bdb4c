package expenses

import (
	"time"

	"github.com/dmitrijs2005/fintrack/internal/server/models"
)

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func sampleExpense(id, userID, date string, created time.Time) *models.Expense {
	return &models.Expense{
		ID:          id,
		UserID:      userID,
		Description: "lunch " + id,
		Amount:      12.5,
		Category:    "Food",
		Date:        date,
		CreatedAt:   created,
	}
}

func ids(items []*models.Expense) []string {
	out := make([]string, 0, len(items))
	for _, e := range items {
		out = append(out, e.ID)
	}
	return out
}
