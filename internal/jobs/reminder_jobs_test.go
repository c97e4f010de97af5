package jobs

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lendledger-backend/internal/domain"
)

func TestGroupByOwner(t *testing.T) {
	items := []domain.ReminderItem{
		{OwnerEmail: "a@example.com", BorrowerName: "Ravi"},
		{OwnerEmail: "b@example.com", BorrowerName: "Meena"},
		{OwnerEmail: "a@example.com", BorrowerName: "Anil"},
	}

	grouped := groupByOwner(items)
	require.Len(t, grouped, 2)
	assert.Len(t, grouped["a@example.com"], 2)
	assert.Len(t, grouped["b@example.com"], 1)
	assert.Equal(t, "Ravi", grouped["a@example.com"][0].BorrowerName)
	assert.Equal(t, "Anil", grouped["a@example.com"][1].BorrowerName)
}

func TestBuildReminderBody(t *testing.T) {
	due := time.Date(2024, 5, 22, 0, 0, 0, 0, time.UTC)
	items := []domain.ReminderItem{
		{
			Collection:     domain.InterestCollection{DueDate: due},
			BorrowerName:   "Ravi Kumar",
			OwnerName:      "Lakshmi",
			ExpectedAmount: decimal.NewFromInt(200),
		},
		{
			Collection:     domain.InterestCollection{DueDate: due},
			BorrowerName:   "Meena",
			OwnerName:      "Lakshmi",
			ExpectedAmount: decimal.RequireFromString("512.50"),
		},
	}

	body := buildReminderBody("Lakshmi", "The following interest collections are due in two days:", items)

	assert.Contains(t, body, "Dear Lakshmi,")
	assert.Contains(t, body, "due in two days")
	assert.Contains(t, body, "- Ravi Kumar: 200.00 due on May 22, 2024")
	assert.Contains(t, body, "- Meena: 512.50 due on May 22, 2024")
}
