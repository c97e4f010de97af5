package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lendledger-backend/internal/domain"
)

func TestDashboardService_GetSummary(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	// Mid-afternoon, so the day boundaries are not trivially the clock time.
	fixedNow := time.Date(2024, 5, 20, 15, 45, 12, 0, time.UTC)
	today := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2024, 5, 21, 0, 0, 0, 0, time.UTC)
	// Two-day window runs through the end of May 22.
	upcomingEnd := time.Date(2024, 5, 23, 0, 0, 0, 0, time.UTC)
	monthStart := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	borrowerRepo := new(MockBorrowerRepo)
	collectionRepo := new(MockCollectionRepo)
	svc := &dashboardService{
		borrowerRepo:   borrowerRepo,
		collectionRepo: collectionRepo,
		windowDays:     2,
		upcomingLimit:  10,
		now:            func() time.Time { return fixedNow },
	}

	upcoming := []domain.CollectionWithBorrower{
		{InterestCollection: domain.InterestCollection{ID: uuid.New(), DueDate: today}, BorrowerName: "Ravi"},
		{InterestCollection: domain.InterestCollection{ID: uuid.New(), DueDate: tomorrow}, BorrowerName: "Meena"},
	}
	overdue := []domain.CollectionWithBorrower{
		{InterestCollection: domain.InterestCollection{ID: uuid.New(), DueDate: today.AddDate(0, -1, 0)}, BorrowerName: "Anil"},
	}

	borrowerRepo.On("CountByOwner", ctx, ownerID).Return(int32(3), nil)
	borrowerRepo.On("TotalPrincipalByOwner", ctx, ownerID).Return(decimal.NewFromInt(25000), nil)
	collectionRepo.On("SumCollectedSince", ctx, ownerID, monthStart).Return(decimal.NewFromInt(450), nil)
	collectionRepo.On("CountPendingDueBetween", ctx, ownerID, today, tomorrow).Return(int32(1), nil)
	collectionRepo.On("ListPendingDueBetween", ctx, ownerID, today, upcomingEnd, int32(10)).Return(upcoming, nil)
	collectionRepo.On("ListOverdue", ctx, ownerID, today).Return(overdue, nil)

	summary, err := svc.GetSummary(ctx, ownerID)
	require.NoError(t, err)

	assert.Equal(t, int32(3), summary.TotalBorrowers)
	assert.True(t, summary.TotalLent.Equal(decimal.NewFromInt(25000)))
	assert.True(t, summary.TotalInterestThisMonth.Equal(decimal.NewFromInt(450)))
	assert.Equal(t, int32(1), summary.DueToday)
	assert.Equal(t, int32(2), summary.UpcomingCount)
	assert.Equal(t, int32(1), summary.OverdueCount)
	assert.Len(t, summary.Upcoming, 2)
	assert.Len(t, summary.Overdue, 1)

	// The mock expectations above pin the exact window bounds: due-today is
	// [midnight, midnight+1d), upcoming is end-exclusive at midnight+3d so
	// May 22 23:59:59 is inside and May 23 00:00:00 is out, and overdue is
	// strictly before today's midnight.
	borrowerRepo.AssertExpectations(t)
	collectionRepo.AssertExpectations(t)
}
