package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"lendledger-backend/internal/domain"
	"lendledger-backend/internal/repository"
	"lendledger-backend/internal/utils"
)

type dashboardService struct {
	borrowerRepo   repository.BorrowerRepository
	collectionRepo repository.CollectionRepository
	windowDays     int
	upcomingLimit  int32
	now            func() time.Time
}

func NewDashboardService(
	borrowerRepo repository.BorrowerRepository,
	collectionRepo repository.CollectionRepository,
	upcomingWindowDays int,
	upcomingLimit int32,
) DashboardService {
	if upcomingWindowDays <= 0 {
		upcomingWindowDays = 2
	}
	if upcomingLimit <= 0 {
		upcomingLimit = 10
	}
	return &dashboardService{
		borrowerRepo:   borrowerRepo,
		collectionRepo: collectionRepo,
		windowDays:     upcomingWindowDays,
		upcomingLimit:  upcomingLimit,
		now:            time.Now,
	}
}

// GetSummary derives the per-user reporting view. The reads run as
// independent queries without snapshot isolation.
func (s *dashboardService) GetSummary(ctx context.Context, ownerID uuid.UUID) (*domain.DashboardSummary, error) {
	today := utils.StartOfDay(s.now())
	tomorrow := today.AddDate(0, 0, 1)
	// Upcoming runs through the end of day today+windowDays, so the
	// end-exclusive bound is the following midnight.
	upcomingEnd := today.AddDate(0, 0, s.windowDays+1)

	totalBorrowers, err := s.borrowerRepo.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	totalLent, err := s.borrowerRepo.TotalPrincipalByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	interestThisMonth, err := s.collectionRepo.SumCollectedSince(ctx, ownerID, utils.StartOfMonth(s.now()))
	if err != nil {
		return nil, err
	}

	dueToday, err := s.collectionRepo.CountPendingDueBetween(ctx, ownerID, today, tomorrow)
	if err != nil {
		return nil, err
	}

	upcoming, err := s.collectionRepo.ListPendingDueBetween(ctx, ownerID, today, upcomingEnd, s.upcomingLimit)
	if err != nil {
		return nil, err
	}

	overdue, err := s.collectionRepo.ListOverdue(ctx, ownerID, today)
	if err != nil {
		return nil, err
	}

	return &domain.DashboardSummary{
		TotalBorrowers:         totalBorrowers,
		TotalLent:              totalLent,
		TotalInterestThisMonth: interestThisMonth,
		DueToday:               dueToday,
		UpcomingCount:          int32(len(upcoming)),
		OverdueCount:           int32(len(overdue)),
		Upcoming:               upcoming,
		Overdue:                overdue,
	}, nil
}
