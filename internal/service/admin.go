package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"lendledger-backend/internal/domain"
	"lendledger-backend/internal/logger"
	"lendledger-backend/internal/repository"
)

// onlineWindow is how recently a user must have logged in to be shown as
// online in the admin user list.
const onlineWindow = 30 * time.Minute

const (
	recentBorrowerLimit   = 5
	recentCollectionLimit = 10
)

type adminService struct {
	userRepo       repository.UserRepository
	borrowerRepo   repository.BorrowerRepository
	collectionRepo repository.CollectionRepository
	now            func() time.Time
}

func NewAdminService(
	userRepo repository.UserRepository,
	borrowerRepo repository.BorrowerRepository,
	collectionRepo repository.CollectionRepository,
) AdminService {
	return &adminService{
		userRepo:       userRepo,
		borrowerRepo:   borrowerRepo,
		collectionRepo: collectionRepo,
		now:            time.Now,
	}
}

func (s *adminService) ListUsers(ctx context.Context) ([]domain.UserWithStats, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	onlineCutoff := s.now().Add(-onlineWindow)
	out := make([]domain.UserWithStats, 0, len(users))
	for _, u := range users {
		stats, err := s.userRepo.GetStats(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.UserWithStats{
			User:     u,
			Stats:    *stats,
			IsOnline: u.LastLoginAt != nil && u.LastLoginAt.After(onlineCutoff),
		})
	}
	return out, nil
}

func (s *adminService) GetStats(ctx context.Context) (*domain.AdminStats, error) {
	stats := &domain.AdminStats{}

	total, active, admins, err := s.userRepo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	stats.Users.Total = total
	stats.Users.Active = active
	stats.Users.Admins = admins

	recentLogins, err := s.userRepo.CountLoginsSince(ctx, s.now().Add(-24*time.Hour))
	if err != nil {
		return nil, err
	}
	stats.Users.RecentLogins = recentLogins

	borrowers, err := s.borrowerRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	stats.Borrowers.Total = borrowers

	cTotal, cPending, cReceived, err := s.collectionRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	stats.Collections.Total = cTotal
	stats.Collections.Pending = cPending
	stats.Collections.Received = cReceived

	collected, err := s.collectionRepo.SumCollectedAll(ctx)
	if err != nil {
		return nil, err
	}
	stats.Collections.TotalAmountCollected = collected

	return stats, nil
}

func (s *adminService) SetUserActive(ctx context.Context, adminID, userID uuid.UUID, active bool) (*domain.User, error) {
	if adminID == userID && !active {
		return nil, domain.ErrSelfDeactivation
	}

	if err := s.userRepo.SetActive(ctx, userID, active); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	logger.Info("user active state changed",
		"admin_id", adminID.String(),
		"user_id", userID.String(),
		"is_active", active)
	return user, nil
}

func (s *adminService) GetUserActivity(ctx context.Context, userID uuid.UUID) (*domain.UserActivity, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	borrowers, err := s.borrowerRepo.RecentByOwner(ctx, userID, recentBorrowerLimit)
	if err != nil {
		return nil, err
	}

	collections, err := s.collectionRepo.RecentByOwner(ctx, userID, recentCollectionLimit)
	if err != nil {
		return nil, err
	}

	return &domain.UserActivity{
		User:              *user,
		RecentBorrowers:   borrowers,
		RecentCollections: collections,
	}, nil
}
