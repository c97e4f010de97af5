package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"lendledger-backend/internal/domain"
	"lendledger-backend/internal/repository"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}
func (m *MockUserRepo) RecordLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}
func (m *MockUserRepo) GetStats(ctx context.Context, userID uuid.UUID) (*domain.UserStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserStats), args.Error(1)
}
func (m *MockUserRepo) CountUsers(ctx context.Context) (int32, int32, int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Get(1).(int32), args.Get(2).(int32), args.Error(3)
}
func (m *MockUserRepo) CountLoginsSince(ctx context.Context, since time.Time) (int32, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int32), args.Error(1)
}

// MockBorrowerRepo
type MockBorrowerRepo struct {
	mock.Mock
}

func (m *MockBorrowerRepo) CreateWithSchedule(ctx context.Context, b *domain.Borrower, firstLoan *domain.Loan, schedule []domain.InterestCollection) error {
	args := m.Called(ctx, b, firstLoan, schedule)
	return args.Error(0)
}
func (m *MockBorrowerRepo) AddLoanWithSchedule(ctx context.Context, loan *domain.Loan, schedule []domain.InterestCollection) error {
	args := m.Called(ctx, loan, schedule)
	return args.Error(0)
}
func (m *MockBorrowerRepo) MigrateLegacy(ctx context.Context, borrowerID uuid.UUID) (*domain.Loan, error) {
	args := m.Called(ctx, borrowerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockBorrowerRepo) ListUnmigrated(ctx context.Context) ([]domain.Borrower, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Borrower), args.Error(1)
}
func (m *MockBorrowerRepo) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Borrower, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Borrower), args.Error(1)
}
func (m *MockBorrowerRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Borrower, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.Borrower), args.Error(1)
}
func (m *MockBorrowerRepo) FindByName(ctx context.Context, ownerID uuid.UUID, name string) (*domain.Borrower, error) {
	args := m.Called(ctx, ownerID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Borrower), args.Error(1)
}
func (m *MockBorrowerRepo) Update(ctx context.Context, b *domain.Borrower) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBorrowerRepo) SoftDelete(ctx context.Context, ownerID, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}
func (m *MockBorrowerRepo) TotalPrincipalByOwner(ctx context.Context, ownerID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockBorrowerRepo) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int32, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockBorrowerRepo) CountAll(ctx context.Context) (int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockBorrowerRepo) RecentByOwner(ctx context.Context, ownerID uuid.UUID, limit int32) ([]domain.Borrower, error) {
	args := m.Called(ctx, ownerID, limit)
	return args.Get(0).([]domain.Borrower), args.Error(1)
}

// MockCollectionRepo
type MockCollectionRepo struct {
	mock.Mock
}

func (m *MockCollectionRepo) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.InterestCollection, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InterestCollection), args.Error(1)
}
func (m *MockCollectionRepo) Update(ctx context.Context, c *domain.InterestCollection) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCollectionRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, f repository.CollectionFilter) ([]domain.CollectionWithBorrower, error) {
	args := m.Called(ctx, ownerID, f)
	return args.Get(0).([]domain.CollectionWithBorrower), args.Error(1)
}
func (m *MockCollectionRepo) ListByBorrower(ctx context.Context, borrowerID uuid.UUID) ([]domain.InterestCollection, error) {
	args := m.Called(ctx, borrowerID)
	return args.Get(0).([]domain.InterestCollection), args.Error(1)
}
func (m *MockCollectionRepo) NextPendingDue(ctx context.Context, borrowerID uuid.UUID) (*time.Time, error) {
	args := m.Called(ctx, borrowerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}
func (m *MockCollectionRepo) CountPendingDueBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (int32, error) {
	args := m.Called(ctx, ownerID, from, to)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockCollectionRepo) ListPendingDueBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time, limit int32) ([]domain.CollectionWithBorrower, error) {
	args := m.Called(ctx, ownerID, from, to, limit)
	return args.Get(0).([]domain.CollectionWithBorrower), args.Error(1)
}
func (m *MockCollectionRepo) ListOverdue(ctx context.Context, ownerID uuid.UUID, before time.Time) ([]domain.CollectionWithBorrower, error) {
	args := m.Called(ctx, ownerID, before)
	return args.Get(0).([]domain.CollectionWithBorrower), args.Error(1)
}
func (m *MockCollectionRepo) SumCollectedSince(ctx context.Context, ownerID uuid.UUID, since time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, ownerID, since)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockCollectionRepo) ListRemindersDueBetween(ctx context.Context, from, to time.Time) ([]domain.ReminderItem, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]domain.ReminderItem), args.Error(1)
}
func (m *MockCollectionRepo) ListRemindersOverdue(ctx context.Context, before time.Time) ([]domain.ReminderItem, error) {
	args := m.Called(ctx, before)
	return args.Get(0).([]domain.ReminderItem), args.Error(1)
}
func (m *MockCollectionRepo) SumCollectedAll(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockCollectionRepo) CountByStatus(ctx context.Context) (int32, int32, int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Get(1).(int32), args.Get(2).(int32), args.Error(3)
}
func (m *MockCollectionRepo) RecentByOwner(ctx context.Context, ownerID uuid.UUID, limit int32) ([]domain.CollectionWithBorrower, error) {
	args := m.Called(ctx, ownerID, limit)
	return args.Get(0).([]domain.CollectionWithBorrower), args.Error(1)
}
