package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"lendledger-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	RecordLogin(ctx context.Context, id uuid.UUID, at time.Time) error

	// Admin counters
	GetStats(ctx context.Context, userID uuid.UUID) (*domain.UserStats, error)
	CountUsers(ctx context.Context) (total, active, admins int32, err error)
	CountLoginsSince(ctx context.Context, since time.Time) (int32, error)
}

type BorrowerRepository interface {
	// CreateWithSchedule inserts the borrower, its first loan, and the loan's
	// collection schedule in one transaction.
	CreateWithSchedule(ctx context.Context, b *domain.Borrower, firstLoan *domain.Loan, schedule []domain.InterestCollection) error

	// AddLoanWithSchedule appends a loan to an existing borrower and inserts
	// its collection schedule in one transaction.
	AddLoanWithSchedule(ctx context.Context, loan *domain.Loan, schedule []domain.InterestCollection) error

	// MigrateLegacy folds a borrower's legacy fields into the loan list: it
	// inserts the legacy values as loan entry zero, clears the legacy columns,
	// and re-points the borrower's null-loan collections at the new loan, all
	// in one transaction. A borrower without the legacy shape is left alone
	// and (nil, nil) is returned, so repeated calls never duplicate loans.
	MigrateLegacy(ctx context.Context, borrowerID uuid.UUID) (*domain.Loan, error)
	ListUnmigrated(ctx context.Context) ([]domain.Borrower, error)

	// GetByID returns a non-deleted borrower owned by ownerID, loans loaded,
	// or domain.ErrNotFound.
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Borrower, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Borrower, error)
	// FindByName does a case-insensitive exact-name match among the owner's
	// non-deleted borrowers; (nil, nil) when there is no match.
	FindByName(ctx context.Context, ownerID uuid.UUID, name string) (*domain.Borrower, error)
	Update(ctx context.Context, b *domain.Borrower) error
	SoftDelete(ctx context.Context, ownerID, id uuid.UUID) error

	TotalPrincipalByOwner(ctx context.Context, ownerID uuid.UUID) (decimal.Decimal, error)
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int32, error)
	CountAll(ctx context.Context) (int32, error)
	RecentByOwner(ctx context.Context, ownerID uuid.UUID, limit int32) ([]domain.Borrower, error)
}

// CollectionFilter narrows ListByOwner. A nil field means "any".
type CollectionFilter struct {
	Status     *domain.CollectionStatus
	DueOn      *time.Time // matches the whole calendar day
	BorrowerID *uuid.UUID
}

type CollectionRepository interface {
	// GetByID returns a collection owned by ownerID whose borrower is not
	// soft-deleted, or domain.ErrNotFound.
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.InterestCollection, error)
	Update(ctx context.Context, c *domain.InterestCollection) error

	ListByOwner(ctx context.Context, ownerID uuid.UUID, f CollectionFilter) ([]domain.CollectionWithBorrower, error)
	ListByBorrower(ctx context.Context, borrowerID uuid.UUID) ([]domain.InterestCollection, error)

	// NextPendingDue returns the earliest pending due date across all of the
	// borrower's loans, or nil when nothing is pending.
	NextPendingDue(ctx context.Context, borrowerID uuid.UUID) (*time.Time, error)

	// Dashboard windows: [from, to) on due date, pending only, deleted
	// borrowers excluded.
	CountPendingDueBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (int32, error)
	ListPendingDueBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time, limit int32) ([]domain.CollectionWithBorrower, error)
	ListOverdue(ctx context.Context, ownerID uuid.UUID, before time.Time) ([]domain.CollectionWithBorrower, error)
	SumCollectedSince(ctx context.Context, ownerID uuid.UUID, since time.Time) (decimal.Decimal, error)

	// Reminder buckets, across all owners.
	ListRemindersDueBetween(ctx context.Context, from, to time.Time) ([]domain.ReminderItem, error)
	ListRemindersOverdue(ctx context.Context, before time.Time) ([]domain.ReminderItem, error)

	// Admin counters
	SumCollectedAll(ctx context.Context) (decimal.Decimal, error)
	CountByStatus(ctx context.Context) (total, pending, received int32, err error)
	RecentByOwner(ctx context.Context, ownerID uuid.UUID, limit int32) ([]domain.CollectionWithBorrower, error)
}
