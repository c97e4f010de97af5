package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"lendledger-backend/internal/domain"
)

// Inputs are plain parameter bags: the routing layer owns transport decoding
// and shape validation, services own the semantic checks.

type CreateBorrowerInput struct {
	BorrowerName      string          `json:"borrower_name"`
	PrincipalAmount   decimal.Decimal `json:"principal_amount"`
	InterestAmount    decimal.Decimal `json:"interest_amount"`
	InterestIsPercent bool            `json:"interest_is_percent"`
	DateProvided      time.Time       `json:"date_provided"`
	Notes             string          `json:"notes"`
}

type LoanInput struct {
	PrincipalAmount   decimal.Decimal `json:"principal_amount"`
	InterestAmount    decimal.Decimal `json:"interest_amount"`
	InterestIsPercent bool            `json:"interest_is_percent"`
	DateProvided      time.Time       `json:"date_provided"`
	Notes             string          `json:"notes"`
}

// UpdateBorrowerInput mutates the borrower name and legacy fields only; the
// loan list is never touched by update.
type UpdateBorrowerInput struct {
	BorrowerName      *string          `json:"borrower_name"`
	PrincipalAmount   *decimal.Decimal `json:"principal_amount"`
	InterestAmount    *decimal.Decimal `json:"interest_amount"`
	InterestIsPercent *bool            `json:"interest_is_percent"`
	DateProvided      *time.Time       `json:"date_provided"`
	Notes             *string          `json:"notes"`
}

type MarkCollectedInput struct {
	CollectedDate   *time.Time       `json:"collected_date"`
	AmountCollected *decimal.Decimal `json:"amount_collected"`
	Notes           *string          `json:"notes"`
}

type ListCollectionsInput struct {
	Status     *domain.CollectionStatus `json:"status"`
	DueOn      *time.Time               `json:"due_on"`
	BorrowerID *uuid.UUID               `json:"borrower_id"`
}

type BorrowerService interface {
	CreateBorrower(ctx context.Context, ownerID uuid.UUID, in CreateBorrowerInput) (*domain.Borrower, error)
	AddLoan(ctx context.Context, ownerID, borrowerID uuid.UUID, in LoanInput) (*domain.Borrower, *domain.Loan, error)
	GetBorrower(ctx context.Context, ownerID, id uuid.UUID) (*domain.Borrower, error)
	ListBorrowers(ctx context.Context, ownerID uuid.UUID) ([]domain.BorrowerSummary, error)
	UpdateBorrower(ctx context.Context, ownerID, id uuid.UUID, in UpdateBorrowerInput) (*domain.Borrower, error)
	DeleteBorrower(ctx context.Context, ownerID, id uuid.UUID) error
	CheckDuplicate(ctx context.Context, ownerID uuid.UUID, name string) (*domain.DuplicateCheck, error)
	ListBorrowerCollections(ctx context.Context, ownerID, borrowerID uuid.UUID) ([]domain.InterestCollection, error)

	// MigrateLegacyBorrowers runs the one-time legacy migration across every
	// remaining legacy-shaped borrower; returns how many were migrated.
	MigrateLegacyBorrowers(ctx context.Context) (int32, error)
}

type CollectionService interface {
	ListCollections(ctx context.Context, ownerID uuid.UUID, in ListCollectionsInput) ([]domain.CollectionWithBorrower, error)
	MarkCollected(ctx context.Context, ownerID, id uuid.UUID, in MarkCollectedInput) (*domain.InterestCollection, error)
	MarkPending(ctx context.Context, ownerID, id uuid.UUID) (*domain.InterestCollection, error)
}

type DashboardService interface {
	GetSummary(ctx context.Context, ownerID uuid.UUID) (*domain.DashboardSummary, error)
}

type AdminService interface {
	ListUsers(ctx context.Context) ([]domain.UserWithStats, error)
	GetStats(ctx context.Context) (*domain.AdminStats, error)
	SetUserActive(ctx context.Context, adminID, userID uuid.UUID, active bool) (*domain.User, error)
	GetUserActivity(ctx context.Context, userID uuid.UUID) (*domain.UserActivity, error)
}

type AuthService interface {
	Signup(ctx context.Context, name, email, password string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
}

type EmailService interface {
	// Enabled reports whether a delivery transport is configured; callers
	// suppress sends entirely when it is false.
	Enabled() bool
	Send(ctx context.Context, toEmail, toName, subject, body string) error
}
