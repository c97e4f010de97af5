package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"lendledger-backend/internal/domain"
	"lendledger-backend/internal/logger"
	"lendledger-backend/internal/repository"
	"lendledger-backend/internal/utils"
)

type borrowerService struct {
	borrowerRepo   repository.BorrowerRepository
	collectionRepo repository.CollectionRepository
	scheduleMonths int
}

func NewBorrowerService(
	borrowerRepo repository.BorrowerRepository,
	collectionRepo repository.CollectionRepository,
	scheduleMonths int,
) BorrowerService {
	if scheduleMonths <= 0 {
		scheduleMonths = utils.DefaultScheduleMonths
	}
	return &borrowerService{
		borrowerRepo:   borrowerRepo,
		collectionRepo: collectionRepo,
		scheduleMonths: scheduleMonths,
	}
}

// generateSchedule materializes the monthly collection records for one loan:
// one pending record per due date, amount zero.
func (s *borrowerService) generateSchedule(ownerID, borrowerID uuid.UUID, loanID *uuid.UUID, start time.Time) []domain.InterestCollection {
	now := time.Now()
	dates := utils.MonthlyDueDates(start, s.scheduleMonths)
	schedule := make([]domain.InterestCollection, 0, len(dates))
	for _, due := range dates {
		schedule = append(schedule, domain.InterestCollection{
			ID:              uuid.New(),
			BorrowerID:      borrowerID,
			LoanID:          loanID,
			OwnerID:         ownerID,
			DueDate:         due,
			Status:          domain.CollectionStatusPending,
			AmountCollected: decimal.Zero,
			CreatedOn:       now,
			UpdatedOn:       now,
		})
	}
	return schedule
}

func validateLoanTerms(name *string, principal, interest decimal.Decimal, dateProvided time.Time) *domain.ValidationError {
	var fields []domain.FieldError
	if name != nil && strings.TrimSpace(*name) == "" {
		fields = append(fields, domain.FieldError{Field: "borrower_name", Message: "borrower name is required"})
	}
	if !principal.IsPositive() {
		fields = append(fields, domain.FieldError{Field: "principal_amount", Message: "principal amount must be greater than zero"})
	}
	if interest.IsNegative() {
		fields = append(fields, domain.FieldError{Field: "interest_amount", Message: "interest amount cannot be negative"})
	}
	if dateProvided.IsZero() {
		fields = append(fields, domain.FieldError{Field: "date_provided", Message: "valid date is required"})
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

func (s *borrowerService) CreateBorrower(ctx context.Context, ownerID uuid.UUID, in CreateBorrowerInput) (*domain.Borrower, error) {
	if ve := validateLoanTerms(&in.BorrowerName, in.PrincipalAmount, in.InterestAmount, in.DateProvided); ve != nil {
		return nil, ve
	}

	borrower := &domain.Borrower{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		BorrowerName: strings.TrimSpace(in.BorrowerName),
	}
	// The first loan is always list entry zero; no legacy shape is ever
	// created anymore.
	firstLoan := &domain.Loan{
		ID:                uuid.New(),
		BorrowerID:        borrower.ID,
		Position:          0,
		PrincipalAmount:   in.PrincipalAmount,
		InterestAmount:    in.InterestAmount,
		InterestIsPercent: in.InterestIsPercent,
		DateProvided:      in.DateProvided,
		Notes:             in.Notes,
		Status:            domain.LoanStatusActive,
	}

	schedule := s.generateSchedule(ownerID, borrower.ID, &firstLoan.ID, in.DateProvided)
	if err := s.borrowerRepo.CreateWithSchedule(ctx, borrower, firstLoan, schedule); err != nil {
		return nil, fmt.Errorf("create borrower: %w", err)
	}
	borrower.Loans = []domain.Loan{*firstLoan}

	logger.Info("Borrower created",
		"borrower_id", borrower.ID, "owner_id", ownerID, "schedule_months", len(schedule))
	return borrower, nil
}

func (s *borrowerService) AddLoan(ctx context.Context, ownerID, borrowerID uuid.UUID, in LoanInput) (*domain.Borrower, *domain.Loan, error) {
	if ve := validateLoanTerms(nil, in.PrincipalAmount, in.InterestAmount, in.DateProvided); ve != nil {
		return nil, nil, ve
	}

	borrower, err := s.borrowerRepo.GetByID(ctx, ownerID, borrowerID)
	if err != nil {
		return nil, nil, err
	}

	// A borrower still carrying the legacy shape is folded into the loan
	// list before the new loan is appended. The routine is idempotent, so
	// meeting an already-migrated borrower here is a no-op.
	if borrower.NeedsMigration() {
		migrated, err := s.borrowerRepo.MigrateLegacy(ctx, borrowerID)
		if err != nil {
			return nil, nil, fmt.Errorf("migrate legacy loan: %w", err)
		}
		if migrated != nil {
			logger.Info("Legacy loan migrated", "borrower_id", borrowerID, "loan_id", migrated.ID)
		}
	}

	loan := &domain.Loan{
		ID:                uuid.New(),
		BorrowerID:        borrowerID,
		PrincipalAmount:   in.PrincipalAmount,
		InterestAmount:    in.InterestAmount,
		InterestIsPercent: in.InterestIsPercent,
		DateProvided:      in.DateProvided,
		Notes:             in.Notes,
		Status:            domain.LoanStatusActive,
	}

	schedule := s.generateSchedule(ownerID, borrowerID, &loan.ID, in.DateProvided)
	if err := s.borrowerRepo.AddLoanWithSchedule(ctx, loan, schedule); err != nil {
		return nil, nil, fmt.Errorf("add loan: %w", err)
	}

	borrower, err = s.borrowerRepo.GetByID(ctx, ownerID, borrowerID)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("Loan added", "borrower_id", borrowerID, "loan_id", loan.ID, "total_loans", borrower.TotalLoans())
	return borrower, loan, nil
}

func (s *borrowerService) GetBorrower(ctx context.Context, ownerID, id uuid.UUID) (*domain.Borrower, error) {
	return s.borrowerRepo.GetByID(ctx, ownerID, id)
}

func (s *borrowerService) ListBorrowers(ctx context.Context, ownerID uuid.UUID) ([]domain.BorrowerSummary, error) {
	borrowers, err := s.borrowerRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.BorrowerSummary, 0, len(borrowers))
	for _, b := range borrowers {
		nextDue, err := s.collectionRepo.NextPendingDue(ctx, b.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, domain.BorrowerSummary{Borrower: b, NextDueDate: nextDue})
	}
	return summaries, nil
}

func (s *borrowerService) UpdateBorrower(ctx context.Context, ownerID, id uuid.UUID, in UpdateBorrowerInput) (*domain.Borrower, error) {
	borrower, err := s.borrowerRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if in.BorrowerName != nil {
		if strings.TrimSpace(*in.BorrowerName) == "" {
			return nil, domain.Invalid("borrower_name", "borrower name is required")
		}
		borrower.BorrowerName = strings.TrimSpace(*in.BorrowerName)
	}

	// Legacy terms are only mutable while they still exist; migrated
	// borrowers change their terms loan by loan, never through update.
	if borrower.Legacy != nil {
		if in.PrincipalAmount != nil {
			borrower.Legacy.PrincipalAmount = *in.PrincipalAmount
		}
		if in.InterestAmount != nil {
			borrower.Legacy.InterestAmount = *in.InterestAmount
		}
		if in.InterestIsPercent != nil {
			borrower.Legacy.InterestIsPercent = *in.InterestIsPercent
		}
		if in.DateProvided != nil {
			borrower.Legacy.DateProvided = *in.DateProvided
		}
		if in.Notes != nil {
			borrower.Legacy.Notes = *in.Notes
		}
	}

	if err := s.borrowerRepo.Update(ctx, borrower); err != nil {
		return nil, err
	}
	return borrower, nil
}

func (s *borrowerService) DeleteBorrower(ctx context.Context, ownerID, id uuid.UUID) error {
	// Soft delete only. Collections are retained in storage for audit but
	// disappear from every user-facing query once the borrower is flagged.
	return s.borrowerRepo.SoftDelete(ctx, ownerID, id)
}

func (s *borrowerService) CheckDuplicate(ctx context.Context, ownerID uuid.UUID, name string) (*domain.DuplicateCheck, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.Invalid("borrower_name", "borrower name is required")
	}

	existing, err := s.borrowerRepo.FindByName(ctx, ownerID, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return &domain.DuplicateCheck{IsDuplicate: false}, nil
	}

	created := existing.CreatedOn
	return &domain.DuplicateCheck{
		IsDuplicate:  true,
		BorrowerID:   existing.ID,
		BorrowerName: existing.BorrowerName,
		TotalLoans:   existing.TotalLoans(),
		CreatedOn:    &created,
	}, nil
}

func (s *borrowerService) ListBorrowerCollections(ctx context.Context, ownerID, borrowerID uuid.UUID) ([]domain.InterestCollection, error) {
	if _, err := s.borrowerRepo.GetByID(ctx, ownerID, borrowerID); err != nil {
		return nil, err
	}
	return s.collectionRepo.ListByBorrower(ctx, borrowerID)
}

func (s *borrowerService) MigrateLegacyBorrowers(ctx context.Context) (int32, error) {
	unmigrated, err := s.borrowerRepo.ListUnmigrated(ctx)
	if err != nil {
		return 0, fmt.Errorf("list unmigrated borrowers: %w", err)
	}

	var migrated int32
	for _, b := range unmigrated {
		loan, err := s.borrowerRepo.MigrateLegacy(ctx, b.ID)
		if err != nil {
			return migrated, fmt.Errorf("migrate borrower %s: %w", b.ID, err)
		}
		if loan != nil {
			migrated++
			logger.Info("Legacy borrower migrated",
				"borrower_id", b.ID, "borrower_name", b.BorrowerName, "loan_id", loan.ID)
		}
	}
	return migrated, nil
}
