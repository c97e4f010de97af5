package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"lendledger-backend/internal/domain"
	"lendledger-backend/internal/logger"
	"lendledger-backend/internal/repository"
)

var oneHundred = decimal.NewFromInt(100)

type collectionService struct {
	collectionRepo repository.CollectionRepository
	borrowerRepo   repository.BorrowerRepository
	now            func() time.Time
}

func NewCollectionService(
	collectionRepo repository.CollectionRepository,
	borrowerRepo repository.BorrowerRepository,
) CollectionService {
	return &collectionService{
		collectionRepo: collectionRepo,
		borrowerRepo:   borrowerRepo,
		now:            time.Now,
	}
}

func (s *collectionService) ListCollections(ctx context.Context, ownerID uuid.UUID, in ListCollectionsInput) ([]domain.CollectionWithBorrower, error) {
	return s.collectionRepo.ListByOwner(ctx, ownerID, repository.CollectionFilter{
		Status:     in.Status,
		DueOn:      in.DueOn,
		BorrowerID: in.BorrowerID,
	})
}

func (s *collectionService) MarkCollected(ctx context.Context, ownerID, id uuid.UUID, in MarkCollectedInput) (*domain.InterestCollection, error) {
	if in.AmountCollected != nil && in.AmountCollected.IsNegative() {
		return nil, domain.Invalid("amount_collected", "amount collected cannot be negative")
	}

	c, err := s.collectionRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	collectedDate := s.now()
	if in.CollectedDate != nil {
		collectedDate = *in.CollectedDate
	}
	c.CollectedDate = &collectedDate
	c.Status = domain.CollectionStatusReceived

	if in.AmountCollected != nil {
		// An explicit amount always wins; it is not checked against the
		// computed default.
		c.AmountCollected = *in.AmountCollected
	} else {
		amount, err := s.defaultAmount(ctx, c)
		if err != nil {
			return nil, err
		}
		c.AmountCollected = amount
	}

	if in.Notes != nil {
		c.Notes = *in.Notes
	}

	if err := s.collectionRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	logger.Info("Collection marked received",
		"collection_id", c.ID, "owner_id", ownerID, "amount", c.AmountCollected)
	return c, nil
}

func (s *collectionService) MarkPending(ctx context.Context, ownerID, id uuid.UUID) (*domain.InterestCollection, error) {
	c, err := s.collectionRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	// Full revert of the receipt; notes from the received-state write stay.
	c.Status = domain.CollectionStatusPending
	c.CollectedDate = nil
	c.AmountCollected = decimal.Zero

	if err := s.collectionRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	logger.Info("Collection marked pending", "collection_id", c.ID, "owner_id", ownerID)
	return c, nil
}

// defaultAmount computes the interest due from the owning loan's terms:
// percent loans pay principal * rate / 100, flat loans pay the interest
// amount. Collections of un-migrated borrowers fall back to the legacy terms.
func (s *collectionService) defaultAmount(ctx context.Context, c *domain.InterestCollection) (decimal.Decimal, error) {
	borrower, err := s.borrowerRepo.GetByID(ctx, c.OwnerID, c.BorrowerID)
	if err != nil {
		return decimal.Zero, err
	}

	if c.LoanID != nil {
		for _, loan := range borrower.Loans {
			if loan.ID == *c.LoanID {
				return interestFor(loan.PrincipalAmount, loan.InterestAmount, loan.InterestIsPercent), nil
			}
		}
	}
	if borrower.Legacy != nil {
		return interestFor(borrower.Legacy.PrincipalAmount, borrower.Legacy.InterestAmount, borrower.Legacy.InterestIsPercent), nil
	}
	return decimal.Zero, nil
}

func interestFor(principal, interest decimal.Decimal, isPercent bool) decimal.Decimal {
	if isPercent {
		return principal.Mul(interest).Div(oneHundred)
	}
	return interest
}
