package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lendledger-backend/internal/domain"
)

func TestCollectionService_MarkCollected(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	borrowerID := uuid.New()
	loanID := uuid.New()
	collectionID := uuid.New()

	fixedNow := time.Date(2024, 5, 20, 10, 30, 0, 0, time.UTC)

	pendingCollection := func() *domain.InterestCollection {
		return &domain.InterestCollection{
			ID:              collectionID,
			BorrowerID:      borrowerID,
			LoanID:          &loanID,
			OwnerID:         ownerID,
			DueDate:         time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC),
			Status:          domain.CollectionStatusPending,
			AmountCollected: decimal.Zero,
		}
	}

	borrowerWithLoan := func(principal, interest int64, isPercent bool) *domain.Borrower {
		return &domain.Borrower{
			ID:      borrowerID,
			OwnerID: ownerID,
			Loans: []domain.Loan{{
				ID:                loanID,
				BorrowerID:        borrowerID,
				PrincipalAmount:   decimal.NewFromInt(principal),
				InterestAmount:    decimal.NewFromInt(interest),
				InterestIsPercent: isPercent,
			}},
		}
	}

	newService := func(collectionRepo *MockCollectionRepo, borrowerRepo *MockBorrowerRepo) *collectionService {
		return &collectionService{
			collectionRepo: collectionRepo,
			borrowerRepo:   borrowerRepo,
			now:            func() time.Time { return fixedNow },
		}
	}

	t.Run("Percent loan defaults to principal times rate", func(t *testing.T) {
		collectionRepo := new(MockCollectionRepo)
		borrowerRepo := new(MockBorrowerRepo)
		svc := newService(collectionRepo, borrowerRepo)

		collectionRepo.On("GetByID", ctx, ownerID, collectionID).Return(pendingCollection(), nil)
		borrowerRepo.On("GetByID", ctx, ownerID, borrowerID).Return(borrowerWithLoan(10000, 2, true), nil)
		collectionRepo.On("Update", ctx, mock.Anything).Return(nil)

		c, err := svc.MarkCollected(ctx, ownerID, collectionID, MarkCollectedInput{})
		require.NoError(t, err)
		assert.Equal(t, domain.CollectionStatusReceived, c.Status)
		assert.True(t, c.AmountCollected.Equal(decimal.NewFromInt(200)), "got %s", c.AmountCollected)
		require.NotNil(t, c.CollectedDate)
		assert.Equal(t, fixedNow, *c.CollectedDate)
	})

	t.Run("Flat loan defaults to the interest amount", func(t *testing.T) {
		collectionRepo := new(MockCollectionRepo)
		borrowerRepo := new(MockBorrowerRepo)
		svc := newService(collectionRepo, borrowerRepo)

		collectionRepo.On("GetByID", ctx, ownerID, collectionID).Return(pendingCollection(), nil)
		borrowerRepo.On("GetByID", ctx, ownerID, borrowerID).Return(borrowerWithLoan(10000, 500, false), nil)
		collectionRepo.On("Update", ctx, mock.Anything).Return(nil)

		c, err := svc.MarkCollected(ctx, ownerID, collectionID, MarkCollectedInput{})
		require.NoError(t, err)
		assert.True(t, c.AmountCollected.Equal(decimal.NewFromInt(500)), "got %s", c.AmountCollected)
	})

	t.Run("Explicit amount and date win over defaults", func(t *testing.T) {
		collectionRepo := new(MockCollectionRepo)
		borrowerRepo := new(MockBorrowerRepo)
		svc := newService(collectionRepo, borrowerRepo)

		collectionRepo.On("GetByID", ctx, ownerID, collectionID).Return(pendingCollection(), nil)
		collectionRepo.On("Update", ctx, mock.Anything).Return(nil)

		amount := decimal.NewFromInt(150)
		date := time.Date(2024, 5, 18, 0, 0, 0, 0, time.UTC)
		notes := "partial payment"
		c, err := svc.MarkCollected(ctx, ownerID, collectionID, MarkCollectedInput{
			CollectedDate:   &date,
			AmountCollected: &amount,
			Notes:           &notes,
		})
		require.NoError(t, err)
		assert.True(t, c.AmountCollected.Equal(amount))
		assert.Equal(t, date, *c.CollectedDate)
		assert.Equal(t, "partial payment", c.Notes)
		borrowerRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Legacy borrower falls back to legacy terms", func(t *testing.T) {
		collectionRepo := new(MockCollectionRepo)
		borrowerRepo := new(MockBorrowerRepo)
		svc := newService(collectionRepo, borrowerRepo)

		c := pendingCollection()
		c.LoanID = nil
		collectionRepo.On("GetByID", ctx, ownerID, collectionID).Return(c, nil)
		borrowerRepo.On("GetByID", ctx, ownerID, borrowerID).Return(&domain.Borrower{
			ID:      borrowerID,
			OwnerID: ownerID,
			Legacy: &domain.LegacyLoan{
				PrincipalAmount:   decimal.NewFromInt(8000),
				InterestAmount:    decimal.NewFromInt(3),
				InterestIsPercent: true,
			},
		}, nil)
		collectionRepo.On("Update", ctx, mock.Anything).Return(nil)

		got, err := svc.MarkCollected(ctx, ownerID, collectionID, MarkCollectedInput{})
		require.NoError(t, err)
		assert.True(t, got.AmountCollected.Equal(decimal.NewFromInt(240)), "got %s", got.AmountCollected)
	})

	t.Run("Negative amount rejected before lookup", func(t *testing.T) {
		collectionRepo := new(MockCollectionRepo)
		borrowerRepo := new(MockBorrowerRepo)
		svc := newService(collectionRepo, borrowerRepo)

		bad := decimal.NewFromInt(-10)
		_, err := svc.MarkCollected(ctx, ownerID, collectionID, MarkCollectedInput{AmountCollected: &bad})
		require.Error(t, err)
		_, ok := domain.AsValidation(err)
		assert.True(t, ok)
		collectionRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Foreign collection is not found", func(t *testing.T) {
		collectionRepo := new(MockCollectionRepo)
		borrowerRepo := new(MockBorrowerRepo)
		svc := newService(collectionRepo, borrowerRepo)

		collectionRepo.On("GetByID", ctx, ownerID, collectionID).Return(nil, domain.ErrNotFound)

		_, err := svc.MarkCollected(ctx, ownerID, collectionID, MarkCollectedInput{})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestCollectionService_MarkPending(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	collectionID := uuid.New()

	collectionRepo := new(MockCollectionRepo)
	borrowerRepo := new(MockBorrowerRepo)
	svc := &collectionService{
		collectionRepo: collectionRepo,
		borrowerRepo:   borrowerRepo,
		now:            time.Now,
	}

	collected := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	received := &domain.InterestCollection{
		ID:              collectionID,
		OwnerID:         ownerID,
		Status:          domain.CollectionStatusReceived,
		CollectedDate:   &collected,
		AmountCollected: decimal.NewFromInt(200),
		Notes:           "paid in cash",
	}
	collectionRepo.On("GetByID", ctx, ownerID, collectionID).Return(received, nil)
	collectionRepo.On("Update", ctx, mock.Anything).Return(nil)

	c, err := svc.MarkPending(ctx, ownerID, collectionID)
	require.NoError(t, err)
	assert.Equal(t, domain.CollectionStatusPending, c.Status)
	assert.Nil(t, c.CollectedDate)
	assert.True(t, c.AmountCollected.IsZero())
	assert.Equal(t, "paid in cash", c.Notes, "notes survive the revert")
}
