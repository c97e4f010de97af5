package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type LoanStatus string

const (
	LoanStatusActive     LoanStatus = "active"
	LoanStatusPaidOff    LoanStatus = "paid_off"
	LoanStatusWrittenOff LoanStatus = "written_off"
)

// Loan is one instance of principal extended to a borrower. Identity is
// assigned at creation and stays stable for the loan's lifetime; collections
// reference it by id. Status is advisory and never gates collection logic.
type Loan struct {
	ID                uuid.UUID       `json:"id"`
	BorrowerID        uuid.UUID       `json:"borrower_id"`
	Position          int32           `json:"position"`
	PrincipalAmount   decimal.Decimal `json:"principal_amount"`
	InterestAmount    decimal.Decimal `json:"interest_amount"`
	InterestIsPercent bool            `json:"interest_is_percent"`
	DateProvided      time.Time       `json:"date_provided"`
	Notes             string          `json:"notes"`
	Status            LoanStatus      `json:"status"`
	CreatedOn         time.Time       `json:"created_on"`
}

// LegacyLoan holds the original single-loan-per-borrower fields. It survives
// only on historical records that the migration routine has not yet folded
// into the loan list.
type LegacyLoan struct {
	PrincipalAmount   decimal.Decimal `json:"principal_amount"`
	InterestAmount    decimal.Decimal `json:"interest_amount"`
	InterestIsPercent bool            `json:"interest_is_percent"`
	DateProvided      time.Time       `json:"date_provided"`
	Notes             string          `json:"notes"`
}

type Borrower struct {
	ID           uuid.UUID   `json:"id"`
	OwnerID      uuid.UUID   `json:"owner_id"`
	BorrowerName string      `json:"borrower_name"`
	Loans        []Loan      `json:"loans"`
	Legacy       *LegacyLoan `json:"legacy,omitempty"`
	Deleted      bool        `json:"deleted"`
	CreatedOn    time.Time   `json:"created_on"`
	UpdatedOn    time.Time   `json:"updated_on"`
}

// TotalLoans counts the legacy loan (if still unmigrated) plus the loan list.
func (b *Borrower) TotalLoans() int32 {
	n := int32(len(b.Loans))
	if b.Legacy != nil {
		n++
	}
	return n
}

// NeedsMigration reports whether the borrower still has the legacy shape:
// populated legacy fields and an empty loan list.
func (b *Borrower) NeedsMigration() bool {
	return b.Legacy != nil && len(b.Loans) == 0
}

// BorrowerSummary is the list-view projection: the borrower plus its earliest
// pending due date across all loans, null when nothing is pending.
type BorrowerSummary struct {
	Borrower
	NextDueDate *time.Time `json:"next_due_date"`
}

// DuplicateCheck is the advisory result of the case-insensitive name lookup.
// The caller decides between merging into the existing borrower and creating
// a separate one; uniqueness is never enforced.
type DuplicateCheck struct {
	IsDuplicate  bool       `json:"is_duplicate"`
	BorrowerID   uuid.UUID  `json:"borrower_id,omitempty"`
	BorrowerName string     `json:"borrower_name,omitempty"`
	TotalLoans   int32      `json:"total_loans,omitempty"`
	CreatedOn    *time.Time `json:"created_on,omitempty"`
}
