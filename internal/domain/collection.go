package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CollectionStatus string

const (
	CollectionStatusPending  CollectionStatus = "pending"
	CollectionStatusReceived CollectionStatus = "received"

	// Reserved values. No operation transitions a collection into them.
	CollectionStatusMissed   CollectionStatus = "missed"
	CollectionStatusProvided CollectionStatus = "provided"
)

// InterestCollection is one scheduled monthly interest payment obligation.
// LoanID is null for un-migrated historical records; OwnerID is denormalized
// from the borrower for query efficiency.
type InterestCollection struct {
	ID              uuid.UUID        `json:"id"`
	BorrowerID      uuid.UUID        `json:"borrower_id"`
	LoanID          *uuid.UUID       `json:"loan_id"`
	OwnerID         uuid.UUID        `json:"owner_id"`
	DueDate         time.Time        `json:"due_date"`
	CollectedDate   *time.Time       `json:"collected_date"`
	Status          CollectionStatus `json:"status"`
	AmountCollected decimal.Decimal  `json:"amount_collected"`
	Notes           string           `json:"notes"`
	CreatedOn       time.Time        `json:"created_on"`
	UpdatedOn       time.Time        `json:"updated_on"`
}

// CollectionWithBorrower enriches a collection with its borrower's display
// fields for list and dashboard views.
type CollectionWithBorrower struct {
	InterestCollection
	BorrowerName string `json:"borrower_name"`
}

// ReminderItem is one row of the reminder job's bucket queries: a pending
// collection resolved to its owning borrower and user.
type ReminderItem struct {
	Collection   InterestCollection `json:"collection"`
	BorrowerName string             `json:"borrower_name"`
	OwnerName    string             `json:"owner_name"`
	OwnerEmail   string             `json:"owner_email"`
	// ExpectedAmount is the interest due per the owning loan's terms.
	ExpectedAmount decimal.Decimal `json:"expected_amount"`
}

// DashboardSummary is the per-user reporting view.
type DashboardSummary struct {
	TotalBorrowers         int32                    `json:"total_borrowers"`
	TotalLent              decimal.Decimal          `json:"total_lent"`
	TotalInterestThisMonth decimal.Decimal          `json:"total_interest_this_month"`
	DueToday               int32                    `json:"due_today"`
	UpcomingCount          int32                    `json:"upcoming_count"`
	OverdueCount           int32                    `json:"overdue_count"`
	Upcoming               []CollectionWithBorrower `json:"upcoming"`
	Overdue                []CollectionWithBorrower `json:"overdue"`
}

// UserActivity is the admin drill-down for a single user.
type UserActivity struct {
	User              User                     `json:"user"`
	RecentBorrowers   []Borrower               `json:"recent_borrowers"`
	RecentCollections []CollectionWithBorrower `json:"recent_collections"`
}
