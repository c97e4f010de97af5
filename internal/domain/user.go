package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

type User struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         UserRole   `json:"role"`
	IsActive     bool       `json:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	LoginCount   int32      `json:"login_count"`
	CreatedOn    time.Time  `json:"created_on"`
}

// UserStats carries per-user activity counters for the admin views.
type UserStats struct {
	BorrowerCount      int32 `json:"borrower_count"`
	CollectionCount    int32 `json:"collection_count"`
	PendingCollections int32 `json:"pending_collections"`
}

type UserWithStats struct {
	User
	Stats    UserStats `json:"stats"`
	IsOnline bool      `json:"is_online"`
}

// AdminStats is the cross-user totals view for the admin dashboard.
type AdminStats struct {
	Users struct {
		Total        int32 `json:"total"`
		Active       int32 `json:"active"`
		Admins       int32 `json:"admins"`
		RecentLogins int32 `json:"recent_logins"`
	} `json:"users"`
	Borrowers struct {
		Total int32 `json:"total"`
	} `json:"borrowers"`
	Collections struct {
		Total                int32           `json:"total"`
		Pending              int32           `json:"pending"`
		Received             int32           `json:"received"`
		TotalAmountCollected decimal.Decimal `json:"total_amount_collected"`
	} `json:"collections"`
}
