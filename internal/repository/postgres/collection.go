package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"lendledger-backend/internal/domain"
	"lendledger-backend/internal/repository"
)

type collectionRepository struct {
	db *sql.DB
}

func NewCollectionRepository(db *sql.DB) repository.CollectionRepository {
	return &collectionRepository{db: db}
}

const collectionColumns = `c.id, c.borrower_id, c.loan_id, c.owner_id, c.due_date,
	c.collected_date, c.status, c.amount_collected, c.notes, c.created_on, c.updated_on`

func scanCollection(row interface{ Scan(...any) error }, extra ...any) (*domain.InterestCollection, error) {
	c := &domain.InterestCollection{}
	var loanID uuid.NullUUID
	var collected sql.NullTime
	dest := []any{&c.ID, &c.BorrowerID, &loanID, &c.OwnerID, &c.DueDate,
		&collected, &c.Status, &c.AmountCollected, &c.Notes, &c.CreatedOn, &c.UpdatedOn}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if loanID.Valid {
		c.LoanID = &loanID.UUID
	}
	if collected.Valid {
		c.CollectedDate = &collected.Time
	}
	return c, nil
}

func (r *collectionRepository) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.InterestCollection, error) {
	query := `SELECT ` + collectionColumns + ` FROM interest_collections c
	          JOIN borrowers b ON c.borrower_id = b.id
	          WHERE c.id = $1 AND c.owner_id = $2 AND b.deleted = FALSE`
	c, err := scanCollection(r.db.QueryRowContext(ctx, query, id, ownerID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return c, err
}

func (r *collectionRepository) Update(ctx context.Context, c *domain.InterestCollection) error {
	c.UpdatedOn = time.Now()
	var loanID uuid.NullUUID
	if c.LoanID != nil {
		loanID = uuid.NullUUID{UUID: *c.LoanID, Valid: true}
	}
	var collected sql.NullTime
	if c.CollectedDate != nil {
		collected = sql.NullTime{Time: *c.CollectedDate, Valid: true}
	}
	query := `UPDATE interest_collections SET
		loan_id = $1, collected_date = $2, status = $3, amount_collected = $4, notes = $5, updated_on = $6
		WHERE id = $7 AND owner_id = $8`
	res, err := r.db.ExecContext(ctx, query, loanID, collected, c.Status, c.AmountCollected, c.Notes, c.UpdatedOn, c.ID, c.OwnerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *collectionRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, f repository.CollectionFilter) ([]domain.CollectionWithBorrower, error) {
	query := `SELECT ` + collectionColumns + `, b.borrower_name FROM interest_collections c
	          JOIN borrowers b ON c.borrower_id = b.id
	          WHERE c.owner_id = $1 AND b.deleted = FALSE`
	args := []any{ownerID}

	if f.Status != nil {
		args = append(args, *f.Status)
		query += fmt.Sprintf(` AND c.status = $%d`, len(args))
	}
	if f.DueOn != nil {
		day := time.Date(f.DueOn.Year(), f.DueOn.Month(), f.DueOn.Day(), 0, 0, 0, 0, f.DueOn.Location())
		args = append(args, day, day.AddDate(0, 0, 1))
		query += fmt.Sprintf(` AND c.due_date >= $%d AND c.due_date < $%d`, len(args)-1, len(args))
	}
	if f.BorrowerID != nil {
		args = append(args, *f.BorrowerID)
		query += fmt.Sprintf(` AND c.borrower_id = $%d`, len(args))
	}
	query += ` ORDER BY c.due_date ASC`

	return r.queryEnriched(ctx, query, args...)
}

func (r *collectionRepository) ListByBorrower(ctx context.Context, borrowerID uuid.UUID) ([]domain.InterestCollection, error) {
	query := `SELECT ` + collectionColumns + ` FROM interest_collections c
	          WHERE c.borrower_id = $1 ORDER BY c.due_date ASC`
	rows, err := r.db.QueryContext(ctx, query, borrowerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.InterestCollection
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *collectionRepository) NextPendingDue(ctx context.Context, borrowerID uuid.UUID) (*time.Time, error) {
	query := `SELECT due_date FROM interest_collections
	          WHERE borrower_id = $1 AND status = 'pending'
	          ORDER BY due_date ASC LIMIT 1`
	var due time.Time
	err := r.db.QueryRowContext(ctx, query, borrowerID).Scan(&due)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &due, nil
}

func (r *collectionRepository) CountPendingDueBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (int32, error) {
	query := `SELECT count(*) FROM interest_collections c
	          JOIN borrowers b ON c.borrower_id = b.id
	          WHERE c.owner_id = $1 AND b.deleted = FALSE AND c.status = 'pending'
	            AND c.due_date >= $2 AND c.due_date < $3`
	var count int32
	err := r.db.QueryRowContext(ctx, query, ownerID, from, to).Scan(&count)
	return count, err
}

func (r *collectionRepository) ListPendingDueBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time, limit int32) ([]domain.CollectionWithBorrower, error) {
	query := `SELECT ` + collectionColumns + `, b.borrower_name FROM interest_collections c
	          JOIN borrowers b ON c.borrower_id = b.id
	          WHERE c.owner_id = $1 AND b.deleted = FALSE AND c.status = 'pending'
	            AND c.due_date >= $2 AND c.due_date < $3
	          ORDER BY c.due_date ASC LIMIT $4`
	return r.queryEnriched(ctx, query, ownerID, from, to, limit)
}

func (r *collectionRepository) ListOverdue(ctx context.Context, ownerID uuid.UUID, before time.Time) ([]domain.CollectionWithBorrower, error) {
	query := `SELECT ` + collectionColumns + `, b.borrower_name FROM interest_collections c
	          JOIN borrowers b ON c.borrower_id = b.id
	          WHERE c.owner_id = $1 AND b.deleted = FALSE AND c.status = 'pending'
	            AND c.due_date < $2
	          ORDER BY c.due_date ASC`
	return r.queryEnriched(ctx, query, ownerID, before)
}

func (r *collectionRepository) SumCollectedSince(ctx context.Context, ownerID uuid.UUID, since time.Time) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(c.amount_collected), 0) FROM interest_collections c
	          JOIN borrowers b ON c.borrower_id = b.id
	          WHERE c.owner_id = $1 AND b.deleted = FALSE AND c.status = 'received'
	            AND c.collected_date >= $2`
	var total decimal.Decimal
	err := r.db.QueryRowContext(ctx, query, ownerID, since).Scan(&total)
	return total, err
}

const reminderQuery = `SELECT ` + collectionColumns + `, b.borrower_name, u.name, u.email,
	       COALESCE(l.principal_amount, b.legacy_principal_amount, 0),
	       COALESCE(l.interest_amount, b.legacy_interest_amount, 0),
	       COALESCE(l.interest_is_percent, b.legacy_interest_is_percent, FALSE)
	FROM interest_collections c
	JOIN borrowers b ON c.borrower_id = b.id
	JOIN users u ON c.owner_id = u.id
	LEFT JOIN loans l ON c.loan_id = l.id
	WHERE b.deleted = FALSE AND u.is_active = TRUE AND c.status = 'pending'`

func (r *collectionRepository) ListRemindersDueBetween(ctx context.Context, from, to time.Time) ([]domain.ReminderItem, error) {
	query := reminderQuery + ` AND c.due_date >= $1 AND c.due_date < $2 ORDER BY u.id, c.due_date ASC`
	return r.queryReminders(ctx, query, from, to)
}

func (r *collectionRepository) ListRemindersOverdue(ctx context.Context, before time.Time) ([]domain.ReminderItem, error) {
	query := reminderQuery + ` AND c.due_date < $1 ORDER BY u.id, c.due_date ASC`
	return r.queryReminders(ctx, query, before)
}

func (r *collectionRepository) SumCollectedAll(ctx context.Context) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount_collected), 0) FROM interest_collections WHERE status = 'received'`
	var total decimal.Decimal
	err := r.db.QueryRowContext(ctx, query).Scan(&total)
	return total, err
}

func (r *collectionRepository) CountByStatus(ctx context.Context) (total, pending, received int32, err error) {
	query := `SELECT count(*),
	                 count(*) FILTER (WHERE status = 'pending'),
	                 count(*) FILTER (WHERE status = 'received')
	          FROM interest_collections`
	err = r.db.QueryRowContext(ctx, query).Scan(&total, &pending, &received)
	return total, pending, received, err
}

func (r *collectionRepository) RecentByOwner(ctx context.Context, ownerID uuid.UUID, limit int32) ([]domain.CollectionWithBorrower, error) {
	query := `SELECT ` + collectionColumns + `, b.borrower_name FROM interest_collections c
	          JOIN borrowers b ON c.borrower_id = b.id
	          WHERE c.owner_id = $1
	          ORDER BY c.updated_on DESC LIMIT $2`
	return r.queryEnriched(ctx, query, ownerID, limit)
}

func (r *collectionRepository) queryEnriched(ctx context.Context, query string, args ...any) ([]domain.CollectionWithBorrower, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.CollectionWithBorrower
	for rows.Next() {
		var name string
		c, err := scanCollection(rows, &name)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.CollectionWithBorrower{InterestCollection: *c, BorrowerName: name})
	}
	return out, rows.Err()
}

func (r *collectionRepository) queryReminders(ctx context.Context, query string, args ...any) ([]domain.ReminderItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ReminderItem
	for rows.Next() {
		var (
			item      domain.ReminderItem
			principal decimal.Decimal
			interest  decimal.Decimal
			isPercent bool
		)
		c, err := scanCollection(rows, &item.BorrowerName, &item.OwnerName, &item.OwnerEmail, &principal, &interest, &isPercent)
		if err != nil {
			return nil, err
		}
		item.Collection = *c
		if isPercent {
			item.ExpectedAmount = principal.Mul(interest).Div(decimal.NewFromInt(100))
		} else {
			item.ExpectedAmount = interest
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
