package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"lendledger-backend/internal/domain"
	"lendledger-backend/internal/repository"
)

type borrowerRepository struct {
	db *sql.DB
}

func NewBorrowerRepository(db *sql.DB) repository.BorrowerRepository {
	return &borrowerRepository{db: db}
}

const borrowerColumns = `id, owner_id, borrower_name,
	legacy_principal_amount, legacy_interest_amount, legacy_interest_is_percent,
	legacy_date_provided, legacy_notes, deleted, created_on, updated_on`

const loanColumns = `id, borrower_id, position, principal_amount, interest_amount,
	interest_is_percent, date_provided, notes, status, created_on`

func scanBorrower(row interface{ Scan(...any) error }) (*domain.Borrower, error) {
	b := &domain.Borrower{}
	var (
		legacyPrincipal decimal.NullDecimal
		legacyInterest  decimal.NullDecimal
		legacyPercent   bool
		legacyDate      sql.NullTime
		legacyNotes     string
	)
	err := row.Scan(&b.ID, &b.OwnerID, &b.BorrowerName,
		&legacyPrincipal, &legacyInterest, &legacyPercent,
		&legacyDate, &legacyNotes, &b.Deleted, &b.CreatedOn, &b.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if legacyPrincipal.Valid && legacyDate.Valid {
		b.Legacy = &domain.LegacyLoan{
			PrincipalAmount:   legacyPrincipal.Decimal,
			InterestAmount:    legacyInterest.Decimal,
			InterestIsPercent: legacyPercent,
			DateProvided:      legacyDate.Time,
			Notes:             legacyNotes,
		}
	}
	return b, nil
}

func scanLoan(row interface{ Scan(...any) error }) (*domain.Loan, error) {
	l := &domain.Loan{}
	err := row.Scan(&l.ID, &l.BorrowerID, &l.Position, &l.PrincipalAmount, &l.InterestAmount,
		&l.InterestIsPercent, &l.DateProvided, &l.Notes, &l.Status, &l.CreatedOn)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// insertCollections bulk-inserts a generated schedule within tx.
func insertCollections(ctx context.Context, tx *sql.Tx, schedule []domain.InterestCollection) error {
	query := `INSERT INTO interest_collections
		(id, borrower_id, loan_id, owner_id, due_date, collected_date, status, amount_collected, notes, created_on, updated_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := range schedule {
		c := &schedule[i]
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		var loanID any
		if c.LoanID != nil {
			loanID = *c.LoanID
		}
		_, err := stmt.ExecContext(ctx, c.ID, c.BorrowerID, loanID, c.OwnerID,
			c.DueDate, c.CollectedDate, c.Status, c.AmountCollected, c.Notes, c.CreatedOn, c.UpdatedOn)
		if err != nil {
			return fmt.Errorf("insert collection %d of %d: %w", i+1, len(schedule), err)
		}
	}
	return nil
}

func insertLoan(ctx context.Context, tx *sql.Tx, l *domain.Loan) error {
	query := `INSERT INTO loans
		(id, borrower_id, position, principal_amount, interest_amount, interest_is_percent, date_provided, notes, status, created_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := tx.ExecContext(ctx, query, l.ID, l.BorrowerID, l.Position,
		l.PrincipalAmount, l.InterestAmount, l.InterestIsPercent, l.DateProvided, l.Notes, l.Status, l.CreatedOn)
	return err
}

func (r *borrowerRepository) CreateWithSchedule(ctx context.Context, b *domain.Borrower, firstLoan *domain.Loan, schedule []domain.InterestCollection) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	b.CreatedOn = now
	b.UpdatedOn = now
	query := `INSERT INTO borrowers (id, owner_id, borrower_name, deleted, created_on, updated_on)
	          VALUES ($1, $2, $3, FALSE, $4, $5)`
	if _, err := tx.ExecContext(ctx, query, b.ID, b.OwnerID, b.BorrowerName, b.CreatedOn, b.UpdatedOn); err != nil {
		return fmt.Errorf("insert borrower: %w", err)
	}

	firstLoan.CreatedOn = now
	if err := insertLoan(ctx, tx, firstLoan); err != nil {
		return fmt.Errorf("insert first loan: %w", err)
	}

	if err := insertCollections(ctx, tx, schedule); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *borrowerRepository) AddLoanWithSchedule(ctx context.Context, loan *domain.Loan, schedule []domain.InterestCollection) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var position int32
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position) + 1, 0) FROM loans WHERE borrower_id = $1`, loan.BorrowerID).
		Scan(&position)
	if err != nil {
		return err
	}
	loan.Position = position
	loan.CreatedOn = time.Now()

	if err := insertLoan(ctx, tx, loan); err != nil {
		return fmt.Errorf("insert loan: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE borrowers SET updated_on = $1 WHERE id = $2`, time.Now(), loan.BorrowerID); err != nil {
		return err
	}

	if err := insertCollections(ctx, tx, schedule); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *borrowerRepository) MigrateLegacy(ctx context.Context, borrowerID uuid.UUID) (*domain.Loan, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `SELECT ` + borrowerColumns + ` FROM borrowers WHERE id = $1 FOR UPDATE`
	b, err := scanBorrower(tx.QueryRowContext(ctx, query, borrowerID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var loanCount int32
	if err := tx.QueryRowContext(ctx,
		`SELECT count(*) FROM loans WHERE borrower_id = $1`, borrowerID).Scan(&loanCount); err != nil {
		return nil, err
	}

	// Only the legacy shape migrates: populated legacy fields, empty loan list.
	if b.Legacy == nil || loanCount > 0 {
		return nil, tx.Commit()
	}

	now := time.Now()
	loan := &domain.Loan{
		ID:                uuid.New(),
		BorrowerID:        borrowerID,
		Position:          0,
		PrincipalAmount:   b.Legacy.PrincipalAmount,
		InterestAmount:    b.Legacy.InterestAmount,
		InterestIsPercent: b.Legacy.InterestIsPercent,
		DateProvided:      b.Legacy.DateProvided,
		Notes:             b.Legacy.Notes,
		Status:            domain.LoanStatusActive,
		CreatedOn:         now,
	}
	if err := insertLoan(ctx, tx, loan); err != nil {
		return nil, fmt.Errorf("insert migrated loan: %w", err)
	}

	clear := `UPDATE borrowers SET
		legacy_principal_amount = NULL, legacy_interest_amount = NULL,
		legacy_interest_is_percent = FALSE, legacy_date_provided = NULL,
		legacy_notes = '', updated_on = $1
		WHERE id = $2`
	if _, err := tx.ExecContext(ctx, clear, now, borrowerID); err != nil {
		return nil, fmt.Errorf("clear legacy fields: %w", err)
	}

	// Historical collections created without a loan reference now belong to
	// the migrated loan.
	backfill := `UPDATE interest_collections SET loan_id = $1, updated_on = $2
	             WHERE borrower_id = $3 AND loan_id IS NULL`
	if _, err := tx.ExecContext(ctx, backfill, loan.ID, now, borrowerID); err != nil {
		return nil, fmt.Errorf("backfill collections: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return loan, nil
}

func (r *borrowerRepository) ListUnmigrated(ctx context.Context) ([]domain.Borrower, error) {
	query := `SELECT ` + borrowerColumns + ` FROM borrowers b
	          WHERE legacy_principal_amount IS NOT NULL
	            AND legacy_date_provided IS NOT NULL
	            AND NOT EXISTS (SELECT 1 FROM loans l WHERE l.borrower_id = b.id)
	          ORDER BY created_on`
	return r.queryBorrowers(ctx, query)
}

func (r *borrowerRepository) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Borrower, error) {
	query := `SELECT ` + borrowerColumns + ` FROM borrowers
	          WHERE id = $1 AND owner_id = $2 AND deleted = FALSE`
	b, err := scanBorrower(r.db.QueryRowContext(ctx, query, id, ownerID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadLoans(ctx, []*domain.Borrower{b}); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *borrowerRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Borrower, error) {
	query := `SELECT ` + borrowerColumns + ` FROM borrowers
	          WHERE owner_id = $1 AND deleted = FALSE ORDER BY created_on DESC`
	borrowers, err := r.queryBorrowers(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	refs := make([]*domain.Borrower, len(borrowers))
	for i := range borrowers {
		refs[i] = &borrowers[i]
	}
	if err := r.loadLoans(ctx, refs); err != nil {
		return nil, err
	}
	return borrowers, nil
}

func (r *borrowerRepository) FindByName(ctx context.Context, ownerID uuid.UUID, name string) (*domain.Borrower, error) {
	query := `SELECT ` + borrowerColumns + ` FROM borrowers
	          WHERE owner_id = $1 AND deleted = FALSE AND LOWER(borrower_name) = LOWER($2)
	          LIMIT 1`
	b, err := scanBorrower(r.db.QueryRowContext(ctx, query, ownerID, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadLoans(ctx, []*domain.Borrower{b}); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *borrowerRepository) Update(ctx context.Context, b *domain.Borrower) error {
	b.UpdatedOn = time.Now()
	var (
		legacyPrincipal, legacyInterest decimal.NullDecimal
		legacyDate                      sql.NullTime
		legacyPercent                   bool
		legacyNotes                     string
	)
	if b.Legacy != nil {
		legacyPrincipal = decimal.NullDecimal{Decimal: b.Legacy.PrincipalAmount, Valid: true}
		legacyInterest = decimal.NullDecimal{Decimal: b.Legacy.InterestAmount, Valid: true}
		legacyDate = sql.NullTime{Time: b.Legacy.DateProvided, Valid: true}
		legacyPercent = b.Legacy.InterestIsPercent
		legacyNotes = b.Legacy.Notes
	}
	query := `UPDATE borrowers SET borrower_name = $1,
		legacy_principal_amount = $2, legacy_interest_amount = $3,
		legacy_interest_is_percent = $4, legacy_date_provided = $5,
		legacy_notes = $6, updated_on = $7
		WHERE id = $8 AND owner_id = $9 AND deleted = FALSE`
	res, err := r.db.ExecContext(ctx, query, b.BorrowerName,
		legacyPrincipal, legacyInterest, legacyPercent, legacyDate, legacyNotes,
		b.UpdatedOn, b.ID, b.OwnerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *borrowerRepository) SoftDelete(ctx context.Context, ownerID, id uuid.UUID) error {
	query := `UPDATE borrowers SET deleted = TRUE, updated_on = $1
	          WHERE id = $2 AND owner_id = $3 AND deleted = FALSE`
	res, err := r.db.ExecContext(ctx, query, time.Now(), id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *borrowerRepository) TotalPrincipalByOwner(ctx context.Context, ownerID uuid.UUID) (decimal.Decimal, error) {
	// Loan status is deliberately not consulted: total lent reflects
	// historical principal regardless of payoff or write-off.
	query := `SELECT COALESCE(SUM(amount), 0) FROM (
	            SELECT legacy_principal_amount AS amount FROM borrowers
	            WHERE owner_id = $1 AND deleted = FALSE AND legacy_principal_amount IS NOT NULL
	            UNION ALL
	            SELECT l.principal_amount FROM loans l
	            JOIN borrowers b ON l.borrower_id = b.id
	            WHERE b.owner_id = $1 AND b.deleted = FALSE
	          ) totals`
	var total decimal.Decimal
	err := r.db.QueryRowContext(ctx, query, ownerID).Scan(&total)
	return total, err
}

func (r *borrowerRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM borrowers WHERE owner_id = $1 AND deleted = FALSE`, ownerID).Scan(&count)
	return count, err
}

func (r *borrowerRepository) CountAll(ctx context.Context) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM borrowers WHERE deleted = FALSE`).Scan(&count)
	return count, err
}

func (r *borrowerRepository) RecentByOwner(ctx context.Context, ownerID uuid.UUID, limit int32) ([]domain.Borrower, error) {
	query := `SELECT ` + borrowerColumns + ` FROM borrowers
	          WHERE owner_id = $1 AND deleted = FALSE ORDER BY created_on DESC LIMIT $2`
	return r.queryBorrowers(ctx, query, ownerID, limit)
}

func (r *borrowerRepository) queryBorrowers(ctx context.Context, query string, args ...any) ([]domain.Borrower, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var borrowers []domain.Borrower
	for rows.Next() {
		b, err := scanBorrower(rows)
		if err != nil {
			return nil, err
		}
		borrowers = append(borrowers, *b)
	}
	return borrowers, rows.Err()
}

// loadLoans populates the loan lists of the given borrowers in one query.
func (r *borrowerRepository) loadLoans(ctx context.Context, borrowers []*domain.Borrower) error {
	if len(borrowers) == 0 {
		return nil
	}
	ids := make([]string, len(borrowers))
	byID := make(map[uuid.UUID]*domain.Borrower, len(borrowers))
	for i, b := range borrowers {
		ids[i] = b.ID.String()
		byID[b.ID] = b
		b.Loans = []domain.Loan{}
	}

	query := `SELECT ` + loanColumns + ` FROM loans
	          WHERE borrower_id = ANY($1) ORDER BY borrower_id, position`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return err
		}
		if b, ok := byID[l.BorrowerID]; ok {
			b.Loans = append(b.Loans, *l)
		}
	}
	return rows.Err()
}
