package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/brickmint/lead-intake/internal/entity"
	"github.com/brickmint/lead-intake/internal/usecase"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `id, full_name, email, phone, city, property_type, bhk, purpose,
	budget_min, budget_max, timeline, source, status, notes, tags, owner_id,
	created_at, updated_at`

// FindByID returns (nil, nil) when the lead does not exist.
func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM buyers WHERE id = $1`

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return lead, nil
}

// LeadFilter narrows List and the CSV export. Zero values mean "no
// filter". Limit <= 0 disables pagination (export wants everything).
type LeadFilter struct {
	OwnerID      string
	City         string
	PropertyType string
	Status       string
	Timeline     string
	Search       string
	Page         int
	Limit        int
}

// List returns the filtered page sorted by updated_at desc, plus the
// total match count for pagination.
func (r *LeadRepository) List(ctx context.Context, f LeadFilter) ([]entity.Lead, int, error) {
	var conds []string
	var args []any

	add := func(clause string, value any) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(clause, len(args)))
	}

	if f.OwnerID != "" {
		add("owner_id = $%d", f.OwnerID)
	}
	if f.City != "" {
		add("city = $%d", f.City)
	}
	if f.PropertyType != "" {
		add("property_type = $%d", f.PropertyType)
	}
	if f.Status != "" {
		add("status = $%d", f.Status)
	}
	if f.Timeline != "" {
		add("timeline = $%d", f.Timeline)
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		args = append(args, pattern)
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(full_name ILIKE $%d OR phone ILIKE $%d OR COALESCE(email, '') ILIKE $%d OR COALESCE(notes, '') ILIKE $%d)",
			n, n, n, n))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM buyers"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + leadColumns + " FROM buyers" + where + " ORDER BY updated_at DESC"
	if f.Limit > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, f.Limit, (page-1)*f.Limit)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	leads := []entity.Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, 0, err
		}
		leads = append(leads, *lead)
	}
	return leads, total, rows.Err()
}

// Delete removes the lead. Its history rows go via ON DELETE CASCADE.
func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM buyers WHERE id = $1`, id)
	return err
}

// RunAtomic runs fn inside one transaction: everything fn does through
// the LeadTx commits together or rolls back together.
func (r *LeadRepository) RunAtomic(ctx context.Context, fn func(tx usecase.LeadTx) error) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(&leadTx{tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Printf("rollback failed: %v", rbErr)
		}
		return err
	}

	return tx.Commit()
}

type leadTx struct {
	tx *sql.Tx
}

func (t *leadTx) Insert(ctx context.Context, l *entity.Lead) error {
	query := `
		INSERT INTO buyers (id, full_name, email, phone, city, property_type, bhk,
			purpose, budget_min, budget_max, timeline, source, status, notes, tags,
			owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`
	_, err := t.tx.ExecContext(ctx, query,
		l.ID, l.FullName, nullString(l.Email), l.Phone, l.City, l.PropertyType,
		nullString(l.Bhk), l.Purpose, l.BudgetMin, l.BudgetMax, l.Timeline,
		l.Source, l.Status, nullString(l.Notes), pq.Array(l.Tags), l.OwnerID,
		l.CreatedAt, l.UpdatedAt,
	)
	return pgError(err)
}

// Update is a compare-and-swap on updated_at: a row that moved on since
// expected was loaded matches nothing, and the caller gets a conflict
// instead of silently overwriting the other writer.
func (t *leadTx) Update(ctx context.Context, l *entity.Lead, expected time.Time) error {
	query := `
		UPDATE buyers SET full_name = $2, email = $3, phone = $4, city = $5,
			property_type = $6, bhk = $7, purpose = $8, budget_min = $9,
			budget_max = $10, timeline = $11, source = $12, status = $13,
			notes = $14, tags = $15, updated_at = $16
		WHERE id = $1 AND updated_at = $17
	`
	res, err := t.tx.ExecContext(ctx, query,
		l.ID, l.FullName, nullString(l.Email), l.Phone, l.City, l.PropertyType,
		nullString(l.Bhk), l.Purpose, l.BudgetMin, l.BudgetMax, l.Timeline,
		l.Source, l.Status, nullString(l.Notes), pq.Array(l.Tags), l.UpdatedAt,
		expected,
	)
	if err != nil {
		return pgError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return usecase.NewConflict()
	}
	return nil
}

func (t *leadTx) InsertAuditEntry(ctx context.Context, e *entity.AuditEntry) error {
	diff, err := json.Marshal(e.Diff)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO buyer_history (id, buyer_id, changed_by, changed_at, diff)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = t.tx.ExecContext(ctx, query, e.ID, e.LeadID, e.ChangedBy, e.ChangedAt, diff)
	return pgError(err)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var l entity.Lead
	var email, bhk, notes sql.NullString
	var budgetMin, budgetMax sql.NullInt64

	err := row.Scan(
		&l.ID, &l.FullName, &email, &l.Phone, &l.City, &l.PropertyType, &bhk,
		&l.Purpose, &budgetMin, &budgetMax, &l.Timeline, &l.Source, &l.Status,
		&notes, pq.Array(&l.Tags), &l.OwnerID, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	l.Email = email.String
	l.Bhk = bhk.String
	l.Notes = notes.String
	if budgetMin.Valid {
		v := int(budgetMin.Int64)
		l.BudgetMin = &v
	}
	if budgetMax.Valid {
		v := int(budgetMax.Int64)
		l.BudgetMax = &v
	}
	if l.Tags == nil {
		l.Tags = []string{}
	}
	return &l, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// pgError logs driver-level detail once and hands back the raw error;
// the usecases wrap it as a TechnicalError anyway.
func pgError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		log.Printf("postgres error %s: %s", pgErr.Code, pgErr.Message)
	}
	return err
}
