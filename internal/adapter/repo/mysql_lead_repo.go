package repo

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/coderanges/swiftcrm/internal/domain"
	"github.com/coderanges/swiftcrm/internal/usecase"
)

type MySQLLeadRepo struct{ db *sql.DB }

func NewMySQLLeadRepo(db *sql.DB) *MySQLLeadRepo { return &MySQLLeadRepo{db: db} }

const leadCols = `id,title,status,value,notes,user_id,contact_id,created_at,updated_at`

func (r *MySQLLeadRepo) Create(ctx context.Context, l *domain.Lead) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO leads (`+leadCols+`)
VALUES (?,?,?,?,?,?,?,NOW(),NOW())
`, l.ID, l.Title, string(l.Status), leadValue(l.Value), l.Notes, l.UserID, l.ContactID)
	return err
}

func (r *MySQLLeadRepo) GetByID(ctx context.Context, id, userID string) (*domain.Lead, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+leadCols+` FROM leads WHERE id=? AND user_id=?`, id, userID)
	l, err := scanLead(row.Scan)
	if err != nil {
		return nil, mapErr(err)
	}
	return l, nil
}

func (r *MySQLLeadRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Lead, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+leadCols+` FROM leads WHERE user_id=? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Lead
	for rows.Next() {
		l, err := scanLead(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *MySQLLeadRepo) Update(ctx context.Context, l *domain.Lead) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE leads
SET title=?, status=?, value=?, notes=?, contact_id=?, updated_at=NOW()
WHERE id=? AND user_id=?`,
		l.Title, string(l.Status), leadValue(l.Value), l.Notes, l.ContactID, l.ID, l.UserID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *MySQLLeadRepo) Delete(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx, `
DELETE FROM leads WHERE id=? AND user_id=?`, id, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanLead(scan func(...any) error) (*domain.Lead, error) {
	var (
		l      domain.Lead
		status string
		value  sql.NullString
	)
	err := scan(&l.ID, &l.Title, &status, &value, &l.Notes, &l.UserID,
		&l.ContactID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	l.Status = domain.LeadStatus(status)
	if value.Valid {
		l.Value = decimal.NullDecimal{Decimal: dec(value.String), Valid: true}
	}
	return &l, nil
}

func leadValue(v decimal.NullDecimal) sql.NullString {
	if !v.Valid {
		return sql.NullString{}
	}
	return sql.NullString{String: v.Decimal.String(), Valid: true}
}

var _ usecase.LeadRepo = (*MySQLLeadRepo)(nil)
