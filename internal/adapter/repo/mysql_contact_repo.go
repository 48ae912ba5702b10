package repo

import (
	"context"
	"database/sql"

	"github.com/coderanges/swiftcrm/internal/domain"
	"github.com/coderanges/swiftcrm/internal/usecase"
)

type MySQLContactRepo struct{ db *sql.DB }

func NewMySQLContactRepo(db *sql.DB) *MySQLContactRepo { return &MySQLContactRepo{db: db} }

const contactCols = `id,name,email,phone,company,address,notes,user_id,created_at,updated_at`

func (r *MySQLContactRepo) Create(ctx context.Context, c *domain.Contact) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO contacts (`+contactCols+`)
VALUES (?,?,?,?,?,?,?,?,NOW(),NOW())
`, c.ID, c.Name, c.Email, c.Phone, c.Company, c.Address, c.Notes, c.UserID)
	return err
}

func (r *MySQLContactRepo) GetByID(ctx context.Context, id, userID string) (*domain.Contact, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+contactCols+` FROM contacts WHERE id=? AND user_id=?`, id, userID)
	var c domain.Contact
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Address,
		&c.Notes, &c.UserID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &c, nil
}

func (r *MySQLContactRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Contact, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+contactCols+` FROM contacts WHERE user_id=? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Contact
	for rows.Next() {
		var c domain.Contact
		err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Address,
			&c.Notes, &c.UserID, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (r *MySQLContactRepo) Update(ctx context.Context, c *domain.Contact) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE contacts
SET name=?, email=?, phone=?, company=?, address=?, notes=?, updated_at=NOW()
WHERE id=? AND user_id=?`,
		c.Name, c.Email, c.Phone, c.Company, c.Address, c.Notes, c.ID, c.UserID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *MySQLContactRepo) Delete(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx, `
DELETE FROM contacts WHERE id=? AND user_id=?`, id, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return usecase.ErrNotFound
	}
	return nil
}

var _ usecase.ContactRepo = (*MySQLContactRepo)(nil)
