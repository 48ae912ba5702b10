package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/coderanges/swiftcrm/internal/domain"
	"github.com/coderanges/swiftcrm/internal/usecase"
)

type MySQLEntryRepo struct{ db *sql.DB }

func NewMySQLEntryRepo(db *sql.DB) *MySQLEntryRepo { return &MySQLEntryRepo{db: db} }

const entryCols = `id,entry_type,category,amount,description,entry_date,user_id,created_at`

func (r *MySQLEntryRepo) Create(ctx context.Context, e *domain.AccountingEntry) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO accounting_entries (`+entryCols+`)
VALUES (?,?,?,?,?,?,?,NOW())
`, e.ID, string(e.EntryType), e.Category, e.Amount.String(), e.Description, e.Date, e.UserID)
	return err
}

func (r *MySQLEntryRepo) GetByID(ctx context.Context, id, userID string) (*domain.AccountingEntry, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+entryCols+` FROM accounting_entries WHERE id=? AND user_id=?`, id, userID)
	e, err := scanEntry(row.Scan)
	if err != nil {
		return nil, mapErr(err)
	}
	return e, nil
}

func (r *MySQLEntryRepo) ListByUser(ctx context.Context, userID string) ([]*domain.AccountingEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+entryCols+` FROM accounting_entries WHERE user_id=? ORDER BY entry_date DESC`, userID)
	if err != nil {
		return nil, err
	}
	return collectEntries(rows)
}

func (r *MySQLEntryRepo) ListByTypeAndRange(ctx context.Context, userID string, t domain.EntryType, from, to time.Time) ([]*domain.AccountingEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+entryCols+` FROM accounting_entries
WHERE user_id=? AND entry_type=? AND entry_date >= ? AND entry_date <= ?
ORDER BY entry_date DESC`, userID, string(t), from, to)
	if err != nil {
		return nil, err
	}
	return collectEntries(rows)
}

func (r *MySQLEntryRepo) Update(ctx context.Context, e *domain.AccountingEntry) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE accounting_entries
SET entry_type=?, category=?, amount=?, description=?, entry_date=?
WHERE id=? AND user_id=?`,
		string(e.EntryType), e.Category, e.Amount.String(), e.Description, e.Date, e.ID, e.UserID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *MySQLEntryRepo) Delete(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx, `
DELETE FROM accounting_entries WHERE id=? AND user_id=?`, id, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func collectEntries(rows *sql.Rows) ([]*domain.AccountingEntry, error) {
	defer rows.Close()
	var out []*domain.AccountingEntry
	for rows.Next() {
		e, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanEntry(scan func(...any) error) (*domain.AccountingEntry, error) {
	var (
		e         domain.AccountingEntry
		entryType string
		amount    string
	)
	err := scan(&e.ID, &entryType, &e.Category, &amount, &e.Description,
		&e.Date, &e.UserID, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	e.EntryType = domain.EntryType(entryType)
	e.Amount = dec(amount)
	return &e, nil
}

var _ usecase.EntryRepo = (*MySQLEntryRepo)(nil)
