package repo

import (
	"context"
	"database/sql"

	"github.com/coderanges/swiftcrm/internal/domain"
	"github.com/coderanges/swiftcrm/internal/usecase"
)

type MySQLInvoiceRepo struct{ db *sql.DB }

func NewMySQLInvoiceRepo(db *sql.DB) *MySQLInvoiceRepo { return &MySQLInvoiceRepo{db: db} }

const invoiceCols = `id,invoice_number,amount,status,due_date,notes,user_id,contact_id,order_id,created_at,updated_at`

func (r *MySQLInvoiceRepo) Create(ctx context.Context, i *domain.Invoice) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO invoices (`+invoiceCols+`)
VALUES (?,?,?,?,?,?,?,?,?,NOW(),NOW())
`, i.ID, i.InvoiceNumber, i.Amount.String(), string(i.Status), i.DueDate, i.Notes,
		i.UserID, i.ContactID, nullStr(i.OrderID))
	return err
}

func (r *MySQLInvoiceRepo) GetByID(ctx context.Context, id, userID string) (*domain.Invoice, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+invoiceCols+` FROM invoices WHERE id=? AND user_id=?`, id, userID)
	i, err := scanInvoice(row.Scan)
	if err != nil {
		return nil, mapErr(err)
	}
	return i, nil
}

func (r *MySQLInvoiceRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Invoice, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+invoiceCols+` FROM invoices WHERE user_id=? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Invoice
	for rows.Next() {
		i, err := scanInvoice(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

func (r *MySQLInvoiceRepo) Update(ctx context.Context, i *domain.Invoice) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE invoices
SET amount=?, status=?, due_date=?, notes=?, contact_id=?, order_id=?, updated_at=NOW()
WHERE id=? AND user_id=?`,
		i.Amount.String(), string(i.Status), i.DueDate, i.Notes, i.ContactID,
		nullStr(i.OrderID), i.ID, i.UserID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *MySQLInvoiceRepo) Delete(ctx context.Context, id, userID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// receipts hang off the invoice; drop them with it
	if _, err := tx.ExecContext(ctx, `
DELETE r FROM receipts r
JOIN invoices i ON i.id = r.invoice_id
WHERE i.id=? AND i.user_id=?`, id, userID); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM invoices WHERE id=? AND user_id=?`, id, userID)
	if err != nil {
		return err
	}
	if err := requireRow(res); err != nil {
		return err
	}
	return tx.Commit()
}

func scanInvoice(scan func(...any) error) (*domain.Invoice, error) {
	var (
		i       domain.Invoice
		amount  string
		status  string
		orderID sql.NullString
	)
	err := scan(&i.ID, &i.InvoiceNumber, &amount, &status, &i.DueDate, &i.Notes,
		&i.UserID, &i.ContactID, &orderID, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return nil, err
	}
	i.Amount = dec(amount)
	i.Status = domain.InvoiceStatus(status)
	i.OrderID = orderID.String
	return &i, nil
}

var _ usecase.InvoiceRepo = (*MySQLInvoiceRepo)(nil)
