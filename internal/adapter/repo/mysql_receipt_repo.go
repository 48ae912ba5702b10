package repo

import (
	"context"
	"database/sql"

	"github.com/coderanges/swiftcrm/internal/domain"
	"github.com/coderanges/swiftcrm/internal/usecase"
)

type MySQLReceiptRepo struct{ db *sql.DB }

func NewMySQLReceiptRepo(db *sql.DB) *MySQLReceiptRepo { return &MySQLReceiptRepo{db: db} }

const receiptCols = `id,receipt_number,amount,payment_method,notes,user_id,invoice_id,created_at`

// Create inserts the receipt and writes the owning invoice's derived status
// in one transaction, so a reader never observes a receipt without its
// status write-through.
func (r *MySQLReceiptRepo) Create(ctx context.Context, rec *domain.Receipt, invoiceStatus domain.InvoiceStatus) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
INSERT INTO receipts (`+receiptCols+`)
VALUES (?,?,?,?,?,?,?,NOW())
`, rec.ID, rec.ReceiptNumber, rec.Amount.String(), rec.PaymentMethod, rec.Notes,
		rec.UserID, rec.InvoiceID)
	if err != nil {
		return err
	}
	if err := setInvoiceStatus(ctx, tx, rec.InvoiceID, invoiceStatus); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *MySQLReceiptRepo) GetByID(ctx context.Context, id, userID string) (*domain.Receipt, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+receiptCols+` FROM receipts WHERE id=? AND user_id=?`, id, userID)
	rec, err := scanReceipt(row.Scan)
	if err != nil {
		return nil, mapErr(err)
	}
	return rec, nil
}

func (r *MySQLReceiptRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Receipt, error) {
	return r.list(ctx, `
SELECT `+receiptCols+` FROM receipts WHERE user_id=? ORDER BY created_at DESC`, userID)
}

func (r *MySQLReceiptRepo) ListByInvoice(ctx context.Context, invoiceID string) ([]*domain.Receipt, error) {
	return r.list(ctx, `
SELECT `+receiptCols+` FROM receipts WHERE invoice_id=? ORDER BY created_at`, invoiceID)
}

func (r *MySQLReceiptRepo) Update(ctx context.Context, rec *domain.Receipt, changes []usecase.InvoiceStatusChange) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
UPDATE receipts
SET amount=?, payment_method=?, notes=?, invoice_id=?
WHERE id=? AND user_id=?`,
		rec.Amount.String(), rec.PaymentMethod, rec.Notes, rec.InvoiceID, rec.ID, rec.UserID)
	if err != nil {
		return err
	}
	if err := requireRow(res); err != nil {
		return err
	}
	for _, ch := range changes {
		if err := setInvoiceStatus(ctx, tx, ch.InvoiceID, ch.Status); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *MySQLReceiptRepo) Delete(ctx context.Context, id, userID string, change usecase.InvoiceStatusChange) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM receipts WHERE id=? AND user_id=?`, id, userID)
	if err != nil {
		return err
	}
	if err := requireRow(res); err != nil {
		return err
	}
	if err := setInvoiceStatus(ctx, tx, change.InvoiceID, change.Status); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *MySQLReceiptRepo) list(ctx context.Context, query string, arg any) ([]*domain.Receipt, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Receipt
	for rows.Next() {
		rec, err := scanReceipt(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func setInvoiceStatus(ctx context.Context, tx *sql.Tx, invoiceID string, status domain.InvoiceStatus) error {
	_, err := tx.ExecContext(ctx, `
UPDATE invoices SET status=?, updated_at=NOW() WHERE id=?`, string(status), invoiceID)
	return err
}

func scanReceipt(scan func(...any) error) (*domain.Receipt, error) {
	var (
		rec    domain.Receipt
		amount string
	)
	err := scan(&rec.ID, &rec.ReceiptNumber, &amount, &rec.PaymentMethod,
		&rec.Notes, &rec.UserID, &rec.InvoiceID, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	rec.Amount = dec(amount)
	return &rec, nil
}

var _ usecase.ReceiptRepo = (*MySQLReceiptRepo)(nil)
