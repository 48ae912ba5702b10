package repo

import (
	"context"
	"database/sql"

	"github.com/coderanges/swiftcrm/internal/domain"
	"github.com/coderanges/swiftcrm/internal/usecase"
)

type MySQLOrderRepo struct{ db *sql.DB }

func NewMySQLOrderRepo(db *sql.DB) *MySQLOrderRepo { return &MySQLOrderRepo{db: db} }

const orderCols = `id,order_number,status,total_amount,notes,user_id,contact_id,created_at,updated_at`

func (r *MySQLOrderRepo) Create(ctx context.Context, o *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
INSERT INTO orders (`+orderCols+`)
VALUES (?,?,?,?,?,?,?,NOW(),NOW())
`, o.ID, o.OrderNumber, string(o.Status), o.TotalAmount.String(), o.Notes, o.UserID, o.ContactID)
	if err != nil {
		return err
	}
	if err := insertItems(ctx, tx, o.ID, o.Items); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *MySQLOrderRepo) GetByID(ctx context.Context, id, userID string) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+orderCols+` FROM orders WHERE id=? AND user_id=?`, id, userID)
	o, err := scanOrder(row.Scan)
	if err != nil {
		return nil, mapErr(err)
	}
	items, err := r.listItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

func (r *MySQLOrderRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+orderCols+` FROM orders WHERE user_id=? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Order
	for rows.Next() {
		o, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range out {
		items, err := r.listItems(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		o.Items = items
	}
	return out, nil
}

// Update rewrites the order row and replaces the whole item set, matching
// the composer's submit semantics.
func (r *MySQLOrderRepo) Update(ctx context.Context, o *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
UPDATE orders
SET status=?, total_amount=?, notes=?, contact_id=?, updated_at=NOW()
WHERE id=? AND user_id=?`,
		string(o.Status), o.TotalAmount.String(), o.Notes, o.ContactID, o.ID, o.UserID)
	if err != nil {
		return err
	}
	if err := requireRow(res); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id=?`, o.ID); err != nil {
		return err
	}
	if err := insertItems(ctx, tx, o.ID, o.Items); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *MySQLOrderRepo) Delete(ctx context.Context, id, userID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
DELETE oi FROM order_items oi
JOIN orders o ON o.id = oi.order_id
WHERE o.id=? AND o.user_id=?`, id, userID); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id=? AND user_id=?`, id, userID)
	if err != nil {
		return err
	}
	if err := requireRow(res); err != nil {
		return err
	}
	return tx.Commit()
}

func insertItems(ctx context.Context, tx *sql.Tx, orderID string, items []domain.OrderItem) error {
	for _, it := range items {
		_, err := tx.ExecContext(ctx, `
INSERT INTO order_items (id,order_id,product_name,quantity,unit_price,position)
VALUES (?,?,?,?,?,?)
`, it.ID, orderID, it.ProductName, it.Quantity, it.UnitPrice.String(), it.Position)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *MySQLOrderRepo) listItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id,product_name,quantity,unit_price,position
FROM order_items WHERE order_id=? ORDER BY position`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.OrderItem
	for rows.Next() {
		var (
			it    domain.OrderItem
			price string
		)
		if err := rows.Scan(&it.ID, &it.ProductName, &it.Quantity, &price, &it.Position); err != nil {
			return nil, err
		}
		it.UnitPrice = dec(price)
		out = append(out, it)
	}
	return out, rows.Err()
}

func scanOrder(scan func(...any) error) (*domain.Order, error) {
	var (
		o      domain.Order
		status string
		total  string
	)
	err := scan(&o.ID, &o.OrderNumber, &status, &total, &o.Notes, &o.UserID,
		&o.ContactID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.Status = domain.OrderStatus(status)
	o.TotalAmount = dec(total)
	return &o, nil
}

var _ usecase.OrderRepo = (*MySQLOrderRepo)(nil)
