package repo

import (
	"context"
	"database/sql"

	"github.com/coderanges/swiftcrm/internal/domain"
	"github.com/coderanges/swiftcrm/internal/usecase"
)

type MySQLUserRepo struct{ db *sql.DB }

func NewMySQLUserRepo(db *sql.DB) *MySQLUserRepo { return &MySQLUserRepo{db: db} }

func (r *MySQLUserRepo) Create(ctx context.Context, u *domain.User) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO users (id,email,password_hash,name,created_at)
VALUES (?,?,?,?,NOW())
`, u.ID, u.Email, u.PasswordHash, u.Name)
	if isDuplicateKey(err) {
		return usecase.ErrDuplicateEmail
	}
	return err
}

func (r *MySQLUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id,email,password_hash,name,created_at FROM users WHERE email=?`, email)
	return scanUser(row)
}

func (r *MySQLUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id,email,password_hash,name,created_at FROM users WHERE id=?`, id)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.CreatedAt); err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

var _ usecase.UserRepo = (*MySQLUserRepo)(nil)
