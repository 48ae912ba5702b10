package repo

import (
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"

	"github.com/coderanges/swiftcrm/internal/usecase"
)

// mapErr translates driver errors to the usecase sentinels handlers switch on.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return usecase.ErrNotFound
	}
	return err
}

func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

// dec scans a DECIMAL column returned as a string.
func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// nullStr maps an empty string to a SQL NULL.
func nullStr(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
