package database

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgCheckViolation   = "23514"
	mysqlCheckViolated = 3819
)

// IsCheckViolation reports whether err is a CHECK constraint failure, such as
// an increment that would push sold_quantity past total_quantity.
func IsCheckViolation(err error) bool {
	return hasCode(err, pgCheckViolation, mysqlCheckViolated)
}

func hasCode(err error, pgCode string, mysqlNumber uint16) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgCode
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlNumber
	}
	return false
}
