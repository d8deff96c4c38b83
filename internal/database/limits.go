package database

import (
	"errors"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// Money columns are NUMERIC(12,2); counts are INTEGER.
const (
	moneyPrecision = 12
	moneyScale     = 2
	MaxCount       = math.MaxInt32
)

var moneyLimit = decimal.New(1, moneyPrecision-moneyScale)

// CheckMoney reports why d would be rounded or rejected by a money column.
func CheckMoney(field string, d decimal.Decimal) error {
	if !d.Equal(d.Round(moneyScale)) {
		return fmt.Errorf("%s must have at most %d decimal places", field, moneyScale)
	}
	if d.Abs().GreaterThanOrEqual(moneyLimit) {
		return fmt.Errorf("%s must be less than %s", field, moneyLimit)
	}
	return nil
}

// CheckCount reports whether n fits an INTEGER column.
func CheckCount(field string, n int) error {
	if n > MaxCount {
		return fmt.Errorf("%s must be at most %d", field, MaxCount)
	}
	return nil
}

// IsNumericOverflow reports SQLSTATE 22003.
func IsNumericOverflow(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22003"
}
