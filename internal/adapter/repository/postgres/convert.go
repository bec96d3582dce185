package postgres

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/iho/cashflow/internal/domain"
)

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func dateToPgDate(d domain.CalendarDate) pgtype.Date {
	return pgtype.Date{Time: d.Time(), Valid: true}
}

func pgDateToDate(d pgtype.Date) domain.CalendarDate {
	if !d.Valid {
		return domain.CalendarDate{}
	}
	return domain.DateOf(d.Time.UTC())
}
