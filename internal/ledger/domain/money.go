package domain

import "github.com/shopspring/decimal"

// CentPlaces is the precision of stored money values.
const CentPlaces = 2

// WholeCents reports whether d carries no digits past the cent.
func WholeCents(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(CentPlaces))
}
