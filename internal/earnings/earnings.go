// Package earnings settles restaurant balances. Credits are strictly
// incremental: they happen once, inside the delivered transition's
// transaction, and are never rebuilt by summing historical orders.
package earnings

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Split divides an order total into platform commission and restaurant
// share at the given percentage rate, rounded to cents.
func Split(total, commissionRate decimal.Decimal) (commission, share decimal.Decimal) {
	commission = total.Mul(commissionRate).Div(hundred).Round(2)
	share = total.Sub(commission)
	return commission, share
}
