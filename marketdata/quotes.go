// Package marketdata supplies observed option quotes to consumers such as
// the implied-volatility solver. Quotes keep bid/ask as exact decimals;
// conversion to float64 happens at the numerical boundary.
package marketdata

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is an observed market quote for one option contract.
type Quote struct {
	Symbol string
	Strike decimal.Decimal
	Expiry time.Time
	Type   string // "call" or "put"
	Bid    decimal.Decimal
	Ask    decimal.Decimal
	AsOf   time.Time
}

// Mid returns the bid/ask midpoint.
func (q Quote) Mid() decimal.Decimal {
	return q.Bid.Add(q.Ask).Div(decimal.NewFromInt(2))
}

// QuoteKey identifies a contract in a feed.
type QuoteKey struct {
	Symbol string
	Strike string // decimal string, e.g. "100" or "102.5"
	Expiry string // YYYY-MM-DD
	Type   string
}

// QuoteFeed supplies the latest quote for a contract.
type QuoteFeed interface {
	Quote(key QuoteKey) (Quote, bool)
}

// MapQuoteFeed is a static map-backed implementation for development and
// testing.
type MapQuoteFeed struct {
	quotes map[QuoteKey]Quote
}

func NewMapQuoteFeed(quotes map[QuoteKey]Quote) *MapQuoteFeed {
	return &MapQuoteFeed{quotes: quotes}
}

func (m *MapQuoteFeed) Quote(key QuoteKey) (Quote, bool) {
	q, ok := m.quotes[key]
	return q, ok
}

// Key builds the feed key for a quote.
func (q Quote) Key() QuoteKey {
	return QuoteKey{
		Symbol: q.Symbol,
		Strike: q.Strike.String(),
		Expiry: q.Expiry.Format("2006-01-02"),
		Type:   q.Type,
	}
}
