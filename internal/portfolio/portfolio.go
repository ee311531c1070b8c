// Package portfolio values a set of holdings against live quotes.
package portfolio

import (
	"context"
	"fmt"
	"time"

	"github.com/prixe-io/prixe-go/internal/prixe"
)

// Holding is one position in a portfolio.
type Holding struct {
	Ticker string
	Shares float64
}

// Position is a holding valued against the latest quote.
type Position struct {
	Holding
	Price            float64
	Value            float64
	NetChange        string
	PercentageChange string
}

// QuoteFetcher is the slice of the Prixe client the valuation needs.
type QuoteFetcher interface {
	LastSold(ctx context.Context, ticker string) (*prixe.Quote, error)
}

// Value fetches a quote per holding, sleeping delay between calls to
// respect the service rate limit, and returns the valued positions and
// the portfolio total. The first fetch or parse failure aborts the
// valuation.
func Value(ctx context.Context, api QuoteFetcher, holdings []Holding, delay time.Duration) ([]Position, float64, error) {
	positions := make([]Position, 0, len(holdings))
	var total float64

	for i, holding := range holdings {
		quote, err := api.LastSold(ctx, holding.Ticker)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to quote %s: %w", holding.Ticker, err)
		}

		price, err := prixe.ParsePrice(quote.LastSalePrice)
		if err != nil {
			return nil, 0, fmt.Errorf("bad price for %s: %w", holding.Ticker, err)
		}

		value := price * holding.Shares
		total += value
		positions = append(positions, Position{
			Holding:          holding,
			Price:            price,
			Value:            value,
			NetChange:        quote.NetChange,
			PercentageChange: quote.PercentageChange,
		})

		if i < len(holdings)-1 && delay > 0 {
			select {
			case <-ctx.Done():
				return nil, 0, ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return positions, total, nil
}
