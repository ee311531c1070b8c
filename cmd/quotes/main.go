package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/prixe-io/prixe-go/internal/config"
	"github.com/prixe-io/prixe-go/internal/indicators"
	"github.com/prixe-io/prixe-go/internal/marketclock"
	"github.com/prixe-io/prixe-go/internal/portfolio"
	"github.com/prixe-io/prixe-go/internal/prixe"
)

// rateLimitDelay is the courtesy pause between consecutive API calls.
const rateLimitDelay = 100 * time.Millisecond

func main() {
	cfg := config.LoadFromEnv()
	fmt.Println("Prixe Stock API - Basic Usage Examples")
	fmt.Println("======================================")

	if cfg.Prixe.APIKey == "" {
		log.Fatal("PRIXE_API_KEY is not set; cannot proceed")
	}

	api := prixe.NewClientWithBaseURL(cfg.Prixe.APIKey, cfg.Prixe.BaseURL)
	ctx := context.Background()

	// Independent examples: a failure in one is logged and the next runs.
	exampleCurrentPrice(ctx, api)
	exampleMultipleTickers(ctx, api)
	exampleSearch(ctx, api)
	exampleHistoricalData(ctx, api)
	examplePortfolio(ctx, api)
	exampleErrorHandling(ctx, api)
	exampleTechnicalAnalysis(ctx, api)

	fmt.Println("\n=== All examples completed ===")
}

func exampleCurrentPrice(ctx context.Context, api *prixe.Client) {
	fmt.Println("\n=== Example 1: Get Current Stock Price ===")

	quote, err := api.LastSold(ctx, "AAPL")
	if err != nil {
		log.Printf("Failed to get current price: %v", err)
		return
	}

	fmt.Printf("Ticker: %s\n", quote.Ticker)
	fmt.Printf("Current Price: %s\n", quote.LastSalePrice)
	fmt.Printf("Change: %s (%s)\n", quote.NetChange, quote.PercentageChange)
	fmt.Printf("Volume: %s\n", quote.Volume)
	fmt.Printf("Bid/Ask: %s / %s\n", quote.BidPrice, quote.AskPrice)
	fmt.Printf("Last Trade: %s\n", quote.LastTradeTimestamp)
}

func exampleMultipleTickers(ctx context.Context, api *prixe.Client) {
	fmt.Println("\n=== Example 2: Get Multiple Stock Prices ===")

	tickers := []string{"AAPL", "MSFT", "GOOGL", "AMZN", "TSLA"}
	if !marketclock.IsOpen(tickers[0], time.Now()) {
		log.Println("Market is closed; quotes will be the last session's prints")
	}

	err := prixe.EachTicker(ctx, tickers, rateLimitDelay, func(ticker string) error {
		quote, err := api.LastSold(ctx, ticker)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %s (%s)\n", quote.Ticker, quote.LastSalePrice, quote.PercentageChange)
		return nil
	})
	if err != nil {
		log.Printf("Failed to get multiple stocks: %v", err)
	}
}

func exampleSearch(ctx context.Context, api *prixe.Client) {
	fmt.Println("\n=== Example 3: Search for Stocks ===")

	results, err := api.Search(ctx, "Tesla")
	if err != nil {
		log.Printf("Failed to search stocks: %v", err)
		return
	}

	fmt.Println("Search results for \"Tesla\":")
	for _, stock := range results {
		fmt.Printf("%s - %s\n", stock.Ticker, stock.StockName)
		fmt.Printf("CUSIP: %s\n", stock.Cusip)
		fmt.Println("---")
	}
}

func exampleHistoricalData(ctx context.Context, api *prixe.Client) {
	fmt.Println("\n=== Example 4: Get Historical Price Data ===")

	end := time.Now().Unix()
	start := end - 30*24*60*60 // 30 days ago

	chart, err := api.HistoricalPrices(ctx, "MSFT", start, end, "1d")
	if err != nil {
		log.Printf("Failed to get historical data: %v", err)
		return
	}

	candles, err := chart.Candles()
	if err != nil {
		log.Printf("Failed to parse chart: %v", err)
		return
	}

	meta := chart.Data.Body.Chart.Result[0].Meta
	fmt.Println("Microsoft (MSFT) - Last 30 Days:")
	fmt.Printf("Symbol: %s\n", meta.Symbol)
	fmt.Printf("Currency: %s\n", meta.Currency)
	fmt.Printf("Exchange: %s\n", meta.ExchangeName)
	fmt.Printf("Data Points: %d\n", len(candles))

	fmt.Println("\nFirst 5 trading days:")
	for i, candle := range candles {
		if i == 5 {
			break
		}
		date := time.Unix(candle.Timestamp, 0).Format("2006-01-02")
		fmt.Printf("%s: Open: $%.2f, Close: $%.2f, Volume: %.0f\n",
			date, candle.Open, candle.Close, candle.Volume)
	}
}

func examplePortfolio(ctx context.Context, api *prixe.Client) {
	fmt.Println("\n=== Example 5: Portfolio Tracking ===")

	holdings := []portfolio.Holding{
		{Ticker: "AAPL", Shares: 10},
		{Ticker: "MSFT", Shares: 5},
		{Ticker: "GOOGL", Shares: 2},
		{Ticker: "AMZN", Shares: 3},
	}

	positions, total, err := portfolio.Value(ctx, api, holdings, rateLimitDelay)
	if err != nil {
		log.Printf("Failed to track portfolio: %v", err)
		return
	}

	fmt.Println("Portfolio Summary:")
	fmt.Println("================")
	for _, pos := range positions {
		fmt.Printf("%s: %.0f shares @ $%.2f = $%.2f\n", pos.Ticker, pos.Shares, pos.Price, pos.Value)
		fmt.Printf("  Change: %s (%s)\n", pos.NetChange, pos.PercentageChange)
	}
	fmt.Println("================")
	fmt.Printf("Total Portfolio Value: $%.2f\n", total)
}

func exampleErrorHandling(ctx context.Context, api *prixe.Client) {
	fmt.Println("\n=== Example 6: Error Handling ===")

	// An invalid ticker comes back as a normalized service error carrying
	// the message and HTTP status.
	_, err := api.LastSold(ctx, "INVALID_TICKER")
	if err == nil {
		fmt.Println("Unexpectedly got a quote for INVALID_TICKER")
		return
	}

	var apiErr *prixe.APIError
	if errors.As(err, &apiErr) {
		fmt.Printf("Expected error for invalid ticker: %s (status %d)\n", apiErr.Message, apiErr.StatusCode)
	} else {
		fmt.Printf("Expected error for invalid ticker: %v\n", err)
	}

	// An invalid date range is rejected the same way.
	if _, err := api.HistoricalPrices(ctx, "AAPL", time.Now().Unix(), 0, "1d"); err != nil {
		fmt.Printf("Expected error for invalid date range: %v\n", err)
	}
}

func exampleTechnicalAnalysis(ctx context.Context, api *prixe.Client) {
	fmt.Println("\n=== Example 7: Basic Technical Analysis ===")

	end := time.Now().Unix()
	start := end - 30*24*60*60

	chart, err := api.HistoricalPrices(ctx, "AAPL", start, end, "1d")
	if err != nil {
		log.Printf("Failed to get historical data: %v", err)
		return
	}

	summary, ok := indicators.Summarize(chart.ClosePrices())
	if !ok {
		fmt.Println("Insufficient data for technical analysis")
		return
	}

	fmt.Println("Apple (AAPL) Technical Analysis:")
	fmt.Printf("Current Price: $%.2f\n", summary.CurrentPrice)
	fmt.Printf("20-day SMA: $%.2f\n", summary.SMA20)
	fmt.Printf("Price Change: $%.2f (%.2f%%)\n", summary.PriceChange, summary.PriceChangePct)

	if summary.Bullish() {
		fmt.Println("Trend: Above 20-day average (Bullish)")
	} else {
		fmt.Println("Trend: Below 20-day average (Bearish)")
	}
}
