package prixe

import "fmt"

// Quote is the /api/last_sold response. Numeric fields arrive formatted
// ("$123.45", "1,234,567"); use ParsePrice to get numbers out of them.
type Quote struct {
	Ticker             string `json:"ticker"`
	LastSalePrice      string `json:"lastSalePrice"`
	NetChange          string `json:"netChange"`
	PercentageChange   string `json:"percentageChange"`
	Volume             string `json:"volume"`
	BidPrice           string `json:"bidPrice"`
	AskPrice           string `json:"askPrice"`
	LastTradeTimestamp string `json:"lastTradeTimestamp"`
}

// SearchResult is one entry of the /api/search response array.
type SearchResult struct {
	Ticker    string `json:"ticker"`
	StockName string `json:"stockName"`
	Cusip     string `json:"cusip"`
}

// NewsArticle is one entry of the /api/news article list. Articles
// without a body are possible and are skipped by consumers.
type NewsArticle struct {
	Title string `json:"title,omitempty"`
	Body  string `json:"body,omitempty"`
	URL   string `json:"url,omitempty"`
}

// NewsResponse is the /api/news response envelope.
type NewsResponse struct {
	Success  bool `json:"success"`
	NewsData struct {
		Data []NewsArticle `json:"data"`
	} `json:"news_data"`
}

// Articles returns the article list, nil when the call was not successful.
func (r *NewsResponse) Articles() []NewsArticle {
	if r == nil || !r.Success {
		return nil
	}
	return r.NewsData.Data
}

// ChartResponse is the /api/price response envelope. The interesting part
// lives at data.body.chart.result[0]: a timestamp array plus per-field
// quote arrays aligned by index, with nulls where the venue had no print.
type ChartResponse struct {
	Data struct {
		Body struct {
			Chart struct {
				Result []ChartResult `json:"result"`
				Error  *ChartError   `json:"error"`
			} `json:"chart"`
		} `json:"body"`
	} `json:"data"`
}

type ChartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type ChartResult struct {
	Meta struct {
		Currency     string `json:"currency"`
		Symbol       string `json:"symbol"`
		ExchangeName string `json:"exchangeName"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open   []*float64 `json:"open"`
			High   []*float64 `json:"high"`
			Low    []*float64 `json:"low"`
			Close  []*float64 `json:"close"`
			Volume []*float64 `json:"volume"`
		} `json:"quote"`
	} `json:"indicators"`
}

// Candle is one flattened OHLCV data point.
type Candle struct {
	Timestamp int64
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}

// Candles flattens the nested chart structure into aligned candles.
// Points where any field is null are skipped.
func (r *ChartResponse) Candles() ([]Candle, error) {
	chart := r.Data.Body.Chart
	if chart.Error != nil {
		return nil, fmt.Errorf("chart error: %s - %s", chart.Error.Code, chart.Error.Description)
	}
	if len(chart.Result) == 0 {
		return nil, fmt.Errorf("no result in chart response")
	}

	result := chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no quote data in chart response")
	}
	quote := result.Indicators.Quote[0]

	n := len(result.Timestamp)
	if len(quote.Open) != n || len(quote.High) != n || len(quote.Low) != n ||
		len(quote.Close) != n || len(quote.Volume) != n {
		return nil, fmt.Errorf("chart data alignment error for %s", result.Meta.Symbol)
	}

	candles := make([]Candle, 0, n)
	for i := 0; i < n; i++ {
		if quote.Open[i] == nil || quote.High[i] == nil || quote.Low[i] == nil ||
			quote.Close[i] == nil || quote.Volume[i] == nil {
			continue
		}
		candles = append(candles, Candle{
			Timestamp: result.Timestamp[i],
			Open:      *quote.Open[i],
			High:      *quote.High[i],
			Low:       *quote.Low[i],
			Close:     *quote.Close[i],
			Volume:    *quote.Volume[i],
		})
	}
	return candles, nil
}

// ClosePrices returns the non-null close prices of the first chart result,
// in order.
func (r *ChartResponse) ClosePrices() []float64 {
	chart := r.Data.Body.Chart
	if len(chart.Result) == 0 || len(chart.Result[0].Indicators.Quote) == 0 {
		return nil
	}
	var prices []float64
	for _, p := range chart.Result[0].Indicators.Quote[0].Close {
		if p != nil {
			prices = append(prices, *p)
		}
	}
	return prices
}
