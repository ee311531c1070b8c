// Package indicators provides basic technical indicators over closing
// price series.
package indicators

import "math"

// Mean calculates the mean of a slice of float64 values
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev calculates the sample standard deviation of a slice of float64 values
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	mean := Mean(values)

	var sumSquares float64
	for _, v := range values {
		diff := v - mean
		sumSquares += diff * diff
	}

	variance := sumSquares / float64(len(values)-1)
	if variance < 0 {
		variance = 0 // floating point guard
	}

	return math.Sqrt(variance)
}

// SMA returns the simple moving average over the last period values.
// Returns 0 when fewer than period values are available.
func SMA(prices []float64, period int) float64 {
	if period <= 0 || len(prices) < period {
		return 0
	}
	return Mean(prices[len(prices)-period:])
}

// Summary holds the indicator set of a closing-price series.
type Summary struct {
	CurrentPrice   float64
	SMA20          float64
	PriceChange    float64
	PriceChangePct float64
}

// Bullish reports whether the current price sits above the 20-day SMA.
func (s Summary) Bullish() bool {
	return s.CurrentPrice > s.SMA20
}

// Summarize computes the indicator set for a closing-price series. At
// least 20 data points are required; ok is false otherwise.
func Summarize(prices []float64) (s Summary, ok bool) {
	if len(prices) < 20 {
		return Summary{}, false
	}

	s.SMA20 = SMA(prices, 20)
	s.CurrentPrice = prices[len(prices)-1]

	prev := prices[len(prices)-2]
	s.PriceChange = s.CurrentPrice - prev
	if prev != 0 {
		s.PriceChangePct = s.PriceChange / prev * 100
	}

	return s, true
}
