package prixe

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chartJSON = `{
	"data": {
		"body": {
			"chart": {
				"result": [{
					"meta": {"currency":"USD","symbol":"MSFT","exchangeName":"NMS"},
					"timestamp": [100, 200, 300],
					"indicators": {
						"quote": [{
							"open":   [1.0, null, 3.0],
							"high":   [1.5, 2.5, 3.5],
							"low":    [0.5, 1.5, 2.5],
							"close":  [1.2, 2.2, 3.2],
							"volume": [10, 20, 30]
						}]
					}
				}]
			}
		}
	}
}`

func TestCandlesSkipsNullPoints(t *testing.T) {
	var chart ChartResponse
	require.NoError(t, json.Unmarshal([]byte(chartJSON), &chart))

	candles, err := chart.Candles()
	require.NoError(t, err)

	// The middle point has a null open and must be dropped.
	require.Len(t, candles, 2)
	assert.Equal(t, int64(100), candles[0].Timestamp)
	assert.Equal(t, 1.2, candles[0].Close)
	assert.Equal(t, int64(300), candles[1].Timestamp)
	assert.Equal(t, 3.2, candles[1].Close)
}

func TestCandlesAlignmentError(t *testing.T) {
	var chart ChartResponse
	require.NoError(t, json.Unmarshal([]byte(chartJSON), &chart))
	chart.Data.Body.Chart.Result[0].Timestamp = []int64{100}

	_, err := chart.Candles()
	assert.ErrorContains(t, err, "alignment")
}

func TestCandlesChartError(t *testing.T) {
	var chart ChartResponse
	chart.Data.Body.Chart.Error = &ChartError{Code: "Not Found", Description: "No data found"}

	_, err := chart.Candles()
	assert.ErrorContains(t, err, "No data found")
}

func TestCandlesEmptyResult(t *testing.T) {
	var chart ChartResponse
	_, err := chart.Candles()
	assert.Error(t, err)
}

func TestClosePrices(t *testing.T) {
	var chart ChartResponse
	require.NoError(t, json.Unmarshal([]byte(chartJSON), &chart))

	assert.Equal(t, []float64{1.2, 2.2, 3.2}, chart.ClosePrices())
}

func TestArticlesUnsuccessfulResponse(t *testing.T) {
	var news NewsResponse
	require.NoError(t, json.Unmarshal([]byte(`{"success":false,"news_data":{"data":[{"body":"x"}]}}`), &news))
	assert.Nil(t, news.Articles())
}
