package subscription

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStream struct {
	subscribed   map[string]bool
	subscribeErr error
	unsubCalls   int
}

func newFakeStream(tickers ...string) *fakeStream {
	s := &fakeStream{subscribed: make(map[string]bool)}
	for _, t := range tickers {
		s.subscribed[t] = true
	}
	return s
}

func (s *fakeStream) Subscribe(ticker string) error {
	if s.subscribeErr != nil {
		return s.subscribeErr
	}
	s.subscribed[ticker] = true
	return nil
}

func (s *fakeStream) Unsubscribe() error {
	s.unsubCalls++
	s.subscribed = make(map[string]bool)
	return nil
}

func (s *fakeStream) GetSubscribed() []string {
	var tickers []string
	for t := range s.subscribed {
		tickers = append(tickers, t)
	}
	return tickers
}

type fakeWatchlist struct {
	tickers []string
	err     error
}

func (f *fakeWatchlist) GetWatchlist(key string) ([]string, error) {
	return f.tickers, f.err
}

func TestSyncSubscribesNewTickers(t *testing.T) {
	stream := newFakeStream()
	m := NewWatchlistManager(stream, &fakeWatchlist{tickers: []string{"AAPL", "TSLA"}}, "config:watchlist", 20)

	require.NoError(t, m.syncSubscriptions())
	assert.True(t, stream.subscribed["AAPL"])
	assert.True(t, stream.subscribed["TSLA"])
	assert.Zero(t, stream.unsubCalls)
}

func TestSyncNoChanges(t *testing.T) {
	stream := newFakeStream("AAPL")
	m := NewWatchlistManager(stream, &fakeWatchlist{tickers: []string{"AAPL"}}, "config:watchlist", 20)

	require.NoError(t, m.syncSubscriptions())
	assert.Zero(t, stream.unsubCalls)
	assert.Equal(t, []string{"AAPL"}, stream.GetSubscribed())
}

func TestSyncDroppedTickerForcesResubscribe(t *testing.T) {
	stream := newFakeStream("AAPL", "TSLA")
	m := NewWatchlistManager(stream, &fakeWatchlist{tickers: []string{"AAPL"}}, "config:watchlist", 20)

	require.NoError(t, m.syncSubscriptions())

	// Unsubscribe is session-wide, so the wanted set comes back in full.
	assert.Equal(t, 1, stream.unsubCalls)
	assert.True(t, stream.subscribed["AAPL"])
	assert.False(t, stream.subscribed["TSLA"])
}

func TestSyncLimitsWatchlist(t *testing.T) {
	many := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L"}
	stream := newFakeStream()
	m := NewWatchlistManager(stream, &fakeWatchlist{tickers: many}, "config:watchlist", 20)

	require.NoError(t, m.syncSubscriptions())
	assert.Len(t, stream.GetSubscribed(), 10)
}

func TestSyncWatchlistReadError(t *testing.T) {
	stream := newFakeStream()
	m := NewWatchlistManager(stream, &fakeWatchlist{err: errors.New("redis down")}, "config:watchlist", 20)

	assert.Error(t, m.syncSubscriptions())
}

func TestSyncSubscribeError(t *testing.T) {
	stream := newFakeStream()
	stream.subscribeErr = errors.New("not connected")
	m := NewWatchlistManager(stream, &fakeWatchlist{tickers: []string{"AAPL"}}, "config:watchlist", 20)

	assert.Error(t, m.syncSubscriptions())
}

func TestDifference(t *testing.T) {
	assert.Equal(t, []string{"A"}, difference([]string{"A", "B"}, []string{"B"}))
	assert.Nil(t, difference([]string{"A"}, []string{"A"}))
	assert.Equal(t, []string{"A", "B"}, difference([]string{"A", "B"}, nil))
}
