package subscription

import (
	"log"
	"time"
)

// StreamSubscriber is the slice of the stream client the manager drives.
// Unsubscribe drops every subscription of the session, which is all the
// wire protocol supports.
type StreamSubscriber interface {
	Subscribe(ticker string) error
	Unsubscribe() error
	GetSubscribed() []string
}

// WatchlistReader reads the ticker watchlist from Redis.
type WatchlistReader interface {
	GetWatchlist(key string) ([]string, error)
}

// WatchlistManager keeps the stream's subscriptions in sync with a
// Redis-held watchlist, polling for changes.
type WatchlistManager struct {
	stream       StreamSubscriber
	redisClient  WatchlistReader
	watchlistKey string
	pollInterval time.Duration
	stopChan     chan struct{}
}

// NewWatchlistManager creates a watchlist manager
func NewWatchlistManager(stream StreamSubscriber, redisClient WatchlistReader, watchlistKey string, pollInterval int) *WatchlistManager {
	return &WatchlistManager{
		stream:       stream,
		redisClient:  redisClient,
		watchlistKey: watchlistKey,
		pollInterval: time.Duration(pollInterval) * time.Second,
		stopChan:     make(chan struct{}),
	}
}

// Start performs the initial sync and starts polling for changes.
func (m *WatchlistManager) Start() error {
	if err := m.syncSubscriptions(); err != nil {
		return err
	}

	go m.pollWatchlistChanges()

	return nil
}

// Stop stops the watchlist manager
func (m *WatchlistManager) Stop() {
	close(m.stopChan)
}

func (m *WatchlistManager) pollWatchlistChanges() {
	ticker := time.NewTicker(m.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stopChan:
			return
		case <-ticker.C:
			if err := m.syncSubscriptions(); err != nil {
				log.Printf("Error syncing watchlist: %v", err)
			}
		}
	}
}

// syncSubscriptions reconciles the stream's subscriptions with the
// watchlist. Because unsubscribe is session-wide, a removed ticker forces
// a full resubscribe of the desired set.
func (m *WatchlistManager) syncSubscriptions() error {
	wanted, err := m.redisClient.GetWatchlist(m.watchlistKey)
	if err != nil {
		log.Printf("Failed to read watchlist from Redis: %v", err)
		return err
	}

	// Enforce max 10 tickers limit
	if len(wanted) > 10 {
		log.Printf("WARNING: Watchlist has %d tickers, limiting to 10", len(wanted))
		wanted = wanted[:10]
	}

	current := m.stream.GetSubscribed()

	toSubscribe := difference(wanted, current)
	toDrop := difference(current, wanted)

	if len(toSubscribe) == 0 && len(toDrop) == 0 {
		return nil
	}

	log.Printf("Watchlist changed: %d tickers to add, %d to drop", len(toSubscribe), len(toDrop))

	if len(toDrop) > 0 {
		if err := m.stream.Unsubscribe(); err != nil {
			log.Printf("Failed to unsubscribe: %v", err)
		}
		// Everything was dropped, re-subscribe the whole wanted set.
		toSubscribe = wanted
	}

	for _, ticker := range toSubscribe {
		if err := m.stream.Subscribe(ticker); err != nil {
			log.Printf("Failed to subscribe to %s: %v", ticker, err)
			return err
		}
	}

	return nil
}

// difference returns elements in a that are not in b
func difference(a, b []string) []string {
	mb := make(map[string]bool, len(b))
	for _, x := range b {
		mb[x] = true
	}

	var diff []string
	for _, x := range a {
		if !mb[x] {
			diff = append(diff, x)
		}
	}
	return diff
}
