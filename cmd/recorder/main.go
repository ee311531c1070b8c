package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prixe-io/prixe-go/internal/config"
	"github.com/prixe-io/prixe-go/internal/marketclock"
	"github.com/prixe-io/prixe-go/internal/mongodb"
	"github.com/prixe-io/prixe-go/internal/redisclient"
	"github.com/prixe-io/prixe-go/internal/stream"
	"github.com/prixe-io/prixe-go/internal/subscription"
)

// recordingHandler writes every price update to Redis and, when
// configured, MongoDB. Other events are logged.
type recordingHandler struct {
	redis *redisclient.Client
	mongo *mongodb.Client
}

func (h *recordingHandler) OnConnect(s stream.ConnectStatus) {
	log.Printf("Connected with ID: %s", s.ConnectionID)
}

func (h *recordingHandler) OnSubscription(s stream.SubscriptionStatus) {
	log.Printf("Subscription status: %s", s.Status)
}

func (h *recordingHandler) OnPriceUpdate(u stream.PriceUpdate) {
	if err := h.redis.CacheQuote(u.Ticker, u.CurrentPrice, u.Fields); err != nil {
		log.Printf("Failed to cache quote: %v", err)
	}
	if err := h.redis.PublishPriceEvent(config.PriceEventsKey, u); err != nil {
		log.Printf("Failed to publish price event: %v", err)
	}
	if h.mongo != nil {
		if err := h.mongo.InsertPriceUpdate(u.Ticker, u.CurrentPrice, u.Fields); err != nil {
			log.Printf("Failed to store price update: %v", err)
		}
	}
}

func (h *recordingHandler) OnServerError(e stream.ServerError) {
	log.Printf("Server error: %s", e.Message)
}

func main() {
	cfg := config.LoadFromEnv()
	log.Println("Prixe Price Recorder")
	log.Printf("Config loaded: Redis=%s, Stream=%s", cfg.Redis.Addr, cfg.Prixe.WSURL)

	if cfg.Prixe.APIKey == "" {
		log.Fatal("PRIXE_API_KEY is not set; cannot proceed")
	}

	redisClient, err := redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Failed to close Redis client: %v", err)
		}
	}()
	log.Println("Connected to Redis")

	var mongoClient *mongodb.Client
	if cfg.Mongo.Addr != "" {
		mongoClient, err = mongodb.NewClient(cfg.Mongo.Addr, cfg.Mongo.Database)
		if err != nil {
			log.Printf("Failed to connect to MongoDB, recording to Redis only: %v", err)
		} else {
			defer func() {
				if err := mongoClient.Close(); err != nil {
					log.Printf("Failed to close MongoDB client: %v", err)
				}
			}()
			log.Println("Connected to MongoDB")
		}
	}

	now := time.Now()
	if !marketclock.IsTradingDay("AAPL", now) {
		log.Println("US market is closed today; updates may be sparse")
	} else if !marketclock.IsOpen("AAPL", now) {
		log.Println("US market is outside session hours; updates may be sparse")
	}

	handler := &recordingHandler{redis: redisClient, mongo: mongoClient}

	wsURL := cfg.Prixe.WSURL + "?api_key=" + cfg.Prixe.APIKey
	var client *stream.Client
	if cfg.Prixe.UseProxy {
		log.Printf("Proxy enabled: %s", cfg.Prixe.ProxyAddr)
		client = stream.NewClientWithProxy(wsURL, handler, true, cfg.Prixe.ProxyAddr)
	} else {
		client = stream.NewClient(wsURL, handler)
	}

	if err := client.Connect(""); err != nil {
		log.Fatalf("Failed to connect to price stream: %v", err)
	}
	defer client.Close()

	watchlist := subscription.NewWatchlistManager(
		client,
		redisClient,
		cfg.Redis.WatchlistKey,
		cfg.Redis.PollIntervalSec,
	)
	if err := watchlist.Start(); err != nil {
		log.Fatalf("Failed to start watchlist manager: %v", err)
	}
	defer watchlist.Stop()
	log.Printf("Watchlist manager started (polling every %d seconds)", cfg.Redis.PollIntervalSec)

	if mongoClient != nil {
		for _, ticker := range client.GetSubscribed() {
			docs, err := mongoClient.LatestPriceUpdates(ticker, 1)
			if err != nil {
				log.Printf("Failed to read stored updates for %s: %v", ticker, err)
				continue
			}
			if len(docs) > 0 {
				log.Printf("Resuming %s: last stored price $%.2f at %d", ticker, docs[0].CurrentPrice, docs[0].ReceivedAt)
			}
		}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	log.Println("Recorder is running. Press Ctrl+C to exit.")
	select {
	case <-sigChan:
		log.Println("Shutting down gracefully...")
		if err := client.Unsubscribe(); err != nil {
			log.Printf("Failed to send unsubscribe: %v", err)
		}
	case <-client.Done():
		// No reconnect: a dropped stream ends the recording session.
		log.Println("Stream session ended")
	}
	log.Println("Shutdown complete")
}
