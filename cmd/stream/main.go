package main

import (
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prixe-io/prixe-go/internal/config"
	"github.com/prixe-io/prixe-go/internal/stream"
)

const ticker = "AAPL"

// printHandler logs every dispatched event.
type printHandler struct{}

func (printHandler) OnConnect(s stream.ConnectStatus) {
	log.Printf("Connected with ID: %s", s.ConnectionID)
}

func (printHandler) OnSubscription(s stream.SubscriptionStatus) {
	log.Printf("Subscription status: %s", s.Status)
}

func (printHandler) OnPriceUpdate(u stream.PriceUpdate) {
	log.Printf("Price update for %s: $%v", u.Ticker, u.CurrentPrice)
	if payload, err := json.Marshal(u.Fields); err == nil {
		log.Printf("Full price data: %s", payload)
	}
}

func (printHandler) OnServerError(e stream.ServerError) {
	log.Printf("Server error: %s", e.Message)
}

func main() {
	cfg := config.LoadFromEnv()
	log.Println("Prixe WebSocket Client")

	if cfg.Prixe.APIKey == "" {
		log.Fatal("PRIXE_API_KEY is not set; cannot proceed")
	}

	wsURL := cfg.Prixe.WSURL + "?api_key=" + cfg.Prixe.APIKey
	log.Printf("Connecting to %s", cfg.Prixe.WSURL)

	var client *stream.Client
	if cfg.Prixe.UseProxy {
		log.Printf("Proxy enabled: %s", cfg.Prixe.ProxyAddr)
		client = stream.NewClientWithProxy(wsURL, printHandler{}, true, cfg.Prixe.ProxyAddr)
	} else {
		client = stream.NewClient(wsURL, printHandler{})
	}

	if err := client.Connect(ticker); err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	log.Println("Streaming. Press Ctrl+C to exit.")

	heartbeat := time.NewTicker(5 * time.Second)
	defer heartbeat.Stop()

	counter := 0
loop:
	for {
		select {
		case <-heartbeat.C:
			counter++
			log.Printf("Heartbeat #%d", counter)
		case <-client.Done():
			// Connection loss is terminal for the session.
			log.Println("Session ended")
			return
		case <-sigChan:
			break loop
		}
	}

	log.Println("Shutting down gracefully...")
	if err := client.Unsubscribe(); err != nil {
		log.Printf("Failed to send unsubscribe: %v", err)
	}
	if err := client.Close(); err != nil {
		log.Printf("Error closing connection: %v", err)
	}
	log.Println("Shutdown complete")
}
