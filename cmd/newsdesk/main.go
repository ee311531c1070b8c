package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/prixe-io/prixe-go/internal/analyst"
	"github.com/prixe-io/prixe-go/internal/config"
	"github.com/prixe-io/prixe-go/internal/mongodb"
	"github.com/prixe-io/prixe-go/internal/prixe"
)

func main() {
	tickerFlag := flag.String("ticker", "GLD", "ticker to analyze")
	flag.Parse()

	cfg := config.LoadFromEnv()

	if cfg.Prixe.APIKey == "" {
		log.Fatal("PRIXE_API_KEY is not set; cannot proceed")
	}

	api := prixe.NewClientWithBaseURL(cfg.Prixe.APIKey, cfg.Prixe.BaseURL)

	a, err := analyst.New(api, cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	if err != nil {
		log.Fatalf("Failed to create analyst: %v", err)
	}

	ctx := context.Background()

	log.Printf("Fetching news for %s...", *tickerFlag)
	news, err := api.News(ctx, *tickerFlag)
	if err != nil {
		log.Fatalf("Failed to fetch news: %v", err)
	}

	articles := news.Articles()
	log.Printf("Found %d articles for %s", len(articles), *tickerFlag)

	if cfg.Mongo.Addr != "" {
		mongoClient, err := mongodb.NewClient(cfg.Mongo.Addr, cfg.Mongo.Database)
		if err != nil {
			log.Printf("Failed to connect to MongoDB, articles will not be archived: %v", err)
		} else {
			defer func() {
				if err := mongoClient.Close(); err != nil {
					log.Printf("Failed to close MongoDB client: %v", err)
				}
			}()
			if err := mongoClient.InsertNewsArticles(*tickerFlag, mongodb.DocsFromArticles(articles)); err != nil {
				log.Printf("Failed to archive articles: %v", err)
			} else {
				log.Printf("Archived articles for %s", *tickerFlag)
			}
		}
	}

	verdict, err := a.Analyze(ctx, articles)
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}
	if verdict == "" {
		log.Println("No news bodies to analyze")
		return
	}

	fmt.Println("\n--- AI Stock Analyst Verdict ---")
	fmt.Println(verdict)
	fmt.Println("------------------------------")
}
