package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/prixe-io/prixe-go/internal/prixe"
)

// Collection names
const (
	priceUpdatesCollection = "price_updates"
	newsArticlesCollection = "news_articles"
)

// Client wraps MongoDB persistence for streamed prices and fetched news.
type Client struct {
	client   *mongo.Client
	database *mongo.Database
}

// PriceUpdateDoc is one streamed price update.
type PriceUpdateDoc struct {
	ID           string  `bson:"_id,omitempty"`
	Ticker       string  `bson:"ticker"`
	CurrentPrice float64 `bson:"current_price"`
	Fields       bson.M  `bson:"fields,omitempty"`
	ReceivedAt   int64   `bson:"received_at"`
}

// NewsArticleDoc is one fetched news article body.
type NewsArticleDoc struct {
	ID        string `bson:"_id,omitempty"`
	Ticker    string `bson:"ticker"`
	Title     string `bson:"title,omitempty"`
	Body      string `bson:"body"`
	URL       string `bson:"url,omitempty"`
	FetchedAt int64  `bson:"fetched_at"`
}

// NewClient connects to MongoDB and pings it.
func NewClient(addr, database string) (*Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOpts := options.Client().ApplyURI(addr)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &Client{
		client:   client,
		database: client.Database(database),
	}, nil
}

// InsertPriceUpdate stores one streamed price update.
func (c *Client) InsertPriceUpdate(ticker string, currentPrice float64, fields map[string]interface{}) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	doc := PriceUpdateDoc{
		Ticker:       ticker,
		CurrentPrice: currentPrice,
		Fields:       bson.M(fields),
		ReceivedAt:   time.Now().Unix(),
	}

	if _, err := c.database.Collection(priceUpdatesCollection).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert price update for %s: %w", ticker, err)
	}
	return nil
}

// DocsFromArticles converts fetched API articles into storage documents.
func DocsFromArticles(articles []prixe.NewsArticle) []NewsArticleDoc {
	docs := make([]NewsArticleDoc, 0, len(articles))
	for _, article := range articles {
		docs = append(docs, NewsArticleDoc{
			Title: article.Title,
			Body:  article.Body,
			URL:   article.URL,
		})
	}
	return docs
}

// newsArticleDocs stamps articles with ticker and fetch time, dropping
// those without a body.
func newsArticleDocs(ticker string, articles []NewsArticleDoc, now int64) []interface{} {
	docs := make([]interface{}, 0, len(articles))
	for _, article := range articles {
		if article.Body == "" {
			continue
		}
		article.Ticker = ticker
		article.FetchedAt = now
		docs = append(docs, article)
	}
	return docs
}

// InsertNewsArticles stores the fetched articles for a ticker. Articles
// without a body are skipped.
func (c *Client) InsertNewsArticles(ticker string, articles []NewsArticleDoc) error {
	docs := newsArticleDocs(ticker, articles, time.Now().Unix())
	if len(docs) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := c.database.Collection(newsArticlesCollection).InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert news articles for %s: %w", ticker, err)
	}
	return nil
}

// LatestPriceUpdates returns the most recent stored updates for a ticker.
func (c *Client) LatestPriceUpdates(ticker string, limit int64) ([]PriceUpdateDoc, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "received_at", Value: -1}}).SetLimit(limit)
	cursor, err := c.database.Collection(priceUpdatesCollection).Find(ctx, bson.M{"ticker": ticker}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query price updates for %s: %w", ticker, err)
	}
	defer cursor.Close(ctx)

	var docs []PriceUpdateDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode price updates for %s: %w", ticker, err)
	}
	return docs, nil
}

// Close disconnects from MongoDB.
func (c *Client) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.client.Disconnect(ctx)
}
