// Package analyst chains the Prixe news endpoint into a chat-completion
// call and returns the model's buy/no-buy verdict.
package analyst

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/prixe-io/prixe-go/internal/prixe"
)

const systemPrompt = "You are an Expert Stock Analyst. Give me a yes or no answer " +
	"on if you would buy the stock based on the content. Give me a short explanation " +
	"for your answer. return only the answer, no other text."

// NewsFetcher is the slice of the Prixe client the analyst needs.
type NewsFetcher interface {
	News(ctx context.Context, ticker string) (*prixe.NewsResponse, error)
}

// Analyst fetches news for a ticker and asks a chat-completion model for
// a verdict on it.
type Analyst struct {
	news NewsFetcher
	chat *chatClient
}

// New creates an Analyst. A missing chat-completion API key is a hard
// configuration failure rather than a silent no-op.
func New(news NewsFetcher, apiKey, model string) (*Analyst, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("analyst: chat-completion API key is required")
	}
	return &Analyst{
		news: news,
		chat: newChatClient(apiKey, model),
	}, nil
}

// Verdict fetches news for ticker, concatenates the article bodies, and
// submits them for analysis. When no article has a body the model is
// never called and an empty verdict is returned without error.
func (a *Analyst) Verdict(ctx context.Context, ticker string) (string, error) {
	resp, err := a.news.News(ctx, ticker)
	if err != nil {
		return "", fmt.Errorf("failed to fetch news for %s: %w", ticker, err)
	}

	articles := resp.Articles()
	log.Printf("Found %d articles for %s", len(articles), ticker)

	return a.Analyze(ctx, articles)
}

// Analyze submits already-fetched articles for analysis. When no article
// has a body the model is never called and an empty verdict is returned
// without error.
func (a *Analyst) Analyze(ctx context.Context, articles []prixe.NewsArticle) (string, error) {
	content := ConcatBodies(articles)
	if content == "" {
		log.Println("No article bodies, skipping analysis")
		return "", nil
	}

	verdict, err := a.chat.complete(ctx, systemPrompt, content)
	if err != nil {
		return "", fmt.Errorf("analysis failed: %w", err)
	}
	return verdict, nil
}

// ConcatBodies joins the bodies of articles with newlines, preserving
// order and skipping articles without a body.
func ConcatBodies(articles []prixe.NewsArticle) string {
	var bodies []string
	for _, article := range articles {
		if article.Body != "" {
			bodies = append(bodies, article.Body)
		}
	}
	return strings.Join(bodies, "\n")
}
