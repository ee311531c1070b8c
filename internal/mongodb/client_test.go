package mongodb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prixe-io/prixe-go/internal/prixe"
)

func TestNewsArticleDocsSkipsBodiless(t *testing.T) {
	articles := []NewsArticleDoc{
		{Title: "first", Body: "a"},
		{Title: "headline only"},
		{Title: "second", Body: "b"},
	}

	docs := newsArticleDocs("GLD", articles, 1700000000)
	require.Len(t, docs, 2)

	first, ok := docs[0].(NewsArticleDoc)
	require.True(t, ok)
	assert.Equal(t, "a", first.Body)
	assert.Equal(t, "GLD", first.Ticker)
	assert.Equal(t, int64(1700000000), first.FetchedAt)

	second, ok := docs[1].(NewsArticleDoc)
	require.True(t, ok)
	assert.Equal(t, "b", second.Body)
}

func TestNewsArticleDocsAllBodiless(t *testing.T) {
	docs := newsArticleDocs("GLD", []NewsArticleDoc{{Title: "x"}, {Title: "y"}}, 1700000000)
	assert.Empty(t, docs)
}

func TestDocsFromArticles(t *testing.T) {
	articles := []prixe.NewsArticle{
		{Title: "t1", Body: "b1", URL: "https://example.com/1"},
		{Title: "t2"},
	}

	docs := DocsFromArticles(articles)
	require.Len(t, docs, 2)
	assert.Equal(t, "t1", docs[0].Title)
	assert.Equal(t, "b1", docs[0].Body)
	assert.Equal(t, "https://example.com/1", docs[0].URL)
	assert.Empty(t, docs[1].Body)
}
