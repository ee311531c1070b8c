package analyst

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prixe-io/prixe-go/internal/prixe"
)

// fakeNews serves a canned news response.
type fakeNews struct {
	resp *prixe.NewsResponse
	err  error
}

func (f *fakeNews) News(ctx context.Context, ticker string) (*prixe.NewsResponse, error) {
	return f.resp, f.err
}

func newsWith(bodies ...string) *prixe.NewsResponse {
	resp := &prixe.NewsResponse{Success: true}
	for _, body := range bodies {
		resp.NewsData.Data = append(resp.NewsData.Data, prixe.NewsArticle{Body: body})
	}
	return resp
}

func TestConcatBodies(t *testing.T) {
	articles := []prixe.NewsArticle{
		{Body: "a"},
		{Title: "no body"},
		{Body: "b"},
	}
	assert.Equal(t, "a\nb", ConcatBodies(articles))
}

func TestConcatBodiesEmpty(t *testing.T) {
	assert.Empty(t, ConcatBodies(nil))
	assert.Empty(t, ConcatBodies([]prixe.NewsArticle{{Title: "only title"}}))
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(&fakeNews{}, "", "gpt-5")
	assert.Error(t, err)
}

func TestVerdict(t *testing.T) {
	var gotReq chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Write([]byte(`{"choices":[{"message":{"content":"Yes. Strong earnings momentum."}}]}`))
	}))
	defer server.Close()

	a, err := New(&fakeNews{resp: newsWith("article one", "article two")}, "sk-test", "gpt-5")
	require.NoError(t, err)
	a.chat.url = server.URL

	verdict, err := a.Verdict(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "Yes. Strong earnings momentum.", verdict)

	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, "user", gotReq.Messages[1].Role)
	assert.Equal(t, "article one\narticle two", gotReq.Messages[1].Content)
	assert.Equal(t, "gpt-5", gotReq.Model)
}

func TestVerdictSkipsModelWhenNoNews(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"choices":[{"message":{"content":"never"}}]}`))
	}))
	defer server.Close()

	a, err := New(&fakeNews{resp: newsWith()}, "sk-test", "gpt-5")
	require.NoError(t, err)
	a.chat.url = server.URL

	verdict, err := a.Verdict(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Empty(t, verdict)
	assert.Zero(t, calls, "chat completion must not be called without news bodies")
}

func TestAnalyzeSkipsModelForBodilessArticles(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	a, err := New(&fakeNews{}, "sk-test", "gpt-5")
	require.NoError(t, err)
	a.chat.url = server.URL

	verdict, err := a.Analyze(context.Background(), []prixe.NewsArticle{{Title: "headline only"}})
	require.NoError(t, err)
	assert.Empty(t, verdict)
	assert.Zero(t, calls)
}

func TestVerdictPropagatesNewsError(t *testing.T) {
	a, err := New(&fakeNews{err: errors.New("boom")}, "sk-test", "gpt-5")
	require.NoError(t, err)

	_, err = a.Verdict(context.Background(), "AAPL")
	assert.Error(t, err)
}

func TestVerdictChatFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"invalid api key"}}`))
	}))
	defer server.Close()

	a, err := New(&fakeNews{resp: newsWith("some news")}, "sk-bad", "gpt-5")
	require.NoError(t, err)
	a.chat.url = server.URL

	_, err = a.Verdict(context.Background(), "AAPL")
	assert.ErrorContains(t, err, "status 401")
}
