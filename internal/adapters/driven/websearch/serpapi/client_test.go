package serpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)
	return client
}

func organicPayload(items ...map[string]any) map[string]any {
	return map[string]any{"organic_results": items}
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)
}

func TestSearch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search.json", r.URL.Path)
		assert.Equal(t, "google", r.URL.Query().Get("engine"))
		assert.Equal(t, "covid symptoms", r.URL.Query().Get("q"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))

		_ = json.NewEncoder(w).Encode(organicPayload(
			map[string]any{"title": "CDC", "snippet": "Fever and cough.", "link": "https://cdc.gov"},
			map[string]any{"title": "WHO", "snippet": "Symptoms overview.", "link": "https://who.int"},
		))
	})

	results, err := client.Search(context.Background(), "covid symptoms", 3)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "CDC", results[0].Title)
	assert.Equal(t, "Fever and cough.", results[0].Snippet)
	assert.Equal(t, "https://cdc.gov", results[0].URL)
}

func TestSearch_TruncatesBeforeFiltering(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(organicPayload(
			map[string]any{"title": "First", "snippet": "one", "link": "https://a"},
			map[string]any{"title": "NoSnippet", "link": "https://b"},
			map[string]any{"title": "Third", "snippet": "three", "link": "https://c"},
			map[string]any{"title": "Fourth", "snippet": "four", "link": "https://d"},
		))
	})

	// Top 2 of the provider ranking are considered; the snippet-less
	// entry is dropped rather than replaced by a lower-ranked one.
	results, err := client.Search(context.Background(), "q", 2)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "First", results[0].Title)
}

func TestSearch_FiltersIncompleteEntries(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(organicPayload(
			map[string]any{"snippet": "orphan snippet", "link": "https://a"},
			map[string]any{"title": "orphan title", "link": "https://b"},
			map[string]any{"title": "Full", "snippet": "ok", "link": "https://c"},
		))
	})

	results, err := client.Search(context.Background(), "q", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Full", results[0].Title)
}

func TestSearch_NoResults(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{})
	})

	results, err := client.Search(context.Background(), "q", 3)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_ProviderError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"error": "Invalid API key."})
	})

	results, err := client.Search(context.Background(), "q", 3)
	require.Error(t, err)
	assert.Nil(t, results)
	assert.Contains(t, err.Error(), "Invalid API key")
}

func TestSearch_DefaultMaxResults(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		items := make([]map[string]any, 0, 6)
		for _, title := range []string{"a", "b", "c", "d", "e", "f"} {
			items = append(items, map[string]any{"title": title, "snippet": "s", "link": "https://" + title})
		}
		_ = json.NewEncoder(w).Encode(organicPayload(items...))
	})

	results, err := client.Search(context.Background(), "q", 0)
	require.NoError(t, err)
	assert.Len(t, results, DefaultMaxResults)
}
