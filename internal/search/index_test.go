package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/config"
	"github.com/Skotchmaster/storefront/internal/models"
)

// fakeCluster answers like Elasticsearch for the few endpoints the index uses.
func fakeCluster(t *testing.T, seen *[]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*seen = append(*seen, r.Method+" "+r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		switch {
		case strings.HasSuffix(r.URL.Path, "/_search"):
			_ = json.NewEncoder(w).Encode(map[string]any{
				"hits": map[string]any{
					"total": map[string]any{"value": 1},
					"hits": []any{
						map[string]any{"_source": map[string]any{"id": 3, "name": "Кедровая шишка", "price": 250}},
					},
				},
			})
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"result":"not_found"}`))
		default:
			_, _ = w.Write([]byte(`{"result":"created"}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestIndexRoundTrip(t *testing.T) {
	var seen []string
	srv := fakeCluster(t, &seen)

	es, err := NewClient(config.Elastic{URL: srv.URL})
	require.NoError(t, err)
	idx := NewIndex(es, "products")
	ctx := context.Background()

	require.NoError(t, idx.IndexProduct(ctx, models.Product{ID: 3, Name: "Кедровая шишка", Price: 250}))
	require.NoError(t, idx.DeleteProduct(ctx, 3))

	total, items, err := idx.Search(ctx, "шишка", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.EqualValues(t, 3, items[0].ID)

	assert.Contains(t, seen, "PUT /products/_doc/3")
	assert.Contains(t, seen, "DELETE /products/_doc/3")
	var searched bool
	for _, s := range seen {
		searched = searched || strings.HasSuffix(s, "/products/_search")
	}
	assert.True(t, searched)
}
