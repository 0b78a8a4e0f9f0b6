package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/pexels-client/pkg/pexels"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return New(Config{Host: server.URL, Token: "test-token", MaxRetries: 0})
}

func TestSearchPhotos(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/search", r.URL.Path)
		assert.Equal(t, "mountains", r.URL.Query().Get("query"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "5", r.URL.Query().Get("per_page"))
		_, _ = w.Write([]byte(`{"photos":[{"id":1}],"total_results":1}`))
	})

	value, err := client.SearchPhotos(context.Background(), "mountains", pexels.ListOptions{Page: 2, PerPage: 5})
	require.NoError(t, err)

	doc, ok := value.(pexels.Document)
	require.True(t, ok)

	photos, ok := doc["photos"].([]interface{})
	require.True(t, ok)
	assert.Len(t, photos, 1)
}

func TestGetVideoPath(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/videos/videos/2499611", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":2499611,"duration":22}`))
	})

	value, err := client.GetVideo(context.Background(), 2499611)
	require.NoError(t, err)

	doc, ok := value.(pexels.Document)
	require.True(t, ok)
	assert.Equal(t, float64(22), doc["duration"])
}

func TestNonObjectBodyFlowsThrough(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want interface{}
	}{
		{name: "plain text", body: "pong", want: "pong"},
		{name: "json array", body: `[{"id":1}]`, want: []interface{}{pexels.Document{"id": float64(1)}}},
		{name: "json string", body: `"ok"`, want: "ok"},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(test.body))
			})

			value, err := client.Raw(context.Background(), "/v1/anything")
			require.NoError(t, err)
			assert.Equal(t, test.want, value)
		})
	}
}

func TestCollectionMediaTypeFilter(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/collections/abc123", r.URL.Path)
		assert.Equal(t, "videos", r.URL.Query().Get("type"))
		_, _ = w.Write([]byte(`{"media":[]}`))
	})

	_, err := client.CollectionMedia(context.Background(), "abc123", "videos", pexels.ListOptions{})
	require.NoError(t, err)
}

func TestSearchPhotosAllFollowsNextPage(t *testing.T) {
	t.Parallel()

	var server *httptest.Server

	calls := 0
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++

		switch r.URL.Query().Get("page") {
		case "", "1":
			assert.Equal(t, "sea", r.URL.Query().Get("query"))
			_, _ = w.Write([]byte(`{"photos":[{"id":1}],"next_page":"` + server.URL + `/v1/search?page=2&query=sea"}`))
		case "2":
			_, _ = w.Write([]byte(`{"photos":[{"id":2}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := New(Config{Host: server.URL, Token: "test-token", MaxRetries: 0})

	doc, err := client.SearchPhotosAll(context.Background(), "sea",
		pexels.ListOptions{}, pexels.AggregateOptions{Limit: -1})
	require.NoError(t, err)

	photos, ok := doc["photos"].([]interface{})
	require.True(t, ok)
	assert.Len(t, photos, 2)
	assert.Equal(t, 2, calls)
	assert.NotContains(t, doc, "next_page")
}

func TestQuotaReadsRateLimitHeaders(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("per_page"))
		w.Header().Set("X-Ratelimit-Limit", "25000")
		w.Header().Set("X-Ratelimit-Remaining", "24977")
		w.Header().Set("X-Ratelimit-Reset", "1724800000")
		_, _ = w.Write([]byte(`{"photos":[]}`))
	})

	quota, err := client.Quota(context.Background())
	require.NoError(t, err)

	assert.Equal(t, true, quota["reachable"])
	assert.Equal(t, int64(25000), quota["limit"])
	assert.Equal(t, int64(24977), quota["remaining"])
	assert.Equal(t, int64(1724800000), quota["reset"])
}

func TestDownloadOmitsAuthorization(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte("image-bytes"))
	}))
	defer server.Close()

	client := New(Config{Host: "http://unused.invalid", Token: "test-token", MaxRetries: 0})

	body, err := client.Download(context.Background(), server.URL+"/photo.jpg")
	require.NoError(t, err)
	assert.Equal(t, []byte("image-bytes"), body)
}
