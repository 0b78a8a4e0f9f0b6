package pexels

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pageScript replays canned pages keyed by the link the aggregator asks for
// and records the request sequence.
type pageScript struct {
	pages map[string]Document
	links []string
}

func (s *pageScript) fetch(_ context.Context, link string) (Document, error) {
	s.links = append(s.links, link)

	page, ok := s.pages[link]
	if !ok {
		return nil, errors.New("unexpected link: " + link)
	}

	return page, nil
}

func pageURL(n int) string {
	return fmt.Sprintf("https://api.example.test/search?page=%d", n)
}

func photoPage(next string, ids ...int) Document {
	photos := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		photos = append(photos, Document{"id": float64(id)})
	}

	page := Document{"photos": photos, "total_results": float64(100)}
	if next != "" {
		page["next_page"] = next
	}

	return page
}

func photoIDs(doc Document) []int {
	items, _ := doc["photos"].([]interface{})

	ids := make([]int, 0, len(items))
	for _, item := range items {
		ids = append(ids, int(item.(Document)["id"].(float64)))
	}

	return ids
}

func TestAggregateFollowsLinks(t *testing.T) {
	t.Parallel()

	script := &pageScript{pages: map[string]Document{
		"":         photoPage(pageURL(2), 1, 2),
		pageURL(2): photoPage(pageURL(3), 3, 4),
		pageURL(3): photoPage("", 5),
	}}

	doc, err := Aggregate(context.Background(), script.fetch, AggregateOptions{Limit: -1})
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3, 4, 5}, photoIDs(doc))
	assert.Equal(t, []string{"", pageURL(2), pageURL(3)}, script.links)
	assert.NotContains(t, doc, "next_page")
	assert.Equal(t, float64(100), doc["total_results"])
}

func TestAggregateLimitStopsMidPage(t *testing.T) {
	t.Parallel()

	script := &pageScript{pages: map[string]Document{
		"":         photoPage(pageURL(2), 1, 2, 3),
		pageURL(2): photoPage(pageURL(3), 4, 5, 6),
	}}

	doc, err := Aggregate(context.Background(), script.fetch, AggregateOptions{Limit: 5})
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3, 4, 5}, photoIDs(doc))
	assert.Equal(t, []string{"", pageURL(2)}, script.links, "page 3 must not be fetched")
}

func TestAggregateLimitAtPageBoundary(t *testing.T) {
	t.Parallel()

	script := &pageScript{pages: map[string]Document{
		"": photoPage(pageURL(2), 1, 2),
	}}

	doc, err := Aggregate(context.Background(), script.fetch, AggregateOptions{Limit: 2})
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2}, photoIDs(doc))
	assert.Equal(t, []string{""}, script.links, "limit satisfied, next_page must not be followed")
}

func TestAggregateZeroLimitStillFetchesOnce(t *testing.T) {
	t.Parallel()

	script := &pageScript{pages: map[string]Document{
		"": photoPage(pageURL(2), 1, 2),
	}}

	doc, err := Aggregate(context.Background(), script.fetch, AggregateOptions{Limit: 0})
	require.NoError(t, err)

	assert.Equal(t, []string{""}, script.links, "exactly one request")
	assert.Empty(t, photoIDs(doc))
	assert.Contains(t, doc, "photos")
}

func TestAggregateMaxPages(t *testing.T) {
	t.Parallel()

	script := &pageScript{pages: map[string]Document{
		"":         photoPage(pageURL(2), 1),
		pageURL(2): photoPage(pageURL(3), 2),
	}}

	doc, err := Aggregate(context.Background(), script.fetch, AggregateOptions{Limit: -1, MaxPages: 2})
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2}, photoIDs(doc))
	assert.Equal(t, []string{"", pageURL(2)}, script.links)
}

func TestAggregateStopsOnMalformedLink(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		next interface{}
	}{
		{name: "numeric link", next: float64(2)},
		{name: "junk string", next: "::not a url::"},
		{name: "relative path", next: "/v1/search?page=2"},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			script := &pageScript{pages: map[string]Document{
				"": {
					"photos":    []interface{}{Document{"id": float64(1)}},
					"next_page": test.next,
				},
			}}

			doc, err := Aggregate(context.Background(), script.fetch, AggregateOptions{Limit: -1})
			require.NoError(t, err)

			assert.Equal(t, []int{1}, photoIDs(doc))
			assert.Equal(t, []string{""}, script.links, "malformed link must end pagination, not be fetched")
		})
	}
}

func TestAggregateFirstPageMetadataWins(t *testing.T) {
	t.Parallel()

	script := &pageScript{pages: map[string]Document{
		"": {
			"photos":        []interface{}{Document{"id": float64(1)}},
			"page":          float64(1),
			"total_results": float64(42),
			"next_page":     pageURL(2),
		},
		pageURL(2): {
			"photos":        []interface{}{Document{"id": float64(2)}},
			"page":          float64(2),
			"total_results": float64(43),
		},
	}}

	doc, err := Aggregate(context.Background(), script.fetch, AggregateOptions{Limit: -1})
	require.NoError(t, err)

	assert.Equal(t, float64(1), doc["page"])
	assert.Equal(t, float64(42), doc["total_results"])
	assert.Equal(t, []int{1, 2}, photoIDs(doc))
}

func TestAggregatePropagatesFetchError(t *testing.T) {
	t.Parallel()

	script := &pageScript{pages: map[string]Document{
		"": photoPage(pageURL(2), 1),
	}}

	_, err := Aggregate(context.Background(), script.fetch, AggregateOptions{Limit: -1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected link")
}
