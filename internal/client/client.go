// Package client exposes the Pexels API endpoints on top of the retrying
// HTTP transport, including transparent multi-page aggregation for list
// endpoints.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/fivetwenty-io/pexels-client/internal/constants"
	internalhttp "github.com/fivetwenty-io/pexels-client/internal/http"
	"github.com/fivetwenty-io/pexels-client/pkg/pexels"
)

// Config carries everything needed to build an API client.
type Config struct {
	Host       string
	Token      string
	Locale     string
	UserAgent  string
	Timeout    time.Duration
	MaxRetries int
	RetryAfter time.Duration
	Debug      bool
	Logger     zerolog.Logger
}

// Client provides typed access to the Pexels API endpoints.
type Client struct {
	http *internalhttp.Client
}

// New creates an API client from the given configuration. Zero values fall
// back to the package defaults.
func New(config Config) *Client {
	host := config.Host
	if host == "" {
		host = constants.DefaultHost
	}

	opts := []internalhttp.Option{
		internalhttp.WithLogger(config.Logger),
		internalhttp.WithDebug(config.Debug),
	}

	if config.Locale != "" {
		opts = append(opts, internalhttp.WithLocale(config.Locale))
	}

	if config.UserAgent != "" {
		opts = append(opts, internalhttp.WithUserAgent(config.UserAgent))
	}

	if config.Timeout > 0 {
		opts = append(opts, internalhttp.WithTimeout(config.Timeout))
	}

	if config.MaxRetries >= 0 {
		opts = append(opts, internalhttp.WithRetryConfig(config.MaxRetries))
	}

	if config.RetryAfter > 0 {
		opts = append(opts, internalhttp.WithRetryAfterOverride(config.RetryAfter))
	}

	return &Client{http: internalhttp.NewClient(host, config.Token, opts...)}
}

// SearchPhotos searches photos matching the query.
func (c *Client) SearchPhotos(ctx context.Context, query string, opts pexels.ListOptions) (interface{}, error) {
	return c.getValue(ctx, constants.PhotoAPIPrefix+"/search", searchQuery(query, opts))
}

// SearchPhotosAll searches photos across pages, aggregating the results.
func (c *Client) SearchPhotosAll(ctx context.Context, query string, opts pexels.ListOptions, agg pexels.AggregateOptions) (pexels.Document, error) {
	return c.aggregate(ctx, constants.PhotoAPIPrefix+"/search", searchQuery(query, opts), agg)
}

// CuratedPhotos lists the curated photo feed.
func (c *Client) CuratedPhotos(ctx context.Context, opts pexels.ListOptions) (interface{}, error) {
	return c.getValue(ctx, constants.PhotoAPIPrefix+"/curated", listQuery(opts))
}

// CuratedPhotosAll lists the curated feed across pages.
func (c *Client) CuratedPhotosAll(ctx context.Context, opts pexels.ListOptions, agg pexels.AggregateOptions) (pexels.Document, error) {
	return c.aggregate(ctx, constants.PhotoAPIPrefix+"/curated", listQuery(opts), agg)
}

// GetPhoto fetches a single photo by ID.
func (c *Client) GetPhoto(ctx context.Context, id int64) (interface{}, error) {
	return c.getValue(ctx, fmt.Sprintf("%s/photos/%d", constants.PhotoAPIPrefix, id), nil)
}

// SearchVideos searches videos matching the query.
func (c *Client) SearchVideos(ctx context.Context, query string, opts pexels.ListOptions) (interface{}, error) {
	return c.getValue(ctx, constants.VideoAPIPrefix+"/search", searchQuery(query, opts))
}

// SearchVideosAll searches videos across pages, aggregating the results.
func (c *Client) SearchVideosAll(ctx context.Context, query string, opts pexels.ListOptions, agg pexels.AggregateOptions) (pexels.Document, error) {
	return c.aggregate(ctx, constants.VideoAPIPrefix+"/search", searchQuery(query, opts), agg)
}

// PopularVideos lists the popular video feed.
func (c *Client) PopularVideos(ctx context.Context, opts pexels.ListOptions) (interface{}, error) {
	return c.getValue(ctx, constants.VideoAPIPrefix+"/popular", listQuery(opts))
}

// PopularVideosAll lists the popular feed across pages.
func (c *Client) PopularVideosAll(ctx context.Context, opts pexels.ListOptions, agg pexels.AggregateOptions) (pexels.Document, error) {
	return c.aggregate(ctx, constants.VideoAPIPrefix+"/popular", listQuery(opts), agg)
}

// GetVideo fetches a single video by ID.
func (c *Client) GetVideo(ctx context.Context, id int64) (interface{}, error) {
	return c.getValue(ctx, fmt.Sprintf("%s/videos/%d", constants.VideoAPIPrefix, id), nil)
}

// MyCollections lists the authenticated account's collections.
func (c *Client) MyCollections(ctx context.Context, opts pexels.ListOptions) (interface{}, error) {
	return c.getValue(ctx, constants.PhotoAPIPrefix+"/collections", listQuery(opts))
}

// MyCollectionsAll lists the account's collections across pages.
func (c *Client) MyCollectionsAll(ctx context.Context, opts pexels.ListOptions, agg pexels.AggregateOptions) (pexels.Document, error) {
	return c.aggregate(ctx, constants.PhotoAPIPrefix+"/collections", listQuery(opts), agg)
}

// FeaturedCollections lists the featured collections.
func (c *Client) FeaturedCollections(ctx context.Context, opts pexels.ListOptions) (interface{}, error) {
	return c.getValue(ctx, constants.PhotoAPIPrefix+"/collections/featured", listQuery(opts))
}

// FeaturedCollectionsAll lists the featured collections across pages.
func (c *Client) FeaturedCollectionsAll(ctx context.Context, opts pexels.ListOptions, agg pexels.AggregateOptions) (pexels.Document, error) {
	return c.aggregate(ctx, constants.PhotoAPIPrefix+"/collections/featured", listQuery(opts), agg)
}

// CollectionMedia lists the media of one collection. mediaType narrows the
// result to "photos" or "videos" when non-empty.
func (c *Client) CollectionMedia(ctx context.Context, id, mediaType string, opts pexels.ListOptions) (interface{}, error) {
	return c.getValue(ctx, collectionPath(id), collectionQuery(mediaType, opts))
}

// CollectionMediaAll lists a collection's media across pages.
func (c *Client) CollectionMediaAll(ctx context.Context, id, mediaType string, opts pexels.ListOptions, agg pexels.AggregateOptions) (pexels.Document, error) {
	return c.aggregate(ctx, collectionPath(id), collectionQuery(mediaType, opts), agg)
}

// Quota probes the API with a minimal curated request and reports the
// rate-limit accounting headers.
func (c *Client) Quota(ctx context.Context) (pexels.Document, error) {
	query := url.Values{}
	query.Set("per_page", "1")

	resp, err := c.http.Get(ctx, constants.PhotoAPIPrefix+"/curated", query)
	if err != nil {
		return nil, err
	}

	quota := pexels.Document{"reachable": true}
	for header, field := range map[string]string{
		"X-Ratelimit-Limit":     "limit",
		"X-Ratelimit-Remaining": "remaining",
		"X-Ratelimit-Reset":     "reset",
	} {
		value := resp.Headers.Get(header)
		if value == "" {
			continue
		}

		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			quota[field] = n
		} else {
			quota[field] = value
		}
	}

	return quota, nil
}

// Ping checks API reachability and credential validity.
func (c *Client) Ping(ctx context.Context) error {
	query := url.Values{}
	query.Set("per_page", "1")

	_, err := c.http.Get(ctx, constants.PhotoAPIPrefix+"/curated", query)

	return err
}

// Raw fetches an arbitrary API path or absolute URL and decodes the JSON
// document, useful for inspecting responses the typed commands reshape.
func (c *Client) Raw(ctx context.Context, pathOrURL string) (interface{}, error) {
	return c.getValue(ctx, pathOrURL, nil)
}

// Download fetches a media asset by absolute URL. The asset hosts are
// separate from the API, so no credential is attached.
func (c *Client) Download(ctx context.Context, rawURL string) ([]byte, error) {
	resp, err := c.http.Do(ctx, &internalhttp.Request{Path: rawURL, NoAuth: true})
	if err != nil {
		return nil, err
	}

	return resp.Body, nil
}

// getValue performs a GET and decodes the body leniently: object bodies
// become documents, any other 2xx body flows through as an opaque value.
func (c *Client) getValue(ctx context.Context, path string, query url.Values) (interface{}, error) {
	resp, err := c.http.Get(ctx, path, query)
	if err != nil {
		return nil, err
	}

	return decodeValue(resp.Body), nil
}

// getDocument is the aggregation-side fetch. Non-object pages carry no items
// and no next link, so they fold in as empty documents.
func (c *Client) getDocument(ctx context.Context, path string, query url.Values) (pexels.Document, error) {
	resp, err := c.http.Get(ctx, path, query)
	if err != nil {
		return nil, err
	}

	doc, ok := decodeValue(resp.Body).(pexels.Document)
	if !ok {
		return pexels.Document{}, nil
	}

	return doc, nil
}

// aggregate drives the pagination fold: the first fetch uses the endpoint
// path and query, later fetches follow the next_page link verbatim with no
// extra parameters.
func (c *Client) aggregate(ctx context.Context, path string, query url.Values, agg pexels.AggregateOptions) (pexels.Document, error) {
	fetch := func(ctx context.Context, link string) (pexels.Document, error) {
		if link == "" {
			return c.getDocument(ctx, path, query)
		}

		return c.getDocument(ctx, link, nil)
	}

	return pexels.Aggregate(ctx, fetch, agg)
}

// decodeValue parses a response body as JSON, falling back to the raw text
// when the body is not JSON at all.
func decodeValue(body []byte) interface{} {
	if len(body) == 0 {
		return pexels.Document{}
	}

	var value interface{}
	if err := json.Unmarshal(body, &value); err != nil {
		return string(body)
	}

	return value
}

func listQuery(opts pexels.ListOptions) url.Values {
	query := url.Values{}

	if opts.Page > 0 {
		query.Set("page", strconv.Itoa(opts.Page))
	}

	if opts.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(opts.PerPage))
	}

	return query
}

func searchQuery(q string, opts pexels.ListOptions) url.Values {
	query := listQuery(opts)
	query.Set("query", q)

	return query
}

func collectionQuery(mediaType string, opts pexels.ListOptions) url.Values {
	query := listQuery(opts)
	if mediaType != "" {
		query.Set("type", mediaType)
	}

	return query
}

func collectionPath(id string) string {
	return constants.PhotoAPIPrefix + "/collections/" + url.PathEscape(id)
}
