package pexels

// Document is a schemaless JSON object as decoded from the API.
type Document = map[string]interface{}

// Meta carries the normalized pagination block of an Envelope. NextPage and
// PrevPage deliberately omit omitempty so absent pages render as explicit
// JSON nulls.
type Meta struct {
	NextPage     *int `json:"next_page" yaml:"next_page"`
	PrevPage     *int `json:"prev_page" yaml:"prev_page"`
	TotalResults *int `json:"total_results,omitempty" yaml:"total_results,omitempty"`
}

// Envelope is the stable output shape for every list response: the result
// items plus normalized pagination metadata.
type Envelope struct {
	Data interface{} `json:"data" yaml:"data"`
	Meta Meta        `json:"meta" yaml:"meta"`
}

// ListOptions controls a single-page list request.
type ListOptions struct {
	Page    int
	PerPage int
}

// AggregateOptions controls multi-page aggregation.
//
// Limit caps the total number of items collected; zero collects none (but
// the first request is still issued) and a negative value means unbounded.
// MaxPages caps the number of requests; zero or negative means unbounded.
type AggregateOptions struct {
	Limit    int
	MaxPages int
}

// itemKeys are the array fields the API uses to carry result items, in the
// order they are probed.
var itemKeys = []string{"photos", "videos", "collections", "media"}
