package pexels

import (
	"encoding/json"
	"net/url"
	"strconv"
)

// Shape normalizes a raw list document into the stable {data, meta}
// envelope. Data is the first item key (photos, videos, collections, media)
// whose value is an array; a document with none of them, such as a single
// resource, passes through whole, as does any non-object value.
// total_results is carried only when the upstream value is numeric.
func Shape(value interface{}) Envelope {
	doc, ok := value.(Document)
	if !ok {
		return Envelope{Data: value}
	}

	envelope := Envelope{Data: doc}

	for _, key := range itemKeys {
		if items, ok := doc[key].([]interface{}); ok {
			envelope.Data = items

			break
		}
	}

	envelope.Meta.NextPage = ParsePageNumber(doc["next_page"])
	envelope.Meta.PrevPage = ParsePageNumber(doc["prev_page"])

	if total, ok := asInt(doc["total_results"]); ok {
		envelope.Meta.TotalResults = &total
	}

	return envelope
}

// ParsePageNumber normalizes a pagination field that the API reports either
// as a page number or as a full URL carrying a `page` query parameter.
// Anything else yields nil.
func ParsePageNumber(value interface{}) *int {
	if page, ok := asInt(value); ok {
		return &page
	}

	raw, ok := value.(string)
	if !ok {
		return nil
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return nil
	}

	page, err := strconv.Atoi(parsed.Query().Get("page"))
	if err != nil {
		return nil
	}

	return &page
}

// asInt extracts an integer from the numeric forms a JSON decoder may
// produce.
func asInt(value interface{}) (int, bool) {
	switch v := value.(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}

		return int(n), true
	default:
		return 0, false
	}
}
