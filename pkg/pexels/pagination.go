package pexels

import (
	"context"
	"net/url"
)

// PageFetcher retrieves one page of results. The first call receives an
// empty link and must fetch the initial page; subsequent calls receive the
// next_page URL verbatim.
type PageFetcher func(ctx context.Context, link string) (Document, error)

// Aggregate fetches pages until the item limit, the page cap, or the end of
// the result set is reached, folding them into a single document: metadata
// comes from the first page (minus next_page), item arrays grow across
// pages. A missing or malformed next_page link ends aggregation silently; a
// zero limit still issues the first request so request-level errors surface,
// yielding empty item arrays.
func Aggregate(ctx context.Context, fetch PageFetcher, opts AggregateOptions) (Document, error) {
	out := Document{}
	collected := 0
	link := ""

	for page := 0; ; page++ {
		doc, err := fetch(ctx, link)
		if err != nil {
			return nil, err
		}

		if page == 0 {
			carryMetadata(out, doc)
		}

		if full := appendItems(out, doc, opts.Limit, &collected); full {
			break
		}

		if opts.MaxPages > 0 && page+1 >= opts.MaxPages {
			break
		}

		next, ok := doc["next_page"].(string)
		if !ok || !isAbsoluteURL(next) {
			break
		}

		link = next
	}

	return out, nil
}

// carryMetadata copies the first page's non-item fields into the aggregate.
// next_page is dropped since the aggregate represents the whole traversal.
func carryMetadata(out, doc Document) {
	for key, value := range doc {
		if key == "next_page" || isItemKey(key) {
			continue
		}

		out[key] = value
	}
}

// appendItems folds the page's item arrays into the aggregate, stopping
// mid-array once the limit is reached. Destination arrays are seeded for
// every item key the page carries, so the aggregate keeps an explicit empty
// array even when the limit forbids collecting anything. It reports whether
// the limit was hit. A negative limit never fills up.
func appendItems(out, doc Document, limit int, collected *int) bool {
	for _, key := range itemKeys {
		items, ok := doc[key].([]interface{})
		if !ok {
			continue
		}

		dest, _ := out[key].([]interface{})
		if dest == nil {
			dest = []interface{}{}
		}

		for _, item := range items {
			if limit >= 0 && *collected >= limit {
				break
			}

			dest = append(dest, item)
			*collected++
		}

		out[key] = dest
	}

	return limit >= 0 && *collected >= limit
}

// isAbsoluteURL reports whether link is a followable next_page URL. Anything
// else ends pagination rather than being sent back to the API.
func isAbsoluteURL(link string) bool {
	u, err := url.Parse(link)

	return err == nil && u.Scheme != "" && u.Host != ""
}

func isItemKey(key string) bool {
	for _, k := range itemKeys {
		if key == k {
			return true
		}
	}

	return false
}
