package pexels

import (
	"sort"
	"strings"
)

// fieldGroup expands a shorthand selector into the item keys matching its
// predicate.
type fieldGroup struct {
	name    string
	matches func(key string) bool
}

// fieldGroups maps the supported shorthand selectors. @all is handled
// separately as an identity projection.
var fieldGroups = []fieldGroup{
	{
		name: "@ids",
		matches: func(key string) bool {
			return key == "id" || key == "ids" || strings.HasSuffix(key, "_id")
		},
	},
	{
		name: "@urls",
		matches: func(key string) bool {
			return strings.Contains(key, "url") ||
				strings.Contains(key, "link") ||
				strings.Contains(key, "href")
		},
	},
	{
		name: "@files",
		matches: func(key string) bool {
			return key == "video_files" || key == "src"
		},
	},
	{
		name: "@thumbnails",
		matches: func(key string) bool {
			return key == "image" || key == "thumbnail" || key == "thumb" || key == "tiny"
		},
	},
}

// fallbackFields is the priority order used when a projection selects
// nothing from an item.
var fallbackFields = []string{"id", "url", "photographer", "alt", "title", "description", "duration"}

// ParseFields splits repeated --fields values into individual path
// selectors, tolerating comma-separated lists and stray whitespace.
func ParseFields(specs []string) []string {
	var fields []string

	for _, spec := range specs {
		for _, part := range strings.Split(spec, ",") {
			if field := strings.TrimSpace(part); field != "" {
				fields = append(fields, field)
			}
		}
	}

	return fields
}

// Project extracts the given dot-path selectors from a document, re-nesting
// each extracted value under its original path. Missing paths and type
// mismatches are silently skipped.
func Project(doc Document, paths []string) Document {
	out := Document{}

	for _, path := range paths {
		segments := strings.Split(path, ".")

		value := extract(doc, segments)
		if value == nil {
			continue
		}

		mergeShallow(out, makeNested(segments, value))
	}

	return out
}

// ProjectItem projects a single item, expanding shorthand groups against the
// item's own keys. An empty selection falls back to a small identifying
// subset so output is never an empty object.
func ProjectItem(item Document, fields []string) Document {
	expanded, identity := expandGroups(item, fields)
	if identity {
		return item
	}

	out := Project(item, expanded)
	if len(out) > 0 {
		return out
	}

	return fallback(item)
}

// ProjectItems projects every document in a result array. Non-object entries
// pass through untouched.
func ProjectItems(items []interface{}, fields []string) []interface{} {
	out := make([]interface{}, 0, len(items))

	for _, item := range items {
		doc, ok := item.(Document)
		if !ok {
			out = append(out, item)

			continue
		}

		out = append(out, ProjectItem(doc, fields))
	}

	return out
}

// expandGroups resolves shorthand selectors against the item's keys. It
// reports identity=true when the selection means the whole item (@all or an
// empty field list).
func expandGroups(item Document, fields []string) (expanded []string, identity bool) {
	if len(fields) == 0 {
		return nil, true
	}

	for _, field := range fields {
		if field == "@all" {
			return nil, true
		}

		if !strings.HasPrefix(field, "@") {
			expanded = append(expanded, field)

			continue
		}

		for _, group := range fieldGroups {
			if group.name != field {
				continue
			}

			for _, key := range sortedKeys(item) {
				if group.matches(key) {
					expanded = append(expanded, key)
				}
			}
		}
	}

	return expanded, false
}

// extract walks a document along path segments. A segment suffixed with
// `[*]` names an array field and maps the remaining path over its elements.
// Bare wildcards and array indexing are unsupported and yield nil, as does
// any miss or type mismatch along the way; a digit-named segment still
// resolves a literal object key.
func extract(value interface{}, segments []string) interface{} {
	if len(segments) == 0 {
		return value
	}

	doc, ok := value.(Document)
	if !ok {
		return nil
	}

	segment := segments[0]
	if segment == "*" {
		return nil
	}

	if key, wildcard := strings.CutSuffix(segment, "[*]"); wildcard {
		array, ok := doc[key].([]interface{})
		if !ok {
			return nil
		}

		mapped := make([]interface{}, 0, len(array))
		for _, element := range array {
			mapped = append(mapped, extract(element, segments[1:]))
		}

		return mapped
	}

	next, ok := doc[segment]
	if !ok {
		return nil
	}

	return extract(next, segments[1:])
}

// makeNested rebuilds the path structure around an extracted value using the
// raw segments, so a wildcard selector like `video_files[*].link` lands
// under the literal `video_files[*]` key.
func makeNested(segments []string, value interface{}) Document {
	out := Document{segments[len(segments)-1]: value}

	for i := len(segments) - 2; i >= 0; i-- {
		out = Document{segments[i]: out}
	}

	return out
}

// mergeShallow merges src into dst one level deep, right-biased: every
// non-nil source key overwrites the destination, so a later selector wins
// outright on conflict.
func mergeShallow(dst, src Document) {
	for key, srcValue := range src {
		if srcValue == nil {
			continue
		}

		dst[key] = srcValue
	}
}

// fallback builds a minimal identifying projection for items where the
// requested fields selected nothing: every present priority field, else the
// first scalar field.
func fallback(item Document) Document {
	out := Document{}

	for _, key := range fallbackFields {
		if value, ok := item[key]; ok {
			out[key] = value
		}
	}

	if len(out) > 0 {
		return out
	}

	for _, key := range sortedKeys(item) {
		if isScalar(item[key]) {
			return Document{key: item[key]}
		}
	}

	return out
}

func sortedKeys(doc Document) []string {
	keys := make([]string, 0, len(doc))
	for key := range doc {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

func isScalar(value interface{}) bool {
	switch value.(type) {
	case string, float64, bool, int, int64:
		return true
	default:
		return false
	}
}
