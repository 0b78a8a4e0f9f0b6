package pexels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectSimplePaths(t *testing.T) {
	t.Parallel()

	doc := Document{
		"id":           float64(100),
		"photographer": "Ana Torres",
		"src":          Document{"original": "https://images.pexels.com/100.jpg", "tiny": "https://images.pexels.com/100-tiny.jpg"},
	}

	out := Project(doc, []string{"id", "src.original"})

	assert.Equal(t, Document{
		"id":  float64(100),
		"src": Document{"original": "https://images.pexels.com/100.jpg"},
	}, out)
}

func TestProjectMissingPathIsSilent(t *testing.T) {
	t.Parallel()

	out := Project(Document{"id": float64(1)}, []string{"nope", "src.missing", "id.not_an_object"})
	assert.Equal(t, Document{}, out)
}

func TestProjectWildcardMapsOverArray(t *testing.T) {
	t.Parallel()

	doc := Document{
		"video_files": []interface{}{
			Document{"link": "a.mp4", "quality": "hd"},
			Document{"link": "b.mp4", "quality": "sd"},
			"not an object",
		},
	}

	out := Project(doc, []string{"video_files[*].link"})

	assert.Equal(t, Document{
		"video_files[*]": Document{
			"link": []interface{}{"a.mp4", "b.mp4", nil},
		},
	}, out)
}

func TestProjectUnsupportedWildcardForms(t *testing.T) {
	t.Parallel()

	doc := Document{"files": []interface{}{Document{"link": "a"}}}

	assert.Equal(t, Document{}, Project(doc, []string{"files.0.link"}))
	assert.Equal(t, Document{}, Project(doc, []string{"files.*.link"}))
}

func TestProjectDigitSegmentResolvesObjectKey(t *testing.T) {
	t.Parallel()

	doc := Document{"errors": Document{"0": "bad request"}}

	out := Project(doc, []string{"errors.0"})

	assert.Equal(t, Document{"errors": Document{"0": "bad request"}}, out)
}

func TestProjectLaterSelectorWins(t *testing.T) {
	t.Parallel()

	doc := Document{
		"src": Document{"original": "o.jpg", "tiny": "t.jpg", "large": "l.jpg"},
	}

	out := Project(doc, []string{"src", "src.tiny"})

	assert.Equal(t, Document{
		"src": Document{"tiny": "t.jpg"},
	}, out)

	out = Project(doc, []string{"src.tiny", "src"})

	assert.Equal(t, Document{
		"src": Document{"original": "o.jpg", "tiny": "t.jpg", "large": "l.jpg"},
	}, out)
}

func TestProjectItemShorthandGroups(t *testing.T) {
	t.Parallel()

	item := Document{
		"id":            float64(7),
		"album_id":      float64(3),
		"url":           "https://www.pexels.com/photo/7",
		"download_link": "https://images.pexels.com/7.jpg",
		"photographer":  "Ana Torres",
		"src":           Document{"original": "o.jpg"},
		"image":         "thumb.jpg",
	}

	tests := []struct {
		name   string
		fields []string
		want   []string
	}{
		{name: "ids", fields: []string{"@ids"}, want: []string{"album_id", "id"}},
		{name: "urls", fields: []string{"@urls"}, want: []string{"download_link", "url"}},
		{name: "files", fields: []string{"@files"}, want: []string{"src"}},
		{name: "thumbnails", fields: []string{"@thumbnails"}, want: []string{"image"}},
		{name: "mixed shorthand and path", fields: []string{"@ids", "photographer"}, want: []string{"album_id", "id", "photographer"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := ProjectItem(item, tt.fields)

			keys := make([]string, 0, len(out))
			for key := range out {
				keys = append(keys, key)
			}

			assert.ElementsMatch(t, tt.want, keys)
		})
	}
}

func TestProjectItemAllIsIdentity(t *testing.T) {
	t.Parallel()

	item := Document{"id": float64(1), "nested": Document{"deep": true}}

	assert.Equal(t, item, ProjectItem(item, []string{"@all"}))
	assert.Equal(t, item, ProjectItem(item, nil))
}

func TestProjectItemFallback(t *testing.T) {
	t.Parallel()

	t.Run("all present priority fields", func(t *testing.T) {
		t.Parallel()

		item := Document{
			"id":           float64(42),
			"url":          "https://www.pexels.com/photo/42",
			"photographer": "Ana Torres",
			"width":        float64(100),
		}
		out := ProjectItem(item, []string{"no_such_field"})
		assert.Equal(t, Document{
			"id":           float64(42),
			"url":          "https://www.pexels.com/photo/42",
			"photographer": "Ana Torres",
		}, out)
	})

	t.Run("first scalar by key order", func(t *testing.T) {
		t.Parallel()

		item := Document{"zeta": "z", "beta": "b", "nested": Document{}}
		out := ProjectItem(item, []string{"no_such_field"})
		assert.Equal(t, Document{"beta": "b"}, out)
	})

	t.Run("nothing usable", func(t *testing.T) {
		t.Parallel()

		item := Document{"nested": Document{}}
		out := ProjectItem(item, []string{"no_such_field"})
		assert.Equal(t, Document{}, out)
	})
}

func TestProjectItemsPassesThroughNonObjects(t *testing.T) {
	t.Parallel()

	items := []interface{}{
		Document{"id": float64(1), "width": float64(10)},
		"loose string",
	}

	out := ProjectItems(items, []string{"id"})

	require.Len(t, out, 2)
	assert.Equal(t, Document{"id": float64(1)}, out[0])
	assert.Equal(t, "loose string", out[1])
}

func TestParseFields(t *testing.T) {
	t.Parallel()

	fields := ParseFields([]string{"id, photographer", "src.original", " ", ""})
	assert.Equal(t, []string{"id", "photographer", "src.original"}, fields)
}
