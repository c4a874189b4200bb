package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanJSONLD_FlattensGraph(t *testing.T) {
	doc := docFromHTML(t, `<html><head>
		<script type="application/ld+json">
		{
			"@graph": [
				{"@type": "WebPage", "name": "page"},
				{"@type": "Product", "name": "Stove"}
			]
		}
		</script>
	</head></html>`)

	objects := scanJSONLD(doc)
	require.Len(t, objects, 2)
	assert.True(t, hasType(objects[1], "Product"))
}

func TestScanJSONLD_SkipsBrokenBlocks(t *testing.T) {
	doc := docFromHTML(t, `<html><head>
		<script type="application/ld+json">{broken</script>
		<script type="application/ld+json">{"@type": "Product", "name": "Stove"}</script>
	</head></html>`)

	objects := scanJSONLD(doc)
	require.Len(t, objects, 1)
	assert.Equal(t, "Stove", stringField(objects[0], "name"))
}

func TestHasType(t *testing.T) {
	assert.True(t, hasType(map[string]any{"@type": "product"}, "Product"))
	assert.True(t, hasType(map[string]any{"@type": []any{"Thing", "Product"}}, "Product"))
	assert.False(t, hasType(map[string]any{"@type": "Review"}, "Product"))
	assert.False(t, hasType(map[string]any{}, "Product"))
}

func TestAsString(t *testing.T) {
	assert.Equal(t, "plain", asString("  plain "))
	assert.Equal(t, "first", asString([]any{"first", "second"}))
	assert.Equal(t, "https://cdn.example.com/a.jpg", asString(map[string]any{"url": "https://cdn.example.com/a.jpg"}))
	assert.Equal(t, "Ann", asString(map[string]any{"@type": "Person", "name": "Ann"}))
	assert.Empty(t, asString(42.0))
	assert.Empty(t, asString(nil))
}

func TestAsNumber(t *testing.T) {
	assert.Equal(t, 4.5, asNumber(4.5))
	assert.Equal(t, 4.5, asNumber("4,5"))
	assert.Equal(t, 0.0, asNumber(nil))
}
