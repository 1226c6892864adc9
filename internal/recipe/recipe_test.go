package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/sift"
)

const samplePage = `
<html>
<head><title> Sample Page </title></head>
<body>
	<nav>
		<a href="/home">Home</a>
		<a href="/about">About</a>
		<a>no href</a>
	</nav>
	<span class="price">USD 42</span>
</body>
</html>`

func parsePage(t *testing.T) *sift.Node {
	t.Helper()
	doc, err := sift.Parse(samplePage)
	require.NoError(t, err)
	return doc
}

func TestParseRecipe(t *testing.T) {
	r, err := Parse([]byte(`
fields:
  - name: title
    selector: title
    ops: [trim]
  - name: links
    selector: nav a
    attr: href
    all: true
`))
	require.NoError(t, err)
	require.Len(t, r.Fields, 2)
	assert.Equal(t, "title", r.Fields[0].Name)
	assert.True(t, r.Fields[1].All)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"no fields", `fields: []`},
		{"missing name", "fields:\n  - selector: p"},
		{"missing selector and xpath", "fields:\n  - name: x"},
		{"both selector and xpath", "fields:\n  - name: x\n    selector: p\n    xpath: //p"},
		{"unknown op", "fields:\n  - name: x\n    selector: p\n    ops: [explode]"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			assert.Error(t, err)
		})
	}
}

func TestExtractSingle(t *testing.T) {
	doc := parsePage(t)
	r, err := Parse([]byte(`
fields:
  - name: title
    selector: title
  - name: shout
    selector: title
    ops: [upper]
`))
	require.NoError(t, err)

	out, err := r.Extract(doc)
	require.NoError(t, err)
	assert.Equal(t, "Sample Page", out["title"])
	assert.Equal(t, "SAMPLE PAGE", out["shout"])
}

func TestExtractAll(t *testing.T) {
	doc := parsePage(t)
	r, err := Parse([]byte(`
fields:
  - name: links
    selector: nav a
    attr: href
    all: true
`))
	require.NoError(t, err)

	out, err := r.Extract(doc)
	require.NoError(t, err)

	// The anchor without an href is dropped, not nulled.
	assert.Equal(t, []any{"/home", "/about"}, out["links"])
}

func TestExtractSplitOp(t *testing.T) {
	doc := parsePage(t)
	r, err := Parse([]byte(`
fields:
  - name: price_parts
    selector: .price
    ops: ["split: "]
`))
	require.NoError(t, err)

	out, err := r.Extract(doc)
	require.NoError(t, err)
	assert.Equal(t, []any{"USD", "42"}, out["price_parts"])
}

func TestExtractXPath(t *testing.T) {
	doc := parsePage(t)
	r, err := Parse([]byte(`
fields:
  - name: home
    xpath: //a[@href='/home']
`))
	require.NoError(t, err)

	out, err := r.Extract(doc)
	require.NoError(t, err)
	assert.Equal(t, "Home", out["home"])
}

func TestExtractDefaultAndRequired(t *testing.T) {
	doc := parsePage(t)

	t.Run("default fills missing values", func(t *testing.T) {
		r, err := Parse([]byte(`
fields:
  - name: author
    selector: .author
    default: unknown
`))
		require.NoError(t, err)

		out, err := r.Extract(doc)
		require.NoError(t, err)
		assert.Equal(t, "unknown", out["author"])
	})

	t.Run("missing optional is nil", func(t *testing.T) {
		r, err := Parse([]byte(`
fields:
  - name: author
    selector: .author
`))
		require.NoError(t, err)

		out, err := r.Extract(doc)
		require.NoError(t, err)
		assert.Nil(t, out["author"])
	})

	t.Run("missing required fails", func(t *testing.T) {
		r, err := Parse([]byte(`
fields:
  - name: author
    selector: .author
    required: true
`))
		require.NoError(t, err)

		_, err = r.Extract(doc)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "author")
	})

	t.Run("required all with no matches fails", func(t *testing.T) {
		r, err := Parse([]byte(`
fields:
  - name: images
    selector: img
    attr: src
    all: true
    required: true
`))
		require.NoError(t, err)

		_, err = r.Extract(doc)
		assert.Error(t, err)
	})
}

func TestExtractMissingAttr(t *testing.T) {
	doc := parsePage(t)
	r, err := Parse([]byte(`
fields:
  - name: rel
    selector: nav a
    attr: rel
`))
	require.NoError(t, err)

	out, err := r.Extract(doc)
	require.NoError(t, err)
	assert.Nil(t, out["rel"])
}
