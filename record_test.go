package harvest_test

import (
	"testing"

	"github.com/abrsjh/harvest"
	"github.com/stretchr/testify/assert"
)

func TestRecordMerge(t *testing.T) {
	t.Parallel()

	listing := harvest.Record{"title": "Widget review", "url": "https://blog.acme.io/widget", "content": ""}
	detail := harvest.Record{"title": "Widget review, full", "content": "Full body text", "author": "J. Doe"}

	listing.Merge(detail)

	assert.Equal(t, "Widget review", listing.String("title"), "existing value wins")
	assert.Equal(t, "Full body text", listing.String("content"), "empty string is filled")
	assert.Equal(t, "J. Doe", listing.String("author"), "missing field is filled")
	assert.Equal(t, "https://blog.acme.io/widget", listing.String("url"))
}

func TestRecordAccessors(t *testing.T) {
	t.Parallel()

	r := harvest.Record{"name": "Widget", "price": 19.99, "images": []string{"a.jpg"}}
	assert.Equal(t, "Widget", r.String("name"))
	assert.Equal(t, "", r.String("price"), "non-string yields empty")
	assert.Equal(t, "", r.String("missing"))
	assert.True(t, r.Has("price"))
	assert.False(t, r.Has("missing"))

	c := r.Clone()
	c["name"] = "Gadget"
	assert.Equal(t, "Widget", r.String("name"))
}

func TestProfile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind     harvest.Kind
		identity string
		key      string
	}{
		{harvest.KindEcommerce, "name", "product_container"},
		{harvest.KindBusiness, "name", "business_container"},
		{harvest.KindContent, "title", "article_container"},
	}
	for _, tt := range tests {
		p := harvest.Profile(tt.kind)
		assert.Equal(t, tt.kind, p.Kind)
		assert.Equal(t, tt.identity, p.IdentityField)
		assert.Equal(t, tt.key, p.ContainerKey)
		assert.NotEmpty(t, p.ContainerSelectors)
		assert.NotEmpty(t, p.ClassKeywords)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	base := func() *harvest.Config {
		c := &harvest.Config{
			Kind: harvest.KindEcommerce,
			URLs: []string{"https://shop.acme.io/products"},
			Output: harvest.Output{
				Format: harvest.FormatJSON,
				Path:   "out.json",
			},
		}
		c.Normalize()
		return c
	}

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, base().Validate())
	})

	t.Run("no URLs", func(t *testing.T) {
		t.Parallel()
		c := base()
		c.URLs = nil
		assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(c.Validate()))
	})

	t.Run("bad URL", func(t *testing.T) {
		t.Parallel()
		c := base()
		c.URLs = []string{"not a url"}
		assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(c.Validate()))
	})

	t.Run("localhost and IP targets accepted", func(t *testing.T) {
		t.Parallel()
		c := base()
		c.URLs = []string{"http://localhost:3000/catalog", "http://127.0.0.1:8080/catalog"}
		assert.NoError(t, c.Validate())
	})

	t.Run("bad rotation policy", func(t *testing.T) {
		t.Parallel()
		c := base()
		c.RotateUA = "shuffled"
		assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(c.Validate()))
	})

	t.Run("bad format", func(t *testing.T) {
		t.Parallel()
		c := base()
		c.Output.Format = "xml"
		assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(c.Validate()))
	})

	t.Run("missing output path", func(t *testing.T) {
		t.Parallel()
		c := base()
		c.Output.Path = ""
		assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(c.Validate()))
	})
}

func TestConfigNormalize(t *testing.T) {
	t.Parallel()

	c := &harvest.Config{URLs: []string{"https://acme.io"}}
	c.Normalize()

	assert.Equal(t, harvest.KindEcommerce, c.Kind)
	assert.Equal(t, harvest.Duration(harvest.DefaultTimeout), c.Timeout)
	assert.Equal(t, harvest.DefaultRetries, c.Retries)
	assert.Equal(t, harvest.DefaultMaxPages, c.MaxPages)
	assert.Equal(t, harvest.DefaultConcurrency, c.Concurrency)
	assert.Equal(t, harvest.FormatJSON, c.Output.Format)
}
