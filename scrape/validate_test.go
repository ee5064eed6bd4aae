package scrape_test

import (
	"testing"

	"github.com/abrsjh/harvest"
	"github.com/abrsjh/harvest/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	profile := harvest.Profile(harvest.KindBusiness)

	t.Run("identityless record dropped", func(t *testing.T) {
		t.Parallel()
		records := scrape.Validate([]harvest.Record{
			{"name": "Kept Co"},
			{"phone": "555-867-5309"},
		}, profile, "", nil)

		require.Len(t, records, 1)
		assert.Equal(t, "Kept Co", records[0].String("name"))
	})

	t.Run("invalid contact fields nulled not dropped", func(t *testing.T) {
		t.Parallel()
		records := scrape.Validate([]harvest.Record{
			{
				"name":    "Acme",
				"email":   "owner@example.com",
				"phone":   "1234567",
				"website": "http://localhost/x",
			},
		}, profile, "", nil)

		require.Len(t, records, 1)
		rec := records[0]
		assert.Nil(t, rec["email"])
		assert.Nil(t, rec["phone"])
		assert.Nil(t, rec["website"])
		assert.Equal(t, "Acme", rec.String("name"))
	})

	t.Run("valid fields untouched", func(t *testing.T) {
		t.Parallel()
		records := scrape.Validate([]harvest.Record{
			{
				"name":    "Acme",
				"email":   "info@acme.io",
				"phone":   "555-867-5309",
				"website": "https://acme.io",
			},
		}, profile, "", nil)

		require.Len(t, records, 1)
		assert.Equal(t, "info@acme.io", records[0].String("email"))
		assert.Equal(t, "555-867-5309", records[0].String("phone"))
		assert.Equal(t, "https://acme.io", records[0].String("website"))
	})

	t.Run("configured country constrains international phones", func(t *testing.T) {
		t.Parallel()
		records := scrape.Validate([]harvest.Record{
			{"name": "Acme US", "phone": "+15558675309"},
			{"name": "Acme UK", "phone": "+445558675309"},
			{"name": "Acme Local", "phone": "555-867-5309"},
		}, profile, "US", nil)

		require.Len(t, records, 3)
		assert.Equal(t, "+15558675309", records[0].String("phone"))
		assert.Nil(t, records[1]["phone"], "wrong calling code for the configured country")
		assert.Equal(t, "555-867-5309", records[2].String("phone"), "local numbers pass")
	})
}
