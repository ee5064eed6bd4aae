package sqlite_test

import (
	"context"
	"testing"

	"github.com/abrsjh/harvest"
	"github.com/abrsjh/harvest/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustOpenDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestRecordStore(t *testing.T) {
	t.Parallel()

	t.Run("stores and reads back records", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		store := sqlite.NewRecordStore(db, harvest.KindEcommerce, false)
		ctx := context.Background()

		err := store.Write(ctx, []harvest.Record{
			{"name": "Widget", "price": 9.99, "url": "https://example.com/widget", "scraped_at": "2024-01-01T10:00:00Z"},
			{"name": "Gadget", "price": 19.99, "url": "https://example.com/gadget", "scraped_at": "2024-01-01T10:01:00Z"},
		})
		require.NoError(t, err)

		records, err := store.Read(ctx)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "Widget", records[0].String("name"))
		assert.Equal(t, "Gadget", records[1].String("name"))
	})

	t.Run("deduplicates identical records", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		store := sqlite.NewRecordStore(db, harvest.KindEcommerce, true)
		ctx := context.Background()

		rec := harvest.Record{"name": "Widget", "price": 9.99}
		require.NoError(t, store.Write(ctx, []harvest.Record{rec}))
		require.NoError(t, store.Write(ctx, []harvest.Record{rec.Clone()}))

		count, err := store.CountRecords(ctx, harvest.KindEcommerce)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("replace mode clears previous rows of the same kind", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		ctx := context.Background()

		first := sqlite.NewRecordStore(db, harvest.KindEcommerce, false)
		require.NoError(t, first.Write(ctx, []harvest.Record{{"name": "Old"}}))

		second := sqlite.NewRecordStore(db, harvest.KindEcommerce, false)
		require.NoError(t, second.Write(ctx, []harvest.Record{{"name": "New"}}))

		records, err := second.Read(ctx)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "New", records[0].String("name"))
	})

	t.Run("replace mode leaves other kinds alone", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		ctx := context.Background()

		businesses := sqlite.NewRecordStore(db, harvest.KindBusiness, false)
		require.NoError(t, businesses.Write(ctx, []harvest.Record{{"name": "Acme Corp"}}))

		products := sqlite.NewRecordStore(db, harvest.KindEcommerce, false)
		require.NoError(t, products.Write(ctx, []harvest.Record{{"name": "Widget"}}))

		kept, err := businesses.Read(ctx)
		require.NoError(t, err)
		require.Len(t, kept, 1)
		assert.Equal(t, "Acme Corp", kept[0].String("name"))
	})

	t.Run("append mode keeps previous rows", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		ctx := context.Background()

		first := sqlite.NewRecordStore(db, harvest.KindEcommerce, true)
		require.NoError(t, first.Write(ctx, []harvest.Record{{"name": "Old"}}))

		second := sqlite.NewRecordStore(db, harvest.KindEcommerce, true)
		require.NoError(t, second.Write(ctx, []harvest.Record{{"name": "New"}}))

		records, err := second.Read(ctx)
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("finds records by filter", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		store := sqlite.NewRecordStore(db, harvest.KindBusiness, false)
		ctx := context.Background()

		require.NoError(t, store.Write(ctx, []harvest.Record{
			{"name": "Acme Corp", "url": "https://acme.example.com", "scraped_at": "2024-01-01T10:00:00Z"},
			{"name": "Globex", "url": "https://globex.example.com", "scraped_at": "2024-01-02T10:00:00Z"},
		}))

		kind := harvest.KindBusiness
		stored, err := store.FindRecords(ctx, sqlite.RecordFilter{Kind: &kind})
		require.NoError(t, err)
		require.Len(t, stored, 2)

		// Newest first.
		assert.Equal(t, "Globex", stored[0].Record.String("name"))
		assert.Equal(t, "https://globex.example.com", stored[0].SourceURL)
		assert.NotEmpty(t, stored[0].ID)
		assert.NotEmpty(t, stored[0].ContentHash)
		assert.Equal(t, 2024, stored[0].ScrapedAt.Year())

		url := "https://acme.example.com"
		stored, err = store.FindRecords(ctx, sqlite.RecordFilter{SourceURL: &url})
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, "Acme Corp", stored[0].Record.String("name"))

		stored, err = store.FindRecords(ctx, sqlite.RecordFilter{Limit: 1})
		require.NoError(t, err)
		assert.Len(t, stored, 1)
	})
}
