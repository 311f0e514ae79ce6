package paperdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "papers.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.CreateSchema(context.Background()))
	return store
}

func strPtr(s string) *string { return &s }

func testPaper(title, filename string, year int) Paper {
	return Paper{
		Title:    title,
		Authors:  "Max Mustermann",
		Year:     year,
		Text:     "1 Einleitung\nDer Haupttext.",
		Filename: filename,
	}
}

func TestInsertPapers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("inserts_and_counts", func(t *testing.T) {
		papers := []Paper{
			testPaper("Erstes Papier", "a.pdf", 2019),
			testPaper("Zweites Papier", "b.pdf", 2019),
			testPaper("Drittes Papier", "c.pdf", 2020),
		}
		papers[0].References = strPtr("[Ka93] Kaufmann: Ein Titel, 1993.")

		res, err := store.InsertPapers(ctx, papers)
		require.NoError(t, err)
		assert.Equal(t, 3, res.Inserted)
		assert.Empty(t, res.Skipped)

		n, err := store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		counts, err := store.CountByYear(ctx)
		require.NoError(t, err)
		assert.Equal(t, []YearCount{{Year: 2019, Count: 2}, {Year: 2020, Count: 1}}, counts)
	})

	t.Run("duplicate_title_is_skipped_not_fatal", func(t *testing.T) {
		res, err := store.InsertPapers(ctx, []Paper{
			testPaper("Erstes Papier", "other.pdf", 2021),
			testPaper("Viertes Papier", "d.pdf", 2021),
		})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Inserted)
		require.Len(t, res.Skipped, 1)
		assert.Equal(t, "Erstes Papier", res.Skipped[0].Title)

		n, err := store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 4, n)
	})

	t.Run("duplicate_year_filename_is_skipped", func(t *testing.T) {
		res, err := store.InsertPapers(ctx, []Paper{
			testPaper("Fünftes Papier", "d.pdf", 2021),
		})
		require.NoError(t, err)
		assert.Equal(t, 0, res.Inserted)
		assert.Len(t, res.Skipped, 1)
	})
}

func TestPaperValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Paper)
	}{
		{"empty_title", func(p *Paper) { p.Title = " " }},
		{"empty_authors", func(p *Paper) { p.Authors = "" }},
		{"missing_year", func(p *Paper) { p.Year = 0 }},
		{"empty_text", func(p *Paper) { p.Text = "" }},
		{"empty_filename", func(p *Paper) { p.Filename = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := testPaper("Ein Papier", "a.pdf", 2019)
			tc.mutate(&p)
			assert.Error(t, p.Validate())
		})
	}

	p := testPaper("Ein Papier", "a.pdf", 2019)
	assert.NoError(t, p.Validate())
}
