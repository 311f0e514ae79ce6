package segment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMainContent(t *testing.T) {
	e := newTestEngine(t)

	t.Run("numbered_introduction_with_references", func(t *testing.T) {
		text := "1 Introduction\nBody text here.\nReferences\n[AB12] Some citation."
		got, err := e.ExtractMainContent(text)
		require.NoError(t, err)
		assert.Equal(t, "1 Introduction\nBody text here.\n", got)
	})

	t.Run("numbered_introduction_heading_forms", func(t *testing.T) {
		cases := []struct {
			name    string
			heading string
		}{
			{"same_line", "1 Einleitung"},
			{"dotted", "1. Introduction"},
			{"colon", "1: Hintergrund"},
			{"next_line", "1\nEinleitung"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				text := "Titel des Papiers\nAutorenzeile hier\n" + tc.heading + "\nDer Haupttext beginnt."
				span, err := e.LocateMainContent(text)
				require.NoError(t, err)
				assert.Equal(t, strings.Index(text, tc.heading), span.Start)
				assert.Equal(t, len(text), span.End)
			})
		}
	})

	t.Run("priority_order_beats_document_order", func(t *testing.T) {
		// A numbered arbitrary heading appears first, a numbered
		// introduction later. The introduction wins regardless of
		// position.
		text := "1 Zwei Traditionen\nEin Absatz davor.\n1 Introduction\nDer eigentliche Text."
		span, err := e.LocateMainContent(text)
		require.NoError(t, err)
		assert.Equal(t, strings.Index(text, "1 Introduction"), span.Start)
	})

	t.Run("bare_introduction_near_abstract", func(t *testing.T) {
		text := "Ein Papiertitel\nAbstract: Dieses Papier beschreibt ein System.\nEinleitung\nDer Text beginnt hier."
		span, err := e.LocateMainContent(text)
		require.NoError(t, err)
		assert.Equal(t, strings.Index(text, "Einleitung"), span.Start)
	})

	t.Run("after_abstract_paragraph_break", func(t *testing.T) {
		text := "Ein Papiertitel\nAbstract: Kurzer Abstract ohne weitere Struktur.\n\nDer Haupttext beginnt mit einem Absatz."
		span, err := e.LocateMainContent(text)
		require.NoError(t, err)
		assert.Equal(t, strings.Index(text, "Der Haupttext"), span.Start)
	})

	t.Run("after_abstract_skips_keyword_heading_break", func(t *testing.T) {
		// The blank-line strategy must not stop at a keywords block even
		// though it looks like a paragraph break. With a keywords label
		// present the below-abstract locator is skipped entirely and the
		// below-keywords locator takes over.
		text := "Abstract: Kurzer Abstract.\n\nKeywords: Lernen, Systeme\n\nBeginn des Haupttexts."
		span, err := e.LocateMainContent(text)
		require.NoError(t, err)
		got := strings.TrimSpace(text[span.Start:span.End])
		assert.Equal(t, "Beginn des Haupttexts.", got)
	})

	t.Run("after_abstract_sentence_break_past_minimum", func(t *testing.T) {
		abstract := strings.Repeat("Dieser Satz gehört noch zum Abstract und endet hier. ", 10)
		require.Greater(t, len(abstract), 400)
		text := "Zusammenfassung: " + abstract + "Schluss.\nDann beginnt der eigentliche Text."
		span, err := e.LocateMainContent(text)
		require.NoError(t, err)
		assert.Equal(t, strings.Index(text, "Dann beginnt"), span.Start)
	})

	t.Run("after_abstract_sentence_break_short_fallback", func(t *testing.T) {
		text := "Kurzfassung: Sehr kurz.\nDann folgt der Text ohne Absatz."
		span, err := e.LocateMainContent(text)
		require.NoError(t, err)
		assert.Equal(t, strings.Index(text, "Dann folgt"), span.Start)
	})

	t.Run("numbered_arbitrary_title", func(t *testing.T) {
		text := "Ein Papiertitel\nNoch eine Zeile davor\n1 Two Traditions\nBody follows here."
		span, err := e.LocateMainContent(text)
		require.NoError(t, err)
		assert.Equal(t, strings.Index(text, "1 Two Traditions"), span.Start)
	})

	t.Run("no_structure_is_reported_not_guessed", func(t *testing.T) {
		text := "Nur Fließtext ohne jede Struktur\nund weitere Zeilen mit Prosa\nohne Überschriften darin."
		_, err := e.LocateMainContent(text)
		assert.ErrorIs(t, err, ErrNoStructure)
	})

	t.Run("references_keyword_in_first_half_does_not_truncate", func(t *testing.T) {
		// "Literatur" early in the body is prose, not a heading; the
		// span must run to the end of the document.
		body := strings.Repeat("Inhalte aus Vorlesungen und Literatur werden genutzt. ", 20)
		text := "1 Einleitung\n" + body
		span, err := e.LocateMainContent(text)
		require.NoError(t, err)
		assert.Equal(t, len(text), span.End)
	})

	t.Run("span_is_contained_and_ordered", func(t *testing.T) {
		text := "1 Introduction\nBody text here.\nReferences\n[AB12] Some citation."
		span, err := e.LocateMainContent(text)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, span.Start, 0)
		assert.LessOrEqual(t, span.Start, span.End)
		assert.LessOrEqual(t, span.End, len(text))
	})

	t.Run("idempotent", func(t *testing.T) {
		text := "1 Introduction\nBody text here.\nReferences\n[AB12] Some citation."
		first, err := e.ExtractMainContent(text)
		require.NoError(t, err)
		second, err := e.ExtractMainContent(text)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}
