package segment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(DefaultConfig())
	require.NoError(t, err)
	return e
}

func TestIsCorrupted(t *testing.T) {
	e := newTestEngine(t)

	t.Run("clean_prose", func(t *testing.T) {
		text := strings.Repeat("Die Lernplattform wurde im Wintersemester evaluiert. ", 50)
		assert.False(t, e.IsCorrupted(text))
	})

	t.Run("empty_text", func(t *testing.T) {
		assert.True(t, e.IsCorrupted(""))
	})

	t.Run("low_alphabetic_ratio", func(t *testing.T) {
		// 10% alphabetic over 2200 characters, as produced by a missing
		// CMap.
		text := strings.Repeat("a....!!%%&", 220)
		assert.True(t, e.IsCorrupted(text))
	})

	t.Run("control_characters", func(t *testing.T) {
		// 40% control characters, alphabetic ratio still above the gate.
		text := strings.Repeat("abcdef\x01\x02\x03\x04", 200)
		assert.True(t, e.IsCorrupted(text))
	})

	t.Run("newlines_and_tabs_are_not_control", func(t *testing.T) {
		text := strings.Repeat("Kurze Zeile\n\tEingerückt\r\n", 80)
		assert.False(t, e.IsCorrupted(text))
	})

	t.Run("letter_digit_transitions", func(t *testing.T) {
		text := strings.Repeat("a1b2c3d4e5 ", 200)
		assert.True(t, e.IsCorrupted(text))
	})

	t.Run("forbidden_code_point", func(t *testing.T) {
		text := "Ordinary text with one broken glyph \u0081 in the middle. " +
			strings.Repeat("More ordinary text follows here. ", 20)
		assert.True(t, e.IsCorrupted(text))
	})

	t.Run("unusual_punctuation", func(t *testing.T) {
		text := strings.Repeat("abcdefg;;= ", 200)
		assert.True(t, e.IsCorrupted(text))
	})

	t.Run("only_leading_sample_is_inspected", func(t *testing.T) {
		clean := strings.Repeat("Der Abschnitt beschreibt die Methode im Detail. ", 50)
		garbage := strings.Repeat("\x01\x02\x03\x04", 500)
		require.Greater(t, len([]rune(clean)), DefaultConfig().Corruption.SampleSize)
		assert.False(t, e.IsCorrupted(clean+garbage))
	})

	t.Run("thresholds_are_tunable", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Corruption.MinAlphaRatio = 0.05
		loose, err := New(cfg)
		require.NoError(t, err)

		text := strings.Repeat("a....!!%%&", 220)
		assert.True(t, e.IsCorrupted(text))
		assert.False(t, loose.IsCorrupted(text))
	})
}

func TestCorruptionGateIsAbsolute(t *testing.T) {
	e := newTestEngine(t)
	garbled := strings.Repeat("a....!!%%&", 220)

	_, err := e.ExtractMainContent(garbled)
	assert.ErrorIs(t, err, ErrCorrupted)
	_, err = e.ExtractReferences(garbled)
	assert.ErrorIs(t, err, ErrCorrupted)
	_, err = e.ExtractTitle(garbled)
	assert.ErrorIs(t, err, ErrCorrupted)
	_, err = e.ExtractAuthors(garbled)
	assert.ErrorIs(t, err, ErrCorrupted)
	_, err = e.LocateMainContent(garbled)
	assert.ErrorIs(t, err, ErrCorrupted)
}
