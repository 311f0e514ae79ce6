package segment

// Config carries the tunable knobs of the engine. The defaults are tuned
// for German/English conference proceedings; other corpora may need
// different corruption thresholds, so everything here can be overridden
// from a YAML config file.
type Config struct {
	Corruption CorruptionConfig `yaml:"corruption"`
	Title      TitleConfig      `yaml:"title"`
	Vocabulary Vocabulary       `yaml:"vocabulary"`
}

// CorruptionConfig holds the thresholds of the garbled-text gate.
type CorruptionConfig struct {
	// SampleSize is how many leading characters are inspected.
	// Corruption from a broken CMap is uniform, so sampling the head
	// is enough.
	SampleSize int `yaml:"sample_size"`
	// MinAlphaRatio is the minimum share of alphabetic characters.
	MinAlphaRatio float64 `yaml:"min_alpha_ratio"`
	// MaxControlRatio is the maximum share of control characters
	// (newline, carriage return and tab excluded).
	MaxControlRatio float64 `yaml:"max_control_ratio"`
	// MaxTransitionRatio is the maximum share of letter/digit
	// adjacencies, a signature of shifted character maps.
	MaxTransitionRatio float64 `yaml:"max_transition_ratio"`
	// MaxPunctRatio is the maximum share of '=' and ';' characters.
	MaxPunctRatio float64 `yaml:"max_punct_ratio"`
}

// TitleConfig bounds the title segmenter.
type TitleConfig struct {
	// MaxLines is the maximum number of lines a title may span.
	MaxLines int `yaml:"max_lines"`
	// MaxChars is the size of the leading window searched for the title.
	MaxChars int `yaml:"max_chars"`
}

// DefaultConfig returns the configuration tuned on DeLFI/LNI proceedings
// (German/English CS papers, 40-60% alphabetic text).
func DefaultConfig() Config {
	return Config{
		Corruption: CorruptionConfig{
			SampleSize:         2000,
			MinAlphaRatio:      0.30,
			MaxControlRatio:    0.20,
			MaxTransitionRatio: 0.15,
			MaxPunctRatio:      0.03,
		},
		Title: TitleConfig{
			MaxLines: 5,
			MaxChars: 800,
		},
		Vocabulary: DefaultVocabulary(),
	}
}
