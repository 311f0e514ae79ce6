// Package segment locates the structural parts of a paper inside raw
// linearized PDF text: where the main body starts, where the bibliography
// begins, and what the title is when no metadata exists. Everything works
// on plain strings with hand-tuned patterns for German/English proceedings;
// there is no layout or geometry analysis.
//
// The engine never guesses. Garbled input and undetectable structure are
// reported as distinct sentinel errors so a batch pipeline can tell a
// broken PDF from a clean paper with an unusual layout.
package segment

import "errors"

var (
	// ErrCorrupted means the extracted text is garbled (broken CMap or
	// font encoding upstream) and no pattern matching was attempted.
	ErrCorrupted = errors.New("segment: corrupted text")
	// ErrNoStructure means the text is clean but no start-of-content
	// heuristic matched. Such papers need manual review.
	ErrNoStructure = errors.New("segment: no document structure detected")
	// ErrNoReferences means no bibliography heading validated.
	ErrNoReferences = errors.New("segment: no references section found")
	// ErrNoTitle means no title lines could be collected.
	ErrNoTitle = errors.New("segment: no title found")
	// ErrNoAuthors means the front matter ended without a recognizable
	// author byline.
	ErrNoAuthors = errors.New("segment: no author byline found")
)

// Span is a half-open character range [Start, End) over a document.
type Span struct {
	Start int
	End   int
}

// Engine runs the segmentation heuristics. It is immutable after New and
// safe for concurrent use across documents.
type Engine struct {
	cfg Config
	pat *patterns
}

// New compiles the vocabulary of cfg into an Engine. It fails only when a
// user-supplied vocabulary entry produces an invalid pattern.
func New(cfg Config) (*Engine, error) {
	if cfg.Corruption.SampleSize <= 0 {
		cfg.Corruption.SampleSize = DefaultConfig().Corruption.SampleSize
	}
	if cfg.Title.MaxLines <= 0 {
		cfg.Title.MaxLines = DefaultConfig().Title.MaxLines
	}
	if cfg.Title.MaxChars <= 0 {
		cfg.Title.MaxChars = DefaultConfig().Title.MaxChars
	}
	cfg.Vocabulary = cfg.Vocabulary.withDefaults()
	pat, err := compile(cfg.Vocabulary)
	if err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg, pat: pat}, nil
}

// MustNew is New for configurations known to be valid, such as
// DefaultConfig.
func MustNew(cfg Config) *Engine {
	e, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return e
}
