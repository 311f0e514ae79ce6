package segment

// The start of the main body is found by an ordered cascade of locators,
// first match wins. The order is the priority: a numbered introduction
// heading beats every weaker signal even when the weaker one matches
// earlier in the document.
type startLocator struct {
	name   string
	locate func(e *Engine, text string) (int, bool)
}

var startCascade = []startLocator{
	{"numbered-introduction", (*Engine).startNumberedIntro},
	{"bare-introduction", (*Engine).startBareIntro},
	{"after-abstract", (*Engine).startAfterAbstract},
	{"after-keywords", (*Engine).startAfterKeywords},
	{"numbered-any-title", (*Engine).startNumberedAny},
}

// introSearchWindow bounds the region searched for an unnumbered
// introduction keyword, measured from the abstract heading or the
// document start. Keeps "Einführung der Lernplattform" deep in body
// prose from being taken for a heading.
const introSearchWindow = 2000

// LocateMainContent returns the span of the main body: from the first
// recognized content boundary to the start of a validated references
// heading, or to the end of the text when no references are detectable.
// Returns ErrCorrupted on garbled input and ErrNoStructure when no start
// heuristic matches; it never falls back to offset 0, since ingesting
// front matter as body text is worse than flagging the file.
func (e *Engine) LocateMainContent(text string) (Span, error) {
	if e.IsCorrupted(text) {
		return Span{}, ErrCorrupted
	}
	start := -1
	for _, loc := range startCascade {
		if pos, ok := loc.locate(e, text); ok {
			start = pos
			break
		}
	}
	if start < 0 {
		return Span{}, ErrNoStructure
	}
	end := len(text)
	if m, ok := e.findReferencesHeading(text); ok && m.start >= start {
		end = m.start
	}
	return Span{Start: start, End: end}, nil
}

// ExtractMainContent is LocateMainContent applied to the text. The span
// content is returned raw, without normalization.
func (e *Engine) ExtractMainContent(text string) (string, error) {
	span, err := e.LocateMainContent(text)
	if err != nil {
		return "", err
	}
	return text[span.Start:span.End], nil
}

// Priority 1: a numbered introduction/background heading anywhere in the
// document ("1 Introduction", "1\nEinleitung", "1: Hintergrund").
func (e *Engine) startNumberedIntro(text string) (int, bool) {
	for _, re := range e.pat.numberedIntro {
		if m := re.FindStringIndex(text); m != nil {
			return m[0], true
		}
	}
	return 0, false
}

// Priority 2: an unnumbered introduction keyword on a line of its own,
// searched only near the document start (after the abstract heading when
// one exists).
func (e *Engine) startBareIntro(text string) (int, bool) {
	region, offset := text, 0
	if m := e.pat.abstractLabel.FindStringIndex(text); m != nil {
		offset = m[0]
		region = text[m[0]:min(len(text), m[0]+introSearchWindow)]
	} else {
		region = text[:min(len(text), introSearchWindow)]
	}
	for _, re := range e.pat.bareIntro {
		if m := re.FindStringIndex(region); m != nil {
			return offset + m[0], true
		}
	}
	return 0, false
}

// Priority 3: the paragraph following the abstract, for papers that have
// an abstract but neither a keywords block nor a recognizable heading.
// Tried in order: a numbered section after the abstract, a blank-line
// paragraph break (skipping keyword headings), and a sentence-end
// followed by a capital on a fresh line. The last strategy only fires
// past a minimum abstract length so it cannot split the abstract itself,
// with an any-offset fallback for very short abstracts.
func (e *Engine) startAfterAbstract(text string) (int, bool) {
	if e.pat.keywordsLabel.MatchString(text) {
		return 0, false
	}
	m := e.pat.abstractLabel.FindStringIndex(text)
	if m == nil {
		return 0, false
	}
	remaining := text[m[1]:]

	for _, re := range e.pat.numberedAny {
		if mn := re.FindStringIndex(remaining); mn != nil {
			return m[1] + mn[0], true
		}
	}

	// Blank-line paragraph break. RE2 has no lookahead, so keyword
	// headings after the break are filtered here instead of in the
	// pattern.
	for _, pb := range e.pat.paraBreakCap.FindAllStringSubmatchIndex(remaining, -1) {
		capPos := pb[2]
		if !e.pat.keywordsAt.MatchString(remaining[capPos:]) {
			return m[1] + capPos, true
		}
	}

	// Abstracts run roughly 75-300 words (400-1800 chars); requiring the
	// minimum offset avoids matching a sentence break inside the
	// abstract.
	const minAbstractChars = 400
	if len(remaining) > minAbstractChars {
		if pb := e.pat.sentenceCap.FindStringSubmatchIndex(remaining[minAbstractChars:]); pb != nil {
			return m[1] + minAbstractChars + pb[2], true
		}
	}
	if pb := e.pat.sentenceCap.FindStringSubmatchIndex(remaining); pb != nil {
		return m[1] + pb[2], true
	}
	return 0, false
}

// Priority 4: the first section after the keywords block, for papers
// whose first heading carries no number. Heading-shaped candidates are
// only accepted inside a bounded window after the keywords line; the
// last resort is the next capitalized line wherever it is.
func (e *Engine) startAfterKeywords(text string) (int, bool) {
	m := e.pat.keywordsLine.FindStringIndex(text)
	if m == nil {
		return 0, false
	}
	remaining := text[m[1]:]
	window := remaining[:min(len(remaining), introSearchWindow)]

	if hm := e.pat.bareHeading.FindStringIndex(window); hm != nil {
		return m[1] + hm[0], true
	}
	for _, re := range e.pat.numberedAny {
		if hm := re.FindStringIndex(window); hm != nil {
			return m[1] + hm[0], true
		}
	}
	if hm := e.pat.capitalLine.FindStringIndex(remaining); hm != nil {
		return m[1] + hm[0], true
	}
	return 0, false
}

// Priority 5: a numbered first section with an arbitrary short title
// ("1   Two Traditions"), same line or next line.
func (e *Engine) startNumberedAny(text string) (int, bool) {
	for _, re := range e.pat.numberedAny {
		if m := re.FindStringIndex(text); m != nil {
			return m[0], true
		}
	}
	return 0, false
}
