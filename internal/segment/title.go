package segment

import "strings"

// maxLeadingBlanks bounds the blank-line run tolerated before the title.
// Some PDFs linearize with dozens of empty lines up front; an unbounded
// skip could walk past the title window entirely.
const maxLeadingBlanks = 30

// maxBoilerplateLines bounds the front-matter lines skipped before the
// title (editor line, series name, publisher, page number).
const maxBoilerplateLines = 8

// frontMatter is the outcome of walking the leading lines: the collected
// title lines and, when collection stopped at an author byline, that
// byline.
type frontMatter struct {
	titleLines []string
	byline     string
}

// ExtractTitle assembles a probable title from the leading lines of a
// paper that has no external metadata. It skips known proceedings
// boilerplate and blank runs, then collects lines as title until a line
// classifies as an author byline. Collected lines are joined, hyphen
// line-wrap artifacts healed and whitespace collapsed.
// Returns ErrCorrupted on garbled input and ErrNoTitle when nothing was
// collected.
func (e *Engine) ExtractTitle(text string) (string, error) {
	if e.IsCorrupted(text) {
		return "", ErrCorrupted
	}
	fm := e.segmentFrontMatter(text)
	if len(fm.titleLines) == 0 {
		return "", ErrNoTitle
	}
	title := strings.Join(fm.titleLines, " ")
	// "Lernsys- teme" is a word split at a line wrap, not a compound.
	title = strings.ReplaceAll(title, "- ", "-")
	title = e.pat.whitespace.ReplaceAllString(title, " ")
	return strings.TrimSpace(title), nil
}

// ExtractAuthors returns the author byline recognized below the title,
// with affiliation markers stripped. Returns ErrCorrupted on garbled
// input and ErrNoAuthors when the front matter ends without a
// recognizable byline.
func (e *Engine) ExtractAuthors(text string) (string, error) {
	if e.IsCorrupted(text) {
		return "", ErrCorrupted
	}
	fm := e.segmentFrontMatter(text)
	if fm.byline == "" {
		return "", ErrNoAuthors
	}
	authors := e.pat.authorMarker.ReplaceAllString(fm.byline, "$1")
	authors = e.pat.whitespace.ReplaceAllString(authors, " ")
	return strings.TrimSpace(authors), nil
}

// segmentFrontMatter runs the line walk. States: skipping header and
// blank lines, collecting title lines, stopped (byline found or a limit
// reached).
func (e *Engine) segmentFrontMatter(text string) frontMatter {
	window := []rune(text)
	if len(window) > e.cfg.Title.MaxChars {
		window = window[:e.cfg.Title.MaxChars]
	}
	lines := strings.Split(string(window), "\n")

	i := 0
	skippedBoilerplate, skippedBlanks := 0, 0
skip:
	for ; i < len(lines); i++ {
		t := strings.TrimSpace(lines[i])
		switch {
		case t == "":
			if skippedBlanks++; skippedBlanks > maxLeadingBlanks {
				return frontMatter{}
			}
		case e.isBoilerplate(t):
			if skippedBoilerplate++; skippedBoilerplate > maxBoilerplateLines {
				return frontMatter{}
			}
		default:
			break skip
		}
	}

	var fm frontMatter
collect:
	for ; i < len(lines); i++ {
		t := strings.TrimSpace(lines[i])
		if t == "" {
			break
		}
		switch e.classifyLine(t, nextNonEmpty(lines, i+1)) {
		case classByline:
			fm.byline = t
			break collect
		case classStop:
			break collect
		}
		if len([]rune(t)) <= 5 || e.pat.digitsOnly.MatchString(t) {
			break
		}
		fm.titleLines = append(fm.titleLines, t)
		if len(fm.titleLines) >= e.cfg.Title.MaxLines {
			break
		}
	}
	return fm
}

func (e *Engine) isBoilerplate(line string) bool {
	for _, marker := range e.cfg.Vocabulary.Boilerplate {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return e.pat.pageNumber.MatchString(line)
}

// lineClass is the verdict on one front-matter line.
type lineClass int

const (
	// classTitle: the line belongs to the title.
	classTitle lineClass = iota
	// classByline: the line lists the authors; collection stops.
	classByline
	// classStop: the line is neither (an affiliation); collection stops
	// without an author byline.
	classStop
)

// classifyLine decides whether a collected line is title, byline or a
// terminator. next is the following non-empty line, used to resolve the
// single-name ambiguity.
func (e *Engine) classifyLine(line, next string) lineClass {
	// Shape (a): comma-separated author list, optionally with middle
	// initials and affiliation markers.
	if e.pat.multiAuthor.MatchString(line) {
		return classByline
	}
	// Shape (b): two names joined by "und" or "&". Only a byline when at
	// least one name carries an affiliation marker; otherwise this is a
	// title phrase that happens to contain a conjunction.
	if m := e.pat.joinedPair.FindStringSubmatch(line); m != nil {
		if m[1] != "" || m[2] != "" {
			return classByline
		}
	}
	// Shape (c): a single name-shaped line. An institution name
	// ("Hochschule Bremen") has the same shape but is no byline. A short
	// two-word title has the same shape too; if the next line is itself
	// a multi-author byline, this line is still title.
	if e.pat.singleName.MatchString(line) {
		if e.isInstitution(line) {
			return classStop
		}
		if e.pat.multiAuthor.MatchString(next) {
			return classTitle
		}
		return classByline
	}
	return classTitle
}

func (e *Engine) isInstitution(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range e.cfg.Vocabulary.Institutions {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func nextNonEmpty(lines []string, from int) string {
	for _, l := range lines[from:] {
		if t := strings.TrimSpace(l); t != "" {
			return t
		}
	}
	return ""
}
