package segment

import "strings"

// headingMatch is a validated references heading candidate.
type headingMatch struct {
	start int
	end   int
}

// refsValidationWindow is how far past a heading candidate the text is
// sampled for reference-entry shapes.
const refsValidationWindow = 1500

// findReferencesHeading returns the last validated bibliography heading.
//
// Candidates are restricted to the last 50% of the document: "Literatur"
// turns up in German body prose ("aus Vorlesungen und Literatur"), and a
// paper whose bibliography starts in its first half does not exist. Each
// candidate must be followed within the validation window by something
// shaped like a reference entry, which weeds out forward pointers such as
// "see References below". When several candidates validate, the last one
// wins: proceedings sometimes carry an earlier section that merely cites
// the word, and the true bibliography is the final occurrence.
func (e *Engine) findReferencesHeading(text string) (headingMatch, bool) {
	minPosition := int(float64(len(text)) * 0.50)

	var candidates [][]int
	for _, m := range e.pat.refsHeading.FindAllStringIndex(text, -1) {
		if m[0] >= minPosition {
			candidates = append(candidates, m)
		}
	}
	for i := len(candidates) - 1; i >= 0; i-- {
		m := candidates[i]
		sample := text[m[1]:min(len(text), m[1]+refsValidationWindow)]
		for _, re := range e.pat.refEntries {
			if re.MatchString(sample) {
				return headingMatch{start: m[0], end: m[1]}, true
			}
		}
	}
	return headingMatch{}, false
}

// ExtractReferences returns the bibliography block: everything after the
// validated heading, whitespace-stripped, with one line of trailing page
// furniture removed when recognized. Trimming is best effort; an
// unrecognized tail is returned as is rather than over-cut.
// Returns ErrCorrupted on garbled input and ErrNoReferences when no
// heading validates.
func (e *Engine) ExtractReferences(text string) (string, error) {
	if e.IsCorrupted(text) {
		return "", ErrCorrupted
	}
	m, ok := e.findReferencesHeading(text)
	if !ok {
		return "", ErrNoReferences
	}
	refs := strings.TrimSpace(text[m.end:])

	// Mutually exclusive trailing-matter shapes, first match wins:
	// lone page number, page number plus running-header authors, title
	// fragment plus page number.
	for _, re := range e.pat.trailing {
		if t := re.FindStringIndex(refs); t != nil {
			return strings.TrimSpace(refs[:t[0]]), nil
		}
	}
	return refs, nil
}
