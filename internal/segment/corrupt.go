package segment

import "unicode"

// forbiddenRunes are code points undefined in every standard 8-bit
// encoding (the cp1252 holes). Their presence means the extractor mapped
// glyphs through a broken character table.
var forbiddenRunes = map[rune]bool{
	0x81: true, 0x8d: true, 0x8f: true, 0x90: true, 0x9d: true,
}

// IsCorrupted reports whether text is garbled beyond pattern matching.
// Only the leading sample is inspected: encoding corruption affects the
// whole document uniformly, and sampling bounds the cost on long papers.
//
// Examples of corrupted extractor output:
//
//	"\x1aE2F1C $ \x05.3 \x17.0.-\x1c\x1a"
//	".\">C\"? \x01FC4>\"3I\">0L\"F*\""
func (e *Engine) IsCorrupted(text string) bool {
	if len(text) == 0 {
		return true
	}
	runes := []rune(text)
	if len(runes) > e.cfg.Corruption.SampleSize {
		runes = runes[:e.cfg.Corruption.SampleSize]
	}
	sample := string(runes)
	total := len(runes)

	var alphabetic, control, unusualPunct, forbidden int
	for _, r := range runes {
		switch {
		case unicode.IsLetter(r):
			alphabetic++
		case r < 32 && r != '\n' && r != '\r' && r != '\t':
			control++
		case r == '=' || r == ';':
			unusualPunct++
		}
		if forbiddenRunes[r] {
			forbidden++
		}
	}
	transitions := len(e.pat.transition.FindAllStringIndex(sample, -1))

	c := e.cfg.Corruption
	switch {
	case float64(alphabetic)/float64(total) < c.MinAlphaRatio:
		return true
	case float64(control)/float64(total) > c.MaxControlRatio:
		return true
	case float64(transitions)/float64(total) > c.MaxTransitionRatio:
		return true
	case forbidden > 0:
		return true
	case float64(unusualPunct)/float64(total) > c.MaxPunctRatio:
		return true
	}
	return false
}
