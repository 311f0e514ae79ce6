package segment

import (
	"regexp"
	"strings"
)

// Vocabulary holds the bilingual heading and marker word lists the engine
// matches against. The lists are data, not control flow: adding a new
// heading variant for another proceedings series means extending a list
// here (or in the YAML config), not touching the locators.
//
// Order matters inside each list: longer variants must precede their
// prefixes ("Literaturverzeichnis" before "Literatur") so the alternation
// consumes the full heading.
type Vocabulary struct {
	// Introduction are the section names accepted as a numbered first
	// heading ("1 Introduction", "1\nHintergrund", ...).
	Introduction []string `yaml:"introduction"`
	// IntroductionBare are the names accepted as a standalone unnumbered
	// heading. Deliberately narrower than Introduction: "Motivation" or
	// "Background" standing alone is too common in running prose.
	IntroductionBare []string `yaml:"introduction_bare"`
	// Abstract are the labels that open an abstract ("Abstract:", ...).
	Abstract []string `yaml:"abstract"`
	// Keywords are the labels that open a keyword list.
	Keywords []string `yaml:"keywords"`
	// References are the names of a bibliography heading.
	References []string `yaml:"references"`
	// Institutions are words that mark an affiliation line rather than
	// an author name ("Hochschule Bremen" is name-shaped but no byline).
	Institutions []string `yaml:"institutions"`
	// Boilerplate are front-matter markers of the proceedings series
	// (editor line, series name, publisher) skipped before the title.
	Boilerplate []string `yaml:"boilerplate"`
}

// DefaultVocabulary returns the German/English lists for LNI proceedings.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Introduction: []string{
			"Introduction", "Einleitung", "Einführung",
			"Background", "Motivation", "Hintergrund",
		},
		IntroductionBare: []string{
			"Introduction", "Einleitung", "Einführung",
		},
		Abstract: []string{
			"Abstract", "Zusammenfassung", "Kurzfassung", "Summary", "Résumé",
		},
		Keywords: []string{
			"Keywords", "Key words", "Schlüsselwörter", "Schlagwörter",
			"Keyphrases", "Key phrases", "Index Terms",
			"Suchbegriffe", "Stichwörter", "Indexbegriffe",
		},
		References: []string{
			"References", "Literaturverzeichnis", "Literatur",
			"Bibliography", "Bibliografie", "Referenzen",
			"Quellenverzeichnis", "Quellen", "Reference List",
		},
		Institutions: []string{
			"universität", "hochschule", "institut", "fakultät",
			"university", "institute", "faculty", "department",
			"fachbereich", "arbeitsbereich", "lehrstuhl",
		},
		Boilerplate: []string{
			"(Hrsg.)", "Lecture Notes in Informatics",
			"Gesellschaft für Informatik",
		},
	}
}

// withDefaults fills any list left empty, so a partial YAML vocabulary
// overrides only the lists it names.
func (v Vocabulary) withDefaults() Vocabulary {
	def := DefaultVocabulary()
	fill := func(dst *[]string, def []string) {
		if len(*dst) == 0 {
			*dst = def
		}
	}
	fill(&v.Introduction, def.Introduction)
	fill(&v.IntroductionBare, def.IntroductionBare)
	fill(&v.Abstract, def.Abstract)
	fill(&v.Keywords, def.Keywords)
	fill(&v.References, def.References)
	fill(&v.Institutions, def.Institutions)
	fill(&v.Boilerplate, def.Boilerplate)
	return v
}

// alternation builds a regex alternation from a word list. Literal spaces
// become \s+ so "Key words" also matches across irregular spacing.
func alternation(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = strings.ReplaceAll(regexp.QuoteMeta(w), " ", `\s+`)
	}
	return strings.Join(quoted, "|")
}

// patterns is the compiled form of a Vocabulary, built once in New.
type patterns struct {
	// corruption
	transition *regexp.Regexp

	// main-content start cascade
	numberedIntro []*regexp.Regexp
	bareIntro     []*regexp.Regexp
	abstractLabel *regexp.Regexp
	keywordsLabel *regexp.Regexp
	keywordsLine  *regexp.Regexp
	keywordsAt    *regexp.Regexp
	numberedAny   []*regexp.Regexp
	bareHeading   *regexp.Regexp
	capitalLine   *regexp.Regexp
	paraBreakCap  *regexp.Regexp
	sentenceCap   *regexp.Regexp

	// references
	refsHeading *regexp.Regexp
	refEntries  []*regexp.Regexp
	trailing    []*regexp.Regexp

	// title
	pageNumber   *regexp.Regexp
	digitsOnly   *regexp.Regexp
	multiAuthor  *regexp.Regexp
	joinedPair   *regexp.Regexp
	singleName   *regexp.Regexp
	authorMarker *regexp.Regexp
	whitespace   *regexp.Regexp
}

// Author-name shape used by the byline classifiers: a capitalized given
// name, optional middle initials, and at least one more capitalized token.
// \p{L} instead of [A-Za-z] so Böhm, Çelik or Nowakowski classify as names.
// A token must end in a letter: "Lernsys-" is a word split at a line
// wrap, not a surname.
const (
	nameToken = `\p{Lu}[\p{L}'’-]*\p{L}`
	fullName  = nameToken + `(?:\s+\p{Lu}\.)*(?:\s+` + nameToken + `)+`
	// Affiliation markers trailing a name: footnote digits, daggers,
	// asterisks, section signs.
	affMarker = `[\d†‡§*]*`
)

func compile(v Vocabulary) (*patterns, error) {
	intro := alternation(v.Introduction)
	bare := alternation(v.IntroductionBare)
	abstract := alternation(v.Abstract)
	keywords := alternation(v.Keywords)
	refs := alternation(v.References)

	var p patterns
	singles := []struct {
		dst  **regexp.Regexp
		expr string
	}{
		{&p.transition, `\p{L}[0-9]|[0-9]\p{L}`},
		{&p.abstractLabel, `(?mi)^(?:` + abstract + `):\s*`},
		{&p.keywordsLabel, `(?mi)^(?:` + keywords + `):\s*`},
		{&p.keywordsLine, `(?mi)^(?:` + keywords + `):\s*.+$`},
		{&p.keywordsAt, `(?i)^(?:` + keywords + `)`},
		{&p.bareHeading, `(?mi)^\s*(?:` + bare + `)\s*$`},
		{&p.capitalLine, `(?m)^\s*[A-ZÄÖÜ][^\n]+$`},
		{&p.paraBreakCap, `\n\s*\n+[ \t]*([A-ZÄÖÜ])`},
		{&p.sentenceCap, `\.\n([A-ZÄÖÜ])`},
		{&p.refsHeading, `(?mi)^[ \t]*(?:\d+\s*\n\s*|\d+\.?[ \t]+)?(?:` + refs + `)\d*[ \t]*$`},
		{&p.pageNumber, `^\d{1,4}$`},
		{&p.digitsOnly, `^\d+$`},
		{&p.multiAuthor, `^\s*` + fullName + affMarker + `(?:\s*,\s*` + fullName + affMarker + `)+\s*$`},
		{&p.joinedPair, `^\s*` + fullName + `(` + affMarker + `)\s+(?:und|&)\s+` + fullName + `(` + affMarker + `)\s*$`},
		{&p.singleName, `^\s*` + fullName + affMarker + `\s*$`},
		{&p.authorMarker, `([\p{L}.])[\d†‡§*]+`},
		{&p.whitespace, `\s+`},
	}
	for _, s := range singles {
		re, err := regexp.Compile(s.expr)
		if err != nil {
			return nil, err
		}
		*s.dst = re
	}

	var err error
	// Numbered introduction heading: "1\nEinleitung", "1 Introduction",
	// "1. Introduction", "1: Introduction".
	p.numberedIntro, err = compileAll(
		`(?mi)^\s*1\s*\n\s*(?:`+intro+`)`,
		`(?mi)^\s*1\.?\s+(?:`+intro+`)`,
		`(?mi)^\s*1:\s*(?:`+intro+`)`,
	)
	if err != nil {
		return nil, err
	}
	// Standalone unnumbered heading, optionally with a subtitle after a
	// colon or dash. The dash variant is length-limited so a heading
	// matches but a prose sentence starting with the keyword does not.
	p.bareIntro, err = compileAll(
		`(?mi)^\s*(?:`+bare+`)\s*$`,
		`(?mi)^\s*(?:`+bare+`):\s*.+$`,
		`(?mi)^\s*(?:`+bare+`)[\s–—-]+.{1,50}$`,
	)
	if err != nil {
		return nil, err
	}
	// Numbered heading with an arbitrary title, same line or next line.
	p.numberedAny, err = compileAll(
		`(?m)^[ \t]*1\.?[ \t]+[A-Za-zÄÖÜäöü][^\n]{0,80}$`,
		`(?m)^[ \t]*1[ \t]*\n\s*[A-Za-zÄÖÜäöü][^\n]{0,80}$`,
	)
	if err != nil {
		return nil, err
	}
	// Shapes a genuine reference entry can take shortly after a heading:
	// abbreviation keys [BBS01]/[Ka93], numeric keys [1], author-year
	// lines "Bruner, J.S. (1961)", and [Surname 2004] keys.
	p.refEntries, err = compileAll(
		`\[(?:[A-Za-z]{2,4}|[A-Z][a-z]{1,2})\d{2}\]`,
		`(?m)^\s*\[\d{1,3}\]`,
		`(?m)^[A-ZÄÖÜ][a-zäöüß]+,\s+[A-Z].*?\(\d{4}\)`,
		`\[[A-ZÄÖÜ][a-zäöüß]+\s+\d{4}\]`,
	)
	if err != nil {
		return nil, err
	}
	// Page furniture that trails a references block: a lone page number,
	// "208 Alexander Aumann et al.", or "The interplay... 21".
	p.trailing, err = compileAll(
		`\n\d{1,4}\s*$`,
		`\n\d{1,4}\s+[A-ZÄÖÜ][a-zäöüß]+.*$`,
		`\n[A-ZÄÖÜ].+\s+\d{1,4}\s*$`,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func compileAll(exprs ...string) ([]*regexp.Regexp, error) {
	res := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		re, err := regexp.Compile(e)
		if err != nil {
			return nil, err
		}
		res = append(res, re)
	}
	return res, nil
}
