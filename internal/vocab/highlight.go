// Package vocab finds vocabulary terms in answer text and tags them with their
// definitions for tooltip display.
package vocab

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Item is a term and its definition.
type Item struct {
	Word       string
	Definition string
}

// Policy decides how many occurrences of each term get tagged.
type Policy int

const (
	// FirstOccurrence tags only the first untagged occurrence of each term.
	FirstOccurrence Policy = iota
	// EveryOccurrence tags all untagged occurrences.
	EveryOccurrence
)

// Segment is a run of literal text, or a tagged term when Tagged is set.
type Segment struct {
	Text       string
	Definition string
	Tagged     bool
}

// Result is the input text split into literal and tagged segments.
type Result struct {
	Segments []Segment
}

// Matched reports whether any term was tagged.
func (r Result) Matched() bool {
	for _, s := range r.Segments {
		if s.Tagged {
			return true
		}
	}
	return false
}

// Tagged returns only the tagged segments in text order.
func (r Result) Tagged() []Segment {
	var out []Segment
	for _, s := range r.Segments {
		if s.Tagged {
			out = append(out, s)
		}
	}
	return out
}

// Text reassembles the segments.
func (r Result) Text() string {
	var b strings.Builder
	for _, s := range r.Segments {
		b.WriteString(s.Text)
	}
	return b.String()
}

type span struct {
	start, end int
	def        string
	tagged     bool
}

// Highlight tags whole-word, case-insensitive occurrences of items in text.
// Longer terms are matched first and a shorter term never matches inside an
// already tagged span. Markdown code, link destinations, image alt text, raw
// HTML and URLs are never tagged. Matching runs on the NFC form of text but
// segments are cut from text itself, so untagged text is never rewritten.
func Highlight(text string, items []Item, policy Policy) Result {
	unchanged := Result{Segments: []Segment{{Text: text}}}
	if text == "" || len(items) == 0 {
		return unchanged
	}

	terms := prepare(items)
	if len(terms) == 0 {
		return unchanged
	}

	idx := newNFCIndex(text)
	normalized := idx.text
	claimed := protectedSpans(normalized)
	matched := false

	for _, t := range terms {
		for _, loc := range findWord(normalized, t.Word) {
			if overlaps(claimed, loc[0], loc[1]) {
				continue
			}
			claimed = append(claimed, span{start: loc[0], end: loc[1], def: t.Definition, tagged: true})
			matched = true
			if policy == FirstOccurrence {
				break
			}
		}
	}

	if !matched {
		return unchanged
	}
	return Result{Segments: split(text, idx.originalSpans(claimed))}
}

// nfcIndex is the NFC form of a text plus, for every normalization segment,
// its start offset in both the normalized and the original text.
type nfcIndex struct {
	text       string
	normStarts []int
	origStarts []int
	origLen    int
}

func newNFCIndex(text string) nfcIndex {
	idx := nfcIndex{text: text, origLen: len(text)}
	if norm.NFC.IsNormalString(text) {
		return idx
	}

	var b strings.Builder
	var it norm.Iter
	it.InitString(norm.NFC, text)
	for !it.Done() {
		idx.normStarts = append(idx.normStarts, b.Len())
		idx.origStarts = append(idx.origStarts, it.Pos())
		b.Write(it.Next())
	}
	idx.text = b.String()
	return idx
}

// original maps an offset in the normalized text back to the original text.
// An offset inside a segment moves to the segment start, or to its end when
// end is set.
func (x nfcIndex) original(n int, end bool) int {
	if x.normStarts == nil {
		return n
	}
	i, found := slices.BinarySearch(x.normStarts, n)
	switch {
	case found:
		return x.origStarts[i]
	case !end:
		return x.origStarts[i-1]
	case i < len(x.origStarts):
		return x.origStarts[i]
	default:
		return x.origLen
	}
}

func (x nfcIndex) originalSpans(spans []span) []span {
	out := make([]span, 0, len(spans))
	for _, s := range spans {
		if !s.tagged {
			continue
		}
		s.start, s.end = x.original(s.start, false), x.original(s.end, true)
		out = append(out, s)
	}
	return out
}

// prepare drops blank words, normalizes the rest, and orders them longest
// first. Equal lengths keep their input order.
func prepare(items []Item) []Item {
	terms := make([]Item, 0, len(items))
	for _, it := range items {
		if strings.TrimSpace(it.Word) == "" {
			continue
		}
		terms = append(terms, Item{Word: norm.NFC.String(it.Word), Definition: it.Definition})
	}
	slices.SortStableFunc(terms, func(a, b Item) int {
		return utf8.RuneCountInString(b.Word) - utf8.RuneCountInString(a.Word)
	})
	return terms
}

// findWord returns the byte ranges of case-insensitive occurrences of word in
// text that are not glued to neighbouring word characters.
func findWord(text, word string) [][2]int {
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(word))
	first, _ := utf8.DecodeRuneInString(word)
	last, _ := utf8.DecodeLastRuneInString(word)
	checkStart, checkEnd := isWordRune(first), isWordRune(last)

	var out [][2]int
	for pos := 0; pos < len(text); {
		loc := re.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if (!checkStart || !wordBefore(text, start)) && (!checkEnd || !wordAfter(text, end)) {
			out = append(out, [2]int{start, end})
			pos = end
			continue
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		pos = start + size
	}
	return out
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

func wordBefore(text string, i int) bool {
	if i == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return isWordRune(r)
}

func wordAfter(text string, i int) bool {
	if i >= len(text) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return isWordRune(r)
}

func overlaps(spans []span, start, end int) bool {
	for _, s := range spans {
		if start < s.end && s.start < end {
			return true
		}
	}
	return false
}

// split cuts text at the tagged spans. Protected spans stay literal.
func split(text string, spans []span) []Segment {
	tagged := make([]span, 0, len(spans))
	for _, s := range spans {
		if s.tagged {
			tagged = append(tagged, s)
		}
	}
	slices.SortFunc(tagged, func(a, b span) int { return a.start - b.start })

	var segs []Segment
	pos := 0
	for _, s := range tagged {
		if s.start > pos {
			segs = append(segs, Segment{Text: text[pos:s.start]})
		}
		segs = append(segs, Segment{Text: text[s.start:s.end], Definition: s.def, Tagged: true})
		pos = s.end
	}
	if pos < len(text) {
		segs = append(segs, Segment{Text: text[pos:]})
	}
	return segs
}

// Markdown regions a term must never be tagged inside.
var protectedPatterns = []*regexp.Regexp{
	regexp.MustCompile("(?s)```.*?```"),
	regexp.MustCompile("(?s)~~~.*?~~~"),
	regexp.MustCompile("`[^`\n]+`"),
	regexp.MustCompile(`!\[[^\]]*\]`),
	regexp.MustCompile(`\]\([^)\s]*(?:\s+"[^"]*")?\)`),
	regexp.MustCompile(`(?m)^\s{0,3}\[[^\]]+\]:\s*\S+.*$`),
	regexp.MustCompile(`(?s)<!--.*?-->`),
	regexp.MustCompile(`(?m)^ {0,3}</?[a-zA-Z][^\n]*(?:\n[ \t]*\S[^\n]*)*`),
	regexp.MustCompile(`<[a-zA-Z][^>\n]*>`),
	regexp.MustCompile(`https?://[^\s)>\]]+`),
}

func protectedSpans(text string) []span {
	var spans []span
	for _, re := range protectedPatterns {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			spans = append(spans, span{start: loc[0], end: loc[1]})
		}
	}
	return spans
}
