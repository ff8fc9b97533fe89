package vocab

import (
	"strings"
	"testing"
)

func TestHighlight_NoVocab(t *testing.T) {
	text := "A **mitochondria** is the powerhouse"
	for _, items := range [][]Item{nil, {}, {{Word: "  ", Definition: "blank"}}} {
		res := Highlight(text, items, FirstOccurrence)
		if res.Matched() {
			t.Errorf("Matched() = true for %v", items)
		}
		if res.Text() != text {
			t.Errorf("Text() = %q, want input unchanged", res.Text())
		}
	}
}

func TestHighlight_NoMatchesIsIdentity(t *testing.T) {
	text := "Café culture, unrelated words"
	res := Highlight(text, []Item{{Word: "mitochondria", Definition: "organelle"}}, EveryOccurrence)
	if res.Matched() {
		t.Fatal("Matched() = true, want false")
	}
	if len(res.Segments) != 1 || res.Segments[0].Text != text {
		t.Errorf("Segments = %+v, want single unchanged segment", res.Segments)
	}
}

func TestHighlight_MitochondriaExample(t *testing.T) {
	res := Highlight("A mitochondria is the powerhouse", []Item{{Word: "mitochondria", Definition: "organelle"}}, FirstOccurrence)
	tagged := res.Tagged()
	if len(tagged) != 1 {
		t.Fatalf("tagged = %d, want 1", len(tagged))
	}
	if tagged[0].Text != "mitochondria" || tagged[0].Definition != "organelle" {
		t.Errorf("tagged = %+v", tagged[0])
	}
	if res.Text() != "A mitochondria is the powerhouse" {
		t.Errorf("Text() = %q", res.Text())
	}
}

func TestHighlight_CasePreservedAndWordBoundaries(t *testing.T) {
	items := []Item{{Word: "mitochondria", Definition: "organelle"}}

	res := Highlight("Mitochondria are here", items, FirstOccurrence)
	if got := res.Tagged(); len(got) != 1 || got[0].Text != "Mitochondria" {
		t.Errorf("case variant: tagged = %+v, want Mitochondria", got)
	}

	res = Highlight("mitochondrial DNA is distinct", items, FirstOccurrence)
	if res.Matched() {
		t.Errorf("substring inside another word was tagged: %+v", res.Tagged())
	}

	res = Highlight("mitochondrial DNA lives in the mitochondria.", items, FirstOccurrence)
	if got := res.Tagged(); len(got) != 1 || !strings.HasSuffix(res.Segments[0].Text, "the ") {
		t.Errorf("should skip mitochondrial and tag the standalone word, got %+v", res.Segments)
	}
}

func TestHighlight_Policies(t *testing.T) {
	text := "cell after cell after Cell"
	items := []Item{{Word: "cell", Definition: "unit"}}

	if got := Highlight(text, items, FirstOccurrence).Tagged(); len(got) != 1 {
		t.Errorf("FirstOccurrence tagged %d, want 1", len(got))
	}
	got := Highlight(text, items, EveryOccurrence).Tagged()
	if len(got) != 3 {
		t.Fatalf("EveryOccurrence tagged %d, want 3", len(got))
	}
	if got[2].Text != "Cell" {
		t.Errorf("third match = %q, want Cell", got[2].Text)
	}
}

func TestHighlight_LongestTermFirst(t *testing.T) {
	items := []Item{
		{Word: "cell", Definition: "short"},
		{Word: "cell membrane", Definition: "long"},
	}
	res := Highlight("The cell membrane surrounds the cell.", items, FirstOccurrence)
	got := res.Tagged()
	if len(got) != 2 {
		t.Fatalf("tagged = %+v, want 2", got)
	}
	if got[0].Text != "cell membrane" || got[0].Definition != "long" {
		t.Errorf("first = %+v, want cell membrane/long", got[0])
	}
	if got[1].Text != "cell" || got[1].Definition != "short" {
		t.Errorf("second = %+v, want standalone cell/short", got[1])
	}
}

func TestHighlight_Metacharacters(t *testing.T) {
	items := []Item{
		{Word: "C++", Definition: "language"},
		{Word: "f(x)", Definition: "function"},
		{Word: "a.b", Definition: "dotted"},
	}
	res := Highlight("Write f(x) in C++ but not axb.", items, EveryOccurrence)
	got := res.Tagged()
	if len(got) != 2 {
		t.Fatalf("tagged = %+v, want f(x) and C++", got)
	}
	if got[0].Text != "f(x)" || got[1].Text != "C++" {
		t.Errorf("tagged = %+v", got)
	}
}

func TestHighlight_UnicodeWords(t *testing.T) {
	items := []Item{{Word: "école", Definition: "school"}}

	res := Highlight("Une École ici", items, FirstOccurrence)
	if got := res.Tagged(); len(got) != 1 || got[0].Text != "École" {
		t.Errorf("tagged = %+v, want École", got)
	}

	// Decomposed e + combining acute matches the composed vocabulary word.
	res = Highlight("une e\u0301cole", items, FirstOccurrence)
	if !res.Matched() {
		t.Error("decomposed text should match composed word")
	}

	res = Highlight("préécole", items, FirstOccurrence)
	if res.Matched() {
		t.Error("match glued to a preceding letter should be rejected")
	}
}

func TestHighlight_KeepsOriginalForm(t *testing.T) {
	items := []Item{{Word: "école", Definition: "school"}, {Word: "mitochondria", Definition: "organelle"}}

	tests := []struct {
		name   string
		text   string
		tagged []string
	}{
		{"decomposed text outside match", "Cafe\u0301 and mitochondria", []string{"mitochondria"}},
		{"decomposed term", "une e\u0301cole et mitochondria", []string{"e\u0301cole", "mitochondria"}},
		{"decomposed before and after", "e\u0301 e\u0301cole e\u0301", []string{"e\u0301cole"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Highlight(tt.text, items, FirstOccurrence)
			if got := res.Text(); got != tt.text {
				t.Errorf("Text() = %q, want %q", got, tt.text)
			}
			got := res.Tagged()
			if len(got) != len(tt.tagged) {
				t.Fatalf("tagged = %+v, want %q", got, tt.tagged)
			}
			for i, s := range got {
				if s.Text != tt.tagged[i] {
					t.Errorf("tagged[%d] = %q, want %q", i, s.Text, tt.tagged[i])
				}
			}
		})
	}
}

func TestHighlight_SkipsRawHTMLAndImages(t *testing.T) {
	items := []Item{{Word: "cell", Definition: "unit"}}

	tests := []struct {
		name string
		text string
		want int
	}{
		{"html comment", "<!-- cell -->\nText", 0},
		{"multi-line comment", "<!--\ncell\n-->", 0},
		{"html block", "<div>\ncell\n</div>", 0},
		{"html block ends at blank line", "<div>\ncell\n\ncell here", 1},
		{"image alt", "![cell](c.png)", 0},
		{"image alt then text", "![cell](c.png) a cell", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Highlight(tt.text, items, EveryOccurrence).Tagged()
			if len(got) != tt.want {
				t.Errorf("tagged = %+v, want %d", got, tt.want)
			}
		})
	}
}

func TestHighlight_SkipsMarkdownSyntax(t *testing.T) {
	items := []Item{{Word: "cell", Definition: "unit"}}

	tests := []struct {
		name string
		text string
		want int
	}{
		{"inline code", "Use `cell` here", 0},
		{"fenced code", "```\ncell\n```\n", 0},
		{"link destination", "[see](https://example.com/cell)", 0},
		{"link text is fine", "[cell](https://example.com/x)", 1},
		{"bare url", "https://example.com/cell and more", 0},
		{"emphasis is fine", "a **cell** b", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Highlight(tt.text, items, EveryOccurrence).Tagged()
			if len(got) != tt.want {
				t.Errorf("tagged = %+v, want %d", got, tt.want)
			}
		})
	}
}
