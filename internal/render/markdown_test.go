package render

import (
	"strings"
	"testing"
)

func TestMarkdown_Render(t *testing.T) {
	md := NewMarkdown()

	tests := []struct {
		name    string
		src     string
		want    []string
		notWant []string
	}{
		{"empty", "", nil, []string{"<p>"}},
		{"emphasis", "Use **force**", []string{"<p>Use <strong>force</strong></p>"}, nil},
		{"strikethrough", "~~old~~ new", []string{"<del>old</del>"}, nil},
		{
			name: "table",
			src:  "| a | b |\n|---|---|\n| 1 | 2 |\n",
			want: []string{"<table>", "<td>1</td>"},
		},
		{"raw html omitted", "<script>alert(1)</script>", nil, []string{"<script>"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := md.Render(tt.src)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(string(got), w) {
					t.Errorf("Render(%q) = %q, missing %q", tt.src, got, w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(string(got), w) {
					t.Errorf("Render(%q) = %q, should not contain %q", tt.src, got, w)
				}
			}
		})
	}
}
