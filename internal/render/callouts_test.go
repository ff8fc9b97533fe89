package render

import (
	"strings"
	"testing"
)

func TestCalloutIcon(t *testing.T) {
	tests := map[string]string{
		"tip":       "💡",
		"warning":   "⚠️",
		"info":      "ℹ️",
		"success":   "✅",
		"note":      "📝",
		"professor": "👨‍🏫",
		"unknown":   "💡",
		"":          "💡",
	}
	for kind, want := range tests {
		if got := CalloutIcon(kind); got != want {
			t.Errorf("CalloutIcon(%q) = %q, want %q", kind, got, want)
		}
	}
}

func TestProTip(t *testing.T) {
	r := New(nil, "")

	tests := []struct {
		kind string
		body string
		want []string
	}{
		{"warning", "Be **careful**", []string{`class="protip protip-warning"`, "⚠️", "<strong>careful</strong>"}},
		{"", "Default", []string{`class="protip protip-tip"`, "💡"}},
		{"mystery", "Odd", []string{`class="protip protip-mystery"`, "💡"}},
	}
	for _, tt := range tests {
		var b strings.Builder
		if err := r.ProTip(&b, tt.kind, tt.body); err != nil {
			t.Fatalf("ProTip(%q) error = %v", tt.kind, err)
		}
		for _, w := range tt.want {
			if !strings.Contains(b.String(), w) {
				t.Errorf("ProTip(%q) = %q, missing %q", tt.kind, b.String(), w)
			}
		}
	}
}

func TestAsAProfessor(t *testing.T) {
	var b strings.Builder
	if err := New(nil, "").AsAProfessor(&b, "Think about *why*."); err != nil {
		t.Fatalf("AsAProfessor() error = %v", err)
	}
	got := b.String()
	for _, w := range []string{"As a Professor", "👨‍🏫", "<em>why</em>"} {
		if !strings.Contains(got, w) {
			t.Errorf("AsAProfessor() = %q, missing %q", got, w)
		}
	}
}
