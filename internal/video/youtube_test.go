package video

import (
	"errors"
	"strings"
	"testing"

	"github.com/p-n-ai/pai-textbook/internal/content"
)

func TestExtractID(t *testing.T) {
	const id = "dQw4w9WgXcQ"

	tests := []struct {
		name string
		url  string
	}{
		{"watch", "https://www.youtube.com/watch?v=" + id},
		{"watch with extra params", "https://www.youtube.com/watch?feature=share&v=" + id + "&t=42s"},
		{"short", "https://youtu.be/" + id},
		{"short with time", "https://youtu.be/" + id + "?t=10"},
		{"embed", "https://www.youtube.com/embed/" + id},
		{"v path", "https://www.youtube.com/v/" + id},
		{"no scheme", "youtube.com/watch?v=" + id},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractID(tt.url)
			if err != nil {
				t.Fatalf("ExtractID(%q) error = %v", tt.url, err)
			}
			if got != id {
				t.Errorf("ExtractID(%q) = %q, want %q", tt.url, got, id)
			}
		})
	}
}

func TestExtractID_NotFound(t *testing.T) {
	for _, u := range []string{
		"",
		"https://vimeo.com/123456",
		"https://www.youtube.com/watch?v=short",
		"not a url",
	} {
		_, err := ExtractID(u)
		var nf *content.NotFoundError
		if !errors.As(err, &nf) {
			t.Errorf("ExtractID(%q) error = %v, want *NotFoundError", u, err)
		}
	}
}

func TestEmbedURL(t *testing.T) {
	got := EmbedURL("dQw4w9WgXcQ", "https://book.example.com")
	want := "https://www.youtube.com/embed/dQw4w9WgXcQ?enablejsapi=1&origin=https%3A%2F%2Fbook.example.com"
	if got != want {
		t.Errorf("EmbedURL() = %q, want %q", got, want)
	}
	if got := EmbedURL("dQw4w9WgXcQ", ""); strings.Contains(got, "origin") {
		t.Errorf("EmbedURL() without origin = %q", got)
	}
	if got := PlainEmbedURL("dQw4w9WgXcQ"); got != "https://www.youtube.com/embed/dQw4w9WgXcQ" {
		t.Errorf("PlainEmbedURL() = %q", got)
	}
}
