package video

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/p-n-ai/pai-textbook/internal/content"
)

// Segment is one timed line of a transcript.
type Segment struct {
	Start float64 `json:"start"`
	Text  string  `json:"text"`
}

// TranscriptLoader reads transcripts either inline or from the content store.
type TranscriptLoader struct {
	source content.Source
	root   string
}

// NewTranscriptLoader reads transcript files from source. Relative file
// references live under root.
func NewTranscriptLoader(source content.Source, root string) *TranscriptLoader {
	return &TranscriptLoader{source: source, root: strings.Trim(root, "/")}
}

// IsFileRef reports whether src names a transcript file rather than holding
// inline JSON.
func IsFileRef(src string) bool {
	return strings.HasPrefix(src, "./") ||
		strings.HasPrefix(src, "/") ||
		strings.HasSuffix(src, ".txt") ||
		strings.HasSuffix(src, ".json")
}

// Path returns the content path of a transcript file reference.
//
//	/transcripts/a.json  -> transcripts/a.json (root-relative)
//	./a.json             -> <root>/<page dir>/a.json
//	a.json               -> <root>/a.json
func (l *TranscriptLoader) Path(src, currentPath string) string {
	switch {
	case strings.HasPrefix(src, "/"):
		return strings.TrimPrefix(src, "/")
	case strings.HasPrefix(src, "./"):
		return content.Join(content.Join(l.root, content.PageDir(currentPath)), src[2:])
	default:
		return content.Join(l.root, src)
	}
}

// Load returns the transcript for src. Inline sources are parsed directly.
// Missing or unreadable files are *content.LoadError; malformed JSON is
// *content.ParseError.
func (l *TranscriptLoader) Load(ctx context.Context, src, currentPath string) ([]Segment, error) {
	if src == "" {
		return nil, nil
	}
	if !IsFileRef(src) {
		return ParseTranscript([]byte(src))
	}

	path := l.Path(src, currentPath)
	data, err := l.source.Open(ctx, path)
	if err != nil {
		return nil, &content.LoadError{Path: path, Reason: "failed to load transcript", Err: err}
	}
	return ParseTranscript(data)
}

// ParseTranscript decodes a JSON array of {start, text} segments.
func ParseTranscript(data []byte) ([]Segment, error) {
	var segs []Segment
	if err := json.Unmarshal(data, &segs); err != nil {
		return nil, &content.ParseError{Input: truncate(string(data), 64), Reason: "invalid transcript", Err: err}
	}
	for i, s := range segs {
		if s.Start < 0 {
			return nil, &content.ParseError{Input: truncate(string(data), 64), Reason: fmt.Sprintf("segment %d has negative start", i)}
		}
	}
	return segs, nil
}

// FormatTimestamp renders seconds as m:ss, or h:mm:ss from one hour up.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
