package content_test

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"github.com/p-n-ai/pai-textbook/internal/content"
)

func TestService_GetDocument(t *testing.T) {
	fsys := fstest.MapFS{
		"content/unit1/q1.yml": {Data: []byte("id: Q1\nquestion: What?\n")},
		"content/unit1/bad.yml": {Data: []byte("id: [\n")},
	}
	svc := content.NewService(content.NewFSSource(fsys))

	doc, err := svc.GetDocument(t.Context(), "content/unit1/q1.yml")
	if err != nil {
		t.Fatalf("GetDocument() error = %v", err)
	}
	rec, err := doc.Record()
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if rec["id"] != "Q1" {
		t.Errorf("id = %v, want Q1", rec["id"])
	}
}

func TestService_GetDocument_Errors(t *testing.T) {
	fsys := fstest.MapFS{
		"content/bad.yml": {Data: []byte("id: [\n")},
	}
	svc := content.NewService(content.NewFSSource(fsys))

	tests := []struct {
		name       string
		path       string
		wantReason string
	}{
		{"missing", "content/missing.yml", "not found"},
		{"malformed", "content/bad.yml", "parse failed"},
		{"escaping root", "../etc/passwd", "fetch failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.GetDocument(t.Context(), tt.path)
			var le *content.LoadError
			if !errors.As(err, &le) {
				t.Fatalf("error = %v, want *LoadError", err)
			}
			if le.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", le.Reason, tt.wantReason)
			}
			if le.Path != tt.path {
				t.Errorf("Path = %q, want %q", le.Path, tt.path)
			}
		})
	}
}

type memCache struct {
	data    map[string][]byte
	failGet bool
	sets    int
}

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	if m.failGet {
		return nil, false, errors.New("cache down")
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.data[key] = value
	m.sets++
	return nil
}

type countingSource struct {
	content.Source
	calls int
}

func (c *countingSource) Open(ctx context.Context, path string) ([]byte, error) {
	c.calls++
	return c.Source.Open(ctx, path)
}

func TestCachedSource(t *testing.T) {
	fsys := fstest.MapFS{"content/a.yml": {Data: []byte("id: A\n")}}
	next := &countingSource{Source: content.NewFSSource(fsys)}
	cache := &memCache{data: map[string][]byte{}}
	src := content.NewCachedSource(next, cache, time.Minute)

	for i := 0; i < 3; i++ {
		data, err := src.Open(t.Context(), "content/a.yml")
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		if string(data) != "id: A\n" {
			t.Errorf("Open() = %q", data)
		}
	}
	if next.calls != 1 {
		t.Errorf("underlying source called %d times, want 1", next.calls)
	}
	if _, ok := cache.data["textbook:doc:content/a.yml"]; !ok {
		t.Error("cache entry not written")
	}
}

func TestCachedSource_CacheFailureFallsThrough(t *testing.T) {
	fsys := fstest.MapFS{"content/a.yml": {Data: []byte("id: A\n")}}
	next := &countingSource{Source: content.NewFSSource(fsys)}
	cache := &memCache{data: map[string][]byte{}, failGet: true}
	src := content.NewCachedSource(next, cache, time.Minute)

	if _, err := src.Open(t.Context(), "content/a.yml"); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if next.calls != 1 {
		t.Errorf("underlying source called %d times, want 1", next.calls)
	}
}

func TestCachedSource_MissingNotCached(t *testing.T) {
	next := content.NewFSSource(fstest.MapFS{})
	cache := &memCache{data: map[string][]byte{}}
	src := content.NewCachedSource(next, cache, time.Minute)

	_, err := src.Open(t.Context(), "content/none.yml")
	if !errors.Is(err, content.ErrNotExist) {
		t.Fatalf("Open() error = %v, want ErrNotExist", err)
	}
	if cache.sets != 0 {
		t.Errorf("cache sets = %d, want 0", cache.sets)
	}
}
