package cache

import (
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestParseURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"valid-redis", "redis://localhost:6379", false},
		{"valid-with-db", "redis://localhost:6379/0", false},
		{"valid-with-password", "redis://:secret@localhost:6379/2", false},
		{"wrong-scheme", "http://localhost:6379", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseURL() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNew_UnreachableHost(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping unreachable host test in short mode")
	}

	ctx := t.Context()
	_, err := New(ctx, "redis://localhost:59999")
	if err == nil {
		t.Fatal("New() should return error for unreachable host")
	}
}

func TestGet_ClosedClient(t *testing.T) {
	opts, err := ParseURL("redis://localhost:59999")
	if err != nil {
		t.Fatal(err)
	}
	opts.DialTimeout = 100 * time.Millisecond
	c := &Cache{Client: redis.NewClient(opts)}
	c.Close()

	if _, _, err := c.Get(t.Context(), "k"); err == nil {
		t.Error("Get() on closed client should fail")
	}
	if err := c.Set(t.Context(), "k", []byte("v"), time.Second); err == nil {
		t.Error("Set() on closed client should fail")
	}
}
