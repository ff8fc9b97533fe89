package web_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

type wsFrame struct {
	Type     string
	Session  string
	Snapshot *struct {
		CurrentTime float64 `json:"current_time"`
		Playing     bool
		Elapsed     string
		Active      []int
	}
	Message map[string]any
	Error   string
}

func dialPlayer(t *testing.T, query string) (*websocket.Conn, context.Context) {
	t.Helper()
	ts := httptest.NewServer(newServer(t, nil))
	t.Cleanup(ts.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/ws/player"+query, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "") })
	return conn, ctx
}

func readFrame(t *testing.T, ctx context.Context, conn *websocket.Conn) wsFrame {
	t.Helper()
	var f wsFrame
	if err := wsjson.Read(ctx, conn, &f); err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	return f
}

func send(t *testing.T, ctx context.Context, conn *websocket.Conn, v any) {
	t.Helper()
	if err := wsjson.Write(ctx, conn, v); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
}

func TestPlayer_Session(t *testing.T) {
	conn, ctx := dialPlayer(t, "?transcript=./exam.json&page=unit1/index.md")

	hello := readFrame(t, ctx, conn)
	if hello.Type != "command" || hello.Message["event"] != "listening" || hello.Message["id"] != "ytplayer" {
		t.Fatalf("handshake frame = %+v", hello)
	}
	if hello.Session == "" {
		t.Error("handshake has no session id")
	}

	// Messages from other origins produce no reply, so the next frame
	// answers the info delivery that follows.
	send(t, ctx, conn, map[string]string{
		"type":   "player_message",
		"origin": "https://evil.example.com",
		"data":   `{"event":"infoDelivery","info":{"currentTime":500}}`,
	})
	send(t, ctx, conn, map[string]string{
		"type":   "player_message",
		"origin": "https://www.youtube.com",
		"data":   `{"event":"infoDelivery","info":{"currentTime":12.5,"duration":60,"playerState":1}}`,
	})

	snap := readFrame(t, ctx, conn)
	if snap.Type != "snapshot" || snap.Snapshot == nil {
		t.Fatalf("frame = %+v, want snapshot", snap)
	}
	if snap.Session != hello.Session {
		t.Errorf("session changed from %q to %q", hello.Session, snap.Session)
	}
	if snap.Snapshot.CurrentTime != 12.5 || !snap.Snapshot.Playing || snap.Snapshot.Elapsed != "0:12" {
		t.Errorf("snapshot = %+v", *snap.Snapshot)
	}
	if len(snap.Snapshot.Active) != 1 || snap.Snapshot.Active[0] != 1 {
		t.Errorf("active = %v, want [1]", snap.Snapshot.Active)
	}

	send(t, ctx, conn, map[string]string{"type": "control", "action": "toggle"})
	cmd := readFrame(t, ctx, conn)
	if cmd.Type != "command" || cmd.Message["func"] != "pauseVideo" {
		t.Errorf("toggle reply = %+v, want pauseVideo", cmd)
	}

	send(t, ctx, conn, map[string]any{"type": "control", "action": "seek", "value": 60})
	cmd = readFrame(t, ctx, conn)
	args, _ := cmd.Message["args"].([]any)
	if cmd.Message["func"] != "seekTo" || len(args) != 2 || args[0] != 60.0 || args[1] != true {
		t.Errorf("seek reply = %+v, want seekTo [60 true]", cmd)
	}

	send(t, ctx, conn, map[string]any{"type": "control", "action": "rate", "value": 0})
	if f := readFrame(t, ctx, conn); f.Type != "error" {
		t.Errorf("zero rate reply = %+v, want error", f)
	}

	send(t, ctx, conn, map[string]string{"type": "player_message", "origin": "https://www.youtube.com", "data": "{broken"})
	if f := readFrame(t, ctx, conn); f.Type != "error" || !strings.Contains(f.Error, "invalid player message") {
		t.Errorf("malformed message reply = %+v, want error", f)
	}
}

func TestPlayer_BadTranscript(t *testing.T) {
	rec := get(t, newServer(t, nil), "/ws/player?transcript=./missing.json&page=unit1/index.md")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}
