package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"

	"github.com/p-n-ai/pai-textbook/internal/video"
)

// Frames a player page sends over /ws/player.
const (
	frameInfo    = "player_message" // a message the embedded player posted to the page
	frameControl = "control"        // a button press
)

// Frames the server sends back.
const (
	frameSnapshot = "snapshot"
	frameCommand  = "command"
	frameError    = "error"
)

type playerRequest struct {
	Type   string  `json:"type"`
	Origin string  `json:"origin,omitempty"`
	Data   string  `json:"data,omitempty"`
	Action string  `json:"action,omitempty"` // toggle, seek, seek_to, rate
	Value  float64 `json:"value,omitempty"`
}

type playerFrame struct {
	Type     string          `json:"type"`
	Session  string          `json:"session"`
	Snapshot *video.Snapshot `json:"snapshot,omitempty"`
	Message  *video.Message  `json:"message,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// handlePlayer keeps one exam browser's playback state on the server. The
// page forwards what the embedded player posts and its control presses; the
// server answers with snapshots for the transcript and commands to post back
// to the player.
func (s *Server) handlePlayer(w http.ResponseWriter, r *http.Request) {
	var q playerQuery
	if err := bindQuery(r.URL.Query(), &q); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var transcript []video.Segment
	if ref := q.transcriptRef(); ref != "" {
		var err error
		transcript, err = s.transcripts.Load(r.Context(), ref, q.Page)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: s.wsOrigins})
	if err != nil {
		slog.Warn("websocket accept failed", "error", err)
		return
	}
	defer conn.CloseNow()

	session := newPlayerSession(uuid.NewString(), transcript)
	ctx := r.Context()
	slog.Info("player session started", "session", session.id, "segments", len(transcript))

	listening := video.Listening(video.ListenerID)
	if err := session.write(ctx, conn, playerFrame{Type: frameCommand, Message: &listening}); err != nil {
		return
	}

	for {
		var req playerRequest
		if err := wsjson.Read(ctx, conn, &req); err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				slog.Info("player session closed", "session", session.id)
			default:
				if !errors.Is(err, context.Canceled) {
					slog.Warn("player session read failed", "session", session.id, "error", err)
				}
			}
			return
		}

		frame, ok := session.handle(req)
		if !ok {
			continue
		}
		if err := session.write(ctx, conn, frame); err != nil {
			return
		}
	}
}

type playerSession struct {
	id         string
	tracker    *video.Tracker
	transcript []video.Segment
}

func newPlayerSession(id string, transcript []video.Segment) *playerSession {
	return &playerSession{id: id, tracker: video.NewTracker(), transcript: transcript}
}

// handle returns the reply to req. ok is false when nothing should be sent.
func (p *playerSession) handle(req playerRequest) (frame playerFrame, ok bool) {
	switch req.Type {
	case frameInfo:
		info, err := video.ParseInbound(req.Origin, []byte(req.Data))
		if errors.Is(err, video.ErrIgnored) {
			return playerFrame{}, false
		}
		if err != nil {
			return playerFrame{Type: frameError, Error: err.Error()}, true
		}
		p.tracker.Apply(info)
		snap := p.tracker.Snapshot(p.transcript)
		return playerFrame{Type: frameSnapshot, Snapshot: &snap}, true

	case frameControl:
		var msg video.Message
		switch req.Action {
		case "toggle":
			msg = p.tracker.TogglePlay()
		case "seek":
			msg = p.tracker.Seek(req.Value)
		case "seek_to":
			msg = video.SeekTo(req.Value)
		case "rate":
			if req.Value <= 0 {
				return playerFrame{Type: frameError, Error: "rate must be positive"}, true
			}
			msg = video.SetRate(req.Value)
		default:
			return playerFrame{Type: frameError, Error: "unknown action " + req.Action}, true
		}
		return playerFrame{Type: frameCommand, Message: &msg}, true
	}
	return playerFrame{Type: frameError, Error: "unknown frame type " + req.Type}, true
}

func (p *playerSession) write(ctx context.Context, conn *websocket.Conn, frame playerFrame) error {
	frame.Session = p.id
	if err := wsjson.Write(ctx, conn, frame); err != nil {
		slog.Warn("player session write failed", "session", p.id, "error", err)
		return err
	}
	return nil
}
