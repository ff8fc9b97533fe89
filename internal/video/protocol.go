package video

import (
	"encoding/json"
	"errors"

	"github.com/p-n-ai/pai-textbook/internal/content"
)

// Player states reported in infoDelivery messages.
const (
	StatePlaying = 1
	StatePaused  = 2
)

// ListenerID is the id announced in the listening handshake.
const ListenerID = "ytplayer"

// Message is an outbound message posted to the player frame.
type Message struct {
	Event string `json:"event"`
	Func  string `json:"func,omitempty"`
	Args  []any  `json:"args,omitempty"`
	ID    string `json:"id,omitempty"`
}

// Command builds a player command message.
func Command(fn string, args ...any) Message {
	if args == nil {
		args = []any{}
	}
	return Message{Event: "command", Func: fn, Args: args}
}

// Listening builds the handshake that turns on infoDelivery messages.
func Listening(id string) Message {
	return Message{Event: "listening", ID: id}
}

// MarshalJSON always emits args for commands, even when empty.
func (m Message) MarshalJSON() ([]byte, error) {
	if m.Event == "command" {
		args := m.Args
		if args == nil {
			args = []any{}
		}
		return json.Marshal(struct {
			Event string `json:"event"`
			Func  string `json:"func"`
			Args  []any  `json:"args"`
		}{m.Event, m.Func, args})
	}
	type plain Message
	return json.Marshal(plain(m))
}

// Info is the player state carried by an infoDelivery message. Nil fields
// were absent from the message.
type Info struct {
	CurrentTime *float64 `json:"currentTime,omitempty"`
	Duration    *float64 `json:"duration,omitempty"`
	PlayerState *int     `json:"playerState,omitempty"`
}

type inbound struct {
	Event string `json:"event"`
	Info  *Info  `json:"info"`
}

// ErrIgnored marks inbound messages that are well formed but carry nothing
// for the tracker: wrong origin, other events, or no info.
var ErrIgnored = errors.New("player message ignored")

// ParseInbound decodes an inbound player message. Messages from any origin
// other than PlayerOrigin are ignored.
func ParseInbound(origin string, data []byte) (Info, error) {
	if origin != PlayerOrigin {
		return Info{}, ErrIgnored
	}
	var msg inbound
	if err := json.Unmarshal(data, &msg); err != nil {
		return Info{}, &content.ParseError{Input: string(data), Reason: "invalid player message", Err: err}
	}
	if msg.Event != "infoDelivery" || msg.Info == nil {
		return Info{}, ErrIgnored
	}
	return *msg.Info, nil
}
