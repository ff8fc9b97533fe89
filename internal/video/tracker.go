package video

import (
	"math"
	"sync"
)

// activeWindow is how close playback must be to a segment start for the
// segment to count as active, in seconds.
const activeWindow = 2.0

// Snapshot is the playback state sent to transcript followers.
type Snapshot struct {
	CurrentTime float64 `json:"current_time"`
	Duration    float64 `json:"duration"`
	Playing     bool    `json:"playing"`
	Elapsed     string  `json:"elapsed"`
	Total       string  `json:"total"`
	Progress    float64 `json:"progress"`
	Active      []int   `json:"active"`
}

// Tracker follows one player's state from its infoDelivery messages.
type Tracker struct {
	mu          sync.Mutex
	currentTime float64
	duration    float64
	playing     bool
}

// NewTracker creates a tracker at time zero, paused.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Apply merges the fields present in info.
func (t *Tracker) Apply(info Info) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if info.CurrentTime != nil {
		t.currentTime = *info.CurrentTime
	}
	if info.Duration != nil {
		t.duration = *info.Duration
	}
	if info.PlayerState != nil {
		t.playing = *info.PlayerState == StatePlaying
	}
}

// Snapshot returns the current state with the transcript segments that are
// active at the current time.
func (t *Tracker) Snapshot(transcript []Segment) Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	progress := 0.0
	if t.duration > 0 {
		progress = t.currentTime / t.duration
	}
	return Snapshot{
		CurrentTime: t.currentTime,
		Duration:    t.duration,
		Playing:     t.playing,
		Elapsed:     FormatTimestamp(t.currentTime),
		Total:       FormatTimestamp(t.duration),
		Progress:    progress,
		Active:      ActiveSegments(transcript, t.currentTime),
	}
}

// TogglePlay returns the command that flips play/pause.
func (t *Tracker) TogglePlay() Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.playing {
		return Command("pauseVideo")
	}
	return Command("playVideo")
}

// Seek returns the command that moves playback by delta seconds, clamped to
// the video bounds.
func (t *Tracker) Seek(delta float64) Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	target := math.Max(0, math.Min(t.currentTime+delta, t.duration))
	return Command("seekTo", target, true)
}

// SeekTo returns the command that jumps to an absolute time.
func SeekTo(seconds float64) Message {
	return Command("seekTo", math.Max(0, seconds), true)
}

// SetRate returns the command that changes playback speed.
func SetRate(rate float64) Message {
	return Command("setPlaybackRate", rate)
}

// ActiveSegments returns the indexes of segments starting within two seconds
// of t.
func ActiveSegments(transcript []Segment, t float64) []int {
	active := []int{}
	for i, s := range transcript {
		if math.Abs(t-s.Start) < activeWindow {
			active = append(active, i)
		}
	}
	return active
}
