package render

import (
	"html/template"
	"io"

	"github.com/p-n-ai/pai-textbook/internal/video"
)

// DefaultExamTitle is shown when an exam browser has no title.
const DefaultExamTitle = "Student Exam Recording"

// ExamBrowserOptions describes one exam recording. TranscriptErr, when set,
// replaces the transcript with an error message.
type ExamBrowserOptions struct {
	URL           string
	Title         string
	Transcript    []video.Segment
	TranscriptErr error
}

type examBrowserData struct {
	Title           string
	EmbedURL        string
	TranscriptError string
	Transcript      []transcriptRow
	HasTranscript   bool
}

type transcriptRow struct {
	Start float64
	Stamp string
	Text  string
}

var examBrowserTemplate = template.Must(template.New("exam-browser").Parse(`<div class="exam-browser">
<div class="exam-browser-header">
<h3 class="exam-browser-title">{{.Title}}</h3>
<div class="exam-browser-info"><span class="exam-browser-badge">Exam Footage</span></div>
</div>
<div class="exam-browser-player">
<iframe width="100%" height="450" src="{{.EmbedURL}}" title="{{.Title}}" frameborder="0" allow="accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture; web-share" referrerpolicy="strict-origin-when-cross-origin" allowfullscreen></iframe>
</div>
<div class="exam-browser-controls">
<div class="exam-browser-timeline">
<span class="time-display" data-role="elapsed">0:00</span>
<div class="progress-bar"><div class="progress-fill" data-role="progress"></div></div>
<span class="time-display" data-role="total">0:00</span>
</div>
<div class="exam-browser-buttons">
<div class="control-group">
<button class="control-button" data-action="seek" data-delta="-10" title="Rewind 10 seconds">⏪ 10s</button>
<button class="control-button play-pause" data-action="toggle" title="Play">▶</button>
<button class="control-button" data-action="seek" data-delta="10" title="Forward 10 seconds">10s ⏩</button>
</div>
<div class="control-group speed-controls">
<span class="control-label">Speed:</span>
<button class="control-button speed-button" data-action="rate" data-rate="0.5" title="0.5x speed">0.5x</button>
<button class="control-button speed-button" data-action="rate" data-rate="1" title="Normal speed">1x</button>
<button class="control-button speed-button" data-action="rate" data-rate="1.5" title="1.5x speed">1.5x</button>
<button class="control-button speed-button" data-action="rate" data-rate="2" title="2x speed">2x</button>
</div>
</div>
</div>
<div class="exam-browser-notes">
<p>💡 <strong>Tip:</strong> Use the playback controls to review specific sections of the exam. Adjust the speed to analyze responses more carefully or skip through quickly.</p>
</div>
{{- if .TranscriptError}}
<div class="exam-browser-transcript">
<div class="transcript-error">Error loading transcript: {{.TranscriptError}}</div>
</div>
{{- else if .HasTranscript}}
<div class="exam-browser-transcript">
<div class="transcript-header"><h4>Transcript</h4><span class="transcript-count">{{len .Transcript}} segments</span></div>
<div class="transcript-content">
{{- range .Transcript}}
<div class="transcript-item" data-start="{{.Start}}"><button class="transcript-timestamp" data-action="jump" data-start="{{.Start}}" title="Jump to {{.Stamp}}">{{.Stamp}}</button><span class="transcript-text">{{.Text}}</span></div>
{{- end}}
</div>
</div>
{{- end}}
<script>
(function () {
  var root = document.currentScript.closest(".exam-browser");
  if (!root) { return; }
  var frame = root.querySelector("iframe");
  var origin = "https://www.youtube.com";
  var state = { currentTime: 0, duration: 0, playing: false };

  function send(fn, args) {
    if (!frame.contentWindow) { return; }
    frame.contentWindow.postMessage(JSON.stringify({ event: "command", func: fn, args: args || [] }), origin);
  }

  function pad(n) { return n < 10 ? "0" + n : String(n); }

  function stamp(seconds) {
    var total = Math.max(0, Math.floor(seconds));
    var h = Math.floor(total / 3600);
    var m = Math.floor((total % 3600) / 60);
    var s = total % 60;
    return h > 0 ? h + ":" + pad(m) + ":" + pad(s) : m + ":" + pad(s);
  }

  function update() {
    root.querySelector("[data-role=elapsed]").textContent = stamp(state.currentTime);
    root.querySelector("[data-role=total]").textContent = stamp(state.duration);
    var pct = state.duration > 0 ? (state.currentTime / state.duration) * 100 : 0;
    root.querySelector("[data-role=progress]").style.width = pct + "%";
    var toggle = root.querySelector("[data-action=toggle]");
    toggle.textContent = state.playing ? "⏸" : "▶";
    toggle.title = state.playing ? "Pause" : "Play";
    root.querySelectorAll(".transcript-item").forEach(function (item) {
      var start = parseFloat(item.getAttribute("data-start"));
      item.classList.toggle("active", Math.abs(state.currentTime - start) < 2);
    });
  }

  frame.addEventListener("load", function () {
    frame.contentWindow.postMessage(JSON.stringify({ event: "listening", id: "ytplayer" }), origin);
  });

  window.addEventListener("message", function (ev) {
    if (ev.origin !== origin || ev.source !== frame.contentWindow) { return; }
    var data;
    try { data = JSON.parse(ev.data); } catch (e) { return; }
    if (data.event !== "infoDelivery" || !data.info) { return; }
    if (data.info.currentTime !== undefined) { state.currentTime = data.info.currentTime; }
    if (data.info.duration !== undefined) { state.duration = data.info.duration; }
    if (data.info.playerState !== undefined) { state.playing = data.info.playerState === 1; }
    update();
  });

  root.addEventListener("click", function (ev) {
    var btn = ev.target.closest("[data-action]");
    if (!btn) { return; }
    switch (btn.getAttribute("data-action")) {
    case "toggle":
      send(state.playing ? "pauseVideo" : "playVideo");
      break;
    case "seek":
      var target = state.currentTime + parseFloat(btn.getAttribute("data-delta"));
      send("seekTo", [Math.max(0, Math.min(target, state.duration)), true]);
      break;
    case "rate":
      send("setPlaybackRate", [parseFloat(btn.getAttribute("data-rate"))]);
      break;
    case "jump":
      send("seekTo", [parseFloat(btn.getAttribute("data-start")), true]);
      break;
    }
  });
})();
</script>
</div>
`))

var examBrowserInvalidTemplate = template.Must(template.New("exam-browser-invalid").Parse(
	`<div class="exam-browser-error"><p>Invalid YouTube URL: {{.}}</p></div>
`))

// ExamBrowser writes the recording player with its controls and transcript.
// A URL without a video id renders an error message instead.
func (r *Renderer) ExamBrowser(w io.Writer, opts ExamBrowserOptions) error {
	id, err := video.ExtractID(opts.URL)
	if err != nil {
		return examBrowserInvalidTemplate.Execute(w, opts.URL)
	}

	data := examBrowserData{
		Title:         opts.Title,
		EmbedURL:      r.embedURL(id),
		HasTranscript: opts.Transcript != nil,
	}
	if data.Title == "" {
		data.Title = DefaultExamTitle
	}
	if opts.TranscriptErr != nil {
		data.TranscriptError = opts.TranscriptErr.Error()
	}
	for _, s := range opts.Transcript {
		data.Transcript = append(data.Transcript, transcriptRow{
			Start: s.Start,
			Stamp: video.FormatTimestamp(s.Start),
			Text:  s.Text,
		})
	}
	return examBrowserTemplate.Execute(w, data)
}
