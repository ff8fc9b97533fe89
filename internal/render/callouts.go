package render

import (
	"fmt"
	"html/template"
	"io"
)

var calloutIcons = map[string]string{
	"tip":       "💡",
	"warning":   "⚠️",
	"info":      "ℹ️",
	"success":   "✅",
	"note":      "📝",
	"professor": "👨‍🏫",
}

// CalloutIcon returns the icon for a callout type. Unknown types get the
// tip icon.
func CalloutIcon(kind string) string {
	if icon, ok := calloutIcons[kind]; ok {
		return icon
	}
	return calloutIcons["tip"]
}

type calloutData struct {
	Type string
	Icon string
	Body template.HTML
}

var proTipTemplate = template.Must(template.New("protip").Parse(
	`<div class="protip protip-{{.Type}}"><span class="protip-icon">{{.Icon}}</span><div class="protip-content">{{.Body}}</div></div>
`))

var professorTemplate = template.Must(template.New("as-a-professor").Parse(`<div class="as-a-professor">
<div class="professor-header"><span class="professor-icon">👨‍🏫</span><span class="professor-label">As a Professor</span></div>
<div class="professor-content">{{.}}</div>
</div>
`))

// ProTip writes a callout box. An empty kind is a tip. body is markdown.
func (r *Renderer) ProTip(w io.Writer, kind, body string) error {
	if kind == "" {
		kind = "tip"
	}
	html, err := r.md.Render(body)
	if err != nil {
		return fmt.Errorf("protip: %w", err)
	}
	return proTipTemplate.Execute(w, calloutData{Type: kind, Icon: CalloutIcon(kind), Body: html})
}

// AsAProfessor writes the professor aside. body is markdown.
func (r *Renderer) AsAProfessor(w io.Writer, body string) error {
	html, err := r.md.Render(body)
	if err != nil {
		return fmt.Errorf("as a professor: %w", err)
	}
	return professorTemplate.Execute(w, html)
}
