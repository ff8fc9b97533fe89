package render

import (
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"strings"

	"github.com/p-n-ai/pai-textbook/internal/curriculum"
	"github.com/p-n-ai/pai-textbook/internal/video"
	"github.com/p-n-ai/pai-textbook/internal/vocab"
)

// QuestionBankOptions controls which parts of each question are shown and
// which start expanded.
type QuestionBankOptions struct {
	Title            string
	ShowAnswers      bool
	ShowVideos       bool
	ShowAnswerLevels bool
	AnswersOpen      bool
	VideosOpen       bool
	LevelsOpen       bool
	MaxVideos        int // 0 shows all
	Policy           vocab.Policy
	Open             []ExpansionKey
}

// DefaultQuestionBankOptions shows everything with main answers open and
// the other sections closed.
func DefaultQuestionBankOptions() QuestionBankOptions {
	return QuestionBankOptions{
		ShowAnswers:      true,
		ShowVideos:       true,
		ShowAnswerLevels: true,
		AnswersOpen:      true,
	}
}

type questionBankData struct {
	Title     string
	Questions []questionView
}

type questionView struct {
	Key      string
	Question template.HTML
	Answer   *sectionView
	Videos   *videosView
	Levels   []sectionView
	Topics   string
}

type sectionView struct {
	Section string
	Label   string
	Open    bool
	Body    template.HTML
}

type videosView struct {
	Open   bool
	Count  int
	Embeds []embedView
}

type embedView struct {
	Src   string
	Title string
}

var questionBankTemplate = template.Must(template.New("exam-questions").Parse(`<div class="exam-questions">
{{- if .Title}}
<h3 class="exam-questions-title">{{.Title}}</h3>
{{- end}}
{{- range .Questions}}
<div class="question-item" data-question="{{.Key}}">
<div class="question-text">{{.Question}}</div>
{{- with .Answer}}
<details class="main-answer-section" data-section="{{.Section}}"{{if .Open}} open{{end}}>
<summary class="accordion-header answer-toggle"><span class="accordion-title">{{.Label}}</span></summary>
<div class="answer main-answer">{{.Body}}</div>
</details>
{{- end}}
{{- with .Videos}}
<details class="example-videos-section" data-section="videos"{{if .Open}} open{{end}}>
<summary class="accordion-header videos-toggle"><span class="accordion-title">📺 Example Videos <span class="video-count-badge">{{.Count}}</span></span></summary>
<div class="accordion-content videos-content">
{{- range .Embeds}}
<div class="video-container"><iframe width="560" height="315" src="{{.Src}}" title="{{.Title}}" frameborder="0" allow="accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture" allowfullscreen></iframe></div>
{{- end}}
</div>
</details>
{{- end}}
{{- if .Levels}}
<div class="answer-levels">
{{- range .Levels}}
<details class="answer-accordion" data-section="{{.Section}}"{{if .Open}} open{{end}}>
<summary class="accordion-header"><span class="accordion-title">{{.Label}}</span></summary>
<div class="accordion-content"><div class="answer">{{.Body}}</div></div>
</details>
{{- end}}
</div>
{{- end}}
{{- if .Topics}}
<div class="topics"><strong>Topics:</strong> {{.Topics}}</div>
{{- end}}
</div>
{{- end}}
</div>
`))

var questionBankErrorTemplate = template.Must(template.New("exam-questions-error").Parse(
	`<div class="exam-questions-error">Error loading questions: {{.}}</div>
`))

// QuestionBank writes the question list. Sections whose field is absent
// from a question are left out.
func (r *Renderer) QuestionBank(w io.Writer, questions []curriculum.Question, opts QuestionBankOptions) error {
	exp := InitialExpansion(questions, opts)
	data := questionBankData{Title: opts.Title, Questions: make([]questionView, 0, len(questions))}

	for i, q := range questions {
		v, err := r.questionView(q, q.Key(i), exp, opts)
		if err != nil {
			return err
		}
		data.Questions = append(data.Questions, v)
	}
	return questionBankTemplate.Execute(w, data)
}

// QuestionBankError writes the message shown in place of the questions when
// they could not be loaded.
func (r *Renderer) QuestionBankError(w io.Writer, err error) error {
	return questionBankErrorTemplate.Execute(w, err.Error())
}

func (r *Renderer) questionView(q curriculum.Question, key string, exp Expansion, opts QuestionBankOptions) (questionView, error) {
	text, err := r.md.Render(q.Question)
	if err != nil {
		return questionView{}, fmt.Errorf("question %s: %w", key, err)
	}
	v := questionView{Key: key, Question: text, Topics: strings.Join(q.Topics, ", ")}

	if opts.ShowAnswers && q.Answer != "" {
		body, err := vocab.RenderHTML(r.md, q.Answer, vocabItems(q.VocabAnswer), opts.Policy)
		if err != nil {
			return questionView{}, fmt.Errorf("question %s answer: %w", key, err)
		}
		v.Answer = &sectionView{
			Section: SectionAnswer,
			Label:   "💡 Answer",
			Open:    exp.IsOpen(key, SectionAnswer),
			Body:    body,
		}
	}

	if opts.ShowVideos && len(q.ExampleVideos) > 0 {
		v.Videos = exampleVideos(q.ExampleVideos, opts.MaxVideos)
		v.Videos.Open = exp.IsOpen(key, SectionVideos)
	}

	if opts.ShowAnswerLevels {
		for _, l := range curriculum.Levels {
			answer := q.LevelAnswer(l)
			if answer == "" {
				continue
			}
			body, err := vocab.RenderHTML(r.md, answer, vocabItems(q.LevelVocab(l)), opts.Policy)
			if err != nil {
				return questionView{}, fmt.Errorf("question %s %s: %w", key, l.Key, err)
			}
			v.Levels = append(v.Levels, sectionView{
				Section: l.Key,
				Label:   l.Label,
				Open:    exp.IsOpen(key, l.Key),
				Body:    body,
			})
		}
	}
	return v, nil
}

// exampleVideos caps urls at limit and embeds those with a recognisable id.
// The badge counts the capped list, including urls that fail to embed.
func exampleVideos(urls []string, limit int) *videosView {
	if limit > 0 && len(urls) > limit {
		urls = urls[:limit]
	}
	v := &videosView{Count: len(urls)}
	for i, u := range urls {
		id, err := video.ExtractID(u)
		if err != nil {
			slog.Debug("skipping example video", "url", u, "error", err)
			continue
		}
		v.Embeds = append(v.Embeds, embedView{
			Src:   video.PlainEmbedURL(id),
			Title: fmt.Sprintf("Example video %d", i+1),
		})
	}
	return v
}

func vocabItems(items []curriculum.VocabItem) []vocab.Item {
	if len(items) == 0 {
		return nil
	}
	out := make([]vocab.Item, len(items))
	for i, it := range items {
		out[i] = vocab.Item{Word: it.Word, Definition: it.Definition}
	}
	return out
}
