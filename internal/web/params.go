package web

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/form/v4"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

type questionsQuery struct {
	Map      string `query:"map" validate:"required"`
	Page     string `query:"page"`
	Concept  string `query:"concept"`
	Question string `query:"question"`
}

type examQuestionsQuery struct {
	Map              string `query:"map" validate:"required"`
	Page             string `query:"page"`
	Concept          string `query:"concept"`
	Question         string `query:"question"`
	Title            string `query:"title" validate:"max=200"`
	ShowAnswers      *bool  `query:"show_answers"`
	ShowVideos       *bool  `query:"show_videos"`
	ShowAnswerLevels *bool  `query:"show_answer_levels"`
	AnswersOpen      *bool  `query:"answers_open"`
	VideosOpen       *bool  `query:"videos_open"`
	LevelsOpen       *bool  `query:"levels_open"`
	MaxVideos        int    `query:"max_videos" validate:"gte=0"`
	Open             string `query:"open"`
}

type examBrowserQuery struct {
	URL            string `query:"url" validate:"required"`
	Title          string `query:"title" validate:"max=200"`
	Transcript     string `query:"transcript"`
	TranscriptJSON string `query:"transcript_json"`
	Page           string `query:"page"`
}

// transcriptRef prefers transcript_json over transcript.
func (q examBrowserQuery) transcriptRef() string {
	return firstNonEmpty(q.TranscriptJSON, q.Transcript)
}

type calloutQuery struct {
	Type    string `query:"type" validate:"omitempty,alphanum,max=32"`
	Content string `query:"content"`
}

type videoIDQuery struct {
	URL string `query:"url" validate:"required"`
}

type playerQuery struct {
	Transcript     string `query:"transcript"`
	TranscriptJSON string `query:"transcript_json"`
	Page           string `query:"page"`
}

func (q playerQuery) transcriptRef() string {
	return firstNonEmpty(q.TranscriptJSON, q.Transcript)
}

type highlightRequest struct {
	Text            string           `json:"text"`
	Vocab           []highlightVocab `json:"vocab" validate:"dive"`
	EveryOccurrence *bool            `json:"every_occurrence"`
}

type highlightVocab struct {
	Word       string `json:"word" validate:"required"`
	Definition string `json:"definition"`
}

var (
	validate *validator.Validate
	trans    ut.Translator
	decoder  *form.Decoder
)

func init() {
	decoder = form.NewDecoder()
	decoder.SetTagName("query")

	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("query"); name != "" {
			return name
		}
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ = uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		panic(fmt.Sprintf("registering validation translations: %v", err))
	}
}

// validationMessage turns a validation error into one readable line.
func validationMessage(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err.Error()
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fe.Translate(trans))
	}
	return strings.Join(msgs, "; ")
}

// bindQuery decodes query parameters into the fields of dst tagged `query`
// and validates the result. Empty parameters count as absent.
func bindQuery(values url.Values, dst any) error {
	if err := decoder.Decode(dst, nonEmpty(values)); err != nil {
		return errors.New(decodeMessage(err))
	}
	if err := validate.Struct(dst); err != nil {
		return errors.New(validationMessage(err))
	}
	return nil
}

// nonEmpty keeps the first value of every parameter that has one.
func nonEmpty(values url.Values) url.Values {
	out := make(url.Values, len(values))
	for k, vs := range values {
		if len(vs) > 0 && vs[0] != "" {
			out[k] = vs[:1]
		}
	}
	return out
}

func decodeMessage(err error) string {
	var de form.DecodeErrors
	if !errors.As(err, &de) {
		return err.Error()
	}
	names := make([]string, 0, len(de))
	for name := range de {
		names = append(names, name)
	}
	sort.Strings(names)
	msgs := make([]string, 0, len(names))
	for _, name := range names {
		msgs = append(msgs, name+" has an invalid value")
	}
	return strings.Join(msgs, "; ")
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
