// Package candidate repairs untrusted slide data returned by the synthesis
// service into validated slides.
package candidate

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/kirillkom/slidemaker/internal/core/domain"
)

var (
	fenceOpen  = regexp.MustCompile("^```[A-Za-z0-9_+.-]*[ \t]*\r?\n?")
	fenceClose = regexp.MustCompile("\r?\n?[ \t]*```$")
)

// Report counts the field-level repairs made while validating one response.
type Report struct {
	Slides         int
	NonObjects     int
	Repaired       map[string]int
	DroppedBullets int
}

func (r Report) Total() int {
	total := r.NonObjects + r.DroppedBullets
	for _, n := range r.Repaired {
		total += n
	}
	return total
}

type fieldRule struct {
	field  string
	repair func(value any, present bool, index int, slide *domain.Slide) (repaired bool, dropped int)
}

// rules is applied in order to every array element. A rule never fails; it
// writes a default when the value has the wrong shape.
var rules = []fieldRule{
	{field: "title", repair: repairTitle},
	{field: "bullets", repair: repairBullets},
	{field: "speakerNotes", repair: repairSpeakerNotes},
}

type Validator struct {
	logger   *slog.Logger
	onReport func(Report)
}

type Option func(*Validator)

// WithReportHook receives the repair report of every successful validation.
func WithReportHook(hook func(Report)) Option {
	return func(v *Validator) { v.onReport = hook }
}

func New(logger *slog.Logger, opts ...Option) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	v := &Validator{logger: logger}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *Validator) Validate(raw string) ([]domain.Slide, error) {
	slides, report, err := Parse(raw)
	if err != nil {
		v.logger.Warn("candidate_envelope_invalid", "error", err, "response_bytes", len(raw))
		return nil, err
	}
	if report.Total() > 0 {
		v.logger.Info("candidate_repaired",
			"slides", report.Slides,
			"non_objects", report.NonObjects,
			"dropped_bullets", report.DroppedBullets,
			"fields", report.Repaired,
		)
	}
	if v.onReport != nil {
		v.onReport(report)
	}
	return slides, nil
}

// Parse strips optional markdown fences, requires a top-level JSON array and
// repairs every element field by field. Only the envelope can fail.
func Parse(raw string) ([]domain.Slide, Report, error) {
	report := Report{Repaired: map[string]int{}}

	var top any
	if err := json.Unmarshal([]byte(StripFences(raw)), &top); err != nil {
		return nil, report, domain.WrapError(domain.ErrSynthesisEnvelopeInvalid, "parse candidates", err)
	}
	items, ok := top.([]any)
	if !ok {
		return nil, report, domain.WrapError(
			domain.ErrSynthesisEnvelopeInvalid,
			"parse candidates",
			fmt.Errorf("top-level value is %s, not an array", jsonKind(top)),
		)
	}

	slides := make([]domain.Slide, 0, len(items))
	for i, item := range items {
		fields, isObject := item.(map[string]any)
		if !isObject {
			report.NonObjects++
			fields = nil
		}

		var slide domain.Slide
		for _, rule := range rules {
			value, present := fields[rule.field]
			repaired, dropped := rule.repair(value, present, i+1, &slide)
			if repaired && isObject {
				report.Repaired[rule.field]++
			}
			report.DroppedBullets += dropped
		}
		slides = append(slides, slide)
	}
	report.Slides = len(slides)
	return slides, report, nil
}

// StripFences removes a leading ```lang marker and a trailing ``` marker.
func StripFences(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = fenceOpen.ReplaceAllString(text, "")
	text = fenceClose.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

func repairTitle(value any, present bool, index int, slide *domain.Slide) (bool, int) {
	if title, ok := value.(string); ok {
		if trimmed := strings.TrimSpace(title); trimmed != "" {
			slide.Title = trimmed
			return false, 0
		}
	}
	slide.Title = fmt.Sprintf("Slide %d", index)
	return true, 0
}

func repairBullets(value any, present bool, _ int, slide *domain.Slide) (bool, int) {
	list, ok := value.([]any)
	if !ok {
		slide.Bullets = []string{}
		return present, 0
	}

	bullets := make([]string, 0, len(list))
	dropped := 0
	for _, entry := range list {
		text, isString := entry.(string)
		if !isString {
			dropped++
			continue
		}
		bullets = append(bullets, strings.TrimSpace(text))
	}
	slide.Bullets = bullets
	return false, dropped
}

func repairSpeakerNotes(value any, present bool, _ int, slide *domain.Slide) (bool, int) {
	notes, ok := value.(string)
	if !ok {
		slide.SpeakerNotes = ""
		return present, 0
	}
	slide.SpeakerNotes = strings.TrimSpace(notes)
	return false, 0
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "an object"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case float64:
		return "a number"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// IsEnvelopeError reports whether err rejected the whole response.
func IsEnvelopeError(err error) bool {
	return errors.Is(err, domain.ErrSynthesisEnvelopeInvalid)
}
