package candidate

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/kirillkom/slidemaker/internal/core/domain"
)

func TestParseRepairsMalformedFields(t *testing.T) {
	raw := `[{"title":"A","bullets":["x","y"]}, {"bullets":"not-an-array"}]`

	slides, report, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := []domain.Slide{
		{Title: "A", Bullets: []string{"x", "y"}, SpeakerNotes: ""},
		{Title: "Slide 2", Bullets: []string{}, SpeakerNotes: ""},
	}
	if !reflect.DeepEqual(slides, want) {
		t.Fatalf("Parse() = %+v, want %+v", slides, want)
	}
	if report.Repaired["title"] != 1 || report.Repaired["bullets"] != 1 {
		t.Fatalf("unexpected repair report: %+v", report)
	}
}

func TestParseNeverFailsForArrayEnvelope(t *testing.T) {
	inputs := []string{
		`[]`,
		`[null, 1, "text", true, [], {}]`,
		`[{"title": 42, "bullets": [1, null, "ok", {"a": 1}, "  "], "speakerNotes": ["no"]}]`,
		`[{"title": "   ", "bullets": null, "speakerNotes": null}]`,
		`[{"title": {"nested": true}, "extra": "ignored"}]`,
	}
	for _, raw := range inputs {
		slides, _, err := Parse(raw)
		if err != nil {
			t.Fatalf("Parse(%s) error = %v", raw, err)
		}
		var top []any
		if err := json.Unmarshal([]byte(raw), &top); err != nil {
			t.Fatalf("test input must be a JSON array: %v", err)
		}
		if len(slides) != len(top) {
			t.Fatalf("Parse(%s) returned %d slides, want %d", raw, len(slides), len(top))
		}
		for i, slide := range slides {
			if slide.Title == "" {
				t.Fatalf("slide %d has empty title", i)
			}
			if slide.Bullets == nil {
				t.Fatalf("slide %d has nil bullets", i)
			}
		}
	}
}

func TestParseFiltersNonStringBullets(t *testing.T) {
	slides, report, err := Parse(`[{"title":"T","bullets":[1,"keep",false,"also"],"speakerNotes":"n"}]`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !reflect.DeepEqual(slides[0].Bullets, []string{"keep", "also"}) {
		t.Fatalf("unexpected bullets %v", slides[0].Bullets)
	}
	if slides[0].SpeakerNotes != "n" {
		t.Fatalf("unexpected notes %q", slides[0].SpeakerNotes)
	}
	if report.DroppedBullets != 2 {
		t.Fatalf("expected 2 dropped bullets, got %d", report.DroppedBullets)
	}
}

func TestParseKeepsBlankStringBullets(t *testing.T) {
	slides, report, err := Parse(`[{"title":"A","bullets":["", "  ", " x ", 3, "y"]}]`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !reflect.DeepEqual(slides[0].Bullets, []string{"", "", "x", "y"}) {
		t.Fatalf("unexpected bullets %q", slides[0].Bullets)
	}
	if report.DroppedBullets != 1 {
		t.Fatalf("expected 1 dropped bullet, got %d", report.DroppedBullets)
	}
}

func TestParseDefaultsTitleByPosition(t *testing.T) {
	slides, _, err := Parse(`[{"title":"One"},{"title":""},{},5]`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	got := []string{slides[0].Title, slides[1].Title, slides[2].Title, slides[3].Title}
	want := []string{"One", "Slide 2", "Slide 3", "Slide 4"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("titles = %v, want %v", got, want)
	}
}

func TestParseFencedMatchesUnwrapped(t *testing.T) {
	plain := `[{"title":"A","bullets":["x"],"speakerNotes":"s"}]`
	fenced := []string{
		"```json\n" + plain + "\n```",
		"```JSON\n" + plain + "```",
		"```\n" + plain + "\n```",
		"  ```json " + plain + " ```  ",
	}

	want, _, err := Parse(plain)
	if err != nil {
		t.Fatalf("Parse(plain) error = %v", err)
	}
	for _, raw := range fenced {
		got, _, err := Parse(raw)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", raw, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("Parse(%q) = %+v, want %+v", raw, got, want)
		}
	}
}

func TestParseRejectsBrokenEnvelope(t *testing.T) {
	inputs := []string{
		`{"title":"A"}`,
		`"just a string"`,
		`null`,
		`not json at all`,
		`Here are your slides: [{"title":"A"}]`,
		`[{"title":"A"}] hope this helps`,
		"",
	}
	for _, raw := range inputs {
		_, _, err := Parse(raw)
		if !domain.IsKind(err, domain.ErrSynthesisEnvelopeInvalid) {
			t.Fatalf("Parse(%q) expected ErrSynthesisEnvelopeInvalid, got %v", raw, err)
		}
		if !IsEnvelopeError(err) {
			t.Fatalf("IsEnvelopeError(%v) = false", err)
		}
	}
}

func TestValidatorReportsRepairs(t *testing.T) {
	var got Report
	v := New(nil, WithReportHook(func(r Report) { got = r }))

	slides, err := v.Validate(`[{"bullets":"x"}]`)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(slides) != 1 || got.Slides != 1 || got.Total() == 0 {
		t.Fatalf("unexpected result slides=%+v report=%+v", slides, got)
	}
}
