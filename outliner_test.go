package outliner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/doctrail/outliner/span"
)

const bodyText = "lorem ipsum dolor sit amet consectetur adipiscing elit sed do eiusmod tempor " +
	"incididunt ut labore et dolore magna aliqua ut enim ad minim veniam"

func bodySpan(page int, y float64) span.TextSpan {
	return span.TextSpan{
		Text:     bodyText,
		FontSize: 10,
		FontName: "Helvetica",
		Page:     page,
		Y:        y,
	}
}

// reportSpans builds a small report: one prominent heading over two pages of
// body text.
func reportSpans() []span.TextSpan {
	spans := []span.TextSpan{
		{Text: "1. Introduction", FontSize: 24, FontName: "Helvetica-Bold", Bold: true, Page: 0, Y: 60},
	}
	for i := 0; i < 10; i++ {
		spans = append(spans, bodySpan(0, 120+float64(i)*14))
	}
	for i := 0; i < 10; i++ {
		spans = append(spans, bodySpan(1, 60+float64(i)*14))
	}
	return spans
}

func TestExtractSingleProminentHeading(t *testing.T) {
	result, err := New().Extract(reportSpans())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if result.EntryCount() != 1 {
		t.Fatalf("expected exactly 1 outline entry, got %d: %+v", result.EntryCount(), result.Outline)
	}
	entry := result.Outline[0]
	if entry.Level != "H1" || entry.Text != "1. Introduction" || entry.Page != 0 {
		t.Errorf("unexpected entry %+v", entry)
	}
	if result.Title != "1. Introduction" {
		t.Errorf("expected heading selected as title, got %q", result.Title)
	}
}

func TestExtractUniformProseYieldsEmptyOutline(t *testing.T) {
	var spans []span.TextSpan
	for i := 0; i < 8; i++ {
		spans = append(spans, bodySpan(0, 150+float64(i)*14))
	}
	// Short prose lines at body size still stay out of the outline.
	spans = append(spans, span.TextSpan{
		Text: "the results were inconclusive", FontSize: 10, FontName: "Helvetica", Page: 0, Y: 262,
	})

	result, err := New().Extract(spans)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if result.EntryCount() != 0 {
		t.Errorf("expected empty outline for uniform prose, got %+v", result.Outline)
	}
}

func TestExtractEmptyDocument(t *testing.T) {
	result, err := New().Extract(nil)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if result.Title != "" || result.EntryCount() != 0 {
		t.Errorf("expected empty result, got %+v", result)
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"outline":[]`) {
		t.Errorf("expected empty outline to marshal as [], got %s", data)
	}
}

func TestExtractSkipsMalformedSpans(t *testing.T) {
	spans := reportSpans()
	spans = append(spans,
		span.TextSpan{Text: "", FontSize: 24, Page: 0, Y: 10},
		span.TextSpan{Text: "ghost", FontSize: 0, Page: 0, Y: 20},
		span.TextSpan{Text: "negative", FontSize: -5, Page: 0, Y: 30},
	)

	result, err := New().Extract(spans)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if result.EntryCount() != 1 {
		t.Errorf("expected malformed spans ignored, got %+v", result.Outline)
	}
}

func TestExtractIdempotent(t *testing.T) {
	spans := reportSpans()
	p := New()

	first, err := p.Extract(spans)
	if err != nil {
		t.Fatalf("first Extract: %v", err)
	}
	second, err := p.Extract(spans)
	if err != nil {
		t.Fatalf("second Extract: %v", err)
	}

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if !bytes.Equal(a, b) {
		t.Errorf("expected byte-identical output:\n%s\n%s", a, b)
	}
}

func TestExtractRemovesRepeatedFooters(t *testing.T) {
	spans := reportSpans()
	spans = append(spans,
		span.TextSpan{Text: "Confidentiel p.1", FontSize: 9, FontName: "Helvetica", Page: 0, Y: 780, X: 50},
		span.TextSpan{Text: "Confidentiel p.2", FontSize: 9, FontName: "Helvetica", Page: 1, Y: 780, X: 50},
	)

	result, err := New().Extract(spans)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	for _, e := range result.Outline {
		if strings.HasPrefix(e.Text, "Confidentiel") {
			t.Errorf("footer leaked into outline: %+v", e)
		}
	}
}

// TestExtractScriptParity puts the same marginal heading in Latin and CJK
// form through the pipeline; structural casing signals exist only for the
// Latin one, and the outcome must not be worse for the CJK one.
func TestExtractScriptParity(t *testing.T) {
	build := func(heading string) []span.TextSpan {
		spans := []span.TextSpan{
			bodySpan(0, 186),
			{Text: heading, FontSize: 14, FontName: "Helvetica", Page: 0, Y: 200},
			bodySpan(0, 212),
		}
		for i := 0; i < 6; i++ {
			spans = append(spans, bodySpan(0, 226+float64(i)*14))
		}
		return spans
	}

	latin, err := New().Extract(build("Results Overview"))
	if err != nil {
		t.Fatalf("Extract latin: %v", err)
	}
	cjk, err := New().Extract(build("結果の概要"))
	if err != nil {
		t.Fatalf("Extract cjk: %v", err)
	}

	if latin.EntryCount() != 1 {
		t.Fatalf("expected latin heading detected, got %+v", latin.Outline)
	}
	if cjk.EntryCount() < latin.EntryCount() {
		t.Errorf("cjk heading detected less often than latin equivalent: %+v vs %+v",
			cjk.Outline, latin.Outline)
	}
}

func TestExtractFromSource(t *testing.T) {
	p := New()

	result, err := p.ExtractFromSource(context.Background(), span.SliceSource(reportSpans()))
	if err != nil {
		t.Fatalf("ExtractFromSource: %v", err)
	}
	if result.EntryCount() != 1 {
		t.Errorf("expected 1 entry, got %d", result.EntryCount())
	}
}

func TestExtractFromNilSource(t *testing.T) {
	_, err := New().ExtractFromSource(context.Background(), nil)
	if !errors.Is(err, ErrNilSource) {
		t.Errorf("expected ErrNilSource, got %v", err)
	}
}

type failingSource struct{ err error }

func (f failingSource) Spans(context.Context) ([]span.TextSpan, error) { return nil, f.err }

func TestExtractFromSourcePropagatesError(t *testing.T) {
	sentinel := errors.New("read failed")
	_, err := New().ExtractFromSource(context.Background(), failingSource{err: sentinel})
	if !errors.Is(err, sentinel) {
		t.Errorf("expected source error propagated, got %v", err)
	}
}

func TestNewWithConfigOverrides(t *testing.T) {
	cfg := DefaultConfig()
	// Tighter than "1. Introduction", so the report's only heading is out.
	cfg.Scorer.MaxChars = 10

	result, err := NewWithConfig(cfg).Extract(reportSpans())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if result.EntryCount() != 0 {
		t.Errorf("expected length cap to reject the heading, got %+v", result.Outline)
	}
}
