package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/kirillkom/slidemaker/internal/core/domain"
)

func TestExtractDispatchesByMimeType(t *testing.T) {
	extractor := &extractorFake{text: domain.ExtractedText{Text: "Slide one", SourceFormat: domain.TagPresentation}}
	observer := &observerFake{}
	uc := NewExtractUseCase(extractor, observer)

	got, err := uc.Extract(context.Background(), domain.Document{
		Bytes:    []byte("PK"),
		MimeType: "application/vnd.oasis.opendocument.presentation",
		FileName: "lecture.bin",
	})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if extractor.gotFormat != domain.FormatODP {
		t.Fatalf("expected odp strategy, got %s", extractor.gotFormat)
	}
	if got.SourceFormat != domain.TagPresentation {
		t.Fatalf("expected presentation tag, got %s", got.SourceFormat)
	}
	if len(observer.extractions) != 1 || observer.extractions[0] != domain.FormatODP {
		t.Fatalf("expected one observed extraction, got %+v", observer.extractions)
	}
}

func TestExtractRejectsUnsupportedWithoutCallingExtractor(t *testing.T) {
	extractor := &extractorFake{}
	observer := &observerFake{}
	uc := NewExtractUseCase(extractor, observer)

	_, err := uc.Extract(context.Background(), domain.Document{MimeType: "image/png", FileName: "scan.png"})
	var unsupported *domain.UnsupportedFormatError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedFormatError, got %v", err)
	}
	if extractor.gotFormat != "" {
		t.Fatalf("extractor must not be called")
	}
	if len(observer.extractions) != 0 {
		t.Fatalf("unsupported uploads are not extraction attempts")
	}
}

func TestExtractPropagatesExtractionError(t *testing.T) {
	cause := &domain.ExtractionError{Format: domain.FormatDOCX, Cause: errors.New("zip: not a valid zip file")}
	observer := &observerFake{}
	uc := NewExtractUseCase(&extractorFake{err: cause}, observer)

	_, err := uc.Extract(context.Background(), domain.Document{FileName: "essay.docx"})
	if !errors.Is(err, domain.ErrExtractionFailure) {
		t.Fatalf("expected ErrExtractionFailure, got %v", err)
	}
	if observer.extractErrs[0] == nil {
		t.Fatalf("expected failure to be observed")
	}
}

func TestExtractWithoutObserver(t *testing.T) {
	uc := NewExtractUseCase(&extractorFake{text: domain.ExtractedText{Text: "x"}}, nil)
	if _, err := uc.Extract(context.Background(), domain.Document{FileName: "a.txt"}); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
}
