// Package pptx encodes render plans into PresentationML containers.
package pptx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kirillkom/slidemaker/internal/core/domain"
	"github.com/kirillkom/slidemaker/internal/infrastructure/render/layout"
)

const (
	productName = "SlideMaker"
	subject     = "AI-Generated Educational Slides"
)

// Entries carry a fixed timestamp so identical plans encode to identical bytes.
var zipEntryTime = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

type Encoder struct {
	now func() time.Time
}

func NewEncoder() *Encoder {
	return &Encoder{now: time.Now}
}

// Render assembles and encodes a deck.
func (e *Encoder) Render(deck domain.Deck) (*domain.Export, error) {
	plan, err := layout.Assemble(deck)
	if err != nil {
		return nil, err
	}
	return e.Encode(plan, deck.PresentationTitle)
}

// Encode serializes a plan. On failure no bytes are returned.
func (e *Encoder) Encode(plan layout.RenderPlan, presentationTitle string) (*domain.Export, error) {
	if len(plan.Slides) == 0 {
		return nil, domain.WrapError(domain.ErrEncodingFailure, "encode pptx", fmt.Errorf("render plan has no slides"))
	}

	created := plan.CreatedAt
	if created.IsZero() {
		created = e.now()
	}
	metaTitle := strings.TrimSpace(presentationTitle)
	if metaTitle == "" {
		metaTitle = plan.PresentationTitle
	}

	pkg := newPackage(plan, metaTitle, created.UTC())
	payload, err := pkg.write()
	if err != nil {
		return nil, domain.WrapError(domain.ErrEncodingFailure, "encode pptx", err)
	}

	return &domain.Export{
		Bytes:    payload,
		FileName: SuggestedFileName(presentationTitle),
		MimeType: MimeType,
	}, nil
}

type part struct {
	name        string
	contentType string
	body        string
}

type pptxPackage struct {
	parts []part
}

func newPackage(plan layout.RenderPlan, title string, created time.Time) *pptxPackage {
	notes := notesSlideNumbers(plan)
	slideCount := len(plan.Slides)

	pkg := &pptxPackage{}
	pkg.add("_rels/.rels", "", rootRelsXML())
	pkg.add("docProps/core.xml", ctCoreProps, corePropsXML(title, created))
	pkg.add("docProps/app.xml", ctAppProps, appPropsXML(plan, len(notes)))
	pkg.add("ppt/presentation.xml", ctPresentation, presentationXML(slideCount, len(notes) > 0))
	pkg.add("ppt/_rels/presentation.xml.rels", "", presentationRelsXML(slideCount, len(notes) > 0))
	pkg.add("ppt/presProps.xml", ctPresProps, presPropsXML())
	pkg.add("ppt/viewProps.xml", ctViewProps, viewPropsXML())
	pkg.add("ppt/tableStyles.xml", ctTableStyles, tableStylesXML())
	pkg.add("ppt/theme/theme1.xml", ctTheme, themeXML(plan.Tokens))
	pkg.add("ppt/slideMasters/slideMaster1.xml", ctSlideMaster, slideMasterXML(plan.Master))
	pkg.add("ppt/slideMasters/_rels/slideMaster1.xml.rels", "", slideMasterRelsXML())
	pkg.add("ppt/slideLayouts/slideLayout1.xml", ctSlideLayout, slideLayoutXML())
	pkg.add("ppt/slideLayouts/_rels/slideLayout1.xml.rels", "", slideLayoutRelsXML())

	if len(notes) > 0 {
		pkg.add("ppt/theme/theme2.xml", ctTheme, themeXML(plan.Tokens))
		pkg.add("ppt/notesMasters/notesMaster1.xml", ctNotesMaster, notesMasterXML())
		pkg.add("ppt/notesMasters/_rels/notesMaster1.xml.rels", "", notesMasterRelsXML())
	}

	for i, slide := range plan.Slides {
		number := i + 1
		_, hasNotes := notes[number]
		pkg.add(fmt.Sprintf("ppt/slides/slide%d.xml", number), ctSlide, slideXML(slide))
		pkg.add(fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", number), "", slideRelsXML(number, hasNotes))
		if hasNotes {
			pkg.add(fmt.Sprintf("ppt/notesSlides/notesSlide%d.xml", number), ctNotesSlide, notesSlideXML(slide.Notes))
			pkg.add(fmt.Sprintf("ppt/notesSlides/_rels/notesSlide%d.xml.rels", number), "", notesSlideRelsXML(number))
		}
	}
	return pkg
}

func (p *pptxPackage) add(name, contentType, body string) {
	p.parts = append(p.parts, part{name: name, contentType: contentType, body: body})
}

func (p *pptxPackage) write() ([]byte, error) {
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)

	if err := writeEntry(writer, "[Content_Types].xml", contentTypesXML(p.parts)); err != nil {
		_ = writer.Close()
		return nil, err
	}
	for _, part := range p.parts {
		if err := writeEntry(writer, part.name, part.body); err != nil {
			_ = writer.Close()
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close zip: %w", err)
	}
	return buf.Bytes(), nil
}

func writeEntry(writer *zip.Writer, name, content string) error {
	w, err := writer.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: zipEntryTime,
	})
	if err != nil {
		return fmt.Errorf("create zip entry %s: %w", name, err)
	}
	if _, err := io.Copy(w, strings.NewReader(content)); err != nil {
		return fmt.Errorf("write zip entry %s: %w", name, err)
	}
	return nil
}

// notesSlideNumbers returns the 1-based slide part numbers that carry notes.
func notesSlideNumbers(plan layout.RenderPlan) map[int]struct{} {
	out := make(map[int]struct{})
	for i, slide := range plan.Slides {
		if slide.Kind == layout.KindContent && strings.TrimSpace(slide.Notes) != "" {
			out[i+1] = struct{}{}
		}
	}
	return out
}
