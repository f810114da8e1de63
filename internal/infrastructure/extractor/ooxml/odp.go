package ooxml

import (
	"context"
	"encoding/xml"
	"io"
	"strconv"
	"strings"
)

const odpContent = "content.xml"

// ExtractOpenDocumentPresentation returns the text of every ODP page in
// document order. Speaker notes are skipped.
func ExtractOpenDocumentPresentation(ctx context.Context, raw []byte) (string, error) {
	pkg, err := openArchive(raw)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dec, err := pkg.decoder(odpContent)
	if err != nil {
		return "", err
	}

	var (
		slides     []string
		paragraphs []string
		current    strings.Builder
		depth      int
	)
	for {
		tok, err := nextToken(dec, odpContent)
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "notes":
				if err := dec.Skip(); err != nil {
					return "", err
				}
			case "page":
				paragraphs = paragraphs[:0]
			case "p", "h":
				if depth == 0 {
					current.Reset()
				}
				depth++
			case "s":
				if depth > 0 {
					current.WriteString(strings.Repeat(" ", spaceCount(t)))
				}
			case "tab":
				if depth > 0 {
					current.WriteByte('\t')
				}
			case "line-break":
				if depth > 0 {
					current.WriteByte('\n')
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p", "h":
				depth--
				if depth == 0 {
					paragraphs = append(paragraphs, current.String())
				}
			case "page":
				slides = append(slides, joinNonEmpty(paragraphs, "\n"))
			}
		case xml.CharData:
			if depth > 0 {
				current.Write(t)
			}
		}
	}
	return joinNonEmpty(slides, "\n\n"), nil
}

func spaceCount(el xml.StartElement) int {
	for _, attr := range el.Attr {
		if attr.Name.Local == "c" {
			if n, err := strconv.Atoi(attr.Value); err == nil && n > 0 {
				return n
			}
		}
	}
	return 1
}
