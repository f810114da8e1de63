package ooxml

import (
	"context"
	"encoding/xml"
	"io"
	"strings"
)

const docxBody = "word/document.xml"

// ExtractDocument returns body paragraphs of a DOCX in order, one per line.
// Tables, drawings and paragraph/run properties are dropped.
func ExtractDocument(ctx context.Context, raw []byte) (string, error) {
	pkg, err := openArchive(raw)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dec, err := pkg.decoder(docxBody)
	if err != nil {
		return "", err
	}

	var (
		paragraphs []string
		current    strings.Builder
		inText     bool
	)
	for {
		tok, err := nextToken(dec, docxBody)
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl", "drawing", "pict", "object", "pPr", "rPr":
				if err := dec.Skip(); err != nil {
					return "", err
				}
			case "t":
				inText = true
			case "tab":
				current.WriteByte('\t')
			case "br", "cr":
				current.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}
	if current.Len() > 0 {
		paragraphs = append(paragraphs, current.String())
	}
	return strings.Join(paragraphs, "\n"), nil
}
