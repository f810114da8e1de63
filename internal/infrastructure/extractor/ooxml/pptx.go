package ooxml

import (
	"context"
	"encoding/xml"
	"io"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const (
	presentationPart = "ppt/presentation.xml"
	presentationRels = "ppt/_rels/presentation.xml.rels"
	relationshipsNS  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

var slidePartPattern = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// ExtractPresentation returns the text of every PPTX slide in presentation
// order. Paragraphs are joined by newlines and slides by a blank line.
func ExtractPresentation(ctx context.Context, raw []byte) (string, error) {
	pkg, err := openArchive(raw)
	if err != nil {
		return "", err
	}
	parts, err := slideParts(pkg)
	if err != nil {
		return "", err
	}

	slides := make([]string, 0, len(parts))
	for _, name := range parts {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := slideText(pkg, name)
		if err != nil {
			return "", err
		}
		slides = append(slides, text)
	}
	return joinNonEmpty(slides, "\n\n"), nil
}

// slideParts resolves the slide order from sldIdLst. Packages without a
// usable presentation part fall back to numeric part order.
func slideParts(pkg *archive) ([]string, error) {
	if pkg.has(presentationPart) && pkg.has(presentationRels) {
		ordered, err := orderedSlideParts(pkg)
		if err != nil {
			return nil, err
		}
		if len(ordered) > 0 {
			return ordered, nil
		}
	}

	type numbered struct {
		name string
		n    int
	}
	var found []numbered
	for _, name := range pkg.names {
		m := slidePartPattern.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		n, _ := strconv.Atoi(m[1])
		found = append(found, numbered{name: name, n: n})
	}
	sort.Slice(found, func(i, j int) bool { return found[i].n < found[j].n })

	out := make([]string, 0, len(found))
	for _, f := range found {
		out = append(out, f.name)
	}
	return out, nil
}

func orderedSlideParts(pkg *archive) ([]string, error) {
	targets, err := relationshipTargets(pkg, presentationRels, "ppt")
	if err != nil {
		return nil, err
	}

	dec, err := pkg.decoder(presentationPart)
	if err != nil {
		return nil, err
	}
	var out []string
	for {
		tok, err := nextToken(dec, presentationPart)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "sldId" {
			continue
		}
		for _, attr := range start.Attr {
			if attr.Name.Space != relationshipsNS || attr.Name.Local != "id" {
				continue
			}
			if target, ok := targets[attr.Value]; ok && pkg.has(target) {
				out = append(out, target)
			}
		}
	}
	return out, nil
}

// relationshipTargets maps relationship ids to package part names resolved
// against base.
func relationshipTargets(pkg *archive, relsPart, base string) (map[string]string, error) {
	dec, err := pkg.decoder(relsPart)
	if err != nil {
		return nil, err
	}
	targets := make(map[string]string)
	for {
		tok, err := nextToken(dec, relsPart)
		if err == io.EOF {
			return targets, nil
		}
		if err != nil {
			return nil, err
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "Relationship" {
			continue
		}
		var id, target string
		for _, attr := range start.Attr {
			switch attr.Name.Local {
			case "Id":
				id = attr.Value
			case "Target":
				target = attr.Value
			}
		}
		if id == "" || target == "" {
			continue
		}
		if strings.HasPrefix(target, "/") {
			targets[id] = strings.TrimPrefix(path.Clean(target), "/")
		} else {
			targets[id] = path.Clean(path.Join(base, target))
		}
	}
}

func slideText(pkg *archive, name string) (string, error) {
	dec, err := pkg.decoder(name)
	if err != nil {
		return "", err
	}

	var (
		paragraphs []string
		current    strings.Builder
		inText     bool
	)
	for {
		tok, err := nextToken(dec, name)
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "br":
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
	return joinNonEmpty(paragraphs, "\n"), nil
}
