// Package ooxml extracts text from zip-packaged office documents: DOCX and
// PPTX (Office Open XML) and ODP (OpenDocument).
package ooxml

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// maxPartSize bounds a single decompressed part.
const maxPartSize = 64 << 20

var errPartMissing = errors.New("part missing")

type archive struct {
	files map[string]*zip.File
	names []string
}

func openArchive(raw []byte) (*archive, error) {
	reader, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("open zip container: %w", err)
	}
	a := &archive{files: make(map[string]*zip.File, len(reader.File))}
	for _, f := range reader.File {
		name := strings.TrimPrefix(f.Name, "/")
		a.files[name] = f
		a.names = append(a.names, name)
	}
	return a, nil
}

func (a *archive) has(name string) bool {
	_, ok := a.files[name]
	return ok
}

func (a *archive) read(name string) ([]byte, error) {
	f, ok := a.files[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, errPartMissing)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer rc.Close()

	body, err := io.ReadAll(io.LimitReader(rc, maxPartSize+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if len(body) > maxPartSize {
		return nil, fmt.Errorf("read %s: part exceeds %d bytes", name, maxPartSize)
	}
	return body, nil
}

func (a *archive) decoder(name string) (*xml.Decoder, error) {
	body, err := a.read(name)
	if err != nil {
		return nil, err
	}
	return xml.NewDecoder(bytes.NewReader(body)), nil
}

// nextToken returns io.EOF at the end of the part and wraps anything else.
func nextToken(dec *xml.Decoder, part string) (xml.Token, error) {
	tok, err := dec.Token()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", part, err)
	}
	return tok, nil
}

func joinNonEmpty(parts []string, sep string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
