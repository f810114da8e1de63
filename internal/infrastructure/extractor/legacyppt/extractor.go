// Package legacyppt reads slide text from binary PowerPoint 97-2003 files.
// The "PowerPoint Document" stream is pulled out of the OLE2 compound file
// and its record tree is walked for text atoms.
package legacyppt

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/richardlehane/mscfb"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

const (
	streamName = "PowerPoint Document"

	headerSize    = 8
	containerVer  = 0xF
	maxNesting    = 32
	maxStreamSize = 256 << 20

	recSlide             = 0x03EE
	recNotes             = 0x03F0
	recSlidePersistAtom  = 0x03F3
	recMainMaster        = 0x03F8
	recTextCharsAtom     = 0x0FA0
	recTextBytesAtom     = 0x0FA8
	recSlideListWithText = 0x0FF0
	recPersistDirectory  = 0x1772
)

var errStreamMissing = errors.New("powerpoint document stream missing")

func Extract(ctx context.Context, raw []byte) (string, error) {
	stream, err := documentStream(raw)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return parseRecords(stream)
}

func documentStream(raw []byte) ([]byte, error) {
	doc, err := mscfb.New(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("open compound file: %w", err)
	}
	for entry, err := doc.Next(); ; entry, err = doc.Next() {
		if err == io.EOF {
			return nil, errStreamMissing
		}
		if err != nil {
			return nil, fmt.Errorf("walk compound file: %w", err)
		}
		if entry.Name != streamName {
			continue
		}
		return readStream(entry, maxStreamSize)
	}
}

func readStream(r io.Reader, limit int) ([]byte, error) {
	stream, err := io.ReadAll(io.LimitReader(r, int64(limit)+1))
	if err != nil {
		return nil, fmt.Errorf("read %s stream: %w", streamName, err)
	}
	if len(stream) > limit {
		return nil, fmt.Errorf("read %s stream: exceeds %d bytes", streamName, limit)
	}
	return stream, nil
}

type recordHeader struct {
	version  uint16
	instance uint16
	typ      uint16
	length   uint32
}

// slideText is the text of one slide, either from the outline in the slide
// list or from the text boxes of a Slide container.
type slideText struct {
	persistID uint32
	lines     []string
}

func (t *slideText) add(text string) {
	text = strings.TrimSpace(normalizeBreaks(text))
	if text != "" {
		t.lines = append(t.lines, text)
	}
}

type parser struct {
	listed      []*slideText
	containers  []*slideText
	containerAt map[int]*slideText
	directory   map[uint32]int
	loose       *slideText
}

// parseRecords groups text atoms per slide. The slide list gives slide order
// and outline text; text boxes of each Slide container are appended to the
// slide the persist directory points at, or by position when the stream has
// no directory. Master and notes text is skipped.
func parseRecords(stream []byte) (string, error) {
	p := &parser{
		containerAt: make(map[int]*slideText),
		directory:   make(map[uint32]int),
	}
	if err := p.walk(stream, 0, 0, false, nil); err != nil {
		return "", err
	}
	return p.String(), nil
}

func (p *parser) walk(data []byte, base, depth int, inSlideList bool, target *slideText) error {
	if depth > maxNesting {
		return fmt.Errorf("record nesting exceeds %d", maxNesting)
	}
	for pos := 0; len(data)-pos >= headerSize; {
		h := readHeader(data[pos:])
		offset := base + pos
		start := pos + headerSize
		if uint64(h.length) > uint64(len(data)-start) {
			return fmt.Errorf("record 0x%04X at offset %d overruns its parent", h.typ, offset)
		}
		body := data[start : start+int(h.length)]
		pos = start + int(h.length)

		if h.version == containerVer {
			switch h.typ {
			case recNotes, recMainMaster:
				continue
			case recSlideListWithText:
				if h.instance != 0 {
					continue
				}
				if err := p.walk(body, base+start, depth+1, true, nil); err != nil {
					return err
				}
				continue
			case recSlide:
				slide := &slideText{}
				p.containers = append(p.containers, slide)
				p.containerAt[offset] = slide
				if err := p.walk(body, base+start, depth+1, false, slide); err != nil {
					return err
				}
				continue
			}
			if err := p.walk(body, base+start, depth+1, inSlideList, target); err != nil {
				return err
			}
			continue
		}

		switch h.typ {
		case recSlidePersistAtom:
			if inSlideList {
				target = &slideText{}
				if len(body) >= 4 {
					target.persistID = binary.LittleEndian.Uint32(body[0:4])
				}
				p.listed = append(p.listed, target)
			}
		case recPersistDirectory:
			p.readDirectory(body)
		case recTextCharsAtom:
			text, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(body)
			if err != nil {
				return fmt.Errorf("decode text chars atom: %w", err)
			}
			p.textTarget(target).add(string(text))
		case recTextBytesAtom:
			text, err := charmap.ISO8859_1.NewDecoder().Bytes(body)
			if err != nil {
				return fmt.Errorf("decode text bytes atom: %w", err)
			}
			p.textTarget(target).add(string(text))
		}
	}
	return nil
}

func (p *parser) textTarget(target *slideText) *slideText {
	if target != nil {
		return target
	}
	if p.loose == nil {
		p.loose = &slideText{}
	}
	return p.loose
}

// readDirectory maps persist ids to stream offsets. Each entry is a 20-bit
// first id and a 12-bit count followed by that many offsets. Later
// directories (incremental saves) override earlier ones.
func (p *parser) readDirectory(body []byte) {
	for pos := 0; pos+4 <= len(body); {
		head := binary.LittleEndian.Uint32(body[pos:])
		pos += 4
		first, count := head&0xFFFFF, head>>20
		for k := uint32(0); k < count && pos+4 <= len(body); k++ {
			p.directory[first+k] = int(binary.LittleEndian.Uint32(body[pos:]))
			pos += 4
		}
	}
}

func (p *parser) String() string {
	used := make(map[*slideText]bool, len(p.containers))
	resolved := make([]*slideText, len(p.listed))
	for i, slide := range p.listed {
		offset, ok := p.directory[slide.persistID]
		if !ok {
			continue
		}
		if c := p.containerAt[offset]; c != nil && !used[c] {
			resolved[i] = c
			used[c] = true
		}
	}
	if len(p.directory) == 0 {
		for i := range p.listed {
			if i < len(p.containers) {
				resolved[i] = p.containers[i]
				used[p.containers[i]] = true
			}
		}
	}

	blocks := make([]string, 0, len(p.listed)+len(p.containers)+1)
	appendBlock := func(lines []string) {
		if len(lines) > 0 {
			blocks = append(blocks, strings.Join(lines, "\n"))
		}
	}
	for i, slide := range p.listed {
		lines := slide.lines
		if resolved[i] != nil {
			lines = append(lines[:len(lines):len(lines)], resolved[i].lines...)
		}
		appendBlock(lines)
	}
	for _, c := range p.containers {
		if !used[c] {
			appendBlock(c.lines)
		}
	}
	if p.loose != nil {
		appendBlock(p.loose.lines)
	}
	return strings.Join(blocks, "\n\n")
}

func readHeader(b []byte) recordHeader {
	verInst := binary.LittleEndian.Uint16(b[0:2])
	return recordHeader{
		version:  verInst & 0x000F,
		instance: verInst >> 4,
		typ:      binary.LittleEndian.Uint16(b[2:4]),
		length:   binary.LittleEndian.Uint32(b[4:8]),
	}
}

// PowerPoint separates paragraphs with CR and soft line breaks with VT.
func normalizeBreaks(text string) string {
	return strings.NewReplacer("\r\n", "\n", "\r", "\n", "\v", "\n").Replace(text)
}
