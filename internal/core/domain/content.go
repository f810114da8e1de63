package domain

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ContentEntry is one extracted source appended to a ContentBuffer.
type ContentEntry struct {
	Sequence int64
	Source   string
	Text     string
}

// ContentBuffer accumulates extracted text from several uploads. Entries keep
// completion order; Sequence records submission order.
type ContentBuffer struct {
	mu      sync.Mutex
	entries []ContentEntry
}

func (b *ContentBuffer) Append(entry ContentEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = append(b.entries, entry)
}

func (b *ContentBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// String renders entries in completion order.
func (b *ContentBuffer) String() string {
	b.mu.Lock()
	entries := append([]ContentEntry(nil), b.entries...)
	b.mu.Unlock()
	return renderContent(entries)
}

// OrderedBySubmission renders entries sorted by their submission sequence.
func (b *ContentBuffer) OrderedBySubmission() string {
	b.mu.Lock()
	entries := append([]ContentEntry(nil), b.entries...)
	b.mu.Unlock()

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Sequence < entries[j].Sequence
	})
	return renderContent(entries)
}

// ProvenanceSeparator marks where one source's text begins.
func ProvenanceSeparator(source string) string {
	return fmt.Sprintf("--- Source: %s ---", source)
}

func renderContent(entries []ContentEntry) string {
	var builder strings.Builder
	for i, entry := range entries {
		if i > 0 {
			builder.WriteString("\n\n")
		}
		builder.WriteString(ProvenanceSeparator(entry.Source))
		builder.WriteString("\n\n")
		builder.WriteString(entry.Text)
	}
	return builder.String()
}
