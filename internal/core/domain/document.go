package domain

import "time"

// Document is one uploaded source file. It is never mutated after creation.
type Document struct {
	Bytes    []byte
	MimeType string
	FileName string
}

// ExtractedText is the normalized, whitespace-trimmed text of one Document.
type ExtractedText struct {
	Text         string    `json:"text"`
	SourceFormat FormatTag `json:"source_format"`
}

type UploadStatus string

const (
	StatusUploaded   UploadStatus = "uploaded"
	StatusProcessing UploadStatus = "processing"
	StatusReady      UploadStatus = "ready"
	StatusFailed     UploadStatus = "failed"
)

// Upload is the persisted record of an asynchronously extracted document.
// Sequence is assigned at submission and is strictly increasing.
type Upload struct {
	ID            string       `json:"id"`
	Sequence      int64        `json:"sequence"`
	Filename      string       `json:"filename"`
	MimeType      string       `json:"mime_type"`
	StoragePath   string       `json:"storage_path"`
	SourceFormat  FormatTag    `json:"source_format,omitempty"`
	ExtractedText string       `json:"extracted_text,omitempty"`
	Status        UploadStatus `json:"status"`
	Error         string       `json:"error,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}
