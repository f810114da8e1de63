package httpadapter

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/kirillkom/slidemaker/internal/core/domain"
)

// multipartOverhead leaves room for boundaries and part headers on top of
// the file size limit.
const multipartOverhead = 1 << 20

type extractResponse struct {
	FileName     string           `json:"file_name"`
	SourceFormat domain.FormatTag `json:"source_format"`
	Text         string           `json:"text"`
}

func (rt *Router) extractDocument(w http.ResponseWriter, r *http.Request) {
	file, header, err := rt.formFile(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, rt.cfg.APIMaxUploadBytes+1))
	if err != nil {
		writeError(w, r, domain.WrapError(domain.ErrInvalidInput, "read upload", err))
		return
	}
	if int64(len(data)) > rt.cfg.APIMaxUploadBytes {
		writeError(w, r, errBodyTooLarge)
		return
	}

	text, err := rt.services.Extraction.Extract(r.Context(), domain.Document{
		Bytes:    data,
		MimeType: header.Header.Get("Content-Type"),
		FileName: header.Filename,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	annotate(r, "source_format", string(text.SourceFormat))
	writeJSON(w, http.StatusOK, extractResponse{
		FileName:     header.Filename,
		SourceFormat: text.SourceFormat,
		Text:         text.Text,
	})
}

func (rt *Router) uploadDocument(w http.ResponseWriter, r *http.Request) {
	file, header, err := rt.formFile(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer file.Close()

	upload, err := rt.services.Ingestor.Upload(
		r.Context(),
		header.Filename,
		header.Header.Get("Content-Type"),
		io.LimitReader(file, rt.cfg.APIMaxUploadBytes),
	)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusAccepted, upload)
}

func (rt *Router) getDocumentByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		writeError(w, r, domain.WrapError(domain.ErrInvalidInput, "get upload", errors.New("id is required")))
		return
	}

	upload, err := rt.services.Uploads.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, upload)
}

func (rt *Router) formFile(w http.ResponseWriter, r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	r.Body = http.MaxBytesReader(w, r.Body, rt.cfg.APIMaxUploadBytes+multipartOverhead)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return nil, nil, err
		}
		return nil, nil, domain.WrapError(domain.ErrInvalidInput, "read upload", fmt.Errorf("multipart field 'file' is required: %w", err))
	}
	if header.Size > rt.cfg.APIMaxUploadBytes {
		_ = file.Close()
		return nil, nil, errBodyTooLarge
	}
	return file, header, nil
}
