package server

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/flipledger/flipledger/constants"
	"github.com/flipledger/flipledger/internal/common"
)

// handleExtract runs one receipt image through OCR extraction and returns
// the structured guess. It never creates a lot directly: the client shows
// the result for correction and then calls POST /v1/lots, so a bad guess
// costs the user an edit, not a bad record.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	defer body.Close()

	var image io.Reader = body
	if ct := r.Header.Get("Content-Type"); ct != "" && ct != "application/octet-stream" {
		// multipart upload from the web client
		if err := r.ParseMultipartForm(s.maxUploadBytes); err == nil {
			file, header, err := r.FormFile("image")
			if err != nil {
				s.writeError(w, fmt.Errorf("missing image field: %w", common.ErrInvalidInput))
				return
			}
			defer file.Close()
			if !constants.IsAllowedExt(filepath.Ext(header.Filename)) {
				s.writeError(w, fmt.Errorf("unsupported image type %q: %w", filepath.Ext(header.Filename), common.ErrInvalidInput))
				return
			}
			image = file
		}
	}

	result := s.extract.ExtractReceipt(r.Context(), image, nil)
	s.writeJSON(w, http.StatusOK, result)
}
