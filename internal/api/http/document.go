package http

import (
	"io"
	"net/http"
)

// maxUploadSize bounds the multipart form held in memory per request.
const maxUploadSize = 25 << 20 // 25 MiB

func (s *Server) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	if _, ok := PartnerIDFromContext(r.Context()); !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	programID, ok := pathID(r, "programid")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid program id")
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart request")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read file")
		return
	}
	if len(data) > maxUploadSize {
		writeError(w, http.StatusRequestEntityTooLarge, "file too large")
		return
	}

	fileTag := r.URL.Query().Get("file_tag")
	doc, err := s.documents.Upload(r.Context(), programID, header.Filename, data, fileTag)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	if _, ok := PartnerIDFromContext(r.Context()); !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	documentID, ok := pathID(r, "documentid")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid document id")
		return
	}
	doc, err := s.documents.GetByID(r.Context(), documentID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleInvalidateFieldCache(w http.ResponseWriter, r *http.Request) {
	if err := s.fields.Invalidate(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to invalidate cache")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "invalidated"})
}
