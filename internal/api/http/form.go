package http

import (
	"encoding/json"
	"net/http"
)

type draftResponse struct {
	Message string `json:"message"`
}

func decodePayload(r *http.Request) (map[string]any, error) {
	payload := make(map[string]any)
	if r.Body == nil {
		return payload, nil
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (s *Server) handleGetForm(w http.ResponseWriter, r *http.Request) {
	partnerID, ok := PartnerIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	programID, ok := pathID(r, "programid")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid program id")
		return
	}
	form, err := s.forms.GetForm(r.Context(), programID, partnerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, form)
}

func (s *Server) handleSaveDraft(w http.ResponseWriter, r *http.Request) {
	partnerID, ok := PartnerIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	programID, ok := pathID(r, "programid")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid program id")
		return
	}
	payload, err := decodePayload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	message, err := s.forms.SaveDraft(r.Context(), programID, partnerID, payload)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draftResponse{Message: message})
}

func (s *Server) handleSubmitForm(w http.ResponseWriter, r *http.Request) {
	partnerID, ok := PartnerIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	programID, ok := pathID(r, "programid")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid program id")
		return
	}

	// Submissions require the program to have a portal form mapped.
	program, err := s.programs.GetProgram(r.Context(), programID, partnerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if !program.PortalFormMapped() {
		writeError(w, http.StatusBadRequest, "The program does not have a form mapped to it.")
		return
	}

	payload, err := decodePayload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	receipt, err := s.forms.Submit(r.Context(), programID, partnerID, payload)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}
