package http

import (
	"net/http"
)

type profileUpdateResponse struct {
	Message       string   `json:"message"`
	UpdatedFields []string `json:"updated_fields"`
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	partnerID, ok := PartnerIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	profile, err := s.partners.GetProfile(r.Context(), partnerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	partnerID, ok := PartnerIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	fields, err := decodePayload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	updated, err := s.partners.UpdateProfile(r.Context(), partnerID, fields)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profileUpdateResponse{
		Message:       "Profile updated successfully.",
		UpdatedFields: updated,
	})
}
