package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

func pathID(r *http.Request, name string) (int64, bool) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	return id, err == nil
}

func (s *Server) handleListPrograms(w http.ResponseWriter, r *http.Request) {
	partnerID, ok := PartnerIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	programs, err := s.programs.ListPrograms(r.Context(), partnerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, programs)
}

func (s *Server) handleGetProgram(w http.ResponseWriter, r *http.Request) {
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
	program, err := s.programs.GetProgram(r.Context(), programID, partnerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, program)
}

func (s *Server) handleDiscovery(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")
	programs, err := s.programs.Search(r.Context(), keyword)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, programs)
}

func (s *Server) handleProgramDetails(w http.ResponseWriter, r *http.Request) {
	partnerID, ok := PartnerIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	summary, err := s.programs.ProgramSummary(r.Context(), partnerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleApplicationDetails(w http.ResponseWriter, r *http.Request) {
	partnerID, ok := PartnerIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	details, err := s.programs.ApplicationDetails(r.Context(), partnerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (s *Server) handleBenefitDetails(w http.ResponseWriter, r *http.Request) {
	partnerID, ok := PartnerIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	details, err := s.programs.BenefitDetails(r.Context(), partnerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}
