package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"g2p-portal-backend/internal/cache"
	"g2p-portal-backend/internal/security"
	"g2p-portal-backend/internal/service"
)

// Server bundles the handlers behind the portal's REST surface.
type Server struct {
	programs  service.ProgramService
	forms     service.FormService
	partners  service.PartnerService
	documents service.DocumentService
	fields    *cache.PartnerFieldCache
	tokens    security.TokenManager
}

func NewServer(
	programs service.ProgramService,
	forms service.FormService,
	partners service.PartnerService,
	documents service.DocumentService,
	fields *cache.PartnerFieldCache,
	tokens security.TokenManager,
) *Server {
	return &Server{
		programs:  programs,
		forms:     forms,
		partners:  partners,
		documents: documents,
		fields:    fields,
		tokens:    tokens,
	}
}

// Router builds the route table. Everything under /api/v1 requires a valid
// bearer token.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(loggingMiddleware)

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/internal/cache/partner-fields/invalidate", s.handleInvalidateFieldCache).Methods(http.MethodPost)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(authMiddleware(s.tokens))

	api.HandleFunc("/program", s.handleListPrograms).Methods(http.MethodGet)
	api.HandleFunc("/program/{programid:[0-9]+}", s.handleGetProgram).Methods(http.MethodGet)
	api.HandleFunc("/discovery", s.handleDiscovery).Methods(http.MethodGet)

	api.HandleFunc("/form/{programid:[0-9]+}", s.handleGetForm).Methods(http.MethodGet)
	api.HandleFunc("/form/{programid:[0-9]+}", s.handleSaveDraft).Methods(http.MethodPut)
	api.HandleFunc("/form/{programid:[0-9]+}/submit", s.handleSubmitForm).Methods(http.MethodPost)

	api.HandleFunc("/profile", s.handleGetProfile).Methods(http.MethodGet)
	api.HandleFunc("/profile", s.handleUpdateProfile).Methods(http.MethodPut)

	api.HandleFunc("/programdetails", s.handleProgramDetails).Methods(http.MethodGet)
	api.HandleFunc("/applicationdetails", s.handleApplicationDetails).Methods(http.MethodGet)
	api.HandleFunc("/benefitdetails", s.handleBenefitDetails).Methods(http.MethodGet)

	api.HandleFunc("/document/{programid:[0-9]+}", s.handleUploadDocument).Methods(http.MethodPost)
	api.HandleFunc("/document/{documentid:[0-9]+}", s.handleGetDocument).Methods(http.MethodGet)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
