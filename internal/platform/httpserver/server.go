package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	ballotcatalog "electora/contexts/election-core/ballot-catalog"
	cycleregistry "electora/contexts/election-core/cycle-registry"
	votingengine "electora/contexts/election-core/voting-engine"
	notificationservice "electora/contexts/engagement/notification-service"
	identityservice "electora/contexts/identity-access/identity-service"
	identityentities "electora/contexts/identity-access/identity-service/domain/entities"
	identityhttp "electora/contexts/identity-access/identity-service/transport/http"
	"electora/internal/platform/token"

	_ "electora/internal/platform/httpserver/docs"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Server struct {
	mux           *http.ServeMux
	logger        *slog.Logger
	addr          string
	tokens        token.Issuer
	identity      identityservice.Module
	cycles        cycleregistry.Module
	ballots       ballotcatalog.Module
	votes         votingengine.Module
	notifications notificationservice.Module
}

func New(
	identity identityservice.Module,
	cycles cycleregistry.Module,
	ballots ballotcatalog.Module,
	votes votingengine.Module,
	notifications notificationservice.Module,
	tokens token.Issuer,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:           http.NewServeMux(),
		logger:        logger,
		addr:          addr,
		tokens:        tokens,
		identity:      identity,
		cycles:        cycles,
		ballots:       ballots,
		votes:         votes,
		notifications: notifications,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.registerIdentityRoutes()
	s.registerCycleRoutes()
	s.registerBallotRoutes()
	s.registerVoteRoutes()
	s.registerNotificationRoutes()
}

// authenticate resolves the caller from the Authorization bearer token.
func (s *Server) authenticate(r *http.Request) (token.Claims, error) {
	raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return token.Claims{}, token.ErrInvalidToken
	}
	return s.tokens.Parse(raw)
}

func (s *Server) requireAuth(w http.ResponseWriter, r *http.Request) (token.Claims, bool) {
	claims, err := s.authenticate(r)
	if err != nil {
		writeAuthFailure(w, http.StatusUnauthorized, "unauthorized", "a valid bearer token is required")
		return token.Claims{}, false
	}
	return claims, true
}

func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) (token.Claims, bool) {
	claims, ok := s.requireAuth(w, r)
	if !ok {
		return token.Claims{}, false
	}
	if claims.Role != identityentities.RoleAdmin {
		writeAuthFailure(w, http.StatusForbidden, "forbidden", "this operation requires the admin role")
		return token.Claims{}, false
	}
	return claims, true
}

func writeAuthFailure(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, identityhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
