package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	ballotcatalog "electora/contexts/election-core/ballot-catalog"
	cycleregistry "electora/contexts/election-core/cycle-registry"
	votingengine "electora/contexts/election-core/voting-engine"
	votingports "electora/contexts/election-core/voting-engine/ports"
	notificationservice "electora/contexts/engagement/notification-service"
	identityservice "electora/contexts/identity-access/identity-service"
	"electora/internal/platform/token"
)

type stubNotifier struct{}

func (stubNotifier) SendWelcome(context.Context, string, string, string) error { return nil }

func newTestServer(t *testing.T) *Server {
	t.Helper()
	tokens := token.Issuer{Secret: []byte("test-secret"), TTL: time.Hour}

	identity := identityservice.NewInMemoryModule(tokens, stubNotifier{}, nil)
	cycles := cycleregistry.NewInMemoryModule(nil)
	ballots := ballotcatalog.NewInMemoryModule(nil)
	votes := votingengine.NewInMemoryModule(nil, nil)
	notifications, _ := notificationservice.NewInMemoryModule(nil)

	return New(identity, cycles, ballots, votes, notifications, tokens, nil, ":0")
}

func bearerFor(t *testing.T, s *Server, userID string, role string) string {
	t.Helper()
	raw, err := s.tokens.Issue(userID, role)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return "Bearer " + raw
}

func TestCastVoteRequiresBearerToken(t *testing.T) {
	server := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/votes", bytes.NewReader([]byte(`{"candidate_id":"cand-a"}`)))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCastVoteRejectsForgedToken(t *testing.T) {
	server := newTestServer(t)
	forged := token.Issuer{Secret: []byte("other-secret"), TTL: time.Hour}
	raw, err := forged.Issue("voter-1", "member")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/votes", bytes.NewReader([]byte(`{"candidate_id":"cand-a"}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+raw)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCreateCycleRejectsMemberRole(t *testing.T) {
	server := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/voting-cycles", bytes.NewReader([]byte(`{"year":2026}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerFor(t, server, "user-1", "member"))

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCreateCycleAsAdmin(t *testing.T) {
	server := newTestServer(t)
	payload := `{"year":2026,"start_date":"2026-03-01","end_date":"2026-03-31"}`
	req := httptest.NewRequest(http.MethodPost, "/voting-cycles", bytes.NewReader([]byte(payload)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerFor(t, server, "admin-1", "admin"))

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	var resp struct {
		CycleID   string `json:"voting_cycle_id"`
		Year      int    `json:"year"`
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
		IsActive  bool   `json:"is_active"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.CycleID == "" || resp.Year != 2026 || resp.IsActive {
		t.Fatalf("unexpected cycle payload: %+v", resp)
	}
	if resp.StartDate != "2026-03-01T00:00:00Z" || resp.EndDate != "2026-03-31T00:00:00Z" {
		t.Fatalf("voting window missing from response: start=%q end=%q", resp.StartDate, resp.EndDate)
	}
}

func TestCreateCycleRequiresVotingWindow(t *testing.T) {
	server := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/voting-cycles", bytes.NewReader([]byte(`{"year":2026}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerFor(t, server, "admin-1", "admin"))

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without a window, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestLiveScoresIsPublic(t *testing.T) {
	server := newTestServer(t)
	store := server.votes.Store
	store.SetCycle(votingports.CycleRef{CycleID: "cycle-2026", Year: 2026, IsActive: true})
	store.SetPosition(votingports.PositionRef{PositionID: "pos-president", CycleID: "cycle-2026", Name: "President"})
	store.SetCandidate(votingports.CandidateRef{
		CandidateID: "cand-a",
		PositionID:  "pos-president",
		CycleID:     "cycle-2026",
		Name:        "Ada Obi",
	})

	req := httptest.NewRequest(http.MethodGet, "/votes/live-scores/cycle-2026", nil)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 without auth, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestResultsRequireAdmin(t *testing.T) {
	server := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/votes/results/cycle-2026", nil)
	req.Header.Set("Authorization", bearerFor(t, server, "user-1", "member"))

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestRegisterThenLogin(t *testing.T) {
	server := newTestServer(t)
	payload := `{
		"first_name": "Ada",
		"last_name": "Obi",
		"email": "ada@example.com",
		"membership_id": "MEM-001",
		"password": "s3cret-pass"
	}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader([]byte(payload)))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	login := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader([]byte(`{"email":"ada@example.com","password":"s3cret-pass"}`)))
	login.Header.Set("Content-Type", "application/json")

	rr = httptest.NewRecorder()
	server.mux.ServeHTTP(rr, login)
	if rr.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	claims, err := server.tokens.Parse(resp.Token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.Role != "member" {
		t.Fatalf("self-registered accounts must be members, got role %q", claims.Role)
	}
}

func TestGetUserForbidsReadingOthers(t *testing.T) {
	server := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/users/user-2", nil)
	req.Header.Set("Authorization", bearerFor(t, server, "user-1", "member"))

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}
