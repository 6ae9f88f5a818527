package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdg-garage/school-activities-api/internal/store"
	"github.com/go-chi/chi/v5"
)

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()
	db := setupSeeded(t)

	staticDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<h1>Mergington</h1>"), 0o644); err != nil {
		t.Fatalf("failed to write index.html: %v", err)
	}

	r := chi.NewRouter()
	RegisterRoutes(r, RouteOptions{StaticDir: staticDir, EnableMetrics: true}, NewActivityHandler(store.New(db), nil))
	return r
}

func serve(r http.Handler, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestRoutes_ListActivities(t *testing.T) {
	r := newTestRouter(t)

	rr := serve(r, http.MethodGet, "/activities")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rr.Code, rr.Body.String())
	}

	var activities []struct {
		ID              uint     `json:"id"`
		Name            string   `json:"name"`
		Description     string   `json:"description"`
		Schedule        string   `json:"schedule"`
		MaxParticipants *int     `json:"max_participants"`
		Participants    []string `json:"participants"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &activities); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(activities) != 9 {
		t.Fatalf("expected 9 activities, got %d", len(activities))
	}
	chess := activities[0]
	if chess.Name != "Chess Club" || chess.ID == 0 || chess.MaxParticipants == nil || *chess.MaxParticipants != 12 {
		t.Errorf("unexpected chess club %+v", chess)
	}
	if chess.Schedule != "Fridays, 3:30 PM - 5:00 PM" {
		t.Errorf("unexpected schedule %q", chess.Schedule)
	}
}

func TestRoutes_SignupAndUnregister(t *testing.T) {
	r := newTestRouter(t)

	rr := serve(r, http.MethodPost, "/activities/Chess%20Club/signup?email=third@mergington.edu")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rr.Code, rr.Body.String())
	}
	var signup struct {
		Message       string `json:"message"`
		ParticipantID uint   `json:"participant_id"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &signup); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if signup.Message != "Signed up third@mergington.edu for Chess Club" || signup.ParticipantID == 0 {
		t.Errorf("unexpected sign-up response %+v", signup)
	}

	rr = serve(r, http.MethodPost, "/activities/Chess%20Club/signup?email=third@mergington.edu")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for duplicate got %d", rr.Code)
	}
	var problem struct {
		Detail string `json:"detail"`
	}
	json.Unmarshal(rr.Body.Bytes(), &problem)
	if problem.Detail != "Student is already signed up" {
		t.Errorf("unexpected detail %q", problem.Detail)
	}

	rr = serve(r, http.MethodPost, "/activities/Nope/signup?email=third@mergington.edu")
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404 got %d", rr.Code)
	}

	rr = serve(r, http.MethodDelete, "/activities/Chess%20Club/unregister?email=third@mergington.edu")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "Unregistered third@mergington.edu from Chess Club") {
		t.Errorf("unexpected unregister body %s", rr.Body.String())
	}

	rr = serve(r, http.MethodDelete, "/activities/Chess%20Club/unregister?email=third@mergington.edu")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 got %d", rr.Code)
	}
}

func TestRoutes_SignupEmailHandling(t *testing.T) {
	r := newTestRouter(t)

	rr := serve(r, http.MethodPost, "/activities/Chess%20Club/signup")
	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422 without email got %d", rr.Code)
	}

	rr = serve(r, http.MethodPost, "/activities/Chess%20Club/signup?email=student")
	if rr.Code != http.StatusOK {
		t.Errorf("expected 200 for plain string email got %d: %s", rr.Code, rr.Body.String())
	}

	rr = serve(r, http.MethodPost, "/activities/Chess%20Club/signup?email="+url.QueryEscape("Michael <michael@mergington.edu>"))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for wrapped duplicate got %d: %s", rr.Code, rr.Body.String())
	}

	rr = serve(r, http.MethodPost, "/activities/Chess%20Club/signup?email="+url.QueryEscape("Bob <bob@mergington.edu>"))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rr.Code, rr.Body.String())
	}

	rr = serve(r, http.MethodGet, "/activities")
	if strings.Contains(rr.Body.String(), "Bob <") {
		t.Error("expected display name to be stripped from stored email")
	}
	if !strings.Contains(rr.Body.String(), `"bob@mergington.edu"`) {
		t.Error("expected bare address in listing")
	}
}

func TestRoutes_StaticAndRedirect(t *testing.T) {
	r := newTestRouter(t)

	rr := serve(r, http.MethodGet, "/")
	if rr.Code != http.StatusFound {
		t.Fatalf("expected 302 got %d", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != IndexPath {
		t.Errorf("expected redirect to %s, got %s", IndexPath, loc)
	}

	rr = serve(r, http.MethodGet, IndexPath)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Mergington") {
		t.Errorf("unexpected static body %s", rr.Body.String())
	}
}

func TestRoutes_HealthMetricsAndExport(t *testing.T) {
	r := newTestRouter(t)

	if rr := serve(r, http.MethodGet, "/health"); rr.Code != http.StatusOK || rr.Body.String() != "OK" {
		t.Errorf("unexpected health response %d %s", rr.Code, rr.Body.String())
	}

	serve(r, http.MethodPost, "/activities/Art%20Club/signup?email=metrics@mergington.edu")
	rr := serve(r, http.MethodGet, "/metrics")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `activities_api_signups_total{outcome="ok"}`) {
		t.Error("expected sign-up counter in metrics output")
	}

	rr = serve(r, http.MethodGet, "/activities/export")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("unexpected content type %q", ct)
	}
}
