package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hyperifyio/gojobsearch/internal/filter"
)

const resultsPage = `<html><body>
<div><a href="/jobs/results/1-engineer">Software Engineer</a><span>Bangalore, India</span></div>
<div><a href="/jobs/results/2-analyst">Data Analyst</a><span>Remote</span></div>
</body></html>`

func newResultsServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(resultsPage))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// newChatStub emulates an OpenAI-compatible chat completions endpoint.
func newChatStub(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		if status != http.StatusOK {
			http.Error(w, "upstream broken", status)
			return
		}
		resp := map[string]any{
			"id":     "stub",
			"object": "chat.completion",
			"choices": []map[string]any{
				{"index": 0, "message": map[string]any{"role": "assistant", "content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSearch_HeuristicFlow(t *testing.T) {
	srv := newResultsServer(t)
	a := New(Config{BaseURL: srv.URL + "/jobs/results/"})

	out := a.Search(context.Background(), "internships Bangalore pursuing degree", false)
	if len(out.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", out.Warnings)
	}
	if got := out.Filters.Get(filter.KeyLocation); got != "Bangalore, India" {
		t.Fatalf("expected location filter, got %q", got)
	}
	if !strings.HasPrefix(out.URL, srv.URL+"/jobs/results/?") {
		t.Fatalf("unexpected search URL %q", out.URL)
	}
	if len(out.Results) != 2 {
		t.Fatalf("expected 2 results, got %+v", out.Results)
	}
	if out.Results[0].Title != "Software Engineer" {
		t.Fatalf("expected insertion order preserved, got %q first", out.Results[0].Title)
	}
}

func TestSearch_RemoteExtractionUsed(t *testing.T) {
	srv := newResultsServer(t)
	stub := newChatStub(t, http.StatusOK, `{"location": "Bangalore, India", "has_remote": true}`)

	a := New(Config{
		BaseURL:    srv.URL + "/jobs/results/",
		LLMBaseURL: stub.URL + "/v1",
		LLMAPIKey:  "test-key",
	})
	if !a.RemoteEnabled() {
		t.Fatal("expected remote mode enabled with API key")
	}

	out := a.Search(context.Background(), "remote jobs in Bangalore", true)
	if len(out.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", out.Warnings)
	}
	if got := out.Filters.Get(filter.KeyHasRemote); got != "true" {
		t.Fatalf("expected has_remote from remote reply, got %q", got)
	}
	if !strings.Contains(out.URL, "has_remote=true") {
		t.Fatalf("expected normalized has_remote in URL %q", out.URL)
	}
}

func TestSearch_RemoteFailureFallsBackToHeuristic(t *testing.T) {
	srv := newResultsServer(t)
	stub := newChatStub(t, http.StatusInternalServerError, "")

	a := New(Config{
		BaseURL:    srv.URL + "/jobs/results/",
		LLMBaseURL: stub.URL + "/v1",
		LLMAPIKey:  "test-key",
	})

	out := a.Search(context.Background(), "internships Bangalore pursuing degree", true)
	if len(out.Warnings) != 1 || !strings.Contains(out.Warnings[0], "remote extraction failed") {
		t.Fatalf("expected remote-failure warning, got %v", out.Warnings)
	}
	// Heuristic result still flows through.
	if got := out.Filters.Get(filter.KeyTargetLevel); got != "INTERN_AND_APPRENTICE" {
		t.Fatalf("expected heuristic filters after fallback, got %q", got)
	}
	if len(out.Results) != 2 {
		t.Fatalf("expected results despite extraction fallback, got %+v", out.Results)
	}
}

func TestSearch_RemoteRequestedButUnavailable(t *testing.T) {
	srv := newResultsServer(t)
	a := New(Config{BaseURL: srv.URL + "/jobs/results/"})
	if a.RemoteEnabled() {
		t.Fatal("expected remote mode disabled without API key")
	}

	out := a.Search(context.Background(), "jobs in London", true)
	if len(out.Warnings) != 1 || !strings.Contains(out.Warnings[0], "remote extraction unavailable") {
		t.Fatalf("expected unavailability warning, got %v", out.Warnings)
	}
	if got := out.Filters.Get(filter.KeyLocation); got != "London" {
		t.Fatalf("expected heuristic extraction, got %q", got)
	}
}

func TestSearch_FetchFailureDegradesToEmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	a := New(Config{BaseURL: srv.URL + "/jobs/results/"})
	out := a.Search(context.Background(), "jobs in London", false)
	if len(out.Results) != 0 {
		t.Fatalf("expected no results, got %+v", out.Results)
	}
	if len(out.Warnings) != 1 || !strings.Contains(out.Warnings[0], "failed to fetch results") {
		t.Fatalf("expected fetch warning, got %v", out.Warnings)
	}
	if out.URL == "" {
		t.Fatal("expected the resolved URL to survive a fetch failure")
	}
}

func TestSearch_EmptyQueryHitsBareBase(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.RequestURI()
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body></body></html>"))
	}))
	defer srv.Close()

	a := New(Config{BaseURL: srv.URL + "/jobs/results/"})
	out := a.Search(context.Background(), "   ", false)
	if out.Filters.Len() != 0 {
		t.Fatalf("expected empty filter model, got %+v", out.Filters.Pairs())
	}
	if strings.Contains(out.URL, "?") {
		t.Fatalf("expected bare base URL, got %q", out.URL)
	}
	if gotPath != "/jobs/results/" {
		t.Fatalf("expected bare path requested, got %q", gotPath)
	}
}
