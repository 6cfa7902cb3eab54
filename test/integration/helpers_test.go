package integration

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// copyFixtureToTemp copies a fixture directory to a temp directory and
// returns the path of the copy.
func copyFixtureToTemp(t *testing.T, fixtureName, tempDir string) string {
	t.Helper()

	fixtureDir, err := filepath.Abs(filepath.Join("../fixtures", fixtureName))
	if err != nil {
		t.Fatalf("failed to get fixture path: %v", err)
	}

	destDir := filepath.Join(tempDir, fixtureName)
	err = filepath.Walk(fixtureDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(fixtureDir, path)
		if err != nil {
			return err
		}
		destPath := filepath.Join(destDir, relPath)

		if info.IsDir() {
			return os.MkdirAll(destPath, 0755)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(destPath, data, info.Mode())
	})
	if err != nil {
		t.Fatalf("failed to copy fixture: %v", err)
	}

	return destDir
}

// apiRequest is a write request received by the fake script library.
type apiRequest struct {
	Method string
	Path   string
	Body   map[string]interface{}
}

// fakeLibrary serves the token, list, create and update endpoints.
type fakeLibrary struct {
	scripts string

	mu       sync.Mutex
	tokens   int
	requests []apiRequest
}

func newFakeLibrary(t *testing.T, scripts string) (*fakeLibrary, *httptest.Server) {
	t.Helper()

	f := &fakeLibrary{scripts: scripts}
	mux := http.NewServeMux()

	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.tokens++
		f.mu.Unlock()

		_ = r.ParseForm()
		if r.PostForm.Get("client_secret") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"invalid_client"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"Bearer","expires_in":3600}`))
	})

	mux.HandleFunc("/v2/automation/scripts", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(f.scripts))
			return
		}
		f.record(r)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 500}`))
	})

	mux.HandleFunc("/v2/automation/scripts/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		f.record(r)
		w.WriteHeader(http.StatusNoContent)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeLibrary) record(r *http.Request) {
	data, _ := io.ReadAll(r.Body)
	var body map[string]interface{}
	_ = json.Unmarshal(data, &body)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, apiRequest{Method: r.Method, Path: r.URL.Path, Body: body})
}

// writes returns the recorded write requests keyed by script name.
func (f *fakeLibrary) writes() map[string]apiRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make(map[string]apiRequest)
	for _, req := range f.requests {
		name, _ := req.Body["name"].(string)
		out[strings.TrimSpace(name)] = req
	}
	return out
}
