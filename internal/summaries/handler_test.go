package summaries

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"docsummary-backend/internal/llm"
)

var (
	errInvalidRequest = errors.New("provider rejected request: invalid_request")
	errTimedOut       = errors.New("request to provider timed out")
)

func newTestRouter(t *testing.T) (*gin.Engine, *fakeStore, *fakeLLM) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc, store, _, client := newTestService(t)
	router := gin.New()
	NewHandler(svc).RegisterRoutes(router.Group("/api/v1"))
	return router, store, client
}

func postSummarize(t *testing.T, router *gin.Engine, body map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/summarize", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSummarizeEndpoint(t *testing.T) {
	router, store, _ := newTestRouter(t)
	store.objects[docKey] = []byte("document body")

	rec := postSummarize(t, router, map[string]string{"filePath": docKey, "language": "en"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var resp struct {
		Summary string `json:"summary"`
		Cached  bool   `json:"cached"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Summary != "summary-1" {
		t.Fatalf("unexpected summary %q", resp.Summary)
	}
	if resp.Cached {
		t.Fatal("first generation must not report cached")
	}

	rec = postSummarize(t, router, map[string]string{"filePath": docKey, "language": "en"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Cached {
		t.Fatal("second English request should report cached")
	}
}

func TestSummarizeEndpointMissingFilePath(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := postSummarize(t, router, map[string]string{"language": "en"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "filePath is required") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestSummarizeEndpointFileNotFound(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := postSummarize(t, router, map[string]string{"filePath": "1700000000000-nope.txt"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d (%s)", rec.Code, rec.Body.String())
	}
}

func TestSummarizeEndpointUnsupportedType(t *testing.T) {
	router, store, _ := newTestRouter(t)
	store.objects["1700000000000-tool.exe"] = []byte{0x4d, 0x5a}

	rec := postSummarize(t, router, map[string]string{"filePath": "1700000000000-tool.exe"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (%s)", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Unsupported file type for summary: .exe") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestSummarizeEndpointProviderHints(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		mention string
	}{
		{
			name:    "not configured",
			err:     llm.ErrNotConfigured,
			status:  http.StatusInternalServerError,
			mention: "No LLM provider configured",
		},
		{
			name:    "invalid request",
			err:     errInvalidRequest,
			status:  http.StatusInternalServerError,
			mention: "provider account balance",
		},
		{
			name:    "timeout",
			err:     errTimedOut,
			status:  http.StatusInternalServerError,
			mention: "LLM_PROVIDER=deepseek",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router, store, client := newTestRouter(t)
			store.objects[docKey] = []byte("document body")
			client.err = tc.err

			rec := postSummarize(t, router, map[string]string{"filePath": docKey})
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d (%s)", tc.status, rec.Code, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), tc.mention) {
				t.Fatalf("expected body to mention %q, got %s", tc.mention, rec.Body.String())
			}
		})
	}
}
