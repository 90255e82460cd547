package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/dotforge/dotforge/pkg/backend"
	"github.com/dotforge/dotforge/pkg/cache"
	"github.com/dotforge/dotforge/pkg/errors"
	"github.com/dotforge/dotforge/pkg/pipeline"
)

// newTestServer wires a server around a runner with a stubbed render stage.
func newTestServer(t *testing.T, pipeFn func(ctx context.Context, engine, format string, src []byte, opts ...backend.Option) ([]byte, error)) *Server {
	t.Helper()
	runner := pipeline.NewRunner(cache.NewNullCache(), log.New(io.Discard))
	if pipeFn != nil {
		runner.PipeFunc = pipeFn
	}
	return New(runner, log.New(io.Discard), "")
}

func okPipe(_ context.Context, engine, format string, _ []byte, _ ...backend.Option) ([]byte, error) {
	return []byte("rendered:" + engine + ":" + format), nil
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, okPipe)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %q, want ok", body["status"])
	}
}

func TestVersion(t *testing.T) {
	srv := newTestServer(t, okPipe)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/version", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["version"] == "" {
		t.Error("version should be set")
	}
}

func TestRender(t *testing.T) {
	srv := newTestServer(t, okPipe)

	req := renderRequest(t, pipeline.Options{
		Source: "digraph { a -> b }",
		Format: "svg",
	})
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}
	if got := rec.Header().Get("Content-Type"); got != "image/svg+xml" {
		t.Errorf("Content-Type = %q, want image/svg+xml", got)
	}
	if rec.Header().Get("X-Run-Id") == "" {
		t.Error("X-Run-Id should be set")
	}
	if got := rec.Header().Get("X-Cache"); got != "MISS" {
		t.Errorf("X-Cache = %q, want MISS", got)
	}
	if got := rec.Body.String(); got != "rendered:dot:svg" {
		t.Errorf("body = %q", got)
	}
}

func TestRenderValidationError(t *testing.T) {
	srv := newTestServer(t, okPipe)

	req := renderRequest(t, pipeline.Options{
		Source: "digraph { a -> b }",
		Engine: "turbo",
	})
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body struct {
		Error string      `json:"error"`
		Code  errors.Code `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Code != errors.ErrCodeInvalidEngine {
		t.Errorf("code = %q, want %q", body.Code, errors.ErrCodeInvalidEngine)
	}
	if strings.HasPrefix(body.Error, string(errors.ErrCodeInvalidEngine)) {
		t.Errorf("error message should not repeat the code: %q", body.Error)
	}
}

func TestRenderMalformedBody(t *testing.T) {
	srv := newTestServer(t, okPipe)

	req := httptest.NewRequest(http.MethodPost, "/render", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRenderSyntaxErrorMapsTo422(t *testing.T) {
	srv := newTestServer(t, func(context.Context, string, string, []byte, ...backend.Option) ([]byte, error) {
		return nil, &backend.ExitError{Cmd: "dot -Tsvg", ExitCode: 1, Stderr: "syntax error"}
	})

	req := renderRequest(t, pipeline.Options{
		Source: "digraph { a -> ",
		Format: "svg",
	})
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422: %s", rec.Code, rec.Body)
	}
}

func TestRenderMissingExecutableMapsTo404(t *testing.T) {
	srv := newTestServer(t, func(context.Context, string, string, []byte, ...backend.Option) ([]byte, error) {
		return nil, &backend.ExecutableNotFoundError{Binary: "dot"}
	})

	// A renderer chain disables the embedded fallback, so the missing
	// executable surfaces to the client.
	req := renderRequest(t, pipeline.Options{
		Source:   "digraph { a -> b }",
		Format:   "png",
		Renderer: "cairo",
	})
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404: %s", rec.Code, rec.Body)
	}
	var body struct {
		Code errors.Code `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Code != errors.ErrCodeExecutableNotFound {
		t.Errorf("code = %q, want %q", body.Code, errors.ErrCodeExecutableNotFound)
	}
}

func renderRequest(t *testing.T, opts pipeline.Options) *http.Request {
	t.Helper()
	data, err := json.Marshal(opts)
	if err != nil {
		t.Fatalf("marshal options: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/render", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}
