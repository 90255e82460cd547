package server

import (
	"encoding/json"
	"net/http"

	"github.com/dotforge/dotforge/pkg/backend"
	"github.com/dotforge/dotforge/pkg/buildinfo"
	"github.com/dotforge/dotforge/pkg/errors"
	"github.com/dotforge/dotforge/pkg/pipeline"
)

// contentTypes maps output formats to their MIME type. Formats not listed
// here are served as opaque bytes.
var contentTypes = map[string]string{
	"svg":   "image/svg+xml",
	"png":   "image/png",
	"pdf":   "application/pdf",
	"jpg":   "image/jpeg",
	"jpeg":  "image/jpeg",
	"gif":   "image/gif",
	"json":  "application/json",
	"dot":   "text/plain; charset=utf-8",
	"xdot":  "text/plain; charset=utf-8",
	"plain": "text/plain; charset=utf-8",
	"canon": "text/plain; charset=utf-8",
	"gv":    "text/plain; charset=utf-8",
}

// errorResponse is the JSON body returned for failed requests.
type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
		"built":   buildinfo.Date,
	}
	if v, err := backend.Version(r.Context(), backend.WithQuiet()); err == nil {
		resp["graphviz"] = backend.FormatVersion(v)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	body := http.MaxBytesReader(w, r.Body, maxSourceBytes)
	if err := json.NewDecoder(body).Decode(&opts); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "invalid request body: " + err.Error(),
			Code:  errors.ErrCodeInvalidInput,
		})
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	ct, ok := contentTypes[result.Format]
	if !ok {
		ct = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("X-Run-Id", result.RunID)
	if result.CacheHit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Data)
}

// writeError maps pipeline errors to HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError

	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidEngine, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidRenderer, errors.ErrCodeInvalidFormatter,
		errors.ErrCodeInvalidSource, errors.ErrCodeMissingArgument:
		status = http.StatusBadRequest
	case errors.ErrCodeUnsupported:
		status = http.StatusBadRequest
	}

	if backend.IsExecutableNotFound(err) {
		status = http.StatusNotFound
		code = errors.ErrCodeExecutableNotFound
	} else if _, ok := backend.AsExitError(err); ok {
		// Graphviz rejected the source (usually a syntax error).
		status = http.StatusUnprocessableEntity
		code = errors.ErrCodeRenderFailed
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("render failed", "error", err)
	}
	writeJSON(w, status, errorResponse{Error: errors.UserMessage(err), Code: code})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
