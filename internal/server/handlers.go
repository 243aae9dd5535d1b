package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	lmerrors "github.com/matzehuels/lmgraph/pkg/errors"
	lmio "github.com/matzehuels/lmgraph/pkg/io"
	"github.com/matzehuels/lmgraph/pkg/pipeline"
)

// CreateResponse is the body returned by POST /graphs.
type CreateResponse struct {
	ID    string         `json:"id"`
	Stats pipeline.Stats `json:"stats"`
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	format, err := lmio.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := reduceOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{
				Error:   string(lmerrors.ErrCodeInvalidInput),
				Message: "description exceeds " + strconv.FormatInt(tooLarge.Limit, 10) + " bytes",
			})
			return
		}
		s.writeError(w, r, lmerrors.Wrap(lmerrors.ErrCodeInvalidInput, err, "read body"))
		return
	}
	if len(bytes.TrimSpace(body)) == 0 {
		s.writeError(w, r, lmerrors.New(lmerrors.ErrCodeInvalidInput, "empty description"))
		return
	}

	id := uuid.NewString()
	dir := s.dir(id)
	opts.Description = body
	opts.Format = format
	opts.OutputDir = dir
	opts.Formats = []string{pipeline.FormatJSON, pipeline.FormatDOT}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		_ = os.RemoveAll(dir)
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("graph created", "id", id, "landmarks", res.Stats.Landmarks, "sccs", res.Stats.SCCs)
	w.Header().Set("Location", "/graphs/"+id)
	writeJSON(w, http.StatusCreated, CreateResponse{ID: id, Stats: res.Stats})
}

// reduceOptions reads the reduction query parameters.
func reduceOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	var opts pipeline.Options
	for name, dst := range map[string]*bool{
		"discard_disjunctive": &opts.DiscardDisjunctive,
		"discard_conjunctive": &opts.DiscardConjunctive,
		"acyclic":             &opts.Acyclic,
	} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, lmerrors.Wrap(lmerrors.ErrCodeInvalidInput, err, "query parameter %s", name)
		}
		*dst = b
	}
	opts.MinOrdering = q.Get("min_ordering")
	return opts, nil
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	s.serveFile(w, r, pipeline.FileName(pipeline.FormatJSON), "application/json")
}

func (s *Server) handleDOT(w http.ResponseWriter, r *http.Request) {
	s.serveFile(w, r, pipeline.FileName(pipeline.FormatDOT), "text/vnd.graphviz")
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	dot, ok := s.readFile(w, r, pipeline.FileName(pipeline.FormatDOT))
	if !ok {
		return
	}
	svg, hit, err := s.runner.Render(r.Context(), string(dot), pipeline.FormatSVG, pipeline.Options{})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	if hit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	_, _ = w.Write(svg)
}

func (s *Server) serveFile(w http.ResponseWriter, r *http.Request, name, contentType string) {
	data, ok := s.readFile(w, r, name)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(data)
}

// readFile reads a file of the upload named in the URL. On failure it writes
// the error response and returns false.
func (s *Server) readFile(w http.ResponseWriter, r *http.Request, name string) ([]byte, bool) {
	id := chi.URLParam(r, "id")
	if err := lmerrors.ValidateGraphID(id); err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	data, err := os.ReadFile(filepath.Join(s.dir(id), name))
	if os.IsNotExist(err) {
		s.writeError(w, r, lmerrors.New(lmerrors.ErrCodeNotFound, "graph %s not found", id))
		return nil, false
	}
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	return data, true
}

func (s *Server) dir(id string) string {
	return filepath.Join(s.root, id)
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	switch lmerrors.GetCode(err) {
	case lmerrors.ErrCodeInvalidID:
		return http.StatusBadRequest
	case lmerrors.ErrCodeNotFound, lmerrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case lmerrors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	if lmerrors.IsInputError(err) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := lmerrors.GetCode(err)
	if code == "" {
		code = lmerrors.ErrCodeInternal
	}
	msg := lmerrors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		msg = "internal error"
	}
	writeJSON(w, status, ErrorResponse{Error: string(code), Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
