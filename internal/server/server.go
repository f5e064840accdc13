// Package server is the HTTP facade: one extraction endpoint, one liveness
// endpoint. It validates the upload, runs the pipeline, and converts every
// component error into the uniform JSON failure payload, so no internal
// detail ever crosses the boundary unfiltered.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"taxmaster/statement-extractor/internal/extracterror"
	"taxmaster/statement-extractor/internal/logging"
	"taxmaster/statement-extractor/internal/models"

	"github.com/go-chi/chi/v5"
)

// EngineDescription identifies the extraction stack in the health payload.
const EngineDescription = "pdf-layout + gemini"

// Runner executes the extraction pipeline for one document. Satisfied by
// pipeline.Pipeline.
type Runner interface {
	Run(ctx context.Context, filename string, data []byte) (*models.ExtractionResult, error)
}

// Options configures the HTTP server.
type Options struct {
	Addr           string
	MaxUploadBytes int64
	RequestTimeout time.Duration
}

// Server serves the extraction API.
type Server struct {
	runner Runner
	opts   Options
	logger logging.Logger
	http   *http.Server
}

// New builds the server and its route table.
func New(runner Runner, opts Options, logger logging.Logger) *Server {
	s := &Server{
		runner: runner,
		opts:   opts,
		logger: logger,
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))

	r.Post("/extract", s.handleExtract)
	r.Get("/health", s.handleHealth)

	s.http = &http.Server{
		Addr:              opts.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Handler exposes the route table for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// ListenAndServe blocks serving requests until Shutdown is called.
func (s *Server) ListenAndServe() error {
	s.logger.Info("HTTP server listening",
		logging.Field{Key: logging.FieldAddr, Value: s.opts.Addr})
	return s.http.ListenAndServe()
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// handleExtract accepts a multipart upload with a single "file" field and
// runs the pipeline on it.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)

	filename, data, err := readUpload(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	ctx := r.Context()
	if s.opts.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.RequestTimeout)
		defer cancel()
	}

	result, err := s.runner.Run(ctx, filename, data)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleHealth reports liveness. No side effects, no failure modes.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"engine": EngineDescription,
	})
}

// readUpload pulls the uploaded file out of the multipart form.
func readUpload(r *http.Request) (string, []byte, error) {
	file, header, err := r.FormFile("file")
	if err != nil {
		return "", nil, &extracterror.BadRequestError{Reason: "missing 'file' field in multipart form"}
	}
	defer func() {
		_ = file.Close()
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", nil, &extracterror.BadRequestError{Reason: "could not read uploaded file"}
	}
	if len(data) == 0 {
		return "", nil, &extracterror.BadRequestError{Reason: "uploaded file is empty"}
	}

	return header.Filename, data, nil
}

// writeError maps the error taxonomy onto the wire. Malformed requests get
// 400; everything else is a structured extraction failure. Only taxonomy
// messages reach the caller; unexpected errors are replaced with a generic
// message so internals (paths, keys, stack traces) never leak.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := s.logger.WithError(err).WithField(logging.FieldRequestID, RequestIDFromContext(r.Context()))

	var (
		badRequest  *extracterror.BadRequestError
		unreadable  *extracterror.UnreadablePDFError
		empty       *extracterror.EmptyStatementError
		unavailable *extracterror.LLMUnavailableError
	)

	switch {
	case errors.As(err, &badRequest):
		log.Warn("Rejected request")
		writeFailure(w, http.StatusBadRequest, badRequest.Error())
	case errors.As(err, &unreadable):
		log.Warn("Unreadable document")
		writeFailure(w, http.StatusOK, unreadable.Error())
	case errors.As(err, &empty):
		log.Warn("Empty statement")
		writeFailure(w, http.StatusOK, empty.Error())
	case errors.As(err, &unavailable):
		log.Error("Model unavailable")
		writeFailure(w, http.StatusOK, "extraction service temporarily unavailable")
	default:
		log.Error("Extraction failed")
		writeFailure(w, http.StatusOK, "extraction failed")
	}
}

func writeFailure(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.NewFailureResult(msg))
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
