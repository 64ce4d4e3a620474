package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/aretw0/tmsim/pkg/document"
	"github.com/aretw0/tmsim/pkg/domain"
)

// DefaultMaxBodyBytes bounds the size of an uploaded description.
const DefaultMaxBodyBytes = 1 << 20

// HeaderRequestID carries the request correlation id.
const HeaderRequestID = "X-Request-ID"

// Converter defines the part of tmsim.Converter the server exposes.
type Converter interface {
	ConvertAndEncode(ctx context.Context, src string, format document.Format) ([]byte, error)
	Validate(ctx context.Context, src string) []error
}

// ErrorResponse describes a failed conversion.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
	Line  int    `json:"line,omitempty"`
}

// ValidateResponse is the body of POST /validate.
type ValidateResponse struct {
	Valid  bool            `json:"valid"`
	Errors []ErrorResponse `json:"errors"`
}

// Server serves conversions over HTTP.
type Server struct {
	Converter    Converter
	Logger       *slog.Logger
	MaxBodyBytes int64
	metrics      http.Handler
}

// HandlerOption configures the handler.
type HandlerOption func(*Server)

// WithMetricsHandler mounts h (e.g. promhttp.Handler) on GET /metrics.
func WithMetricsHandler(h http.Handler) HandlerOption {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) HandlerOption {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithMaxBodyBytes overrides DefaultMaxBodyBytes.
func WithMaxBodyBytes(n int64) HandlerOption {
	return func(s *Server) {
		s.MaxBodyBytes = n
	}
}

// NewHandler creates a new HTTP handler for the converter.
func NewHandler(conv Converter, opts ...HandlerOption) http.Handler {
	server := &Server{
		Converter:    conv,
		Logger:       slog.Default(),
		MaxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(enableCORS)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})
	r.Post("/convert", server.Convert)
	r.Post("/validate", server.Validate)
	if server.metrics != nil {
		r.Method(http.MethodGet, "/metrics", server.metrics)
	}
	return r
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)
		next.ServeHTTP(w, r)
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+HeaderRequestID)
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// readSource reads the request body, answering 413 when it is too large.
func (s *Server) readSource(w http.ResponseWriter, r *http.Request) (string, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return "", false
		}
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("Failed to read request body", "error", err, "request_id", w.Header().Get(HeaderRequestID))
		return "", false
	}
	return string(body), true
}

// Convert handles the POST /convert?format= request.
func (s *Server) Convert(w http.ResponseWriter, r *http.Request) {
	format, err := document.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: "bad_request"})
		return
	}

	src, ok := s.readSource(w, r)
	if !ok {
		return
	}

	data, err := s.Converter.ConvertAndEncode(r.Context(), src, format)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if domain.ErrorKind(err) == domain.KindInternal && !errors.Is(err, domain.ErrLegacyState) {
			status = http.StatusInternalServerError
			s.Logger.Error("Convert failed", "error", err, "request_id", w.Header().Get(HeaderRequestID))
		}
		writeJSON(w, status, toErrorResponse(err))
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.Logger.Error("Convert response write failed", "error", err)
	}
}

// Validate handles the POST /validate request.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	src, ok := s.readSource(w, r)
	if !ok {
		return
	}

	errs := s.Converter.Validate(r.Context(), src)
	resp := ValidateResponse{Valid: len(errs) == 0, Errors: make([]ErrorResponse, 0, len(errs))}
	for _, err := range errs {
		resp.Errors = append(resp.Errors, toErrorResponse(err))
	}
	writeJSON(w, http.StatusOK, resp)
}

func toErrorResponse(err error) ErrorResponse {
	return ErrorResponse{
		Error: err.Error(),
		Kind:  domain.ErrorKind(err),
		Line:  domain.ErrorLine(err),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode failed", "error", err)
	}
}
