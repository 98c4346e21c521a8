package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gregtusar/exotics/pkg/auth"
	"github.com/gregtusar/exotics/pkg/contract"
	"github.com/gregtusar/exotics/pkg/models"
	"github.com/gregtusar/exotics/pkg/valuer"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const maxBodyBytes = 1 << 20

type Server struct {
	book    *valuer.Book
	valuer  *valuer.Valuer
	logger  *logrus.Logger
	signer  *auth.Signer
	limiter *rate.Limiter
	http    *http.Server
}

type Option func(*Server)

// WithSigner requires a valid bearer token on every /api and /ws route
// except health.
func WithSigner(signer *auth.Signer) Option {
	return func(s *Server) { s.signer = signer }
}

// WithRateLimit caps the request rate across all clients. A non-positive
// limit disables it.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(s *Server) {
		if perSecond > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
		}
	}
}

func NewServer(book *valuer.Book, v *valuer.Valuer, logger *logrus.Logger, port string, opts ...Option) *Server {
	s := &Server{
		book:   book,
		valuer: v,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.http = &http.Server{
		Addr:              ":" + port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/health", s.handleHealth)
	mux.Handle("/api/contracts", s.protect(http.HandlerFunc(s.handleContracts)))
	mux.Handle("/api/valuations", s.protect(http.HandlerFunc(s.handleValuations)))
	mux.Handle("/ws/valuations", s.protect(http.HandlerFunc(s.handleStream)))

	return corsMiddleware(s.rateLimitMiddleware(mux))
}

func (s *Server) Start() error {
	s.logger.Infof("Starting API server on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"contracts": s.book.Len(),
		"timestamp": time.Now().UTC(),
	}

	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleContracts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		entries := s.book.Entries()
		specs := make([]models.ContractSpec, 0, len(entries))
		for _, e := range entries {
			specs = append(specs, e.Spec)
		}
		s.writeJSON(w, http.StatusOK, specs)

	case http.MethodPost:
		var spec models.ContractSpec
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&spec); err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}

		entry, err := s.book.Add(spec)
		if err != nil {
			s.writeError(w, statusFor(err), err)
			return
		}
		s.writeJSON(w, http.StatusCreated, entry.Spec)

	case http.MethodDelete:
		name := r.URL.Query().Get("name")
		if name == "" {
			s.writeError(w, http.StatusBadRequest, errors.New("name is required"))
			return
		}
		if err := s.book.Remove(name); err != nil {
			s.writeError(w, statusFor(err), err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleValuations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.ValuationRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	report, err := s.evaluate(r.Context(), req)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

// evaluate rejects an invalid path up front; every contract would fail on it.
func (s *Server) evaluate(ctx context.Context, req models.ValuationRequest) (*models.Report, error) {
	if err := contract.Path(req.Path).Validate(); err != nil {
		return nil, err
	}
	if len(req.Contracts) > 0 {
		return s.valuer.EvaluateSpecs(ctx, req.Path, req.Contracts)
	}
	return s.valuer.Evaluate(ctx, req.Path, s.book.Entries())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, contract.ErrInvalidParameter), errors.Is(err, contract.ErrDomain):
		return http.StatusBadRequest
	case errors.Is(err, valuer.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, valuer.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.WithError(err).Error("Request failed")
	}
	s.writeJSON(w, status, models.ErrorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.WithError(err).Error("Failed to encode JSON response")
	}
}
