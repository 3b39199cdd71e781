package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	apperrors "github.com/agbru/limbcalc/internal/errors"
	"github.com/agbru/limbcalc/internal/limb"
	"github.com/agbru/limbcalc/internal/logging"
	"github.com/agbru/limbcalc/internal/multiplier"
	"github.com/agbru/limbcalc/internal/orchestration"
	"github.com/agbru/limbcalc/internal/sweep"
)

const (
	// DefaultVerifyCount is the number of random pairs of a /verify request
	// without a count parameter.
	DefaultVerifyCount = 10_000
	// ShutdownTimeout bounds the graceful shutdown.
	ShutdownTimeout = 10 * time.Second
)

// Config configures a Server.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
	// Workers is the number of goroutines per sweep.
	Workers int
	// RequestTimeout bounds the sweeps of one /verify request.
	RequestTimeout time.Duration
	// Security configures headers, CORS and request limits.
	Security SecurityConfig
}

// Server serves the limb calculator over HTTP.
type Server struct {
	cfg      Config
	metrics  *Metrics
	logger   logging.Logger
	security SecurityConfig
	http     *http.Server
}

// NewServer creates a server. A nil logger discards logs.
func NewServer(cfg Config, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.Nop()
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = time.Minute
	}
	if cfg.Security.MaxCount <= 0 {
		cfg.Security = DefaultSecurityConfig()
	}
	s := &Server{
		cfg:      cfg,
		metrics:  NewMetrics(),
		logger:   logger,
		security: cfg.Security,
	}
	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       30 * time.Second,
	}
	return s
}

// Handler returns the routed handler with every middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	route := func(path string, h http.HandlerFunc) {
		mux.HandleFunc(path, SecurityMiddleware(s.security, s.metricsMiddleware(h)))
	}
	route("/multiply", s.handleMultiply)
	route("/verify", s.handleVerify)
	route("/health", s.handleHealth)
	mux.HandleFunc("/metrics", SecurityMiddleware(s.security, s.handleMetrics))
	return mux
}

// Start listens on the configured address and serves until ctx is done,
// then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.logger.Info("server listening", logging.String("addr", ln.Addr().String()))

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.http.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		elapsed := time.Since(start)

		s.metrics.ObserveRequest(r.URL.Path, elapsed.Seconds())
		s.logger.Debug("request",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.Int("status", rec.status),
			logging.Float64("seconds", elapsed.Seconds()))
	}
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !s.allowGet(w, r) {
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// LimbsResponse is the JSON form of limb.Limbs.
type LimbsResponse struct {
	Hi uint32 `json:"hi"`
	Lo uint32 `json:"lo"`
}

// MultiplyResponse is the body of a /multiply response.
type MultiplyResponse struct {
	A          uint32        `json:"a"`
	B          uint32        `json:"b"`
	Width      int           `json:"width"`
	ALimbs     LimbsResponse `json:"a_limbs"`
	BLimbs     LimbsResponse `json:"b_limbs"`
	Res0       uint32        `json:"res0"`
	Res1       uint32        `json:"res1"`
	Components [4]uint32     `json:"components"`
	Actual     uint32        `json:"actual"`
	Expected   uint32        `json:"expected"`
	OK         bool          `json:"ok"`
}

func newMultiplyResponse(t limb.Trace) MultiplyResponse {
	return MultiplyResponse{
		A:          t.A,
		B:          t.B,
		Width:      int(t.Width),
		ALimbs:     LimbsResponse{Hi: t.ALimbs.Hi, Lo: t.ALimbs.Lo},
		BLimbs:     LimbsResponse{Hi: t.BLimbs.Hi, Lo: t.BLimbs.Lo},
		Res0:       t.Res0,
		Res1:       t.Res1,
		Components: t.Components(),
		Actual:     t.Actual,
		Expected:   t.Expected,
		OK:         t.OK(),
	}
}

func (s *Server) handleMultiply(w http.ResponseWriter, r *http.Request) {
	if !s.allowGet(w, r) {
		return
	}
	q := r.URL.Query()
	a, err := parseOperand(q.Get("a"), "a", limb.DemoA)
	if err != nil {
		s.writeError(w, err)
		return
	}
	b, err := parseOperand(q.Get("b"), "b", limb.DemoB)
	if err != nil {
		s.writeError(w, err)
		return
	}
	width := int(limb.Width32)
	if v := q.Get("width"); v != "" {
		if width, err = strconv.Atoi(v); err != nil {
			s.writeError(w, apperrors.ValidationError{Field: "width", Message: "must be an integer"})
			return
		}
	}
	wd, err := limb.ParseWidth(width)
	if err != nil {
		s.writeError(w, apperrors.ValidationError{Field: "width", Message: err.Error()})
		return
	}

	t := limb.NewTrace(a, b, wd)
	s.metrics.AddMultiplications("limb", 1)
	s.writeJSON(w, http.StatusOK, newMultiplyResponse(t))
}

// SweepResponse is one multiplier's outcome in a /verify response.
type SweepResponse struct {
	Algorithm string  `json:"algorithm"`
	Digest    string  `json:"digest,omitempty"`
	Seconds   float64 `json:"seconds"`
	Error     string  `json:"error,omitempty"`
}

// MismatchResponse describes a multiplier disagreeing with the reference.
type MismatchResponse struct {
	Algorithm string `json:"algorithm"`
	Reference string `json:"reference"`
	Index     int    `json:"index"`
	A         uint32 `json:"a"`
	B         uint32 `json:"b"`
	Expected  uint32 `json:"expected"`
	Got       uint32 `json:"got"`
}

// VerifyResponse is the body of a /verify response.
type VerifyResponse struct {
	Suite      string             `json:"suite"`
	Seed       uint64             `json:"seed"`
	Pairs      int                `json:"pairs"`
	Consistent bool               `json:"consistent"`
	Results    []SweepResponse    `json:"results"`
	Mismatches []MismatchResponse `json:"mismatches,omitempty"`
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	if !s.allowGet(w, r) {
		return
	}
	q := r.URL.Query()

	suiteName := q.Get("suite")
	if suiteName == "" {
		suiteName = string(multiplier.SuiteU32)
	}
	suite, err := multiplier.ParseSuite(suiteName)
	if err != nil {
		s.writeError(w, apperrors.ValidationError{Field: "suite", Message: err.Error()})
		return
	}

	count := DefaultVerifyCount
	if v := q.Get("count"); v != "" {
		if count, err = strconv.Atoi(v); err != nil {
			s.writeError(w, apperrors.ValidationError{Field: "count", Message: "must be an integer"})
			return
		}
	}
	if count < 0 || count > s.security.MaxCount {
		s.writeError(w, apperrors.ValidationError{
			Field:   "count",
			Message: fmt.Sprintf("out of range [0, %d]", s.security.MaxCount),
		})
		return
	}

	seed := uint64(1)
	if v := q.Get("seed"); v != "" {
		if seed, err = strconv.ParseUint(v, 0, 64); err != nil {
			s.writeError(w, apperrors.ValidationError{Field: "seed", Message: "must be an unsigned integer"})
			return
		}
	}

	algo := q.Get("algo")
	if algo == "" {
		algo = "all"
	}
	factory, err := multiplier.NewDefaultFactory(suite)
	if err != nil {
		s.writeError(w, err)
		return
	}
	multipliers := orchestration.GetMultipliersToRun(algo, factory)
	if len(multipliers) == 0 {
		s.writeError(w, apperrors.ValidationError{Field: "algo", Message: fmt.Sprintf("unknown algorithm %q", algo)})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.RequestTimeout)
	defer cancel()

	pairs := sweep.GenerateOperands(suite, seed, count)
	results := orchestration.ExecuteSweeps(ctx, multipliers, pairs, s.cfg.Workers, orchestration.NullProgressReporter{}, nil)

	resp := VerifyResponse{Suite: string(suite), Seed: seed, Pairs: len(pairs)}
	var firstErr error
	for _, res := range results {
		sr := SweepResponse{Algorithm: res.Name, Seconds: res.Duration.Seconds()}
		if res.Err != nil {
			sr.Error = res.Err.Error()
			if firstErr == nil {
				firstErr = res.Err
			}
		} else {
			sr.Digest = fmt.Sprintf("%016x", res.Result.Digest)
			s.metrics.AddMultiplications(res.Name, res.Result.Count())
		}
		resp.Results = append(resp.Results, sr)
	}
	if allFailed(results) {
		s.writeError(w, firstErr)
		return
	}

	for _, m := range orchestration.FindMismatches(results, pairs) {
		resp.Mismatches = append(resp.Mismatches, MismatchResponse{
			Algorithm: m.Algorithm, Reference: m.Reference, Index: m.Index,
			A: m.A, B: m.B, Expected: m.Expected, Got: m.Got,
		})
	}
	resp.Consistent = len(resp.Mismatches) == 0
	if !resp.Consistent {
		s.metrics.AddMismatches(len(resp.Mismatches))
		s.logger.Info("verification mismatch",
			logging.String("suite", resp.Suite),
			logging.Int("mismatches", len(resp.Mismatches)))
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func allFailed(results []orchestration.CalculationResult) bool {
	for _, res := range results {
		if res.Err == nil {
			return false
		}
	}
	return true
}

func parseOperand(v, field string, def uint32) (uint32, error) {
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseUint(v, 0, 32)
	if err != nil {
		return 0, apperrors.ValidationError{Field: field, Message: "must be an unsigned 32-bit integer"}
	}
	return uint32(n), nil
}

func (s *Server) allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet {
		return true
	}
	w.Header().Set("Allow", "GET, OPTIONS")
	s.writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
	return false
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps err to an HTTP status.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var ve apperrors.ValidationError
	switch {
	case errors.As(err, &ve):
		status = http.StatusBadRequest
	case apperrors.IsContextError(err):
		status = http.StatusServiceUnavailable
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
		}
	default:
		s.logger.Error("request failed", err)
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", err)
	}
}
