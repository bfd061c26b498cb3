// Package server exposes the calculators as a JSON HTTP API.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/fincalc/internal/calculator"
	"github.com/iwvelando/fincalc/pkg/calcerr"
	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/evaluator"
	"go.uber.org/zap"
)

// RequestIDHeader carries the identifier assigned to each request.
const RequestIDHeader = "X-Request-ID"

type handler struct {
	logger      *zap.Logger
	service     *calculator.Service
	maxBodySize int64
	version     string
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

type evaluateRequest struct {
	State   *evaluator.State `json:"state"`
	Actions []string         `json:"actions"`
}

type evaluateResponse struct {
	State evaluator.State `json:"state"`
	Value float64         `json:"value"`
}

// NewHandler constructs the HTTP handler that serves the calculator API.
func NewHandler(logger *zap.Logger, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:      logger,
		service:     calculator.New(logger),
		maxBodySize: maxBodySize,
		version:     trimmedVersion,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/mortgage", h.handleMortgage)
	mux.HandleFunc("/api/loan", h.handleLoan)
	mux.HandleFunc("/api/investment", h.handleInvestment)
	mux.HandleFunc("/api/savings", h.handleSavings)
	mux.HandleFunc("/api/evaluate", h.handleEvaluate)
	mux.HandleFunc("/api/version", h.handleVersion)

	return h.withRequestID(mux)
}

type requestIDKey struct{}

// withRequestID assigns an X-Request-ID, honouring a valid UUID supplied by
// the client, and logs the completed request.
func (h *handler) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, withRequestIDValue(r, id))

		h.logger.Info("handled request",
			zap.String("op", "server.withRequestID"),
			zap.String("requestID", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

func (h *handler) handleMortgage(w http.ResponseWriter, r *http.Request) {
	var req calculator.MortgageRequest
	if !h.decode(w, r, &req, "server.handleMortgage") {
		return
	}
	result, err := h.serviceFor(r).Mortgage(req)
	h.respond(w, r, result, err, "server.handleMortgage")
}

func (h *handler) handleLoan(w http.ResponseWriter, r *http.Request) {
	var req calculator.LoanRequest
	if !h.decode(w, r, &req, "server.handleLoan") {
		return
	}
	result, err := h.serviceFor(r).Loan(req)
	h.respond(w, r, result, err, "server.handleLoan")
}

func (h *handler) handleInvestment(w http.ResponseWriter, r *http.Request) {
	req := calculator.InvestmentRequest{ProjectionYears: constants.DefaultProjectionYears}
	if !h.decode(w, r, &req, "server.handleInvestment") {
		return
	}
	result, err := h.serviceFor(r).Investment(req)
	h.respond(w, r, result, err, "server.handleInvestment")
}

func (h *handler) handleSavings(w http.ResponseWriter, r *http.Request) {
	var req calculator.SavingsRequest
	if !h.decode(w, r, &req, "server.handleSavings") {
		return
	}
	result, err := h.serviceFor(r).SavingsGoal(req)
	h.respond(w, r, result, err, "server.handleSavings")
}

func (h *handler) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if !h.decode(w, r, &req, "server.handleEvaluate") {
		return
	}

	state := evaluator.Initial()
	if req.State != nil {
		state = *req.State
		if state.Display == "" {
			state.Display = "0"
		}
	}

	next, err := h.serviceFor(r).Evaluate(state, req.Actions)
	if err != nil {
		h.respond(w, r, nil, err, "server.handleEvaluate")
		return
	}
	value, err := next.Value()
	if err != nil {
		h.respond(w, r, nil, err, "server.handleEvaluate")
		return
	}
	h.writeJSON(w, http.StatusOK, evaluateResponse{State: next, Value: value})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// decode reads a JSON body into dst, answering the request itself when the
// method or body is unacceptable.
func (h *handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return false
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesErr):
			h.respondError(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize), "", op)
		case errors.Is(err, io.EOF):
			h.respondError(w, r, http.StatusBadRequest, "request body is empty", "", op)
		default:
			h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), "", op)
		}
		return false
	}
	return true
}

func (h *handler) respond(w http.ResponseWriter, r *http.Request, result interface{}, err error, op string) {
	if err == nil {
		h.writeJSON(w, http.StatusOK, result)
		return
	}
	if kind := calcerr.Kind(err); kind != "" {
		h.respondError(w, r, http.StatusUnprocessableEntity, err.Error(), kind, op)
		return
	}
	h.respondError(w, r, http.StatusInternalServerError, err.Error(), "", op)
}

func (h *handler) respondError(w http.ResponseWriter, r *http.Request, status int, msg, kind, op string) {
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("op", op),
			zap.String("requestID", requestID(r)),
			zap.Int("status", status),
			zap.String("error", msg),
		)
	} else {
		h.logger.Debug("request rejected",
			zap.String("op", op),
			zap.String("requestID", requestID(r)),
			zap.Int("status", status),
			zap.String("error", msg),
		)
	}
	h.writeJSON(w, status, errorResponse{Error: msg, Kind: kind})
}

// writeJSON encodes payload before writing the header so an unencodable
// payload still yields a 500 with a JSON error body.
func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		h.logger.Error("failed to encode JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
		buf.Reset()
		status = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(errorResponse{Error: "failed to encode response"})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Warn("failed to write JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}

func (h *handler) serviceFor(r *http.Request) *calculator.Service {
	return h.service.With(zap.String("requestID", requestID(r)))
}
