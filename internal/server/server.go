// Package server exposes the workbook engine and the client store as a JSON
// HTTP API.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/iwvelando/finance-workbook/internal/household"
	"github.com/iwvelando/finance-workbook/internal/payroll"
	"github.com/iwvelando/finance-workbook/internal/plan"
	"github.com/iwvelando/finance-workbook/internal/projection"
	"github.com/iwvelando/finance-workbook/internal/ratetable"
	"github.com/iwvelando/finance-workbook/internal/report"
	"github.com/iwvelando/finance-workbook/internal/store"
	"github.com/iwvelando/finance-workbook/pkg/constants"
	"github.com/iwvelando/finance-workbook/pkg/datetime"
	"github.com/iwvelando/finance-workbook/pkg/tvm"
	"go.uber.org/zap"
)

// Options carries the dependencies of the HTTP handler.
type Options struct {
	Table         ratetable.Table
	Assumptions   plan.Assumptions
	Store         *store.Store // client routes answer 503 without a store
	MaxUploadSize int64
	Version       string
	Now           datetime.Clock
}

type handler struct {
	logger        *zap.Logger
	table         ratetable.Table
	assumptions   plan.Assumptions
	store         *store.Store
	maxUploadSize int64
	version       string
	now           datetime.Clock
}

// NewHandler constructs the HTTP handler that serves the workbook API.
func NewHandler(logger *zap.Logger, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if opts.MaxUploadSize <= 0 {
		opts.MaxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	if opts.Table.Year == 0 {
		opts.Table = ratetable.Default()
	}
	if opts.Assumptions == (plan.Assumptions{}) {
		opts.Assumptions = plan.DefaultAssumptions()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	h := &handler{
		logger:        logger,
		table:         opts.Table,
		assumptions:   opts.Assumptions,
		store:         opts.Store,
		maxUploadSize: opts.MaxUploadSize,
		version:       trimmedVersion,
		now:           opts.Now,
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(accessLog(logger))
	r.Use(recoverer(logger))
	r.Use(bodyLimit(h.maxUploadSize))

	r.Route("/api", func(r chi.Router) {
		r.Get("/version", h.handleVersion)
		r.Get("/ratetable", h.handleRateTable)

		r.Post("/salary", h.handleSalary)
		r.Post("/salary/required", h.handleRequiredGross)
		r.Post("/workbook", h.handleWorkbook)

		r.Get("/projections", h.handleProjectionKinds)
		r.Post("/projections/{kind}", h.handleProjection)

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", h.handleListClients)
			r.Post("/", h.handleCreateClient)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.handleGetClient)
				r.Put("/", h.handleOverwriteClient)
				r.Delete("/", h.handleDeleteClient)
				r.Get("/workbook", h.handleClientWorkbook)
				r.Get("/plan.pdf", h.handleClientPlan)
			})
		})
	})

	return r
}

// Serve runs the API on cfg.Address until ctx is cancelled, then shuts down
// gracefully.
func Serve(ctx context.Context, logger *zap.Logger, cfg *Config, handler http.Handler) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving workbook API",
			zap.String("op", "server.Serve"),
			zap.String("address", cfg.Address),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeoutDuration())
	defer cancel()
	logger.Info("shutting down workbook API", zap.String("op", "server.Serve"))
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

type rateTableResponse struct {
	Table ratetable.Table `json:"table"`
	Years []int           `json:"years"`
}

func (h *handler) handleRateTable(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, rateTableResponse{Table: h.table, Years: ratetable.Years()})
}

type salaryResponse struct {
	Salary *payroll.Result `json:"salary"`
	// PensionEstimate assumes a full working career.
	PensionEstimate float64 `json:"pensionEstimate"`
}

func (h *handler) handleSalary(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSalary"
	var in payroll.Input
	if !h.decodeBody(w, r, &in, op) {
		return
	}
	in.Enabled = true
	result := payroll.ComputeForInput(h.table, in)
	h.writeJSON(w, http.StatusOK, salaryResponse{
		Salary:          result,
		PensionEstimate: result.PensionEstimate(constants.DefaultYearsWorked),
	})
}

type requiredGrossRequest struct {
	TargetNet  float64 `json:"targetNet"`
	Children   int     `json:"children"`
	Disability bool    `json:"disability"`
	Student    bool    `json:"student"`
}

func (h *handler) handleRequiredGross(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleRequiredGross"
	var req requiredGrossRequest
	if !h.decodeBody(w, r, &req, op) {
		return
	}
	gross, err := payroll.RequiredGross(h.table, req.TargetNet, req.Children, req.Disability, req.Student)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusUnprocessableEntity, err.Error(), op)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]float64{"grossMonthly": gross})
}

func (h *handler) handleWorkbook(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleWorkbook"
	hh, ok := h.readHousehold(w, r, op)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, h.evaluate(hh))
}

func (h *handler) handleProjectionKinds(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string][]string{"kinds": projection.Kinds()})
}

func (h *handler) handleProjection(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleProjection"
	data, ok := h.readBody(w, r, op)
	if !ok {
		return
	}
	result, err := projection.Run(h.logger, chi.URLParam(r, "kind"), data)
	if err != nil {
		h.respondErrorWithOp(w, statusForError(err), err.Error(), op)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *handler) handleListClients(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleListClients"
	if !h.requireStore(w, op) {
		return
	}
	entries, err := h.store.List(r.URL.Query().Get("search"))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string][]store.Entry{"clients": entries})
}

func (h *handler) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCreateClient"
	if !h.requireStore(w, op) {
		return
	}
	data, ok := h.readBody(w, r, op)
	if !ok {
		return
	}
	c, err := h.store.Import(data, r.URL.Query().Get("filename"))
	if err != nil {
		h.respondErrorWithOp(w, statusForError(err), err.Error(), op)
		return
	}
	w.Header().Set("Location", "/api/clients/"+c.ID)
	h.writeJSON(w, http.StatusCreated, c)
}

func (h *handler) handleGetClient(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleGetClient"
	c, ok := h.loadClient(w, r, op)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, c)
}

func (h *handler) handleOverwriteClient(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleOverwriteClient"
	if !h.requireStore(w, op) {
		return
	}
	hh, ok := h.readHousehold(w, r, op)
	if !ok {
		return
	}
	c, err := h.store.Overwrite(chi.URLParam(r, "id"), hh)
	if err != nil {
		h.respondErrorWithOp(w, statusForError(err), err.Error(), op)
		return
	}
	h.writeJSON(w, http.StatusOK, c)
}

func (h *handler) handleDeleteClient(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleDeleteClient"
	if !h.requireStore(w, op) {
		return
	}
	if err := h.store.Delete(chi.URLParam(r, "id")); err != nil {
		h.respondErrorWithOp(w, statusForError(err), err.Error(), op)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) handleClientWorkbook(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleClientWorkbook"
	c, ok := h.loadClient(w, r, op)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, h.evaluate(c.Household))
}

func (h *handler) handleClientPlan(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleClientPlan"
	c, ok := h.loadClient(w, r, op)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := report.Render(&buf, h.evaluate(c.Household)); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "plan-"+c.ID+".pdf"))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("failed to write plan document", zap.String("op", op), zap.Error(err))
	}
}

func (h *handler) evaluate(hh *household.Household) plan.Workbook {
	return plan.EvaluateWith(h.logger, hh, h.table, h.now(), h.assumptions)
}

func (h *handler) requireStore(w http.ResponseWriter, op string) bool {
	if h.store == nil {
		h.respondErrorWithOp(w, http.StatusServiceUnavailable, "client store is not configured", op)
		return false
	}
	return true
}

func (h *handler) loadClient(w http.ResponseWriter, r *http.Request, op string) (store.Client, bool) {
	if !h.requireStore(w, op) {
		return store.Client{}, false
	}
	c, err := h.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.respondErrorWithOp(w, statusForError(err), err.Error(), op)
		return store.Client{}, false
	}
	return c, true
}

func (h *handler) readBody(w http.ResponseWriter, r *http.Request, op string) ([]byte, bool) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds limit of %d bytes", h.maxUploadSize), op)
			return nil, false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to read request body: %v", err), op)
		return nil, false
	}
	return data, true
}

func (h *handler) readHousehold(w http.ResponseWriter, r *http.Request, op string) (*household.Household, bool) {
	data, ok := h.readBody(w, r, op)
	if !ok {
		return nil, false
	}
	hh, err := household.Decode(data)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return nil, false
	}
	return hh, true
}

func (h *handler) decodeBody(w http.ResponseWriter, r *http.Request, v any, op string) bool {
	data, ok := h.readBody(w, r, op)
	if !ok {
		return false
	}
	if len(bytes.TrimSpace(data)) == 0 {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing request body", op)
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return false
	}
	return true
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, store.ErrClientNotFound), errors.Is(err, projection.ErrUnknownKind):
		return http.StatusNotFound
	case errors.Is(err, household.ErrInvalidDocument), errors.Is(err, projection.ErrInvalidScenario):
		return http.StatusBadRequest
	case errors.Is(err, tvm.ErrZeroPeriods):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	level := h.logger.Warn
	if status >= http.StatusInternalServerError {
		level = h.logger.Error
	}
	level("workbook request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
