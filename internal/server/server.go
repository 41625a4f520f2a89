// Package server exposes the forecast engine and scenario store over HTTP,
// providing the interactive session surface: run forecasts, save named
// scenarios, compare them, and download spreadsheet exports.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/massimocristi1970/lending-forecast-tool/internal/config"
	"github.com/massimocristi1970/lending-forecast-tool/internal/export"
	"github.com/massimocristi1970/lending-forecast-tool/internal/forecast"
	"github.com/massimocristi1970/lending-forecast-tool/internal/scenario"
	"github.com/massimocristi1970/lending-forecast-tool/pkg/constants"
	"go.uber.org/zap"
)

type handler struct {
	logger      *zap.Logger
	engine      *forecast.Engine
	store       *scenario.Store
	maxBodySize int64
	version     string
}

// NewRouter constructs the HTTP handler serving the forecast API. The store
// holds this session's saved scenarios and is shared across requests.
func NewRouter(logger *zap.Logger, store *scenario.Store, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if store == nil {
		store = scenario.NewStore(logger)
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
		engine:      forecast.NewEngine(logger),
		store:       store,
		maxBodySize: maxBodySize,
		version:     trimmedVersion,
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/forecast", h.handleForecast).Methods(http.MethodPost)
	r.HandleFunc("/api/scenarios", h.handleSaveScenario).Methods(http.MethodPost)
	r.HandleFunc("/api/scenarios", h.handleListScenarios).Methods(http.MethodGet)
	r.HandleFunc("/api/scenarios", h.handleClearScenarios).Methods(http.MethodDelete)
	r.HandleFunc("/api/compare", h.handleCompare).Methods(http.MethodPost)
	r.HandleFunc("/api/export", h.handleExport).Methods(http.MethodPost)
	r.HandleFunc("/api/version", h.handleVersion).Methods(http.MethodGet)

	return r
}

type forecastResponse struct {
	Result   *forecast.Result `json:"result"`
	Warnings []string         `json:"warnings,omitempty"`
	Duration string           `json:"duration"`
}

type saveResponse struct {
	Saved     string   `json:"saved"`
	Scenarios []string `json:"scenarios"`
}

type compareRequest struct {
	Names []string `json:"names"`
}

type compareResponse struct {
	Rows []scenario.ComparisonRow `json:"rows"`
}

func (h *handler) handleForecast(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	op := "server.handleForecast"

	request, ok := h.decodeScenario(w, r, op)
	if !ok {
		return
	}
	if strings.TrimSpace(request.Name) == "" {
		request.Name = constants.DefaultScenarioName
	}

	result, warnings, ok := h.runForecast(w, request, op)
	if !ok {
		return
	}

	elapsed := time.Since(start)
	h.logger.Info("forecast computed",
		zap.String("op", op),
		zap.String("scenario", result.Name),
		zap.Int("months", len(result.Records)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, forecastResponse{
		Result:   result,
		Warnings: warnings,
		Duration: elapsed.String(),
	})
}

func (h *handler) handleSaveScenario(w http.ResponseWriter, r *http.Request) {
	op := "server.handleSaveScenario"

	request, ok := h.decodeScenario(w, r, op)
	if !ok {
		return
	}
	if strings.TrimSpace(request.Name) == "" {
		h.respondError(w, http.StatusBadRequest, (&scenario.EmptyNameError{}).Error(), op)
		return
	}

	result, _, ok := h.runForecast(w, request, op)
	if !ok {
		return
	}

	if err := h.store.Save(request.Name, *result); err != nil {
		var emptyName *scenario.EmptyNameError
		if errors.As(err, &emptyName) {
			h.respondError(w, http.StatusBadRequest, err.Error(), op)
			return
		}
		h.respondError(w, http.StatusInternalServerError, err.Error(), op)
		return
	}

	h.logger.Info("scenario saved",
		zap.String("op", op),
		zap.String("scenario", request.Name),
	)

	h.writeJSON(w, http.StatusOK, saveResponse{
		Saved:     request.Name,
		Scenarios: h.store.Names(),
	})
}

func (h *handler) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string][]string{
		"scenarios": h.store.Names(),
	})
}

func (h *handler) handleClearScenarios(w http.ResponseWriter, r *http.Request) {
	h.store.Clear()
	h.logger.Info("scenario store cleared",
		zap.String("op", "server.handleClearScenarios"),
	)
	h.writeJSON(w, http.StatusOK, map[string]bool{"cleared": true})
}

func (h *handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	op := "server.handleCompare"

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	var request compareRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode comparison request: %v", err), op)
		return
	}

	rows, err := h.store.Compare(request.Names)
	if err != nil {
		var insufficient *scenario.InsufficientSelectionError
		var unknown *scenario.UnknownScenarioError
		switch {
		case errors.As(err, &insufficient):
			h.respondError(w, http.StatusBadRequest, err.Error(), op)
		case errors.As(err, &unknown):
			h.respondError(w, http.StatusNotFound, err.Error(), op)
		default:
			h.respondError(w, http.StatusInternalServerError, err.Error(), op)
		}
		return
	}

	h.writeJSON(w, http.StatusOK, compareResponse{Rows: rows})
}

func (h *handler) handleExport(w http.ResponseWriter, r *http.Request) {
	op := "server.handleExport"

	request, ok := h.decodeScenario(w, r, op)
	if !ok {
		return
	}
	if strings.TrimSpace(request.Name) == "" {
		request.Name = constants.DefaultScenarioName
	}

	result, _, ok := h.runForecast(w, request, op)
	if !ok {
		return
	}

	filename := strings.ReplaceAll(result.Name, " ", "_") + "_forecast.xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := export.Write(w, result); err != nil {
		// Headers are already out; all we can do is log.
		h.logger.Error("failed to stream workbook",
			zap.String("op", op),
			zap.Error(err),
		)
		return
	}

	h.logger.Info("workbook exported",
		zap.String("op", op),
		zap.String("scenario", result.Name),
	)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// decodeScenario reads one scenario parameter set from the request body. The
// wire format uses the config percentages, so conversion to fractions happens
// here at the boundary, not in the engine.
func (h *handler) decodeScenario(w http.ResponseWriter, r *http.Request, op string) (config.Scenario, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	var request config.Scenario
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodySize), op)
			return config.Scenario{}, false
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode scenario: %v", err), op)
		return config.Scenario{}, false
	}

	return request, true
}

func (h *handler) runForecast(w http.ResponseWriter, request config.Scenario, op string) (*forecast.Result, []string, bool) {
	cfg := config.Configuration{Scenarios: []config.Scenario{request}}
	warnings, err := cfg.ValidateConfiguration()
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return nil, nil, false
	}

	result, err := h.engine.BuildForecast(request.Parameters())
	if err != nil {
		var invalidRange *forecast.InvalidRangeError
		var invalidTerm *forecast.InvalidTermError
		if errors.As(err, &invalidRange) || errors.As(err, &invalidTerm) {
			h.respondError(w, http.StatusBadRequest, err.Error(), op)
			return nil, nil, false
		}
		h.respondError(w, http.StatusInternalServerError, err.Error(), op)
		return nil, nil, false
	}

	return result, warnings, true
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
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
