package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"team-analytics/internal/apperrors"
	"team-analytics/internal/domain/models"
	"team-analytics/internal/http/v1/middleware"
	"team-analytics/internal/lib/logger/sl"
	"team-analytics/internal/service"

	"github.com/go-chi/chi/v5"
)

type (
	GenerateChartsResponse struct {
		Message string                 `json:"message"`
		Charts  []service.ChartOutcome `json:"charts"`
	}

	ListVisualizationsResponse struct {
		Visualizations []models.Visualization `json:"visualizations"`
	}

	ShareResponse struct {
		Message string `json:"message"`
		Shared  int    `json:"shared"`
	}
)

type VisualizationHandler struct {
	vizService *service.VisualizationService
	log        *slog.Logger
}

func NewVisualizationHandler(vizService *service.VisualizationService, log *slog.Logger) *VisualizationHandler {
	return &VisualizationHandler{
		vizService: vizService,
		log:        log,
	}
}

func (h *VisualizationHandler) GenerateCharts(w http.ResponseWriter, r *http.Request) {
	const op = "handler.visualization.GenerateCharts"

	log := h.log.With(
		slog.String("op", op),
	)

	owner, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	team := r.URL.Query().Get("team")
	chartType := r.URL.Query().Get("type")

	outcomes, err := h.vizService.Generate(r.Context(), owner, team, chartType)
	if err != nil {
		log.Error("failed to generate charts", sl.Err(err))

		switch {
		case errors.Is(err, apperrors.ErrNoRecords):
			h.writeError(w, http.StatusNotFound, "no data available for the specified team", err)
		case errors.Is(err, apperrors.ErrUnsupportedChartType):
			h.writeError(w, http.StatusBadRequest, "unsupported chart type", err)
		default:
			h.writeError(w, http.StatusInternalServerError, "failed to generate charts", err)
		}
		return
	}

	response := GenerateChartsResponse{
		Message: "charts generated successfully",
		Charts:  outcomes,
	}

	h.writeJSON(w, http.StatusOK, response)
	log.Info("charts generated", slog.Int("chart_count", len(outcomes)))
}

func (h *VisualizationHandler) ListVisualizations(w http.ResponseWriter, r *http.Request) {
	const op = "handler.visualization.ListVisualizations"

	log := h.log.With(
		slog.String("op", op),
	)

	owner, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	visualizations, err := h.vizService.ListVisualizations(r.Context(), owner)
	if err != nil {
		log.Error("failed to list visualizations", sl.Err(err))
		h.writeError(w, http.StatusInternalServerError, "failed to list visualizations", err)
		return
	}

	response := ListVisualizationsResponse{
		Visualizations: visualizations,
	}

	h.writeJSON(w, http.StatusOK, response)
}

func (h *VisualizationHandler) GetVisualization(w http.ResponseWriter, r *http.Request) {
	const op = "handler.visualization.GetVisualization"

	log := h.log.With(
		slog.String("op", op),
	)

	owner, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid visualization id", sl.Err(err))
		h.writeError(w, http.StatusBadRequest, "invalid visualization id", err)
		return
	}

	v, err := h.vizService.GetVisualization(r.Context(), owner, id)
	if err != nil {
		log.Error("failed to get visualization", sl.Err(err))

		if errors.Is(err, apperrors.ErrVisualizationNotFound) {
			h.writeError(w, http.StatusNotFound, "visualization not found", err)
		} else {
			h.writeError(w, http.StatusInternalServerError, "failed to get visualization", err)
		}
		return
	}

	h.writeJSON(w, http.StatusOK, v)
}

func (h *VisualizationHandler) Share(w http.ResponseWriter, r *http.Request) {
	const op = "handler.visualization.Share"

	log := h.log.With(
		slog.String("op", op),
	)

	owner, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	username := r.URL.Query().Get("username")
	if username == "" {
		log.Error("username is required")
		h.writeError(w, http.StatusBadRequest, "username query parameter is required", nil)
		return
	}

	shared, err := h.vizService.Share(r.Context(), owner, username)
	if err != nil {
		log.Error("failed to share visualizations", sl.Err(err))

		if errors.Is(err, apperrors.ErrUserNotFound) {
			h.writeError(w, http.StatusNotFound, "user not found", err)
		} else {
			h.writeError(w, http.StatusInternalServerError, "failed to share visualizations", err)
		}
		return
	}

	response := ShareResponse{
		Message: "charts have been shared successfully",
		Shared:  shared,
	}

	h.writeJSON(w, http.StatusOK, response)
	log.Info("visualizations shared successfully", slog.Int("shared_count", shared))
}

func (h *VisualizationHandler) ListShared(w http.ResponseWriter, r *http.Request) {
	const op = "handler.visualization.ListShared"

	log := h.log.With(
		slog.String("op", op),
	)

	viewer, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	visualizations, err := h.vizService.ListShared(r.Context(), viewer)
	if err != nil {
		log.Error("failed to list shared visualizations", sl.Err(err))
		h.writeError(w, http.StatusInternalServerError, "failed to list shared visualizations", err)
		return
	}

	response := ListVisualizationsResponse{
		Visualizations: visualizations,
	}

	h.writeJSON(w, http.StatusOK, response)
}

func (h *VisualizationHandler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		fmt.Printf("Error encoding JSON response: %v\n", err)
	}
}

func (h *VisualizationHandler) writeError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errorResp := ErrorResponse{
		Error: message,
	}
	if err != nil {
		errorResp.Details = err.Error()
	}

	if err := json.NewEncoder(w).Encode(errorResp); err != nil {
		fmt.Printf("Error encoding error response: %v\n", err)
	}
}
