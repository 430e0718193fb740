package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
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
	UploadResponse struct {
		Message   string `json:"message"`
		Created   int    `json:"created"`
		RowErrors string `json:"row_errors,omitempty"`
	}

	ListRecordsResponse struct {
		Records []models.TeamTimeRecord `json:"records"`
	}

	ErrorResponse struct {
		Error   string `json:"error"`
		Details string `json:"details,omitempty"`
	}
)

type RecordHandler struct {
	recordService *service.RecordService
	log           *slog.Logger
}

func NewRecordHandler(recordService *service.RecordService, log *slog.Logger) *RecordHandler {
	return &RecordHandler{
		recordService: recordService,
		log:           log,
	}
}

func (h *RecordHandler) UploadData(w http.ResponseWriter, r *http.Request) {
	const op = "handler.record.UploadData"

	log := h.log.With(
		slog.String("op", op),
	)

	owner, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("failed to read request body", sl.Err(err))
		h.writeError(w, http.StatusBadRequest, "failed to read request body", err)
		return
	}

	if len(body) == 0 {
		log.Error("request body is empty")
		h.writeError(w, http.StatusBadRequest, "request body is required", nil)
		return
	}

	result, err := h.recordService.Ingest(r.Context(), owner, string(body))
	if err != nil {
		log.Error("failed to ingest upload", sl.Err(err))

		if errors.Is(err, apperrors.ErrBadFormat) || errors.Is(err, apperrors.ErrBadFieldType) {
			h.writeError(w, http.StatusBadRequest, "the CSV data does not have correct format", err)
		} else {
			h.writeError(w, http.StatusInternalServerError, "failed to upload CSV data", err)
		}
		return
	}

	response := UploadResponse{
		Message: "CSV data uploaded successfully",
		Created: result.Created,
	}
	if result.RowErrors != nil {
		response.Message = "CSV data uploaded partially"
		response.RowErrors = result.RowErrors.Error()
	}

	h.writeJSON(w, http.StatusCreated, response)
	log.Info("upload handled successfully", slog.Int("created", result.Created))
}

func (h *RecordHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	const op = "handler.record.ListRecords"

	log := h.log.With(
		slog.String("op", op),
	)

	owner, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	records, err := h.recordService.ListRecords(r.Context(), owner)
	if err != nil {
		log.Error("failed to list records", sl.Err(err))
		h.writeError(w, http.StatusInternalServerError, "failed to list records", err)
		return
	}

	response := ListRecordsResponse{
		Records: records,
	}

	h.writeJSON(w, http.StatusOK, response)
	log.Info("records listed successfully", slog.Int("record_count", len(records)))
}

func (h *RecordHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	const op = "handler.record.GetRecord"

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
		log.Error("invalid record id", sl.Err(err))
		h.writeError(w, http.StatusBadRequest, "invalid record id", err)
		return
	}

	rec, err := h.recordService.GetRecord(r.Context(), owner, id)
	if err != nil {
		log.Error("failed to get record", sl.Err(err))

		if errors.Is(err, apperrors.ErrRecordNotFound) {
			h.writeError(w, http.StatusNotFound, "record not found", err)
		} else {
			h.writeError(w, http.StatusInternalServerError, "failed to get record", err)
		}
		return
	}

	h.writeJSON(w, http.StatusOK, rec)
}

func (h *RecordHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	const op = "handler.record.GetStatistics"

	log := h.log.With(
		slog.String("op", op),
	)

	owner, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	team := r.URL.Query().Get("team")

	teamStats, err := h.recordService.Statistics(r.Context(), owner, team)
	if err != nil {
		log.Error("failed to compute statistics", sl.Err(err))

		if errors.Is(err, apperrors.ErrNoRecords) {
			h.writeError(w, http.StatusNotFound, "no data available for the specified team", err)
		} else {
			h.writeError(w, http.StatusInternalServerError, "failed to compute statistics", err)
		}
		return
	}

	h.writeJSON(w, http.StatusOK, teamStats)
	log.Info("statistics returned successfully", slog.Int("team_count", len(teamStats)))
}

func (h *RecordHandler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		fmt.Printf("Error encoding JSON response: %v\n", err)
	}
}

func (h *RecordHandler) writeError(w http.ResponseWriter, status int, message string, err error) {
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
