package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"team-analytics/internal/apperrors"
	"team-analytics/internal/lib/logger/sl"
	"team-analytics/internal/service"
)

type (
	RegisterRequest struct {
		Username string `json:"username"`
	}

	RegisterResponse struct {
		ID       int    `json:"id"`
		Username string `json:"username"`
		Token    string `json:"token"`
	}
)

type UserHandler struct {
	userService *service.UserService
	log         *slog.Logger
}

func NewUserHandler(userService *service.UserService, log *slog.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		log:         log,
	}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	const op = "handler.user.Register"

	log := h.log.With(
		slog.String("op", op),
	)

	var req RegisterRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("invalid request body", sl.Err(err))
		h.writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if req.Username == "" {
		log.Error("username is required")
		h.writeError(w, http.StatusBadRequest, "username is required", nil)
		return
	}

	user, err := h.userService.Register(r.Context(), req.Username)
	if err != nil {
		log.Error("failed to register user", sl.Err(err))

		if errors.Is(err, apperrors.ErrUserExists) {
			h.writeError(w, http.StatusBadRequest, "user already exists", err)
		} else {
			h.writeError(w, http.StatusInternalServerError, "failed to register user", err)
		}
		return
	}

	response := RegisterResponse{
		ID:       user.ID,
		Username: user.Username,
		Token:    user.Token,
	}

	h.writeJSON(w, http.StatusCreated, response)
	log.Info("user registered successfully")
}

func (h *UserHandler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		fmt.Printf("Error encoding JSON response: %v\n", err)
	}
}

func (h *UserHandler) writeError(w http.ResponseWriter, status int, message string, err error) {
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
