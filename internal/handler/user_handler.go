package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"notekeep-server/internal/domain"
	"notekeep-server/internal/middleware"
	"notekeep-server/internal/service"
	"notekeep-server/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

type UserHandler struct {
	userService *service.UserService
	validate    *validator.Validate
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validate:    newValidator(),
	}
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	var req domain.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if err := h.userService.UpdateProfile(userID, &req); err != nil {
		if errors.Is(err, service.ErrDuplicateUsername) {
			response.BadRequest(w, "Username already exists. Choose a different one.")
			return
		}
		response.InternalError(w, err.Error())
		return
	}

	response.Message(w, http.StatusOK, "User updated successfully")
}

func (h *UserHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	var req domain.UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if err := h.userService.UpdatePassword(userID, &req); err != nil {
		if errors.Is(err, service.ErrWrongPassword) {
			response.BadRequest(w, "Current password is incorrect")
			return
		}
		response.InternalError(w, err.Error())
		return
	}

	response.Message(w, http.StatusOK, "Password updated successfully")
}

func (h *UserHandler) CheckUsername(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	availability, err := h.userService.CheckUsername(username)
	if err != nil {
		response.InternalError(w, err.Error())
		return
	}

	response.JSON(w, http.StatusOK, availability)
}
