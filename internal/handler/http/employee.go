package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/staffhub-hr/leave-backend-go/internal/domain/employee"
	"github.com/staffhub-hr/leave-backend-go/internal/handler/http/middleware"
	"github.com/staffhub-hr/leave-backend-go/internal/handler/http/response"
	employeeService "github.com/staffhub-hr/leave-backend-go/internal/service/employee"
)

type EmployeeHandler interface {
	GetProfile(w http.ResponseWriter, r *http.Request)
	GetMyProfile(w http.ResponseWriter, r *http.Request)
	UpdateProfile(w http.ResponseWriter, r *http.Request)
	UpdateMyProfile(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	profiles *employeeService.ProfileService
}

func NewEmployeeHandler(profiles *employeeService.ProfileService) EmployeeHandler {
	return &EmployeeHandlerImpl{profiles: profiles}
}

// GetProfile implements EmployeeHandler.
func (h *EmployeeHandlerImpl) GetProfile(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	emp, err := h.profiles.GetProfile(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employee.NewEmployeeResponse(emp))
}

// GetMyProfile implements EmployeeHandler.
func (h *EmployeeHandlerImpl) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := middleware.EmployeeID(r)
	if !ok {
		response.Forbidden(w, "Employee ID not found in token")
		return
	}

	emp, err := h.profiles.GetProfile(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employee.NewEmployeeResponse(emp))
}

// UpdateProfile implements EmployeeHandler.
func (h *EmployeeHandlerImpl) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}
	h.updateProfile(w, r, employeeID)
}

// UpdateMyProfile implements EmployeeHandler.
func (h *EmployeeHandlerImpl) UpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := middleware.EmployeeID(r)
	if !ok {
		response.Forbidden(w, "Employee ID not found in token")
		return
	}
	h.updateProfile(w, r, employeeID)
}

func (h *EmployeeHandlerImpl) updateProfile(w http.ResponseWriter, r *http.Request, employeeID string) {
	var req employee.UpdateProfileRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateProfile decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.profiles.UpdateProfile(r.Context(), employeeID, req); err != nil {
		response.HandleError(w, err)
		return
	}

	emp, err := h.profiles.GetProfile(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Profile updated successfully", employee.NewEmployeeResponse(emp))
}
