package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/staffhub-hr/leave-backend-go/internal/domain/leave"
	"github.com/staffhub-hr/leave-backend-go/internal/handler/http/middleware"
	"github.com/staffhub-hr/leave-backend-go/internal/handler/http/response"
	leaveService "github.com/staffhub-hr/leave-backend-go/internal/service/leave"
)

type LeaveHandler interface {
	ListTypes(w http.ResponseWriter, r *http.Request)
	GetType(w http.ResponseWriter, r *http.Request)

	CheckEligibility(w http.ResponseWriter, r *http.Request)
	CheckMyEligibility(w http.ResponseWriter, r *http.Request)

	GetBalances(w http.ResponseWriter, r *http.Request)
	GetMyBalances(w http.ResponseWriter, r *http.Request)
	InitAllocations(w http.ResponseWriter, r *http.Request)

	ValidateRequest(w http.ResponseWriter, r *http.Request)
	CreateRequest(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)
	CancelRequest(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	catalog     *leave.Catalog
	eligibility *leaveService.EligibilityService
	allocation  *leaveService.AllocationService
	validator   *leaveService.RequestValidator
	requests    *leaveService.RequestService
}

func NewLeaveHandler(
	catalog *leave.Catalog,
	eligibility *leaveService.EligibilityService,
	allocation *leaveService.AllocationService,
	validator *leaveService.RequestValidator,
	requests *leaveService.RequestService,
) LeaveHandler {
	return &LeaveHandlerImpl{
		catalog:     catalog,
		eligibility: eligibility,
		allocation:  allocation,
		validator:   validator,
		requests:    requests,
	}
}

// ListTypes implements LeaveHandler.
func (l *LeaveHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	defs := l.catalog.All()
	types := make([]leave.LeaveTypeResponse, 0, len(defs))
	for _, def := range defs {
		types = append(types, leave.NewLeaveTypeResponse(def))
	}
	response.Success(w, types)
}

// GetType implements LeaveHandler.
func (l *LeaveHandlerImpl) GetType(w http.ResponseWriter, r *http.Request) {
	typeID := chi.URLParam(r, "id")
	def, ok := l.catalog.Get(typeID)
	if !ok {
		response.NotFound(w, "Invalid special leave type")
		return
	}
	response.Success(w, leave.NewLeaveTypeResponse(def))
}

// CheckEligibility implements LeaveHandler.
func (l *LeaveHandlerImpl) CheckEligibility(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	typeID := chi.URLParam(r, "typeID")
	if employeeID == "" || typeID == "" {
		response.BadRequest(w, "Employee ID and leave type ID are required", nil)
		return
	}

	result, err := l.eligibility.Evaluate(r.Context(), employeeID, typeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CheckMyEligibility implements LeaveHandler.
func (l *LeaveHandlerImpl) CheckMyEligibility(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := middleware.EmployeeID(r)
	if !ok {
		response.Forbidden(w, "Employee ID not found in token")
		return
	}

	typeID := chi.URLParam(r, "typeID")
	result, err := l.eligibility.Evaluate(r.Context(), employeeID, typeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetBalances implements LeaveHandler.
func (l *LeaveHandlerImpl) GetBalances(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}
	l.writeBalances(w, r, employeeID)
}

// GetMyBalances implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyBalances(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := middleware.EmployeeID(r)
	if !ok {
		response.Forbidden(w, "Employee ID not found in token")
		return
	}
	l.writeBalances(w, r, employeeID)
}

func (l *LeaveHandlerImpl) writeBalances(w http.ResponseWriter, r *http.Request, employeeID string) {
	balances, err := l.allocation.GetBalances(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]leave.LeaveBalanceResponse, 0, len(balances))
	for _, balance := range balances {
		out = append(out, leave.NewLeaveBalanceResponse(balance, l.catalog))
	}
	response.Success(w, out)
}

// InitAllocations implements LeaveHandler.
func (l *LeaveHandlerImpl) InitAllocations(w http.ResponseWriter, r *http.Request) {
	var req leave.InitAllocationsRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("InitAllocations decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := l.allocation.EnsureAllocations(r.Context(), req.EmployeeID, req.Year); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave allocations initialized successfully", nil)
}

// ValidateRequest implements LeaveHandler. Dry run: the request is checked
// but never persisted.
func (l *LeaveHandlerImpl) ValidateRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.ValidateLeaveRequestRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ValidateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	result, err := l.validator.Validate(r.Context(), req.EmployeeID, req.LeaveTypeID, start, end, req.TotalDays)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CreateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveRequestRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Set employee_id from JWT (override any value from request for security)
	if employeeID, ok := middleware.EmployeeID(r); ok {
		req.EmployeeID = employeeID
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, result, err := l.requests.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if !result.Valid {
		response.BadRequest(w, "Leave request validation failed", resultDetails(result))
		return
	}

	response.Created(w, "Leave request created successfully", leave.NewLeaveRequestResponse(created))
}

// GetRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	request, err := l.requests.Get(r.Context(), requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.NewLeaveRequestResponse(request))
}

// GetMyRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := middleware.EmployeeID(r)
	if !ok {
		response.Forbidden(w, "Employee ID not found in token")
		return
	}

	requests, err := l.requests.ListByEmployee(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.NewLeaveRequestResponses(requests))
}

// ListRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	requests, err := l.requests.ListByEmployee(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.NewLeaveRequestResponses(requests))
}

// ApproveRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.ApproveRequestRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ApproveRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	approverID, _ := middleware.EmployeeID(r)
	approved, err := l.requests.Approve(r.Context(), req.RequestID, approverID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved successfully", leave.NewLeaveRequestResponse(approved))
}

// RejectRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.RejectRequestRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RejectRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	approverID, _ := middleware.EmployeeID(r)
	rejected, err := l.requests.Reject(r.Context(), req.RequestID, req.Reason, approverID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request rejected successfully", leave.NewLeaveRequestResponse(rejected))
}

// CancelRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CancelRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	cancelled, err := l.requests.Cancel(r.Context(), requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request cancelled successfully", leave.NewLeaveRequestResponse(cancelled))
}

// resultDetails flattens validation failures into the response detail map.
func resultDetails(result leave.ValidationResult) map[string]string {
	details := make(map[string]string, len(result.Errors))
	for i, msg := range result.Errors {
		details["error_"+strconv.Itoa(i)] = msg
	}
	return details
}
