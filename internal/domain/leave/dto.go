package leave

import (
	"time"

	"github.com/staffhub-hr/leave-backend-go/internal/pkg/validator"
)

type CreateLeaveRequestRequest struct {
	EmployeeID       string  `json:"employee_id"`
	LeaveTypeID      string  `json:"leave_type_id"`
	StartDate        string  `json:"start_date"`
	EndDate          string  `json:"end_date"`
	TotalDays        int     `json:"total_days"`
	Reason           string  `json:"reason"`
	DocumentationURL *string `json:"documentation_url,omitempty"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}

	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if r.TotalDays <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "total_days",
			Message: "total_days must be a positive integer",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ValidateLeaveRequestRequest is the dry-run variant: same shape as a
// submission, but nothing is persisted.
type ValidateLeaveRequestRequest struct {
	EmployeeID  string `json:"employee_id"`
	LeaveTypeID string `json:"leave_type_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	TotalDays   int    `json:"total_days"`
}

func (r *ValidateLeaveRequestRequest) Validate() error {
	create := CreateLeaveRequestRequest{
		EmployeeID:  r.EmployeeID,
		LeaveTypeID: r.LeaveTypeID,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		TotalDays:   r.TotalDays,
	}
	return create.Validate()
}

type ApproveRequestRequest struct {
	RequestID string `json:"request_id"`
}

func (r *ApproveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RejectRequestRequest struct {
	RequestID string `json:"request_id"`
	Reason    string `json:"rejection_reason"`
}

func (r *RejectRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "rejection_reason",
			Message: "rejection_reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type InitAllocationsRequest struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
}

func (r *InitAllocationsRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if r.Year <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be a positive integer",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// LeaveTypeResponse is the catalog entry shape returned by the API.
type LeaveTypeResponse struct {
	ID                         string   `json:"id"`
	Name                       string   `json:"name"`
	Description                string   `json:"description"`
	RequiredGender             *string  `json:"required_gender,omitempty"`
	RequiredMaritalStatus      *string  `json:"required_marital_status,omitempty"`
	RequiredCountry            *string  `json:"required_country,omitempty"`
	MinimumServiceMonths       *int     `json:"minimum_service_months,omitempty"`
	Days                       int      `json:"days"`
	MustBeConsecutive          bool     `json:"must_be_consecutive"`
	MaxOccurrencesPerYear      *int     `json:"max_occurrences_per_year,omitempty"`
	RequiresDocumentation      bool     `json:"requires_documentation"`
	BlocksConcurrentLeaveTypes []string `json:"blocks_concurrent_leave_types,omitempty"`
	AdvanceNoticeDays          int      `json:"advance_notice_days"`
}

// NewLeaveTypeResponse flattens a catalog definition for JSON rendering.
func NewLeaveTypeResponse(def LeaveTypeDefinition) LeaveTypeResponse {
	resp := LeaveTypeResponse{
		ID:                         def.ID,
		Name:                       def.Name,
		Description:                def.Description,
		RequiredCountry:            def.Eligibility.RequiredCountry,
		MinimumServiceMonths:       def.Eligibility.MinimumServiceMonths,
		Days:                       def.Allocation.Days,
		MustBeConsecutive:          def.Allocation.MustBeConsecutive,
		MaxOccurrencesPerYear:      def.Allocation.MaxOccurrencesPerYear,
		RequiresDocumentation:      def.Restrictions.RequiresDocumentation,
		BlocksConcurrentLeaveTypes: def.Restrictions.BlocksConcurrentLeaveTypes,
		AdvanceNoticeDays:          def.Restrictions.AdvanceNoticeDays,
	}
	if def.Eligibility.RequiredGender != nil {
		g := string(*def.Eligibility.RequiredGender)
		resp.RequiredGender = &g
	}
	if def.Eligibility.RequiredMaritalStatus != nil {
		m := string(*def.Eligibility.RequiredMaritalStatus)
		resp.RequiredMaritalStatus = &m
	}
	return resp
}

// LeaveRequestResponse is the request shape returned by the API.
type LeaveRequestResponse struct {
	ID               string  `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	LeaveTypeID      string  `json:"leave_type_id"`
	StartDate        string  `json:"start_date"`
	EndDate          string  `json:"end_date"`
	TotalDays        int     `json:"total_days"`
	Reason           string  `json:"reason"`
	DocumentationURL *string `json:"documentation_url,omitempty"`
	Status           string  `json:"status"`
	ApprovedBy       *string `json:"approved_by,omitempty"`
	ApprovedAt       *string `json:"approved_at,omitempty"`
	RejectionReason  *string `json:"rejection_reason,omitempty"`
	SubmittedAt      string  `json:"submitted_at"`
}

func NewLeaveRequestResponse(req SpecialLeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:               req.ID,
		EmployeeID:       req.EmployeeID,
		LeaveTypeID:      req.LeaveTypeID,
		StartDate:        req.StartDate.Format("2006-01-02"),
		EndDate:          req.EndDate.Format("2006-01-02"),
		TotalDays:        req.TotalDays,
		Reason:           req.Reason,
		DocumentationURL: req.DocumentationURL,
		Status:           string(req.Status),
		ApprovedBy:       req.ApprovedBy,
		RejectionReason:  req.RejectionReason,
		SubmittedAt:      req.SubmittedAt.Format(time.RFC3339),
	}
	if req.ApprovedAt != nil {
		at := req.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &at
	}
	return resp
}

// NewLeaveRequestResponses maps a slice, keeping order.
func NewLeaveRequestResponses(requests []SpecialLeaveRequest) []LeaveRequestResponse {
	responses := make([]LeaveRequestResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, NewLeaveRequestResponse(req))
	}
	return responses
}

// LeaveBalanceResponse is the balance shape returned by the API.
type LeaveBalanceResponse struct {
	EmployeeID       string `json:"employee_id"`
	LeaveTypeID      string `json:"leave_type_id"`
	LeaveTypeName    string `json:"leave_type_name,omitempty"`
	Year             int    `json:"year"`
	TotalEntitlement int    `json:"total_entitlement"`
	Used             int    `json:"used"`
	Available        int    `json:"available"`
	CarryForward     int    `json:"carry_forward"`
}

// NewLeaveBalanceResponse resolves the type name through the catalog when
// the id is known there.
func NewLeaveBalanceResponse(balance LeaveBalance, catalog *Catalog) LeaveBalanceResponse {
	resp := LeaveBalanceResponse{
		EmployeeID:       balance.EmployeeID,
		LeaveTypeID:      balance.LeaveTypeID,
		Year:             balance.Year,
		TotalEntitlement: balance.TotalEntitlement,
		Used:             balance.Used,
		Available:        balance.Available,
		CarryForward:     balance.CarryForward,
	}
	if catalog != nil {
		if def, ok := catalog.Get(balance.LeaveTypeID); ok {
			resp.LeaveTypeName = def.Name
		}
	}
	return resp
}
