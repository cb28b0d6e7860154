package leave

import "time"

// LeaveBalance is one employee's allocation state for one special leave type
// in one calendar year. Available must equal TotalEntitlement - Used after
// every write. CarryForward is always 0 for special leave types.
type LeaveBalance struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string
	Year        int

	TotalEntitlement int
	Used             int
	Available        int
	CarryForward     int

	CreatedAt time.Time
	UpdatedAt time.Time
}

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "PENDING"
	RequestStatusApproved  RequestStatus = "APPROVED"
	RequestStatusRejected  RequestStatus = "REJECTED"
	RequestStatusCancelled RequestStatus = "CANCELLED"
)

// ActiveStatuses are the statuses that count against per-year caps and
// cross-type overlap checks.
var ActiveStatuses = []RequestStatus{RequestStatusApproved, RequestStatusPending}

// SpecialLeaveRequest entity
type SpecialLeaveRequest struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string

	StartDate time.Time
	EndDate   time.Time
	TotalDays int

	Reason           string
	DocumentationURL *string

	Status          RequestStatus
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string

	SubmittedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Overlaps reports whether the request's date range intersects [start, end].
func (r SpecialLeaveRequest) Overlaps(start, end time.Time) bool {
	return !r.StartDate.After(end) && !r.EndDate.Before(start)
}
