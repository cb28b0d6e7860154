package leave

import (
	"context"
	"time"
)

// BalanceRepository - store contract for leave_balances
type BalanceRepository interface {
	GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (LeaveBalance, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]LeaveBalance, error)
	Upsert(ctx context.Context, balance LeaveBalance) (LeaveBalance, error)
}

// RequestRepository - store contract for special_leave_requests
type RequestRepository interface {
	Create(ctx context.Context, request SpecialLeaveRequest) (SpecialLeaveRequest, error)
	GetByID(ctx context.Context, id string) (SpecialLeaveRequest, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]SpecialLeaveRequest, error)
	// CountStartingInYear counts requests of the given type whose start date
	// falls in the given calendar year and whose status is in statuses.
	CountStartingInYear(ctx context.Context, employeeID, leaveTypeID string, statuses []RequestStatus, year int) (int, error)
	// FindOverlapping returns requests of any of the given types whose date
	// range intersects [start, end] and whose status is in statuses.
	FindOverlapping(ctx context.Context, employeeID string, leaveTypeIDs []string, start, end time.Time, statuses []RequestStatus) ([]SpecialLeaveRequest, error)
	UpdateStatus(ctx context.Context, update UpdateRequestStatus) error
}

// TxRunner runs fn atomically when the backing store supports transactions.
// Repository calls made with the ctx fn receives join the same transaction.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// UpdateRequestStatus carries a status transition for a leave request.
type UpdateRequestStatus struct {
	ID              string
	Status          RequestStatus
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string
}
