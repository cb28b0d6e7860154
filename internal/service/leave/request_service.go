package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/staffhub-hr/leave-backend-go/internal/domain/leave"
)

// RequestService owns the special-leave request lifecycle: submission runs
// the validator as a precondition, approval records usage against the
// balance.
type RequestService struct {
	requests   leave.RequestRepository
	validator  *RequestValidator
	allocation *AllocationService
	tx         leave.TxRunner
	now        func() time.Time
}

func NewRequestService(requests leave.RequestRepository, validator *RequestValidator, allocation *AllocationService, tx leave.TxRunner) *RequestService {
	return &RequestService{
		requests:   requests,
		validator:  validator,
		allocation: allocation,
		tx:         tx,
		now:        time.Now,
	}
}

// WithClock overrides the time source used for submission timestamps.
func (s *RequestService) WithClock(now func() time.Time) *RequestService {
	s.now = now
	return s
}

// Submit validates the request and persists it as PENDING. A failed
// validation comes back as the result, not an error; nothing is persisted
// in that case.
func (s *RequestService) Submit(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.SpecialLeaveRequest, leave.ValidationResult, error) {
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return leave.SpecialLeaveRequest{}, leave.ValidationResult{}, fmt.Errorf("failed to parse start date: %w", err)
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return leave.SpecialLeaveRequest{}, leave.ValidationResult{}, fmt.Errorf("failed to parse end date: %w", err)
	}

	result, err := s.validator.Validate(ctx, req.EmployeeID, req.LeaveTypeID, startDate, endDate, req.TotalDays)
	if err != nil {
		return leave.SpecialLeaveRequest{}, leave.ValidationResult{}, fmt.Errorf("validation failed: %w", err)
	}
	if !result.Valid {
		return leave.SpecialLeaveRequest{}, result, nil
	}

	created, err := s.requests.Create(ctx, leave.SpecialLeaveRequest{
		EmployeeID:       req.EmployeeID,
		LeaveTypeID:      req.LeaveTypeID,
		StartDate:        startDate,
		EndDate:          endDate,
		TotalDays:        req.TotalDays,
		Reason:           req.Reason,
		DocumentationURL: req.DocumentationURL,
		Status:           leave.RequestStatusPending,
		SubmittedAt:      s.now(),
	})
	if err != nil {
		return leave.SpecialLeaveRequest{}, leave.ValidationResult{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return created, result, nil
}

// Approve transitions a PENDING request to APPROVED and records the consumed
// days against the balance of the year the leave starts in. Both writes run
// in one transaction; a failed usage write rolls the approval back.
func (s *RequestService) Approve(ctx context.Context, requestID, approverID string) (leave.SpecialLeaveRequest, error) {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return leave.SpecialLeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	if request.Status != leave.RequestStatusPending {
		return leave.SpecialLeaveRequest{}, leave.ErrRequestAlreadyProcessed
	}

	approvedAt := s.now()
	request.Status = leave.RequestStatusApproved
	request.ApprovedBy = &approverID
	request.ApprovedAt = &approvedAt

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		err := s.requests.UpdateStatus(ctx, leave.UpdateRequestStatus{
			ID:         request.ID,
			Status:     leave.RequestStatusApproved,
			ApprovedBy: &approverID,
			ApprovedAt: &approvedAt,
		})
		if err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}
		return s.allocation.RecordUsage(ctx, request.EmployeeID, request.LeaveTypeID, request.StartDate.Year(), request.TotalDays)
	})
	if err != nil {
		return leave.SpecialLeaveRequest{}, err
	}

	return request, nil
}

// Reject transitions a PENDING request to REJECTED with a reason.
func (s *RequestService) Reject(ctx context.Context, requestID, reason, approverID string) (leave.SpecialLeaveRequest, error) {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return leave.SpecialLeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	if request.Status != leave.RequestStatusPending {
		return leave.SpecialLeaveRequest{}, leave.ErrRequestAlreadyProcessed
	}

	rejectedAt := s.now()
	request.Status = leave.RequestStatusRejected
	request.RejectionReason = &reason
	request.ApprovedBy = &approverID
	request.ApprovedAt = &rejectedAt

	err = s.requests.UpdateStatus(ctx, leave.UpdateRequestStatus{
		ID:              request.ID,
		Status:          leave.RequestStatusRejected,
		ApprovedBy:      &approverID,
		ApprovedAt:      &rejectedAt,
		RejectionReason: &reason,
	})
	if err != nil {
		return leave.SpecialLeaveRequest{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	return request, nil
}

// Cancel withdraws a PENDING request.
func (s *RequestService) Cancel(ctx context.Context, requestID string) (leave.SpecialLeaveRequest, error) {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return leave.SpecialLeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	if request.Status != leave.RequestStatusPending {
		return leave.SpecialLeaveRequest{}, leave.ErrRequestAlreadyProcessed
	}

	request.Status = leave.RequestStatusCancelled
	err = s.requests.UpdateStatus(ctx, leave.UpdateRequestStatus{
		ID:     request.ID,
		Status: leave.RequestStatusCancelled,
	})
	if err != nil {
		return leave.SpecialLeaveRequest{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	return request, nil
}

// Get returns one request by id.
func (s *RequestService) Get(ctx context.Context, requestID string) (leave.SpecialLeaveRequest, error) {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return leave.SpecialLeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return request, nil
}

// ListByEmployee returns all requests for an employee.
func (s *RequestService) ListByEmployee(ctx context.Context, employeeID string) ([]leave.SpecialLeaveRequest, error) {
	requests, err := s.requests.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return requests, nil
}
