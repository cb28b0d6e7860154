package employee

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/staffhub-hr/leave-backend-go/internal/domain/audit"
	"github.com/staffhub-hr/leave-backend-go/internal/domain/employee"
	leaveService "github.com/staffhub-hr/leave-backend-go/internal/service/leave"
)

// ProfileService owns the profile-change cascade: every attribute write is
// immediately followed by an allocation refresh so a balance query right
// after an update reflects the new eligibility.
type ProfileService struct {
	employees   employee.Repository
	allocations *leaveService.AllocationService
	audit       audit.Repository
	now         func() time.Time
}

func NewProfileService(employees employee.Repository, allocations *leaveService.AllocationService, auditSink audit.Repository) *ProfileService {
	return &ProfileService{
		employees:   employees,
		allocations: allocations,
		audit:       auditSink,
		now:         time.Now,
	}
}

// WithClock overrides the time source used to pick the allocation year.
func (s *ProfileService) WithClock(now func() time.Time) *ProfileService {
	s.now = now
	return s
}

// GetProfile returns one employee profile.
func (s *ProfileService) GetProfile(ctx context.Context, employeeID string) (employee.Employee, error) {
	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

// UpdateProfile applies the attribute changes and synchronously re-runs
// allocation initialization for the current year. An allocation failure
// after a successful profile write does not roll the write back; profile
// and balances are independently persisted, so the inconsistency is
// reported distinctly for an operator to act on.
func (s *ProfileService) UpdateProfile(ctx context.Context, employeeID string, changes employee.UpdateProfileRequest) error {
	if err := s.employees.UpdateAttributes(ctx, employeeID, changes); err != nil {
		return fmt.Errorf("failed to update employee attributes: %w", err)
	}

	year := s.now().Year()
	if err := s.allocations.EnsureAllocations(ctx, employeeID, year); err != nil {
		slog.Error("Profile updated but allocation refresh incomplete",
			"employee_id", employeeID,
			"year", year,
			"error", err,
		)
		s.recordCascadeIncomplete(ctx, employeeID, year, err)
		return fmt.Errorf("profile updated but allocation refresh failed: %w", err)
	}

	return nil
}

func (s *ProfileService) recordCascadeIncomplete(ctx context.Context, employeeID string, year int, cause error) {
	if s.audit == nil {
		return
	}
	err := s.audit.Record(ctx, audit.Event{
		Kind:      audit.KindCascadeIncomplete,
		SubjectID: employeeID,
		Payload: map[string]any{
			"year":  year,
			"cause": cause.Error(),
		},
	})
	if err != nil {
		slog.Warn("Failed to record cascade audit event", "employee_id", employeeID, "error", err)
	}
}
