package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/staffhub-hr/leave-backend-go/internal/domain/audit"
	"github.com/staffhub-hr/leave-backend-go/internal/domain/employee"
	"github.com/staffhub-hr/leave-backend-go/internal/domain/leave"
)

// AllocationService creates and refreshes per-year leave balances for every
// special leave type an employee is eligible for.
type AllocationService struct {
	catalog     *leave.Catalog
	balances    leave.BalanceRepository
	employees   employee.Repository
	eligibility *EligibilityService
	audit       audit.Repository
}

func NewAllocationService(
	catalog *leave.Catalog,
	balances leave.BalanceRepository,
	employees employee.Repository,
	eligibility *EligibilityService,
	auditSink audit.Repository,
) *AllocationService {
	return &AllocationService{
		catalog:     catalog,
		balances:    balances,
		employees:   employees,
		eligibility: eligibility,
		audit:       auditSink,
	}
}

// EnsureAllocations walks the catalog and, for every leave type the employee
// is eligible for, creates the year's balance or refreshes its entitlement.
// Ineligible types are skipped; balances granted under earlier eligibility
// are left untouched. A failure on one leave type does not stop the rest;
// all failures are surfaced together after every type has been attempted.
func (s *AllocationService) EnsureAllocations(ctx context.Context, employeeID string, year int) error {
	var errs []error

	for _, def := range s.catalog.All() {
		result, err := s.eligibility.Evaluate(ctx, employeeID, def.ID)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: eligibility check failed: %w", def.ID, err))
			continue
		}
		if !result.Eligible {
			slog.Debug("Employee not eligible for leave type",
				"employee_id", employeeID,
				"leave_type", def.ID,
				"reason", result.Reason,
			)
			continue
		}

		if err := s.ensureAllocation(ctx, employeeID, year, def); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", def.ID, err))
		}
	}

	return errors.Join(errs...)
}

func (s *AllocationService) ensureAllocation(ctx context.Context, employeeID string, year int, def leave.LeaveTypeDefinition) error {
	balance, err := s.balances.GetByEmployeeTypeYear(ctx, employeeID, def.ID, year)
	if err != nil && !errors.Is(err, leave.ErrBalanceNotFound) {
		return fmt.Errorf("failed to get leave balance: %w", err)
	}

	if errors.Is(err, leave.ErrBalanceNotFound) {
		created, err := s.balances.Upsert(ctx, leave.LeaveBalance{
			EmployeeID:       employeeID,
			LeaveTypeID:      def.ID,
			Year:             year,
			TotalEntitlement: def.Allocation.Days,
			Used:             0,
			Available:        def.Allocation.Days,
			CarryForward:     0,
		})
		if err != nil {
			return fmt.Errorf("failed to create leave balance: %w", err)
		}

		slog.Info("Leave balance created",
			"employee_id", employeeID,
			"leave_type", def.ID,
			"year", year,
			"entitlement", def.Allocation.Days,
		)
		s.recordEvent(ctx, audit.KindAllocationCreated, employeeID, map[string]any{
			"leave_type_id": def.ID,
			"year":          year,
			"entitlement":   created.TotalEntitlement,
		})
		if def.ID == leave.MaternityLeaveType {
			// Regular accrual is suspended while a maternity allocation is
			// open; downstream payroll consumes this notice.
			s.recordEvent(ctx, audit.KindAccrualBlockNotice, employeeID, map[string]any{
				"leave_type_id": def.ID,
				"year":          year,
			})
		}
		return nil
	}

	// A re-run or a catalog change corrects the entitlement without
	// resetting usage already recorded.
	if balance.TotalEntitlement == def.Allocation.Days {
		return nil
	}

	balance.TotalEntitlement = def.Allocation.Days
	balance.Available = balance.TotalEntitlement - balance.Used
	if _, err := s.balances.Upsert(ctx, balance); err != nil {
		return fmt.Errorf("failed to update leave balance: %w", err)
	}

	slog.Info("Leave balance entitlement updated",
		"employee_id", employeeID,
		"leave_type", def.ID,
		"year", year,
		"entitlement", balance.TotalEntitlement,
		"available", balance.Available,
	)
	s.recordEvent(ctx, audit.KindAllocationUpdated, employeeID, map[string]any{
		"leave_type_id": def.ID,
		"year":          year,
		"entitlement":   balance.TotalEntitlement,
	})
	return nil
}

// EnsureAllocationsForActive refreshes allocations for every active employee.
// Run from the scheduler so balances track the catalog across year rollovers.
func (s *AllocationService) EnsureAllocationsForActive(ctx context.Context, year int) error {
	employees, err := s.employees.GetActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active employees: %w", err)
	}

	var errs []error
	for _, emp := range employees {
		if err := s.EnsureAllocations(ctx, emp.ID, year); err != nil {
			errs = append(errs, fmt.Errorf("employee %s: %w", emp.ID, err))
		}
	}
	return errors.Join(errs...)
}

// RecordUsage applies consumed days to a balance. It refuses to overdraw so
// two approvals racing the same balance cannot push available negative;
// available = entitlement - used stays intact.
func (s *AllocationService) RecordUsage(ctx context.Context, employeeID, leaveTypeID string, year, days int) error {
	balance, err := s.balances.GetByEmployeeTypeYear(ctx, employeeID, leaveTypeID, year)
	if err != nil {
		return fmt.Errorf("failed to get leave balance: %w", err)
	}

	if days > balance.Available {
		return fmt.Errorf("%w: requested %d days, %d available", leave.ErrInsufficientBalance, days, balance.Available)
	}

	balance.Used += days
	balance.Available = balance.TotalEntitlement - balance.Used

	if _, err := s.balances.Upsert(ctx, balance); err != nil {
		return fmt.Errorf("failed to record leave usage: %w", err)
	}

	slog.Info("Leave usage recorded",
		"employee_id", employeeID,
		"leave_type", leaveTypeID,
		"year", year,
		"days", days,
		"available", balance.Available,
	)
	return nil
}

// GetBalances returns all balances for an employee.
func (s *AllocationService) GetBalances(ctx context.Context, employeeID string) ([]leave.LeaveBalance, error) {
	balances, err := s.balances.GetByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get leave balances: %w", err)
	}
	return balances, nil
}

// recordEvent writes to the audit sink when one is configured. Audit
// failures are logged, never escalated; balances are the source of truth.
func (s *AllocationService) recordEvent(ctx context.Context, kind, subjectID string, payload map[string]any) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, audit.Event{Kind: kind, SubjectID: subjectID, Payload: payload}); err != nil {
		slog.Warn("Failed to record audit event", "kind", kind, "subject_id", subjectID, "error", err)
	}
}
