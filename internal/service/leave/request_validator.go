package leave

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/staffhub-hr/leave-backend-go/internal/domain/leave"
)

// RequestValidator checks a concrete leave request against eligibility,
// balance, consecutiveness, per-year caps, advance notice, and cross-type
// overlap. It accumulates every applicable violation instead of stopping at
// the first, and it never mutates balances or requests.
//
// The balance check is a point-in-time precondition, not a reservation: a
// request validated now can still be starved by a concurrent approval.
type RequestValidator struct {
	catalog     *leave.Catalog
	eligibility *EligibilityService
	balances    leave.BalanceRepository
	requests    leave.RequestRepository
	now         func() time.Time
}

func NewRequestValidator(
	catalog *leave.Catalog,
	eligibility *EligibilityService,
	balances leave.BalanceRepository,
	requests leave.RequestRepository,
) *RequestValidator {
	return &RequestValidator{
		catalog:     catalog,
		eligibility: eligibility,
		balances:    balances,
		requests:    requests,
		now:         time.Now,
	}
}

// WithClock overrides the time source used for year, notice, and cap checks.
func (v *RequestValidator) WithClock(now func() time.Time) *RequestValidator {
	v.now = now
	return v
}

// Validate returns every violation found for the proposed request. The error
// return carries store failures only; a failed check is a value.
func (v *RequestValidator) Validate(ctx context.Context, employeeID, leaveTypeID string, startDate, endDate time.Time, totalDays int) (leave.ValidationResult, error) {
	def, ok := v.catalog.Get(leaveTypeID)
	if !ok {
		// Without a valid type there is no balance or restriction to check.
		return leave.ValidationResult{Errors: []string{reasonInvalidLeaveType}}, nil
	}

	var violations []string

	// 1. Eligibility
	eligibility, err := v.eligibility.Evaluate(ctx, employeeID, leaveTypeID)
	if err != nil {
		return leave.ValidationResult{}, err
	}
	if !eligibility.Eligible {
		violations = append(violations, fmt.Sprintf("Not eligible: %s", eligibility.Reason))
		violations = append(violations, eligibility.MissingRequirements...)
	}

	// 2. Balance sufficiency
	available := 0
	balance, err := v.balances.GetByEmployeeTypeYear(ctx, employeeID, leaveTypeID, v.now().Year())
	switch {
	case err == nil:
		available = balance.Available
	case errors.Is(err, leave.ErrBalanceNotFound):
		// No balance: treated as zero available.
	default:
		return leave.ValidationResult{}, fmt.Errorf("failed to get leave balance: %w", err)
	}
	if available < totalDays {
		violations = append(violations, fmt.Sprintf("Insufficient %s balance. Available: %d days", def.Name, available))
	}

	// 3. Consecutiveness
	if def.Allocation.MustBeConsecutive && totalDays > 1 {
		span := calendarSpanDays(startDate, endDate)
		if span != totalDays {
			violations = append(violations, fmt.Sprintf("%s must be taken consecutively", def.Name))
		}
	}

	// 4. Per-year occurrence cap
	if limit := def.Allocation.MaxOccurrencesPerYear; limit != nil {
		count, err := v.requests.CountStartingInYear(ctx, employeeID, leaveTypeID, leave.ActiveStatuses, v.now().Year())
		if err != nil {
			return leave.ValidationResult{}, fmt.Errorf("failed to count leave requests: %w", err)
		}
		if count >= *limit {
			violations = append(violations, fmt.Sprintf("Maximum %d times per year limit reached", *limit))
		}
	}

	// 5. Advance notice
	if notice := def.Restrictions.AdvanceNoticeDays; notice > 0 {
		daysUntilStart := int(math.Ceil(startDate.Sub(v.now()).Hours() / 24))
		if daysUntilStart < notice {
			violations = append(violations, fmt.Sprintf("Minimum %d days advance notice required", notice))
		}
	}

	// 6. Cross-type overlap
	if blocked := def.Restrictions.BlocksConcurrentLeaveTypes; len(blocked) > 0 {
		overlapping, err := v.requests.FindOverlapping(ctx, employeeID, blocked, startDate, endDate, leave.ActiveStatuses)
		if err != nil {
			return leave.ValidationResult{}, fmt.Errorf("failed to find overlapping leave requests: %w", err)
		}
		if len(overlapping) > 0 {
			violations = append(violations, fmt.Sprintf("Cannot overlap with existing %s leave", distinctTypeIDs(overlapping)))
		}
	}

	return leave.ValidationResult{
		Valid:  len(violations) == 0,
		Errors: violations,
	}, nil
}

// calendarSpanDays counts the calendar days covered by [start, end],
// inclusive on both ends.
func calendarSpanDays(start, end time.Time) int {
	return int(math.Floor(end.Sub(start).Hours()/24)) + 1
}

// distinctTypeIDs joins the distinct leave type ids of the given requests in
// first-seen order.
func distinctTypeIDs(requests []leave.SpecialLeaveRequest) string {
	seen := make(map[string]bool, len(requests))
	var ids []string
	for _, r := range requests {
		if seen[r.LeaveTypeID] {
			continue
		}
		seen[r.LeaveTypeID] = true
		ids = append(ids, r.LeaveTypeID)
	}
	return strings.Join(ids, ", ")
}
