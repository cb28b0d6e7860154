package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/staffhub-hr/leave-backend-go/internal/domain/employee"
	"github.com/staffhub-hr/leave-backend-go/internal/domain/leave"
)

// Eligibility failure reasons surfaced to callers verbatim.
const (
	reasonInvalidLeaveType   = "Invalid special leave type"
	reasonEmployeeNotFound   = "Employee not found"
	reasonRequirementsNotMet = "Eligibility requirements not met"
)

// EligibilityService decides whether an employee qualifies for a special
// leave type and explains what is missing when they do not. Ineligibility
// and a missing profile are results, not errors; only store failures are
// returned on the error channel.
type EligibilityService struct {
	catalog   *leave.Catalog
	employees employee.Repository
	now       func() time.Time
}

func NewEligibilityService(catalog *leave.Catalog, employees employee.Repository) *EligibilityService {
	return &EligibilityService{
		catalog:   catalog,
		employees: employees,
		now:       time.Now,
	}
}

// WithClock overrides the time source used for the service-months check.
func (s *EligibilityService) WithClock(now func() time.Time) *EligibilityService {
	s.now = now
	return s
}

// Evaluate fetches the profile and runs the catalog predicate for one leave
// type.
func (s *EligibilityService) Evaluate(ctx context.Context, employeeID, leaveTypeID string) (leave.EligibilityResult, error) {
	def, ok := s.catalog.Get(leaveTypeID)
	if !ok {
		return leave.EligibilityResult{Reason: reasonInvalidLeaveType}, nil
	}

	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			// Callers treat ineligibility and not-found identically for
			// allocation purposes.
			return leave.EligibilityResult{Reason: reasonEmployeeNotFound}, nil
		}
		return leave.EligibilityResult{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return s.EvaluateProfile(emp, def), nil
}

// EvaluateProfile runs the predicate against a profile already in hand.
// No side effects; deterministic given profile, catalog, and clock. Missing
// requirements come back in catalog-field order: gender, marital status,
// country, service months.
func (s *EligibilityService) EvaluateProfile(emp employee.Employee, def leave.LeaveTypeDefinition) leave.EligibilityResult {
	var missing []string

	if g := def.Eligibility.RequiredGender; g != nil && emp.Gender != *g {
		missing = append(missing, fmt.Sprintf("Gender must be %s", *g))
	}

	if m := def.Eligibility.RequiredMaritalStatus; m != nil && emp.MaritalStatus != *m {
		missing = append(missing, fmt.Sprintf("Marital status must be %s", *m))
	}

	if c := def.Eligibility.RequiredCountry; c != nil && emp.Country != *c {
		missing = append(missing, fmt.Sprintf("Only available for %s employees", *c))
	}

	if min := def.Eligibility.MinimumServiceMonths; min != nil && emp.ServiceMonths(s.now()) < *min {
		missing = append(missing, fmt.Sprintf("Minimum %d months of service required", *min))
	}

	if len(missing) > 0 {
		return leave.EligibilityResult{
			Reason:              reasonRequirementsNotMet,
			MissingRequirements: missing,
		}
	}

	return leave.EligibilityResult{Eligible: true}
}
