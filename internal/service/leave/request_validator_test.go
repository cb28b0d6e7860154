package leave

import (
	"context"
	"testing"
	"time"

	"github.com/staffhub-hr/leave-backend-go/internal/domain/employee"
	"github.com/staffhub-hr/leave-backend-go/internal/domain/leave"
	"github.com/staffhub-hr/leave-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidatorFixture() (*RequestValidator, *memory.Store) {
	store := memory.NewStore()
	catalog := leave.DefaultCatalog()
	eligibility := NewEligibilityService(catalog, store.Employees).WithClock(fixedClock)
	validator := NewRequestValidator(catalog, eligibility, store.Balances, store.Requests).WithClock(fixedClock)
	return validator, store
}

func seedBalance(t *testing.T, store *memory.Store, employeeID, leaveTypeID string, days int) {
	t.Helper()
	_, err := store.Balances.Upsert(context.Background(), leave.LeaveBalance{
		EmployeeID:       employeeID,
		LeaveTypeID:      leaveTypeID,
		Year:             testNow.Year(),
		TotalEntitlement: days,
		Used:             0,
		Available:        days,
	})
	require.NoError(t, err)
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestValidateUnknownTypeShortCircuits(t *testing.T) {
	validator, store := newValidatorFixture()
	store.Employees.Put(newTestEmployee("emp-1"))

	result, err := validator.Validate(context.Background(), "emp-1", "SABBATICAL_LEAVE",
		day(2024, 12, 1), day(2024, 12, 5), 5)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, []string{"Invalid special leave type"}, result.Errors)
}

func TestValidateCleanRequestPasses(t *testing.T) {
	validator, store := newValidatorFixture()
	store.Employees.Put(newTestEmployee("emp-1"))
	seedBalance(t, store, "emp-1", leave.BereavementLeaveType, 5)

	result, err := validator.Validate(context.Background(), "emp-1", leave.BereavementLeaveType,
		day(2024, 12, 1), day(2024, 12, 5), 5)
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidateIneligibleEmployee(t *testing.T) {
	validator, store := newValidatorFixture()
	emp := newTestEmployee("emp-1")
	emp.Gender = employee.Male
	store.Employees.Put(emp)
	seedBalance(t, store, "emp-1", leave.MaternityLeaveType, 180)

	result, err := validator.Validate(context.Background(), "emp-1", leave.MaternityLeaveType,
		day(2024, 12, 1), day(2025, 5, 29), 180)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "Not eligible: Eligibility requirements not met")
	assert.Contains(t, result.Errors, "Gender must be FEMALE")
}

func TestValidateInsufficientBalance(t *testing.T) {
	validator, store := newValidatorFixture()
	emp := newTestEmployee("emp-1")
	emp.Gender = employee.Male
	emp.Country = "Germany"
	store.Employees.Put(emp)

	// No balance at all: treated as zero available.
	result, err := validator.Validate(context.Background(), "emp-1", leave.PaternityLeaveType,
		day(2024, 12, 1), day(2024, 12, 5), 5)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "Insufficient Paternity Leave balance. Available: 0 days")

	// Partially consumed balance reports what is left.
	_, err = store.Balances.Upsert(context.Background(), leave.LeaveBalance{
		EmployeeID:       "emp-1",
		LeaveTypeID:      leave.PaternityLeaveType,
		Year:             2024,
		TotalEntitlement: 15,
		Used:             12,
		Available:        3,
	})
	require.NoError(t, err)

	result, err = validator.Validate(context.Background(), "emp-1", leave.PaternityLeaveType,
		day(2024, 12, 1), day(2024, 12, 5), 5)
	require.NoError(t, err)
	assert.Contains(t, result.Errors, "Insufficient Paternity Leave balance. Available: 3 days")
}

func TestValidateConsecutivenessSpanMismatch(t *testing.T) {
	validator, store := newValidatorFixture()
	store.Employees.Put(newTestEmployee("emp-1"))
	seedBalance(t, store, "emp-1", leave.BereavementLeaveType, 5)

	// Five calendar days claimed as three leave days: gaps are not allowed.
	result, err := validator.Validate(context.Background(), "emp-1", leave.BereavementLeaveType,
		day(2024, 12, 1), day(2024, 12, 5), 3)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "Bereavement Leave must be taken consecutively")
}

func TestValidateMaternityMustBeConsecutive(t *testing.T) {
	validator, store := newValidatorFixture()
	store.Employees.Put(newTestEmployee("emp-1"))
	seedBalance(t, store, "emp-1", leave.MaternityLeaveType, 180)

	result, err := validator.Validate(context.Background(), "emp-1", leave.MaternityLeaveType,
		day(2024, 12, 1), day(2024, 12, 5), 3)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "Maternity Leave must be taken consecutively")
}

func TestValidateSingleDayRequestSkipsConsecutiveness(t *testing.T) {
	validator, store := newValidatorFixture()
	store.Employees.Put(newTestEmployee("emp-1"))
	seedBalance(t, store, "emp-1", leave.BereavementLeaveType, 5)

	result, err := validator.Validate(context.Background(), "emp-1", leave.BereavementLeaveType,
		day(2024, 12, 1), day(2024, 12, 1), 1)
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestValidatePerYearOccurrenceCap(t *testing.T) {
	validator, store := newValidatorFixture()
	emp := newTestEmployee("emp-1")
	emp.MaritalStatus = employee.Single
	emp.HireDate = day(2022, 1, 10)
	store.Employees.Put(emp)
	seedBalance(t, store, "emp-1", leave.MarriageLeaveType, 5)

	// An approved marriage leave earlier this year exhausts the cap of one.
	_, err := store.Requests.Create(context.Background(), leave.SpecialLeaveRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: leave.MarriageLeaveType,
		StartDate:   day(2024, 3, 1),
		EndDate:     day(2024, 3, 5),
		TotalDays:   5,
		Status:      leave.RequestStatusApproved,
		SubmittedAt: day(2024, 2, 1),
	})
	require.NoError(t, err)

	result, err := validator.Validate(context.Background(), "emp-1", leave.MarriageLeaveType,
		day(2024, 12, 1), day(2024, 12, 5), 5)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "Maximum 1 times per year limit reached")
}

func TestValidateCapIgnoresRejectedAndCancelled(t *testing.T) {
	validator, store := newValidatorFixture()
	emp := newTestEmployee("emp-1")
	emp.MaritalStatus = employee.Single
	store.Employees.Put(emp)
	seedBalance(t, store, "emp-1", leave.MarriageLeaveType, 5)

	for _, status := range []leave.RequestStatus{leave.RequestStatusRejected, leave.RequestStatusCancelled} {
		_, err := store.Requests.Create(context.Background(), leave.SpecialLeaveRequest{
			EmployeeID:  "emp-1",
			LeaveTypeID: leave.MarriageLeaveType,
			StartDate:   day(2024, 3, 1),
			EndDate:     day(2024, 3, 5),
			TotalDays:   5,
			Status:      status,
			SubmittedAt: day(2024, 2, 1),
		})
		require.NoError(t, err)
	}

	result, err := validator.Validate(context.Background(), "emp-1", leave.MarriageLeaveType,
		day(2024, 12, 1), day(2024, 12, 5), 5)
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestValidateAdvanceNotice(t *testing.T) {
	validator, store := newValidatorFixture()
	emp := newTestEmployee("emp-1")
	emp.Gender = employee.Male
	store.Employees.Put(emp)
	seedBalance(t, store, "emp-1", leave.PaternityLeaveType, 15)

	// Three days out is short of the seven-day notice.
	result, err := validator.Validate(context.Background(), "emp-1", leave.PaternityLeaveType,
		day(2024, 11, 4), day(2024, 11, 8), 5)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "Minimum 7 days advance notice required")

	// Ten days out clears it.
	result, err = validator.Validate(context.Background(), "emp-1", leave.PaternityLeaveType,
		day(2024, 11, 11), day(2024, 11, 15), 5)
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestValidateBlocksOverlapWithConcurrentTypes(t *testing.T) {
	validator, store := newValidatorFixture()
	store.Employees.Put(newTestEmployee("emp-1"))
	seedBalance(t, store, "emp-1", leave.MaternityLeaveType, 180)

	// An approved casual leave sits inside the proposed maternity window.
	_, err := store.Requests.Create(context.Background(), leave.SpecialLeaveRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: leave.CasualLeaveType,
		StartDate:   day(2024, 12, 10),
		EndDate:     day(2024, 12, 12),
		TotalDays:   3,
		Status:      leave.RequestStatusApproved,
		SubmittedAt: day(2024, 11, 1),
	})
	require.NoError(t, err)

	start := day(2024, 12, 1)
	end := start.AddDate(0, 0, 179)
	result, err := validator.Validate(context.Background(), "emp-1", leave.MaternityLeaveType,
		start, end, 180)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "Cannot overlap with existing CASUAL_LEAVE leave")
}

func TestValidateOverlapIgnoresDisjointWindows(t *testing.T) {
	validator, store := newValidatorFixture()
	store.Employees.Put(newTestEmployee("emp-1"))
	seedBalance(t, store, "emp-1", leave.MaternityLeaveType, 180)

	// Casual leave that ends before the maternity window starts.
	_, err := store.Requests.Create(context.Background(), leave.SpecialLeaveRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: leave.CasualLeaveType,
		StartDate:   day(2024, 11, 20),
		EndDate:     day(2024, 11, 22),
		TotalDays:   3,
		Status:      leave.RequestStatusApproved,
		SubmittedAt: day(2024, 11, 1),
	})
	require.NoError(t, err)

	start := day(2024, 12, 1)
	result, err := validator.Validate(context.Background(), "emp-1", leave.MaternityLeaveType,
		start, start.AddDate(0, 0, 179), 180)
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestValidateOverlapIgnoresNonBlockedTypes(t *testing.T) {
	validator, store := newValidatorFixture()
	store.Employees.Put(newTestEmployee("emp-1"))
	seedBalance(t, store, "emp-1", leave.MaternityLeaveType, 180)

	// Bereavement is not in maternity's blocked set.
	_, err := store.Requests.Create(context.Background(), leave.SpecialLeaveRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: leave.BereavementLeaveType,
		StartDate:   day(2024, 12, 10),
		EndDate:     day(2024, 12, 12),
		TotalDays:   3,
		Status:      leave.RequestStatusApproved,
		SubmittedAt: day(2024, 11, 1),
	})
	require.NoError(t, err)

	start := day(2024, 12, 1)
	result, err := validator.Validate(context.Background(), "emp-1", leave.MaternityLeaveType,
		start, start.AddDate(0, 0, 179), 180)
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestValidateAccumulatesViolations(t *testing.T) {
	validator, store := newValidatorFixture()

	// Single man outside the USA, no balance, short notice: everything
	// applicable should be reported at once.
	emp := newTestEmployee("emp-1")
	emp.Gender = employee.Male
	emp.MaritalStatus = employee.Single
	store.Employees.Put(emp)

	result, err := validator.Validate(context.Background(), "emp-1", leave.PaternityLeaveType,
		day(2024, 11, 4), day(2024, 11, 8), 5)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "Not eligible: Eligibility requirements not met")
	assert.Contains(t, result.Errors, "Marital status must be MARRIED")
	assert.Contains(t, result.Errors, "Insufficient Paternity Leave balance. Available: 0 days")
	assert.Contains(t, result.Errors, "Minimum 7 days advance notice required")
	assert.GreaterOrEqual(t, len(result.Errors), 4)
}

func TestValidateResultIsAdvisory(t *testing.T) {
	validator, store := newValidatorFixture()
	store.Employees.Put(newTestEmployee("emp-1"))
	seedBalance(t, store, "emp-1", leave.BereavementLeaveType, 5)

	catalog := leave.DefaultCatalog()
	eligibility := NewEligibilityService(catalog, store.Employees).WithClock(fixedClock)
	allocation := NewAllocationService(catalog, store.Balances, store.Employees, eligibility, store.Audit)

	first, err := validator.Validate(context.Background(), "emp-1", leave.BereavementLeaveType,
		day(2024, 12, 1), day(2024, 12, 5), 5)
	require.NoError(t, err)
	require.True(t, first.Valid)

	// Usage recorded after the check drains the balance; the earlier result
	// does not reserve anything.
	require.NoError(t, allocation.RecordUsage(context.Background(), "emp-1", leave.BereavementLeaveType, 2024, 5))

	second, err := validator.Validate(context.Background(), "emp-1", leave.BereavementLeaveType,
		day(2024, 12, 1), day(2024, 12, 5), 5)
	require.NoError(t, err)
	assert.False(t, second.Valid)
	assert.Contains(t, second.Errors, "Insufficient Bereavement Leave balance. Available: 0 days")

	// The first result stands as issued; only a re-check sees the new state.
	assert.True(t, first.Valid)
	assert.Empty(t, first.Errors)
}

func TestValidateIsReadOnly(t *testing.T) {
	validator, store := newValidatorFixture()
	store.Employees.Put(newTestEmployee("emp-1"))
	seedBalance(t, store, "emp-1", leave.BereavementLeaveType, 5)

	_, err := validator.Validate(context.Background(), "emp-1", leave.BereavementLeaveType,
		day(2024, 12, 1), day(2024, 12, 5), 5)
	require.NoError(t, err)

	balance, err := store.Balances.GetByEmployeeTypeYear(context.Background(), "emp-1", leave.BereavementLeaveType, 2024)
	require.NoError(t, err)
	assert.Equal(t, 5, balance.Available)

	requests, err := store.Requests.ListByEmployee(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.Empty(t, requests)
}
