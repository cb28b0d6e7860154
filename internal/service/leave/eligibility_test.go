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

// testNow is the pinned clock for every service test in this package.
var testNow = time.Date(2024, 11, 1, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func newTestEmployee(id string) employee.Employee {
	return employee.Employee{
		ID:               id,
		FullName:         "Test Employee",
		Email:            id + "@staffhub.test",
		Gender:           employee.Female,
		MaritalStatus:    employee.Married,
		Country:          "USA",
		HireDate:         time.Date(2022, 1, 10, 0, 0, 0, 0, time.UTC),
		EmploymentStatus: employee.EmploymentStatusActive,
	}
}

func newEligibilityFixture() (*EligibilityService, *memory.Store) {
	store := memory.NewStore()
	svc := NewEligibilityService(leave.DefaultCatalog(), store.Employees).WithClock(fixedClock)
	return svc, store
}

func TestEvaluateUnknownLeaveType(t *testing.T) {
	svc, store := newEligibilityFixture()
	store.Employees.Put(newTestEmployee("emp-1"))

	result, err := svc.Evaluate(context.Background(), "emp-1", "SABBATICAL_LEAVE")
	require.NoError(t, err)
	assert.False(t, result.Eligible)
	assert.Equal(t, "Invalid special leave type", result.Reason)
	assert.Empty(t, result.MissingRequirements)
}

func TestEvaluateEmployeeNotFound(t *testing.T) {
	svc, _ := newEligibilityFixture()

	result, err := svc.Evaluate(context.Background(), "missing", leave.MaternityLeaveType)
	require.NoError(t, err, "a missing profile is a result, not an error")
	assert.False(t, result.Eligible)
	assert.Equal(t, "Employee not found", result.Reason)
}

func TestEvaluateMaternityGenderGate(t *testing.T) {
	svc, store := newEligibilityFixture()
	emp := newTestEmployee("emp-1")
	emp.Gender = employee.Male
	store.Employees.Put(emp)

	result, err := svc.Evaluate(context.Background(), "emp-1", leave.MaternityLeaveType)
	require.NoError(t, err)
	assert.False(t, result.Eligible)
	assert.Equal(t, "Eligibility requirements not met", result.Reason)
	assert.Equal(t, []string{"Gender must be FEMALE"}, result.MissingRequirements)
}

func TestEvaluatePaternityGenderGate(t *testing.T) {
	svc, store := newEligibilityFixture()
	store.Employees.Put(newTestEmployee("emp-1"))

	// Married woman against the paternity predicate: gender is the only miss.
	result, err := svc.Evaluate(context.Background(), "emp-1", leave.PaternityLeaveType)
	require.NoError(t, err)
	assert.False(t, result.Eligible)
	assert.Equal(t, []string{"Gender must be MALE"}, result.MissingRequirements)
}

func TestEvaluateMaternityEligible(t *testing.T) {
	svc, store := newEligibilityFixture()
	store.Employees.Put(newTestEmployee("emp-1"))

	result, err := svc.Evaluate(context.Background(), "emp-1", leave.MaternityLeaveType)
	require.NoError(t, err)
	assert.True(t, result.Eligible)
	assert.Empty(t, result.Reason)
	assert.Empty(t, result.MissingRequirements)
}

func TestEvaluateBereavementCountryGate(t *testing.T) {
	svc, store := newEligibilityFixture()
	emp := newTestEmployee("emp-1")
	emp.Country = "Germany"
	store.Employees.Put(emp)

	result, err := svc.Evaluate(context.Background(), "emp-1", leave.BereavementLeaveType)
	require.NoError(t, err)
	assert.False(t, result.Eligible)
	assert.Equal(t, []string{"Only available for USA employees"}, result.MissingRequirements)
}

func TestEvaluateMarriageServiceMonths(t *testing.T) {
	svc, store := newEligibilityFixture()
	emp := newTestEmployee("emp-1")
	emp.MaritalStatus = employee.Single

	// Hired three whole months before the pinned clock.
	emp.HireDate = time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	store.Employees.Put(emp)

	result, err := svc.Evaluate(context.Background(), "emp-1", leave.MarriageLeaveType)
	require.NoError(t, err)
	assert.False(t, result.Eligible)
	assert.Equal(t, []string{"Minimum 6 months of service required"}, result.MissingRequirements)

	// Exactly six whole months qualifies.
	emp.HireDate = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	store.Employees.Put(emp)

	result, err = svc.Evaluate(context.Background(), "emp-1", leave.MarriageLeaveType)
	require.NoError(t, err)
	assert.True(t, result.Eligible)
}

func TestEvaluateProfileReportsMissingInCatalogOrder(t *testing.T) {
	svc, _ := newEligibilityFixture()

	gender := employee.Female
	marital := employee.Married
	country := "USA"
	minMonths := 24
	def := leave.LeaveTypeDefinition{
		ID: "ALL_GATES",
		Eligibility: leave.EligibilityRule{
			RequiredGender:        &gender,
			RequiredMaritalStatus: &marital,
			RequiredCountry:       &country,
			MinimumServiceMonths:  &minMonths,
		},
	}

	emp := employee.Employee{
		Gender:        employee.Male,
		MaritalStatus: employee.Single,
		Country:       "Germany",
		HireDate:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	result := svc.EvaluateProfile(emp, def)
	assert.False(t, result.Eligible)
	assert.Equal(t, []string{
		"Gender must be FEMALE",
		"Marital status must be MARRIED",
		"Only available for USA employees",
		"Minimum 24 months of service required",
	}, result.MissingRequirements)
}
