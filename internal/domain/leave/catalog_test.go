package leave

import (
	"testing"

	"github.com/staffhub-hr/leave-backend-go/internal/domain/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogContents(t *testing.T) {
	catalog := DefaultCatalog()
	require.Equal(t, 5, catalog.Len())

	maternity, ok := catalog.Get(MaternityLeaveType)
	require.True(t, ok)
	require.NotNil(t, maternity.Eligibility.RequiredGender)
	assert.Equal(t, employee.Female, *maternity.Eligibility.RequiredGender)
	require.NotNil(t, maternity.Eligibility.RequiredMaritalStatus)
	assert.Equal(t, employee.Married, *maternity.Eligibility.RequiredMaritalStatus)
	assert.Nil(t, maternity.Eligibility.RequiredCountry)
	assert.Nil(t, maternity.Eligibility.MinimumServiceMonths)
	assert.Equal(t, 180, maternity.Allocation.Days)
	assert.True(t, maternity.Allocation.MustBeConsecutive)
	require.NotNil(t, maternity.Allocation.MaxOccurrencesPerYear)
	assert.Equal(t, 1, *maternity.Allocation.MaxOccurrencesPerYear)
	assert.True(t, maternity.Restrictions.RequiresDocumentation)
	assert.Equal(t, []string{CasualLeaveType, SickLeaveType}, maternity.Restrictions.BlocksConcurrentLeaveTypes)
	assert.Equal(t, 0, maternity.Restrictions.AdvanceNoticeDays)

	paternity, ok := catalog.Get(PaternityLeaveType)
	require.True(t, ok)
	require.NotNil(t, paternity.Eligibility.RequiredGender)
	assert.Equal(t, employee.Male, *paternity.Eligibility.RequiredGender)
	assert.Equal(t, 15, paternity.Allocation.Days)
	require.NotNil(t, paternity.Allocation.MaxOccurrencesPerYear)
	assert.Equal(t, 2, *paternity.Allocation.MaxOccurrencesPerYear)
	assert.Equal(t, 7, paternity.Restrictions.AdvanceNoticeDays)

	bereavement, ok := catalog.Get(BereavementLeaveType)
	require.True(t, ok)
	assert.Nil(t, bereavement.Eligibility.RequiredGender)
	assert.Nil(t, bereavement.Eligibility.RequiredMaritalStatus)
	require.NotNil(t, bereavement.Eligibility.RequiredCountry)
	assert.Equal(t, "USA", *bereavement.Eligibility.RequiredCountry)
	assert.Equal(t, 5, bereavement.Allocation.Days)
	require.NotNil(t, bereavement.Allocation.MaxOccurrencesPerYear)
	assert.Equal(t, 2, *bereavement.Allocation.MaxOccurrencesPerYear)

	marriage, ok := catalog.Get(MarriageLeaveType)
	require.True(t, ok)
	require.NotNil(t, marriage.Eligibility.RequiredMaritalStatus)
	assert.Equal(t, employee.Single, *marriage.Eligibility.RequiredMaritalStatus)
	require.NotNil(t, marriage.Eligibility.MinimumServiceMonths)
	assert.Equal(t, 6, *marriage.Eligibility.MinimumServiceMonths)
	assert.Equal(t, 5, marriage.Allocation.Days)
	assert.Equal(t, 14, marriage.Restrictions.AdvanceNoticeDays)
	assert.True(t, marriage.Restrictions.RequiresDocumentation)

	adoption, ok := catalog.Get(AdoptionLeaveType)
	require.True(t, ok)
	require.NotNil(t, adoption.Eligibility.RequiredMaritalStatus)
	assert.Equal(t, employee.Married, *adoption.Eligibility.RequiredMaritalStatus)
	require.NotNil(t, adoption.Eligibility.MinimumServiceMonths)
	assert.Equal(t, 12, *adoption.Eligibility.MinimumServiceMonths)
	assert.Equal(t, 10, adoption.Allocation.Days)
	assert.Equal(t, 30, adoption.Restrictions.AdvanceNoticeDays)
}

func TestCatalogGetUnknownType(t *testing.T) {
	catalog := DefaultCatalog()

	_, ok := catalog.Get("SABBATICAL_LEAVE")
	assert.False(t, ok)

	_, ok = catalog.Get(CasualLeaveType)
	assert.False(t, ok, "regular leave types are not part of the special leave catalog")
}

func TestCatalogAllKeepsRegistrationOrder(t *testing.T) {
	catalog := DefaultCatalog()

	var ids []string
	for _, def := range catalog.All() {
		ids = append(ids, def.ID)
	}
	assert.Equal(t, []string{
		MaternityLeaveType,
		PaternityLeaveType,
		BereavementLeaveType,
		MarriageLeaveType,
		AdoptionLeaveType,
	}, ids)
}

func TestNewCatalogSkipsDuplicateIDs(t *testing.T) {
	catalog := NewCatalog(
		LeaveTypeDefinition{ID: "A", Name: "first"},
		LeaveTypeDefinition{ID: "A", Name: "second"},
		LeaveTypeDefinition{ID: "B"},
	)

	require.Equal(t, 2, catalog.Len())
	def, ok := catalog.Get("A")
	require.True(t, ok)
	assert.Equal(t, "first", def.Name)
}
