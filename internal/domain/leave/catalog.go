package leave

import "github.com/staffhub-hr/leave-backend-go/internal/domain/employee"

// LeaveTypeDefinition describes one special leave type: who qualifies for it,
// how many days it grants, and how requests against it are restricted.
// Definitions are configuration, loaded once and never mutated at runtime.
type LeaveTypeDefinition struct {
	ID          string
	Name        string
	Description string

	Eligibility  EligibilityRule
	Allocation   AllocationRule
	Restrictions RestrictionRule
}

// EligibilityRule holds the predicate fields for a leave type. A nil field
// imposes no constraint; a set field is a mandatory match.
type EligibilityRule struct {
	RequiredGender        *employee.Gender
	RequiredMaritalStatus *employee.MaritalStatus
	RequiredCountry       *string
	MinimumServiceMonths  *int
}

type AllocationRule struct {
	Days                  int
	MustBeConsecutive     bool
	MaxOccurrencesPerYear *int
}

type RestrictionRule struct {
	RequiresDocumentation      bool
	BlocksConcurrentLeaveTypes []string
	AdvanceNoticeDays          int
}

// Catalog is an immutable, indexed set of leave type definitions. It is
// built once at startup and safe for concurrent reads without locking.
type Catalog struct {
	defs  map[string]LeaveTypeDefinition
	order []string
}

func NewCatalog(defs ...LeaveTypeDefinition) *Catalog {
	c := &Catalog{defs: make(map[string]LeaveTypeDefinition, len(defs))}
	for _, def := range defs {
		if _, exists := c.defs[def.ID]; exists {
			continue
		}
		c.defs[def.ID] = def
		c.order = append(c.order, def.ID)
	}
	return c
}

// Get returns the definition for id, or false if id is not a special leave type.
func (c *Catalog) Get(id string) (LeaveTypeDefinition, bool) {
	def, ok := c.defs[id]
	return def, ok
}

// All returns the definitions in registration order.
func (c *Catalog) All() []LeaveTypeDefinition {
	defs := make([]LeaveTypeDefinition, 0, len(c.order))
	for _, id := range c.order {
		defs = append(defs, c.defs[id])
	}
	return defs
}

func (c *Catalog) Len() int { return len(c.order) }

// Special leave type IDs. CasualLeaveType and SickLeaveType identify regular
// leave types managed outside this catalog; they appear only as concurrency
// blocks on special leave.
const (
	MaternityLeaveType   = "MATERNITY_LEAVE"
	PaternityLeaveType   = "PATERNITY_LEAVE"
	BereavementLeaveType = "BEREAVEMENT_LEAVE"
	MarriageLeaveType    = "MARRIAGE_LEAVE"
	AdoptionLeaveType    = "ADOPTION_LEAVE"

	CasualLeaveType = "CASUAL_LEAVE"
	SickLeaveType   = "SICK_LEAVE"
)

// DefaultCatalog returns the fixed special leave type table.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		LeaveTypeDefinition{
			ID:          MaternityLeaveType,
			Name:        "Maternity Leave",
			Description: "Paid leave for childbirth and postnatal care",
			Eligibility: EligibilityRule{
				RequiredGender:        genderPtr(employee.Female),
				RequiredMaritalStatus: maritalPtr(employee.Married),
			},
			Allocation: AllocationRule{
				Days:                  180,
				MustBeConsecutive:     true,
				MaxOccurrencesPerYear: intPtr(1),
			},
			Restrictions: RestrictionRule{
				RequiresDocumentation:      true,
				BlocksConcurrentLeaveTypes: []string{CasualLeaveType, SickLeaveType},
			},
		},
		LeaveTypeDefinition{
			ID:          PaternityLeaveType,
			Name:        "Paternity Leave",
			Description: "Paid leave for fathers around childbirth",
			Eligibility: EligibilityRule{
				RequiredGender:        genderPtr(employee.Male),
				RequiredMaritalStatus: maritalPtr(employee.Married),
			},
			Allocation: AllocationRule{
				Days:                  15,
				MustBeConsecutive:     true,
				MaxOccurrencesPerYear: intPtr(2),
			},
			Restrictions: RestrictionRule{
				AdvanceNoticeDays: 7,
			},
		},
		LeaveTypeDefinition{
			ID:          BereavementLeaveType,
			Name:        "Bereavement Leave",
			Description: "Paid leave following the death of an immediate family member",
			Eligibility: EligibilityRule{
				RequiredCountry: strPtr("USA"),
			},
			Allocation: AllocationRule{
				Days:                  5,
				MustBeConsecutive:     true,
				MaxOccurrencesPerYear: intPtr(2),
			},
		},
		LeaveTypeDefinition{
			ID:          MarriageLeaveType,
			Name:        "Marriage Leave",
			Description: "Paid leave for an employee's own wedding",
			Eligibility: EligibilityRule{
				RequiredMaritalStatus: maritalPtr(employee.Single),
				MinimumServiceMonths:  intPtr(6),
			},
			Allocation: AllocationRule{
				Days:                  5,
				MustBeConsecutive:     true,
				MaxOccurrencesPerYear: intPtr(1),
			},
			Restrictions: RestrictionRule{
				RequiresDocumentation: true,
				AdvanceNoticeDays:     14,
			},
		},
		LeaveTypeDefinition{
			ID:          AdoptionLeaveType,
			Name:        "Adoption Leave",
			Description: "Paid leave for newly adoptive parents",
			Eligibility: EligibilityRule{
				RequiredMaritalStatus: maritalPtr(employee.Married),
				MinimumServiceMonths:  intPtr(12),
			},
			Allocation: AllocationRule{
				Days:                  10,
				MustBeConsecutive:     true,
				MaxOccurrencesPerYear: intPtr(1),
			},
			Restrictions: RestrictionRule{
				RequiresDocumentation: true,
				AdvanceNoticeDays:     30,
			},
		},
	)
}

func genderPtr(g employee.Gender) *employee.Gender { return &g }

func maritalPtr(m employee.MaritalStatus) *employee.MaritalStatus { return &m }

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
