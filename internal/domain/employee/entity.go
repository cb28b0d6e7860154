package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is the profile the eligibility rules key on. It is read-only to
// the leave engine except through the profile-change cascade.
type Employee struct {
	ID            string
	FullName      string
	Email         string
	Gender        Gender
	MaritalStatus MaritalStatus
	Country       string
	HireDate      time.Time

	EmploymentStatus EmploymentStatus
	BaseSalary       *decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Gender string

const (
	Male   Gender = "MALE"
	Female Gender = "FEMALE"
)

type MaritalStatus string

const (
	Single  MaritalStatus = "SINGLE"
	Married MaritalStatus = "MARRIED"
)

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)

// ServiceMonths returns the whole-month difference between now and the hire
// date. Partial months are not counted.
func (e Employee) ServiceMonths(now time.Time) int {
	years := now.Year() - e.HireDate.Year()
	months := int(now.Month()) - int(e.HireDate.Month())
	totalMonths := years*12 + months

	if now.Day() < e.HireDate.Day() {
		totalMonths--
	}

	if totalMonths < 0 {
		totalMonths = 0
	}

	return totalMonths
}
