package employee

import "github.com/staffhub-hr/leave-backend-go/internal/pkg/validator"

// UpdateProfileRequest carries a partial attribute update. Nil fields are
// left untouched. Profile updates go through the cascade path so balances
// are re-initialized against the new attributes.
type UpdateProfileRequest struct {
	FullName      *string `json:"full_name,omitempty"`
	Gender        *string `json:"gender,omitempty"`
	MaritalStatus *string `json:"marital_status,omitempty"`
	Country       *string `json:"country,omitempty"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FullName == nil && r.Gender == nil && r.MaritalStatus == nil && r.Country == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "at least one attribute must be provided",
		})
	}

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name must not be empty",
		})
	}

	if r.Gender != nil && !validator.IsInSlice(*r.Gender, []string{string(Male), string(Female)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "gender",
			Message: "gender must be MALE or FEMALE",
		})
	}

	if r.MaritalStatus != nil && !validator.IsInSlice(*r.MaritalStatus, []string{string(Single), string(Married)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "marital_status",
			Message: "marital_status must be SINGLE or MARRIED",
		})
	}

	if r.Country != nil && validator.IsEmpty(*r.Country) {
		errs = append(errs, validator.ValidationError{
			Field:   "country",
			Message: "country must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// EmployeeResponse is the profile shape returned by the API.
type EmployeeResponse struct {
	ID            string `json:"id"`
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	Gender        string `json:"gender"`
	MaritalStatus string `json:"marital_status"`
	Country       string `json:"country"`
	HireDate      string `json:"hire_date"`
	Status        string `json:"employment_status"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:            e.ID,
		FullName:      e.FullName,
		Email:         e.Email,
		Gender:        string(e.Gender),
		MaritalStatus: string(e.MaritalStatus),
		Country:       e.Country,
		HireDate:      e.HireDate.Format("2006-01-02"),
		Status:        string(e.EmploymentStatus),
	}
}
