package employee

import "context"

// Repository - store contract for employees
type Repository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetActive(ctx context.Context) ([]Employee, error)
	UpdateAttributes(ctx context.Context, id string, changes UpdateProfileRequest) error
}
