package postgresql

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/staffhub-hr/leave-backend-go/internal/domain/leave"
	"github.com/staffhub-hr/leave-backend-go/internal/pkg/database"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.BalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

// GetByEmployeeTypeYear implements leave.BalanceRepository.
func (r *leaveBalanceRepositoryImpl) GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_type_id, year,
			   total_entitlement, used, available, carry_forward,
			   created_at, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND leave_type_id = $2 AND year = $3
	`

	var balance leave.LeaveBalance
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID, year).Scan(
		&balance.ID, &balance.EmployeeID, &balance.LeaveTypeID, &balance.Year,
		&balance.TotalEntitlement, &balance.Used, &balance.Available, &balance.CarryForward,
		&balance.CreatedAt, &balance.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveBalance{}, leave.ErrBalanceNotFound
		}
		return leave.LeaveBalance{}, err
	}

	return balance, nil
}

// GetByEmployee implements leave.BalanceRepository.
func (r *leaveBalanceRepositoryImpl) GetByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_type_id, year,
			   total_entitlement, used, available, carry_forward,
			   created_at, updated_at
		FROM leave_balances
		WHERE employee_id = $1
		ORDER BY year DESC, leave_type_id
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	balances := make([]leave.LeaveBalance, 0)
	for rows.Next() {
		var balance leave.LeaveBalance
		if err := rows.Scan(
			&balance.ID, &balance.EmployeeID, &balance.LeaveTypeID, &balance.Year,
			&balance.TotalEntitlement, &balance.Used, &balance.Available, &balance.CarryForward,
			&balance.CreatedAt, &balance.UpdatedAt,
		); err != nil {
			return nil, err
		}
		balances = append(balances, balance)
	}

	return balances, rows.Err()
}

// Upsert implements leave.BalanceRepository. One row per
// (employee, leave type, year); an existing row gets its entitlement,
// used, and available overwritten.
func (r *leaveBalanceRepositoryImpl) Upsert(ctx context.Context, balance leave.LeaveBalance) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	if balance.ID == "" {
		balance.ID = uuid.NewString()
	}

	query := `
		INSERT INTO leave_balances (
			id, employee_id, leave_type_id, year,
			total_entitlement, used, available, carry_forward,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		ON CONFLICT (employee_id, leave_type_id, year) DO UPDATE SET
			total_entitlement = EXCLUDED.total_entitlement,
			used = EXCLUDED.used,
			available = EXCLUDED.available,
			carry_forward = EXCLUDED.carry_forward,
			updated_at = NOW()
		RETURNING id, employee_id, leave_type_id, year,
				  total_entitlement, used, available, carry_forward,
				  created_at, updated_at
	`

	var saved leave.LeaveBalance
	err := q.QueryRow(ctx, query,
		balance.ID, balance.EmployeeID, balance.LeaveTypeID, balance.Year,
		balance.TotalEntitlement, balance.Used, balance.Available, balance.CarryForward,
	).Scan(
		&saved.ID, &saved.EmployeeID, &saved.LeaveTypeID, &saved.Year,
		&saved.TotalEntitlement, &saved.Used, &saved.Available, &saved.CarryForward,
		&saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return leave.LeaveBalance{}, err
	}

	return saved, nil
}
