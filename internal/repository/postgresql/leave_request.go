package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/staffhub-hr/leave-backend-go/internal/domain/leave"
	"github.com/staffhub-hr/leave-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.RequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `
	id, employee_id, leave_type_id, start_date, end_date, total_days,
	reason, documentation_url, status, approved_by, approved_at,
	rejection_reason, submitted_at, created_at, updated_at
`

func scanLeaveRequest(row pgx.Row) (leave.SpecialLeaveRequest, error) {
	var request leave.SpecialLeaveRequest
	err := row.Scan(
		&request.ID, &request.EmployeeID, &request.LeaveTypeID,
		&request.StartDate, &request.EndDate, &request.TotalDays,
		&request.Reason, &request.DocumentationURL, &request.Status,
		&request.ApprovedBy, &request.ApprovedAt, &request.RejectionReason,
		&request.SubmittedAt, &request.CreatedAt, &request.UpdatedAt,
	)
	return request, err
}

// Create implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.SpecialLeaveRequest) (leave.SpecialLeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	if request.ID == "" {
		request.ID = uuid.NewString()
	}

	query := `
		INSERT INTO special_leave_requests (
			id, employee_id, leave_type_id, start_date, end_date, total_days,
			reason, documentation_url, status, submitted_at, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING ` + leaveRequestColumns

	return scanLeaveRequest(q.QueryRow(ctx, query,
		request.ID, request.EmployeeID, request.LeaveTypeID,
		request.StartDate, request.EndDate, request.TotalDays,
		request.Reason, request.DocumentationURL, request.Status,
		request.SubmittedAt,
	))
}

// GetByID implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.SpecialLeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + ` FROM special_leave_requests WHERE id = $1`

	request, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.SpecialLeaveRequest{}, leave.ErrRequestNotFound
		}
		return leave.SpecialLeaveRequest{}, err
	}

	return request, nil
}

// ListByEmployee implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]leave.SpecialLeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM special_leave_requests
		WHERE employee_id = $1
		ORDER BY submitted_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]leave.SpecialLeaveRequest, 0)
	for rows.Next() {
		request, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}

	return requests, rows.Err()
}

// CountStartingInYear implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) CountStartingInYear(ctx context.Context, employeeID, leaveTypeID string, statuses []leave.RequestStatus, year int) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM special_leave_requests
		WHERE employee_id = $1
		  AND leave_type_id = $2
		  AND status = ANY($3)
		  AND EXTRACT(YEAR FROM start_date) = $4
	`

	var count int
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID, statusStrings(statuses), year).Scan(&count)
	return count, err
}

// FindOverlapping implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) FindOverlapping(ctx context.Context, employeeID string, leaveTypeIDs []string, start, end time.Time, statuses []leave.RequestStatus) ([]leave.SpecialLeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM special_leave_requests
		WHERE employee_id = $1
		  AND leave_type_id = ANY($2)
		  AND status = ANY($3)
		  AND start_date <= $5
		  AND end_date >= $4
		ORDER BY start_date
	`

	rows, err := q.Query(ctx, query, employeeID, leaveTypeIDs, statusStrings(statuses), start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]leave.SpecialLeaveRequest, 0)
	for rows.Next() {
		request, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}

	return requests, rows.Err()
}

// UpdateStatus implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, update leave.UpdateRequestStatus) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE special_leave_requests
		SET status = $2,
			approved_by = $3,
			approved_at = $4,
			rejection_reason = $5,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, update.ID, update.Status, update.ApprovedBy, update.ApprovedAt, update.RejectionReason)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrRequestNotFound
	}

	return nil
}

func statusStrings(statuses []leave.RequestStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
