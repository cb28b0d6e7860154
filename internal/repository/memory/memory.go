// Package memory provides in-memory repository implementations used by the
// test suite and local development. They honor the same not-found sentinels
// as the postgres repositories.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/staffhub-hr/leave-backend-go/internal/domain/audit"
	"github.com/staffhub-hr/leave-backend-go/internal/domain/employee"
	"github.com/staffhub-hr/leave-backend-go/internal/domain/leave"
)

// Store holds everything behind one lock; contention is irrelevant at test
// scale and a single lock keeps cross-table operations consistent. The
// exported fields expose one repository contract each over the shared state.
type Store struct {
	Employees *EmployeeStore
	Balances  *BalanceStore
	Requests  *RequestStore
	Audit     *AuditStore

	mu        sync.RWMutex
	employees map[string]employee.Employee
	balances  map[balanceKey]leave.LeaveBalance
	requests  map[string]leave.SpecialLeaveRequest
	events    []audit.Event
}

type balanceKey struct {
	EmployeeID  string
	LeaveTypeID string
	Year        int
}

func NewStore() *Store {
	s := &Store{
		employees: make(map[string]employee.Employee),
		balances:  make(map[balanceKey]leave.LeaveBalance),
		requests:  make(map[string]leave.SpecialLeaveRequest),
	}
	s.Employees = &EmployeeStore{s}
	s.Balances = &BalanceStore{s}
	s.Requests = &RequestStore{s}
	s.Audit = &AuditStore{s}
	return s
}

type EmployeeStore struct{ s *Store }
type BalanceStore struct{ s *Store }
type RequestStore struct{ s *Store }
type AuditStore struct{ s *Store }

// Compile-time checks against the repository contracts.
var (
	_ employee.Repository     = (*EmployeeStore)(nil)
	_ leave.BalanceRepository = (*BalanceStore)(nil)
	_ leave.RequestRepository = (*RequestStore)(nil)
	_ audit.Repository        = (*AuditStore)(nil)
	_ leave.TxRunner          = (*Store)(nil)
)

// RunInTx runs fn directly; the store has no transactions and each write
// already holds the single lock.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Put seeds or replaces a profile.
func (e *EmployeeStore) Put(emp employee.Employee) {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()
	e.s.employees[emp.ID] = emp
}

func (e *EmployeeStore) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e.s.mu.RLock()
	defer e.s.mu.RUnlock()

	emp, ok := e.s.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (e *EmployeeStore) GetActive(_ context.Context) ([]employee.Employee, error) {
	e.s.mu.RLock()
	defer e.s.mu.RUnlock()

	employees := make([]employee.Employee, 0, len(e.s.employees))
	for _, emp := range e.s.employees {
		if emp.EmploymentStatus == employee.EmploymentStatusActive {
			employees = append(employees, emp)
		}
	}
	sort.Slice(employees, func(i, j int) bool { return employees[i].ID < employees[j].ID })
	return employees, nil
}

func (e *EmployeeStore) UpdateAttributes(_ context.Context, id string, changes employee.UpdateProfileRequest) error {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()

	emp, ok := e.s.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}

	if changes.FullName != nil {
		emp.FullName = *changes.FullName
	}
	if changes.Gender != nil {
		emp.Gender = employee.Gender(*changes.Gender)
	}
	if changes.MaritalStatus != nil {
		emp.MaritalStatus = employee.MaritalStatus(*changes.MaritalStatus)
	}
	if changes.Country != nil {
		emp.Country = *changes.Country
	}
	emp.UpdatedAt = time.Now()

	e.s.employees[id] = emp
	return nil
}

func (b *BalanceStore) GetByEmployeeTypeYear(_ context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveBalance, error) {
	b.s.mu.RLock()
	defer b.s.mu.RUnlock()

	balance, ok := b.s.balances[balanceKey{employeeID, leaveTypeID, year}]
	if !ok {
		return leave.LeaveBalance{}, leave.ErrBalanceNotFound
	}
	return balance, nil
}

func (b *BalanceStore) GetByEmployee(_ context.Context, employeeID string) ([]leave.LeaveBalance, error) {
	b.s.mu.RLock()
	defer b.s.mu.RUnlock()

	balances := make([]leave.LeaveBalance, 0)
	for _, balance := range b.s.balances {
		if balance.EmployeeID == employeeID {
			balances = append(balances, balance)
		}
	}
	sort.Slice(balances, func(i, j int) bool {
		if balances[i].Year != balances[j].Year {
			return balances[i].Year > balances[j].Year
		}
		return balances[i].LeaveTypeID < balances[j].LeaveTypeID
	})
	return balances, nil
}

func (b *BalanceStore) Upsert(_ context.Context, balance leave.LeaveBalance) (leave.LeaveBalance, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	key := balanceKey{balance.EmployeeID, balance.LeaveTypeID, balance.Year}
	if existing, ok := b.s.balances[key]; ok {
		balance.ID = existing.ID
		balance.CreatedAt = existing.CreatedAt
	} else {
		if balance.ID == "" {
			balance.ID = uuid.NewString()
		}
		balance.CreatedAt = time.Now()
	}
	balance.UpdatedAt = time.Now()

	b.s.balances[key] = balance
	return balance, nil
}

func (r *RequestStore) Create(_ context.Context, request leave.SpecialLeaveRequest) (leave.SpecialLeaveRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if request.ID == "" {
		request.ID = uuid.NewString()
	}
	request.CreatedAt = time.Now()
	request.UpdatedAt = request.CreatedAt

	r.s.requests[request.ID] = request
	return request, nil
}

func (r *RequestStore) GetByID(_ context.Context, id string) (leave.SpecialLeaveRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	request, ok := r.s.requests[id]
	if !ok {
		return leave.SpecialLeaveRequest{}, leave.ErrRequestNotFound
	}
	return request, nil
}

func (r *RequestStore) ListByEmployee(_ context.Context, employeeID string) ([]leave.SpecialLeaveRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	requests := make([]leave.SpecialLeaveRequest, 0)
	for _, request := range r.s.requests {
		if request.EmployeeID == employeeID {
			requests = append(requests, request)
		}
	}
	sort.Slice(requests, func(i, j int) bool {
		return requests[i].SubmittedAt.After(requests[j].SubmittedAt)
	})
	return requests, nil
}

func (r *RequestStore) CountStartingInYear(_ context.Context, employeeID, leaveTypeID string, statuses []leave.RequestStatus, year int) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	count := 0
	for _, request := range r.s.requests {
		if request.EmployeeID != employeeID || request.LeaveTypeID != leaveTypeID {
			continue
		}
		if request.StartDate.Year() != year {
			continue
		}
		if statusIn(request.Status, statuses) {
			count++
		}
	}
	return count, nil
}

func (r *RequestStore) FindOverlapping(_ context.Context, employeeID string, leaveTypeIDs []string, start, end time.Time, statuses []leave.RequestStatus) ([]leave.SpecialLeaveRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	typeSet := make(map[string]bool, len(leaveTypeIDs))
	for _, id := range leaveTypeIDs {
		typeSet[id] = true
	}

	matches := make([]leave.SpecialLeaveRequest, 0)
	for _, request := range r.s.requests {
		if request.EmployeeID != employeeID || !typeSet[request.LeaveTypeID] {
			continue
		}
		if !statusIn(request.Status, statuses) {
			continue
		}
		if request.Overlaps(start, end) {
			matches = append(matches, request)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].StartDate.Before(matches[j].StartDate)
	})
	return matches, nil
}

func (r *RequestStore) UpdateStatus(_ context.Context, update leave.UpdateRequestStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	request, ok := r.s.requests[update.ID]
	if !ok {
		return leave.ErrRequestNotFound
	}

	request.Status = update.Status
	request.ApprovedBy = update.ApprovedBy
	request.ApprovedAt = update.ApprovedAt
	request.RejectionReason = update.RejectionReason
	request.UpdatedAt = time.Now()

	r.s.requests[update.ID] = request
	return nil
}

func (a *AuditStore) Record(_ context.Context, event audit.Event) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	event.RecordedAt = time.Now()
	a.s.events = append(a.s.events, event)
	return nil
}

// Events returns a copy of the recorded audit events.
func (a *AuditStore) Events() []audit.Event {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	return append([]audit.Event(nil), a.s.events...)
}

func statusIn(status leave.RequestStatus, statuses []leave.RequestStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}
