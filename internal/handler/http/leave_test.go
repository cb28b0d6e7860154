package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/staffhub-hr/leave-backend-go/internal/domain/employee"
	"github.com/staffhub-hr/leave-backend-go/internal/domain/leave"
	"github.com/staffhub-hr/leave-backend-go/internal/handler/http/response"
	"github.com/staffhub-hr/leave-backend-go/internal/repository/memory"
	leaveService "github.com/staffhub-hr/leave-backend-go/internal/service/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var handlerTestNow = time.Date(2024, 11, 1, 9, 0, 0, 0, time.UTC)

func handlerClock() time.Time { return handlerTestNow }

func newLeaveHandlerFixture() (LeaveHandler, *memory.Store) {
	store := memory.NewStore()
	catalog := leave.DefaultCatalog()
	eligibility := leaveService.NewEligibilityService(catalog, store.Employees).WithClock(handlerClock)
	allocation := leaveService.NewAllocationService(catalog, store.Balances, store.Employees, eligibility, store.Audit)
	validator := leaveService.NewRequestValidator(catalog, eligibility, store.Balances, store.Requests).WithClock(handlerClock)
	requests := leaveService.NewRequestService(store.Requests, validator, allocation, store).WithClock(handlerClock)
	return NewLeaveHandler(catalog, eligibility, allocation, validator, requests), store
}

func withURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestListTypesReturnsCatalog(t *testing.T) {
	handler, _ := newLeaveHandlerFixture()

	req := httptest.NewRequest(http.MethodGet, "/leave/types", nil)
	rec := httptest.NewRecorder()
	handler.ListTypes(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)

	types, ok := resp.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, types, 5)
}

func TestGetTypeUnknownID(t *testing.T) {
	handler, _ := newLeaveHandlerFixture()

	req := withURLParams(
		httptest.NewRequest(http.MethodGet, "/leave/types/SABBATICAL_LEAVE", nil),
		map[string]string{"id": "SABBATICAL_LEAVE"},
	)
	rec := httptest.NewRecorder()
	handler.GetType(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "Invalid special leave type", resp.Error.Message)
}

func TestCheckEligibilityEndpoint(t *testing.T) {
	handler, store := newLeaveHandlerFixture()
	store.Employees.Put(employee.Employee{
		ID:               "emp-1",
		Gender:           employee.Male,
		MaritalStatus:    employee.Married,
		Country:          "USA",
		HireDate:         time.Date(2022, 1, 10, 0, 0, 0, 0, time.UTC),
		EmploymentStatus: employee.EmploymentStatusActive,
	})

	req := withURLParams(
		httptest.NewRequest(http.MethodGet, "/leave/eligibility/emp-1/MATERNITY_LEAVE", nil),
		map[string]string{"employeeID": "emp-1", "typeID": leave.MaternityLeaveType},
	)
	rec := httptest.NewRecorder()
	handler.CheckEligibility(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	require.True(t, resp.Success)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, false, data["eligible"])
	assert.Equal(t, "Eligibility requirements not met", data["reason"])
}

func TestValidateRequestEndpointIsDryRun(t *testing.T) {
	handler, store := newLeaveHandlerFixture()
	store.Employees.Put(employee.Employee{
		ID:               "emp-1",
		Gender:           employee.Female,
		MaritalStatus:    employee.Married,
		Country:          "USA",
		HireDate:         time.Date(2022, 1, 10, 0, 0, 0, 0, time.UTC),
		EmploymentStatus: employee.EmploymentStatusActive,
	})

	body, _ := json.Marshal(leave.ValidateLeaveRequestRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: leave.BereavementLeaveType,
		StartDate:   "2024-12-01",
		EndDate:     "2024-12-05",
		TotalDays:   5,
	})
	req := httptest.NewRequest(http.MethodPost, "/leave/requests/validate", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ValidateRequest(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	require.True(t, resp.Success)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, false, data["valid"])

	// Dry run: nothing persisted.
	requests, err := store.Requests.ListByEmployee(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.Empty(t, requests)
}

func TestCreateRequestRejectsMalformedBody(t *testing.T) {
	handler, _ := newLeaveHandlerFixture()

	req := httptest.NewRequest(http.MethodPost, "/leave/requests", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	handler.CreateRequest(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
