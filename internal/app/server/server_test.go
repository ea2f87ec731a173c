package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hrms/internal/platform/config"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := config.Config{
		Addr:          ":0",
		DataDir:       t.TempDir(),
		JWTSecret:     "test-secret",
		FrontendDir:   t.TempDir(),
		Environment:   "development",
		AdminEmail:    "admin@hrms.com",
		AdminPassword: "admin123",
		UpdatePolicy:  config.UpdatePolicyStrip,
		MaxBodyBytes:  1 << 20,
	}
	app, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return app
}

type apiClient struct {
	t      *testing.T
	server *httptest.Server
	token  string
}

func (c *apiClient) do(method, path string, body any) (*http.Response, map[string]any) {
	c.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, c.server.URL+path, reader)
	if err != nil {
		c.t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.server.Client().Do(req)
	if err != nil {
		c.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	// Array-shaped responses decode to nil here; callers that care about
	// list contents check the status code only.
	var decoded map[string]any
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		var raw any
		if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
			c.t.Fatalf("%s %s: decode response: %v", method, path, err)
		}
		decoded, _ = raw.(map[string]any)
	}
	return resp, decoded
}

func adminLogin(t *testing.T, client *apiClient) {
	t.Helper()
	resp, body := client.do(http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "admin@hrms.com",
		"password": "admin123",
		"role":     "admin",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin login: status %d, body %v", resp.StatusCode, body)
	}
	if body["role"] != "admin" {
		t.Fatalf("admin login: role %v", body["role"])
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("admin login: missing token")
	}
	client.token = token
}

func TestHealthz(t *testing.T) {
	app := newTestApp(t)
	server := httptest.NewServer(app.Router)
	defer server.Close()

	resp, err := server.Client().Get(server.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)
	server := httptest.NewServer(app.Router)
	defer server.Close()
	client := &apiClient{t: t, server: server}

	resp, body := client.do(http.MethodGet, "/api/employees/", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status %d, body %v", resp.StatusCode, body)
	}
	if body["message"] != "Authentication required" {
		t.Fatalf("unexpected message %v", body["message"])
	}
}

func TestAdminLoginRejectsWrongPassword(t *testing.T) {
	app := newTestApp(t)
	server := httptest.NewServer(app.Router)
	defer server.Close()
	client := &apiClient{t: t, server: server}

	resp, body := client.do(http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "admin@hrms.com",
		"password": "nope",
		"role":     "admin",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status %d, body %v", resp.StatusCode, body)
	}
}

func TestRegistrationApprovalJourney(t *testing.T) {
	app := newTestApp(t)
	server := httptest.NewServer(app.Router)
	defer server.Close()

	visitor := &apiClient{t: t, server: server}

	resp, body := visitor.do(http.MethodPost, "/api/auth/register", map[string]any{
		"name":     "Jane Roe",
		"email":    "jane@example.com",
		"password": "pw123456",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("register: status %d, body %v", resp.StatusCode, body)
	}
	if body["status"] != "Pending" {
		t.Fatalf("register: status field %v", body["status"])
	}

	resp, body = visitor.do(http.MethodPost, "/api/auth/register", map[string]any{
		"name":     "Jane Roe",
		"email":    "jane@example.com",
		"password": "pw123456",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("duplicate register: status %d", resp.StatusCode)
	}
	if body["message"] != "Registration request already pending" {
		t.Fatalf("duplicate register: message %v", body["message"])
	}

	admin := &apiClient{t: t, server: server}
	adminLogin(t, admin)

	resp, _ = admin.do(http.MethodGet, "/api/auth/pending", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("pending: status %d", resp.StatusCode)
	}

	resp, body = admin.do(http.MethodPost, "/api/auth/approve", map[string]any{"id": 1})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("approve: status %d, body %v", resp.StatusCode, body)
	}
	if body["message"] != "Registration approved successfully" {
		t.Fatalf("approve: message %v", body["message"])
	}

	// The approved user can now log in with their own credentials.
	resp, body = visitor.do(http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "jane@example.com",
		"password": "pw123456",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("employee login: status %d, body %v", resp.StatusCode, body)
	}
	user, _ := body["user"].(map[string]any)
	if user == nil || user["name"] != "Jane Roe" {
		t.Fatalf("employee login: user %v", body["user"])
	}
}

func TestEmployeeLifecycleAndRBAC(t *testing.T) {
	app := newTestApp(t)
	server := httptest.NewServer(app.Router)
	defer server.Close()

	admin := &apiClient{t: t, server: server}
	adminLogin(t, admin)

	resp, body := admin.do(http.MethodPost, "/api/employees/", map[string]any{
		"name":     "Ana Lee",
		"email":    "ana@example.com",
		"phone":    "1234567890",
		"salary":   100000,
		"password": "anapass1",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: status %d, body %v", resp.StatusCode, body)
	}
	createdID := int(body["id"].(float64))

	resp, body = admin.do(http.MethodPost, "/api/employees/", map[string]any{
		"name":  "Bad Phone",
		"email": "bp@example.com",
		"phone": "123",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad phone: status %d", resp.StatusCode)
	}
	if body["message"] != "Phone number must be exactly 10 digits" {
		t.Fatalf("bad phone: message %v", body["message"])
	}

	// The new employee logs in and may not create employees.
	emp := &apiClient{t: t, server: server}
	resp, body = emp.do(http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "ana@example.com",
		"password": "anapass1",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("employee login: status %d, body %v", resp.StatusCode, body)
	}
	emp.token = body["token"].(string)

	resp, _ = emp.do(http.MethodPost, "/api/employees/", map[string]any{
		"name":  "Nope",
		"email": "nope@example.com",
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("non-admin create: status %d", resp.StatusCode)
	}

	// Self update goes through; the salary key is silently dropped.
	resp, body = emp.do(http.MethodPut, fmt.Sprintf("/api/employees/%d", createdID), map[string]any{
		"location": "Berlin",
		"salary":   999999,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("self update: status %d, body %v", resp.StatusCode, body)
	}

	resp, body = admin.do(http.MethodGet, fmt.Sprintf("/api/employees/%d", createdID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get: status %d", resp.StatusCode)
	}
	if body["location"] != "Berlin" {
		t.Fatalf("allowed field not applied: %v", body["location"])
	}
	if body["salary"].(float64) != 100000 {
		t.Fatalf("restricted field changed: %v", body["salary"])
	}
	if _, leaked := body["password_hash"]; leaked {
		t.Fatal("employee response leaks the credential")
	}

	// Updating someone else's record is forbidden.
	resp, _ = emp.do(http.MethodPut, fmt.Sprintf("/api/employees/%d", createdID+1), map[string]any{"location": "X"})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("cross update: status %d", resp.StatusCode)
	}

	resp, body = admin.do(http.MethodDelete, fmt.Sprintf("/api/employees/%d", createdID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete: status %d, body %v", resp.StatusCode, body)
	}

	resp, list := admin.do(http.MethodGet, "/api/employees/", nil)
	_ = list
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: status %d", resp.StatusCode)
	}
}

func TestAttendanceJourney(t *testing.T) {
	app := newTestApp(t)
	server := httptest.NewServer(app.Router)
	defer server.Close()

	admin := &apiClient{t: t, server: server}
	adminLogin(t, admin)

	resp, body := admin.do(http.MethodPost, "/api/attendance/checkin", map[string]any{"employee_id": 1})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("checkin: status %d, body %v", resp.StatusCode, body)
	}
	if body["message"] != "Clocked in successfully" {
		t.Fatalf("checkin: message %v", body["message"])
	}

	resp, body = admin.do(http.MethodPost, "/api/attendance/checkin", map[string]any{"employee_id": 1})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("double checkin: status %d", resp.StatusCode)
	}
	if body["message"] != "Already clocked in today" {
		t.Fatalf("double checkin: message %v", body["message"])
	}

	resp, body = admin.do(http.MethodPost, "/api/attendance/checkout", map[string]any{"employee_id": 1})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("checkout: status %d, body %v", resp.StatusCode, body)
	}

	resp, body = admin.do(http.MethodPost, "/api/attendance/checkout", map[string]any{"employee_id": 1})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("double checkout: status %d", resp.StatusCode)
	}

	resp, body = admin.do(http.MethodPost, "/api/attendance/checkout", map[string]any{"employee_id": 2})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("checkout without checkin: status %d", resp.StatusCode)
	}
	if body["message"] != "No clock-in record found for today" {
		t.Fatalf("checkout without checkin: message %v", body["message"])
	}
}

func TestPayrollJourney(t *testing.T) {
	app := newTestApp(t)
	server := httptest.NewServer(app.Router)
	defer server.Close()

	admin := &apiClient{t: t, server: server}
	adminLogin(t, admin)

	resp, body := admin.do(http.MethodPost, "/api/employees/", map[string]any{
		"name":   "Ana Lee",
		"email":  "ana@example.com",
		"salary": 100000,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create employee: status %d, body %v", resp.StatusCode, body)
	}

	resp, body = admin.do(http.MethodPost, "/api/payroll/generate", map[string]any{"month": 8, "year": 2026})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("generate: status %d, body %v", resp.StatusCode, body)
	}
	if body["created"].(float64) != 1 {
		t.Fatalf("generate: created %v", body["created"])
	}

	// Numeric strings are tolerated on update.
	resp, body = admin.do(http.MethodPut, "/api/payroll/1", map[string]any{
		"base_salary": "80000",
		"allowances":  8000,
		"deductions":  "2000",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: status %d, body %v", resp.StatusCode, body)
	}
	record, _ := body["record"].(map[string]any)
	if record == nil || record["net_pay"].(float64) != 86000 {
		t.Fatalf("update: record %v", body["record"])
	}

	resp, body = admin.do(http.MethodPut, "/api/payroll/1", map[string]any{"base_salary": "not a number"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("garbage amounts: status %d", resp.StatusCode)
	}
	if body["message"] != "Invalid salary values provided" {
		t.Fatalf("garbage amounts: message %v", body["message"])
	}

	resp, body = admin.do(http.MethodPut, "/api/payroll/42", map[string]any{"base_salary": 1})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing record: status %d", resp.StatusCode)
	}
	if body["message"] != "Payroll record with ID 42 not found" {
		t.Fatalf("missing record: message %v", body["message"])
	}

	resp, _ = admin.do(http.MethodGet, "/api/payroll/1/payslip", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("payslip: status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("payslip: content type %q", ct)
	}
}

func TestLeaveJourney(t *testing.T) {
	app := newTestApp(t)
	server := httptest.NewServer(app.Router)
	defer server.Close()

	admin := &apiClient{t: t, server: server}
	adminLogin(t, admin)

	resp, body := admin.do(http.MethodPost, "/api/leaves/", map[string]any{
		"employeeId": 1,
		"leaveType":  "Sick",
		"startDate":  "2026-09-01",
		"endDate":    "2026-09-02",
		"days":       2,
		"reason":     "flu",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("apply: status %d, body %v", resp.StatusCode, body)
	}

	resp, body = admin.do(http.MethodPut, "/api/leaves/1", map[string]any{
		"status":      "Approved",
		"approved_by": 0,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("decide: status %d, body %v", resp.StatusCode, body)
	}
	leave, _ := body["leave"].(map[string]any)
	if leave == nil || leave["status"] != "Approved" {
		t.Fatalf("decide: leave %v", body["leave"])
	}

	resp, body = admin.do(http.MethodPut, "/api/leaves/99", map[string]any{"status": "Approved"})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing leave: status %d", resp.StatusCode)
	}
	if body["message"] != "Leave not found" {
		t.Fatalf("missing leave: message %v", body["message"])
	}
}

func TestReportValidation(t *testing.T) {
	app := newTestApp(t)
	server := httptest.NewServer(app.Router)
	defer server.Close()

	admin := &apiClient{t: t, server: server}
	adminLogin(t, admin)

	resp, body := admin.do(http.MethodPost, "/api/reports/", map[string]any{
		"date":            "2026-08-30",
		"morningReport":   "short",
		"afternoonReport": "also short",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("short report: status %d, body %v", resp.StatusCode, body)
	}

	resp, body = admin.do(http.MethodPost, "/api/reports/", map[string]any{
		"date":            "2026-08-30",
		"department":      "HR",
		"morningReport":   "Reviewed onboarding documents for new hires",
		"afternoonReport": "Interviewed two engineering candidates",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("report: status %d, body %v", resp.StatusCode, body)
	}
	report, _ := body["report"].(map[string]any)
	if report == nil || report["employeeName"] != "Admin" {
		t.Fatalf("report author: %v", body["report"])
	}
}

func TestAnnouncementsAdminOnlyCreate(t *testing.T) {
	app := newTestApp(t)
	server := httptest.NewServer(app.Router)
	defer server.Close()

	admin := &apiClient{t: t, server: server}
	adminLogin(t, admin)

	resp, body := admin.do(http.MethodPost, "/api/announcements/", map[string]any{
		"type":    "holiday",
		"content": "Office closed Friday",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: status %d, body %v", resp.StatusCode, body)
	}

	resp, body = admin.do(http.MethodGet, "/api/announcements/", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: status %d, body %v", resp.StatusCode, body)
	}
}
