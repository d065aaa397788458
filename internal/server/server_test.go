package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/iwvelando/finance-workbook/internal/household"
	"github.com/iwvelando/finance-workbook/internal/plan"
	"github.com/iwvelando/finance-workbook/internal/ratetable"
	"github.com/iwvelando/finance-workbook/internal/store"
	"github.com/iwvelando/finance-workbook/pkg/datetime"
	"github.com/iwvelando/finance-workbook/pkg/mathutil"
	"github.com/iwvelando/finance-workbook/pkg/testutil"
	"go.uber.org/zap"
)

var testNow = datetime.MustParseTime(time.RFC3339, "2026-05-04T10:00:00Z")

func newTestHandler(t *testing.T, withStore bool) http.Handler {
	t.Helper()
	opts := Options{
		Table:         ratetable.CZ2025(),
		MaxUploadSize: 64 * 1024,
		Version:       "1.2.3",
		Now:           datetime.Fixed(testNow),
	}
	if withStore {
		s, err := store.New(zap.NewNop(), t.TempDir())
		if err != nil {
			t.Fatalf("store.New() error = %v", err)
		}
		opts.Store = s
	}
	return NewHandler(zap.NewNop(), opts)
}

func do(t *testing.T, h http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to decode response %q: %v", rr.Body.String(), err)
	}
}

func encodeHousehold(t *testing.T, h *household.Household) []byte {
	t.Helper()
	data, err := household.Encode(h)
	if err != nil {
		t.Fatalf("household.Encode() error = %v", err)
	}
	return data
}

func TestVersion(t *testing.T) {
	rr := do(t, newTestHandler(t, false), http.MethodGet, "/api/version", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	var resp map[string]string
	decodeResponse(t, rr, &resp)
	if resp["version"] != "1.2.3" {
		t.Errorf("version = %q", resp["version"])
	}

	rr = do(t, NewHandler(nil, Options{}), http.MethodGet, "/api/version", nil)
	decodeResponse(t, rr, &resp)
	if resp["version"] != "dev" {
		t.Errorf("expected dev version for an empty option, got %q", resp["version"])
	}
}

func TestRequestIDHeader(t *testing.T) {
	h := newTestHandler(t, false)

	rr := do(t, h, http.MethodGet, "/api/version", nil)
	if rr.Header().Get(RequestIDHeader) == "" {
		t.Error("expected a generated request id")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if got := rr.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("request id = %q, expected the client's id", got)
	}
}

func TestRateTable(t *testing.T) {
	rr := do(t, newTestHandler(t, false), http.MethodGet, "/api/ratetable", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	var resp rateTableResponse
	decodeResponse(t, rr, &resp)
	if resp.Table.Year != 2025 || resp.Table.LowerRate != 0.15 {
		t.Errorf("table = %+v", resp.Table)
	}
	if len(resp.Years) == 0 || resp.Years[0] != 2025 {
		t.Errorf("years = %v", resp.Years)
	}
}

func TestSalary(t *testing.T) {
	h := newTestHandler(t, false)

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedNet    float64
		expectNil      bool
	}{
		{
			name:           "Reference salary",
			body:           `{"grossMonthly": 50000}`,
			expectedStatus: http.StatusOK,
			expectedNet:    39570,
		},
		{
			name:           "Disabled flag is ignored",
			body:           `{"grossMonthly": 50000, "enabled": false}`,
			expectedStatus: http.StatusOK,
			expectedNet:    39570,
		},
		{
			name:           "Zero gross",
			body:           `{"grossMonthly": 0}`,
			expectedStatus: http.StatusOK,
			expectNil:      true,
		},
		{
			name:           "Missing body",
			body:           "",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Malformed body",
			body:           `{"grossMonthly": "lots"`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, http.MethodPost, "/api/salary", []byte(tt.body))
			if rr.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.expectedStatus, rr.Code, rr.Body.String())
			}
			if rr.Code != http.StatusOK {
				return
			}
			var resp salaryResponse
			decodeResponse(t, rr, &resp)
			if tt.expectNil {
				if resp.Salary != nil || resp.PensionEstimate != 0 {
					t.Errorf("expected no salary, got %+v", resp)
				}
				return
			}
			if resp.Salary == nil {
				t.Fatal("expected a salary result")
			}
			if resp.Salary.Net != tt.expectedNet {
				t.Errorf("net = %v, expected %v", resp.Salary.Net, tt.expectedNet)
			}
			if resp.Salary.TaxPaid != 4930 || resp.Salary.EmployerCost != 66900 {
				t.Errorf("tax = %v, employer cost = %v", resp.Salary.TaxPaid, resp.Salary.EmployerCost)
			}
			if resp.PensionEstimate != 25040 {
				t.Errorf("pension estimate = %v, expected 25040", resp.PensionEstimate)
			}
		})
	}
}

func TestRequiredGross(t *testing.T) {
	h := newTestHandler(t, false)

	rr := do(t, h, http.MethodPost, "/api/salary/required", []byte(`{"targetNet": 39570}`))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp map[string]float64
	decodeResponse(t, rr, &resp)
	if !mathutil.WithinTolerance(resp["grossMonthly"], 50000, 2) {
		t.Errorf("grossMonthly = %v, expected about 50000", resp["grossMonthly"])
	}

	rr = do(t, h, http.MethodPost, "/api/salary/required", []byte(`{"targetNet": 1e12}`))
	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected status 422 for an unreachable net, got %d", rr.Code)
	}

	start := time.Now()
	rr = do(t, h, http.MethodPost, "/api/salary/required", []byte(`{"targetNet": 39570, "children": 1000000000000000}`))
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("request with a huge child count took %v", elapsed)
	}
	if rr.Code >= http.StatusInternalServerError {
		t.Errorf("expected a client-side status for a huge child count, got %d", rr.Code)
	}
}

func TestWorkbook(t *testing.T) {
	h := newTestHandler(t, false)

	rr := do(t, h, http.MethodPost, "/api/workbook", encodeHousehold(t, testutil.SampleHousehold()))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var wb plan.Workbook
	decodeResponse(t, rr, &wb)
	if wb.Client != "Jana Nováková" {
		t.Errorf("client = %q", wb.Client)
	}
	if wb.Year != 2026 || wb.RateYear != 2025 {
		t.Errorf("year = %d, rate year = %d", wb.Year, wb.RateYear)
	}
	if wb.Summary.Income != 75570 || wb.Summary.Expenses != 40000 {
		t.Errorf("income = %v, expenses = %v", wb.Summary.Income, wb.Summary.Expenses)
	}
	if wb.Salaries[0] == nil || wb.Salaries[0].Net != 39570 {
		t.Errorf("salary of person 1 = %+v", wb.Salaries[0])
	}
	if testutil.FindAlert(wb.Alerts, plan.AlertIllnessLoss) == nil {
		t.Errorf("expected the illness alert, got %+v", wb.Alerts)
	}
	if testutil.FindAlert(wb.Alerts, plan.AlertNegativeCashflow) != nil {
		t.Error("unexpected negative cashflow alert")
	}
	if len(wb.Goals) != 1 || wb.Goals[0].Name != "Car" {
		t.Errorf("goals = %+v", wb.Goals)
	}

	for name, body := range map[string]string{
		"Malformed JSON": `{"persons": [`,
		"Wrong type":     `{"persons": "two"}`,
	} {
		t.Run(name, func(t *testing.T) {
			rr := do(t, h, http.MethodPost, "/api/workbook", []byte(body))
			if rr.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", rr.Code)
			}
		})
	}
}

func TestWorkbookBodyLimit(t *testing.T) {
	h := NewHandler(zap.NewNop(), Options{MaxUploadSize: 16})
	rr := do(t, h, http.MethodPost, "/api/workbook", []byte(`{"persons": [{"firstName": "Jana"}]}`))
	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected status 413, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestProjections(t *testing.T) {
	h := newTestHandler(t, false)

	rr := do(t, h, http.MethodGet, "/api/projections", nil)
	var kinds map[string][]string
	decodeResponse(t, rr, &kinds)
	if !strings.Contains(strings.Join(kinds["kinds"], ","), "mortgage") {
		t.Errorf("kinds = %v", kinds["kinds"])
	}

	tests := []struct {
		name           string
		kind           string
		body           string
		expectedStatus int
	}{
		{"Mortgage defaults", "mortgage", "", http.StatusOK},
		{"Loan override", "loan", `{"principal": 200000}`, http.StatusOK},
		{"Retirement", "retirement", `{"age": 40}`, http.StatusOK},
		{"Unknown kind", "lottery", "", http.StatusNotFound},
		{"Invalid scenario", "investment", `{"years": "many"}`, http.StatusBadRequest},
		{"Zero-length mortgage", "mortgage", `{"years": 0}`, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, http.MethodPost, "/api/projections/"+tt.kind, []byte(tt.body))
			if rr.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.expectedStatus, rr.Code, rr.Body.String())
			}
			if rr.Code != http.StatusOK {
				var errResp map[string]string
				decodeResponse(t, rr, &errResp)
				if errResp["error"] == "" {
					t.Error("expected an error message")
				}
			}
		})
	}
}

func TestClientLifecycle(t *testing.T) {
	h := newTestHandler(t, true)

	rr := do(t, h, http.MethodPost, "/api/clients?filename=novakovi.json", encodeHousehold(t, testutil.SampleHousehold()))
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var created store.Client
	decodeResponse(t, rr, &created)
	if created.ID == "" || created.Name != "Jana Nováková" {
		t.Fatalf("created = %+v", created.Entry)
	}
	if loc := rr.Header().Get("Location"); loc != "/api/clients/"+created.ID {
		t.Errorf("Location = %q", loc)
	}

	rr = do(t, h, http.MethodGet, "/api/clients?search=nov", nil)
	var list map[string][]store.Entry
	decodeResponse(t, rr, &list)
	if len(list["clients"]) != 1 || list["clients"][0].ID != created.ID {
		t.Errorf("list = %+v", list["clients"])
	}

	rr = do(t, h, http.MethodGet, "/api/clients?search=svoboda", nil)
	decodeResponse(t, rr, &list)
	if len(list["clients"]) != 0 {
		t.Errorf("expected no match, got %+v", list["clients"])
	}

	rr = do(t, h, http.MethodGet, "/api/clients/"+created.ID, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	var got store.Client
	decodeResponse(t, rr, &got)
	if got.Household == nil || got.Household.Payroll[0].GrossMonthly != 50000 {
		t.Errorf("stored household = %+v", got.Household)
	}

	updated := testutil.SampleHousehold()
	updated.Expenses.Other = 55000
	rr = do(t, h, http.MethodPut, "/api/clients/"+created.ID, encodeHousehold(t, updated))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = do(t, h, http.MethodGet, "/api/clients/"+created.ID+"/workbook", nil)
	var wb plan.Workbook
	decodeResponse(t, rr, &wb)
	if wb.Summary.Expenses != 80000 {
		t.Errorf("expenses = %v, expected the overwritten record", wb.Summary.Expenses)
	}
	if testutil.FindAlert(wb.Alerts, plan.AlertNegativeCashflow) == nil {
		t.Errorf("expected the negative cashflow alert, got %+v", wb.Alerts)
	}

	rr = do(t, h, http.MethodGet, "/api/clients/"+created.ID+"/plan.pdf", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF-")) {
		t.Error("expected a PDF document")
	}

	rr = do(t, h, http.MethodDelete, "/api/clients/"+created.ID, nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rr.Code)
	}
	rr = do(t, h, http.MethodGet, "/api/clients/"+created.ID, nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected status 404 after delete, got %d", rr.Code)
	}
}

func TestClientErrors(t *testing.T) {
	h := newTestHandler(t, true)

	tests := []struct {
		name           string
		method         string
		target         string
		body           string
		expectedStatus int
	}{
		{"Unknown id", http.MethodGet, "/api/clients/3f1c2a4e-7b7d-4c55-9a0e-0d8f5c1b2a33", "", http.StatusNotFound},
		{"Malformed id", http.MethodGet, "/api/clients/not-a-uuid", "", http.StatusNotFound},
		{"Delete unknown", http.MethodDelete, "/api/clients/3f1c2a4e-7b7d-4c55-9a0e-0d8f5c1b2a33", "", http.StatusNotFound},
		{"Overwrite unknown", http.MethodPut, "/api/clients/3f1c2a4e-7b7d-4c55-9a0e-0d8f5c1b2a33", "{}", http.StatusNotFound},
		{"Import malformed", http.MethodPost, "/api/clients", "{", http.StatusBadRequest},
		{"Plan of unknown", http.MethodGet, "/api/clients/not-a-uuid/plan.pdf", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, tt.method, tt.target, []byte(tt.body))
			if rr.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, rr.Code, rr.Body.String())
			}
		})
	}
}

func TestClientsWithoutStore(t *testing.T) {
	h := newTestHandler(t, false)
	for _, target := range []string{"/api/clients", "/api/clients/3f1c2a4e-7b7d-4c55-9a0e-0d8f5c1b2a33"} {
		rr := do(t, h, http.MethodGet, target, nil)
		if rr.Code != http.StatusServiceUnavailable {
			t.Errorf("GET %s: expected status 503, got %d", target, rr.Code)
		}
	}
}

func TestRecovererCatchesPanics(t *testing.T) {
	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
	h := requestID(recoverer(zap.NewNop())(panicking))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", rr.Code)
	}
}

func TestStatusForError(t *testing.T) {
	if got := statusForError(store.ErrClientNotFound); got != http.StatusNotFound {
		t.Errorf("statusForError(ErrClientNotFound) = %d", got)
	}
	if got := statusForError(household.ErrInvalidDocument); got != http.StatusBadRequest {
		t.Errorf("statusForError(ErrInvalidDocument) = %d", got)
	}
	if got := statusForError(http.ErrBodyNotAllowed); got != http.StatusInternalServerError {
		t.Errorf("statusForError(other) = %d", got)
	}
}
