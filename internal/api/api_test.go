package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfrancor/contalocal/internal/api"
	"github.com/mfrancor/contalocal/internal/store"
)

const testToken = "test-token"

type testClient struct {
	t       *testing.T
	baseURL string
	token   string
}

func setupTestServer(t *testing.T) *testClient {
	t.Helper()

	st, err := store.New(filepath.Join(t.TempDir(), "api-test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	srv := httptest.NewServer(api.NewRouter(st, nil, testToken))
	t.Cleanup(srv.Close)

	return &testClient{t: t, baseURL: srv.URL, token: testToken}
}

// do sends a request with the bearer token and decodes the JSON response
// into out (which may be nil).
func (c *testClient) do(method, path string, body, out interface{}) int {
	c.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer func() { _ = resp.Body.Close() }()

	if out != nil {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (c *testClient) createCompany(name string) string {
	c.t.Helper()
	var resp struct {
		Company struct {
			ID string `json:"id"`
		} `json:"company"`
	}
	status := c.do(http.MethodPost, "/api/1/companies", map[string]string{"name": name}, &resp)
	require.Equal(c.t, http.StatusCreated, status)
	require.NotEmpty(c.t, resp.Company.ID)
	return resp.Company.ID
}

func TestAuthRequired(t *testing.T) {
	c := setupTestServer(t)

	noAuth := *c
	noAuth.token = ""
	status := noAuth.do(http.MethodGet, "/api/1/companies", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	badToken := *c
	badToken.token = "wrong"
	status = badToken.do(http.MethodGet, "/api/1/companies", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status = c.do(http.MethodGet, "/api/1/companies", nil, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestTransactionCRUD(t *testing.T) {
	c := setupTestServer(t)
	companyID := c.createCompany("Acme SAS")

	var created struct {
		Transaction struct {
			ID            string `json:"id"`
			VoucherNumber int64  `json:"voucher_number"`
			Amount        string `json:"amount"`
		} `json:"transaction"`
	}
	status := c.do(http.MethodPost, "/api/1/transactions", map[string]interface{}{
		"company_id":  companyID,
		"type":        "income",
		"date":        "2024-01-15",
		"amount":      "250",
		"description": "Venta mostrador",
		"category":    "VENTAS",
		"destination": map[string]string{"kind": "cash"},
	}, &created)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, int64(1), created.Transaction.VoucherNumber)
	assert.Equal(t, "250", created.Transaction.Amount)

	// Voucher number and linkage are immutable through update.
	var updated struct {
		Transaction struct {
			VoucherNumber int64  `json:"voucher_number"`
			Description   string `json:"description"`
		} `json:"transaction"`
	}
	status = c.do(http.MethodPut, "/api/1/transactions/"+created.Transaction.ID, map[string]interface{}{
		"description": "Venta corregida",
	}, &updated)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Venta corregida", updated.Transaction.Description)
	assert.Equal(t, int64(1), updated.Transaction.VoucherNumber)

	status = c.do(http.MethodDelete, "/api/1/transactions/"+created.Transaction.ID, nil, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status = c.do(http.MethodGet, "/api/1/transactions/"+created.Transaction.ID, nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestTransactionValidation(t *testing.T) {
	c := setupTestServer(t)
	companyID := c.createCompany("Acme SAS")

	var errResp api.ErrorResponse
	status := c.do(http.MethodPost, "/api/1/transactions", map[string]interface{}{
		"company_id": companyID,
		"type":       "donation",
		"date":       "2024-01-15",
		"amount":     "10",
	}, &errResp)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_parameter", errResp.Error)
}

func TestTransferEndpoint(t *testing.T) {
	c := setupTestServer(t)
	companyID := c.createCompany("Acme SAS")

	var resp struct {
		Expense struct {
			ID                 string `json:"id"`
			IsInternalTransfer bool   `json:"is_internal_transfer"`
		} `json:"expense"`
		Income struct {
			ID string `json:"id"`
		} `json:"income"`
	}
	status := c.do(http.MethodPost, "/api/1/transfers", map[string]interface{}{
		"company_id":  companyID,
		"date":        "2024-03-01",
		"amount":      "300",
		"description": "Consignacion",
		"from":        map[string]string{"kind": "cash"},
		"to":          map[string]string{"kind": "raw", "id": "bank1", "display_name": "Bancolombia"},
	}, &resp)
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, resp.Expense.IsInternalTransfer)
	assert.Equal(t, strings.TrimSuffix(resp.Expense.ID, "-exp")+"-inc", resp.Income.ID)
}

func TestReceivableSettlementFlow(t *testing.T) {
	c := setupTestServer(t)
	companyID := c.createCompany("Acme SAS")

	var created struct {
		Receivable struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"receivable"`
	}
	status := c.do(http.MethodPost, "/api/1/receivables", map[string]interface{}{
		"company_id":     companyID,
		"debtor":         "Cliente Uno",
		"amount":         "400",
		"issue_date":     "2024-03-01",
		"due_date":       "2024-06-01",
		"linked_account": "VENTAS",
	}, &created)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Pendiente", created.Receivable.Status)

	var collected struct {
		Receivable struct {
			Status string `json:"status"`
		} `json:"receivable"`
	}
	status = c.do(http.MethodPost, fmt.Sprintf("/api/1/receivables/%s/collect", created.Receivable.ID), map[string]interface{}{
		"date":        "2024-04-15",
		"destination": map[string]string{"kind": "cash"},
	}, &collected)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Cobrado", collected.Receivable.Status)

	// Settling twice is rejected.
	status = c.do(http.MethodPost, fmt.Sprintf("/api/1/receivables/%s/collect", created.Receivable.ID), map[string]interface{}{
		"date":        "2024-05-01",
		"destination": map[string]string{"kind": "cash"},
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestReportEndpoints(t *testing.T) {
	c := setupTestServer(t)
	companyID := c.createCompany("Acme SAS")

	for _, txn := range []map[string]interface{}{
		{"type": "income", "date": "2024-01-10", "amount": "500", "category": "VENTAS", "destination": map[string]string{"kind": "cash"}},
		{"type": "expense", "date": "2024-02-10", "amount": "200", "category": "SERVICIOS", "destination": map[string]string{"kind": "cash"}},
	} {
		txn["company_id"] = companyID
		status := c.do(http.MethodPost, "/api/1/transactions", txn, nil)
		require.Equal(t, http.StatusCreated, status)
	}

	var summary struct {
		Summary struct {
			TotalIncome   string `json:"total_income"`
			TotalExpenses string `json:"total_expenses"`
			NetProfit     string `json:"net_profit"`
		} `json:"summary"`
	}
	status := c.do(http.MethodGet, "/api/1/reports/summary?company_id="+companyID+"&year=2024", nil, &summary)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "500", summary.Summary.TotalIncome)
	assert.Equal(t, "200", summary.Summary.TotalExpenses)
	assert.Equal(t, "300", summary.Summary.NetProfit)

	var sheet struct {
		BalanceSheet struct {
			Balanced bool `json:"balanced"`
		} `json:"balance_sheet"`
	}
	status = c.do(http.MethodGet, "/api/1/reports/balance_sheet?company_id="+companyID+"&year=2024", nil, &sheet)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, sheet.BalanceSheet.Balanced)

	var rows struct {
		Rows []struct {
			ID string `json:"id"`
		} `json:"rows"`
	}
	status = c.do(http.MethodGet, "/api/1/reports/ledger?company_id="+companyID, nil, &rows)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, rows.Rows, 2)

	// year is mandatory for period statements.
	status = c.do(http.MethodGet, "/api/1/reports/income_statement?company_id="+companyID, nil, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestConsolidatedReports(t *testing.T) {
	c := setupTestServer(t)
	parentID := c.createCompany("Matriz SAS")

	var sub struct {
		Company struct {
			ID string `json:"id"`
		} `json:"company"`
	}
	status := c.do(http.MethodPost, "/api/1/companies", map[string]string{
		"name":      "Filial SAS",
		"parent_id": parentID,
	}, &sub)
	require.Equal(t, http.StatusCreated, status)

	for _, companyID := range []string{parentID, sub.Company.ID} {
		status := c.do(http.MethodPost, "/api/1/transactions", map[string]interface{}{
			"company_id":  companyID,
			"type":        "income",
			"date":        "2024-01-10",
			"amount":      "100",
			"category":    "VENTAS",
			"destination": map[string]string{"kind": "cash"},
		}, nil)
		require.Equal(t, http.StatusCreated, status)
	}

	var summary struct {
		Summary struct {
			TotalIncome string `json:"total_income"`
		} `json:"summary"`
	}
	status = c.do(http.MethodGet, "/api/1/reports/summary?company_id="+parentID+"&year=2024&consolidated=true", nil, &summary)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "200", summary.Summary.TotalIncome)

	status = c.do(http.MethodGet, "/api/1/reports/summary?company_id="+parentID+"&year=2024", nil, &summary)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "100", summary.Summary.TotalIncome)
}
