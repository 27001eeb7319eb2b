//go:build integration

package router_test

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/router/... -v
//
// Covered flows:
//   - login → create catalog → purchase → sale → dashboard
//   - oversized sale rejected with 409 and stock untouched
//   - soft-deleted product disappears from listings
//   - sales report xlsx download streams a workbook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Shema-glitch/StockTracker/internal/config"
	"github.com/Shema-glitch/StockTracker/internal/infra"
	"github.com/Shema-glitch/StockTracker/internal/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string // admin JWT
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("stocktracker_test"),
		tcPostgres.WithUsername("stocktracker"),
		tcPostgres.WithPassword("stocktracker"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		WorkerPoolSize:     1,
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)
	require.NoError(t, infra.RunMigrations(db))

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	r := router.New(cfg, db, rdb)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	// Register + login an admin
	registerResp := do(t, srv, "POST", "/api/auth/register",
		jsonBody(t, map[string]any{
			"username": "admin-e2e",
			"email":    "admin@e2e.test",
			"password": "e2e-password",
			"name":     "Admin E2E",
			"role":     "admin",
		}), "")
	require.Equal(t, http.StatusCreated, registerResp.StatusCode)
	registerResp.Body.Close()

	loginResp := do(t, srv, "POST", "/api/auth/login",
		jsonBody(t, map[string]string{"username": "admin-e2e", "password": "e2e-password"}),
		"",
	)
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		Token string `json:"token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.Token)

	return &testEnv{server: srv, token: loginBody.Token}
}

type idResp struct {
	ID uint `json:"id"`
}

func seedCatalog(t *testing.T, env *testEnv, stock int) (departmentID, categoryID, productID uint) {
	t.Helper()

	depResp := do(t, env.server, "POST", "/api/departments",
		jsonBody(t, map[string]any{"name": "Electronics"}), env.token)
	require.Equal(t, http.StatusCreated, depResp.StatusCode)
	var dep idResp
	decodeJSON(t, depResp, &dep)

	catResp := do(t, env.server, "POST", "/api/categories",
		jsonBody(t, map[string]any{"name": "Phones", "code": "PH", "departmentId": dep.ID}), env.token)
	require.Equal(t, http.StatusCreated, catResp.StatusCode)
	var cat idResp
	decodeJSON(t, catResp, &cat)

	prodResp := do(t, env.server, "POST", "/api/products",
		jsonBody(t, map[string]any{
			"name": "Phone Case", "code": "PH-0001", "price": "19.99",
			"stockQuantity": stock, "minStockLevel": 2,
			"departmentId": dep.ID, "categoryId": cat.ID,
		}), env.token)
	require.Equal(t, http.StatusCreated, prodResp.StatusCode)
	var prod idResp
	decodeJSON(t, prodResp, &prod)

	return dep.ID, cat.ID, prod.ID
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_PurchaseSaleCycle(t *testing.T) {
	env := setupTestEnv(t)
	_, _, productID := seedCatalog(t, env, 10)

	purchaseResp := do(t, env.server, "POST", "/api/purchases",
		jsonBody(t, map[string]any{"productId": productID, "quantity": 20, "unitCost": "8.00"}), env.token)
	require.Equal(t, http.StatusCreated, purchaseResp.StatusCode)
	var purchase struct {
		NewStockQuantity int    `json:"newStockQuantity"`
		TotalCost        string `json:"totalCost"`
	}
	decodeJSON(t, purchaseResp, &purchase)
	assert.Equal(t, 30, purchase.NewStockQuantity)
	assert.Equal(t, "160", purchase.TotalCost[:3])

	saleResp := do(t, env.server, "POST", "/api/sales",
		jsonBody(t, map[string]any{"productId": productID, "quantity": 25, "unitPrice": "19.99"}), env.token)
	require.Equal(t, http.StatusCreated, saleResp.StatusCode)
	var sale struct {
		NewStockQuantity int `json:"newStockQuantity"`
	}
	decodeJSON(t, saleResp, &sale)
	assert.Equal(t, 5, sale.NewStockQuantity)

	statsResp := do(t, env.server, "GET", "/api/dashboard/stats", nil, env.token)
	require.Equal(t, http.StatusOK, statsResp.StatusCode)
	var stats struct {
		TotalSales     int64 `json:"totalSales"`
		TotalPurchases int64 `json:"totalPurchases"`
	}
	decodeJSON(t, statsResp, &stats)
	assert.EqualValues(t, 1, stats.TotalSales)
	assert.EqualValues(t, 1, stats.TotalPurchases)
}

func TestE2E_OversizedSaleRejected(t *testing.T) {
	env := setupTestEnv(t)
	_, _, productID := seedCatalog(t, env, 3)

	saleResp := do(t, env.server, "POST", "/api/sales",
		jsonBody(t, map[string]any{"productId": productID, "quantity": 5, "unitPrice": "19.99"}), env.token)
	require.Equal(t, http.StatusConflict, saleResp.StatusCode)
	saleResp.Body.Close()

	// no sale row and stock untouched
	listResp := do(t, env.server, "GET", "/api/sales", nil, env.token)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var sales []json.RawMessage
	decodeJSON(t, listResp, &sales)
	assert.Empty(t, sales)

	prodResp := do(t, env.server, "GET", fmt.Sprintf("/api/products/%d", productID), nil, env.token)
	require.Equal(t, http.StatusOK, prodResp.StatusCode)
	var prod struct {
		StockQuantity int `json:"stockQuantity"`
	}
	decodeJSON(t, prodResp, &prod)
	assert.Equal(t, 3, prod.StockQuantity)
}

func TestE2E_SoftDeletedProductHidden(t *testing.T) {
	env := setupTestEnv(t)
	_, _, productID := seedCatalog(t, env, 5)

	delResp := do(t, env.server, "DELETE", fmt.Sprintf("/api/products/%d", productID), nil, env.token)
	require.Equal(t, http.StatusNoContent, delResp.StatusCode)
	delResp.Body.Close()

	listResp := do(t, env.server, "GET", "/api/products", nil, env.token)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var products []json.RawMessage
	decodeJSON(t, listResp, &products)
	assert.Empty(t, products)

	// still readable by id
	getResp := do(t, env.server, "GET", fmt.Sprintf("/api/products/%d", productID), nil, env.token)
	assert.Equal(t, http.StatusOK, getResp.StatusCode)
	getResp.Body.Close()
}

func TestE2E_SalesReportDownload(t *testing.T) {
	env := setupTestEnv(t)
	_, _, productID := seedCatalog(t, env, 10)

	saleResp := do(t, env.server, "POST", "/api/sales",
		jsonBody(t, map[string]any{"productId": productID, "quantity": 2, "unitPrice": "19.99"}), env.token)
	require.Equal(t, http.StatusCreated, saleResp.StatusCode)
	saleResp.Body.Close()

	dlResp := do(t, env.server, "GET", "/api/reports/sales/download", nil, env.token)
	require.Equal(t, http.StatusOK, dlResp.StatusCode)
	defer dlResp.Body.Close()
	assert.Contains(t, dlResp.Header.Get("Content-Disposition"), "sales_report.xlsx")
	payload, err := io.ReadAll(dlResp.Body)
	require.NoError(t, err)
	// xlsx files are zip archives
	require.Greater(t, len(payload), 4)
	assert.Equal(t, []byte{'P', 'K'}, payload[:2])
}

func TestE2E_AuthRequired(t *testing.T) {
	env := setupTestEnv(t)

	resp := do(t, env.server, "GET", "/api/products", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestE2E_EmployeesListRequiresPermission(t *testing.T) {
	env := setupTestEnv(t)

	// Admin creates an employee with no employees.view grant
	resp := do(t, env.server, "POST", "/api/users", jsonBody(t, map[string]any{
		"username":    "clerk-e2e",
		"email":       "clerk@e2e.test",
		"password":    "e2e-password",
		"name":        "Clerk E2E",
		"role":        "employee",
		"permissions": []string{"sales.record"},
	}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	loginResp := do(t, env.server, "POST", "/api/auth/login",
		jsonBody(t, map[string]string{"username": "clerk-e2e", "password": "e2e-password"}), "")
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		Token string `json:"token"`
	}
	decodeJSON(t, loginResp, &loginBody)

	resp = do(t, env.server, "GET", "/api/employees", nil, loginBody.Token)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Admin bypasses the permission check
	resp = do(t, env.server, "GET", "/api/employees", nil, env.token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}
