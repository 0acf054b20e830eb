package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/pennywise/internal/backup"
	"github.com/MrJamesThe3rd/pennywise/internal/gateway"
	pennyhttp "github.com/MrJamesThe3rd/pennywise/internal/http"
	backupHandler "github.com/MrJamesThe3rd/pennywise/internal/http/backup"
	categoryHandler "github.com/MrJamesThe3rd/pennywise/internal/http/category"
	reportHandler "github.com/MrJamesThe3rd/pennywise/internal/http/report"
	txHandler "github.com/MrJamesThe3rd/pennywise/internal/http/transaction"
	"github.com/MrJamesThe3rd/pennywise/internal/render"
	"github.com/MrJamesThe3rd/pennywise/internal/transaction"
	"github.com/MrJamesThe3rd/pennywise/internal/transaction/store"
	"github.com/MrJamesThe3rd/pennywise/web"
)

var fixture = []transaction.Transaction{
	{ID: "a", Type: transaction.TypeIncome, Amount: decimal.RequireFromString("3000"), Category: "salary", Date: "2024-03-01"},
	{ID: "b", Type: transaction.TypeExpense, Amount: decimal.RequireFromString("12.50"), Category: "food", Description: "Lunch", Date: "2024-03-02"},
	{ID: "c", Type: transaction.TypeExpense, Amount: decimal.RequireFromString("40"), Category: "transport", Date: "2024-02-27"},
}

func newRouter(t *testing.T) (http.Handler, *transaction.Service) {
	t.Helper()

	svc := transaction.NewService(store.NewMemory())
	_, err := svc.Import(t.Context(), fixture)
	require.NoError(t, err)

	now := func() time.Time { return time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC) }

	router := pennyhttp.New(
		[]string{"http://localhost:8081"},
		web.Handler(),
		categoryHandler.NewHandler(),
		txHandler.NewHandler(svc),
		reportHandler.NewHandler(svc, now),
		backupHandler.NewHandler(backup.NewService(svc)),
	)

	return router, svc
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	return rr
}

func TestTransactions_ListByMonth(t *testing.T) {
	router, _ := newRouter(t)

	rr := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/transactions?month=2024-03", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var got []struct {
		ID       string `json:"id"`
		Amount   string `json:"amount"`
		Category struct {
			Label string `json:"label"`
		} `json:"category"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "12.50", got[1].Amount)
	assert.Equal(t, "Food", got[1].Category.Label)

	rr = serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/transactions?month=2024-13", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestTransactions_Create(t *testing.T) {
	type testCase struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}

	tests := []testCase{
		{
			name:       "Valid",
			body:       `{"type":"expense","amount":" 9.99 ","category":"food","description":" Coffee ","date":"2024-03-10"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "ZeroAmount",
			body:       `{"type":"expense","amount":"0","category":"food","date":"2024-03-10"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  transaction.ErrInvalidAmount.Error(),
		},
		{
			name:       "NoCategory",
			body:       `{"type":"income","amount":"5","date":"2024-03-10"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  transaction.ErrMissingCategory.Error(),
		},
		{
			name:       "MalformedBody",
			body:       `{"amount":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			router, svc := newRouter(t)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")

			rr := serve(router, req)
			require.Equal(t, tc.wantStatus, rr.Code)

			if tc.wantError != "" {
				var body struct {
					Error string `json:"error"`
				}
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
				assert.Equal(t, tc.wantError, body.Error)
			}

			if tc.wantStatus != http.StatusCreated {
				assert.Len(t, svc.All(), len(fixture))
				return
			}

			all := svc.All()
			require.Len(t, all, len(fixture)+1)

			created := all[len(all)-1]
			assert.NotEmpty(t, created.ID)
			assert.Equal(t, "Coffee", created.Description)
			assert.True(t, created.Amount.Equal(decimal.RequireFromString("9.99")))
		})
	}
}

func TestTransactions_RejectsNonJSON(t *testing.T) {
	router, _ := newRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader("amount=1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	assert.Equal(t, http.StatusUnsupportedMediaType, serve(router, req).Code)
}

func TestTransactions_GetAndDelete(t *testing.T) {
	router, svc := newRouter(t)

	rr := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/transactions/b", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = serve(router, httptest.NewRequest(http.MethodDelete, "/api/v1/transactions/b", nil))
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Len(t, svc.All(), len(fixture)-1)

	rr = serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/transactions/b", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = serve(router, httptest.NewRequest(http.MethodDelete, "/api/v1/transactions/missing", nil))
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Len(t, svc.All(), len(fixture)-1)
}

func TestCategories(t *testing.T) {
	router, _ := newRouter(t)

	rr := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var got struct {
		Expense  []struct{ ID string } `json:"expense"`
		Income   []struct{ ID string } `json:"income"`
		Fallback struct{ ID string }   `json:"fallback"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Len(t, got.Expense, 8)
	assert.Len(t, got.Income, 5)
	assert.Equal(t, "other", got.Fallback.ID)
}

func TestReports(t *testing.T) {
	router, _ := newRouter(t)

	rr := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/reports/home?month=2024-03", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var screen render.Screen
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&screen))
	assert.Equal(t, "home", screen.View)
	assert.Equal(t, "March 2024", screen.MonthLabel)
	require.NotNil(t, screen.Home)
	assert.Equal(t, "$2,987.50", screen.Home.Balance)
	assert.Len(t, screen.Home.Recent, 2)

	rr = serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/reports/reports", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	screen = render.Screen{}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&screen))
	assert.Equal(t, "March 2024", screen.MonthLabel)
	require.NotNil(t, screen.Reports)
	assert.Len(t, screen.Reports.Breakdown, 1)

	rr = serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/reports/transactions?month=2023-12", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	screen = render.Screen{}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&screen))
	assert.Equal(t, "transactions", screen.View)
	assert.Equal(t, "December 2023", screen.MonthLabel)

	rr = serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/reports/home?month=2024-13", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/reports/settings", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestBackup_DownloadAndRestore(t *testing.T) {
	router, _ := newRouter(t)

	rr := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/backup?format=csv", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/csv", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), ".csv")

	csvBackup := rr.Body.Bytes()

	rr = serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/backup?format=xml", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	fresh, svc := newRouter(t)
	for _, tx := range fixture {
		require.NoError(t, svc.RemoveByID(t.Context(), tx.ID))
	}

	rr = serve(fresh, restoreRequest(t, csvBackup))
	require.Equal(t, http.StatusOK, rr.Code)

	var got struct {
		Imported int `json:"imported"`
		Skipped  int `json:"skipped"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, len(fixture), got.Imported)
	assert.Zero(t, got.Skipped)
	assert.Len(t, svc.All(), len(fixture))

	rr = serve(fresh, restoreRequest(t, []byte("not,a,backup\n")))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func restoreRequest(t *testing.T, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer

	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "backup.csv")
	require.NoError(t, err)

	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/backup", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return req
}

func TestShell(t *testing.T) {
	router, _ := newRouter(t)

	for _, path := range []string{"/", "/index.html", "/history"} {
		rr := serve(router, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rr.Code, path)
		assert.Contains(t, rr.Body.String(), "<title>Pennywise</title>", path)
	}

	rr := serve(router, httptest.NewRequest(http.MethodGet, "/app.js", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "/api/v1")
}

func TestRouter_BehindGateway(t *testing.T) {
	router, _ := newRouter(t)

	origin := httptest.NewServer(router)
	defer origin.Close()

	base, err := url.Parse(origin.URL)
	require.NoError(t, err)

	storage := gateway.NewStorage(0, 0)
	gw := gateway.New(gateway.Config{CacheName: "budget-v1", Origin: base}, storage, nil)
	require.NoError(t, gw.Install(t.Context()))
	gw.Activate()

	proxy := httptest.NewServer(gw.Handler())
	defer proxy.Close()

	list := func() string {
		resp, err := proxy.Client().Get(proxy.URL + "/api/v1/transactions?month=2024-03")
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		return string(body)
	}

	before := list()
	assert.NotContains(t, before, "Bus ticket")

	resp, err := proxy.Client().Post(proxy.URL+"/api/v1/transactions", "application/json",
		strings.NewReader(`{"type":"expense","amount":"2.80","category":"transport","description":"Bus ticket","date":"2024-03-20"}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	assert.Contains(t, list(), "Bus ticket")

	gw.Wait()
	assert.Equal(t, len(gateway.DefaultManifest), storage.Open("budget-v1").Len(), "api responses stay out of the cache")
}
