package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"planner/internal/cache"
	"planner/internal/core"
	"planner/internal/log"
	"planner/internal/services"
	"planner/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type response struct {
	Code    int
	Cookies []*http.Cookie
	Data    json.RawMessage   `json:"data"`
	Message string            `json:"message"`
	Error   string            `json:"error"`
	Fields  map[string]string `json:"fields"`
}

type ServerTestSuite struct {
	suite.Suite
	repo   *storage.SQLiteRepository
	server *Server
	cookie *http.Cookie
	userID string
}

func (s *ServerTestSuite) SetupTest() {
	repo, err := storage.NewSQLiteRepository(filepath.Join(s.T().TempDir(), "planner.db"))
	require.NoError(s.T(), err)
	s.repo = repo

	summary := services.NewSummaryService(repo, cache.NewLRUCache[core.MonthSummary](16, time.Minute))
	s.server = NewServer(Options{
		CookieName:         "planner_session",
		AllowedOrigins:     []string{"http://localhost:5173"},
		RateLimitPerMinute: 100,
		Logger:             log.New(log.Config{Output: io.Discard}),
		Ready:              repo.Ping,
	}, Services{
		Auth:       services.NewAuthService(repo, time.Hour),
		Users:      services.NewUserService(repo, summary),
		Accounts:   services.NewAccountService(repo, summary),
		Categories: services.NewCategoryService(repo, summary),
		Ledger:     services.NewLedgerService(repo, nil, summary),
		Summary:    summary,
	})

	s.userID, s.cookie = s.registerAndLogin("ada@example.com")
}

func (s *ServerTestSuite) TearDownTest() {
	s.server.Shutdown(context.Background())
	s.repo.Close()
}

func (s *ServerTestSuite) do(method, path string, body any, cookie *http.Cookie) response {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(s.T(), err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.RemoteAddr = "203.0.113.10:4000"
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	s.server.Handler.ServeHTTP(rec, req)

	res := response{Code: rec.Code, Cookies: rec.Result().Cookies()}
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &res), rec.Body.String())
	return res
}

func (s *ServerTestSuite) decode(res response, dst any) {
	require.NoError(s.T(), json.Unmarshal(res.Data, dst), string(res.Data))
}

func sessionCookie(res response) *http.Cookie {
	for _, c := range res.Cookies {
		if c.Name == "planner_session" {
			return c
		}
	}
	return nil
}

func (s *ServerTestSuite) registerAndLogin(email string) (string, *http.Cookie) {
	res := s.do(http.MethodPost, "/user", map[string]any{
		"email":            email,
		"password":         "Secret1",
		"loginAfterCreate": true,
	}, nil)
	require.Equal(s.T(), http.StatusCreated, res.Code, res.Error)

	var u core.User
	s.decode(res, &u)
	cookie := sessionCookie(res)
	require.NotNil(s.T(), cookie)
	return u.ID, cookie
}

func (s *ServerTestSuite) createAccount(balance string) core.BankAccount {
	res := s.do(http.MethodPost, "/bank-account", map[string]any{
		"accountType":   "DAILY",
		"name":          "Checking",
		"accountNumber": "12345678901234567890123456",
		"balance":       balance,
		"color":         "#112233",
	}, s.cookie)
	require.Equal(s.T(), http.StatusCreated, res.Code, res.Fields)
	var a core.BankAccount
	s.decode(res, &a)
	return a
}

func (s *ServerTestSuite) createCategory(name, budget string) core.Category {
	res := s.do(http.MethodPost, "/category", map[string]any{
		"name":   name,
		"color":  "#ff0000",
		"budget": budget,
	}, s.cookie)
	require.Equal(s.T(), http.StatusCreated, res.Code, res.Fields)
	var c core.Category
	s.decode(res, &c)
	return c
}

func (s *ServerTestSuite) getAccount(id string) core.BankAccount {
	res := s.do(http.MethodGet, "/bank-account/"+id, nil, s.cookie)
	require.Equal(s.T(), http.StatusOK, res.Code)
	var a core.BankAccount
	s.decode(res, &a)
	return a
}

func (s *ServerTestSuite) getCategory(id string) core.Category {
	res := s.do(http.MethodGet, "/category/"+id, nil, s.cookie)
	require.Equal(s.T(), http.StatusOK, res.Code)
	var c core.Category
	s.decode(res, &c)
	return c
}

func (s *ServerTestSuite) TestHealthAndReady() {
	for _, path := range []string{"/healthz", "/readyz"} {
		res := s.do(http.MethodGet, path, nil, nil)
		assert.Equal(s.T(), http.StatusOK, res.Code, path)
	}
}

func (s *ServerTestSuite) TestHealthReportsCounters() {
	res := s.do(http.MethodGet, "/wp-admin/setup.php", nil, nil)
	require.Equal(s.T(), http.StatusNotFound, res.Code)

	res = s.do(http.MethodGet, "/healthz", nil, nil)
	require.Equal(s.T(), http.StatusOK, res.Code)
	var health healthStatus
	s.decode(res, &health)

	assert.Equal(s.T(), "ok", health.Status)
	// registration in SetupTest, the /wp-admin scan and this request
	assert.Equal(s.T(), int64(3), health.Requests.TotalRequests)
	assert.Equal(s.T(), int64(1), health.Requests.ClientErrors)
	assert.Zero(s.T(), health.Requests.ServerErrors)
	assert.Equal(s.T(), int64(1), health.SuspiciousRequests)
	assert.Equal(s.T(), 1, health.RateLimit.ActiveClients)
	assert.Zero(s.T(), health.RateLimit.Rejected)
}

func (s *ServerTestSuite) TestReadyFailsWhenDatabaseClosed() {
	s.repo.Close()
	res := s.do(http.MethodGet, "/readyz", nil, nil)
	assert.Equal(s.T(), http.StatusServiceUnavailable, res.Code)
	assert.Equal(s.T(), "Not ready", res.Error)
}

func (s *ServerTestSuite) TestUnknownRoute() {
	res := s.do(http.MethodGet, "/nope", nil, nil)
	assert.Equal(s.T(), http.StatusNotFound, res.Code)
	assert.Equal(s.T(), "Not found", res.Error)
}

func (s *ServerTestSuite) TestAuthFlow() {
	res := s.do(http.MethodPost, "/auth/login", map[string]string{"email": "ada@example.com", "password": "Wrong12"}, nil)
	assert.Equal(s.T(), http.StatusUnauthorized, res.Code)
	assert.Equal(s.T(), "Authentication failed", res.Error)

	res = s.do(http.MethodPost, "/auth/login", map[string]string{"email": "nobody@example.com", "password": "Secret1"}, nil)
	assert.Equal(s.T(), http.StatusUnauthorized, res.Code)
	assert.Equal(s.T(), "Authentication failed", res.Error)

	res = s.do(http.MethodPost, "/auth/login", map[string]string{"email": "ADA@example.com", "password": "Secret1"}, nil)
	require.Equal(s.T(), http.StatusOK, res.Code)
	assert.Equal(s.T(), "Logged in", res.Message)
	cookie := sessionCookie(res)
	require.NotNil(s.T(), cookie)
	assert.True(s.T(), cookie.HttpOnly)

	res = s.do(http.MethodGet, "/auth/status", nil, cookie)
	require.Equal(s.T(), http.StatusOK, res.Code)
	assert.Equal(s.T(), "Authenticated", res.Message)
	var id core.Identity
	s.decode(res, &id)
	assert.Equal(s.T(), s.userID, id.ID)
	assert.Equal(s.T(), "ada@example.com", id.Email)

	res = s.do(http.MethodGet, "/auth/logout", nil, cookie)
	require.Equal(s.T(), http.StatusOK, res.Code)
	assert.Equal(s.T(), "Logged out", res.Message)

	res = s.do(http.MethodGet, "/auth/status", nil, cookie)
	assert.Equal(s.T(), http.StatusUnauthorized, res.Code)
	assert.Equal(s.T(), "Not authenticated", res.Error)

	res = s.do(http.MethodGet, "/auth/status", nil, nil)
	assert.Equal(s.T(), http.StatusUnauthorized, res.Code)
}

func (s *ServerTestSuite) TestLoginAtAuthRoot() {
	res := s.do(http.MethodPost, "/auth", map[string]string{"email": "ada@example.com", "password": "Secret1"}, nil)
	require.Equal(s.T(), http.StatusOK, res.Code, res.Error)
	assert.Equal(s.T(), "Logged in", res.Message)
	cookie := sessionCookie(res)
	require.NotNil(s.T(), cookie)

	res = s.do(http.MethodGet, "/auth/status", nil, cookie)
	assert.Equal(s.T(), http.StatusOK, res.Code)

	res = s.do(http.MethodPost, "/auth", map[string]string{"email": "ada@example.com", "password": "Wrong12"}, nil)
	assert.Equal(s.T(), http.StatusUnauthorized, res.Code)
}

func (s *ServerTestSuite) TestRegisterValidation() {
	res := s.do(http.MethodPost, "/user", map[string]any{"email": "ada@example.com", "password": "Secret1"}, nil)
	assert.Equal(s.T(), http.StatusBadRequest, res.Code)
	assert.Equal(s.T(), "User already exists", res.Error)

	res = s.do(http.MethodPost, "/user", map[string]any{"email": "bob@example.com", "password": "weak"}, nil)
	assert.Equal(s.T(), http.StatusBadRequest, res.Code)
	assert.Contains(s.T(), res.Fields, "password")

	res = s.do(http.MethodPost, "/user", map[string]any{"email": "bob@example.com", "password": "Secret1"}, nil)
	require.Equal(s.T(), http.StatusCreated, res.Code)
	assert.Nil(s.T(), sessionCookie(res), "no session without loginAfterCreate")
}

func (s *ServerTestSuite) TestInvalidBody() {
	for _, body := range []string{"{", `{"name": "a"} {}`, `{"amount": "abc"}`} {
		res := s.do(http.MethodPost, "/transaction", body, s.cookie)
		assert.Equal(s.T(), http.StatusBadRequest, res.Code, body)
		assert.Equal(s.T(), "Invalid request body", res.Error, body)
	}
}

func (s *ServerTestSuite) TestGetUser() {
	res := s.do(http.MethodGet, "/user/"+s.userID, nil, nil)
	require.Equal(s.T(), http.StatusOK, res.Code)
	assert.NotContains(s.T(), string(res.Data), "password")

	res = s.do(http.MethodGet, "/user/missing", nil, nil)
	assert.Equal(s.T(), http.StatusNotFound, res.Code)
	assert.Equal(s.T(), "User not found", res.Error)
}

func (s *ServerTestSuite) TestDefaultAccountAfterRegistration() {
	res := s.do(http.MethodGet, "/bank-account", nil, s.cookie)
	require.Equal(s.T(), http.StatusOK, res.Code)
	var accounts []core.BankAccount
	s.decode(res, &accounts)
	require.Len(s.T(), accounts, 1)
	assert.Equal(s.T(), core.DefaultAccountName, accounts[0].Name)
	assert.Equal(s.T(), core.AccountDaily, accounts[0].AccountType)
	assert.Equal(s.T(), "0.00", accounts[0].Balance.String())
}

func (s *ServerTestSuite) TestLedgerScenario() {
	account := s.createAccount("5000")
	category := s.createCategory("Food", "500")

	res := s.do(http.MethodPost, "/transaction", map[string]any{
		"amount":      "120.50",
		"description": "Groceries",
		"date":        "2024-03-10",
		"type":        "EXPENSE",
		"accountId":   account.ID,
		"categoryId":  category.ID,
	}, s.cookie)
	require.Equal(s.T(), http.StatusCreated, res.Code, res.Fields)
	var tx core.Transaction
	s.decode(res, &tx)
	require.NotNil(s.T(), tx.BankAccount)
	require.NotNil(s.T(), tx.Category)
	assert.Equal(s.T(), "Food", tx.Category.Name)

	assert.Equal(s.T(), "4879.50", s.getAccount(account.ID).Balance.String())
	assert.Equal(s.T(), "120.50", s.getCategory(category.ID).CurrentSpent.String())

	res = s.do(http.MethodGet, "/transaction?month=2&year=2024", nil, s.cookie)
	require.Equal(s.T(), http.StatusOK, res.Code)
	var listed []core.Transaction
	s.decode(res, &listed)
	require.Len(s.T(), listed, 1)

	res = s.do(http.MethodGet, "/transaction?month=2&year=2024&type=income", nil, s.cookie)
	require.Equal(s.T(), http.StatusOK, res.Code)
	s.decode(res, &listed)
	assert.Empty(s.T(), listed)

	res = s.do(http.MethodGet, "/transaction/summary?month=2&year=2024", nil, s.cookie)
	require.Equal(s.T(), http.StatusOK, res.Code)
	var summary core.MonthSummary
	s.decode(res, &summary)
	assert.Equal(s.T(), "120.50", summary.TotalExpense.String())
	assert.Equal(s.T(), "500.00", summary.TotalBudget.String())
	assert.Equal(s.T(), "-500.00", summary.RemainingBudget.String())
	assert.Equal(s.T(), "4879.50", summary.AvailableFunds.String())

	res = s.do(http.MethodDelete, "/bank-account/"+account.ID, nil, s.cookie)
	assert.Equal(s.T(), http.StatusBadRequest, res.Code)
	assert.Equal(s.T(), "Bank account has associated transactions", res.Error)

	res = s.do(http.MethodDelete, "/category/"+category.ID, nil, s.cookie)
	assert.Equal(s.T(), http.StatusBadRequest, res.Code)
	assert.Equal(s.T(), "Category has associated transactions", res.Error)

	res = s.do(http.MethodDelete, "/transaction/"+tx.ID, nil, s.cookie)
	require.Equal(s.T(), http.StatusOK, res.Code)

	assert.Equal(s.T(), "5000.00", s.getAccount(account.ID).Balance.String())
	assert.Equal(s.T(), "0.00", s.getCategory(category.ID).CurrentSpent.String())

	res = s.do(http.MethodGet, "/transaction/summary?month=2&year=2024", nil, s.cookie)
	s.decode(res, &summary)
	assert.Equal(s.T(), "0.00", summary.TotalExpense.String(), "summary cache must be invalidated")
}

func (s *ServerTestSuite) TestUpdateTransactionMovesCategory() {
	account := s.createAccount("1000")
	food := s.createCategory("Food", "500")
	fun := s.createCategory("Fun", "200")

	res := s.do(http.MethodPost, "/transaction", map[string]any{
		"amount": 40, "description": "Dinner", "date": "2024-03-05",
		"type": "EXPENSE", "accountId": account.ID, "categoryId": food.ID,
	}, s.cookie)
	require.Equal(s.T(), http.StatusCreated, res.Code, res.Fields)
	var tx core.Transaction
	s.decode(res, &tx)

	res = s.do(http.MethodPut, "/transaction/"+tx.ID, map[string]any{"categoryId": fun.ID}, s.cookie)
	require.Equal(s.T(), http.StatusOK, res.Code, res.Fields)

	assert.Equal(s.T(), "960.00", s.getAccount(account.ID).Balance.String())
	assert.Equal(s.T(), "0.00", s.getCategory(food.ID).CurrentSpent.String())
	assert.Equal(s.T(), "40.00", s.getCategory(fun.ID).CurrentSpent.String())
}

func (s *ServerTestSuite) TestForeignAccountIsNotFound() {
	_, otherCookie := s.registerAndLogin("eve@example.com")
	account := s.createAccount("100")

	res := s.do(http.MethodGet, "/bank-account/"+account.ID, nil, otherCookie)
	assert.Equal(s.T(), http.StatusNotFound, res.Code)
	assert.Equal(s.T(), "Bank account not found", res.Error)

	res = s.do(http.MethodPost, "/transaction", map[string]any{
		"amount": "10", "description": "Salary", "date": "2024-03-01",
		"type": "INCOME", "accountId": account.ID,
	}, otherCookie)
	assert.Equal(s.T(), http.StatusNotFound, res.Code)
	assert.Equal(s.T(), "Bank account not found", res.Error)

	assert.Equal(s.T(), "100.00", s.getAccount(account.ID).Balance.String())
}

func (s *ServerTestSuite) TestMonthQueryIsZeroBased() {
	account := s.createAccount("100")
	for _, date := range []string{"2024-01-15", "2024-12-20"} {
		res := s.do(http.MethodPost, "/transaction", map[string]any{
			"amount": "10", "description": "Salary " + date, "date": date,
			"type": "INCOME", "accountId": account.ID,
		}, s.cookie)
		require.Equal(s.T(), http.StatusCreated, res.Code, res.Fields)
	}

	listDates := func(query string) []string {
		res := s.do(http.MethodGet, "/transaction?"+query, nil, s.cookie)
		require.Equal(s.T(), http.StatusOK, res.Code, res.Fields)
		var txs []core.Transaction
		s.decode(res, &txs)
		dates := make([]string, 0, len(txs))
		for _, tx := range txs {
			dates = append(dates, tx.Date.String())
		}
		return dates
	}

	assert.Equal(s.T(), []string{"2024-01-15"}, listDates("month=0&year=2024"))
	assert.Empty(s.T(), listDates("month=1&year=2024"))
	assert.Equal(s.T(), []string{"2024-12-20"}, listDates("month=11&year=2024"))

	res := s.do(http.MethodGet, "/transaction/summary?month=0&year=2024", nil, s.cookie)
	require.Equal(s.T(), http.StatusOK, res.Code)
	var summary core.MonthSummary
	s.decode(res, &summary)
	assert.Equal(s.T(), 1, summary.Month, "summary reports the calendar month")
	assert.Equal(s.T(), "10.00", summary.TotalIncome.String())

	res = s.do(http.MethodGet, "/transaction?month=12&year=2024", nil, s.cookie)
	assert.Equal(s.T(), http.StatusBadRequest, res.Code)
	assert.Contains(s.T(), res.Fields, "month")
}

func (s *ServerTestSuite) TestTransactionValidation() {
	account := s.createAccount("100")

	res := s.do(http.MethodPost, "/transaction", map[string]any{
		"amount": "-5", "description": "x", "date": "2999-01-01",
		"type": "EXPENSE", "accountId": account.ID,
	}, s.cookie)
	require.Equal(s.T(), http.StatusBadRequest, res.Code)
	for _, field := range []string{"amount", "description", "date", "categoryId"} {
		assert.Contains(s.T(), res.Fields, field)
	}

	res = s.do(http.MethodGet, "/transaction?month=13&year=24", nil, s.cookie)
	require.Equal(s.T(), http.StatusBadRequest, res.Code)
	assert.Contains(s.T(), res.Fields, "month")
	assert.Contains(s.T(), res.Fields, "year")

	res = s.do(http.MethodGet, "/transaction?type=TRANSFER", nil, s.cookie)
	assert.Equal(s.T(), http.StatusBadRequest, res.Code)
	assert.Contains(s.T(), res.Fields, "type")
}

func (s *ServerTestSuite) TestCategoryDuplicateAndUpdate() {
	c := s.createCategory("Food", "100")

	res := s.do(http.MethodPost, "/category", map[string]any{"name": "Food", "color": "#000", "budget": 5}, s.cookie)
	assert.Equal(s.T(), http.StatusBadRequest, res.Code)
	assert.Equal(s.T(), "Category already exists", res.Error)

	res = s.do(http.MethodPut, "/category/"+c.ID, map[string]any{"budget": "250.75", "currentSpent": "99"}, s.cookie)
	require.Equal(s.T(), http.StatusOK, res.Code)
	updated := s.getCategory(c.ID)
	assert.Equal(s.T(), "250.75", updated.Budget.String())
	assert.Equal(s.T(), "0.00", updated.CurrentSpent.String())
	assert.Equal(s.T(), "Food", updated.Name)
}

func (s *ServerTestSuite) TestAccountUpdateIgnoresBalance() {
	a := s.createAccount("300")

	res := s.do(http.MethodPut, "/bank-account/"+a.ID, map[string]any{"name": "Renamed", "balance": "1"}, s.cookie)
	require.Equal(s.T(), http.StatusOK, res.Code, res.Fields)

	got := s.getAccount(a.ID)
	assert.Equal(s.T(), "Renamed", got.Name)
	assert.Equal(s.T(), "300.00", got.Balance.String())

	res = s.do(http.MethodDelete, "/bank-account/"+a.ID, nil, s.cookie)
	assert.Equal(s.T(), http.StatusOK, res.Code)
	res = s.do(http.MethodGet, "/bank-account/"+a.ID, nil, s.cookie)
	assert.Equal(s.T(), http.StatusNotFound, res.Code)
}

func (s *ServerTestSuite) TestDeleteUser() {
	otherID, _ := s.registerAndLogin("eve@example.com")

	res := s.do(http.MethodDelete, "/user/"+otherID, nil, s.cookie)
	assert.Equal(s.T(), http.StatusForbidden, res.Code)

	res = s.do(http.MethodDelete, "/user/"+s.userID, nil, s.cookie)
	require.Equal(s.T(), http.StatusOK, res.Code)
	assert.Equal(s.T(), "User deleted", res.Message)
	cleared := sessionCookie(res)
	require.NotNil(s.T(), cleared)
	assert.Equal(s.T(), "", cleared.Value)

	res = s.do(http.MethodGet, "/auth/status", nil, s.cookie)
	assert.Equal(s.T(), http.StatusUnauthorized, res.Code)

	_, err := s.repo.GetUserByID(context.Background(), s.userID)
	assert.True(s.T(), errors.Is(err, core.ErrNotFound))
}

func (s *ServerTestSuite) TestCORSPreflight() {
	req := httptest.NewRequest(http.MethodOptions, "/transaction", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	s.server.Handler.ServeHTTP(rec, req)

	assert.Equal(s.T(), "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(s.T(), "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func TestLoginRateLimit(t *testing.T) {
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "planner.db"))
	require.NoError(t, err)
	defer repo.Close()

	srv := NewServer(Options{
		RateLimitPerMinute: 2,
		Logger:             log.New(log.Config{Output: io.Discard}),
	}, Services{Auth: services.NewAuthService(repo, time.Hour)})
	defer srv.Shutdown(context.Background())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/auth/login",
			bytes.NewBufferString(`{"email":"x@example.com","password":"Secret1"}`))
		req.RemoteAddr = "198.51.100.1:1000"
		rec := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusUnauthorized, http.StatusUnauthorized, http.StatusTooManyRequests}, codes)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	var body struct {
		Data healthStatus `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(1), body.Data.RateLimit.Rejected)
	assert.Equal(t, 1, body.Data.RateLimit.ActiveClients)
}

func TestParseMonthQuery(t *testing.T) {
	now := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		query     string
		wantYear  int
		wantMonth int
		wantErr   bool
	}{
		{"", 2024, 7, false},
		{"?month=0&year=2023", 2023, 1, false},
		{"?month=11", 2024, 12, false},
		{"?month=2&year=2024", 2024, 3, false},
		{"?month=12", 0, 0, true},
		{"?month=-1", 0, 0, true},
		{"?month=abc", 0, 0, true},
		{"?year=99999", 0, 0, true},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/transaction"+tt.query, nil)
		year, month, err := parseMonthQuery(r, now)
		if tt.wantErr {
			assert.Error(t, err, tt.query)
			continue
		}
		require.NoError(t, err, tt.query)
		assert.Equal(t, tt.wantYear, year, tt.query)
		assert.Equal(t, tt.wantMonth, month, tt.query)
	}
}
