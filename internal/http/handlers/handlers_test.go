package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/contract-ledger/internal/http/handlers/common"
	"github.com/ignatzorin/contract-ledger/internal/http/middleware"
	"github.com/ignatzorin/contract-ledger/internal/models"
	"github.com/ignatzorin/contract-ledger/internal/pkg/apperror"
	"github.com/ignatzorin/contract-ledger/internal/policy"
	"github.com/ignatzorin/contract-ledger/internal/repository"
)

type mockPayer struct {
	mock.Mock
}

func (m *mockPayer) PayJob(ctx context.Context, caller *models.Profile, jobID uuid.UUID) (*models.Settlement, error) {
	args := m.Called(ctx, caller, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Settlement), args.Error(1)
}

type mockDepositor struct {
	mock.Mock
}

func (m *mockDepositor) Deposit(ctx context.Context, caller *models.Profile, targetID uuid.UUID, amount decimal.Decimal) (*models.DepositReceipt, error) {
	args := m.Called(ctx, caller, targetID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DepositReceipt), args.Error(1)
}

type mockReports struct {
	mock.Mock
}

func (m *mockReports) BestProfession(ctx context.Context, start, end string) (models.ProfessionReport, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).(models.ProfessionReport), args.Error(1)
}

func (m *mockReports) BestClients(ctx context.Context, start, end string, limit *int) (models.ClientsReport, error) {
	args := m.Called(ctx, start, end, limit)
	return args.Get(0).(models.ClientsReport), args.Error(1)
}

type mockSeeder struct {
	mock.Mock
}

func (m *mockSeeder) Seed(ctx context.Context) (repository.SeedData, error) {
	args := m.Called(ctx)
	return args.Get(0).(repository.SeedData), args.Error(1)
}

// newRouter собирает gin engine с ErrorHandler и, если caller задан, подставляет его в контекст.
func newRouter(caller *models.Profile) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	if caller != nil {
		r.Use(func(c *gin.Context) {
			c.Set(middleware.ContextProfileKey, caller)
			c.Next()
		})
	}
	return r
}

func perform(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req, _ = http.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) apperror.ErrorCode {
	t.Helper()
	var body middleware.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Code
}

func TestJobHandler_Pay_Unauthorized(t *testing.T) {
	r := newRouter(nil)
	handler := &JobHandler{payments: nil}
	r.POST("/jobs/:job_id/pay", handler.Pay)

	w := perform(r, http.MethodPost, "/jobs/"+uuid.NewString()+"/pay", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJobHandler_Pay_InvalidJobID(t *testing.T) {
	r := newRouter(&models.Profile{ID: uuid.New(), Type: models.ProfileTypeClient})
	handler := &JobHandler{payments: nil}
	r.POST("/jobs/:job_id/pay", handler.Pay)

	w := perform(r, http.MethodPost, "/jobs/invalid-uuid/pay", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperror.ErrCodeInvalidParameter, errorCode(t, w))
}

func TestJobHandler_Pay(t *testing.T) {
	client := &models.Profile{ID: uuid.New(), Type: models.ProfileTypeClient}
	jobID := uuid.New()
	payer := new(mockPayer)
	payer.On("PayJob", mock.Anything, client, jobID).Return(&models.Settlement{JobID: jobID, Amount: decimal.NewFromInt(40)}, nil)

	r := newRouter(client)
	r.POST("/jobs/:job_id/pay", NewJobHandler(nil, payer).Pay)

	w := perform(r, http.MethodPost, "/jobs/"+jobID.String()+"/pay", "")

	require.Equal(t, http.StatusOK, w.Code)
	var got models.Settlement
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, jobID, got.JobID)
	assert.True(t, decimal.NewFromInt(40).Equal(got.Amount))
}

func TestJobHandler_Pay_MapsServiceErrors(t *testing.T) {
	cases := map[error]int{
		apperror.ErrJobNotPayable:     http.StatusNotFound,
		apperror.ErrInsufficientFunds: http.StatusBadRequest,
		apperror.Wrap(errors.New("deadlock"), apperror.ErrCodeSettlementFailed, "retry"): http.StatusInternalServerError,
	}

	for svcErr, status := range cases {
		client := &models.Profile{ID: uuid.New(), Type: models.ProfileTypeClient}
		payer := new(mockPayer)
		payer.On("PayJob", mock.Anything, client, mock.Anything).Return(nil, svcErr)

		r := newRouter(client)
		r.POST("/jobs/:job_id/pay", NewJobHandler(nil, payer).Pay)

		w := perform(r, http.MethodPost, "/jobs/"+uuid.NewString()+"/pay", "")
		assert.Equal(t, status, w.Code, svcErr.Error())
		assert.Equal(t, apperror.CodeOf(svcErr), errorCode(t, w))
	}
}

func TestBalanceHandler_Deposit(t *testing.T) {
	client := &models.Profile{ID: uuid.New(), Type: models.ProfileTypeClient}
	depositor := new(mockDepositor)
	amount := decimal.RequireFromString("20.5")
	depositor.On("Deposit", mock.Anything, client, client.ID, mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(amount)
	})).Return(&models.DepositReceipt{ProfileID: client.ID, Amount: amount, Balance: decimal.RequireFromString("30.5")}, nil)

	r := newRouter(client)
	r.POST("/balances/deposit/:userId", NewBalanceHandler(depositor).Deposit)

	w := perform(r, http.MethodPost, "/balances/deposit/"+client.ID.String(), `{"amount": 20.5}`)

	require.Equal(t, http.StatusOK, w.Code)
	depositor.AssertExpectations(t)
}

func TestBalanceHandler_Deposit_BadBody(t *testing.T) {
	client := &models.Profile{ID: uuid.New(), Type: models.ProfileTypeClient}
	depositor := new(mockDepositor)

	r := newRouter(client)
	r.POST("/balances/deposit/:userId", NewBalanceHandler(depositor).Deposit)

	for _, body := range []string{`{}`, `{"amount": "abc"}`, `not json`} {
		w := perform(r, http.MethodPost, "/balances/deposit/"+client.ID.String(), body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
	depositor.AssertNotCalled(t, "Deposit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBalanceHandler_Deposit_CapExceeded(t *testing.T) {
	client := &models.Profile{ID: uuid.New(), Type: models.ProfileTypeClient}
	depositor := new(mockDepositor)
	depositor.On("Deposit", mock.Anything, client, client.ID, mock.Anything).Return(nil, apperror.ErrDepositCapExceeded)

	r := newRouter(client)
	r.POST("/balances/deposit/:userId", NewBalanceHandler(depositor).Deposit)

	w := perform(r, http.MethodPost, "/balances/deposit/"+client.ID.String(), `{"amount": "21"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperror.ErrCodeDepositCapExceeded, errorCode(t, w))
}

func TestAdminHandler_BestProfession(t *testing.T) {
	reports := new(mockReports)
	reports.On("BestProfession", mock.Anything, "2020-08-10", "2020-08-17").
		Return(models.ProfessionReport{Top: &models.ProfessionEarning{Profession: "Programmer", TotalEarned: decimal.NewFromInt(2683)}}, nil)

	r := newRouter(nil)
	r.GET("/admin/best-profession", NewAdminHandler(reports).BestProfession)

	w := perform(r, http.MethodGet, "/admin/best-profession?start=2020-08-10&end=2020-08-17", "")

	require.Equal(t, http.StatusOK, w.Code)
	var got models.ProfessionEarning
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Programmer", got.Profession)
}

func TestAdminHandler_NoData(t *testing.T) {
	reports := new(mockReports)
	reports.On("BestProfession", mock.Anything, mock.Anything, mock.Anything).Return(models.ProfessionReport{NoData: true}, nil)
	reports.On("BestClients", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(models.ClientsReport{NoData: true}, nil)

	r := newRouter(nil)
	h := NewAdminHandler(reports)
	r.GET("/admin/best-profession", h.BestProfession)
	r.GET("/admin/best-clients", h.BestClients)

	for _, path := range []string{"/admin/best-profession", "/admin/best-clients"} {
		w := perform(r, http.MethodGet, path+"?start=2030-01-01&end=2030-01-02", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"no paid job in range"}`, w.Body.String())
	}
}

func TestAdminHandler_IgnoresCallerProfile(t *testing.T) {
	contractor := &models.Profile{ID: uuid.New(), Type: models.ProfileTypeContractor}
	reports := new(mockReports)
	reports.On("BestProfession", mock.Anything, "2020-08-10", "2020-08-17").
		Return(models.ProfessionReport{Top: &models.ProfessionEarning{Profession: "Programmer", TotalEarned: decimal.NewFromInt(1)}}, nil)

	r := newRouter(contractor)
	r.GET("/admin/best-profession", NewAdminHandler(reports).BestProfession)

	w := perform(r, http.MethodGet, "/admin/best-profession?start=2020-08-10&end=2020-08-17", "")
	assert.Equal(t, http.StatusOK, w.Code)
	reports.AssertExpectations(t)
}

func TestCaller_Capabilities(t *testing.T) {
	caller := &models.Profile{ID: uuid.New(), Type: models.ProfileTypeClient}

	type result struct {
		profile *models.Profile
		err     error
	}
	var got []result
	capture := func(capability policy.Capability) gin.HandlerFunc {
		return func(c *gin.Context) {
			p, err := common.Caller(c, capability)
			got = append(got, result{p, err})
			c.Status(http.StatusNoContent)
		}
	}

	anon := newRouter(nil)
	anon.GET("/anonymous", capture(policy.Anonymous))
	anon.GET("/authenticated", capture(policy.Authenticated))
	perform(anon, http.MethodGet, "/anonymous", "")
	perform(anon, http.MethodGet, "/authenticated", "")

	signed := newRouter(caller)
	signed.GET("/anonymous", capture(policy.Anonymous))
	perform(signed, http.MethodGet, "/anonymous", "")

	require.Len(t, got, 3)
	assert.Nil(t, got[0].profile)
	assert.NoError(t, got[0].err)
	assert.True(t, apperror.Is(got[1].err, apperror.ErrCodeUnauthorized))
	assert.Equal(t, caller, got[2].profile)
	assert.NoError(t, got[2].err)
}

func TestBindQuery_MalformedValue(t *testing.T) {
	var query struct {
		Page int `form:"page"`
	}

	r := newRouter(nil)
	r.GET("/items", func(c *gin.Context) {
		if err := common.BindQuery(c, &query); err != nil {
			common.Fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	w := perform(r, http.MethodGet, "/items?page=two", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperror.ErrCodeInvalidParameter, errorCode(t, w))

	w = perform(r, http.MethodGet, "/items?page=2", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 2, query.Page)
}

func TestAdminHandler_BestClients_Limit(t *testing.T) {
	reports := new(mockReports)
	reports.On("BestClients", mock.Anything, "2020-08-10", "2020-08-17", mock.MatchedBy(func(l *int) bool {
		return l != nil && *l == 3
	})).Return(models.ClientsReport{Rows: []models.ClientPayment{{FullName: "Ash Kethcum", Paid: decimal.NewFromInt(2020)}}}, nil)

	r := newRouter(nil)
	r.GET("/admin/best-clients", NewAdminHandler(reports).BestClients)

	w := perform(r, http.MethodGet, "/admin/best-clients?start=2020-08-10&end=2020-08-17&limit=3", "")
	require.Equal(t, http.StatusOK, w.Code)

	var rows []models.ClientPayment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Ash Kethcum", rows[0].FullName)

	w = perform(r, http.MethodGet, "/admin/best-clients?start=2020-08-10&end=2020-08-17&limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperror.ErrCodeInvalidParameter, errorCode(t, w))
}

func TestContractHandler_Unauthorized(t *testing.T) {
	r := newRouter(nil)
	handler := &ContractHandler{contracts: nil}
	r.GET("/contracts", handler.ListContracts)
	r.GET("/contracts/:id", handler.GetContract)

	assert.Equal(t, http.StatusUnauthorized, perform(r, http.MethodGet, "/contracts", "").Code)
	assert.Equal(t, http.StatusUnauthorized, perform(r, http.MethodGet, "/contracts/"+uuid.NewString(), "").Code)
}

func TestSeedHandler_Seed(t *testing.T) {
	seeder := new(mockSeeder)
	seeder.On("Seed", mock.Anything).Return(repository.SeedData{
		Profiles:  []models.Profile{{ID: uuid.New()}},
		Contracts: make([]models.Contract, 9),
		Jobs:      make([]models.Job, 14),
	}, nil)

	r := newRouter(nil)
	r.POST("/seed", NewSeedHandler(seeder).Seed)

	w := perform(r, http.MethodPost, "/seed", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"jobs":14`)
}
