package rest_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-portfolio/internal/api/rest"
	"github.com/feral-file/ff-portfolio/internal/api/shared/dto"
	apierrors "github.com/feral-file/ff-portfolio/internal/api/shared/errors"
	"github.com/feral-file/ff-portfolio/internal/domain"
	"github.com/feral-file/ff-portfolio/internal/mocks"
	"github.com/feral-file/ff-portfolio/internal/portfolio"
	"github.com/feral-file/ff-portfolio/internal/store"
)

const testAddress = "0x742d35Cc6634C0532925a3b844Bc454e4438f44e"

func setupRouter(t *testing.T) (*gin.Engine, *mocks.MockAPIExecutor) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	exec := mocks.NewMockAPIExecutor(ctrl)
	router := gin.New()
	rest.SetupRoutes(router, rest.NewHandler(exec))
	return router, exec
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestSetupRoutes(t *testing.T) {
	tests := []struct {
		path   string
		expect func(h *mocks.MockAPIHandler) *gomock.Call
	}{
		{"/", func(h *mocks.MockAPIHandler) *gomock.Call { return h.EXPECT().Index(gomock.Any()) }},
		{"/health", func(h *mocks.MockAPIHandler) *gomock.Call { return h.EXPECT().HealthCheck(gomock.Any()) }},
		{"/ingest", func(h *mocks.MockAPIHandler) *gomock.Call { return h.EXPECT().Ingest(gomock.Any()) }},
		{"/api/v1/ingest", func(h *mocks.MockAPIHandler) *gomock.Call { return h.EXPECT().Ingest(gomock.Any()) }},
		{"/portfolio", func(h *mocks.MockAPIHandler) *gomock.Call { return h.EXPECT().GetPortfolio(gomock.Any()) }},
		{"/api/v1/portfolio", func(h *mocks.MockAPIHandler) *gomock.Call { return h.EXPECT().GetPortfolio(gomock.Any()) }},
		{"/stats", func(h *mocks.MockAPIHandler) *gomock.Call { return h.EXPECT().GetStats(gomock.Any()) }},
		{"/api/v1/stats", func(h *mocks.MockAPIHandler) *gomock.Call { return h.EXPECT().GetStats(gomock.Any()) }},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			handler := mocks.NewMockAPIHandler(ctrl)
			tt.expect(handler).Do(func(c *gin.Context) {
				c.Status(http.StatusNoContent)
			}).Times(1)

			router := gin.New()
			rest.SetupRoutes(router, handler)

			w := get(router, tt.path)
			assert.Equal(t, http.StatusNoContent, w.Code)
		})
	}

	t.Run("unknown route", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		router := gin.New()
		rest.SetupRoutes(router, mocks.NewMockAPIHandler(ctrl))

		w := get(router, "/api/v1/health")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestIndex(t *testing.T) {
	router, _ := setupRouter(t)

	w := get(router, "/")
	require.Equal(t, http.StatusOK, w.Code)

	var body dto.IndexResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.OK)
	assert.Equal(t, "/stats", body.Endpoints["stats"])
	assert.Equal(t, "/ingest?address=0x...", body.Endpoints["ingest"])
}

func TestHealthCheck(t *testing.T) {
	router, _ := setupRouter(t)

	w := get(router, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","service":"ff-portfolio"}`, w.Body.String())
}

func TestIngest(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		setup      func(exec *mocks.MockAPIExecutor)
		wantStatus int
		wantBody   string
	}{
		{
			name: "queued",
			path: "/ingest?address=" + testAddress + "&limit=10",
			setup: func(exec *mocks.MockAPIExecutor) {
				exec.EXPECT().Ingest(gomock.Any(), testAddress, 10).Return(&dto.IngestResponse{
					Status:  dto.IngestStatusQueued,
					Message: dto.IngestMessage,
					Counts:  dto.IngestCounts{Balances: 3},
					JobID:   "job-1",
				}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"status":"queued","message":"Balances stored. Metadata & prices are refreshing in the background.","counts":{"balances":3},"job_id":"job-1"}`,
		},
		{
			name: "versioned route without limit",
			path: "/api/v1/ingest?address=" + testAddress,
			setup: func(exec *mocks.MockAPIExecutor) {
				exec.EXPECT().Ingest(gomock.Any(), testAddress, 0).Return(&dto.IngestResponse{
					Status:  dto.IngestStatusQueued,
					Message: dto.IngestMessage,
				}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"status":"queued","message":"Balances stored. Metadata & prices are refreshing in the background.","counts":{"balances":0}}`,
		},
		{
			name:       "non numeric limit",
			path:       "/ingest?address=" + testAddress + "&limit=abc",
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"status":"error","message":"limit must be a positive integer"}`,
		},
		{
			name:       "zero limit",
			path:       "/ingest?address=" + testAddress + "&limit=0",
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"status":"error","message":"limit must be a positive integer"}`,
		},
		{
			name: "missing address",
			path: "/ingest",
			setup: func(exec *mocks.MockAPIExecutor) {
				exec.EXPECT().Ingest(gomock.Any(), "", 0).Return(nil, apierrors.NewInvalidArgumentError("missing address"))
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"status":"error","message":"missing address"}`,
		},
		{
			name: "provider failure",
			path: "/ingest?address=" + testAddress,
			setup: func(exec *mocks.MockAPIExecutor) {
				exec.EXPECT().Ingest(gomock.Any(), testAddress, 0).Return(nil, apierrors.NewUpstreamUnavailableError("upstream unavailable"))
			},
			wantStatus: http.StatusBadGateway,
			wantBody:   `{"status":"error","message":"upstream unavailable"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, exec := setupRouter(t)
			if tt.setup != nil {
				tt.setup(exec)
			}

			w := get(router, tt.path)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestGetPortfolio(t *testing.T) {
	t.Run("holdings", func(t *testing.T) {
		router, exec := setupRouter(t)

		usd := 3.0
		exec.EXPECT().GetPortfolio(gomock.Any(), testAddress).Return(&dto.PortfolioResponse{
			Items: []portfolio.Holding{{
				NetworkID: domain.NetworkEthereum,
				Contract:  "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48",
				Symbol:    "USDC",
				Name:      "USD Coin",
				Decimals:  6,
				Amount:    1.5,
				USD:       &usd,
				State:     domain.TokenStateResolved,
			}},
		}, nil)

		w := get(router, "/portfolio?address="+testAddress)
		require.Equal(t, http.StatusOK, w.Code)

		var body map[string][]map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body["items"], 1)
		item := body["items"][0]
		assert.Equal(t, float64(1), item["networkId"])
		assert.Equal(t, 1.5, item["amount"])
		assert.Equal(t, 3.0, item["usd"])
		assert.Nil(t, item["logo"])
	})

	t.Run("missing address", func(t *testing.T) {
		router, _ := setupRouter(t)

		w := get(router, "/portfolio")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"code":"invalid_argument"`)
	})

	t.Run("store failure", func(t *testing.T) {
		router, exec := setupRouter(t)
		exec.EXPECT().GetPortfolio(gomock.Any(), testAddress).Return(nil, errors.New("connection reset"))

		w := get(router, "/api/v1/portfolio?address="+testAddress)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), `"code":"internal_error"`)
	})
}

func TestGetStats(t *testing.T) {
	router, exec := setupRouter(t)

	exec.EXPECT().GetStats(gomock.Any()).Return(&store.Stats{Networks: 2, Addresses: 1, Balances: 3, Tokens: 3, Prices: 2}, nil)
	w := get(router, "/stats")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"networks":2,"addresses":1,"balances":3,"tokens":3,"prices":2}`, w.Body.String())

	exec.EXPECT().GetStats(gomock.Any()).Return(nil, apierrors.NewDatabaseError("Failed to get stats"))
	w = get(router, "/stats")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"code":"database_error","message":"Failed to get stats"}`, w.Body.String())
}
