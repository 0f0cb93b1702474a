package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/catalogsync/backend/internal/domain/integration"
	"github.com/catalogsync/backend/internal/interfaces/http/dto"
	"github.com/catalogsync/backend/internal/interfaces/http/router"
)

// MockCatalogSyncService implements CatalogSyncService for testing
type MockCatalogSyncService struct {
	mock.Mock
}

func (m *MockCatalogSyncService) ListVisibleProducts(ctx context.Context, storeID int64) ([]integration.SourceProduct, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]integration.SourceProduct), args.Error(1)
}

func (m *MockCatalogSyncService) SyncAll(ctx context.Context, storeID int64) (integration.SyncBatchResult, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).(integration.SyncBatchResult), args.Error(1)
}

func (m *MockCatalogSyncService) Dispatch(ctx context.Context, product integration.MarketplaceProduct) integration.DispatchOutcome {
	args := m.Called(ctx, product)
	return args.Get(0).(integration.DispatchOutcome)
}

func (m *MockCatalogSyncService) CredentialStatus() integration.CredentialStatus {
	args := m.Called()
	return args.Get(0).(integration.CredentialStatus)
}

func setupCatalogSyncRouter(svc CatalogSyncService) *gin.Engine {
	engine := gin.New()
	r := router.NewRouter(engine)
	r.Register(CatalogSyncRoutes(NewCatalogSyncHandler(svc)))
	r.Setup()
	return engine
}

func doRequest(engine *gin.Engine, method, path, acceptLanguage string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if acceptLanguage != "" {
		req.Header.Set("Accept-Language", acceptLanguage)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func visibleProduct(id, name string) integration.SourceProduct {
	return integration.SourceProduct{
		ID:           integration.ProductID(id),
		Name:         integration.PlainText(name),
		Price:        integration.PriceOf("10.00"),
		Published:    integration.BoolFlag(true),
		FreeShipping: integration.BoolFlag(true),
	}
}

func batchResult(items ...integration.SyncItemResult) integration.SyncBatchResult {
	started := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	result := integration.NewSyncBatchResult("run-1", 42, len(items), started)
	for _, item := range items {
		result = result.Append(item)
	}
	return result.Finish(started.Add(time.Second))
}

func TestCatalogSyncHandler_GetProducts(t *testing.T) {
	t.Run("returns visible products", func(t *testing.T) {
		svc := new(MockCatalogSyncService)
		svc.On("ListVisibleProducts", mock.Anything, int64(42)).Return([]integration.SourceProduct{
			visibleProduct("1", "Camiseta"),
			visibleProduct("2", "Boné"),
		}, nil)

		w := doRequest(setupCatalogSyncRouter(svc), http.MethodGet, "/tiktok/products/42", "")

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success  bool             `json:"success"`
			Total    int              `json:"total"`
			Products []map[string]any `json:"products"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, 2, resp.Total)
		require.Len(t, resp.Products, 2)
		assert.Equal(t, "Camiseta", resp.Products[0]["name"])
		svc.AssertExpectations(t)
	})

	t.Run("fetch failure maps to bad gateway", func(t *testing.T) {
		svc := new(MockCatalogSyncService)
		svc.On("ListVisibleProducts", mock.Anything, int64(42)).Return(nil,
			&integration.FetchError{StoreID: 42, Err: integration.ErrPlatformUnavailable})

		w := doRequest(setupCatalogSyncRouter(svc), http.MethodGet, "/tiktok/products/42", "")

		assert.Equal(t, http.StatusBadGateway, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, dto.ErrCodeUpstream, resp.Error.Code)
	})

	t.Run("invalid store id is rejected before the service", func(t *testing.T) {
		for _, storeID := range []string{"0", "-3", "abc"} {
			svc := new(MockCatalogSyncService)

			w := doRequest(setupCatalogSyncRouter(svc), http.MethodGet, "/tiktok/products/"+storeID, "")

			assert.Equal(t, http.StatusBadRequest, w.Code, storeID)
			svc.AssertNotCalled(t, "ListVisibleProducts", mock.Anything, mock.Anything)
		}
	})
}

func TestCatalogSyncHandler_Sync(t *testing.T) {
	mixed := batchResult(
		integration.SyncItemResult{ProductID: "1", ProductTitle: "Camiseta", Outcome: integration.OutcomeSuccess},
		integration.SyncItemResult{ProductID: "2", ProductTitle: "Boné", Outcome: integration.OutcomeFailure, ErrorMessage: "invalid category"},
	)

	tests := []struct {
		name            string
		acceptLanguage  string
		expectedMessage string
	}{
		{
			name:            "portuguese by default",
			expectedMessage: "Sincronização concluída: 1 produtos enviados com sucesso, 1 falharam",
		},
		{
			name:            "english when requested",
			acceptLanguage:  "en-US,en;q=0.8",
			expectedMessage: "Sync finished: 1 products sent successfully, 1 failed",
		},
		{
			name:            "unsupported language falls back to portuguese",
			acceptLanguage:  "fr-FR",
			expectedMessage: "Sincronização concluída: 1 produtos enviados com sucesso, 1 falharam",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockCatalogSyncService)
			svc.On("SyncAll", mock.Anything, int64(42)).Return(mixed, nil)

			w := doRequest(setupCatalogSyncRouter(svc), http.MethodPost, "/tiktok/sync/42", tt.acceptLanguage)

			assert.Equal(t, http.StatusOK, w.Code)

			var resp SyncResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedMessage, resp.Message)
			assert.Equal(t, "run-1", resp.RunID)
			assert.Equal(t, "PARTIAL", resp.Status)
			assert.Equal(t, 2, resp.Total)
			assert.Equal(t, 1, resp.Success)
			assert.Equal(t, 1, resp.Failed)
			assert.False(t, resp.Cancelled)
			require.Len(t, resp.Results, 2)
			assert.Equal(t, SyncItemResponse{ProductID: "1", Product: "Camiseta", Success: true}, resp.Results[0])
			assert.Equal(t, SyncItemResponse{ProductID: "2", Product: "Boné", Error: "invalid category"}, resp.Results[1])
		})
	}
}

func TestCatalogSyncHandler_SyncEmptyStore(t *testing.T) {
	svc := new(MockCatalogSyncService)
	svc.On("SyncAll", mock.Anything, int64(7)).Return(batchResult(), nil)

	w := doRequest(setupCatalogSyncRouter(svc), http.MethodPost, "/tiktok/sync/7", "")

	assert.Equal(t, http.StatusOK, w.Code)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.Equal(t, "Sincronização concluída: 0 produtos enviados com sucesso, 0 falharam", raw["message"])
	assert.Equal(t, float64(0), raw["total"])
	assert.Equal(t, []any{}, raw["results"])
}

func TestCatalogSyncHandler_SyncCancelled(t *testing.T) {
	started := time.Now()
	result := integration.NewSyncBatchResult("run-2", 42, 3, started).
		Append(integration.SyncItemResult{ProductID: "1", ProductTitle: "A", Outcome: integration.OutcomeSuccess}).
		Cancel(started.Add(time.Second))

	svc := new(MockCatalogSyncService)
	svc.On("SyncAll", mock.Anything, int64(42)).Return(result, nil)

	w := doRequest(setupCatalogSyncRouter(svc), http.MethodPost, "/tiktok/sync/42", "en")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp SyncResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Cancelled)
	assert.Equal(t, "CANCELLED", resp.Status)
	assert.Equal(t, 3, resp.Fetched)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, "Sync cancelled: 1 of 3 products processed, 1 sent successfully, 0 failed", resp.Message)
}

func TestCatalogSyncHandler_SyncErrors(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "fetch failure",
			err:            &integration.SyncError{StoreID: 42, Err: &integration.FetchError{StoreID: 42, Err: integration.ErrPlatformRequestFailed}},
			expectedStatus: http.StatusBadGateway,
			expectedCode:   dto.ErrCodeUpstream,
		},
		{
			name:           "run already in progress",
			err:            &integration.SyncError{StoreID: 42, Err: integration.ErrSyncInProgress},
			expectedStatus: http.StatusConflict,
			expectedCode:   dto.ErrCodeConflict,
		},
		{
			name:           "unexpected failure",
			err:            assert.AnError,
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   dto.ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockCatalogSyncService)
			svc.On("SyncAll", mock.Anything, int64(42)).Return(integration.SyncBatchResult{}, tt.err)

			w := doRequest(setupCatalogSyncRouter(svc), http.MethodPost, "/tiktok/sync/42", "")

			assert.Equal(t, tt.expectedStatus, w.Code)

			var resp dto.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tt.expectedCode, resp.Error.Code)
		})
	}
}

func TestCatalogSyncHandler_SyncInvalidStoreID(t *testing.T) {
	svc := new(MockCatalogSyncService)

	w := doRequest(setupCatalogSyncRouter(svc), http.MethodPost, "/tiktok/sync/0", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	svc.AssertNotCalled(t, "SyncAll", mock.Anything, mock.Anything)
}

func TestCatalogSyncHandler_TestIntegration(t *testing.T) {
	isSample := mock.MatchedBy(func(p integration.MarketplaceProduct) bool {
		return p.Title == "Produto Teste - Nuvem Shop para TikTok" && p.Price == 99.99 && p.Inventory == 10
	})

	t.Run("success returns the marketplace payload", func(t *testing.T) {
		svc := new(MockCatalogSyncService)
		svc.On("Dispatch", mock.Anything, isSample).
			Return(integration.SuccessOutcome(json.RawMessage(`{"code":0,"data":{"product_id":"987"}}`)))

		w := doRequest(setupCatalogSyncRouter(svc), http.MethodPost, "/tiktok/test", "")

		assert.Equal(t, http.StatusOK, w.Code)

		var resp IntegrationTestResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "Teste de integração realizado com sucesso!", resp.Message)
		assert.JSONEq(t, `{"code":0,"data":{"product_id":"987"}}`, string(resp.Data))
		assert.Empty(t, resp.Error)
		svc.AssertExpectations(t)
	})

	t.Run("failure is reported with status 200", func(t *testing.T) {
		svc := new(MockCatalogSyncService)
		svc.On("Dispatch", mock.Anything, isSample).
			Return(integration.FailureOutcome(integration.ErrAccessTokenNotConfigured.Error()))

		w := doRequest(setupCatalogSyncRouter(svc), http.MethodPost, "/tiktok/test", "en")

		assert.Equal(t, http.StatusOK, w.Code)

		var resp IntegrationTestResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, "Integration test failed", resp.Message)
		assert.Equal(t, integration.ErrAccessTokenNotConfigured.Error(), resp.Error)
		assert.Empty(t, resp.Data)
	})
}

func TestCatalogSyncHandler_ConfigStatus(t *testing.T) {
	tests := []struct {
		name            string
		status          integration.CredentialStatus
		expectedConfig  ConfigurationStatus
		expectedMessage string
	}{
		{
			name: "complete",
			status: integration.CredentialStatus{
				HasAccessToken: true, HasClientKey: true, HasClientSecret: true, HasPartnerID: true,
			},
			expectedConfig: ConfigurationStatus{
				HasAccessToken: true, HasClientKey: true, HasClientSecret: true, HasPartnerID: true, IsConfigured: true,
			},
			expectedMessage: "Configuração do TikTok está completa",
		},
		{
			name:            "partial",
			status:          integration.CredentialStatus{HasAccessToken: true, HasClientKey: true},
			expectedConfig:  ConfigurationStatus{HasAccessToken: true, HasClientKey: true},
			expectedMessage: "Configuração do TikTok está incompleta. Verifique as variáveis: TIKTOK_ACCESS_TOKEN, TIKTOK_CLIENT_KEY, TIKTOK_CLIENT_SECRET, TIKTOK_PARTNER_ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockCatalogSyncService)
			svc.On("CredentialStatus").Return(tt.status)

			w := doRequest(setupCatalogSyncRouter(svc), http.MethodGet, "/tiktok/config/status", "")

			assert.Equal(t, http.StatusOK, w.Code)

			var resp ConfigStatusResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.True(t, resp.Success)
			assert.Equal(t, tt.expectedConfig, resp.Configuration)
			assert.Equal(t, tt.expectedMessage, resp.Message)
			assert.NotContains(t, w.Body.String(), "secret-value")
		})
	}
}
