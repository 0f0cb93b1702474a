package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appintegration "github.com/catalogsync/backend/internal/application/integration"
	"github.com/catalogsync/backend/internal/domain/integration"
	"github.com/catalogsync/backend/internal/infrastructure/logger"
	"github.com/catalogsync/backend/internal/interfaces/http/dto"
	"github.com/catalogsync/backend/internal/interfaces/http/middleware"
	"github.com/catalogsync/backend/internal/interfaces/http/router"
)

// CatalogSyncService is the application surface used by CatalogSyncHandler
type CatalogSyncService interface {
	ListVisibleProducts(ctx context.Context, storeID int64) ([]integration.SourceProduct, error)
	SyncAll(ctx context.Context, storeID int64) (integration.SyncBatchResult, error)
	Dispatch(ctx context.Context, product integration.MarketplaceProduct) integration.DispatchOutcome
	CredentialStatus() integration.CredentialStatus
}

// CatalogSyncHandler exposes the store to marketplace sync over HTTP
type CatalogSyncHandler struct {
	BaseHandler
	service CatalogSyncService
}

// NewCatalogSyncHandler creates a new CatalogSyncHandler
func NewCatalogSyncHandler(service CatalogSyncService) *CatalogSyncHandler {
	return &CatalogSyncHandler{service: service}
}

// CatalogSyncRoutes creates the route group for the sync endpoints. Paths
// are relative to the router base path.
func CatalogSyncRoutes(h *CatalogSyncHandler) *router.DomainGroup {
	group := router.NewDomainGroup("catalog_sync", "")

	group.GET("/products/:storeId", h.GetProducts)
	group.POST("/sync/:storeId", h.Sync)
	group.POST("/test", h.TestIntegration)
	group.GET("/config/status", h.ConfigStatus)

	return group
}

// ProductsResponse lists the visible products of a store
// @Description Visible products of a store in the store platform shape
type ProductsResponse struct {
	Success  bool                        `json:"success" example:"true"`
	Total    int                         `json:"total" example:"2"`
	Products []integration.SourceProduct `json:"products"`
}

// SyncItemResponse is the outcome of one product
// @Description Outcome of one product within a sync run
type SyncItemResponse struct {
	ProductID string `json:"product_id" example:"123456"`
	Product   string `json:"product" example:"Camiseta Azul"`
	Success   bool   `json:"success" example:"true"`
	Error     string `json:"error,omitempty"`
}

// SyncResponse summarises a sync run
// @Description Summary of a sync run
type SyncResponse struct {
	Message   string             `json:"message" example:"Sincronização concluída: 2 produtos enviados com sucesso, 0 falharam"`
	RunID     string             `json:"run_id" example:"5f0c6d4e-8c1e-4a57-9d0e-3f2b1a7c9e11"`
	Status    string             `json:"status" example:"SUCCESS"`
	Fetched   int                `json:"fetched" example:"2"`
	Total     int                `json:"total" example:"2"`
	Success   int                `json:"success" example:"2"`
	Failed    int                `json:"failed" example:"0"`
	Cancelled bool               `json:"cancelled" example:"false"`
	Results   []SyncItemResponse `json:"results"`
}

// IntegrationTestResponse reports the sample product dispatch
// @Description Result of dispatching the sample product
type IntegrationTestResponse struct {
	Success bool            `json:"success" example:"true"`
	Message string          `json:"message" example:"Teste de integração realizado com sucesso!"`
	Data    json.RawMessage `json:"data,omitempty" swaggertype:"object"`
	Error   string          `json:"error,omitempty"`
}

// ConfigurationStatus tells which marketplace credentials are set
// @Description Presence of each marketplace credential
type ConfigurationStatus struct {
	HasAccessToken  bool `json:"hasAccessToken"`
	HasClientKey    bool `json:"hasClientKey"`
	HasClientSecret bool `json:"hasClientSecret"`
	HasPartnerID    bool `json:"hasPartnerId"`
	IsConfigured    bool `json:"isConfigured"`
}

// ConfigStatusResponse reports the marketplace configuration
// @Description Marketplace configuration status
type ConfigStatusResponse struct {
	Success       bool                `json:"success" example:"true"`
	Configuration ConfigurationStatus `json:"configuration"`
	Message       string              `json:"message" example:"Configuração do TikTok está completa"`
}

// GetProducts godoc
// @ID           listStoreProducts
// @Summary      List visible store products
// @Description  Returns the products of a store that are published and marked free shipping, without sending them
// @Tags         catalog-sync
// @Produce      json
// @Param        storeId path int true "Store ID" minimum(1)
// @Success      200 {object} ProductsResponse
// @Failure      400 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /products/{storeId} [get]
func (h *CatalogSyncHandler) GetProducts(c *gin.Context) {
	var req dto.StoreIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	products, err := h.service.ListVisibleProducts(c.Request.Context(), req.StoreID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ProductsResponse{
		Success:  true,
		Total:    len(products),
		Products: products,
	})
}

// Sync godoc
// @ID           syncStoreProducts
// @Summary      Sync store products to TikTok Shop
// @Description  Fetches the visible products of a store and sends each one to TikTok Shop. Per product failures are reported in results and do not fail the request.
// @Tags         catalog-sync
// @Produce      json
// @Param        storeId path int true "Store ID" minimum(1)
// @Param        Accept-Language header string false "Response language (pt-BR or en)"
// @Success      200 {object} SyncResponse
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /sync/{storeId} [post]
func (h *CatalogSyncHandler) Sync(c *gin.Context) {
	var req dto.StoreIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.service.SyncAll(c.Request.Context(), req.StoreID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	logger.GetGinLogger(c).Debug("Sync request completed",
		zap.String("run_id", result.RunID),
		zap.String("status", result.Status().String()),
	)

	c.JSON(http.StatusOK, newSyncResponse(c, result))
}

func newSyncResponse(c *gin.Context, result integration.SyncBatchResult) SyncResponse {
	p := printerFor(c)

	var message string
	if result.Cancelled {
		message = p.Sprintf(msgSyncCancelled, result.Total, result.Fetched, result.SuccessCount, result.FailedCount)
	} else {
		message = p.Sprintf(msgSyncFinished, result.SuccessCount, result.FailedCount)
	}

	items := make([]SyncItemResponse, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, SyncItemResponse{
			ProductID: item.ProductID.String(),
			Product:   item.ProductTitle,
			Success:   item.Outcome == integration.OutcomeSuccess,
			Error:     item.ErrorMessage,
		})
	}

	return SyncResponse{
		Message:   message,
		RunID:     result.RunID,
		Status:    result.Status().String(),
		Fetched:   result.Fetched,
		Total:     result.Total,
		Success:   result.SuccessCount,
		Failed:    result.FailedCount,
		Cancelled: result.Cancelled,
		Results:   items,
	}
}

// TestIntegration godoc
// @ID           testMarketplaceIntegration
// @Summary      Test the TikTok Shop integration
// @Description  Sends a fixed sample product to TikTok Shop and reports whether it was accepted
// @Tags         catalog-sync
// @Produce      json
// @Param        Accept-Language header string false "Response language (pt-BR or en)"
// @Success      200 {object} IntegrationTestResponse
// @Router       /test [post]
func (h *CatalogSyncHandler) TestIntegration(c *gin.Context) {
	outcome := h.service.Dispatch(c.Request.Context(), appintegration.SampleProduct())
	p := printerFor(c)

	if !outcome.IsSuccess() {
		logger.GetGinLogger(c).Warn("Integration test failed", zap.String("error", outcome.ErrorMessage))
		c.JSON(http.StatusOK, IntegrationTestResponse{
			Success: false,
			Message: p.Sprintf(msgTestFailed),
			Error:   outcome.ErrorMessage,
		})
		return
	}

	c.JSON(http.StatusOK, IntegrationTestResponse{
		Success: true,
		Message: p.Sprintf(msgTestSucceeded),
		Data:    outcome.Payload,
	})
}

// ConfigStatus godoc
// @ID           getMarketplaceConfigStatus
// @Summary      Check the TikTok Shop configuration
// @Description  Reports which TikTok Shop credentials are set. Credential values are never returned.
// @Tags         catalog-sync
// @Produce      json
// @Param        Accept-Language header string false "Response language (pt-BR or en)"
// @Success      200 {object} ConfigStatusResponse
// @Router       /config/status [get]
func (h *CatalogSyncHandler) ConfigStatus(c *gin.Context) {
	status := h.service.CredentialStatus()
	p := printerFor(c)

	message := p.Sprintf(msgConfigIncomplete)
	if status.IsConfigured() {
		message = p.Sprintf(msgConfigComplete)
	}

	c.JSON(http.StatusOK, ConfigStatusResponse{
		Success: true,
		Configuration: ConfigurationStatus{
			HasAccessToken:  status.HasAccessToken,
			HasClientKey:    status.HasClientKey,
			HasClientSecret: status.HasClientSecret,
			HasPartnerID:    status.HasPartnerID,
			IsConfigured:    status.IsConfigured(),
		},
		Message: message,
	})
}
