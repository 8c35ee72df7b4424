package resources

import (
	"net/http"

	"ofertare-gateway/internal/api"
	"ofertare-gateway/internal/apiclient"
	"ofertare-gateway/internal/config"
	"ofertare-gateway/internal/pkg/response"
	"ofertare-gateway/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProductsHandler struct {
	base
}

func NewProductsHandler(store session.Store, refresher *apiclient.Refresher, cfg config.AppConfig, logger *zap.Logger) *ProductsHandler {
	return &ProductsHandler{base{store: store, refresher: refresher, cfg: cfg, logger: logger}}
}

func (h *ProductsHandler) products(c *gin.Context) *api.Products {
	return api.NewProducts(h.apiClient(c), h.cfg.API)
}

// List returns one page of the product catalog.
func (h *ProductsHandler) List(c *gin.Context) {
	col, err := h.products(c).List(c.Request.Context(), listParams(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "products retrieved", col)
}

// Create forwards a new product payload to the backend.
func (h *ProductsHandler) Create(c *gin.Context) {
	body, ok := rawBody(c)
	if !ok {
		return
	}

	created, err := h.products(c).Create(c.Request.Context(), body)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "product created", created)
}

// Update forwards a merge-patch for an existing product.
func (h *ProductsHandler) Update(c *gin.Context) {
	body, ok := rawBody(c)
	if !ok {
		return
	}

	updated, err := h.products(c).Update(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "product updated", updated)
}

// Delete removes a product.
func (h *ProductsHandler) Delete(c *gin.Context) {
	if err := h.products(c).Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "product deleted", nil)
}
