package resources

import (
	"net/http"

	"ofertare-gateway/internal/api"
	"ofertare-gateway/internal/apiclient"
	"ofertare-gateway/internal/config"
	"ofertare-gateway/internal/domain/offer"
	"ofertare-gateway/internal/pkg/response"
	"ofertare-gateway/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OffersHandler struct {
	base
}

func NewOffersHandler(store session.Store, refresher *apiclient.Refresher, cfg config.AppConfig, logger *zap.Logger) *OffersHandler {
	return &OffersHandler{base{store: store, refresher: refresher, cfg: cfg, logger: logger}}
}

func (h *OffersHandler) offers(c *gin.Context) *api.Offers {
	return api.NewOffers(h.apiClient(c), h.cfg.API)
}

// List returns one page of offers.
func (h *OffersHandler) List(c *gin.Context) {
	col, err := h.offers(c).List(c.Request.Context(), listParams(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "offers retrieved", col)
}

// Get returns one offer.
func (h *OffersHandler) Get(c *gin.Context) {
	o, err := h.offers(c).Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "offer retrieved", o)
}

// Create forwards a new offer payload to the backend.
func (h *OffersHandler) Create(c *gin.Context) {
	var req offer.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid offer payload", err)
		return
	}

	created, err := h.offers(c).Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "offer created", created)
}

// Update forwards a merge-patch for an existing offer.
func (h *OffersHandler) Update(c *gin.Context) {
	body, ok := rawBody(c)
	if !ok {
		return
	}

	updated, err := h.offers(c).Update(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "offer updated", updated)
}

// Delete removes an offer.
func (h *OffersHandler) Delete(c *gin.Context) {
	if err := h.offers(c).Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "offer deleted", nil)
}

// Export streams the backend-rendered PDF for an offer as a download.
func (h *OffersHandler) Export(c *gin.Context) {
	pdf, err := h.offers(c).Export(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="document.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
