package resources

import (
	"net/http"

	"ofertare-gateway/internal/api"
	"ofertare-gateway/internal/apiclient"
	"ofertare-gateway/internal/config"
	"ofertare-gateway/internal/guard"
	"ofertare-gateway/internal/pkg/response"
	"ofertare-gateway/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ClientsHandler struct {
	base
}

func NewClientsHandler(store session.Store, refresher *apiclient.Refresher, cfg config.AppConfig, logger *zap.Logger) *ClientsHandler {
	return &ClientsHandler{base{store: store, refresher: refresher, cfg: cfg, logger: logger}}
}

func (h *ClientsHandler) clients(c *gin.Context) *api.Clients {
	return api.NewClients(h.apiClient(c), h.cfg.API)
}

// List returns one page of the logged-in user's clients.
func (h *ClientsHandler) List(c *gin.Context) {
	state := guard.SessionFromContext(c)
	if state.Profile == nil {
		response.Unauthorized(c, "not fully authenticated")
		return
	}

	col, err := h.clients(c).List(c.Request.Context(), state.Profile.UserID, listParams(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "clients retrieved", col)
}

// Create forwards a new client payload to the backend.
func (h *ClientsHandler) Create(c *gin.Context) {
	body, ok := rawBody(c)
	if !ok {
		return
	}

	created, err := h.clients(c).Create(c.Request.Context(), body)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "client created", created)
}

// Update forwards a merge-patch for an existing client.
func (h *ClientsHandler) Update(c *gin.Context) {
	body, ok := rawBody(c)
	if !ok {
		return
	}

	updated, err := h.clients(c).Update(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "client updated", updated)
}

// Delete removes a client.
func (h *ClientsHandler) Delete(c *gin.Context) {
	if err := h.clients(c).Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "client deleted", nil)
}
