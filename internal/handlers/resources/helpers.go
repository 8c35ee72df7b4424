// Package resources exposes the gateway's CRUD passthrough endpoints for
// clients, offers and products, layered on the domain API clients.
package resources

import (
	"io"
	"net/http"
	"net/url"
	"strconv"

	"ofertare-gateway/internal/api"
	"ofertare-gateway/internal/apiclient"
	"ofertare-gateway/internal/config"
	"ofertare-gateway/internal/guard"
	"ofertare-gateway/internal/pkg/response"
	"ofertare-gateway/internal/pkg/xerrors"
	"ofertare-gateway/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type base struct {
	store     session.Store
	refresher *apiclient.Refresher
	cfg       config.AppConfig
	logger    *zap.Logger
}

// apiClient builds the authenticated request client for the current
// request/response pair, so refreshed cookies land on this response.
func (b *base) apiClient(c *gin.Context) *apiclient.Client {
	tokens := apiclient.NewSessionTokenSource(b.store, c.Writer, c.Request)
	return apiclient.New(b.cfg.APIBaseURL, tokens, b.refresher, b.logger)
}

// fail translates request-client errors into responses. Authentication
// failures become a redirect to login carrying the current path; backend
// errors are forwarded with their original status and body.
func (b *base) fail(c *gin.Context, err error) {
	if xerrors.Is(err, xerrors.ErrNoToken) || xerrors.Is(err, xerrors.ErrSessionExpired) {
		q := url.Values{}
		q.Set(guard.RedirectToParam, c.Request.URL.Path)
		c.Redirect(http.StatusFound, b.cfg.Gateway.Login+"?"+q.Encode())
		c.Abort()
		return
	}

	if apiErr, ok := apiclient.AsAPIError(err); ok {
		ct := apiErr.ContentType
		if ct == "" {
			ct = "application/json"
		}
		c.Data(apiErr.Status, ct, apiErr.Body)
		c.Abort()
		return
	}

	b.logger.Error("backend request failed",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	response.Error(c, http.StatusBadGateway, "backend request failed", err)
}

func listParams(c *gin.Context) api.ListParams {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	perPage, err := strconv.Atoi(c.DefaultQuery("itemsPerPage", "10"))
	if err != nil || perPage < 1 {
		perPage = 10
	}

	return api.ListParams{
		Page:         page,
		ItemsPerPage: perPage,
		Search:       c.Query("search"),
		SortBy:       c.Query("sort_by"),
	}
}

func rawBody(c *gin.Context) ([]byte, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "unreadable request body", err)
		return nil, false
	}
	return body, true
}
