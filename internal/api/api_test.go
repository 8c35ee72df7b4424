package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"ofertare-gateway/internal/apiclient"
	"ofertare-gateway/internal/config"
	"ofertare-gateway/internal/domain/offer"
	"ofertare-gateway/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticTokens struct{}

func (staticTokens) Token(context.Context) (session.Token, error) {
	return session.Token{AccessToken: "valid"}, nil
}
func (staticTokens) SetToken(context.Context, session.Token) error { return nil }
func (staticTokens) Invalidate(context.Context) error              { return nil }

var testRoutes = config.APIRoutes{
	Login:    "/api/auth",
	Refresh:  "/api/token/refresh",
	Identity: "/api/me",
	Clients:  "/api/clients",
	Offers:   "/api/offers",
	Products: "/api/products",
}

func testClient(t *testing.T, handler http.Handler) *apiclient.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	base, err := url.Parse(srv.URL)
	require.NoError(t, err)
	refresher := apiclient.NewRefresher(base, testRoutes.Refresh, srv.Client(), zap.NewNop())
	return apiclient.New(base, staticTokens{}, refresher, zap.NewNop()).WithHTTPClient(srv.Client())
}

func TestOffersList(t *testing.T) {
	var gotQuery url.Values
	cli := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/offers", r.URL.Path)
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"member":[{"@id":"/api/offers/7","status":"draft","products":[]}],"totalItems":1}`))
	}))

	col, err := NewOffers(cli, testRoutes).List(context.Background(), ListParams{
		Page: 2, ItemsPerPage: 25, Search: "acme", SortBy: "status",
	})
	require.NoError(t, err)

	assert.Equal(t, "2", gotQuery.Get("page"))
	assert.Equal(t, "25", gotQuery.Get("itemsPerPage"))
	assert.Equal(t, "acme", gotQuery.Get("search"))
	assert.Equal(t, "status", gotQuery.Get("sort_by"))

	require.Len(t, col.Member, 1)
	assert.Equal(t, "7", col.Member[0].ID())
	assert.Equal(t, 1, col.TotalItems)
}

func TestOffersListDefaults(t *testing.T) {
	var gotQuery url.Values
	cli := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"member":[],"totalItems":0}`))
	}))

	_, err := NewOffers(cli, testRoutes).List(context.Background(), ListParams{})
	require.NoError(t, err)

	assert.Equal(t, "1", gotQuery.Get("page"))
	assert.Equal(t, "10", gotQuery.Get("itemsPerPage"))
	assert.False(t, gotQuery.Has("search"))
	assert.False(t, gotQuery.Has("sort_by"))
}

func TestOffersCreateSendsLDJSON(t *testing.T) {
	var gotBody string
	cli := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/ld+json", r.Header.Get("Content-Type"))
		gotBody = readBody(t, r)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"@id":"/api/offers/8","status":"draft","products":[]}`))
	}))

	created, err := NewOffers(cli, testRoutes).Create(context.Background(), offer.CreateRequest{
		Client:   "/api/clients/4",
		Status:   offer.StatusDraft,
		Products: []offer.ProductSelection{{Options: map[string]interface{}{"quantity": 2}}},
	})
	require.NoError(t, err)
	assert.Equal(t, "8", created.ID())
	assert.Contains(t, gotBody, `"/api/clients/4"`)
	assert.Contains(t, gotBody, `"quantity":2`)
}

func TestOffersUpdateSendsMergePatch(t *testing.T) {
	cli := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/api/offers/8", r.URL.Path)
		assert.Equal(t, "application/merge-patch+json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"@id":"/api/offers/8","status":"generated","products":[]}`))
	}))

	updated, err := NewOffers(cli, testRoutes).Update(context.Background(), "8", []byte(`{"status":"generated"}`))
	require.NoError(t, err)
	assert.Equal(t, "generated", string(updated.Status))
}

func TestOffersExport(t *testing.T) {
	pdf := []byte("%PDF-1.4 fake")
	cli := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/offers/export", r.URL.Path)
		assert.Contains(t, readBody(t, r), `"/api/offers/9"`)
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(pdf)
	}))

	got, err := NewOffers(cli, testRoutes).Export(context.Background(), "9")
	require.NoError(t, err)
	assert.Equal(t, pdf, got)
}

func TestClientsListIsScopedToUser(t *testing.T) {
	cli := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/users/u1/clients", r.URL.Path)
		w.Write([]byte(`{"member":[{"firstName":"Ana","lastName":"Pop","email":"ana@example.com","phone":"07"}],"totalItems":1}`))
	}))

	col, err := NewClients(cli, testRoutes).List(context.Background(), "u1", ListParams{})
	require.NoError(t, err)
	require.Len(t, col.Member, 1)
	assert.Equal(t, "Ana Pop", col.Member[0].FullName())
}

func TestClientsListRequiresUserID(t *testing.T) {
	cli := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))

	_, err := NewClients(cli, testRoutes).List(context.Background(), "", ListParams{})
	assert.Error(t, err)
}

func TestProductsDelete(t *testing.T) {
	var gotPath string
	cli := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, NewProducts(cli, testRoutes).Delete(context.Background(), "3"))
	assert.Equal(t, "/api/products/3", gotPath)
}

func readBody(t *testing.T, r *http.Request) string {
	t.Helper()
	data, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	return string(data)
}
