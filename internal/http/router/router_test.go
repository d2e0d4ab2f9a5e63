package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/telemart/internal/approval"
	"github.com/dropDatabas3/telemart/internal/artifacts"
	"github.com/dropDatabas3/telemart/internal/auth/otp"
	"github.com/dropDatabas3/telemart/internal/auth/revocation"
	"github.com/dropDatabas3/telemart/internal/auth/token"
	"github.com/dropDatabas3/telemart/internal/bot"
	"github.com/dropDatabas3/telemart/internal/cache"
	"github.com/dropDatabas3/telemart/internal/domain/repository"
	"github.com/dropDatabas3/telemart/internal/http/controllers"
	mw "github.com/dropDatabas3/telemart/internal/http/middlewares"
	"github.com/dropDatabas3/telemart/internal/http/services"
	"github.com/dropDatabas3/telemart/internal/store/memory"
)

type fixture struct {
	handler http.Handler
	store   *memory.Store
	issuer  *token.Issuer
	revoked *revocation.Registry
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := memory.New()
	cch := cache.NewMemory("test")
	t.Cleanup(func() { _ = cch.Close() })

	files, err := artifacts.NewStore(t.TempDir())
	require.NoError(t, err)

	issuer := token.NewIssuer(token.DevSecret)
	revoked := revocation.NewRegistry(cch, issuer.RemainingTTL)
	approvalSvc := approval.NewService(st.Sellers(), st.Users(), files, bot.Noop{}, -1)

	authSvc := services.NewAuthService(services.AuthDeps{
		Users:   st.Users(),
		Codes:   otp.NewStore(cch),
		Tokens:  issuer,
		Revoked: revoked,
		Sender:  bot.Noop{},
	})
	catalogSvc := services.NewCatalogService(services.CatalogDeps{
		Categories: st.Categories(),
		Products:   st.Products(),
		Events:     st.Events(),
		Artifacts:  files,
	})

	handler := New(Deps{
		Auth:    controllers.NewAuthController(authSvc),
		Users:   controllers.NewUserController(services.NewUserService(services.UserDeps{Users: st.Users()})),
		Sellers: controllers.NewSellerController(services.NewSellerService(services.SellerDeps{
			Sellers:   st.Sellers(),
			Artifacts: files,
			Approval:  approvalSvc,
		})),
		Catalog: controllers.NewCatalogController(catalogSvc),
		Cart: controllers.NewCartController(services.NewCartService(services.CartDeps{
			Carts:    st.Carts(),
			Products: st.Products(),
		})),
		Favorites: controllers.NewFavoriteController(services.NewFavoriteService(services.FavoriteDeps{
			Favorites: st.Favorites(),
			Products:  st.Products(),
		})),
		Uploads: controllers.NewUploadController(files, ""),
		Health:  controllers.NewHealthController(nil),

		Guard:   mw.RequireAuth(issuer, revoked, st.Users()),
		OTPRate: func(next http.Handler) http.Handler { return next },
	})

	return &fixture{handler: handler, store: st, issuer: issuer, revoked: revoked}
}

func (f *fixture) tokenFor(t *testing.T, role repository.Role) string {
	t.Helper()
	u, err := f.store.Users().Upsert(context.Background(), repository.UpsertUserInput{
		TelegramID: "42", FirstName: "Marta",
	})
	require.NoError(t, err)
	if role != repository.RoleUser {
		require.NoError(t, f.store.Users().UpdateRole(context.Background(), u.ID, role))
	}
	signed, err := f.issuer.Issue(u.ID, u.TelegramID, role)
	require.NoError(t, err)
	return signed
}

func (f *fixture) do(method, path, tk string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tk != "" {
		req.Header.Set("Authorization", "Bearer "+tk)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthIsPublic(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestCatalogReadsArePublic(t *testing.T) {
	f := newFixture(t)
	for _, path := range []string{"/api/categories", "/api/products", "/api/events"} {
		rec := f.do(http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestPrivateRoutesRejectAnonymous(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodGet, "/api/cart", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutWithoutTokenRejected(t *testing.T) {
	f := newFixture(t)
	tk := f.tokenFor(t, repository.RoleUser)

	rec := f.do(http.MethodPost, "/api/auth/logout", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "TOKEN_MISSING")

	// La sesión vigente sigue intacta.
	rec = f.do(http.MethodGet, "/api/cart", tk, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestLogoutRevokesWhateverIsPresented(t *testing.T) {
	f := newFixture(t)

	// Un token malformado también cierra sesión: revocarlo es inofensivo.
	rec := f.do(http.MethodPost, "/api/auth/logout", "no-es-un-jwt", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	revoked, err := f.revoked.IsRevoked(context.Background(), "no-es-un-jwt")
	require.NoError(t, err)
	require.True(t, revoked)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	f := newFixture(t)
	tk := f.tokenFor(t, repository.RoleUser)

	rec := f.do(http.MethodPost, "/api/auth/logout", tk, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodGet, "/api/cart", tk, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Repetir el logout con el token ya revocado sigue siendo 200.
	rec = f.do(http.MethodPost, "/api/auth/logout", tk, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestCatalogWritesNeedSellerRole(t *testing.T) {
	f := newFixture(t)
	tk := f.tokenFor(t, repository.RoleUser)

	rec := f.do(http.MethodPost, "/api/categories", tk, map[string]string{"name": "Bebidas"})
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestOwnerCanManageCatalog(t *testing.T) {
	f := newFixture(t)
	tk := f.tokenFor(t, repository.RoleOwner)

	rec := f.do(http.MethodPost, "/api/categories", tk, map[string]string{"name": "Bebidas"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var cat struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cat))

	rec = f.do(http.MethodPost, "/api/products", tk, map[string]any{
		"name": "Yerba 1kg", "category_id": cat.ID, "stock": 5, "price": 1500.0,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestListCategoriesFiltersByUser(t *testing.T) {
	f := newFixture(t)
	tk := f.tokenFor(t, repository.RoleOwner)

	rec := f.do(http.MethodPost, "/api/categories", tk, map[string]string{"name": "Bebidas"})
	require.Equal(t, http.StatusCreated, rec.Code)

	u, err := f.store.Users().GetByTelegramID(context.Background(), "42")
	require.NoError(t, err)

	rec = f.do(http.MethodGet, "/api/categories?user_id="+u.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mine))
	require.Len(t, mine, 1)

	rec = f.do(http.MethodGet, "/api/categories?user_id=nadie", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var otros []json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &otros))
	require.Empty(t, otros)
}

func TestAdminRoutesRejectOwner(t *testing.T) {
	f := newFixture(t)
	tk := f.tokenFor(t, repository.RoleOwner)

	rec := f.do(http.MethodGet, "/api/users", tk, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUnknownRouteReturnsJSON(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodGet, "/api/nope", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "ROUTE_NOT_FOUND")
}
