// Package server arma el http.Server de la API: construye services y
// controllers a partir de las piezas de infraestructura ya inicializadas y
// los conecta al router.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/dropDatabas3/telemart/internal/approval"
	"github.com/dropDatabas3/telemart/internal/artifacts"
	"github.com/dropDatabas3/telemart/internal/auth/otp"
	"github.com/dropDatabas3/telemart/internal/auth/revocation"
	"github.com/dropDatabas3/telemart/internal/auth/token"
	"github.com/dropDatabas3/telemart/internal/config"
	"github.com/dropDatabas3/telemart/internal/http/controllers"
	mw "github.com/dropDatabas3/telemart/internal/http/middlewares"
	"github.com/dropDatabas3/telemart/internal/http/router"
	"github.com/dropDatabas3/telemart/internal/http/services"
	"github.com/dropDatabas3/telemart/internal/rate"
	"github.com/dropDatabas3/telemart/internal/store"
)

// Deps es la infraestructura que el server necesita ya construida.
type Deps struct {
	Config    *config.Config
	Store     store.Store
	Artifacts *artifacts.Store

	Codes   *otp.Store
	Tokens  *token.Issuer
	Revoked *revocation.Registry

	// Sender entrega los códigos de login; Approval resuelve solicitudes de seller.
	Sender   services.TextSender
	Approval *approval.Service

	// OTPLimiter limita send-otp/verify-otp. Nil deshabilita el límite.
	OTPLimiter rate.Limiter

	// Metrics es el handler de /metrics; nil lo deshabilita.
	Metrics http.Handler

	// Ping verifica la persistencia para /healthz; nil con el driver memory.
	Ping func(ctx context.Context) error
}

// New construye el http.Server listo para ListenAndServe.
func New(deps Deps) *http.Server {
	authSvc := services.NewAuthService(services.AuthDeps{
		Users:   deps.Store.Users(),
		Codes:   deps.Codes,
		Tokens:  deps.Tokens,
		Revoked: deps.Revoked,
		Sender:  deps.Sender,
	})
	userSvc := services.NewUserService(services.UserDeps{Users: deps.Store.Users()})
	sellerSvc := services.NewSellerService(services.SellerDeps{
		Sellers:   deps.Store.Sellers(),
		Artifacts: deps.Artifacts,
		Approval:  deps.Approval,
	})
	catalogSvc := services.NewCatalogService(services.CatalogDeps{
		Categories: deps.Store.Categories(),
		Products:   deps.Store.Products(),
		Events:     deps.Store.Events(),
		Artifacts:  deps.Artifacts,
	})
	cartSvc := services.NewCartService(services.CartDeps{
		Carts:    deps.Store.Carts(),
		Products: deps.Store.Products(),
	})
	favSvc := services.NewFavoriteService(services.FavoriteDeps{
		Favorites: deps.Store.Favorites(),
		Products:  deps.Store.Products(),
	})

	otpRate := passthrough
	if deps.OTPLimiter != nil {
		otpRate = mw.WithRateLimit(deps.OTPLimiter)
	}

	handler := router.New(router.Deps{
		Auth:      controllers.NewAuthController(authSvc),
		Users:     controllers.NewUserController(userSvc),
		Sellers:   controllers.NewSellerController(sellerSvc),
		Catalog:   controllers.NewCatalogController(catalogSvc),
		Cart:      controllers.NewCartController(cartSvc),
		Favorites: controllers.NewFavoriteController(favSvc),
		Uploads:   controllers.NewUploadController(deps.Artifacts, deps.Config.Server.PublicURL),
		Health:    controllers.NewHealthController(deps.Ping),

		Guard:   mw.RequireAuth(deps.Tokens, deps.Revoked, deps.Store.Users()),
		OTPRate: otpRate,
		Metrics: deps.Metrics,

		CORSAllowedOrigins: deps.Config.Server.CORSAllowedOrigins,
		UploadsDir:         deps.Artifacts.Dir(),
	})

	return &http.Server{
		Addr:              deps.Config.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}
}

// passthrough es el middleware identidad, para límites deshabilitados.
func passthrough(next http.Handler) http.Handler { return next }
