// Package router arma el árbol de rutas de la API sobre chi.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/telemart/internal/domain/repository"
	"github.com/dropDatabas3/telemart/internal/http/controllers"
	apperrors "github.com/dropDatabas3/telemart/internal/http/errors"
	mw "github.com/dropDatabas3/telemart/internal/http/middlewares"
	"github.com/dropDatabas3/telemart/internal/observability/metrics"
)

// Deps son las piezas ya construidas que el router conecta.
type Deps struct {
	Auth      *controllers.AuthController
	Users     *controllers.UserController
	Sellers   *controllers.SellerController
	Catalog   *controllers.CatalogController
	Cart      *controllers.CartController
	Favorites *controllers.FavoriteController
	Uploads   *controllers.UploadController
	Health    *controllers.HealthController

	// Guard valida el token de sesión e inyecta los claims.
	Guard mw.Middleware
	// OTPRate limita los endpoints de emisión/canje de códigos.
	OTPRate mw.Middleware
	// Metrics es el handler de /metrics (nil lo deshabilita).
	Metrics http.Handler

	CORSAllowedOrigins []string
	// UploadsDir se sirve estático bajo /uploads/.
	UploadsDir string
}

// New construye el router con la cadena de middlewares base y todas las rutas.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.WithRequestID())
	r.Use(mw.WithRecover())
	r.Use(metrics.WithMetrics)
	r.Use(mw.WithLogging())
	r.Use(mw.WithSecurityHeaders())
	r.Use(mw.WithCORS(deps.CORSAllowedOrigins))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		apperrors.WriteError(w, apperrors.ErrRouteNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		apperrors.WriteError(w, apperrors.ErrMethodNotAllowed)
	})

	r.Get("/healthz", deps.Health.Check)
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}
	if deps.UploadsDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(deps.UploadsDir)))
		r.Get("/uploads/*", fs.ServeHTTP)
	}

	requireAdmin := mw.RequireRole(repository.RoleAdmin)
	requireSeller := mw.RequireRole(repository.RoleOwner, repository.RoleAdmin)

	r.Route("/api", func(api chi.Router) {
		api.Route("/auth", func(auth chi.Router) {
			auth.With(deps.OTPRate).Post("/send-otp", deps.Auth.SendOTP)
			auth.With(deps.OTPRate).Post("/verify-otp", deps.Auth.VerifyOTP)
			// Logout solo exige presencia del bearer: un token vencido o
			// malformado también se revoca, no hay nada que proteger detrás.
			auth.With(mw.RequireBearer()).Post("/logout", deps.Auth.Logout)
		})

		// Lecturas públicas del catálogo.
		api.Get("/categories", deps.Catalog.ListCategories)
		api.Get("/categories/{id}", deps.Catalog.GetCategory)
		api.Get("/products", deps.Catalog.ListProducts)
		api.Get("/products/{id}", deps.Catalog.GetProduct)
		api.Get("/events", deps.Catalog.ListEvents)
		api.Get("/events/{id}", deps.Catalog.GetEvent)

		// Todo lo que sigue requiere sesión.
		api.Group(func(priv chi.Router) {
			priv.Use(deps.Guard)

			priv.Get("/users/me", deps.Users.Me)

			priv.Post("/sellers", deps.Sellers.Register)
			priv.Get("/sellers/me", deps.Sellers.Mine)

			priv.Get("/cart", deps.Cart.Get)
			priv.Delete("/cart", deps.Cart.Clear)
			priv.Post("/cart/items", deps.Cart.AddItem)
			priv.Patch("/cart/items/{productID}", deps.Cart.UpdateItem)
			priv.Delete("/cart/items/{productID}", deps.Cart.RemoveItem)

			priv.Get("/favorites", deps.Favorites.List)
			priv.Post("/favorites", deps.Favorites.Add)
			priv.Delete("/favorites/{productID}", deps.Favorites.Remove)

			// Escrituras de catálogo: sellers aprobados y admins.
			priv.Group(func(sell chi.Router) {
				sell.Use(requireSeller)

				sell.Post("/uploads", deps.Uploads.Upload)

				sell.Post("/categories", deps.Catalog.CreateCategory)
				sell.Patch("/categories/{id}", deps.Catalog.UpdateCategory)
				sell.Delete("/categories/{id}", deps.Catalog.DeleteCategory)

				sell.Post("/products", deps.Catalog.CreateProduct)
				sell.Patch("/products/{id}", deps.Catalog.UpdateProduct)
				sell.Delete("/products/{id}", deps.Catalog.DeleteProduct)

				sell.Post("/events", deps.Catalog.CreateEvent)
				sell.Patch("/events/{id}", deps.Catalog.UpdateEvent)
				sell.Delete("/events/{id}", deps.Catalog.DeleteEvent)
			})

			// Administración.
			priv.Group(func(admin chi.Router) {
				admin.Use(requireAdmin)

				admin.Get("/users", deps.Users.List)
				admin.Get("/users/{id}", deps.Users.Get)
				admin.Patch("/users/{id}", deps.Users.Update)
				admin.Delete("/users/{id}", deps.Users.Delete)

				admin.Get("/sellers", deps.Sellers.List)
				admin.Get("/sellers/{id}", deps.Sellers.Get)
				admin.Post("/sellers/{id}/approve", deps.Sellers.Approve)
				admin.Post("/sellers/{id}/reject", deps.Sellers.Reject)
			})
		})
	})

	return r
}
