package http

import (
	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jimlawless/whereami"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
	cfg    *cfg.HTTPConfig
}

func NewRouter(router *chi.Mux, logger logger.Logger, cfg *cfg.HTTPConfig) *Router {
	return &Router{router: router, logger: logger, cfg: cfg}
}

func (r *Router) Init(catalogUC usecase.CatalogUC, cartUC usecase.CartUC, checkoutUC usecase.CheckoutUC) error {
	tmpl, err := newTemplates()
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	r.router.Use(
		middleware.RequestID,
		middleware.RealIP,
		requestLogger(r.logger),
		middleware.Recoverer,
	)

	pages := NewPageHandler(catalogUC, cartUC, checkoutUC, tmpl, r.logger)
	r.router.Get("/healthz", pages.healthz)

	r.router.Group(func(storefront chi.Router) {
		storefront.Use(visitorMiddleware(r.cfg.CookieSecure))
		registerCatalogRoutes(storefront, pages)
		registerCartRoutes(storefront, pages)
		registerCheckoutRoutes(storefront, pages)
	})

	r.router.NotFound(pages.notFound)
	return nil
}

func registerCatalogRoutes(router chi.Router, pages *PageHandler) {
	router.Get("/", pages.home)
	router.Get("/products", pages.listing)
	router.Get("/product", pages.detail)
}

func registerCartRoutes(router chi.Router, pages *PageHandler) {
	router.Route("/cart", func(cart chi.Router) {
		cart.Get("/", pages.cartPage)
		cart.Post("/items", pages.addItem)
		cart.Post("/items/{index}/quantity", pages.setQuantity)
		cart.Post("/items/{index}/remove", pages.removeItem)
	})
}

func registerCheckoutRoutes(router chi.Router, pages *PageHandler) {
	router.Get("/checkout", pages.checkoutPage)
	router.Post("/checkout", pages.placeOrder)
	router.Get("/confirmation", pages.confirmation)
}
