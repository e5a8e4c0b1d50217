package http

import (
	_ "github.com/DRSN-tech/order-backoffice/docs" // регистрация swagger-спецификации
	"github.com/DRSN-tech/order-backoffice/internal/usecase"
	"github.com/DRSN-tech/order-backoffice/pkg/logger"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(orderUC usecase.OrderUC, swaggerURL string) {
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(swaggerURL),
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		draftHandler := NewDraftHandler(orderUC, r.logger)
		orderHandler := NewOrderHandler(orderUC, r.logger)

		registerDraftRoutes(v1, draftHandler)
		registerOrderRoutes(v1, orderHandler, draftHandler)
		v1.Get("/payment-methods", orderHandler.listPaymentMethods)
	})
}

func registerDraftRoutes(router chi.Router, h *DraftHandler) {
	router.Route("/drafts", func(dr chi.Router) {
		dr.Post("/", h.startDraft)

		dr.Route("/{draftID}", func(d chi.Router) {
			d.Get("/", h.getDraft)
			d.Delete("/", h.discardDraft)
			d.Patch("/header", h.updateHeader)
			d.Post("/submit", h.submitDraft)

			d.Post("/lines", h.addLine)
			d.Route("/lines/{line}", func(l chi.Router) {
				l.Delete("/", h.removeLine)
				l.Put("/product", h.selectProduct)
				l.Put("/quantity", h.setQuantity)
				l.Get("/options", h.lineOptions)
			})
		})
	})
}

func registerOrderRoutes(router chi.Router, h *OrderHandler, drafts *DraftHandler) {
	router.Route("/orders", func(orders chi.Router) {
		orders.Get("/", h.listOrders)

		orders.Route("/{orderID}", func(o chi.Router) {
			o.Get("/", h.getOrder)
			o.Delete("/", h.deleteOrder)
			o.Post("/drafts", drafts.startEditDraft)
		})
	})
}
