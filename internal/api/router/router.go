package router

import (
	"github.com/RoyceAzure/lab/cartcenter/internal/api"
	m "github.com/RoyceAzure/lab/cartcenter/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func SetupRouter(server *api.Server, logger *zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// 全局中間件
	r.Use(m.RequestIdMiddleware)
	r.Use(middleware.RealIP)
	r.Use(m.LoggerMiddleware(logger))
	r.Use(m.RecoverMiddleware)

	// API 路由
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/carts", func(r chi.Router) {
			r.Get("/", server.CartHandler.GetAllCarts)

			// 靜態路由要先註冊，避免被{id}吃掉
			r.Post("/abandoned/publish", server.CartHandler.PublishAbandonedCarts)

			r.Post("/products", server.CartHandler.AddProduct)
			r.Patch("/products", server.CartItemHandler.UpdateQuantity)
			r.Delete("/products/{id}", server.CartItemHandler.RemoveProduct)

			r.Post("/{id}", server.CartHandler.CreateCart)
			r.Get("/{id}", server.CartHandler.GetCart)
			r.Delete("/{id}", server.CartHandler.ClearCart)
			r.Get("/{cartId}/total/{userId}", server.CartHandler.GetCartTotal)
		})
	})

	return r
}
