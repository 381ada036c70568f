package api

import (
	"github.com/RoyceAzure/lab/cartcenter/internal/api/handler"
)

type Server struct {
	CartHandler     *handler.CartHandler
	CartItemHandler *handler.CartItemHandler
}

func NewServer(cartHandler *handler.CartHandler, cartItemHandler *handler.CartItemHandler) *Server {
	if cartHandler == nil || cartItemHandler == nil {
		panic("handlers cannot be nil")
	}
	return &Server{
		CartHandler:     cartHandler,
		CartItemHandler: cartItemHandler,
	}
}
