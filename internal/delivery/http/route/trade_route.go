package route

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tradelingo/tradelingo-be/internal/delivery/http/handler"
	"github.com/tradelingo/tradelingo-be/internal/delivery/http/middleware"
)

func SetupTradeRoute(api *fiber.App, handler handler.TradeHandler, m *middleware.Middleware) {
	router := api.Group("/trades")
	{
		router.Post("/", handler.Create)
		router.Get("/:user_id", handler.List)
	}
}
