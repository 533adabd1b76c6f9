package route

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tradelingo/tradelingo-be/internal/delivery/http/handler"
	"github.com/tradelingo/tradelingo-be/internal/delivery/http/middleware"
)

func SetupChatRoute(api *fiber.App, handler handler.ChatHandler, m *middleware.Middleware) {
	router := api.Group("/chat")
	{
		router.Post("/", handler.Chat)
		router.Get("/:user_id/history", handler.GetChatHistory)
	}
}
