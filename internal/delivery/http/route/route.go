package route

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tradelingo/tradelingo-be/internal/delivery/http/handler"
	"github.com/tradelingo/tradelingo-be/internal/delivery/http/middleware"
)

type RouteConfig struct {
	Api              *fiber.App
	Middleware       *middleware.Middleware
	ChatHandler      handler.ChatHandler
	EducationHandler handler.EducationHandler
	TradeHandler     handler.TradeHandler
}

func Setup(c *RouteConfig) {
	c.Api.Use(recover.New())
	c.Api.Use(logger.New(logger.Config{
		Format: "[${ip}]:${port} ${status} - ${method} ${path}\n",
	}))
	c.Api.Use(c.Middleware.CorsMiddleware())

	SetupChatRoute(c.Api, c.ChatHandler, c.Middleware)
	SetupEducationRoute(c.Api, c.EducationHandler, c.Middleware)
	SetupTradeRoute(c.Api, c.TradeHandler, c.Middleware)
}
