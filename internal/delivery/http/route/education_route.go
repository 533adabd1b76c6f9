package route

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tradelingo/tradelingo-be/internal/delivery/http/handler"
	"github.com/tradelingo/tradelingo-be/internal/delivery/http/middleware"
)

func SetupEducationRoute(api *fiber.App, handler handler.EducationHandler, m *middleware.Middleware) {
	router := api.Group("/education")
	{
		router.Post("/start", handler.Start)
		router.Post("/submit-quiz", handler.SubmitQuiz)
		router.Get("/progress/:user_id", handler.GetProgress)
	}
}
