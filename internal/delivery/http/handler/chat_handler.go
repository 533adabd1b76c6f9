package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/tradelingo/tradelingo-be/internal/delivery/http/domain"
	"github.com/tradelingo/tradelingo-be/internal/delivery/http/entity"
	"github.com/tradelingo/tradelingo-be/internal/delivery/http/usecase"
	"github.com/tradelingo/tradelingo-be/internal/pkg/response"
	"github.com/tradelingo/tradelingo-be/internal/pkg/validate"
)

type (
	ChatHandler interface {
		Chat(ctx *fiber.Ctx) error
		GetChatHistory(ctx *fiber.Ctx) error
	}

	chatHandler struct {
		validator *validate.Validator
		logger    *logrus.Logger
		usecase   usecase.TutorUsecase
	}
)

func NewChatHandler(validator *validate.Validator, logger *logrus.Logger, usecase usecase.TutorUsecase) ChatHandler {
	return &chatHandler{
		validator: validator,
		logger:    logger,
		usecase:   usecase,
	}
}

// POST /chat
func (h *chatHandler) Chat(ctx *fiber.Ctx) error {
	var req entity.ChatRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.CHAT_SEND_FAILED, fiber.NewError(fiber.StatusBadRequest, err.Error()), h.logger).Send(ctx)
	}

	result, err := h.usecase.Chat(ctx.UserContext(), req)
	if err != nil {
		return response.NewFailed(domain.CHAT_SEND_FAILED, fiber.NewError(fiber.StatusBadRequest, err.Error()), h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.CHAT_SEND_SUCCESS, result, nil).Send(ctx)
}

// GET /chat/:user_id/history
func (h *chatHandler) GetChatHistory(ctx *fiber.Ctx) error {
	userID := ctx.Params("user_id")
	if userID == "" {
		return response.NewFailed(domain.CHAT_HISTORY_FAILED, fiber.NewError(fiber.StatusBadRequest, "user_id is required"), h.logger).Send(ctx)
	}

	history, err := h.usecase.GetChatHistory(ctx.UserContext(), userID)
	if err != nil {
		return response.NewFailed(domain.CHAT_HISTORY_FAILED, fiber.NewError(fiber.StatusBadRequest, err.Error()), h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.CHAT_HISTORY_SUCCESS, history, nil).Send(ctx)
}
