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
	TradeHandler interface {
		Create(ctx *fiber.Ctx) error
		List(ctx *fiber.Ctx) error
	}

	tradeHandler struct {
		validator *validate.Validator
		logger    *logrus.Logger
		usecase   usecase.TradeUsecase
	}
)

func NewTradeHandler(validator *validate.Validator, logger *logrus.Logger, usecase usecase.TradeUsecase) TradeHandler {
	return &tradeHandler{
		validator: validator,
		logger:    logger,
		usecase:   usecase,
	}
}

// POST /trades
func (h *tradeHandler) Create(ctx *fiber.Ctx) error {
	var req entity.CreateTradeRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.TRADE_CREATE_FAILED, fiber.NewError(fiber.StatusBadRequest, err.Error()), h.logger).Send(ctx)
	}

	result, err := h.usecase.Create(ctx.UserContext(), req)
	if err != nil {
		return response.NewFailed(domain.TRADE_CREATE_FAILED, fiber.NewError(fiber.StatusBadRequest, err.Error()), h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.TRADE_CREATE_SUCCESS, result, nil).Send(ctx)
}

// GET /trades/:user_id
func (h *tradeHandler) List(ctx *fiber.Ctx) error {
	userID := ctx.Params("user_id")
	if userID == "" {
		return response.NewFailed(domain.TRADE_LIST_FAILED, fiber.NewError(fiber.StatusBadRequest, "user_id is required"), h.logger).Send(ctx)
	}

	trades, err := h.usecase.List(ctx.UserContext(), userID)
	if err != nil {
		return response.NewFailed(domain.TRADE_LIST_FAILED, fiber.NewError(fiber.StatusBadRequest, err.Error()), h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.TRADE_LIST_SUCCESS, trades, nil).Send(ctx)
}
