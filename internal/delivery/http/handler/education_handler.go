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
	EducationHandler interface {
		Start(ctx *fiber.Ctx) error
		SubmitQuiz(ctx *fiber.Ctx) error
		GetProgress(ctx *fiber.Ctx) error
	}

	educationHandler struct {
		validator *validate.Validator
		logger    *logrus.Logger
		usecase   usecase.EducationUsecase
	}
)

func NewEducationHandler(validator *validate.Validator, logger *logrus.Logger, usecase usecase.EducationUsecase) EducationHandler {
	return &educationHandler{
		validator: validator,
		logger:    logger,
		usecase:   usecase,
	}
}

// POST /education/start
func (h *educationHandler) Start(ctx *fiber.Ctx) error {
	var req entity.StartEducationRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.EDUCATION_START_FAILED, fiber.NewError(fiber.StatusBadRequest, err.Error()), h.logger).Send(ctx)
	}

	result, err := h.usecase.Start(ctx.UserContext(), req)
	if err != nil {
		return response.NewFailed(domain.EDUCATION_START_FAILED, fiber.NewError(fiber.StatusBadRequest, err.Error()), h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.EDUCATION_START_SUCCESS, result, nil).Send(ctx)
}

// POST /education/submit-quiz
func (h *educationHandler) SubmitQuiz(ctx *fiber.Ctx) error {
	var req entity.SubmitQuizRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.EDUCATION_SUBMIT_FAILED, fiber.NewError(fiber.StatusBadRequest, err.Error()), h.logger).Send(ctx)
	}

	result, err := h.usecase.SubmitQuiz(ctx.UserContext(), req)
	if err != nil {
		return response.NewFailed(domain.EDUCATION_SUBMIT_FAILED, fiber.NewError(fiber.StatusBadRequest, err.Error()), h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.EDUCATION_SUBMIT_SUCCESS, result, nil).Send(ctx)
}

// GET /education/progress/:user_id
func (h *educationHandler) GetProgress(ctx *fiber.Ctx) error {
	userID := ctx.Params("user_id")
	if userID == "" {
		return response.NewFailed(domain.PROGRESS_GET_FAILED, fiber.NewError(fiber.StatusBadRequest, "user_id is required"), h.logger).Send(ctx)
	}

	summary, err := h.usecase.GetProgress(ctx.UserContext(), userID)
	if err != nil {
		return response.NewFailed(domain.PROGRESS_GET_FAILED, fiber.NewError(fiber.StatusBadRequest, err.Error()), h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.PROGRESS_GET_SUCCESS, summary, nil).Send(ctx)
}
