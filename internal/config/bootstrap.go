package config

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/tradelingo/tradelingo-be/internal/delivery/http/handler"
	"github.com/tradelingo/tradelingo-be/internal/delivery/http/middleware"
	"github.com/tradelingo/tradelingo-be/internal/delivery/http/repository"
	"github.com/tradelingo/tradelingo-be/internal/delivery/http/route"
	"github.com/tradelingo/tradelingo-be/internal/delivery/http/usecase"
	"github.com/tradelingo/tradelingo-be/internal/pkg/llm"
	"github.com/tradelingo/tradelingo-be/internal/pkg/validate"
	"gorm.io/gorm"
)

type BootstrapConfig struct {
	Api       *fiber.App
	Config    *viper.Viper
	DB        *gorm.DB
	Log       *logrus.Logger
	Validator *validate.Validator
}

func Bootstrap(config *BootstrapConfig) {

	mid := middleware.NewMiddleware(&middleware.MiddlewareConfig{
		Log:    config.Log,
		Config: config.Config,
	})

	apiKey := ""
	model := ""
	baseURL := ""
	if config.Config != nil {
		apiKey = config.Config.GetString("llm.openai.api_key")
		model = config.Config.GetString("llm.openai.model")
		baseURL = config.Config.GetString("llm.openai.base_url")
	}

	generator := llm.NewClient(apiKey, model, baseURL)

	userRepo := repository.NewUserRepository(config.DB)
	lessonPlanRepo := repository.NewLessonPlanRepository(config.DB)
	profileRepo := repository.NewLearningProfileRepository(config.DB)
	messageRepo := repository.NewChatMessageRepository(config.DB)
	quizRecordRepo := repository.NewQuizRecordRepository(config.DB)
	tradeRepo := repository.NewTradeRepository(config.DB)

	tutorUsecase := usecase.NewTutorUsecase(usecase.TutorConfig{
		DB:             config.DB,
		Generator:      generator,
		Log:            config.Log,
		Config:         config.Config,
		UserRepo:       userRepo,
		LessonPlanRepo: lessonPlanRepo,
		ProfileRepo:    profileRepo,
		MessageRepo:    messageRepo,
		QuizRecordRepo: quizRecordRepo,
		TradeRepo:      tradeRepo,
	})

	educationUsecase := usecase.NewEducationUsecase(usecase.EducationConfig{
		DB:             config.DB,
		Generator:      generator,
		Log:            config.Log,
		Config:         config.Config,
		UserRepo:       userRepo,
		LessonPlanRepo: lessonPlanRepo,
		ProfileRepo:    profileRepo,
		QuizRecordRepo: quizRecordRepo,
		TradeRepo:      tradeRepo,
	})

	tradeUsecase := usecase.NewTradeUsecase(usecase.TradeConfig{
		DB:        config.DB,
		Log:       config.Log,
		TradeRepo: tradeRepo,
		UserRepo:  userRepo,
	})

	chatHandler := handler.NewChatHandler(config.Validator, config.Log, tutorUsecase)
	educationHandler := handler.NewEducationHandler(config.Validator, config.Log, educationUsecase)
	tradeHandler := handler.NewTradeHandler(config.Validator, config.Log, tradeUsecase)

	route.Setup(&route.RouteConfig{
		Api:              config.Api,
		Middleware:       mid,
		ChatHandler:      chatHandler,
		EducationHandler: educationHandler,
		TradeHandler:     tradeHandler,
	})

}
