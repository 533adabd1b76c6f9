package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/tradelingo/tradelingo-be/internal/delivery/http/entity"
	"github.com/tradelingo/tradelingo-be/internal/delivery/http/repository"
	internalEntity "github.com/tradelingo/tradelingo-be/internal/entity"
	"github.com/tradelingo/tradelingo-be/internal/pkg/mapper"
	"gorm.io/gorm"
)

const (
	minMessageLength = 3
	chatHistoryLimit = 20
	quizHistoryLimit = 5
)

type TutorUsecase interface {
	Chat(ctx context.Context, req entity.ChatRequest) (map[string]any, error)
	GetChatHistory(ctx context.Context, userID string) ([]entity.ChatHistoryItem, error)
}

type TutorConfig struct {
	DB              *gorm.DB
	Generator       Generator
	Log             *logrus.Logger
	Config          *viper.Viper
	UserRepo        repository.UserRepository
	LessonPlanRepo  repository.LessonPlanRepository
	ProfileRepo     repository.LearningProfileRepository
	MessageRepo     repository.ChatMessageRepository
	QuizRecordRepo  repository.QuizRecordRepository
	TradeRepo       repository.TradeRepository
}

type tutorUsecase struct {
	cfg TutorConfig
}

func NewTutorUsecase(cfg TutorConfig) TutorUsecase {
	return &tutorUsecase{cfg: cfg}
}

// Chat runs one full conversational turn. The pipeline is linear with a
// single fan-out on intent: load context, classify, dispatch to exactly one
// skill handler, then mastery detection and reflection where warranted,
// finishing with the merged response envelope. A handler failure never
// aborts the turn; merge degrades instead.
func (u *tutorUsecase) Chat(ctx context.Context, req entity.ChatRequest) (map[string]any, error) {
	if len(strings.TrimSpace(req.Message)) < minMessageLength {
		return nil, fmt.Errorf("message too short, please provide more context")
	}

	state := &entity.ConversationState{
		UserID:    req.UserID,
		SessionID: req.SessionID,
		Message:   req.Message,
	}
	if state.SessionID == "" {
		state.SessionID = uuid.NewString()
	}

	u.loadContext(state, req.Profile)
	u.classifyIntent(ctx, state)

	switch state.Intent {
	case entity.IntentTradeExplain:
		u.explainTrade(ctx, state)
	case entity.IntentCurriculumModify:
		u.modifyCurriculum(ctx, state)
	case entity.IntentEmotionalSupport:
		u.supportEmotionally(ctx, state)
	case entity.IntentLessonQuestion, entity.IntentGeneralQuestion:
		u.teachLesson(ctx, state)
	default:
		u.teachLesson(ctx, state)
	}

	u.detectMastery(ctx, state)

	// Reflection is internal and non-blocking: its failure never reaches
	// the user.
	if u.shouldTriggerReflection(state) {
		if err := u.runReflection(ctx, state); err != nil {
			u.cfg.Log.WithError(err).WithField("user_id", state.UserID).Warn("reflection failed")
		}
	}

	u.mergeResponse(state)
	u.persistTurn(state)

	return state.Final, nil
}

// loadContext populates profile, curriculum, and history fields. No
// generation call happens here; every lookup failure degrades to defaults so
// a brand-new user can still chat.
func (u *tutorUsecase) loadContext(state *entity.ConversationState, override *entity.UserProfile) {
	user, err := u.cfg.UserRepo.FindByUserID(nil, state.UserID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		u.cfg.Log.WithError(err).WithField("user_id", state.UserID).Warn("failed to load user")
	}
	state.Profile = mapper.ConvertToUserProfile(user)
	if override != nil {
		state.Profile = *override
	}

	plan, err := u.cfg.LessonPlanRepo.FindLatestByUserID(nil, state.UserID)
	if err == nil {
		curriculum, convErr := mapper.ConvertToCurriculum(plan)
		if convErr != nil {
			u.cfg.Log.WithError(convErr).WithField("user_id", state.UserID).Warn("corrupt lesson plan modules")
		} else {
			state.Curriculum = curriculum
			state.CurrentModule = curriculum.CurrentModule()
			state.KnowledgeGaps = curriculum.KnowledgeGaps
		}
	}

	records, err := u.cfg.QuizRecordRepo.FindRecentByUserID(nil, state.UserID, quizHistoryLimit)
	if err == nil {
		for _, record := range records {
			state.QuizHistory = append(state.QuizHistory, mapper.ConvertToQuizSnapshot(&record))
		}
	}

	messages, err := u.cfg.MessageRepo.FindRecentByUserID(nil, state.UserID, chatHistoryLimit)
	if err == nil && len(messages) > 0 {
		// Stored newest-first; prompts want chronological order.
		turns := make([]entity.ChatTurn, 0, len(messages))
		for i := len(messages) - 1; i >= 0; i-- {
			msg := messages[i]
			turns = append(turns, entity.ChatTurn{
				Role:            msg.Role,
				Message:         msg.Message,
				Intent:          msg.Intent,
				LearningConcept: msg.LearningConcept,
			})
		}
		state.ChatHistory = turns
	}
}

// mergeResponse builds the final envelope shaped by intent. A nil skill
// output means the handler failed; the turn still produces a response.
func (u *tutorUsecase) mergeResponse(state *entity.ConversationState) {
	final := map[string]any{}

	if state.Skill == nil {
		final["type"] = "error"
		final["message"] = "Sorry, I could not generate a response this time. Please try rephrasing your question."
	} else {
		final["type"] = state.Skill.Kind
		for key, value := range state.Skill.Fields {
			final[key] = value
		}
	}

	final["intent"] = string(state.Intent)
	final["session_id"] = state.SessionID

	if progress := buildProgressInfo(state.Mastery); progress != nil {
		final["progress"] = progress
	}

	state.Final = final
}

// buildProgressInfo surfaces mastery results only when detection actually
// moved the curriculum (completion or score increment).
func buildProgressInfo(mastery *entity.MasteryResult) map[string]any {
	if mastery == nil || mastery.ProgressUpdate == nil {
		return nil
	}

	update := mastery.ProgressUpdate
	info := map[string]any{
		"mastery_detected": mastery.MasteryDetected,
		"confidence_level": mastery.ConfidenceLevel,
	}

	switch {
	case update.ModuleCompleted:
		info["module_completed"] = true
		info["completed_topic"] = update.CompletedTopic
		info["curriculum_complete"] = update.CurriculumComplete
		if update.NextTopic != "" {
			info["next_topic"] = update.NextTopic
		}
	case update.ScoreIncremented:
		info["score_incremented"] = true
		info["increment"] = update.Increment
		info["new_mastery_score"] = update.NewMasteryScore
	default:
		return nil
	}

	return info
}

// persistTurn saves the user message and the assistant's reply to chat
// history. Best-effort: a failed write is logged, not returned.
func (u *tutorUsecase) persistTurn(state *entity.ConversationState) {
	userMsg := &internalEntity.ChatMessage{
		UserID:    state.UserID,
		SessionID: state.SessionID,
		Role:      "user",
		Message:   state.Message,
		Intent:    string(state.Intent),
	}
	if err := u.cfg.MessageRepo.Create(nil, userMsg); err != nil {
		u.cfg.Log.WithError(err).Warn("failed to persist user message")
	}

	concept := ""
	reply := ""
	if state.Skill != nil {
		concept = getString(state.Skill.Fields, "learning_concept", "")
		if concept == "" {
			concept = getString(state.Skill.Fields, "linked_concept", "")
		}
		reply = getString(state.Skill.Fields, "teaching_explanation", "")
		if reply == "" {
			reply = getString(state.Skill.Fields, "validation", "")
		}
		if reply == "" {
			reply = getString(state.Skill.Fields, "what_happened", "")
		}
	}
	assistantMsg := &internalEntity.ChatMessage{
		UserID:          state.UserID,
		SessionID:       state.SessionID,
		Role:            "assistant",
		Message:         reply,
		Intent:          string(state.Intent),
		LearningConcept: concept,
	}
	if err := u.cfg.MessageRepo.Create(nil, assistantMsg); err != nil {
		u.cfg.Log.WithError(err).Warn("failed to persist assistant message")
	}
}

func (u *tutorUsecase) GetChatHistory(ctx context.Context, userID string) ([]entity.ChatHistoryItem, error) {
	messages, err := u.cfg.MessageRepo.FindRecentByUserID(nil, userID, 50)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chat history: %w", err)
	}

	history := make([]entity.ChatHistoryItem, 0, len(messages))
	for _, msg := range messages {
		history = append(history, entity.ChatHistoryItem{
			Role:      msg.Role,
			Message:   msg.Message,
			Intent:    msg.Intent,
			CreatedAt: msg.CreatedAt.Format(time.RFC3339),
		})
	}

	return history, nil
}
