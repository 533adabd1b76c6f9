package usecase

import (
	"context"
	"strings"

	"github.com/tradelingo/tradelingo-be/internal/delivery/http/entity"
)

const intentPromptTemplate = `You are an expert at understanding what a trading student needs. Classify the user's message into exactly one of five categories:

1. "trade_explain": User wants a specific trade or trading scenario explained (their own trade, a market event, "why did this happen")
2. "lesson_question": User is asking about a trading concept, their current lesson, or curriculum content
3. "curriculum_modify": User wants to change, simplify, or refocus their learning plan
4. "emotional_support": User is expressing emotions, anxiety, frustration, or seeking psychological support
5. "general_question": Anything else (greetings, meta questions, off-topic)

User Trading Level: {{trading_level}}
Current Module: {{current_module}}

User Message:
"{{user_message}}"

Respond with this EXACT JSON format:
{
    "intent": "trade_explain|lesson_question|curriculum_modify|emotional_support|general_question",
    "confidence": 0.0-1.0,
    "emotional_state": "calm|anxious|frustrated|excited|confused|nervous|confident|stressed|null",
    "reasoning": "Brief explanation of classification"
}`

var validIntents = map[entity.Intent]bool{
	entity.IntentTradeExplain:     true,
	entity.IntentLessonQuestion:   true,
	entity.IntentCurriculumModify: true,
	entity.IntentEmotionalSupport: true,
	entity.IntentGeneralQuestion:  true,
}

// classifyIntent maps the message to one of the five intents. On any
// classification failure the turn falls back to general_question with zero
// confidence; the pipeline always proceeds.
func (u *tutorUsecase) classifyIntent(ctx context.Context, state *entity.ConversationState) {
	currentModule := "none"
	if state.CurrentModule != nil {
		currentModule = state.CurrentModule.Topic
	}

	prompt := intentPromptTemplate
	prompt = strings.ReplaceAll(prompt, "{{trading_level}}", state.Profile.TradingLevel)
	prompt = strings.ReplaceAll(prompt, "{{current_module}}", currentModule)
	prompt = strings.ReplaceAll(prompt, "{{user_message}}", state.Message)

	raw, err := u.cfg.Generator.GenerateJSON(ctx, prompt)
	if err != nil {
		u.cfg.Log.WithError(err).WithField("user_id", state.UserID).Warn("intent classification failed")
		state.Intent = entity.IntentGeneralQuestion
		state.Confidence = 0.0
		state.EmotionalState = ""
		return
	}

	parsed, err := parseObject(raw)
	if err != nil {
		u.cfg.Log.WithError(err).Warn("intent output unparseable")
		state.Intent = entity.IntentGeneralQuestion
		state.Confidence = 0.0
		state.EmotionalState = ""
		return
	}

	intent := entity.Intent(getString(parsed, "intent", string(entity.IntentGeneralQuestion)))
	if !validIntents[intent] {
		intent = entity.IntentGeneralQuestion
	}

	state.Intent = intent
	state.Confidence = getFloat(parsed, "confidence", 0.5)
	emotion := getString(parsed, "emotional_state", "")
	if strings.EqualFold(emotion, "null") {
		emotion = ""
	}
	state.EmotionalState = emotion
}
