package usecase

import (
	"context"
	"strings"

	"github.com/tradelingo/tradelingo-be/internal/delivery/http/entity"
)

const wellnessPrompt = `You are a trading wellness coach - an empathetic AI specializing in trading psychology and emotional resilience.

Your role is to help traders process emotions, build coping strategies, and develop healthy mental habits around trading.

KEY PRINCIPLES:
1. VALIDATE emotions first - acknowledge they are real and legitimate
2. NORMALIZE - help them see they're not alone, market volatility affects everyone
3. COACH - provide practical coping strategies
4. EDUCATE - connect emotions to trading concepts they can learn
5. EMPOWER - give them concrete actions to take right now

DO NOT:
- Give trading advice or market predictions
- Criticize their trading decisions
- Dismiss their concerns
- Provide medical advice (suggest professional help only if warranted)

USER PROFILE:
- Trading Level: {{trading_level}}
- Risk Tolerance: {{risk_tolerance}}
- Learning Style: {{learning_style}}

DETECTED EMOTION: {{detected_emotion}}

USER'S CONCERN/EMOTION:
"{{user_message}}"

Using the VACE framework:
- VALIDATE their emotional experience
- ANALYZE the trigger and pattern
- COACH them on coping strategies
- EMPOWER them with action steps

RESPOND WITH THIS EXACT JSON FORMAT:
{
    "emotional_state": "The emotion you identified (anxious, frustrated, fearful, confused, etc.)",
    "validation": "Warm acknowledgment that their feelings are valid. 2-3 sentences.",
    "perspective": "Help them see this in context - market volatility is normal, emotions are normal. 2-3 sentences.",
    "coping_strategy": "ONE immediate action they can take right now (breathe, take a walk, journal, meditate, etc.)",
    "educational_focus": "What trading concept connects to this emotion? (e.g., risk management, position sizing)",
    "actionable_steps": ["Step 1: immediate action", "Step 2: short-term", "Step 3: long-term habit"],
    "encouragement": "Warm, motivational message about their growth and resilience as a trader"
}`

// supportEmotionally generates wellness coaching via the VACE loop.
func (u *tutorUsecase) supportEmotionally(ctx context.Context, state *entity.ConversationState) {
	emotion := state.EmotionalState
	if emotion == "" {
		emotion = "Not clearly detected - infer from message"
	}

	prompt := wellnessPrompt
	prompt = strings.ReplaceAll(prompt, "{{trading_level}}", state.Profile.TradingLevel)
	prompt = strings.ReplaceAll(prompt, "{{risk_tolerance}}", state.Profile.RiskTolerance)
	prompt = strings.ReplaceAll(prompt, "{{learning_style}}", state.Profile.LearningStyle)
	prompt = strings.ReplaceAll(prompt, "{{detected_emotion}}", emotion)
	prompt = strings.ReplaceAll(prompt, "{{user_message}}", state.Message)

	raw, err := u.cfg.Generator.GenerateJSON(ctx, prompt)
	if err != nil {
		u.cfg.Log.WithError(err).WithField("user_id", state.UserID).Error("wellness generation failed")
		state.Skill = nil
		return
	}

	fields, err := parseObject(raw)
	if err != nil {
		u.cfg.Log.WithError(err).Warn("wellness output unparseable")
		state.Skill = nil
		return
	}

	state.Skill = &entity.SkillOutput{Kind: "wellness", Fields: fields}
}
