package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/tradelingo/tradelingo-be/internal/delivery/http/entity"
)

const tradeExplainDeepPrompt = `You are an expert trading educator.

A trader wants to understand a specific trade or trading situation.

Context:
- Trading level: {{trading_level}}
- Learning style: {{learning_style}}
- Trade type: {{trade_type}}
- Detected emotion: {{detected_emotion}}
- Weak concepts: {{weak_concepts}}
- Current module topic: {{current_module_topic}}

Their most recent trade (metrics computed server-side, treat as exact facts):
- Symbol: {{symbol}}
- Entry price: {{entry_price}}
- Exit price: {{exit_price}}
- Result: {{direction}} of {{percentage_pnl}}%
- Holding duration: {{holding_duration}}

Do NOT recompute, restate differently, or alter any of the numbers above.
Use them exactly as given.

User message:
"{{user_message}}"

Analyse the situation and respond with ONLY this JSON:
{
  "what_happened": "Clear description of what occurred in the trade / scenario",
  "mistake_identified": "Any mistake or sub-optimal decision (or 'none' if N/A)",
  "linked_concept": "The core trading concept this relates to",
  "lesson_reference": "How this ties to the student's current curriculum module (or 'N/A')",
  "improvement_suggestion": "Actionable improvement advice tailored to their level and emotion"
}

Your tone should be {{tone}}.`

const tradeExplainConceptualPrompt = `You are an expert trading educator.

A trader wants to understand a trade or trading situation, but no trade
record is available, so explain conceptually without inventing numbers.

Context:
- Trading level: {{trading_level}}
- Learning style: {{learning_style}}
- Trade type: {{trade_type}}
- Detected emotion: {{detected_emotion}}
- Weak concepts: {{weak_concepts}}
- Current module topic: {{current_module_topic}}

User message:
"{{user_message}}"

Analyse the situation and respond with ONLY this JSON:
{
  "what_happened": "Clear description of what occurred in the trade / scenario",
  "mistake_identified": "Any mistake or sub-optimal decision (or 'none' if N/A)",
  "linked_concept": "The core trading concept this relates to",
  "lesson_reference": "How this ties to the student's current curriculum module (or 'N/A')",
  "improvement_suggestion": "Actionable improvement advice tailored to their level and emotion"
}

Your tone should be {{tone}}.`

// explainTrade explains a trade or trading scenario. Deep mode injects
// server-computed metrics from the user's latest trade; conceptual mode runs
// when no trade record exists.
func (u *tutorUsecase) explainTrade(ctx context.Context, state *entity.ConversationState) {
	prompt := tradeExplainConceptualPrompt

	trades, err := u.cfg.TradeRepo.FindByUserID(nil, state.UserID)
	if err == nil && len(trades) > 0 {
		metrics := ComputeTradeMetrics(&trades[0])
		prompt = tradeExplainDeepPrompt
		prompt = strings.ReplaceAll(prompt, "{{symbol}}", metrics.Symbol)
		prompt = strings.ReplaceAll(prompt, "{{entry_price}}", fmt.Sprintf("%.4f", metrics.EntryPrice))
		prompt = strings.ReplaceAll(prompt, "{{exit_price}}", fmt.Sprintf("%.4f", metrics.ExitPrice))
		prompt = strings.ReplaceAll(prompt, "{{direction}}", metrics.Direction)
		prompt = strings.ReplaceAll(prompt, "{{percentage_pnl}}", fmt.Sprintf("%.2f", metrics.PercentagePnL))
		prompt = strings.ReplaceAll(prompt, "{{holding_duration}}", metrics.HoldingDurationLabel)
	}

	currentModuleTopic := "N/A"
	if state.CurrentModule != nil {
		currentModuleTopic = state.CurrentModule.Topic
	}
	weakConcepts := "none"
	if state.KnowledgeGaps != nil && len(state.KnowledgeGaps.WeakConcepts) > 0 {
		weakConcepts = strings.Join(state.KnowledgeGaps.WeakConcepts, ", ")
	}
	emotion := state.EmotionalState
	if emotion == "" {
		emotion = "calm"
	}

	prompt = strings.ReplaceAll(prompt, "{{trading_level}}", state.Profile.TradingLevel)
	prompt = strings.ReplaceAll(prompt, "{{learning_style}}", state.Profile.LearningStyle)
	prompt = strings.ReplaceAll(prompt, "{{trade_type}}", defaultString(state.Profile.TradeType, "unknown"))
	prompt = strings.ReplaceAll(prompt, "{{detected_emotion}}", emotion)
	prompt = strings.ReplaceAll(prompt, "{{weak_concepts}}", weakConcepts)
	prompt = strings.ReplaceAll(prompt, "{{current_module_topic}}", currentModuleTopic)
	prompt = strings.ReplaceAll(prompt, "{{user_message}}", state.Message)
	prompt = strings.ReplaceAll(prompt, "{{tone}}", toneFor(state.EmotionalState))

	raw, err := u.cfg.Generator.GenerateJSON(ctx, prompt)
	if err != nil {
		u.cfg.Log.WithError(err).WithField("user_id", state.UserID).Error("trade explain failed")
		state.Skill = nil
		return
	}

	fields, err := parseObject(raw)
	if err != nil {
		u.cfg.Log.WithError(err).Warn("trade explain output unparseable")
		state.Skill = nil
		return
	}

	state.Skill = &entity.SkillOutput{Kind: "trade_explain", Fields: fields}
}

func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
