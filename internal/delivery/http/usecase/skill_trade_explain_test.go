package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradelingo/tradelingo-be/internal/delivery/http/entity"
	internalEntity "github.com/tradelingo/tradelingo-be/internal/entity"
)

const tradeExplainJSON = `{
	"what_happened": "You exited early on a profitable setup.",
	"mistake_identified": "none",
	"linked_concept": "Exit Discipline",
	"lesson_reference": "N/A",
	"improvement_suggestion": "Define exits before entering."
}`

func TestExplainTradeDeepModeInjectsServerMetrics(t *testing.T) {
	f := newTutorFixture(tradeExplainJSON)
	entry := time.Date(2026, 1, 16, 5, 45, 0, 0, time.UTC)
	f.trades.trades = []internalEntity.Trade{{
		UserID:                 "u1",
		Symbol:                 "ETHUSDT",
		EntryPrice:             2385.00,
		ExitPrice:              2402.50,
		EntryTime:              entry,
		ExitTime:               entry.Add(25 * time.Minute),
		HoldingDurationMinutes: 25,
	}}
	state := &entity.ConversationState{
		UserID:  "u1",
		Message: "why did my last trade only make a little?",
		Profile: entity.UserProfile{TradingLevel: "beginner", LearningStyle: "visual"},
	}

	f.tutor.explainTrade(context.Background(), state)

	require.NotNil(t, state.Skill)
	assert.Equal(t, "trade_explain", state.Skill.Kind)

	prompt := f.gen.prompts[0]
	assert.Contains(t, prompt, "ETHUSDT")
	assert.Contains(t, prompt, "2385.0000")
	assert.Contains(t, prompt, "profit")
	assert.Contains(t, prompt, "0.73")
	assert.Contains(t, prompt, "Do NOT recompute")
}

func TestExplainTradeConceptualModeWithoutHistory(t *testing.T) {
	f := newTutorFixture(tradeExplainJSON)
	state := &entity.ConversationState{
		UserID:  "u1",
		Message: "explain why traders get stopped out on wicks",
		Profile: entity.UserProfile{TradingLevel: "beginner", LearningStyle: "visual"},
	}

	f.tutor.explainTrade(context.Background(), state)

	require.NotNil(t, state.Skill)
	prompt := f.gen.prompts[0]
	assert.Contains(t, prompt, "no trade\nrecord is available")
	assert.NotContains(t, prompt, "{{symbol}}")
}

func TestToneForEmotionalState(t *testing.T) {
	assert.Equal(t, "calm, reassuring, and supportive", toneFor("frustrated"))
	assert.Equal(t, "calm, reassuring, and supportive", toneFor("Anxious"))
	assert.Equal(t, "encouraging and energetic", toneFor("excited"))
	assert.Equal(t, "friendly and educational", toneFor(""))
	assert.Equal(t, "friendly and educational", toneFor("confused"))
}
