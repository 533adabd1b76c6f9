package usecase

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradelingo/tradelingo-be/internal/delivery/http/entity"
)

func TestShouldTriggerReflection(t *testing.T) {
	f := newTutorFixture()

	tests := []struct {
		name  string
		state *entity.ConversationState
		want  bool
	}{
		{
			name: "module completed",
			state: &entity.ConversationState{
				Intent:  entity.IntentLessonQuestion,
				Mastery: &entity.MasteryResult{ProgressUpdate: &entity.ProgressUpdate{ModuleCompleted: true}},
			},
			want: true,
		},
		{
			name:  "trade explained",
			state: &entity.ConversationState{Intent: entity.IntentTradeExplain},
			want:  true,
		},
		{
			name:  "strong emotion",
			state: &entity.ConversationState{Intent: entity.IntentLessonQuestion, EmotionalState: "Frustrated"},
			want:  true,
		},
		{
			name: "interaction count multiple of five",
			state: &entity.ConversationState{
				Intent:        entity.IntentLessonQuestion,
				CurrentModule: &entity.Module{InteractionCount: 10},
			},
			want: true,
		},
		{
			name: "quiet turn",
			state: &entity.ConversationState{
				Intent:         entity.IntentLessonQuestion,
				EmotionalState: "calm",
				CurrentModule:  &entity.Module{InteractionCount: 3},
			},
			want: false,
		},
		{
			name:  "fresh module does not trigger on zero",
			state: &entity.ConversationState{Intent: entity.IntentLessonQuestion, CurrentModule: &entity.Module{}},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.tutor.shouldTriggerReflection(tt.state))
		})
	}
}

func TestSaveReflectionMergeRules(t *testing.T) {
	f := newTutorFixture()
	existing := &entity.LearningProfile{
		UserID:              "u1",
		KnowledgeGaps:       []string{"leverage", "stop losses"},
		RepeatedMistakes:    []string{"oversizing", "revenge trading"},
		EmotionalTendencies: []string{"anxious"},
		DifficultyLevel:     entity.DifficultyIntermediate,
	}
	reflection := map[string]any{
		"updated_knowledge_gaps":            []any{"stop losses", "position sizing"},
		"behavioral_pattern_summary":        "Improving steadily",
		"confidence_level_estimate":         0.6,
		"recommended_difficulty_adjustment": "increase",
		"next_focus_area":                   "position sizing",
		"reflection_summary":                "good progress",
		"learning_strengths":                []any{"pattern recognition"},
		"repeated_mistakes":                 []any{"oversizing", "ignoring the plan"},
		"emotional_tendency":                "anxious",
	}

	require.NoError(t, f.tutor.saveReflection("u1", existing, reflection))
	require.NotNil(t, f.profiles.row)
	row := f.profiles.row

	// Gaps are a set union preserving order, old then new.
	assert.JSONEq(t, `["leverage","stop losses","position sizing"]`, row.KnowledgeGaps)
	// Mistakes deduplicate preserving first occurrence.
	assert.JSONEq(t, `["oversizing","revenge trading","ignoring the plan"]`, row.RepeatedMistakes)
	// A tendency already recorded is not appended again.
	assert.JSONEq(t, `["anxious"]`, row.EmotionalTendencies)
	assert.Equal(t, "advanced", row.DifficultyLevel)
	assert.Equal(t, 0.6, row.ConfidenceLevelEstimate)
	require.NotNil(t, row.LastReflectionAt)
	assert.Equal(t, 1, f.profiles.increments)
}

func TestSaveReflectionKeepsLastTenMistakes(t *testing.T) {
	f := newTutorFixture()
	existing := &entity.LearningProfile{
		UserID: "u1",
		RepeatedMistakes: []string{
			"m1", "m2", "m3", "m4", "m5", "m6", "m7", "m8", "m9",
		},
		DifficultyLevel: entity.DifficultyBeginner,
	}
	reflection := map[string]any{
		"repeated_mistakes": []any{"m10", "m11"},
	}

	require.NoError(t, f.tutor.saveReflection("u1", existing, reflection))

	decoded := mustDecodeList(t, f.profiles.row.RepeatedMistakes)
	assert.Len(t, decoded, 10)
	assert.Equal(t, "m2", decoded[0])
	assert.Equal(t, "m11", decoded[9])
}

func TestSaveReflectionTendenciesCapAtFive(t *testing.T) {
	f := newTutorFixture()
	existing := &entity.LearningProfile{
		UserID:              "u1",
		EmotionalTendencies: []string{"t1", "t2", "t3", "t4", "t5"},
		DifficultyLevel:     entity.DifficultyBeginner,
	}
	reflection := map[string]any{
		"emotional_tendency": "t6",
	}

	require.NoError(t, f.tutor.saveReflection("u1", existing, reflection))

	decoded := mustDecodeList(t, f.profiles.row.EmotionalTendencies)
	assert.Equal(t, []string{"t2", "t3", "t4", "t5", "t6"}, decoded)
}

func TestApplyDifficultyAdjustment(t *testing.T) {
	tests := []struct {
		current    entity.Difficulty
		adjustment string
		want       entity.Difficulty
	}{
		{entity.DifficultyBeginner, "increase", entity.DifficultyIntermediate},
		{entity.DifficultyIntermediate, "increase", entity.DifficultyAdvanced},
		{entity.DifficultyAdvanced, "increase", entity.DifficultyAdvanced},
		{entity.DifficultyBeginner, "decrease", entity.DifficultyBeginner},
		{entity.DifficultyAdvanced, "decrease", entity.DifficultyIntermediate},
		{entity.DifficultyIntermediate, "maintain", entity.DifficultyIntermediate},
		{entity.DifficultyIntermediate, "garbage", entity.DifficultyIntermediate},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, applyDifficultyAdjustment(tt.current, tt.adjustment),
			"%s + %s", tt.current, tt.adjustment)
	}
}

func TestUnionStrings(t *testing.T) {
	got := unionStrings([]string{"a", "b"}, []string{"b", "c", "a", "d"})
	assert.Equal(t, []string{"a", "b", "c", "d"}, got)
}

func TestLastNDeduped(t *testing.T) {
	got := lastNDeduped([]string{"a", "b", "a", "c", "d"}, 3)
	assert.Equal(t, []string{"b", "c", "d"}, got)
}

func mustDecodeList(t *testing.T, raw string) []string {
	t.Helper()
	var list []string
	require.NoError(t, json.Unmarshal([]byte(raw), &list))
	return list
}
