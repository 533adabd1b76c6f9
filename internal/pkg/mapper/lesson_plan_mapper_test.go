package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	oldEntity "github.com/tradelingo/tradelingo-be/internal/delivery/http/entity"
	dbEntity "github.com/tradelingo/tradelingo-be/internal/entity"
)

func TestNormalizeModulesBackfillsStatus(t *testing.T) {
	modules := []oldEntity.Module{
		{Topic: "A"},
		{Topic: "B"},
		{Topic: "C"},
		{Topic: "D", Status: oldEntity.ModuleStatusCompleted},
	}

	normalized := NormalizeModules(modules, 1)

	assert.Equal(t, oldEntity.ModuleStatusCompleted, normalized[0].Status)
	assert.Equal(t, oldEntity.ModuleStatusCurrent, normalized[1].Status)
	assert.Equal(t, oldEntity.ModuleStatusLocked, normalized[2].Status)
	// Explicit statuses survive untouched.
	assert.Equal(t, oldEntity.ModuleStatusCompleted, normalized[3].Status)
}

func TestNormalizeModulesClampsNegativeCounters(t *testing.T) {
	normalized := NormalizeModules([]oldEntity.Module{
		{Topic: "A", Status: oldEntity.ModuleStatusCurrent, MasteryScore: -5, InteractionCount: -1},
	}, 0)

	assert.Zero(t, normalized[0].MasteryScore)
	assert.Zero(t, normalized[0].InteractionCount)
}

func TestConvertToCurriculum(t *testing.T) {
	plan := &dbEntity.LessonPlan{
		ID:                 7,
		LearningObjective:  "objective",
		CurrentModuleIndex: 1,
		Modules:            `[{"topic":"A","status":"completed"},{"topic":"B"}]`,
		KnowledgeGaps:      `{"weak_concepts":["leverage"]}`,
	}

	curriculum, err := ConvertToCurriculum(plan)

	require.NoError(t, err)
	assert.Equal(t, uint(7), curriculum.LessonPlanID)
	require.Len(t, curriculum.Modules, 2)
	assert.Equal(t, oldEntity.ModuleStatusCurrent, curriculum.Modules[1].Status)
	require.NotNil(t, curriculum.KnowledgeGaps)
	assert.Equal(t, []string{"leverage"}, curriculum.KnowledgeGaps.WeakConcepts)

	current := curriculum.CurrentModule()
	require.NotNil(t, current)
	assert.Equal(t, "B", current.Topic)
}

func TestConvertToCurriculumRejectsCorruptModules(t *testing.T) {
	_, err := ConvertToCurriculum(&dbEntity.LessonPlan{Modules: "not json"})
	assert.Error(t, err)
}

func TestCurrentModuleNilWhenComplete(t *testing.T) {
	curriculum := &oldEntity.Curriculum{
		Modules:            []oldEntity.Module{{Topic: "A", Status: oldEntity.ModuleStatusCompleted}},
		CurrentModuleIndex: 1,
	}
	assert.Nil(t, curriculum.CurrentModule())
}

func TestConvertToUserProfileDefaults(t *testing.T) {
	profile := ConvertToUserProfile(nil)
	assert.Equal(t, "beginner", profile.TradingLevel)
	assert.Equal(t, "visual", profile.LearningStyle)
	assert.Equal(t, "stocks", profile.PreferredMarket)

	profile = ConvertToUserProfile(&dbEntity.User{TradingLevel: "advanced", TradeType: "scalper"})
	assert.Equal(t, "advanced", profile.TradingLevel)
	assert.Equal(t, "scalper", profile.TradeType)
	// Blank columns keep defaults.
	assert.Equal(t, "visual", profile.LearningStyle)
}

func TestConvertToLearningProfileDefaultsWhenMissing(t *testing.T) {
	profile := ConvertToLearningProfile("u1", nil)
	assert.Equal(t, "u1", profile.UserID)
	assert.Equal(t, oldEntity.DifficultyBeginner, profile.DifficultyLevel)
	assert.Zero(t, profile.ReflectionCount)
}

func TestEncodeStringListNeverNull(t *testing.T) {
	assert.Equal(t, "[]", EncodeStringList(nil))
	assert.Equal(t, `["a","b"]`, EncodeStringList([]string{"a", "b"}))
}

func TestEncodeModulesRoundTrip(t *testing.T) {
	modules := []oldEntity.Module{{Topic: "A", Status: oldEntity.ModuleStatusCurrent, MasteryScore: 40}}

	encoded, err := EncodeModules(modules)
	require.NoError(t, err)

	curriculum, err := ConvertToCurriculum(&dbEntity.LessonPlan{Modules: encoded})
	require.NoError(t, err)
	assert.Equal(t, modules, curriculum.Modules)
}
