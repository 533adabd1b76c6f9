package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradelingo/tradelingo-be/internal/delivery/http/entity"
	internalEntity "github.com/tradelingo/tradelingo-be/internal/entity"
)

type educationFixture struct {
	gen      *fakeGenerator
	users    *fakeUserRepo
	plans    *fakeLessonPlanRepo
	profiles *fakeProfileRepo
	quizzes  *fakeQuizRepo
	trades   *fakeTradeRepo
	usecase  EducationUsecase
}

func newEducationFixture(responses ...string) *educationFixture {
	f := &educationFixture{
		gen:      &fakeGenerator{responses: responses},
		users:    newFakeUserRepo(),
		plans:    &fakeLessonPlanRepo{},
		profiles: &fakeProfileRepo{},
		quizzes:  &fakeQuizRepo{},
		trades:   &fakeTradeRepo{},
	}
	f.usecase = NewEducationUsecase(EducationConfig{
		Generator:      f.gen,
		Log:            silentLogger(),
		UserRepo:       f.users,
		LessonPlanRepo: f.plans,
		ProfileRepo:    f.profiles,
		QuizRecordRepo: f.quizzes,
		TradeRepo:      f.trades,
	})
	return f
}

const quizResponseJSON = `{
	"questions": [
		{"question": "What does a stop loss do?", "concept_tested": "risk management", "options": ["Caps losses", "Guarantees profit", "Doubles position", "Nothing"], "correct_index": 0},
		{"question": "What is leverage?", "concept_tested": "leverage", "options": ["Borrowed exposure", "A fee", "A chart", "A broker"], "correct_index": 0},
		{"question": "What is a limit order?", "concept_tested": "order types", "options": ["Order at a set price", "Market order", "Stop order", "None"], "correct_index": 0},
		{"question": "What is position sizing?", "concept_tested": "position sizing", "options": ["How much to risk per trade", "When to enter", "Chart pattern", "A broker tool"], "correct_index": 0},
		{"question": "What moves prices?", "concept_tested": "market mechanics", "options": ["Supply and demand", "Luck", "News only", "Brokers"], "correct_index": 0}
	]
}`

const gapResponseJSON = `{
	"strong_concepts": ["risk management"],
	"weak_concepts": ["leverage", "position sizing"],
	"behavioral_patterns": ["answers quickly"],
	"recommended_focus": ["leverage basics"]
}`

const curriculumResponseJSON = `{
	"learning_objective": "Build risk-first trading habits",
	"modules": [
		{"topic": "Leverage Basics", "difficulty": "beginner", "explanation_style": "visual", "estimated_duration": "15 minutes"},
		{"topic": "Position Sizing", "difficulty": "beginner", "explanation_style": "visual", "estimated_duration": "20 minutes"},
		{"topic": "Risk-Reward Ratios", "difficulty": "intermediate", "explanation_style": "visual", "estimated_duration": "20 minutes"},
		{"topic": "Trade Journaling", "difficulty": "intermediate", "explanation_style": "visual", "estimated_duration": "25 minutes"}
	],
	"progression_strategy": "Foundations first, then applied sizing"
}`

func fiveQuestions() []entity.QuizQuestion {
	questions := make([]entity.QuizQuestion, 5)
	for i := range questions {
		questions[i] = entity.QuizQuestion{
			Question:      "Q",
			ConceptTested: "concept",
			Options:       []string{"a", "b", "c", "d"},
			CorrectIndex:  0,
			Gradable:      true,
		}
	}
	return questions
}

func TestStartCreatesUserRowAndParsesQuiz(t *testing.T) {
	f := newEducationFixture(quizResponseJSON)

	resp, err := f.usecase.Start(context.Background(), entity.StartEducationRequest{UserID: "new-user"})

	require.NoError(t, err)
	require.Len(t, resp.QuizQuestions, 5)
	for _, q := range resp.QuizQuestions {
		assert.True(t, q.Gradable)
		assert.Len(t, q.Options, 4)
	}
	assert.Equal(t, "beginner", resp.Profile.TradingLevel)

	_, found := f.users.users["new-user"]
	assert.True(t, found, "first contact should create the user row")
}

func TestParseQuizQuestionsRepairsMalformedOptions(t *testing.T) {
	parsed := map[string]any{
		"questions": []any{
			map[string]any{
				"question":       "Good question?",
				"concept_tested": "risk",
				"options":        []any{"a", "b", "c", "d"},
				"correct_index":  float64(2),
			},
			map[string]any{
				"question":       "Only three options?",
				"concept_tested": "leverage",
				"options":        []any{"a", "b", "c"},
				"correct_index":  float64(0),
			},
			map[string]any{
				"question":       "Index out of range?",
				"concept_tested": "orders",
				"options":        []any{"a", "b", "c", "d"},
				"correct_index":  float64(7),
			},
			map[string]any{
				"question": "",
			},
		},
	}

	questions := parseQuizQuestions(parsed)
	require.Len(t, questions, 3, "empty questions are dropped")

	assert.True(t, questions[0].Gradable)
	assert.Equal(t, 2, questions[0].CorrectIndex)

	for _, repaired := range questions[1:] {
		assert.False(t, repaired.Gradable)
		assert.Equal(t, -1, repaired.CorrectIndex)
		assert.Equal(t, likertOptions, repaired.Options)
	}
}

func TestParseQuizQuestionsCapsAtFive(t *testing.T) {
	raw := make([]any, 8)
	for i := range raw {
		raw[i] = map[string]any{
			"question":       "Q",
			"concept_tested": "c",
			"options":        []any{"a", "b", "c", "d"},
			"correct_index":  float64(0),
		}
	}

	questions := parseQuizQuestions(map[string]any{"questions": raw})
	assert.Len(t, questions, quizQuestionCount)
}

func TestSubmitQuizRejectsAnswerCountMismatch(t *testing.T) {
	f := newEducationFixture(gapResponseJSON, curriculumResponseJSON)

	_, err := f.usecase.SubmitQuiz(context.Background(), entity.SubmitQuizRequest{
		UserID:        "u1",
		QuizQuestions: fiveQuestions(),
		QuizAnswers:   []string{"a", "b", "c"},
	})

	require.Error(t, err)
	assert.Zero(t, f.gen.calls, "count validation must run before any generation")
}

func TestSubmitQuizBuildsAndPersistsCurriculum(t *testing.T) {
	f := newEducationFixture(gapResponseJSON, curriculumResponseJSON)
	f.users.users["u1"] = &internalEntity.User{UserID: "u1", TradingLevel: "beginner"}

	resp, err := f.usecase.SubmitQuiz(context.Background(), entity.SubmitQuizRequest{
		UserID:        "u1",
		QuizQuestions: fiveQuestions(),
		QuizAnswers:   []string{"a", "b", "c", "d", "a"},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"leverage", "position sizing"}, resp.KnowledgeGaps.WeakConcepts)

	require.Len(t, resp.Curriculum.Modules, 4)
	assert.Equal(t, entity.ModuleStatusCurrent, resp.Curriculum.Modules[0].Status)
	for _, m := range resp.Curriculum.Modules[1:] {
		assert.Equal(t, entity.ModuleStatusLocked, m.Status)
	}
	for _, m := range resp.Curriculum.Modules {
		assert.Zero(t, m.MasteryScore)
		assert.Zero(t, m.InteractionCount)
	}
	assert.Equal(t, 0, resp.Curriculum.CurrentModuleIndex)

	require.NotNil(t, f.plans.plan)
	assert.Equal(t, "Build risk-first trading habits", f.plans.plan.LearningObjective)
	assert.Equal(t, 0, f.plans.plan.CurrentModuleIndex)

	require.Len(t, f.quizzes.records, 1)
	assert.Equal(t, "diagnostic", f.quizzes.records[0].QuizType)
}

func TestGetProgressWithoutPlan(t *testing.T) {
	f := newEducationFixture()

	summary, err := f.usecase.GetProgress(context.Background(), "u1")

	require.NoError(t, err)
	assert.False(t, summary.HasLessonPlan)
	assert.NotNil(t, summary.CompletedModules)
	assert.NotNil(t, summary.RemainingModules)
	assert.Empty(t, summary.CompletedModules)
}

func TestGetProgressSummarisesModules(t *testing.T) {
	f := newEducationFixture()
	f.plans.plan = &internalEntity.LessonPlan{
		ID:                 1,
		UserID:             "u1",
		LearningObjective:  "objective",
		CurrentModuleIndex: 1,
		Modules: `[
			{"topic": "A", "status": "completed", "mastery_score": 100},
			{"topic": "B", "status": "current", "mastery_score": 40},
			{"topic": "C", "status": "locked"},
			{"topic": "D", "status": "locked"}
		]`,
	}

	summary, err := f.usecase.GetProgress(context.Background(), "u1")

	require.NoError(t, err)
	assert.True(t, summary.HasLessonPlan)
	require.NotNil(t, summary.CurrentModule)
	assert.Equal(t, "B", summary.CurrentModule.Topic)
	assert.Len(t, summary.CompletedModules, 1)
	assert.Len(t, summary.RemainingModules, 2)
	assert.Equal(t, 4, summary.TotalModules)
	assert.Equal(t, 25.0, summary.ProgressPercentage)
}
