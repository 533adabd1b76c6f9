package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/tradelingo/tradelingo-be/internal/delivery/http/entity"
	"github.com/tradelingo/tradelingo-be/internal/delivery/http/repository"
	internalEntity "github.com/tradelingo/tradelingo-be/internal/entity"
	"github.com/tradelingo/tradelingo-be/internal/pkg/mapper"
	"gorm.io/gorm"
)

const quizQuestionCount = 5

const quizPromptTemplate = `You are a trading education expert creating a diagnostic quiz for a student.

Student profile:
- Trading level: {{trading_level}}
- Trade type: {{trade_type}}
- Preferred market: {{preferred_market}}
- Learning style: {{learning_style}}

Generate exactly 5 multiple-choice diagnostic questions.
Each question must test a DIFFERENT core trading concept relevant to the
student's level and market, and carry exactly 4 answer options with the
index of the correct one.

Respond with ONLY the following JSON (no extra text):
{
  "questions": [
    {
      "question": "<question text>",
      "concept_tested": "<short concept label>",
      "options": ["<option 1>", "<option 2>", "<option 3>", "<option 4>"],
      "correct_index": <0-3>
    }
  ]
}`

const gapAnalysisPromptTemplate = `You are a trading education analyst.

Student profile:
- Trading level: {{trading_level}}
- Trade type: {{trade_type}}

The student answered a diagnostic quiz.

Questions and answers:
{{qa_pairs}}

Analyze the student's responses carefully.

Respond with ONLY the following JSON (no extra text):
{
  "strong_concepts": ["<concepts the student clearly understands>"],
  "weak_concepts": ["<concepts the student struggles with>"],
  "behavioral_patterns": ["<observable learning/trading patterns>"],
  "recommended_focus": ["<top priority topics to study next>"]
}`

const curriculumPromptTemplate = `You are a trading education curriculum designer.

Student profile:
- Trading level: {{trading_level}}
- Trade type: {{trade_type}}
- Learning style: {{learning_style}}
- Preferred market: {{preferred_market}}

Knowledge gap analysis:
- Strong concepts: {{strong_concepts}}
- Weak concepts: {{weak_concepts}}
- Behavioral patterns: {{behavioral_patterns}}
- Recommended focus: {{recommended_focus}}

Difficulty calibration:
- Assessed difficulty level: {{assessed_difficulty}}
- If beginner: use simpler explanations and foundational topics
- If intermediate: include moderate analysis and strategy topics
- If advanced: deeper quantitative analysis and complex strategies

Design a personalised trading curriculum with 4 to 6 modules.
Each module should directly address the student's weak areas while
leveraging their strengths. Match the explanation style to the student's
preferred learning style.

Respond with ONLY the following JSON (no extra text):
{
  "learning_objective": "<one sentence overall goal>",
  "modules": [
    {
      "topic": "<module topic>",
      "difficulty": "beginner | intermediate | advanced",
      "explanation_style": "<style matching student's learning style>",
      "estimated_duration": "<e.g. 15 minutes>"
    }
  ],
  "progression_strategy": "<short description of how modules build on each other>"
}`

// likertOptions replace missing multiple-choice options so a malformed
// question degrades to ungraded self-assessment instead of sinking the quiz.
var likertOptions = []string{
	"Not familiar at all",
	"Slightly familiar",
	"Moderately familiar",
	"Very familiar",
}

type EducationUsecase interface {
	Start(ctx context.Context, req entity.StartEducationRequest) (*entity.StartEducationResponse, error)
	SubmitQuiz(ctx context.Context, req entity.SubmitQuizRequest) (*entity.SubmitQuizResponse, error)
	GetProgress(ctx context.Context, userID string) (*entity.ProgressSummary, error)
}

type EducationConfig struct {
	DB             *gorm.DB
	Generator      Generator
	Log            *logrus.Logger
	Config         *viper.Viper
	UserRepo       repository.UserRepository
	LessonPlanRepo repository.LessonPlanRepository
	ProfileRepo    repository.LearningProfileRepository
	QuizRecordRepo repository.QuizRecordRepository
	TradeRepo      repository.TradeRepository
}

type educationUsecase struct {
	cfg EducationConfig
}

func NewEducationUsecase(cfg EducationConfig) EducationUsecase {
	return &educationUsecase{cfg: cfg}
}

// Start runs onboarding Phase 1: load the profile and generate a 5-question
// diagnostic quiz. Questions missing their 4 options are repaired to a
// Likert self-assessment with grading disabled.
func (u *educationUsecase) Start(ctx context.Context, req entity.StartEducationRequest) (*entity.StartEducationResponse, error) {
	profile, err := u.loadProfile(req.UserID)
	if err != nil {
		return nil, err
	}

	prompt := quizPromptTemplate
	prompt = strings.ReplaceAll(prompt, "{{trading_level}}", profile.TradingLevel)
	prompt = strings.ReplaceAll(prompt, "{{trade_type}}", defaultString(profile.TradeType, "unknown"))
	prompt = strings.ReplaceAll(prompt, "{{preferred_market}}", profile.PreferredMarket)
	prompt = strings.ReplaceAll(prompt, "{{learning_style}}", profile.LearningStyle)

	raw, err := u.cfg.Generator.GenerateJSON(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("quiz generation failed: %w", err)
	}

	parsed, err := parseObject(raw)
	if err != nil {
		return nil, fmt.Errorf("quiz output unparseable: %w", err)
	}

	questions := parseQuizQuestions(parsed)
	if len(questions) == 0 {
		return nil, fmt.Errorf("quiz generation returned no questions")
	}

	u.cfg.Log.WithFields(map[string]any{
		"user_id":   req.UserID,
		"questions": len(questions),
	}).Info("diagnostic quiz generated")

	return &entity.StartEducationResponse{
		QuizQuestions: questions,
		Profile:       profile,
		TradeType:     profile.TradeType,
	}, nil
}

// SubmitQuiz runs onboarding Phase 2: validate answers, analyse knowledge
// gaps, synthesise a curriculum, and persist it as the new lesson plan.
// Count validation happens before any generation call.
func (u *educationUsecase) SubmitQuiz(ctx context.Context, req entity.SubmitQuizRequest) (*entity.SubmitQuizResponse, error) {
	if len(req.QuizAnswers) != len(req.QuizQuestions) {
		return nil, fmt.Errorf("expected %d answers, got %d", len(req.QuizQuestions), len(req.QuizAnswers))
	}

	profile, err := u.loadProfile(req.UserID)
	if err != nil {
		return nil, err
	}

	gaps, err := u.analyseGaps(ctx, profile, req.QuizQuestions, req.QuizAnswers)
	if err != nil {
		return nil, err
	}

	curriculum, err := u.generateCurriculum(ctx, req.UserID, profile, gaps)
	if err != nil {
		return nil, err
	}

	if err := u.persistCurriculum(req.UserID, curriculum, gaps); err != nil {
		return nil, err
	}
	u.recordQuiz(req.UserID, req.QuizQuestions, req.QuizAnswers, gaps)

	return &entity.SubmitQuizResponse{
		KnowledgeGaps: *gaps,
		Curriculum:    *curriculum,
	}, nil
}

// GetProgress summarises curriculum progress for the user's latest plan.
func (u *educationUsecase) GetProgress(ctx context.Context, userID string) (*entity.ProgressSummary, error) {
	plan, err := u.cfg.LessonPlanRepo.FindLatestByUserID(nil, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &entity.ProgressSummary{
				HasLessonPlan:    false,
				CompletedModules: []entity.Module{},
				RemainingModules: []entity.Module{},
			}, nil
		}
		return nil, err
	}

	curriculum, err := mapper.ConvertToCurriculum(plan)
	if err != nil {
		return nil, fmt.Errorf("corrupt lesson plan: %w", err)
	}

	summary := &entity.ProgressSummary{
		HasLessonPlan:       true,
		LearningObjective:   curriculum.LearningObjective,
		CompletedModules:    []entity.Module{},
		RemainingModules:    []entity.Module{},
		TotalModules:        len(curriculum.Modules),
		ProgressionStrategy: curriculum.ProgressionStrategy,
	}

	for i := range curriculum.Modules {
		module := curriculum.Modules[i]
		switch module.Status {
		case entity.ModuleStatusCompleted:
			summary.CompletedModules = append(summary.CompletedModules, module)
		case entity.ModuleStatusCurrent:
			summary.CurrentModule = &module
		default:
			summary.RemainingModules = append(summary.RemainingModules, module)
		}
	}

	if summary.TotalModules > 0 {
		pct := float64(len(summary.CompletedModules)) / float64(summary.TotalModules) * 100
		summary.ProgressPercentage = math.Round(pct*10) / 10
	}

	return summary, nil
}

// loadProfile reads the user's profile fields, creating a default user row
// on first contact.
func (u *educationUsecase) loadProfile(userID string) (entity.UserProfile, error) {
	user, err := u.cfg.UserRepo.FindByUserID(nil, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return entity.UserProfile{}, err
		}
		user = &internalEntity.User{UserID: userID}
		if createErr := u.cfg.UserRepo.Create(nil, user); createErr != nil {
			u.cfg.Log.WithError(createErr).WithField("user_id", userID).Warn("failed to create user row")
		}
	}
	return mapper.ConvertToUserProfile(user), nil
}

func parseQuizQuestions(parsed map[string]any) []entity.QuizQuestion {
	rawQuestions, ok := parsed["questions"].([]any)
	if !ok {
		return nil
	}

	questions := make([]entity.QuizQuestion, 0, len(rawQuestions))
	for _, item := range rawQuestions {
		fields, ok := item.(map[string]any)
		if !ok {
			continue
		}
		question := entity.QuizQuestion{
			Question:      getString(fields, "question", ""),
			ConceptTested: getString(fields, "concept_tested", "general"),
			Options:       getStringList(fields, "options"),
			CorrectIndex:  int(getFloat(fields, "correct_index", 0)),
			Gradable:      true,
		}
		if question.Question == "" {
			continue
		}
		if len(question.Options) != 4 || question.CorrectIndex < 0 || question.CorrectIndex > 3 {
			question.Options = append([]string{}, likertOptions...)
			question.CorrectIndex = -1
			question.Gradable = false
		}
		questions = append(questions, question)
		if len(questions) == quizQuestionCount {
			break
		}
	}
	return questions
}

func (u *educationUsecase) analyseGaps(ctx context.Context, profile entity.UserProfile, questions []entity.QuizQuestion, answers []string) (*entity.KnowledgeGapReport, error) {
	var qa strings.Builder
	for i, q := range questions {
		fmt.Fprintf(&qa, "Q%d (concept: %s): %s\n", i+1, q.ConceptTested, q.Question)
		fmt.Fprintf(&qa, "A%d: %s\n", i+1, answers[i])
	}

	prompt := gapAnalysisPromptTemplate
	prompt = strings.ReplaceAll(prompt, "{{trading_level}}", profile.TradingLevel)
	prompt = strings.ReplaceAll(prompt, "{{trade_type}}", defaultString(profile.TradeType, "unknown"))
	prompt = strings.ReplaceAll(prompt, "{{qa_pairs}}", qa.String())

	raw, err := u.cfg.Generator.GenerateJSON(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("gap analysis failed: %w", err)
	}

	parsed, err := parseObject(raw)
	if err != nil {
		return nil, fmt.Errorf("gap analysis output unparseable: %w", err)
	}

	return &entity.KnowledgeGapReport{
		StrongConcepts:     getStringList(parsed, "strong_concepts"),
		WeakConcepts:       getStringList(parsed, "weak_concepts"),
		BehavioralPatterns: getStringList(parsed, "behavioral_patterns"),
		RecommendedFocus:   getStringList(parsed, "recommended_focus"),
	}, nil
}

func (u *educationUsecase) generateCurriculum(ctx context.Context, userID string, profile entity.UserProfile, gaps *entity.KnowledgeGapReport) (*entity.Curriculum, error) {
	// Difficulty calibration comes from the reflection system's profile
	// when one exists.
	assessedDifficulty := entity.DifficultyBeginner
	if row, err := u.cfg.ProfileRepo.FindByUserID(nil, userID); err == nil {
		assessedDifficulty = mapper.ConvertToLearningProfile(userID, row).DifficultyLevel
	}

	prompt := curriculumPromptTemplate
	prompt = strings.ReplaceAll(prompt, "{{trading_level}}", profile.TradingLevel)
	prompt = strings.ReplaceAll(prompt, "{{trade_type}}", defaultString(profile.TradeType, "unknown"))
	prompt = strings.ReplaceAll(prompt, "{{learning_style}}", profile.LearningStyle)
	prompt = strings.ReplaceAll(prompt, "{{preferred_market}}", profile.PreferredMarket)
	prompt = strings.ReplaceAll(prompt, "{{strong_concepts}}", joinOrNone(gaps.StrongConcepts))
	prompt = strings.ReplaceAll(prompt, "{{weak_concepts}}", joinOrNone(gaps.WeakConcepts))
	prompt = strings.ReplaceAll(prompt, "{{behavioral_patterns}}", joinOrNone(gaps.BehavioralPatterns))
	prompt = strings.ReplaceAll(prompt, "{{recommended_focus}}", joinOrNone(gaps.RecommendedFocus))
	prompt = strings.ReplaceAll(prompt, "{{assessed_difficulty}}", string(assessedDifficulty))

	raw, err := u.cfg.Generator.GenerateJSON(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("curriculum generation failed: %w", err)
	}

	parsed, err := parseObject(raw)
	if err != nil {
		return nil, fmt.Errorf("curriculum output unparseable: %w", err)
	}

	rawModules, _ := parsed["modules"].([]any)
	modules := make([]entity.Module, 0, len(rawModules))
	for i, item := range rawModules {
		fields, ok := item.(map[string]any)
		if !ok {
			continue
		}
		status := entity.ModuleStatusLocked
		if i == 0 {
			status = entity.ModuleStatusCurrent
		}
		modules = append(modules, entity.Module{
			Topic:             getString(fields, "topic", ""),
			Difficulty:        entity.Difficulty(getString(fields, "difficulty", string(entity.DifficultyBeginner))),
			ExplanationStyle:  getString(fields, "explanation_style", profile.LearningStyle),
			EstimatedDuration: getString(fields, "estimated_duration", "15 minutes"),
			Status:            status,
			MasteryScore:      0,
			InteractionCount:  0,
		})
	}
	if len(modules) == 0 {
		return nil, fmt.Errorf("curriculum generation returned no modules")
	}

	return &entity.Curriculum{
		LearningObjective:   getString(parsed, "learning_objective", ""),
		Modules:             modules,
		ProgressionStrategy: getString(parsed, "progression_strategy", ""),
		CurrentModuleIndex:  0,
		KnowledgeGaps:       gaps,
	}, nil
}

func (u *educationUsecase) persistCurriculum(userID string, curriculum *entity.Curriculum, gaps *entity.KnowledgeGapReport) error {
	encodedModules, err := mapper.EncodeModules(curriculum.Modules)
	if err != nil {
		return err
	}
	encodedGaps, err := json.Marshal(gaps)
	if err != nil {
		return err
	}

	plan := &internalEntity.LessonPlan{
		UserID:              userID,
		LearningObjective:   curriculum.LearningObjective,
		Modules:             encodedModules,
		ProgressionStrategy: curriculum.ProgressionStrategy,
		CurrentModuleIndex:  0,
		KnowledgeGaps:       string(encodedGaps),
	}
	if err := u.cfg.LessonPlanRepo.Create(nil, plan); err != nil {
		return fmt.Errorf("failed to persist lesson plan: %w", err)
	}

	curriculum.LessonPlanID = plan.ID
	u.cfg.Log.WithFields(map[string]any{
		"user_id": userID,
		"modules": len(curriculum.Modules),
	}).Info("lesson plan persisted")
	return nil
}

// recordQuiz stores the Q&A pairs and gap snapshot for later lesson
// context. Best-effort.
func (u *educationUsecase) recordQuiz(userID string, questions []entity.QuizQuestion, answers []string, gaps *entity.KnowledgeGapReport) {
	pairs := make([]entity.QuizAnswerPair, 0, len(questions))
	for i, q := range questions {
		pairs = append(pairs, entity.QuizAnswerPair{
			Question:      q.Question,
			ConceptTested: q.ConceptTested,
			Answer:        answers[i],
		})
	}

	encodedPairs, err := json.Marshal(pairs)
	if err != nil {
		return
	}
	encodedGaps, err := json.Marshal(gaps)
	if err != nil {
		return
	}

	record := &internalEntity.QuizRecord{
		UserID:        userID,
		QuizType:      "diagnostic",
		QAPairs:       string(encodedPairs),
		KnowledgeGaps: string(encodedGaps),
	}
	if err := u.cfg.QuizRecordRepo.Create(nil, record); err != nil {
		u.cfg.Log.WithError(err).WithField("user_id", userID).Warn("failed to record quiz")
	}
}
