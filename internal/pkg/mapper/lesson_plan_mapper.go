package mapper

import (
	"encoding/json"

	oldEntity "github.com/tradelingo/tradelingo-be/internal/delivery/http/entity"
	dbEntity "github.com/tradelingo/tradelingo-be/internal/entity"
)

// NormalizeModules backfills progress fields on modules loaded from storage.
// Documents written before progress tracking existed carry no
// status/mastery_score/interaction_count; status is derived from the module's
// position relative to the current index. Business logic downstream can then
// assume fully populated records.
func NormalizeModules(modules []oldEntity.Module, currentModuleIndex int) []oldEntity.Module {
	normalized := make([]oldEntity.Module, len(modules))
	for i, m := range modules {
		if m.Status == "" {
			switch {
			case i < currentModuleIndex:
				m.Status = oldEntity.ModuleStatusCompleted
			case i == currentModuleIndex:
				m.Status = oldEntity.ModuleStatusCurrent
			default:
				m.Status = oldEntity.ModuleStatusLocked
			}
		}
		if m.MasteryScore < 0 {
			m.MasteryScore = 0
		}
		if m.InteractionCount < 0 {
			m.InteractionCount = 0
		}
		normalized[i] = m
	}
	return normalized
}

// ConvertToCurriculum decodes a lesson plan row into the domain curriculum,
// applying module normalization.
func ConvertToCurriculum(plan *dbEntity.LessonPlan) (*oldEntity.Curriculum, error) {
	var modules []oldEntity.Module
	if plan.Modules != "" {
		if err := json.Unmarshal([]byte(plan.Modules), &modules); err != nil {
			return nil, err
		}
	}

	var gaps *oldEntity.KnowledgeGapReport
	if plan.KnowledgeGaps != "" {
		var report oldEntity.KnowledgeGapReport
		if err := json.Unmarshal([]byte(plan.KnowledgeGaps), &report); err == nil {
			gaps = &report
		}
	}

	return &oldEntity.Curriculum{
		LessonPlanID:        plan.ID,
		LearningObjective:   plan.LearningObjective,
		Modules:             NormalizeModules(modules, plan.CurrentModuleIndex),
		ProgressionStrategy: plan.ProgressionStrategy,
		CurrentModuleIndex:  plan.CurrentModuleIndex,
		KnowledgeGaps:       gaps,
	}, nil
}

// EncodeModules serialises a module list for the lesson plan's JSON column.
func EncodeModules(modules []oldEntity.Module) (string, error) {
	raw, err := json.Marshal(modules)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// ConvertToLearningProfile decodes a learning profile row, or returns the
// default profile when row is nil (lazy creation: nothing is persisted until
// the first reflection save).
func ConvertToLearningProfile(userID string, row *dbEntity.LearningProfile) *oldEntity.LearningProfile {
	if row == nil {
		return &oldEntity.LearningProfile{
			UserID:          userID,
			DifficultyLevel: oldEntity.DifficultyBeginner,
		}
	}

	profile := &oldEntity.LearningProfile{
		UserID:                   row.UserID,
		BehavioralPatternSummary: row.BehavioralPatternSummary,
		ConfidenceLevelEstimate:  row.ConfidenceLevelEstimate,
		DifficultyLevel:          oldEntity.Difficulty(row.DifficultyLevel),
		NextFocusArea:            row.NextFocusArea,
		ReflectionSummary:        row.ReflectionSummary,
		ReflectionCount:          row.ReflectionCount,
	}
	if profile.DifficultyLevel == "" {
		profile.DifficultyLevel = oldEntity.DifficultyBeginner
	}
	profile.KnowledgeGaps = decodeStringList(row.KnowledgeGaps)
	profile.LearningStrengths = decodeStringList(row.LearningStrengths)
	profile.RepeatedMistakes = decodeStringList(row.RepeatedMistakes)
	profile.EmotionalTendencies = decodeStringList(row.EmotionalTendencies)
	return profile
}

// ConvertToUserProfile maps the users row to the prompt-facing profile,
// filling sensible defaults for blank fields.
func ConvertToUserProfile(user *dbEntity.User) oldEntity.UserProfile {
	profile := oldEntity.UserProfile{
		TradingLevel:     "beginner",
		LearningStyle:    "visual",
		RiskTolerance:    "medium",
		PreferredMarket:  "stocks",
		TradingFrequency: "daily",
	}
	if user == nil {
		return profile
	}
	if user.TradingLevel != "" {
		profile.TradingLevel = user.TradingLevel
	}
	if user.LearningStyle != "" {
		profile.LearningStyle = user.LearningStyle
	}
	if user.RiskTolerance != "" {
		profile.RiskTolerance = user.RiskTolerance
	}
	if user.PreferredMarket != "" {
		profile.PreferredMarket = user.PreferredMarket
	}
	if user.TradingFrequency != "" {
		profile.TradingFrequency = user.TradingFrequency
	}
	profile.TradeType = user.TradeType
	return profile
}

// ConvertToQuizSnapshot decodes a quiz record row into handler context.
func ConvertToQuizSnapshot(record *dbEntity.QuizRecord) oldEntity.QuizSnapshot {
	snapshot := oldEntity.QuizSnapshot{
		QuizType:  record.QuizType,
		CreatedAt: record.CreatedAt.Format("2006-01-02"),
	}
	if record.QAPairs != "" {
		_ = json.Unmarshal([]byte(record.QAPairs), &snapshot.QAPairs)
	}
	if record.KnowledgeGaps != "" {
		var gaps oldEntity.KnowledgeGapReport
		if err := json.Unmarshal([]byte(record.KnowledgeGaps), &gaps); err == nil {
			snapshot.KnowledgeGaps = &gaps
		}
	}
	return snapshot
}

func decodeStringList(raw string) []string {
	if raw == "" {
		return nil
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil
	}
	return list
}

// EncodeStringList serialises a string list for a JSON text column.
func EncodeStringList(list []string) string {
	if list == nil {
		list = []string{}
	}
	raw, _ := json.Marshal(list)
	return string(raw)
}
