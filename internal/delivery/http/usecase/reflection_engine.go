package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tradelingo/tradelingo-be/internal/delivery/http/entity"
	internalEntity "github.com/tradelingo/tradelingo-be/internal/entity"
	"github.com/tradelingo/tradelingo-be/internal/pkg/mapper"
)

const reflectionPrompt = `You are an internal meta-learning AI reflecting on a student's progress.
This reflection is NOT shown to the student - it is stored to improve
future teaching.

STUDENT PROFILE:
- Trading Level: {{trading_level}}
- Trade Type: {{trade_type}}
- Current Difficulty: {{difficulty_level}}

CURRICULUM STATE:
- Current Module: {{current_module_topic}}
- Module Mastery Score: {{mastery_score}}
- Modules Completed: {{completed_count}} / {{total_modules}}

CURRENT INTERACTION:
- User Message: "{{user_message}}"
- Intent: {{intent}}
- Detected Emotion: {{detected_emotion}}

MASTERY DETECTION RESULT:
- Mastery Detected: {{mastery_detected}}
- Confidence Level: {{confidence_level}}
- Concepts Understood: {{concepts_understood}}
- Areas for Improvement: {{areas_for_improvement}}

EXISTING LEARNING PROFILE:
- Previous Knowledge Gaps: {{existing_knowledge_gaps}}
- Previous Behavioral Patterns: {{existing_behavioral_patterns}}
- Previous Repeated Mistakes: {{existing_repeated_mistakes}}
- Reflection Count: {{reflection_count}}

Based on ALL of the above, generate a structured reflection.
Consider:
1. Patterns across interactions (repeated mistakes? improving areas?)
2. Emotional tendencies (consistently frustrated? growing confident?)
3. Learning strengths (what do they grasp quickly?)
4. Whether difficulty should increase, decrease, or stay the same
5. What the next teaching focus should be

Respond with ONLY this JSON:
{
  "updated_knowledge_gaps": ["<list of current weak concepts>"],
  "behavioral_pattern_summary": "<1-2 sentence summary of behavioral tendencies>",
  "confidence_level_estimate": <0.0 to 1.0>,
  "recommended_difficulty_adjustment": "<increase | decrease | maintain>",
  "next_focus_area": "<specific topic or skill to focus on next>",
  "reflection_summary": "<short internal note about student progress>",
  "learning_strengths": ["<what the student is good at>"],
  "repeated_mistakes": ["<mistakes that keep recurring>"],
  "emotional_tendency": "<dominant emotional pattern or null>"
}

Important:
- Be objective and data-driven
- Do NOT include therapy language or psychological labels
- Stay educational
- Do NOT include financial forecasts`

var strongEmotions = map[string]bool{
	"frustrated":  true,
	"anxious":     true,
	"stressed":    true,
	"upset":       true,
	"overwhelmed": true,
}

// shouldTriggerReflection decides whether this turn warrants a reflection.
// Any one condition suffices: a module was just completed, a trade was
// explained, a strong emotional signal appeared, or the current module's
// interaction count hit a multiple of 5.
func (u *tutorUsecase) shouldTriggerReflection(state *entity.ConversationState) bool {
	if state.Mastery != nil && state.Mastery.ProgressUpdate != nil && state.Mastery.ProgressUpdate.ModuleCompleted {
		return true
	}
	if state.Intent == entity.IntentTradeExplain {
		return true
	}
	if strongEmotions[strings.ToLower(state.EmotionalState)] {
		return true
	}
	if state.CurrentModule != nil {
		count := state.CurrentModule.InteractionCount
		if count > 0 && count%5 == 0 {
			return true
		}
	}
	return false
}

// runReflection generates and persists a structured reflection about the
// student. The output never surfaces to the user.
func (u *tutorUsecase) runReflection(ctx context.Context, state *entity.ConversationState) error {
	row, err := u.cfg.ProfileRepo.FindByUserID(nil, state.UserID)
	if err != nil {
		row = nil
	}
	existing := mapper.ConvertToLearningProfile(state.UserID, row)

	currentModuleTopic := "N/A"
	masteryScore := 0
	if state.CurrentModule != nil {
		currentModuleTopic = state.CurrentModule.Topic
		masteryScore = state.CurrentModule.MasteryScore
	}

	completedCount := 0
	totalModules := 0
	if state.Curriculum != nil {
		totalModules = len(state.Curriculum.Modules)
		for _, m := range state.Curriculum.Modules {
			if m.Status == entity.ModuleStatusCompleted {
				completedCount++
			}
		}
	}

	masteryDetected := false
	confidenceLevel := 0.0
	conceptsUnderstood := "none"
	areasForImprovement := "none"
	if state.Mastery != nil {
		masteryDetected = state.Mastery.MasteryDetected
		confidenceLevel = state.Mastery.ConfidenceLevel
		if len(state.Mastery.ConceptsUnderstood) > 0 {
			conceptsUnderstood = strings.Join(state.Mastery.ConceptsUnderstood, ", ")
		}
		if len(state.Mastery.AreasForImprovement) > 0 {
			areasForImprovement = strings.Join(state.Mastery.AreasForImprovement, ", ")
		}
	}

	emotion := state.EmotionalState
	if emotion == "" {
		emotion = "calm"
	}

	replacements := map[string]string{
		"{{trading_level}}":                 state.Profile.TradingLevel,
		"{{trade_type}}":                    defaultString(state.Profile.TradeType, "unknown"),
		"{{difficulty_level}}":              string(existing.DifficultyLevel),
		"{{current_module_topic}}":          currentModuleTopic,
		"{{mastery_score}}":                 fmt.Sprintf("%d", masteryScore),
		"{{completed_count}}":               fmt.Sprintf("%d", completedCount),
		"{{total_modules}}":                 fmt.Sprintf("%d", totalModules),
		"{{user_message}}":                  truncate(state.Message, 500),
		"{{intent}}":                        string(state.Intent),
		"{{detected_emotion}}":              emotion,
		"{{mastery_detected}}":              fmt.Sprintf("%t", masteryDetected),
		"{{confidence_level}}":              fmt.Sprintf("%.2f", confidenceLevel),
		"{{concepts_understood}}":           conceptsUnderstood,
		"{{areas_for_improvement}}":         areasForImprovement,
		"{{existing_knowledge_gaps}}":       joinOrNone(existing.KnowledgeGaps),
		"{{existing_behavioral_patterns}}":  defaultString(existing.BehavioralPatternSummary, "none"),
		"{{existing_repeated_mistakes}}":    joinOrNone(existing.RepeatedMistakes),
		"{{reflection_count}}":              fmt.Sprintf("%d", existing.ReflectionCount),
	}

	prompt := reflectionPrompt
	for placeholder, value := range replacements {
		prompt = strings.ReplaceAll(prompt, placeholder, value)
	}

	raw, err := u.cfg.Generator.GenerateJSON(ctx, prompt)
	if err != nil {
		return fmt.Errorf("reflection generation failed: %w", err)
	}

	parsed, err := parseObject(raw)
	if err != nil {
		return fmt.Errorf("reflection output unparseable: %w", err)
	}

	return u.saveReflection(state.UserID, existing, parsed)
}

// saveReflection merges the reflection into the longitudinal learning
// profile. Merge rules are exact: gaps grow monotonically (set union),
// repeated mistakes keep the last 10 deduplicated in order, emotional
// tendencies append only novel values keeping the last 5, difficulty moves
// at most one step per reflection, scalars are overwritten.
func (u *tutorUsecase) saveReflection(userID string, existing *entity.LearningProfile, reflection map[string]any) error {
	mergedGaps := unionStrings(existing.KnowledgeGaps, getStringList(reflection, "updated_knowledge_gaps"))
	mergedMistakes := lastNDeduped(append(append([]string{}, existing.RepeatedMistakes...), getStringList(reflection, "repeated_mistakes")...), 10)

	tendencies := existing.EmotionalTendencies
	if tendency := getString(reflection, "emotional_tendency", ""); tendency != "" && !strings.EqualFold(tendency, "null") {
		if !containsString(tendencies, tendency) {
			tendencies = append(tendencies, tendency)
			if len(tendencies) > 5 {
				tendencies = tendencies[len(tendencies)-5:]
			}
		}
	}

	adjustment := getString(reflection, "recommended_difficulty_adjustment", "maintain")
	newDifficulty := applyDifficultyAdjustment(existing.DifficultyLevel, adjustment)

	strengths := getStringList(reflection, "learning_strengths")
	if strengths == nil {
		strengths = existing.LearningStrengths
	}

	now := time.Now().UTC()
	row := &internalEntity.LearningProfile{
		UserID:                   userID,
		BehavioralPatternSummary: getString(reflection, "behavioral_pattern_summary", existing.BehavioralPatternSummary),
		KnowledgeGaps:            mapper.EncodeStringList(mergedGaps),
		ConfidenceLevelEstimate:  getFloat(reflection, "confidence_level_estimate", existing.ConfidenceLevelEstimate),
		DifficultyLevel:          string(newDifficulty),
		NextFocusArea:            getString(reflection, "next_focus_area", ""),
		ReflectionSummary:        getString(reflection, "reflection_summary", ""),
		LearningStrengths:        mapper.EncodeStringList(strengths),
		RepeatedMistakes:         mapper.EncodeStringList(mergedMistakes),
		EmotionalTendencies:      mapper.EncodeStringList(tendencies),
		LastReflectionAt:         &now,
	}

	if err := u.cfg.ProfileRepo.Upsert(nil, row); err != nil {
		return fmt.Errorf("failed to save reflection: %w", err)
	}
	if err := u.cfg.ProfileRepo.IncrementReflectionCount(nil, userID); err != nil {
		return fmt.Errorf("failed to increment reflection count: %w", err)
	}

	u.cfg.Log.WithFields(map[string]any{
		"user_id":    userID,
		"difficulty": newDifficulty,
		"gaps":       len(mergedGaps),
	}).Info("learning profile updated")
	return nil
}

var difficultyOrder = []entity.Difficulty{
	entity.DifficultyBeginner,
	entity.DifficultyIntermediate,
	entity.DifficultyAdvanced,
}

// applyDifficultyAdjustment moves the level one step in the recommended
// direction, clamped at the ends.
func applyDifficultyAdjustment(current entity.Difficulty, adjustment string) entity.Difficulty {
	if adjustment != "increase" && adjustment != "decrease" {
		return current
	}

	index := 0
	for i, level := range difficultyOrder {
		if level == current {
			index = i
			break
		}
	}

	if adjustment == "increase" && index < len(difficultyOrder)-1 {
		index++
	} else if adjustment == "decrease" && index > 0 {
		index--
	}
	return difficultyOrder[index]
}

func unionStrings(old, incoming []string) []string {
	seen := make(map[string]bool, len(old)+len(incoming))
	merged := make([]string, 0, len(old)+len(incoming))
	for _, s := range old {
		if !seen[s] {
			seen[s] = true
			merged = append(merged, s)
		}
	}
	for _, s := range incoming {
		if !seen[s] {
			seen[s] = true
			merged = append(merged, s)
		}
	}
	return merged
}

func lastNDeduped(items []string, n int) []string {
	seen := make(map[string]bool, len(items))
	deduped := make([]string, 0, len(items))
	for _, s := range items {
		if !seen[s] {
			seen[s] = true
			deduped = append(deduped, s)
		}
	}
	if len(deduped) > n {
		deduped = deduped[len(deduped)-n:]
	}
	return deduped
}

func containsString(items []string, target string) bool {
	for _, s := range items {
		if s == target {
			return true
		}
	}
	return false
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
