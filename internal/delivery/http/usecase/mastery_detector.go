package usecase

import (
	"context"
	"strings"

	"github.com/tradelingo/tradelingo-be/internal/delivery/http/entity"
	"github.com/tradelingo/tradelingo-be/internal/pkg/mapper"
)

const masteryDetectionPrompt = `You are evaluating whether a student has demonstrated understanding of a trading concept.

Current Module Topic: {{module_topic}}
Module Difficulty: {{module_difficulty}}
Weak Concepts Being Reinforced: {{weak_concepts}}

Student's Message:
"{{user_message}}"

System's Teaching Response:
"{{teaching_response}}"

Based on the student's message, determine if they:
1. Explained the concept correctly in their own words
2. Answered a question correctly
3. Demonstrated applied understanding
4. Asked clarifying questions showing engagement
5. Made connections to related concepts

Respond with ONLY this JSON:
{
  "mastery_detected": <true if student shows clear understanding, false otherwise>,
  "confidence_level": <0.0 to 1.0 representing confidence in their understanding>,
  "reasoning": "<brief explanation of why mastery was or wasn't detected>",
  "concepts_understood": ["<list of specific concepts the student understood>"],
  "areas_for_improvement": ["<concepts that still need work, if any>"]
}

Be generous but accurate. A student asking good clarifying questions shows
engagement (confidence 0.5-0.6). A student explaining concepts correctly
shows understanding (confidence 0.7-0.9). Only mark mastery_detected=true
if confidence >= 0.8.`

// detectMastery evaluates the student's understanding of the current module
// and applies the resulting progress change.
//
// Confidence bands:
//
//	detected && >= 0.8  complete the module, unlock the next
//	[0.6, 0.8)          score += int((confidence - 0.5) * 50)
//	[0.4, 0.6)          score += int(confidence * 10)
//	< 0.4               no score change
//
// The interaction count increments on every evaluated turn regardless of
// outcome. Skipped entirely when there is no current module, the handler
// produced nothing, or the intent is not lesson-related.
func (u *tutorUsecase) detectMastery(ctx context.Context, state *entity.ConversationState) {
	if state.CurrentModule == nil || state.Skill == nil {
		state.Mastery = nil
		return
	}
	if state.Intent == entity.IntentEmotionalSupport || state.Intent == entity.IntentCurriculumModify {
		state.Mastery = nil
		return
	}

	u.markInteraction(state)

	weakConcepts := "none"
	if state.KnowledgeGaps != nil && len(state.KnowledgeGaps.WeakConcepts) > 0 {
		weakConcepts = strings.Join(state.KnowledgeGaps.WeakConcepts, ", ")
	}

	prompt := masteryDetectionPrompt
	prompt = strings.ReplaceAll(prompt, "{{module_topic}}", state.CurrentModule.Topic)
	prompt = strings.ReplaceAll(prompt, "{{module_difficulty}}", string(state.CurrentModule.Difficulty))
	prompt = strings.ReplaceAll(prompt, "{{weak_concepts}}", weakConcepts)
	prompt = strings.ReplaceAll(prompt, "{{user_message}}", state.Message)
	prompt = strings.ReplaceAll(prompt, "{{teaching_response}}", teachingResponseFor(state.Skill))

	raw, err := u.cfg.Generator.GenerateJSON(ctx, prompt)
	if err != nil {
		u.cfg.Log.WithError(err).WithField("user_id", state.UserID).Warn("mastery detection failed")
		state.Mastery = &entity.MasteryResult{Reasoning: "Error during mastery detection"}
		return
	}

	parsed, err := parseObject(raw)
	if err != nil {
		u.cfg.Log.WithError(err).Warn("mastery output unparseable")
		state.Mastery = &entity.MasteryResult{Reasoning: "Error during mastery detection"}
		return
	}

	result := &entity.MasteryResult{
		MasteryDetected:     getBool(parsed, "mastery_detected", false),
		ConfidenceLevel:     getFloat(parsed, "confidence_level", 0.0),
		Reasoning:           getString(parsed, "reasoning", ""),
		ConceptsUnderstood:  getStringList(parsed, "concepts_understood"),
		AreasForImprovement: getStringList(parsed, "areas_for_improvement"),
	}

	switch {
	case result.MasteryDetected && result.ConfidenceLevel >= 0.8:
		result.ProgressUpdate = u.completeCurrentModule(state)
	case result.ConfidenceLevel >= 0.6:
		increment := int((result.ConfidenceLevel - 0.5) * 50)
		result.ProgressUpdate = u.bumpMasteryScore(state, increment)
	case result.ConfidenceLevel >= 0.4:
		increment := int(result.ConfidenceLevel * 10)
		result.ProgressUpdate = u.bumpMasteryScore(state, increment)
	}

	state.Mastery = result
}

func teachingResponseFor(skill *entity.SkillOutput) string {
	parts := []string{}
	if v := getString(skill.Fields, "teaching_explanation", ""); v != "" {
		parts = append(parts, v)
	}
	if v := getString(skill.Fields, "teaching_example", ""); v != "" {
		parts = append(parts, "Example: "+v)
	}
	if v := getString(skill.Fields, "actionable_takeaway", ""); v != "" {
		parts = append(parts, "Takeaway: "+v)
	}
	if v := getString(skill.Fields, "what_happened", ""); v != "" {
		parts = append(parts, v)
	}
	if len(parts) == 0 {
		return "No teaching response available."
	}
	return strings.Join(parts, " ")
}

// markInteraction increments the current module's interaction count. The
// modules column is a JSON document; the whole array is rewritten.
func (u *tutorUsecase) markInteraction(state *entity.ConversationState) {
	index := state.Curriculum.CurrentModuleIndex
	state.Curriculum.Modules[index].InteractionCount++
	state.CurrentModule = &state.Curriculum.Modules[index]

	encoded, err := mapper.EncodeModules(state.Curriculum.Modules)
	if err != nil {
		u.cfg.Log.WithError(err).Warn("failed to encode modules")
		return
	}
	if err := u.cfg.LessonPlanRepo.UpdateModules(nil, state.Curriculum.LessonPlanID, encoded); err != nil {
		u.cfg.Log.WithError(err).WithField("user_id", state.UserID).Warn("failed to record interaction")
	}
}

// completeCurrentModule marks the current module completed at full score and
// unlocks the next one, if any.
func (u *tutorUsecase) completeCurrentModule(state *entity.ConversationState) *entity.ProgressUpdate {
	curriculum := state.Curriculum
	index := curriculum.CurrentModuleIndex
	modules := curriculum.Modules

	modules[index].Status = entity.ModuleStatusCompleted
	modules[index].MasteryScore = 100

	hasNext := index+1 < len(modules)
	nextIndex := index
	nextTopic := ""
	if hasNext {
		modules[index+1].Status = entity.ModuleStatusCurrent
		nextIndex = index + 1
		nextTopic = modules[index+1].Topic
	}

	encoded, err := mapper.EncodeModules(modules)
	if err != nil {
		u.cfg.Log.WithError(err).Warn("failed to encode modules")
		return nil
	}
	if err := u.cfg.LessonPlanRepo.UpdateProgress(nil, curriculum.LessonPlanID, encoded, nextIndex); err != nil {
		u.cfg.Log.WithError(err).WithField("user_id", state.UserID).Error("failed to complete module")
		return nil
	}

	curriculum.CurrentModuleIndex = nextIndex
	u.cfg.Log.WithFields(map[string]any{
		"user_id":         state.UserID,
		"completed_topic": modules[index].Topic,
		"next_topic":      nextTopic,
	}).Info("module completed")

	return &entity.ProgressUpdate{
		ModuleCompleted:    true,
		CompletedTopic:     modules[index].Topic,
		NextTopic:          nextTopic,
		CurriculumComplete: !hasNext,
	}
}

// bumpMasteryScore raises the current module's score, capped at 100.
func (u *tutorUsecase) bumpMasteryScore(state *entity.ConversationState, increment int) *entity.ProgressUpdate {
	curriculum := state.Curriculum
	index := curriculum.CurrentModuleIndex

	newScore := curriculum.Modules[index].MasteryScore + increment
	if newScore > 100 {
		newScore = 100
	}
	curriculum.Modules[index].MasteryScore = newScore

	encoded, err := mapper.EncodeModules(curriculum.Modules)
	if err != nil {
		u.cfg.Log.WithError(err).Warn("failed to encode modules")
		return nil
	}
	if err := u.cfg.LessonPlanRepo.UpdateModules(nil, curriculum.LessonPlanID, encoded); err != nil {
		u.cfg.Log.WithError(err).WithField("user_id", state.UserID).Warn("failed to update mastery score")
		return nil
	}

	return &entity.ProgressUpdate{
		ScoreIncremented: true,
		Increment:        increment,
		NewMasteryScore:  newScore,
	}
}
