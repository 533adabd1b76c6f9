package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/tradelingo/tradelingo-be/internal/delivery/http/entity"
	"github.com/tradelingo/tradelingo-be/internal/pkg/mapper"
)

const curriculumModifyPrompt = `You are a personalised trading curriculum designer.

The student wants to adjust their learning plan.

Student profile:
- Trading level: {{trading_level}}
- Learning style: {{learning_style}}
- Trade type: {{trade_type}}

Current module:
{{current_module}}

Student request:
"{{user_message}}"

Decide how to adjust the curriculum and respond with ONLY this JSON:
{
  "adjustment_type": "simplified | advanced | refocused | style_change",
  "new_focus": "A short description of the adjusted focus",
  "updated_module": {
    "topic": "...",
    "difficulty": "beginner | intermediate | advanced",
    "explanation_style": "...",
    "estimated_duration": "..."
  }
}`

// modifyCurriculum adjusts the current module per the user's request and
// persists the change. The module keeps its progress fields; only the
// descriptive fields are replaced.
func (u *tutorUsecase) modifyCurriculum(ctx context.Context, state *entity.ConversationState) {
	currentModuleDesc := "No active module"
	if state.CurrentModule != nil {
		currentModuleDesc = fmt.Sprintf("topic: %s, difficulty: %s, style: %s, duration: %s",
			state.CurrentModule.Topic, state.CurrentModule.Difficulty,
			state.CurrentModule.ExplanationStyle, state.CurrentModule.EstimatedDuration)
	}

	prompt := curriculumModifyPrompt
	prompt = strings.ReplaceAll(prompt, "{{trading_level}}", state.Profile.TradingLevel)
	prompt = strings.ReplaceAll(prompt, "{{learning_style}}", state.Profile.LearningStyle)
	prompt = strings.ReplaceAll(prompt, "{{trade_type}}", defaultString(state.Profile.TradeType, "unknown"))
	prompt = strings.ReplaceAll(prompt, "{{current_module}}", currentModuleDesc)
	prompt = strings.ReplaceAll(prompt, "{{user_message}}", state.Message)

	raw, err := u.cfg.Generator.GenerateJSON(ctx, prompt)
	if err != nil {
		u.cfg.Log.WithError(err).WithField("user_id", state.UserID).Error("curriculum modify failed")
		state.Skill = nil
		return
	}

	fields, err := parseObject(raw)
	if err != nil {
		u.cfg.Log.WithError(err).Warn("curriculum modify output unparseable")
		state.Skill = nil
		return
	}

	if updated, ok := fields["updated_module"].(map[string]any); ok {
		if err := u.persistModuleUpdate(state, updated); err != nil {
			u.cfg.Log.WithError(err).WithField("user_id", state.UserID).Warn("failed to persist module update")
		}
	}

	state.Skill = &entity.SkillOutput{Kind: "curriculum_modify", Fields: fields}
}

// persistModuleUpdate overwrites the descriptive fields of the current
// module in the latest lesson plan.
func (u *tutorUsecase) persistModuleUpdate(state *entity.ConversationState, updated map[string]any) error {
	if state.Curriculum == nil || state.CurrentModule == nil {
		return nil
	}

	modules := state.Curriculum.Modules
	index := state.Curriculum.CurrentModuleIndex
	if index < 0 || index >= len(modules) {
		return nil
	}

	module := modules[index]
	module.Topic = getString(updated, "topic", module.Topic)
	module.Difficulty = entity.Difficulty(getString(updated, "difficulty", string(module.Difficulty)))
	module.ExplanationStyle = getString(updated, "explanation_style", module.ExplanationStyle)
	module.EstimatedDuration = getString(updated, "estimated_duration", module.EstimatedDuration)
	modules[index] = module

	encoded, err := mapper.EncodeModules(modules)
	if err != nil {
		return err
	}
	return u.cfg.LessonPlanRepo.UpdateModules(nil, state.Curriculum.LessonPlanID, encoded)
}
