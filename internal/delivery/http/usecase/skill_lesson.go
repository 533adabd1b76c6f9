package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/tradelingo/tradelingo-be/internal/delivery/http/entity"
)

const (
	quizBlockMaxLines     = 30
	chatBlockMaxEntries   = 20
	chatBlockMaxMsgLength = 200
)

const lessonPromptTemplate = `You are an expert trading educator. You teach trading concepts through the OADT framework:
- OBSERVE: Understand what the user is asking or experiencing
- ANALYZE: Identify knowledge gaps and personalize to their level
- DECIDE: Choose the most appropriate concept to teach
- TEACH: Provide a clear, actionable lesson

USER PROFILE:
- Trading Level: {{trading_level}}
- Learning Style: {{learning_style}}
- Risk Tolerance: {{risk_tolerance}}

USER QUESTION/CONTEXT:
"{{user_message}}"

**IMPORTANT GUIDELINES**:
1. Never provide buy/sell signals or specific stock recommendations
2. Focus on concepts, reasoning, and market mechanics
3. If user asks something already taught, provide a fresh perspective
4. Always include real-world examples relevant to their level
5. End with ONE actionable takeaway
6. Suggest next concept to learn

Your tone should be {{tone}}.

Respond with this EXACT JSON format:
{
    "observation": "What is the user asking/experiencing? What context matters?",
    "analysis": "What patterns or gaps did you identify? How does this relate to their level?",
    "learning_concept": "The key concept to teach (e.g., 'Position Sizing', 'Risk Management')",
    "why_it_matters": "Why is this concept important for their trading journey?",
    "teaching_explanation": "2-3 paragraph clear, simple explanation of the concept",
    "teaching_example": "Concrete real-world example relevant to their level and experience",
    "actionable_takeaway": "ONE specific action they can take today to apply this",
    "next_learning_suggestion": "What concept should they learn next?"
}`

// teachLesson generates educational content via the OADT loop. Serves both
// lesson_question and general_question intents; curriculum, quiz, and chat
// context blocks are appended only when the data exists, each bounded to
// keep the prompt size sane.
func (u *tutorUsecase) teachLesson(ctx context.Context, state *entity.ConversationState) {
	prompt := lessonPromptTemplate
	prompt = strings.ReplaceAll(prompt, "{{trading_level}}", state.Profile.TradingLevel)
	prompt = strings.ReplaceAll(prompt, "{{learning_style}}", state.Profile.LearningStyle)
	prompt = strings.ReplaceAll(prompt, "{{risk_tolerance}}", state.Profile.RiskTolerance)
	prompt = strings.ReplaceAll(prompt, "{{user_message}}", state.Message)
	prompt = strings.ReplaceAll(prompt, "{{tone}}", toneFor(state.EmotionalState))

	if block := buildCurriculumBlock(state); block != "" {
		prompt += block
	}
	if block := buildQuizHistoryBlock(state.QuizHistory); block != "" {
		prompt += block
	}
	if block := buildChatHistoryBlock(state.ChatHistory); block != "" {
		prompt += block
	}

	raw, err := u.cfg.Generator.GenerateJSON(ctx, prompt)
	if err != nil {
		u.cfg.Log.WithError(err).WithField("user_id", state.UserID).Error("lesson generation failed")
		state.Skill = nil
		return
	}

	fields, err := parseObject(raw)
	if err != nil {
		u.cfg.Log.WithError(err).Warn("lesson output unparseable")
		state.Skill = nil
		return
	}

	state.Skill = &entity.SkillOutput{Kind: "educational", Fields: fields}
}

func buildCurriculumBlock(state *entity.ConversationState) string {
	if state.CurrentModule == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n\nCURRICULUM CONTEXT:\n")
	fmt.Fprintf(&b, "- Current module: %s (%s)\n", state.CurrentModule.Topic, state.CurrentModule.Difficulty)
	fmt.Fprintf(&b, "- Explanation style: %s\n", state.CurrentModule.ExplanationStyle)
	if state.KnowledgeGaps != nil && len(state.KnowledgeGaps.WeakConcepts) > 0 {
		fmt.Fprintf(&b, "- Weak concepts to reinforce: %s\n", strings.Join(state.KnowledgeGaps.WeakConcepts, ", "))
	}
	b.WriteString("Anchor the lesson to the current module where the question allows it.")
	return b.String()
}

func buildQuizHistoryBlock(history []entity.QuizSnapshot) string {
	if len(history) == 0 {
		return ""
	}

	lines := []string{"\n\nPAST DIAGNOSTIC QUIZZES:"}
	for _, quiz := range history {
		if len(lines) > quizBlockMaxLines {
			break
		}
		lines = append(lines, fmt.Sprintf("- Quiz (%s, %s):", quiz.QuizType, quiz.CreatedAt))
		for _, pair := range quiz.QAPairs {
			if len(lines) > quizBlockMaxLines {
				break
			}
			lines = append(lines, fmt.Sprintf("  Q: %s [%s] A: %s", pair.Question, pair.ConceptTested, pair.Answer))
		}
	}
	return strings.Join(lines, "\n")
}

func buildChatHistoryBlock(history []entity.ChatTurn) string {
	if len(history) == 0 {
		return ""
	}

	turns := history
	if len(turns) > chatBlockMaxEntries {
		turns = turns[len(turns)-chatBlockMaxEntries:]
	}

	var b strings.Builder
	b.WriteString("\n\nRECENT CONVERSATION:\n")
	for _, turn := range turns {
		fmt.Fprintf(&b, "%s: %s\n", turn.Role, truncate(turn.Message, chatBlockMaxMsgLength))
	}
	return b.String()
}
