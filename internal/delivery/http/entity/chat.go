package entity

// Intent is the classified purpose of a user's message. Closed five-category
// set; every message maps to exactly one.
type Intent string

const (
	IntentTradeExplain     Intent = "trade_explain"
	IntentLessonQuestion   Intent = "lesson_question"
	IntentCurriculumModify Intent = "curriculum_modify"
	IntentEmotionalSupport Intent = "emotional_support"
	IntentGeneralQuestion  Intent = "general_question"
)

// SkillOutput is one handler's structured result. Fields holds the parsed
// gateway JSON; keys are accessed defensively since the prompt's key set is a
// contract with the model, not a guarantee.
type SkillOutput struct {
	Kind   string         `json:"kind"` // educational, trade_explain, curriculum_modify, wellness
	Fields map[string]any `json:"fields"`
}

// ChatTurn is one past message loaded as handler context.
type ChatTurn struct {
	Role            string `json:"role"`
	Message         string `json:"message"`
	Intent          string `json:"intent,omitempty"`
	LearningConcept string `json:"learning_concept,omitempty"`
}

// QuizSnapshot is a past diagnostic quiz loaded as handler context.
type QuizSnapshot struct {
	QuizType      string              `json:"quiz_type"`
	QAPairs       []QuizAnswerPair    `json:"qa_pairs"`
	KnowledgeGaps *KnowledgeGapReport `json:"knowledge_gaps,omitempty"`
	CreatedAt     string              `json:"created_at"`
}

// ConversationState is the per-turn record passed through the orchestrator.
// Each stage reads fields written by earlier stages and writes its own; it is
// never persisted wholesale.
type ConversationState struct {
	// Input
	UserID    string
	SessionID string
	Message   string

	// Context (loaded, no LLM)
	Profile       UserProfile
	Curriculum    *Curriculum
	CurrentModule *Module
	KnowledgeGaps *KnowledgeGapReport
	QuizHistory   []QuizSnapshot
	ChatHistory   []ChatTurn

	// Intent classification
	Intent         Intent
	Confidence     float64
	EmotionalState string

	// Skill handler output (nil when the handler failed)
	Skill *SkillOutput

	// Mastery judgment (nil when detection was skipped or failed)
	Mastery *MasteryResult

	// Final merged envelope
	Final map[string]any
}

type ChatRequest struct {
	UserID    string       `json:"user_id" validate:"required"`
	Message   string       `json:"message" validate:"required"`
	SessionID string       `json:"session_id"`
	Profile   *UserProfile `json:"user_profile,omitempty"`
}

type ChatHistoryItem struct {
	Role      string `json:"role"`
	Message   string `json:"message"`
	Intent    string `json:"intent,omitempty"`
	CreatedAt string `json:"created_at"`
}
