package entity

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

type ModuleStatus string

const (
	ModuleStatusLocked    ModuleStatus = "locked"
	ModuleStatusCurrent   ModuleStatus = "current"
	ModuleStatusCompleted ModuleStatus = "completed"
)

// Module is one topic-sized unit of a personalised curriculum.
type Module struct {
	Topic             string       `json:"topic"`
	Difficulty        Difficulty   `json:"difficulty"`
	ExplanationStyle  string       `json:"explanation_style"`
	EstimatedDuration string       `json:"estimated_duration"`
	Status            ModuleStatus `json:"status"`
	MasteryScore      int          `json:"mastery_score"`
	InteractionCount  int          `json:"interaction_count"`
}

// KnowledgeGapReport is produced once by gap analysis and attached to the
// curriculum at creation. Immutable afterwards.
type KnowledgeGapReport struct {
	StrongConcepts     []string `json:"strong_concepts"`
	WeakConcepts       []string `json:"weak_concepts"`
	BehavioralPatterns []string `json:"behavioral_patterns"`
	RecommendedFocus   []string `json:"recommended_focus"`
}

// Curriculum is the loaded, normalised view of the user's latest lesson plan.
// Module order is progression order. Exactly one module is "current" unless
// every module is completed.
type Curriculum struct {
	LessonPlanID        uint                `json:"lesson_plan_id"`
	LearningObjective   string              `json:"learning_objective"`
	Modules             []Module            `json:"modules"`
	ProgressionStrategy string              `json:"progression_strategy"`
	CurrentModuleIndex  int                 `json:"current_module_index"`
	KnowledgeGaps       *KnowledgeGapReport `json:"knowledge_gaps,omitempty"`
}

// CurrentModule returns the module at the current index, or nil when the
// curriculum is fully completed (index past the end).
func (c *Curriculum) CurrentModule() *Module {
	if c == nil || c.CurrentModuleIndex < 0 || c.CurrentModuleIndex >= len(c.Modules) {
		return nil
	}
	return &c.Modules[c.CurrentModuleIndex]
}

// UserProfile holds the onboarding/profile fields the prompts template in.
type UserProfile struct {
	TradingLevel     string `json:"trading_level"`
	LearningStyle    string `json:"learning_style"`
	RiskTolerance    string `json:"risk_tolerance"`
	PreferredMarket  string `json:"preferred_market"`
	TradingFrequency string `json:"trading_frequency"`
	TradeType        string `json:"trade_type,omitempty"`
}

// LearningProfile is the longitudinal per-user profile maintained by the
// reflection engine.
type LearningProfile struct {
	UserID                   string     `json:"user_id"`
	BehavioralPatternSummary string     `json:"behavioral_pattern_summary"`
	KnowledgeGaps            []string   `json:"knowledge_gaps"`
	ConfidenceLevelEstimate  float64    `json:"confidence_level_estimate"`
	DifficultyLevel          Difficulty `json:"difficulty_level"`
	NextFocusArea            string     `json:"next_focus_area"`
	ReflectionSummary        string     `json:"reflection_summary"`
	LearningStrengths        []string   `json:"learning_strengths"`
	RepeatedMistakes         []string   `json:"repeated_mistakes"`
	EmotionalTendencies      []string   `json:"emotional_tendencies"`
	ReflectionCount          int        `json:"reflection_count"`
}

// ProgressUpdate describes what mastery detection did to the curriculum this
// turn. Included in the response envelope only when something changed.
type ProgressUpdate struct {
	ModuleCompleted    bool   `json:"module_completed,omitempty"`
	CompletedTopic     string `json:"completed_topic,omitempty"`
	NextTopic          string `json:"next_topic,omitempty"`
	CurriculumComplete bool   `json:"curriculum_complete,omitempty"`
	ScoreIncremented   bool   `json:"score_incremented,omitempty"`
	Increment          int    `json:"increment,omitempty"`
	NewMasteryScore    int    `json:"new_mastery_score,omitempty"`
}

// MasteryResult is the detector's judgment for one turn.
type MasteryResult struct {
	MasteryDetected     bool            `json:"mastery_detected"`
	ConfidenceLevel     float64         `json:"confidence_level"`
	Reasoning           string          `json:"reasoning,omitempty"`
	ConceptsUnderstood  []string        `json:"concepts_understood,omitempty"`
	AreasForImprovement []string        `json:"areas_for_improvement,omitempty"`
	ProgressUpdate      *ProgressUpdate `json:"progress_update,omitempty"`
}

// ProgressSummary is the read-only view of curriculum progress.
type ProgressSummary struct {
	HasLessonPlan       bool     `json:"has_lesson_plan"`
	LearningObjective   string   `json:"learning_objective,omitempty"`
	CurrentModule       *Module  `json:"current_module,omitempty"`
	CompletedModules    []Module `json:"completed_modules"`
	RemainingModules    []Module `json:"remaining_modules"`
	ProgressPercentage  float64  `json:"progress_percentage"`
	TotalModules        int      `json:"total_modules"`
	ProgressionStrategy string   `json:"progression_strategy,omitempty"`
}
