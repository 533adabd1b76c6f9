package entity

import (
	"time"

	"gorm.io/gorm"
)

// User - Profile fields consumed by quiz generation and the skill handlers.
// Authentication lives outside this service; user_id arrives pre-verified.
type User struct {
	ID                uint           `gorm:"primarykey" json:"id"`
	UserID            string         `gorm:"uniqueIndex;size:100;not null" json:"user_id"`
	TradingLevel      string         `gorm:"size:20;default:beginner" json:"trading_level"` // beginner, intermediate, advanced
	LearningStyle     string         `gorm:"size:30;default:visual" json:"learning_style"`
	RiskTolerance     string         `gorm:"size:20;default:medium" json:"risk_tolerance"`
	PreferredMarket   string         `gorm:"size:30;default:stocks" json:"preferred_market"`
	TradingFrequency  string         `gorm:"size:20;default:daily" json:"trading_frequency"`
	TradeType         string         `gorm:"size:20" json:"trade_type"` // scalper, day_trader, swing_trader, investor, unknown
	HasConnectedTrades bool          `gorm:"default:false" json:"has_connected_trades"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// LessonPlan - One generated curriculum per row. The newest created_at row per
// user is authoritative; older rows are retained as history and never mutated
// after being superseded.
type LessonPlan struct {
	ID                  uint           `gorm:"primarykey" json:"id"`
	UserID              string         `gorm:"size:100;not null;index" json:"user_id"`
	LearningObjective   string         `gorm:"type:text" json:"learning_objective"`
	Modules             string         `gorm:"type:text;not null" json:"modules"` // JSON array of modules with progress fields
	ProgressionStrategy string         `gorm:"type:text" json:"progression_strategy"`
	CurrentModuleIndex  int            `gorm:"default:0" json:"current_module_index"`
	KnowledgeGaps       string         `gorm:"type:text" json:"knowledge_gaps"` // JSON gap report, immutable after creation
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (LessonPlan) TableName() string {
	return "lesson_plans"
}

// LearningProfile - Longitudinal per-user profile maintained by the reflection
// engine. Survives curriculum regeneration. One row per user (upsert).
type LearningProfile struct {
	ID                       uint           `gorm:"primarykey" json:"id"`
	UserID                   string         `gorm:"uniqueIndex;size:100;not null" json:"user_id"`
	BehavioralPatternSummary string         `gorm:"type:text" json:"behavioral_pattern_summary"`
	KnowledgeGaps            string         `gorm:"type:text" json:"knowledge_gaps"` // JSON array, grows monotonically
	ConfidenceLevelEstimate  float64        `gorm:"default:0" json:"confidence_level_estimate"`
	DifficultyLevel          string         `gorm:"size:20;default:beginner" json:"difficulty_level"`
	NextFocusArea            string         `gorm:"type:text" json:"next_focus_area"`
	ReflectionSummary        string         `gorm:"type:text" json:"reflection_summary"`
	LearningStrengths        string         `gorm:"type:text" json:"learning_strengths"`   // JSON array
	RepeatedMistakes         string         `gorm:"type:text" json:"repeated_mistakes"`    // JSON array, last 10
	EmotionalTendencies      string         `gorm:"type:text" json:"emotional_tendencies"` // JSON array, last 5
	ReflectionCount          int            `gorm:"default:0" json:"reflection_count"`
	LastReflectionAt         *time.Time     `json:"last_reflection_at"`
	CreatedAt                time.Time      `json:"created_at"`
	UpdatedAt                time.Time      `json:"updated_at"`
	DeletedAt                gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (LearningProfile) TableName() string {
	return "learning_profiles"
}

// ChatMessage - Conversation history per user/session.
type ChatMessage struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	UserID          string         `gorm:"size:100;not null;index" json:"user_id"`
	SessionID       string         `gorm:"size:100;not null;index" json:"session_id"`
	Role            string         `gorm:"size:20;not null" json:"role"` // user, assistant
	Message         string         `gorm:"type:text;not null" json:"message"`
	Intent          string         `gorm:"size:30" json:"intent"`
	LearningConcept string         `gorm:"size:200" json:"learning_concept"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}

// QuizRecord - A completed diagnostic quiz with its gap snapshot, kept so the
// lesson handler can reference past diagnostics.
type QuizRecord struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	UserID        string         `gorm:"size:100;not null;index" json:"user_id"`
	QuizType      string         `gorm:"size:30;default:diagnostic" json:"quiz_type"`
	QAPairs       string         `gorm:"type:text" json:"qa_pairs"`        // JSON array of {question, concept_tested, answer}
	KnowledgeGaps string         `gorm:"type:text" json:"knowledge_gaps"` // JSON gap report
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (QuizRecord) TableName() string {
	return "quiz_records"
}

// Trade - A single closed trade. Metrics are computed server-side before any
// prompt sees them.
type Trade struct {
	ID                     uint           `gorm:"primarykey" json:"id"`
	UserID                 string         `gorm:"size:100;not null;index" json:"user_id"`
	Symbol                 string         `gorm:"size:20;not null" json:"symbol"`
	EntryPrice             float64        `gorm:"not null" json:"entry_price"`
	ExitPrice              float64        `gorm:"not null" json:"exit_price"`
	EntryTime              time.Time      `json:"entry_time"`
	ExitTime               time.Time      `json:"exit_time"`
	HoldingDurationMinutes float64        `json:"holding_duration_minutes"`
	Notes                  string         `gorm:"type:text" json:"notes"`
	CreatedAt              time.Time      `json:"created_at"`
	UpdatedAt              time.Time      `json:"updated_at"`
	DeletedAt              gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Trade) TableName() string {
	return "trades"
}
