package entity

// QuizQuestion is one diagnostic question. CorrectIndex is only meaningful
// when Gradable is true; questions repaired with a self-assessment scale carry
// Gradable=false.
type QuizQuestion struct {
	Question      string   `json:"question"`
	ConceptTested string   `json:"concept_tested"`
	Options       []string `json:"options,omitempty"`
	CorrectIndex  int      `json:"correct_index"`
	Gradable      bool     `json:"gradable"`
}

// QuizAnswerPair pairs a question with the answer the user gave.
type QuizAnswerPair struct {
	Question      string `json:"question"`
	ConceptTested string `json:"concept_tested"`
	Answer        string `json:"answer"`
}

type StartEducationRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

type StartEducationResponse struct {
	QuizQuestions []QuizQuestion `json:"quiz_questions"`
	Profile       UserProfile    `json:"profile"`
	TradeType     string         `json:"trade_type,omitempty"`
}

type SubmitQuizRequest struct {
	UserID        string         `json:"user_id" validate:"required"`
	QuizQuestions []QuizQuestion `json:"quiz_questions" validate:"required,min=1"`
	QuizAnswers   []string       `json:"quiz_answers" validate:"required,min=1"`
}

type SubmitQuizResponse struct {
	KnowledgeGaps KnowledgeGapReport `json:"knowledge_gaps"`
	Curriculum    Curriculum         `json:"curriculum"`
}

type CreateTradeRequest struct {
	UserID     string  `json:"user_id" validate:"required"`
	Symbol     string  `json:"symbol" validate:"required"`
	EntryPrice float64 `json:"entry_price" validate:"required,gt=0"`
	ExitPrice  float64 `json:"exit_price" validate:"required,gt=0"`
	EntryTime  string  `json:"entry_time" validate:"required"`
	ExitTime   string  `json:"exit_time" validate:"required"`
	Notes      string  `json:"notes"`
}

type TradeResponse struct {
	ID                     uint    `json:"id"`
	Symbol                 string  `json:"symbol"`
	EntryPrice             float64 `json:"entry_price"`
	ExitPrice              float64 `json:"exit_price"`
	AbsolutePnL            float64 `json:"absolute_pnl"`
	PercentagePnL          float64 `json:"percentage_pnl"`
	Direction              string  `json:"direction"`
	HoldingDurationMinutes float64 `json:"holding_duration_minutes"`
	EntryTime              string  `json:"entry_time"`
	ExitTime               string  `json:"exit_time"`
	TradeType              string  `json:"trade_type,omitempty"`
}
