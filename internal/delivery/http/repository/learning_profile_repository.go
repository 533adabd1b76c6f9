package repository

import (
	"github.com/tradelingo/tradelingo-be/internal/entity"
	"gorm.io/gorm"
)

type (
	LearningProfileRepository interface {
		FindByUserID(db *gorm.DB, userID string) (*entity.LearningProfile, error)
		// Upsert creates the profile row on first save, otherwise overwrites
		// the scalar and list columns with the merged values.
		Upsert(db *gorm.DB, profile *entity.LearningProfile) error
		IncrementReflectionCount(db *gorm.DB, userID string) error
	}

	learningProfileRepository struct {
		db *gorm.DB
	}
)

func NewLearningProfileRepository(db *gorm.DB) LearningProfileRepository {
	return &learningProfileRepository{db: db}
}

func (r *learningProfileRepository) FindByUserID(db *gorm.DB, userID string) (*entity.LearningProfile, error) {
	if db == nil {
		db = r.db
	}
	var profile entity.LearningProfile
	err := db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *learningProfileRepository) Upsert(db *gorm.DB, profile *entity.LearningProfile) error {
	if db == nil {
		db = r.db
	}
	return db.Where("user_id = ?", profile.UserID).Assign(map[string]any{
		"behavioral_pattern_summary": profile.BehavioralPatternSummary,
		"knowledge_gaps":             profile.KnowledgeGaps,
		"confidence_level_estimate":  profile.ConfidenceLevelEstimate,
		"difficulty_level":           profile.DifficultyLevel,
		"next_focus_area":            profile.NextFocusArea,
		"reflection_summary":         profile.ReflectionSummary,
		"learning_strengths":         profile.LearningStrengths,
		"repeated_mistakes":          profile.RepeatedMistakes,
		"emotional_tendencies":       profile.EmotionalTendencies,
		"last_reflection_at":         profile.LastReflectionAt,
	}).FirstOrCreate(&entity.LearningProfile{UserID: profile.UserID}).Error
}

func (r *learningProfileRepository) IncrementReflectionCount(db *gorm.DB, userID string) error {
	if db == nil {
		db = r.db
	}
	return db.Model(&entity.LearningProfile{}).
		Where("user_id = ?", userID).
		UpdateColumn("reflection_count", gorm.Expr("reflection_count + ?", 1)).Error
}
