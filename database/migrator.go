package database

import (
	"github.com/tradelingo/tradelingo-be/internal/entity"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entity.User{},
		&entity.LessonPlan{},
		&entity.LearningProfile{},
		&entity.ChatMessage{},
		&entity.QuizRecord{},
		&entity.Trade{},
	)
	return err
}
