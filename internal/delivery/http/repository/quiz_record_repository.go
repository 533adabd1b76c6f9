package repository

import (
	"github.com/tradelingo/tradelingo-be/internal/entity"
	"gorm.io/gorm"
)

type (
	QuizRecordRepository interface {
		Create(db *gorm.DB, record *entity.QuizRecord) error
		FindRecentByUserID(db *gorm.DB, userID string, limit int) ([]entity.QuizRecord, error)
	}

	quizRecordRepository struct {
		db *gorm.DB
	}
)

func NewQuizRecordRepository(db *gorm.DB) QuizRecordRepository {
	return &quizRecordRepository{db: db}
}

func (r *quizRecordRepository) Create(db *gorm.DB, record *entity.QuizRecord) error {
	if db == nil {
		db = r.db
	}
	return db.Create(record).Error
}

func (r *quizRecordRepository) FindRecentByUserID(db *gorm.DB, userID string, limit int) ([]entity.QuizRecord, error) {
	if db == nil {
		db = r.db
	}
	var records []entity.QuizRecord
	query := db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&records).Error
	return records, err
}
