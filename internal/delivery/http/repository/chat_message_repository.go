package repository

import (
	"github.com/tradelingo/tradelingo-be/internal/entity"
	"gorm.io/gorm"
)

type (
	ChatMessageRepository interface {
		Create(db *gorm.DB, message *entity.ChatMessage) error
		// FindRecentByUserID returns the newest messages first; callers
		// reverse to chronological order when building prompt context.
		FindRecentByUserID(db *gorm.DB, userID string, limit int) ([]entity.ChatMessage, error)
	}

	chatMessageRepository struct {
		db *gorm.DB
	}
)

func NewChatMessageRepository(db *gorm.DB) ChatMessageRepository {
	return &chatMessageRepository{db: db}
}

func (r *chatMessageRepository) Create(db *gorm.DB, message *entity.ChatMessage) error {
	if db == nil {
		db = r.db
	}
	return db.Create(message).Error
}

func (r *chatMessageRepository) FindRecentByUserID(db *gorm.DB, userID string, limit int) ([]entity.ChatMessage, error) {
	if db == nil {
		db = r.db
	}
	var messages []entity.ChatMessage
	query := db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&messages).Error
	return messages, err
}
