package repository

import (
	"github.com/tradelingo/tradelingo-be/internal/entity"
	"gorm.io/gorm"
)

type (
	UserRepository interface {
		FindByUserID(db *gorm.DB, userID string) (*entity.User, error)
		Create(db *gorm.DB, user *entity.User) error
		// UpdateTradeType records the reclassified trading style after a new
		// trade is logged, marking the user as having connected trade data.
		UpdateTradeType(db *gorm.DB, userID, tradeType string) error
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByUserID(db *gorm.DB, userID string) (*entity.User, error) {
	if db == nil {
		db = r.db
	}
	var user entity.User
	err := db.Where("user_id = ?", userID).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(db *gorm.DB, user *entity.User) error {
	if db == nil {
		db = r.db
	}
	return db.Create(user).Error
}

func (r *userRepository) UpdateTradeType(db *gorm.DB, userID, tradeType string) error {
	if db == nil {
		db = r.db
	}
	return db.Model(&entity.User{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"trade_type":           tradeType,
			"has_connected_trades": true,
		}).Error
}
