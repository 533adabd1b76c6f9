package repository

import (
	"github.com/tradelingo/tradelingo-be/internal/entity"
	"gorm.io/gorm"
)

type (
	TradeRepository interface {
		Create(db *gorm.DB, trade *entity.Trade) error
		FindByUserID(db *gorm.DB, userID string) ([]entity.Trade, error)
	}

	tradeRepository struct {
		db *gorm.DB
	}
)

func NewTradeRepository(db *gorm.DB) TradeRepository {
	return &tradeRepository{db: db}
}

func (r *tradeRepository) Create(db *gorm.DB, trade *entity.Trade) error {
	if db == nil {
		db = r.db
	}
	return db.Create(trade).Error
}

func (r *tradeRepository) FindByUserID(db *gorm.DB, userID string) ([]entity.Trade, error) {
	if db == nil {
		db = r.db
	}
	var trades []entity.Trade
	err := db.Where("user_id = ?", userID).Order("exit_time DESC").Find(&trades).Error
	return trades, err
}
