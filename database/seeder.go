package database

import (
	"time"

	"github.com/tradelingo/tradelingo-be/internal/entity"
	"gorm.io/gorm"
)

type mockTrade struct {
	Symbol     string
	EntryTime  string
	ExitTime   string
	EntryPrice float64
	ExitPrice  float64
	Holding    float64
}

// mockTrades - realistic mix of scalp, day, and swing trades for demo accounts.
var mockTrades = []mockTrade{
	{Symbol: "AAPL", EntryTime: "2026-01-02T09:35:00Z", ExitTime: "2026-01-02T15:10:00Z", EntryPrice: 185.20, ExitPrice: 187.90, Holding: 335},
	{Symbol: "TSLA", EntryTime: "2026-01-04T10:15:00Z", ExitTime: "2026-01-04T14:45:00Z", EntryPrice: 242.50, ExitPrice: 239.10, Holding: 270},
	{Symbol: "NVDA", EntryTime: "2026-01-06T09:50:00Z", ExitTime: "2026-01-07T11:20:00Z", EntryPrice: 510.00, ExitPrice: 522.40, Holding: 1530},
	{Symbol: "MSFT", EntryTime: "2026-01-08T13:10:00Z", ExitTime: "2026-01-10T10:00:00Z", EntryPrice: 375.00, ExitPrice: 380.25, Holding: 2700},
	{Symbol: "BTCUSDT", EntryTime: "2026-01-15T02:10:00Z", ExitTime: "2026-01-15T03:25:00Z", EntryPrice: 43250.00, ExitPrice: 43510.00, Holding: 75},
	{Symbol: "ETHUSDT", EntryTime: "2026-01-16T05:45:00Z", ExitTime: "2026-01-16T06:10:00Z", EntryPrice: 2385.00, ExitPrice: 2402.50, Holding: 25},
	{Symbol: "SOLUSDT", EntryTime: "2026-01-17T09:20:00Z", ExitTime: "2026-01-17T09:55:00Z", EntryPrice: 105.40, ExitPrice: 103.80, Holding: 35},
	{Symbol: "BTCUSDT", EntryTime: "2026-01-18T01:05:00Z", ExitTime: "2026-01-18T02:00:00Z", EntryPrice: 43700.00, ExitPrice: 43980.00, Holding: 55},
	{Symbol: "ETHUSDT", EntryTime: "2026-01-19T04:30:00Z", ExitTime: "2026-01-19T05:10:00Z", EntryPrice: 2420.00, ExitPrice: 2395.00, Holding: 40},
	{Symbol: "XRPUSDT", EntryTime: "2026-01-20T07:15:00Z", ExitTime: "2026-01-20T07:50:00Z", EntryPrice: 0.62, ExitPrice: 0.65, Holding: 35},
	{Symbol: "BTCUSDT", EntryTime: "2026-01-22T03:40:00Z", ExitTime: "2026-01-22T04:05:00Z", EntryPrice: 44120.00, ExitPrice: 44010.00, Holding: 25},
	{Symbol: "SOLUSDT", EntryTime: "2026-01-23T08:05:00Z", ExitTime: "2026-01-23T08:45:00Z", EntryPrice: 110.20, ExitPrice: 112.10, Holding: 40},
	{Symbol: "ETHUSDT", EntryTime: "2026-01-25T06:25:00Z", ExitTime: "2026-01-25T07:05:00Z", EntryPrice: 2455.00, ExitPrice: 2470.00, Holding: 40},
	{Symbol: "BTCUSDT", EntryTime: "2026-01-27T02:30:00Z", ExitTime: "2026-01-27T03:10:00Z", EntryPrice: 44800.00, ExitPrice: 45120.00, Holding: 40},
	{Symbol: "XRPUSDT", EntryTime: "2026-01-29T09:10:00Z", ExitTime: "2026-01-29T09:40:00Z", EntryPrice: 0.66, ExitPrice: 0.64, Holding: 30},
}

// SeedDemoTrades inserts mock trades for the given demo user. Skipped when the
// user already has trade rows, so restarts do not duplicate data.
func SeedDemoTrades(db *gorm.DB, userID string) error {
	if userID == "" {
		return nil
	}

	var count int64
	if err := db.Model(&entity.Trade{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	trades := make([]entity.Trade, 0, len(mockTrades))
	for _, t := range mockTrades {
		entryTime, err := time.Parse(time.RFC3339, t.EntryTime)
		if err != nil {
			return err
		}
		exitTime, err := time.Parse(time.RFC3339, t.ExitTime)
		if err != nil {
			return err
		}

		trades = append(trades, entity.Trade{
			UserID:                 userID,
			Symbol:                 t.Symbol,
			EntryPrice:             t.EntryPrice,
			ExitPrice:              t.ExitPrice,
			EntryTime:              entryTime,
			ExitTime:               exitTime,
			HoldingDurationMinutes: t.Holding,
		})
	}

	return db.Create(&trades).Error
}
