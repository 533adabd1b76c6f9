package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	internalEntity "github.com/tradelingo/tradelingo-be/internal/entity"
)

func TestCalculateHoldingDuration(t *testing.T) {
	entry := time.Date(2026, 1, 2, 9, 35, 0, 0, time.UTC)
	exit := entry.Add(5*time.Hour + 35*time.Minute)

	assert.Equal(t, 335.0, CalculateHoldingDuration(entry, exit))
	// Clock skew cannot produce negative holds.
	assert.Equal(t, 0.0, CalculateHoldingDuration(exit, entry))
}

func TestCalculatePnL(t *testing.T) {
	abs, pct, direction := CalculatePnL(185.20, 187.90)
	assert.Equal(t, 2.7, abs)
	assert.Equal(t, 1.46, pct)
	assert.Equal(t, "profit", direction)

	abs, pct, direction = CalculatePnL(242.50, 239.10)
	assert.Equal(t, -3.4, abs)
	assert.Equal(t, -1.4, pct)
	assert.Equal(t, "loss", direction)

	abs, pct, direction = CalculatePnL(0, 100)
	assert.Zero(t, abs)
	assert.Zero(t, pct)
	assert.Equal(t, "error", direction)

	_, _, direction = CalculatePnL(-5, 100)
	assert.Equal(t, "error", direction)
}

func tradesWithHolds(holds ...float64) []internalEntity.Trade {
	trades := make([]internalEntity.Trade, len(holds))
	for i, h := range holds {
		trades[i] = internalEntity.Trade{HoldingDurationMinutes: h}
	}
	return trades
}

func TestClassifyTradeType(t *testing.T) {
	tests := []struct {
		name  string
		holds []float64
		want  string
	}{
		{"too few trades", []float64{10, 12}, "unknown"},
		{"no trades", nil, "unknown"},
		{"scalper", []float64{5, 10, 15}, "scalper"},
		{"day trader", []float64{30, 300, 600}, "day_trader"},
		{"swing trader", []float64{2000, 3000, 5000}, "swing_trader"},
		{"investor", []float64{30000, 40000, 50000}, "investor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyTradeType(tradesWithHolds(tt.holds...)))
		})
	}
}

func TestComputeTradeMetrics(t *testing.T) {
	entry := time.Date(2026, 1, 15, 2, 10, 0, 0, time.UTC)
	trade := &internalEntity.Trade{
		Symbol:     "BTCUSDT",
		EntryPrice: 43250.00,
		ExitPrice:  43510.00,
		EntryTime:  entry,
		ExitTime:   entry.Add(90 * time.Minute),
	}

	metrics := ComputeTradeMetrics(trade)

	assert.Equal(t, "BTCUSDT", metrics.Symbol)
	assert.Equal(t, 260.0, metrics.AbsolutePnL)
	assert.Equal(t, 0.6, metrics.PercentagePnL)
	assert.True(t, metrics.IsProfit)
	// Minutes fall back to the timestamps when the stored value is zero.
	assert.Equal(t, 90.0, metrics.HoldingDurationMinutes)
	assert.Equal(t, "1.5 hours", metrics.HoldingDurationLabel)
}

func TestFormatHoldingDuration(t *testing.T) {
	assert.Equal(t, "45.0 minutes", formatHoldingDuration(45))
	assert.Equal(t, "2.5 hours", formatHoldingDuration(150))
	assert.Equal(t, "2.0 days", formatHoldingDuration(2880))
}
