package usecase

import (
	"fmt"
	"math"
	"time"

	internalEntity "github.com/tradelingo/tradelingo-be/internal/entity"
)

// Rule-based trade style classification thresholds, applied to the average
// holding duration in minutes across a user's trade history.
const (
	minTradesForClassification = 3
	scalperMaxMinutes          = 15.0
	dayTradeMaxMinutes         = 1440.0  // 1 day
	swingTradeMaxMinutes       = 20160.0 // 14 days
)

// TradeMetrics holds server-computed facts about a single trade. These are
// calculated here and never delegated to text generation, so the numbers
// stay exact and auditable.
type TradeMetrics struct {
	Symbol                 string
	EntryPrice             float64
	ExitPrice              float64
	AbsolutePnL            float64
	PercentagePnL          float64
	Direction              string
	IsProfit               bool
	HoldingDurationMinutes float64
	HoldingDurationLabel   string
}

// CalculateHoldingDuration returns the trade's holding time in minutes,
// floored at zero.
func CalculateHoldingDuration(entryTime, exitTime time.Time) float64 {
	minutes := exitTime.Sub(entryTime).Minutes()
	if minutes < 0 {
		return 0
	}
	return minutes
}

// CalculatePnL computes absolute and percentage profit/loss. A non-positive
// entry price yields zeroed metrics with direction "error".
func CalculatePnL(entryPrice, exitPrice float64) (absolute, percentage float64, direction string) {
	if entryPrice <= 0 {
		return 0, 0, "error"
	}
	absolute = exitPrice - entryPrice
	percentage = math.Round(absolute/entryPrice*100*100) / 100
	absolute = math.Round(absolute*10000) / 10000
	if absolute >= 0 {
		return absolute, percentage, "profit"
	}
	return absolute, percentage, "loss"
}

// ClassifyTradeType derives a trader's style from their full trade history.
// Fewer than three trades is not enough signal and yields "unknown".
func ClassifyTradeType(trades []internalEntity.Trade) string {
	if len(trades) < minTradesForClassification {
		return "unknown"
	}

	var total float64
	for _, t := range trades {
		total += t.HoldingDurationMinutes
	}
	avg := total / float64(len(trades))

	switch {
	case avg <= scalperMaxMinutes:
		return "scalper"
	case avg <= dayTradeMaxMinutes:
		return "day_trader"
	case avg <= swingTradeMaxMinutes:
		return "swing_trader"
	default:
		return "investor"
	}
}

// ComputeTradeMetrics computes all diagnostic metrics for one trade.
func ComputeTradeMetrics(trade *internalEntity.Trade) TradeMetrics {
	absolute, percentage, direction := CalculatePnL(trade.EntryPrice, trade.ExitPrice)

	minutes := trade.HoldingDurationMinutes
	if minutes == 0 && !trade.EntryTime.IsZero() && !trade.ExitTime.IsZero() {
		minutes = CalculateHoldingDuration(trade.EntryTime, trade.ExitTime)
	}

	return TradeMetrics{
		Symbol:                 trade.Symbol,
		EntryPrice:             trade.EntryPrice,
		ExitPrice:              trade.ExitPrice,
		AbsolutePnL:            absolute,
		PercentagePnL:          percentage,
		Direction:              direction,
		IsProfit:               direction == "profit",
		HoldingDurationMinutes: minutes,
		HoldingDurationLabel:   formatHoldingDuration(minutes),
	}
}

func formatHoldingDuration(minutes float64) string {
	switch {
	case minutes < 60:
		return fmt.Sprintf("%.1f minutes", minutes)
	case minutes < 1440:
		return fmt.Sprintf("%.1f hours", minutes/60)
	default:
		return fmt.Sprintf("%.1f days", minutes/1440)
	}
}
