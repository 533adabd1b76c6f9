package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tradelingo/tradelingo-be/internal/delivery/http/entity"
	"github.com/tradelingo/tradelingo-be/internal/delivery/http/repository"
	internalEntity "github.com/tradelingo/tradelingo-be/internal/entity"
	"gorm.io/gorm"
)

type TradeUsecase interface {
	Create(ctx context.Context, req entity.CreateTradeRequest) (*entity.TradeResponse, error)
	List(ctx context.Context, userID string) ([]entity.TradeResponse, error)
}

type TradeConfig struct {
	DB        *gorm.DB
	Log       *logrus.Logger
	TradeRepo repository.TradeRepository
	UserRepo  repository.UserRepository
}

type tradeUsecase struct {
	cfg TradeConfig
}

func NewTradeUsecase(cfg TradeConfig) TradeUsecase {
	return &tradeUsecase{cfg: cfg}
}

// Create logs a closed trade, computes its metrics server-side, and
// reclassifies the user's trading style from their full history.
func (u *tradeUsecase) Create(ctx context.Context, req entity.CreateTradeRequest) (*entity.TradeResponse, error) {
	entryTime, err := time.Parse(time.RFC3339, req.EntryTime)
	if err != nil {
		return nil, fmt.Errorf("invalid entry_time, expected RFC3339: %w", err)
	}
	exitTime, err := time.Parse(time.RFC3339, req.ExitTime)
	if err != nil {
		return nil, fmt.Errorf("invalid exit_time, expected RFC3339: %w", err)
	}
	if exitTime.Before(entryTime) {
		return nil, fmt.Errorf("exit_time must not be before entry_time")
	}

	trade := &internalEntity.Trade{
		UserID:                 req.UserID,
		Symbol:                 req.Symbol,
		EntryPrice:             req.EntryPrice,
		ExitPrice:              req.ExitPrice,
		EntryTime:              entryTime,
		ExitTime:               exitTime,
		HoldingDurationMinutes: CalculateHoldingDuration(entryTime, exitTime),
		Notes:                  req.Notes,
	}
	if err := u.cfg.TradeRepo.Create(nil, trade); err != nil {
		return nil, fmt.Errorf("failed to save trade: %w", err)
	}

	tradeType := u.reclassify(req.UserID)

	response := toTradeResponse(trade)
	response.TradeType = tradeType
	return &response, nil
}

// List returns the user's trades newest-first, with computed metrics.
func (u *tradeUsecase) List(ctx context.Context, userID string) ([]entity.TradeResponse, error) {
	trades, err := u.cfg.TradeRepo.FindByUserID(nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trades: %w", err)
	}

	responses := make([]entity.TradeResponse, 0, len(trades))
	for i := range trades {
		responses = append(responses, toTradeResponse(&trades[i]))
	}
	return responses, nil
}

// reclassify recomputes the user's trade_type from their full history and
// persists it. Best-effort: classification failure never blocks the trade
// write.
func (u *tradeUsecase) reclassify(userID string) string {
	trades, err := u.cfg.TradeRepo.FindByUserID(nil, userID)
	if err != nil {
		u.cfg.Log.WithError(err).WithField("user_id", userID).Warn("failed to load trades for classification")
		return ""
	}

	tradeType := ClassifyTradeType(trades)
	if err := u.cfg.UserRepo.UpdateTradeType(nil, userID, tradeType); err != nil {
		u.cfg.Log.WithError(err).WithField("user_id", userID).Warn("failed to update trade type")
	}
	return tradeType
}

func toTradeResponse(trade *internalEntity.Trade) entity.TradeResponse {
	metrics := ComputeTradeMetrics(trade)
	return entity.TradeResponse{
		ID:                     trade.ID,
		Symbol:                 trade.Symbol,
		EntryPrice:             trade.EntryPrice,
		ExitPrice:              trade.ExitPrice,
		AbsolutePnL:            metrics.AbsolutePnL,
		PercentagePnL:          metrics.PercentagePnL,
		Direction:              metrics.Direction,
		HoldingDurationMinutes: metrics.HoldingDurationMinutes,
		EntryTime:              trade.EntryTime.Format(time.RFC3339),
		ExitTime:               trade.ExitTime.Format(time.RFC3339),
	}
}
