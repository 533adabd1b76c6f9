package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradelingo/tradelingo-be/internal/delivery/http/entity"
	internalEntity "github.com/tradelingo/tradelingo-be/internal/entity"
)

type tradeFixture struct {
	users   *fakeUserRepo
	trades  *fakeTradeRepo
	usecase TradeUsecase
}

func newTradeFixture() *tradeFixture {
	f := &tradeFixture{
		users:  newFakeUserRepo(),
		trades: &fakeTradeRepo{},
	}
	f.usecase = NewTradeUsecase(TradeConfig{
		Log:       silentLogger(),
		TradeRepo: f.trades,
		UserRepo:  f.users,
	})
	return f
}

func TestCreateTradeComputesMetricsAndReclassifies(t *testing.T) {
	f := newTradeFixture()
	f.users.users["u1"] = &internalEntity.User{UserID: "u1"}
	f.trades.trades = []internalEntity.Trade{
		{UserID: "u1", HoldingDurationMinutes: 10},
		{UserID: "u1", HoldingDurationMinutes: 12},
	}

	resp, err := f.usecase.Create(context.Background(), entity.CreateTradeRequest{
		UserID:     "u1",
		Symbol:     "ETHUSDT",
		EntryPrice: 2385.00,
		ExitPrice:  2402.50,
		EntryTime:  "2026-01-16T05:45:00Z",
		ExitTime:   "2026-01-16T06:10:00Z",
	})

	require.NoError(t, err)
	assert.Equal(t, "ETHUSDT", resp.Symbol)
	assert.Equal(t, 17.5, resp.AbsolutePnL)
	assert.Equal(t, 0.73, resp.PercentagePnL)
	assert.Equal(t, "profit", resp.Direction)
	assert.Equal(t, 25.0, resp.HoldingDurationMinutes)
	// Third trade crosses the classification threshold; the average hold of
	// ~15.7 minutes lands just past the scalper cutoff.
	assert.Equal(t, "day_trader", resp.TradeType)
	assert.Equal(t, "day_trader", f.users.users["u1"].TradeType)
	assert.True(t, f.users.users["u1"].HasConnectedTrades)
}

func TestCreateTradeRejectsExitBeforeEntry(t *testing.T) {
	f := newTradeFixture()

	_, err := f.usecase.Create(context.Background(), entity.CreateTradeRequest{
		UserID:     "u1",
		Symbol:     "AAPL",
		EntryPrice: 100,
		ExitPrice:  101,
		EntryTime:  "2026-01-16T06:10:00Z",
		ExitTime:   "2026-01-16T05:45:00Z",
	})

	require.Error(t, err)
	assert.Empty(t, f.trades.trades)
}

func TestCreateTradeRejectsBadTimestamp(t *testing.T) {
	f := newTradeFixture()

	_, err := f.usecase.Create(context.Background(), entity.CreateTradeRequest{
		UserID:     "u1",
		Symbol:     "AAPL",
		EntryPrice: 100,
		ExitPrice:  101,
		EntryTime:  "16/01/2026 05:45",
		ExitTime:   "2026-01-16T06:10:00Z",
	})

	require.Error(t, err)
}

func TestListReturnsComputedMetrics(t *testing.T) {
	f := newTradeFixture()
	f.trades.trades = []internalEntity.Trade{
		{ID: 1, UserID: "u1", Symbol: "AAPL", EntryPrice: 185.20, ExitPrice: 187.90, HoldingDurationMinutes: 335},
		{ID: 2, UserID: "u1", Symbol: "TSLA", EntryPrice: 242.50, ExitPrice: 239.10, HoldingDurationMinutes: 270},
		{ID: 3, UserID: "other", Symbol: "NVDA", EntryPrice: 510, ExitPrice: 522.40, HoldingDurationMinutes: 1530},
	}

	trades, err := f.usecase.List(context.Background(), "u1")

	require.NoError(t, err)
	require.Len(t, trades, 2)
	assert.Equal(t, "profit", trades[0].Direction)
	assert.Equal(t, "loss", trades[1].Direction)
}
