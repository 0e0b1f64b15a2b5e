package portfolio

import (
	"context"
	"math"
	"testing"

	"github.com/vileo06/investliu/internal/common"
	"github.com/vileo06/investliu/internal/models"
	"github.com/vileo06/investliu/internal/storage/memory"
)

func setupManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(memory.NewKVStorage(), common.NewSilentLogger())
}

func TestUpsertAndSummary(t *testing.T) {
	m := setupManager(t)
	ctx := context.Background()

	if err := m.Upsert(ctx, models.Holding{Code: "000001", Name: "平安银行", Shares: 1000, Cost: 10, Current: 11}); err != nil {
		t.Fatal(err)
	}
	if err := m.Upsert(ctx, models.Holding{Code: "600519", Name: "贵州茅台", Shares: 10, Cost: 1600, Current: 1688}); err != nil {
		t.Fatal(err)
	}

	s := m.Summary(ctx)
	if len(s.Holdings) != 2 {
		t.Fatalf("expected 2 holdings, got %d", len(s.Holdings))
	}
	wantValue := 1000*11.0 + 10*1688.0
	wantCost := 1000*10.0 + 10*1600.0
	if math.Abs(s.TotalValue-wantValue) > 1e-9 {
		t.Errorf("expected value %v, got %v", wantValue, s.TotalValue)
	}
	if math.Abs(s.TotalProfit-(wantValue-wantCost)) > 1e-9 {
		t.Errorf("expected profit %v, got %v", wantValue-wantCost, s.TotalProfit)
	}
	wantRate := (wantValue - wantCost) / wantCost * 100
	if math.Abs(s.ProfitRate-wantRate) > 1e-9 {
		t.Errorf("expected rate %v, got %v", wantRate, s.ProfitRate)
	}
}

func TestUpsertReplacesByCode(t *testing.T) {
	m := setupManager(t)
	ctx := context.Background()

	m.Upsert(ctx, models.Holding{Code: "000001", Shares: 100, Cost: 10, Current: 10})
	m.Upsert(ctx, models.Holding{Code: "000001", Shares: 200, Cost: 9, Current: 10})

	holdings := m.Holdings(ctx)
	if len(holdings) != 1 {
		t.Fatalf("expected 1 holding, got %d", len(holdings))
	}
	if holdings[0].Shares != 200 {
		t.Errorf("expected replacement, got %v shares", holdings[0].Shares)
	}
}

func TestUpsertValidation(t *testing.T) {
	m := setupManager(t)
	ctx := context.Background()

	if err := m.Upsert(ctx, models.Holding{Shares: 100}); err == nil {
		t.Error("expected error for missing code")
	}
	if err := m.Upsert(ctx, models.Holding{Code: "000001", Shares: 0}); err == nil {
		t.Error("expected error for zero shares")
	}
}

func TestRemove(t *testing.T) {
	m := setupManager(t)
	ctx := context.Background()

	m.Upsert(ctx, models.Holding{Code: "000001", Shares: 100, Cost: 10, Current: 10})
	if err := m.Remove(ctx, "000001"); err != nil {
		t.Fatal(err)
	}
	if len(m.Holdings(ctx)) != 0 {
		t.Error("expected no holdings after remove")
	}
	// Removing an unknown code is a no-op.
	if err := m.Remove(ctx, "999999"); err != nil {
		t.Fatal(err)
	}
}

func TestUpdatePrices(t *testing.T) {
	m := setupManager(t)
	ctx := context.Background()

	m.Upsert(ctx, models.Holding{Code: "000001", Shares: 100, Cost: 10, Current: 10})
	err := m.UpdatePrices(ctx, []models.StockRecord{
		{Code: "000001", CurrentPrice: 12.5},
		{Code: "600519", CurrentPrice: 1700},
	})
	if err != nil {
		t.Fatal(err)
	}

	holdings := m.Holdings(ctx)
	if holdings[0].Current != 12.5 {
		t.Errorf("expected refreshed price 12.5, got %v", holdings[0].Current)
	}
}

func TestEmptySummary(t *testing.T) {
	m := setupManager(t)
	s := m.Summary(context.Background())
	if s.TotalValue != 0 || s.ProfitRate != 0 {
		t.Errorf("expected zero summary, got %+v", s)
	}
}
