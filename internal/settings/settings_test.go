package settings

import (
	"context"
	"testing"

	"github.com/vileo06/investliu/internal/common"
	"github.com/vileo06/investliu/internal/models"
	"github.com/vileo06/investliu/internal/storage/memory"
)

func setupManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(memory.NewKVStorage(), common.NewSilentLogger())
}

func TestGetDefaults(t *testing.T) {
	m := setupManager(t)
	s := m.Get(context.Background())
	if s.RiskLevel != "medium" || !s.AutoRefresh {
		t.Errorf("unexpected defaults: %+v", s)
	}
}

func TestUpdateAndGet(t *testing.T) {
	m := setupManager(t)
	ctx := context.Background()

	want := models.Settings{RiskLevel: "high", DataSource: "github", AutoRefresh: false, Notifications: true}
	if err := m.Update(ctx, want); err != nil {
		t.Fatal(err)
	}
	if got := m.Get(ctx); got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestUpdateRejectsInvalidRiskLevel(t *testing.T) {
	m := setupManager(t)
	if err := m.Update(context.Background(), models.Settings{RiskLevel: "extreme"}); err == nil {
		t.Error("expected error for invalid risk level")
	}
}

func TestReset(t *testing.T) {
	m := setupManager(t)
	ctx := context.Background()

	m.Update(ctx, models.Settings{RiskLevel: "high"})
	if err := m.Reset(ctx); err != nil {
		t.Fatal(err)
	}
	if got := m.Get(ctx); got != models.DefaultSettings() {
		t.Errorf("expected defaults after reset, got %+v", got)
	}
}
