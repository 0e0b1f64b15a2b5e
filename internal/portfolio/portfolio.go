// Package portfolio manages the user's holdings and aggregates them
// into a profit/loss summary.
package portfolio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/vileo06/investliu/internal/common"
	"github.com/vileo06/investliu/internal/interfaces"
	"github.com/vileo06/investliu/internal/models"
)

const holdingsKey = "portfolio_holdings"

// Manager persists holdings in key-value storage.
type Manager struct {
	kv     interfaces.KeyValueStorage
	logger *common.Logger
}

func NewManager(kv interfaces.KeyValueStorage, logger *common.Logger) *Manager {
	return &Manager{kv: kv, logger: logger}
}

// Holdings returns the stored holdings. Missing or corrupt storage
// reads as empty.
func (m *Manager) Holdings(ctx context.Context) []models.Holding {
	blob, err := m.kv.Get(ctx, holdingsKey)
	if err != nil {
		if !errors.Is(err, interfaces.ErrNotFound) {
			m.logger.Warn().Str("error", err.Error()).Msg("failed to read holdings")
		}
		return nil
	}
	var holdings []models.Holding
	if err := json.Unmarshal([]byte(blob), &holdings); err != nil {
		return nil
	}
	return holdings
}

// Upsert adds a holding or replaces an existing one with the same code.
func (m *Manager) Upsert(ctx context.Context, h models.Holding) error {
	h.Code = strings.TrimSpace(h.Code)
	if h.Code == "" {
		return errors.New("holding requires a stock code")
	}
	if h.Shares <= 0 {
		return fmt.Errorf("holding %s requires positive shares", h.Code)
	}

	holdings := m.Holdings(ctx)
	replaced := false
	for i := range holdings {
		if holdings[i].Code == h.Code {
			holdings[i] = h
			replaced = true
			break
		}
	}
	if !replaced {
		holdings = append(holdings, h)
	}
	return m.write(ctx, holdings)
}

// Remove deletes the holding with the given code. Unknown codes are a
// no-op.
func (m *Manager) Remove(ctx context.Context, code string) error {
	holdings := m.Holdings(ctx)
	out := holdings[:0]
	for _, h := range holdings {
		if h.Code != code {
			out = append(out, h)
		}
	}
	return m.write(ctx, out)
}

// UpdatePrices refreshes each holding's current price from the given
// records, matched by code. Holdings without a matching record keep
// their last known price.
func (m *Manager) UpdatePrices(ctx context.Context, records []models.StockRecord) error {
	prices := make(map[string]float64, len(records))
	for _, r := range records {
		prices[r.Code] = r.CurrentPrice
	}

	holdings := m.Holdings(ctx)
	changed := false
	for i := range holdings {
		if p, ok := prices[holdings[i].Code]; ok && p != holdings[i].Current {
			holdings[i].Current = p
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return m.write(ctx, holdings)
}

// Summary aggregates the stored holdings.
func (m *Manager) Summary(ctx context.Context) models.PortfolioSummary {
	holdings := m.Holdings(ctx)
	summary := models.PortfolioSummary{Holdings: holdings}
	for _, h := range holdings {
		summary.TotalValue += h.Value()
		summary.TotalCost += h.CostBasis()
	}
	summary.TotalProfit = summary.TotalValue - summary.TotalCost
	if summary.TotalCost > 0 {
		summary.ProfitRate = summary.TotalProfit / summary.TotalCost * 100
	}
	return summary
}

func (m *Manager) write(ctx context.Context, holdings []models.Holding) error {
	blob, err := json.Marshal(holdings)
	if err != nil {
		return err
	}
	if err := m.kv.Set(ctx, holdingsKey, string(blob)); err != nil {
		return fmt.Errorf("failed to persist holdings: %w", err)
	}
	return nil
}
