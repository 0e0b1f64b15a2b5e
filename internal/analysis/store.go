// Package analysis persists per-stock analysis snapshots and a bounded
// history index of recent analyses.
package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/vileo06/investliu/internal/common"
	"github.com/vileo06/investliu/internal/interfaces"
	"github.com/vileo06/investliu/internal/models"
)

// MaxHistory bounds the history index.
const MaxHistory = 50

const indexKey = "analysis_history"

// Store persists analysis records in key-value storage.
type Store struct {
	kv     interfaces.KeyValueStorage
	logger *common.Logger
}

func NewStore(kv interfaces.KeyValueStorage, logger *common.Logger) *Store {
	return &Store{kv: kv, logger: logger}
}

// Save persists a record and prepends it to the history index,
// truncating the index to MaxHistory. Returns the record key.
func (s *Store) Save(ctx context.Context, record models.AnalysisRecord) (string, error) {
	if record.Code == "" {
		return "", errors.New("analysis record requires a stock code")
	}
	if record.SavedAt.IsZero() {
		record.SavedAt = time.Now()
	}

	key := fmt.Sprintf("analysis_%s_%d", record.Code, record.SavedAt.UnixMilli())

	blob, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("failed to encode analysis record: %w", err)
	}
	if err := s.kv.Set(ctx, key, string(blob)); err != nil {
		return "", fmt.Errorf("failed to persist analysis record: %w", err)
	}

	entries := s.History(ctx)
	updated := make([]models.AnalysisHistoryEntry, 0, len(entries)+1)
	updated = append(updated, models.AnalysisHistoryEntry{
		Code:  record.Code,
		Name:  record.Name,
		Score: record.Score,
		Time:  record.SavedAt,
		Key:   key,
	})
	updated = append(updated, entries...)
	if len(updated) > MaxHistory {
		for _, stale := range updated[MaxHistory:] {
			if err := s.kv.Delete(ctx, stale.Key); err != nil {
				s.logger.Warn().Str("key", stale.Key).Str("error", err.Error()).Msg("failed to prune analysis record")
			}
		}
		updated = updated[:MaxHistory]
	}

	if err := s.writeIndex(ctx, updated); err != nil {
		s.logger.Warn().Str("error", err.Error()).Msg("failed to persist analysis history index")
	}
	return key, nil
}

// History returns the history index, most recent first. Missing or
// corrupt index reads as empty.
func (s *Store) History(ctx context.Context) []models.AnalysisHistoryEntry {
	blob, err := s.kv.Get(ctx, indexKey)
	if err != nil {
		if !errors.Is(err, interfaces.ErrNotFound) {
			s.logger.Warn().Str("error", err.Error()).Msg("failed to read analysis history index")
		}
		return nil
	}
	var entries []models.AnalysisHistoryEntry
	if err := json.Unmarshal([]byte(blob), &entries); err != nil {
		return nil
	}
	return entries
}

// Get loads a single analysis record by its key.
func (s *Store) Get(ctx context.Context, key string) (*models.AnalysisRecord, error) {
	blob, err := s.kv.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	var record models.AnalysisRecord
	if err := json.Unmarshal([]byte(blob), &record); err != nil {
		return nil, fmt.Errorf("analysis record %s is corrupt: %w", key, err)
	}
	return &record, nil
}

// Clear removes the index and every record it references.
func (s *Store) Clear(ctx context.Context) {
	for _, entry := range s.History(ctx) {
		if err := s.kv.Delete(ctx, entry.Key); err != nil {
			s.logger.Warn().Str("key", entry.Key).Str("error", err.Error()).Msg("failed to delete analysis record")
		}
	}
	if err := s.kv.Delete(ctx, indexKey); err != nil {
		s.logger.Warn().Str("error", err.Error()).Msg("failed to delete analysis history index")
	}
}

func (s *Store) writeIndex(ctx context.Context, entries []models.AnalysisHistoryEntry) error {
	blob, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, indexKey, string(blob))
}
