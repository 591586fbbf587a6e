package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"RegulatorRadar/internal/domain"
	"RegulatorRadar/internal/ports"
)

const analysisKeyPrefix = "analysis:"

// BadgerRepository keeps analyses as JSON documents in an embedded badger store.
type BadgerRepository struct {
	db *badger.DB
}

var _ ports.AnalysisRepository = (*BadgerRepository)(nil)

// NewBadgerRepository wraps an open badger database.
func NewBadgerRepository(db *badger.DB) *BadgerRepository {
	return &BadgerRepository{db: db}
}

func analysisKey(id string) []byte {
	return []byte(analysisKeyPrefix + id)
}

// Upsert writes the analysis, replacing any record with the same id.
func (r *BadgerRepository) Upsert(ctx context.Context, analysis domain.RegulationAnalysis) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("encode analysis %s: %w", analysis.ID, err)
	}
	if err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(analysisKey(analysis.ID), raw)
	}); err != nil {
		return fmt.Errorf("upsert analysis %s: %w", analysis.ID, err)
	}
	return nil
}

// Get loads one analysis by id or returns domain.ErrNotFound.
func (r *BadgerRepository) Get(ctx context.Context, id string) (domain.RegulationAnalysis, error) {
	var out domain.RegulationAnalysis
	if err := ctx.Err(); err != nil {
		return out, err
	}

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(analysisKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &out)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.RegulationAnalysis{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.RegulationAnalysis{}, fmt.Errorf("get analysis %s: %w", id, err)
	}
	return out, nil
}

// GetAll returns every stored analysis, most severe and most recent first.
func (r *BadgerRepository) GetAll(ctx context.Context) ([]domain.RegulationAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []domain.RegulationAnalysis
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(analysisKeyPrefix)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var a domain.RegulationAnalysis
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &a)
			}); err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}
			out = append(out, a)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}

	SortAnalyses(out)
	return out, nil
}
