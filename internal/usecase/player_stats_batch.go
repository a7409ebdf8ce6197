package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/mlb-stats/internal/domain/baseball"
)

const defaultBatchWorkers = 4

type BatchHittingResult struct {
	PersonID   baseball.PersonID `json:"person_id"`
	Hitting    *PlayerHitting    `json:"hitting,omitempty"`
	Error      string            `json:"error,omitempty"`
	DurationMs int64             `json:"duration_ms"`
	err        error
}

func (r BatchHittingResult) Err() error {
	return r.err
}

// BatchHitting loads hitting profiles for every id on a bounded worker pool.
// A failure for one player is reported in its row and does not stop the
// others. Rows come back sorted by person id; duplicate ids are loaded once.
func (s *PlayerStatsService) BatchHitting(ctx context.Context, personIDs []baseball.PersonID, season string) ([]BatchHittingResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerStatsService.BatchHitting")
	defer span.End()

	ids := uniquePersonIDs(personIDs)
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: at least one person id is required", ErrInvalidInput)
	}

	workerCount := s.batchWorkers
	if workerCount > len(ids) {
		workerCount = len(ids)
	}
	workers, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer workers.Release()

	results := make(chan BatchHittingResult, len(ids))
	var wg sync.WaitGroup
	for _, personID := range ids {
		wg.Add(1)
		if err := workers.Submit(func() {
			defer wg.Done()

			start := time.Now()
			row := BatchHittingResult{PersonID: personID}
			profile, err := s.Hitting(ctx, personID, season)
			if err != nil {
				row.err = err
				row.Error = err.Error()
			} else {
				row.Hitting = &profile
			}
			row.DurationMs = time.Since(start).Milliseconds()
			results <- row
		}); err != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	wg.Wait()
	close(results)

	out := make([]BatchHittingResult, 0, len(ids))
	failed := 0
	for row := range results {
		if row.err != nil {
			failed++
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PersonID < out[j].PersonID })

	if failed > 0 {
		s.logger.WarnContext(ctx, "batch hitting finished with failures",
			"total", len(out),
			"failed", failed,
		)
	}
	return out, nil
}

func uniquePersonIDs(ids []baseball.PersonID) []baseball.PersonID {
	seen := make(map[baseball.PersonID]struct{}, len(ids))
	out := make([]baseball.PersonID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
