package services

import (
	"context"
	"math"
	"sync"

	"github.com/periodpain/pain-helper/internal/apiclient"
	"github.com/periodpain/pain-helper/internal/domain"
	apperrors "github.com/periodpain/pain-helper/internal/errors"
)

// historyLimit bounds how many recent entries a refresh fetches.
const historyLimit = 30

// emptyHistoryMin is the sentinel minimum for an empty history. It is
// not a real measurement; the presentation layer must treat an empty
// history as its own display state instead of showing this value.
const emptyHistoryMin = 10

// HistoryView is one consistent snapshot of fetched entries and their
// derived statistics. Entries keep the server's order.
type HistoryView struct {
	Entries []domain.PainEntry
	Summary domain.HistorySummary
}

// HistoryService fetches a bounded pain history and derives summary
// statistics. Refreshes are fully re-entrant: each one replaces both
// the entry set and the statistics atomically, and a stale response
// (one overtaken by a newer refresh for the same installation) is
// discarded rather than allowed to overwrite newer state.
type HistoryService struct {
	api *apiclient.Client

	mu    sync.Mutex
	views map[int64]*HistoryView
	seqs  map[int64]uint64
}

// NewHistoryService creates the history aggregator.
func NewHistoryService(api *apiclient.Client) *HistoryService {
	return &HistoryService{
		api:   api,
		views: make(map[int64]*HistoryView),
		seqs:  make(map[int64]uint64),
	}
}

// RefreshHistory fetches the most recent entries and recomputes the
// summary. On failure the previous view is kept untouched.
func (s *HistoryService) RefreshHistory(ctx context.Context, installationID int64, userID string) (*HistoryView, error) {
	s.mu.Lock()
	s.seqs[installationID]++
	seq := s.seqs[installationID]
	s.mu.Unlock()

	entries, err := s.api.ListPainHistory(ctx, userID, historyLimit)
	if err != nil {
		return nil, apperrors.NewRemoteError(err, "pain history fetch")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seqs[installationID] {
		// A newer refresh was issued while this one was in flight;
		// the response that belongs to it wins.
		return s.views[installationID], nil
	}

	view := &HistoryView{
		Entries: entries,
		Summary: ComputeSummary(entries),
	}
	s.views[installationID] = view
	return view, nil
}

// View returns the last accepted snapshot, or nil before the first
// successful refresh.
func (s *HistoryService) View(installationID int64) *HistoryView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.views[installationID]
}

// ComputeSummary derives statistics from a pain entry collection. The
// average is rounded to one decimal. Statistics are always recomputed
// from the full collection, never incrementally updated.
func ComputeSummary(entries []domain.PainEntry) domain.HistorySummary {
	summary := domain.HistorySummary{MinPainScore: emptyHistoryMin}
	if len(entries) == 0 {
		return summary
	}

	summary.TotalEntries = len(entries)
	summary.MaxPainScore = entries[0].PainScore
	summary.MinPainScore = entries[0].PainScore

	sum := 0
	for _, e := range entries {
		sum += e.PainScore
		if e.PainScore > summary.MaxPainScore {
			summary.MaxPainScore = e.PainScore
		}
		if e.PainScore < summary.MinPainScore {
			summary.MinPainScore = e.PainScore
		}
	}

	mean := float64(sum) / float64(len(entries))
	summary.AvgPainScore = math.Round(mean*10) / 10
	return summary
}
