package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"machine_health/internal/models"
	"machine_health/internal/repository"
)

// Listing limits applied when the caller asks for nothing or too much.
const (
	defaultHistoryLimit = 100
	maxHistoryLimit     = 1000
)

var errInvalidTimeRange = errors.New("invalid time range: From must be <= To")

// HistoryFilter narrows prediction listings by machine type and time range.
type HistoryFilter struct {
	MachineType string
	From        time.Time // inclusive; zero means no lower bound
	To          time.Time // inclusive; zero means no upper bound
	Limit       int
	Offset      int
}

type HistoryService struct {
	predictionRepo repository.PredictionRepo
}

func NewHistoryService(predictionRepo repository.PredictionRepo) *HistoryService {
	return &HistoryService{predictionRepo: predictionRepo}
}

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f HistoryFilter) (repository.PredictionFilter, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return repository.PredictionFilter{}, errInvalidTimeRange
	}

	limit := f.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	return repository.PredictionFilter{
		MachineType: strings.TrimSpace(f.MachineType),
		From:        from,
		To:          to,
		Limit:       limit,
		Offset:      offset,
	}, nil
}

func (s *HistoryService) List(ctx context.Context, f HistoryFilter) ([]models.Prediction, error) {
	filter, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.predictionRepo.List(ctx, filter)
}
