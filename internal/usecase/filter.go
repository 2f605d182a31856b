package usecase

import (
	"sync"

	"storefront_service/internal/domain"

	"github.com/sirupsen/logrus"
)

// FilterStore holds the current catalog filter criteria. Every successful
// update or reset notifies subscribers, which is how downstream loader state
// gets invalidated. Out-of-invariant values (minPrice > maxPrice) are accepted
// and simply yield an empty filtered view.
type FilterStore interface {
	Current() domain.FilterCriteria
	Update(patch domain.FilterPatch) domain.FilterCriteria
	Reset() domain.FilterCriteria
	Subscribe(fn func(domain.FilterCriteria))
}

type filterStore struct {
	mu          sync.Mutex
	criteria    domain.FilterCriteria
	subscribers []func(domain.FilterCriteria)
	log         *logrus.Logger
}

func NewFilterStore(logger *logrus.Logger) FilterStore {
	return &filterStore{
		criteria: domain.DefaultFilterCriteria(),
		log:      logger,
	}
}

func (s *filterStore) Current() domain.FilterCriteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria
}

func (s *filterStore) Update(patch domain.FilterPatch) domain.FilterCriteria {
	s.mu.Lock()
	if patch.Category != nil {
		s.criteria.Category = *patch.Category
	}
	if patch.Search != nil {
		s.criteria.Search = *patch.Search
	}
	if patch.MinPrice != nil {
		s.criteria.MinPrice = *patch.MinPrice
	}
	if patch.MaxPrice != nil {
		s.criteria.MaxPrice = *patch.MaxPrice
	}
	if patch.Rating != nil {
		s.criteria.Rating = *patch.Rating
	}
	updated := s.criteria
	s.mu.Unlock()

	s.log.Infof("FilterStore: Filters updated: category=%q search=%q minPrice=%.2f maxPrice=%.2f rating=%.1f",
		updated.Category, updated.Search, updated.MinPrice, updated.MaxPrice, updated.Rating)
	s.notify(updated)
	return updated
}

func (s *filterStore) Reset() domain.FilterCriteria {
	s.mu.Lock()
	s.criteria = domain.DefaultFilterCriteria()
	updated := s.criteria
	s.mu.Unlock()

	s.log.Info("FilterStore: Filters reset to defaults")
	s.notify(updated)
	return updated
}

func (s *filterStore) Subscribe(fn func(domain.FilterCriteria)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *filterStore) notify(criteria domain.FilterCriteria) {
	s.mu.Lock()
	subscribers := make([]func(domain.FilterCriteria), len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(criteria)
	}
}
