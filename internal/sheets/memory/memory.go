// Package memory provides an in-memory ledger store for tests and local
// development. Any user identifier is accepted.
package memory

import (
	"context"
	"errors"
	"sync"
)

type Store struct {
	mu          sync.Mutex
	sheets      map[int64]map[string][][]string
	failAppends bool
}

func New() *Store {
	return &Store{sheets: map[int64]map[string][][]string{}}
}

// FailAppends makes every subsequent AppendRow return an error, for testing
// write-failure paths.
func (s *Store) FailAppends(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failAppends = fail
}

// AppendRow stores a copy of the row under the user's sheet.
func (s *Store) AppendRow(_ context.Context, userID int64, sheet string, row []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAppends {
		return errors.New("append disabled")
	}
	if s.sheets[userID] == nil {
		s.sheets[userID] = map[string][][]string{}
	}
	s.sheets[userID][sheet] = append(s.sheets[userID][sheet], append([]string(nil), row...))
	return nil
}

// ReadAllRows returns the rows appended or seeded for the user's sheet.
func (s *Store) ReadAllRows(_ context.Context, userID int64, sheet string) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.sheets[userID][sheet]
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = append([]string(nil), r...)
	}
	return out, nil
}

// Seed replaces a user's sheet content, for tests and local fixtures.
func (s *Store) Seed(userID int64, sheet string, rows ...[]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sheets[userID] == nil {
		s.sheets[userID] = map[string][][]string{}
	}
	s.sheets[userID][sheet] = nil
	for _, r := range rows {
		s.sheets[userID][sheet] = append(s.sheets[userID][sheet], append([]string(nil), r...))
	}
}
