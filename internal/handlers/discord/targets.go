package discord

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// TargetStore remembers which tokens or sheets a user is currently aiming at
type TargetStore interface {
	Set(ctx context.Context, userID string, targets []string) error
	Get(ctx context.Context, userID string) ([]string, error)
	Clear(ctx context.Context, userID string) error
}

type inMemoryTargets struct {
	mu      sync.RWMutex
	targets map[string][]string
}

// NewInMemoryTargetStore keeps targets for the life of the process
func NewInMemoryTargetStore() TargetStore {
	return &inMemoryTargets{targets: make(map[string][]string)}
}

func (s *inMemoryTargets) Set(_ context.Context, userID string, targets []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(targets) == 0 {
		delete(s.targets, userID)
		return nil
	}
	s.targets[userID] = normalizeTargets(targets)
	return nil
}

func (s *inMemoryTargets) Get(_ context.Context, userID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]string(nil), s.targets[userID]...), nil
}

func (s *inMemoryTargets) Clear(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.targets, userID)
	return nil
}

// parseTargets splits "tok-1, tok-2 sheet-3" into ids
func parseTargets(raw string) []string {
	return normalizeTargets(strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	}))
}

// normalizeTargets drops blanks and duplicates and sorts what is left
func normalizeTargets(targets []string) []string {
	seen := make(map[string]struct{}, len(targets))
	out := make([]string, 0, len(targets))
	for _, t := range targets {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
