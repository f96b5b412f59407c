package reputationmock

import (
	"context"

	domain "crowdlending/internal/domain/reputation"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies reputation.Repository.
type Repo struct {
	GetFn                        func(ctx context.Context, kind domain.Kind, holder string) (*domain.Score, error)
	SaveFn                       func(ctx context.Context, s *domain.Score) error
	InitIfAbsentFn               func(ctx context.Context, kind domain.Kind, holder string, value int64) error
	IncrementCompletedProjectsFn func(ctx context.Context, community string, tier int64) (int64, error)
	CompletedProjectsFn          func(ctx context.Context, community string, tier int64) (int64, error)
}

func (m *Repo) Get(ctx context.Context, kind domain.Kind, holder string) (*domain.Score, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, kind, holder)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, s *domain.Score) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, s)
	}
	return nil
}

func (m *Repo) InitIfAbsent(ctx context.Context, kind domain.Kind, holder string, value int64) error {
	if m.InitIfAbsentFn != nil {
		return m.InitIfAbsentFn(ctx, kind, holder, value)
	}
	return nil
}

func (m *Repo) IncrementCompletedProjects(ctx context.Context, community string, tier int64) (int64, error) {
	if m.IncrementCompletedProjectsFn != nil {
		return m.IncrementCompletedProjectsFn(ctx, community, tier)
	}
	return 0, context.Canceled
}

func (m *Repo) CompletedProjects(ctx context.Context, community string, tier int64) (int64, error) {
	if m.CompletedProjectsFn != nil {
		return m.CompletedProjectsFn(ctx, community, tier)
	}
	return 0, context.Canceled
}

// Store is an in-memory score table for usecase tests.
type Store struct {
	Scores    map[domain.Kind]map[string]int64
	Completed map[string]int64
}

func NewStore() *Store {
	return &Store{
		Scores:    map[domain.Kind]map[string]int64{domain.KindCommunity: {}, domain.KindLocalNode: {}},
		Completed: map[string]int64{},
	}
}

// Repo returns a mock backed by s.
func (s *Store) Repo() *Repo {
	return &Repo{
		GetFn: func(_ context.Context, kind domain.Kind, holder string) (*domain.Score, error) {
			v, ok := s.Scores[kind][holder]
			if !ok {
				return nil, domain.ErrNotFound
			}
			return &domain.Score{Kind: kind, Holder: holder, Value: v}, nil
		},
		SaveFn: func(_ context.Context, sc *domain.Score) error {
			s.Scores[sc.Kind][sc.Holder] = sc.Value
			return nil
		},
		InitIfAbsentFn: func(_ context.Context, kind domain.Kind, holder string, value int64) error {
			if _, ok := s.Scores[kind][holder]; !ok {
				s.Scores[kind][holder] = value
			}
			return nil
		},
	}
}
