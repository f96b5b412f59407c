package reputation

import "context"

type Repository interface {
	Get(ctx context.Context, kind Kind, holder string) (*Score, error)
	Save(ctx context.Context, s *Score) error
	// InitIfAbsent creates the score with value when the holder has none; existing scores are untouched.
	InitIfAbsent(ctx context.Context, kind Kind, holder string, value int64) error
	// IncrementCompletedProjects bumps the counter and returns the new count.
	IncrementCompletedProjects(ctx context.Context, community string, tier int64) (int64, error)
	CompletedProjects(ctx context.Context, community string, tier int64) (int64, error)
}
