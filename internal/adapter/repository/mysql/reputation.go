package mysql

import (
	"context"
	"errors"

	"crowdlending/internal/domain/reputation"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReputationRepository struct{ db *gorm.DB }

func NewReputationRepository(db *gorm.DB) *ReputationRepository {
	return &ReputationRepository{db: db}
}

func (r *ReputationRepository) Get(ctx context.Context, kind reputation.Kind, holder string) (*reputation.Score, error) {
	var out reputation.Score
	res := r.db.WithContext(ctx).Where("kind = ? AND holder = ?", kind, holder).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, reputation.ErrNotFound
	}
	return &out, res.Error
}

func (r *ReputationRepository) Save(ctx context.Context, s *reputation.Score) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *ReputationRepository) InitIfAbsent(ctx context.Context, kind reputation.Kind, holder string, value int64) error {
	s := &reputation.Score{Kind: kind, Holder: holder, Value: value}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "kind"}, {Name: "holder"}},
			DoNothing: true,
		}).
		Create(s).Error
}

func (r *ReputationRepository) IncrementCompletedProjects(ctx context.Context, community string, tier int64) (int64, error) {
	row := &reputation.CompletedProjects{Community: community, Tier: tier, Completed: 1}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "community"}, {Name: "tier"}},
			DoUpdates: clause.Assignments(map[string]any{"completed": gorm.Expr("completed + 1")}),
		}).
		Create(row).Error
	if err != nil {
		return 0, err
	}
	return r.CompletedProjects(ctx, community, tier)
}

// CompletedProjects is 0 for a community+tier that never completed a project.
func (r *ReputationRepository) CompletedProjects(ctx context.Context, community string, tier int64) (int64, error) {
	var out reputation.CompletedProjects
	res := r.db.WithContext(ctx).Where("community = ? AND tier = ?", community, tier).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	return out.Completed, res.Error
}
