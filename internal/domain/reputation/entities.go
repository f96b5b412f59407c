package reputation

import "time"

type Kind string

const (
	KindCommunity Kind = "community"
	KindLocalNode Kind = "local_node"
)

// Score is the reputation of one community or local node, always in [0, MaxReputation].
type Score struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"-"`
	Kind      Kind      `gorm:"size:16;not null;uniqueIndex:ux_reputation_scores_kind_holder" json:"kind"`
	Holder    string    `gorm:"size:32;not null;uniqueIndex:ux_reputation_scores_kind_holder" json:"holder"`
	Value     int64     `gorm:"not null" json:"value"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Score) TableName() string { return "reputation_scores" }

// CompletedProjects counts on-time repayments per community and tier.
type CompletedProjects struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"-"`
	Community string    `gorm:"size:32;not null;uniqueIndex:ux_completed_projects_community_tier" json:"community"`
	Tier      int64     `gorm:"not null;uniqueIndex:ux_completed_projects_community_tier" json:"tier"`
	Completed int64     `gorm:"not null" json:"completed"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (CompletedProjects) TableName() string { return "completed_projects" }
