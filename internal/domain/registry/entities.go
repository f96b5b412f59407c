package registry

import "time"

type Role string

const (
	RoleInvestor       Role = "investor"
	RoleLocalNode      Role = "local_node"
	RoleCommunity      Role = "community"
	RoleRepresentative Role = "representative"
)

func (r Role) Valid() bool {
	switch r {
	case RoleInvestor, RoleLocalNode, RoleCommunity, RoleRepresentative:
		return true
	}
	return false
}

// Registration grants identity a role while Active.
type Registration struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"-"`
	Identity  string    `gorm:"size:32;not null;uniqueIndex:ux_registrations_identity_role" json:"identity"`
	Role      Role      `gorm:"size:32;not null;uniqueIndex:ux_registrations_identity_role" json:"role"`
	Active    bool      `gorm:"not null" json:"active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Registration) TableName() string { return "registrations" }

// Contract marks an agreement as allowed to write reputation.
type Contract struct {
	ID           uint64    `gorm:"primaryKey;column:id" json:"-"`
	AgreementID  string    `gorm:"size:32;not null;uniqueIndex:ux_contracts_agreement_id" json:"agreement_id"`
	RegisteredBy string    `gorm:"size:32;not null" json:"registered_by"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Contract) TableName() string { return "contracts" }
