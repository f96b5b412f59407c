package reputation

import "fmt"

const (
	MaxReputation           = 1000
	ReputationStep          = 100
	MinTier                 = 1
	MinCommunitySize        = 20
	MinProject              = MinTier * MinCommunitySize
	IncrLocalNodeMultiplier = 5
	InitReputation          = MaxReputation / 2
)

// BoundaryPolicy decides what a local node burn does once delayDays reaches maxDelayDays.
type BoundaryPolicy string

const (
	// PolicyFloor drops the score to zero.
	PolicyFloor BoundaryPolicy = "floor"
	// PolicyCap still caps the decrement at ReputationStep.
	PolicyCap BoundaryPolicy = "cap"
)

func ParseBoundaryPolicy(s string) (BoundaryPolicy, error) {
	switch p := BoundaryPolicy(s); p {
	case PolicyFloor, PolicyCap:
		return p, nil
	case "":
		return PolicyFloor, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
}

func clamp(v int64) int64 {
	if v < 0 {
		return 0
	}
	if v > MaxReputation {
		return MaxReputation
	}
	return v
}

// BurnCommunityReputation decays linearly: initial - floor(initial*delay/maxDelay),
// zero once delay reaches maxDelay.
func BurnCommunityReputation(delayDays, maxDelayDays, initial int64) int64 {
	if maxDelayDays <= 0 || delayDays >= maxDelayDays {
		return 0
	}
	if delayDays <= 0 {
		return clamp(initial)
	}
	return clamp(initial - initial*delayDays/maxDelayDays)
}

// IncrementCommunityReputation adds 100/completed, so early projects in a tier weigh more.
func IncrementCommunityReputation(prev, completedProjectsInTier int64) (int64, error) {
	if completedProjectsInTier <= 0 {
		return 0, ErrNoCompletedProjects
	}
	return clamp(prev + ReputationStep/completedProjectsInTier), nil
}

func IncrementLocalNodeReputation(prev, tier, communityMembers int64) int64 {
	if tier <= 0 || communityMembers <= 0 {
		return clamp(prev)
	}
	return clamp(prev + tier*communityMembers/MinProject*IncrLocalNodeMultiplier)
}

// BurnLocalNodeReputation decrements proportionally to delay/maxDelay, never by more than
// ReputationStep in one call. At or past the boundary the policy applies.
func BurnLocalNodeReputation(delayDays, maxDelayDays, initial int64, policy BoundaryPolicy) int64 {
	if delayDays <= 0 {
		return clamp(initial)
	}
	if maxDelayDays <= 0 || delayDays >= maxDelayDays {
		if policy == PolicyCap {
			return clamp(initial - ReputationStep)
		}
		return 0
	}
	dec := initial * delayDays / maxDelayDays
	if dec > ReputationStep {
		dec = ReputationStep
	}
	return clamp(initial - dec)
}
