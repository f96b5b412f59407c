package reputation

import "errors"

var (
	ErrNotFound            = errors.New("reputation: score not found")
	ErrNoCompletedProjects = errors.New("reputation: no completed projects in tier")
	ErrInvalidPolicy       = errors.New("reputation: unknown boundary policy")
)

var (
	// ErrUnregisteredContract means the agreement never registered itself as a known contract.
	ErrUnregisteredContract = errors.New("reputation: agreement is not a registered contract")
	ErrRegistrationMissing  = errors.New("reputation: agreement is missing community, local node, tier or max delay")
)
