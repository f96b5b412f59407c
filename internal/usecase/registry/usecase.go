package registry

import (
	"context"
	"fmt"

	domainRegistry "crowdlending/internal/domain/registry"
	domainRep "crowdlending/internal/domain/reputation"
	"crowdlending/internal/domain/uow"
	"crowdlending/pkg/id"

	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("registry")

type Usecase struct {
	uow   uow.UnitOfWork
	admin string
}

// NewUsecase: admin is the only identity allowed to register users.
func NewUsecase(tx uow.UnitOfWork, admin string) *Usecase {
	return &Usecase{uow: tx, admin: admin}
}

func (u *Usecase) authorize(caller string) error {
	if u.admin == "" || caller != u.admin {
		return domainRegistry.ErrUnauthorized
	}
	return nil
}

func validate(identity string, role domainRegistry.Role) error {
	if !id.Valid(identity) {
		return fmt.Errorf("%w: %q", domainRegistry.ErrInvalidID, identity)
	}
	if !role.Valid() {
		return fmt.Errorf("%w: %q", domainRegistry.ErrInvalidRole, role)
	}
	return nil
}

// seedKind maps roles that carry a reputation score to the score kind.
func seedKind(role domainRegistry.Role) (domainRep.Kind, bool) {
	switch role {
	case domainRegistry.RoleCommunity:
		return domainRep.KindCommunity, true
	case domainRegistry.RoleLocalNode:
		return domainRep.KindLocalNode, true
	}
	return "", false
}

// Register activates identity under role. Communities and local nodes get
// their reputation seeded on first registration.
func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*RegistrationDTO, error) {
	if err := u.authorize(in.Caller); err != nil {
		return nil, err
	}
	role := domainRegistry.Role(in.Role)
	if err := validate(in.Identity, role); err != nil {
		return nil, err
	}

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Registry.Upsert(ctx, in.Identity, role, true); err != nil {
			return err
		}
		if kind, ok := seedKind(role); ok {
			return r.Reputation.InitIfAbsent(ctx, kind, in.Identity, domainRep.InitReputation)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Infow("identity registered", "identity", in.Identity, "role", role)
	return &RegistrationDTO{Identity: in.Identity, Role: in.Role, Active: true}, nil
}

// ChangeStatus flips every listed identity in one transaction; one unknown identity
// aborts the whole batch.
func (u *Usecase) ChangeStatus(ctx context.Context, in ChangeStatusInput) ([]RegistrationDTO, error) {
	if err := u.authorize(in.Caller); err != nil {
		return nil, err
	}
	role := domainRegistry.Role(in.Role)
	for _, ident := range in.Identities {
		if err := validate(ident, role); err != nil {
			return nil, err
		}
	}

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		for _, ident := range in.Identities {
			if err := r.Registry.SetStatus(ctx, ident, role, in.Active); err != nil {
				return fmt.Errorf("%s: %w", ident, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]RegistrationDTO, 0, len(in.Identities))
	for _, ident := range in.Identities {
		out = append(out, RegistrationDTO{Identity: ident, Role: in.Role, Active: in.Active})
	}
	log.Infow("registration status changed", "role", role, "active", in.Active, "count", len(out))
	return out, nil
}

func (u *Usecase) IsRegistered(ctx context.Context, identity, role string) (*RegistrationDTO, error) {
	rl := domainRegistry.Role(role)
	if err := validate(identity, rl); err != nil {
		return nil, err
	}
	var ok bool
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		ok, err = r.Registry.IsRegistered(ctx, identity, rl)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &RegistrationDTO{Identity: identity, Role: role, Active: ok}, nil
}
