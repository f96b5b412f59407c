package reputation

import (
	"context"
	"errors"
	"fmt"

	domainLending "crowdlending/internal/domain/lending"
	domainRep "crowdlending/internal/domain/reputation"
	"crowdlending/internal/domain/uow"
	"crowdlending/internal/metrics"

	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("reputation")

// Engine applies the scoring functions to the scores of an agreement's community
// and local node. Mutations run inside the caller's transaction.
type Engine struct {
	scores  domainRep.Repository
	policy  domainRep.BoundaryPolicy
	metrics *metrics.Metrics
}

type Option func(*Engine)

func WithBoundaryPolicy(p domainRep.BoundaryPolicy) Option {
	return func(e *Engine) { e.policy = p }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// NewEngine: scores serves the read API only.
func NewEngine(scores domainRep.Repository, opts ...Option) *Engine {
	e := &Engine{scores: scores, policy: domainRep.PolicyFloor}
	for _, o := range opts {
		o(e)
	}
	return e
}

func (e *Engine) Policy() domainRep.BoundaryPolicy { return e.policy }

type pair struct {
	community, localNode *domainRep.Score
}

// load checks that agreementID may write reputation and returns the agreement
// and both of its scores.
func (e *Engine) load(ctx context.Context, r uow.Repos, agreementID string, needMaxDelay bool) (*domainLending.Agreement, pair, error) {
	ok, err := r.Registry.IsContractRegistered(ctx, agreementID)
	if err != nil {
		return nil, pair{}, err
	}
	if !ok {
		return nil, pair{}, domainRep.ErrUnregisteredContract
	}

	a, err := r.Agreements.GetByAgreementID(ctx, agreementID)
	if err != nil {
		return nil, pair{}, err
	}
	if a.Community == "" || a.LocalNode == "" || a.Tier <= 0 || (needMaxDelay && a.MaxDefaultDays <= 0) {
		return nil, pair{}, domainRep.ErrRegistrationMissing
	}

	var p pair
	if p.community, err = e.score(ctx, r, domainRep.KindCommunity, a.Community); err != nil {
		return nil, pair{}, err
	}
	if p.localNode, err = e.score(ctx, r, domainRep.KindLocalNode, a.LocalNode); err != nil {
		return nil, pair{}, err
	}
	return a, p, nil
}

func (e *Engine) score(ctx context.Context, r uow.Repos, kind domainRep.Kind, holder string) (*domainRep.Score, error) {
	s, err := r.Reputation.Get(ctx, kind, holder)
	if errors.Is(err, domainRep.ErrNotFound) {
		return nil, fmt.Errorf("%w: no %s score for %s", domainRep.ErrRegistrationMissing, kind, holder)
	}
	return s, err
}

func (e *Engine) save(ctx context.Context, r uow.Repos, p pair) error {
	if err := r.Reputation.Save(ctx, p.community); err != nil {
		return err
	}
	return r.Reputation.Save(ctx, p.localNode)
}

// BurnReputation penalizes both scores for delayDays of late repayment.
func (e *Engine) BurnReputation(ctx context.Context, r uow.Repos, agreementID string, delayDays int64) error {
	a, p, err := e.load(ctx, r, agreementID, true)
	if err != nil {
		return err
	}
	prevC, prevL := p.community.Value, p.localNode.Value
	p.community.Value = domainRep.BurnCommunityReputation(delayDays, a.MaxDefaultDays, prevC)
	p.localNode.Value = domainRep.BurnLocalNodeReputation(delayDays, a.MaxDefaultDays, prevL, e.policy)
	if err := e.save(ctx, r, p); err != nil {
		return err
	}

	log.Infow("reputation burned",
		"agreement", agreementID, "delay_days", delayDays, "max_delay_days", a.MaxDefaultDays,
		"community", a.Community, "community_from", prevC, "community_to", p.community.Value,
		"local_node", a.LocalNode, "local_node_from", prevL, "local_node_to", p.localNode.Value)
	e.metrics.IncrementReputationUpdate(string(domainRep.KindCommunity), "burn")
	e.metrics.IncrementReputationUpdate(string(domainRep.KindLocalNode), "burn")
	return nil
}

// IncrementReputation rewards both scores for an on-time repayment. completed is the
// community's completed-project count in the agreement's tier, this project included.
func (e *Engine) IncrementReputation(ctx context.Context, r uow.Repos, agreementID string, completed int64) error {
	a, p, err := e.load(ctx, r, agreementID, false)
	if err != nil {
		return err
	}
	prevC, prevL := p.community.Value, p.localNode.Value
	if p.community.Value, err = domainRep.IncrementCommunityReputation(prevC, completed); err != nil {
		return err
	}
	p.localNode.Value = domainRep.IncrementLocalNodeReputation(prevL, a.Tier, a.CommunityMembers)
	if err := e.save(ctx, r, p); err != nil {
		return err
	}

	log.Infow("reputation incremented",
		"agreement", agreementID, "completed_in_tier", completed, "tier", a.Tier,
		"community", a.Community, "community_from", prevC, "community_to", p.community.Value,
		"local_node", a.LocalNode, "local_node_from", prevL, "local_node_to", p.localNode.Value)
	e.metrics.IncrementReputationUpdate(string(domainRep.KindCommunity), "increment")
	e.metrics.IncrementReputationUpdate(string(domainRep.KindLocalNode), "increment")
	return nil
}

func (e *Engine) CommunityReputation(ctx context.Context, community string) (*ScoreDTO, error) {
	return e.read(ctx, domainRep.KindCommunity, community)
}

func (e *Engine) LocalNodeReputation(ctx context.Context, localNode string) (*ScoreDTO, error) {
	return e.read(ctx, domainRep.KindLocalNode, localNode)
}

func (e *Engine) read(ctx context.Context, kind domainRep.Kind, holder string) (*ScoreDTO, error) {
	s, err := e.scores.Get(ctx, kind, holder)
	if err != nil {
		return nil, err
	}
	return &ScoreDTO{Kind: string(s.Kind), Holder: s.Holder, Value: s.Value, Max: domainRep.MaxReputation, UpdatedAt: s.UpdatedAt}, nil
}
