package search

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks AccountSource,ControllerInspector,Emitter

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"accessexplorer/internal/analytics"
	"accessexplorer/internal/platform/logger"
	"accessexplorer/internal/subgraph"
	"accessexplorer/internal/timelock/models"
	"accessexplorer/pkg/domain"
	dErrors "accessexplorer/pkg/domain-errors"
)

// AccountSource looks an address up in the access-control indexer.
type AccountSource interface {
	Account(ctx context.Context, address string) (*subgraph.Account, error)
}

// ControllerInspector checks whether an address is a TimelockController.
type ControllerInspector interface {
	Controller(ctx context.Context, chainID int64, address string) (models.ControllerInfo, error)
}

// Emitter records analytics events.
type Emitter interface {
	Emit(ctx context.Context, e analytics.Event)
}

// Match is one navigable entity found for the searched address.
type Match struct {
	Type    domain.EntityType `json:"type"`
	ID      string            `json:"id"`
	Address string            `json:"address"`
	Manager string            `json:"manager,omitempty"`
	Role    string            `json:"role,omitempty"`
	Label   string            `json:"label"`
}

// Result classifies an address on one chain.
type Result struct {
	Address              string  `json:"address"`
	ChainID              int64   `json:"chain_id"`
	IsAccessManager      bool    `json:"is_access_manager"`
	IsAccessManaged      bool    `json:"is_access_managed"`
	HasMembership        bool    `json:"has_membership"`
	IsTarget             bool    `json:"is_target"`
	IsTimelockController bool    `json:"is_timelock_controller"`
	HasResults           bool    `json:"has_results"`
	Matches              []Match `json:"matches"`
}

// Service classifies addresses across the access-control and timelock indexers.
type Service struct {
	accounts map[int64]AccountSource
	timelock ControllerInspector
	events   Emitter
	logger   *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithEmitter records a search event for every opened result.
func WithEmitter(e Emitter) Option {
	return func(s *Service) {
		s.events = e
	}
}

// New creates a search Service. Either collaborator may be absent for a chain.
func New(accounts map[int64]AccountSource, timelock ControllerInspector, opts ...Option) *Service {
	s := &Service{
		accounts: accounts,
		timelock: timelock,
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search classifies address on chainID.
// Inspection failures degrade to "not a timelock"; indexer failures are returned.
func (s *Service) Search(ctx context.Context, chainID int64, address string) (Result, error) {
	addr, err := domain.ParseAddress(address)
	if err != nil {
		return Result{}, err
	}

	var (
		account    *subgraph.Account
		controller models.ControllerInfo
	)
	g, gctx := errgroup.WithContext(ctx)
	if src, ok := s.accounts[chainID]; ok && src != nil {
		g.Go(func() error {
			var err error
			account, err = src.Account(gctx, addr.String())
			if err != nil {
				return subgraph.ToDomainError(err, "account lookup failed")
			}
			return nil
		})
	}
	if s.timelock != nil {
		g.Go(func() error {
			info, err := s.timelock.Controller(gctx, chainID, addr.String())
			if err != nil {
				s.logger.WarnContext(ctx, "timelock inspection failed during search",
					"chain_id", chainID,
					"address", addr,
					"error", err,
				)
				return nil
			}
			controller = info
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	return classify(chainID, addr, account, controller.IsTimelockController), nil
}

// Navigate records that a search result was opened. entityID is a Match ID:
// either a bare address or "{manager}/{role}/{account}". A bare address is
// recorded as the manager, the same position it takes in a composite id.
func (s *Service) Navigate(ctx context.Context, chainName, entityID string) error {
	parts := strings.SplitN(entityID, "/", 3)
	var manager, role, account string
	switch len(parts) {
	case 1:
		a, err := domain.ParseAddress(parts[0])
		if err != nil {
			return err
		}
		manager = a.String()
	case 3:
		m, err := domain.ParseAddress(parts[0])
		if err != nil {
			return err
		}
		acc, err := domain.ParseAddress(parts[2])
		if err != nil {
			return err
		}
		manager, role, account = m.String(), parts[1], acc.String()
	default:
		return dErrors.New(dErrors.CodeBadRequest, "entity id must be an address or manager/role/account")
	}

	if s.events == nil {
		return nil
	}
	e := analytics.NewEvent(ctx, analytics.EventSearch, chainName)
	e.Manager = manager
	e.Role = role
	e.Account = account
	s.events.Emit(ctx, e)
	return nil
}

func classify(chainID int64, addr domain.Address, account *subgraph.Account, isTimelock bool) Result {
	res := Result{
		Address:              addr.String(),
		ChainID:              chainID,
		IsTimelockController: isTimelock,
		Matches:              []Match{},
	}
	if account != nil {
		if account.AccessManager != "" {
			res.IsAccessManager = true
			res.Matches = append(res.Matches, newMatch(domain.EntityAccessManager, account.AccessManager, "", ""))
		}
		if account.AccessManaged != "" {
			res.IsAccessManaged = true
			res.Matches = append(res.Matches, newMatch(domain.EntityAccessManaged, account.AccessManaged, "", ""))
		}
		for _, m := range account.Memberships {
			res.HasMembership = true
			match := newMatch(domain.EntityRoleMember, addr.String(), m.Manager, m.RoleID)
			if m.RoleLabel != "" {
				match.Label = m.RoleLabel
			}
			res.Matches = append(res.Matches, match)
		}
		for _, t := range account.Targets {
			res.IsTarget = true
			res.Matches = append(res.Matches, newMatch(domain.EntityTarget, addr.String(), t.Manager, ""))
		}
	}
	if isTimelock {
		res.Matches = append(res.Matches, newMatch(domain.EntityTimelockController, addr.String(), "", ""))
	}
	res.HasResults = res.IsAccessManager || res.IsAccessManaged || res.HasMembership || res.IsTarget || res.IsTimelockController
	return res
}

// newMatch builds the "{manager}/{role}/{account}" entity id used for navigation.
func newMatch(t domain.EntityType, address, manager, role string) Match {
	id := address
	if manager != "" {
		id = strings.Join([]string{manager, role, address}, "/")
	}
	return Match{
		Type:    t,
		ID:      id,
		Address: strings.ToLower(address),
		Manager: manager,
		Role:    role,
		Label:   t.Label(),
	}
}
