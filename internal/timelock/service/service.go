package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Subgraph,ControllerReader,Cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"accessexplorer/internal/platform/logger"
	"accessexplorer/internal/subgraph"
	"accessexplorer/internal/timelock"
	"accessexplorer/internal/timelock/metrics"
	"accessexplorer/internal/timelock/models"
	"accessexplorer/internal/timelock/store"
	"accessexplorer/pkg/domain"
	dErrors "accessexplorer/pkg/domain-errors"
	"accessexplorer/pkg/platform/sentinel"
)

// Subgraph fetches the raw timelock event streams of one chain.
type Subgraph interface {
	TimelockOperations(ctx context.Context) (models.OperationLists, error)
	TimelockSigners(ctx context.Context) (models.RoleEventLists, error)
}

// ControllerReader reads TimelockController state over JSON-RPC.
type ControllerReader interface {
	Inspect(ctx context.Context, address string) (models.ControllerInfo, error)
	OperationState(ctx context.Context, address, operationID string) (models.OperationState, *big.Int, error)
}

// Cache stores raw upstream payloads.
type Cache interface {
	FindOperations(ctx context.Context, chainID int64) (models.OperationLists, error)
	SaveOperations(ctx context.Context, chainID int64, lists models.OperationLists) error
	FindRoleEvents(ctx context.Context, chainID int64) (models.RoleEventLists, error)
	SaveRoleEvents(ctx context.Context, chainID int64, lists models.RoleEventLists) error
	FindController(ctx context.Context, chainID int64, address string) (models.ControllerInfo, error)
	SaveController(ctx context.Context, chainID int64, info models.ControllerInfo) error
}

// Backend bundles the upstream clients of one chain. Either may be nil when the
// chain has no indexer or no RPC endpoint configured.
type Backend struct {
	Subgraph   Subgraph
	Controller ControllerReader
}

// Overview is the combined view of a timelock address.
type Overview struct {
	Controller models.ControllerInfo `json:"controller"`
	Signers    []models.Signer       `json:"signers,omitempty"`
	Operations []models.Operation    `json:"operations,omitempty"`
}

// OperationStatus is the on-chain state of one operation id.
type OperationStatus struct {
	OperationID string                `json:"operation_id"`
	State       models.OperationState `json:"state"`
	Timestamp   *big.Int              `json:"timestamp"`
}

// Service orchestrates indexer reads, contract inspection, caching and the aggregators.
type Service struct {
	backends map[int64]Backend
	cache    Cache
	mode     timelock.ReplayMode
	logger   *slog.Logger
	metrics  *metrics.Metrics
	flight   singleflight.Group
	// fetchTimeout bounds a shared upstream fetch, which outlives the caller
	// that started it.
	fetchTimeout time.Duration
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithFetchTimeout bounds each shared indexer fetch or contract inspection.
func WithFetchTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.fetchTimeout = d
		}
	}
}

// WithReplayMode selects how signer events are replayed.
func WithReplayMode(mode timelock.ReplayMode) Option {
	return func(s *Service) {
		s.mode = mode
	}
}

// New constructs a Service. A nil cache disables caching.
func New(backends map[int64]Backend, cache Cache, opts ...Option) *Service {
	s := &Service{
		backends:     backends,
		cache:        cache,
		mode:         timelock.ReplayGrantsThenRevokes,
		logger:       logger.Discard(),
		fetchTimeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Chains returns the chain ids with a timelock indexer.
func (s *Service) Chains() []int64 {
	ids := make([]int64, 0, len(s.backends))
	for id, b := range s.backends {
		if b.Subgraph != nil {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

func (s *Service) backend(chainID int64) (Backend, error) {
	b, ok := s.backends[chainID]
	if !ok {
		return Backend{}, dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("chain %d is not supported", chainID))
	}
	return b, nil
}

func (s *Service) indexer(chainID int64) (Subgraph, error) {
	b, err := s.backend(chainID)
	if err != nil {
		return nil, err
	}
	if b.Subgraph == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("no timelock indexer configured for chain %d", chainID))
	}
	return b.Subgraph, nil
}

func (s *Service) reader(chainID int64) (ControllerReader, error) {
	b, err := s.backend(chainID)
	if err != nil {
		return nil, err
	}
	if b.Controller == nil {
		return nil, dErrors.New(dErrors.CodeUnavailable, fmt.Sprintf("no rpc endpoint configured for chain %d", chainID))
	}
	return b.Controller, nil
}

func normalizeAddress(address string) (string, error) {
	a, err := domain.ParseAddress(address)
	if err != nil {
		return "", err
	}
	return a.String(), nil
}

// Controller inspects address for the TimelockController interface.
func (s *Service) Controller(ctx context.Context, chainID int64, address string) (models.ControllerInfo, error) {
	addr, err := normalizeAddress(address)
	if err != nil {
		return models.ControllerInfo{}, err
	}
	reader, err := s.reader(chainID)
	if err != nil {
		return models.ControllerInfo{}, err
	}

	if s.cache != nil {
		info, err := s.cache.FindController(ctx, chainID, addr)
		if err == nil {
			s.metrics.IncrementCacheHit(string(store.KindController))
			return info, nil
		}
		s.cacheReadFailed(ctx, store.KindController, err)
	}

	v, err := s.shared(ctx, store.ControllerKey(chainID, addr).String(), func(ctx context.Context) (any, error) {
		info, err := reader.Inspect(ctx, addr)
		if err != nil {
			return nil, err
		}
		s.saveController(ctx, chainID, info)
		return info, nil
	})
	if err != nil {
		return models.ControllerInfo{}, subgraph.ToDomainError(err, "controller inspection failed")
	}
	return v.(models.ControllerInfo), nil
}

// Signers reconstructs the signer set of the chain's timelock. With history the
// emptied accounts are included alongside their revocation time.
func (s *Service) Signers(ctx context.Context, chainID int64, address string, history bool) ([]models.Signer, error) {
	if _, err := normalizeAddress(address); err != nil {
		return nil, err
	}
	events, err := s.roleEvents(ctx, chainID, false)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	h := timelock.BuildRoleHistory(s.mode, events.Granted, events.Revoked)
	var signers []models.Signer
	if history {
		signers = h.Entries()
	} else {
		signers = h.Current()
	}
	s.metrics.ObserveAggregate("signers", start)
	return signers, nil
}

// Operations returns the merged timeline, newest first.
func (s *Service) Operations(ctx context.Context, chainID int64, address string) ([]models.Operation, error) {
	if _, err := normalizeAddress(address); err != nil {
		return nil, err
	}
	lists, err := s.operationLists(ctx, chainID, false)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	ops := timelock.MergeOperations(lists)
	s.metrics.ObserveAggregate("operations", start)
	return ops, nil
}

// Overview inspects the address and loads signers and operations concurrently.
// Signers and operations are only surfaced when the address is a controller;
// their failures are ignored otherwise.
func (s *Service) Overview(ctx context.Context, chainID int64, address string) (Overview, error) {
	var (
		out                Overview
		signersErr, opsErr error
		signers            []models.Signer
		operations         []models.Operation
	)

	var g errgroup.Group
	g.Go(func() error {
		info, err := s.Controller(ctx, chainID, address)
		out.Controller = info
		return err
	})
	g.Go(func() error {
		signers, signersErr = s.Signers(ctx, chainID, address, false)
		return nil
	})
	g.Go(func() error {
		operations, opsErr = s.Operations(ctx, chainID, address)
		return nil
	})
	if err := g.Wait(); err != nil {
		return Overview{}, err
	}

	if !out.Controller.IsTimelockController {
		return out, nil
	}
	if signersErr != nil {
		return Overview{}, signersErr
	}
	if opsErr != nil {
		return Overview{}, opsErr
	}
	out.Signers = signers
	out.Operations = operations
	return out, nil
}

// OperationState reads the on-chain lifecycle state of operationID.
func (s *Service) OperationState(ctx context.Context, chainID int64, address, operationID string) (OperationStatus, error) {
	addr, err := normalizeAddress(address)
	if err != nil {
		return OperationStatus{}, err
	}
	reader, err := s.reader(chainID)
	if err != nil {
		return OperationStatus{}, err
	}
	state, ts, err := reader.OperationState(ctx, addr, operationID)
	if err != nil {
		return OperationStatus{}, subgraph.ToDomainError(err, "operation state lookup failed")
	}
	return OperationStatus{OperationID: strings.ToLower(operationID), State: state, Timestamp: ts}, nil
}

// Refresh refetches both indexer payloads for chainID, bypassing cached reads.
func (s *Service) Refresh(ctx context.Context, chainID int64) error {
	_, opsErr := s.operationLists(ctx, chainID, true)
	_, eventsErr := s.roleEvents(ctx, chainID, true)
	if err := errors.Join(opsErr, eventsErr); err != nil {
		s.metrics.IncrementRefresh("error")
		return err
	}
	s.metrics.IncrementRefresh("ok")
	return nil
}

func (s *Service) operationLists(ctx context.Context, chainID int64, bypass bool) (models.OperationLists, error) {
	idx, err := s.indexer(chainID)
	if err != nil {
		return models.OperationLists{}, err
	}
	if s.cache != nil && !bypass {
		lists, err := s.cache.FindOperations(ctx, chainID)
		if err == nil {
			s.metrics.IncrementCacheHit(string(store.KindOperations))
			return lists, nil
		}
		s.cacheReadFailed(ctx, store.KindOperations, err)
	}

	key := store.OperationsKey(chainID).String()
	if bypass {
		s.flight.Forget(key)
	}
	v, err := s.shared(ctx, key, func(ctx context.Context) (any, error) {
		lists, err := idx.TimelockOperations(ctx)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			if err := s.cache.SaveOperations(ctx, chainID, lists); err != nil {
				s.cacheWriteFailed(ctx, store.KindOperations, err)
			}
		}
		return lists, nil
	})
	if err != nil {
		return models.OperationLists{}, subgraph.ToDomainError(err, "timelock operations query failed")
	}
	return v.(models.OperationLists), nil
}

func (s *Service) roleEvents(ctx context.Context, chainID int64, bypass bool) (models.RoleEventLists, error) {
	idx, err := s.indexer(chainID)
	if err != nil {
		return models.RoleEventLists{}, err
	}
	if s.cache != nil && !bypass {
		lists, err := s.cache.FindRoleEvents(ctx, chainID)
		if err == nil {
			s.metrics.IncrementCacheHit(string(store.KindRoleEvents))
			return lists, nil
		}
		s.cacheReadFailed(ctx, store.KindRoleEvents, err)
	}

	key := store.RoleEventsKey(chainID).String()
	if bypass {
		s.flight.Forget(key)
	}
	v, err := s.shared(ctx, key, func(ctx context.Context) (any, error) {
		lists, err := idx.TimelockSigners(ctx)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			if err := s.cache.SaveRoleEvents(ctx, chainID, lists); err != nil {
				s.cacheWriteFailed(ctx, store.KindRoleEvents, err)
			}
		}
		return lists, nil
	})
	if err != nil {
		return models.RoleEventLists{}, subgraph.ToDomainError(err, "timelock signers query failed")
	}
	return v.(models.RoleEventLists), nil
}

// shared runs fetch once per key for all concurrent callers. The fetch is
// detached from the caller that starts it, so one cancelled request does not
// fail the others; each caller still stops waiting when its own ctx ends.
func (s *Service) shared(ctx context.Context, key string, fetch func(ctx context.Context) (any, error)) (any, error) {
	ch := s.flight.DoChan(key, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.fetchTimeout)
		defer cancel()
		return fetch(fetchCtx)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.Val, res.Err
	}
}

func (s *Service) saveController(ctx context.Context, chainID int64, info models.ControllerInfo) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SaveController(ctx, chainID, info); err != nil {
		s.cacheWriteFailed(ctx, store.KindController, err)
	}
}

func (s *Service) cacheReadFailed(ctx context.Context, kind store.Kind, err error) {
	s.metrics.IncrementCacheMiss(string(kind))
	if !errors.Is(err, sentinel.ErrNotFound) {
		s.logger.WarnContext(ctx, "timelock cache read failed", "kind", kind, "error", err)
	}
}

func (s *Service) cacheWriteFailed(ctx context.Context, kind store.Kind, err error) {
	s.logger.WarnContext(ctx, "timelock cache write failed", "kind", kind, "error", err)
}
