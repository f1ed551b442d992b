package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"

	"accessexplorer/internal/analytics"
	"accessexplorer/internal/chains"
	"accessexplorer/internal/contract"
	favservice "accessexplorer/internal/favorites/service"
	favstore "accessexplorer/internal/favorites/store"
	jwttoken "accessexplorer/internal/jwt_token"
	"accessexplorer/internal/platform/config"
	"accessexplorer/internal/platform/postgres"
	"accessexplorer/internal/platform/redis"
	"accessexplorer/internal/refresh"
	"accessexplorer/internal/search"
	"accessexplorer/internal/subgraph"
	"accessexplorer/internal/timelock"
	tlmetrics "accessexplorer/internal/timelock/metrics"
	"accessexplorer/internal/timelock/service"
	"accessexplorer/internal/timelock/store"
	"accessexplorer/pkg/platform/circuit"
)

const tokenIssuer = "accessexplorer"

// App holds the wired services shared by the server and the CLI.
type App struct {
	Chains    *chains.Registry
	Timelock  *service.Service
	Search    *search.Service
	Favorites *favservice.Service
	Tokens    *jwttoken.JWTService
	Publisher *analytics.Publisher
	Worker    *analytics.Worker
	Scheduler *refresh.Scheduler
	Redis     *redis.Client
	Postgres  *pgxpool.Pool

	logger  *slog.Logger
	closers []func(context.Context) error
}

// Options tune Build for the calling entry point.
type Options struct {
	// Registerer receives every Prometheus collector. Nil uses a private registry.
	Registerer prometheus.Registerer
	// SkipStorage disables Redis, Postgres and Kafka connections.
	SkipStorage bool
}

// Build wires every component from cfg. The returned App must be closed.
func Build(ctx context.Context, cfg config.Server, logger *slog.Logger, opts Options) (*App, error) {
	reg := opts.Registerer
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	a := &App{logger: logger}

	registry, err := chains.Load(cfg.ChainsFile, chains.Endpoints{
		Subgraph:         cfg.SubgraphURLs,
		TimelockSubgraph: cfg.TimelockSubgraphURLs,
		RPC:              cfg.RPCURLs,
	})
	if err != nil {
		return nil, fmt.Errorf("load chains: %w", err)
	}
	a.Chains = registry

	mode, err := timelock.ParseReplayMode(cfg.SignerReplay)
	if err != nil {
		return nil, err
	}

	if !opts.SkipStorage {
		if err := a.connectStorage(ctx, cfg); err != nil {
			a.Close(ctx)
			return nil, err
		}
	}

	var cache service.Cache = store.NewInMemoryCache(cfg.CacheTTL)
	if a.Redis != nil {
		cache = store.NewRedisCache(a.Redis, cfg.CacheTTL, "explorer")
	}

	subgraphMetrics := subgraph.NewMetrics(reg)
	backends := make(map[int64]service.Backend)
	accounts := make(map[int64]search.AccountSource)
	for _, c := range registry.All() {
		var b service.Backend
		if c.TimelockSubgraphURL != "" {
			b.Subgraph = newSubgraphClient(c.TimelockSubgraphURL, cfg, logger, subgraphMetrics)
		}
		if c.SubgraphURL != "" {
			accounts[c.ID] = newSubgraphClient(c.SubgraphURL, cfg, logger, subgraphMetrics)
		}
		if c.RPCURL != "" {
			reader, err := a.dialReader(ctx, c, cfg, logger)
			if err != nil {
				logger.WarnContext(ctx, "rpc endpoint unavailable, timelock inspection disabled",
					"chain_id", c.ID,
					"error", err,
				)
			} else {
				b.Controller = reader
			}
		}
		backends[c.ID] = b
	}

	a.Timelock = service.New(backends, cache,
		service.WithReplayMode(mode),
		service.WithFetchTimeout(cfg.UpstreamTimeout*2),
		service.WithLogger(logger),
		service.WithMetrics(tlmetrics.New(reg)),
	)

	if err := a.buildAnalytics(ctx, cfg, logger, reg, opts.SkipStorage); err != nil {
		a.Close(ctx)
		return nil, err
	}

	a.Search = search.New(accounts, a.Timelock,
		search.WithLogger(logger),
		search.WithEmitter(a.Publisher),
	)

	var favorites favservice.Store = favstore.NewInMemoryStore()
	if a.Postgres != nil {
		favorites = favstore.NewPostgresStore(a.Postgres)
	}
	a.Favorites = favservice.New(favorites,
		favservice.WithLogger(logger),
		favservice.WithEmitter(a.Publisher),
	)
	a.Tokens = jwttoken.NewJWTService(cfg.JWTSigningKey, tokenIssuer, tokenIssuer)
	a.Scheduler = refresh.NewScheduler(a.Timelock, a.Timelock.Chains(), cfg.UpstreamTimeout*3, logger)
	return a, nil
}

func newSubgraphClient(endpoint string, cfg config.Server, logger *slog.Logger, m *subgraph.Metrics) *subgraph.Client {
	return subgraph.New(endpoint,
		subgraph.WithLogger(logger),
		subgraph.WithMetrics(m),
		subgraph.WithTimeout(cfg.UpstreamTimeout),
		subgraph.WithBreaker(circuit.New(endpoint)),
	)
}

func (a *App) dialReader(ctx context.Context, c chains.Chain, cfg config.Server, logger *slog.Logger) (*contract.TimelockReader, error) {
	client, err := contract.Dial(ctx, c.RPCURL)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func(context.Context) error {
		client.Close()
		return nil
	})
	return contract.NewTimelockReader(client,
		contract.WithLogger(logger.With("chain_id", c.ID)),
		contract.WithCallTimeout(cfg.UpstreamTimeout),
	)
}

func (a *App) connectStorage(ctx context.Context, cfg config.Server) error {
	rc, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	if rc != nil {
		a.Redis = rc
		a.closers = append(a.closers, func(context.Context) error { return rc.Close() })
	}

	pool, err := postgres.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	if pool != nil {
		a.Postgres = pool
		a.closers = append(a.closers, func(context.Context) error {
			pool.Close()
			return nil
		})
		if err := postgres.Migrate(ctx, pool); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) buildAnalytics(ctx context.Context, cfg config.Server, logger *slog.Logger, reg prometheus.Registerer, skip bool) error {
	m := analytics.NewMetrics(reg)
	var sink analytics.Sink = analytics.NewLogSink(logger)
	if !skip && len(cfg.Kafka.Brokers) > 0 {
		client, err := analytics.NewKafkaClient(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			return err
		}
		if err := analytics.EnsureTopic(ctx, client, cfg.Kafka.Topic, 1, 1); err != nil {
			logger.WarnContext(ctx, "analytics topic not ensured", "topic", cfg.Kafka.Topic, "error", err)
		}
		kafka := analytics.NewKafkaSink(client, cfg.Kafka.Topic, logger, m)
		a.closers = append(a.closers, kafka.Close)
		sink = kafka
	}
	a.Publisher, a.Worker = analytics.NewPipeline(sink,
		analytics.WithLogger(logger),
		analytics.WithMetrics(m),
	)
	return nil
}

// Close releases connections in reverse order of acquisition.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
