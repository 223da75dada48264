package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"replay_fetcher/internal/config"
	"replay_fetcher/internal/domain"
	"replay_fetcher/internal/metrics"
	"replay_fetcher/internal/parser"
	"replay_fetcher/internal/publisher"
	"replay_fetcher/internal/render"
	"replay_fetcher/internal/service"
	"replay_fetcher/internal/source/bilibili"
	"replay_fetcher/internal/storage/jsonfile"
	"replay_fetcher/internal/storage/postgres"
)

// app is the assembled sync pipeline with the resources it holds open.
type app struct {
	cfg      *config.Config
	logger   zerolog.Logger
	registry *parser.Registry
	renderer *render.Renderer
	service  *service.SyncService
	closers  []func() error
}

func location(cfg *config.Config) *time.Location {
	offset := cfg.Parser.Offset()
	return time.FixedZone(fmt.Sprintf("UTC%+g", offset.Hours()), int(offset.Seconds()))
}

func buildRegistry(cfg *config.Config) (*parser.Registry, error) {
	prefixes := make([]parser.StreamerPrefix, len(cfg.Parser.Streamers))
	for i, s := range cfg.Parser.Streamers {
		prefixes[i] = parser.StreamerPrefix{Prefix: s.Prefix, Streamer: domain.Streamer(s.Name)}
	}
	tk := parser.NewToolkit(prefixes, location(cfg))

	specs := make([]parser.IdentitySpec, len(cfg.Identities))
	for i, id := range cfg.Identities {
		specs[i] = parser.IdentitySpec{
			Identity: domain.Identity{ID: id.UID, DisplayName: id.Name},
			Ruleset:  id.Ruleset,
		}
	}
	return parser.Build(tk, specs)
}

func buildRenderer(cfg *config.Config, identities []domain.Identity, logger zerolog.Logger) (*render.Renderer, error) {
	corrections, err := jsonfile.LoadCorrections(cfg.Paths.Corrections)
	if err != nil {
		return nil, fmt.Errorf("load spelling corrections: %w", err)
	}
	return render.New(render.Config{
		DocsDir:    cfg.Paths.DocsDir,
		ReadmePath: cfg.Paths.Readme,
		Location:   location(cfg),
		Identities: identities,
	}, corrections, logger), nil
}

func openMapper(cfg *config.Config) service.MapperOpener {
	return func(identityID int64) (service.AidMapper, error) {
		m, err := jsonfile.OpenAidMapper(cfg.Paths.StateDir, identityID)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
}

// newApp wires the pipeline. reg receives the sync metrics; nil disables them.
func newApp(ctx context.Context, cfg *config.Config, logger zerolog.Logger, reg prometheus.Registerer) (*app, error) {
	a := &app{cfg: cfg, logger: logger}

	registry, err := buildRegistry(cfg)
	if err != nil {
		return nil, fmt.Errorf("build parsers: %w", err)
	}
	a.registry = registry

	renderer, err := buildRenderer(cfg, registry.Identities(), logger)
	if err != nil {
		return nil, err
	}
	a.renderer = renderer

	client := bilibili.New(bilibili.Config{
		BaseURL:        cfg.API.BaseURL,
		Timeout:        cfg.API.Timeout,
		UserAgent:      cfg.API.UserAgent,
		MaxAttempts:    cfg.API.Retry.MaxAttempts,
		InitialBackoff: cfg.API.Retry.InitialBackoff,
		MaxBackoff:     cfg.API.Retry.MaxBackoff,
	}, logger)
	fetcher := service.NewFetcher(client, cfg.API.PageSize, cfg.Sync.PageDelay, logger)

	openStore := func(identity domain.Identity) (service.RecordStore, error) {
		s, err := jsonfile.OpenRecordStore(cfg.Paths.StateDir, identity, jsonfile.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		return s, nil
	}

	opts := service.Options{
		Renderer: renderer,
		Metrics:  metrics.New(cfg.Metrics.Enabled, reg),
	}

	if cfg.Database.Enabled {
		db, err := sqlx.ConnectContext(ctx, "postgres", cfg.Database.DSN())
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		opts.Mirror = postgres.NewMirror(db, logger)
		logger.Info().Str("host", cfg.Database.Host).Msg("connected to database")
	}

	if cfg.RabbitMQ.Enabled {
		pub, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.closers = append(a.closers, pub.Close)
		opts.Publisher = pub
	}

	parsers := make([]service.Parser, 0, len(registry.Parsers()))
	for _, p := range registry.Parsers() {
		parsers = append(parsers, p)
	}

	a.service = service.NewSyncService(fetcher, openStore, openMapper(cfg), parsers, opts, logger, cfg.Sync)
	return a, nil
}

func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}
