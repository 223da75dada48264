package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"replay_fetcher/internal/config"
	"replay_fetcher/internal/domain"
	"replay_fetcher/internal/logging"
	"replay_fetcher/internal/metrics"
)

type SyncService struct {
	fetcher    *Fetcher
	openStore  StoreOpener
	openMapper MapperOpener
	parsers    []Parser
	renderer   Renderer
	mirror     Mirror
	publisher  Publisher
	metrics    metrics.Recorder
	logger     zerolog.Logger
	config     config.SyncConfig
}

// Options carries the optional collaborators of a SyncService. Nil sinks are skipped.
type Options struct {
	Renderer  Renderer
	Mirror    Mirror
	Publisher Publisher
	Metrics   metrics.Recorder
}

func NewSyncService(
	fetcher *Fetcher,
	openStore StoreOpener,
	openMapper MapperOpener,
	parsers []Parser,
	opts Options,
	logger zerolog.Logger,
	cfg config.SyncConfig,
) *SyncService {
	if cfg.ParseWorkers < 1 {
		cfg.ParseWorkers = 1
	}
	if cfg.IdentityWorkers < 1 {
		cfg.IdentityWorkers = 1
	}
	rec := opts.Metrics
	if rec == nil {
		rec = metrics.Noop{}
	}

	return &SyncService{
		fetcher:    fetcher,
		openStore:  openStore,
		openMapper: openMapper,
		parsers:    parsers,
		renderer:   opts.Renderer,
		mirror:     opts.Mirror,
		publisher:  opts.Publisher,
		metrics:    rec,
		logger:     logging.Named(logger, "sync"),
		config:     cfg,
	}
}

// Sync runs every tracked identity. A failing identity does not stop the
// others; all failures are joined into the returned error.
func (s *SyncService) Sync(ctx context.Context) (*domain.RunStats, error) {
	startTime := time.Now()
	runID := uuid.NewString()

	stats := &domain.RunStats{
		RunID:      runID,
		Identities: make([]domain.SyncStats, len(s.parsers)),
	}
	errs := make([]error, len(s.parsers))

	s.logger.Info().
		Str("run_id", runID).
		Int("identities", len(s.parsers)).
		Msg("starting sync run")

	var g errgroup.Group
	g.SetLimit(s.config.IdentityWorkers)
	for i, p := range s.parsers {
		g.Go(func() error {
			st, err := s.SyncIdentity(ctx, runID, p)
			stats.Identities[i] = *st
			if err != nil {
				errs[i] = fmt.Errorf("identity %d: %w", p.Identity().ID, err)
			}
			return nil
		})
	}
	_ = g.Wait()

	for _, err := range errs {
		if err != nil {
			stats.Failed++
		}
	}

	if s.renderer != nil {
		if err := s.renderer.RenderIndex(); err != nil {
			errs = append(errs, fmt.Errorf("render index: %w", err))
		}
	}

	stats.Duration = time.Since(startTime)

	s.logger.Info().
		Str("run_id", runID).
		Int("failed", stats.Failed).
		Dur("duration", stats.Duration).
		Msg("sync run completed")

	return stats, errors.Join(errs...)
}

// SyncIdentity fetches, classifies and merges one identity's new uploads,
// then refreshes its documents and game override file.
func (s *SyncService) SyncIdentity(ctx context.Context, runID string, p Parser) (*domain.SyncStats, error) {
	startTime := time.Now()
	identity := p.Identity()
	stats := &domain.SyncStats{IdentityID: identity.ID}

	logger := s.logger.With().
		Str("run_id", runID).
		Int64("uid", identity.ID).
		Str("user", identity.DisplayName).
		Logger()

	err := s.syncIdentity(ctx, runID, p, stats, logger)
	stats.Duration = time.Since(startTime)
	s.metrics.ObserveSync(identity.ID, stats.Duration, err)

	if err != nil {
		stats.Errors++
		logger.Error().Err(err).Msg("sync failed")
		return stats, err
	}

	logger.Info().
		Int("pages", stats.Pages).
		Int("fetched", stats.Fetched).
		Int("title_changed", stats.TitleChanged).
		Int("rejected", stats.Rejected).
		Int("added", stats.Added).
		Int("replaced", stats.Replaced).
		Int("published", stats.Published).
		Int("errors", stats.Errors).
		Dur("duration", stats.Duration).
		Msg("sync completed")

	return stats, nil
}

func (s *SyncService) syncIdentity(ctx context.Context, runID string, p Parser, stats *domain.SyncStats, logger zerolog.Logger) error {
	identity := p.Identity()

	store, err := s.openStore(identity)
	if err != nil {
		return fmt.Errorf("open record store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to release record store")
		}
	}()

	batch, err := s.fetcher.Collect(ctx, identity, store)
	if err != nil {
		return fmt.Errorf("collect uploads: %w", err)
	}
	stats.Pages = batch.Pages
	stats.Fetched = len(batch.Uploads)
	stats.TitleChanged = batch.TitleChangedCount()
	s.metrics.AddPages(identity.ID, batch.Pages)

	records, err := s.classify(ctx, p, batch.Uploads, logger)
	if err != nil {
		return fmt.Errorf("classify uploads: %w", err)
	}
	stats.Rejected = len(batch.Uploads) - len(records)

	result, err := store.MergeBatch(records, batch.HeadID)
	if err != nil {
		return fmt.Errorf("merge batch: %w", err)
	}
	stats.Added = len(result.Added)
	stats.Replaced = len(result.Replaced)
	s.metrics.AddRecords(identity.ID, stats.Added, stats.Replaced, stats.Rejected)

	snapshot := store.Snapshot()
	s.metrics.SetRecordsTotal(identity.ID, len(snapshot.Records))

	s.mirrorSnapshot(ctx, &snapshot, stats, logger)
	s.publishResult(ctx, runID, identity.ID, result, stats, logger)

	mapper, err := s.openMapper(identity.ID)
	if err != nil {
		return fmt.Errorf("open aid mapper: %w", err)
	}

	if s.renderer != nil {
		docs, err := s.renderer.RenderIdentity(&snapshot, mapper)
		if err != nil {
			return fmt.Errorf("render documents: %w", err)
		}
		logger.Debug().Strs("documents", docs).Msg("rendered documents")
	}

	added, err := mapper.Update(snapshot.IDs())
	if err != nil {
		return fmt.Errorf("update aid mapper: %w", err)
	}
	if added > 0 {
		logger.Debug().Int("added", added).Msg("aid mapper entries added")
	}

	return nil
}

// classify parses uploads concurrently and returns the accepted records in
// batch order. It returns only after every parse has finished.
func (s *SyncService) classify(ctx context.Context, p Parser, uploads []domain.Upload, logger zerolog.Logger) ([]domain.Record, error) {
	parsed := make([]domain.Record, len(uploads))
	accepted := make([]bool, len(uploads))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.ParseWorkers)
	for i, u := range uploads {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			parsed[i], accepted[i] = p.Parse(u)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := make([]domain.Record, 0, len(uploads))
	for i, ok := range accepted {
		if !ok {
			logger.Debug().Int64("aid", uploads[i].ID).Str("title", uploads[i].Title).Msg("title rejected")
			continue
		}
		records = append(records, parsed[i])
	}
	return records, nil
}

func (s *SyncService) mirrorSnapshot(ctx context.Context, snapshot *domain.UserRecordStore, stats *domain.SyncStats, logger zerolog.Logger) {
	if s.mirror == nil {
		return
	}
	if err := s.mirror.Save(ctx, snapshot); err != nil {
		stats.Errors++
		logger.Warn().Err(err).Msg("failed to mirror record store")
	}
}

func (s *SyncService) publishResult(ctx context.Context, runID string, identityID int64, result *domain.MergeResult, stats *domain.SyncStats, logger zerolog.Logger) {
	if s.publisher == nil {
		return
	}

	publish := func(r domain.Record, replaced bool) {
		event := &domain.RecordEvent{
			RunID:      runID,
			IdentityID: identityID,
			Replaced:   replaced,
			Record:     r,
		}
		if err := s.publisher.Publish(ctx, event); err != nil {
			stats.Errors++
			logger.Warn().Err(err).Int64("aid", r.ID).Msg("failed to publish record event")
			return
		}
		stats.Published++
	}

	for _, r := range result.Replaced {
		publish(r, true)
	}
	for _, r := range result.Added {
		publish(r, false)
	}
}
