package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"replay_fetcher/internal/domain"
	"replay_fetcher/internal/logging"
)

// Fetcher walks the catalog newest first until it meets the store's cache point.
type Fetcher struct {
	catalog  Catalog
	pageSize int
	delay    time.Duration
	logger   zerolog.Logger
}

func NewFetcher(catalog Catalog, pageSize int, delay time.Duration, logger zerolog.Logger) *Fetcher {
	if pageSize < 1 {
		pageSize = 1
	}
	return &Fetcher{
		catalog:  catalog,
		pageSize: pageSize,
		delay:    delay,
		logger:   logging.Named(logger, "fetcher"),
	}
}

// Collect returns every upload newer than the cache point, plus uploads at or
// past it on the final page whose titles changed. Pages are requested one at a
// time with at least the configured delay between requests.
func (f *Fetcher) Collect(ctx context.Context, identity domain.Identity, store CachePoint) (*domain.Batch, error) {
	limiter := rate.NewLimiter(rate.Every(f.delay), 1)
	logger := f.logger.With().Int64("uid", identity.ID).Logger()

	batch := &domain.Batch{}
	reached := false

	for page := 1; ; page++ {
		if err := limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("wait for page %d: %w", page, err)
		}

		resp, err := f.catalog.FetchPage(ctx, identity.ID, page, f.pageSize)
		if err != nil {
			return nil, fmt.Errorf("fetch page %d: %w", page, err)
		}
		batch.Pages++

		logger.Debug().
			Int("page", page).
			Int("max_page", resp.PageCount()).
			Int("uploads", len(resp.Uploads)).
			Msg("fetched page")

		for _, u := range resp.Uploads {
			if !reached && store.HasReachedCachePoint(u.ID) {
				reached = true
			}

			if !reached {
				if batch.HeadID == 0 {
					batch.HeadID = u.ID
				}
				batch.Uploads = append(batch.Uploads, u)
				continue
			}

			if !store.TitleUnchanged(u) {
				u.TitleChanged = true
				batch.Uploads = append(batch.Uploads, u)
			}
		}

		if reached || !resp.HasNext {
			break
		}
		if len(resp.Uploads) == 0 {
			logger.Warn().Int("page", page).Msg("catalog reported more pages but returned none")
			break
		}
	}

	logger.Debug().
		Int("pages", batch.Pages).
		Int("uploads", len(batch.Uploads)).
		Bool("cache_point_reached", reached).
		Msg("collected uploads")

	return batch, nil
}
