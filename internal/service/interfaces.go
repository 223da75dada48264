package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"replay_fetcher/internal/domain"
)

type Catalog interface {
	FetchPage(ctx context.Context, identityID int64, page, pageSize int) (*domain.Page, error)
}

// CachePoint is the part of a record store the fetcher consults.
type CachePoint interface {
	HasReachedCachePoint(id int64) bool
	TitleUnchanged(u domain.Upload) bool
}

type RecordStore interface {
	CachePoint
	MergeBatch(records []domain.Record, headID int64) (*domain.MergeResult, error)
	Snapshot() domain.UserRecordStore
	Close() error
}

type AidMapper interface {
	Games(id int64) []string
	Update(ids []int64) (int, error)
}

type Parser interface {
	Identity() domain.Identity
	Parse(u domain.Upload) (domain.Record, bool)
}

type Renderer interface {
	RenderIdentity(store *domain.UserRecordStore, overrides domain.GameOverrides) ([]string, error)
	RenderIndex() error
}

type Mirror interface {
	Save(ctx context.Context, store *domain.UserRecordStore) error
}

type Publisher interface {
	Publish(ctx context.Context, event *domain.RecordEvent) error
	Close() error
}

// StoreOpener opens the record store of one identity, holding it until Close.
type StoreOpener func(identity domain.Identity) (RecordStore, error)

// MapperOpener opens the game override file of one identity.
type MapperOpener func(identityID int64) (AidMapper, error)
