package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/suppstack/suppstack-backend/internal/apierr"
	"github.com/suppstack/suppstack-backend/internal/clients/redis"
	"github.com/suppstack/suppstack-backend/internal/logger"
	"github.com/suppstack/suppstack-backend/internal/repos"
	"github.com/suppstack/suppstack-backend/internal/types"
)

type CatalogService interface {
	ListItems(ctx context.Context) ([]types.Item, error)
	GetItem(ctx context.Context, itemID uuid.UUID) (*types.Item, error)
}

type catalogService struct {
	db       *gorm.DB
	log      *logger.Logger
	itemRepo repos.ItemRepo
	cache    *redis.CatalogCache
}

// NewCatalogService wraps the item repo with an optional redis read-through
// cache. cache may be nil; every cache failure degrades to the database.
func NewCatalogService(db *gorm.DB, log *logger.Logger, itemRepo repos.ItemRepo, cache *redis.CatalogCache) CatalogService {
	return &catalogService{
		db:       db,
		log:      log.With("service", "CatalogService"),
		itemRepo: itemRepo,
		cache:    cache,
	}
}

func (s *catalogService) ListItems(ctx context.Context) ([]types.Item, error) {
	if items, ok := s.cache.Get(ctx); ok {
		return items, nil
	}
	items, err := s.itemRepo.List(ctx, nil)
	if err != nil {
		return nil, apierr.Upstream(err)
	}
	s.cache.Set(ctx, items)
	return items, nil
}

func (s *catalogService) GetItem(ctx context.Context, itemID uuid.UUID) (*types.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, nil, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("item %s not found", itemID)
		}
		return nil, apierr.Upstream(err)
	}
	return item, nil
}
