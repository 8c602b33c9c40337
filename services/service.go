package services

import (
	"context"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/petilan/petilan_category_service/config"
	"github.com/petilan/petilan_category_service/models"
	"github.com/petilan/petilan_category_service/pkg/cache"
	"github.com/petilan/petilan_category_service/pkg/kafka"
	"github.com/petilan/petilan_category_service/pkg/logger"
	"github.com/petilan/petilan_category_service/storage"
)

// Publisher is the outbound event surface the service needs; pkg/kafka
// satisfies it.
type Publisher interface {
	Push(topic string, e cloudevents.Event) error
}

type CategoryServiceI interface {
	CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error)
	UpdateCategory(ctx context.Context, id string, req *models.UpdateCategoryRequest) (*models.Category, error)
	DeactivateCategory(ctx context.Context, id string) (*models.Category, error)
	ReactivateCategory(ctx context.Context, id string) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	GetCategoryByID(ctx context.Context, id string) (*models.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	SearchCategories(ctx context.Context, search string, limit int) ([]*models.Category, error)
	SeedDefaults(ctx context.Context) (int, error)

	GetRoots(ctx context.Context) ([]*models.Category, error)
	GetTree(ctx context.Context) ([]*models.CategoryNode, error)
	GetChildren(ctx context.Context, id string) ([]*models.Category, error)
	GetBreadcrumb(ctx context.Context, id string) ([]*models.BreadcrumbItem, error)
	GetPopular(ctx context.Context, limit int) ([]*models.Category, error)

	AddFeature(ctx context.Context, categoryID string, req *models.CreateFeatureRequest) (*models.CategoryFeature, error)
	ListFeatures(ctx context.Context, categoryID string) ([]*models.CategoryFeature, error)
	DeactivateFeature(ctx context.Context, featureID string) error

	RecomputeUsage(ctx context.Context, categoryID string) (int, error)
	OnListingChanged(ctx context.Context, oldCategoryID, newCategoryID *string) error
	SweepUsage(ctx context.Context) (int, error)
}

type categoryService struct {
	log   logger.Logger
	strg  storage.StoragePg
	cache *cache.Cache
	pub   Publisher
	cfg   config.Config
}

func NewCategoryService(log logger.Logger, strg storage.StoragePg, viewCache *cache.Cache, pub Publisher, cfg config.Config) CategoryServiceI {
	return &categoryService{
		log:   log,
		strg:  strg,
		cache: viewCache,
		pub:   pub,
		cfg:   cfg,
	}
}

// invalidateViews drops every aggregate view a mutation of node may have
// touched. Runs only after the storage write has committed. Dropping more
// than strictly necessary is fine; serving stale data is not.
func (s *categoryService) invalidateViews(nodeID string, parents ...*string) {
	keys := []string{
		config.RootListCacheKey,
		config.TreeCacheKey,
		config.ChildrenCacheKeyPrefix + nodeID,
		config.BreadcrumbCacheKeyPrefix + nodeID,
	}
	for _, parent := range parents {
		if parent != nil {
			keys = append(keys,
				config.ChildrenCacheKeyPrefix+*parent,
				config.BreadcrumbCacheKeyPrefix+*parent,
			)
		}
	}

	s.cache.Delete(keys...)
	s.cache.DeletePrefix(config.PopularCacheKeyPrefix)
}

// invalidateAllViews drops every cached aggregate view.
func (s *categoryService) invalidateAllViews() {
	s.cache.Delete(config.RootListCacheKey, config.TreeCacheKey)
	s.cache.DeletePrefix(config.PopularCacheKeyPrefix)
	s.cache.DeletePrefix(config.ChildrenCacheKeyPrefix)
	s.cache.DeletePrefix(config.BreadcrumbCacheKeyPrefix)
}

// publishChanged tells downstream consumers the category changed. Delivery
// is best effort and never fails the mutation.
func (s *categoryService) publishChanged(action string, category *models.Category) {
	if s.pub == nil {
		return
	}

	event, err := kafka.CreateEvent(config.CategoryChangedTopic, "petilan_category_service", map[string]interface{}{
		"action":   action,
		"category": category,
	})
	if err != nil {
		s.log.Error("could not build category event", logger.Error(err))
		return
	}

	if err := s.pub.Push(config.CategoryChangedTopic, event); err != nil {
		s.log.Error("could not publish category event",
			logger.String("action", action),
			logger.String("category_id", category.Id),
			logger.Error(err),
		)
	}
}
