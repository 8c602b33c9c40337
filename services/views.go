package services

import (
	"context"
	"strconv"

	"github.com/petilan/petilan_category_service/config"
	"github.com/petilan/petilan_category_service/models"
)

// The aggregate views are read-through: cached value if fresh, otherwise
// recomputed from storage and cached with the view's TTL.

func (s *categoryService) GetRoots(ctx context.Context) ([]*models.Category, error) {
	if v, ok := s.cache.Get(config.RootListCacheKey); ok {
		return v.([]*models.Category), nil
	}

	roots, err := s.strg.Category().GetRoots()
	if err != nil {
		return nil, err
	}

	s.cache.Set(config.RootListCacheKey, roots, s.cfg.RootListTTL)
	return roots, nil
}

func (s *categoryService) GetTree(ctx context.Context) ([]*models.CategoryNode, error) {
	if v, ok := s.cache.Get(config.TreeCacheKey); ok {
		return v.([]*models.CategoryNode), nil
	}

	tree, err := s.strg.Category().GetTree()
	if err != nil {
		return nil, err
	}

	s.cache.Set(config.TreeCacheKey, tree, s.cfg.TreeTTL)
	return tree, nil
}

func (s *categoryService) GetChildren(ctx context.Context, id string) ([]*models.Category, error) {
	key := config.ChildrenCacheKeyPrefix + id
	if v, ok := s.cache.Get(key); ok {
		return v.([]*models.Category), nil
	}

	if _, err := s.strg.Category().GetByID(id); err != nil {
		return nil, err
	}

	children, err := s.strg.Category().GetChildren(id)
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, children, s.cfg.ChildrenTTL)
	return children, nil
}

func (s *categoryService) GetBreadcrumb(ctx context.Context, id string) ([]*models.BreadcrumbItem, error) {
	key := config.BreadcrumbCacheKeyPrefix + id
	if v, ok := s.cache.Get(key); ok {
		return v.([]*models.BreadcrumbItem), nil
	}

	chain, err := s.strg.Category().GetAncestors(id)
	if err != nil {
		return nil, err
	}

	breadcrumb := make([]*models.BreadcrumbItem, 0, len(chain))
	for _, category := range chain {
		breadcrumb = append(breadcrumb, &models.BreadcrumbItem{
			Id:   category.Id,
			Name: category.Name,
			Slug: category.Slug,
		})
	}

	s.cache.Set(key, breadcrumb, s.cfg.ChildrenTTL)
	return breadcrumb, nil
}

func (s *categoryService) GetPopular(ctx context.Context, limit int) ([]*models.Category, error) {
	if limit <= 0 {
		limit = config.DefaultPopularLimit
	}
	if limit > config.MaxPopularLimit {
		limit = config.MaxPopularLimit
	}

	key := config.PopularCacheKeyPrefix + strconv.Itoa(limit)
	if v, ok := s.cache.Get(key); ok {
		return v.([]*models.Category), nil
	}

	popular, err := s.strg.Category().GetPopular(limit)
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, popular, s.cfg.PopularTTL)
	return popular, nil
}
