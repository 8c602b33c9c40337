package services

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/petilan/petilan_category_service/config"
	"github.com/petilan/petilan_category_service/models"
	"github.com/petilan/petilan_category_service/pkg/logger"
	"github.com/petilan/petilan_category_service/pkg/slug"
	"github.com/pkg/errors"
)

const (
	minNameLength   = 2
	maxSlugAttempts = 5
	maxSlugProbe    = 1000
)

var colorCodeRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

func (s *categoryService) validateFields(name, colorCode, petType string) error {
	if utf8.RuneCountInString(strings.TrimSpace(name)) < minNameLength {
		return models.NewValidationError("name", "must be at least 2 characters")
	}
	if colorCode != "" && !colorCodeRe.MatchString(colorCode) {
		return models.NewValidationError("color_code", "must match #RRGGBB")
	}
	if petType != "" && !models.PetTypes[petType] {
		return models.NewValidationError("pet_type", "unknown pet type")
	}
	return nil
}

func (s *categoryService) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {

	name := strings.TrimSpace(req.Name)

	if err := s.validateFields(name, req.ColorCode, req.PetType); err != nil {
		return nil, err
	}

	if req.ParentId != nil {
		if _, err := s.strg.Category().GetByID(*req.ParentId); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return nil, models.NewValidationError("parent_id", "parent category does not exist")
			}
			return nil, err
		}
	}

	exists, err := s.strg.Category().SiblingNameExists(req.ParentId, name, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.ErrDuplicateName
	}

	entity := &models.Category{
		Id:          uuid.New().String(),
		Name:        name,
		Description: req.Description,
		IconName:    req.IconName,
		ColorCode:   req.ColorCode,
		PetType:     req.PetType,
		Active:      true,
		SortOrder:   req.SortOrder,
		ParentId:    req.ParentId,
	}
	if entity.ColorCode == "" {
		entity.ColorCode = config.DefaultColorCode
	}
	if entity.PetType == "" {
		entity.PetType = "other"
	}

	if err := s.createWithSlug(entity, slug.Make(name)); err != nil {
		return nil, err
	}

	s.invalidateViews(entity.Id, entity.ParentId)
	s.publishChanged("created", entity)

	return s.strg.Category().GetByID(entity.Id)
}

// createWithSlug inserts entity under the first free variant of base. The
// slug unique index is the arbiter for concurrent creates: a constraint
// violation moves the counter forward and retries instead of surfacing.
func (s *categoryService) createWithSlug(entity *models.Category, base string) error {
	if base == "" {
		return models.NewValidationError("name", "cannot be reduced to a slug")
	}

	counter := 1
	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		candidate, next, err := s.freeSlug(base, counter)
		if err != nil {
			return err
		}

		entity.Slug = candidate
		err = s.strg.Category().Create(entity)
		if err == nil {
			return nil
		}
		if errors.Is(err, models.ErrDuplicateSlug) {
			s.log.Warn("slug taken by concurrent insert, retrying",
				logger.String("slug", candidate))
			counter = next + 1
			continue
		}
		return err
	}

	return models.ErrDuplicateSlug
}

func (s *categoryService) freeSlug(base string, from int) (string, int, error) {
	for n := from; n < from+maxSlugProbe; n++ {
		candidate := slug.WithSuffix(base, n)
		exists, err := s.strg.Category().SlugExists(candidate)
		if err != nil {
			return "", 0, err
		}
		if !exists {
			return candidate, n, nil
		}
	}
	return "", 0, models.ErrDuplicateSlug
}

func (s *categoryService) UpdateCategory(ctx context.Context, id string, req *models.UpdateCategoryRequest) (*models.Category, error) {

	name := strings.TrimSpace(req.Name)

	if err := s.validateFields(name, req.ColorCode, req.PetType); err != nil {
		return nil, err
	}

	current, err := s.strg.Category().GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.ParentId != nil {
		if err := s.checkForCycle(id, *req.ParentId); err != nil {
			return nil, err
		}
	}

	exists, err := s.strg.Category().SiblingNameExists(req.ParentId, name, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.ErrDuplicateName
	}

	entity := &models.Category{
		Id:          id,
		Name:        name,
		Description: req.Description,
		IconName:    req.IconName,
		ColorCode:   req.ColorCode,
		PetType:     req.PetType,
		SortOrder:   req.SortOrder,
		ParentId:    req.ParentId,
	}
	if entity.ColorCode == "" {
		entity.ColorCode = current.ColorCode
	}
	if entity.PetType == "" {
		entity.PetType = current.PetType
	}

	if err := s.strg.Category().Update(entity); err != nil {
		return nil, err
	}

	s.invalidateViews(id, current.ParentId, req.ParentId)
	if !equalParent(current.ParentId, req.ParentId) {
		// breadcrumbs of every descendant changed with the move
		s.cache.DeletePrefix(config.BreadcrumbCacheKeyPrefix)
	}

	updated, err := s.strg.Category().GetByID(id)
	if err != nil {
		return nil, err
	}
	s.publishChanged("updated", updated)

	return updated, nil
}

// checkForCycle rejects a parent change that would place id inside its own
// subtree. The candidate parent's ancestor chain must not contain id.
func (s *categoryService) checkForCycle(id, parentID string) error {
	if parentID == id {
		return models.ErrCycle
	}

	ancestors, err := s.strg.Category().GetAncestors(parentID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.NewValidationError("parent_id", "parent category does not exist")
		}
		return err
	}

	for _, ancestor := range ancestors {
		if ancestor.Id == id {
			return models.ErrCycle
		}
	}

	return nil
}

func equalParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (s *categoryService) DeactivateCategory(ctx context.Context, id string) (*models.Category, error) {
	return s.setActive(id, false)
}

func (s *categoryService) ReactivateCategory(ctx context.Context, id string) (*models.Category, error) {
	return s.setActive(id, true)
}

func (s *categoryService) setActive(id string, active bool) (*models.Category, error) {

	if err := s.strg.Category().SetActive(id, active); err != nil {
		return nil, err
	}

	category, err := s.strg.Category().GetByID(id)
	if err != nil {
		return nil, err
	}

	s.invalidateViews(id, category.ParentId)

	action := "deactivated"
	if active {
		action = "reactivated"
	}
	s.publishChanged(action, category)

	return category, nil
}

// DeleteCategory is a soft delete: classified records keep their category
// reference, so rows are never physically removed.
func (s *categoryService) DeleteCategory(ctx context.Context, id string) error {

	tr, err := s.strg.WithTransaction()
	if err != nil {
		return err
	}

	committed := false
	defer func() {
		if !committed {
			_ = tr.Rollback()
		}
	}()

	category, err := tr.Category().GetByID(id)
	if err != nil {
		return err
	}

	hasChildren, err := tr.Category().HasActiveChildren(id)
	if err != nil {
		return err
	}
	if hasChildren {
		return models.ErrHasActiveChildren
	}

	if err := tr.Category().SetActive(id, false); err != nil {
		return err
	}

	if err := tr.Commit(); err != nil {
		return err
	}
	committed = true

	s.invalidateViews(id, category.ParentId)
	category.Active = false
	s.publishChanged("deleted", category)

	return nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, id string) (*models.Category, error) {
	return s.strg.Category().GetByID(id)
}

func (s *categoryService) GetCategoryBySlug(ctx context.Context, slugValue string) (*models.Category, error) {
	return s.strg.Category().GetBySlug(slugValue)
}

func (s *categoryService) SearchCategories(ctx context.Context, search string, limit int) ([]*models.Category, error) {
	search = strings.TrimSpace(search)
	if utf8.RuneCountInString(search) < 2 {
		return []*models.Category{}, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.strg.Category().Search(search, limit)
}

// defaultRoots are the base platform categories, created once on first run.
var defaultRoots = []models.CreateCategoryRequest{
	{Name: "Dogs", PetType: "dog", IconName: "fa-dog", ColorCode: "#f59e0b", SortOrder: 1, Description: "Loyal companions of every size"},
	{Name: "Cats", PetType: "cat", IconName: "fa-cat", ColorCode: "#8b5cf6", SortOrder: 2, Description: "Independent and graceful friends"},
	{Name: "Birds", PetType: "bird", IconName: "fa-dove", ColorCode: "#06b6d4", SortOrder: 3, Description: "Colorful messengers of freedom"},
	{Name: "Fish", PetType: "fish", IconName: "fa-fish", ColorCode: "#3b82f6", SortOrder: 4, Description: "Quiet beauty behind glass"},
	{Name: "Rodents", PetType: "rodent", IconName: "fa-rabbit", ColorCode: "#f97316", SortOrder: 5, Description: "Small friends with big hearts"},
	{Name: "Reptiles", PetType: "reptile", IconName: "fa-turtle", ColorCode: "#059669", SortOrder: 6, Description: "Calm survivors of an ancient world"},
	{Name: "Exotic Pets", PetType: "other", IconName: "fa-paw", ColorCode: "#dc2626", SortOrder: 7, Description: "The colorful world of the unusual"},
}

// SeedDefaults creates the missing base roots and reports how many were
// added. Safe to call on every startup.
func (s *categoryService) SeedDefaults(ctx context.Context) (int, error) {
	created := 0

	for i := range defaultRoots {
		req := defaultRoots[i]

		_, err := s.strg.Category().FindRootByName(req.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, models.ErrNotFound) {
			return created, err
		}

		if _, err := s.CreateCategory(ctx, &req); err != nil {
			// a concurrent seeder may have won the race
			if errors.Is(err, models.ErrDuplicateName) {
				continue
			}
			return created, err
		}
		created++
	}

	return created, nil
}
