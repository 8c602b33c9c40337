package services

import (
	"sort"
	"strings"
	"sync"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/petilan/petilan_category_service/config"
	"github.com/petilan/petilan_category_service/models"
	"github.com/petilan/petilan_category_service/pkg/cache"
	"github.com/petilan/petilan_category_service/pkg/logger"
	"github.com/petilan/petilan_category_service/storage"
	"github.com/petilan/petilan_category_service/storage/repo"
)

// memStore is an in-memory storage.StoragePg with the same visibility
// rules as the SQL layer: reads by id see inactive rows, aggregate views
// do not. createErrOnce injects a single insert failure to exercise the
// slug retry path.
type memStore struct {
	mu         sync.Mutex
	categories map[string]*models.Category
	features   map[string]*models.CategoryFeature
	breeds     map[string]*models.Breed
	listings   map[string]*models.Listing

	createErrOnce error
	usageWrites   int
}

func newMemStore() *memStore {
	return &memStore{
		categories: map[string]*models.Category{},
		features:   map[string]*models.CategoryFeature{},
		breeds:     map[string]*models.Breed{},
		listings:   map[string]*models.Listing{},
	}
}

func (m *memStore) Category() repo.CategoryPgI { return &memCategoryRepo{m} }
func (m *memStore) Feature() repo.FeaturePgI   { return &memFeatureRepo{m} }
func (m *memStore) Breed() repo.BreedPgI       { return &memBreedRepo{m} }
func (m *memStore) Listing() repo.ListingPgI   { return &memListingRepo{m} }

func (m *memStore) WithTransaction() (storage.StorageTrI, error) {
	return &memTr{m}, nil
}

type memTr struct {
	*memStore
}

func (t *memTr) Commit() error   { return nil }
func (t *memTr) Rollback() error { return nil }

type memCategoryRepo struct {
	s *memStore
}

func copyCategory(c *models.Category) *models.Category {
	cp := *c
	if c.ParentId != nil {
		parent := *c.ParentId
		cp.ParentId = &parent
	}
	return &cp
}

func (r *memCategoryRepo) Create(entity *models.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.createErrOnce; err != nil {
		r.s.createErrOnce = nil
		return err
	}

	for _, existing := range r.s.categories {
		if existing.Slug == entity.Slug {
			return models.ErrDuplicateSlug
		}
		if sameParent(existing.ParentId, entity.ParentId) &&
			strings.EqualFold(existing.Name, entity.Name) {
			return models.ErrDuplicateName
		}
	}

	stored := copyCategory(entity)
	now := time.Now().Format(config.DateTimeFormat)
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.s.categories[stored.Id] = stored
	return nil
}

func (r *memCategoryRepo) GetByID(id string) (*models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	category, ok := r.s.categories[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return copyCategory(category), nil
}

func (r *memCategoryRepo) GetBySlug(slug string) (*models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, category := range r.s.categories {
		if category.Slug == slug && category.Active {
			return copyCategory(category), nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *memCategoryRepo) Update(entity *models.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.categories[entity.Id]
	if !ok {
		return models.ErrNotFound
	}

	current.Name = entity.Name
	current.Description = entity.Description
	current.IconName = entity.IconName
	current.ColorCode = entity.ColorCode
	current.PetType = entity.PetType
	current.SortOrder = entity.SortOrder
	current.ParentId = entity.ParentId
	current.UpdatedAt = time.Now().Format(config.DateTimeFormat)
	return nil
}

func (r *memCategoryRepo) SetActive(id string, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	category, ok := r.s.categories[id]
	if !ok {
		return models.ErrNotFound
	}
	category.Active = active
	return nil
}

func (r *memCategoryRepo) SetSortOrder(id string, sortOrder int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	category, ok := r.s.categories[id]
	if !ok {
		return models.ErrNotFound
	}
	category.SortOrder = sortOrder
	return nil
}

func sortCategories(list []*models.Category) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].SortOrder != list[j].SortOrder {
			return list[i].SortOrder < list[j].SortOrder
		}
		return list[i].Name < list[j].Name
	})
}

func (r *memCategoryRepo) GetRoots() ([]*models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	roots := []*models.Category{}
	for _, category := range r.s.categories {
		if category.ParentId == nil && category.Active {
			roots = append(roots, copyCategory(category))
		}
	}
	sortCategories(roots)
	return roots, nil
}

func (r *memCategoryRepo) GetChildren(parentID string) ([]*models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	children := []*models.Category{}
	for _, category := range r.s.categories {
		if category.ParentId != nil && *category.ParentId == parentID && category.Active {
			children = append(children, copyCategory(category))
		}
	}
	sortCategories(children)
	return children, nil
}

func (r *memCategoryRepo) GetTree() ([]*models.CategoryNode, error) {
	roots, err := r.GetRoots()
	if err != nil {
		return nil, err
	}

	tree := []*models.CategoryNode{}
	for _, root := range roots {
		tree = append(tree, r.buildNode(root))
	}
	return tree, nil
}

func (r *memCategoryRepo) buildNode(category *models.Category) *models.CategoryNode {
	node := &models.CategoryNode{
		Id:         category.Id,
		Name:       category.Name,
		Slug:       category.Slug,
		IconName:   category.IconName,
		ColorCode:  category.ColorCode,
		PetType:    category.PetType,
		UsageCount: category.UsageCount,
		Children:   []*models.CategoryNode{},
	}

	children, _ := r.GetChildren(category.Id)
	for _, child := range children {
		node.Children = append(node.Children, r.buildNode(child))
	}
	return node
}

func (r *memCategoryRepo) GetAncestors(id string) ([]*models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	chain := []*models.Category{}
	currentID := id
	for i := 0; i < 50; i++ {
		category, ok := r.s.categories[currentID]
		if !ok {
			break
		}
		chain = append([]*models.Category{copyCategory(category)}, chain...)
		if category.ParentId == nil {
			break
		}
		currentID = *category.ParentId
	}

	if len(chain) == 0 {
		return nil, models.ErrNotFound
	}
	return chain, nil
}

func (r *memCategoryRepo) GetPopular(limit int) ([]*models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	popular := []*models.Category{}
	for _, category := range r.s.categories {
		if category.Active && category.UsageCount > 0 {
			popular = append(popular, copyCategory(category))
		}
	}
	sort.Slice(popular, func(i, j int) bool {
		if popular[i].UsageCount != popular[j].UsageCount {
			return popular[i].UsageCount > popular[j].UsageCount
		}
		return popular[i].Name < popular[j].Name
	})
	if len(popular) > limit {
		popular = popular[:limit]
	}
	return popular, nil
}

func (r *memCategoryRepo) Search(query string, limit int) ([]*models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	query = strings.ToLower(query)
	res := []*models.Category{}
	for _, category := range r.s.categories {
		if !category.Active {
			continue
		}
		if strings.Contains(strings.ToLower(category.Name), query) ||
			strings.Contains(strings.ToLower(category.Description), query) {
			res = append(res, copyCategory(category))
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].UsageCount != res[j].UsageCount {
			return res[i].UsageCount > res[j].UsageCount
		}
		return res[i].Name < res[j].Name
	})
	if len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

func (r *memCategoryRepo) HasActiveChildren(id string) (bool, error) {
	children, err := r.GetChildren(id)
	if err != nil {
		return false, err
	}
	return len(children) > 0, nil
}

func (r *memCategoryRepo) CountChildren(parentID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	count := 0
	for _, category := range r.s.categories {
		if category.ParentId != nil && *category.ParentId == parentID {
			count++
		}
	}
	return count, nil
}

func (r *memCategoryRepo) SiblingNameExists(parentID *string, name, excludeID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, category := range r.s.categories {
		if category.Id == excludeID {
			continue
		}
		if sameParent(category.ParentId, parentID) && strings.EqualFold(category.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memCategoryRepo) SlugExists(slug string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, category := range r.s.categories {
		if category.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *memCategoryRepo) FindRootByName(name string) (*models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, category := range r.s.categories {
		if category.ParentId == nil && strings.EqualFold(category.Name, name) {
			return copyCategory(category), nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *memCategoryRepo) FindChildByName(parentID, name string) (*models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, category := range r.s.categories {
		if category.ParentId != nil && *category.ParentId == parentID &&
			strings.EqualFold(category.Name, name) {
			return copyCategory(category), nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *memCategoryRepo) FindChildBySlugFragment(parentID, fragment string) (*models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, category := range r.s.categories {
		if category.ParentId != nil && *category.ParentId == parentID &&
			strings.Contains(category.Slug, fragment) {
			return copyCategory(category), nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *memCategoryRepo) RecountUsage(id string) (bool, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	category, ok := r.s.categories[id]
	if !ok {
		return false, 0, models.ErrNotFound
	}

	count := 0
	for _, listing := range r.s.listings {
		if listing.CategoryId != nil && *listing.CategoryId == id &&
			listing.Status == models.ListingStatusActive {
			count++
		}
	}

	if category.UsageCount == count {
		return false, count, nil
	}

	category.UsageCount = count
	r.s.usageWrites++
	return true, count, nil
}

func (r *memCategoryRepo) ListIDs() ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ids := []string{}
	for id := range r.s.categories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

type memFeatureRepo struct {
	s *memStore
}

func (r *memFeatureRepo) Create(entity *models.CategoryFeature) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.features {
		if existing.CategoryId == entity.CategoryId &&
			strings.EqualFold(existing.Name, entity.Name) {
			return models.ErrDuplicateName
		}
	}

	stored := *entity
	r.s.features[stored.Id] = &stored
	return nil
}

func (r *memFeatureRepo) GetByCategory(categoryID string) ([]*models.CategoryFeature, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	res := []*models.CategoryFeature{}
	for _, feature := range r.s.features {
		if feature.CategoryId == categoryID && feature.Active {
			cp := *feature
			res = append(res, &cp)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].SortOrder != res[j].SortOrder {
			return res[i].SortOrder < res[j].SortOrder
		}
		return res[i].Name < res[j].Name
	})
	return res, nil
}

func (r *memFeatureRepo) SetActive(id string, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	feature, ok := r.s.features[id]
	if !ok {
		return models.ErrNotFound
	}
	feature.Active = active
	return nil
}

type memBreedRepo struct {
	s *memStore
}

func (r *memBreedRepo) Upsert(entity *models.Breed) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := *entity
	r.s.breeds[stored.Id] = &stored
	return nil
}

func (r *memBreedRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.breeds, id)
	return nil
}

func (r *memBreedRepo) GetPopularActive() ([]*models.Breed, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	res := []*models.Breed{}
	for _, breed := range r.s.breeds {
		if breed.Popular && breed.Active {
			cp := *breed
			res = append(res, &cp)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res, nil
}

type memListingRepo struct {
	s *memStore
}

func (r *memListingRepo) Upsert(entity *models.Listing) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := *entity
	if entity.CategoryId != nil {
		categoryID := *entity.CategoryId
		stored.CategoryId = &categoryID
	}
	r.s.listings[stored.Id] = &stored
	return nil
}

func (r *memListingRepo) Delete(id string) (*string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	listing, ok := r.s.listings[id]
	if !ok {
		return nil, nil
	}
	delete(r.s.listings, id)
	return listing.CategoryId, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	topics []string
	events []cloudevents.Event
}

func (f *fakePublisher) Push(topic string, e cloudevents.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.topics = append(f.topics, topic)
	f.events = append(f.events, e)
	return nil
}

func (f *fakePublisher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.topics)
}

func testConfig() config.Config {
	return config.Config{
		RootListTTL: time.Hour,
		TreeTTL:     time.Minute * 30,
		PopularTTL:  time.Minute * 30,
		ChildrenTTL: time.Minute * 30,
	}
}

func newTestService() (*categoryService, *memStore, *fakePublisher) {
	store := newMemStore()
	pub := &fakePublisher{}

	svc := &categoryService{
		log:   logger.NewLogger("test", logger.LevelError),
		strg:  store,
		cache: cache.New(time.Now),
		pub:   pub,
		cfg:   testConfig(),
	}
	return svc, store, pub
}

func newTestSync(svc *categoryService) *breedSyncEngine {
	return &breedSyncEngine{log: svc.log, svc: svc}
}
