package repo

import (
	"github.com/petilan/petilan_category_service/models"
)

type CategoryPgI interface {
	Create(entity *models.Category) error
	GetByID(id string) (*models.Category, error)
	GetBySlug(slug string) (*models.Category, error)
	Update(entity *models.Category) error
	SetActive(id string, active bool) error
	SetSortOrder(id string, sortOrder int) error

	GetRoots() ([]*models.Category, error)
	GetChildren(parentID string) ([]*models.Category, error)
	GetTree() ([]*models.CategoryNode, error)
	GetAncestors(id string) ([]*models.Category, error)
	GetPopular(limit int) ([]*models.Category, error)
	Search(query string, limit int) ([]*models.Category, error)

	HasActiveChildren(id string) (bool, error)
	CountChildren(parentID string) (int, error)
	SiblingNameExists(parentID *string, name, excludeID string) (bool, error)
	SlugExists(slug string) (bool, error)

	FindRootByName(name string) (*models.Category, error)
	FindChildByName(parentID, name string) (*models.Category, error)
	FindChildBySlugFragment(parentID, fragment string) (*models.Category, error)

	RecountUsage(id string) (changed bool, count int, err error)
	ListIDs() ([]string, error)
}
