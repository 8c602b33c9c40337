package repo

import (
	"github.com/petilan/petilan_category_service/models"
)

type FeaturePgI interface {
	Create(entity *models.CategoryFeature) error
	GetByCategory(categoryID string) ([]*models.CategoryFeature, error)
	SetActive(id string, active bool) error
}
