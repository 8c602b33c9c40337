package repo

import (
	"github.com/petilan/petilan_category_service/models"
)

type BreedPgI interface {
	Upsert(entity *models.Breed) error
	Delete(id string) error
	GetPopularActive() ([]*models.Breed, error)
}
