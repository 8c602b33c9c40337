package repo

import (
	"github.com/petilan/petilan_category_service/models"
)

type ListingPgI interface {
	Upsert(entity *models.Listing) error
	Delete(id string) (*string, error)
}
