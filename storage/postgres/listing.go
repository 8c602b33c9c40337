package postgres

import (
	"database/sql"

	"github.com/petilan/petilan_category_service/models"
	"github.com/petilan/petilan_category_service/pkg/helper"
	"github.com/petilan/petilan_category_service/pkg/logger"
	"github.com/petilan/petilan_category_service/storage/repo"
	"github.com/pkg/errors"
)

// listingRepo maintains the local mirror of classified records, the source
// rows for usage counting.
type listingRepo struct {
	db  models.DB
	log logger.Logger
}

func NewListingRepo(log logger.Logger, db models.DB) repo.ListingPgI {
	return &listingRepo{
		db:  db,
		log: log,
	}
}

func (l *listingRepo) Upsert(entity *models.Listing) error {

	query := `
		INSERT INTO
		"listing"
		(
			id,
			category_id,
			status
		)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			category_id = excluded.category_id,
			status = excluded.status;
	`

	_, err := l.db.Exec(
		query,
		entity.Id,
		helper.NullStringPtr(entity.CategoryId),
		entity.Status,
	)
	if err != nil {
		return errors.Wrap(err, "error while upsert listing")
	}

	return nil
}

// Delete removes the mirrored record and reports the category it pointed
// at, so the caller can recount it. A missing row yields a nil category.
func (l *listingRepo) Delete(id string) (*string, error) {

	query := `DELETE FROM "listing" WHERE id = $1 RETURNING category_id`

	var categoryID sql.NullString
	err := l.db.QueryRow(query, id).Scan(&categoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "error while delete listing")
	}

	if !categoryID.Valid {
		return nil, nil
	}

	return &categoryID.String, nil
}
