package postgres

import (
	"github.com/petilan/petilan_category_service/models"
	"github.com/petilan/petilan_category_service/pkg/logger"
	"github.com/petilan/petilan_category_service/storage/repo"
	"github.com/pkg/errors"
)

// breedRepo maintains the local mirror of the external breed catalog; rows
// only ever arrive through breed events.
type breedRepo struct {
	db  models.DB
	log logger.Logger
}

func NewBreedRepo(log logger.Logger, db models.DB) repo.BreedPgI {
	return &breedRepo{
		db:  db,
		log: log,
	}
}

func (b *breedRepo) Upsert(entity *models.Breed) error {

	query := `
		INSERT INTO
		"breed"
		(
			id,
			name,
			description,
			popular,
			native,
			active
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			popular = excluded.popular,
			native = excluded.native,
			active = excluded.active;
	`

	_, err := b.db.Exec(
		query,
		entity.Id,
		entity.Name,
		entity.Description,
		entity.Popular,
		entity.Native,
		entity.Active,
	)
	if err != nil {
		return errors.Wrap(err, "error while upsert breed")
	}

	return nil
}

func (b *breedRepo) Delete(id string) error {

	query := `DELETE FROM "breed" WHERE id = $1`

	if _, err := b.db.Exec(query, id); err != nil {
		return errors.Wrap(err, "error while delete breed")
	}

	return nil
}

func (b *breedRepo) GetPopularActive() ([]*models.Breed, error) {

	query := `
		SELECT
			id,
			name,
			description,
			popular,
			native,
			active
		FROM "breed"
		WHERE popular AND active
		ORDER BY name
	`

	rows, err := b.db.Query(query)
	if err != nil {
		return nil, errors.Wrap(err, "error while getting popular breeds")
	}
	defer rows.Close()

	res := make([]*models.Breed, 0)
	for rows.Next() {
		var breed models.Breed

		err = rows.Scan(
			&breed.Id,
			&breed.Name,
			&breed.Description,
			&breed.Popular,
			&breed.Native,
			&breed.Active,
		)
		if err != nil {
			return nil, errors.Wrap(err, "error while getting popular breeds. Scan")
		}

		res = append(res, &breed)
	}

	return res, rows.Err()
}
