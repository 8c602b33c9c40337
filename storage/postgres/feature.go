package postgres

import (
	"encoding/json"

	"github.com/petilan/petilan_category_service/models"
	"github.com/petilan/petilan_category_service/pkg/helper"
	"github.com/petilan/petilan_category_service/pkg/logger"
	"github.com/petilan/petilan_category_service/storage/repo"
	"github.com/pkg/errors"
)

const featureNameConstraint = "category_feature_category_id_name_key"

type featureRepo struct {
	db  models.DB
	log logger.Logger
}

func NewFeatureRepo(log logger.Logger, db models.DB) repo.FeaturePgI {
	return &featureRepo{
		db:  db,
		log: log,
	}
}

func (f *featureRepo) Create(entity *models.CategoryFeature) error {

	options, err := json.Marshal(entity.Options)
	if err != nil {
		return errors.Wrap(err, "error while marshaling feature options")
	}

	query := `
		INSERT INTO
		"category_feature"
		(
			id,
			category_id,
			name,
			field_kind,
			options,
			required,
			active,
			sort_order
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`

	_, err = f.db.Exec(
		query,
		entity.Id,
		entity.CategoryId,
		entity.Name,
		entity.FieldKind,
		options,
		entity.Required,
		entity.Active,
		entity.SortOrder,
	)
	if err != nil {
		if helper.IsUniqueViolation(err, featureNameConstraint) {
			return models.ErrDuplicateName
		}
		return errors.Wrap(err, "error while insert category feature")
	}

	return nil
}

func (f *featureRepo) GetByCategory(categoryID string) ([]*models.CategoryFeature, error) {

	query := `
		SELECT
			id,
			category_id,
			name,
			field_kind,
			options,
			required,
			active,
			sort_order
		FROM "category_feature"
		WHERE category_id = $1 AND active
		ORDER BY sort_order, name
	`

	rows, err := f.db.Query(query, categoryID)
	if err != nil {
		return nil, errors.Wrap(err, "error while getting category features")
	}
	defer rows.Close()

	res := make([]*models.CategoryFeature, 0)
	for rows.Next() {
		var (
			feature models.CategoryFeature
			options []byte
		)

		err = rows.Scan(
			&feature.Id,
			&feature.CategoryId,
			&feature.Name,
			&feature.FieldKind,
			&options,
			&feature.Required,
			&feature.Active,
			&feature.SortOrder,
		)
		if err != nil {
			return nil, errors.Wrap(err, "error while getting category features. Scan")
		}

		if len(options) > 0 {
			if err := json.Unmarshal(options, &feature.Options); err != nil {
				return nil, errors.Wrap(err, "error while unmarshaling feature options")
			}
		}

		res = append(res, &feature)
	}

	return res, rows.Err()
}

func (f *featureRepo) SetActive(id string, active bool) error {

	query := `
		UPDATE "category_feature"
		SET active = $2
		WHERE id = $1
	`

	res, err := f.db.Exec(query, id, active)
	if err != nil {
		return errors.Wrap(err, "error while switching feature active flag")
	}

	i, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if i == 0 {
		return models.ErrNotFound
	}

	return nil
}
