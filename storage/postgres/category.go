package postgres

import (
	"database/sql"
	"time"

	"github.com/petilan/petilan_category_service/config"
	"github.com/petilan/petilan_category_service/models"
	"github.com/petilan/petilan_category_service/pkg/helper"
	"github.com/petilan/petilan_category_service/pkg/logger"
	"github.com/petilan/petilan_category_service/storage/repo"
	"github.com/pkg/errors"
)

const (
	slugConstraint     = "category_slug_key"
	siblingConstraint  = "category_parent_id_name_key"
	rootNameConstraint = "category_root_name_key"
	maxAncestorDepth   = 50
)

type categoryRepo struct {
	db  models.DB
	log logger.Logger
}

func NewCategoryRepo(log logger.Logger, db models.DB) repo.CategoryPgI {
	return &categoryRepo{
		db:  db,
		log: log,
	}
}

const categoryColumns = `
	c.id,
	c.name,
	c.slug,
	c.description,
	c.icon_name,
	c.color_code,
	c.pet_type,
	c.usage_count,
	c.active,
	c.sort_order,
	CAST(c.parent_id AS VARCHAR(64)),
	c.created_at,
	c.updated_at
`

func scanCategory(row interface {
	Scan(dest ...interface{}) error
}) (*models.Category, error) {

	var (
		category  models.Category
		parentId  sql.NullString
		createdAt time.Time
		updatedAt time.Time
	)

	err := row.Scan(
		&category.Id,
		&category.Name,
		&category.Slug,
		&category.Description,
		&category.IconName,
		&category.ColorCode,
		&category.PetType,
		&category.UsageCount,
		&category.Active,
		&category.SortOrder,
		&parentId,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	category.ParentId = helper.StringPtr(parentId)
	category.CreatedAt = createdAt.Format(config.DateTimeFormat)
	category.UpdatedAt = updatedAt.Format(config.DateTimeFormat)

	return &category, nil
}

func (c *categoryRepo) Create(entity *models.Category) error {

	query := `
		INSERT INTO
		"category"
		(
			id,
			name,
			slug,
			description,
			icon_name,
			color_code,
			pet_type,
			usage_count,
			active,
			sort_order,
			parent_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`

	_, err := c.db.Exec(
		query,
		entity.Id,
		entity.Name,
		entity.Slug,
		entity.Description,
		entity.IconName,
		entity.ColorCode,
		entity.PetType,
		entity.UsageCount,
		entity.Active,
		entity.SortOrder,
		helper.NullStringPtr(entity.ParentId),
	)
	if err != nil {
		if helper.IsUniqueViolation(err, slugConstraint) {
			return models.ErrDuplicateSlug
		}
		if helper.IsUniqueViolation(err, siblingConstraint) || helper.IsUniqueViolation(err, rootNameConstraint) {
			return models.ErrDuplicateName
		}
		return errors.Wrap(err, "error while insert category")
	}

	return nil
}

func (c *categoryRepo) GetByID(id string) (*models.Category, error) {

	query := `
		SELECT ` + categoryColumns + `
		FROM "category" c
		WHERE c.id = $1
	`

	category, err := scanCategory(c.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, errors.Wrap(err, "error while getting category")
	}

	return category, nil
}

func (c *categoryRepo) GetBySlug(slug string) (*models.Category, error) {

	query := `
		SELECT ` + categoryColumns + `
		FROM "category" c
		WHERE c.slug = $1 AND c.active
	`

	category, err := scanCategory(c.db.QueryRow(query, slug))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, errors.Wrap(err, "error while getting category by slug")
	}

	return category, nil
}

func (c *categoryRepo) Update(entity *models.Category) error {

	query := `
		UPDATE "category"
		SET
			name = $2,
			description = $3,
			icon_name = $4,
			color_code = $5,
			pet_type = $6,
			sort_order = $7,
			parent_id = $8,
			updated_at = now()
		WHERE id = $1
	`

	res, err := c.db.Exec(
		query,
		entity.Id,
		entity.Name,
		entity.Description,
		entity.IconName,
		entity.ColorCode,
		entity.PetType,
		entity.SortOrder,
		helper.NullStringPtr(entity.ParentId),
	)
	if err != nil {
		if helper.IsUniqueViolation(err, siblingConstraint) || helper.IsUniqueViolation(err, rootNameConstraint) {
			return models.ErrDuplicateName
		}
		return errors.Wrap(err, "error while update category")
	}

	i, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "error while update category. RowsAffected")
	}
	if i == 0 {
		return models.ErrNotFound
	}

	return nil
}

func (c *categoryRepo) SetActive(id string, active bool) error {

	query := `
		UPDATE "category"
		SET active = $2, updated_at = now()
		WHERE id = $1
	`

	res, err := c.db.Exec(query, id, active)
	if err != nil {
		return errors.Wrap(err, "error while switching category active flag")
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

func (c *categoryRepo) SetSortOrder(id string, sortOrder int) error {

	query := `
		UPDATE "category"
		SET sort_order = $2, updated_at = now()
		WHERE id = $1
	`

	if _, err := c.db.Exec(query, id, sortOrder); err != nil {
		return errors.Wrap(err, "error while updating category sort order")
	}

	return nil
}

func (c *categoryRepo) queryCategories(query string, args ...interface{}) ([]*models.Category, error) {

	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make([]*models.Category, 0)
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, category)
	}

	return res, rows.Err()
}

func (c *categoryRepo) GetRoots() ([]*models.Category, error) {

	query := `
		SELECT ` + categoryColumns + `
		FROM "category" c
		WHERE c.parent_id IS NULL AND c.active
		ORDER BY c.sort_order, c.name
	`

	res, err := c.queryCategories(query)
	if err != nil {
		return nil, errors.Wrap(err, "error while getting root categories")
	}

	return res, nil
}

func (c *categoryRepo) GetChildren(parentID string) ([]*models.Category, error) {

	query := `
		SELECT ` + categoryColumns + `
		FROM "category" c
		WHERE c.parent_id = $1 AND c.active
		ORDER BY c.sort_order, c.name
	`

	res, err := c.queryCategories(query, parentID)
	if err != nil {
		return nil, errors.Wrap(err, "error while getting category children")
	}

	return res, nil
}

// GetTree loads every active category in one query and assembles the
// nested view in memory, ordered by (sort_order, name) on every level.
func (c *categoryRepo) GetTree() ([]*models.CategoryNode, error) {

	query := `
		SELECT ` + categoryColumns + `
		FROM "category" c
		WHERE c.active
		ORDER BY c.sort_order, c.name
	`

	categories, err := c.queryCategories(query)
	if err != nil {
		return nil, errors.Wrap(err, "error while getting category tree")
	}

	nodes := make(map[string]*models.CategoryNode, len(categories))
	for _, category := range categories {
		nodes[category.Id] = &models.CategoryNode{
			Id:         category.Id,
			Name:       category.Name,
			Slug:       category.Slug,
			IconName:   category.IconName,
			ColorCode:  category.ColorCode,
			PetType:    category.PetType,
			UsageCount: category.UsageCount,
			Children:   make([]*models.CategoryNode, 0),
		}
	}

	tree := make([]*models.CategoryNode, 0)
	for _, category := range categories {
		node := nodes[category.Id]
		if category.ParentId == nil {
			tree = append(tree, node)
			continue
		}
		if parent, ok := nodes[*category.ParentId]; ok {
			parent.Children = append(parent.Children, node)
		}
		// children of inactive parents are unreachable and stay out
	}

	return tree, nil
}

// GetAncestors walks the parent chain of id upward and returns it ordered
// root first. The depth guard keeps a corrupted chain from looping forever.
func (c *categoryRepo) GetAncestors(id string) ([]*models.Category, error) {

	query := `
		WITH RECURSIVE chain AS (
			SELECT ` + categoryColumns + `, 0 AS depth
			FROM "category" c
			WHERE c.id = $1
			UNION ALL
			SELECT ` + categoryColumns + `, chain.depth + 1
			FROM "category" c
			JOIN chain ON c.id = CAST(chain.parent_id AS uuid)
			WHERE chain.parent_id IS NOT NULL AND chain.depth < $2
		)
		SELECT
			id, name, slug, description, icon_name, color_code, pet_type,
			usage_count, active, sort_order, parent_id, created_at, updated_at
		FROM chain
		ORDER BY depth DESC
	`

	rows, err := c.db.Query(query, id, maxAncestorDepth)
	if err != nil {
		return nil, errors.Wrap(err, "error while getting category ancestors")
	}
	defer rows.Close()

	res := make([]*models.Category, 0)
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, errors.Wrap(err, "error while getting category ancestors. Scan")
		}
		res = append(res, category)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(res) == 0 {
		return nil, models.ErrNotFound
	}

	return res, nil
}

func (c *categoryRepo) GetPopular(limit int) ([]*models.Category, error) {

	query := `
		SELECT ` + categoryColumns + `
		FROM "category" c
		WHERE c.active AND c.usage_count > 0
		ORDER BY c.usage_count DESC, c.name ASC
		LIMIT $1
	`

	res, err := c.queryCategories(query, limit)
	if err != nil {
		return nil, errors.Wrap(err, "error while getting popular categories")
	}

	return res, nil
}

func (c *categoryRepo) Search(search string, limit int) ([]*models.Category, error) {

	query := `
		SELECT ` + categoryColumns + `
		FROM "category" c
		WHERE c.active AND (c.name ILIKE '%' || $1 || '%' OR c.description ILIKE '%' || $1 || '%')
		ORDER BY c.usage_count DESC, c.name
		LIMIT $2
	`

	res, err := c.queryCategories(query, search, limit)
	if err != nil {
		return nil, errors.Wrap(err, "error while searching categories")
	}

	return res, nil
}

func (c *categoryRepo) HasActiveChildren(id string) (bool, error) {

	var exists bool

	query := `
		SELECT EXISTS (
			SELECT 1 FROM "category" WHERE parent_id = $1 AND active
		)
	`

	if err := c.db.QueryRow(query, id).Scan(&exists); err != nil {
		return false, errors.Wrap(err, "error while checking active children")
	}

	return exists, nil
}

func (c *categoryRepo) CountChildren(parentID string) (int, error) {

	var count int

	query := `SELECT count(*) FROM "category" WHERE parent_id = $1`

	if err := c.db.QueryRow(query, parentID).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "error while counting children")
	}

	return count, nil
}

func (c *categoryRepo) SiblingNameExists(parentID *string, name, excludeID string) (bool, error) {

	var (
		exists bool
		err    error
	)

	if parentID == nil {
		query := `
			SELECT EXISTS (
				SELECT 1 FROM "category"
				WHERE parent_id IS NULL AND lower(name) = lower($1) AND id <> $2
			)
		`
		err = c.db.QueryRow(query, name, excludeID).Scan(&exists)
	} else {
		query := `
			SELECT EXISTS (
				SELECT 1 FROM "category"
				WHERE parent_id = $1 AND lower(name) = lower($2) AND id <> $3
			)
		`
		err = c.db.QueryRow(query, *parentID, name, excludeID).Scan(&exists)
	}

	if err != nil {
		return false, errors.Wrap(err, "error while checking sibling name")
	}

	return exists, nil
}

func (c *categoryRepo) SlugExists(slug string) (bool, error) {

	var exists bool

	query := `SELECT EXISTS (SELECT 1 FROM "category" WHERE slug = $1)`

	if err := c.db.QueryRow(query, slug).Scan(&exists); err != nil {
		return false, errors.Wrap(err, "error while checking slug")
	}

	return exists, nil
}

func (c *categoryRepo) FindRootByName(name string) (*models.Category, error) {

	query := `
		SELECT ` + categoryColumns + `
		FROM "category" c
		WHERE c.parent_id IS NULL AND lower(c.name) = lower($1)
		LIMIT 1
	`

	category, err := scanCategory(c.db.QueryRow(query, name))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, errors.Wrap(err, "error while getting root category by name")
	}

	return category, nil
}

func (c *categoryRepo) FindChildByName(parentID, name string) (*models.Category, error) {

	query := `
		SELECT ` + categoryColumns + `
		FROM "category" c
		WHERE c.parent_id = $1 AND lower(c.name) = lower($2)
		LIMIT 1
	`

	category, err := scanCategory(c.db.QueryRow(query, parentID, name))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, errors.Wrap(err, "error while getting child category by name")
	}

	return category, nil
}

func (c *categoryRepo) FindChildBySlugFragment(parentID, fragment string) (*models.Category, error) {

	query := `
		SELECT ` + categoryColumns + `
		FROM "category" c
		WHERE c.parent_id = $1 AND c.slug LIKE '%' || $2 || '%'
		ORDER BY c.slug
		LIMIT 1
	`

	category, err := scanCategory(c.db.QueryRow(query, parentID, fragment))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, errors.Wrap(err, "error while getting child category by slug")
	}

	return category, nil
}

// RecountUsage rewrites usage_count from the live listing count in a single
// statement, so concurrent listing changes can never be folded into a stale
// read-modify-write.
func (c *categoryRepo) RecountUsage(id string) (bool, int, error) {

	var count int

	query := `
		UPDATE "category" AS c
		SET usage_count = sub.cnt, updated_at = now()
		FROM (
			SELECT count(*) AS cnt
			FROM "listing"
			WHERE category_id = $1 AND status = $2
		) AS sub
		WHERE c.id = $1 AND c.usage_count <> sub.cnt
		RETURNING sub.cnt
	`

	err := c.db.QueryRow(query, id, models.ListingStatusActive).Scan(&count)
	if err == nil {
		return true, count, nil
	}
	if err != sql.ErrNoRows {
		return false, 0, errors.Wrap(err, "error while recounting category usage")
	}

	// nothing changed; read the current value for the caller
	query = `SELECT usage_count FROM "category" WHERE id = $1`
	if err := c.db.QueryRow(query, id).Scan(&count); err != nil {
		if err == sql.ErrNoRows {
			return false, 0, models.ErrNotFound
		}
		return false, 0, errors.Wrap(err, "error while reading category usage")
	}

	return false, count, nil
}

func (c *categoryRepo) ListIDs() ([]string, error) {

	query := `SELECT id FROM "category" ORDER BY created_at`

	rows, err := c.db.Query(query)
	if err != nil {
		return nil, errors.Wrap(err, "error while listing category ids")
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
