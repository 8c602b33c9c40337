package storage

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/petilan/petilan_category_service/models"
	"github.com/petilan/petilan_category_service/pkg/logger"
	"github.com/petilan/petilan_category_service/storage/postgres"
	"github.com/petilan/petilan_category_service/storage/repo"
)

type repos struct {
	categoryRepo repo.CategoryPgI
	featureRepo  repo.FeaturePgI
	breedRepo    repo.BreedPgI
	listingRepo  repo.ListingPgI
}

type repoIs interface {
	Category() repo.CategoryPgI
	Feature() repo.FeaturePgI
	Breed() repo.BreedPgI
	Listing() repo.ListingPgI
}

type storage struct {
	db  *sqlx.DB
	log logger.Logger
	repos
}

type storageTr struct {
	tr *sqlx.Tx
	repos
}

type StorageTrI interface {
	Commit() error
	Rollback() error
	repoIs
}

type StoragePg interface {
	WithTransaction() (StorageTrI, error)
	repoIs
}

func NewStoragePg(log logger.Logger, db *sqlx.DB) StoragePg {
	return &storage{
		db:    db,
		log:   log,
		repos: getRepos(log, db),
	}
}

func (s *storage) WithTransaction() (StorageTrI, error) {
	tr, err := s.db.BeginTxx(context.Background(), &sql.TxOptions{})
	if err != nil {
		return nil, err
	}

	return &storageTr{
		tr:    tr,
		repos: getRepos(s.log, tr),
	}, nil
}

func getRepos(log logger.Logger, db models.DB) repos {
	return repos{
		categoryRepo: postgres.NewCategoryRepo(log, db),
		featureRepo:  postgres.NewFeatureRepo(log, db),
		breedRepo:    postgres.NewBreedRepo(log, db),
		listingRepo:  postgres.NewListingRepo(log, db),
	}
}

func (s *storageTr) Commit() error {
	return s.tr.Commit()
}

func (s *storageTr) Rollback() error {
	return s.tr.Rollback()
}

func (r *repos) Category() repo.CategoryPgI {
	return r.categoryRepo
}

func (r *repos) Feature() repo.FeaturePgI {
	return r.featureRepo
}

func (r *repos) Breed() repo.BreedPgI {
	return r.breedRepo
}

func (r *repos) Listing() repo.ListingPgI {
	return r.listingRepo
}
