package services

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/petilan/petilan_category_service/config"
	"github.com/petilan/petilan_category_service/models"
	"github.com/petilan/petilan_category_service/pkg/cache"
	"github.com/petilan/petilan_category_service/pkg/logger"
	"github.com/petilan/petilan_category_service/pkg/slug"
	"github.com/petilan/petilan_category_service/storage"
	"github.com/pkg/errors"
)

// BreedSyncI derives child categories under the Dogs root from the breed
// catalog. Strictly one-directional and promotion-only: it creates and
// reactivates, and deactivates only on an explicit removal event. It never
// returns an error to the breed write path.
type BreedSyncI interface {
	Sync(ctx context.Context, breed *models.Breed)
	OnBreedRemoved(ctx context.Context, breed *models.BreedDeletedModel)
	Reconcile(ctx context.Context) (*models.ReconcileResult, error)
}

type syncOutcome int

const (
	syncNoop syncOutcome = iota
	syncCreated
	syncReactivated
)

type breedSyncEngine struct {
	log logger.Logger
	svc *categoryService
}

func NewBreedSync(log logger.Logger, strg storage.StoragePg, viewCache *cache.Cache, pub Publisher, cfg config.Config) BreedSyncI {
	return &breedSyncEngine{
		log: log,
		svc: &categoryService{
			log:   log,
			strg:  strg,
			cache: viewCache,
			pub:   pub,
			cfg:   cfg,
		},
	}
}

// Sync mirrors one breed into the category tree. Failures are counted and
// logged, never propagated: the derived category is a convenience view and
// must not break breed writes.
func (e *breedSyncEngine) Sync(ctx context.Context, breed *models.Breed) {
	if _, err := e.sync(ctx, breed); err != nil {
		breedSyncFailures.Inc()
		e.log.Warn("breed sync failed",
			logger.String("breed", breed.Name),
			logger.Error(err),
		)
	}
}

func (e *breedSyncEngine) sync(ctx context.Context, breed *models.Breed) (syncOutcome, error) {
	if breed == nil || !breed.Active || !breed.Popular {
		return syncNoop, nil
	}

	root, err := e.svc.strg.Category().FindRootByName(config.DogsRootName)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			breedSyncMissingRoot.Inc()
			e.log.Warn("breed sync skipped, Dogs root category is missing",
				logger.String("breed", breed.Name))
			return syncNoop, nil
		}
		return syncNoop, err
	}

	child, err := e.findDerived(root.Id, breed.Name)
	if err != nil {
		return syncNoop, err
	}

	if child != nil {
		if child.Active {
			// existing match, possibly manually created: leave untouched
			return syncNoop, nil
		}
		if _, err := e.svc.setActive(child.Id, true); err != nil {
			return syncNoop, err
		}
		breedSyncDerived.Inc()
		return syncReactivated, nil
	}

	if err := e.createDerived(root, breed); err != nil {
		if errors.Is(err, models.ErrDuplicateName) {
			// a concurrent sync of the same breed won the insert
			return syncNoop, nil
		}
		return syncNoop, err
	}

	breedSyncDerived.Inc()
	return syncCreated, nil
}

// findDerived matches a breed to an existing child by case-insensitive
// name, falling back to a slug containing the normalized name.
func (e *breedSyncEngine) findDerived(rootID, name string) (*models.Category, error) {
	child, err := e.svc.strg.Category().FindChildByName(rootID, name)
	if err == nil {
		return child, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	fragment := slug.Make(name)
	if fragment == "" {
		return nil, nil
	}

	child, err = e.svc.strg.Category().FindChildBySlugFragment(rootID, fragment)
	if err == nil {
		return child, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	return nil, nil
}

func (e *breedSyncEngine) createDerived(root *models.Category, breed *models.Breed) error {

	childCount, err := e.svc.strg.Category().CountChildren(root.Id)
	if err != nil {
		return err
	}

	description := breed.Description
	if description == "" {
		description = breed.Name + " breed dogs"
	}

	entity := &models.Category{
		Id:          uuid.New().String(),
		Name:        breed.Name,
		Description: description,
		IconName:    root.IconName,
		ColorCode:   root.ColorCode,
		PetType:     root.PetType,
		Active:      true,
		SortOrder:   childCount + 1,
		ParentId:    &root.Id,
	}

	if err := e.svc.createWithSlug(entity, slug.Make("dogs-"+breed.Name)); err != nil {
		return err
	}

	e.svc.invalidateViews(entity.Id, &root.Id)
	e.svc.publishChanged("created", entity)

	e.log.Info("derived category created from breed",
		logger.String("breed", breed.Name),
		logger.String("slug", entity.Slug),
	)

	return nil
}

// OnBreedRemoved deactivates the derived child when the breed is removed
// or loses its popular flag. Like Sync, it swallows every error.
func (e *breedSyncEngine) OnBreedRemoved(ctx context.Context, breed *models.BreedDeletedModel) {
	if err := e.deactivateDerived(breed); err != nil {
		breedSyncFailures.Inc()
		e.log.Warn("breed removal sync failed",
			logger.String("breed", breed.Name),
			logger.Error(err),
		)
	}
}

func (e *breedSyncEngine) deactivateDerived(breed *models.BreedDeletedModel) error {

	root, err := e.svc.strg.Category().FindRootByName(config.DogsRootName)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			breedSyncMissingRoot.Inc()
			return nil
		}
		return err
	}

	child, err := e.svc.strg.Category().FindChildByName(root.Id, breed.Name)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil
		}
		return err
	}

	if !child.Active {
		return nil
	}

	_, err = e.svc.setActive(child.Id, false)
	return err
}

// Reconcile syncs every popular active breed from the mirror and then
// renumbers the Dogs children alphabetically. Usable as a periodic or
// manually triggered bulk correction; safe to rerun.
func (e *breedSyncEngine) Reconcile(ctx context.Context) (*models.ReconcileResult, error) {

	breeds, err := e.svc.strg.Breed().GetPopularActive()
	if err != nil {
		return nil, err
	}

	res := &models.ReconcileResult{Total: len(breeds)}
	for _, breed := range breeds {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}

		outcome, err := e.sync(ctx, breed)
		if err != nil {
			breedSyncFailures.Inc()
			e.log.Warn("breed reconcile failed",
				logger.String("breed", breed.Name),
				logger.Error(err),
			)
			res.Errors++
			continue
		}

		switch outcome {
		case syncCreated:
			res.Added++
		case syncReactivated:
			res.Reactivated++
		}
	}

	if err := e.renumberDogsChildren(); err != nil {
		e.log.Warn("could not renumber Dogs children", logger.Error(err))
	}

	e.log.Info("breed reconciliation finished",
		logger.Int("total", res.Total),
		logger.Int("added", res.Added),
		logger.Int("reactivated", res.Reactivated),
		logger.Int("errors", res.Errors),
	)

	return res, nil
}

func (e *breedSyncEngine) renumberDogsChildren() error {

	root, err := e.svc.strg.Category().FindRootByName(config.DogsRootName)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil
		}
		return err
	}

	children, err := e.svc.strg.Category().GetChildren(root.Id)
	if err != nil {
		return err
	}

	sort.Slice(children, func(i, j int) bool {
		return children[i].Name < children[j].Name
	})

	changed := false
	for i, child := range children {
		if child.SortOrder == i+1 {
			continue
		}
		if err := e.svc.strg.Category().SetSortOrder(child.Id, i+1); err != nil {
			return err
		}
		changed = true
	}

	if changed {
		e.svc.invalidateViews(root.Id, &root.Id)
	}

	return nil
}
