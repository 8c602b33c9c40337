package services

import (
	"context"

	"github.com/petilan/petilan_category_service/pkg/logger"
)

// RecomputeUsage refreshes one category's usage_count from the live
// listing count and returns the fresh value. Idempotent: with no listing
// change in between, a second call writes nothing.
func (s *categoryService) RecomputeUsage(ctx context.Context, categoryID string) (int, error) {

	changed, count, err := s.strg.Category().RecountUsage(categoryID)
	if err != nil {
		return 0, err
	}

	if changed {
		category, err := s.strg.Category().GetByID(categoryID)
		if err == nil {
			s.invalidateViews(categoryID, category.ParentId)
		} else {
			s.invalidateViews(categoryID)
		}
	}

	return count, nil
}

// OnListingChanged recomputes both sides of a classified record's category
// move. A nil id means the record had, or has, no category.
func (s *categoryService) OnListingChanged(ctx context.Context, oldCategoryID, newCategoryID *string) error {

	recompute := func(id *string) error {
		if id == nil || *id == "" {
			return nil
		}
		_, err := s.RecomputeUsage(ctx, *id)
		return err
	}

	if err := recompute(oldCategoryID); err != nil {
		return err
	}
	if equalParent(oldCategoryID, newCategoryID) {
		return nil
	}
	return recompute(newCategoryID)
}

// SweepUsage recounts every category and reports how many were corrected.
// Safe to rerun at any time; a missed synchronous trigger heals on the
// next sweep.
func (s *categoryService) SweepUsage(ctx context.Context) (int, error) {

	ids, err := s.strg.Category().ListIDs()
	if err != nil {
		return 0, err
	}

	corrected := 0
	for _, id := range ids {
		select {
		case <-ctx.Done():
			return corrected, ctx.Err()
		default:
		}

		changed, _, err := s.strg.Category().RecountUsage(id)
		if err != nil {
			s.log.Error("usage sweep failed for category",
				logger.String("category_id", id), logger.Error(err))
			continue
		}
		if changed {
			corrected++
		}
	}

	if corrected > 0 {
		s.invalidateAllViews()
		usageSweepCorrections.Add(float64(corrected))
	}

	s.log.Info("usage sweep finished",
		logger.Int("categories", len(ids)),
		logger.Int("corrected", corrected),
	)

	return corrected, nil
}
