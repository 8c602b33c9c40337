package handlers

import (
	"context"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/petilan/petilan_category_service/models"
	"github.com/petilan/petilan_category_service/pkg/logger"
)

// UpsertListing mirrors a classified record and recounts the categories on
// both sides of a possible move.
func (e *EventHandler) UpsertListing(ctx context.Context, event cloudevents.Event) {

	var req models.ListingChangedModel

	if err := event.DataAs(&req); err != nil {
		e.log.Error("could not decode listing event", logger.Error(err))
		return
	}

	listing := &models.Listing{
		Id:         req.Id,
		CategoryId: req.CategoryId,
		Status:     req.Status,
	}
	if err := e.strgPG.Listing().Upsert(listing); err != nil {
		e.log.Error("could not mirror listing",
			logger.String("listing_id", req.Id), logger.Error(err))
		return
	}

	if err := e.svc.OnListingChanged(ctx, req.OldCategoryId, req.CategoryId); err != nil {
		e.log.Error("could not recount category usage",
			logger.String("listing_id", req.Id), logger.Error(err))
	}
}

func (e *EventHandler) DeleteListing(ctx context.Context, event cloudevents.Event) {

	var req models.ListingDeletedModel

	if err := event.DataAs(&req); err != nil {
		e.log.Error("could not decode listing delete event", logger.Error(err))
		return
	}

	categoryID, err := e.strgPG.Listing().Delete(req.Id)
	if err != nil {
		e.log.Error("could not drop listing from mirror",
			logger.String("listing_id", req.Id), logger.Error(err))
		return
	}
	if categoryID == nil {
		return
	}

	if err := e.svc.OnListingChanged(ctx, categoryID, nil); err != nil {
		e.log.Error("could not recount category usage",
			logger.String("listing_id", req.Id), logger.Error(err))
	}
}
