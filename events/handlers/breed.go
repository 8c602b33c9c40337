package handlers

import (
	"context"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/petilan/petilan_category_service/models"
	"github.com/petilan/petilan_category_service/pkg/logger"
)

// UpsertBreed refreshes the local breed mirror and lets the sync engine
// decide whether the breed earns a derived category.
func (e *EventHandler) UpsertBreed(ctx context.Context, event cloudevents.Event) {

	var req models.Breed

	if err := event.DataAs(&req); err != nil {
		e.log.Error("could not decode breed event", logger.Error(err))
		return
	}

	if err := e.strgPG.Breed().Upsert(&req); err != nil {
		e.log.Error("could not mirror breed",
			logger.String("breed_id", req.Id), logger.Error(err))
		return
	}

	e.sync.Sync(ctx, &req)
}

func (e *EventHandler) DeleteBreed(ctx context.Context, event cloudevents.Event) {

	var req models.BreedDeletedModel

	if err := event.DataAs(&req); err != nil {
		e.log.Error("could not decode breed delete event", logger.Error(err))
		return
	}

	if err := e.strgPG.Breed().Delete(req.Id); err != nil {
		e.log.Error("could not drop breed from mirror",
			logger.String("breed_id", req.Id), logger.Error(err))
		return
	}

	e.sync.OnBreedRemoved(ctx, &req)
}
