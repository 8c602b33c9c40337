package handlers

import (
	"github.com/petilan/petilan_category_service/pkg/logger"
	"github.com/petilan/petilan_category_service/services"
	"github.com/petilan/petilan_category_service/storage"
)

type EventHandler struct {
	log    logger.Logger
	strgPG storage.StoragePg
	svc    services.CategoryServiceI
	sync   services.BreedSyncI
}

func NewEventHandler(log logger.Logger, strgPG storage.StoragePg, svc services.CategoryServiceI, sync services.BreedSyncI) *EventHandler {
	return &EventHandler{
		log:    log,
		strgPG: strgPG,
		svc:    svc,
		sync:   sync,
	}
}
