package events

import (
	"github.com/petilan/petilan_category_service/config"
	"github.com/petilan/petilan_category_service/events/handlers"
	"github.com/petilan/petilan_category_service/pkg/kafka"
	"github.com/petilan/petilan_category_service/pkg/logger"
	"github.com/petilan/petilan_category_service/services"
	"github.com/petilan/petilan_category_service/storage"
)

// PubSubServer wires the kafka consumers to the event handlers. Breed
// events feed the derived Dogs subtree, listing events feed the usage
// counters.
type PubSubServer struct {
	kafka   kafka.KafkaI
	handler *handlers.EventHandler
}

func NewPubSubServer(log logger.Logger, k kafka.KafkaI, strgPG storage.StoragePg, svc services.CategoryServiceI, sync services.BreedSyncI) *PubSubServer {
	server := &PubSubServer{
		kafka:   k,
		handler: handlers.NewEventHandler(log, strgPG, svc, sync),
	}
	server.registerConsumers()
	return server
}

func (s *PubSubServer) registerConsumers() {
	s.kafka.AddConsumer(config.BreedUpsertedTopic, s.handler.UpsertBreed)
	s.kafka.AddConsumer(config.BreedDeletedTopic, s.handler.DeleteBreed)
	s.kafka.AddConsumer(config.ListingUpsertedTopic, s.handler.UpsertListing)
	s.kafka.AddConsumer(config.ListingDeletedTopic, s.handler.DeleteListing)
}

func (s *PubSubServer) Run() {
	s.kafka.RunConsumers()
}
