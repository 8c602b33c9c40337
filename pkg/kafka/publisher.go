package kafka

import (
	"github.com/Shopify/sarama"
	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/petilan/petilan_category_service/pkg/logger"
	"github.com/pkg/errors"
)

// Push publishes a cloudevents envelope to the topic.
func (kafka *Kafka) Push(topic string, e cloudevents.Event) error {
	payload, err := e.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "error while marshaling event")
	}

	partition, offset, err := kafka.producer.SendMessage(&sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(e.ID()),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		return errors.Wrap(err, "error while pushing message to "+topic)
	}

	kafka.log.Debug("message pushed",
		logger.String("topic", topic),
		logger.String("type", e.Type()),
		logger.Any("partition", partition),
		logger.Any("offset", offset),
	)

	return nil
}
