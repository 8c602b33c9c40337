package helper

import (
	"github.com/Shopify/sarama"
	cloudevents "github.com/cloudevents/sdk-go/v2"
)

// MessageToEvent decodes a kafka message into a cloudevents envelope. A
// message that is not a valid envelope is wrapped into one carrying the raw
// value so handlers always receive an event.
func MessageToEvent(message *sarama.ConsumerMessage) cloudevents.Event {
	e := cloudevents.NewEvent()
	if err := e.UnmarshalJSON(message.Value); err != nil {
		e = cloudevents.NewEvent()
		e.SetType(message.Topic)
		e.SetSource("kafka://" + message.Topic)
		_ = e.SetData(cloudevents.ApplicationJSON, message.Value)
	}
	return e
}
