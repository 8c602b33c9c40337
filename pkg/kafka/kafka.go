package kafka

import (
	"context"
	"sync"
	"time"

	"github.com/Shopify/sarama"
	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/google/uuid"
	"github.com/petilan/petilan_category_service/config"
	"github.com/petilan/petilan_category_service/pkg/logger"
)

type Kafka struct {
	ctx           context.Context
	log           logger.Logger
	cfg           config.Config
	consumers     map[string]*Consumer
	producer      sarama.SyncProducer
	saramaConfig  *sarama.Config
	consumerGroup sarama.ConsumerGroup
	ready         chan struct{}
	wg            *sync.WaitGroup
}

type KafkaI interface {
	RunConsumers()
	AddConsumer(topic string, handler HandlerFunc)
	Push(topic string, e cloudevents.Event) error
	Shutdown() error
}

func NewKafka(ctx context.Context, cfg config.Config, log logger.Logger) (KafkaI, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V3_2_0_0
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	saramaConfig.Consumer.Group.Heartbeat.Interval = time.Second * 30
	saramaConfig.Consumer.Group.Session.Timeout = time.Second * 90
	saramaConfig.Consumer.Group.Rebalance.Timeout = time.Second * 90 * 3
	saramaConfig.Consumer.MaxProcessingTime = time.Second * 60
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Producer.MaxMessageBytes = 1024 * 1024 * 40
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Return.Successes = true

	consumerGroup, err := sarama.NewConsumerGroup([]string{cfg.KafkaUrl}, config.ConsumerGroupID, saramaConfig)
	if err != nil {
		return nil, err
	}

	producer, err := sarama.NewSyncProducer([]string{cfg.KafkaUrl}, saramaConfig)
	if err != nil {
		return nil, err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				consumerGroup.Close()
				return
			case err := <-consumerGroup.Errors():
				if err != nil {
					log.Error("error on kafka", logger.Error(err))
				}
			}
		}
	}()

	kafka := &Kafka{
		ctx:           ctx,
		log:           log,
		cfg:           cfg,
		consumers:     make(map[string]*Consumer),
		producer:      producer,
		saramaConfig:  saramaConfig,
		ready:         make(chan struct{}),
		wg:            &sync.WaitGroup{},
		consumerGroup: consumerGroup,
	}

	return kafka, nil
}

// RunConsumers joins the consumer group for every registered topic and
// blocks until the first rebalance completes.
func (kafka *Kafka) RunConsumers() {
	topics := []string{}

	for _, consumer := range kafka.consumers {
		topics = append(topics, consumer.topic)
	}
	kafka.log.Info("topics:", logger.Any("topics:", topics))

	kafka.wg.Add(1)
	go func() {
		defer kafka.wg.Done()
		for {
			if err := kafka.consumerGroup.Consume(kafka.ctx, topics, kafka); err != nil {
				kafka.log.Error("error while consuming", logger.Error(err))
			}
			if kafka.ctx.Err() != nil {
				return
			}
			kafka.ready = make(chan struct{})
		}
	}()

	<-kafka.ready
	kafka.log.Warn("consumer group started")
}

func CreateEvent(t, s string, v interface{}) (cloudevents.Event, error) {
	event := cloudevents.NewEvent()
	id, err := uuid.NewRandom()
	if err != nil {
		return event, err
	}
	event.SetType(t)
	event.SetSource(s)
	event.SetID(id.String())
	err = event.SetData(cloudevents.ApplicationJSON, v)
	return event, err
}

func (kafka *Kafka) Shutdown() error {
	kafka.log.Warn("shutting down pub-sub server")
	select {
	case <-kafka.ctx.Done():
		kafka.log.Warn("terminating: context cancelled")
	default:
	}
	kafka.wg.Wait()
	kafka.consumerGroup.Close()

	if err := kafka.producer.Close(); err != nil {
		kafka.log.Error("could not close producer", logger.Error(err))
	}

	return nil
}
