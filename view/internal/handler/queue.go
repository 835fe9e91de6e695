package handler

import (
	"encoding/json"

	"github.com/Astemirdum/library-view/pkg/kafka"
	"github.com/Astemirdum/library-view/view/internal/model"
	"github.com/IBM/sarama"
	"github.com/pkg/errors"
)

type Enqueuer interface {
	Enqueue(v model.Activity) error
}

// NewEnqueuer drops every activity when producer is nil.
func NewEnqueuer(producer sarama.SyncProducer, topic string) Enqueuer {
	if producer == nil {
		return noopEnqueuer{}
	}
	if topic == "" {
		topic = kafka.ActivityTopic
	}
	return &enqueuerImpl{
		producer: producer,
		topic:    topic,
	}
}

type enqueuerImpl struct {
	producer sarama.SyncProducer
	topic    string
}

func (q *enqueuerImpl) Enqueue(v model.Activity) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "marshal activity")
	}
	msg := &sarama.ProducerMessage{
		Topic: q.topic,
		Key:   sarama.StringEncoder(v.Kind),
		Value: sarama.ByteEncoder(data),
	}
	if _, _, err = q.producer.SendMessage(msg); err != nil {
		return errors.Wrap(err, "send activity")
	}
	return nil
}

type noopEnqueuer struct{}

func (noopEnqueuer) Enqueue(model.Activity) error { return nil }
