package kafka

import (
	"github.com/IBM/sarama"
	"github.com/pkg/errors"
)

const ActivityTopic = "library-view.activity"

// Config leaves the producer off when no broker is given.
type Config struct {
	Addrs []string `yaml:"addrs" envconfig:"KAFKA_ADDRS"`
	Topic string   `yaml:"topic" envconfig:"KAFKA_TOPIC" default:"library-view.activity"`
}

func (c Config) Enabled() bool {
	return len(c.Addrs) > 0
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.ClientID = "library-view"
	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true
	defaultCfg.Producer.Retry.Max = 3

	p, err := sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
	if err != nil {
		return nil, errors.Wrap(err, "kafka: producer")
	}
	return p, nil
}
