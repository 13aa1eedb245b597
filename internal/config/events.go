package config

import (
	"log/slog"
	"strings"

	"github.com/campusops/registry-service/internal/events"
)

// EventConfig holds configuration for event publishing
type EventConfig struct {
	Enabled        bool
	Publisher      string // kafka or mock
	KafkaBrokers   string
	ClearanceTopic string
}

func LoadEventConfig() EventConfig {
	return EventConfig{
		Enabled:        getEnv("EVENTS_ENABLED", "true") == "true",
		Publisher:      getEnv("EVENTS_PUBLISHER", "kafka"),
		KafkaBrokers:   getEnv("KAFKA_BROKERS", "localhost:9092"),
		ClearanceTopic: getEnv("CLEARANCE_TOPIC", "clearance-decisions"),
	}
}

// GetKafkaBrokers returns Kafka brokers as a slice
func (c *EventConfig) GetKafkaBrokers() []string {
	return strings.Split(c.KafkaBrokers, ",")
}

// CreateEventPublisher creates an event publisher based on configuration
func (c *EventConfig) CreateEventPublisher(logger *slog.Logger) (events.Publisher, error) {
	if !c.Enabled {
		logger.Info("Event publishing disabled, using mock publisher")
		return events.NewMockPublisher(logger), nil
	}

	switch c.Publisher {
	case "kafka":
		logger.Info("Creating Kafka event publisher",
			"brokers", c.KafkaBrokers,
			"topic", c.ClearanceTopic)

		return events.NewKafkaPublisher(events.PublisherConfig{
			KafkaBrokers: c.GetKafkaBrokers(),
			TopicName:    c.ClearanceTopic,
			Logger:       logger,
		})
	case "mock":
		logger.Info("Using mock event publisher")
		return events.NewMockPublisher(logger), nil
	default:
		logger.Warn("Unknown event publisher type, falling back to mock", "publisher", c.Publisher)
		return events.NewMockPublisher(logger), nil
	}
}
