package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/pubsub"

	"github.com/sahaniaman/ecom-techora/internal/services"
)

// PubSubCatalogPublisher publishes catalog change events to a Pub/Sub topic
// for downstream consumers such as search indexers and cache invalidators.
type PubSubCatalogPublisher struct {
	topic   *pubsub.Topic
	marshal func(any) ([]byte, error)
}

// NewPubSubCatalogPublisher constructs a Pub/Sub backed catalog event publisher.
func NewPubSubCatalogPublisher(topic *pubsub.Topic) (*PubSubCatalogPublisher, error) {
	if topic == nil {
		return nil, errors.New("pubsub catalog publisher: topic is required")
	}
	return &PubSubCatalogPublisher{
		topic:   topic,
		marshal: json.Marshal,
	}, nil
}

var _ services.CatalogEventPublisher = (*PubSubCatalogPublisher)(nil)

// PublishCatalogEvent enqueues a catalog event message on the configured
// topic, blocking until the server acknowledges it.
func (p *PubSubCatalogPublisher) PublishCatalogEvent(ctx context.Context, event services.CatalogEvent) error {
	if p == nil || p.topic == nil {
		return errors.New("pubsub catalog publisher: not initialised")
	}

	data, err := p.marshal(event)
	if err != nil {
		return fmt.Errorf("marshal catalog event: %w", err)
	}

	attrs := make(map[string]string)
	setAttr(attrs, "eventType", string(event.Type))
	setAttr(attrs, "productId", event.ProductID)
	setAttr(attrs, "sku", event.SKU)
	setAttr(attrs, "categoryId", event.CategoryID)
	setAttr(attrs, "status", string(event.Status))

	result := p.topic.Publish(ctx, &pubsub.Message{
		Data:       data,
		Attributes: attrs,
	})

	if _, err := result.Get(ctx); err != nil {
		return fmt.Errorf("publish catalog event: %w", err)
	}
	return nil
}

func setAttr(attrs map[string]string, key string, value string) {
	if v := strings.TrimSpace(value); v != "" {
		attrs[key] = v
	}
}
