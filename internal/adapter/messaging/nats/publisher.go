package nats

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
)

const (
	SubjectPropertyCreated = "property.created"
	SubjectPropertyUpdated = "property.updated"
)

// PropertyEvent is the payload published on property lifecycle subjects.
type PropertyEvent struct {
	PropertyID string    `json:"propertyId"`
	UserID     string    `json:"userId"`
	OccurredAt time.Time `json:"occurredAt"`
}

type Publisher struct {
	conn *nats.Conn
}

func NewPublisher(url string) (*Publisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, err
	}
	return &Publisher{conn: conn}, nil
}

func (p *Publisher) Publish(ctx context.Context, subject string, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return p.conn.Publish(subject, jsonData)
}

func (p *Publisher) PublishPropertyCreated(ctx context.Context, propertyID, userID string) error {
	return p.Publish(ctx, SubjectPropertyCreated, PropertyEvent{
		PropertyID: propertyID,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
	})
}

func (p *Publisher) PublishPropertyUpdated(ctx context.Context, propertyID, userID string) error {
	return p.Publish(ctx, SubjectPropertyUpdated, PropertyEvent{
		PropertyID: propertyID,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
	})
}

func (p *Publisher) Close() {
	p.conn.Close()
}
