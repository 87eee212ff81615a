package service

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/plinkhq/plink/internal/app/model"
)

var errNoViewStream = errors.New("view stream is not configured")

// ViewPublisher publishes profile-view events to NATS JetStream.
type ViewPublisher struct {
	js nats.JetStreamContext
}

// NewViewPublisher creates a new profile-view event publisher.
func NewViewPublisher(js nats.JetStreamContext) *ViewPublisher {
	return &ViewPublisher{js: js}
}

// Publish emits one profile-view event to the stream. Safe on a nil or
// unconnected publisher so a miswired caller loses the event, not the process.
func (p *ViewPublisher) Publish(userID, ip, userAgent string) error {
	if p == nil || p.js == nil {
		return errNoViewStream
	}

	event := model.ViewEvent{
		ID:        uuid.New().String(),
		UserID:    userID,
		IP:        ip,
		UserAgent: userAgent,
		Timestamp: time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	_, err = p.js.Publish(model.ViewStreamSubject, data)
	return err
}
