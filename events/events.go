// Package events publishes job lifecycle events so other services can follow
// what the client submitted and how it ended.
package events

import (
	"context"
	"time"

	"texttovideo/types"
)

// Publisher sends job events somewhere
type Publisher interface {
	Publish(ctx context.Context, event types.JobEvent) error
	Close() error
}

// NopPublisher drops every event. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, types.JobEvent) error { return nil }
func (NopPublisher) Close() error                                  { return nil }

// NewEvent builds an event stamped with the current time
func NewEvent(eventType types.EventType, jobID string) types.JobEvent {
	return types.JobEvent{
		Type:  eventType,
		JobID: jobID,
		At:    time.Now().UTC(),
	}
}
