package services

import (
	"log"

	"inventaria/pkg/events"
)

// Publisher is the slice of the events client the services need. A nil
// Publisher disables event publication.
type Publisher interface {
	PublishChange(ev events.Event) error
}

// publish sends a change event if a publisher is configured. Publication is
// off the critical path: a failure is logged, never returned.
func publish(p Publisher, entity, action, id, name string) {
	if p == nil {
		return
	}
	ev := events.Event{Entity: entity, Action: action, ID: id, Name: name}
	if err := p.PublishChange(ev); err != nil {
		log.Printf("Warning: Failed to publish %s %s event for %s: %v", entity, action, id, err)
	}
}
