// Package events defines the domain-event contract used by event-triggered
// metric producers. The hosting application publishes its own event types on
// the bus; any value implementing Event can trigger producers bound to its
// name.
package events
