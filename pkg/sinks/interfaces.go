package sinks

import "context"

// Sink receives the finished result of a scrape run (file, HTTP, queue, etc).
type Sink interface {
	ID() string
	Type() string
	Write(ctx context.Context, run Run) error
}

// sender delivers a single record event to a message queue.
type sender interface {
	Send(ctx context.Context, evt Event) error
}
