package sinks

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// recordSink publishes one message per extracted record through a queue sender.
type recordSink struct {
	id     string
	typ    string
	sender sender
	log    Logger
}

func (q *recordSink) ID() string   { return q.id }
func (q *recordSink) Type() string { return q.typ }

// Write sends every record. A failed record does not stop the rest; failures are joined.
func (q *recordSink) Write(ctx context.Context, run Run) error {
	var errs []error
	sent := 0
	for _, evt := range run.Events() {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := q.sender.Send(ctx, evt); err != nil {
			errs = append(errs, fmt.Errorf("record %s: %w", evt.Record.SourceURL, err))
			continue
		}
		sent++
	}

	q.log.InfoObj("queue sink finished", "sink_queue_result", map[string]any{
		"sink_id": q.id,
		"type":    q.typ,
		"sent":    sent,
		"failed":  len(errs),
	})
	return errors.Join(errs...)
}

// Close releases the sender's connection when it holds one.
func (q *recordSink) Close() error {
	if c, ok := q.sender.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
