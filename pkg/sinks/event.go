package sinks

import (
	"time"

	"github.com/google/uuid"
	"github.com/samvad-hq/samvad-site-scraper/internal/domain"
)

// Run is the envelope handed to every sink once a site has been scraped.
type Run struct {
	ID          string
	Result      domain.ScrapeResult
	CollectedAt time.Time
}

// NewRun wraps result with a fresh run id. An empty id generates one.
func NewRun(id string, result domain.ScrapeResult) Run {
	if id == "" {
		id = uuid.NewString()
	}
	return Run{ID: id, Result: result, CollectedAt: time.Now().UTC()}
}

// Event is the per-record payload published to queue sinks.
type Event struct {
	RunID       string                  `json:"run_id"`
	Site        string                  `json:"site"`
	Record      domain.ExtractionRecord `json:"record"`
	CollectedAt time.Time               `json:"collected_at"`
}

// Events splits the run into one event per extracted record, in result order.
func (r Run) Events() []Event {
	out := make([]Event, 0, len(r.Result.Items))
	for _, rec := range r.Result.Items {
		out = append(out, Event{
			RunID:       r.ID,
			Site:        r.Result.Site,
			Record:      rec,
			CollectedAt: r.CollectedAt,
		})
	}
	return out
}

// attributes are attached to every queued message so consumers can filter without decoding.
// Empty values are omitted.
func (e Event) attributes() map[string]string {
	out := make(map[string]string, 3)
	for k, v := range map[string]string{
		"site":         e.Site,
		"content_type": string(e.Record.ContentType),
		"run_id":       e.RunID,
	} {
		if v != "" {
			out[k] = v
		}
	}
	return out
}
