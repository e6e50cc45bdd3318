package storage

import (
	"fmt"
	"strings"
)

// Package storage provides the page cache shared by the crawl and extraction phases.

// Store caches fetched page bodies for the lifetime of one scrape run.
type Store interface {
	Close() error
	GetPage(url string) ([]byte, bool, error)
	PutPage(url string, body []byte) error
}

// Supported store types.
const (
	TypeNone  = "none"
	TypeBBolt = "bbolt"
)

// Options controls how a concrete store scopes its data.
type Options struct {
	// RunID names the bucket that holds this run's pages. Required for bbolt.
	RunID string
}

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))

	switch typ {
	case "", TypeNone, "disabled":
		return noopStore{}, nil
	case TypeBBolt:
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		if strings.TrimSpace(opts.RunID) == "" {
			return nil, fmt.Errorf("bbolt storage requires a run id")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

type noopStore struct{}

func (noopStore) Close() error                         { return nil }
func (noopStore) GetPage(string) ([]byte, bool, error) { return nil, false, nil }
func (noopStore) PutPage(string, []byte) error         { return nil }
