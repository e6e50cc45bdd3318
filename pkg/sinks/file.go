package sinks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/samvad-hq/samvad-site-scraper/internal/domain"
)

type fileSink struct {
	id   string
	path string
	log  Logger
}

func newFileSink(_ context.Context, cfg SinkConfig, log Logger) (Sink, error) {
	if cfg.File == nil || cfg.File.Path == "" {
		return nil, fmt.Errorf("sink %q missing file path", cfg.ID)
	}
	return NewFileSink(cfg.ID, cfg.File.Path, log), nil
}

// NewFileSink returns a sink that writes the result document to path.
func NewFileSink(id, path string, log Logger) Sink {
	return &fileSink{id: id, path: path, log: ensureLogger(log)}
}

func (f *fileSink) ID() string   { return f.id }
func (f *fileSink) Type() string { return TypeFile }

func (f *fileSink) Write(_ context.Context, run Run) error {
	if err := WriteJSONFile(f.path, run.Result); err != nil {
		return err
	}
	f.log.DebugObj("file sink wrote result", "sink_file_write", map[string]any{
		"sink_id": f.id,
		"path":    f.path,
		"items":   len(run.Result.Items),
	})
	return nil
}

// WriteResultFile writes res to path as the canonical result document.
func WriteResultFile(path string, res domain.ScrapeResult) error {
	return WriteJSONFile(path, res)
}

// WriteJSONFile writes v to path as two-space indented UTF-8 JSON without HTML escaping,
// creating parent directories as needed.
func WriteJSONFile(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
