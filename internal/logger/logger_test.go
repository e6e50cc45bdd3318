package logger

import (
	"testing"

	"github.com/samvad-hq/samvad-site-scraper/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"bogus":   zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestDefaultLoggerWritesObjects(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	prev := S
	S = zap.New(core).Sugar()
	defer func() { S = prev }()

	log := Default()
	log.WarnObj("crawl fetch failed", "crawl_error", map[string]any{"url": "https://example.com/x", "phase": "crawl"})
	log.DebugObj("page crawled", "crawl_page", map[string]any{"links": 3})

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Level != zapcore.WarnLevel || entries[0].Message != "crawl fetch failed" {
		t.Fatalf("unexpected first entry %+v", entries[0])
	}
	if _, ok := entries[0].ContextMap()["crawl_error"]; !ok {
		t.Fatalf("object not logged under its key: %v", entries[0].ContextMap())
	}
}

func TestHelpersAreSafeBeforeInit(t *testing.T) {
	prev := S
	S = nil
	defer func() { S = prev }()

	InfoObj("ignored", "k", 1)
	ErrorObj("ignored", "k", 1)
	if err := Close(); err != nil {
		t.Fatalf("Close before Init: %v", err)
	}
	var nop NopLogger
	nop.WarnObj("ignored", "k", 1)
}

func TestInitHonoursLevel(t *testing.T) {
	prev := S
	defer func() { S = prev }()

	if _, err := Init(&config.Config{LogLevel: "error"}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if S.Desugar().Core().Enabled(zapcore.WarnLevel) {
		t.Fatalf("warn should be disabled at error level")
	}
	if !S.Desugar().Core().Enabled(zapcore.ErrorLevel) {
		t.Fatalf("error should be enabled")
	}
}
