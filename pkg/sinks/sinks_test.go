package sinks

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRegistryEnabledFilter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sinks.yaml")
	raw := `
sinks:
  - id: http1
    type: http
    enabled: false
    http:
      url: https://example.com
  - id: queue
    type: SQS
    sqs:
      uri: " https://sqs.ap-south-1.amazonaws.com/123/pages "
      region: ap-south-1
      access_key_id: AKIA
      secret_access_key: secret
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	enabled := reg.Enabled()
	if len(enabled) != 1 || enabled[0].ID != "queue" {
		t.Fatalf("expected only queue enabled, got %#v", enabled)
	}
	q := enabled[0]
	if q.Type != TypeSQS || q.SQS.QueueURL != "https://sqs.ap-south-1.amazonaws.com/123/pages" {
		t.Fatalf("config not sanitized: %#v", q.SQS)
	}
	if q.SQS.AccessKeyID != "AKIA" {
		t.Fatalf("inline credentials not decoded: %#v", q.SQS.AWSCredentials)
	}
	if cfg, ok := reg.ByID("http1"); !ok || cfg.HTTP.Method != "POST" || cfg.HTTP.TimeoutSeconds != httpDefaultTimeoutSeconds {
		t.Fatalf("http defaults not applied: %#v", cfg.HTTP)
	}
}

func TestLoadRegistryJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sinks.json")
	raw := `{"sinks":[{"id":"ps","type":"pubsub","pubsub":{"project_id":"p","topic":"t"}}]}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if len(reg.All()) != 1 {
		t.Fatalf("expected one sink, got %d", len(reg.All()))
	}
}

func TestLoadRegistryMissingFileIsEmpty(t *testing.T) {
	reg, err := LoadRegistry(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if len(reg.Enabled()) != 0 {
		t.Fatalf("expected no sinks")
	}
}

func TestLoadRegistryRejectsDuplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sinks.yaml")
	raw := `
sinks:
  - id: a
    type: file
    file: {path: out.json}
  - id: a
    type: file
    file: {path: out2.json}
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := LoadRegistry(path); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestValidateSinkConfig(t *testing.T) {
	cases := []struct {
		name string
		cfg  SinkConfig
	}{
		{"missing id", SinkConfig{Type: TypeHTTP}},
		{"missing http block", SinkConfig{ID: "h", Type: TypeHTTP}},
		{"missing sqs region", SinkConfig{ID: "q", Type: TypeSQS, SQS: &SQSSinkConfig{QueueURL: "u"}}},
		{"half credentials", SinkConfig{ID: "q", Type: TypeSNS, SNS: &SNSSinkConfig{TopicARN: "arn", Region: "r", AWSCredentials: AWSCredentials{AccessKeyID: "k"}}}},
		{"missing pubsub topic", SinkConfig{ID: "p", Type: TypePubSub, PubSub: &PubSubSinkConfig{ProjectID: "p"}}},
		{"unknown type", SinkConfig{ID: "x", Type: "kafka"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := validateSinkConfig(tc.cfg); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
