package urlnorm

import (
	"errors"
	"testing"
)

func TestNormalizeEquivalentSpellings(t *testing.T) {
	a, err := Normalize("quill.co/blog/")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	b, err := Normalize("https://quill.co/blog")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if a != b || a != "https://quill.co/blog" {
		t.Fatalf("expected both to normalize to https://quill.co/blog, got %q and %q", a, b)
	}
}

func TestNormalizeCases(t *testing.T) {
	cases := map[string]NormalizedURL{
		"example.com":                        "https://example.com/",
		"http://Example.COM":                 "http://example.com/",
		"HTTPS://Blog.Example.com/Path/":     "https://blog.example.com/Path",
		"https://example.com/a//":            "https://example.com/a",
		"https://example.com/a/?q=1#top":     "https://example.com/a?q=1#top",
		"https://example.com:8080/x/":        "https://example.com:8080/x",
		"https://example.com/with%20space/":  "https://example.com/with%20space",
		"  https://example.com/trimmed  ":    "https://example.com/trimmed",
		"https://example.com/?":              "https://example.com/",
		"https://example.com/#":              "https://example.com/",
		"https://example.com/page?a=1&b=2":   "https://example.com/page?a=1&b=2",
		"https://example.com/section#anchor": "https://example.com/section#anchor",
	}
	for in, want := range cases {
		got, err := Normalize(in)
		if err != nil {
			t.Errorf("Normalize(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"quill.co/blog/",
		"HTTP://WWW.Example.com/A/B/?x=1#frag",
		"https://example.com",
		"https://example.com/with%20space/",
		"https://user:pw@Example.com/p/",
	}
	for _, in := range inputs {
		once, err := Normalize(in)
		if err != nil {
			t.Fatalf("Normalize(%q): %v", in, err)
		}
		twice, err := Normalize(string(once))
		if err != nil {
			t.Fatalf("Normalize(%q): %v", once, err)
		}
		if once != twice {
			t.Errorf("not idempotent: %q -> %q -> %q", in, once, twice)
		}
	}
}

func TestNormalizeRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "   ", "https://exa mple.com/%zz", "http://[::1"} {
		if _, err := Normalize(in); !errors.Is(err, ErrInvalidURL) {
			t.Errorf("Normalize(%q) err = %v, want ErrInvalidURL", in, err)
		}
	}
}

func TestIsInternal(t *testing.T) {
	cases := []struct {
		url  NormalizedURL
		base string
		want bool
	}{
		{"https://quill.co/x", "quill.co", true},
		{"https://blog.quill.co/x", "quill.co", true},
		{"https://quill.co.evil.com/x", "quill.co", false},
		{"https://notquill.co/x", "quill.co", false},
		{"https://QUILL.co/x", "quill.co", true},
		{"https://127.0.0.1:8080/a", "127.0.0.1:8080", true},
		{"https://127.0.0.1:9090/a", "127.0.0.1:8080", false},
		{"/relative/only", "quill.co", false},
		{"http://[::1", "quill.co", false},
		{"https://quill.co/x", "", false},
	}
	for _, tc := range cases {
		if got := IsInternal(tc.url, tc.base); got != tc.want {
			t.Errorf("IsInternal(%q, %q) = %v, want %v", tc.url, tc.base, got, tc.want)
		}
	}
}
