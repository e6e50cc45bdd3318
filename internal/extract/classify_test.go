package extract

import (
	"testing"

	"github.com/samvad-hq/samvad-site-scraper/internal/domain"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		url  string
		want domain.ContentType
	}{
		{"https://site.com/blog/my-post", domain.ContentTypeBlog},
		{"https://site.com/podcast/ep-1", domain.ContentTypePodcastTranscript},
		{"https://site.com/Episode/42", domain.ContentTypePodcastTranscript},
		{"https://site.com/meeting/standup", domain.ContentTypeCallTranscript},
		{"https://linkedin.com/posts/123", domain.ContentTypeLinkedInPost},
		{"https://example.com/posts/hello", domain.ContentTypeLinkedInPost},
		{"https://www.reddit.com/r/golang/comments/abc", domain.ContentTypeRedditComment},
		{"https://site.com/books/go", domain.ContentTypeBook},
		{"https://site.com/guides/setup", domain.ContentTypeBlog},
		{"https://site.com/about", domain.ContentTypeBlog},
		// blog patterns outrank everything after them
		{"https://site.com/blog/podcast/ep-1", domain.ContentTypeBlog},
		// trailing slash is required by the pattern
		{"https://site.com/podcast", domain.ContentTypeBlog},
	}
	for _, tc := range cases {
		if got := Classify(tc.url, "ignored"); got != tc.want {
			t.Errorf("Classify(%q) = %s, want %s", tc.url, got, tc.want)
		}
	}
}

func TestClassifyAlwaysReturnsKnownLabel(t *testing.T) {
	for _, u := range []string{"", "not a url", "https://x.y/z"} {
		if got := Classify(u, ""); !got.Valid() {
			t.Errorf("Classify(%q) = %q is not a known label", u, got)
		}
	}
}
