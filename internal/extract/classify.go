package extract

import (
	"strings"

	"github.com/samvad-hq/samvad-site-scraper/internal/domain"
)

// classifierRule maps URL substrings to a content type.
type classifierRule struct {
	contentType domain.ContentType
	patterns    []string
}

// Rules are checked in order; the first rule with a matching substring wins.
// Matching is deliberately coarse: "/posts/" on any host is a linkedin post.
var classifierRules = []classifierRule{
	{domain.ContentTypeBlog, []string{"/blog/", "/post/", "/article/"}},
	{domain.ContentTypePodcastTranscript, []string{"/podcast/", "/episode/"}},
	{domain.ContentTypeCallTranscript, []string{"/call/", "/meeting/"}},
	{domain.ContentTypeLinkedInPost, []string{"linkedin.com", "/posts/"}},
	{domain.ContentTypeRedditComment, []string{"reddit.com", "/comments/"}},
	{domain.ContentTypeBook, []string{"/book/", "/books/"}},
	{domain.ContentTypeBlog, []string{"/guide/", "/guides/", "/tutorial/"}},
}

// Classify labels a page by URL pattern. The title is accepted for future rules but not
// consulted today.
func Classify(url, _ string) domain.ContentType {
	lower := strings.ToLower(url)
	for _, rule := range classifierRules {
		for _, p := range rule.patterns {
			if strings.Contains(lower, p) {
				return rule.contentType
			}
		}
	}
	return domain.ContentTypeBlog
}
