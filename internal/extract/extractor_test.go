package extract

import (
	"errors"
	"strings"
	"testing"
)

type stubContent struct {
	markdown string
	err      error
}

func (s stubContent) MainContent([]byte, string) (string, error) { return s.markdown, s.err }

func TestExtractorUsesHeadlineForTitle(t *testing.T) {
	ex := NewExtractor(stubContent{markdown: "\n# Body Heading\n\nSome text.\n"})

	art, err := ex.Extract([]byte(`<html><body><h1>Page Headline</h1></body></html>`), "https://site.com/blog/x")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if art.Title != "Page Headline" {
		t.Fatalf("Title = %q", art.Title)
	}
	if art.Markdown != "# Body Heading\n\nSome text." {
		t.Fatalf("Markdown = %q", art.Markdown)
	}
}

func TestExtractorFallsBackToURLSlug(t *testing.T) {
	ex := NewExtractor(stubContent{markdown: "just a paragraph"})

	art, err := ex.Extract([]byte(`<html><body><p>x</p></body></html>`), "https://site.com/guides/getting-started")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if art.Title != "Getting Started" || art.TitleStrategy != "url-slug" {
		t.Fatalf("got %q via %s", art.Title, art.TitleStrategy)
	}
}

func TestExtractorReportsNoContent(t *testing.T) {
	ex := NewExtractor(stubContent{markdown: "   \n "})
	if _, err := ex.Extract([]byte(`<html></html>`), "https://site.com/"); !errors.Is(err, ErrNoContent) {
		t.Fatalf("err = %v, want ErrNoContent", err)
	}
}

func TestExtractorPropagatesContentErrors(t *testing.T) {
	boom := errors.New("boom")
	ex := NewExtractor(stubContent{err: boom})
	if _, err := ex.Extract([]byte(`<html></html>`), "https://site.com/"); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
}

func TestExtractorCustomTitleChain(t *testing.T) {
	ex := NewExtractor(stubContent{markdown: "text"}).WithTitleChain([]TitleStrategy{
		{Name: "fixed", Resolve: func(TitleSource) string { return "Fixed" }},
	})
	art, err := ex.Extract([]byte(`<html><body><h1>Ignored</h1></body></html>`), "https://site.com/")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if art.Title != "Fixed" {
		t.Fatalf("Title = %q", art.Title)
	}
}

const articlePage = `<!DOCTYPE html>
<html>
<head><title>Writing Crawlers | Example Engineering</title></head>
<body>
<nav><a href="/">Home</a> <a href="/about">About</a></nav>
<article>
<h1>Writing Crawlers That Behave</h1>
<p>A polite crawler keeps a single connection busy at a time and waits between requests so that the
site it visits never notices the extra load. This paragraph is long enough to look like real prose to
an extraction heuristic that scores text density against link density.</p>
<p>Breadth-first traversal is the natural choice when the goal is to find the most prominent pages
first. Pages linked from the home page are usually the ones authors care about, and a quota on the
number of discovered pages keeps the crawl bounded even on very large sites.</p>
<p>Normalizing every URL before comparing it avoids fetching the same page twice because of a
trailing slash or an upper-case host name. The same canonical form is later used as the source URL
of every record written to the output document.</p>
<p>Finally, the extracted body is converted to Markdown so that downstream tools can index it without
having to understand HTML. Tables are kept, images are dropped, and inline links survive the trip.</p>
</article>
<footer>Copyright Example</footer>
<script>var tracking = "should never appear";</script>
</body>
</html>`

func TestTrafilaturaExtractorFindsArticleBody(t *testing.T) {
	markdown, err := NewTrafilaturaExtractor().MainContent([]byte(articlePage), "https://example.com/blog/writing-crawlers")
	if err != nil {
		t.Fatalf("MainContent: %v", err)
	}
	if !strings.Contains(markdown, "Breadth-first traversal") {
		t.Fatalf("expected article prose in markdown, got:\n%s", markdown)
	}
	if strings.Contains(markdown, "should never appear") {
		t.Fatalf("script content leaked into markdown:\n%s", markdown)
	}
}

func TestTrafilaturaExtractorEmptyPage(t *testing.T) {
	_, err := NewTrafilaturaExtractor().MainContent([]byte(`<html><body></body></html>`), "https://example.com/")
	if !errors.Is(err, ErrNoContent) {
		t.Fatalf("err = %v, want ErrNoContent", err)
	}
}
