package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func TestResolveTitlePrefersHeadline(t *testing.T) {
	doc := mustDoc(t, `<html><head><title>Site | Page</title></head>
<body><h1>  Real
  Headline </h1><div class="entry-title">Entry</div></body></html>`)

	title, strategy := ResolveTitle(DefaultTitleChain(), TitleSource{Doc: doc, URL: "https://x.com/a"})
	if title != "Real Headline" || strategy != "selector:h1" {
		t.Fatalf("got %q via %s", title, strategy)
	}
}

func TestResolveTitleSkipsEmptyHeadline(t *testing.T) {
	doc := mustDoc(t, `<html><head><title>Doc Title</title></head><body><h1>  </h1></body></html>`)

	title, strategy := ResolveTitle(DefaultTitleChain(), TitleSource{Doc: doc})
	if title != "Doc Title" || strategy != "selector:title" {
		t.Fatalf("got %q via %s", title, strategy)
	}
}

func TestResolveTitleUsesCMSClass(t *testing.T) {
	doc := mustDoc(t, `<html><body><div class="article-title">CMS Title</div></body></html>`)

	title, _ := ResolveTitle(DefaultTitleChain(), TitleSource{Doc: doc})
	if title != "CMS Title" {
		t.Fatalf("got %q", title)
	}
}

func TestResolveTitleFallsBackToMarkdownHeading(t *testing.T) {
	doc := mustDoc(t, `<html><body><p>no headline</p></body></html>`)
	md := "intro line\n## Sub\n# Markdown Title \nbody"

	title, strategy := ResolveTitle(DefaultTitleChain(), TitleSource{Doc: doc, Markdown: md})
	if title != "Markdown Title" || strategy != "markdown-heading" {
		t.Fatalf("got %q via %s", title, strategy)
	}
}

func TestResolveTitleFallsBackToURLSlug(t *testing.T) {
	doc := mustDoc(t, `<html><body><p>nothing</p></body></html>`)

	title, strategy := ResolveTitle(DefaultTitleChain(), TitleSource{
		Doc:      doc,
		Markdown: "plain text only",
		URL:      "https://site.com/blog/my_first-POST",
	})
	if title != "My First Post" || strategy != "url-slug" {
		t.Fatalf("got %q via %s", title, strategy)
	}
}

func TestResolveTitleFallsBackToHostForRoot(t *testing.T) {
	title, strategy := ResolveTitle(DefaultTitleChain(), TitleSource{URL: "https://site.com/"})
	if title != "site.com" || strategy != "url-host" {
		t.Fatalf("got %q via %s", title, strategy)
	}
}

func TestTitleCase(t *testing.T) {
	cases := map[string]string{
		"hello world":  "Hello World",
		"ep1abc":       "Ep1Abc",
		"ALL CAPS":     "All Caps",
		"o'neil story": "O'Neil Story",
		"":             "",
	}
	for in, want := range cases {
		if got := titleCase(in); got != want {
			t.Errorf("titleCase(%q) = %q, want %q", in, got, want)
		}
	}
}
