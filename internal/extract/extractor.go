// Package extract turns raw page HTML into a titled Markdown article and labels it.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	nurl "net/url"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// ErrNoContent marks a page without a substantive article body. Callers treat it as a
// valid empty outcome, not a failure.
var ErrNoContent = errors.New("no main content")

// MainContentExtractor returns the boilerplate-free body of a page as Markdown.
type MainContentExtractor interface {
	MainContent(body []byte, pageURL string) (string, error)
}

// Article is the extracted content of one page.
type Article struct {
	Title         string
	TitleStrategy string
	Markdown      string
}

// Extractor combines main-content extraction with the title fallback chain.
type Extractor struct {
	content MainContentExtractor
	titles  []TitleStrategy
}

// NewExtractor builds an extractor over content (trafilatura when nil) using the default title chain.
func NewExtractor(content MainContentExtractor) *Extractor {
	if content == nil {
		content = NewTrafilaturaExtractor()
	}
	return &Extractor{content: content, titles: DefaultTitleChain()}
}

// WithTitleChain returns a copy of e that resolves titles with chain.
func (e *Extractor) WithTitleChain(chain []TitleStrategy) *Extractor {
	cp := *e
	cp.titles = append([]TitleStrategy(nil), chain...)
	return &cp
}

// Extract returns the article for body, or an error wrapping ErrNoContent when the page
// has nothing worth keeping.
func (e *Extractor) Extract(body []byte, pageURL string) (Article, error) {
	markdown, err := e.content.MainContent(body, pageURL)
	if err != nil {
		return Article{}, err
	}
	markdown = strings.TrimSpace(markdown)
	if markdown == "" {
		return Article{}, ErrNoContent
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return Article{}, fmt.Errorf("parse html: %w", err)
	}

	title, strategy := ResolveTitle(e.titles, TitleSource{Doc: doc, Markdown: markdown, URL: pageURL})
	return Article{Title: title, TitleStrategy: strategy, Markdown: markdown}, nil
}

// trafilaturaExtractor keeps tables and links, drops images and comment sections.
type trafilaturaExtractor struct{}

// NewTrafilaturaExtractor returns the go-trafilatura backed MainContentExtractor.
func NewTrafilaturaExtractor() MainContentExtractor {
	return trafilaturaExtractor{}
}

func (trafilaturaExtractor) MainContent(body []byte, pageURL string) (string, error) {
	opts := trafilatura.Options{
		ExcludeComments: true,
		ExcludeTables:   false,
		IncludeImages:   false,
		IncludeLinks:    true,
	}
	var domain string
	if parsed, err := nurl.Parse(pageURL); err == nil && parsed.Host != "" {
		opts.OriginalURL = parsed
		domain = parsed.Host
	}

	result, err := trafilatura.Extract(bytes.NewReader(body), opts)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoContent, err)
	}
	if result == nil || result.ContentNode == nil {
		return "", ErrNoContent
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, result.ContentNode); err != nil {
		return "", fmt.Errorf("render content node: %w", err)
	}

	conv := md.NewConverter(domain, true, nil)
	conv.Use(plugin.Table())
	markdown, err := conv.ConvertString(buf.String())
	if err != nil {
		return "", fmt.Errorf("convert to markdown: %w", err)
	}
	markdown = strings.TrimSpace(markdown)
	if markdown == "" {
		return "", ErrNoContent
	}
	return markdown, nil
}
