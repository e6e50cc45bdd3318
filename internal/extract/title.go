package extract

import (
	"net/url"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

// TitleSource is everything a title strategy may look at.
type TitleSource struct {
	Doc      *goquery.Document
	Markdown string
	URL      string
}

// TitleStrategy yields a candidate title or "" when it has nothing to offer.
type TitleStrategy struct {
	Name    string
	Resolve func(src TitleSource) string
}

// TitleSelectors are tried in order against the page HTML.
var TitleSelectors = []string{"h1", "title", ".post-title", ".entry-title", ".article-title"}

// DefaultTitleChain is the ordered fallback chain used for every page.
func DefaultTitleChain() []TitleStrategy {
	chain := make([]TitleStrategy, 0, len(TitleSelectors)+3)
	for _, sel := range TitleSelectors {
		chain = append(chain, selectorStrategy(sel))
	}
	return append(chain,
		TitleStrategy{Name: "markdown-heading", Resolve: markdownHeading},
		TitleStrategy{Name: "url-slug", Resolve: urlSlugTitle},
		TitleStrategy{Name: "url-host", Resolve: urlHostTitle},
	)
}

// ResolveTitle walks chain and returns the first non-empty title with the strategy name.
func ResolveTitle(chain []TitleStrategy, src TitleSource) (title, strategy string) {
	for _, s := range chain {
		if s.Resolve == nil {
			continue
		}
		if t := strings.TrimSpace(s.Resolve(src)); t != "" {
			return t, s.Name
		}
	}
	return "", ""
}

func selectorStrategy(sel string) TitleStrategy {
	return TitleStrategy{
		Name: "selector:" + sel,
		Resolve: func(src TitleSource) string {
			if src.Doc == nil {
				return ""
			}
			node := src.Doc.Find(sel).First()
			if node.Length() == 0 {
				return ""
			}
			return collapseSpace(node.Text())
		},
	}
}

func markdownHeading(src TitleSource) string {
	for _, line := range strings.Split(src.Markdown, "\n") {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(line[2:])
		}
	}
	return ""
}

func urlSlugTitle(src TitleSource) string {
	parsed, err := url.Parse(src.URL)
	if err != nil {
		return ""
	}
	segments := strings.Split(parsed.Path, "/")
	slug := segments[len(segments)-1]
	slug = strings.NewReplacer("-", " ", "_", " ").Replace(slug)
	return titleCase(slug)
}

func urlHostTitle(src TitleSource) string {
	parsed, err := url.Parse(src.URL)
	if err != nil {
		return ""
	}
	return parsed.Hostname()
}

// titleCase upper-cases the first letter of every run of letters and lower-cases the rest.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	return b.String()
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
